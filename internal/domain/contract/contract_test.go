package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstadoTransitions(t *testing.T) {
	assert.True(t, EstadoBorrador.CanTransitionTo(EstadoPendienteFirma))
	assert.True(t, EstadoPendienteFirma.CanTransitionTo(EstadoFirmado))
	assert.False(t, EstadoFirmado.CanTransitionTo(EstadoBorrador))
	assert.Empty(t, EstadoTerminado.NextStates())
}

func TestEstadoDisplayName(t *testing.T) {
	assert.Equal(t, "Pendiente de firma", EstadoPendienteFirma.DisplayName())
	assert.Equal(t, "OTRO", Estado("OTRO").DisplayName())
	assert.False(t, Estado("OTRO").IsValid())
}
