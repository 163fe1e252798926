package contract

import (
	"context"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Estado is the signing state of a modelo contract
type Estado string

const (
	EstadoBorrador       Estado = "BORRADOR"
	EstadoPendienteFirma Estado = "PENDIENTE_FIRMA"
	EstadoFirmado        Estado = "FIRMADO"
	EstadoRechazado      Estado = "RECHAZADO"
	EstadoTerminado      Estado = "TERMINADO"
)

// IsValid checks if the state is known
func (e Estado) IsValid() bool {
	switch e {
	case EstadoBorrador, EstadoPendienteFirma, EstadoFirmado, EstadoRechazado, EstadoTerminado:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the state
func (e Estado) DisplayName() string {
	switch e {
	case EstadoBorrador:
		return "Borrador"
	case EstadoPendienteFirma:
		return "Pendiente de firma"
	case EstadoFirmado:
		return "Firmado"
	case EstadoRechazado:
		return "Rechazado"
	case EstadoTerminado:
		return "Terminado"
	default:
		return string(e)
	}
}

// transitions lists the states reachable from each state
var transitions = map[Estado][]Estado{
	EstadoBorrador:       {EstadoPendienteFirma, EstadoTerminado},
	EstadoPendienteFirma: {EstadoFirmado, EstadoRechazado, EstadoBorrador},
	EstadoFirmado:        {EstadoTerminado},
	EstadoRechazado:      {EstadoBorrador},
}

// NextStates returns the states offered as actions for a contract in this state.
// The backend has the final word; this only drives which buttons are shown.
func (e Estado) NextStates() []Estado {
	return transitions[e]
}

// CanTransitionTo reports whether target is offered from e
func (e Estado) CanTransitionTo(target Estado) bool {
	for _, s := range transitions[e] {
		if s == target {
			return true
		}
	}
	return false
}

// Periodicidad is the payout frequency
type Periodicidad string

const (
	PeriodicidadQuincenal Periodicidad = "QUINCENAL"
	PeriodicidadMensual   Periodicidad = "MENSUAL"
)

// TipoComision selects how the modelo commission is computed server-side
type TipoComision string

const (
	TipoComisionFijo       TipoComision = "FIJO"
	TipoComisionEscalonado TipoComision = "ESCALONADO"
)

// Contract is a signed (or pending) agreement between the agency and a modelo
type Contract struct {
	ID                 string          `json:"_id"`
	NumeroContrato     string          `json:"numeroContrato"`
	ModeloID           string          `json:"modeloId"`
	ModeloNombre       string          `json:"modeloNombre,omitempty"`
	FechaInicio        time.Time       `json:"fechaInicio"`
	PeriodicidadPago   Periodicidad    `json:"periodicidadPago"`
	TipoComision       TipoComision    `json:"tipoComision"`
	PorcentajeComision decimal.Decimal `json:"porcentajeComision"`
	Estado             Estado          `json:"estado"`
	Notas              string          `json:"notas,omitempty"`
	FirmadoEn          *time.Time      `json:"firmadoEn,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// Input is the payload for creating a contract
type Input struct {
	ModeloID           string          `json:"modeloId"`
	FechaInicio        time.Time       `json:"fechaInicio"`
	PeriodicidadPago   Periodicidad    `json:"periodicidadPago"`
	TipoComision       TipoComision    `json:"tipoComision"`
	PorcentajeComision decimal.Decimal `json:"porcentajeComision"`
	Notas              string          `json:"notas,omitempty"`
}

// Gateway reads and mutates contracts on the remote API
type Gateway interface {
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[Contract], error)
	Get(ctx context.Context, id string) (*Contract, error)
	Create(ctx context.Context, in Input) (*Contract, error)
	ChangeStatus(ctx context.Context, id string, estado Estado, motivo string) (*Contract, error)
}
