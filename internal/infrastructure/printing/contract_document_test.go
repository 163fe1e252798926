package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContract() ContractData {
	return ContractData{
		Contract: contract.Contract{
			ID:                 "c1",
			NumeroContrato:     "CT-2025-0007",
			ModeloNombre:       "ana gómez",
			FechaInicio:        time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC),
			PeriodicidadPago:   contract.PeriodicidadQuincenal,
			TipoComision:       contract.TipoComisionFijo,
			PorcentajeComision: decimal.RequireFromString("35"),
			Estado:             contract.EstadoPendienteFirma,
			Notas:              "Incluye tráfico pago",
		},
		Modelo: &modelo.Modelo{
			NombreCompleto:       "ANA GÓMEZ",
			NumeroIdentificacion: "1020304050",
			TipoDocumento:        "CC",
			CorreoElectronico:    "ana@example.com",
			Plataformas:          []string{"ONLYFANS", "FANSLY"},
		},
	}
}

func TestContractDocument_HTML(t *testing.T) {
	doc, err := NewContractDocument(time.UTC, nil)
	require.NoError(t, err)

	html, err := doc.HTML(sampleContract())
	require.NoError(t, err)

	assert.Contains(t, html, "CT-2025-0007")
	assert.Contains(t, html, "Pendiente de firma")
	assert.Contains(t, html, "Ana Gómez")
	assert.Contains(t, html, "CC N.º 1020304050")
	assert.Contains(t, html, "1 de diciembre de 2025")
	assert.Contains(t, html, "35,00 %")
	assert.Contains(t, html, "ONLYFANS, FANSLY")
	assert.Contains(t, html, "quincenal")
	assert.Contains(t, html, "Incluye tráfico pago")
	assert.Contains(t, html, "OnlyTop")
}

func TestContractDocument_WithoutModelo(t *testing.T) {
	doc, err := NewContractDocument(time.UTC, nil)
	require.NoError(t, err)

	data := sampleContract()
	data.Modelo = nil
	html, err := doc.HTML(data)
	require.NoError(t, err)
	assert.Contains(t, html, "ana gómez")
	assert.NotContains(t, html, "Correo electrónico")
}

func TestContractDocument_PDF(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		doc, err := NewContractDocument(time.UTC, nil)
		require.NoError(t, err)
		assert.False(t, doc.CanRenderPDF())

		_, err = doc.PDF(context.Background(), sampleContract())
		var renderErr *RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, ErrCodeDisabled, renderErr.Code)
	})

	t.Run("renders letter size", func(t *testing.T) {
		fake := &fakeRenderer{}
		doc, err := NewContractDocument(time.UTC, fake)
		require.NoError(t, err)

		pdf, err := doc.PDF(context.Background(), sampleContract())
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.7"), pdf)
		require.NotNil(t, fake.got)
		assert.Equal(t, PaperSizeLetter, fake.got.PaperSize)
		assert.Equal(t, "Contrato CT-2025-0007", fake.got.Title)
		assert.Contains(t, fake.got.FooterHTML, "pageNumber")
	})
}
