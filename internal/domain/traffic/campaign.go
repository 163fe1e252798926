package traffic

import (
	"context"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Estado is the run state of an advertising campaign
type Estado string

const (
	EstadoPlanificada Estado = "PLANIFICADA"
	EstadoActiva      Estado = "ACTIVA"
	EstadoPausada     Estado = "PAUSADA"
	EstadoFinalizada  Estado = "FINALIZADA"
)

// Estados lists every state in display order
var Estados = []Estado{EstadoPlanificada, EstadoActiva, EstadoPausada, EstadoFinalizada}

// DisplayName returns a human-readable name for the state
func (e Estado) DisplayName() string {
	switch e {
	case EstadoPlanificada:
		return "Planificada"
	case EstadoActiva:
		return "Activa"
	case EstadoPausada:
		return "Pausada"
	case EstadoFinalizada:
		return "Finalizada"
	default:
		return string(e)
	}
}

// Plataformas are the ad networks a campaign can run on
var Plataformas = []string{"REDDIT", "TWITTER", "INSTAGRAM", "TIKTOK", "TELEGRAM", "OTRA"}

// Campaign is a paid traffic campaign promoting a modelo
type Campaign struct {
	ID           string               `json:"_id"`
	ModeloID     string               `json:"modeloId"`
	ModeloNombre string               `json:"modeloNombre,omitempty"`
	Nombre       string               `json:"nombre"`
	Plataforma   string               `json:"plataforma"`
	Presupuesto  decimal.Decimal      `json:"presupuesto"`
	Moneda       valueobject.Currency `json:"moneda"`
	FechaInicio  time.Time            `json:"fechaInicio"`
	FechaFin     *time.Time           `json:"fechaFin,omitempty"`
	Estado       Estado               `json:"estado"`
	Trafficker   string               `json:"trafficker,omitempty"`
	Notas        string               `json:"notas,omitempty"`
}

// Running reports whether the campaign is live at now
func (c Campaign) Running(now time.Time) bool {
	if c.Estado != EstadoActiva || now.Before(c.FechaInicio) {
		return false
	}
	return c.FechaFin == nil || !now.After(*c.FechaFin)
}

// Input is the payload for create and update
type Input struct {
	ModeloID    string               `json:"modeloId"`
	Nombre      string               `json:"nombre"`
	Plataforma  string               `json:"plataforma"`
	Presupuesto decimal.Decimal      `json:"presupuesto"`
	Moneda      valueobject.Currency `json:"moneda"`
	FechaInicio time.Time            `json:"fechaInicio"`
	FechaFin    *time.Time           `json:"fechaFin,omitempty"`
	Estado      Estado               `json:"estado"`
	Notas       string               `json:"notas,omitempty"`
}

// Gateway reads and mutates campaigns on the remote API
type Gateway interface {
	List(ctx context.Context, filter shared.Filter) ([]Campaign, error)
	Get(ctx context.Context, id string) (*Campaign, error)
	Create(ctx context.Context, in Input) (*Campaign, error)
	Update(ctx context.Context, id string, in Input) (*Campaign, error)
	Delete(ctx context.Context, id string) error
}
