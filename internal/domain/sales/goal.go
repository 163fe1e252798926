package sales

import (
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// GoalStatus is the state of a sales goal
type GoalStatus string

const (
	GoalActiva     GoalStatus = "ACTIVA"
	GoalCompletada GoalStatus = "COMPLETADA"
	GoalVencida    GoalStatus = "VENCIDA"
	GoalCancelada  GoalStatus = "CANCELADA"
)

// DisplayName returns a human-readable name for the status
func (s GoalStatus) DisplayName() string {
	switch s {
	case GoalActiva:
		return "Activa"
	case GoalCompletada:
		return "Completada"
	case GoalVencida:
		return "Vencida"
	case GoalCancelada:
		return "Cancelada"
	default:
		return string(s)
	}
}

// Goal is a sales target for a modelo's chatter group
type Goal struct {
	ID                     string               `json:"_id"`
	ModeloID               string               `json:"modeloId"`
	ModeloNombre           string               `json:"modeloNombre,omitempty"`
	GrupoID                string               `json:"grupoId,omitempty"`
	Titulo                 string               `json:"titulo"`
	Descripcion            string               `json:"descripcion,omitempty"`
	MontoObjetivo          decimal.Decimal      `json:"montoObjetivo"`
	MontoActual            decimal.Decimal      `json:"montoActual"`
	Moneda                 valueobject.Currency `json:"moneda"`
	FechaInicio            time.Time            `json:"fechaInicio"`
	FechaFin               time.Time            `json:"fechaFin"`
	Estado                 GoalStatus           `json:"estado"`
	PorcentajeCumplimiento decimal.Decimal      `json:"porcentajeCumplimiento"`
}

var hundred = decimal.NewFromInt(100)

// Progress returns the completion percentage for a progress bar, clamped to [0, 100].
// The backend figure wins; it is derived from the amounts only when absent.
func (g Goal) Progress() decimal.Decimal {
	p := g.PorcentajeCumplimiento
	if p.IsZero() && g.MontoObjetivo.IsPositive() {
		p = g.MontoActual.Div(g.MontoObjetivo).Mul(hundred)
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p.Round(1)
}

// Remaining returns how much is left to reach the target, never negative
func (g Goal) Remaining() decimal.Decimal {
	r := g.MontoObjetivo.Sub(g.MontoActual)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// DaysLeft returns the whole days until FechaFin from now, or 0 when past
func (g Goal) DaysLeft(now time.Time) int {
	if !now.Before(g.FechaFin) {
		return 0
	}
	return int(g.FechaFin.Sub(now).Hours() / 24)
}

// GoalInput is the payload for create and update
type GoalInput struct {
	ModeloID      string               `json:"modeloId"`
	Titulo        string               `json:"titulo"`
	Descripcion   string               `json:"descripcion,omitempty"`
	MontoObjetivo decimal.Decimal      `json:"montoObjetivo"`
	Moneda        valueobject.Currency `json:"moneda"`
	FechaInicio   time.Time            `json:"fechaInicio"`
	FechaFin      time.Time            `json:"fechaFin"`
}

// Chatter is a staff member on a modelo's sales team
type Chatter struct {
	ID     string `json:"_id"`
	Nombre string `json:"nombre"`
	Turno  string `json:"turno"`
}

// ChatterTeam is the chatter group working for a modelo
type ChatterTeam struct {
	ID           string    `json:"_id"`
	ModeloID     string    `json:"modeloId"`
	ModeloNombre string    `json:"modeloNombre"`
	Chatters     []Chatter `json:"chatters"`
}
