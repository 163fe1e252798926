package sales

import (
	"context"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CommissionStatus is the payout state of a chatter commission
type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "PENDING"
	CommissionApproved  CommissionStatus = "APPROVED"
	CommissionPaid      CommissionStatus = "PAID"
	CommissionCancelled CommissionStatus = "CANCELLED"
)

// DisplayName returns a human-readable name for the status
func (s CommissionStatus) DisplayName() string {
	switch s {
	case CommissionPending:
		return "Pendiente"
	case CommissionApproved:
		return "Aprobada"
	case CommissionPaid:
		return "Pagada"
	case CommissionCancelled:
		return "Cancelada"
	default:
		return string(s)
	}
}

// Commission is a chatter's earning for a period, computed by the backend
type Commission struct {
	ID              string               `json:"_id"`
	ChatterID       string               `json:"chatterId"`
	ChatterNombre   string               `json:"chatterNombre"`
	ModeloID        string               `json:"modeloId"`
	ModeloNombre    string               `json:"modeloNombre,omitempty"`
	FechaInicio     time.Time            `json:"fechaInicio"`
	FechaFin        time.Time            `json:"fechaFin"`
	TotalVentas     decimal.Decimal      `json:"totalVentas"`
	Porcentaje      decimal.Decimal      `json:"porcentaje"`
	MontoComision   decimal.Decimal      `json:"montoComision"`
	Moneda          valueobject.Currency `json:"moneda"`
	Estado          CommissionStatus     `json:"estado"`
	AprobadoPor     string               `json:"aprobadoPor,omitempty"`
	FechaAprobacion *time.Time           `json:"fechaAprobacion,omitempty"`
}

// CommissionFilter narrows the commission listing
type CommissionFilter struct {
	FechaInicio *time.Time
	FechaFin    *time.Time
	Estado      CommissionStatus
	ChatterID   string
	ModeloID    string
}

// GenerateRequest asks the backend to compute commissions for a date range.
// Both ends are calendar days and FechaFin is included.
type GenerateRequest struct {
	FechaInicio time.Time
	FechaFin    time.Time
	ModeloID    string
}

// GenerateResult reports what the backend produced
type GenerateResult struct {
	Generadas  int          `json:"generadas"`
	Comisiones []Commission `json:"comisiones"`
}

// Gateway reads and mutates sales data on the remote API
type Gateway interface {
	ListCommissions(ctx context.Context, filter CommissionFilter) ([]Commission, error)
	GenerateCommissions(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	ApproveCommissions(ctx context.Context, ids []string) (int, error)
	PayCommissions(ctx context.Context, ids []string) (int, error)

	ListGoals(ctx context.Context, filter shared.Filter) ([]Goal, error)
	GetGoal(ctx context.Context, id string) (*Goal, error)
	CreateGoal(ctx context.Context, in GoalInput) (*Goal, error)
	UpdateGoal(ctx context.Context, id string, in GoalInput) (*Goal, error)
	DeleteGoal(ctx context.Context, id string) error

	ListTeams(ctx context.Context) ([]ChatterTeam, error)
}
