package sales

import (
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// GoalForm is the goal create/edit form as submitted
type GoalForm struct {
	ModeloID      string `form:"modeloId" binding:"required"`
	Titulo        string `form:"titulo" binding:"required,max=120"`
	Descripcion   string `form:"descripcion" binding:"max=500"`
	MontoObjetivo string `form:"montoObjetivo" binding:"required"`
	Moneda        string `form:"moneda"`
	FechaInicio   string `form:"fechaInicio" binding:"required"`
	FechaFin      string `form:"fechaFin" binding:"required"`
}

// GoalView is a goal plus the figures the progress card shows
type GoalView struct {
	sales.Goal
	Percent   decimal.Decimal // clamped to [0, 100]
	Remaining decimal.Decimal
	DaysLeft  int
}

// CommissionQuery selects the listing. Periodo wins over an explicit range.
type CommissionQuery struct {
	Periodo   string `form:"periodo"`
	Desde     string `form:"desde"`
	Hasta     string `form:"hasta"`
	Estado    string `form:"estado"`
	ChatterID string `form:"chatterId"`
	ModeloID  string `form:"modeloId"`
}

// CurrencyTotal sums commissions in one currency
type CurrencyTotal struct {
	Moneda valueobject.Currency
	Total  decimal.Decimal
	Count  int
}

// CommissionListing is the commissions page model
type CommissionListing struct {
	Items   []sales.Commission
	Totals  []CurrencyTotal
	Periodo *finance.Periodo
	Filter  sales.CommissionFilter
}
