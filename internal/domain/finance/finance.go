package finance

import (
	"context"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PeriodEstado is the consolidation state of a financial period
type PeriodEstado string

const (
	PeriodAbierto    PeriodEstado = "ABIERTO"
	PeriodEnRevision PeriodEstado = "EN_REVISION"
	PeriodCerrado    PeriodEstado = "CERRADO"
)

// DisplayName returns a human-readable name for the state
func (e PeriodEstado) DisplayName() string {
	switch e {
	case PeriodAbierto:
		return "Abierto"
	case PeriodEnRevision:
		return "En revisión"
	case PeriodCerrado:
		return "Cerrado"
	default:
		return string(e)
	}
}

// Period is a quincena with the totals computed by the backend
type Period struct {
	ID            string               `json:"_id"`
	Anio          int                  `json:"anio"`
	Mes           int                  `json:"mes"`
	Quincena      Quincena             `json:"quincena"`
	Estado        PeriodEstado         `json:"estado"`
	TotalIngresos decimal.Decimal      `json:"totalIngresos"`
	TotalEgresos  decimal.Decimal      `json:"totalEgresos"`
	UtilidadNeta  decimal.Decimal      `json:"utilidadNeta"`
	Moneda        valueobject.Currency `json:"moneda"`
	ConsolidadoEn *time.Time           `json:"consolidadoEn,omitempty"`
}

// Periodo returns the half-month this period covers
func (p Period) Periodo() Periodo {
	return Periodo{Anio: p.Anio, Mes: p.Mes, Quincena: p.Quincena}
}

// CanConsolidate reports whether the consolidate action is offered
func (p Period) CanConsolidate() bool {
	return p.Estado == PeriodAbierto || p.Estado == PeriodEnRevision
}

// ExpenseCategoria groups fixed expenses
type ExpenseCategoria string

const (
	CategoriaAdministrativos ExpenseCategoria = "ADMINISTRATIVOS"
	CategoriaPersonal        ExpenseCategoria = "PERSONAL"
	CategoriaServicios       ExpenseCategoria = "SERVICIOS"
	CategoriaMarketing       ExpenseCategoria = "MARKETING"
	CategoriaTecnologia      ExpenseCategoria = "TECNOLOGIA"
	CategoriaOtros           ExpenseCategoria = "OTROS"
)

// Categorias lists expense categories in display order
var Categorias = []ExpenseCategoria{
	CategoriaAdministrativos, CategoriaPersonal, CategoriaServicios,
	CategoriaMarketing, CategoriaTecnologia, CategoriaOtros,
}

// IsValid checks if the category is known
func (c ExpenseCategoria) IsValid() bool {
	for _, k := range Categorias {
		if k == c {
			return true
		}
	}
	return false
}

// ExpenseEstado is the payment state of a fixed expense
type ExpenseEstado string

const (
	ExpensePendiente ExpenseEstado = "PENDIENTE"
	ExpenseAprobado  ExpenseEstado = "APROBADO"
	ExpensePagado    ExpenseEstado = "PAGADO"
)

// FixedExpense is a recurring cost registered against a quincena
type FixedExpense struct {
	ID        string               `json:"_id"`
	Anio      int                  `json:"anio"`
	Mes       int                  `json:"mes"`
	Quincena  Quincena             `json:"quincena"`
	Concepto  string               `json:"concepto"`
	Categoria ExpenseCategoria     `json:"categoria"`
	Monto     decimal.Decimal      `json:"monto"`
	Moneda    valueobject.Currency `json:"moneda"`
	Estado    ExpenseEstado        `json:"estado"`
	Notas     string               `json:"notas,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// Money returns the amount as a value object
func (e FixedExpense) Money() valueobject.Money {
	m, err := valueobject.NewMoney(e.Monto, e.Moneda)
	if err != nil {
		return valueobject.Zero(valueobject.DefaultCurrency)
	}
	return m
}

// FixedExpenseInput is the payload for create and update
type FixedExpenseInput struct {
	Anio      int                  `json:"anio"`
	Mes       int                  `json:"mes"`
	Quincena  Quincena             `json:"quincena"`
	Concepto  string               `json:"concepto"`
	Categoria ExpenseCategoria     `json:"categoria"`
	Monto     decimal.Decimal      `json:"monto"`
	Moneda    valueobject.Currency `json:"moneda"`
	Notas     string               `json:"notas,omitempty"`
}

// CategoryTotal is one row of the expense summary
type CategoryTotal struct {
	Categoria ExpenseCategoria `json:"categoria"`
	Total     decimal.Decimal  `json:"total"`
	Cantidad  int              `json:"cantidad"`
}

// FixedExpenseSummary aggregates a quincena's fixed expenses, as computed by the backend
type FixedExpenseSummary struct {
	Periodo      Periodo              `json:"periodo"`
	Total        decimal.Decimal      `json:"total"`
	Moneda       valueobject.Currency `json:"moneda"`
	PorCategoria []CategoryTotal      `json:"porCategoria"`
	TotalGastos  int                  `json:"totalGastos"`
}

// Gateway reads and mutates financial data on the remote API
type Gateway interface {
	ListPeriods(ctx context.Context, anio int) ([]Period, error)
	ConsolidatePeriod(ctx context.Context, id string) (*Period, error)

	ListFixedExpenses(ctx context.Context, p Periodo) ([]FixedExpense, error)
	GetFixedExpense(ctx context.Context, id string) (*FixedExpense, error)
	CreateFixedExpense(ctx context.Context, in FixedExpenseInput) (*FixedExpense, error)
	UpdateFixedExpense(ctx context.Context, id string, in FixedExpenseInput) (*FixedExpense, error)
	DeleteFixedExpense(ctx context.Context, id string) error
	FixedExpenseSummary(ctx context.Context, p Periodo) (*FixedExpenseSummary, error)
}
