package finance

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FinanceService backs the periods and fixed expenses pages
type FinanceService struct {
	gateway finance.Gateway
	loc     *time.Location
	logger  *zap.Logger
	now     func() time.Time
}

// NewFinanceService creates a new finance service
func NewFinanceService(gateway finance.Gateway, loc *time.Location, logger *zap.Logger) *FinanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &FinanceService{gateway: gateway, loc: loc, logger: logger, now: time.Now}
}

// CurrentPeriodo returns the quincena containing today
func (s *FinanceService) CurrentPeriodo() finance.Periodo {
	return finance.PeriodoOf(s.now().In(s.loc))
}

// ResolvePeriodo parses a period key, falling back to the current quincena when empty
func (s *FinanceService) ResolvePeriodo(key string) (finance.Periodo, error) {
	if strings.TrimSpace(key) == "" {
		return s.CurrentPeriodo(), nil
	}
	p, err := finance.ParsePeriodo(key)
	if err != nil {
		return finance.Periodo{}, shared.NewDomainError("INVALID_INPUT", "Periodo inválido")
	}
	return p, nil
}

// Periods lists a year's periods, newest first. anio 0 means this year.
func (s *FinanceService) Periods(ctx context.Context, anio int) ([]finance.Period, error) {
	if anio == 0 {
		anio = s.now().In(s.loc).Year()
	}
	periods, err := s.gateway.ListPeriods(ctx, anio)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(periods, func(a, b finance.Period) int {
		return strings.Compare(b.Periodo().Key(), a.Periodo().Key())
	})
	return periods, nil
}

// Consolidate asks the backend to close a period. The totals are computed server-side.
func (s *FinanceService) Consolidate(ctx context.Context, id string) (*finance.Period, error) {
	p, err := s.gateway.ConsolidatePeriod(ctx, id)
	if err != nil {
		s.logger.Warn("Period consolidation failed", zap.String("period_id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Period consolidated", zap.String("period_id", id), zap.String("periodo", p.Periodo().Key()))
	return p, nil
}

// FixedExpenses loads the items and the backend summary of a quincena concurrently
func (s *FinanceService) FixedExpenses(ctx context.Context, periodoKey string) (*FixedExpensePage, error) {
	p, err := s.ResolvePeriodo(periodoKey)
	if err != nil {
		return nil, err
	}

	page := &FixedExpensePage{Periodo: p}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.gateway.ListFixedExpenses(gctx, p)
		page.Items = items
		return err
	})
	g.Go(func() error {
		summary, err := s.gateway.FixedExpenseSummary(gctx, p)
		page.Summary = summary
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

// FixedExpense loads one expense for the edit form
func (s *FinanceService) FixedExpense(ctx context.Context, id string) (*finance.FixedExpense, error) {
	return s.gateway.GetFixedExpense(ctx, id)
}

// SaveFixedExpense parses the form and creates (empty id) or updates the expense
func (s *FinanceService) SaveFixedExpense(ctx context.Context, id string, form FixedExpenseForm) (*finance.FixedExpense, error) {
	in, err := parseFixedExpenseForm(form)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return s.gateway.CreateFixedExpense(ctx, in)
	}
	return s.gateway.UpdateFixedExpense(ctx, id, in)
}

// DeleteFixedExpense removes an expense
func (s *FinanceService) DeleteFixedExpense(ctx context.Context, id string) error {
	return s.gateway.DeleteFixedExpense(ctx, id)
}

func parseFixedExpenseForm(form FixedExpenseForm) (finance.FixedExpenseInput, error) {
	p, err := finance.ParsePeriodo(form.Periodo)
	if err != nil {
		return finance.FixedExpenseInput{}, shared.NewDomainError("INVALID_INPUT", "Periodo inválido")
	}
	categoria := finance.ExpenseCategoria(strings.ToUpper(strings.TrimSpace(form.Categoria)))
	if !categoria.IsValid() {
		return finance.FixedExpenseInput{}, shared.NewDomainError("INVALID_INPUT", "Categoría inválida")
	}
	moneda, err := valueobject.ParseCurrency(form.Moneda)
	if err != nil {
		return finance.FixedExpenseInput{}, shared.NewDomainError("INVALID_INPUT", "Moneda no soportada")
	}
	monto, err := valueobject.ParseMoney(form.Monto, moneda)
	if err != nil || !monto.IsPositive() {
		return finance.FixedExpenseInput{}, shared.NewDomainError("INVALID_INPUT", "El monto debe ser mayor a cero")
	}
	concepto := strings.TrimSpace(form.Concepto)
	if concepto == "" {
		return finance.FixedExpenseInput{}, shared.NewDomainError("INVALID_INPUT", "El concepto es obligatorio")
	}
	return finance.FixedExpenseInput{
		Anio:      p.Anio,
		Mes:       p.Mes,
		Quincena:  p.Quincena,
		Concepto:  concepto,
		Categoria: categoria,
		Monto:     monto,
		Moneda:    moneda,
		Notas:     strings.TrimSpace(form.Notas),
	}, nil
}
