package remote

import (
	"context"
	"net/url"
	"strconv"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
)

const (
	periodsPath       = "/api/finanzas/periodos"
	fixedExpensesPath = "/api/finanzas/gastos-fijos"
)

// FinanceGateway implements finance.Gateway.
type FinanceGateway struct {
	client *apiclient.Client
}

// NewFinanceGateway creates a FinanceGateway.
func NewFinanceGateway(client *apiclient.Client) *FinanceGateway {
	return &FinanceGateway{client: client}
}

// ListPeriods returns the periods of a year; anio 0 lists every period.
func (g *FinanceGateway) ListPeriods(ctx context.Context, anio int) ([]finance.Period, error) {
	query := url.Values{}
	if anio > 0 {
		query.Set("anio", strconv.Itoa(anio))
	}
	items, _, err := getList[finance.Period](ctx, g.client, periodsPath, query)
	return items, err
}

// ConsolidatePeriod asks the backend to close the period totals.
func (g *FinanceGateway) ConsolidatePeriod(ctx context.Context, id string) (*finance.Period, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var p finance.Period
	if err := g.client.Post(ctx, resource(periodsPath, id, "consolidar"), nil, &p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func periodoQuery(p finance.Periodo) url.Values {
	return url.Values{
		"anio":     {strconv.Itoa(p.Anio)},
		"mes":      {strconv.Itoa(p.Mes)},
		"quincena": {string(p.Quincena)},
	}
}

func (g *FinanceGateway) ListFixedExpenses(ctx context.Context, p finance.Periodo) ([]finance.FixedExpense, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	items, _, err := getList[finance.FixedExpense](ctx, g.client, fixedExpensesPath, periodoQuery(p))
	return items, err
}

func (g *FinanceGateway) GetFixedExpense(ctx context.Context, id string) (*finance.FixedExpense, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var e finance.FixedExpense
	if err := g.client.Get(ctx, resource(fixedExpensesPath, id), nil, &e); err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (g *FinanceGateway) CreateFixedExpense(ctx context.Context, in finance.FixedExpenseInput) (*finance.FixedExpense, error) {
	var e finance.FixedExpense
	if err := g.client.Post(ctx, fixedExpensesPath, in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *FinanceGateway) UpdateFixedExpense(ctx context.Context, id string, in finance.FixedExpenseInput) (*finance.FixedExpense, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var e finance.FixedExpense
	if err := g.client.Patch(ctx, resource(fixedExpensesPath, id), in, &e); err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (g *FinanceGateway) DeleteFixedExpense(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return translate(g.client.Delete(ctx, resource(fixedExpensesPath, id)))
}

// FixedExpenseSummary returns the per-category totals of a quincena.
func (g *FinanceGateway) FixedExpenseSummary(ctx context.Context, p finance.Periodo) (*finance.FixedExpenseSummary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var s finance.FixedExpenseSummary
	if err := g.client.Get(ctx, resource(fixedExpensesPath, "resumen"), periodoQuery(p), &s); err != nil {
		return nil, err
	}
	if s.Periodo == (finance.Periodo{}) {
		s.Periodo = p
	}
	return &s, nil
}

var _ finance.Gateway = (*FinanceGateway)(nil)
