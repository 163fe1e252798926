package sales

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SalesService backs the commissions and goals pages
type SalesService struct {
	gateway sales.Gateway
	loc     *time.Location
	logger  *zap.Logger
	now     func() time.Time
}

// NewSalesService creates a new sales service
func NewSalesService(gateway sales.Gateway, loc *time.Location, logger *zap.Logger) *SalesService {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesService{gateway: gateway, loc: loc, logger: logger, now: time.Now}
}

// Goals lists goals with their progress figures
func (s *SalesService) Goals(ctx context.Context, filter shared.Filter) ([]GoalView, error) {
	goals, err := s.gateway.ListGoals(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]GoalView, len(goals))
	for i, g := range goals {
		views[i] = GoalView{
			Goal:      g,
			Percent:   g.Progress(),
			Remaining: g.Remaining(),
			DaysLeft:  g.DaysLeft(now),
		}
	}
	return views, nil
}

// Goal loads one goal for the edit form
func (s *SalesService) Goal(ctx context.Context, id string) (*sales.Goal, error) {
	return s.gateway.GetGoal(ctx, id)
}

// SaveGoal parses the form and creates (empty id) or updates the goal
func (s *SalesService) SaveGoal(ctx context.Context, id string, form GoalForm) (*sales.Goal, error) {
	in, err := s.parseGoalForm(form)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return s.gateway.CreateGoal(ctx, in)
	}
	return s.gateway.UpdateGoal(ctx, id, in)
}

// DeleteGoal removes a goal
func (s *SalesService) DeleteGoal(ctx context.Context, id string) error {
	return s.gateway.DeleteGoal(ctx, id)
}

func (s *SalesService) parseGoalForm(form GoalForm) (sales.GoalInput, error) {
	moneda, err := valueobject.ParseCurrency(form.Moneda)
	if err != nil {
		return sales.GoalInput{}, shared.NewDomainError("INVALID_INPUT", "Moneda no soportada")
	}
	monto, err := valueobject.ParseMoney(form.MontoObjetivo, moneda)
	if err != nil || !monto.IsPositive() {
		return sales.GoalInput{}, shared.NewDomainError("INVALID_INPUT", "El monto objetivo debe ser mayor a cero")
	}
	inicio, err := shared.ParseFormDate(form.FechaInicio, s.loc)
	if err != nil {
		return sales.GoalInput{}, err
	}
	fin, err := shared.ParseFormDate(form.FechaFin, s.loc)
	if err != nil {
		return sales.GoalInput{}, err
	}
	if inicio.IsZero() || fin.IsZero() || !fin.After(inicio) {
		return sales.GoalInput{}, shared.NewDomainError("INVALID_INPUT", "La fecha de fin debe ser posterior a la de inicio")
	}
	return sales.GoalInput{
		ModeloID:      strings.TrimSpace(form.ModeloID),
		Titulo:        strings.TrimSpace(form.Titulo),
		Descripcion:   strings.TrimSpace(form.Descripcion),
		MontoObjetivo: monto,
		Moneda:        moneda,
		FechaInicio:   inicio,
		FechaFin:      fin,
	}, nil
}

// Commissions lists commissions for the query, defaulting to the current quincena
func (s *SalesService) Commissions(ctx context.Context, q CommissionQuery) (*CommissionListing, error) {
	filter, periodo, err := s.commissionFilter(q)
	if err != nil {
		return nil, err
	}
	items, err := s.gateway.ListCommissions(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &CommissionListing{
		Items:   items,
		Totals:  totalsByCurrency(items),
		Periodo: periodo,
		Filter:  filter,
	}, nil
}

// commissionFilter resolves the period key or explicit range into dates
func (s *SalesService) commissionFilter(q CommissionQuery) (sales.CommissionFilter, *finance.Periodo, error) {
	filter := sales.CommissionFilter{
		Estado:    sales.CommissionStatus(strings.ToUpper(strings.TrimSpace(q.Estado))),
		ChatterID: strings.TrimSpace(q.ChatterID),
		ModeloID:  strings.TrimSpace(q.ModeloID),
	}

	var periodo *finance.Periodo
	switch {
	case q.Periodo != "":
		p, err := finance.ParsePeriodo(q.Periodo)
		if err != nil {
			return filter, nil, shared.NewDomainError("INVALID_INPUT", "Periodo inválido")
		}
		periodo = &p
	case q.Desde == "" && q.Hasta == "":
		p := finance.PeriodoOf(s.now().In(s.loc))
		periodo = &p
	}

	if periodo != nil {
		start, end := periodo.Start(s.loc), periodo.End(s.loc)
		filter.FechaInicio, filter.FechaFin = &start, &end
		return filter, periodo, nil
	}

	desde, err := shared.ParseFormDate(q.Desde, s.loc)
	if err != nil {
		return filter, nil, err
	}
	hasta, err := shared.ParseFormDate(q.Hasta, s.loc)
	if err != nil {
		return filter, nil, err
	}
	if !desde.IsZero() {
		filter.FechaInicio = &desde
	}
	if !hasta.IsZero() {
		filter.FechaFin = &hasta
	}
	if filter.FechaInicio != nil && filter.FechaFin != nil && filter.FechaFin.Before(*filter.FechaInicio) {
		return filter, nil, shared.NewDomainError("INVALID_INPUT", "El rango de fechas está invertido")
	}
	return filter, nil, nil
}

func totalsByCurrency(items []sales.Commission) []CurrencyTotal {
	index := map[valueobject.Currency]int{}
	var totals []CurrencyTotal
	for _, c := range items {
		if c.Estado == sales.CommissionCancelled {
			continue
		}
		moneda := c.Moneda
		if moneda == "" {
			moneda = valueobject.DefaultCurrency
		}
		i, ok := index[moneda]
		if !ok {
			i = len(totals)
			index[moneda] = i
			totals = append(totals, CurrencyTotal{Moneda: moneda, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(c.MontoComision)
		totals[i].Count++
	}
	return totals
}

// Generate asks the backend to compute commissions for a quincena
func (s *SalesService) Generate(ctx context.Context, periodoKey, modeloID string) (*sales.GenerateResult, error) {
	p, err := finance.ParsePeriodo(periodoKey)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Periodo inválido")
	}
	res, err := s.gateway.GenerateCommissions(ctx, sales.GenerateRequest{
		FechaInicio: p.Start(s.loc),
		FechaFin:    p.End(s.loc),
		ModeloID:    strings.TrimSpace(modeloID),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Commissions generated", zap.String("periodo", p.Key()), zap.Int("generadas", res.Generadas))
	return res, nil
}

// Approve approves the selected commissions in one call
func (s *SalesService) Approve(ctx context.Context, ids []string) (int, error) {
	return s.gateway.ApproveCommissions(ctx, uniqueIDs(ids))
}

// Pay marks the selected commissions as paid in one call
func (s *SalesService) Pay(ctx context.Context, ids []string) (int, error) {
	return s.gateway.PayCommissions(ctx, uniqueIDs(ids))
}

// Teams lists chatter teams by modelo name
func (s *SalesService) Teams(ctx context.Context) ([]sales.ChatterTeam, error) {
	teams, err := s.gateway.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(teams, func(a, b sales.ChatterTeam) int {
		return strings.Compare(strings.ToLower(a.ModeloNombre), strings.ToLower(b.ModeloNombre))
	})
	return teams, nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
