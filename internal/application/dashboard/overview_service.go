// Package dashboard assembles the landing page from several backend resources.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/traffic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Overview is everything the dashboard renders
type Overview struct {
	ModelosActivas   int64
	RecentModelos    []modelo.Modelo
	ActiveGoals      []sales.Goal
	OpenPeriods      []finance.Period
	PendingOvertime  []hr.OvertimeRequest
	RunningCampaigns []traffic.Campaign
	CurrentPeriodo   finance.Periodo
	GeneratedAt      time.Time
}

// PendingOvertimeCount is shown as a badge next to the approval link
func (o *Overview) PendingOvertimeCount() int {
	return len(o.PendingOvertime)
}

// Gateways groups the backend clients the dashboard reads from
type Gateways struct {
	Modelos  modelo.Gateway
	Sales    sales.Gateway
	Finance  finance.Gateway
	HR       hr.Gateway
	Campaign traffic.Gateway
}

// OverviewService fans out to the backend and joins before rendering
type OverviewService struct {
	gw     Gateways
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewOverviewService creates a new dashboard service
func NewOverviewService(gw Gateways, loc *time.Location, logger *zap.Logger) *OverviewService {
	if loc == nil {
		loc = time.UTC
	}
	return &OverviewService{gw: gw, logger: logger, loc: loc, now: time.Now}
}

// recentModelos is how many modelos the dashboard lists
const recentModelos = 5

// Overview loads all dashboard parts concurrently. The first failure
// cancels the remaining calls and is returned; no partial overview is built.
func (s *OverviewService) Overview(ctx context.Context) (*Overview, error) {
	now := s.now().In(s.loc)
	out := &Overview{
		CurrentPeriodo: finance.PeriodoOf(now),
		GeneratedAt:    now,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		filter := shared.DefaultFilter().With("estado", string(modelo.EstadoActiva))
		filter.PageSize = recentModelos
		page, err := s.gw.Modelos.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("modelos: %w", err)
		}
		out.ModelosActivas = page.Total
		out.RecentModelos = page.Items
		return nil
	})

	g.Go(func() error {
		goals, err := s.gw.Sales.ListGoals(ctx, shared.DefaultFilter().With("estado", string(sales.GoalActiva)))
		if err != nil {
			return fmt.Errorf("metas: %w", err)
		}
		out.ActiveGoals = goals
		return nil
	})

	g.Go(func() error {
		periods, err := s.gw.Finance.ListPeriods(ctx, now.Year())
		if err != nil {
			return fmt.Errorf("periodos: %w", err)
		}
		open := make([]finance.Period, 0, len(periods))
		for _, p := range periods {
			if p.CanConsolidate() {
				open = append(open, p)
			}
		}
		out.OpenPeriods = open
		return nil
	})

	g.Go(func() error {
		pending, err := s.gw.HR.ListPendingOvertime(ctx)
		if err != nil {
			return fmt.Errorf("horas extra: %w", err)
		}
		out.PendingOvertime = pending
		return nil
	})

	g.Go(func() error {
		campaigns, err := s.gw.Campaign.List(ctx, shared.DefaultFilter().With("estado", string(traffic.EstadoActiva)))
		if err != nil {
			return fmt.Errorf("campañas: %w", err)
		}
		running := make([]traffic.Campaign, 0, len(campaigns))
		for _, c := range campaigns {
			if c.Running(now) {
				running = append(running, c)
			}
		}
		out.RunningCampaigns = running
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("Dashboard overview failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}
