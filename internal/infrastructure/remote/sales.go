package remote

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/tidwall/gjson"
)

const (
	commissionsPath = "/api/chatter/sales/commissions"
	goalsPath       = "/api/chatter/sales/goals"
	teamsPath       = "/api/chatter/sales/teams"
)

// SalesGateway implements sales.Gateway.
type SalesGateway struct {
	client *apiclient.Client
}

// NewSalesGateway creates a SalesGateway.
func NewSalesGateway(client *apiclient.Client) *SalesGateway {
	return &SalesGateway{client: client}
}

func commissionQuery(f sales.CommissionFilter) url.Values {
	q := url.Values{}
	if f.FechaInicio != nil {
		q.Set("fechaInicio", f.FechaInicio.Format(time.DateOnly))
	}
	if f.FechaFin != nil {
		q.Set("fechaFin", f.FechaFin.Format(time.DateOnly))
	}
	if f.Estado != "" {
		q.Set("estado", string(f.Estado))
	}
	if f.ChatterID != "" {
		q.Set("chatterId", f.ChatterID)
	}
	if f.ModeloID != "" {
		q.Set("modeloId", f.ModeloID)
	}
	return q
}

func (g *SalesGateway) ListCommissions(ctx context.Context, filter sales.CommissionFilter) ([]sales.Commission, error) {
	items, _, err := getList[sales.Commission](ctx, g.client, commissionsPath, commissionQuery(filter))
	return items, err
}

// generateBody carries the range as days, the same way the listing filter does
type generateBody struct {
	FechaInicio string `json:"fechaInicio"`
	FechaFin    string `json:"fechaFin"`
	ModeloID    string `json:"modeloId,omitempty"`
}

// GenerateCommissions computes commissions server-side for the date range.
func (g *SalesGateway) GenerateCommissions(ctx context.Context, req sales.GenerateRequest) (*sales.GenerateResult, error) {
	if req.FechaFin.Before(req.FechaInicio) {
		return nil, shared.NewDomainError("INVALID_INPUT", "la fecha final es anterior a la inicial")
	}
	body := generateBody{
		FechaInicio: req.FechaInicio.Format(time.DateOnly),
		FechaFin:    req.FechaFin.Format(time.DateOnly),
		ModeloID:    req.ModeloID,
	}
	var res sales.GenerateResult
	if err := g.client.Post(ctx, resource(commissionsPath, "generate"), body, &res); err != nil {
		return nil, err
	}
	if res.Generadas == 0 {
		res.Generadas = len(res.Comisiones)
	}
	return &res, nil
}

type commissionBatch struct {
	IDs []string `json:"commissionIds"`
}

// batch posts one request for the whole selection and returns the count the
// backend reports as processed.
func (g *SalesGateway) batch(ctx context.Context, action string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, shared.ErrEmptySelection
	}
	resp, err := g.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   resource(commissionsPath, action),
		Body:   commissionBatch{IDs: ids},
	})
	if err != nil {
		return 0, err
	}
	parsed := gjson.ParseBytes(resp.Body)
	for _, p := range []string{"modifiedCount", "count", "data.modifiedCount", "data.count", "procesadas"} {
		if v := parsed.Get(p); v.Type == gjson.Number {
			return int(v.Int()), nil
		}
	}
	return len(ids), nil
}

func (g *SalesGateway) ApproveCommissions(ctx context.Context, ids []string) (int, error) {
	return g.batch(ctx, "approve", ids)
}

func (g *SalesGateway) PayCommissions(ctx context.Context, ids []string) (int, error) {
	return g.batch(ctx, "pay", ids)
}

func (g *SalesGateway) ListGoals(ctx context.Context, filter shared.Filter) ([]sales.Goal, error) {
	items, _, err := getList[sales.Goal](ctx, g.client, goalsPath, filter.Query())
	return items, err
}

func (g *SalesGateway) GetGoal(ctx context.Context, id string) (*sales.Goal, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var goal sales.Goal
	if err := g.client.Get(ctx, resource(goalsPath, id), nil, &goal); err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

func (g *SalesGateway) CreateGoal(ctx context.Context, in sales.GoalInput) (*sales.Goal, error) {
	var goal sales.Goal
	if err := g.client.Post(ctx, goalsPath, in, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (g *SalesGateway) UpdateGoal(ctx context.Context, id string, in sales.GoalInput) (*sales.Goal, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var goal sales.Goal
	if err := g.client.Patch(ctx, resource(goalsPath, id), in, &goal); err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

func (g *SalesGateway) DeleteGoal(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return translate(g.client.Delete(ctx, resource(goalsPath, id)))
}

func (g *SalesGateway) ListTeams(ctx context.Context) ([]sales.ChatterTeam, error) {
	items, _, err := getList[sales.ChatterTeam](ctx, g.client, teamsPath, nil)
	return items, err
}

var _ sales.Gateway = (*SalesGateway)(nil)
