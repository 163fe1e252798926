package remote

import (
	"context"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/traffic"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
)

const campaignsPath = "/api/traffic/campaigns"

// TrafficGateway implements traffic.Gateway.
type TrafficGateway struct {
	client *apiclient.Client
}

// NewTrafficGateway creates a TrafficGateway.
func NewTrafficGateway(client *apiclient.Client) *TrafficGateway {
	return &TrafficGateway{client: client}
}

func (g *TrafficGateway) List(ctx context.Context, filter shared.Filter) ([]traffic.Campaign, error) {
	items, _, err := getList[traffic.Campaign](ctx, g.client, campaignsPath, filter.Query())
	return items, err
}

func (g *TrafficGateway) Get(ctx context.Context, id string) (*traffic.Campaign, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var c traffic.Campaign
	if err := g.client.Get(ctx, resource(campaignsPath, id), nil, &c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (g *TrafficGateway) Create(ctx context.Context, in traffic.Input) (*traffic.Campaign, error) {
	var c traffic.Campaign
	if err := g.client.Post(ctx, campaignsPath, in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (g *TrafficGateway) Update(ctx context.Context, id string, in traffic.Input) (*traffic.Campaign, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var c traffic.Campaign
	if err := g.client.Patch(ctx, resource(campaignsPath, id), in, &c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (g *TrafficGateway) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return translate(g.client.Delete(ctx, resource(campaignsPath, id)))
}

var _ traffic.Gateway = (*TrafficGateway)(nil)
