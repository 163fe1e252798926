package remote

import (
	"context"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
)

const modelosPath = "/api/rrhh/modelos"

// ModeloGateway implements modelo.Gateway.
type ModeloGateway struct {
	client *apiclient.Client
}

// NewModeloGateway creates a ModeloGateway.
func NewModeloGateway(client *apiclient.Client) *ModeloGateway {
	return &ModeloGateway{client: client}
}

// List returns a page of modelos; filter keys are passed through as query params.
func (g *ModeloGateway) List(ctx context.Context, filter shared.Filter) (shared.Paginated[modelo.Modelo], error) {
	return getPage[modelo.Modelo](ctx, g.client, modelosPath, filter)
}

// Get returns one modelo.
func (g *ModeloGateway) Get(ctx context.Context, id string) (*modelo.Modelo, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var m modelo.Modelo
	if err := g.client.Get(ctx, resource(modelosPath, id), nil, &m); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// Create registers a modelo.
func (g *ModeloGateway) Create(ctx context.Context, in modelo.Input) (*modelo.Modelo, error) {
	var m modelo.Modelo
	if err := g.client.Post(ctx, modelosPath, in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update replaces the editable fields of a modelo.
func (g *ModeloGateway) Update(ctx context.Context, id string, in modelo.Input) (*modelo.Modelo, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var m modelo.Modelo
	if err := g.client.Patch(ctx, resource(modelosPath, id), in, &m); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// Delete removes a modelo.
func (g *ModeloGateway) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return translate(g.client.Delete(ctx, resource(modelosPath, id)))
}

var _ modelo.Gateway = (*ModeloGateway)(nil)
