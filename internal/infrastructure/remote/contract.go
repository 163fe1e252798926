package remote

import (
	"context"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
)

const contractsPath = "/api/contratos-modelo"

// ContractGateway implements contract.Gateway.
type ContractGateway struct {
	client *apiclient.Client
}

// NewContractGateway creates a ContractGateway.
func NewContractGateway(client *apiclient.Client) *ContractGateway {
	return &ContractGateway{client: client}
}

func (g *ContractGateway) List(ctx context.Context, filter shared.Filter) (shared.Paginated[contract.Contract], error) {
	return getPage[contract.Contract](ctx, g.client, contractsPath, filter)
}

func (g *ContractGateway) Get(ctx context.Context, id string) (*contract.Contract, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var c contract.Contract
	if err := g.client.Get(ctx, resource(contractsPath, id), nil, &c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (g *ContractGateway) Create(ctx context.Context, in contract.Input) (*contract.Contract, error) {
	var c contract.Contract
	if err := g.client.Post(ctx, contractsPath, in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

type statusChange struct {
	Estado contract.Estado `json:"estado"`
	Motivo string          `json:"motivo,omitempty"`
}

// ChangeStatus moves the contract to estado. Transition rules are enforced by the backend.
func (g *ContractGateway) ChangeStatus(ctx context.Context, id string, estado contract.Estado, motivo string) (*contract.Contract, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if !estado.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATE", "unknown contract state: "+string(estado))
	}
	var c contract.Contract
	if err := g.client.Patch(ctx, resource(contractsPath, id, "estado"), statusChange{Estado: estado, Motivo: motivo}, &c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

var _ contract.Gateway = (*ContractGateway)(nil)
