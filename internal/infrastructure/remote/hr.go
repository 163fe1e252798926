package remote

import (
	"context"
	"net/url"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
)

const (
	employeesPath        = "/api/rrhh/empleados"
	shiftsPath           = "/api/rrhh/turnos"
	attendanceConfigPath = "/api/rrhh/asistencia/config"
	overtimePath         = "/api/rrhh/horas-extra"
)

// HRGateway implements hr.Gateway.
type HRGateway struct {
	client *apiclient.Client
}

// NewHRGateway creates an HRGateway.
func NewHRGateway(client *apiclient.Client) *HRGateway {
	return &HRGateway{client: client}
}

func (g *HRGateway) ListEmployees(ctx context.Context, filter shared.Filter) (shared.Paginated[hr.Employee], error) {
	return getPage[hr.Employee](ctx, g.client, employeesPath, filter)
}

func (g *HRGateway) ListShifts(ctx context.Context) ([]hr.Shift, error) {
	items, _, err := getList[hr.Shift](ctx, g.client, shiftsPath, nil)
	return items, err
}

func (g *HRGateway) CreateShift(ctx context.Context, in hr.ShiftInput) (*hr.Shift, error) {
	var s hr.Shift
	if err := g.client.Post(ctx, shiftsPath, in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *HRGateway) UpdateShift(ctx context.Context, id string, in hr.ShiftInput) (*hr.Shift, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var s hr.Shift
	if err := g.client.Patch(ctx, resource(shiftsPath, id), in, &s); err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (g *HRGateway) DeleteShift(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return translate(g.client.Delete(ctx, resource(shiftsPath, id)))
}

func (g *HRGateway) GetAttendanceConfig(ctx context.Context) (*hr.AttendanceConfig, error) {
	var cfg hr.AttendanceConfig
	if err := g.client.Get(ctx, attendanceConfigPath, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (g *HRGateway) UpdateAttendanceConfig(ctx context.Context, cfg hr.AttendanceConfig) (*hr.AttendanceConfig, error) {
	// shifts are managed through their own endpoint
	cfg.Turnos = nil
	cfg.UpdatedAt = nil
	var out hr.AttendanceConfig
	if err := g.client.Put(ctx, attendanceConfigPath, cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *HRGateway) ListPendingOvertime(ctx context.Context) ([]hr.OvertimeRequest, error) {
	query := url.Values{"estado": {string(hr.OvertimePendiente)}}
	items, _, err := getList[hr.OvertimeRequest](ctx, g.client, overtimePath, query)
	return items, err
}

// DecideOvertime sends the whole selection in one request. A failure is
// returned as is; nothing is retried or split.
func (g *HRGateway) DecideOvertime(ctx context.Context, d hr.OvertimeDecision) (*hr.BatchResult, error) {
	if len(d.IDs) == 0 {
		return nil, shared.ErrEmptySelection
	}
	var res hr.BatchResult
	if err := g.client.Post(ctx, resource(overtimePath, "aprobar-lote"), d, &res); err != nil {
		return nil, err
	}
	if res.Procesadas == 0 && len(res.Fallidas) == 0 {
		res.Procesadas = len(d.IDs)
	}
	return &res, nil
}

var _ hr.Gateway = (*HRGateway)(nil)
