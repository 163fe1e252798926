package hr

import (
	"context"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OvertimeTipo classifies extra hours
type OvertimeTipo string

const (
	OvertimeDiurna   OvertimeTipo = "DIURNA"
	OvertimeNocturna OvertimeTipo = "NOCTURNA"
	OvertimeFestiva  OvertimeTipo = "FESTIVA"
)

// DisplayName returns a human-readable name for the type
func (t OvertimeTipo) DisplayName() string {
	switch t {
	case OvertimeDiurna:
		return "Diurna"
	case OvertimeNocturna:
		return "Nocturna"
	case OvertimeFestiva:
		return "Dominical/Festiva"
	default:
		return string(t)
	}
}

// OvertimeEstado is the approval state of an overtime request
type OvertimeEstado string

const (
	OvertimePendiente OvertimeEstado = "PENDIENTE"
	OvertimeAprobada  OvertimeEstado = "APROBADA"
	OvertimeRechazada OvertimeEstado = "RECHAZADA"
)

// OvertimeRequest is extra time reported by an employee awaiting approval
type OvertimeRequest struct {
	ID             string          `json:"_id"`
	EmpleadoID     string          `json:"empleadoId"`
	EmpleadoNombre string          `json:"empleadoNombre"`
	Fecha          time.Time       `json:"fecha"`
	Horas          decimal.Decimal `json:"horas"`
	Tipo           OvertimeTipo    `json:"tipo"`
	Motivo         string          `json:"motivo,omitempty"`
	Estado         OvertimeEstado  `json:"estado"`
}

// OvertimeDecision is one batched approval or rejection
type OvertimeDecision struct {
	IDs        []string       `json:"ids"`
	Estado     OvertimeEstado `json:"estado"`
	Comentario string         `json:"comentario,omitempty"`
}

// NewOvertimeDecision validates a selection. Blank and repeated ids are dropped,
// keeping first-seen order; an empty selection is rejected.
func NewOvertimeDecision(ids []string, approve bool, comentario string) (OvertimeDecision, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return OvertimeDecision{}, shared.ErrEmptySelection
	}

	estado := OvertimeRechazada
	if approve {
		estado = OvertimeAprobada
	}
	return OvertimeDecision{IDs: unique, Estado: estado, Comentario: strings.TrimSpace(comentario)}, nil
}

// BatchResult is the backend answer to a batched decision
type BatchResult struct {
	Procesadas int      `json:"procesadas"`
	Fallidas   []string `json:"fallidas,omitempty"`
}

// Gateway reads and mutates HR data on the remote API
type Gateway interface {
	ListEmployees(ctx context.Context, filter shared.Filter) (shared.Paginated[Employee], error)

	ListShifts(ctx context.Context) ([]Shift, error)
	CreateShift(ctx context.Context, in ShiftInput) (*Shift, error)
	UpdateShift(ctx context.Context, id string, in ShiftInput) (*Shift, error)
	DeleteShift(ctx context.Context, id string) error

	GetAttendanceConfig(ctx context.Context) (*AttendanceConfig, error)
	UpdateAttendanceConfig(ctx context.Context, cfg AttendanceConfig) (*AttendanceConfig, error)

	ListPendingOvertime(ctx context.Context) ([]OvertimeRequest, error)
	DecideOvertime(ctx context.Context, d OvertimeDecision) (*BatchResult, error)
}
