package hr

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"go.uber.org/zap"
)

// ScheduleService manages employees, shifts and the attendance settings
type ScheduleService struct {
	gateway hr.Gateway
	logger  *zap.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(gateway hr.Gateway, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{gateway: gateway, logger: logger}
}

// Employees lists staff for the directory page
func (s *ScheduleService) Employees(ctx context.Context, filter shared.Filter) (shared.Paginated[hr.Employee], error) {
	return s.gateway.ListEmployees(ctx, filter)
}

// Shifts lists shifts ordered by start time
func (s *ScheduleService) Shifts(ctx context.Context) ([]hr.Shift, error) {
	shifts, err := s.gateway.ListShifts(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(shifts, func(a, b hr.Shift) int {
		return strings.Compare(a.HoraInicio, b.HoraInicio)
	})
	return shifts, nil
}

// SaveShift creates the shift when id is empty, otherwise updates it
func (s *ScheduleService) SaveShift(ctx context.Context, id string, in hr.ShiftInput) (*hr.Shift, error) {
	in, err := normalizeShift(in)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return s.gateway.CreateShift(ctx, in)
	}
	return s.gateway.UpdateShift(ctx, id, in)
}

// DeleteShift removes a shift
func (s *ScheduleService) DeleteShift(ctx context.Context, id string) error {
	return s.gateway.DeleteShift(ctx, id)
}

// AttendanceConfig loads the attendance settings
func (s *ScheduleService) AttendanceConfig(ctx context.Context) (*hr.AttendanceConfig, error) {
	return s.gateway.GetAttendanceConfig(ctx)
}

// UpdateAttendanceConfig validates ranges before sending the settings
func (s *ScheduleService) UpdateAttendanceConfig(ctx context.Context, cfg hr.AttendanceConfig) (*hr.AttendanceConfig, error) {
	if cfg.ToleranciaMinutos < 0 || cfg.ToleranciaMinutos > 120 {
		return nil, shared.NewDomainError("INVALID_INPUT", "La tolerancia debe estar entre 0 y 120 minutos")
	}
	if cfg.HorasJornada <= 0 || cfg.HorasJornada > 24 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Las horas de jornada deben estar entre 1 y 24")
	}
	if cfg.DescansoMinutos < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "El descanso no puede ser negativo")
	}
	updated, err := s.gateway.UpdateAttendanceConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Attendance config updated",
		zap.Int("tolerancia_minutos", cfg.ToleranciaMinutos),
		zap.Float64("horas_jornada", cfg.HorasJornada))
	return updated, nil
}

// normalizeShift trims fields, upper-cases and dedups the days, and checks the times
func normalizeShift(in hr.ShiftInput) (hr.ShiftInput, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.Nombre == "" {
		return in, shared.NewDomainError("INVALID_INPUT", "El turno necesita un nombre")
	}
	for _, v := range []string{in.HoraInicio, in.HoraFin} {
		if _, err := time.Parse("15:04", v); err != nil {
			return in, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Hora inválida: %q", v))
		}
	}
	if in.HoraInicio == in.HoraFin {
		return in, shared.NewDomainError("INVALID_INPUT", "La hora de inicio y fin no pueden ser iguales")
	}

	days := make([]string, 0, len(in.Dias))
	for _, d := range in.Dias {
		d = strings.ToUpper(strings.TrimSpace(d))
		if !slices.Contains(hr.Weekdays, d) {
			return in, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Día inválido: %q", d))
		}
		if !slices.Contains(days, d) {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return in, shared.NewDomainError("INVALID_INPUT", "Selecciona al menos un día")
	}
	// keep the calendar order regardless of the submit order
	slices.SortFunc(days, func(a, b string) int {
		return slices.Index(hr.Weekdays, a) - slices.Index(hr.Weekdays, b)
	})
	in.Dias = days
	return in, nil
}
