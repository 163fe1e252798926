package hr

import (
	"context"
	"errors"
	"testing"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockHRGateway is a mock implementation of hr.Gateway
type MockHRGateway struct {
	mock.Mock
}

func (m *MockHRGateway) ListEmployees(ctx context.Context, filter shared.Filter) (shared.Paginated[hr.Employee], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[hr.Employee]), args.Error(1)
}

func (m *MockHRGateway) ListShifts(ctx context.Context) ([]hr.Shift, error) {
	args := m.Called(ctx)
	return args.Get(0).([]hr.Shift), args.Error(1)
}

func (m *MockHRGateway) CreateShift(ctx context.Context, in hr.ShiftInput) (*hr.Shift, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Shift), args.Error(1)
}

func (m *MockHRGateway) UpdateShift(ctx context.Context, id string, in hr.ShiftInput) (*hr.Shift, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.Shift), args.Error(1)
}

func (m *MockHRGateway) DeleteShift(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHRGateway) GetAttendanceConfig(ctx context.Context) (*hr.AttendanceConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.AttendanceConfig), args.Error(1)
}

func (m *MockHRGateway) UpdateAttendanceConfig(ctx context.Context, cfg hr.AttendanceConfig) (*hr.AttendanceConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.AttendanceConfig), args.Error(1)
}

func (m *MockHRGateway) ListPendingOvertime(ctx context.Context) ([]hr.OvertimeRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]hr.OvertimeRequest), args.Error(1)
}

func (m *MockHRGateway) DecideOvertime(ctx context.Context, d hr.OvertimeDecision) (*hr.BatchResult, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hr.BatchResult), args.Error(1)
}

func TestOvertimeService_Decide(t *testing.T) {
	t.Run("submits one batch with every selected id", func(t *testing.T) {
		gw := new(MockHRGateway)
		svc := NewOvertimeService(gw, zap.NewNop())
		want := hr.OvertimeDecision{IDs: []string{"a", "b", "c"}, Estado: hr.OvertimeAprobada, Comentario: "ok"}
		gw.On("DecideOvertime", mock.Anything, want).Return(&hr.BatchResult{}, nil).Once()

		res, err := svc.Decide(context.Background(), []string{"a", "b", "a", " c ", ""}, true, " ok ")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Procesadas)
		gw.AssertNumberOfCalls(t, "DecideOvertime", 1)
	})

	t.Run("empty selection is rejected locally", func(t *testing.T) {
		gw := new(MockHRGateway)
		svc := NewOvertimeService(gw, zap.NewNop())

		_, err := svc.Decide(context.Background(), []string{" ", ""}, false, "")
		assert.ErrorIs(t, err, shared.ErrEmptySelection)
		gw.AssertNotCalled(t, "DecideOvertime", mock.Anything, mock.Anything)
	})

	t.Run("backend error is surfaced without retry", func(t *testing.T) {
		gw := new(MockHRGateway)
		svc := NewOvertimeService(gw, zap.NewNop())
		boom := errors.New("lote rechazado")
		gw.On("DecideOvertime", mock.Anything, mock.Anything).Return(nil, boom)

		_, err := svc.Decide(context.Background(), []string{"a"}, false, "")
		assert.ErrorIs(t, err, boom)
		gw.AssertNumberOfCalls(t, "DecideOvertime", 1)
	})

	t.Run("rejection carries RECHAZADA", func(t *testing.T) {
		gw := new(MockHRGateway)
		svc := NewOvertimeService(gw, zap.NewNop())
		gw.On("DecideOvertime", mock.Anything, mock.MatchedBy(func(d hr.OvertimeDecision) bool {
			return d.Estado == hr.OvertimeRechazada
		})).Return(&hr.BatchResult{Procesadas: 1}, nil)

		res, err := svc.Decide(context.Background(), []string{"a"}, false, "")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Procesadas)
	})
}

func TestScheduleService_SaveShift(t *testing.T) {
	gw := new(MockHRGateway)
	svc := NewScheduleService(gw, zap.NewNop())

	expected := hr.ShiftInput{Nombre: "Noche", HoraInicio: "22:00", HoraFin: "06:00", Dias: []string{"LUNES", "MIERCOLES"}, Activo: true}
	gw.On("CreateShift", mock.Anything, expected).Return(&hr.Shift{ID: "s1"}, nil)
	gw.On("UpdateShift", mock.Anything, "s1", expected).Return(&hr.Shift{ID: "s1"}, nil)

	in := hr.ShiftInput{Nombre: " Noche ", HoraInicio: "22:00", HoraFin: "06:00", Dias: []string{"miercoles", "LUNES", "lunes"}, Activo: true}
	created, err := svc.SaveShift(context.Background(), "", in)
	require.NoError(t, err)
	assert.Equal(t, "s1", created.ID)

	_, err = svc.SaveShift(context.Background(), "s1", in)
	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestScheduleService_SaveShift_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   hr.ShiftInput
	}{
		{"missing name", hr.ShiftInput{HoraInicio: "08:00", HoraFin: "16:00", Dias: []string{"LUNES"}}},
		{"bad time", hr.ShiftInput{Nombre: "A", HoraInicio: "25:00", HoraFin: "16:00", Dias: []string{"LUNES"}}},
		{"same start and end", hr.ShiftInput{Nombre: "A", HoraInicio: "08:00", HoraFin: "08:00", Dias: []string{"LUNES"}}},
		{"unknown day", hr.ShiftInput{Nombre: "A", HoraInicio: "08:00", HoraFin: "16:00", Dias: []string{"FUNDAY"}}},
		{"no days", hr.ShiftInput{Nombre: "A", HoraInicio: "08:00", HoraFin: "16:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(MockHRGateway)
			svc := NewScheduleService(gw, zap.NewNop())
			_, err := svc.SaveShift(context.Background(), "", tt.in)

			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "INVALID_INPUT", de.Code)
			gw.AssertNotCalled(t, "CreateShift", mock.Anything, mock.Anything)
		})
	}
}

func TestScheduleService_Shifts_SortedByStart(t *testing.T) {
	gw := new(MockHRGateway)
	svc := NewScheduleService(gw, zap.NewNop())
	gw.On("ListShifts", mock.Anything).Return([]hr.Shift{{ID: "n", HoraInicio: "22:00"}, {ID: "m", HoraInicio: "06:00"}}, nil)

	shifts, err := svc.Shifts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m", shifts[0].ID)
}

func TestScheduleService_UpdateAttendanceConfig(t *testing.T) {
	gw := new(MockHRGateway)
	svc := NewScheduleService(gw, zap.NewNop())

	_, err := svc.UpdateAttendanceConfig(context.Background(), hr.AttendanceConfig{ToleranciaMinutos: -1, HorasJornada: 8})
	assert.Error(t, err)

	cfg := hr.AttendanceConfig{ToleranciaMinutos: 10, HorasJornada: 8}
	gw.On("UpdateAttendanceConfig", mock.Anything, cfg).Return(&cfg, nil)
	got, err := svc.UpdateAttendanceConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 10, got.ToleranciaMinutos)
}
