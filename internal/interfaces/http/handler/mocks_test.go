package handler

import (
	"context"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/identity"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/traffic"
	"github.com/stretchr/testify/mock"
)

// MockAuthGateway is a mock implementation of identity.AuthGateway
type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(ctx context.Context, creds identity.Credentials) (*identity.LoginResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResult), args.Error(1)
}

func (m *MockAuthGateway) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAuthGateway) Me(ctx context.Context) (*identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// MockModeloGateway is a mock implementation of modelo.Gateway
type MockModeloGateway struct {
	mock.Mock
}

func (m *MockModeloGateway) List(ctx context.Context, filter shared.Filter) (shared.Paginated[modelo.Modelo], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[modelo.Modelo]), args.Error(1)
}

func (m *MockModeloGateway) Get(ctx context.Context, id string) (*modelo.Modelo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*modelo.Modelo), args.Error(1)
}

func (m *MockModeloGateway) Create(ctx context.Context, in modelo.Input) (*modelo.Modelo, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*modelo.Modelo), args.Error(1)
}

func (m *MockModeloGateway) Update(ctx context.Context, id string, in modelo.Input) (*modelo.Modelo, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*modelo.Modelo), args.Error(1)
}

func (m *MockModeloGateway) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockFinanceGateway is a mock implementation of finance.Gateway
type MockFinanceGateway struct {
	mock.Mock
}

func (m *MockFinanceGateway) ListPeriods(ctx context.Context, anio int) ([]finance.Period, error) {
	args := m.Called(ctx, anio)
	return args.Get(0).([]finance.Period), args.Error(1)
}

func (m *MockFinanceGateway) ConsolidatePeriod(ctx context.Context, id string) (*finance.Period, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Period), args.Error(1)
}

func (m *MockFinanceGateway) ListFixedExpenses(ctx context.Context, p finance.Periodo) ([]finance.FixedExpense, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]finance.FixedExpense), args.Error(1)
}

func (m *MockFinanceGateway) GetFixedExpense(ctx context.Context, id string) (*finance.FixedExpense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FixedExpense), args.Error(1)
}

func (m *MockFinanceGateway) CreateFixedExpense(ctx context.Context, in finance.FixedExpenseInput) (*finance.FixedExpense, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FixedExpense), args.Error(1)
}

func (m *MockFinanceGateway) UpdateFixedExpense(ctx context.Context, id string, in finance.FixedExpenseInput) (*finance.FixedExpense, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FixedExpense), args.Error(1)
}

func (m *MockFinanceGateway) DeleteFixedExpense(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFinanceGateway) FixedExpenseSummary(ctx context.Context, p finance.Periodo) (*finance.FixedExpenseSummary, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FixedExpenseSummary), args.Error(1)
}

// MockSalesGateway is a mock implementation of sales.Gateway
type MockSalesGateway struct {
	mock.Mock
}

func (m *MockSalesGateway) ListCommissions(ctx context.Context, filter sales.CommissionFilter) ([]sales.Commission, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Commission), args.Error(1)
}

func (m *MockSalesGateway) GenerateCommissions(ctx context.Context, req sales.GenerateRequest) (*sales.GenerateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.GenerateResult), args.Error(1)
}

func (m *MockSalesGateway) ApproveCommissions(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockSalesGateway) PayCommissions(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockSalesGateway) ListGoals(ctx context.Context, filter shared.Filter) ([]sales.Goal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Goal), args.Error(1)
}

func (m *MockSalesGateway) GetGoal(ctx context.Context, id string) (*sales.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Goal), args.Error(1)
}

func (m *MockSalesGateway) CreateGoal(ctx context.Context, in sales.GoalInput) (*sales.Goal, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Goal), args.Error(1)
}

func (m *MockSalesGateway) UpdateGoal(ctx context.Context, id string, in sales.GoalInput) (*sales.Goal, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Goal), args.Error(1)
}

func (m *MockSalesGateway) DeleteGoal(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSalesGateway) ListTeams(ctx context.Context) ([]sales.ChatterTeam, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sales.ChatterTeam), args.Error(1)
}

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
	return m.Called(ctx, id).Error(0)
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

// MockTrafficGateway is a mock implementation of traffic.Gateway
type MockTrafficGateway struct {
	mock.Mock
}

func (m *MockTrafficGateway) List(ctx context.Context, filter shared.Filter) ([]traffic.Campaign, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]traffic.Campaign), args.Error(1)
}

func (m *MockTrafficGateway) Get(ctx context.Context, id string) (*traffic.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*traffic.Campaign), args.Error(1)
}

func (m *MockTrafficGateway) Create(ctx context.Context, in traffic.Input) (*traffic.Campaign, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*traffic.Campaign), args.Error(1)
}

func (m *MockTrafficGateway) Update(ctx context.Context, id string, in traffic.Input) (*traffic.Campaign, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*traffic.Campaign), args.Error(1)
}

func (m *MockTrafficGateway) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockContractGateway is a mock implementation of contract.Gateway
type MockContractGateway struct {
	mock.Mock
}

func (m *MockContractGateway) List(ctx context.Context, filter shared.Filter) (shared.Paginated[contract.Contract], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[contract.Contract]), args.Error(1)
}

func (m *MockContractGateway) Get(ctx context.Context, id string) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractGateway) Create(ctx context.Context, in contract.Input) (*contract.Contract, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractGateway) ChangeStatus(ctx context.Context, id string, estado contract.Estado, motivo string) (*contract.Contract, error) {
	args := m.Called(ctx, id, estado, motivo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}
