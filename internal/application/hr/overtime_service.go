package hr

import (
	"context"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/hr"
	"go.uber.org/zap"
)

// OvertimeService drives the batch approval modal
type OvertimeService struct {
	gateway hr.Gateway
	logger  *zap.Logger
}

// NewOvertimeService creates a new overtime approval service
func NewOvertimeService(gateway hr.Gateway, logger *zap.Logger) *OvertimeService {
	return &OvertimeService{gateway: gateway, logger: logger}
}

// Pending loads the requests awaiting a decision
func (s *OvertimeService) Pending(ctx context.Context) ([]hr.OvertimeRequest, error) {
	return s.gateway.ListPendingOvertime(ctx)
}

// Decide approves or rejects the selected requests in one backend call.
// An empty selection is rejected before any request is made. The call is
// not retried; its single error is returned as-is.
func (s *OvertimeService) Decide(ctx context.Context, ids []string, approve bool, comment string) (*hr.BatchResult, error) {
	decision, err := hr.NewOvertimeDecision(ids, approve, comment)
	if err != nil {
		return nil, err
	}

	res, err := s.gateway.DecideOvertime(ctx, decision)
	if err != nil {
		s.logger.Warn("Overtime batch decision failed",
			zap.Int("count", len(decision.IDs)),
			zap.String("estado", string(decision.Estado)),
			zap.Error(err))
		return nil, err
	}
	if res.Procesadas == 0 && len(res.Fallidas) == 0 {
		res.Procesadas = len(decision.IDs)
	}

	s.logger.Info("Overtime batch decided",
		zap.Int("procesadas", res.Procesadas),
		zap.Int("fallidas", len(res.Fallidas)),
		zap.String("estado", string(decision.Estado)))
	return res, nil
}
