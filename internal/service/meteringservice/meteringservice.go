package meteringservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/domain"
)

type Engine interface {
	Reserve(ctx context.Context, userID string, amount int64, reason, relatedID string) (domain.Grant, error)
	Refund(ctx context.Context, userID string, amount int64, reason, relatedID string) (int64, error)
	Keep(ctx context.Context, relatedID string) (bool, error)
	Reservation(ctx context.Context, relatedID string) (*domain.Reservation, error)
}

const defaultSettleTimeout = 5 * time.Second

type Service struct {
	engine        Engine
	settleTimeout time.Duration
}

func New(engine Engine, settleTimeout time.Duration) *Service {
	if settleTimeout <= 0 {
		settleTimeout = defaultSettleTimeout
	}
	return &Service{
		engine:        engine,
		settleTimeout: settleTimeout,
	}
}

func (s *Service) Reserve(ctx context.Context, userID string, cost int64, toolReason, jobID string) (domain.Grant, error) {
	return s.engine.Reserve(ctx, userID, cost, toolReason, jobID)
}

func (s *Service) Settle(ctx context.Context, jobID string, outcome domain.Outcome) (domain.Settlement, error) {
	if outcome != domain.OutcomeKept && outcome != domain.OutcomeFailed {
		return domain.Settlement{}, domain.ErrInvalidOutcome
	}

	res, err := s.engine.Reservation(ctx, jobID)
	if err != nil {
		return domain.Settlement{}, err
	}
	if res == nil {
		return domain.Settlement{}, domain.ErrReservationNotFound
	}

	settlement := domain.Settlement{JobID: jobID, Outcome: outcome}
	if res.Status != domain.ReservationReserved {
		settlement.AlreadySettled = true
		settlement.Refunded = res.Status == domain.ReservationRefunded
		if settlement.Refunded {
			settlement.Outcome = domain.OutcomeFailed
		} else {
			settlement.Outcome = domain.OutcomeKept
		}
		zap.L().Info("reservation already settled",
			zap.String("jobID", jobID), zap.String("status", string(res.Status)), zap.String("requested", string(outcome)))
		return settlement, nil
	}

	switch outcome {
	case domain.OutcomeFailed:
		balance, err := s.engine.Refund(ctx, res.UserID, res.Amount, domain.ReasonRefundFailure, jobID)
		if err != nil {
			return domain.Settlement{}, fmt.Errorf("refund job %s: %w", jobID, err)
		}
		settlement.Refunded = true
		settlement.Balance = balance
	case domain.OutcomeKept:
		kept, err := s.engine.Keep(ctx, jobID)
		if err != nil {
			return domain.Settlement{}, fmt.Errorf("keep job %s: %w", jobID, err)
		}
		settlement.AlreadySettled = !kept
	}
	return settlement, nil
}

// Settlement runs on a context detached from ctx.
func (s *Service) Run(ctx context.Context, userID string, cost int64, toolReason, jobID string, work func(ctx context.Context) error) (domain.Settlement, error) {
	grant, err := s.Reserve(ctx, userID, cost, toolReason, jobID)
	if err != nil {
		return domain.Settlement{}, err
	}
	if !grant.Granted {
		return domain.Settlement{JobID: jobID, Balance: grant.Balance}, domain.ErrInsufficientBalance
	}
	if grant.Replayed {
		return s.replayed(ctx, userID, jobID, grant.Balance)
	}

	workErr := work(ctx)
	outcome := domain.OutcomeKept
	if workErr != nil {
		outcome = domain.OutcomeFailed
		zap.L().Warn("paid work failed, refunding",
			zap.String("userID", userID), zap.String("jobID", jobID), zap.Error(workErr))
	}

	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.settleTimeout)
	defer cancel()

	settlement, err := s.Settle(settleCtx, jobID, outcome)
	if err != nil {
		zap.L().Error("failed to settle reservation, leaving it to reconciliation",
			zap.String("jobID", jobID), zap.String("outcome", string(outcome)), zap.Error(err))
		return domain.Settlement{JobID: jobID, Outcome: outcome, Balance: grant.Balance}, err
	}
	if outcome == domain.OutcomeKept {
		settlement.Balance = grant.Balance
	}
	return settlement, workErr
}

func (s *Service) replayed(ctx context.Context, userID, jobID string, balance int64) (domain.Settlement, error) {
	settlement := domain.Settlement{JobID: jobID, Balance: balance}
	res, err := s.engine.Reservation(ctx, jobID)
	if err != nil {
		return settlement, err
	}
	if res != nil && res.Status != domain.ReservationReserved {
		settlement.AlreadySettled = true
		settlement.Refunded = res.Status == domain.ReservationRefunded
		settlement.Outcome = domain.OutcomeKept
		if settlement.Refunded {
			settlement.Outcome = domain.OutcomeFailed
		}
	}
	zap.L().Warn("job already submitted, not running it again",
		zap.String("userID", userID), zap.String("jobID", jobID), zap.Bool("settled", settlement.AlreadySettled))
	return settlement, domain.ErrDuplicateJob
}
