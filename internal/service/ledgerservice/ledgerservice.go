package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/workerpool"
)

type Repo interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	AppendEntry(ctx context.Context, entry *domain.LedgerEntry) (int64, error)
	GetReservation(ctx context.Context, relatedID string) (*domain.Reservation, error)
	MarkKept(ctx context.Context, relatedID string) (bool, error)
	FindStaleReservations(ctx context.Context, olderThan time.Time, limit uint32) ([]domain.Reservation, error)
}

type Cache interface {
	Invalidate(ctx context.Context, userID string) error
}

type Pool interface {
	AddTask(ctx context.Context, task workerpool.Task) error
}

type Options struct {
	RetryAttempts  uint64
	RetryBackoff   time.Duration
	ReconcileBatch uint32
}

const (
	defaultRetryBackoff   = 100 * time.Millisecond
	defaultReconcileBatch = 500
)

type Service struct {
	repo  Repo
	cache Cache
	pool  Pool
	opts  Options
	now   func() time.Time

	inflight sync.Map
}

func New(repo Repo, cache Cache, pool Pool, opts Options) *Service {
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = defaultRetryBackoff
	}
	if opts.ReconcileBatch == 0 {
		opts.ReconcileBatch = defaultReconcileBatch
	}
	return &Service{
		repo:  repo,
		cache: cache,
		pool:  pool,
		opts:  opts,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ok is false with a nil error when the balance cannot cover amount.
func (s *Service) Debit(ctx context.Context, userID string, amount int64, reason, relatedID string) (int64, bool, error) {
	grant, err := s.Reserve(ctx, userID, amount, reason, relatedID)
	return grant.Balance, grant.Granted, err
}

func (s *Service) Reserve(ctx context.Context, userID string, amount int64, reason, relatedID string) (domain.Grant, error) {
	if err := validate(userID, amount); err != nil {
		return domain.Grant{}, err
	}
	if relatedID == "" {
		return domain.Grant{}, domain.ErrMissingRelatedID
	}

	balance, err := s.apply(ctx, userID, domain.EntryKindDebit, amount, reason, relatedID)
	switch {
	case err == nil:
		zap.L().Info("points debited",
			zap.String("userID", userID), zap.Int64("amount", amount),
			zap.String("reason", reason), zap.String("relatedID", relatedID), zap.Int64("balance", balance))
		return domain.Grant{Granted: true, Balance: balance}, nil
	case errors.Is(err, domain.ErrInsufficientBalance):
		zap.L().Info("debit rejected, insufficient balance",
			zap.String("userID", userID), zap.Int64("amount", amount), zap.Int64("balance", balance))
		return domain.Grant{Balance: balance}, nil
	case errors.Is(err, domain.ErrDuplicateEntry):
		if err := s.matchReplay(ctx, userID, amount, reason, relatedID); err != nil {
			return domain.Grant{Balance: balance}, err
		}
		zap.L().Info("debit already applied", zap.String("relatedID", relatedID))
		return domain.Grant{Granted: true, Replayed: true, Balance: balance}, nil
	case errors.Is(err, domain.ErrReservationMismatch):
		zap.L().Warn("debit reuses a job id held under another reason",
			zap.String("userID", userID), zap.String("reason", reason), zap.String("relatedID", relatedID))
		return domain.Grant{Balance: balance}, err
	default:
		zap.L().Error("debit failed", zap.String("userID", userID), zap.Error(err))
		return domain.Grant{}, err
	}
}

func (s *Service) matchReplay(ctx context.Context, userID string, amount int64, reason, relatedID string) error {
	res, err := s.Reservation(ctx, relatedID)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	if res.UserID != userID || res.Reason != reason || res.Amount != amount {
		zap.L().Warn("debit replay does not match the reservation",
			zap.String("userID", userID), zap.String("owner", res.UserID),
			zap.String("reason", reason), zap.String("reservedReason", res.Reason),
			zap.String("relatedID", relatedID))
		return domain.ErrReservationMismatch
	}
	return nil
}

func (s *Service) Credit(ctx context.Context, userID string, amount int64, reason, relatedID string) (int64, error) {
	if err := validate(userID, amount); err != nil {
		return 0, err
	}

	balance, err := s.apply(ctx, userID, domain.EntryKindCredit, amount, reason, relatedID)
	if err != nil && !errors.Is(err, domain.ErrDuplicateEntry) {
		zap.L().Error("credit failed", zap.String("userID", userID), zap.Error(err))
		return 0, err
	}
	if err != nil {
		zap.L().Info("credit already applied", zap.String("relatedID", relatedID), zap.String("reason", reason))
		return balance, nil
	}
	zap.L().Info("points credited",
		zap.String("userID", userID), zap.Int64("amount", amount),
		zap.String("reason", reason), zap.String("relatedID", relatedID), zap.Int64("balance", balance))
	return balance, nil
}

func (s *Service) Refund(ctx context.Context, userID string, amount int64, reason, relatedID string) (int64, error) {
	balance, _, err := s.refund(ctx, userID, amount, reason, relatedID)
	return balance, err
}

func (s *Service) refund(ctx context.Context, userID string, amount int64, reason, relatedID string) (int64, bool, error) {
	if err := validate(userID, amount); err != nil {
		return 0, false, err
	}
	if relatedID == "" {
		return 0, false, domain.ErrMissingRelatedID
	}

	balance, err := s.apply(ctx, userID, domain.EntryKindRefund, amount, reason, relatedID)
	switch {
	case err == nil:
		zap.L().Info("points refunded",
			zap.String("userID", userID), zap.Int64("amount", amount),
			zap.String("reason", reason), zap.String("relatedID", relatedID), zap.Int64("balance", balance))
		return balance, true, nil
	case errors.Is(err, domain.ErrDuplicateEntry):
		zap.L().Info("refund already applied", zap.String("relatedID", relatedID))
		return balance, false, nil
	default:
		zap.L().Error("refund failed", zap.String("userID", userID), zap.String("relatedID", relatedID), zap.Error(err))
		return 0, false, err
	}
}

func (s *Service) Keep(ctx context.Context, relatedID string) (bool, error) {
	if relatedID == "" {
		return false, domain.ErrMissingRelatedID
	}
	var kept bool
	err := s.withRetry(ctx, "keep reservation", func(ctx context.Context) error {
		var err error
		kept, err = s.repo.MarkKept(ctx, relatedID)
		return err
	})
	if err != nil {
		zap.L().Error("failed to keep reservation", zap.String("relatedID", relatedID), zap.Error(err))
		return false, err
	}
	return kept, nil
}

func (s *Service) Reservation(ctx context.Context, relatedID string) (*domain.Reservation, error) {
	if relatedID == "" {
		return nil, domain.ErrMissingRelatedID
	}
	var res *domain.Reservation
	err := s.withRetry(ctx, "get reservation", func(ctx context.Context) error {
		var err error
		res, err = s.repo.GetReservation(ctx, relatedID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Reconcile(ctx context.Context, timeout time.Duration) ([]string, error) {
	now := s.now()
	var stale []domain.Reservation
	err := s.withRetry(ctx, "find stale reservations", func(ctx context.Context) error {
		var err error
		stale, err = s.repo.FindStaleReservations(ctx, now.Add(-timeout), s.opts.ReconcileBatch)
		return err
	})
	if err != nil {
		zap.L().Error("failed to fetch stale reservations", zap.Error(err))
		return nil, err
	}

	var (
		mu    sync.Mutex
		users = make(map[string]struct{})
		g     errgroup.Group
	)

	for _, res := range stale {
		res := res
		if _, loaded := s.inflight.LoadOrStore(res.RelatedID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			done := make(chan error, 1)
			err := s.pool.AddTask(ctx, func() error {
				defer s.inflight.Delete(res.RelatedID)
				refunded, err := s.forceRefund(ctx, now, res)
				if refunded {
					mu.Lock()
					users[res.UserID] = struct{}{}
					mu.Unlock()
				}
				done <- err
				return err
			})
			if err != nil {
				s.inflight.Delete(res.RelatedID)
				return err
			}
			return <-done
		})
	}

	err = g.Wait()

	result := make([]string, 0, len(users))
	for userID := range users {
		result = append(result, userID)
	}
	sort.Strings(result)

	if err != nil {
		zap.L().Error("reconciliation finished with errors", zap.Int("refunded", len(result)), zap.Error(err))
		return result, err
	}
	if len(result) > 0 {
		zap.L().Info("reconciliation refunded reservations", zap.Strings("users", result))
	}
	return result, nil
}

func (s *Service) forceRefund(ctx context.Context, now time.Time, res domain.Reservation) (bool, error) {
	zap.L().Warn("reservation was never settled, forcing refund",
		zap.Error(domain.ErrAnomalyDetected),
		zap.String("relatedID", res.RelatedID),
		zap.String("userID", res.UserID),
		zap.Int64("amount", res.Amount),
		zap.String("reason", res.Reason),
		zap.Duration("age", now.Sub(res.CreatedAt)))

	_, refunded, err := s.refund(ctx, res.UserID, res.Amount, domain.ReasonReconcileTimeout, res.RelatedID)
	if err != nil {
		return false, fmt.Errorf("refund reservation %s: %w", res.RelatedID, err)
	}
	return refunded, nil
}

func (s *Service) apply(ctx context.Context, userID string, kind domain.EntryKind, amount int64, reason, relatedID string) (int64, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return 0, fmt.Errorf("generate entry id: %w", err)
	}
	entry := &domain.LedgerEntry{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		Amount:    amount,
		Reason:    reason,
		RelatedID: relatedID,
		CreatedAt: s.now(),
	}

	var balance int64
	err = s.withRetry(ctx, "append entry", func(ctx context.Context) error {
		var err error
		balance, err = s.repo.AppendEntry(ctx, entry)
		return err
	})
	if err == nil {
		s.invalidate(ctx, userID)
	}
	return balance, err
}

func (s *Service) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(s.opts.RetryAttempts, retry.NewExponential(s.opts.RetryBackoff))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if errors.Is(err, domain.ErrStorageUnavailable) {
			zap.L().Warn("storage unavailable", zap.String("op", op), zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		zap.L().Warn("failed to invalidate cached balance", zap.String("userID", userID), zap.Error(err))
	}
}

func validate(userID string, amount int64) error {
	if err := domain.ValidateUserID(userID); err != nil {
		return err
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}
