package balanceservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/domain"
)

type Repo interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error)
	Audit(ctx context.Context, userID string) (*domain.AuditReport, error)
}

type Cache interface {
	Get(ctx context.Context, userID string) (int64, bool, error)
	LastKnown(ctx context.Context, userID string) (int64, bool, error)
	Set(ctx context.Context, userID string, balance int64) error
}

// Reads may lag the ledger by the cache TTL.
type Service struct {
	repo  Repo
	cache Cache
}

func New(repo Repo, cache Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) PeekBalance(ctx context.Context, userID string) (int64, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return 0, err
	}

	balance, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		zap.L().Warn("balance cache unavailable, reading store", zap.String("userID", userID), zap.Error(err))
	} else if hit {
		return balance, nil
	}

	balance, err = s.repo.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			if stale, ok := s.lastKnown(ctx, userID); ok {
				zap.L().Warn("serving stale balance", zap.String("userID", userID), zap.Int64("balance", stale), zap.Error(err))
				return stale, nil
			}
		}
		zap.L().Error("failed to get balance", zap.String("userID", userID), zap.Error(err))
		return 0, err
	}

	if err := s.cache.Set(ctx, userID, balance); err != nil {
		zap.L().Warn("failed to cache balance", zap.String("userID", userID), zap.Error(err))
	}
	return balance, nil
}

func (s *Service) lastKnown(ctx context.Context, userID string) (int64, bool) {
	balance, ok, err := s.cache.LastKnown(ctx, userID)
	if err != nil {
		zap.L().Warn("failed to read last known balance", zap.String("userID", userID), zap.Error(err))
		return 0, false
	}
	return balance, ok
}

func (s *Service) History(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	if err := domain.ValidateUserID(filter.UserID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.String("userID", filter.UserID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

func (s *Service) Audit(ctx context.Context, userID string) (*domain.AuditReport, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	report, err := s.repo.Audit(ctx, userID)
	if err != nil {
		zap.L().Error("failed to audit ledger", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	if !report.Consistent {
		zap.L().Error("ledger out of balance",
			zap.Error(domain.ErrAnomalyDetected),
			zap.String("userID", userID),
			zap.Int64("balance", report.Balance),
			zap.Int64("entriesSum", report.EntriesSum))
	}
	return report, nil
}
