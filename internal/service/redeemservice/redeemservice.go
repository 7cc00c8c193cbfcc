package redeemservice

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/pkg/auth"
)

type CodeRepo interface {
	Create(ctx context.Context, codeHash string, value int64) (*domain.RedemptionCode, error)
	Consume(ctx context.Context, codeHash, userID string) (*domain.RedemptionCode, bool, error)
}

type Creditor interface {
	Credit(ctx context.Context, userID string, amount int64, reason, relatedID string) (int64, error)
}

type Hasher interface {
	HashCode(code string) string
}

var (
	ErrCodeNotFound    = errors.New("redemption code not found")
	ErrCodeAlreadyUsed = errors.New("redemption code already used")
	ErrInvalidCode     = errors.New("invalid redemption code")
)

const (
	codeLength     = 12
	codeAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	maxCodeLength  = 64
	createAttempts = 3
)

type Service struct {
	codes    CodeRepo
	creditor Creditor
	hasher   Hasher
}

func New(codes CodeRepo, creditor Creditor, hasher Hasher) *Service {
	return &Service{
		codes:    codes,
		creditor: creditor,
		hasher:   hasher,
	}
}

func (s *Service) Redeem(ctx context.Context, userID, code string) (domain.Redemption, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return domain.Redemption{}, err
	}
	normalized := auth.NormalizeCode(code)
	if normalized == "" || len(normalized) > maxCodeLength {
		return domain.Redemption{}, ErrInvalidCode
	}

	stored, fresh, err := s.codes.Consume(ctx, s.hasher.HashCode(normalized), userID)
	if err != nil {
		zap.L().Error("failed to consume redemption code", zap.String("userID", userID), zap.Error(err))
		return domain.Redemption{}, err
	}
	if stored == nil {
		return domain.Redemption{}, ErrCodeNotFound
	}
	if !fresh && stored.ConsumedBy != userID {
		zap.L().Info("redemption code used by another user", zap.String("userID", userID), zap.Int64("codeID", stored.ID))
		return domain.Redemption{}, ErrCodeAlreadyUsed
	}

	// credit is keyed by the code
	balance, err := s.creditor.Credit(ctx, userID, stored.Value, domain.RedeemReason(normalized), relatedID(stored.ID))
	if err != nil {
		return domain.Redemption{}, fmt.Errorf("credit code %d: %w", stored.ID, err)
	}

	zap.L().Info("redemption code applied",
		zap.String("userID", userID), zap.Int64("codeID", stored.ID), zap.Int64("value", stored.Value), zap.Bool("fresh", fresh))
	return domain.Redemption{
		CodeID:          stored.ID,
		Value:           stored.Value,
		Balance:         balance,
		AlreadyRedeemed: !fresh,
	}, nil
}

func (s *Service) CreateCode(ctx context.Context, value int64) (string, *domain.RedemptionCode, error) {
	if value <= 0 {
		return "", nil, domain.ErrInvalidAmount
	}

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		code, err := generateCode()
		if err != nil {
			return "", nil, err
		}
		stored, err := s.codes.Create(ctx, s.hasher.HashCode(code), value)
		if err == nil {
			zap.L().Info("redemption code created", zap.Int64("codeID", stored.ID), zap.Int64("value", value))
			return code, stored, nil
		}
		if !errors.Is(err, domain.ErrDuplicateEntry) {
			return "", nil, err
		}
		lastErr = err
	}
	return "", nil, lastErr
}

func relatedID(codeID int64) string {
	return "code-" + strconv.FormatInt(codeID, 10)
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
