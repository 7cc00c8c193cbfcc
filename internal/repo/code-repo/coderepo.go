package coderepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, codeHash string, value int64) (*domain.RedemptionCode, error) {
	query := `
		INSERT INTO redemption_codes (code_hash, value)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	code := &domain.RedemptionCode{CodeHash: codeHash, Value: value}
	err := r.db.QueryRow(ctx, query, codeHash, value).Scan(&code.ID, &code.CreatedAt)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateEntry
		}
		zap.L().Error("can't save redemption code", zap.Error(err))
		return nil, pg.WrapError(err)
	}
	return code, nil
}

func (r *Repository) Consume(ctx context.Context, codeHash, userID string) (*domain.RedemptionCode, bool, error) {
	update := `
		UPDATE redemption_codes
		SET consumed_by = $2, consumed_at = now()
		WHERE code_hash = $1 AND consumed_at IS NULL
		RETURNING id, code_hash, value, created_at, consumed_by, consumed_at
	`
	code, err := r.scan(r.db.QueryRow(ctx, update, codeHash, userID))
	if err == nil {
		return code, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		zap.L().Error("can't consume redemption code", zap.Error(err))
		return nil, false, pg.WrapError(err)
	}

	query := `
		SELECT id, code_hash, value, created_at, COALESCE(consumed_by, ''), consumed_at
		FROM redemption_codes
		WHERE code_hash = $1
	`
	code, err = r.scan(r.db.QueryRow(ctx, query, codeHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		zap.L().Error("can't find redemption code", zap.Error(err))
		return nil, false, pg.WrapError(err)
	}
	return code, false, nil
}

func (r *Repository) scan(row pgx.Row) (*domain.RedemptionCode, error) {
	var code domain.RedemptionCode
	err := row.Scan(&code.ID, &code.CodeHash, &code.Value, &code.CreatedAt, &code.ConsumedBy, &code.ConsumedAt)
	if err != nil {
		return nil, err
	}
	return &code, nil
}
