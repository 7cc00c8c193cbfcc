package ledgerrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/pg"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type Repository struct {
	db             pg.Database
	txManager      pg.TXManager
	defaultBalance int64
	now            func() time.Time
}

func New(db pg.Database, txManager pg.TXManager, defaultBalance int64) *Repository {
	return &Repository{
		db:             db,
		txManager:      txManager,
		defaultBalance: defaultBalance,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (r *Repository) GetBalance(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT balance
		FROM accounts
		WHERE user_id = $1
	`
	var balance int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		zap.L().Error("failed to get balance", zap.String("userID", userID), zap.Error(err))
		return 0, pg.WrapError(err)
	}

	err = r.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		balance, err = r.lockAccount(ctx, userID)
		return err
	})
	if err != nil {
		return 0, pg.WrapError(err)
	}
	return balance, nil
}

// AppendEntry applies the entry and the balance change in one transaction.
// On ErrDuplicateEntry and ErrInsufficientBalance the returned balance is the
// balance observed under the row lock.
func (r *Repository) AppendEntry(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	var balance int64
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		current, err := r.lockAccount(ctx, entry.UserID)
		if err != nil {
			return err
		}
		balance = current

		inserted, err := r.insertEntry(ctx, entry)
		if err != nil {
			return err
		}
		if !inserted {
			return domain.ErrDuplicateEntry
		}

		switch entry.Kind {
		case domain.EntryKindDebit:
			if current < entry.Amount {
				return domain.ErrInsufficientBalance
			}
			if err := r.openReservation(ctx, entry); err != nil {
				return err
			}
		case domain.EntryKindRefund:
			if err := r.closeReservation(ctx, entry); err != nil {
				return err
			}
		}

		balance, err = r.applyBalance(ctx, entry.UserID, entry.Effect())
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) ||
			errors.Is(err, domain.ErrInsufficientBalance) ||
			errors.Is(err, domain.ErrReservationMismatch) {
			return balance, err
		}
		return 0, pg.WrapError(err)
	}
	return balance, nil
}

func (r *Repository) GetReservation(ctx context.Context, relatedID string) (*domain.Reservation, error) {
	query := `
		SELECT related_id, user_id, amount, reason, status, created_at, settled_at
		FROM reservations
		WHERE related_id = $1
	`
	var res domain.Reservation
	err := r.db.QueryRow(ctx, query, relatedID).Scan(
		&res.RelatedID, &res.UserID, &res.Amount, &res.Reason, &res.Status, &res.CreatedAt, &res.SettledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get reservation", zap.String("relatedID", relatedID), zap.Error(err))
		return nil, pg.WrapError(err)
	}
	return &res, nil
}

func (r *Repository) MarkKept(ctx context.Context, relatedID string) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'KEPT', settled_at = $2
		WHERE related_id = $1 AND status = 'RESERVED'
	`
	tag, err := r.db.Exec(ctx, query, relatedID, r.now())
	if err != nil {
		zap.L().Error("failed to mark reservation kept", zap.String("relatedID", relatedID), zap.Error(err))
		return false, pg.WrapError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) FindStaleReservations(ctx context.Context, olderThan time.Time, limit uint32) ([]domain.Reservation, error) {
	query := `
		SELECT related_id, user_id, amount, reason, status, created_at, settled_at
		FROM reservations
		WHERE status = 'RESERVED' AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, olderThan, int(limit))
	if err != nil {
		zap.L().Error("failed to fetch stale reservations", zap.Error(err))
		return nil, pg.WrapError(err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		err := rows.Scan(&res.RelatedID, &res.UserID, &res.Amount, &res.Reason, &res.Status, &res.CreatedAt, &res.SettledAt)
		if err != nil {
			zap.L().Error("failed to scan reservation row", zap.Error(err))
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.WrapError(err)
	}
	return reservations, nil
}

func (r *Repository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	add("user_id = $%d", filter.UserID)
	if filter.Kind != "" {
		add("kind = $%d", string(filter.Kind))
	}
	if !filter.From.IsZero() {
		add("created_at >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("created_at < $%d", filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT entry_id, user_id, kind, amount, reason, COALESCE(related_id, ''), created_at
		FROM ledger_entries
		WHERE %s
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conds, " AND "), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, pg.WrapError(err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.Reason, &e.RelatedID, &e.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, pg.WrapError(err)
	}
	return entries, nil
}

// Audit compares the stored balance with the sum of the user's entries in a
// single statement so both sides come from the same snapshot.
func (r *Repository) Audit(ctx context.Context, userID string) (*domain.AuditReport, error) {
	query := `
		SELECT a.balance,
			COALESCE(SUM(CASE WHEN e.kind = 'DEBIT' THEN -e.amount ELSE e.amount END), 0)
		FROM accounts a
		LEFT JOIN ledger_entries e ON e.user_id = a.user_id
		WHERE a.user_id = $1
		GROUP BY a.balance
	`
	report := &domain.AuditReport{UserID: userID}
	err := r.db.QueryRow(ctx, query, userID).Scan(&report.Balance, &report.EntriesSum)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		zap.L().Error("failed to audit account", zap.String("userID", userID), zap.Error(err))
		return nil, pg.WrapError(err)
	}
	report.Consistent = report.Balance == report.EntriesSum
	return report, nil
}

func (r *Repository) lockAccount(ctx context.Context, userID string) (int64, error) {
	insert := `
		INSERT INTO accounts (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, insert, userID, r.defaultBalance)
	if err != nil {
		zap.L().Error("failed to create account", zap.String("userID", userID), zap.Error(err))
		return 0, err
	}
	if tag.RowsAffected() == 1 && r.defaultBalance > 0 {
		id, err := uuid.NewV7()
		if err != nil {
			return 0, err
		}
		bonus := &domain.LedgerEntry{
			ID:        id,
			UserID:    userID,
			Kind:      domain.EntryKindCredit,
			Amount:    r.defaultBalance,
			Reason:    domain.ReasonSignupBonus,
			RelatedID: domain.SignupRelatedID(userID),
			CreatedAt: r.now(),
		}
		if _, err := r.insertEntry(ctx, bonus); err != nil {
			return 0, err
		}
		zap.L().Info("account created", zap.String("userID", userID), zap.Int64("balance", r.defaultBalance))
	}

	query := `
		SELECT balance
		FROM accounts
		WHERE user_id = $1
		FOR UPDATE
	`
	var balance int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		zap.L().Error("failed to lock account", zap.String("userID", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (r *Repository) insertEntry(ctx context.Context, entry *domain.LedgerEntry) (bool, error) {
	query := `
		INSERT INTO ledger_entries (entry_id, user_id, kind, amount, reason, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		ON CONFLICT DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query,
		entry.ID, entry.UserID, string(entry.Kind), entry.Amount, entry.Reason, entry.RelatedID, entry.CreatedAt,
	)
	if err != nil {
		zap.L().Error("failed to insert ledger entry", zap.String("userID", entry.UserID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) openReservation(ctx context.Context, entry *domain.LedgerEntry) error {
	if entry.RelatedID == "" {
		return nil
	}
	query := `
		INSERT INTO reservations (related_id, user_id, amount, reason, status, created_at)
		VALUES ($1, $2, $3, $4, 'RESERVED', $5)
		ON CONFLICT (related_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, entry.RelatedID, entry.UserID, entry.Amount, entry.Reason, entry.CreatedAt)
	if err != nil {
		zap.L().Error("failed to open reservation", zap.String("relatedID", entry.RelatedID), zap.Error(err))
		return err
	}
	// The entry itself was new, so the job id is already held under another reason.
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationMismatch
	}
	return nil
}

func (r *Repository) closeReservation(ctx context.Context, entry *domain.LedgerEntry) error {
	if entry.RelatedID == "" {
		return nil
	}
	query := `
		SELECT user_id, amount, status
		FROM reservations
		WHERE related_id = $1
		FOR UPDATE
	`
	var (
		userID string
		amount int64
		status domain.ReservationStatus
	)
	err := r.db.QueryRow(ctx, query, entry.RelatedID).Scan(&userID, &amount, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		zap.L().Error("failed to lock reservation", zap.String("relatedID", entry.RelatedID), zap.Error(err))
		return err
	}
	if userID != entry.UserID || entry.Amount > amount {
		return domain.ErrReservationMismatch
	}
	if status != domain.ReservationReserved {
		return domain.ErrDuplicateEntry
	}

	update := `
		UPDATE reservations
		SET status = 'REFUNDED', settled_at = $2
		WHERE related_id = $1
	`
	if _, err := r.db.Exec(ctx, update, entry.RelatedID, entry.CreatedAt); err != nil {
		zap.L().Error("failed to close reservation", zap.String("relatedID", entry.RelatedID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) applyBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = now()
		WHERE user_id = $1
		RETURNING balance
	`
	var balance int64
	if err := r.db.QueryRow(ctx, query, userID, delta).Scan(&balance); err != nil {
		zap.L().Error("failed to update balance", zap.String("userID", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}
