package memoryrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/pointledger/internal/domain"
)

func entry(kind domain.EntryKind, amount int64, reason, relatedID string, at time.Time) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    "alice",
		Kind:      kind,
		Amount:    amount,
		Reason:    reason,
		RelatedID: relatedID,
		CreatedAt: at,
	}
}

func TestRepository_GetBalanceCreatesAccount(t *testing.T) {
	repo := New(25)
	ctx := context.Background()

	balance, err := repo.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(25), balance)

	entries, err := repo.ListEntries(ctx, domain.EntryFilter{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ReasonSignupBonus, entries[0].Reason)
	assert.Equal(t, domain.SignupRelatedID("alice"), entries[0].RelatedID)

	empty := New(0)
	balance, err = empty.GetBalance(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, balance)
	entries, err = empty.ListEntries(ctx, domain.EntryFilter{UserID: "bob"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRepository_AppendEntry(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		setup           func(repo *Repository)
		entry           *domain.LedgerEntry
		expectedBalance int64
		expectedError   error
	}{
		{
			name:            "Debit opens reservation",
			entry:           entry(domain.EntryKindDebit, 4, "generate:ocr", "job-1", now),
			expectedBalance: 21,
		},
		{
			name:            "Debit over balance",
			entry:           entry(domain.EntryKindDebit, 26, "generate:ocr", "job-1", now),
			expectedBalance: 25,
			expectedError:   domain.ErrInsufficientBalance,
		},
		{
			name: "Same related id and reason",
			setup: func(repo *Repository) {
				_, _ = repo.AppendEntry(context.Background(), entry(domain.EntryKindCredit, 5, "redeem:A", "code-1", now))
			},
			entry:           entry(domain.EntryKindCredit, 5, "redeem:A", "code-1", now),
			expectedBalance: 30,
			expectedError:   domain.ErrDuplicateEntry,
		},
		{
			name: "Debit reusing a job id under another reason",
			setup: func(repo *Repository) {
				_, _ = repo.AppendEntry(context.Background(), entry(domain.EntryKindDebit, 4, "generate:ocr", "job-1", now))
			},
			entry:           entry(domain.EntryKindDebit, 10, "generate:image", "job-1", now),
			expectedBalance: 21,
			expectedError:   domain.ErrReservationMismatch,
		},
		{
			name: "Refund closes reservation",
			setup: func(repo *Repository) {
				_, _ = repo.AppendEntry(context.Background(), entry(domain.EntryKindDebit, 4, "generate:ocr", "job-1", now))
			},
			entry:           entry(domain.EntryKindRefund, 4, domain.ReasonRefundFailure, "job-1", now),
			expectedBalance: 25,
		},
		{
			name: "Refund after another refund reason",
			setup: func(repo *Repository) {
				_, _ = repo.AppendEntry(context.Background(), entry(domain.EntryKindDebit, 4, "generate:ocr", "job-1", now))
				_, _ = repo.AppendEntry(context.Background(), entry(domain.EntryKindRefund, 4, domain.ReasonReconcileTimeout, "job-1", now))
			},
			entry:           entry(domain.EntryKindRefund, 4, domain.ReasonRefundFailure, "job-1", now),
			expectedBalance: 25,
			expectedError:   domain.ErrDuplicateEntry,
		},
		{
			name: "Refund larger than reservation",
			setup: func(repo *Repository) {
				_, _ = repo.AppendEntry(context.Background(), entry(domain.EntryKindDebit, 4, "generate:ocr", "job-1", now))
			},
			entry:           entry(domain.EntryKindRefund, 10, domain.ReasonRefundFailure, "job-1", now),
			expectedBalance: 21,
			expectedError:   domain.ErrReservationMismatch,
		},
		{
			name: "Refund of a kept reservation",
			setup: func(repo *Repository) {
				_, _ = repo.AppendEntry(context.Background(), entry(domain.EntryKindDebit, 4, "generate:ocr", "job-1", now))
				_, _ = repo.MarkKept(context.Background(), "job-1")
			},
			entry:           entry(domain.EntryKindRefund, 4, domain.ReasonRefundFailure, "job-1", now),
			expectedBalance: 21,
			expectedError:   domain.ErrDuplicateEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := New(25)
			if tt.setup != nil {
				tt.setup(repo)
			}

			balance, err := repo.AppendEntry(context.Background(), tt.entry)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedBalance, balance)

			report, err := repo.Audit(context.Background(), "alice")
			require.NoError(t, err)
			assert.True(t, report.Consistent)
		})
	}
}

func TestRepository_Reservations(t *testing.T) {
	repo := New(25)
	ctx := context.Background()
	start := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	repo.SetClock(func() time.Time { return start.Add(time.Hour) })

	_, err := repo.AppendEntry(ctx, entry(domain.EntryKindDebit, 2, "generate:text", "job-old", start))
	require.NoError(t, err)
	_, err = repo.AppendEntry(ctx, entry(domain.EntryKindDebit, 2, "generate:text", "job-new", start.Add(30*time.Minute)))
	require.NoError(t, err)

	stale, err := repo.FindStaleReservations(ctx, start.Add(10*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "job-old", stale[0].RelatedID)

	kept, err := repo.MarkKept(ctx, "job-old")
	require.NoError(t, err)
	assert.True(t, kept)
	kept, err = repo.MarkKept(ctx, "job-old")
	require.NoError(t, err)
	assert.False(t, kept)

	res, err := repo.GetReservation(ctx, "job-old")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationKept, res.Status)
	require.NotNil(t, res.SettledAt)
	assert.Equal(t, start.Add(time.Hour), *res.SettledAt)

	stale, err = repo.FindStaleReservations(ctx, start.Add(time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "job-new", stale[0].RelatedID)

	missing, err := repo.GetReservation(ctx, "job-none")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_ListEntries(t *testing.T) {
	repo := New(0)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := repo.AppendEntry(ctx, entry(domain.EntryKindCredit, 1, "admin:adjust", "", base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}
	_, err := repo.AppendEntry(ctx, entry(domain.EntryKindDebit, 2, "generate:ocr", "job-1", base.Add(6*time.Hour)))
	require.NoError(t, err)

	tests := []struct {
		name     string
		filter   domain.EntryFilter
		expected int
	}{
		{name: "All", filter: domain.EntryFilter{UserID: "alice"}, expected: 6},
		{name: "By kind", filter: domain.EntryFilter{UserID: "alice", Kind: domain.EntryKindDebit}, expected: 1},
		{name: "Window", filter: domain.EntryFilter{UserID: "alice", From: base.Add(time.Hour), To: base.Add(3 * time.Hour)}, expected: 2},
		{name: "Page", filter: domain.EntryFilter{UserID: "alice", Limit: 2, Offset: 4}, expected: 2},
		{name: "Past the end", filter: domain.EntryFilter{UserID: "alice", Offset: 10}, expected: 0},
		{name: "Other user", filter: domain.EntryFilter{UserID: "bob"}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.ListEntries(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, entries, tt.expected)
		})
	}

	entries, err := repo.ListEntries(ctx, domain.EntryFilter{UserID: "alice", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.EntryKindDebit, entries[0].Kind)
}

func TestCodeRepository(t *testing.T) {
	repo := NewCodes()
	ctx := context.Background()

	code, err := repo.Create(ctx, "hash", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), code.ID)

	_, err = repo.Create(ctx, "hash", 10)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	consumed, fresh, err := repo.Consume(ctx, "hash", "alice")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, "alice", consumed.ConsumedBy)

	consumed, fresh, err = repo.Consume(ctx, "hash", "bob")
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Equal(t, "alice", consumed.ConsumedBy)

	missing, _, err := repo.Consume(ctx, "other", "alice")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
