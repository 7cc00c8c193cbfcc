package dto

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/pointledger/internal/domain"
)

func TestParseLedgerQuery(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expected    domain.EntryFilter
		expectError bool
	}{
		{
			name:     "Empty query",
			query:    "",
			expected: domain.EntryFilter{UserID: "alice"},
		},
		{
			name:  "All parameters",
			query: "kind=DEBIT&from=2026-10-01T00:00:00Z&to=2026-10-02T00:00:00Z&limit=20&offset=40",
			expected: domain.EntryFilter{
				UserID: "alice",
				Kind:   domain.EntryKindDebit,
				From:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
				To:     time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
				Limit:  20,
				Offset: 40,
			},
		},
		{name: "Unknown kind", query: "kind=WITHDRAW", expectError: true},
		{name: "Limit too large", query: "limit=1000", expectError: true},
		{name: "Negative offset", query: "offset=-1", expectError: true},
		{name: "Limit not a number", query: "limit=ten", expectError: true},
		{name: "Bad time", query: "from=yesterday", expectError: true},
		{name: "Empty window", query: "from=2026-10-02T00:00:00Z&to=2026-10-01T00:00:00Z", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			filter, err := ParseLedgerQuery("alice", q)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter)
		})
	}
}

func TestToLedgerEntries(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	got := ToLedgerEntries([]domain.LedgerEntry{
		{ID: id, UserID: "alice", Kind: domain.EntryKindRefund, Amount: 4, Reason: domain.ReasonRefundFailure, RelatedID: "job-1", CreatedAt: at},
	})

	assert.Equal(t, []LedgerEntryDTO{
		{ID: id.String(), Kind: "REFUND", Amount: 4, Reason: "refund:api_failure", RelatedID: "job-1", CreatedAt: at},
	}, got)
	assert.Empty(t, ToLedgerEntries(nil))
}
