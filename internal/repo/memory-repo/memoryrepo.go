package memoryrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GlebRadaev/pointledger/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type entryKey struct {
	relatedID string
	reason    string
}

type Repository struct {
	mu sync.Mutex

	defaultBalance int64
	now            func() time.Time

	balances     map[string]int64
	entries      []domain.LedgerEntry
	entryIDs     map[uuid.UUID]struct{}
	relatedKeys  map[entryKey]struct{}
	reservations map[string]*domain.Reservation
}

func New(defaultBalance int64) *Repository {
	return &Repository{
		defaultBalance: defaultBalance,
		now:            func() time.Time { return time.Now().UTC() },
		balances:       make(map[string]int64),
		entryIDs:       make(map[uuid.UUID]struct{}),
		relatedKeys:    make(map[entryKey]struct{}),
		reservations:   make(map[string]*domain.Reservation),
	}
}

func (r *Repository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *Repository) GetBalance(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ensureAccount(userID), nil
}

func (r *Repository) AppendEntry(_ context.Context, entry *domain.LedgerEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.ensureAccount(entry.UserID)
	if r.isDuplicate(entry) {
		return current, domain.ErrDuplicateEntry
	}

	switch entry.Kind {
	case domain.EntryKindDebit:
		if current < entry.Amount {
			return current, domain.ErrInsufficientBalance
		}
		if entry.RelatedID != "" {
			if _, ok := r.reservations[entry.RelatedID]; ok {
				return current, domain.ErrReservationMismatch
			}
			r.reservations[entry.RelatedID] = &domain.Reservation{
				RelatedID: entry.RelatedID,
				UserID:    entry.UserID,
				Amount:    entry.Amount,
				Reason:    entry.Reason,
				Status:    domain.ReservationReserved,
				CreatedAt: entry.CreatedAt,
			}
		}
	case domain.EntryKindRefund:
		if res, ok := r.reservations[entry.RelatedID]; ok && entry.RelatedID != "" {
			if res.UserID != entry.UserID || entry.Amount > res.Amount {
				return current, domain.ErrReservationMismatch
			}
			if res.Status != domain.ReservationReserved {
				return current, domain.ErrDuplicateEntry
			}
			settledAt := entry.CreatedAt
			res.Status = domain.ReservationRefunded
			res.SettledAt = &settledAt
		}
	}

	r.record(*entry)
	r.balances[entry.UserID] = current + entry.Effect()
	return r.balances[entry.UserID], nil
}

func (r *Repository) GetReservation(_ context.Context, relatedID string) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[relatedID]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *Repository) MarkKept(_ context.Context, relatedID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[relatedID]
	if !ok || res.Status != domain.ReservationReserved {
		return false, nil
	}
	settledAt := r.now()
	res.Status = domain.ReservationKept
	res.SettledAt = &settledAt
	return true, nil
}

func (r *Repository) FindStaleReservations(_ context.Context, olderThan time.Time, limit uint32) ([]domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stale []domain.Reservation
	for _, res := range r.reservations {
		if res.Status == domain.ReservationReserved && res.CreatedAt.Before(olderThan) {
			stale = append(stale, *res)
		}
	}
	sort.Slice(stale, func(i, j int) bool {
		return stale[i].CreatedAt.Before(stale[j].CreatedAt)
	})
	if limit > 0 && len(stale) > int(limit) {
		stale = stale[:limit]
	}
	return stale, nil
}

func (r *Repository) ListEntries(_ context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.LedgerEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.UserID != filter.UserID {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if !filter.From.IsZero() && e.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !e.CreatedAt.Before(filter.To) {
			continue
		}
		matched = append(matched, e)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	start := filter.Offset
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *Repository) Audit(_ context.Context, userID string) (*domain.AuditReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := &domain.AuditReport{UserID: userID, Balance: r.balances[userID]}
	for _, e := range r.entries {
		if e.UserID == userID {
			report.EntriesSum += e.Effect()
		}
	}
	report.Consistent = report.Balance == report.EntriesSum
	return report, nil
}

func (r *Repository) ensureAccount(userID string) int64 {
	if balance, ok := r.balances[userID]; ok {
		return balance
	}
	r.balances[userID] = 0
	if r.defaultBalance > 0 {
		r.record(domain.LedgerEntry{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    userID,
			Kind:      domain.EntryKindCredit,
			Amount:    r.defaultBalance,
			Reason:    domain.ReasonSignupBonus,
			RelatedID: domain.SignupRelatedID(userID),
			CreatedAt: r.now(),
		})
		r.balances[userID] = r.defaultBalance
	}
	return r.balances[userID]
}

func (r *Repository) isDuplicate(entry *domain.LedgerEntry) bool {
	if _, ok := r.entryIDs[entry.ID]; ok {
		return true
	}
	if entry.RelatedID == "" {
		return false
	}
	_, ok := r.relatedKeys[entryKey{relatedID: entry.RelatedID, reason: entry.Reason}]
	return ok
}

func (r *Repository) record(entry domain.LedgerEntry) {
	r.entries = append(r.entries, entry)
	r.entryIDs[entry.ID] = struct{}{}
	if entry.RelatedID != "" {
		r.relatedKeys[entryKey{relatedID: entry.RelatedID, reason: entry.Reason}] = struct{}{}
	}
}
