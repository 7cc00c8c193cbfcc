package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/pkg/validate"
)

type LedgerEntryDTO struct {
	ID        string    `json:"id" example:"01928f0e-6a3c-7b1e-9d0a-3f2c1b4a5e6d"`
	Kind      string    `json:"kind" example:"DEBIT"`
	Amount    int64     `json:"amount" example:"4"`
	Reason    string    `json:"reason" example:"generate:ocr"`
	RelatedID string    `json:"related_id,omitempty" example:"job-42"`
	CreatedAt time.Time `json:"created_at" example:"2026-10-01T12:00:00Z"`
}

type LedgerQueryDTO struct {
	Kind   string `validate:"omitempty,oneof=DEBIT CREDIT REFUND"`
	Limit  int    `validate:"gte=0,lte=500"`
	Offset int    `validate:"gte=0"`
	From   time.Time
	To     time.Time
}

// ParseLedgerQuery reads ?kind=&from=&to=&limit=&offset= into a filter for
// userID. Times are RFC 3339.
func ParseLedgerQuery(userID string, q url.Values) (domain.EntryFilter, error) {
	var query LedgerQueryDTO
	query.Kind = q.Get("kind")

	var err error
	if query.Limit, err = intParam(q, "limit"); err != nil {
		return domain.EntryFilter{}, err
	}
	if query.Offset, err = intParam(q, "offset"); err != nil {
		return domain.EntryFilter{}, err
	}
	if query.From, err = timeParam(q, "from"); err != nil {
		return domain.EntryFilter{}, err
	}
	if query.To, err = timeParam(q, "to"); err != nil {
		return domain.EntryFilter{}, err
	}
	if err := validate.Struct(query); err != nil {
		return domain.EntryFilter{}, err
	}
	if !query.From.IsZero() && !query.To.IsZero() && !query.From.Before(query.To) {
		return domain.EntryFilter{}, fmt.Errorf("from must be before to")
	}

	return domain.EntryFilter{
		UserID: userID,
		Kind:   domain.EntryKind(query.Kind),
		From:   query.From,
		To:     query.To,
		Limit:  query.Limit,
		Offset: query.Offset,
	}, nil
}

func ToLedgerEntries(entries []domain.LedgerEntry) []LedgerEntryDTO {
	result := make([]LedgerEntryDTO, len(entries))
	for i, e := range entries {
		result[i] = LedgerEntryDTO{
			ID:        e.ID.String(),
			Kind:      string(e.Kind),
			Amount:    e.Amount,
			Reason:    e.Reason,
			RelatedID: e.RelatedID,
			CreatedAt: e.CreatedAt,
		}
	}
	return result
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func timeParam(q url.Values, name string) (time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v.UTC(), nil
}
