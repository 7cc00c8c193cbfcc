package domain

import (
	"time"

	"github.com/google/uuid"
)

type EntryKind string

const (
	EntryKindDebit  EntryKind = "DEBIT"
	EntryKindCredit EntryKind = "CREDIT"
	EntryKindRefund EntryKind = "REFUND"
)

func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindDebit, EntryKindCredit, EntryKindRefund:
		return true
	}
	return false
}

type ReservationStatus string

const (
	ReservationReserved ReservationStatus = "RESERVED"
	ReservationKept     ReservationStatus = "KEPT"
	ReservationRefunded ReservationStatus = "REFUNDED"
)

// Outcome is the terminal decision a tool handler reports for a reservation.
type Outcome string

const (
	OutcomeKept   Outcome = "KEPT"
	OutcomeFailed Outcome = "FAILED"
)

const (
	ReasonSignupBonus      = "bonus:signup"
	ReasonRefundFailure    = "refund:api_failure"
	ReasonReconcileTimeout = "refund:reconcile_timeout"
)

func SignupRelatedID(userID string) string {
	return "signup:" + userID
}

func ToolReason(tool string) string {
	return "generate:" + tool
}

func RedeemReason(code string) string {
	return "redeem:" + code
}

type Account struct {
	UserID    string    `db:"user_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// LedgerEntry is an immutable audit record. Amount is always a positive
// magnitude, the sign comes from Kind.
type LedgerEntry struct {
	ID        uuid.UUID `db:"entry_id"`
	UserID    string    `db:"user_id"`
	Kind      EntryKind `db:"kind"`
	Amount    int64     `db:"amount"`
	Reason    string    `db:"reason"`
	RelatedID string    `db:"related_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Effect returns the signed change the entry applies to the balance.
func (e LedgerEntry) Effect() int64 {
	if e.Kind == EntryKindDebit {
		return -e.Amount
	}
	return e.Amount
}

type Reservation struct {
	RelatedID string            `db:"related_id"`
	UserID    string            `db:"user_id"`
	Amount    int64             `db:"amount"`
	Reason    string            `db:"reason"`
	Status    ReservationStatus `db:"status"`
	CreatedAt time.Time         `db:"created_at"`
	SettledAt *time.Time        `db:"settled_at"`
}

type EntryFilter struct {
	UserID string
	Kind   EntryKind
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type AuditReport struct {
	UserID     string
	Balance    int64
	EntriesSum int64
	Consistent bool
}

// Grant is the result of reserving points for a paid operation.
// Replayed is set when the job had already been debited by an earlier call.
type Grant struct {
	Granted  bool
	Replayed bool
	Balance  int64
}

// Settlement describes what Settle did. Balance is only meaningful when
// Refunded is set or when produced by a metered run.
type Settlement struct {
	JobID          string
	Outcome        Outcome
	Refunded       bool
	AlreadySettled bool
	Balance        int64
}

type RedemptionCode struct {
	ID         int64      `db:"id"`
	CodeHash   string     `db:"code_hash"`
	Value      int64      `db:"value"`
	CreatedAt  time.Time  `db:"created_at"`
	ConsumedBy string     `db:"consumed_by"`
	ConsumedAt *time.Time `db:"consumed_at"`
}

type Redemption struct {
	CodeID          int64
	Value           int64
	Balance         int64
	AlreadyRedeemed bool
}

type ToolResult struct {
	JobID    string
	Tool     string
	Cost     int64
	Balance  int64
	Refunded bool
	Output   []byte
}
