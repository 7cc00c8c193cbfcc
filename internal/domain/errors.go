package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInsufficientBalance is a business rejection, never retried.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrDuplicateEntry signals an idempotent replay and is treated as success by callers.
	ErrDuplicateEntry = errors.New("duplicate ledger entry")
	// ErrStorageUnavailable marks transient storage failures eligible for bounded retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrAnomalyDetected is logged when a reservation is never settled by its handler.
	ErrAnomalyDetected = errors.New("anomaly detected: reservation left unsettled")

	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidUser         = errors.New("invalid user id")
	ErrMissingRelatedID    = errors.New("related id is required")
	ErrInvalidOutcome      = errors.New("invalid settlement outcome")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationMismatch = errors.New("operation does not match reservation")
	ErrDuplicateJob        = errors.New("job already submitted")
)

// ValidateUserID rejects ids that cannot own an account. "unknown" is
// refused explicitly so a failed lookup never credits a phantom user.
func ValidateUserID(userID string) error {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" || trimmed != userID || strings.EqualFold(trimmed, "unknown") {
		return ErrInvalidUser
	}
	return nil
}
