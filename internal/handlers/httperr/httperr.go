// Package httperr maps service errors to HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/service/redeemservice"
	"github.com/GlebRadaev/pointledger/internal/service/toolservice"
	"github.com/GlebRadaev/pointledger/pkg/utils"
)

func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingRelatedID),
		errors.Is(err, domain.ErrInvalidOutcome),
		errors.Is(err, redeemservice.ErrInvalidCode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidUser):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, redeemservice.ErrCodeNotFound),
		errors.Is(err, toolservice.ErrUnknownTool):
		return http.StatusNotFound
	case errors.Is(err, redeemservice.ErrCodeAlreadyUsed),
		errors.Is(err, domain.ErrReservationMismatch),
		errors.Is(err, domain.ErrDuplicateJob):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, toolservice.ErrVendorFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write responds with the status for err. Internal errors are logged and
// hidden from the client.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, status, "Internal server error")
		return
	}
	utils.RespondWithError(w, status, err.Error())
}
