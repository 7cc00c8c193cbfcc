package balance

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/dto"
	"github.com/GlebRadaev/pointledger/internal/handlers/httperr"
	"github.com/GlebRadaev/pointledger/pkg/auth"
	"github.com/GlebRadaev/pointledger/pkg/utils"
)

type Service interface {
	PeekBalance(ctx context.Context, userID string) (int64, error)
	History(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the points balance of the authenticated user. The value may lag by a few seconds.
//	@Tags			Баланс
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		503	{object}	utils.Response			"Storage unavailable"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	balance, err := h.balanceService.PeekBalance(r.Context(), userID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		UserID:  userID,
		Balance: balance,
	})
}

// GetLedger godoc
//
//	@Summary		Get ledger history
//	@Description	List ledger entries of the authenticated user, newest first.
//	@Tags			Баланс
//	@Security		BearerAuth
//	@Produce		json
//	@Param			kind	query		string	false	"DEBIT, CREDIT or REFUND"
//	@Param			from	query		string	false	"RFC 3339 lower bound, inclusive"
//	@Param			to		query		string	false	"RFC 3339 upper bound, exclusive"
//	@Param			limit	query		int		false	"Page size, 50 by default, at most 500"
//	@Param			offset	query		int		false	"Entries to skip"
//	@Success		200		{array}		dto.LedgerEntryDTO	"Ledger entries"
//	@Success		204		{object}	utils.Response		"No entries"
//	@Failure		400		{object}	utils.Response		"Invalid query"
//	@Failure		401		{object}	utils.Response		"User not authorized"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/user/ledger [get]
func (h *BalanceHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	Ledger(w, r, h.balanceService, userID)
}

// Ledger writes the history of userID filtered by the request query.
func Ledger(w http.ResponseWriter, r *http.Request, service Service, userID string) {
	filter, err := dto.ParseLedgerQuery(userID, r.URL.Query())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := service.History(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	if len(entries) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToLedgerEntries(entries))
}
