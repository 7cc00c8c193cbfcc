package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/dto"
	"github.com/GlebRadaev/pointledger/internal/handlers/balance"
	"github.com/GlebRadaev/pointledger/internal/handlers/httperr"
	"github.com/GlebRadaev/pointledger/pkg/utils"
	"github.com/GlebRadaev/pointledger/pkg/validate"
)

type BalanceService interface {
	PeekBalance(ctx context.Context, userID string) (int64, error)
	History(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error)
	Audit(ctx context.Context, userID string) (*domain.AuditReport, error)
}

type LedgerService interface {
	Credit(ctx context.Context, userID string, amount int64, reason, relatedID string) (int64, error)
}

type CodeService interface {
	CreateCode(ctx context.Context, value int64) (string, *domain.RedemptionCode, error)
}

type Reconciler interface {
	RunOnce(ctx context.Context) ([]string, error)
}

// AdminHandler serves operator endpoints. Routes are expected to sit behind
// the admin role check.
type AdminHandler struct {
	balanceService BalanceService
	ledgerService  LedgerService
	codeService    CodeService
	reconciler     Reconciler
}

func New(balanceService BalanceService, ledgerService LedgerService, codeService CodeService, reconciler Reconciler) *AdminHandler {
	return &AdminHandler{
		balanceService: balanceService,
		ledgerService:  ledgerService,
		codeService:    codeService,
		reconciler:     reconciler,
	}
}

// GetBalance godoc
//
//	@Summary		Get user balance
//	@Tags			Администрирование
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		string	true	"User ID"
//	@Success		200		{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		400		{object}	utils.Response			"Invalid user"
//	@Failure		403		{object}	utils.Response			"Admin role required"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/users/{userID}/balance [get]
func (h *AdminHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	value, err := h.balanceService.PeekBalance(r.Context(), userID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{UserID: userID, Balance: value})
}

// GetLedger godoc
//
//	@Summary		Get user ledger
//	@Tags			Администрирование
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		string	true	"User ID"
//	@Param			kind	query		string	false	"DEBIT, CREDIT or REFUND"
//	@Param			from	query		string	false	"RFC 3339 lower bound, inclusive"
//	@Param			to		query		string	false	"RFC 3339 upper bound, exclusive"
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Entries to skip"
//	@Success		200		{array}		dto.LedgerEntryDTO	"Ledger entries"
//	@Success		204		{object}	utils.Response		"No entries"
//	@Failure		400		{object}	utils.Response		"Invalid query"
//	@Failure		403		{object}	utils.Response		"Admin role required"
//	@Router			/api/admin/users/{userID}/ledger [get]
func (h *AdminHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	balance.Ledger(w, r, h.balanceService, chi.URLParam(r, "userID"))
}

// Audit godoc
//
//	@Summary		Audit user ledger
//	@Description	Compare the stored balance with the sum of the user's ledger entries.
//	@Tags			Администрирование
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		string	true	"User ID"
//	@Success		200		{object}	dto.AuditResponseDTO	"Audit report"
//	@Failure		400		{object}	utils.Response			"Invalid user"
//	@Failure		403		{object}	utils.Response			"Admin role required"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/users/{userID}/audit [get]
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	report, err := h.balanceService.Audit(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuditResponseDTO{
		UserID:     report.UserID,
		Balance:    report.Balance,
		EntriesSum: report.EntriesSum,
		Consistent: report.Consistent,
	})
}

// Credit godoc
//
//	@Summary		Credit points
//	@Description	Add points to a user. Repeating a request with the same reason and related_id credits once.
//	@Tags			Администрирование
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		string					true	"User ID"
//	@Param			request	body		dto.CreditRequestDTO	true	"Credit details"
//	@Success		200		{object}	dto.BalanceResponseDTO	"Balance after the credit"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		403		{object}	utils.Response			"Admin role required"
//	@Failure		422		{object}	utils.Response			"Invalid amount"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/users/{userID}/credit [post]
func (h *AdminHandler) Credit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req dto.CreditRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	value, err := h.ledgerService.Credit(r.Context(), userID, req.Amount, req.Reason, req.RelatedID)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{UserID: userID, Balance: value})
}

// CreateCode godoc
//
//	@Summary		Issue a redemption code
//	@Description	The plain code is returned once; only its hash is stored.
//	@Tags			Администрирование
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateCodeRequestDTO	true	"Code value"
//	@Success		201		{object}	dto.CreateCodeResponseDTO	"Issued code"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		403		{object}	utils.Response				"Admin role required"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/codes [post]
func (h *AdminHandler) CreateCode(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCodeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	code, created, err := h.codeService.CreateCode(r.Context(), req.Value)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.CreateCodeResponseDTO{
		ID:    created.ID,
		Code:  code,
		Value: created.Value,
	})
}

// Reconcile godoc
//
//	@Summary		Run reconciliation now
//	@Description	Refund reservations that were never settled and list the affected users.
//	@Tags			Администрирование
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ReconcileResponseDTO	"Refunded users"
//	@Failure		403	{object}	utils.Response				"Admin role required"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/reconcile [post]
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	users, err := h.reconciler.RunOnce(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}
	if users == nil {
		users = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReconcileResponseDTO{Users: users})
}
