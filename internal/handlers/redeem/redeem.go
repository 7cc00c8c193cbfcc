package redeem

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/dto"
	"github.com/GlebRadaev/pointledger/internal/handlers/httperr"
	"github.com/GlebRadaev/pointledger/pkg/auth"
	"github.com/GlebRadaev/pointledger/pkg/utils"
	"github.com/GlebRadaev/pointledger/pkg/validate"
)

type Service interface {
	Redeem(ctx context.Context, userID, code string) (domain.Redemption, error)
}

type RedeemHandler struct {
	redeemService Service
}

func New(redeemService Service) *RedeemHandler {
	return &RedeemHandler{
		redeemService: redeemService,
	}
}

// Redeem godoc
//
//	@Summary		Redeem a code
//	@Description	Credit the value of a one-time code to the authenticated user. Submitting the same code again credits nothing.
//	@Tags			Коды
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RedeemRequestDTO	true	"Code to redeem"
//	@Success		200		{object}	dto.RedeemResponseDTO	"Code applied"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		404		{object}	utils.Response			"Unknown code"
//	@Failure		409		{object}	utils.Response			"Code used by another user"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/redeem [post]
func (h *RedeemHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req dto.RedeemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	redemption, err := h.redeemService.Redeem(r.Context(), userID, req.Code)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RedeemResponseDTO{
		CodeID:          redemption.CodeID,
		Value:           redemption.Value,
		Balance:         redemption.Balance,
		AlreadyRedeemed: redemption.AlreadyRedeemed,
	})
}
