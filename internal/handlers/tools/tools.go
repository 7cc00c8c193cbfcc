package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/dto"
	"github.com/GlebRadaev/pointledger/internal/handlers/httperr"
	"github.com/GlebRadaev/pointledger/pkg/auth"
	"github.com/GlebRadaev/pointledger/pkg/utils"
)

type Service interface {
	Execute(ctx context.Context, userID, tool, jobID string, payload []byte) (*domain.ToolResult, error)
}

const (
	JobIDHeader    = "X-Job-ID"
	maxPayloadSize = 1 << 20
)

type ToolHandler struct {
	toolService Service
}

func New(toolService Service) *ToolHandler {
	return &ToolHandler{
		toolService: toolService,
	}
}

// Execute godoc
//
//	@Summary		Call a paid AI tool
//	@Description	Charge the tool price, forward the payload to the vendor and refund the charge when the call fails.
//	@Description	Repeating a request with the same X-Job-ID never charges twice.
//	@Tags			Инструменты
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			tool		path		string	true	"Tool name, e.g. ocr"
//	@Param			X-Job-ID	header		string	false	"Idempotency key of the job"
//	@Param			request		body		object	false	"Payload forwarded to the vendor"
//	@Success		200			{object}	dto.ToolResponseDTO	"Tool result"
//	@Failure		400			{object}	utils.Response		"Payload too large"
//	@Failure		401			{object}	utils.Response		"User not authorized"
//	@Failure		402			{object}	utils.Response		"Insufficient balance"
//	@Failure		404			{object}	utils.Response		"Unknown tool"
//	@Failure		409			{object}	utils.Response		"Job id already used"
//	@Failure		502			{object}	utils.Response		"Vendor failed, charge refunded"
//	@Failure		503			{object}	utils.Response		"Storage unavailable"
//	@Failure		500			{object}	utils.Response		"Internal server error"
//	@Router			/api/ai/{tool} [post]
func (h *ToolHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	tool := chi.URLParam(r, "tool")

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result, err := h.toolService.Execute(r.Context(), userID, tool, r.Header.Get(JobIDHeader), payload)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ToolResponseDTO{
		JobID:    result.JobID,
		Tool:     result.Tool,
		Cost:     result.Cost,
		Balance:  result.Balance,
		Refunded: result.Refunded,
		Output:   rawOutput(result.Output),
	})
}

func rawOutput(output []byte) json.RawMessage {
	if len(output) == 0 {
		return nil
	}
	if json.Valid(output) {
		return output
	}
	quoted, _ := json.Marshal(string(output))
	return quoted
}
