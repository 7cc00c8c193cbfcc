package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/dto"
	"github.com/GlebRadaev/pointledger/internal/service/toolservice"
	"github.com/GlebRadaev/pointledger/pkg/auth"
)

func NewMock(t *testing.T) (*ToolHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

func newRequest(tool, jobID, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/ai/"+tool, bytes.NewBufferString(body))
	if jobID != "" {
		r.Header.Set(JobIDHeader, jobID)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("tool", tool)
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, auth.UserIDKey, "alice")
	return r.WithContext(ctx)
}

func TestExecuteHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name           string
		tool           string
		jobID          string
		prepareMock    func()
		expectedCode   int
		expectedError  string
		expectedOutput string
	}{
		{
			name:  "Tool call succeeded",
			tool:  "ocr",
			jobID: "job-1",
			prepareMock: func() {
				service.EXPECT().Execute(gomock.Any(), "alice", "ocr", "job-1", []byte(`{"img":"x"}`)).
					Return(&domain.ToolResult{JobID: "job-1", Tool: "ocr", Cost: 4, Balance: 21, Output: []byte(`{"text":"hi"}`)}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedOutput: `{"text":"hi"}`,
		},
		{
			name: "Plain text output is quoted",
			tool: "text",
			prepareMock: func() {
				service.EXPECT().Execute(gomock.Any(), "alice", "text", "", gomock.Any()).
					Return(&domain.ToolResult{JobID: "generated", Tool: "text", Cost: 2, Balance: 23, Output: []byte("hello")}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedOutput: `"hello"`,
		},
		{
			name: "Insufficient balance",
			tool: "image",
			prepareMock: func() {
				service.EXPECT().Execute(gomock.Any(), "alice", "image", "", gomock.Any()).
					Return(&domain.ToolResult{Balance: 3}, domain.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient balance",
		},
		{
			name: "Job id already used",
			tool: "ocr",
			prepareMock: func() {
				service.EXPECT().Execute(gomock.Any(), "alice", "ocr", "", gomock.Any()).
					Return(&domain.ToolResult{Balance: 21}, domain.ErrDuplicateJob)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "job already submitted",
		},
		{
			name: "Vendor failed",
			tool: "ocr",
			prepareMock: func() {
				service.EXPECT().Execute(gomock.Any(), "alice", "ocr", "", gomock.Any()).
					Return(&domain.ToolResult{Refunded: true, Balance: 25}, fmt.Errorf("%w: status 500", toolservice.ErrVendorFailed))
			},
			expectedCode:  http.StatusBadGateway,
			expectedError: "vendor call failed",
		},
		{
			name: "Unknown tool",
			tool: "teleport",
			prepareMock: func() {
				service.EXPECT().Execute(gomock.Any(), "alice", "teleport", "", gomock.Any()).Return(nil, toolservice.ErrUnknownTool)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()

			handler.Execute(w, newRequest(tt.tool, tt.jobID, `{"img":"x"}`))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.ToolResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.JSONEq(t, tt.expectedOutput, string(body.Output))
			}
		})
	}
}

func TestExecuteHandler_PayloadTooLarge(t *testing.T) {
	handler, _ := NewMock(t)
	w := httptest.NewRecorder()

	handler.Execute(w, newRequest("ocr", "", string(bytes.Repeat([]byte("a"), maxPayloadSize+1))))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
