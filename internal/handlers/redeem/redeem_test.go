package redeem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/pointledger/internal/domain"
	"github.com/GlebRadaev/pointledger/internal/dto"
	"github.com/GlebRadaev/pointledger/internal/service/redeemservice"
	"github.com/GlebRadaev/pointledger/pkg/auth"
)

func NewMock(t *testing.T) (*RedeemHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

func TestRedeemHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.RedeemResponseDTO
	}{
		{
			name: "Code applied",
			body: `{"code":"WELCOME10"}`,
			prepareMock: func() {
				service.EXPECT().Redeem(gomock.Any(), "alice", "WELCOME10").
					Return(domain.Redemption{CodeID: 7, Value: 10, Balance: 35}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.RedeemResponseDTO{CodeID: 7, Value: 10, Balance: 35},
		},
		{
			name:          "Invalid request body",
			body:          `{"code":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "Missing code",
			body:          `{}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Code failed on required",
		},
		{
			name: "Unknown code",
			body: `{"code":"NOPE"}`,
			prepareMock: func() {
				service.EXPECT().Redeem(gomock.Any(), "alice", "NOPE").Return(domain.Redemption{}, redeemservice.ErrCodeNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "redemption code not found",
		},
		{
			name: "Used by someone else",
			body: `{"code":"WELCOME10"}`,
			prepareMock: func() {
				service.EXPECT().Redeem(gomock.Any(), "alice", "WELCOME10").Return(domain.Redemption{}, redeemservice.ErrCodeAlreadyUsed)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "redemption code already used",
		},
		{
			name: "Internal server error",
			body: `{"code":"WELCOME10"}`,
			prepareMock: func() {
				service.EXPECT().Redeem(gomock.Any(), "alice", "WELCOME10").Return(domain.Redemption{}, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/user/redeem", bytes.NewBufferString(tt.body))
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, "alice"))
			w := httptest.NewRecorder()

			handler.Redeem(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.RedeemResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}
