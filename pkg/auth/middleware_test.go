package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	userToken, err := jwtService.GenerateJWT("alice", RoleUser, time.Now().Add(time.Hour))
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateJWT("root", RoleAdmin, time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		admin          bool
		expectedCode   int
		expectedUserID string
	}{
		{
			name:           "User passes",
			header:         "Bearer " + userToken,
			expectedCode:   http.StatusOK,
			expectedUserID: "alice",
		},
		{
			name:         "Missing header",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Wrong scheme",
			header:       "Basic " + userToken,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Invalid token",
			header:       "Bearer broken",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "User on admin route",
			header:       "Bearer " + userToken,
			admin:        true,
			expectedCode: http.StatusForbidden,
		},
		{
			name:           "Admin on admin route",
			header:         "Bearer " + adminToken,
			admin:          true,
			expectedCode:   http.StatusOK,
			expectedUserID: "root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			if tt.admin {
				handler = RequireRole(RoleAdmin)(handler)
			}
			handler = AuthMiddleware(jwtService)(handler)

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedUserID, seen)
		})
	}
}
