package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	jwtService := NewJWTService("test-secret")

	tests := []struct {
		name           string
		userID         string
		role           string
		expirationTime time.Time
	}{
		{
			name:           "User token",
			userID:         "alice",
			role:           RoleUser,
			expirationTime: time.Now().Add(time.Hour),
		},
		{
			name:           "Admin token",
			userID:         "root",
			role:           RoleAdmin,
			expirationTime: time.Now().Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwtService.GenerateJWT(tt.userID, tt.role, tt.expirationTime)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := jwtService.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.role, claims.Role)
		})
	}
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService("test-secret")

	tests := []struct {
		name         string
		setup        func() string
		expectError  bool
		expectedRole string
	}{
		{
			name: "Valid token without role defaults to user",
			setup: func() string {
				token, _ := jwtService.GenerateJWT("alice", "", time.Now().Add(time.Hour))
				return token
			},
			expectedRole: RoleUser,
		},
		{
			name: "Expired token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT("alice", RoleUser, time.Now().Add(-time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Signed with another secret",
			setup: func() string {
				token, _ := NewJWTService("other").GenerateJWT("alice", RoleUser, time.Now().Add(time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Empty user id",
			setup: func() string {
				token, _ := jwtService.GenerateJWT("", RoleUser, time.Now().Add(time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Foreign issuer",
			setup: func() string {
				claims := Claims{
					UserID:         "alice",
					StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix(), Issuer: "someone-else"},
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
				return token
			},
			expectError: true,
		},
		{
			name:        "Garbage",
			setup:       func() string { return "not-a-token" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwtService.ValidateToken(tt.setup())
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedRole, claims.Role)
		})
	}
}
