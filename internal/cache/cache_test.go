package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClampsTTL(t *testing.T) {
	db, _ := redismock.NewClientMock()

	assert.Equal(t, MaxTTL, New(db, time.Minute, 0).ttl)
	assert.Equal(t, MaxTTL, New(db, 0, 0).ttl)
	assert.Equal(t, 2*time.Second, New(db, 2*time.Second, 0).ttl)
}

func TestBalanceCache_Get(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock redismock.ClientMock)
		expected  int64
		found     bool
		expectErr bool
	}{
		{
			name: "Hit",
			mockSetup: func(mock redismock.ClientMock) {
				mock.ExpectGet("ledger:balance:u1").SetVal("21")
			},
			expected: 21,
			found:    true,
		},
		{
			name: "Miss",
			mockSetup: func(mock redismock.ClientMock) {
				mock.ExpectGet("ledger:balance:u1").RedisNil()
			},
		},
		{
			name: "Redis error",
			mockSetup: func(mock redismock.ClientMock) {
				mock.ExpectGet("ledger:balance:u1").SetErr(errors.New("connection refused"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			c := New(db, time.Second, time.Minute)
			tt.mockSetup(mock)

			balance, found, err := c.Get(context.Background(), "u1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, balance)
			assert.Equal(t, tt.found, found)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBalanceCache_SetWritesBothCopies(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db, time.Second, time.Minute)

	mock.ExpectSet("ledger:balance:u1", int64(21), time.Second).SetVal("OK")
	mock.ExpectSet("ledger:balance:u1:lkg", int64(21), time.Minute).SetVal("OK")

	require.NoError(t, c.Set(context.Background(), "u1", 21))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceCache_LastKnown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db, time.Second, time.Minute)

	mock.ExpectGet("ledger:balance:u1:lkg").SetVal("17")

	balance, found, err := c.LastKnown(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(17), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := New(db, time.Second, time.Minute)

	mock.ExpectDel("ledger:balance:u1").SetVal(1)

	require.NoError(t, c.Invalidate(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
