package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/pointledger/internal/config"
)

func NewMock(t *testing.T, cfg *config.Config) (*Service, *MockEngine) {
	ctrl := gomock.NewController(t)
	engine := NewMockEngine(ctrl)
	return New(cfg, engine), engine
}

func TestNew_Defaults(t *testing.T) {
	service, _ := NewMock(t, &config.Config{})
	assert.Equal(t, defaultInterval, service.interval)
	assert.Equal(t, defaultTimeout, service.timeout)
}

func TestService_RunOnce(t *testing.T) {
	tests := []struct {
		name          string
		users         []string
		err           error
		expectedError bool
	}{
		{
			name:  "Refunds found",
			users: []string{"alice", "bob"},
		},
		{
			name: "Nothing to do",
		},
		{
			name:          "Partial failure",
			users:         []string{"alice"},
			err:           errors.New("refund reservation job-2: storage unavailable"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, engine := NewMock(t, &config.Config{ReservationTimeout: 10 * time.Minute, ReconcileInterval: time.Minute})
			engine.EXPECT().Reconcile(gomock.Any(), 10*time.Minute).Return(tt.users, tt.err)

			users, err := service.RunOnce(context.Background())
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.users, users)
		})
	}
}

func TestService_Start(t *testing.T) {
	service, engine := NewMock(t, &config.Config{ReservationTimeout: time.Minute, ReconcileInterval: 10 * time.Millisecond})

	called := make(chan struct{}, 1)
	engine.EXPECT().Reconcile(gomock.Any(), time.Minute).DoAndReturn(
		func(context.Context, time.Duration) ([]string, error) {
			select {
			case called <- struct{}{}:
			default:
			}
			return nil, nil
		}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := service.Start(ctx)

	select {
	case <-called:
	case <-time.After(time.Second):
		require.Fail(t, "reconciliation did not run")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "reconciler did not stop")
	}
}
