package toolservice

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/pointledger/internal/cache"
	"github.com/GlebRadaev/pointledger/internal/domain"
	memoryrepo "github.com/GlebRadaev/pointledger/internal/repo/memory-repo"
	"github.com/GlebRadaev/pointledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/pointledger/internal/service/meteringservice"
	"github.com/GlebRadaev/pointledger/internal/workerpool"
	"github.com/GlebRadaev/pointledger/pkg/clients"
)

var prices = map[string]int64{"ocr": 4, "image": 10}

func newLedgerBacked(t *testing.T) (*Service, *clients.MockHTTPClientI, *memoryrepo.Repository) {
	ctrl := gomock.NewController(t)
	client := clients.NewMockHTTPClientI(ctrl)

	repo := memoryrepo.New(25)
	pool := workerpool.New(1)
	t.Cleanup(pool.Close)
	engine := ledgerservice.New(repo, cache.Nop{}, pool, ledgerservice.Options{RetryBackoff: time.Millisecond})
	meter := meteringservice.New(engine, time.Second)

	return New("http://vendor", prices, meter, client), client, repo
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name            string
		tool            string
		prepareMock     func(client *clients.MockHTTPClientI)
		expectedBalance int64
		expectedOutput  string
		expectRefund    bool
		expectedError   error
	}{
		{
			name: "Successful call keeps the charge",
			tool: "ocr",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Post(gomock.Any(), "http://vendor/api/ai/ocr", gomock.Any(), []byte(`{"img":"x"}`)).
					DoAndReturn(func(_ context.Context, _ string, headers http.Header, _ []byte) (int, []byte, error) {
						assert.Equal(t, "job-1", headers.Get("X-Job-ID"))
						return http.StatusOK, []byte(`{"text":"hello"}`), nil
					})
			},
			expectedBalance: 21,
			expectedOutput:  `{"text":"hello"}`,
		},
		{
			name: "Vendor error is refunded",
			tool: "ocr",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(http.StatusInternalServerError, []byte("boom"), nil)
			},
			expectedBalance: 25,
			expectRefund:    true,
			expectedError:   ErrVendorFailed,
		},
		{
			name: "Transport error is refunded",
			tool: "ocr",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(0, nil, errors.New("connection reset"))
			},
			expectedBalance: 25,
			expectRefund:    true,
			expectedError:   ErrVendorFailed,
		},
		{
			name:          "Unknown tool",
			tool:          "teleport",
			expectedError: ErrUnknownTool,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, client, repo := newLedgerBacked(t)
			if tt.prepareMock != nil {
				tt.prepareMock(client)
			}

			result, err := service.Execute(context.Background(), "alice", tt.tool, "job-1", []byte(`{"img":"x"}`))
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedOutput, string(result.Output))
			}
			if errors.Is(tt.expectedError, ErrUnknownTool) {
				return
			}
			assert.Equal(t, tt.expectRefund, result.Refunded)
			assert.Equal(t, tt.expectedBalance, result.Balance)

			balance, err := repo.GetBalance(context.Background(), "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedBalance, balance)
		})
	}
}

func TestExecuteInsufficientBalance(t *testing.T) {
	service, client, _ := newLedgerBacked(t)
	// the third call must not reach the vendor
	client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(http.StatusOK, nil, nil).Times(2)

	ctx := context.Background()
	for i, jobID := range []string{"job-1", "job-2"} {
		_, err := service.Execute(ctx, "alice", "image", jobID, nil)
		require.NoError(t, err, "call %d", i)
	}

	result, err := service.Execute(ctx, "alice", "image", "job-3", nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, int64(5), result.Balance)
}

func TestExecuteGeneratesJobID(t *testing.T) {
	ctrl := gomock.NewController(t)
	meter := NewMockMeter(ctrl)
	service := New("http://vendor", prices, meter, clients.NewMockHTTPClientI(ctrl))

	meter.EXPECT().Run(gomock.Any(), "alice", int64(4), "generate:ocr", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ int64, _ string, jobID string, _ func(context.Context) error) (domain.Settlement, error) {
			_, err := uuid.Parse(jobID)
			assert.NoError(t, err)
			return domain.Settlement{JobID: jobID, Outcome: domain.OutcomeKept, Balance: 21}, nil
		})

	result, err := service.Execute(context.Background(), "alice", "ocr", "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.JobID)
	assert.Equal(t, int64(21), result.Balance)
}

func TestExecuteReusedJobIDSkipsVendor(t *testing.T) {
	service, client, repo := newLedgerBacked(t)
	client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(http.StatusOK, []byte(`"ok"`), nil).Times(1)

	ctx := context.Background()
	_, err := service.Execute(ctx, "alice", "ocr", "job-1", nil)
	require.NoError(t, err)

	result, err := service.Execute(ctx, "alice", "ocr", "job-1", nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateJob)
	assert.Equal(t, int64(21), result.Balance)

	_, err = service.Execute(ctx, "alice", "image", "job-1", nil)
	assert.ErrorIs(t, err, domain.ErrReservationMismatch)

	_, err = service.Execute(ctx, "bob", "ocr", "job-1", nil)
	assert.ErrorIs(t, err, domain.ErrReservationMismatch)

	balance, err := repo.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(21), balance)
	balance, err = repo.GetBalance(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(25), balance)
}
