package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/pointledger/internal/cache"
	"github.com/GlebRadaev/pointledger/internal/config"
	"github.com/GlebRadaev/pointledger/internal/repo"
	"github.com/GlebRadaev/pointledger/internal/workerpool"
	"github.com/GlebRadaev/pointledger/pkg/clients"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	pool := workerpool.New(2)
	t.Cleanup(pool.Close)

	cfg := &config.Config{
		VendorAddress: "http://vendor",
		ToolPrices:    "ocr:4,image:10",
	}

	services, err := New(cfg, repo.NewInMemory(25), cache.Nop{}, pool, clients.NewMockHTTPClientI(ctrl))
	require.NoError(t, err)

	assert.NotNil(t, services.LedgerService)
	assert.NotNil(t, services.BalanceService)
	assert.NotNil(t, services.MeteringService)
	assert.NotNil(t, services.RedeemService)
	assert.NotNil(t, services.ToolService)
	assert.NotNil(t, services.Reconciler)

	cost, ok := services.ToolService.Price("image")
	assert.True(t, ok)
	assert.Equal(t, int64(10), cost)
}

func TestNew_InvalidPrices(t *testing.T) {
	cfg := &config.Config{ToolPrices: "ocr:free"}

	pool := workerpool.New(1)
	defer pool.Close()

	_, err := New(cfg, repo.NewInMemory(25), cache.Nop{}, pool, nil)
	assert.Error(t, err)
}
