package service

import (
	"fmt"

	"github.com/GlebRadaev/pointledger/internal/config"
	"github.com/GlebRadaev/pointledger/internal/reconciler"
	"github.com/GlebRadaev/pointledger/internal/repo"
	"github.com/GlebRadaev/pointledger/internal/service/balanceservice"
	"github.com/GlebRadaev/pointledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/pointledger/internal/service/meteringservice"
	"github.com/GlebRadaev/pointledger/internal/service/redeemservice"
	"github.com/GlebRadaev/pointledger/internal/service/toolservice"
	"github.com/GlebRadaev/pointledger/pkg/auth"
	"github.com/GlebRadaev/pointledger/pkg/clients"
)

type Cache interface {
	ledgerservice.Cache
	balanceservice.Cache
}

type Services struct {
	LedgerService   *ledgerservice.Service
	BalanceService  *balanceservice.Service
	MeteringService *meteringservice.Service
	RedeemService   *redeemservice.Service
	ToolService     *toolservice.Service
	Reconciler      *reconciler.Service
}

func New(cfg *config.Config, repo *repo.Repositories, cache Cache, pool ledgerservice.Pool, client clients.HTTPClientI) (*Services, error) {
	prices, err := cfg.Prices()
	if err != nil {
		return nil, fmt.Errorf("parse tool prices: %w", err)
	}

	ledgerService := ledgerservice.New(repo.LedgerRepo, cache, pool, ledgerservice.Options{
		RetryAttempts:  cfg.RetryAttempts,
		RetryBackoff:   cfg.RetryBackoff,
		ReconcileBatch: cfg.ReconcileBatch,
	})
	meteringService := meteringservice.New(ledgerService, cfg.SettleTimeout)

	return &Services{
		LedgerService:   ledgerService,
		BalanceService:  balanceservice.New(repo.LedgerRepo, cache),
		MeteringService: meteringService,
		RedeemService:   redeemservice.New(repo.CodeRepo, ledgerService, &auth.HashService{}),
		ToolService:     toolservice.New(cfg.VendorAddress, prices, meteringService, client),
		Reconciler:      reconciler.New(cfg, ledgerService),
	}, nil
}
