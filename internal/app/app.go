package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/cache"
	"github.com/GlebRadaev/pointledger/internal/config"
	"github.com/GlebRadaev/pointledger/internal/handlers"
	"github.com/GlebRadaev/pointledger/internal/pg"
	"github.com/GlebRadaev/pointledger/internal/repo"
	"github.com/GlebRadaev/pointledger/internal/service"
	"github.com/GlebRadaev/pointledger/internal/workerpool"
	"github.com/GlebRadaev/pointledger/pkg/auth"
	"github.com/GlebRadaev/pointledger/pkg/clients"
	"github.com/GlebRadaev/pointledger/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	dbpool *pgxpool.Pool
	rdb    *redis.Client
	pool   workerpool.WorkerPoolI

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	a.cfg = cfg

	if err := a.initStorage(ctx); err != nil {
		return err
	}

	var balanceCache service.Cache = cache.Nop{}
	if a.rdb = cache.Connect(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB); a.rdb != nil {
		balanceCache = cache.New(a.rdb, cfg.CacheTTL, cfg.CacheFallbackTTL)
	}

	a.pool = workerpool.New(cfg.ReconcileWorkers)
	a.srv, err = service.New(cfg, a.repo, balanceCache, a.pool, clients.NewHTTPClient())
	if err != nil {
		return fmt.Errorf("can't build services: %w", err)
	}
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret))

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startReconciler(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func (a *Application) initStorage(ctx context.Context) error {
	if a.cfg.InMemory() {
		zap.L().Warn("running with in-memory ledger, balances are lost on restart")
		a.repo = repo.NewInMemory(a.cfg.DefaultBalance)
		return nil
	}

	pool, err := getPgxpool(ctx, a.cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		pool.Close()
		return fmt.Errorf("can't run migrations: %w", err)
	}
	a.dbpool = pool
	a.repo = repo.New(pg.New(pool), pg.NewTXManager(pool), a.cfg.DefaultBalance)
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startReconciler(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-a.srv.Reconciler.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	a.close()
	return appErr
}

// close releases resources once nothing can submit work anymore.
func (a *Application) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			zap.L().Warn("failed to close redis client", zap.Error(err))
		}
	}
	if a.dbpool != nil {
		a.dbpool.Close()
	}
}
