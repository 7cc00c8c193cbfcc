// Package reconciler periodically refunds reservations whose handlers never
// settled them.
package reconciler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/pointledger/internal/config"
)

type Engine interface {
	Reconcile(ctx context.Context, timeout time.Duration) ([]string, error)
}

const (
	defaultInterval = time.Minute
	defaultTimeout  = 15 * time.Minute
)

type Service struct {
	engine   Engine
	interval time.Duration
	timeout  time.Duration
}

func New(cfg *config.Config, engine Engine) *Service {
	s := &Service{
		engine:   engine,
		interval: cfg.ReconcileInterval,
		timeout:  cfg.ReservationTimeout,
	}
	if s.interval <= 0 {
		s.interval = defaultInterval
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	return s
}

// Start runs sweeps every interval until ctx is done. The returned channel
// is closed once the loop has exited.
func (s *Service) Start(ctx context.Context) <-chan struct{} {
	zap.L().Info("Reconciler started", zap.Duration("interval", s.interval), zap.Duration("timeout", s.timeout))
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.run(ctx)
	}()
	return done
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				zap.L().Error("Reconciliation sweep failed", zap.Error(err))
			}
		}
	}
}

// RunOnce performs a single sweep and returns the users whose balance was
// restored.
func (s *Service) RunOnce(ctx context.Context) ([]string, error) {
	users, err := s.engine.Reconcile(ctx, s.timeout)
	if len(users) > 0 {
		zap.L().Warn("Refunded unsettled reservations", zap.Int("users", len(users)))
	}
	return users, err
}
