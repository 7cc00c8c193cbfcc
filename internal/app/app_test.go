package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/GlebRadaev/pointledger/internal/cache"
	"github.com/GlebRadaev/pointledger/internal/config"
	"github.com/GlebRadaev/pointledger/internal/handlers"
	"github.com/GlebRadaev/pointledger/internal/service"
	"github.com/GlebRadaev/pointledger/internal/workerpool"
	"github.com/GlebRadaev/pointledger/pkg/auth"
	"github.com/GlebRadaev/pointledger/pkg/clients"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}

func (s *ApplicationSuite) TestInitStorage_InMemory() {
	s.app.cfg = &config.Config{Database: "memory://", DefaultBalance: 25}

	s.Require().NoError(s.app.initStorage(context.Background()))

	s.Nil(s.app.dbpool)
	balance, err := s.app.repo.LedgerRepo.GetBalance(context.Background(), "alice")
	s.Require().NoError(err)
	s.Equal(int64(25), balance)
}

func (s *ApplicationSuite) TestGracefulShutdown() {
	cfg := &config.Config{
		Address:            "127.0.0.1:0",
		Database:           "memory://",
		DefaultBalance:     25,
		ReconcileInterval:  10 * time.Millisecond,
		ReservationTimeout: time.Minute,
		ToolPrices:         "ocr:4",
	}
	s.app.cfg = cfg
	s.Require().NoError(s.app.initStorage(context.Background()))

	s.app.pool = workerpool.New(2)
	var err error
	s.app.srv, err = service.New(cfg, s.app.repo, cache.Nop{}, s.app.pool, clients.NewHTTPClient())
	s.Require().NoError(err)
	s.app.api = handlers.New(s.app.srv, auth.NewJWTService("secret"))

	ctx, cancel := context.WithCancel(context.Background())
	s.Require().NoError(s.app.startHTTPServer(ctx))
	s.app.startReconciler(ctx)

	time.AfterFunc(50*time.Millisecond, cancel)

	s.NoError(s.app.Wait(ctx, cancel))
}
