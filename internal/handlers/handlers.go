package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/pointledger/docs"
	adminhandlers "github.com/GlebRadaev/pointledger/internal/handlers/admin"
	balancehandlers "github.com/GlebRadaev/pointledger/internal/handlers/balance"
	redeemhandlers "github.com/GlebRadaev/pointledger/internal/handlers/redeem"
	toolhandlers "github.com/GlebRadaev/pointledger/internal/handlers/tools"
	"github.com/GlebRadaev/pointledger/internal/service"
	"github.com/GlebRadaev/pointledger/pkg/auth"
)

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
}

type RedeemHandler interface {
	Redeem(w http.ResponseWriter, r *http.Request)
}

type ToolHandler interface {
	Execute(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
	Audit(w http.ResponseWriter, r *http.Request)
	Credit(w http.ResponseWriter, r *http.Request)
	CreateCode(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	BalanceHandler BalanceHandler
	RedeemHandler  RedeemHandler
	ToolHandler    ToolHandler
	AdminHandler   AdminHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		BalanceHandler: balancehandlers.New(s.BalanceService),
		RedeemHandler:  redeemhandlers.New(s.RedeemService),
		ToolHandler:    toolhandlers.New(s.ToolService),
		AdminHandler:   adminhandlers.New(s.BalanceService, s.LedgerService, s.RedeemService, s.Reconciler),
		jwtService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(h.jwtService))

		r.Route("/api/user", func(r chi.Router) {
			r.Get("/balance", h.BalanceHandler.GetBalance)
			r.Get("/ledger", h.BalanceHandler.GetLedger)
			r.Post("/redeem", h.RedeemHandler.Redeem)
		})
		r.Post("/api/ai/{tool}", h.ToolHandler.Execute)

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin))
			r.Route("/users/{userID}", func(r chi.Router) {
				r.Get("/balance", h.AdminHandler.GetBalance)
				r.Get("/ledger", h.AdminHandler.GetLedger)
				r.Get("/audit", h.AdminHandler.Audit)
				r.Post("/credit", h.AdminHandler.Credit)
			})
			r.Post("/codes", h.AdminHandler.CreateCode)
			r.Post("/reconcile", h.AdminHandler.Reconcile)
		})
	})

	return r
}
