package handlers

import (
	"net/http"

	"finbook/internal/config"
	"finbook/internal/httpx"
	"finbook/internal/middleware"
	"finbook/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	cfg          config.Config
	logger       *logrus.Logger
	auth         AuthService
	accounts     AccountService
	categories   CategoryService
	transactions TransactionService
	currencies   CurrencyService
	hub          *websocket.Hub
}

func New(cfg config.Config, logger *logrus.Logger, auth AuthService, accounts AccountService, categories CategoryService, transactions TransactionService, currencies CurrencyService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:          cfg,
		logger:       logger,
		auth:         auth,
		accounts:     accounts,
		categories:   categories,
		transactions: transactions,
		currencies:   currencies,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestLogger(h.logger))
	router.Use(middleware.Recover(h.logger))
	router.Use(httpx.Timing)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", h.Login)
		api.Get("/currencies", h.ListCurrencies)
		api.Get("/ws/balances", h.WSBalances)

		api.Group(func(authed chi.Router) {
			authed.Use(middleware.Auth(h.cfg.JWTSecret))

			authed.Route("/accounts", func(r chi.Router) {
				r.Get("/", h.ListAccounts)
				r.Post("/", h.CreateAccount)
				r.Get("/{id}", h.GetAccount)
				r.Patch("/{id}", h.UpdateAccount)
				r.Delete("/{id}", h.DeleteAccount)
			})
			authed.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.Post("/", h.CreateCategory)
				r.Get("/{id}", h.GetCategory)
				r.Patch("/{id}", h.UpdateCategory)
				r.Delete("/{id}", h.DeleteCategory)
			})
			authed.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.ListTransactions)
				r.Post("/", h.CreateTransaction)
				r.Get("/{id}", h.GetTransaction)
				r.Patch("/{id}", h.UpdateTransaction)
				r.Delete("/{id}", h.DeleteTransaction)
			})
		})
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.Data(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
