package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finbook/internal/config"
	"finbook/internal/db"
	"finbook/internal/handlers"
	"finbook/internal/logging"
	"finbook/internal/services"
	"finbook/internal/store"
	"finbook/internal/websocket"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect database")
	}
	defer database.Close()

	users := store.NewUserStore(database)
	accounts := store.NewAccountStore(database)
	categories := store.NewCategoryStore(database)
	transactions := store.NewTransactionStore(database)
	currencies := store.NewCurrencyStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	authService := services.NewAuthService(txRunner, users, audit, cfg.JWTSecret, cfg.TokenTTL)
	accountService := services.NewAccountService(txRunner, accounts, currencies, audit, logger)
	categoryService := services.NewCategoryService(categories)
	transactionService := services.NewTransactionService(transactions, accounts, categories, currencies, hub, logger)
	currencyService := services.NewCurrencyService(currencies)

	handler := handlers.New(cfg, logger, authService, accountService, categoryService, transactionService, currencyService, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("finbook API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("shutdown error")
	}
}
