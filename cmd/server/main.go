// Package main is the entry point for the printledger API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printledger/internal/config"
	"printledger/internal/domain/auth"
	v1 "printledger/internal/infrastructure/http/v1"
	"printledger/internal/infrastructure/storage/postgres"
	"printledger/internal/infrastructure/storage/postgres/auth_repo"
	"printledger/internal/infrastructure/storage/postgres/catalog_repo"
	"printledger/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting printledger server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN())
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping database", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Tokens ---
	tokenCfg := auth.DefaultTokenConfig(cfg.JWT.Secret)
	tokenCfg.AccessTokenTTL = cfg.JWT.Expiry
	tokenService := auth.NewTokenService(tokenCfg)

	// --- Auth ---
	userRepo := auth_repo.NewUserRepo(txManager)
	resetTokenRepo := auth_repo.NewResetTokenRepo(txManager)
	branchRepo := catalog_repo.NewBranchRepo(txManager)

	authCfg := auth.DefaultServiceConfig()
	authCfg.ResetTokenExpiry = cfg.JWT.ResetExpiry
	authService := auth.NewService(
		userRepo,
		resetTokenRepo,
		branchRepo,
		txManager,
		tokenService,
		authCfg,
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		TxManager:      txManager,
		Logger:         log,
		TokenValidator: tokenService,
		AuthService:    authService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
