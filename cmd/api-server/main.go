package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cakehub/database"
	"cakehub/internal/config"
	"cakehub/internal/logger"
	"cakehub/internal/microservices/http-api/repository"
	"cakehub/internal/microservices/http-api/router"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Setup structured logging
	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(appLogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Storage
	var store *repository.Store
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		appLogger.Warn("using in-memory storage; data is lost on exit")
		store = repository.NewInMemoryStore()
	default:
		db, err := database.ConnectDB(cfg, appLogger)
		if err != nil {
			appLogger.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer database.Close(db)
		store = repository.NewGormStore(db)
	}

	engine, err := router.New(router.Deps{
		Config: cfg,
		Logger: appLogger,
		Store:  store,
	})
	if err != nil {
		appLogger.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		appLogger.Info("server starting", "addr", srv.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		appLogger.Info("received shutdown signal", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error("graceful shutdown failed", "error", err)
			return
		}
		appLogger.Info("server stopped gracefully")
	case err := <-errChan:
		appLogger.Error("server error", "error", err)
		os.Exit(1)
	}
}
