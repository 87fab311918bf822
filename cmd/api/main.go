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

	"github.com/jwebster45206/codescape/internal/config"
	"github.com/jwebster45206/codescape/internal/handlers"
	"github.com/jwebster45206/codescape/internal/logger"
	"github.com/jwebster45206/codescape/internal/middleware"
	redisstorage "github.com/jwebster45206/codescape/internal/storage"
	"github.com/jwebster45206/codescape/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting CODESCAPE API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend)

	store, err := newStorage(cfg, log)
	if err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     newRouter(store, log),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}

func newStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	if cfg.StorageBackend != config.StorageRedis {
		return storage.NewMemoryStorage(), nil
	}

	rs := redisstorage.NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, log)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := rs.WaitForConnection(ctx); err != nil {
		_ = rs.Close()
		return nil, err
	}
	return rs, nil
}

func newRouter(store storage.Storage, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	sessionHandler := handlers.NewSessionHandler(log, store)
	mux.Handle("/v1/session", sessionHandler)
	mux.Handle("/v1/session/", sessionHandler)

	return middleware.Logger(log, mux)
}
