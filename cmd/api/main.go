package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/http"
	"inkwell/internal/journal"
	"inkwell/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	kv := storage.NewKVRepo(db)

	// Load the journal store
	ctx := context.Background()
	store, err := journal.Load(ctx, kv, journal.Options{
		SentimentEnabled: cfg.SentimentEnabled,
		AutosaveDelay:    cfg.AutosaveDelay,
		Logger:           logger,
	})
	if err != nil {
		log.Fatalf("Failed to load journal store: %v", err)
	}

	router := http.NewRouter(&http.Deps{
		Store: store,
		KV:    kv,
	})

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	// Shut down on interrupt, flushing any pending autosave
	done := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
		if err := store.Close(); err != nil {
			slog.Error("Store close failed", "error", err)
		}
		close(done)
	}()

	slog.Info("Starting API server", "addr", addr, "sentiment", cfg.SentimentEnabled)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	<-done
}
