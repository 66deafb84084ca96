package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tokebay/shortener/config"
	"github.com/Tokebay/shortener/internal/app/handlers"
	"github.com/Tokebay/shortener/internal/app/storage"
	"github.com/Tokebay/shortener/internal/logger"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Println("Error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.NewConfig()

	//Инициализируется логгер
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Log.Error("Error initializing storage", zap.Error(err))
		return err
	}
	defer kv.Close()

	shortener := handlers.NewURLShortener(cfg, kv)
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           handlers.NewRouter(shortener),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server is starting", zap.String("address", cfg.ServerAddress))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Failed to start server", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		logger.Log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.KVStorage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	kv, err := storage.New(connectCtx, storage.Options{
		DSN:             cfg.DSN,
		RedisAddress:    cfg.RedisAddress,
		SQLitePath:      cfg.SQLitePath,
		FileStoragePath: cfg.FileStoragePath,
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Storage ready", zap.String("backend", fmt.Sprintf("%T", kv)))
	return kv, nil
}
