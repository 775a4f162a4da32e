package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/cogspace/internal/api"
	"github.com/Harshitk-cp/cogspace/internal/buildconfig"
	"github.com/Harshitk-cp/cogspace/internal/config"
	"github.com/Harshitk-cp/cogspace/internal/loader"
	"github.com/Harshitk-cp/cogspace/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger, err := newLogger(config.LogLevel())
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	space := store.NewAtomSpace(logger.Named("atomspace"))

	if path := config.SeedFile(); path != "" {
		res, err := loader.LoadYAML(path, space)
		if err != nil {
			logger.Fatal("failed to load seed file", zap.String("path", path), zap.Error(err))
		}
		logger.Info("seed loaded",
			zap.String("path", path),
			zap.Int("nodes", res.Nodes),
			zap.Int("links", res.Links),
		)
	}

	app := api.NewApp(space, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("version", buildconfig.Version()),
			zap.String("commit", buildconfig.Commit()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server", zap.Int("atoms", space.Size()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
