package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/api/http/handlers"
	"github.com/spec-kit/bizdash/internal/auth"
	"github.com/spec-kit/bizdash/internal/config"
	"github.com/spec-kit/bizdash/internal/observability"
	"github.com/spec-kit/bizdash/internal/persistence"
	"github.com/spec-kit/bizdash/internal/repository"
	"github.com/spec-kit/bizdash/internal/sandbox"
	"github.com/spec-kit/bizdash/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.App.Name += "-sandbox"

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checks := map[string]handlers.Check{}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var repos repository.Set
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		repos = repository.NewPostgresSet(pg.PoolHandle())
		checks["postgres"] = pg.Ping
	} else {
		repos = repository.NewMemoryStore().Set()
	}

	var objects persistence.ObjectStore
	if cfg.Storage.Endpoint != "" {
		store, err := persistence.NewMinioStore(cfg.Storage)
		if err != nil {
			logger.Fatal("failed to init object store", zap.Error(err))
		}
		if err := store.EnsureBucket(ctx); err != nil {
			logger.Fatal("failed to ensure bucket", zap.Error(err))
		}
		objects = store
		checks["storage"] = store.Ping
	} else {
		base := cfg.Storage.PublicBaseURL
		if base == "" {
			base = "http://localhost:" + cfg.App.Port + "/uploads"
		}
		objects = persistence.NewMemoryObjectStore(base)
	}

	server := sandbox.New(sandbox.Deps{
		Repos:      repos,
		Objects:    objects,
		Tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	if err := server.Bootstrap(ctx, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
		logger.Fatal("failed to bootstrap super-admin", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	health := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks)

	app := server.App(observability.RequestID(), observability.RequestLogger(logger, metrics))
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)

	go func() {
		logger.Info("sandbox backend listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
