package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bizdash/internal/api/http"
	"github.com/spec-kit/bizdash/internal/api/http/handlers"
	"github.com/spec-kit/bizdash/internal/config"
	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/events"
	"github.com/spec-kit/bizdash/internal/observability"
	"github.com/spec-kit/bizdash/internal/persistence"
	"github.com/spec-kit/bizdash/internal/service"
	"github.com/spec-kit/bizdash/internal/session"
	"github.com/spec-kit/bizdash/internal/worker"
	"github.com/spec-kit/bizdash/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	var persister session.Persister
	checks := map[string]handlers.Check{}
	if cfg.Redis.Addr != "" {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		persister = redis.SessionPersister(credential.TTL)
		checks["redis"] = redis.Ping
	} else {
		logger.Warn("REDIS_ADDR not provided; session snapshots are kept in memory")
		memory := session.NewMemoryPersister()
		janitor := worker.NewSnapshotJanitor(memory, credential.TTL, logger)
		if err := janitor.Start("0 0 * * * *"); err != nil {
			logger.Fatal("failed to schedule snapshot janitor", zap.Error(err))
		}
		defer janitor.Stop(context.Background())
		persister = memory
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	factory := workspace.NewFactory(workspace.Options{
		BaseURL:    cfg.Gateway.BaseURL,
		Timeout:    cfg.Gateway.ClientTimeout(),
		Persister:  persister,
		Cookie:     credential.CookieOptions{Domain: cfg.Cookie.Domain, Secure: cfg.Cookie.Secure},
		Logger:     logger,
		Metrics:    metrics,
		Dispatcher: dispatcher,
	})

	deps := service.Dependencies{Logger: logger, Dispatcher: dispatcher}
	adminAuth := service.NewAuthService(cfg.Gateway, deps)
	staffAuth := service.NewStaffAuthService(cfg.Gateway, deps)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		BodyLimit:             10 << 20,
		UnescapePath:          true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Auth:           handlers.NewAuthHandler(adminAuth, staffAuth),
		Business:       handlers.NewBusinessHandler(service.NewBusinessService(deps)),
		Blog:           handlers.NewBlogHandler(service.NewBlogService(deps)),
		Staff:          handlers.NewStaffHandler(service.NewStaffService(deps)),
		Settings:       handlers.NewSettingsHandler(service.NewAdminService(deps)),
		Portal:         handlers.NewPortalHandler(service.NewAttendanceService(deps)),
		Workspace:      factory,
		AdminAuth:      adminAuth,
		StaffAuth:      staffAuth,
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
		LoginBurst:     cfg.RateLimit.LoginBurst,
		Logger:         logger,
	})

	go func() {
		logger.Info("dashboard listening", zap.String("addr", cfg.App.Addr()), zap.String("backend", cfg.Gateway.BaseURL))
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
