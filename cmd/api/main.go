package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/fleet-admin/internal/api/http"
	"github.com/spec-kit/fleet-admin/internal/api/http/handlers"
	"github.com/spec-kit/fleet-admin/internal/auth"
	"github.com/spec-kit/fleet-admin/internal/config"
	"github.com/spec-kit/fleet-admin/internal/events"
	"github.com/spec-kit/fleet-admin/internal/observability"
	"github.com/spec-kit/fleet-admin/internal/persistence"
	"github.com/spec-kit/fleet-admin/internal/ratelimit"
	"github.com/spec-kit/fleet-admin/internal/repository"
	"github.com/spec-kit/fleet-admin/internal/service"
	"github.com/spec-kit/fleet-admin/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if _, err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	driverRepo := repository.NewDriverRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	tableRepo := repository.NewTableRepository(pool)

	revocationStore := auth.NewRedisRevocationStore(redis.Client)
	quotaTracker := ratelimit.NewRedisQuotaTracker(redis.Client)
	limiter := ratelimit.NewLimiter(quotaTracker, logger)
	authLimit, realtimeLimit, generalLimit := ratelimit.LimitsFromConfig(cfg.RateLimit)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, revocationStore)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	driverService := service.NewDriverService(driverRepo, locationRepo)
	jobService := service.NewJobService(jobRepo, driverRepo, dispatcher)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)
	documentService := service.NewDocumentService(documentRepo)
	auditService := service.NewAuditService(auditRepo, dispatcher, logger)
	tableService := service.NewTableService(tableRepo, pool, logger)

	worker.StartEventWorkers(auditService, notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), revocationStore, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ProxyHeader: cfg.App.ProxyHeader,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUsersHandler(userService),
		Drivers:       handlers.NewDriversHandler(driverService),
		Locations:     handlers.NewLocationsHandler(driverService),
		Jobs:          handlers.NewJobsHandler(jobService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Documents:     handlers.NewDocumentsHandler(documentService),
		Audit:         handlers.NewAuditHandler(auditService),
		Admin:         handlers.NewAdminHandler(tableService),

		AuthMiddleware: authMiddleware,
		Limiter:        limiter,
		AuthLimit:      authLimit,
		RealtimeLimit:  realtimeLimit,
		GeneralLimit:   generalLimit,
	})

	go func() {
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
