package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/majifix/service-request/internal/api/http"
	"github.com/majifix/service-request/internal/api/http/handlers"
	"github.com/majifix/service-request/internal/auth"
	"github.com/majifix/service-request/internal/config"
	"github.com/majifix/service-request/internal/counter"
	"github.com/majifix/service-request/internal/events"
	"github.com/majifix/service-request/internal/observability"
	"github.com/majifix/service-request/internal/persistence"
	"github.com/majifix/service-request/internal/repository"
	"github.com/majifix/service-request/internal/service"
	"github.com/majifix/service-request/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	requestRepo := repository.NewServiceRequestRepository(pool)
	jurisdictionRepo := repository.NewJurisdictionRepository(pool)
	groupRepo := repository.NewServiceGroupRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)
	priorityRepo := repository.NewPriorityRepository(pool)
	reportingRepo := repository.NewReportingRepository(pool, cfg.App.DefaultLocale)

	dispatcher := events.NewInMemoryDispatcher()

	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo:      requestRepo,
		JurisdictionRepo: jurisdictionRepo,
		GroupRepo:        groupRepo,
		ServiceRepo:      serviceRepo,
		StatusRepo:       statusRepo,
		PriorityRepo:     priorityRepo,
		CodeGenerator:    counter.NewRedisGenerator(redis.Client),
		Dispatcher:       dispatcher,
	})
	reportingService := service.NewReportingService(service.ReportingDependencies{
		ReportingRepo:    reportingRepo,
		JurisdictionRepo: jurisdictionRepo,
		ServiceRepo:      serviceRepo,
		StatusRepo:       statusRepo,
		PriorityRepo:     priorityRepo,
		Locale:           cfg.App.DefaultLocale,
	})

	syncService := service.NewSyncService(cfg.Sync, cfg.App.DefaultLocale, logger)
	syncWorker := worker.NewSyncWorker(syncService, logger, cfg.App.IsProduction())
	syncWorker.Register(dispatcher)

	authMiddleware := auth.NewMiddleware(auth.NewTokenManager(cfg.Auth.JWTSecret))

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		ServiceRequests: handlers.NewServiceRequestsHandler(requestService, cfg.App.DefaultLocale),
		Reports:         handlers.NewReportsHandler(reportingService),
		AuthMiddleware:  authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	syncWorker.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
