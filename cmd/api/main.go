package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/campus-helpdesk/internal/api/http"
	"github.com/spec-kit/campus-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/campus-helpdesk/internal/auth"
	"github.com/spec-kit/campus-helpdesk/internal/classifier"
	"github.com/spec-kit/campus-helpdesk/internal/config"
	"github.com/spec-kit/campus-helpdesk/internal/events"
	"github.com/spec-kit/campus-helpdesk/internal/intake"
	"github.com/spec-kit/campus-helpdesk/internal/observability"
	"github.com/spec-kit/campus-helpdesk/internal/persistence"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
	"github.com/spec-kit/campus-helpdesk/internal/service"
	"github.com/spec-kit/campus-helpdesk/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	requestRepo := repository.NewRecentQueryCache(
		repository.NewRequestRepository(pool), redis.Client, cfg.Intake.DuplicateWindow, logger)
	technicianRepo := repository.NewTechnicianRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	maintenanceRepo := repository.NewMaintenanceMapRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var predictor intake.Predictor
	if cfg.Intake.ModelPath != "" {
		model, err := classifier.Load(cfg.Intake.ModelPath)
		if err != nil {
			logger.Warn("classifier model unavailable, falling back to keyword rules",
				zap.String("path", cfg.Intake.ModelPath), zap.Error(err))
		} else {
			predictor = model
		}
	}

	rosterService := service.NewRosterService(technicianRepo, cfg.Auth.BcryptCost)
	intakeClassifier := intake.NewClassifier(predictor, maintenanceRepo, rosterService)
	duplicates := intake.NewDuplicateDetector(requestRepo, cfg.Intake.DuplicateWindow, cfg.Intake.DuplicateThreshold)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StudentRepo:    studentRepo,
		TechnicianRepo: technicianRepo,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), studentRepo, technicianRepo)

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		RequestRepo:    requestRepo,
		TechnicianRepo: technicianRepo,
		Duplicates:     duplicates,
		Classifier:     intakeClassifier,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo:    requestRepo,
		TechnicianRepo: technicianRepo,
		Dispatcher:     dispatcher,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, redis.Client)
	worker.StartNotificationWorker(notificationService)

	if cfg.App.SeedData {
		if err := service.SeedDemoData(ctx, service.SeedDependencies{
			StudentRepo:     studentRepo,
			TechnicianRepo:  technicianRepo,
			MaintenanceRepo: maintenanceRepo,
		}, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	requestsHandler := handlers.NewRequestsHandler(intakeService, requestService)
	technicianHandler := handlers.NewTechnicianHandler(requestService)
	adminHandler := handlers.NewAdminHandler(requestService, rosterService, metrics, cfg.Auth.AdminName)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Requests:       requestsHandler,
		Technicians:    technicianHandler,
		Admin:          adminHandler,
		AuthMiddleware: authMiddleware,
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
