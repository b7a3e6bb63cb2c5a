package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/snehalsudhakarkadam-code/RailSathiBE/internal/api/http"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/api/http/handlers"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/auth"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/config"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/events"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/notify"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/observability"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/persistence"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/repository"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/service"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/storage"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/worker"
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
	complaintRepo := repository.NewComplaintRepository(pool)
	mediaRepo := repository.NewMediaRepository(pool)
	trainRepo := repository.NewTrainRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	directoryRepo := repository.NewDirectoryRepository(pool)

	store := storage.NewFileStore(cfg.Upload)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	resolver := notify.NewResolver(trainRepo, directoryRepo, logger)
	composer := notify.NewComposer(cfg.Mail, cfg.App.Env)
	mailer := notify.NewSMTPMailer(cfg.Mail, logger)
	pipeline := notify.NewPipeline(resolver, composer, mailer, logger)

	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		MediaRepo:     mediaRepo,
		TrainRepo:     trainRepo,
		StaffRepo:     staffRepo,
		Store:         store,
		Dispatcher:    dispatcher,
		Logger:        logger,
		MaxImages:     cfg.Upload.MaxImagesPerComplaint,
	})
	notificationService := service.NewNotificationService(dispatcher, pipeline, metrics, logger)
	authService := service.NewAuthService(cfg.Auth, staffRepo)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 64 * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Static("/media", cfg.Upload.Dir)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		RoComplaints:   handlers.NewRoComplaintsHandler(complaintService),
		AuthMiddleware: authMiddleware,
		RateLimiter:    httptransport.RateLimiter(redis, logger, cfg.RateLimit.RequestsPerMinute),
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
