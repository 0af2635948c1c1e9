package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/businesscontrol/portal/internal/database"
	"github.com/businesscontrol/portal/internal/repositories"
	"github.com/businesscontrol/portal/internal/services"
	"github.com/businesscontrol/portal/internal/tasks"
	"github.com/businesscontrol/portal/libs/auth/service"
	"github.com/businesscontrol/portal/libs/config"
	"github.com/businesscontrol/portal/libs/logger"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// tokenCleanupSpec runs the refresh token cleanup every night
const tokenCleanupSpec = "30 3 * * *"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Business Control scheduler")

	ctx := context.Background()

	// Connect to database
	db, err := database.Connect(ctx, cfg.DSN(), time.Minute, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize repositories and services
	enrollmentRepo := repositories.NewEnrollmentRepository(db, logger.Logger)
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	userTokenRepo := repositories.NewUserTokenRepository(db)

	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authService := services.NewAuthService(userRepo, userTokenRepo, tokenGenerator, cfg.JWT.RefreshTokenExpiry, logger.Logger)
	reminderService := services.NewReminderService(
		enrollmentRepo,
		tasks.NewRedisLock(rdb),
		tasks.NewEnqueuer(asynqClient, logger.Logger),
		cfg.Reminders.Window,
		logger.Logger,
	)

	scheduler, err := NewScheduler(cfg.Reminders.Cron, tokenCleanupSpec, reminderService, authService, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	scheduler.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down scheduler...")
	scheduler.Stop()
	logger.Logger.Info("Scheduler exited")
}
