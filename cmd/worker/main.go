package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/tasks"
	"github.com/businesscontrol/portal/libs/config"
	"github.com/businesscontrol/portal/libs/logger"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

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

	logger.Logger.Info("Starting Business Control email worker")

	catalog, err := i18n.NewCatalog(cfg.DefaultLocale)
	if err != nil {
		logger.Logger.Fatal("Failed to load translations", zap.Error(err))
	}

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Queues: tasks.Queues,
			Logger: logger.Logger.Sugar(),
		},
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	emailHandler := tasks.NewEmailHandler(
		tasks.NewRenderer(catalog, cfg.AppBaseURL),
		tasks.NewMailer(cfg.SMTP),
		logger.Logger,
	)
	emailHandler.Register(mux)

	// Start worker, signals are handled below
	if err := srv.Start(mux); err != nil {
		logger.Logger.Fatal("Failed to start worker", zap.Error(err))
	}

	logger.Logger.Info("Worker started", zap.Any("queues", tasks.Queues))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}
