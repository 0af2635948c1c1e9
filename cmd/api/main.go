package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/businesscontrol/portal/docs"
	"github.com/businesscontrol/portal/internal/database"
	"github.com/businesscontrol/portal/internal/handlers"
	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/repositories"
	"github.com/businesscontrol/portal/internal/services"
	"github.com/businesscontrol/portal/internal/storage"
	"github.com/businesscontrol/portal/internal/tasks"
	"github.com/businesscontrol/portal/internal/validation"
	"github.com/businesscontrol/portal/libs/auth/middleware"
	"github.com/businesscontrol/portal/libs/auth/service"
	"github.com/businesscontrol/portal/libs/config"
	"github.com/businesscontrol/portal/libs/logger"
	loggerMiddleware "github.com/businesscontrol/portal/libs/logger/middleware"
	sharedMiddleware "github.com/businesscontrol/portal/libs/middlewares"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Body limits: JSON requests are small, submissions carry a few attachments
const (
	maxBodySize   = 1 << 20
	maxUploadSize = 25 << 20
)

// @title Business Control Portal API
// @version 1.0
// @description API of the Business Control cohort program: enrollment, weekly work and admin review.

// @contact.name API Support
// @contact.email support@businesscontrol.com

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. The access_token cookie works too.
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

	logger.Logger.Info("Starting Business Control Portal API")

	ctx := context.Background()

	// Connect to database
	db, err := database.Connect(ctx, cfg.DSN(), time.Minute, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db, database.MigrationsPath(os.Getenv("MIGRATIONS_PATH"))); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis, used for reminder de-duplication
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn("Redis is not reachable, reminders and emails are delayed", zap.Error(err))
	}

	// Email tasks are handed to the worker through asynq
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()
	enqueuer := tasks.NewEnqueuer(asynqClient, logger.Logger)

	// Localization and validation
	catalog, err := i18n.NewCatalog(cfg.DefaultLocale)
	if err != nil {
		logger.Logger.Fatal("Failed to load translations", zap.Error(err))
	}
	validator, err := validation.New(catalog)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize validator", zap.Error(err))
	}

	// File storage
	files, err := storage.New(ctx, cfg.Storage, cfg.AppBaseURL)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	userTokenRepo := repositories.NewUserTokenRepository(db)
	cohortRepo := repositories.NewCohortRepository(db, logger.Logger)
	enrollmentRepo := repositories.NewEnrollmentRepository(db, logger.Logger)
	weekRepo := repositories.NewWeekRepository(db, logger.Logger)
	submissionRepo := repositories.NewSubmissionRepository(db, logger.Logger)
	checklistRepo := repositories.NewChecklistProgressRepository(db)
	noteRepo := repositories.NewAdminNoteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, userTokenRepo, tokenGenerator, cfg.JWT.RefreshTokenExpiry, logger.Logger)
	profileService := services.NewProfileService(userRepo)
	enrollmentService := services.NewEnrollmentService(cohortRepo, enrollmentRepo, userRepo, enqueuer, logger.Logger)
	studentService := services.NewStudentService(userRepo, cohortRepo, enrollmentRepo, weekRepo, submissionRepo, checklistRepo, catalog)
	submissionService := services.NewSubmissionService(enrollmentRepo, weekRepo, submissionRepo, files, cfg.Storage.PresignLifetime, logger.Logger)
	adminService := services.NewAdminService(cohortRepo, enrollmentRepo, weekRepo, submissionRepo, checklistRepo, noteRepo, userRepo, enqueuer, catalog, logger.Logger)
	reminderService := services.NewReminderService(enrollmentRepo, tasks.NewRedisLock(rdb), enqueuer, cfg.Reminders.Window, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, catalog, validator, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, logger.Logger)
	profileHandler := handlers.NewProfileHandler(profileService, catalog, validator, logger.Logger)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, catalog, validator, logger.Logger)
	studentHandler := handlers.NewStudentHandler(studentService, catalog, validator, logger.Logger)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, cfg.Storage.Driver == "local", catalog, validator, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, catalog, validator, logger.Logger)
	internalHandler := handlers.NewInternalHandler(reminderService, authService, catalog, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenGenerator)
	adminMiddleware := middleware.RoleMiddleware(tokenGenerator, int(models.RoleAdmin))
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKeys)
	preferredLocale := handlers.PreferredLocaleMiddleware(profileService, logger.Logger)

	// Credential and code guessing get a tighter budget than the global one
	credentialLimiter := httprate.LimitByIP(10, time.Minute)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger.Logger))
	r.Use(sharedMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(sharedMiddleware.RequestSizeLimitMiddleware(maxBodySize, maxUploadSize))
	r.Use(i18n.Middleware(catalog))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	r.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, credentialLimiter)

		// Student area
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(preferredLocale)
			profileHandler.RegisterRoutes(r)
			enrollmentHandler.RegisterRoutes(r, credentialLimiter)
			studentHandler.RegisterRoutes(r)
			submissionHandler.RegisterRoutes(r)
		})

		// Admin area
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Use(preferredLocale)
			adminHandler.RegisterRoutes(r)
		})

		// Maintenance hooks for cron callers
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			internalHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
