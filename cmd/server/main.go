package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/onlyfin/service-social/internal/application"
	"github.com/onlyfin/service-social/internal/config"
	socialEvents "github.com/onlyfin/service-social/internal/events"
	"github.com/onlyfin/service-social/internal/handler"
	"github.com/onlyfin/service-social/internal/repository"
	"github.com/onlyfin/service-social/pkg/auth"
	"github.com/onlyfin/service-social/pkg/database"
	"github.com/onlyfin/service-social/pkg/health"
	"github.com/onlyfin/service-social/pkg/kafka"
	"github.com/onlyfin/service-social/pkg/logger"
	"github.com/onlyfin/service-social/pkg/metrics"
	"github.com/onlyfin/service-social/pkg/middleware"
)

const serviceName = "service-social"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.IsDevelopment() {
		if err := db.AutoMigrate(repository.Models()...); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", zapLogger); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTokenTTL)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	defer kafkaProducer.Close()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	subRepo := repository.NewGormSubscriptionRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	purgeRepo := repository.NewGormPurgeRepository(db)

	// Initialize application services
	userService := application.NewUserService(userRepo, zapLogger)
	subService := application.NewSubscriptionService(userService, subRepo, kafkaProducer, zapLogger)
	reviewService := application.NewReviewService(userService, reviewRepo, kafkaProducer, zapLogger)
	accountService := application.NewAccountService(userService, reviewRepo, purgeRepo, kafkaProducer, zapLogger)

	// Initialize Kafka consumer for user events
	userConsumer := socialEvents.NewUserEventConsumer(
		cfg.KafkaConfig.Brokers,
		cfg.KafkaConfig.GroupID("user-events"),
		accountService,
		zapLogger,
	)
	defer userConsumer.Close()

	// Start Kafka consumer in a goroutine
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	go func() {
		zapLogger.Info("starting user event consumer")
		if err := userConsumer.Start(consumerCtx); err != nil {
			if consumerCtx.Err() == nil {
				zapLogger.Error("user event consumer failed", zap.Error(err))
			}
		}
	}()

	// Rate limiting on write routes is enabled when Redis is configured
	var writeLimiters []gin.HandlerFunc
	if cfg.RedisConfig.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
		})
		defer redisClient.Close()
		writeLimiters = append(writeLimiters,
			middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, zapLogger))
		zapLogger.Info("rate limiting enabled", zap.Int("per_minute", cfg.RateLimitPerMinute))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics("social", registry)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(httpMetrics.Middleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigin))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check and metrics routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", metrics.Handler(registry))

	// Register API routes
	root := router.Group("")
	handler.NewSubscriptionHandler(subService).RegisterRoutes(root, jwtManager, writeLimiters...)
	handler.NewReviewHandler(reviewService).RegisterRoutes(root, jwtManager, writeLimiters...)
	handler.NewAdminHandler(accountService).RegisterRoutes(root, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down " + serviceName + "...")

	// Cancel Kafka consumer
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info(serviceName + " stopped")
}
