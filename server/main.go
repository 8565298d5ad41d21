package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/api/routes"
	"inkwell/internal/notifications"
	"inkwell/internal/shared/config"
	"inkwell/internal/shared/database"
	"inkwell/internal/shared/middleware"
	"inkwell/pkg/logger"
	"inkwell/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load and validate config. Signing secrets have no defaults, so a
	// misconfigured deployment fails here instead of serving forgeable tokens.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		appLogger.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize DB (runs migrations)
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:        cfg.RateLimit.Enabled,
			WindowDuration: cfg.RateLimit.WindowDuration,
			PublicRequests: cfg.RateLimit.PublicRequests,
			AuthRequests:   cfg.RateLimit.AuthRequests,
			WriteRequests:  cfg.RateLimit.WriteRequests,
			AdminRequests:  cfg.RateLimit.AdminRequests,
			HealthRequests: cfg.RateLimit.HealthRequests,
			WhitelistedIPs: cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("public_requests", cfg.RateLimit.PublicRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Initialize Kafka publisher. The API keeps serving when the broker is
	// down; events are simply not emitted.
	var publisher notifications.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := notifications.NewKafkaPublisher(
			notifications.DefaultKafkaProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic))
		if err != nil {
			appLogger.Error("Failed to initialize Kafka publisher", slog.Any("error", err))
			appLogger.Info("Continuing without event publishing")
		} else {
			publisher = kafkaPublisher
			defer func() {
				if err := kafkaPublisher.Close(); err != nil {
					appLogger.Error("Error closing Kafka publisher", slog.Any("error", err))
				}
			}()
			appLogger.Info("Kafka publisher initialized",
				slog.String("topic", cfg.Kafka.EventsTopic),
			)
		}
	}

	// Setup router
	router := setupRouter(cfg, db, rateLimiter, publisher)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", Version),
			slog.Bool("redis_cache", (db.Redis != nil)),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("event_publishing", publisher != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, publisher notifications.Publisher) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Every handler gets a bounded store round-trip budget.
	engine.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, db, publisher)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
