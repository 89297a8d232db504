// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/promptacademy/platform-api/internal/admin"
	"github.com/promptacademy/platform-api/internal/auth"
	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/content"
	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/course"
	"github.com/promptacademy/platform-api/internal/health"
	"github.com/promptacademy/platform-api/internal/media"
	"github.com/promptacademy/platform-api/internal/middleware"
	"github.com/promptacademy/platform-api/internal/news"
	"github.com/promptacademy/platform-api/internal/payment"
	"github.com/promptacademy/platform-api/internal/server"
	"github.com/promptacademy/platform-api/internal/tier"
	"github.com/promptacademy/platform-api/internal/user"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	genKeys := flag.Bool("generate-keys", false, "generate a JWT key pair and exit")
	flag.Parse()

	if *genKeys {
		cfg, err := config.Load(*configPath)
		if err != nil {
			slog.Error("config error", "error", err)
			os.Exit(1)
		}
		if err := auth.GenerateKeyPair(
			cfg.JWT.PrivateKeyPath,
			cfg.JWT.PublicKeyPath,
		); err != nil {
			slog.Error("key generation error", "error", err)
			os.Exit(1)
		}
		slog.Info("key pair written",
			"private", cfg.JWT.PrivateKeyPath,
			"public", cfg.JWT.PublicKeyPath,
		)
		return
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("migrations applied")

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	// One breakpoint table drives both user tiers and course tiers.
	policy, err := tier.NewPolicy(tier.Breakpoints{
		Intermediate: cfg.Billing.IntermediateBreakpoint,
		Premium:      cfg.Billing.PremiumBreakpoint,
	})
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, policy)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(
		jwtManager,
		userSvc,
		redis.Client,
		cfg.JWT.AccessTokenExpire,
	)
	authHandler := auth.NewHandler(authSvc)

	courseRepo := course.NewRepository(db.DB)
	courseSvc := course.NewService(courseRepo, userSvc, policy)
	courseHandler := course.NewHandler(courseSvc)

	var paymentHandler *payment.Handler
	if gateway, gwErr := payment.NewGateway(cfg.Payment); gwErr == nil {
		paymentRepo := payment.NewRepository(db.DB)
		paymentSvc := payment.NewService(
			db.DB,
			paymentRepo,
			gateway,
			policy,
			cfg.Billing,
			logger,
		)
		paymentHandler = payment.NewHandler(paymentSvc)
	} else {
		logger.Warn("payments disabled", "error", gwErr)
	}

	newsClient := news.NewClient(cfg.News, logger)
	newsRepo := news.NewRepository(db.DB)
	newsSvc := news.NewService(newsRepo, newsClient, cfg.News, logger)
	newsHandler := news.NewHandler(newsSvc)

	contentRepo := content.NewRepository(db.DB)
	contentSvc := content.NewService(contentRepo)
	contentHandler := content.NewHandler(contentSvc)

	var mediaHandler *media.Handler
	if cfg.Storage.AccessKeyID != "" {
		storage, storageErr := media.NewStorage(ctx, cfg.Storage)
		if storageErr != nil {
			return storageErr
		}
		mediaHandler = media.NewHandler(storage)
	} else {
		logger.Warn("media storage disabled: no S3 credentials configured")
	}

	healthHandler := health.NewHandler(db, redis, cfg.App.Version)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DB:         db.DB,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	rateLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		CORSConfig:    cfg.CORS,
		HealthHandler: healthHandler,
		Logger:        logger,
		Production:    cfg.IsProduction(),
		RateLimiter:   rateLimiter.Handler,
	})

	router := srv.Router()

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	// Authenticated traffic gets per-tier limits on top of the global
	// IP limiter applied in server.New.
	tieredLimiter := middleware.TieredRateLimiter(
		redis.Client,
		middleware.DefaultTiers,
	)
	authenticate := middleware.Authenticator(authSvc)
	authenticator := func(next http.Handler) http.Handler {
		return authenticate(tieredLimiter(next))
	}
	optionalAuth := middleware.OptionalAuth(authSvc)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		courseHandler.RegisterRoutes(r, optionalAuth, authenticator)
		if paymentHandler != nil {
			paymentHandler.RegisterRoutes(r, authenticator)
		}
		newsHandler.RegisterRoutes(r)
		contentHandler.RegisterRoutes(r, authenticator)
		if mediaHandler != nil {
			mediaHandler.RegisterRoutes(r, authenticator)
		}
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	healthHandler.SetShutdown(true)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+cfg.Server.DrainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, cfg.Server.DrainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
