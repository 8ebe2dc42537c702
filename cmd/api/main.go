package main

import (
	"context"
	"log"
	"time"

	"shipping-analytics/internal/core/cache"
	"shipping-analytics/internal/core/config"
	"shipping-analytics/internal/core/logger"
	"shipping-analytics/internal/core/server"
	analyticshandler "shipping-analytics/internal/features/analytics/handler"
	analyticsservice "shipping-analytics/internal/features/analytics/service"
	authhandler "shipping-analytics/internal/features/auth/handler"
	authservice "shipping-analytics/internal/features/auth/service"
	datasetadapter "shipping-analytics/internal/features/datasets/adapters"
	datasetports "shipping-analytics/internal/features/datasets/ports"
	datasetservice "shipping-analytics/internal/features/datasets/service"
	enrichadapter "shipping-analytics/internal/features/enrich/adapters"
	enrichservice "shipping-analytics/internal/features/enrich/service"
	reportdomain "shipping-analytics/internal/features/reports/domain"
	reportservice "shipping-analytics/internal/features/reports/service"
	sessionadapter "shipping-analytics/internal/features/sessions/adapters"
	sessionservice "shipping-analytics/internal/features/sessions/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title Shipping Analytics API
// @version 1.0
// @description Multi-courier shipment analytics: uploads, SLA compliance and performance reports.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /api
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Session store: Redis when configured, in-process otherwise.
	var store cache.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
		if err != nil {
			l.Fatal("Failed to create Redis adapter", zap.Error(err))
		}
		if err := redisCache.Ping(context.Background()); err != nil {
			l.Fatal("Redis health check failed", zap.Error(err))
		}
		l.Info("Redis connection verified")
		store = redisCache
	} else {
		l.Info("No Redis URL configured, using in-process session store")
		store = cache.NewMemoryAdapter()
	}
	defer store.Close()

	sessionTTL := time.Duration(cfg.Redis.SessionTTLMinutes) * time.Minute
	repo := sessionadapter.NewCacheRepository(store, sessionTTL)
	memo := sessionservice.NewMemoizer(cfg.Analytics.MemoCapacity)

	ingestSvc := datasetservice.NewIngestService([]datasetports.TableReader{
		datasetadapter.NewExcelReader(),
		datasetadapter.NewCSVReader(),
	})

	enrichSvc := enrichservice.NewEnrichmentService(cfg.Analytics.DefaultSLADays, l,
		enrichadapter.NewAramexProfile(),
		enrichadapter.NewSMSAProfile(),
		enrichadapter.NewNiceOneProfile(),
	)

	reportSvc := reportservice.NewReportService(reportdomain.DelayTiers{
		MinorDays:    cfg.Analytics.DelayTierMinorDays,
		ModerateDays: cfg.Analytics.DelayTierModerateDays,
		SevereDays:   cfg.Analytics.DelayTierSevereDays,
	}, cfg.Analytics.DelayFallbackDays, l)

	analyticsSvc := analyticsservice.NewAnalyticsService(ingestSvc, enrichSvc, reportSvc, repo, memo, l)
	analyticsHdl := analyticshandler.NewAnalyticsHandler(analyticsSvc)

	authSvc := authservice.NewAuthService(cfg.Auth.PasswordHash, store, sessionTTL, l)
	authHdl := authhandler.NewAuthHandler(authSvc)

	srv := server.New(cfg)

	srv.App.Get("/health", func(c *fiber.Ctx) error {
		if err := store.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := srv.App.Group("/api")
	api.Post("/auth/login", authHdl.Login)
	api.Post("/auth/logout", authHdl.Logout)

	api.Use(authhandler.RequireSession(authSvc))
	analyticsHdl.RegisterRoutes(api)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
