// Command server runs the HTTP API for channel video fetch-and-rank.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sk408/yt-fix/internal/config"
	"github.com/sk408/yt-fix/internal/handler"
	"github.com/sk408/yt-fix/internal/middleware"
	"github.com/sk408/yt-fix/internal/ranking"
	"github.com/sk408/yt-fix/internal/service"
	"github.com/sk408/yt-fix/internal/service/quota"
	"github.com/sk408/yt-fix/internal/youtube"
	"github.com/sk408/yt-fix/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Log

	if cfg.YouTube.APIKey == "" {
		log.Fatal("YouTube API key is not configured (YOUTUBE_API_KEY)")
	}

	quotaManager := quota.NewManager(cfg.Quota.DailyLimit, cfg.Quota.ThresholdPercent, logger.Named("quota"))

	client, err := youtube.NewClient(context.Background(), cfg.YouTube.APIKey, quotaManager, youtube.ClientOptions{
		PageSize: int64(cfg.YouTube.PageSize),
		Logger:   logger.Named("youtube"),
	})
	if err != nil {
		log.Fatal("failed to initialize YouTube client", zap.Error(err))
	}

	fetcher := service.NewFetcher(client, service.FetcherOptions{
		MaxPages:     cfg.YouTube.MaxPages,
		RetryBackoff: cfg.YouTube.RetryBackoff,
		Logger:       logger.Named("fetcher"),
	})
	engine := ranking.NewEngine()
	defaults := ranking.Weights{
		LikeWeight:   cfg.Ranking.LikeWeight,
		ViewWeight:   cfg.Ranking.ViewWeight,
		HalfLifeDays: cfg.Ranking.HalfLifeDays,
	}

	rankHandler := handler.NewRankHandler(fetcher, engine, defaults, logger.Named("rank"))
	estimateHandler := handler.NewEstimateHandler(client, quotaManager, logger.Named("estimate"))
	healthHandler := handler.NewHealthHandler(func() bool { return !quotaManager.Exhausted() })
	authMiddleware := middleware.NewAPIKeyAuth(cfg.Server.APIKeys, logger.Named("auth"))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	router.GET("/healthz", healthHandler.LivenessProbe)
	router.GET("/readyz", healthHandler.ReadinessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	if len(cfg.Server.APIKeys) > 0 {
		api.Use(authMiddleware.Middleware())
	} else {
		log.Warn("no API keys configured - /api/v1 endpoints are unauthenticated")
	}
	api.POST("/rank", rankHandler.HandleRank)
	api.GET("/estimate", estimateHandler.HandleEstimate)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // a full channel fetch can span many pages
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("server error", zap.Error(err))
	case sig := <-shutdown:
		log.Info("shutdown signal received", zap.Stringer("signal", sig))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				log.Error("failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		log.Info("server stopped gracefully")
	}
}
