package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/cache"
	"github.com/sanlamamba/redbot/common/cache/redis"
	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/dedup"
	"github.com/sanlamamba/redbot/internal/enrich"
	"github.com/sanlamamba/redbot/internal/messaging"
	"github.com/sanlamamba/redbot/internal/scheduler"
	"github.com/sanlamamba/redbot/internal/sources"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting ingestion service",
		zap.String("hn_api_url", cfg.HNAPIBaseURL),
		zap.Strings("subreddits", cfg.Subreddits),
		zap.Int("company_pages", len(cfg.CompanyPages)),
		zap.Duration("polling_interval", cfg.PollingInterval))

	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer(context.Background(), "redbot-ingestion", cfg.OTLPEndpoint)
		if err != nil {
			logger.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer shutdown()
		}
	}

	apiCache := redis.New(cache.Options{
		DefaultTTL:    cfg.CacheTTL,
		RedisURL:      cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	defer apiCache.Close()

	hnClient := sources.NewHNClient(logger, cfg, apiCache)
	srcs := []sources.Source{
		sources.NewHackerNewsSource(hnClient, logger, cfg),
		sources.NewRedditSource(logger, cfg),
	}
	if len(cfg.CompanyPages) > 0 {
		srcs = append(srcs, sources.NewCompanyMonitor(logger, cfg))
	}

	publisher, err := messaging.NewPublisher(logger, cfg)
	if err != nil {
		logger.Fatal("failed to create NATS publisher", zap.Error(err))
	}
	defer publisher.Close()

	processor := enrich.NewProcessor(logger)
	tracker := dedup.NewTracker(apiCache, cfg.CacheTTL)

	jobScheduler := scheduler.NewJobScheduler(srcs, processor, publisher, tracker, logger, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := jobScheduler.Start(ctx); err != nil {
			logger.Error("job scheduler failed", zap.Error(err))
		}
	}()

	logger.Info("ingestion service started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	jobScheduler.Stop()
	logger.Info("shutdown complete")
}
