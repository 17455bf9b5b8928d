// Package main is the entry point for the video-catalog-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"video-catalog-service/internal/app/service"
	"video-catalog-service/internal/config"
	"video-catalog-service/internal/domain"
	"video-catalog-service/internal/infra/fetch"
	"video-catalog-service/internal/infra/flatfile"
	rediscache "video-catalog-service/internal/infra/redis"
	"video-catalog-service/internal/infra/resultcache"
	"video-catalog-service/internal/infra/store"
	"video-catalog-service/internal/job"
	"video-catalog-service/internal/logger"
	"video-catalog-service/internal/transport/httpserver"
	"video-catalog-service/internal/validator"
	"video-catalog-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting video-catalog-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.String("dataset", cfg.Dataset.Path),
	)

	// Optionally refresh the dump from its remote source before loading
	if cfg.Dataset.Remote.URL != "" {
		fetcher := fetch.New(
			fetch.ClientConfig{
				URL:     cfg.Dataset.Remote.URL,
				Timeout: cfg.Dataset.Remote.Timeout,
				Retry: fetch.RetryConfig{
					MaxAttempts: cfg.Dataset.Remote.Retry.MaxAttempts,
					WaitTime:    cfg.Dataset.Remote.Retry.WaitTime,
					MaxWaitTime: cfg.Dataset.Remote.Retry.MaxWaitTime,
				},
				CB: fetch.CBConfig{
					MaxRequests:  cfg.Dataset.Remote.CB.MaxRequests,
					Interval:     cfg.Dataset.Remote.CB.Interval,
					Timeout:      cfg.Dataset.Remote.CB.Timeout,
					FailureRatio: cfg.Dataset.Remote.CB.FailureRatio,
				},
			},
			log.Logger,
		)
		if err := fetcher.Download(context.Background(), cfg.Dataset.Path); err != nil {
			// A stale local dump still beats no dump; the loader decides
			// what to do with whatever is on disk.
			log.Warn("remote dump refresh failed, using local file", zap.Error(err))
		}
	}

	// Build the catalog pipeline: parser -> loader -> snapshot store
	parser := flatfile.NewParser(cfg.Dataset.FieldDelimiter, cfg.Dataset.ListDelimiter)
	loader := flatfile.NewLoader(parser, cfg.Dataset.BatchSize, log.Logger)
	sampler := flatfile.NewSampler(parser, cfg.Dataset.SampleCap, log.Logger)

	st := store.New(loader, cfg.Dataset.Path, log.Logger)
	st.Start(context.Background())

	// In-process result cache
	results := resultcache.New(cfg.Cache.ResultCapacity, log.Logger)

	// Optional shared Redis cache for stats
	var (
		cache       domain.Cache
		redisClient *redis.Client
	)
	if cfg.Cache.SharedEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()

		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("shared cache enabled",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Duration("stats_ttl", cfg.Cache.StatsTTL),
		)
	} else {
		log.Info("shared cache disabled")
	}

	// Create services
	querySvc := service.NewQueryService(st, results, log.Logger)
	statsSvc := service.NewStatsService(sampler, st, cfg.Dataset.Path, cache, cfg.Cache.StatsTTL, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			AppName:   cfg.App.Name,
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
		},
		querySvc,
		statsSvc,
		st,
		v,
		log.Logger,
	)

	// Background stats refresh needs the shared cache to be worth the
	// scan; without Redis every instance computes stats on demand.
	var refresher *job.StatsRefresher
	if cfg.Cache.SharedEnabled {
		distLocker := locker.NewRedisLocker(redisClient, log.Logger)
		refresher = job.NewStatsRefresher(
			statsSvc,
			job.RefreshConfig{
				Interval:  cfg.Stats.RefreshInterval,
				Timeout:   cfg.Stats.RefreshTimeout,
				OnStartup: cfg.Stats.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		refresher.Start(cfg.Stats.OnStartup)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if refresher != nil {
			refresher.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
