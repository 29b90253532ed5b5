// Package app wires configuration into the repository, cache, classifier and
// services shared by the API server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emotionlog/emotionlog/internal/cache"
	"github.com/emotionlog/emotionlog/internal/config"
	"github.com/emotionlog/emotionlog/internal/logging"
	"github.com/emotionlog/emotionlog/internal/metrics"
	"github.com/emotionlog/emotionlog/internal/repository"
	"github.com/emotionlog/emotionlog/internal/sentiment"
	"github.com/emotionlog/emotionlog/internal/service"
)

// App holds the long-lived dependencies of a process.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Repo     *repository.Repository
	Cache    *cache.Cache // nil without REDIS_URL
	Metrics  *metrics.InMemoryRecorder
	Analyzer *sentiment.Analyzer
	Clients  *service.ClientService
	Emotions *service.EmotionService
}

// New connects to Postgres and, when configured, Redis, then builds the
// services. Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database %s: %s", logging.RedactURL(cfg.DatabaseURL), logging.SanitizeError(err, cfg.DatabaseURL))
	}
	logger.Info("database_connected")

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Repo:    repo,
		Metrics: metrics.NewInMemory(),
	}

	var locker service.Locker
	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("connect redis %s: %s", logging.RedactURL(cfg.RedisURL), logging.SanitizeError(err, cfg.RedisURL))
		}
		a.Cache = c
		locker = cache.NewLocker(c, cfg.LockTTL, cfg.LockWait, logger)
		logger.Info("redis_connected", slog.String("locks", "distributed"))
	} else {
		locker = service.NewLocalLocker()
		logger.Info("redis_not_configured", slog.String("locks", "process_local"))
	}

	if !cfg.HasSentimentToken() {
		logger.Warn("sentiment_token_missing",
			slog.String("effect", "emotion creation fails with CONFIGURATION_ERROR"),
		)
	}

	client := sentiment.NewClient(cfg.Sentiment(), nil, logger)
	a.Analyzer = sentiment.NewAnalyzer(client, logger, a.Metrics)
	a.Clients = service.NewClientService(repo, locker, logger, a.Metrics)
	a.Emotions = service.NewEmotionService(repo, a.Clients, a.Analyzer, locker, logger, a.Metrics)

	return a, nil
}

// Close releases the Redis client and the database pool.
func (a *App) Close() error {
	var err error
	if a.Cache != nil {
		err = a.Cache.Close()
	}
	a.Repo.Close()
	return err
}
