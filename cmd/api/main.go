// Package main is the entrypoint for the emotionlog API server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/emotionlog/emotionlog/internal/app"
	"github.com/emotionlog/emotionlog/internal/config"
	"github.com/emotionlog/emotionlog/internal/logging"
	"github.com/emotionlog/emotionlog/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dotenv, err := config.LoadDotEnv(".env")
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if dotenv {
		logger.Debug("dotenv_loaded", slog.String("path", ".env"))
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(newRouter(a), server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	srv.OnShutdown("dependencies", func(ctx context.Context) error {
		return a.Close()
	})

	logger.Info("starting_server",
		slog.Int("port", cfg.AppPort),
		slog.String("env", cfg.AppEnv),
		slog.String("sentiment_endpoint", cfg.Sentiment().Endpoint()),
	)

	return srv.Run(ctx)
}
