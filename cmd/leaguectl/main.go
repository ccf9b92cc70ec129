// Command leaguectl is a terminal client for the league simulation service.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/utakatalp/league-console/internal/api"
	"github.com/utakatalp/league-console/internal/config"
	"github.com/utakatalp/league-console/internal/console"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	logger := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(api.Config{
		BaseURL: cfg.APIBase,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	logger.Info().Str("api_base", client.BaseURL()).Dur("timeout", cfg.Timeout).Msg("leaguectl starting")

	if err := console.New(client, os.Stdin, os.Stdout, logger).Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("console")
	}
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
