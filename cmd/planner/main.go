// Package main is the entry point for the planner command line.
// It wires the local store and hands control to internal/cli.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pkordes/trip-planner/internal/cli"
	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadLocal()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// Store events (purged documents, imports) go to stderr so they never mix
	// with exported data written to stdout.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	open := func(ctx context.Context) (cli.Store, func(), error) {
		r, closeRepo, err := repo.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		st, err := service.NewStore(ctx, r, service.Options{
			Key:                cfg.StateKey,
			RequireArrivalDate: cfg.RequireArrivalDate,
			Logger:             logger,
		})
		if err != nil {
			closeRepo()
			return nil, nil, err
		}
		return st, closeRepo, nil
	}

	if err := cli.Execute(cli.Env{Open: open}); err != nil {
		os.Exit(1)
	}
}
