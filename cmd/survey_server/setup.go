package main

import (
	"context"
	"fmt"

	"github.com/jonathan/team-survey/internal/config"
	"github.com/jonathan/team-survey/internal/db"
	"github.com/jonathan/team-survey/internal/logging"
	"github.com/jonathan/team-survey/internal/sheets"
	"go.uber.org/zap"
)

// loadConfig reads and validates the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore connects and makes sure the responses table exists.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.DB, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	logger.Debug("database ready")
	return database, nil
}

// newMirror returns the spreadsheet mirror and its close function, or a
// discarding mirror when the spreadsheet is not configured.
func newMirror(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (sheets.Enqueuer, func(context.Context) error, error) {
	if !cfg.Enabled() {
		logger.Info("spreadsheet mirror disabled")
		return sheets.Discard{}, func(context.Context) error { return nil }, nil
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	client, err := sheets.NewClient(ctx, []byte(cfg.Credentials), cfg.SpreadsheetID, cfg.Range)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	mirror := sheets.NewMirror(client, sheets.Options{
		QueueSize:     cfg.QueueSize,
		AppendTimeout: cfg.AppendTimeout,
		Location:      loc,
	}, logger)
	logger.Info("spreadsheet mirror enabled",
		zap.String("range", cfg.Range),
		zap.String("timezone", loc.String()))
	return mirror, mirror.Close, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}
