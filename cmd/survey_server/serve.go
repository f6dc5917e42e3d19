package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/team-survey/internal/server"
	"github.com/jonathan/team-survey/internal/server/ratelimit"
	"github.com/jonathan/team-survey/internal/survey"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts survey submissions and serves dashboard statistics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	mirror, closeMirror, err := newMirror(ctx, cfg.Sheets, logger)
	if err != nil {
		database.Close()
		return err
	}

	srv := server.New(server.Config{
		Port:            cfg.Port,
		ShutdownTimeout: cfg.ShutdownTimeout,
		RateLimit:       ratelimit.LoadConfig(),
	}, server.Deps{
		Store:   database,
		Catalog: survey.DefaultCatalog(),
		Mirror:  mirror,
		Logger:  logger,
	})
	// The mirror drains before the pool closes.
	srv.OnShutdown(closeMirror)
	srv.OnShutdown(func(context.Context) error {
		database.Close()
		return nil
	})

	return srv.Start(ctx)
}
