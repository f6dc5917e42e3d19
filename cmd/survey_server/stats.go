package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/team-survey/internal/observability"
	"github.com/jonathan/team-survey/internal/server"
	"github.com/jonathan/team-survey/internal/survey"
	"github.com/spf13/cobra"
)

var (
	statsDepartment string
	statsLocation   string
	statsJSON       bool
	statsOptions    bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard statistics",
	Long:  `Aggregate stored responses for an optional department and location and print the dashboard.`,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsDepartment, "department", "d", server.AllValues, "Department to filter by")
	statsCmd.Flags().StringVarP(&statsLocation, "location", "l", server.AllValues, "Location to filter by")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print the dashboard-stats JSON payload")
	statsCmd.Flags().BoolVar(&statsOptions, "options", false, "Print the known departments and locations instead")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	database, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	catalog := survey.DefaultCatalog()
	svc := server.NewStatsService(database, survey.NewAggregator(catalog))
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if statsOptions {
		opts, err := svc.FilterOptions(ctx)
		if err != nil {
			return err
		}
		if statsJSON {
			return writeJSON(cmd, opts)
		}
		printer.PrintFilterOptions(opts)
		return nil
	}

	dashboard, err := svc.DashboardStats(ctx, server.Filter{
		Department: statsDepartment,
		Location:   statsLocation,
	})
	if err != nil {
		return err
	}
	if statsJSON {
		return writeJSON(cmd, dashboard)
	}
	printer.PrintDashboard(dashboard, catalog)
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
