// Package main provides the entry point for the team survey HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "time/tzdata" // sheet timestamps use a named zone
)

var rootCmd = &cobra.Command{
	Use:           "survey_server",
	Short:         "Team effectiveness survey API server",
	Long:          "Collects Yes/Maybe/No team effectiveness survey responses and serves aggregated dashboard statistics over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
