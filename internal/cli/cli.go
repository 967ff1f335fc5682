// Package cli implements the command-line interface for metro-pipeline.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/metroretail/metro-pipeline/internal/config"
	"github.com/metroretail/metro-pipeline/internal/logging"
	"github.com/metroretail/metro-pipeline/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "metro-pipeline",
		Short: "Batch ELT pipeline for the MetroRetail analytics warehouse",
		Long: `metro-pipeline runs the MetroRetail analytics warehouse: raw
source extracts are staged with typed columns and per-field quality
flags, conformed into deduplicated and scored Silver entities (with
SCD Type 2 product history), and published as a star schema with
facts, bridge and summary tables.

Every logical load is tracked in an ingestion manifest, and each run
ends with a health report derived from per-entity valid percentages.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./metro-pipeline.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
