package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/metroretail/metro-pipeline/internal/db"
	"github.com/metroretail/metro-pipeline/internal/logging"
	"github.com/metroretail/metro-pipeline/internal/pipeline"
)

var (
	runFKPolicy string
	runStrategy string
	runStages   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a pipeline run",
	Long: `Run the pipeline end to end: stage the raw extracts with typed
columns and quality flags, conform and score the Silver entities
(advancing SCD Type 2 product history), rebuild the gold star schema
and summary tables, and print the run health report.

Examples:
  metro-pipeline run --fk-policy enforce --strategy merge
  metro-pipeline run --stages silver,gold`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runFKPolicy, "fk-policy", "",
		"foreign-key policy: advisory or enforce (default: advisory)")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "",
		"materialization strategy: full-refresh or merge (default: full-refresh)")
	runCmd.Flags().StringVar(&runStages, "stages", "",
		"comma-separated stages to run in layer order: staging,silver,gold (default: all)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runFKPolicy != "" {
		cfg.Pipeline.FKPolicy = runFKPolicy
	}
	if runStrategy != "" {
		cfg.Pipeline.Strategy = runStrategy
	}

	if err := cfg.ValidatePipeline(); err != nil {
		return err
	}

	stages, err := pipeline.ParseStages(runStages)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if _, err := pipeline.NewRunner(pool, cfg).RunStages(ctx, stages); err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	return nil
}
