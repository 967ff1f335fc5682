package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metroretail/metro-pipeline/internal/db"
	"github.com/metroretail/metro-pipeline/internal/logging"
	"github.com/metroretail/metro-pipeline/internal/warehouse"
)

var initDropExisting bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the warehouse schemas",
	Long: `Create the raw, staging, silver and gold schemas along with the
ingestion manifest. Safe to run repeatedly; existing tables are left
in place unless --drop-existing is given.

Example:
  metro-pipeline init --connection "postgres://..."`,
	RunE: runInitCmd,
}

func init() {
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing warehouse schemas before initialization")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if initDropExisting {
		logging.Warn().Msg("Dropping existing warehouse schemas")
		if err := warehouse.DropSchemas(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schemas: %w", err)
		}
	}

	if err := warehouse.CreateSchemas(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schemas: %w", err)
	}
	if err := db.EnsureManifest(ctx, pool); err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}

	logging.Info().Msg("Warehouse initialized")
	return nil
}
