package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metroretail/metro-pipeline/internal/datagen"
	"github.com/metroretail/metro-pipeline/internal/db"
)

var (
	seedTransactions int
	seedRandomSeed   uint64
	seedDirtyPct     int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load generated source extracts into the raw layer",
	Long: `Generate sample source-system extracts (POS transactions, ERP
products and inventory, CRM customers, marketing promotions, weather
observations) and load them into the raw schema. A configurable share
of rows carries realistic defects: duplicate business keys, category
typos, currency-formatted amounts, sentinel values, unparseable dates
and dangling references.

Example:
  metro-pipeline seed --transactions 10000 --random-seed 42`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedTransactions, "transactions", 0,
		"number of transaction headers to generate (default: 5000)")
	seedCmd.Flags().Uint64Var(&seedRandomSeed, "random-seed", 0,
		"seed for reproducible data generation (0 = random)")
	seedCmd.Flags().IntVar(&seedDirtyPct, "dirty-pct", 0,
		"approximate percentage of rows with an injected defect (default: 8)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedTransactions > 0 {
		cfg.Seed.Transactions = seedTransactions
	}
	if seedRandomSeed != 0 {
		cfg.Seed.RandomSeed = seedRandomSeed
	}
	if seedDirtyPct > 0 {
		cfg.Seed.DirtyPct = seedDirtyPct
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	return datagen.NewSeeder(cfg.Seed).Seed(ctx, pool)
}
