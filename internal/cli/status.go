package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/metroretail/metro-pipeline/internal/db"
	"github.com/metroretail/metro-pipeline/internal/report"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent loads and current layer row counts",
	Long: `List the most recent logical loads recorded in the ingestion
manifest, newest first, with row counts and completion status,
followed by the current per-entity row counts across the layers.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 30,
		"number of manifest entries to show")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	entries, err := db.RecentLoads(ctx, pool, statusLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cmd.Println("No loads recorded yet. Run 'metro-pipeline seed' and 'metro-pipeline run'.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BATCH\tSOURCE\tENTITY\tROWS\tSTATUS\tSTARTED\tERROR")
	for _, e := range entries {
		errMsg := ""
		if e.ErrorMessage != nil {
			errMsg = *e.ErrorMessage
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			e.BatchID, e.SourceSystem, e.EntityName, e.RowCount, e.LoadStatus,
			e.LoadStartTS.Format("2006-01-02 15:04:05"), errMsg)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats, err := report.CollectEntities(ctx, pool)
	if err != nil {
		return err
	}
	gc, err := report.CollectGold(ctx, pool)
	if err != nil {
		return err
	}

	cmd.Println()
	return writeLayerCounts(cmd.OutOrStdout(), stats, gc)
}

// writeLayerCounts renders the current per-entity row counts across
// the layers, plus the gold fact and bridge totals.
func writeLayerCounts(out io.Writer, stats []report.EntityStats, gc report.GoldCounts) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tRAW\tSTAGED\tVALID\tVALID%\tSILVER")
	for _, e := range stats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f\t%d\n",
			e.Entity, e.RawCount, e.StagedCount, e.StagedValid, e.ValidPct(), e.Conformed)
	}
	fmt.Fprintf(w, "\nfact_sales\t%d\nfact_inventory\t%d\nbridge_promotion_product\t%d\n",
		gc.FactSales, gc.FactInv, gc.BridgeRows)
	return w.Flush()
}
