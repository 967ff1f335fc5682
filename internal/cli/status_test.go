package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/metroretail/metro-pipeline/internal/report"
)

func TestWriteLayerCounts(t *testing.T) {
	stats := []report.EntityStats{
		{Entity: "stores", RawCount: 12, StagedCount: 12, StagedValid: 12, Conformed: 10},
		{Entity: "weather", RawCount: 200, StagedCount: 200, StagedValid: 150, Conformed: 140},
	}
	gc := report.GoldCounts{FactSales: 4821, FactInv: 960, BridgeRows: 37}

	var buf bytes.Buffer
	if err := writeLayerCounts(&buf, stats, gc); err != nil {
		t.Fatalf("writeLayerCounts failed: %v", err)
	}
	got := buf.String()

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if !strings.HasPrefix(lines[0], "ENTITY") {
		t.Errorf("Expected header row, got %q", lines[0])
	}

	for _, want := range []string{"stores", "weather", "75.0", "fact_sales", "4821", "fact_inventory", "960", "bridge_promotion_product", "37"} {
		if !strings.Contains(got, want) {
			t.Errorf("Output missing %q:\n%s", want, got)
		}
	}
}

func TestWriteLayerCountsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeLayerCounts(&buf, nil, report.GoldCounts{}); err != nil {
		t.Fatalf("writeLayerCounts failed: %v", err)
	}
	if !strings.Contains(buf.String(), "fact_sales") {
		t.Error("Expected gold totals even with no entities")
	}
}
