//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package gold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroretail/metro-pipeline/internal/silver"
)

func promo(id string, skus *string) silver.ConformedPromotion {
	return silver.ConformedPromotion{
		PromotionID:  id,
		EligibleSKUs: skus,
		BatchID:      "MKT_promotions_20250801_060000",
	}
}

func TestBuildBridgeDropsUnknownSKUs(t *testing.T) {
	current := silver.RefSet{"P001": true}

	rows := BuildBridge([]silver.ConformedPromotion{
		promo("PROMO001", sp("P001|P002")),
	}, current)

	require.Len(t, rows, 1, "a SKU without a current product contributes no row")
	assert.Equal(t, "PROMO001", rows[0].PromotionID)
	assert.Equal(t, "P001", rows[0].ProductSKU)
}

func TestBuildBridgeSentinelAndNil(t *testing.T) {
	current := silver.RefSet{"P001": true}

	rows := BuildBridge([]silver.ConformedPromotion{
		promo("PROMO001", sp("N/A")),
		promo("PROMO002", nil),
	}, current)

	assert.Empty(t, rows)
}

func TestBuildBridgeFanOut(t *testing.T) {
	current := silver.RefSet{"P001": true, "P002": true, "P003": true}

	rows := BuildBridge([]silver.ConformedPromotion{
		promo("PROMO001", sp("P001|P002")),
		promo("PROMO002", sp("P002|P003")),
	}, current)

	require.Len(t, rows, 4)
	assert.Equal(t, BridgeRow{"PROMO001", "P001", "MKT_promotions_20250801_060000"}, rows[0])
	assert.Equal(t, BridgeRow{"PROMO002", "P003", "MKT_promotions_20250801_060000"}, rows[3])
}
