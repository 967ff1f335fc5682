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
	"github.com/metroretail/metro-pipeline/internal/silver"
)

// BridgeRow is one (promotion, product) pair of the many-to-many
// promotion-product relation.
type BridgeRow struct {
	PromotionID string
	ProductSKU  string
	BatchID     string
}

// BuildBridge resolves each promotion's SKU list into bridge rows.
// SKUs that do not resolve to a currently valid product are dropped
// without error; sentinel lists contribute nothing.
func BuildBridge(promotions []silver.ConformedPromotion, currentProducts silver.RefSet) []BridgeRow {
	var out []BridgeRow
	for _, p := range promotions {
		for _, sku := range ParseSKUList(p.EligibleSKUs) {
			if !currentProducts[sku] {
				continue
			}
			out = append(out, BridgeRow{
				PromotionID: p.PromotionID,
				ProductSKU:  sku,
				BatchID:     p.BatchID,
			})
		}
	}
	return out
}
