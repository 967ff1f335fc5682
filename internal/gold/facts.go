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

// SalesFact is one transaction line of gold.fact_sales. Cost and
// margin are derived from the current product cost at build time.
type SalesFact struct {
	LineID         string
	TransactionID  *string
	DateKey        *int
	StoreID        *string
	CustomerID     *string
	ProductSKU     *string
	PromotionID    *string
	Quantity       *int
	UnitPrice      *float64
	DiscountAmount *float64
	SalesAmount    *float64
	CostAmount     *float64
	MarginAmount   *float64
	IsReturn       bool
	HasDiscount    bool
	HasPromotion   bool
	DQScore        int
	BatchID        string
}

// InventoryFact is one product x store x day snapshot row.
type InventoryFact struct {
	ProductSKU        string
	StoreID           string
	DateKey           int
	QuantityOnHand    *int
	QuantityReserved  *int
	QuantityAvailable *int
	ReorderPoint      *int
	BelowReorder      bool
	DQScore           int
	BatchID           string
}

// WeatherFact is one store x day observation row.
type WeatherFact struct {
	StoreID          string
	DateKey          int
	TempHighC        *float64
	TempLowC         *float64
	PrecipitationMM  *float64
	HumidityPct      *float64
	WeatherCondition *string
	DQScore          int
	BatchID          string
}

// BuildSalesFacts joins conformed lines to their headers for the
// transaction date and customer, and to the current product cost for
// the margin. Margin is sales amount minus quantity times unit cost;
// either side missing leaves it null.
func BuildSalesFacts(lines []silver.ConformedLine, headers map[string]silver.ConformedHeader, costBySKU map[string]float64) []SalesFact {
	out := make([]SalesFact, 0, len(lines))
	for _, l := range lines {
		f := SalesFact{
			LineID:         l.LineID,
			TransactionID:  l.TransactionID,
			StoreID:        l.StoreID,
			ProductSKU:     l.ProductSKU,
			PromotionID:    l.PromotionID,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			DiscountAmount: l.DiscountAmount,
			SalesAmount:    l.SalesAmount,
			IsReturn:       l.IsReturn,
			HasDiscount:    l.HasDiscount,
			HasPromotion:   l.HasPromotion,
			DQScore:        l.DQScore,
			BatchID:        l.BatchID,
		}
		if l.TransactionID != nil {
			if h, ok := headers[*l.TransactionID]; ok {
				f.CustomerID = h.CustomerID
				if h.TransactionDate != nil {
					key := DateKey(*h.TransactionDate)
					f.DateKey = &key
				}
			}
		}
		if l.ProductSKU != nil && l.Quantity != nil {
			if cost, ok := costBySKU[*l.ProductSKU]; ok {
				costAmount := float64(*l.Quantity) * cost
				f.CostAmount = &costAmount
				if l.SalesAmount != nil {
					margin := *l.SalesAmount - costAmount
					f.MarginAmount = &margin
				}
			}
		}
		out = append(out, f)
	}
	return out
}

// BuildInventoryFacts derives available quantity and the reorder flag
// from the conformed snapshots.
func BuildInventoryFacts(snapshots []silver.ConformedInventory) []InventoryFact {
	out := make([]InventoryFact, 0, len(snapshots))
	for _, s := range snapshots {
		f := InventoryFact{
			ProductSKU:       s.ProductSKU,
			StoreID:          s.StoreID,
			DateKey:          DateKey(s.SnapshotDate),
			QuantityOnHand:   s.QuantityOnHand,
			QuantityReserved: s.QuantityReserved,
			ReorderPoint:     s.ReorderPoint,
			DQScore:          s.DQScore,
			BatchID:          s.BatchID,
		}
		if s.QuantityOnHand != nil {
			reserved := 0
			if s.QuantityReserved != nil {
				reserved = *s.QuantityReserved
			}
			available := *s.QuantityOnHand - reserved
			f.QuantityAvailable = &available
			if s.ReorderPoint != nil {
				f.BelowReorder = available < *s.ReorderPoint
			}
		}
		out = append(out, f)
	}
	return out
}

func BuildWeatherFacts(observations []silver.ConformedWeather) []WeatherFact {
	out := make([]WeatherFact, 0, len(observations))
	for _, w := range observations {
		out = append(out, WeatherFact{
			StoreID:          w.StoreID,
			DateKey:          DateKey(w.WeatherDate),
			TempHighC:        w.TempHighC,
			TempLowC:         w.TempLowC,
			PrecipitationMM:  w.PrecipitationMM,
			HumidityPct:      w.HumidityPct,
			WeatherCondition: w.WeatherCondition,
			DQScore:          w.DQScore,
			BatchID:          w.BatchID,
		})
	}
	return out
}
