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
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Summary tables are rebuilt from fact_sales each run. Sale lines that
// cannot be attributed to a day and store are left out of the
// aggregates; they remain queryable at line grain.

type DailySales struct {
	DateKey          int
	StoreID          string
	TransactionCount int
	UnitsSold        int
	GrossSales       float64
	TotalDiscount    float64
	TotalMargin      float64
	ReturnUnits      int
	BatchID          string
}

type MonthlySales struct {
	Year             int
	Month            int
	StoreID          string
	TransactionCount int
	UnitsSold        int
	GrossSales       float64
	TotalDiscount    float64
	TotalMargin      float64
	BatchID          string
}

type ProductPerformance struct {
	ProductSKU  string
	Category    *string
	UnitsSold   int
	GrossSales  float64
	TotalMargin float64
	MarginPct   *float64
	StoreCount  int
	ReturnUnits int
	ReturnRate  *float64
	BatchID     string
}

func attributable(f SalesFact) bool {
	return f.DateKey != nil && f.StoreID != nil
}

// accumulate folds one fact into running sales totals. Returns carry
// negative quantities; they are counted separately as positive return
// units and excluded from units sold.
func accumulate(units, returns *int, gross, discount, margin *float64, txns map[string]bool, f SalesFact) {
	if f.Quantity != nil {
		if f.IsReturn {
			*returns += -*f.Quantity
		} else {
			*units += *f.Quantity
		}
	}
	if f.SalesAmount != nil {
		*gross += *f.SalesAmount
	}
	if f.DiscountAmount != nil {
		*discount += *f.DiscountAmount
	}
	if f.MarginAmount != nil {
		*margin += *f.MarginAmount
	}
	if f.TransactionID != nil {
		txns[*f.TransactionID] = true
	}
}

// BuildDailySales aggregates fact_sales to day x store grain.
func BuildDailySales(facts []SalesFact, batchID string) []DailySales {
	attributed := lo.Filter(facts, func(f SalesFact, _ int) bool { return attributable(f) })
	groups := lo.GroupBy(attributed, func(f SalesFact) string {
		return fmt.Sprintf("%08d|%s", *f.DateKey, *f.StoreID)
	})

	keys := lo.Keys(groups)
	sort.Strings(keys)

	out := make([]DailySales, 0, len(keys))
	for _, k := range keys {
		rows := groups[k]
		agg := DailySales{
			DateKey: *rows[0].DateKey,
			StoreID: *rows[0].StoreID,
			BatchID: batchID,
		}
		txns := map[string]bool{}
		for _, f := range rows {
			accumulate(&agg.UnitsSold, &agg.ReturnUnits, &agg.GrossSales,
				&agg.TotalDiscount, &agg.TotalMargin, txns, f)
		}
		agg.TransactionCount = len(txns)
		out = append(out, agg)
	}
	return out
}

// BuildMonthlySales aggregates fact_sales to month x store grain.
func BuildMonthlySales(facts []SalesFact, batchID string) []MonthlySales {
	attributed := lo.Filter(facts, func(f SalesFact, _ int) bool { return attributable(f) })
	groups := lo.GroupBy(attributed, func(f SalesFact) string {
		return fmt.Sprintf("%06d|%s", *f.DateKey/100, *f.StoreID)
	})

	keys := lo.Keys(groups)
	sort.Strings(keys)

	out := make([]MonthlySales, 0, len(keys))
	for _, k := range keys {
		rows := groups[k]
		agg := MonthlySales{
			Year:    *rows[0].DateKey / 10000,
			Month:   (*rows[0].DateKey / 100) % 100,
			StoreID: *rows[0].StoreID,
			BatchID: batchID,
		}
		var returns int
		txns := map[string]bool{}
		for _, f := range rows {
			accumulate(&agg.UnitsSold, &returns, &agg.GrossSales,
				&agg.TotalDiscount, &agg.TotalMargin, txns, f)
		}
		agg.TransactionCount = len(txns)
		out = append(out, agg)
	}
	return out
}

// BuildProductPerformance aggregates fact_sales per SKU, with the
// product's conformed category attached for slicing.
func BuildProductPerformance(facts []SalesFact, categoryBySKU map[string]*string, batchID string) []ProductPerformance {
	withSKU := lo.Filter(facts, func(f SalesFact, _ int) bool { return f.ProductSKU != nil })
	groups := lo.GroupBy(withSKU, func(f SalesFact) string { return *f.ProductSKU })

	keys := lo.Keys(groups)
	sort.Strings(keys)

	out := make([]ProductPerformance, 0, len(keys))
	for _, sku := range keys {
		rows := groups[sku]
		agg := ProductPerformance{
			ProductSKU: sku,
			Category:   categoryBySKU[sku],
			BatchID:    batchID,
		}
		stores := map[string]bool{}
		txns := map[string]bool{}
		var discount float64
		for _, f := range rows {
			accumulate(&agg.UnitsSold, &agg.ReturnUnits, &agg.GrossSales,
				&discount, &agg.TotalMargin, txns, f)
			if f.StoreID != nil {
				stores[*f.StoreID] = true
			}
		}
		agg.StoreCount = len(stores)
		if agg.GrossSales != 0 {
			pct := agg.TotalMargin / agg.GrossSales * 100
			agg.MarginPct = &pct
		}
		if total := agg.UnitsSold + agg.ReturnUnits; total > 0 {
			rate := float64(agg.ReturnUnits) / float64(total)
			agg.ReturnRate = &rate
		}
		out = append(out, agg)
	}
	return out
}
