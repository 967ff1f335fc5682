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
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/config"
	"github.com/metroretail/metro-pipeline/internal/warehouse"
)

// Star schema writers. Surrogate dimension keys are identity columns
// and never appear in the insert column lists.

var dateDimTable = warehouse.Table{
	Name: "gold.dim_date",
	Columns: []string{"date_key", "full_date", "year", "quarter", "month", "day",
		"day_of_week", "iso_week", "day_name", "month_name", "quarter_name",
		"is_weekend", "is_month_start", "is_month_end", "is_holiday",
		"holiday_name", "fiscal_year", "fiscal_quarter"},
	KeyColumns: []string{"date_key"},
}

// StoreDateDim always rebuilds the calendar in full; generation is
// deterministic, so the rebuild is idempotent.
func StoreDateDim(ctx context.Context, pool *pgxpool.Pool, recs []DateDimRow) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.DateKey, r.FullDate, r.Year, r.Quarter, r.Month,
			r.Day, r.DayOfWeek, r.ISOWeek, r.DayName, r.MonthName, r.QuarterName,
			r.IsWeekend, r.IsMonthStart, r.IsMonthEnd, r.IsHoliday, r.HolidayName,
			r.FiscalYear, r.FiscalQuarter})
	}
	return warehouse.Materialize(ctx, pool, dateDimTable, config.StrategyFullRefresh, rows)
}

var productDimTable = warehouse.Table{
	Name: "gold.dim_product",
	Columns: []string{"sku", "version_number", "product_name", "category",
		"sub_category", "unit_price", "cost_price", "supplier_id",
		"effective_from", "effective_to", "is_current", "dq_score", "batch_id"},
	KeyColumns: []string{"sku", "version_number"},
}

func StoreProductDim(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ProductDimRow) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.SKU, r.VersionNumber, r.ProductName, r.Category,
			r.SubCategory, r.UnitPrice, r.CostPrice, r.SupplierID, r.EffectiveFrom,
			r.EffectiveTo, r.IsCurrent, r.DQScore, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, productDimTable, strategy, rows)
}

var storeDimTable = warehouse.Table{
	Name: "gold.dim_store",
	Columns: []string{"store_id", "store_name", "city", "region", "store_type",
		"square_footage", "opening_date", "dq_score", "batch_id"},
	KeyColumns: []string{"store_id"},
}

func StoreStoreDim(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []StoreDimRow) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.StoreID, r.StoreName, r.City, r.Region,
			r.StoreType, r.SquareFootage, r.OpeningDate, r.DQScore, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, storeDimTable, strategy, rows)
}

var customerDimTable = warehouse.Table{
	Name: "gold.dim_customer",
	Columns: []string{"customer_id", "first_name", "last_name", "email", "city",
		"loyalty_tier", "join_date", "dq_score", "batch_id"},
	KeyColumns: []string{"customer_id"},
}

func StoreCustomerDim(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []CustomerDimRow) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.CustomerID, r.FirstName, r.LastName, r.Email,
			r.City, r.LoyaltyTier, r.JoinDate, r.DQScore, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, customerDimTable, strategy, rows)
}

var promotionDimTable = warehouse.Table{
	Name: "gold.dim_promotion",
	Columns: []string{"promotion_id", "promotion_name", "promo_type", "start_date",
		"end_date", "discount_pct", "store_scope", "dq_score", "batch_id"},
	KeyColumns: []string{"promotion_id"},
}

func StorePromotionDim(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []PromotionDimRow) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.PromotionID, r.PromotionName, r.PromoType,
			r.StartDate, r.EndDate, r.DiscountPct, r.StoreScope, r.DQScore,
			r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, promotionDimTable, strategy, rows)
}

var bridgeTable = warehouse.Table{
	Name:       "gold.bridge_promotion_product",
	Columns:    []string{"promotion_id", "product_sku", "batch_id"},
	KeyColumns: []string{"promotion_id", "product_sku"},
}

func StoreBridge(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []BridgeRow) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.PromotionID, r.ProductSKU, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, bridgeTable, strategy, rows)
}

var salesFactTable = warehouse.Table{
	Name: "gold.fact_sales",
	Columns: []string{"line_id", "transaction_id", "date_key", "store_id",
		"customer_id", "product_sku", "promotion_id", "quantity", "unit_price",
		"discount_amount", "sales_amount", "cost_amount", "margin_amount",
		"is_return", "has_discount", "has_promotion", "dq_score", "batch_id"},
	KeyColumns: []string{"line_id"},
}

func StoreSalesFacts(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []SalesFact) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.LineID, r.TransactionID, r.DateKey, r.StoreID,
			r.CustomerID, r.ProductSKU, r.PromotionID, r.Quantity, r.UnitPrice,
			r.DiscountAmount, r.SalesAmount, r.CostAmount, r.MarginAmount,
			r.IsReturn, r.HasDiscount, r.HasPromotion, r.DQScore, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, salesFactTable, strategy, rows)
}

var inventoryFactTable = warehouse.Table{
	Name: "gold.fact_inventory",
	Columns: []string{"product_sku", "store_id", "date_key", "quantity_on_hand",
		"quantity_reserved", "quantity_available", "reorder_point",
		"below_reorder", "dq_score", "batch_id"},
	KeyColumns: []string{"product_sku", "store_id", "date_key"},
}

func StoreInventoryFacts(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []InventoryFact) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.ProductSKU, r.StoreID, r.DateKey,
			r.QuantityOnHand, r.QuantityReserved, r.QuantityAvailable,
			r.ReorderPoint, r.BelowReorder, r.DQScore, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, inventoryFactTable, strategy, rows)
}

var weatherFactTable = warehouse.Table{
	Name: "gold.fact_store_weather",
	Columns: []string{"store_id", "date_key", "temp_high_c", "temp_low_c",
		"precipitation_mm", "humidity_pct", "weather_condition", "dq_score",
		"batch_id"},
	KeyColumns: []string{"store_id", "date_key"},
}

func StoreWeatherFacts(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []WeatherFact) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.StoreID, r.DateKey, r.TempHighC, r.TempLowC,
			r.PrecipitationMM, r.HumidityPct, r.WeatherCondition, r.DQScore,
			r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, weatherFactTable, strategy, rows)
}

var dailySalesTable = warehouse.Table{
	Name: "gold.agg_daily_sales",
	Columns: []string{"date_key", "store_id", "transaction_count", "units_sold",
		"gross_sales", "total_discount", "total_margin", "return_units",
		"batch_id"},
	KeyColumns: []string{"date_key", "store_id"},
}

func StoreDailySales(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []DailySales) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.DateKey, r.StoreID, r.TransactionCount,
			r.UnitsSold, r.GrossSales, r.TotalDiscount, r.TotalMargin,
			r.ReturnUnits, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, dailySalesTable, strategy, rows)
}

var monthlySalesTable = warehouse.Table{
	Name: "gold.agg_monthly_sales",
	Columns: []string{"year", "month", "store_id", "transaction_count",
		"units_sold", "gross_sales", "total_discount", "total_margin", "batch_id"},
	KeyColumns: []string{"year", "month", "store_id"},
}

func StoreMonthlySales(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []MonthlySales) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.Year, r.Month, r.StoreID, r.TransactionCount,
			r.UnitsSold, r.GrossSales, r.TotalDiscount, r.TotalMargin, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, monthlySalesTable, strategy, rows)
}

var productPerformanceTable = warehouse.Table{
	Name: "gold.agg_product_performance",
	Columns: []string{"product_sku", "category", "units_sold", "gross_sales",
		"total_margin", "margin_pct", "store_count", "return_units",
		"return_rate", "batch_id"},
	KeyColumns: []string{"product_sku"},
}

func StoreProductPerformance(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ProductPerformance) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.ProductSKU, r.Category, r.UnitsSold,
			r.GrossSales, r.TotalMargin, r.MarginPct, r.StoreCount,
			r.ReturnUnits, r.ReturnRate, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, productPerformanceTable, strategy, rows)
}
