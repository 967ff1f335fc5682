//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package silver

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/warehouse"
)

// FetchRefSet loads a single-column key set from a conformed table.
func FetchRefSet(ctx context.Context, pool *pgxpool.Pool, sql string) (RefSet, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query ref set: %w", err)
	}
	defer rows.Close()

	set := RefSet{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan ref set: %w", err)
		}
		set[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

func FetchStoreRefs(ctx context.Context, pool *pgxpool.Pool) (RefSet, error) {
	return FetchRefSet(ctx, pool, `SELECT store_id FROM silver.stores`)
}

func FetchProductRefs(ctx context.Context, pool *pgxpool.Pool) (RefSet, error) {
	return FetchRefSet(ctx, pool, `SELECT DISTINCT sku FROM silver.products WHERE is_current`)
}

func FetchCustomerRefs(ctx context.Context, pool *pgxpool.Pool) (RefSet, error) {
	return FetchRefSet(ctx, pool, `SELECT customer_id FROM silver.customers`)
}

func FetchPromotionRefs(ctx context.Context, pool *pgxpool.Pool) (RefSet, error) {
	return FetchRefSet(ctx, pool, `SELECT promotion_id FROM silver.promotions`)
}

func FetchHeaderRefs(ctx context.Context, pool *pgxpool.Pool) (RefSet, error) {
	return FetchRefSet(ctx, pool, `SELECT transaction_id FROM silver.transactions_header`)
}

// FetchCurrentProducts returns the open product versions keyed by SKU.
func FetchCurrentProducts(ctx context.Context, pool *pgxpool.Pool) (map[string]ProductVersion, error) {
	rows, err := pool.Query(ctx, `
		SELECT sku, version_number, product_name, category, sub_category,
		       unit_price, cost_price, supplier_id, launch_date,
		       effective_from, effective_to, is_current, dq_score, is_valid, batch_id
		FROM silver.products
		WHERE is_current`)
	if err != nil {
		return nil, fmt.Errorf("query current products: %w", err)
	}
	defer rows.Close()

	current := map[string]ProductVersion{}
	for rows.Next() {
		var v ProductVersion
		if err := rows.Scan(&v.SKU, &v.VersionNumber, &v.ProductName, &v.Category,
			&v.SubCategory, &v.UnitPrice, &v.CostPrice, &v.SupplierID, &v.LaunchDate,
			&v.EffectiveFrom, &v.EffectiveTo, &v.IsCurrent, &v.DQScore, &v.IsValid,
			&v.BatchID); err != nil {
			return nil, fmt.Errorf("scan current product: %w", err)
		}
		current[v.SKU] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return current, nil
}

// ApplySCD applies a product history delta in one transaction: prior
// versions are closed out, then the new versions are inserted. The
// products table is never truncated, so history survives reruns.
func ApplySCD(ctx context.Context, pool *pgxpool.Pool, delta SCDDelta) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if len(delta.Close) > 0 {
		batch := &pgx.Batch{}
		for _, c := range delta.Close {
			batch.Queue(`
				UPDATE silver.products
				SET effective_to = $1, is_current = false, updated_ts = now()
				WHERE sku = $2 AND version_number = $3`,
				c.EffectiveTo, c.SKU, c.VersionNumber)
		}
		br := tx.SendBatch(ctx, batch)
		for range delta.Close {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return 0, fmt.Errorf("close product version: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("close batch: %w", err)
		}
	}

	rows := make([][]any, 0, len(delta.Insert))
	for _, v := range delta.Insert {
		rows = append(rows, []any{
			v.SKU, v.VersionNumber, v.ProductName, v.Category, v.SubCategory,
			v.UnitPrice, v.CostPrice, v.SupplierID, v.LaunchDate,
			v.EffectiveFrom, v.EffectiveTo, v.IsCurrent, v.DQScore, v.IsValid,
			v.BatchID,
		})
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"silver", "products"},
		[]string{"sku", "version_number", "product_name", "category", "sub_category",
			"unit_price", "cost_price", "supplier_id", "launch_date",
			"effective_from", "effective_to", "is_current", "dq_score", "is_valid",
			"batch_id"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("insert product versions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

var storeTable = warehouse.Table{
	Name: "silver.stores",
	Columns: []string{"store_id", "store_name", "city", "region", "store_type",
		"square_footage", "opening_date", "dq_score", "is_valid", "batch_id"},
	KeyColumns: []string{"store_id"},
}

func StoreStores(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ConformedStore) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.StoreID, r.StoreName, r.City, r.Region,
			r.StoreType, r.SquareFootage, r.OpeningDate, r.DQScore, r.IsValid,
			r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, storeTable, strategy, rows)
}

var customerTable = warehouse.Table{
	Name: "silver.customers",
	Columns: []string{"customer_id", "first_name", "last_name", "email", "phone",
		"city", "loyalty_tier", "join_date", "dq_score", "is_valid", "batch_id"},
	KeyColumns: []string{"customer_id"},
}

func StoreCustomers(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ConformedCustomer) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.CustomerID, r.FirstName, r.LastName, r.Email,
			r.Phone, r.City, r.LoyaltyTier, r.JoinDate, r.DQScore, r.IsValid,
			r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, customerTable, strategy, rows)
}

var promotionTable = warehouse.Table{
	Name: "silver.promotions",
	Columns: []string{"promotion_id", "promotion_name", "promo_type", "start_date",
		"end_date", "discount_pct", "eligible_skus", "store_scope", "dq_score",
		"is_valid", "batch_id"},
	KeyColumns: []string{"promotion_id"},
}

func StorePromotions(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ConformedPromotion) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.PromotionID, r.PromotionName, r.PromoType,
			r.StartDate, r.EndDate, r.DiscountPct, r.EligibleSKUs, r.StoreScope,
			r.DQScore, r.IsValid, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, promotionTable, strategy, rows)
}

var inventoryTable = warehouse.Table{
	Name: "silver.inventory",
	Columns: []string{"product_sku", "store_id", "snapshot_date", "quantity_on_hand",
		"quantity_reserved", "reorder_point", "product_exists", "store_exists",
		"dq_score", "is_valid", "batch_id"},
	KeyColumns: []string{"product_sku", "store_id", "snapshot_date"},
}

func StoreInventory(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ConformedInventory) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.ProductSKU, r.StoreID, r.SnapshotDate,
			r.QuantityOnHand, r.QuantityReserved, r.ReorderPoint, r.ProductExists,
			r.StoreExists, r.DQScore, r.IsValid, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, inventoryTable, strategy, rows)
}

var weatherTable = warehouse.Table{
	Name: "silver.weather",
	Columns: []string{"store_id", "weather_date", "temp_high_c", "temp_low_c",
		"precipitation_mm", "humidity_pct", "weather_condition", "store_exists",
		"dq_score", "is_valid", "batch_id"},
	KeyColumns: []string{"store_id", "weather_date"},
}

func StoreWeather(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ConformedWeather) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.StoreID, r.WeatherDate, r.TempHighC, r.TempLowC,
			r.PrecipitationMM, r.HumidityPct, r.WeatherCondition, r.StoreExists,
			r.DQScore, r.IsValid, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, weatherTable, strategy, rows)
}

var headerTable = warehouse.Table{
	Name: "silver.transactions_header",
	Columns: []string{"transaction_id", "store_id", "customer_id", "transaction_date",
		"payment_method", "total_amount", "loyalty_points", "store_exists",
		"customer_exists", "dq_score", "is_valid", "batch_id"},
	KeyColumns: []string{"transaction_id"},
}

func StoreHeaders(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ConformedHeader) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.TransactionID, r.StoreID, r.CustomerID,
			r.TransactionDate, r.PaymentMethod, r.TotalAmount, r.LoyaltyPoints,
			r.StoreExists, r.CustomerExists, r.DQScore, r.IsValid, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, headerTable, strategy, rows)
}

var lineTable = warehouse.Table{
	Name: "silver.transactions_lines",
	Columns: []string{"line_id", "transaction_id", "product_sku", "store_id",
		"quantity", "unit_price", "discount_amount", "sales_amount", "promotion_id",
		"is_return", "is_outlier_qty", "has_discount", "has_promotion",
		"transaction_exists", "product_exists", "store_exists", "promotion_exists",
		"dq_score", "is_valid", "batch_id"},
	KeyColumns: []string{"line_id"},
}

func StoreLines(ctx context.Context, pool *pgxpool.Pool, strategy string, recs []ConformedLine) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []any{r.LineID, r.TransactionID, r.ProductSKU, r.StoreID,
			r.Quantity, r.UnitPrice, r.DiscountAmount, r.SalesAmount, r.PromotionID,
			r.IsReturn, r.IsOutlierQty, r.HasDiscount, r.HasPromotion,
			r.TransactionExists, r.ProductExists, r.StoreExists, r.PromotionExists,
			r.DQScore, r.IsValid, r.BatchID})
	}
	return warehouse.Materialize(ctx, pool, lineTable, strategy, rows)
}
