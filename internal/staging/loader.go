//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package staging

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/config"
	"github.com/metroretail/metro-pipeline/internal/warehouse"
)

// Staging tables are always rebuilt in full: staging is a total
// re-runnable function of raw, so merge semantics would only mask
// upstream deletions.

func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func query[T any](ctx context.Context, pool *pgxpool.Pool, sql string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return collect(rows, scan)
}

// --- raw fetches ---

func FetchRawHeaders(ctx context.Context, pool *pgxpool.Pool) ([]RawTransactionHeader, error) {
	return query(ctx, pool, `
        SELECT transaction_id, store_id, customer_id, transaction_date,
               payment_method, total_amount, loyalty_points, last_updated,
               batch_id, source_file, load_ts
        FROM raw.pos_transactions_header`,
		func(rows pgx.Rows) (RawTransactionHeader, error) {
			var r RawTransactionHeader
			err := rows.Scan(&r.TransactionID, &r.StoreID, &r.CustomerID,
				&r.TransactionDate, &r.PaymentMethod, &r.TotalAmount,
				&r.LoyaltyPoints, &r.LastUpdated,
				&r.BatchID, &r.SourceFile, &r.LoadTS)
			return r, err
		})
}

func FetchRawLines(ctx context.Context, pool *pgxpool.Pool) ([]RawTransactionLine, error) {
	return query(ctx, pool, `
        SELECT line_id, transaction_id, product_sku, store_id, quantity,
               unit_price, discount_amount, sales_amount, promotion_id,
               last_updated, batch_id, source_file, load_ts
        FROM raw.pos_transactions_lines`,
		func(rows pgx.Rows) (RawTransactionLine, error) {
			var r RawTransactionLine
			err := rows.Scan(&r.LineID, &r.TransactionID, &r.ProductSKU,
				&r.StoreID, &r.Quantity, &r.UnitPrice, &r.DiscountAmount,
				&r.SalesAmount, &r.PromotionID, &r.LastUpdated,
				&r.BatchID, &r.SourceFile, &r.LoadTS)
			return r, err
		})
}

func FetchRawProducts(ctx context.Context, pool *pgxpool.Pool) ([]RawProduct, error) {
	return query(ctx, pool, `
        SELECT sku, product_name, category, sub_category, unit_price,
               cost_price, supplier_id, launch_date, last_updated,
               batch_id, source_file, load_ts
        FROM raw.erp_products`,
		func(rows pgx.Rows) (RawProduct, error) {
			var r RawProduct
			err := rows.Scan(&r.SKU, &r.ProductName, &r.Category,
				&r.SubCategory, &r.UnitPrice, &r.CostPrice, &r.SupplierID,
				&r.LaunchDate, &r.LastUpdated,
				&r.BatchID, &r.SourceFile, &r.LoadTS)
			return r, err
		})
}

func FetchRawStores(ctx context.Context, pool *pgxpool.Pool) ([]RawStore, error) {
	return query(ctx, pool, `
        SELECT store_id, store_name, city, region, store_type,
               square_footage, opening_date, last_updated,
               batch_id, source_file, load_ts
        FROM raw.erp_stores`,
		func(rows pgx.Rows) (RawStore, error) {
			var r RawStore
			err := rows.Scan(&r.StoreID, &r.StoreName, &r.City, &r.Region,
				&r.StoreType, &r.SquareFootage, &r.OpeningDate, &r.LastUpdated,
				&r.BatchID, &r.SourceFile, &r.LoadTS)
			return r, err
		})
}

func FetchRawInventory(ctx context.Context, pool *pgxpool.Pool) ([]RawInventory, error) {
	return query(ctx, pool, `
        SELECT inventory_id, product_sku, store_id, snapshot_date,
               quantity_on_hand, quantity_reserved, reorder_point,
               last_updated, batch_id, source_file, load_ts
        FROM raw.erp_inventory`,
		func(rows pgx.Rows) (RawInventory, error) {
			var r RawInventory
			err := rows.Scan(&r.InventoryID, &r.ProductSKU, &r.StoreID,
				&r.SnapshotDate, &r.QuantityOnHand, &r.QuantityReserved,
				&r.ReorderPoint, &r.LastUpdated,
				&r.BatchID, &r.SourceFile, &r.LoadTS)
			return r, err
		})
}

func FetchRawCustomers(ctx context.Context, pool *pgxpool.Pool) ([]RawCustomer, error) {
	return query(ctx, pool, `
        SELECT customer_id, first_name, last_name, email, phone, city,
               loyalty_tier, join_date, last_updated,
               batch_id, source_file, load_ts
        FROM raw.crm_customers`,
		func(rows pgx.Rows) (RawCustomer, error) {
			var r RawCustomer
			err := rows.Scan(&r.CustomerID, &r.FirstName, &r.LastName,
				&r.Email, &r.Phone, &r.City, &r.LoyaltyTier, &r.JoinDate,
				&r.LastUpdated, &r.BatchID, &r.SourceFile, &r.LoadTS)
			return r, err
		})
}

func FetchRawPromotions(ctx context.Context, pool *pgxpool.Pool) ([]RawPromotion, error) {
	return query(ctx, pool, `
        SELECT promotion_id, promotion_name, promo_type, start_date,
               end_date, discount_pct, eligible_skus, store_scope,
               last_updated, batch_id, source_file, load_ts
        FROM raw.mkt_promotions`,
		func(rows pgx.Rows) (RawPromotion, error) {
			var r RawPromotion
			err := rows.Scan(&r.PromotionID, &r.PromotionName, &r.PromoType,
				&r.StartDate, &r.EndDate, &r.DiscountPct, &r.EligibleSKUs,
				&r.StoreScope, &r.LastUpdated,
				&r.BatchID, &r.SourceFile, &r.LoadTS)
			return r, err
		})
}

func FetchRawWeather(ctx context.Context, pool *pgxpool.Pool) ([]RawWeather, error) {
	return query(ctx, pool, `
        SELECT retail_location_id, weather_date, temp_high_c, temp_low_c,
               precipitation_mm, humidity_pct, weather_condition,
               last_updated, batch_id, source_file, load_ts
        FROM raw.api_weather`,
		func(rows pgx.Rows) (RawWeather, error) {
			var r RawWeather
			err := rows.Scan(&r.RetailLocationID, &r.WeatherDate,
				&r.TempHighC, &r.TempLowC, &r.PrecipitationMM, &r.HumidityPct,
				&r.WeatherCondition, &r.LastUpdated,
				&r.BatchID, &r.SourceFile, &r.LoadTS)
			return r, err
		})
}

// --- staged stores ---

var headerTable = warehouse.Table{
	Name: "staging.transactions_header",
	Columns: []string{
		"transaction_id", "store_id", "customer_id", "transaction_date",
		"payment_method", "total_amount", "loyalty_points", "last_updated",
		"dq_transaction_id_valid", "dq_store_id_valid", "dq_customer_id_valid",
		"dq_date_valid", "dq_amount_valid", "dq_payment_valid", "dq_is_valid",
		"batch_id", "source_file", "load_ts",
	},
}

func StoreHeaders(ctx context.Context, pool *pgxpool.Pool, recs []StagedTransactionHeader) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, s := range recs {
		rows = append(rows, []any{
			s.TransactionID, s.StoreID, s.CustomerID, s.TransactionDate,
			s.PaymentMethod, s.TotalAmount, s.LoyaltyPoints, s.LastUpdated,
			s.DQTransactionIDValid, s.DQStoreIDValid, s.DQCustomerIDValid,
			s.DQDateValid, s.DQAmountValid, s.DQPaymentValid, s.DQIsValid,
			s.BatchID, s.SourceFile, s.LoadTS,
		})
	}
	return warehouse.Materialize(ctx, pool, headerTable, config.StrategyFullRefresh, rows)
}

var lineTable = warehouse.Table{
	Name: "staging.transactions_lines",
	Columns: []string{
		"line_id", "transaction_id", "product_sku", "store_id", "quantity",
		"unit_price", "discount_amount", "sales_amount", "promotion_id",
		"last_updated", "is_return", "is_outlier_qty", "has_discount",
		"has_promotion", "dq_line_id_valid", "dq_transaction_id_valid",
		"dq_product_sku_valid", "dq_store_id_valid", "dq_quantity_valid",
		"dq_unit_price_valid", "dq_sales_amount_valid", "dq_is_valid",
		"batch_id", "source_file", "load_ts",
	},
}

func StoreLines(ctx context.Context, pool *pgxpool.Pool, recs []StagedTransactionLine) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, s := range recs {
		rows = append(rows, []any{
			s.LineID, s.TransactionID, s.ProductSKU, s.StoreID, s.Quantity,
			s.UnitPrice, s.DiscountAmount, s.SalesAmount, s.PromotionID,
			s.LastUpdated, s.IsReturn, s.IsOutlierQty, s.HasDiscount,
			s.HasPromotion, s.DQLineIDValid, s.DQTransactionIDValid,
			s.DQProductSKUValid, s.DQStoreIDValid, s.DQQuantityValid,
			s.DQUnitPriceValid, s.DQSalesAmountValid, s.DQIsValid,
			s.BatchID, s.SourceFile, s.LoadTS,
		})
	}
	return warehouse.Materialize(ctx, pool, lineTable, config.StrategyFullRefresh, rows)
}

var productTable = warehouse.Table{
	Name: "staging.products",
	Columns: []string{
		"sku", "product_name", "category", "sub_category", "unit_price",
		"cost_price", "supplier_id", "launch_date", "last_updated",
		"dq_sku_valid", "dq_name_valid", "dq_category_valid",
		"dq_sub_category_valid", "dq_unit_price_valid", "dq_cost_price_valid",
		"dq_supplier_valid", "dq_is_valid",
		"batch_id", "source_file", "load_ts",
	},
}

func StoreProducts(ctx context.Context, pool *pgxpool.Pool, recs []StagedProduct) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, s := range recs {
		rows = append(rows, []any{
			s.SKU, s.ProductName, s.Category, s.SubCategory, s.UnitPrice,
			s.CostPrice, s.SupplierID, s.LaunchDate, s.LastUpdated,
			s.DQSKUValid, s.DQNameValid, s.DQCategoryValid,
			s.DQSubCategoryValid, s.DQUnitPriceValid, s.DQCostPriceValid,
			s.DQSupplierValid, s.DQIsValid,
			s.BatchID, s.SourceFile, s.LoadTS,
		})
	}
	return warehouse.Materialize(ctx, pool, productTable, config.StrategyFullRefresh, rows)
}

var storeTable = warehouse.Table{
	Name: "staging.stores",
	Columns: []string{
		"store_id", "store_name", "city", "region", "store_type",
		"square_footage", "opening_date", "last_updated",
		"dq_store_id_valid", "dq_name_valid", "dq_city_valid",
		"dq_region_valid", "dq_type_valid", "dq_opening_date_valid",
		"dq_is_valid", "batch_id", "source_file", "load_ts",
	},
}

func StoreStores(ctx context.Context, pool *pgxpool.Pool, recs []StagedStore) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, s := range recs {
		rows = append(rows, []any{
			s.StoreID, s.StoreName, s.City, s.Region, s.StoreType,
			s.SquareFootage, s.OpeningDate, s.LastUpdated,
			s.DQStoreIDValid, s.DQNameValid, s.DQCityValid,
			s.DQRegionValid, s.DQTypeValid, s.DQOpeningDateValid,
			s.DQIsValid, s.BatchID, s.SourceFile, s.LoadTS,
		})
	}
	return warehouse.Materialize(ctx, pool, storeTable, config.StrategyFullRefresh, rows)
}

var inventoryTable = warehouse.Table{
	Name: "staging.inventory",
	Columns: []string{
		"inventory_id", "product_sku", "store_id", "snapshot_date",
		"quantity_on_hand", "quantity_reserved", "reorder_point",
		"last_updated", "dq_inventory_id_valid", "dq_product_sku_valid",
		"dq_store_id_valid", "dq_snapshot_date_valid", "dq_on_hand_valid",
		"dq_is_valid", "batch_id", "source_file", "load_ts",
	},
}

func StoreInventory(ctx context.Context, pool *pgxpool.Pool, recs []StagedInventory) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, s := range recs {
		rows = append(rows, []any{
			s.InventoryID, s.ProductSKU, s.StoreID, s.SnapshotDate,
			s.QuantityOnHand, s.QuantityReserved, s.ReorderPoint,
			s.LastUpdated, s.DQInventoryIDValid, s.DQProductSKUValid,
			s.DQStoreIDValid, s.DQSnapshotDateValid, s.DQOnHandValid,
			s.DQIsValid, s.BatchID, s.SourceFile, s.LoadTS,
		})
	}
	return warehouse.Materialize(ctx, pool, inventoryTable, config.StrategyFullRefresh, rows)
}

var customerTable = warehouse.Table{
	Name: "staging.customers",
	Columns: []string{
		"customer_id", "first_name", "last_name", "email", "phone", "city",
		"loyalty_tier", "join_date", "last_updated",
		"dq_customer_id_valid", "dq_name_valid", "dq_email_valid",
		"dq_phone_valid", "dq_tier_valid", "dq_join_date_valid",
		"dq_is_valid", "batch_id", "source_file", "load_ts",
	},
}

func StoreCustomers(ctx context.Context, pool *pgxpool.Pool, recs []StagedCustomer) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, s := range recs {
		rows = append(rows, []any{
			s.CustomerID, s.FirstName, s.LastName, s.Email, s.Phone, s.City,
			s.LoyaltyTier, s.JoinDate, s.LastUpdated,
			s.DQCustomerIDValid, s.DQNameValid, s.DQEmailValid,
			s.DQPhoneValid, s.DQTierValid, s.DQJoinDateValid,
			s.DQIsValid, s.BatchID, s.SourceFile, s.LoadTS,
		})
	}
	return warehouse.Materialize(ctx, pool, customerTable, config.StrategyFullRefresh, rows)
}

var promotionTable = warehouse.Table{
	Name: "staging.promotions",
	Columns: []string{
		"promotion_id", "promotion_name", "promo_type", "start_date",
		"end_date", "discount_pct", "eligible_skus", "store_scope",
		"last_updated", "dq_promotion_id_valid", "dq_name_valid",
		"dq_type_valid", "dq_dates_valid", "dq_discount_valid",
		"dq_skus_valid", "dq_is_valid", "batch_id", "source_file", "load_ts",
	},
}

func StorePromotions(ctx context.Context, pool *pgxpool.Pool, recs []StagedPromotion) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, s := range recs {
		rows = append(rows, []any{
			s.PromotionID, s.PromotionName, s.PromoType, s.StartDate,
			s.EndDate, s.DiscountPct, s.EligibleSKUs, s.StoreScope,
			s.LastUpdated, s.DQPromotionIDValid, s.DQNameValid,
			s.DQTypeValid, s.DQDatesValid, s.DQDiscountValid,
			s.DQSKUsValid, s.DQIsValid, s.BatchID, s.SourceFile, s.LoadTS,
		})
	}
	return warehouse.Materialize(ctx, pool, promotionTable, config.StrategyFullRefresh, rows)
}

var weatherTable = warehouse.Table{
	Name: "staging.weather",
	Columns: []string{
		"retail_location_id", "weather_date", "temp_high_c", "temp_low_c",
		"precipitation_mm", "humidity_pct", "weather_condition",
		"last_updated", "dq_location_valid", "dq_date_valid",
		"dq_temps_valid", "dq_precip_valid", "dq_condition_valid",
		"dq_is_valid", "batch_id", "source_file", "load_ts",
	},
}

func StoreWeather(ctx context.Context, pool *pgxpool.Pool, recs []StagedWeather) (int64, error) {
	rows := make([][]any, 0, len(recs))
	for _, s := range recs {
		rows = append(rows, []any{
			s.RetailLocationID, s.WeatherDate, s.TempHighC, s.TempLowC,
			s.PrecipitationMM, s.HumidityPct, s.WeatherCondition,
			s.LastUpdated, s.DQLocationValid, s.DQDateValid,
			s.DQTempsValid, s.DQPrecipValid, s.DQConditionValid,
			s.DQIsValid, s.BatchID, s.SourceFile, s.LoadTS,
		})
	}
	return warehouse.Materialize(ctx, pool, weatherTable, config.StrategyFullRefresh, rows)
}
