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

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Valid-row fetches consumed by the silver conformance engine. Silver
// only admits rows that passed the staging critical-field check; the
// full population stays in staging for audit.

func FetchValidHeaders(ctx context.Context, pool *pgxpool.Pool) ([]StagedTransactionHeader, error) {
	return query(ctx, pool, `
        SELECT transaction_id, store_id, customer_id, transaction_date,
               payment_method, total_amount, loyalty_points, last_updated,
               dq_transaction_id_valid, dq_store_id_valid, dq_customer_id_valid,
               dq_date_valid, dq_amount_valid, dq_payment_valid, dq_is_valid,
               batch_id, source_file, load_ts
        FROM staging.transactions_header
        WHERE dq_is_valid`,
		func(rows pgx.Rows) (StagedTransactionHeader, error) {
			var s StagedTransactionHeader
			err := rows.Scan(&s.TransactionID, &s.StoreID, &s.CustomerID,
				&s.TransactionDate, &s.PaymentMethod, &s.TotalAmount,
				&s.LoyaltyPoints, &s.LastUpdated,
				&s.DQTransactionIDValid, &s.DQStoreIDValid, &s.DQCustomerIDValid,
				&s.DQDateValid, &s.DQAmountValid, &s.DQPaymentValid, &s.DQIsValid,
				&s.BatchID, &s.SourceFile, &s.LoadTS)
			return s, err
		})
}

func FetchValidLines(ctx context.Context, pool *pgxpool.Pool) ([]StagedTransactionLine, error) {
	return query(ctx, pool, `
        SELECT line_id, transaction_id, product_sku, store_id, quantity,
               unit_price, discount_amount, sales_amount, promotion_id,
               last_updated, is_return, is_outlier_qty, has_discount,
               has_promotion, dq_line_id_valid, dq_transaction_id_valid,
               dq_product_sku_valid, dq_store_id_valid, dq_quantity_valid,
               dq_unit_price_valid, dq_sales_amount_valid, dq_is_valid,
               batch_id, source_file, load_ts
        FROM staging.transactions_lines
        WHERE dq_is_valid`,
		func(rows pgx.Rows) (StagedTransactionLine, error) {
			var s StagedTransactionLine
			err := rows.Scan(&s.LineID, &s.TransactionID, &s.ProductSKU,
				&s.StoreID, &s.Quantity, &s.UnitPrice, &s.DiscountAmount,
				&s.SalesAmount, &s.PromotionID, &s.LastUpdated,
				&s.IsReturn, &s.IsOutlierQty, &s.HasDiscount, &s.HasPromotion,
				&s.DQLineIDValid, &s.DQTransactionIDValid, &s.DQProductSKUValid,
				&s.DQStoreIDValid, &s.DQQuantityValid, &s.DQUnitPriceValid,
				&s.DQSalesAmountValid, &s.DQIsValid,
				&s.BatchID, &s.SourceFile, &s.LoadTS)
			return s, err
		})
}

func FetchValidProducts(ctx context.Context, pool *pgxpool.Pool) ([]StagedProduct, error) {
	return query(ctx, pool, `
        SELECT sku, product_name, category, sub_category, unit_price,
               cost_price, supplier_id, launch_date, last_updated,
               dq_sku_valid, dq_name_valid, dq_category_valid,
               dq_sub_category_valid, dq_unit_price_valid,
               dq_cost_price_valid, dq_supplier_valid, dq_is_valid,
               batch_id, source_file, load_ts
        FROM staging.products
        WHERE dq_is_valid`,
		func(rows pgx.Rows) (StagedProduct, error) {
			var s StagedProduct
			err := rows.Scan(&s.SKU, &s.ProductName, &s.Category,
				&s.SubCategory, &s.UnitPrice, &s.CostPrice, &s.SupplierID,
				&s.LaunchDate, &s.LastUpdated,
				&s.DQSKUValid, &s.DQNameValid, &s.DQCategoryValid,
				&s.DQSubCategoryValid, &s.DQUnitPriceValid,
				&s.DQCostPriceValid, &s.DQSupplierValid, &s.DQIsValid,
				&s.BatchID, &s.SourceFile, &s.LoadTS)
			return s, err
		})
}

func FetchValidStores(ctx context.Context, pool *pgxpool.Pool) ([]StagedStore, error) {
	return query(ctx, pool, `
        SELECT store_id, store_name, city, region, store_type,
               square_footage, opening_date, last_updated,
               dq_store_id_valid, dq_name_valid, dq_city_valid,
               dq_region_valid, dq_type_valid, dq_opening_date_valid,
               dq_is_valid, batch_id, source_file, load_ts
        FROM staging.stores
        WHERE dq_is_valid`,
		func(rows pgx.Rows) (StagedStore, error) {
			var s StagedStore
			err := rows.Scan(&s.StoreID, &s.StoreName, &s.City, &s.Region,
				&s.StoreType, &s.SquareFootage, &s.OpeningDate, &s.LastUpdated,
				&s.DQStoreIDValid, &s.DQNameValid, &s.DQCityValid,
				&s.DQRegionValid, &s.DQTypeValid, &s.DQOpeningDateValid,
				&s.DQIsValid, &s.BatchID, &s.SourceFile, &s.LoadTS)
			return s, err
		})
}

func FetchValidInventory(ctx context.Context, pool *pgxpool.Pool) ([]StagedInventory, error) {
	return query(ctx, pool, `
        SELECT inventory_id, product_sku, store_id, snapshot_date,
               quantity_on_hand, quantity_reserved, reorder_point,
               last_updated, dq_inventory_id_valid, dq_product_sku_valid,
               dq_store_id_valid, dq_snapshot_date_valid, dq_on_hand_valid,
               dq_is_valid, batch_id, source_file, load_ts
        FROM staging.inventory
        WHERE dq_is_valid`,
		func(rows pgx.Rows) (StagedInventory, error) {
			var s StagedInventory
			err := rows.Scan(&s.InventoryID, &s.ProductSKU, &s.StoreID,
				&s.SnapshotDate, &s.QuantityOnHand, &s.QuantityReserved,
				&s.ReorderPoint, &s.LastUpdated,
				&s.DQInventoryIDValid, &s.DQProductSKUValid, &s.DQStoreIDValid,
				&s.DQSnapshotDateValid, &s.DQOnHandValid, &s.DQIsValid,
				&s.BatchID, &s.SourceFile, &s.LoadTS)
			return s, err
		})
}

func FetchValidCustomers(ctx context.Context, pool *pgxpool.Pool) ([]StagedCustomer, error) {
	return query(ctx, pool, `
        SELECT customer_id, first_name, last_name, email, phone, city,
               loyalty_tier, join_date, last_updated,
               dq_customer_id_valid, dq_name_valid, dq_email_valid,
               dq_phone_valid, dq_tier_valid, dq_join_date_valid,
               dq_is_valid, batch_id, source_file, load_ts
        FROM staging.customers
        WHERE dq_is_valid`,
		func(rows pgx.Rows) (StagedCustomer, error) {
			var s StagedCustomer
			err := rows.Scan(&s.CustomerID, &s.FirstName, &s.LastName,
				&s.Email, &s.Phone, &s.City, &s.LoyaltyTier, &s.JoinDate,
				&s.LastUpdated, &s.DQCustomerIDValid, &s.DQNameValid,
				&s.DQEmailValid, &s.DQPhoneValid, &s.DQTierValid,
				&s.DQJoinDateValid, &s.DQIsValid,
				&s.BatchID, &s.SourceFile, &s.LoadTS)
			return s, err
		})
}

func FetchValidPromotions(ctx context.Context, pool *pgxpool.Pool) ([]StagedPromotion, error) {
	return query(ctx, pool, `
        SELECT promotion_id, promotion_name, promo_type, start_date,
               end_date, discount_pct, eligible_skus, store_scope,
               last_updated, dq_promotion_id_valid, dq_name_valid,
               dq_type_valid, dq_dates_valid, dq_discount_valid,
               dq_skus_valid, dq_is_valid, batch_id, source_file, load_ts
        FROM staging.promotions
        WHERE dq_is_valid`,
		func(rows pgx.Rows) (StagedPromotion, error) {
			var s StagedPromotion
			err := rows.Scan(&s.PromotionID, &s.PromotionName, &s.PromoType,
				&s.StartDate, &s.EndDate, &s.DiscountPct, &s.EligibleSKUs,
				&s.StoreScope, &s.LastUpdated,
				&s.DQPromotionIDValid, &s.DQNameValid, &s.DQTypeValid,
				&s.DQDatesValid, &s.DQDiscountValid, &s.DQSKUsValid,
				&s.DQIsValid, &s.BatchID, &s.SourceFile, &s.LoadTS)
			return s, err
		})
}

func FetchValidWeather(ctx context.Context, pool *pgxpool.Pool) ([]StagedWeather, error) {
	return query(ctx, pool, `
        SELECT retail_location_id, weather_date, temp_high_c, temp_low_c,
               precipitation_mm, humidity_pct, weather_condition,
               last_updated, dq_location_valid, dq_date_valid,
               dq_temps_valid, dq_precip_valid, dq_condition_valid,
               dq_is_valid, batch_id, source_file, load_ts
        FROM staging.weather
        WHERE dq_is_valid`,
		func(rows pgx.Rows) (StagedWeather, error) {
			var s StagedWeather
			err := rows.Scan(&s.RetailLocationID, &s.WeatherDate,
				&s.TempHighC, &s.TempLowC, &s.PrecipitationMM, &s.HumidityPct,
				&s.WeatherCondition, &s.LastUpdated,
				&s.DQLocationValid, &s.DQDateValid, &s.DQTempsValid,
				&s.DQPrecipValid, &s.DQConditionValid, &s.DQIsValid,
				&s.BatchID, &s.SourceFile, &s.LoadTS)
			return s, err
		})
}
