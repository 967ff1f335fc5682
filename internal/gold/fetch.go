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
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/silver"
)

// Readers over the conformed layer. Only valid records feed the star
// schema; the product dimension additionally carries closed SCD
// versions so facts can be analyzed against historical attributes.

func queryRows[T any](ctx context.Context, pool *pgxpool.Pool, sql string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FetchProductVersions returns the full valid product history, closed
// and current versions in SKU then version order.
func FetchProductVersions(ctx context.Context, pool *pgxpool.Pool) ([]silver.ProductVersion, error) {
	return queryRows(ctx, pool, `
		SELECT sku, version_number, product_name, category, sub_category,
		       unit_price, cost_price, supplier_id, launch_date,
		       effective_from, effective_to, is_current, dq_score, is_valid, batch_id
		FROM silver.products
		WHERE is_valid
		ORDER BY sku, version_number`,
		func(rows pgx.Rows) (silver.ProductVersion, error) {
			var v silver.ProductVersion
			err := rows.Scan(&v.SKU, &v.VersionNumber, &v.ProductName, &v.Category,
				&v.SubCategory, &v.UnitPrice, &v.CostPrice, &v.SupplierID,
				&v.LaunchDate, &v.EffectiveFrom, &v.EffectiveTo, &v.IsCurrent,
				&v.DQScore, &v.IsValid, &v.BatchID)
			return v, err
		})
}

func FetchConformedStores(ctx context.Context, pool *pgxpool.Pool) ([]silver.ConformedStore, error) {
	return queryRows(ctx, pool, `
		SELECT store_id, store_name, city, region, store_type, square_footage,
		       opening_date, dq_score, is_valid, batch_id
		FROM silver.stores
		WHERE is_valid
		ORDER BY store_id`,
		func(rows pgx.Rows) (silver.ConformedStore, error) {
			var s silver.ConformedStore
			err := rows.Scan(&s.StoreID, &s.StoreName, &s.City, &s.Region,
				&s.StoreType, &s.SquareFootage, &s.OpeningDate, &s.DQScore,
				&s.IsValid, &s.BatchID)
			return s, err
		})
}

func FetchConformedCustomers(ctx context.Context, pool *pgxpool.Pool) ([]silver.ConformedCustomer, error) {
	return queryRows(ctx, pool, `
		SELECT customer_id, first_name, last_name, email, phone, city,
		       loyalty_tier, join_date, dq_score, is_valid, batch_id
		FROM silver.customers
		WHERE is_valid
		ORDER BY customer_id`,
		func(rows pgx.Rows) (silver.ConformedCustomer, error) {
			var c silver.ConformedCustomer
			err := rows.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email,
				&c.Phone, &c.City, &c.LoyaltyTier, &c.JoinDate, &c.DQScore,
				&c.IsValid, &c.BatchID)
			return c, err
		})
}

func FetchConformedPromotions(ctx context.Context, pool *pgxpool.Pool) ([]silver.ConformedPromotion, error) {
	return queryRows(ctx, pool, `
		SELECT promotion_id, promotion_name, promo_type, start_date, end_date,
		       discount_pct, eligible_skus, store_scope, dq_score, is_valid, batch_id
		FROM silver.promotions
		WHERE is_valid
		ORDER BY promotion_id`,
		func(rows pgx.Rows) (silver.ConformedPromotion, error) {
			var p silver.ConformedPromotion
			err := rows.Scan(&p.PromotionID, &p.PromotionName, &p.PromoType,
				&p.StartDate, &p.EndDate, &p.DiscountPct, &p.EligibleSKUs,
				&p.StoreScope, &p.DQScore, &p.IsValid, &p.BatchID)
			return p, err
		})
}

func FetchConformedInventory(ctx context.Context, pool *pgxpool.Pool) ([]silver.ConformedInventory, error) {
	return queryRows(ctx, pool, `
		SELECT product_sku, store_id, snapshot_date, quantity_on_hand,
		       quantity_reserved, reorder_point, product_exists, store_exists,
		       dq_score, is_valid, batch_id
		FROM silver.inventory
		WHERE is_valid
		ORDER BY product_sku, store_id, snapshot_date`,
		func(rows pgx.Rows) (silver.ConformedInventory, error) {
			var s silver.ConformedInventory
			err := rows.Scan(&s.ProductSKU, &s.StoreID, &s.SnapshotDate,
				&s.QuantityOnHand, &s.QuantityReserved, &s.ReorderPoint,
				&s.ProductExists, &s.StoreExists, &s.DQScore, &s.IsValid, &s.BatchID)
			return s, err
		})
}

func FetchConformedWeather(ctx context.Context, pool *pgxpool.Pool) ([]silver.ConformedWeather, error) {
	return queryRows(ctx, pool, `
		SELECT store_id, weather_date, temp_high_c, temp_low_c, precipitation_mm,
		       humidity_pct, weather_condition, store_exists, dq_score, is_valid,
		       batch_id
		FROM silver.weather
		WHERE is_valid
		ORDER BY store_id, weather_date`,
		func(rows pgx.Rows) (silver.ConformedWeather, error) {
			var w silver.ConformedWeather
			err := rows.Scan(&w.StoreID, &w.WeatherDate, &w.TempHighC, &w.TempLowC,
				&w.PrecipitationMM, &w.HumidityPct, &w.WeatherCondition,
				&w.StoreExists, &w.DQScore, &w.IsValid, &w.BatchID)
			return w, err
		})
}

func FetchConformedHeaders(ctx context.Context, pool *pgxpool.Pool) ([]silver.ConformedHeader, error) {
	return queryRows(ctx, pool, `
		SELECT transaction_id, store_id, customer_id, transaction_date,
		       payment_method, total_amount, loyalty_points, store_exists,
		       customer_exists, dq_score, is_valid, batch_id
		FROM silver.transactions_header
		WHERE is_valid
		ORDER BY transaction_id`,
		func(rows pgx.Rows) (silver.ConformedHeader, error) {
			var h silver.ConformedHeader
			err := rows.Scan(&h.TransactionID, &h.StoreID, &h.CustomerID,
				&h.TransactionDate, &h.PaymentMethod, &h.TotalAmount,
				&h.LoyaltyPoints, &h.StoreExists, &h.CustomerExists, &h.DQScore,
				&h.IsValid, &h.BatchID)
			return h, err
		})
}

func FetchConformedLines(ctx context.Context, pool *pgxpool.Pool) ([]silver.ConformedLine, error) {
	return queryRows(ctx, pool, `
		SELECT line_id, transaction_id, product_sku, store_id, quantity,
		       unit_price, discount_amount, sales_amount, promotion_id,
		       is_return, is_outlier_qty, has_discount, has_promotion,
		       transaction_exists, product_exists, store_exists, promotion_exists,
		       dq_score, is_valid, batch_id
		FROM silver.transactions_lines
		WHERE is_valid
		ORDER BY line_id`,
		func(rows pgx.Rows) (silver.ConformedLine, error) {
			var l silver.ConformedLine
			err := rows.Scan(&l.LineID, &l.TransactionID, &l.ProductSKU, &l.StoreID,
				&l.Quantity, &l.UnitPrice, &l.DiscountAmount, &l.SalesAmount,
				&l.PromotionID, &l.IsReturn, &l.IsOutlierQty, &l.HasDiscount,
				&l.HasPromotion, &l.TransactionExists, &l.ProductExists,
				&l.StoreExists, &l.PromotionExists, &l.DQScore, &l.IsValid,
				&l.BatchID)
			return l, err
		})
}

// CurrentCostBySKU extracts the unit cost of each current product
// version, for margin derivation.
func CurrentCostBySKU(versions []silver.ProductVersion) map[string]float64 {
	out := map[string]float64{}
	for _, v := range versions {
		if v.IsCurrent && v.CostPrice != nil {
			out[v.SKU] = *v.CostPrice
		}
	}
	return out
}

// CurrentCategoryBySKU extracts the conformed category of each current
// product version.
func CurrentCategoryBySKU(versions []silver.ProductVersion) map[string]*string {
	out := map[string]*string{}
	for _, v := range versions {
		if v.IsCurrent {
			out[v.SKU] = v.Category
		}
	}
	return out
}

// CurrentProductRefs builds the currently-valid product key set used
// by the bridge resolver.
func CurrentProductRefs(versions []silver.ProductVersion) silver.RefSet {
	refs := silver.RefSet{}
	for _, v := range versions {
		if v.IsCurrent {
			refs[v.SKU] = true
		}
	}
	return refs
}

// HeadersByID indexes conformed headers by transaction id for the
// sales fact join.
func HeadersByID(headers []silver.ConformedHeader) map[string]silver.ConformedHeader {
	out := make(map[string]silver.ConformedHeader, len(headers))
	for _, h := range headers {
		out[h.TransactionID] = h
	}
	return out
}
