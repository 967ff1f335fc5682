//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse owns the physical layout of the MetroRetail
// warehouse: the raw, staging, silver and gold schemas and their
// materialization helpers.
package warehouse

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/logging"
)

// Raw layer: untyped source copies. Every business column is TEXT so a
// load can never fail on a bad value; typing happens in staging.
const createRawSchemaSQL = `
CREATE SCHEMA IF NOT EXISTS raw;

CREATE TABLE IF NOT EXISTS raw.pos_transactions_header (
    transaction_id   TEXT,
    store_id         TEXT,
    customer_id      TEXT,
    transaction_date TEXT,
    payment_method   TEXT,
    total_amount     TEXT,
    loyalty_points   TEXT,
    last_updated     TEXT,
    batch_id         TEXT NOT NULL,
    source_file      TEXT NOT NULL,
    load_ts          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS raw.pos_transactions_lines (
    line_id          TEXT,
    transaction_id   TEXT,
    product_sku      TEXT,
    store_id         TEXT,
    quantity         TEXT,
    unit_price       TEXT,
    discount_amount  TEXT,
    sales_amount     TEXT,
    promotion_id     TEXT,
    last_updated     TEXT,
    batch_id         TEXT NOT NULL,
    source_file      TEXT NOT NULL,
    load_ts          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS raw.erp_products (
    sku              TEXT,
    product_name     TEXT,
    category         TEXT,
    sub_category     TEXT,
    unit_price       TEXT,
    cost_price       TEXT,
    supplier_id      TEXT,
    launch_date      TEXT,
    last_updated     TEXT,
    batch_id         TEXT NOT NULL,
    source_file      TEXT NOT NULL,
    load_ts          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS raw.erp_stores (
    store_id         TEXT,
    store_name       TEXT,
    city             TEXT,
    region           TEXT,
    store_type       TEXT,
    square_footage   TEXT,
    opening_date     TEXT,
    last_updated     TEXT,
    batch_id         TEXT NOT NULL,
    source_file      TEXT NOT NULL,
    load_ts          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS raw.erp_inventory (
    inventory_id      TEXT,
    product_sku       TEXT,
    store_id          TEXT,
    snapshot_date     TEXT,
    quantity_on_hand  TEXT,
    quantity_reserved TEXT,
    reorder_point     TEXT,
    last_updated      TEXT,
    batch_id          TEXT NOT NULL,
    source_file       TEXT NOT NULL,
    load_ts           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS raw.crm_customers (
    customer_id      TEXT,
    first_name       TEXT,
    last_name        TEXT,
    email            TEXT,
    phone            TEXT,
    city             TEXT,
    loyalty_tier     TEXT,
    join_date        TEXT,
    last_updated     TEXT,
    batch_id         TEXT NOT NULL,
    source_file      TEXT NOT NULL,
    load_ts          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS raw.mkt_promotions (
    promotion_id     TEXT,
    promotion_name   TEXT,
    promo_type       TEXT,
    start_date       TEXT,
    end_date         TEXT,
    discount_pct     TEXT,
    eligible_skus    TEXT,
    store_scope      TEXT,
    last_updated     TEXT,
    batch_id         TEXT NOT NULL,
    source_file      TEXT NOT NULL,
    load_ts          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS raw.api_weather (
    retail_location_id TEXT,
    weather_date       TEXT,
    temp_high_c        TEXT,
    temp_low_c         TEXT,
    precipitation_mm   TEXT,
    humidity_pct       TEXT,
    weather_condition  TEXT,
    last_updated       TEXT,
    batch_id           TEXT NOT NULL,
    source_file        TEXT NOT NULL,
    load_ts            TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Staging layer: typed projections of raw with per-field DQ flags.
// Row counts always equal raw; coercion failures become NULL + flag.
const createStagingSchemaSQL = `
CREATE SCHEMA IF NOT EXISTS staging;

CREATE TABLE IF NOT EXISTS staging.transactions_header (
    transaction_id       TEXT,
    store_id             TEXT,
    customer_id          TEXT,
    transaction_date     DATE,
    payment_method       TEXT,
    total_amount         NUMERIC(12,2),
    loyalty_points       INTEGER,
    last_updated         TIMESTAMPTZ,
    dq_transaction_id_valid BOOLEAN NOT NULL,
    dq_store_id_valid    BOOLEAN NOT NULL,
    dq_customer_id_valid BOOLEAN NOT NULL,
    dq_date_valid        BOOLEAN NOT NULL,
    dq_amount_valid      BOOLEAN NOT NULL,
    dq_payment_valid     BOOLEAN NOT NULL,
    dq_is_valid          BOOLEAN NOT NULL,
    batch_id             TEXT NOT NULL,
    source_file          TEXT NOT NULL,
    load_ts              TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS staging.transactions_lines (
    line_id              TEXT,
    transaction_id       TEXT,
    product_sku          TEXT,
    store_id             TEXT,
    quantity             INTEGER,
    unit_price           NUMERIC(12,2),
    discount_amount      NUMERIC(12,2),
    sales_amount         NUMERIC(12,2),
    promotion_id         TEXT,
    last_updated         TIMESTAMPTZ,
    is_return            BOOLEAN NOT NULL,
    is_outlier_qty       BOOLEAN NOT NULL,
    has_discount         BOOLEAN NOT NULL,
    has_promotion        BOOLEAN NOT NULL,
    dq_line_id_valid     BOOLEAN NOT NULL,
    dq_transaction_id_valid BOOLEAN NOT NULL,
    dq_product_sku_valid BOOLEAN NOT NULL,
    dq_store_id_valid    BOOLEAN NOT NULL,
    dq_quantity_valid    BOOLEAN NOT NULL,
    dq_unit_price_valid  BOOLEAN NOT NULL,
    dq_sales_amount_valid BOOLEAN NOT NULL,
    dq_is_valid          BOOLEAN NOT NULL,
    batch_id             TEXT NOT NULL,
    source_file          TEXT NOT NULL,
    load_ts              TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS staging.products (
    sku                  TEXT,
    product_name         TEXT,
    category             TEXT,
    sub_category         TEXT,
    unit_price           NUMERIC(12,2),
    cost_price           NUMERIC(12,2),
    supplier_id          TEXT,
    launch_date          DATE,
    last_updated         TIMESTAMPTZ,
    dq_sku_valid         BOOLEAN NOT NULL,
    dq_name_valid        BOOLEAN NOT NULL,
    dq_category_valid    BOOLEAN NOT NULL,
    dq_sub_category_valid BOOLEAN NOT NULL,
    dq_unit_price_valid  BOOLEAN NOT NULL,
    dq_cost_price_valid  BOOLEAN NOT NULL,
    dq_supplier_valid    BOOLEAN NOT NULL,
    dq_is_valid          BOOLEAN NOT NULL,
    batch_id             TEXT NOT NULL,
    source_file          TEXT NOT NULL,
    load_ts              TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS staging.stores (
    store_id             TEXT,
    store_name           TEXT,
    city                 TEXT,
    region               TEXT,
    store_type           TEXT,
    square_footage       INTEGER,
    opening_date         DATE,
    last_updated         TIMESTAMPTZ,
    dq_store_id_valid    BOOLEAN NOT NULL,
    dq_name_valid        BOOLEAN NOT NULL,
    dq_city_valid        BOOLEAN NOT NULL,
    dq_region_valid      BOOLEAN NOT NULL,
    dq_type_valid        BOOLEAN NOT NULL,
    dq_opening_date_valid BOOLEAN NOT NULL,
    dq_is_valid          BOOLEAN NOT NULL,
    batch_id             TEXT NOT NULL,
    source_file          TEXT NOT NULL,
    load_ts              TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS staging.inventory (
    inventory_id         TEXT,
    product_sku          TEXT,
    store_id             TEXT,
    snapshot_date        DATE,
    quantity_on_hand     INTEGER,
    quantity_reserved    INTEGER,
    reorder_point        INTEGER,
    last_updated         TIMESTAMPTZ,
    dq_inventory_id_valid BOOLEAN NOT NULL,
    dq_product_sku_valid BOOLEAN NOT NULL,
    dq_store_id_valid    BOOLEAN NOT NULL,
    dq_snapshot_date_valid BOOLEAN NOT NULL,
    dq_on_hand_valid     BOOLEAN NOT NULL,
    dq_is_valid          BOOLEAN NOT NULL,
    batch_id             TEXT NOT NULL,
    source_file          TEXT NOT NULL,
    load_ts              TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS staging.customers (
    customer_id          TEXT,
    first_name           TEXT,
    last_name            TEXT,
    email                TEXT,
    phone                TEXT,
    city                 TEXT,
    loyalty_tier         TEXT,
    join_date            DATE,
    last_updated         TIMESTAMPTZ,
    dq_customer_id_valid BOOLEAN NOT NULL,
    dq_name_valid        BOOLEAN NOT NULL,
    dq_email_valid       BOOLEAN NOT NULL,
    dq_phone_valid       BOOLEAN NOT NULL,
    dq_tier_valid        BOOLEAN NOT NULL,
    dq_join_date_valid   BOOLEAN NOT NULL,
    dq_is_valid          BOOLEAN NOT NULL,
    batch_id             TEXT NOT NULL,
    source_file          TEXT NOT NULL,
    load_ts              TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS staging.promotions (
    promotion_id         TEXT,
    promotion_name       TEXT,
    promo_type           TEXT,
    start_date           DATE,
    end_date             DATE,
    discount_pct         NUMERIC(5,2),
    eligible_skus        TEXT,
    store_scope          TEXT,
    last_updated         TIMESTAMPTZ,
    dq_promotion_id_valid BOOLEAN NOT NULL,
    dq_name_valid        BOOLEAN NOT NULL,
    dq_type_valid        BOOLEAN NOT NULL,
    dq_dates_valid       BOOLEAN NOT NULL,
    dq_discount_valid    BOOLEAN NOT NULL,
    dq_skus_valid        BOOLEAN NOT NULL,
    dq_is_valid          BOOLEAN NOT NULL,
    batch_id             TEXT NOT NULL,
    source_file          TEXT NOT NULL,
    load_ts              TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS staging.weather (
    retail_location_id   TEXT,
    weather_date         DATE,
    temp_high_c          NUMERIC(6,2),
    temp_low_c           NUMERIC(6,2),
    precipitation_mm     NUMERIC(8,2),
    humidity_pct         NUMERIC(5,2),
    weather_condition    TEXT,
    last_updated         TIMESTAMPTZ,
    dq_location_valid    BOOLEAN NOT NULL,
    dq_date_valid        BOOLEAN NOT NULL,
    dq_temps_valid       BOOLEAN NOT NULL,
    dq_precip_valid      BOOLEAN NOT NULL,
    dq_condition_valid   BOOLEAN NOT NULL,
    dq_is_valid          BOOLEAN NOT NULL,
    batch_id             TEXT NOT NULL,
    source_file          TEXT NOT NULL,
    load_ts              TIMESTAMPTZ NOT NULL
);
`

// Silver layer: one conformed record per natural key, quality scored.
// silver.products carries SCD Type 2 history and is never truncated by
// a pipeline run; all other silver tables follow the configured
// materialization strategy.
const createSilverSchemaSQL = `
CREATE SCHEMA IF NOT EXISTS silver;

CREATE TABLE IF NOT EXISTS silver.products (
    sku               TEXT NOT NULL,
    version_number    INTEGER NOT NULL,
    product_name      TEXT,
    category          TEXT,
    sub_category      TEXT,
    unit_price        NUMERIC(12,2),
    cost_price        NUMERIC(12,2),
    supplier_id       TEXT,
    launch_date       DATE,
    effective_from    DATE NOT NULL,
    effective_to      DATE,
    is_current        BOOLEAN NOT NULL,
    dq_score          INTEGER NOT NULL,
    is_valid          BOOLEAN NOT NULL,
    batch_id          TEXT NOT NULL,
    updated_ts        TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (sku, version_number)
);

CREATE TABLE IF NOT EXISTS silver.stores (
    store_id        TEXT PRIMARY KEY,
    store_name      TEXT,
    city            TEXT,
    region          TEXT,
    store_type      TEXT,
    square_footage  INTEGER,
    opening_date    DATE,
    dq_score        INTEGER NOT NULL,
    is_valid        BOOLEAN NOT NULL,
    batch_id        TEXT NOT NULL,
    updated_ts      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS silver.customers (
    customer_id     TEXT PRIMARY KEY,
    first_name      TEXT,
    last_name       TEXT,
    email           TEXT,
    phone           TEXT,
    city            TEXT,
    loyalty_tier    TEXT,
    join_date       DATE,
    dq_score        INTEGER NOT NULL,
    is_valid        BOOLEAN NOT NULL,
    batch_id        TEXT NOT NULL,
    updated_ts      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS silver.promotions (
    promotion_id    TEXT PRIMARY KEY,
    promotion_name  TEXT,
    promo_type      TEXT,
    start_date      DATE,
    end_date        DATE,
    discount_pct    NUMERIC(5,2),
    eligible_skus   TEXT,
    store_scope     TEXT,
    dq_score        INTEGER NOT NULL,
    is_valid        BOOLEAN NOT NULL,
    batch_id        TEXT NOT NULL,
    updated_ts      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS silver.inventory (
    product_sku       TEXT NOT NULL,
    store_id          TEXT NOT NULL,
    snapshot_date     DATE NOT NULL,
    quantity_on_hand  INTEGER,
    quantity_reserved INTEGER,
    reorder_point     INTEGER,
    product_exists    BOOLEAN NOT NULL,
    store_exists      BOOLEAN NOT NULL,
    dq_score          INTEGER NOT NULL,
    is_valid          BOOLEAN NOT NULL,
    batch_id          TEXT NOT NULL,
    updated_ts        TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (product_sku, store_id, snapshot_date)
);

CREATE TABLE IF NOT EXISTS silver.weather (
    store_id          TEXT NOT NULL,
    weather_date      DATE NOT NULL,
    temp_high_c       NUMERIC(6,2),
    temp_low_c        NUMERIC(6,2),
    precipitation_mm  NUMERIC(8,2),
    humidity_pct      NUMERIC(5,2),
    weather_condition TEXT,
    store_exists      BOOLEAN NOT NULL,
    dq_score          INTEGER NOT NULL,
    is_valid          BOOLEAN NOT NULL,
    batch_id          TEXT NOT NULL,
    updated_ts        TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (store_id, weather_date)
);

CREATE TABLE IF NOT EXISTS silver.transactions_header (
    transaction_id   TEXT PRIMARY KEY,
    store_id         TEXT,
    customer_id      TEXT,
    transaction_date DATE,
    payment_method   TEXT,
    total_amount     NUMERIC(12,2),
    loyalty_points   INTEGER,
    store_exists     BOOLEAN NOT NULL,
    customer_exists  BOOLEAN NOT NULL,
    dq_score         INTEGER NOT NULL,
    is_valid         BOOLEAN NOT NULL,
    batch_id         TEXT NOT NULL,
    updated_ts       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS silver.transactions_lines (
    line_id            TEXT PRIMARY KEY,
    transaction_id     TEXT,
    product_sku        TEXT,
    store_id           TEXT,
    quantity           INTEGER,
    unit_price         NUMERIC(12,2),
    discount_amount    NUMERIC(12,2),
    sales_amount       NUMERIC(12,2),
    promotion_id       TEXT,
    is_return          BOOLEAN NOT NULL,
    is_outlier_qty     BOOLEAN NOT NULL,
    has_discount       BOOLEAN NOT NULL,
    has_promotion      BOOLEAN NOT NULL,
    transaction_exists BOOLEAN NOT NULL,
    product_exists     BOOLEAN NOT NULL,
    store_exists       BOOLEAN NOT NULL,
    promotion_exists   BOOLEAN NOT NULL,
    dq_score           INTEGER NOT NULL,
    is_valid           BOOLEAN NOT NULL,
    batch_id           TEXT NOT NULL,
    updated_ts         TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Gold layer: star schema. Dimensions carry a surrogate key plus the
// natural business key; facts reference dimension natural keys.
const createGoldSchemaSQL = `
CREATE SCHEMA IF NOT EXISTS gold;

CREATE TABLE IF NOT EXISTS gold.dim_date (
    date_key       INTEGER PRIMARY KEY,
    full_date      DATE NOT NULL,
    year           INTEGER NOT NULL,
    quarter        INTEGER NOT NULL,
    month          INTEGER NOT NULL,
    day            INTEGER NOT NULL,
    day_of_week    INTEGER NOT NULL,
    iso_week       INTEGER NOT NULL,
    day_name       TEXT NOT NULL,
    month_name     TEXT NOT NULL,
    quarter_name   TEXT NOT NULL,
    is_weekend     BOOLEAN NOT NULL,
    is_month_start BOOLEAN NOT NULL,
    is_month_end   BOOLEAN NOT NULL,
    is_holiday     BOOLEAN NOT NULL,
    holiday_name   TEXT,
    fiscal_year    INTEGER NOT NULL,
    fiscal_quarter INTEGER NOT NULL,
    created_ts     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS gold.dim_product (
    product_key    BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    sku            TEXT NOT NULL,
    version_number INTEGER NOT NULL,
    product_name   TEXT,
    category       TEXT,
    sub_category   TEXT,
    unit_price     NUMERIC(12,2),
    cost_price     NUMERIC(12,2),
    supplier_id    TEXT,
    effective_from DATE NOT NULL,
    effective_to   DATE,
    is_current     BOOLEAN NOT NULL,
    dq_score       INTEGER NOT NULL,
    batch_id       TEXT NOT NULL,
    UNIQUE (sku, version_number)
);

CREATE TABLE IF NOT EXISTS gold.dim_store (
    store_key      BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    store_id       TEXT NOT NULL UNIQUE,
    store_name     TEXT,
    city           TEXT,
    region         TEXT,
    store_type     TEXT,
    square_footage INTEGER,
    opening_date   DATE,
    dq_score       INTEGER NOT NULL,
    batch_id       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gold.dim_customer (
    customer_key BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    customer_id  TEXT NOT NULL UNIQUE,
    first_name   TEXT,
    last_name    TEXT,
    email        TEXT,
    city         TEXT,
    loyalty_tier TEXT,
    join_date    DATE,
    dq_score     INTEGER NOT NULL,
    batch_id     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gold.dim_promotion (
    promotion_key  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    promotion_id   TEXT NOT NULL UNIQUE,
    promotion_name TEXT,
    promo_type     TEXT,
    start_date     DATE,
    end_date       DATE,
    discount_pct   NUMERIC(5,2),
    store_scope    TEXT,
    dq_score       INTEGER NOT NULL,
    batch_id       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gold.bridge_promotion_product (
    promotion_id TEXT NOT NULL,
    product_sku  TEXT NOT NULL,
    batch_id     TEXT NOT NULL,
    PRIMARY KEY (promotion_id, product_sku)
);

CREATE TABLE IF NOT EXISTS gold.fact_sales (
    line_id         TEXT PRIMARY KEY,
    transaction_id  TEXT,
    date_key        INTEGER,
    store_id        TEXT,
    customer_id     TEXT,
    product_sku     TEXT,
    promotion_id    TEXT,
    quantity        INTEGER,
    unit_price      NUMERIC(12,2),
    discount_amount NUMERIC(12,2),
    sales_amount    NUMERIC(12,2),
    cost_amount     NUMERIC(12,2),
    margin_amount   NUMERIC(12,2),
    is_return       BOOLEAN NOT NULL,
    has_discount    BOOLEAN NOT NULL,
    has_promotion   BOOLEAN NOT NULL,
    dq_score        INTEGER NOT NULL,
    batch_id        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gold.fact_inventory (
    product_sku       TEXT NOT NULL,
    store_id          TEXT NOT NULL,
    date_key          INTEGER NOT NULL,
    quantity_on_hand  INTEGER,
    quantity_reserved INTEGER,
    quantity_available INTEGER,
    reorder_point     INTEGER,
    below_reorder     BOOLEAN NOT NULL,
    dq_score          INTEGER NOT NULL,
    batch_id          TEXT NOT NULL,
    PRIMARY KEY (product_sku, store_id, date_key)
);

CREATE TABLE IF NOT EXISTS gold.fact_store_weather (
    store_id          TEXT NOT NULL,
    date_key          INTEGER NOT NULL,
    temp_high_c       NUMERIC(6,2),
    temp_low_c        NUMERIC(6,2),
    precipitation_mm  NUMERIC(8,2),
    humidity_pct      NUMERIC(5,2),
    weather_condition TEXT,
    dq_score          INTEGER NOT NULL,
    batch_id          TEXT NOT NULL,
    PRIMARY KEY (store_id, date_key)
);

CREATE TABLE IF NOT EXISTS gold.agg_daily_sales (
    date_key          INTEGER NOT NULL,
    store_id          TEXT NOT NULL,
    transaction_count INTEGER NOT NULL,
    units_sold        INTEGER NOT NULL,
    gross_sales       NUMERIC(14,2) NOT NULL,
    total_discount    NUMERIC(14,2) NOT NULL,
    total_margin      NUMERIC(14,2) NOT NULL,
    return_units      INTEGER NOT NULL,
    batch_id          TEXT NOT NULL,
    PRIMARY KEY (date_key, store_id)
);

CREATE TABLE IF NOT EXISTS gold.agg_monthly_sales (
    year              INTEGER NOT NULL,
    month             INTEGER NOT NULL,
    store_id          TEXT NOT NULL,
    transaction_count INTEGER NOT NULL,
    units_sold        INTEGER NOT NULL,
    gross_sales       NUMERIC(14,2) NOT NULL,
    total_discount    NUMERIC(14,2) NOT NULL,
    total_margin      NUMERIC(14,2) NOT NULL,
    batch_id          TEXT NOT NULL,
    PRIMARY KEY (year, month, store_id)
);

CREATE TABLE IF NOT EXISTS gold.agg_product_performance (
    product_sku    TEXT PRIMARY KEY,
    category       TEXT,
    units_sold     INTEGER NOT NULL,
    gross_sales    NUMERIC(14,2) NOT NULL,
    total_margin   NUMERIC(14,2) NOT NULL,
    margin_pct     NUMERIC(6,2),
    store_count    INTEGER NOT NULL,
    return_units   INTEGER NOT NULL,
    return_rate    NUMERIC(6,4),
    batch_id       TEXT NOT NULL
);
`

// CreateSchemas creates all warehouse schemas and tables. All DDL is
// idempotent.
func CreateSchemas(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range []struct {
		name string
		sql  string
	}{
		{"raw", createRawSchemaSQL},
		{"staging", createStagingSchemaSQL},
		{"silver", createSilverSchemaSQL},
		{"gold", createGoldSchemaSQL},
	} {
		logging.Info().Str("schema", ddl.name).Msg("Creating schema")
		if _, err := pool.Exec(ctx, ddl.sql); err != nil {
			return fmt.Errorf("failed to create %s schema: %w", ddl.name, err)
		}
	}
	return nil
}

// DropSchemas drops all warehouse schemas.
func DropSchemas(ctx context.Context, pool *pgxpool.Pool) error {
	for _, schema := range []string{"gold", "silver", "staging", "raw"} {
		logging.Warn().Str("schema", schema).Msg("Dropping schema")
		if _, err := pool.Exec(ctx,
			fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema)); err != nil {
			return fmt.Errorf("failed to drop %s schema: %w", schema, err)
		}
	}
	return nil
}

// RawTables lists the raw tables in ingestion order with their source
// system and entity name, matching the source file map of the upstream
// ingestion jobs.
type RawTable struct {
	Table        string
	SourceSystem string
	Entity       string
}

// RawTableList is ordered to match the upstream ingestion sequence.
var RawTableList = []RawTable{
	{"raw.pos_transactions_header", "POS", "transactions_header"},
	{"raw.pos_transactions_lines", "POS", "transactions_lines"},
	{"raw.erp_products", "ERP", "products"},
	{"raw.erp_stores", "ERP", "stores"},
	{"raw.erp_inventory", "ERP", "inventory"},
	{"raw.crm_customers", "CRM", "customers"},
	{"raw.mkt_promotions", "MKT", "promotions"},
	{"raw.api_weather", "API", "weather"},
}
