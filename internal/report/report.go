//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report summarizes a pipeline run: per-entity row counts
// across the layers, valid percentages, and an overall health status
// banded by the configured thresholds.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/config"
	"github.com/metroretail/metro-pipeline/internal/logging"
)

// Health is the run-level quality band.
type Health string

const (
	Healthy        Health = "HEALTHY"
	Degraded       Health = "DEGRADED"
	NeedsAttention Health = "NEEDS_ATTENTION"
)

// HealthFor bands a valid percentage against the configured
// thresholds.
func HealthFor(validPct, healthyPct, degradedPct float64) Health {
	switch {
	case validPct >= healthyPct:
		return Healthy
	case validPct >= degradedPct:
		return Degraded
	default:
		return NeedsAttention
	}
}

// EntityStats tracks one entity's row counts across the layers.
type EntityStats struct {
	Entity      string
	RawCount    int64
	StagedCount int64
	StagedValid int64
	Conformed   int64
}

// ValidPct is the share of staged rows that passed the critical-field
// check. An empty entity counts as fully valid.
func (e EntityStats) ValidPct() float64 {
	if e.StagedCount == 0 {
		return 100
	}
	return float64(e.StagedValid) / float64(e.StagedCount) * 100
}

// RunReport is the post-run summary for one pipeline run.
type RunReport struct {
	RunID      string
	BatchID    string
	StartedAt  time.Time
	FinishedAt time.Time
	Entities   []EntityStats
	FactSales  int64
	FactInv    int64
	BridgeRows int64
}

// OverallValidPct weights every staged row equally across entities.
func (r *RunReport) OverallValidPct() float64 {
	var staged, valid int64
	for _, e := range r.Entities {
		staged += e.StagedCount
		valid += e.StagedValid
	}
	if staged == 0 {
		return 100
	}
	return float64(valid) / float64(staged) * 100
}

// Health bands the overall valid percentage.
func (r *RunReport) Health(cfg config.PipelineConfig) Health {
	return HealthFor(r.OverallValidPct(), cfg.HealthyPct, cfg.DegradedPct)
}

// entity maps one business entity to its table in each layer. The
// silver filter narrows SCD tables to current versions.
type entity struct {
	name         string
	raw          string
	staging      string
	silver       string
	silverFilter string
}

var entities = []entity{
	{"stores", "raw.erp_stores", "staging.stores", "silver.stores", ""},
	{"products", "raw.erp_products", "staging.products", "silver.products", "is_current"},
	{"customers", "raw.crm_customers", "staging.customers", "silver.customers", ""},
	{"promotions", "raw.mkt_promotions", "staging.promotions", "silver.promotions", ""},
	{"inventory", "raw.erp_inventory", "staging.inventory", "silver.inventory", ""},
	{"weather", "raw.api_weather", "staging.weather", "silver.weather", ""},
	{"transactions_header", "raw.pos_transactions_header", "staging.transactions_header", "silver.transactions_header", ""},
	{"transactions_lines", "raw.pos_transactions_lines", "staging.transactions_lines", "silver.transactions_lines", ""},
}

func count(ctx context.Context, pool *pgxpool.Pool, table, where string) (int64, error) {
	sql := fmt.Sprintf("SELECT count(*) FROM %s", table)
	if where != "" {
		sql += " WHERE " + where
	}
	var n int64
	if err := pool.QueryRow(ctx, sql).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// CollectEntities gathers each entity's current row counts across the
// raw, staging and silver layers.
func CollectEntities(ctx context.Context, pool *pgxpool.Pool) ([]EntityStats, error) {
	out := make([]EntityStats, 0, len(entities))
	for _, e := range entities {
		stats := EntityStats{Entity: e.name}
		var err error
		if stats.RawCount, err = count(ctx, pool, e.raw, ""); err != nil {
			return nil, err
		}
		if stats.StagedCount, err = count(ctx, pool, e.staging, ""); err != nil {
			return nil, err
		}
		if stats.StagedValid, err = count(ctx, pool, e.staging, "dq_is_valid"); err != nil {
			return nil, err
		}
		if stats.Conformed, err = count(ctx, pool, e.silver, e.silverFilter); err != nil {
			return nil, err
		}
		out = append(out, stats)
	}
	return out, nil
}

// GoldCounts holds the current fact and bridge row counts.
type GoldCounts struct {
	FactSales  int64
	FactInv    int64
	BridgeRows int64
}

// CollectGold gathers the current gold fact and bridge counts.
func CollectGold(ctx context.Context, pool *pgxpool.Pool) (GoldCounts, error) {
	var gc GoldCounts
	var err error
	if gc.FactSales, err = count(ctx, pool, "gold.fact_sales", ""); err != nil {
		return gc, err
	}
	if gc.FactInv, err = count(ctx, pool, "gold.fact_inventory", ""); err != nil {
		return gc, err
	}
	if gc.BridgeRows, err = count(ctx, pool, "gold.bridge_promotion_product", ""); err != nil {
		return gc, err
	}
	return gc, nil
}

// Collect gathers the per-entity and gold counts for a finished run.
func Collect(ctx context.Context, pool *pgxpool.Pool, runID, batchID string, startedAt time.Time) (*RunReport, error) {
	rep := &RunReport{
		RunID:      runID,
		BatchID:    batchID,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}

	var err error
	if rep.Entities, err = CollectEntities(ctx, pool); err != nil {
		return nil, err
	}

	gc, err := CollectGold(ctx, pool)
	if err != nil {
		return nil, err
	}
	rep.FactSales = gc.FactSales
	rep.FactInv = gc.FactInv
	rep.BridgeRows = gc.BridgeRows
	return rep, nil
}

// Log emits the report as structured events, one per entity plus the
// run-level summary.
func (r *RunReport) Log(cfg config.PipelineConfig) {
	for _, e := range r.Entities {
		logging.Info().
			Str("entity", e.Entity).
			Int64("raw", e.RawCount).
			Int64("staged", e.StagedCount).
			Int64("staged_valid", e.StagedValid).
			Int64("conformed", e.Conformed).
			Str("valid_pct", fmt.Sprintf("%.1f", e.ValidPct())).
			Msg("Entity summary")
	}

	logging.Info().
		Str("run_id", r.RunID).
		Str("batch_id", r.BatchID).
		Int64("fact_sales", r.FactSales).
		Int64("fact_inventory", r.FactInv).
		Int64("bridge_rows", r.BridgeRows).
		Str("overall_valid_pct", fmt.Sprintf("%.1f", r.OverallValidPct())).
		Str("health", string(r.Health(cfg))).
		Str("duration", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()).
		Msg("Run summary")
}
