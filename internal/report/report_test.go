//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"math"
	"testing"

	"github.com/metroretail/metro-pipeline/internal/config"
)

func TestHealthFor(t *testing.T) {
	tests := []struct {
		name     string
		validPct float64
		want     Health
	}{
		{"well above healthy", 99.5, Healthy},
		{"exactly healthy threshold", 95, Healthy},
		{"just below healthy", 94.99, Degraded},
		{"exactly degraded threshold", 80, Degraded},
		{"just below degraded", 79.99, NeedsAttention},
		{"zero", 0, NeedsAttention},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HealthFor(tt.validPct, 95, 80)
			if got != tt.want {
				t.Errorf("HealthFor(%v) = %v, want %v", tt.validPct, got, tt.want)
			}
		})
	}
}

func TestEntityValidPct(t *testing.T) {
	tests := []struct {
		name  string
		stats EntityStats
		want  float64
	}{
		{"all valid", EntityStats{StagedCount: 200, StagedValid: 200}, 100},
		{"three quarters", EntityStats{StagedCount: 200, StagedValid: 150}, 75},
		{"none valid", EntityStats{StagedCount: 10, StagedValid: 0}, 0},
		{"empty entity counts as valid", EntityStats{}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.ValidPct(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ValidPct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverallValidPctWeightsByRows(t *testing.T) {
	r := RunReport{Entities: []EntityStats{
		{Entity: "products", StagedCount: 900, StagedValid: 900},
		{Entity: "weather", StagedCount: 100, StagedValid: 0},
	}}

	// 900 of 1000 rows valid; a per-entity average would say 50.
	if got := r.OverallValidPct(); math.Abs(got-90) > 1e-9 {
		t.Errorf("OverallValidPct() = %v, want 90", got)
	}
}

func TestOverallValidPctEmptyRun(t *testing.T) {
	r := RunReport{}
	if got := r.OverallValidPct(); got != 100 {
		t.Errorf("OverallValidPct() = %v, want 100", got)
	}
}

func TestRunHealthUsesConfiguredThresholds(t *testing.T) {
	r := RunReport{Entities: []EntityStats{
		{Entity: "lines", StagedCount: 100, StagedValid: 85},
	}}
	cfg := config.PipelineConfig{HealthyPct: 95, DegradedPct: 80}

	if got := r.Health(cfg); got != Degraded {
		t.Errorf("Health() = %v, want %v", got, Degraded)
	}

	strict := config.PipelineConfig{HealthyPct: 99, DegradedPct: 90}
	if got := r.Health(strict); got != NeedsAttention {
		t.Errorf("Health() = %v, want %v", got, NeedsAttention)
	}
}
