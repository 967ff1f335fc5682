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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(f float64) *float64 { return &f }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func product(sku string, price float64, updated string) ConformedProduct {
	p := ConformedProduct{
		SKU:       sku,
		UnitPrice: fp(price),
		DQScore:   100,
		IsValid:   true,
		BatchID:   "ERP_products_20250801_060000",
	}
	if updated != "" {
		u := day(updated)
		p.LastUpdated = &u
	}
	return p
}

func TestAdvanceHistoryNewSKUStartsAtVersion1(t *testing.T) {
	delta := AdvanceHistory(nil, []ConformedProduct{product("P001", 19.99, "2025-07-10")}, day("2025-08-01"))

	require.Empty(t, delta.Close)
	require.Len(t, delta.Insert, 1)

	v := delta.Insert[0]
	assert.Equal(t, 1, v.VersionNumber)
	assert.True(t, v.IsCurrent)
	assert.Nil(t, v.EffectiveTo)
	assert.Equal(t, day("2025-07-10"), v.EffectiveFrom)
}

func TestAdvanceHistoryUnchangedProductNoDelta(t *testing.T) {
	current := map[string]ProductVersion{
		"P001": {SKU: "P001", VersionNumber: 1, UnitPrice: fp(19.99),
			EffectiveFrom: day("2025-07-01"), IsCurrent: true},
	}

	delta := AdvanceHistory(current, []ConformedProduct{product("P001", 19.99, "2025-08-01")}, day("2025-08-01"))
	assert.Empty(t, delta.Close)
	assert.Empty(t, delta.Insert)
}

func TestAdvanceHistoryPriceChangeVersions(t *testing.T) {
	current := map[string]ProductVersion{
		"P001": {SKU: "P001", VersionNumber: 1, UnitPrice: fp(19.99),
			EffectiveFrom: day("2025-07-01"), IsCurrent: true},
	}

	delta := AdvanceHistory(current, []ConformedProduct{product("P001", 24.99, "2025-08-15")}, day("2025-08-20"))

	require.Len(t, delta.Close, 1)
	assert.Equal(t, 1, delta.Close[0].VersionNumber)
	// Prior version ends the day before the new one starts.
	assert.Equal(t, day("2025-08-14"), delta.Close[0].EffectiveTo)

	require.Len(t, delta.Insert, 1)
	v := delta.Insert[0]
	assert.Equal(t, 2, v.VersionNumber)
	assert.Equal(t, day("2025-08-15"), v.EffectiveFrom)
	assert.True(t, v.IsCurrent)
	assert.Nil(t, v.EffectiveTo)
}

func TestAdvanceHistorySameDayChange(t *testing.T) {
	// A change stamped on (or before) the prior version's start day
	// must not produce an inverted validity range.
	current := map[string]ProductVersion{
		"P001": {SKU: "P001", VersionNumber: 3, UnitPrice: fp(10),
			EffectiveFrom: day("2025-08-01"), IsCurrent: true},
	}

	delta := AdvanceHistory(current, []ConformedProduct{product("P001", 12, "2025-08-01")}, day("2025-08-01"))

	require.Len(t, delta.Close, 1)
	require.Len(t, delta.Insert, 1)
	assert.Equal(t, day("2025-08-01"), delta.Close[0].EffectiveTo)
	assert.Equal(t, day("2025-08-02"), delta.Insert[0].EffectiveFrom)
	assert.Equal(t, 4, delta.Insert[0].VersionNumber)
	assert.True(t, delta.Insert[0].EffectiveFrom.After(delta.Close[0].EffectiveTo))
}

func TestAdvanceHistoryMissingTimestampUsesRunDate(t *testing.T) {
	delta := AdvanceHistory(nil, []ConformedProduct{product("P001", 5, "")}, day("2025-08-20"))
	require.Len(t, delta.Insert, 1)
	assert.Equal(t, day("2025-08-20"), delta.Insert[0].EffectiveFrom)
}

func TestAdvanceHistoryDeterministicOrder(t *testing.T) {
	incoming := []ConformedProduct{
		product("P003", 1, "2025-08-01"),
		product("P001", 1, "2025-08-01"),
		product("P002", 1, "2025-08-01"),
	}

	delta := AdvanceHistory(nil, incoming, day("2025-08-01"))
	require.Len(t, delta.Insert, 3)
	assert.Equal(t, "P001", delta.Insert[0].SKU)
	assert.Equal(t, "P002", delta.Insert[1].SKU)
	assert.Equal(t, "P003", delta.Insert[2].SKU)
}

func TestAdvanceHistoryAbsentSKULeftAlone(t *testing.T) {
	// A SKU missing from the incoming feed keeps its current version;
	// absence is not a change event.
	current := map[string]ProductVersion{
		"P001": {SKU: "P001", VersionNumber: 2, UnitPrice: fp(10),
			EffectiveFrom: day("2025-07-01"), IsCurrent: true},
	}

	delta := AdvanceHistory(current, nil, day("2025-08-01"))
	assert.Empty(t, delta.Close)
	assert.Empty(t, delta.Insert)
}
