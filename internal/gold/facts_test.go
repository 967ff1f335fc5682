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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroretail/metro-pipeline/internal/silver"
)

func ip(n int) *int         { return &n }
func fp(f float64) *float64 { return &f }

func salesLine(lineID, txnID, sku string, qty int, sales float64) silver.ConformedLine {
	return silver.ConformedLine{
		LineID:        lineID,
		TransactionID: sp(txnID),
		ProductSKU:    sp(sku),
		StoreID:       sp("S001"),
		Quantity:      ip(qty),
		UnitPrice:     fp(sales / float64(qty)),
		SalesAmount:   fp(sales),
		DQScore:       100,
		IsValid:       true,
		BatchID:       "POS_transactions_lines_20250801_060000",
	}
}

func TestBuildSalesFactsMargin(t *testing.T) {
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	headers := map[string]silver.ConformedHeader{
		"TXN001": {TransactionID: "TXN001", StoreID: sp("S001"),
			CustomerID: sp("C00042"), TransactionDate: &date},
	}
	costs := map[string]float64{"P001": 6.50}

	facts := BuildSalesFacts([]silver.ConformedLine{
		salesLine("L1", "TXN001", "P001", 2, 20.00),
	}, headers, costs)

	require.Len(t, facts, 1)
	f := facts[0]
	require.NotNil(t, f.DateKey)
	assert.Equal(t, 20250715, *f.DateKey)
	assert.Equal(t, "C00042", *f.CustomerID)
	require.NotNil(t, f.CostAmount)
	assert.InDelta(t, 13.00, *f.CostAmount, 1e-9)
	require.NotNil(t, f.MarginAmount)
	assert.InDelta(t, 7.00, *f.MarginAmount, 1e-9)
}

func TestBuildSalesFactsMissingJoinsLeaveNulls(t *testing.T) {
	headers := map[string]silver.ConformedHeader{}
	costs := map[string]float64{}

	facts := BuildSalesFacts([]silver.ConformedLine{
		salesLine("L1", "TXN999", "P999", 1, 10.00),
	}, headers, costs)

	require.Len(t, facts, 1, "a line never disappears for lack of a join")
	f := facts[0]
	assert.Nil(t, f.DateKey)
	assert.Nil(t, f.CustomerID)
	assert.Nil(t, f.CostAmount)
	assert.Nil(t, f.MarginAmount)
	assert.Equal(t, 10.00, *f.SalesAmount)
}

func TestBuildSalesFactsCostWithoutSales(t *testing.T) {
	line := salesLine("L1", "TXN001", "P001", 3, 30.00)
	line.SalesAmount = nil

	facts := BuildSalesFacts([]silver.ConformedLine{line},
		map[string]silver.ConformedHeader{}, map[string]float64{"P001": 4.00})

	require.Len(t, facts, 1)
	require.NotNil(t, facts[0].CostAmount)
	assert.InDelta(t, 12.00, *facts[0].CostAmount, 1e-9)
	assert.Nil(t, facts[0].MarginAmount, "margin needs both sides")
}

func TestBuildInventoryFacts(t *testing.T) {
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	facts := BuildInventoryFacts([]silver.ConformedInventory{
		{ProductSKU: "P001", StoreID: "S001", SnapshotDate: date,
			QuantityOnHand: ip(100), QuantityReserved: ip(30), ReorderPoint: ip(50)},
		{ProductSKU: "P002", StoreID: "S001", SnapshotDate: date,
			QuantityOnHand: ip(40), QuantityReserved: nil, ReorderPoint: ip(50)},
	})

	require.Len(t, facts, 2)
	assert.Equal(t, 20250801, facts[0].DateKey)
	assert.Equal(t, 70, *facts[0].QuantityAvailable)
	assert.False(t, facts[0].BelowReorder)

	// Nil reserved counts as zero.
	assert.Equal(t, 40, *facts[1].QuantityAvailable)
	assert.True(t, facts[1].BelowReorder)
}

func TestBuildWeatherFacts(t *testing.T) {
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	facts := BuildWeatherFacts([]silver.ConformedWeather{
		{StoreID: "S001", WeatherDate: date, TempHighC: fp(32.5),
			TempLowC: fp(21.0), WeatherCondition: sp("Sunny"), DQScore: 100},
	})

	require.Len(t, facts, 1)
	assert.Equal(t, "S001", facts[0].StoreID)
	assert.Equal(t, 20250801, facts[0].DateKey)
	assert.Equal(t, 32.5, *facts[0].TempHighC)
	assert.Equal(t, "Sunny", *facts[0].WeatherCondition)
}
