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

	"github.com/metroretail/metro-pipeline/internal/staging"
)

func ip(n int) *int { return &n }

func stagedLine(lineID, txnID, sku, storeID string, promoID *string) staging.StagedTransactionLine {
	return staging.StagedTransactionLine{
		RecordMeta: staging.RecordMeta{
			BatchID: "POS_transactions_lines_20250801_060000",
			LoadTS:  time.Date(2025, 8, 1, 6, 0, 0, 0, time.UTC),
		},
		LineID:               sp(lineID),
		TransactionID:        sp(txnID),
		ProductSKU:           sp(sku),
		StoreID:              sp(storeID),
		Quantity:             ip(2),
		UnitPrice:            fp(10),
		SalesAmount:          fp(20),
		PromotionID:          promoID,
		DQLineIDValid:        true,
		DQTransactionIDValid: true,
		DQProductSKUValid:    true,
		DQStoreIDValid:       true,
		DQQuantityValid:      true,
		DQUnitPriceValid:     true,
		DQSalesAmountValid:   true,
		DQIsValid:            true,
	}
}

func TestConformLinesAdvisoryKeepsDanglingFK(t *testing.T) {
	headers := RefSet{"TXN001": true}
	products := RefSet{"P001": true}
	stores := RefSet{"S001": true}
	promotions := RefSet{}

	lines := []staging.StagedTransactionLine{
		stagedLine("L1", "TXN001", "P001", "S001", nil),
		stagedLine("L2", "TXN001", "P999", "S001", nil), // dangling product
	}

	out := ConformLines(lines, headers, products, stores, promotions, false)
	require.Len(t, out, 2, "advisory policy must keep dangling references")

	assert.True(t, out[0].ProductExists)
	assert.False(t, out[1].ProductExists)
	assert.True(t, out[1].IsValid, "advisory: validity ignores FK existence")
}

func TestConformLinesEnforceDropsDanglingFK(t *testing.T) {
	headers := RefSet{"TXN001": true}
	products := RefSet{"P001": true}
	stores := RefSet{"S001": true}
	promotions := RefSet{}

	lines := []staging.StagedTransactionLine{
		stagedLine("L1", "TXN001", "P001", "S001", nil),
		stagedLine("L2", "TXN001", "P999", "S001", nil),
	}

	out := ConformLines(lines, headers, products, stores, promotions, true)
	require.Len(t, out, 1)
	assert.Equal(t, "L1", out[0].LineID)
}

func TestConformLinesOptionalPromotion(t *testing.T) {
	headers := RefSet{"TXN001": true}
	products := RefSet{"P001": true}
	stores := RefSet{"S001": true}
	promotions := RefSet{"PROMO001": true}

	lines := []staging.StagedTransactionLine{
		stagedLine("L1", "TXN001", "P001", "S001", nil),              // no promotion
		stagedLine("L2", "TXN001", "P001", "S001", sp("PROMO001")),   // valid promotion
		stagedLine("L3", "TXN001", "P001", "S001", sp("PROMO999")),   // dangling promotion
	}

	out := ConformLines(lines, headers, products, stores, promotions, true)
	require.Len(t, out, 2, "a null promotion is satisfied; a dangling one is not")
	assert.Equal(t, "L1", out[0].LineID)
	assert.Equal(t, "L2", out[1].LineID)
	assert.True(t, out[0].PromotionExists)
}

func TestConformProductsStandardizesCategory(t *testing.T) {
	staged := []staging.StagedProduct{{
		RecordMeta:         staging.RecordMeta{BatchID: "b", LoadTS: time.Now()},
		SKU:                sp("P001"),
		ProductName:        sp("Widget"),
		Category:           sp("Electroncs"),
		UnitPrice:          fp(19.99),
		DQSKUValid:         true,
		DQNameValid:        true,
		DQCategoryValid:    true,
		DQSubCategoryValid: false,
		DQUnitPriceValid:   true,
		DQCostPriceValid:   false,
		DQSupplierValid:    false,
		DQIsValid:          true,
	}}

	out := ConformProducts(staged)
	require.Len(t, out, 1)
	assert.Equal(t, "Electronics", *out[0].Category)
	// sku 20 + name 15 + category 15 + price 20 = 70
	assert.Equal(t, 70, out[0].DQScore)
	assert.True(t, out[0].IsValid)
}

func TestConformWeatherRemapsAndDedupes(t *testing.T) {
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC)

	staged := []staging.StagedWeather{
		{RecordMeta: staging.RecordMeta{BatchID: "b", LoadTS: older},
			RetailLocationID: sp("LOC_S001"), WeatherDate: &date,
			TempHighC: fp(20), TempLowC: fp(10), LastUpdated: &older,
			DQLocationValid: true, DQDateValid: true, DQTempsValid: true, DQIsValid: true},
		// Same store and day via a differently prefixed id; newer wins.
		{RecordMeta: staging.RecordMeta{BatchID: "b", LoadTS: older},
			RetailLocationID: sp("RETAIL_S001"), WeatherDate: &date,
			TempHighC: fp(25), TempLowC: fp(12), LastUpdated: &newer,
			DQLocationValid: true, DQDateValid: true, DQTempsValid: true, DQIsValid: true},
	}

	out := ConformWeather(staged, RefSet{"S001": true}, true)
	require.Len(t, out, 1)
	assert.Equal(t, "S001", out[0].StoreID)
	assert.Equal(t, 25.0, *out[0].TempHighC)
	assert.True(t, out[0].StoreExists)
}

func TestConformHeadersOptionalCustomer(t *testing.T) {
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	staged := []staging.StagedTransactionHeader{
		{RecordMeta: staging.RecordMeta{BatchID: "b", LoadTS: time.Now()},
			TransactionID: sp("TXN001"), StoreID: sp("S001"), TransactionDate: &date,
			TotalAmount: fp(100), DQTransactionIDValid: true, DQStoreIDValid: true,
			DQDateValid: true, DQAmountValid: true, DQIsValid: true},
	}

	out := ConformHeaders(staged, RefSet{"S001": true}, RefSet{}, true)
	require.Len(t, out, 1, "anonymous transaction passes the enforce policy")
	assert.True(t, out[0].CustomerExists)
	assert.True(t, out[0].StoreExists)
}
