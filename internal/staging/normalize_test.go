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
	"testing"
	"time"
)

func testMeta() RecordMeta {
	return RecordMeta{
		BatchID:    "POS_transactions_header_20250801_060000",
		SourceFile: "transactions_header_20250801.csv",
		LoadTS:     time.Date(2025, 8, 1, 6, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeHeadersRowCountPreserved(t *testing.T) {
	raws := []RawTransactionHeader{
		{RecordMeta: testMeta(), TransactionID: sp("TXN001"), StoreID: sp("S001"),
			TransactionDate: sp("2025-07-01"), TotalAmount: sp("$100.00")},
		{RecordMeta: testMeta()}, // entirely empty row still staged
		{RecordMeta: testMeta(), TransactionID: sp("TXN002"), StoreID: sp("S001"),
			TransactionDate: sp("garbage"), TotalAmount: sp("50.00")},
	}

	staged := NormalizeHeaders(raws)
	if len(staged) != len(raws) {
		t.Fatalf("staged %d rows, want %d: coercion must never drop rows", len(staged), len(raws))
	}

	if !staged[0].DQIsValid {
		t.Error("fully populated header should be valid")
	}
	if staged[1].DQIsValid {
		t.Error("empty header should be invalid")
	}
	if staged[2].DQIsValid {
		t.Error("header with unparseable date should be invalid")
	}
	if staged[2].TransactionDate != nil {
		t.Error("unparseable date should stage as nil")
	}
	if !staged[2].DQAmountValid {
		t.Error("amount flag should be independent of the date failure")
	}
}

func TestNormalizeHeadersNegativeAmount(t *testing.T) {
	raws := []RawTransactionHeader{
		{RecordMeta: testMeta(), TransactionID: sp("TXN001"), StoreID: sp("S001"),
			TransactionDate: sp("2025-07-01"), TotalAmount: sp("-10.00")},
	}
	staged := NormalizeHeaders(raws)
	if staged[0].DQAmountValid {
		t.Error("negative header total should fail the amount check")
	}
	if staged[0].DQIsValid {
		t.Error("header with negative total should be invalid")
	}
}

func TestNormalizeLinesFlags(t *testing.T) {
	raws := []RawTransactionLine{
		{RecordMeta: testMeta(), LineID: sp("L1"), TransactionID: sp("TXN001"),
			ProductSKU: sp("p001"), StoreID: sp("S001"), Quantity: sp("-2"),
			UnitPrice: sp("10.00"), SalesAmount: sp("(20.00)")},
		{RecordMeta: testMeta(), LineID: sp("L2"), TransactionID: sp("TXN001"),
			ProductSKU: sp("P002"), StoreID: sp("S001"), Quantity: sp("500"),
			UnitPrice: sp("5.00"), DiscountAmount: sp("2.50"),
			SalesAmount: sp("2497.50"), PromotionID: sp("PROMO001")},
		{RecordMeta: testMeta(), LineID: sp("L3"), TransactionID: sp("TXN001"),
			ProductSKU: sp("P003"), StoreID: sp("S001"), Quantity: sp("0"),
			UnitPrice: sp("5.00"), SalesAmount: sp("0.00")},
	}

	staged := NormalizeLines(raws, 100)

	ret := staged[0]
	if !ret.IsReturn {
		t.Error("negative quantity should flag a return")
	}
	if ret.SalesAmount == nil || *ret.SalesAmount != -20 {
		t.Errorf("accounting-negative sales = %v, want -20", ret.SalesAmount)
	}
	if ret.ProductSKU == nil || *ret.ProductSKU != "P001" {
		t.Error("SKU should be uppercased")
	}
	if !ret.DQIsValid {
		t.Error("a return line is valid data")
	}

	outlier := staged[1]
	if !outlier.IsOutlierQty {
		t.Error("quantity above threshold should flag an outlier")
	}
	if !outlier.HasDiscount || !outlier.HasPromotion {
		t.Error("discount and promotion flags should be set")
	}
	if !outlier.DQIsValid {
		t.Error("outlier quantity is flagged, not invalid")
	}

	zero := staged[2]
	if zero.DQQuantityValid {
		t.Error("zero quantity should fail the quantity check")
	}
	if zero.DQIsValid {
		t.Error("zero-quantity line should be invalid")
	}
}

func TestNormalizeProducts(t *testing.T) {
	raws := []RawProduct{
		{RecordMeta: testMeta(), SKU: sp("P001"), ProductName: sp("Widget"),
			Category: sp("Electroncs"), UnitPrice: sp("$19.99"), CostPrice: sp("12.00")},
		{RecordMeta: testMeta(), SKU: sp("P002"), ProductName: sp("N/A"),
			UnitPrice: sp("5.00")},
		{RecordMeta: testMeta(), SKU: sp("P003"), ProductName: sp("Gadget"),
			UnitPrice: sp("0.00")},
	}

	staged := NormalizeProducts(raws)

	if !staged[0].DQIsValid {
		t.Error("complete product should be valid")
	}
	if staged[0].Category == nil || *staged[0].Category != "Electroncs" {
		t.Error("staging must preserve the raw category; standardization is a silver concern")
	}
	if staged[0].UnitPrice == nil || *staged[0].UnitPrice != 19.99 {
		t.Errorf("unit price = %v, want 19.99", staged[0].UnitPrice)
	}

	if staged[1].ProductName != nil {
		t.Error("N/A name should stage as nil")
	}
	if staged[1].DQIsValid {
		t.Error("product without a name should be invalid")
	}

	if staged[2].DQUnitPriceValid {
		t.Error("zero price should fail the price check")
	}
}

func TestNormalizePromotionsDateOrder(t *testing.T) {
	raws := []RawPromotion{
		{RecordMeta: testMeta(), PromotionID: sp("PROMO001"), PromotionName: sp("Summer"),
			StartDate: sp("2025-06-01"), EndDate: sp("2025-06-30"), DiscountPct: sp("20"),
			EligibleSKUs: sp("P001|P002")},
		{RecordMeta: testMeta(), PromotionID: sp("PROMO002"), PromotionName: sp("Backwards"),
			StartDate: sp("2025-06-30"), EndDate: sp("2025-06-01"), DiscountPct: sp("20")},
		{RecordMeta: testMeta(), PromotionID: sp("PROMO003"), PromotionName: sp("Too deep"),
			StartDate: sp("2025-06-01"), EndDate: sp("2025-06-30"), DiscountPct: sp("120")},
		{RecordMeta: testMeta(), PromotionID: sp("PROMO004"), PromotionName: sp("Store wide"),
			StartDate: sp("2025-06-01"), EndDate: sp("2025-06-30"), DiscountPct: sp("15"),
			EligibleSKUs: sp("N/A")},
	}

	staged := NormalizePromotions(raws)

	if !staged[0].DQIsValid {
		t.Error("well-formed promotion should be valid")
	}
	if staged[1].DQDatesValid {
		t.Error("end before start should fail the date check")
	}
	if staged[2].DQDiscountValid {
		t.Error("discount above 100 should fail the discount check")
	}
	// N/A is a legitimate store-level marker, not missing data.
	if !staged[3].DQSKUsValid || !staged[3].DQIsValid {
		t.Error("sentinel SKU list should not penalize the promotion")
	}
}

func TestNormalizeWeatherTemps(t *testing.T) {
	raws := []RawWeather{
		{RecordMeta: testMeta(), RetailLocationID: sp("LOC_S001"),
			WeatherDate: sp("2025-07-01"), TempHighC: sp("28.5"), TempLowC: sp("17.0"),
			WeatherCondition: sp("sunny")},
		{RecordMeta: testMeta(), RetailLocationID: sp("LOC_S002"),
			WeatherDate: sp("2025-07-01"), TempHighC: sp("10.0"), TempLowC: sp("22.0")},
	}

	staged := NormalizeWeather(raws)

	if !staged[0].DQIsValid {
		t.Error("well-formed observation should be valid")
	}
	if staged[0].RetailLocationID == nil || *staged[0].RetailLocationID != "LOC_S001" {
		t.Error("location id remapping is a silver concern; staging keeps the source id")
	}
	if staged[1].DQTempsValid {
		t.Error("low above high should fail the temperature check")
	}
}

func TestNormalizeCustomers(t *testing.T) {
	raws := []RawCustomer{
		{RecordMeta: testMeta(), CustomerID: sp("C00001"), FirstName: sp("Jane"),
			LastName: sp("Doe"), Email: sp("jane@example.com"), LoyaltyTier: sp("gold")},
		{RecordMeta: testMeta(), CustomerID: sp("C00002"), Email: sp("not an email"),
			Phone: sp("NA")},
		{RecordMeta: testMeta(), Email: sp("orphan@example.com")},
	}

	staged := NormalizeCustomers(raws)

	if !staged[0].DQIsValid {
		t.Error("complete customer should be valid")
	}
	// Only the id is critical: a sparse CRM row still conforms.
	if !staged[1].DQIsValid {
		t.Error("customer with id should be valid despite bad email")
	}
	if staged[1].DQEmailValid {
		t.Error("malformed email should fail the email check")
	}
	if staged[1].Phone != nil {
		t.Error("NA phone should stage as nil")
	}
	if staged[2].DQIsValid {
		t.Error("customer without id should be invalid")
	}
}
