//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package staging

// Per-entity normalizers. Each is a pure, total function of its raw
// input: one staged row out for every raw row in, with coercion
// failures degraded to NULL + flag. The aggregate DQ flag is the
// conjunction of the entity's critical fields only.

// NormalizeHeaders normalizes raw transaction headers.
// Critical fields: transaction id, store id, date, total amount.
func NormalizeHeaders(rows []RawTransactionHeader) []StagedTransactionHeader {
	out := make([]StagedTransactionHeader, 0, len(rows))
	for _, r := range rows {
		s := StagedTransactionHeader{RecordMeta: r.RecordMeta}

		s.TransactionID = NormalizeID(r.TransactionID)
		s.StoreID = NormalizeID(r.StoreID)
		s.CustomerID = NormalizeID(r.CustomerID)
		s.PaymentMethod = CleanText(r.PaymentMethod)
		s.TransactionDate, s.DQDateValid = ParseDate(r.TransactionDate)
		s.TotalAmount, s.DQAmountValid = ParseAmount(r.TotalAmount)
		s.LoyaltyPoints, _ = ParseInt(r.LoyaltyPoints)
		s.LastUpdated, _ = ParseTimestamp(r.LastUpdated)

		s.DQTransactionIDValid = s.TransactionID != nil
		s.DQStoreIDValid = s.StoreID != nil
		s.DQCustomerIDValid = s.CustomerID != nil
		s.DQPaymentValid = s.PaymentMethod != nil
		if s.DQAmountValid && *s.TotalAmount < 0 {
			s.DQAmountValid = false
		}

		s.DQIsValid = s.DQTransactionIDValid &&
			s.DQStoreIDValid &&
			s.DQDateValid &&
			s.DQAmountValid

		out = append(out, s)
	}
	return out
}

// NormalizeLines normalizes raw transaction lines. Critical fields:
// line id, transaction id, SKU, store, quantity != 0, unit price > 0,
// sales amount present. Business-rule flags (return, outlier quantity,
// discount, promotion) are computed here and passed through unscored.
func NormalizeLines(rows []RawTransactionLine, outlierQty int) []StagedTransactionLine {
	out := make([]StagedTransactionLine, 0, len(rows))
	for _, r := range rows {
		s := StagedTransactionLine{RecordMeta: r.RecordMeta}

		s.LineID = NormalizeID(r.LineID)
		s.TransactionID = NormalizeID(r.TransactionID)
		s.ProductSKU = NormalizeID(r.ProductSKU)
		s.StoreID = NormalizeID(r.StoreID)
		s.PromotionID = NormalizeID(r.PromotionID)
		s.Quantity, s.DQQuantityValid = ParseInt(r.Quantity)
		s.UnitPrice, s.DQUnitPriceValid = ParseAmount(r.UnitPrice)
		s.DiscountAmount, _ = ParseAmount(r.DiscountAmount)
		s.SalesAmount, s.DQSalesAmountValid = ParseAmount(r.SalesAmount)
		s.LastUpdated, _ = ParseTimestamp(r.LastUpdated)

		s.DQLineIDValid = s.LineID != nil
		s.DQTransactionIDValid = s.TransactionID != nil
		s.DQProductSKUValid = s.ProductSKU != nil
		s.DQStoreIDValid = s.StoreID != nil
		if s.DQQuantityValid && *s.Quantity == 0 {
			s.DQQuantityValid = false
		}
		if s.DQUnitPriceValid && *s.UnitPrice <= 0 {
			s.DQUnitPriceValid = false
		}

		s.IsReturn = s.Quantity != nil && *s.Quantity < 0
		s.IsOutlierQty = s.Quantity != nil && *s.Quantity > outlierQty
		s.HasDiscount = s.DiscountAmount != nil && *s.DiscountAmount > 0
		s.HasPromotion = s.PromotionID != nil

		s.DQIsValid = s.DQLineIDValid &&
			s.DQTransactionIDValid &&
			s.DQProductSKUValid &&
			s.DQStoreIDValid &&
			s.DQQuantityValid &&
			s.DQUnitPriceValid &&
			s.DQSalesAmountValid

		out = append(out, s)
	}
	return out
}

// NormalizeProducts normalizes raw products.
// Critical fields: SKU, name, unit price > 0.
func NormalizeProducts(rows []RawProduct) []StagedProduct {
	out := make([]StagedProduct, 0, len(rows))
	for _, r := range rows {
		s := StagedProduct{RecordMeta: r.RecordMeta}

		s.SKU = NormalizeID(r.SKU)
		s.ProductName = CleanText(r.ProductName)
		s.Category = CleanText(r.Category)
		s.SubCategory = CleanText(r.SubCategory)
		s.SupplierID = NormalizeID(r.SupplierID)
		s.UnitPrice, s.DQUnitPriceValid = ParseAmount(r.UnitPrice)
		s.CostPrice, s.DQCostPriceValid = ParseAmount(r.CostPrice)
		s.LaunchDate, _ = ParseDate(r.LaunchDate)
		s.LastUpdated, _ = ParseTimestamp(r.LastUpdated)

		s.DQSKUValid = s.SKU != nil
		s.DQNameValid = s.ProductName != nil
		s.DQCategoryValid = s.Category != nil
		s.DQSubCategoryValid = s.SubCategory != nil
		s.DQSupplierValid = s.SupplierID != nil
		if s.DQUnitPriceValid && *s.UnitPrice <= 0 {
			s.DQUnitPriceValid = false
		}
		if s.DQCostPriceValid && *s.CostPrice < 0 {
			s.DQCostPriceValid = false
		}

		s.DQIsValid = s.DQSKUValid && s.DQNameValid && s.DQUnitPriceValid

		out = append(out, s)
	}
	return out
}

// NormalizeStores normalizes raw stores.
// Critical fields: store id, name.
func NormalizeStores(rows []RawStore) []StagedStore {
	out := make([]StagedStore, 0, len(rows))
	for _, r := range rows {
		s := StagedStore{RecordMeta: r.RecordMeta}

		s.StoreID = NormalizeID(r.StoreID)
		s.StoreName = CleanText(r.StoreName)
		s.City = CleanText(r.City)
		s.Region = CleanText(r.Region)
		s.StoreType = CleanText(r.StoreType)
		s.SquareFootage, _ = ParseInt(r.SquareFootage)
		s.OpeningDate, s.DQOpeningDateValid = ParseDate(r.OpeningDate)
		s.LastUpdated, _ = ParseTimestamp(r.LastUpdated)

		s.DQStoreIDValid = s.StoreID != nil
		s.DQNameValid = s.StoreName != nil
		s.DQCityValid = s.City != nil
		s.DQRegionValid = s.Region != nil
		s.DQTypeValid = s.StoreType != nil

		s.DQIsValid = s.DQStoreIDValid && s.DQNameValid

		out = append(out, s)
	}
	return out
}

// NormalizeInventory normalizes raw inventory snapshots.
// Critical fields: SKU, store, snapshot date, quantity on hand >= 0.
func NormalizeInventory(rows []RawInventory) []StagedInventory {
	out := make([]StagedInventory, 0, len(rows))
	for _, r := range rows {
		s := StagedInventory{RecordMeta: r.RecordMeta}

		s.InventoryID = NormalizeID(r.InventoryID)
		s.ProductSKU = NormalizeID(r.ProductSKU)
		s.StoreID = NormalizeID(r.StoreID)
		s.SnapshotDate, s.DQSnapshotDateValid = ParseDate(r.SnapshotDate)
		s.QuantityOnHand, s.DQOnHandValid = ParseInt(r.QuantityOnHand)
		s.QuantityReserved, _ = ParseInt(r.QuantityReserved)
		s.ReorderPoint, _ = ParseInt(r.ReorderPoint)
		s.LastUpdated, _ = ParseTimestamp(r.LastUpdated)

		s.DQInventoryIDValid = s.InventoryID != nil
		s.DQProductSKUValid = s.ProductSKU != nil
		s.DQStoreIDValid = s.StoreID != nil
		if s.DQOnHandValid && *s.QuantityOnHand < 0 {
			s.DQOnHandValid = false
		}

		s.DQIsValid = s.DQProductSKUValid &&
			s.DQStoreIDValid &&
			s.DQSnapshotDateValid &&
			s.DQOnHandValid

		out = append(out, s)
	}
	return out
}

// NormalizeCustomers normalizes raw customers.
// Critical field: customer id.
func NormalizeCustomers(rows []RawCustomer) []StagedCustomer {
	out := make([]StagedCustomer, 0, len(rows))
	for _, r := range rows {
		s := StagedCustomer{RecordMeta: r.RecordMeta}

		s.CustomerID = NormalizeID(r.CustomerID)
		s.FirstName = CleanText(r.FirstName)
		s.LastName = CleanText(r.LastName)
		s.Email = CleanText(r.Email)
		s.Phone = CleanText(r.Phone)
		s.City = CleanText(r.City)
		s.LoyaltyTier = CleanText(r.LoyaltyTier)
		s.JoinDate, s.DQJoinDateValid = ParseDate(r.JoinDate)
		s.LastUpdated, _ = ParseTimestamp(r.LastUpdated)

		s.DQCustomerIDValid = s.CustomerID != nil
		s.DQNameValid = s.FirstName != nil && s.LastName != nil
		s.DQEmailValid = ValidEmail(s.Email)
		s.DQPhoneValid = s.Phone != nil
		s.DQTierValid = s.LoyaltyTier != nil

		s.DQIsValid = s.DQCustomerIDValid

		out = append(out, s)
	}
	return out
}

// NormalizePromotions normalizes raw promotions. Critical fields:
// promotion id, date range (start <= end), discount within 0-100.
// An "N/A" SKU list is a legitimate sentinel (store-level promotion),
// so the SKU flag stays true when the list is absent.
func NormalizePromotions(rows []RawPromotion) []StagedPromotion {
	out := make([]StagedPromotion, 0, len(rows))
	for _, r := range rows {
		s := StagedPromotion{RecordMeta: r.RecordMeta}

		s.PromotionID = NormalizeID(r.PromotionID)
		s.PromotionName = CleanText(r.PromotionName)
		s.PromoType = CleanText(r.PromoType)
		s.StoreScope = CleanText(r.StoreScope)
		s.EligibleSKUs = Sentinel(r.EligibleSKUs)
		s.DiscountPct, s.DQDiscountValid = ParseFloat(r.DiscountPct)
		s.LastUpdated, _ = ParseTimestamp(r.LastUpdated)

		var startOK, endOK bool
		s.StartDate, startOK = ParseDate(r.StartDate)
		s.EndDate, endOK = ParseDate(r.EndDate)
		s.DQDatesValid = startOK && endOK && !s.EndDate.Before(*s.StartDate)

		s.DQPromotionIDValid = s.PromotionID != nil
		s.DQNameValid = s.PromotionName != nil
		s.DQTypeValid = s.PromoType != nil
		if s.DQDiscountValid && (*s.DiscountPct < 0 || *s.DiscountPct > 100) {
			s.DQDiscountValid = false
		}
		s.DQSKUsValid = true

		s.DQIsValid = s.DQPromotionIDValid && s.DQDatesValid && s.DQDiscountValid

		out = append(out, s)
	}
	return out
}

// NormalizeWeather normalizes raw weather observations. Critical
// fields: location id, observation date, both temperatures. The
// location id keeps its source form here; remapping to store ids is a
// silver-layer concern.
func NormalizeWeather(rows []RawWeather) []StagedWeather {
	out := make([]StagedWeather, 0, len(rows))
	for _, r := range rows {
		s := StagedWeather{RecordMeta: r.RecordMeta}

		s.RetailLocationID = NormalizeID(r.RetailLocationID)
		s.WeatherDate, s.DQDateValid = ParseDate(r.WeatherDate)
		s.WeatherCondition = CleanText(r.WeatherCondition)
		s.HumidityPct, _ = ParseFloat(r.HumidityPct)
		s.PrecipitationMM, s.DQPrecipValid = ParseFloat(r.PrecipitationMM)
		s.LastUpdated, _ = ParseTimestamp(r.LastUpdated)

		var hiOK, loOK bool
		s.TempHighC, hiOK = ParseFloat(r.TempHighC)
		s.TempLowC, loOK = ParseFloat(r.TempLowC)
		s.DQTempsValid = hiOK && loOK && *s.TempLowC <= *s.TempHighC

		s.DQLocationValid = s.RetailLocationID != nil
		s.DQConditionValid = s.WeatherCondition != nil
		if s.DQPrecipValid && *s.PrecipitationMM < 0 {
			s.DQPrecipValid = false
		}

		s.DQIsValid = s.DQLocationValid && s.DQDateValid && s.DQTempsValid

		out = append(out, s)
	}
	return out
}
