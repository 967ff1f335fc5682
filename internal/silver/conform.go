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
	"fmt"

	"github.com/metroretail/metro-pipeline/internal/staging"
)

// Per-entity conformance: dedup by natural key, remap mismatched
// identifiers, standardize categorical text, validate foreign keys
// against the already-conformed dimensions, and compute the composite
// DQ score. Input rows already passed the staging critical-field check.
//
// Foreign-key existence is always computed and persisted; whether a
// missing reference excludes the record is the enforce flag (the FK
// policy decision documented in DESIGN.md). Optional references
// (nullable FKs) only count against a record when present and dangling.

// ConformProducts conforms the product entity. Products carry no
// foreign keys, so every deduplicated record is admitted.
func ConformProducts(rows []staging.StagedProduct) []ConformedProduct {
	deduped := Deduplicate(rows,
		func(s staging.StagedProduct) string { return keyOrEmpty(s.SKU) },
		func(s staging.StagedProduct) Ranking { return Ranking{s.LastUpdated, s.LoadTS} })

	out := make([]ConformedProduct, 0, len(deduped))
	for _, s := range deduped {
		c := ConformedProduct{
			SKU:         *s.SKU,
			ProductName: s.ProductName,
			Category:    CategoryRules.Apply(s.Category),
			SubCategory: s.SubCategory,
			UnitPrice:   s.UnitPrice,
			CostPrice:   s.CostPrice,
			SupplierID:  s.SupplierID,
			LaunchDate:  s.LaunchDate,
			LastUpdated: s.LastUpdated,
			BatchID:     s.BatchID,
			IsValid:     true,
		}
		c.DQScore = CompositeScore(productFlags(
			s.DQSKUValid, s.DQNameValid, s.DQCategoryValid, s.DQSubCategoryValid,
			s.DQUnitPriceValid, s.DQCostPriceValid, s.DQSupplierValid))
		out = append(out, c)
	}
	return out
}

// ConformStores conforms the store entity.
func ConformStores(rows []staging.StagedStore) []ConformedStore {
	deduped := Deduplicate(rows,
		func(s staging.StagedStore) string { return keyOrEmpty(s.StoreID) },
		func(s staging.StagedStore) Ranking { return Ranking{s.LastUpdated, s.LoadTS} })

	out := make([]ConformedStore, 0, len(deduped))
	for _, s := range deduped {
		c := ConformedStore{
			StoreID:       *s.StoreID,
			StoreName:     s.StoreName,
			City:          s.City,
			Region:        s.Region,
			StoreType:     s.StoreType,
			SquareFootage: s.SquareFootage,
			OpeningDate:   s.OpeningDate,
			BatchID:       s.BatchID,
			IsValid:       true,
		}
		c.DQScore = CompositeScore(storeFlags(
			s.DQStoreIDValid, s.DQNameValid, s.DQCityValid, s.DQRegionValid,
			s.DQTypeValid, s.DQOpeningDateValid))
		out = append(out, c)
	}
	return out
}

// ConformCustomers conforms the customer entity.
func ConformCustomers(rows []staging.StagedCustomer) []ConformedCustomer {
	deduped := Deduplicate(rows,
		func(s staging.StagedCustomer) string { return keyOrEmpty(s.CustomerID) },
		func(s staging.StagedCustomer) Ranking { return Ranking{s.LastUpdated, s.LoadTS} })

	out := make([]ConformedCustomer, 0, len(deduped))
	for _, s := range deduped {
		c := ConformedCustomer{
			CustomerID:  *s.CustomerID,
			FirstName:   s.FirstName,
			LastName:    s.LastName,
			Email:       s.Email,
			Phone:       s.Phone,
			City:        s.City,
			LoyaltyTier: LoyaltyTierRules.Apply(s.LoyaltyTier),
			JoinDate:    s.JoinDate,
			BatchID:     s.BatchID,
			IsValid:     true,
		}
		c.DQScore = CompositeScore(customerFlags(
			s.DQCustomerIDValid, s.DQNameValid, s.DQEmailValid,
			s.DQPhoneValid, s.DQTierValid, s.DQJoinDateValid))
		out = append(out, c)
	}
	return out
}

// ConformPromotions conforms the promotion entity.
func ConformPromotions(rows []staging.StagedPromotion) []ConformedPromotion {
	deduped := Deduplicate(rows,
		func(s staging.StagedPromotion) string { return keyOrEmpty(s.PromotionID) },
		func(s staging.StagedPromotion) Ranking { return Ranking{s.LastUpdated, s.LoadTS} })

	out := make([]ConformedPromotion, 0, len(deduped))
	for _, s := range deduped {
		c := ConformedPromotion{
			PromotionID:   *s.PromotionID,
			PromotionName: s.PromotionName,
			PromoType:     PromoTypeRules.Apply(s.PromoType),
			StartDate:     s.StartDate,
			EndDate:       s.EndDate,
			DiscountPct:   s.DiscountPct,
			EligibleSKUs:  s.EligibleSKUs,
			StoreScope:    s.StoreScope,
			BatchID:       s.BatchID,
			IsValid:       true,
		}
		c.DQScore = CompositeScore(promotionFlags(
			s.DQPromotionIDValid, s.DQNameValid, s.DQTypeValid,
			s.DQDatesValid, s.DQDiscountValid, s.DQSKUsValid))
		out = append(out, c)
	}
	return out
}

// ConformInventory conforms inventory snapshots at product x store x
// day grain, validating both dimension references.
func ConformInventory(rows []staging.StagedInventory, products, stores RefSet, enforceFK bool) []ConformedInventory {
	deduped := Deduplicate(rows,
		func(s staging.StagedInventory) string {
			if s.ProductSKU == nil || s.StoreID == nil || s.SnapshotDate == nil {
				return ""
			}
			return fmt.Sprintf("%s|%s|%s", *s.ProductSKU, *s.StoreID, s.SnapshotDate.Format("2006-01-02"))
		},
		func(s staging.StagedInventory) Ranking { return Ranking{s.LastUpdated, s.LoadTS} })

	out := make([]ConformedInventory, 0, len(deduped))
	for _, s := range deduped {
		c := ConformedInventory{
			ProductSKU:       *s.ProductSKU,
			StoreID:          *s.StoreID,
			SnapshotDate:     *s.SnapshotDate,
			QuantityOnHand:   s.QuantityOnHand,
			QuantityReserved: s.QuantityReserved,
			ReorderPoint:     s.ReorderPoint,
			ProductExists:    products.Has(s.ProductSKU),
			StoreExists:      stores.Has(s.StoreID),
			BatchID:          s.BatchID,
		}
		c.DQScore = CompositeScore(inventoryFlags(
			s.DQInventoryIDValid, s.DQProductSKUValid, s.DQStoreIDValid,
			s.DQSnapshotDateValid, s.DQOnHandValid))
		c.IsValid = !enforceFK || (c.ProductExists && c.StoreExists)
		if c.IsValid {
			out = append(out, c)
		}
	}
	return out
}

// ConformWeather conforms weather observations, remapping the source
// location code to the canonical store id before the store existence
// check, then deduplicating at store x day grain.
func ConformWeather(rows []staging.StagedWeather, stores RefSet, enforceFK bool) []ConformedWeather {
	type remapped struct {
		staging.StagedWeather
		storeID *string
	}

	mapped := make([]remapped, 0, len(rows))
	for _, s := range rows {
		mapped = append(mapped, remapped{s, RemapLocationID(s.RetailLocationID)})
	}

	deduped := Deduplicate(mapped,
		func(r remapped) string {
			if r.storeID == nil || r.WeatherDate == nil {
				return ""
			}
			return fmt.Sprintf("%s|%s", *r.storeID, r.WeatherDate.Format("2006-01-02"))
		},
		func(r remapped) Ranking { return Ranking{r.LastUpdated, r.LoadTS} })

	out := make([]ConformedWeather, 0, len(deduped))
	for _, r := range deduped {
		c := ConformedWeather{
			StoreID:          *r.storeID,
			WeatherDate:      *r.WeatherDate,
			TempHighC:        r.TempHighC,
			TempLowC:         r.TempLowC,
			PrecipitationMM:  r.PrecipitationMM,
			HumidityPct:      r.HumidityPct,
			WeatherCondition: WeatherConditionRules.Apply(r.WeatherCondition),
			StoreExists:      stores.Has(r.storeID),
			BatchID:          r.BatchID,
		}
		c.DQScore = CompositeScore(weatherFlags(
			r.DQLocationValid, r.DQDateValid, r.DQTempsValid,
			r.DQPrecipValid, r.DQConditionValid))
		c.IsValid = !enforceFK || c.StoreExists
		if c.IsValid {
			out = append(out, c)
		}
	}
	return out
}

// ConformHeaders conforms transaction headers. The customer reference
// is optional: anonymous transactions carry no customer id.
func ConformHeaders(rows []staging.StagedTransactionHeader, stores, customers RefSet, enforceFK bool) []ConformedHeader {
	deduped := Deduplicate(rows,
		func(s staging.StagedTransactionHeader) string { return keyOrEmpty(s.TransactionID) },
		func(s staging.StagedTransactionHeader) Ranking { return Ranking{s.LastUpdated, s.LoadTS} })

	out := make([]ConformedHeader, 0, len(deduped))
	for _, s := range deduped {
		c := ConformedHeader{
			TransactionID:   *s.TransactionID,
			StoreID:         s.StoreID,
			CustomerID:      s.CustomerID,
			TransactionDate: s.TransactionDate,
			PaymentMethod:   PaymentMethodRules.Apply(s.PaymentMethod),
			TotalAmount:     s.TotalAmount,
			LoyaltyPoints:   s.LoyaltyPoints,
			StoreExists:     stores.Has(s.StoreID),
			CustomerExists:  optionalExists(s.CustomerID, customers),
			BatchID:         s.BatchID,
		}
		c.DQScore = CompositeScore(headerFlags(
			s.DQTransactionIDValid, s.DQStoreIDValid, s.DQCustomerIDValid,
			s.DQDateValid, s.DQAmountValid, s.DQPaymentValid))
		c.IsValid = !enforceFK || (c.StoreExists && c.CustomerExists)
		if c.IsValid {
			out = append(out, c)
		}
	}
	return out
}

// ConformLines conforms transaction lines against the conformed
// headers, products, stores and promotions. The promotion reference is
// optional.
func ConformLines(rows []staging.StagedTransactionLine, headers, products, stores, promotions RefSet, enforceFK bool) []ConformedLine {
	deduped := Deduplicate(rows,
		func(s staging.StagedTransactionLine) string { return keyOrEmpty(s.LineID) },
		func(s staging.StagedTransactionLine) Ranking { return Ranking{s.LastUpdated, s.LoadTS} })

	out := make([]ConformedLine, 0, len(deduped))
	for _, s := range deduped {
		c := ConformedLine{
			LineID:            *s.LineID,
			TransactionID:     s.TransactionID,
			ProductSKU:        s.ProductSKU,
			StoreID:           s.StoreID,
			Quantity:          s.Quantity,
			UnitPrice:         s.UnitPrice,
			DiscountAmount:    s.DiscountAmount,
			SalesAmount:       s.SalesAmount,
			PromotionID:       s.PromotionID,
			IsReturn:          s.IsReturn,
			IsOutlierQty:      s.IsOutlierQty,
			HasDiscount:       s.HasDiscount,
			HasPromotion:      s.HasPromotion,
			TransactionExists: headers.Has(s.TransactionID),
			ProductExists:     products.Has(s.ProductSKU),
			StoreExists:       stores.Has(s.StoreID),
			PromotionExists:   optionalExists(s.PromotionID, promotions),
			BatchID:           s.BatchID,
		}
		c.DQScore = CompositeScore(lineFlags(
			s.DQLineIDValid, s.DQTransactionIDValid, s.DQProductSKUValid,
			s.DQStoreIDValid, s.DQQuantityValid, s.DQUnitPriceValid,
			s.DQSalesAmountValid))
		c.IsValid = !enforceFK ||
			(c.TransactionExists && c.ProductExists && c.StoreExists && c.PromotionExists)
		if c.IsValid {
			out = append(out, c)
		}
	}
	return out
}

// optionalExists treats a null optional FK as satisfied and a present
// one as requiring a dimension hit.
func optionalExists(key *string, ref RefSet) bool {
	if key == nil {
		return true
	}
	return ref[*key]
}
