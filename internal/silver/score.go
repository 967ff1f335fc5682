//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package silver

// The composite DQ score is a weighted sum over field-level validity
// flags. Weights reflect field criticality to downstream joins and
// measures, not uniform averaging, and must sum to 100 per entity so
// the score stays on a 0-100 scale with 100 meaning every flag true.

// WeightedFlag pairs one field's validity flag with its score weight.
type WeightedFlag struct {
	Field  string
	Weight int
	Valid  bool
}

// CompositeScore sums the weights of the valid flags.
func CompositeScore(flags []WeightedFlag) int {
	score := 0
	for _, f := range flags {
		if f.Valid {
			score += f.Weight
		}
	}
	return score
}

// TotalWeight returns the weight sum of a flag set. Exposed so tests
// can assert every entity's weights add up to 100.
func TotalWeight(flags []WeightedFlag) int {
	total := 0
	for _, f := range flags {
		total += f.Weight
	}
	return total
}

// productFlags builds the product score card: SKU 20, name 15,
// category 15, sub-category 10, price 20, cost 10, supplier 10.
func productFlags(skuOK, nameOK, catOK, subOK, priceOK, costOK, supplierOK bool) []WeightedFlag {
	return []WeightedFlag{
		{"sku", 20, skuOK},
		{"product_name", 15, nameOK},
		{"category", 15, catOK},
		{"sub_category", 10, subOK},
		{"unit_price", 20, priceOK},
		{"cost_price", 10, costOK},
		{"supplier_id", 10, supplierOK},
	}
}

func storeFlags(idOK, nameOK, cityOK, regionOK, typeOK, openedOK bool) []WeightedFlag {
	return []WeightedFlag{
		{"store_id", 30, idOK},
		{"store_name", 20, nameOK},
		{"city", 15, cityOK},
		{"region", 15, regionOK},
		{"store_type", 10, typeOK},
		{"opening_date", 10, openedOK},
	}
}

func customerFlags(idOK, nameOK, emailOK, phoneOK, tierOK, joinedOK bool) []WeightedFlag {
	return []WeightedFlag{
		{"customer_id", 30, idOK},
		{"name", 20, nameOK},
		{"email", 20, emailOK},
		{"phone", 10, phoneOK},
		{"loyalty_tier", 10, tierOK},
		{"join_date", 10, joinedOK},
	}
}

func promotionFlags(idOK, nameOK, typeOK, datesOK, discountOK, skusOK bool) []WeightedFlag {
	return []WeightedFlag{
		{"promotion_id", 25, idOK},
		{"promotion_name", 15, nameOK},
		{"promo_type", 10, typeOK},
		{"date_range", 20, datesOK},
		{"discount_pct", 15, discountOK},
		{"eligible_skus", 15, skusOK},
	}
}

func inventoryFlags(idOK, skuOK, storeOK, dateOK, onHandOK bool) []WeightedFlag {
	return []WeightedFlag{
		{"inventory_id", 10, idOK},
		{"product_sku", 25, skuOK},
		{"store_id", 25, storeOK},
		{"snapshot_date", 20, dateOK},
		{"quantity_on_hand", 20, onHandOK},
	}
}

func weatherFlags(locOK, dateOK, tempsOK, precipOK, condOK bool) []WeightedFlag {
	return []WeightedFlag{
		{"location", 30, locOK},
		{"weather_date", 25, dateOK},
		{"temperatures", 25, tempsOK},
		{"precipitation", 10, precipOK},
		{"condition", 10, condOK},
	}
}

func headerFlags(idOK, storeOK, customerOK, dateOK, amountOK, paymentOK bool) []WeightedFlag {
	return []WeightedFlag{
		{"transaction_id", 25, idOK},
		{"store_id", 20, storeOK},
		{"customer_id", 10, customerOK},
		{"transaction_date", 20, dateOK},
		{"total_amount", 20, amountOK},
		{"payment_method", 5, paymentOK},
	}
}

func lineFlags(lineOK, txnOK, skuOK, storeOK, qtyOK, priceOK, amountOK bool) []WeightedFlag {
	return []WeightedFlag{
		{"line_id", 15, lineOK},
		{"transaction_id", 20, txnOK},
		{"product_sku", 20, skuOK},
		{"store_id", 15, storeOK},
		{"quantity", 10, qtyOK},
		{"unit_price", 10, priceOK},
		{"sales_amount", 10, amountOK},
	}
}
