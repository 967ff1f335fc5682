//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package silver

import "strings"

// Categorical standardization is expressed as ordered rule tables
// evaluated first-match-wins. Matching is case-insensitive on the
// trimmed value; unmatched values pass through unchanged
// (standardization is best-effort, not exhaustive).

// MatchKind selects how a rule pattern is compared.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchPrefix
	MatchContains
)

// Rule maps a known typo or variant spelling to its canonical value.
type Rule struct {
	Pattern   string
	Kind      MatchKind
	Canonical string
}

// RuleSet is an ordered list of rules; the first matching rule wins.
type RuleSet []Rule

// Apply standardizes a value against the rule set. Nil passes through.
func (rs RuleSet) Apply(v *string) *string {
	if v == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(*v))
	for _, r := range rs {
		pattern := strings.ToLower(r.Pattern)
		var hit bool
		switch r.Kind {
		case MatchExact:
			hit = needle == pattern
		case MatchPrefix:
			hit = strings.HasPrefix(needle, pattern)
		case MatchContains:
			hit = strings.Contains(needle, pattern)
		}
		if hit {
			c := r.Canonical
			return &c
		}
	}
	return v
}

// CategoryRules fixes the known misspellings and variants observed in
// the ERP product feed.
var CategoryRules = RuleSet{
	{"electroncs", MatchExact, "Electronics"},
	{"electronic", MatchExact, "Electronics"},
	{"electr", MatchPrefix, "Electronics"},
	{"beverage", MatchExact, "Beverages"},
	{"bevrages", MatchExact, "Beverages"},
	{"bever", MatchPrefix, "Beverages"},
	{"grocey", MatchExact, "Groceries"},
	{"grocery", MatchExact, "Groceries"},
	{"groc", MatchPrefix, "Groceries"},
	{"household", MatchPrefix, "Household"},
	{"house hold", MatchExact, "Household"},
	{"personal care", MatchExact, "Personal Care"},
	{"personalcare", MatchExact, "Personal Care"},
	{"snacks", MatchExact, "Snacks"},
	{"snack", MatchExact, "Snacks"},
	{"frozen", MatchPrefix, "Frozen Foods"},
	{"dairy", MatchPrefix, "Dairy"},
	{"bakery", MatchPrefix, "Bakery"},
	{"produce", MatchExact, "Produce"},
}

// PromoTypeRules normalizes the marketing feed's promotion types.
var PromoTypeRules = RuleSet{
	{"bogo", MatchPrefix, "BOGO"},
	{"buy one", MatchPrefix, "BOGO"},
	{"percent", MatchContains, "Percentage Discount"},
	{"pct", MatchContains, "Percentage Discount"},
	{"% off", MatchContains, "Percentage Discount"},
	{"fixed", MatchPrefix, "Fixed Discount"},
	{"amount off", MatchContains, "Fixed Discount"},
	{"clearance", MatchPrefix, "Clearance"},
	{"clearence", MatchPrefix, "Clearance"},
	{"seasonal", MatchPrefix, "Seasonal"},
	{"season", MatchPrefix, "Seasonal"},
	{"loyalty", MatchPrefix, "Loyalty"},
}

// PaymentMethodRules normalizes POS payment methods.
var PaymentMethodRules = RuleSet{
	{"cash", MatchExact, "Cash"},
	{"credit card", MatchExact, "Credit Card"},
	{"creditcard", MatchExact, "Credit Card"},
	{"credit", MatchPrefix, "Credit Card"},
	{"cc", MatchExact, "Credit Card"},
	{"debit card", MatchExact, "Debit Card"},
	{"debit", MatchPrefix, "Debit Card"},
	{"mobile pay", MatchExact, "Mobile Payment"},
	{"mobile", MatchPrefix, "Mobile Payment"},
	{"gift card", MatchExact, "Gift Card"},
	{"giftcard", MatchExact, "Gift Card"},
	{"voucher", MatchExact, "Gift Card"},
}

// WeatherConditionRules normalizes the weather API's condition labels.
var WeatherConditionRules = RuleSet{
	{"sunny", MatchExact, "Sunny"},
	{"clear", MatchExact, "Sunny"},
	{"partly cloudy", MatchExact, "Partly Cloudy"},
	{"partly", MatchPrefix, "Partly Cloudy"},
	{"cloudy", MatchExact, "Cloudy"},
	{"overcast", MatchExact, "Cloudy"},
	{"rain", MatchPrefix, "Rain"},
	{"drizzle", MatchExact, "Rain"},
	{"shower", MatchPrefix, "Rain"},
	{"storm", MatchContains, "Storm"},
	{"thunder", MatchPrefix, "Storm"},
	{"snow", MatchPrefix, "Snow"},
	{"sleet", MatchExact, "Snow"},
	{"fog", MatchPrefix, "Fog"},
	{"mist", MatchExact, "Fog"},
}

// LoyaltyTierRules normalizes CRM loyalty tiers.
var LoyaltyTierRules = RuleSet{
	{"bronze", MatchPrefix, "Bronze"},
	{"silver", MatchPrefix, "Silver"},
	{"gold", MatchPrefix, "Gold"},
	{"platinum", MatchPrefix, "Platinum"},
	{"plat", MatchPrefix, "Platinum"},
	{"none", MatchExact, "Standard"},
	{"standard", MatchPrefix, "Standard"},
	{"basic", MatchExact, "Standard"},
}
