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

	"github.com/stretchr/testify/assert"
)

func sp(s string) *string { return &s }

func TestCategoryRules(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Electroncs", "Electronics"},
		{"electronic", "Electronics"},
		{"ELECTRONICS", "Electronics"},
		{"beverage", "Beverages"},
		{"Bevrages", "Beverages"},
		{"  grocey  ", "Groceries"},
		{"GROCERY", "Groceries"},
		{"house hold", "Household"},
		{"personalcare", "Personal Care"},
		{"snack", "Snacks"},
		{"frozen foods", "Frozen Foods"},
		{"Dairy Products", "Dairy"},
		{"Garden Tools", "Garden Tools"}, // unknown passes through
	}

	for _, tt := range tests {
		got := CategoryRules.Apply(sp(tt.in))
		assert.NotNil(t, got)
		assert.Equal(t, tt.want, *got, "input %q", tt.in)
	}

	assert.Nil(t, CategoryRules.Apply(nil))
}

func TestRuleSetFirstMatchWins(t *testing.T) {
	rs := RuleSet{
		{"electroncs", MatchExact, "First"},
		{"electr", MatchPrefix, "Second"},
	}
	got := rs.Apply(sp("Electroncs"))
	assert.Equal(t, "First", *got)

	// Prefix rule catches what the exact rule misses.
	got = rs.Apply(sp("electrical"))
	assert.Equal(t, "Second", *got)
}

func TestPaymentMethodRules(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CC", "Credit Card"},
		{"creditcard", "Credit Card"},
		{"cash", "Cash"},
		{"debit", "Debit Card"},
		{"mobile", "Mobile Payment"},
		{"voucher", "Gift Card"},
		{"Barter", "Barter"},
	}
	for _, tt := range tests {
		got := PaymentMethodRules.Apply(sp(tt.in))
		assert.Equal(t, tt.want, *got, "input %q", tt.in)
	}
}

func TestLoyaltyTierRules(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gold", "Gold"},
		{"GOLD", "Gold"},
		{"plat", "Platinum"},
		{"none", "Standard"},
		{"basic", "Standard"},
		{"silver ", "Silver"},
	}
	for _, tt := range tests {
		got := LoyaltyTierRules.Apply(sp(tt.in))
		assert.Equal(t, tt.want, *got, "input %q", tt.in)
	}
}

func TestWeatherConditionRules(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clear", "Sunny"},
		{"overcast", "Cloudy"},
		{"drizzle", "Rain"},
		{"thunderstorms", "Storm"},
		{"sleet", "Snow"},
		{"mist", "Fog"},
		{"partly sunny", "Partly Cloudy"},
	}
	for _, tt := range tests {
		got := WeatherConditionRules.Apply(sp(tt.in))
		assert.Equal(t, tt.want, *got, "input %q", tt.in)
	}
}
