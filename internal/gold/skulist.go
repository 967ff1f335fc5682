//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package gold

import "strings"

// noSKUSentinel marks a store-level promotion with no specific SKU
// list.
const noSKUSentinel = "N/A"

// ParseSKUList splits a pipe-delimited SKU list into normalized SKUs.
// A nil, empty or sentinel value yields no SKUs; duplicates are
// dropped, first occurrence wins.
func ParseSKUList(raw *string) []string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" || strings.EqualFold(s, noSKUSentinel) {
		return nil
	}

	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(s, "|") {
		sku := strings.ToUpper(strings.TrimSpace(part))
		if sku == "" || seen[sku] {
			continue
		}
		seen[sku] = true
		out = append(out, sku)
	}
	return out
}
