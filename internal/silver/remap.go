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

// The weather API identifies stores by a prefixed location code
// ("LOC_S001") while the rest of the warehouse uses the canonical store
// id ("S001"). Remapping is a deterministic prefix strip and must run
// before any foreign-key existence check.

var locationPrefixes = []string{"LOC_", "LOC-", "RETAIL_"}

// RemapLocationID converts a source location identifier to the
// canonical store id. Unrecognized forms pass through unchanged so the
// FK existence check can record the miss.
func RemapLocationID(loc *string) *string {
	if loc == nil {
		return nil
	}
	id := strings.ToUpper(strings.TrimSpace(*loc))
	for _, prefix := range locationPrefixes {
		if rest, ok := strings.CutPrefix(id, prefix); ok && rest != "" {
			return &rest
		}
	}
	return &id
}
