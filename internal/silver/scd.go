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
	"sort"
	"time"
)

// SCD Type 2 versioning for the product dimension. Each run compares
// the incoming conformed record to the currently-current version per
// SKU: unchanged records are left alone, changed records close the
// prior version the day before the new effective date and insert the
// next version number. A SKU never seen before starts at version 1.

// CloseOut marks an existing version to be closed.
type CloseOut struct {
	SKU           string
	VersionNumber int
	EffectiveTo   time.Time
}

// SCDDelta is the result of one versioning pass.
type SCDDelta struct {
	Close  []CloseOut
	Insert []ProductVersion
}

// AdvanceHistory computes the version delta for one run. current maps
// SKU to its currently-current version; incoming is the deduplicated
// conformed product set; runDate is the pipeline run date used when a
// record carries no last-updated timestamp.
func AdvanceHistory(current map[string]ProductVersion, incoming []ConformedProduct, runDate time.Time) SCDDelta {
	runDay := dayOf(runDate)

	sorted := make([]ConformedProduct, len(incoming))
	copy(sorted, incoming)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SKU < sorted[j].SKU })

	var delta SCDDelta
	for _, in := range sorted {
		effectiveFrom := runDay
		if in.LastUpdated != nil {
			effectiveFrom = dayOf(*in.LastUpdated)
		}

		prior, seen := current[in.SKU]
		if !seen {
			delta.Insert = append(delta.Insert, newVersion(in, 1, effectiveFrom))
			continue
		}

		if !attrsChanged(prior, in) {
			continue
		}

		// A same-day or out-of-order change still has to produce a
		// well-formed range: the new version starts no earlier than the
		// day after the prior version's start.
		if !effectiveFrom.After(prior.EffectiveFrom) {
			effectiveFrom = prior.EffectiveFrom.AddDate(0, 0, 1)
		}

		delta.Close = append(delta.Close, CloseOut{
			SKU:           in.SKU,
			VersionNumber: prior.VersionNumber,
			EffectiveTo:   effectiveFrom.AddDate(0, 0, -1),
		})
		delta.Insert = append(delta.Insert, newVersion(in, prior.VersionNumber+1, effectiveFrom))
	}

	return delta
}

func newVersion(in ConformedProduct, version int, from time.Time) ProductVersion {
	return ProductVersion{
		SKU:           in.SKU,
		VersionNumber: version,
		ProductName:   in.ProductName,
		Category:      in.Category,
		SubCategory:   in.SubCategory,
		UnitPrice:     in.UnitPrice,
		CostPrice:     in.CostPrice,
		SupplierID:    in.SupplierID,
		LaunchDate:    in.LaunchDate,
		EffectiveFrom: from,
		EffectiveTo:   nil,
		IsCurrent:     true,
		DQScore:       in.DQScore,
		IsValid:       in.IsValid,
		BatchID:       in.BatchID,
	}
}

// attrsChanged compares the tracked attribute set: name, category,
// sub-category, unit price, cost price, supplier.
func attrsChanged(prior ProductVersion, in ConformedProduct) bool {
	return !eqStr(prior.ProductName, in.ProductName) ||
		!eqStr(prior.Category, in.Category) ||
		!eqStr(prior.SubCategory, in.SubCategory) ||
		!eqFloat(prior.UnitPrice, in.UnitPrice) ||
		!eqFloat(prior.CostPrice, in.CostPrice) ||
		!eqStr(prior.SupplierID, in.SupplierID)
}

func eqStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
