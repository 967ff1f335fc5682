//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package silver implements the conformance and deduplication engine:
// one authoritative, cross-validated, quality-scored record per natural
// key per entity, with SCD Type 2 history for the product dimension.
package silver

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// Ranking is the dedup ordering for a record type. LastUpdated is the
// source-provided change timestamp (may be nil), LoadTS the ingestion
// timestamp.
type Ranking struct {
	LastUpdated *time.Time
	LoadTS      time.Time
}

// Deduplicate partitions rows by natural key and keeps the latest
// candidate per key: max last-updated, ties broken by max load
// timestamp, remaining ties by latest input position. Rows with an
// empty key are dropped. Output is ordered by key for deterministic
// materialization.
func Deduplicate[T any](rows []T, key func(T) string, rank func(T) Ranking) []T {
	type candidate struct {
		row T
		pos int
	}

	indexed := make([]candidate, len(rows))
	for i, r := range rows {
		indexed[i] = candidate{row: r, pos: i}
	}

	groups := lo.GroupBy(indexed, func(c candidate) string { return key(c.row) })
	delete(groups, "")

	keys := lo.Keys(groups)
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		best := groups[k][0]
		for _, c := range groups[k][1:] {
			if rankLess(rank(best.row), best.pos, rank(c.row), c.pos) {
				best = c
			}
		}
		out = append(out, best.row)
	}
	return out
}

// rankLess reports whether candidate a loses to candidate b.
func rankLess(a Ranking, aPos int, b Ranking, bPos int) bool {
	at, bt := tsOrZero(a.LastUpdated), tsOrZero(b.LastUpdated)
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	if !a.LoadTS.Equal(b.LoadTS) {
		return a.LoadTS.Before(b.LoadTS)
	}
	return aPos < bPos
}

func tsOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// keyOrEmpty dereferences an optional natural key for grouping.
func keyOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
