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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dupRow struct {
	key         string
	amount      float64
	lastUpdated *time.Time
	loadTS      time.Time
}

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func dedupeRows(rows []dupRow) []dupRow {
	return Deduplicate(rows,
		func(r dupRow) string { return r.key },
		func(r dupRow) Ranking { return Ranking{r.lastUpdated, r.loadTS} })
}

func TestDeduplicateLatestWins(t *testing.T) {
	// Two feed rows for the same transaction; the one updated later
	// carries the corrected amount and must win.
	rows := []dupRow{
		{"T1", 95.00, tsp("2025-07-01 08:00:00"), ts("2025-07-01 09:00:00")},
		{"T1", 100.00, tsp("2025-07-02 08:00:00"), ts("2025-07-01 09:00:00")},
		{"T2", 10.00, tsp("2025-07-01 08:00:00"), ts("2025-07-01 09:00:00")},
	}

	out := dedupeRows(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "T1", out[0].key)
	assert.Equal(t, 100.00, out[0].amount)
	assert.Equal(t, "T2", out[1].key)
}

func TestDeduplicateLoadTSBreaksTie(t *testing.T) {
	rows := []dupRow{
		{"T1", 1, tsp("2025-07-01 08:00:00"), ts("2025-07-01 09:00:00")},
		{"T1", 2, tsp("2025-07-01 08:00:00"), ts("2025-07-01 10:00:00")},
	}

	out := dedupeRows(rows)
	require.Len(t, out, 1)
	assert.Equal(t, 2.0, out[0].amount)
}

func TestDeduplicateInputPositionBreaksTie(t *testing.T) {
	// Fully tied candidates: the later input row wins, deterministically.
	rows := []dupRow{
		{"T1", 1, tsp("2025-07-01 08:00:00"), ts("2025-07-01 09:00:00")},
		{"T1", 2, tsp("2025-07-01 08:00:00"), ts("2025-07-01 09:00:00")},
	}

	out := dedupeRows(rows)
	require.Len(t, out, 1)
	assert.Equal(t, 2.0, out[0].amount)
}

func TestDeduplicateNilTimestampLosesToAny(t *testing.T) {
	rows := []dupRow{
		{"T1", 2, tsp("2020-01-01 00:00:00"), ts("2025-07-01 09:00:00")},
		{"T1", 1, nil, ts("2025-07-01 09:00:00")},
	}

	out := dedupeRows(rows)
	require.Len(t, out, 1)
	assert.Equal(t, 2.0, out[0].amount)
}

func TestDeduplicateDropsEmptyKeys(t *testing.T) {
	rows := []dupRow{
		{"", 1, nil, ts("2025-07-01 09:00:00")},
		{"T1", 2, nil, ts("2025-07-01 09:00:00")},
	}

	out := dedupeRows(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "T1", out[0].key)
}

func TestDeduplicateOutputSortedByKey(t *testing.T) {
	rows := []dupRow{
		{"T3", 1, nil, ts("2025-07-01 09:00:00")},
		{"T1", 1, nil, ts("2025-07-01 09:00:00")},
		{"T2", 1, nil, ts("2025-07-01 09:00:00")},
	}

	out := dedupeRows(rows)
	require.Len(t, out, 3)
	assert.Equal(t, "T1", out[0].key)
	assert.Equal(t, "T2", out[1].key)
	assert.Equal(t, "T3", out[2].key)
}
