//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
)

type staticRow struct {
	exists bool
	err    error
}

func (r staticRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.exists
	return nil
}

// tableQuerier answers existence queries from a fixed table -> row
// map; unknown tables behave like a missing relation.
type tableQuerier map[string]staticRow

func (q tableQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	for table, row := range q {
		if strings.Contains(sql, table) {
			return row
		}
	}
	return staticRow{err: fmt.Errorf("relation does not exist")}
}

func TestRequireUpstreamEmptyTableAborts(t *testing.T) {
	q := tableQuerier{
		"staging.stores":   {exists: false},
		"staging.products": {exists: true},
	}

	err := requireUpstream(context.Background(), q, []string{"staging.products", "staging.stores"})
	if err == nil {
		t.Fatal("Expected error for empty upstream, got nil")
	}
	if !strings.Contains(err.Error(), "staging.stores") {
		t.Errorf("Error should name the empty table, got: %v", err)
	}
}

func TestRequireUpstreamPopulatedPasses(t *testing.T) {
	q := tableQuerier{
		"silver.transactions_lines":  {exists: true},
		"silver.transactions_header": {exists: true},
	}

	err := requireUpstream(context.Background(), q,
		[]string{"silver.transactions_lines", "silver.transactions_header"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestRequireUpstreamMissingTableAborts(t *testing.T) {
	err := requireUpstream(context.Background(), tableQuerier{}, []string{"staging.weather"})
	if err == nil {
		t.Fatal("Expected error for missing upstream table, got nil")
	}
}

func TestRequireUpstreamNoTables(t *testing.T) {
	if err := requireUpstream(context.Background(), tableQuerier{}, nil); err != nil {
		t.Fatalf("Expected no error without upstream tables, got: %v", err)
	}
}
