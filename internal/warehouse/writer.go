//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/config"
	"github.com/metroretail/metro-pipeline/internal/logging"
)

// mergeBatchSize is the number of upsert statements queued per round
// trip in merge mode.
const mergeBatchSize = 1000

// Table describes a materialization target.
type Table struct {
	// Name is the schema-qualified table name.
	Name string

	// Columns are the columns written by the pipeline, in insert order.
	Columns []string

	// KeyColumns is the natural key used for conflict resolution in
	// merge mode. Must be a prefix-independent subset of Columns.
	KeyColumns []string
}

// Materialize writes rows to a table using the given strategy.
// Full-refresh truncates and bulk-copies; merge upserts on the natural
// key. Returns the number of rows written.
func Materialize(ctx context.Context, pool *pgxpool.Pool, tbl Table, strategy string, rows [][]any) (int64, error) {
	start := time.Now()

	var written int64
	var err error
	switch strategy {
	case config.StrategyFullRefresh:
		written, err = fullRefresh(ctx, pool, tbl, rows)
	case config.StrategyMerge:
		written, err = merge(ctx, pool, tbl, rows)
	default:
		return 0, fmt.Errorf("unknown materialization strategy: %s", strategy)
	}
	if err != nil {
		return 0, err
	}

	logging.Info().
		Str("table", tbl.Name).
		Str("strategy", strategy).
		Int64("rows", written).
		Dur("elapsed", time.Since(start)).
		Msg("Table materialized")

	return written, nil
}

func fullRefresh(ctx context.Context, pool *pgxpool.Pool, tbl Table, rows [][]any) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction for %s: %w", tbl.Name, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", tbl.Name)); err != nil {
		return 0, fmt.Errorf("failed to truncate %s: %w", tbl.Name, err)
	}

	written, err := tx.CopyFrom(ctx, tableIdent(tbl.Name), tbl.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy into %s: %w", tbl.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit %s: %w", tbl.Name, err)
	}
	return written, nil
}

func merge(ctx context.Context, pool *pgxpool.Pool, tbl Table, rows [][]any) (int64, error) {
	if len(tbl.KeyColumns) == 0 {
		return 0, fmt.Errorf("merge into %s requires key columns", tbl.Name)
	}

	sql := upsertSQL(tbl)

	var written int64
	for offset := 0; offset < len(rows); offset += mergeBatchSize {
		end := min(offset+mergeBatchSize, len(rows))

		batch := &pgx.Batch{}
		for _, row := range rows[offset:end] {
			batch.Queue(sql, row...)
		}

		br := pool.SendBatch(ctx, batch)
		for range rows[offset:end] {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return written, fmt.Errorf("failed to merge into %s: %w", tbl.Name, err)
			}
			written++
		}
		if err := br.Close(); err != nil {
			return written, fmt.Errorf("failed to close merge batch for %s: %w", tbl.Name, err)
		}
	}

	return written, nil
}

// upsertSQL builds an INSERT ... ON CONFLICT DO UPDATE statement that
// overwrites every non-key column with the incoming values.
func upsertSQL(tbl Table) string {
	placeholders := make([]string, len(tbl.Columns))
	for i := range tbl.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	keys := make(map[string]bool, len(tbl.KeyColumns))
	for _, k := range tbl.KeyColumns {
		keys[k] = true
	}

	var updates []string
	for _, col := range tbl.Columns {
		if !keys[col] {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		tbl.Name,
		strings.Join(tbl.Columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(tbl.KeyColumns, ", "),
		strings.Join(updates, ", "),
	)
}

// tableIdent splits a schema-qualified name into a pgx identifier.
func tableIdent(name string) pgx.Identifier {
	return pgx.Identifier(strings.Split(name, "."))
}

// Querier is the row-query subset of pgxpool.Pool used by the
// structural checks.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TableEmpty reports whether a table has no rows. Used for structural
// checks: a dependent stage must abort when its upstream is empty. A
// missing table surfaces as an error.
func TableEmpty(ctx context.Context, q Querier, table string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", table)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return !exists, nil
}
