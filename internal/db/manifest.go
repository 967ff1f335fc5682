package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/logging"
)

// Load statuses recorded in the ingestion manifest.
const (
	LoadStarted   = "STARTED"
	LoadCompleted = "COMPLETED"
	LoadFailed    = "FAILED"
)

const manifestTable = "raw.ingestion_manifest"

// createManifestTableSQL creates the manifest table if it doesn't exist.
const createManifestTableSQL = `
CREATE TABLE IF NOT EXISTS raw.ingestion_manifest (
    manifest_id   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    batch_id      TEXT NOT NULL,
    source_system TEXT NOT NULL,
    entity_name   TEXT NOT NULL,
    source_table  TEXT NOT NULL,
    row_count     BIGINT NOT NULL DEFAULT 0,
    load_start_ts TIMESTAMPTZ NOT NULL,
    load_end_ts   TIMESTAMPTZ,
    load_status   TEXT NOT NULL,
    error_message TEXT
)`

// ManifestEntry is one logical load recorded in the manifest. The
// manifest is the cross-run observability contract: every stage/entity
// load writes exactly one entry.
type ManifestEntry struct {
	ManifestID   int64
	BatchID      string
	SourceSystem string
	EntityName   string
	SourceTable  string
	RowCount     int64
	LoadStartTS  time.Time
	LoadEndTS    *time.Time
	LoadStatus   string
	ErrorMessage *string
}

// EnsureManifest creates the manifest table if needed.
func EnsureManifest(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createManifestTableSQL); err != nil {
		return fmt.Errorf("failed to create manifest table: %w", err)
	}
	return nil
}

// StartLoad inserts a STARTED manifest entry and returns its id.
func StartLoad(ctx context.Context, pool *pgxpool.Pool, batchID, sourceSystem, entityName, sourceTable string) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `
        INSERT INTO raw.ingestion_manifest
            (batch_id, source_system, entity_name, source_table, row_count, load_start_ts, load_status)
        VALUES ($1, $2, $3, $4, 0, now(), $5)
        RETURNING manifest_id
    `, batchID, sourceSystem, entityName, sourceTable, LoadStarted).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create manifest entry: %w", err)
	}

	logging.Debug().
		Str("batch_id", batchID).
		Str("entity", entityName).
		Msg("Manifest entry created")

	return id, nil
}

// CompleteLoad marks a manifest entry COMPLETED with its final row count.
func CompleteLoad(ctx context.Context, pool *pgxpool.Pool, manifestID, rowCount int64) error {
	_, err := pool.Exec(ctx, `
        UPDATE raw.ingestion_manifest
        SET row_count = $1, load_end_ts = now(), load_status = $2
        WHERE manifest_id = $3
    `, rowCount, LoadCompleted, manifestID)
	if err != nil {
		return fmt.Errorf("failed to complete manifest entry: %w", err)
	}
	return nil
}

// FailLoad marks a manifest entry FAILED with an error message.
func FailLoad(ctx context.Context, pool *pgxpool.Pool, manifestID int64, loadErr error) error {
	msg := loadErr.Error()
	_, err := pool.Exec(ctx, `
        UPDATE raw.ingestion_manifest
        SET load_end_ts = now(), load_status = $1, error_message = $2
        WHERE manifest_id = $3
    `, LoadFailed, msg, manifestID)
	if err != nil {
		return fmt.Errorf("failed to fail manifest entry: %w", err)
	}
	return nil
}

// RecentLoads returns the most recent manifest entries, newest first.
func RecentLoads(ctx context.Context, pool *pgxpool.Pool, limit int) ([]ManifestEntry, error) {
	rows, err := pool.Query(ctx, `
        SELECT manifest_id, batch_id, source_system, entity_name, source_table,
               row_count, load_start_ts, load_end_ts, load_status, error_message
        FROM raw.ingestion_manifest
        ORDER BY manifest_id DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query manifest: %w", err)
	}
	defer rows.Close()

	var entries []ManifestEntry
	for rows.Next() {
		var e ManifestEntry
		if err := rows.Scan(&e.ManifestID, &e.BatchID, &e.SourceSystem, &e.EntityName,
			&e.SourceTable, &e.RowCount, &e.LoadStartTS, &e.LoadEndTS,
			&e.LoadStatus, &e.ErrorMessage); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// TableCount returns the row count of a warehouse table.
func TableCount(ctx context.Context, pool *pgxpool.Pool, table string) (int64, error) {
	var count int64
	err := pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// GenerateBatchID builds a batch identifier in the
// {source}_{entity}_{YYYYMMDD}_{HHMMSS} format used across the warehouse.
func GenerateBatchID(source, entity string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s", source, entity, at.Format("20060102_150405"))
}
