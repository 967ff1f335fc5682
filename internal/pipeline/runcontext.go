//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline orchestrates a warehouse run: the eight staging
// transforms fan out concurrently, Silver conformance runs in
// dependency order, then the star schema is rebuilt. Every logical
// load is tracked in the ingestion manifest.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/metroretail/metro-pipeline/internal/db"
)

// RunContext identifies one pipeline run. The run timestamp anchors
// batch ids and SCD effective dates, so all loads of a run share a
// consistent clock.
type RunContext struct {
	RunID     string
	StartedAt time.Time
}

func NewRunContext() RunContext {
	return RunContext{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// BatchID derives the batch identifier for one logical load of this
// run.
func (rc RunContext) BatchID(source, entity string) string {
	return db.GenerateBatchID(source, entity, rc.StartedAt)
}
