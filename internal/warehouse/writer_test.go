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
	"testing"
)

func TestUpsertSQL(t *testing.T) {
	tbl := Table{
		Name:       "silver.stores",
		Columns:    []string{"store_id", "store_name", "city", "batch_id"},
		KeyColumns: []string{"store_id"},
	}

	got := upsertSQL(tbl)
	want := "INSERT INTO silver.stores (store_id, store_name, city, batch_id) " +
		"VALUES ($1, $2, $3, $4) " +
		"ON CONFLICT (store_id) " +
		"DO UPDATE SET store_name = EXCLUDED.store_name, city = EXCLUDED.city, batch_id = EXCLUDED.batch_id"
	if got != want {
		t.Errorf("upsertSQL mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestUpsertSQLCompositeKey(t *testing.T) {
	tbl := Table{
		Name:       "silver.inventory",
		Columns:    []string{"product_sku", "store_id", "snapshot_date", "quantity_on_hand"},
		KeyColumns: []string{"product_sku", "store_id", "snapshot_date"},
	}

	got := upsertSQL(tbl)
	want := "INSERT INTO silver.inventory (product_sku, store_id, snapshot_date, quantity_on_hand) " +
		"VALUES ($1, $2, $3, $4) " +
		"ON CONFLICT (product_sku, store_id, snapshot_date) " +
		"DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand"
	if got != want {
		t.Errorf("upsertSQL mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestTableIdent(t *testing.T) {
	tests := []struct {
		name  string
		table string
		want  string
	}{
		{"schema qualified", "raw.erp_products", `"raw"."erp_products"`},
		{"bare", "manifest", `"manifest"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tableIdent(tt.table).Sanitize(); got != tt.want {
				t.Errorf("tableIdent(%q).Sanitize() = %s, want %s", tt.table, got, tt.want)
			}
		})
	}
}
