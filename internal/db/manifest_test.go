package db

import (
	"testing"
	"time"
)

func TestGenerateBatchID(t *testing.T) {
	at := time.Date(2025, 8, 1, 6, 30, 45, 0, time.UTC)

	tests := []struct {
		source string
		entity string
		want   string
	}{
		{"POS", "transactions_header", "POS_transactions_header_20250801_063045"},
		{"ERP", "products", "ERP_products_20250801_063045"},
		{"GOLD", "agg_daily_sales", "GOLD_agg_daily_sales_20250801_063045"},
	}
	for _, tt := range tests {
		if got := GenerateBatchID(tt.source, tt.entity, at); got != tt.want {
			t.Errorf("GenerateBatchID(%q, %q) = %s, want %s", tt.source, tt.entity, got, tt.want)
		}
	}
}

func TestGenerateBatchIDZeroPadding(t *testing.T) {
	at := time.Date(2025, 1, 5, 7, 4, 9, 0, time.UTC)
	want := "CRM_customers_20250105_070409"
	if got := GenerateBatchID("CRM", "customers", at); got != want {
		t.Errorf("GenerateBatchID = %s, want %s", got, want)
	}
}
