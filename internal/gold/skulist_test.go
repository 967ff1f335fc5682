//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package gold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sp(s string) *string { return &s }

func TestParseSKUList(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want []string
	}{
		{"nil", nil, nil},
		{"empty", sp(""), nil},
		{"sentinel", sp("N/A"), nil},
		{"single", sp("P001"), []string{"P001"}},
		{"pipe delimited", sp("P001|P002|P003"), []string{"P001", "P002", "P003"}},
		{"whitespace trimmed", sp(" P001 | P002 "), []string{"P001", "P002"}},
		{"uppercased", sp("p001|p002"), []string{"P001", "P002"}},
		{"empty segments dropped", sp("P001||P002|"), []string{"P001", "P002"}},
		{"duplicates first wins", sp("P001|P002|P001"), []string{"P001", "P002"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSKUList(tt.raw))
		})
	}
}
