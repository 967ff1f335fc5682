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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemapLocationID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"loc-underscore", "LOC_S001", "S001"},
		{"loc-dash", "LOC-S002", "S002"},
		{"retail-prefix", "RETAIL_S003", "S003"},
		{"lowercase", "loc_s001", "S001"},
		{"padded", "  LOC_S001  ", "S001"},
		{"already-canonical", "S001", "S001"},
		{"unknown-prefix", "SITE_S001", "SITE_S001"},
		{"bare-prefix", "LOC_", "LOC_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemapLocationID(sp(tt.in))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Nil(t, RemapLocationID(nil))
}
