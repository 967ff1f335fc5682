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
	"reflect"
	"testing"
)

func TestParseStages(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []Stage
		wantErr bool
	}{
		{"empty selects all", "", []Stage{StageStaging, StageSilver, StageGold}, false},
		{"blank selects all", "   ", []Stage{StageStaging, StageSilver, StageGold}, false},
		{"full list", "staging,silver,gold", []Stage{StageStaging, StageSilver, StageGold}, false},
		{"single stage", "silver", []Stage{StageSilver}, false},
		{"leading subset", "staging,silver", []Stage{StageStaging, StageSilver}, false},
		{"skipped layer", "staging,gold", []Stage{StageStaging, StageGold}, false},
		{"case and spaces", " Staging , GOLD ", []Stage{StageStaging, StageGold}, false},
		{"unknown stage", "staging,bronze", nil, true},
		{"out of order", "gold,staging", nil, true},
		{"duplicate", "silver,silver", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStages(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStages(%q): expected error, got %v", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStages(%q) failed: %v", tt.spec, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStages(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}
