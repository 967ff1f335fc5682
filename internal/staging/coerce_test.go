//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package staging

import (
	"testing"
	"time"
)

func sp(s string) *string { return &s }

func TestSentinel(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *string
	}{
		{"nil", nil, nil},
		{"empty", sp(""), nil},
		{"whitespace", sp("   "), nil},
		{"na", sp("NA"), nil},
		{"na-slash", sp("n/a"), nil},
		{"null", sp("NULL"), nil},
		{"none", sp("None"), nil},
		{"dash", sp("-"), nil},
		{"value", sp(" S001 "), sp("S001")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentinel(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Sentinel(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Sentinel = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func TestNormalizeID(t *testing.T) {
	if got := NormalizeID(sp(" s001 ")); got == nil || *got != "S001" {
		t.Errorf("NormalizeID(' s001 ') = %v, want S001", got)
	}
	if got := NormalizeID(sp("n/a")); got != nil {
		t.Errorf("NormalizeID('n/a') = %v, want nil", got)
	}
	if got := NormalizeID(nil); got != nil {
		t.Errorf("NormalizeID(nil) = %v, want nil", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{"iso", "2025-03-15", "2025-03-15", true},
		{"iso-slash", "2025/03/15", "2025-03-15", true},
		{"month-first", "03/15/2025", "2025-03-15", true},
		{"month-first-short", "3/5/2025", "2025-03-05", true},
		{"day-first", "15-03-2025", "2025-03-15", true},
		{"written", "Mar 15, 2025", "2025-03-15", true},
		{"written-day-first", "15 Mar 2025", "2025-03-15", true},
		{"garbage", "13/45/2025", "", false},
		{"empty", "", "", false},
		{"sentinel", "N/A", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(sp(tt.in))
			if ok != tt.valid {
				t.Fatalf("ParseDate(%q) valid = %v, want %v", tt.in, ok, tt.valid)
			}
			if !tt.valid {
				if got != nil {
					t.Errorf("ParseDate(%q) = %v, want nil", tt.in, got)
				}
				return
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
			}
		})
	}

	if got, ok := ParseDate(nil); ok || got != nil {
		t.Error("ParseDate(nil) should be invalid")
	}
}

func TestParseDateFirstFormatWins(t *testing.T) {
	// 05/04/2025 is ambiguous; month-first is listed before day-first.
	got, ok := ParseDate(sp("05/04/2025"))
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2025, time.May, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate('05/04/2025') = %v, want %v (month-first)", got, want)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  float64
		valid bool
	}{
		{"plain", "100.00", 100, true},
		{"dollar", "$1,234.56", 1234.56, true},
		{"euro", "€99.95", 99.95, true},
		{"pound", "£10.00", 10, true},
		{"negative", "-12.50", -12.50, true},
		{"accounting", "(45.67)", -45.67, true},
		{"dollar-accounting", "($1,000.00)", -1000, true},
		{"spaces", "1 250.00", 1250, true},
		{"text", "abc", 0, false},
		{"sentinel", "NA", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(sp(tt.in))
			if ok != tt.valid {
				t.Fatalf("ParseAmount(%q) valid = %v, want %v", tt.in, ok, tt.valid)
			}
			if tt.valid && *got != tt.want {
				t.Errorf("ParseAmount(%q) = %f, want %f", tt.in, *got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  int
		valid bool
	}{
		{"plain", "42", 42, true},
		{"negative", "-3", -3, true},
		{"separated", "1,200", 1200, true},
		{"whole-float", "12.0", 12, true},
		{"fractional", "12.5", 0, false},
		{"text", "many", 0, false},
		{"sentinel", "-", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInt(sp(tt.in))
			if ok != tt.valid {
				t.Fatalf("ParseInt(%q) valid = %v, want %v", tt.in, ok, tt.valid)
			}
			if tt.valid && *got != tt.want {
				t.Errorf("ParseInt(%q) = %d, want %d", tt.in, *got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	got, ok := ParseTimestamp(sp("2025-03-15 10:30:00"))
	if !ok || got == nil {
		t.Fatal("expected timestamp to parse")
	}
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("unexpected time: %v", got)
	}

	// Date-only input falls back to midnight.
	got, ok = ParseTimestamp(sp("2025-03-15"))
	if !ok || got.Hour() != 0 {
		t.Errorf("date-only timestamp = %v, want midnight", got)
	}

	if _, ok := ParseTimestamp(sp("not a time")); ok {
		t.Error("expected parse failure")
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail(sp("jane.doe@example.com")) {
		t.Error("expected valid email")
	}
	for _, bad := range []string{"jane at example.com", "jane@", "@example.com", "jane@example", ""} {
		if ValidEmail(sp(bad)) {
			t.Errorf("ValidEmail(%q) = true, want false", bad)
		}
	}
	if ValidEmail(nil) {
		t.Error("ValidEmail(nil) = true, want false")
	}
}
