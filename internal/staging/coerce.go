//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package staging implements the type-coercion layer of the pipeline.
// Every raw field gets a best-effort typed coercion; failures become
// NULL plus a validity flag, never a dropped row and never an error.
package staging

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Source-specific null markers normalized to true null before coercion.
var nullSentinels = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NULL": true,
	"NONE": true,
	"-":    true,
}

// Date formats accepted, first successful parse wins. ISO first, then
// month-first (POS exports), then day-first (ERP exports).
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"2-1-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Timestamp formats accepted for last-updated style fields.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
}

// Currency symbols and separators stripped before numeric coercion.
var currencyStripper = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	",", "",
	" ", "",
	" ", "",
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Sentinel trims the input and maps known null markers to nil.
func Sentinel(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if nullSentinels[strings.ToUpper(v)] {
		return nil
	}
	return &v
}

// NormalizeID returns a trimmed, uppercased identifier, or nil when the
// value is empty or a null sentinel. Identifiers are case-normalized so
// cross-source joins behave consistently.
func NormalizeID(s *string) *string {
	v := Sentinel(s)
	if v == nil {
		return nil
	}
	id := strings.ToUpper(*v)
	return &id
}

// CleanText returns the trimmed value or nil for sentinels. Text casing
// is preserved; categorical standardization happens in the silver layer.
func CleanText(s *string) *string {
	return Sentinel(s)
}

// ParseDate coerces a raw string to a calendar date. Returns (nil,
// false) when the value is missing or unparseable in every accepted
// format.
func ParseDate(s *string) (*time.Time, bool) {
	v := Sentinel(s)
	if v == nil {
		return nil, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *v); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, true
		}
	}
	return nil, false
}

// ParseTimestamp coerces a raw string to a timestamp, falling back to
// midnight when only a date is present.
func ParseTimestamp(s *string) (*time.Time, bool) {
	v := Sentinel(s)
	if v == nil {
		return nil, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, *v); err == nil {
			u := t.UTC()
			return &u, true
		}
	}
	return nil, false
}

// ParseAmount coerces a currency-formatted string to a number after
// stripping known currency symbols and thousands separators.
func ParseAmount(s *string) (*float64, bool) {
	v := Sentinel(s)
	if v == nil {
		return nil, false
	}
	cleaned := currencyStripper.Replace(*v)

	// Accounting-style negatives: (12.34) means -12.34.
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

// ParseInt coerces a raw string to an integer. Values formatted with
// separators ("1,200") or as whole floats ("12.0") are accepted.
func ParseInt(s *string) (*int, bool) {
	v := Sentinel(s)
	if v == nil {
		return nil, false
	}
	cleaned := currencyStripper.Replace(*v)

	if n, err := strconv.Atoi(cleaned); err == nil {
		return &n, true
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil && f == float64(int(f)) {
		n := int(f)
		return &n, true
	}
	return nil, false
}

// ParseFloat coerces a raw string to a float without currency cleaning
// beyond separator stripping.
func ParseFloat(s *string) (*float64, bool) {
	return ParseAmount(s)
}

// ValidEmail reports whether the value looks like an email address.
func ValidEmail(s *string) bool {
	if s == nil {
		return false
	}
	return emailPattern.MatchString(*s)
}
