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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	assert.Equal(t, 20250704, DateKey(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 20240229, DateKey(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 20200101, DateKey(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGenerateDateDimBounds(t *testing.T) {
	now := time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)
	rows := GenerateDateDim(2020, 10, now)

	require.NotEmpty(t, rows)
	assert.Equal(t, 20200101, rows[0].DateKey)
	assert.Equal(t, 20351231, rows[len(rows)-1].DateKey)

	// 2020-01-01 .. 2035-12-31 inclusive; four leap years in range.
	want := 16*365 + 4
	assert.Len(t, rows, want)
}

func TestGenerateDateDimLeapDay(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := GenerateDateDim(2024, 0, now)

	byKey := map[int]DateDimRow{}
	for _, r := range rows {
		byKey[r.DateKey] = r
	}

	leap, ok := byKey[20240229]
	require.True(t, ok, "leap day must be generated")
	assert.Equal(t, 2, leap.Month)
	assert.Equal(t, 29, leap.Day)
	assert.True(t, leap.IsMonthEnd)
	assert.False(t, byKey[20240228].IsMonthEnd)
}

func TestGenerateDateDimAttributes(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := GenerateDateDim(2025, 0, now)

	byKey := map[int]DateDimRow{}
	for _, r := range rows {
		byKey[r.DateKey] = r
	}

	newYear := byKey[20250101]
	assert.True(t, newYear.IsHoliday)
	require.NotNil(t, newYear.HolidayName)
	assert.Equal(t, "New Year's Day", *newYear.HolidayName)
	assert.True(t, newYear.IsMonthStart)
	assert.Equal(t, 1, newYear.Quarter)
	assert.Equal(t, "Q1", newYear.QuarterName)
	// January 1 2025 falls in ISO week 1.
	assert.Equal(t, 1, newYear.ISOWeek)

	july4 := byKey[20250704]
	require.NotNil(t, july4.HolidayName)
	assert.Equal(t, "Independence Day", *july4.HolidayName)
	assert.Equal(t, 3, july4.Quarter)

	xmas := byKey[20251225]
	require.NotNil(t, xmas.HolidayName)
	assert.Equal(t, "Christmas Day", *xmas.HolidayName)
	assert.Equal(t, 4, xmas.FiscalQuarter)
	assert.Equal(t, 2025, xmas.FiscalYear)

	// 2025-08-16 is a Saturday.
	sat := byKey[20250816]
	assert.True(t, sat.IsWeekend)
	assert.Equal(t, "Saturday", sat.DayName)
	assert.Equal(t, 6, sat.DayOfWeek)

	ordinary := byKey[20250312]
	assert.False(t, ordinary.IsHoliday)
	assert.Nil(t, ordinary.HolidayName)
	assert.Equal(t, "March", ordinary.MonthName)
}

func TestGenerateDateDimDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := GenerateDateDim(2023, 2, now)
	b := GenerateDateDim(2023, 2, now)
	assert.Equal(t, a, b)
}
