//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package gold builds the star schema from the conformed layer:
// generated date dimension, SCD-carrying product dimension, flat
// dimensions, the promotion-product bridge, line-grain and
// snapshot-grain facts, and the pre-aggregated summary tables.
package gold

import (
	"fmt"
	"time"
)

// DateDimRow is one calendar day of gold.dim_date. Fiscal periods are
// aliased to calendar periods.
type DateDimRow struct {
	DateKey       int
	FullDate      time.Time
	Year          int
	Quarter       int
	Month         int
	Day           int
	DayOfWeek     int
	ISOWeek       int
	DayName       string
	MonthName     string
	QuarterName   string
	IsWeekend     bool
	IsMonthStart  bool
	IsMonthEnd    bool
	IsHoliday     bool
	HolidayName   *string
	FiscalYear    int
	FiscalQuarter int
}

// DateKey encodes a calendar day as YYYYMMDD.
func DateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// holidayName returns the fixed-date holiday for a day, if any.
func holidayName(t time.Time) *string {
	var name string
	switch {
	case t.Month() == time.January && t.Day() == 1:
		name = "New Year's Day"
	case t.Month() == time.July && t.Day() == 4:
		name = "Independence Day"
	case t.Month() == time.December && t.Day() == 25:
		name = "Christmas Day"
	default:
		return nil
	}
	return &name
}

// GenerateDateDim produces one row per day from January 1 of startYear
// through December 31 of the current year plus yearsAhead. The output
// depends only on the inputs, so regenerating is idempotent.
func GenerateDateDim(startYear, yearsAhead int, now time.Time) []DateDimRow {
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year()+yearsAhead, time.December, 31, 0, 0, 0, 0, time.UTC)

	out := make([]DateDimRow, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		_, isoWeek := d.ISOWeek()
		quarter := (int(d.Month())-1)/3 + 1
		holiday := holidayName(d)
		row := DateDimRow{
			DateKey:       DateKey(d),
			FullDate:      d,
			Year:          d.Year(),
			Quarter:       quarter,
			Month:         int(d.Month()),
			Day:           d.Day(),
			DayOfWeek:     int(d.Weekday()),
			ISOWeek:       isoWeek,
			DayName:       d.Weekday().String(),
			MonthName:     d.Month().String(),
			QuarterName:   fmt.Sprintf("Q%d", quarter),
			IsWeekend:     d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
			IsMonthStart:  d.Day() == 1,
			IsMonthEnd:    d.AddDate(0, 0, 1).Day() == 1,
			IsHoliday:     holiday != nil,
			HolidayName:   holiday,
			FiscalYear:    d.Year(),
			FiscalQuarter: quarter,
		}
		out = append(out, row)
	}
	return out
}
