package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidateMonth enforces the month contract: exactly seven characters,
// YYYY-MM, hyphen at index 4.
func ValidateMonth(month string) error {
	if len(month) != 7 || month[4] != '-' {
		return &ValidationError{Violations: []string{"month must be in format YYYY-MM"}}
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return &ValidationError{Violations: []string{"month must be in format YYYY-MM"}}
	}
	return nil
}

// MonthRange returns the [start, end) UTC bounds of a YYYY-MM month.
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Violations: []string{"month must be in format YYYY-MM"}}
	}
	return start, start.AddDate(0, 1, 0), nil
}

// dateOf truncates a timestamp to its UTC calendar date. FX rates are keyed
// by date, never by time of day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// hasAtMostTwoDecimals rejects amounts finer than the monetary precision
// the ledger stores. 49.999 is a validation failure, not something to round.
func hasAtMostTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// round2 is the single rounding policy for monetary base amounts:
// half away from zero, two decimal places. Rates are never rounded.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
