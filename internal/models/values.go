package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format used for day keys.
const DateLayout = "2006-01-02"

var errInvalidDate = errors.New("invalid date: use YYYY-MM-DD or RFC3339")

// ParseAmount parses a decimal money amount. It accepts "12.34" style
// strings and rejects negatives.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: not a number", raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid amount %q: must not be negative", raw)
	}
	return d, nil
}

// ParsePositiveAmount is ParseAmount that also rejects zero.
func ParsePositiveAmount(raw string) (decimal.Decimal, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid amount %q: must be greater than zero", raw)
	}
	return d, nil
}

// ParseDate accepts a calendar date (midnight UTC) or an RFC3339 instant
// (converted to UTC).
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errInvalidDate
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's UTC day.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

// DayKey formats t as its UTC calendar date.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
