package models

import (
	"fmt"
	"strings"
)

// Category is the fixed set of spending categories.
type Category string

const (
	CategoryGroceries     Category = "GROCERIES"
	CategoryTransport     Category = "TRANSPORT"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHealth        Category = "HEALTH"
	CategoryUtilities     Category = "UTILITIES"
	CategoryOther         Category = "OTHER"
)

// Categories lists every category in canonical order.
var Categories = []Category{
	CategoryGroceries,
	CategoryTransport,
	CategoryEntertainment,
	CategoryHealth,
	CategoryUtilities,
	CategoryOther,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Rank is the position of c in Categories, or len(Categories) if unknown.
func (c Category) Rank() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}

// ParseCategory normalizes raw (trimmed, upper-cased) and validates it.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q: must be one of %v", raw, Categories)
	}
	return c, nil
}

// ParseOptionalCategory is ParseCategory that maps an empty value to nil,
// meaning "all categories".
func ParseOptionalCategory(raw string) (*Category, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	c, err := ParseCategory(raw)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Duration is the rolling window length of a budget.
type Duration string

const (
	DurationWeekly  Duration = "WEEKLY"
	DurationMonthly Duration = "MONTHLY"
	DurationYearly  Duration = "YEARLY"
)

// Durations lists every budget duration.
var Durations = []Duration{DurationWeekly, DurationMonthly, DurationYearly}

// Valid reports whether d is one of the fixed durations.
func (d Duration) Valid() bool {
	switch d {
	case DurationWeekly, DurationMonthly, DurationYearly:
		return true
	}
	return false
}

// ParseDuration normalizes raw (trimmed, upper-cased) and validates it.
func ParseDuration(raw string) (Duration, error) {
	d := Duration(strings.ToUpper(strings.TrimSpace(raw)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid duration %q: must be one of %v", raw, Durations)
	}
	return d, nil
}
