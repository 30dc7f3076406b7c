package models

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw     string
		want    Category
		wantErr bool
	}{
		{"GROCERIES", CategoryGroceries, false},
		{" transport ", CategoryTransport, false},
		{"Health", CategoryHealth, false},
		{"FOOD", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCategory(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseOptionalCategory(t *testing.T) {
	got, err := ParseOptionalCategory("  ")
	if err != nil || got != nil {
		t.Fatalf("empty category should mean all categories, got %v, %v", got, err)
	}

	got, err = ParseOptionalCategory("utilities")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != CategoryUtilities {
		t.Errorf("got %v, want UTILITIES", got)
	}

	if _, err := ParseOptionalCategory("RENT"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestParseDuration(t *testing.T) {
	for _, raw := range []string{"WEEKLY", "monthly", " Yearly"} {
		if _, err := ParseDuration(raw); err != nil {
			t.Errorf("ParseDuration(%q) unexpected error: %v", raw, err)
		}
	}
	for _, raw := range []string{"DAILY", ""} {
		if _, err := ParseDuration(raw); err == nil {
			t.Errorf("ParseDuration(%q) expected error", raw)
		}
	}
}

func TestCategoryRank(t *testing.T) {
	if CategoryGroceries.Rank() != 0 || CategoryOther.Rank() != 5 {
		t.Errorf("unexpected ranks: %d, %d", CategoryGroceries.Rank(), CategoryOther.Rank())
	}
	if Category("NOPE").Rank() != len(Categories) {
		t.Error("unknown category should rank last")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw      string
		positive bool
		want     string
		wantErr  bool
	}{
		{"12.34", false, "12.34", false},
		{" 0 ", false, "0", false},
		{"0", true, "", true},
		{"-1", false, "", true},
		{"abc", false, "", true},
		{"", false, "", true},
		{"100", true, "100", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			parse := ParseAmount
			if tt.positive {
				parse = ParsePositiveAmount
			}
			got, err := parse(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parse(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("parse(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date-only should be midnight UTC, got %v", got)
	}

	got, err = ParseDate("2024-03-15T23:30:00+02:00")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if DayKey(got) != "2024-03-15" || got.Hour() != 21 {
		t.Errorf("RFC3339 should convert to UTC, got %v", got)
	}

	if _, err := ParseDate("15/03/2024"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC)
	if got := StartOfDay(at); !got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfDay = %v", got)
	}
	end := EndOfDay(at)
	if DayKey(end) != "2024-02-29" || !end.Add(time.Nanosecond).Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("EndOfDay = %v", end)
	}
}

func TestUserActive(t *testing.T) {
	var missing *User
	if missing.IsActive() {
		t.Error("nil user should not be active")
	}
	u := NewUser("alice", "Alice", "hash")
	if !u.IsActive() || u.ID == "" {
		t.Errorf("new user should be active with an ID: %+v", u)
	}
	u.DeletedAt = time.Now().Unix()
	if u.IsActive() {
		t.Error("soft-deleted user should not be active")
	}
}
