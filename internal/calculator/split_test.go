package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/errs"
)

func TestSplitShares(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	tests := []struct {
		name         string
		inputs       []ShareInput
		total        decimal.Decimal
		wantErr      bool
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:   "even two-way split",
			inputs: []ShareInput{{"alice", "0.5"}, {"bob", "0.5"}},
			total:  hundred,
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.Amount.Equal(decimal.NewFromInt(50)) {
						t.Errorf("%s amount = %s, want 50", s.Participant, s.Amount)
					}
				}
			},
		},
		{
			name:    "sum 0.98 rejected",
			inputs:  []ShareInput{{"alice", "0.49"}, {"bob", "0.49"}},
			total:   hundred,
			wantErr: true,
		},
		{
			name:   "sum 0.9999 accepted at the epsilon boundary",
			inputs: []ShareInput{{"alice", "0.3333"}, {"bob", "0.3333"}, {"carol", "0.3333"}},
			total:  hundred,
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.Amount.Equal(decimal.RequireFromString("33.33")) {
						t.Errorf("%s amount = %s, want 33.33", s.Participant, s.Amount)
					}
				}
			},
		},
		{
			name:   "sum 1.0001 accepted",
			inputs: []ShareInput{{"alice", "0.5001"}, {"bob", "0.5"}},
			total:  hundred,
		},
		{
			name:    "sum 1.0002 rejected",
			inputs:  []ShareInput{{"alice", "0.5002"}, {"bob", "0.5"}},
			total:   hundred,
			wantErr: true,
		},
		{
			name:    "non-numeric fraction",
			inputs:  []ShareInput{{"alice", "half"}, {"bob", "0.5"}},
			total:   hundred,
			wantErr: true,
		},
		{
			name:    "negative fraction",
			inputs:  []ShareInput{{"alice", "-0.5"}, {"bob", "1.5"}},
			total:   hundred,
			wantErr: true,
		},
		{
			name:    "fraction above one",
			inputs:  []ShareInput{{"alice", "1.2"}},
			total:   hundred,
			wantErr: true,
		},
		{
			name:    "duplicate participant",
			inputs:  []ShareInput{{"alice", "0.5"}, {" alice", "0.5"}},
			total:   hundred,
			wantErr: true,
		},
		{
			name:    "empty participant",
			inputs:  []ShareInput{{"", "1"}},
			total:   hundred,
			wantErr: true,
		},
		{
			name:    "no participants",
			inputs:  nil,
			total:   hundred,
			wantErr: true,
		},
		{
			name:    "zero total",
			inputs:  []ShareInput{{"alice", "1"}},
			total:   decimal.Zero,
			wantErr: true,
		},
		{
			name:   "zero share allowed",
			inputs: []ShareInput{{"alice", "1"}, {"bob", "0"}},
			total:  decimal.RequireFromString("12.50"),
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[1].Amount.IsZero() {
					t.Errorf("bob amount = %s, want 0", shares[1].Amount)
				}
				if !shares[0].Amount.Equal(decimal.RequireFromString("12.5")) {
					t.Errorf("alice amount = %s, want 12.5", shares[0].Amount)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := SplitShares(tt.inputs, tt.total)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitShares() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errs.Is(err, errs.KindValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if len(shares) != len(tt.inputs) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.inputs))
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

func TestSplitSharesSumWithinTolerance(t *testing.T) {
	total := decimal.RequireFromString("100")
	shares, err := SplitShares([]ShareInput{
		{"alice", "0.3333"},
		{"bob", "0.3333"},
		{"carol", "0.3333"},
	}, total)
	if err != nil {
		t.Fatalf("SplitShares failed: %v", err)
	}

	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	// Amounts are independent, so the last participant does not absorb the remainder.
	tolerance := total.Mul(ShareEpsilon)
	if sum.Sub(total).Abs().GreaterThan(tolerance) {
		t.Errorf("sum of shares %s differs from %s by more than %s", sum, total, tolerance)
	}
	if sum.Equal(total) {
		t.Errorf("expected independent rounding to leave a gap, sum = %s", sum)
	}
}

func TestSplitSharesPreservesOrder(t *testing.T) {
	shares, err := SplitShares([]ShareInput{{"zed", "0.25"}, {"amy", "0.75"}}, decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("SplitShares failed: %v", err)
	}
	if shares[0].Participant != "zed" || shares[1].Participant != "amy" {
		t.Errorf("order not preserved: %v", shares)
	}
	if !shares[0].Amount.Equal(decimal.NewFromInt(10)) || !shares[1].Amount.Equal(decimal.NewFromInt(30)) {
		t.Errorf("unexpected amounts: %s, %s", shares[0].Amount, shares[1].Amount)
	}
}
