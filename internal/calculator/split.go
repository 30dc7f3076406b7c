package calculator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/errs"
)

// ShareEpsilon is how far the fractions of a split may drift from 1.
// Percentage entry in the UI accumulates rounding error across participants.
var ShareEpsilon = decimal.New(1, -4)

// ShareInput is one participant's proposed fraction of a total, as entered.
type ShareInput struct {
	Participant string
	Fraction    string
}

// Share is one participant's validated fraction and absolute amount.
type Share struct {
	Participant string
	Fraction    decimal.Decimal
	Amount      decimal.Decimal
}

// SplitShares validates a fractional split of total and converts every
// fraction to an absolute amount.
//
// Each fraction must parse as a decimal in [0, 1], participants must be
// unique and non-empty, and |sum(fractions) - 1| <= ShareEpsilon. Every
// amount is fraction × total computed on its own, never as a remainder, so
// the amounts may sum to total ± total×ShareEpsilon. Output order matches
// input order. Failures are validation errors.
func SplitShares(inputs []ShareInput, total decimal.Decimal) ([]Share, error) {
	if !total.IsPositive() {
		return nil, errs.Validationf("total amount must be greater than zero")
	}
	if len(inputs) == 0 {
		return nil, errs.Validationf("at least one participant is required")
	}

	seen := make(map[string]bool, len(inputs))
	shares := make([]Share, 0, len(inputs))
	sum := decimal.Zero
	for _, in := range inputs {
		participant := strings.TrimSpace(in.Participant)
		if participant == "" {
			return nil, errs.Validationf("participant name must not be empty")
		}
		if seen[participant] {
			return nil, errs.Validationf("duplicate participant %q", participant)
		}
		seen[participant] = true

		fraction, err := decimal.NewFromString(strings.TrimSpace(in.Fraction))
		if err != nil {
			return nil, errs.Validationf("share for %q is not a number: %q", participant, in.Fraction)
		}
		if fraction.IsNegative() || fraction.GreaterThan(decimal.NewFromInt(1)) {
			return nil, errs.Validationf("share for %q must be between 0 and 1, got %s", participant, fraction)
		}

		sum = sum.Add(fraction)
		shares = append(shares, Share{
			Participant: participant,
			Fraction:    fraction,
			Amount:      fraction.Mul(total),
		})
	}

	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(ShareEpsilon) {
		return nil, errs.Validationf("shares must sum to 1, got %s", sum)
	}
	return shares, nil
}
