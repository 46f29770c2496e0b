// Package input turns user-entered text into the annual amounts the tax
// calculators expect.
package input

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseAmount keeps only the digits of s. Empty or digit-free text is 0.
func ParseAmount(s string) (float64, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "amount %q", s)
	}
	return v, nil
}

type Period string

const (
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// ParsePeriod defaults an empty string to Monthly.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly", "month":
		return Monthly, nil
	case "yearly", "year", "annual", "annually":
		return Yearly, nil
	}
	return "", errors.Errorf("unknown period %q", s)
}

func (p Period) Multiplier() float64 {
	if p == Monthly {
		return 12
	}
	return 1
}

// Annualize converts a per-period amount to an annual one.
func (p Period) Annualize(v float64) float64 {
	return v * p.Multiplier()
}

func MonthlyEquivalent(annual float64) float64 {
	return annual / 12
}
