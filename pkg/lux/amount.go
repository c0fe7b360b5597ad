// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lux provides the amount type used for all balances handled by the
// wallet. Amounts are counted in LUX, the smallest indivisible unit, with
// one DUSK being worth 10^9 LUX.
package lux

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

const (
	// LuxPerDusk is the number of LUX in one DUSK.
	LuxPerDusk = 1_000_000_000

	// decimals is the number of fractional digits of a DUSK amount.
	decimals = 9

	// unitSuffix is appended to formatted amounts.
	unitSuffix = " DUSK"
)

var (
	// ErrInvalidAmount is returned when an amount string can not be
	// parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountOverflow is returned when an amount does not fit into the
	// 64 bit LUX representation.
	ErrAmountOverflow = errors.New("amount overflows")
)

// Amount represents a quantity of LUX.
type Amount uint64

// MaxAmount is the largest representable amount.
const MaxAmount = Amount(math.MaxUint64)

// NewAmount creates an Amount from a floating point value representing a
// number of DUSK. The value is rounded to the nearest LUX. NaN, infinite
// and negative values are rejected.
func NewAmount(f float64) (Amount, error) {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, f)

	case f < 0:
		return 0, fmt.Errorf("%w: negative value %v", ErrInvalidAmount,
			f)
	}

	v := math.Round(f * LuxPerDusk)
	if v >= math.MaxUint64 {
		return 0, ErrAmountOverflow
	}

	return Amount(v), nil
}

// ParseAmount parses a decimal DUSK string such as "12.5" or "0.000000001
// DUSK" into an exact Amount. Up to nine fractional digits are accepted.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s),
		strings.TrimSpace(unitSuffix)))
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(frac) > decimals {
		return 0, fmt.Errorf("%w: more than %d decimals in %q",
			ErrInvalidAmount, decimals, s)
	}

	var w uint64
	if whole != "" {
		var err error
		w, err = parseDigits(whole)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", err, s)
		}
	}

	var f uint64
	if frac != "" {
		padded := frac + strings.Repeat("0", decimals-len(frac))

		var err error
		f, err = parseDigits(padded)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", err, s)
		}
	}

	hi, lo := bits.Mul64(w, LuxPerDusk)
	if hi != 0 {
		return 0, ErrAmountOverflow
	}
	total, carry := bits.Add64(lo, f, 0)
	if carry != 0 {
		return 0, ErrAmountOverflow
	}

	return Amount(total), nil
}

// parseDigits parses a string made only of ASCII digits.
func parseDigits(s string) (uint64, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrAmountOverflow
	}

	return v, nil
}

// ToDusk returns the amount as a floating point number of DUSK.
func (a Amount) ToDusk() float64 {
	return float64(a) / LuxPerDusk
}

// String formats the amount as DUSK without trailing fractional zeros, for
// example "1.5 DUSK" or "0 DUSK".
func (a Amount) String() string {
	whole := uint64(a) / LuxPerDusk
	frac := uint64(a) % LuxPerDusk

	if frac == 0 {
		return strconv.FormatUint(whole, 10) + unitSuffix
	}

	fracStr := fmt.Sprintf("%09d", frac)
	fracStr = strings.TrimRight(fracStr, "0")

	return strconv.FormatUint(whole, 10) + "." + fracStr + unitSuffix
}

// Add returns a+b and whether the sum overflowed.
func (a Amount) Add(b Amount) (Amount, bool) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	return Amount(sum), carry != 0
}

// Mul returns a*b and whether the product overflowed.
func (a Amount) Mul(b Amount) (Amount, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return Amount(lo), hi != 0
}

// Sum adds up all the given amounts. ErrAmountOverflow is returned if the
// total does not fit into an Amount.
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, amt := range amounts {
		var overflow bool
		total, overflow = total.Add(amt)
		if overflow {
			return 0, ErrAmountOverflow
		}
	}

	return total, nil
}
