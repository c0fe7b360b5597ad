// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"github.com/btcsuite/shieldwallet/pkg/lux"
)

// AmountFlag embeds a lux.Amount and implements the flags.Marshaler and
// Unmarshaler interfaces so it can be used as a config struct field. Values
// are written in DUSK, with or without the unit suffix.
type AmountFlag struct {
	lux.Amount
}

// NewAmountFlag creates an AmountFlag with a default lux.Amount.
func NewAmountFlag(defaultValue lux.Amount) *AmountFlag {
	return &AmountFlag{defaultValue}
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (a *AmountFlag) MarshalFlag() (string, error) {
	return a.Amount.String(), nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface.
func (a *AmountFlag) UnmarshalFlag(value string) error {
	amount, err := lux.ParseAmount(value)
	if err != nil {
		return err
	}
	a.Amount = amount

	return nil
}
