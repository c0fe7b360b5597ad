// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bookkeeper

import (
	"bytes"
	"context"
	"fmt"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	"github.com/lightningnetwork/lnd/fn/v2"
)

const (
	// DefaultGasLimit is the gas limit of transfers that do not set one.
	DefaultGasLimit lux.Amount = 500_000_000

	// DefaultGasPrice is the gas price, in LUX per unit of gas, of
	// transfers that do not set one.
	DefaultGasPrice lux.Amount = 1
)

// DraftKind identifies the kind of transfer a Draft describes.
type DraftKind uint8

const (
	// DraftTransfer moves funds between two accounts or two addresses.
	DraftTransfer DraftKind = iota

	// DraftShield moves funds from an account to an address.
	DraftShield

	// DraftUnshield moves funds from an address to an account.
	DraftUnshield
)

// String returns the DraftKind as a human-readable name.
func (k DraftKind) String() string {
	switch k {
	case DraftTransfer:
		return "transfer"
	case DraftShield:
		return "shield"
	case DraftUnshield:
		return "unshield"
	default:
		return fmt.Sprintf("unknown draft kind (%d)", uint8(k))
	}
}

// Gas is the gas configuration of a transfer.
type Gas struct {
	Limit lux.Amount
	Price lux.Amount
}

// Fee returns the maximum fee the transfer can burn, Limit * Price.
func (g Gas) Fee() (lux.Amount, error) {
	fee, overflow := g.Limit.Mul(g.Price)
	if overflow {
		return 0, lux.ErrAmountOverflow
	}
	return fee, nil
}

// Draft is a transfer whose funding has been checked and, for shielded
// sources, whose input notes have been selected. Signing, proving and
// broadcasting the draft is up to the caller.
type Draft struct {
	Kind     DraftKind
	From     keyring.Identifier
	To       keyring.Identifier
	Amount   lux.Amount
	GasLimit lux.Amount
	GasPrice lux.Amount

	// Fee is the maximum fee, GasLimit * GasPrice, checked for overflow
	// when the draft was built.
	Fee lux.Amount

	Memo []byte

	// Inputs are the notes funding a shielded source. Empty for
	// transparent sources.
	Inputs []ledger.Note
}

// intent holds the configuration shared by all transfer builders.
type intent struct {
	entry  BookEntry
	amount lux.Amount
	gas    fn.Option[Gas]
	memo   []byte
}

// newIntent returns an intent of amount from the entry's profile.
func newIntent(entry BookEntry, amount lux.Amount) intent {
	return intent{
		entry:  entry,
		amount: amount,
		gas:    fn.None[Gas](),
	}
}

// gasOrDefault returns the configured gas or the default one.
func (i *intent) gasOrDefault() Gas {
	return i.gas.UnwrapOr(Gas{
		Limit: DefaultGasLimit,
		Price: DefaultGasPrice,
	})
}

// total returns the maximum fee and the amount plus that fee, which is what
// the source must be able to spend.
func (i *intent) total() (lux.Amount, lux.Amount, error) {
	if i.amount == 0 {
		return 0, 0, bookError(ErrZeroAmount, "transfer of zero", nil)
	}

	str := fmt.Sprintf("amount %v plus fee can not be funded", i.amount)

	fee, err := i.gasOrDefault().Fee()
	if err != nil {
		return 0, 0, bookError(ErrInsufficientFunds, str, err)
	}

	total, overflow := i.amount.Add(fee)
	if overflow {
		return 0, 0, bookError(ErrInsufficientFunds, str,
			lux.ErrAmountOverflow)
	}

	return fee, total, nil
}

// fundAccount checks that the account can spend total.
func (i *intent) fundAccount(ctx context.Context, from keyring.Identifier,
	total lux.Amount) error {

	balance, err := i.entry.keeper.Balance(ctx, from)
	if err != nil {
		return err
	}

	if balance.Spendable < total {
		str := fmt.Sprintf("requested %v but only %v of %v is "+
			"spendable", total, balance.Spendable, from)
		return bookError(ErrInsufficientFunds, str, nil)
	}

	return nil
}

// build checks the source can spend the amount plus the fee, selecting
// notes when the source is an address, and assembles the draft.
func (i *intent) build(ctx context.Context, kind DraftKind,
	source keyring.Kind, from, to keyring.Identifier) (*Draft, error) {

	fee, total, err := i.total()
	if err != nil {
		return nil, err
	}

	var inputs []ledger.Note
	if source == keyring.KindAddress {
		inputs, err = i.entry.keeper.Pick(ctx, from, total)
	} else {
		err = i.fundAccount(ctx, from, total)
	}
	if err != nil {
		return nil, err
	}

	gas := i.gasOrDefault()
	d := &Draft{
		Kind:     kind,
		From:     from,
		To:       to,
		Amount:   i.amount,
		GasLimit: gas.Limit,
		GasPrice: gas.Price,
		Fee:      fee,
		Memo:     bytes.Clone(i.memo),
		Inputs:   inputs,
	}

	log.Debugf("Built %v draft of %v from %v to %v with %d inputs",
		kind, d.Amount, from, to, len(inputs))

	return d, nil
}

// Transfer moves funds from the profile to another account or address. The
// destination decides the source: an address destination is funded by the
// profile's address, an account destination by the profile's account.
type Transfer struct {
	intent
	to fn.Option[keyring.Identifier]
}

// To sets the destination of the transfer.
func (t *Transfer) To(id keyring.Identifier) *Transfer {
	t.to = fn.Some(id)
	return t
}

// Gas sets the gas limit and price of the transfer.
func (t *Transfer) Gas(limit, price lux.Amount) *Transfer {
	t.gas = fn.Some(Gas{Limit: limit, Price: price})
	return t
}

// Memo attaches a memo to the transfer.
func (t *Transfer) Memo(memo []byte) *Transfer {
	t.memo = bytes.Clone(memo)
	return t
}

// Build checks the funding of the transfer and returns its draft.
func (t *Transfer) Build(ctx context.Context) (*Draft, error) {
	if err := t.entry.check(); err != nil {
		return nil, err
	}

	to, err := t.to.UnwrapOrErr(bookError(
		ErrIncompleteTransfer, "transfer has no destination", nil,
	))
	if err != nil {
		return nil, err
	}

	kind := t.entry.keeper.generator.TypeOf(to)
	from, ok := t.entry.profile.Identifier(kind)
	if !ok {
		return nil, unknownIdentifier(to)
	}

	return t.build(ctx, DraftTransfer, kind, from, to)
}

// ShieldTransfer moves funds from the account of the profile to its
// address.
type ShieldTransfer struct {
	intent
}

// Gas sets the gas limit and price of the transfer.
func (s *ShieldTransfer) Gas(limit, price lux.Amount) *ShieldTransfer {
	s.gas = fn.Some(Gas{Limit: limit, Price: price})
	return s
}

// Memo attaches a memo to the transfer.
func (s *ShieldTransfer) Memo(memo []byte) *ShieldTransfer {
	s.memo = bytes.Clone(memo)
	return s
}

// Build checks the account can fund the transfer and returns its draft.
func (s *ShieldTransfer) Build(ctx context.Context) (*Draft, error) {
	if err := s.entry.check(); err != nil {
		return nil, err
	}

	from := s.entry.profile.Account()
	to := s.entry.profile.Address()

	return s.build(ctx, DraftShield, keyring.KindAccount, from, to)
}

// UnshieldTransfer moves funds from the address of the profile to its
// account.
type UnshieldTransfer struct {
	intent
}

// Gas sets the gas limit and price of the transfer.
func (u *UnshieldTransfer) Gas(limit, price lux.Amount) *UnshieldTransfer {
	u.gas = fn.Some(Gas{Limit: limit, Price: price})
	return u
}

// Memo attaches a memo to the transfer.
func (u *UnshieldTransfer) Memo(memo []byte) *UnshieldTransfer {
	u.memo = bytes.Clone(memo)
	return u
}

// Build selects the notes funding the transfer and returns its draft.
func (u *UnshieldTransfer) Build(ctx context.Context) (*Draft, error) {
	if err := u.entry.check(); err != nil {
		return nil, err
	}

	from := u.entry.profile.Address()
	to := u.entry.profile.Account()

	return u.build(ctx, DraftUnshield, keyring.KindAddress, from, to)
}
