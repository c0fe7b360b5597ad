// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bookkeeper computes the balances of the two kinds of funds a
// profile holds, the transparent account and the shielded address, and
// selects the notes funding a shielded spend.
//
// The bookkeeper keeps no state besides its collaborators: every call reads
// the current snapshot of the treasury. Within a single call the sufficiency
// check and the note selection are computed over the same snapshot, but two
// calls may observe different ones. Pick is the authoritative check before a
// spend, a Balance returned by an earlier call must not be used to justify
// it.
package bookkeeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	"golang.org/x/sync/errgroup"
)

// Treasury supplies the balance of transparent accounts and the unspent
// notes of shielded addresses. It must be safe for concurrent reads.
type Treasury interface {
	// Account returns the balance the ledger holds for the account.
	Account(ctx context.Context, id keyring.Identifier) (ledger.Balance,
		error)

	// Address returns the current unspent notes of the address.
	Address(ctx context.Context, id keyring.Identifier) ([]ledger.Note,
		error)
}

// ProfileGenerator classifies identifiers and gives access to the seed they
// were derived from.
type ProfileGenerator interface {
	// TypeOf classifies the identifier.
	TypeOf(id keyring.Identifier) keyring.Kind

	// SeedFrom returns the seed the identifier was derived from.
	SeedFrom(ctx context.Context, id keyring.Identifier) (keyring.Seed,
		error)
}

// ProtocolDriver aggregates and selects notes.
type ProtocolDriver interface {
	// Balance computes the balance of the notes owned by the address
	// derived from seed at index.
	Balance(ctx context.Context, seed keyring.Seed, index uint32,
		notes []ledger.Note) (ledger.Balance, error)

	// PickNotes selects notes of the address covering amount.
	PickNotes(ctx context.Context, id keyring.Identifier,
		notes []ledger.Note, amount lux.Amount) ([]ledger.Note, error)
}

// Config holds the collaborators of a Bookkeeper. All of them are required.
type Config struct {
	Treasury  Treasury
	Generator ProfileGenerator
	Driver    ProtocolDriver
}

// Bookkeeper computes balances and selects notes. It is safe for concurrent
// use as long as its collaborators are.
type Bookkeeper struct {
	treasury  Treasury
	generator ProfileGenerator
	driver    ProtocolDriver
}

// New returns a bookkeeper over the configured collaborators.
func New(cfg *Config) (*Bookkeeper, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("missing bookkeeper config")
	case cfg.Treasury == nil:
		return nil, errors.New("missing treasury")
	case cfg.Generator == nil:
		return nil, errors.New("missing profile generator")
	case cfg.Driver == nil:
		return nil, errors.New("missing protocol driver")
	}

	return &Bookkeeper{
		treasury:  cfg.Treasury,
		generator: cfg.Generator,
		driver:    cfg.Driver,
	}, nil
}

// unknownIdentifier returns the ErrUnknownIdentifierType error for id.
func unknownIdentifier(id keyring.Identifier) error {
	str := fmt.Sprintf("identifier %q is neither an account nor an "+
		"address", id)
	return bookError(ErrUnknownIdentifierType, str, nil)
}

// Balance returns the balance of the identifier. The balance of an account
// is the one held by the treasury, the balance of an address is computed by
// the protocol driver over the current notes of the address.
func (b *Bookkeeper) Balance(ctx context.Context,
	id keyring.Identifier) (ledger.Balance, error) {

	switch b.generator.TypeOf(id) {
	case keyring.KindAccount:
		return b.treasury.Account(ctx, id)

	case keyring.KindAddress:
		balance, _, err := b.addressBalance(ctx, id)
		return balance, err

	default:
		return ledger.Balance{}, unknownIdentifier(id)
	}
}

// addressBalance fetches the notes of the address and computes their
// balance. The notes are returned so the caller can keep working on the
// snapshot the balance was computed from.
func (b *Bookkeeper) addressBalance(ctx context.Context,
	id keyring.Identifier) (ledger.Balance, []ledger.Note, error) {

	var (
		notes []ledger.Note
		seed  keyring.Seed
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, err = b.treasury.Address(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		seed, err = b.generator.SeedFrom(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return ledger.Balance{}, nil, err
	}
	defer seed.Zero()

	balance, err := b.driver.Balance(ctx, seed, id.Index, notes)
	if err != nil {
		return ledger.Balance{}, nil, err
	}

	log.Debugf("Balance of %v over %d notes: %v", id, len(notes),
		balance)

	return balance, notes, nil
}

// Pick selects notes of the address covering amount. ErrInsufficientFunds
// is returned, without asking the driver for a selection, when the
// spendable balance is lower than amount. Spending exactly the spendable
// balance is allowed.
func (b *Bookkeeper) Pick(ctx context.Context, id keyring.Identifier,
	amount lux.Amount) ([]ledger.Note, error) {

	switch b.generator.TypeOf(id) {
	case keyring.KindAddress:
		// Only addresses own notes.

	case keyring.KindAccount:
		str := fmt.Sprintf("account %v has no notes to pick", id)
		return nil, bookError(ErrNotShielded, str, nil)

	default:
		return nil, unknownIdentifier(id)
	}

	balance, notes, err := b.addressBalance(ctx, id)
	if err != nil {
		return nil, err
	}

	if balance.Spendable < amount {
		str := fmt.Sprintf("requested %v but only %v of %v is "+
			"spendable", amount, balance.Spendable, id)
		return nil, bookError(ErrInsufficientFunds, str, nil)
	}

	picked, err := b.driver.PickNotes(ctx, id, notes, amount)
	if err != nil {
		return nil, err
	}

	log.Debugf("Picked %d notes of %v for %v", len(picked), id, amount)
	log.Tracef("Picked nullifiers: %v", notesDump(picked))

	return picked, nil
}

// As returns a BookEntry scoped to the profile.
func (b *Bookkeeper) As(profile *keyring.Profile) (BookEntry, error) {
	if err := profile.Validate(); err != nil {
		return BookEntry{}, bookError(ErrInvalidProfile,
			"invalid profile", err)
	}

	return BookEntry{keeper: b, profile: profile}, nil
}
