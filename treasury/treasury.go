// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package treasury caches what the wallet knows about the ledger: the
// balance of every transparent account and the unspent notes of every
// shielded address. Keeping the cache in sync with the network is the job of
// the caller; the treasury only stores and serves snapshots.
package treasury

import (
	"context"
	"fmt"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
)

// Store is implemented by every treasury backend. All methods are safe for
// concurrent use.
type Store interface {
	// Account returns the balance of a transparent account. Accounts the
	// treasury has never seen have a zero balance.
	Account(ctx context.Context, id keyring.Identifier) (ledger.Balance,
		error)

	// Address returns a snapshot of the unspent notes of a shielded
	// address, ordered by nullifier.
	Address(ctx context.Context, id keyring.Identifier) ([]ledger.Note,
		error)

	// SetAccount records the balance of a transparent account.
	SetAccount(ctx context.Context, id keyring.Identifier,
		balance ledger.Balance) error

	// InsertNotes attributes notes to a shielded address. Inserting a
	// note twice for the same address is a no-op.
	InsertNotes(ctx context.Context, id keyring.Identifier,
		notes ...ledger.Note) error

	// SpendNotes removes the notes with the given nullifiers, whoever owns
	// them, and returns how many were removed.
	SpendNotes(ctx context.Context,
		nullifiers ...ledger.Nullifier) (int, error)
}

// A compile time check to ensure the backends implement the interface.
var (
	_ Store = (*Memory)(nil)
	_ Store = (*DBStore)(nil)
	_ Store = (*SQLStore)(nil)
)

// checkKind returns ErrWrongKind unless the identifier classifies as kind.
func checkKind(id keyring.Identifier, kind keyring.Kind) error {
	if got := id.Kind(); got != kind {
		str := fmt.Sprintf("identifier %q is a %v, expected an %v",
			id, got, kind)
		return treasuryError(ErrWrongKind, str, nil)
	}

	return nil
}

// checkBalance returns ErrInvalidBalance if the spendable part of the
// balance exceeds its value.
func checkBalance(balance ledger.Balance) error {
	if !balance.Valid() {
		str := fmt.Sprintf("invalid balance %v", balance)
		return treasuryError(ErrInvalidBalance, str, nil)
	}

	return nil
}
