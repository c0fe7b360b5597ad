// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bookkeeper

import (
	"context"
	"fmt"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
)

// BookEntry is a view of a Bookkeeper scoped to one profile. It is created
// by Bookkeeper.As and never changes afterwards. The zero value is not
// usable.
type BookEntry struct {
	keeper  *Bookkeeper
	profile *keyring.Profile
}

// check returns ErrInvalidProfile for entries that were not created by
// Bookkeeper.As.
func (e BookEntry) check() error {
	if e.keeper == nil || e.profile == nil {
		return bookError(ErrInvalidProfile,
			"book entry is not bound to a profile", nil)
	}

	return nil
}

// Profile returns the profile the entry is bound to.
func (e BookEntry) Profile() *keyring.Profile {
	return e.profile
}

// Balance returns the balance of the account or the address of the
// profile.
func (e BookEntry) Balance(ctx context.Context,
	kind keyring.Kind) (ledger.Balance, error) {

	if err := e.check(); err != nil {
		return ledger.Balance{}, err
	}

	id, ok := e.profile.Identifier(kind)
	if !ok {
		str := fmt.Sprintf("no identifier of kind %v", kind)
		return ledger.Balance{}, bookError(
			ErrUnknownIdentifierType, str, nil,
		)
	}

	return e.keeper.Balance(ctx, id)
}

// Transfer starts a transfer of amount from the profile. The source is
// chosen once the destination is known.
func (e BookEntry) Transfer(amount lux.Amount) *Transfer {
	return &Transfer{intent: newIntent(e, amount)}
}

// Shield starts a transfer of amount from the account of the profile to its
// address.
func (e BookEntry) Shield(amount lux.Amount) *ShieldTransfer {
	return &ShieldTransfer{intent: newIntent(e, amount)}
}

// Unshield starts a transfer of amount from the address of the profile to
// its account.
func (e BookEntry) Unshield(amount lux.Amount) *UnshieldTransfer {
	return &UnshieldTransfer{intent: newIntent(e, amount)}
}
