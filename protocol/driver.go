// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package protocol implements the protocol driver used by the bookkeeper:
// it reads notes, aggregates the balance of the notes owned by an address
// and selects the notes that fund a spend.
package protocol

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
)

// MaxInputNotes is the maximum number of notes a single transaction can
// consume.
const MaxInputNotes = 4

// Driver is the note processing engine. It is stateless and safe for
// concurrent use.
type Driver struct {
	maxInputs int
}

// NewDriver returns a driver spending at most MaxInputNotes notes per
// transaction.
func NewDriver() *Driver {
	return &Driver{maxInputs: MaxInputNotes}
}

// ownedNote is a note decoded and attributed to the address being
// processed.
type ownedNote struct {
	note  ledger.Note
	value lux.Amount
}

// ownedNotes decodes the notes and keeps the ones owned by the address key,
// sorted by ascending value. Notes of equal value keep their input order.
func ownedNotes(addrKey []byte, notes []ledger.Note) ([]ownedNote, error) {
	owned := make([]ownedNote, 0, len(notes))
	for _, note := range notes {
		p, err := DecodeNote(note.Data)
		if err != nil {
			str := fmt.Sprintf("note %v", note.Nullifier)
			return nil, driverError(ErrMalformedNote, str, err)
		}

		// Notes of other addresses can not be opened with this key.
		if !bytes.Equal(p.Owner, addrKey) {
			continue
		}

		owned = append(owned, ownedNote{note: note, value: p.Value})
	}

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].value < owned[j].value
	})

	return owned, nil
}

// Balance aggregates the notes owned by the address derived from the seed at
// the given index. Value is the total of the owned notes and Spendable the
// total of the largest notes a single transaction can consume.
func (d *Driver) Balance(ctx context.Context, seed keyring.Seed, index uint32,
	notes []ledger.Note) (ledger.Balance, error) {

	if err := ctx.Err(); err != nil {
		return ledger.Balance{}, err
	}

	gen := keyring.NewGenerator(seed)
	defer gen.Zero()

	addrKey, err := gen.AddressKey(index)
	if err != nil {
		return ledger.Balance{}, driverError(ErrDerivation,
			"unable to derive address", err)
	}

	owned, err := ownedNotes(addrKey, notes)
	if err != nil {
		return ledger.Balance{}, err
	}

	var balance ledger.Balance
	for i, n := range owned {
		balance.Value = saturatingAdd(balance.Value, n.value)

		// The owned notes are sorted ascending, the spendable part is
		// made of the last maxInputs of them.
		if i >= len(owned)-d.maxInputs {
			balance.Spendable = saturatingAdd(
				balance.Spendable, n.value,
			)
		}
	}

	log.Debugf("Balance of address %d over %d owned notes: %v", index,
		len(owned), balance)

	return balance, nil
}

// PickNotes selects at most MaxInputNotes notes of the address whose total
// covers the amount. See pickCombination for the selection policy.
func (d *Driver) PickNotes(ctx context.Context, id keyring.Identifier,
	notes []ledger.Note, amount lux.Amount) ([]ledger.Note, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	owned, err := ownedNotes(id.Bytes(), notes)
	if err != nil {
		return nil, err
	}

	values := make([]lux.Amount, len(owned))
	for i, n := range owned {
		values[i] = n.value
	}

	indices, ok := pickCombination(values, amount, d.maxInputs)
	if !ok {
		str := fmt.Sprintf("no %d notes of %v cover %v", d.maxInputs,
			id, amount)
		return nil, driverError(ErrNoCombination, str, nil)
	}

	picked := make([]ledger.Note, 0, len(indices))
	for _, idx := range indices {
		picked = append(picked, owned[idx].note)
	}

	log.Debugf("Picked %d of %d notes of %v for %v", len(picked),
		len(owned), id, amount)

	return picked, nil
}
