// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger defines the records shared by the wallet bookkeeping
// packages: balances and the opaque notes owned by shielded addresses.
package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/shieldwallet/pkg/lux"
)

// Balance is the balance attributed to an account or an address.
//
// Value is the total of the attributed funds while Spendable is the part of
// it that can back a single new spend. Spendable never exceeds Value.
type Balance struct {
	Value     lux.Amount
	Spendable lux.Amount
}

// Valid reports whether the balance respects Spendable <= Value.
func (b Balance) Valid() bool {
	return b.Spendable <= b.Value
}

// String returns a human-readable representation of the balance.
func (b Balance) String() string {
	return fmt.Sprintf("value=%v spendable=%v", b.Value, b.Spendable)
}

// Nullifier uniquely identifies a note. Once a nullifier is published on
// chain the note it belongs to is spent.
type Nullifier = chainhash.Hash

// Note is an unspent output owned by a shielded address. The bookkeeper
// never looks into Data, it is only interpreted by the protocol driver.
type Note struct {
	Nullifier Nullifier
	Data      []byte
}

// Copy returns a deep copy of the note.
func (n Note) Copy() Note {
	return Note{
		Nullifier: n.Nullifier,
		Data:      bytes.Clone(n.Data),
	}
}

// Nullifiers returns the nullifiers of the passed notes, in order.
func Nullifiers(notes []Note) []Nullifier {
	nullifiers := make([]Nullifier, 0, len(notes))
	for _, n := range notes {
		nullifiers = append(nullifiers, n.Nullifier)
	}

	return nullifiers
}

// SortNotes orders notes by nullifier so that note sets have a canonical
// order regardless of the store they were read from.
func SortNotes(notes []Note) {
	sort.Slice(notes, func(i, j int) bool {
		return bytes.Compare(
			notes[i].Nullifier[:], notes[j].Nullifier[:],
		) < 0
	})
}
