// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
)

// Memory is a Store that keeps everything in memory.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]ledger.Balance
	notes    map[string]map[ledger.Nullifier][]byte
	owners   map[ledger.Nullifier]string
}

// NewMemory returns an empty in-memory treasury.
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]ledger.Balance),
		notes:    make(map[string]map[ledger.Nullifier][]byte),
		owners:   make(map[ledger.Nullifier]string),
	}
}

// Account returns the balance of a transparent account.
func (m *Memory) Account(_ context.Context,
	id keyring.Identifier) (ledger.Balance, error) {

	if err := checkKind(id, keyring.KindAccount); err != nil {
		return ledger.Balance{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.accounts[id.Key], nil
}

// Address returns a snapshot of the unspent notes of a shielded address.
func (m *Memory) Address(_ context.Context,
	id keyring.Identifier) ([]ledger.Note, error) {

	if err := checkKind(id, keyring.KindAddress); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	owned := m.notes[id.Key]
	notes := make([]ledger.Note, 0, len(owned))
	for nullifier, data := range owned {
		note := ledger.Note{Nullifier: nullifier, Data: data}
		notes = append(notes, note.Copy())
	}
	ledger.SortNotes(notes)

	return notes, nil
}

// SetAccount records the balance of a transparent account.
func (m *Memory) SetAccount(_ context.Context, id keyring.Identifier,
	balance ledger.Balance) error {

	if err := checkKind(id, keyring.KindAccount); err != nil {
		return err
	}
	if err := checkBalance(balance); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts[id.Key] = balance

	return nil
}

// InsertNotes attributes notes to a shielded address.
func (m *Memory) InsertNotes(_ context.Context, id keyring.Identifier,
	notes ...ledger.Note) error {

	if err := checkKind(id, keyring.KindAddress); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check every note first so a conflict leaves the store untouched.
	for _, note := range notes {
		owner, ok := m.owners[note.Nullifier]
		if ok && owner != id.Key {
			str := fmt.Sprintf("note %v already belongs to %v",
				note.Nullifier, owner)
			return treasuryError(ErrNoteConflict, str, nil)
		}
	}

	owned, ok := m.notes[id.Key]
	if !ok {
		owned = make(map[ledger.Nullifier][]byte)
		m.notes[id.Key] = owned
	}
	for _, note := range notes {
		// The first copy of a note is kept.
		if _, ok := owned[note.Nullifier]; ok {
			continue
		}

		owned[note.Nullifier] = bytes.Clone(note.Data)
		m.owners[note.Nullifier] = id.Key
	}

	return nil
}

// SpendNotes removes the notes with the given nullifiers.
func (m *Memory) SpendNotes(_ context.Context,
	nullifiers ...ledger.Nullifier) (int, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int
	for _, nullifier := range nullifiers {
		owner, ok := m.owners[nullifier]
		if !ok {
			continue
		}

		delete(m.owners, nullifier)
		delete(m.notes[owner], nullifier)
		if len(m.notes[owner]) == 0 {
			delete(m.notes, owner)
		}
		removed++
	}

	return removed, nil
}
