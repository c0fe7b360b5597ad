// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
)

// Statements shared by PostgreSQL and SQLite. Both accept the $n placeholder
// syntax and the ON CONFLICT upsert clause.
const (
	createAccountsSQL = `
		CREATE TABLE IF NOT EXISTS accounts (
			account_key TEXT PRIMARY KEY,
			value BIGINT NOT NULL,
			spendable BIGINT NOT NULL
		);`

	createNotesSQL = `
		CREATE TABLE IF NOT EXISTS notes (
			nullifier TEXT PRIMARY KEY,
			address_key TEXT NOT NULL,
			data BYTEA NOT NULL
		);`

	createNotesIndexSQL = `
		CREATE INDEX IF NOT EXISTS notes_address_key
		ON notes (address_key);`

	selectAccountSQL = `
		SELECT value, spendable FROM accounts WHERE account_key = $1`

	upsertAccountSQL = `
		INSERT INTO accounts (account_key, value, spendable)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_key) DO UPDATE
		SET value = excluded.value, spendable = excluded.spendable`

	selectNotesSQL = `
		SELECT nullifier, data FROM notes WHERE address_key = $1
		ORDER BY nullifier`

	selectNoteOwnerSQL = `
		SELECT address_key FROM notes WHERE nullifier = $1`

	insertNoteSQL = `
		INSERT INTO notes (nullifier, address_key, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (nullifier) DO NOTHING`

	deleteNoteSQL = `DELETE FROM notes WHERE nullifier = $1`
)

// SQLStore is a Store kept in a SQL database. It is used with PostgreSQL
// through the pgx driver and with SQLite through the modernc driver.
//
// Amounts are stored as signed 64 bit integers, so balances above
// math.MaxInt64 LUX are rejected with ErrInvalidBalance.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore returns a treasury backed by the passed database handle. The
// tables must exist, see CreateTables.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// CreateTables creates the treasury tables if they do not exist yet.
func (s *SQLStore) CreateTables(ctx context.Context) error {
	for _, stmt := range []string{
		createAccountsSQL, createNotesSQL, createNotesIndexSQL,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return treasuryError(ErrDatabase,
				"unable to create treasury tables", err)
		}
	}

	return nil
}

// nullifierText is the textual key a nullifier is stored under. The hex
// form of the raw bytes keeps the ORDER BY clause in canonical note order.
func nullifierText(n ledger.Nullifier) string {
	return hex.EncodeToString(n[:])
}

// Account returns the balance of a transparent account.
func (s *SQLStore) Account(ctx context.Context,
	id keyring.Identifier) (ledger.Balance, error) {

	if err := checkKind(id, keyring.KindAccount); err != nil {
		return ledger.Balance{}, err
	}

	var value, spendable int64
	err := s.db.QueryRowContext(ctx, selectAccountSQL, id.Key).Scan(
		&value, &spendable,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ledger.Balance{}, nil

	case err != nil:
		return ledger.Balance{}, treasuryError(ErrDatabase,
			"unable to query account", err)
	}

	if value < 0 || spendable < 0 {
		str := fmt.Sprintf("negative balance stored for %v", id)
		return ledger.Balance{}, treasuryError(ErrMalformedRecord, str,
			nil)
	}

	return ledger.Balance{
		Value:     lux.Amount(value),
		Spendable: lux.Amount(spendable),
	}, nil
}

// Address returns a snapshot of the unspent notes of a shielded address.
func (s *SQLStore) Address(ctx context.Context,
	id keyring.Identifier) ([]ledger.Note, error) {

	if err := checkKind(id, keyring.KindAddress); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectNotesSQL, id.Key)
	if err != nil {
		return nil, treasuryError(ErrDatabase, "unable to query notes",
			err)
	}
	defer rows.Close()

	var notes []ledger.Note
	for rows.Next() {
		var (
			key  string
			note ledger.Note
		)
		if err := rows.Scan(&key, &note.Data); err != nil {
			return nil, treasuryError(ErrDatabase,
				"unable to scan note", err)
		}

		raw, err := hex.DecodeString(key)
		if err != nil || len(raw) != len(note.Nullifier) {
			str := fmt.Sprintf("malformed nullifier %q", key)
			return nil, treasuryError(ErrMalformedRecord, str, err)
		}
		copy(note.Nullifier[:], raw)

		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, treasuryError(ErrDatabase, "unable to read notes",
			err)
	}

	return notes, nil
}

// SetAccount records the balance of a transparent account.
func (s *SQLStore) SetAccount(ctx context.Context, id keyring.Identifier,
	balance ledger.Balance) error {

	if err := checkKind(id, keyring.KindAccount); err != nil {
		return err
	}
	if err := checkBalance(balance); err != nil {
		return err
	}
	if balance.Value > math.MaxInt64 {
		str := fmt.Sprintf("balance %v exceeds the storable maximum",
			balance)
		return treasuryError(ErrInvalidBalance, str, nil)
	}

	_, err := s.db.ExecContext(
		ctx, upsertAccountSQL, id.Key, int64(balance.Value),
		int64(balance.Spendable),
	)
	if err != nil {
		return treasuryError(ErrDatabase, "unable to store balance",
			err)
	}

	return nil
}

// InsertNotes attributes notes to a shielded address. All notes are
// inserted in a single database transaction.
func (s *SQLStore) InsertNotes(ctx context.Context, id keyring.Identifier,
	notes ...ledger.Note) error {

	if err := checkKind(id, keyring.KindAddress); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, note := range notes {
			key := nullifierText(note.Nullifier)

			var owner string
			err := tx.QueryRowContext(
				ctx, selectNoteOwnerSQL, key,
			).Scan(&owner)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				// New note.

			case err != nil:
				return treasuryError(ErrDatabase,
					"unable to query note owner", err)

			case owner != id.Key:
				str := fmt.Sprintf("note %v already belongs "+
					"to %v", note.Nullifier, owner)
				return treasuryError(ErrNoteConflict, str, nil)
			}

			_, err = tx.ExecContext(
				ctx, insertNoteSQL, key, id.Key, note.Data,
			)
			if err != nil {
				return treasuryError(ErrDatabase,
					"unable to store note", err)
			}
		}

		return nil
	})
}

// SpendNotes removes the notes with the given nullifiers.
func (s *SQLStore) SpendNotes(ctx context.Context,
	nullifiers ...ledger.Nullifier) (int, error) {

	var removed int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, nullifier := range nullifiers {
			res, err := tx.ExecContext(
				ctx, deleteNoteSQL, nullifierText(nullifier),
			)
			if err != nil {
				return treasuryError(ErrDatabase,
					"unable to delete note", err)
			}

			n, err := res.RowsAffected()
			if err != nil {
				return treasuryError(ErrDatabase,
					"unable to count deleted notes", err)
			}
			removed += int(n)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// withTx runs f in a database transaction, committing it if f succeeds and
// rolling it back otherwise.
func (s *SQLStore) withTx(ctx context.Context, f func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return treasuryError(ErrDatabase, "unable to begin transaction",
			err)
	}

	if err := f(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return treasuryError(ErrDatabase, "unable to commit", err)
	}

	return nil
}
