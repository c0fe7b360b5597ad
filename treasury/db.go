// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcwallet/walletdb"
	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
)

// Key names for the treasury namespace.
//
// The namespace is laid out as follows:
//
//	treasury
//	├── accounts: account key -> TLV encoded balance
//	├── notes
//	│   └── <address key>: nullifier -> note data
//	└── owners: nullifier -> address key
var (
	namespaceKey = []byte("treasury")

	bucketAccounts = []byte("accounts")
	bucketNotes    = []byte("notes")
	bucketOwners   = []byte("owners")
)

// DBStore is a Store persisted in a walletdb database.
type DBStore struct {
	db walletdb.DB
}

// NewDBStore returns a treasury stored in the passed database, creating its
// namespace if needed.
func NewDBStore(db walletdb.DB) (*DBStore, error) {
	err := walletdb.Update(db, func(tx walletdb.ReadWriteTx) error {
		ns, err := tx.CreateTopLevelBucket(namespaceKey)
		if err != nil {
			return err
		}

		for _, key := range [][]byte{
			bucketAccounts, bucketNotes, bucketOwners,
		} {
			if _, err := ns.CreateBucketIfNotExists(key); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, treasuryError(ErrDatabase,
			"unable to create treasury namespace", err)
	}

	return &DBStore{db: db}, nil
}

// DropDBStore deletes the treasury namespace and everything cached in it.
// The next NewDBStore starts from an empty treasury.
func DropDBStore(db walletdb.DB) error {
	err := walletdb.Update(db, func(tx walletdb.ReadWriteTx) error {
		err := tx.DeleteTopLevelBucket(namespaceKey)
		if err != nil && !errors.Is(err, walletdb.ErrBucketNotFound) {
			return err
		}

		return nil
	})
	if err != nil {
		return treasuryError(ErrDatabase,
			"unable to drop treasury namespace", err)
	}

	log.Infof("Dropped treasury namespace")

	return nil
}

// readNamespace returns the treasury namespace of a read transaction.
func readNamespace(tx walletdb.ReadTx) (walletdb.ReadBucket, error) {
	ns := tx.ReadBucket(namespaceKey)
	if ns == nil {
		return nil, treasuryError(ErrDatabase,
			"treasury namespace does not exist", nil)
	}

	return ns, nil
}

// writeNamespace returns the treasury namespace of a write transaction.
func writeNamespace(tx walletdb.ReadWriteTx) (walletdb.ReadWriteBucket,
	error) {

	ns := tx.ReadWriteBucket(namespaceKey)
	if ns == nil {
		return nil, treasuryError(ErrDatabase,
			"treasury namespace does not exist", nil)
	}

	return ns, nil
}

// dbError wraps errors of the database layer in an ErrDatabase error.
// Errors that already are TreasuryErrors are returned unchanged.
func dbError(desc string, err error) error {
	if err == nil {
		return nil
	}

	var terr TreasuryError
	if errors.As(err, &terr) {
		return err
	}

	return treasuryError(ErrDatabase, desc, err)
}

// Account returns the balance of a transparent account.
func (s *DBStore) Account(_ context.Context,
	id keyring.Identifier) (ledger.Balance, error) {

	if err := checkKind(id, keyring.KindAccount); err != nil {
		return ledger.Balance{}, err
	}

	var balance ledger.Balance
	err := walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		ns, err := readNamespace(tx)
		if err != nil {
			return err
		}

		v := ns.NestedReadBucket(bucketAccounts).Get(id.Bytes())
		if v == nil {
			return nil
		}

		balance, err = deserializeBalance(v)
		return err
	})
	if err != nil {
		return ledger.Balance{}, dbError("unable to read balance", err)
	}

	return balance, nil
}

// Address returns a snapshot of the unspent notes of a shielded address.
// The snapshot is read within a single database transaction.
func (s *DBStore) Address(_ context.Context,
	id keyring.Identifier) ([]ledger.Note, error) {

	if err := checkKind(id, keyring.KindAddress); err != nil {
		return nil, err
	}

	var notes []ledger.Note
	err := walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		ns, err := readNamespace(tx)
		if err != nil {
			return err
		}

		owned := ns.NestedReadBucket(bucketNotes).
			NestedReadBucket(id.Bytes())
		if owned == nil {
			return nil
		}

		return owned.ForEach(func(k, v []byte) error {
			var note ledger.Note
			if len(k) != len(note.Nullifier) {
				str := fmt.Sprintf("nullifier of %d bytes",
					len(k))
				return treasuryError(ErrMalformedRecord, str,
					nil)
			}
			copy(note.Nullifier[:], k)
			note.Data = bytes.Clone(v)

			notes = append(notes, note)

			return nil
		})
	})
	if err != nil {
		return nil, dbError("unable to read notes", err)
	}

	// Bolt iterates keys in byte order which already matches the
	// canonical note order.
	return notes, nil
}

// SetAccount records the balance of a transparent account.
func (s *DBStore) SetAccount(_ context.Context, id keyring.Identifier,
	balance ledger.Balance) error {

	if err := checkKind(id, keyring.KindAccount); err != nil {
		return err
	}
	if err := checkBalance(balance); err != nil {
		return err
	}

	v, err := serializeBalance(balance)
	if err != nil {
		return treasuryError(ErrDatabase, "unable to encode balance",
			err)
	}

	err = walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		ns, err := writeNamespace(tx)
		if err != nil {
			return err
		}

		accounts := ns.NestedReadWriteBucket(bucketAccounts)
		return accounts.Put(id.Bytes(), v)
	})

	return dbError("unable to store balance", err)
}

// InsertNotes attributes notes to a shielded address.
func (s *DBStore) InsertNotes(_ context.Context, id keyring.Identifier,
	notes ...ledger.Note) error {

	if err := checkKind(id, keyring.KindAddress); err != nil {
		return err
	}
	addrKey := id.Bytes()

	err := walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		ns, err := writeNamespace(tx)
		if err != nil {
			return err
		}
		owners := ns.NestedReadWriteBucket(bucketOwners)

		owned, err := ns.NestedReadWriteBucket(bucketNotes).
			CreateBucketIfNotExists(addrKey)
		if err != nil {
			return treasuryError(ErrDatabase,
				"unable to create note bucket", err)
		}

		var inserted int
		for _, note := range notes {
			owner := owners.Get(note.Nullifier[:])
			switch {
			case owner == nil:

			// The first copy of a note is kept.
			case bytes.Equal(owner, addrKey):
				continue

			default:
				str := fmt.Sprintf("note %v already belongs "+
					"to another address", note.Nullifier)
				return treasuryError(ErrNoteConflict, str, nil)
			}

			err := owned.Put(note.Nullifier[:], note.Data)
			if err != nil {
				return treasuryError(ErrDatabase,
					"unable to store note", err)
			}
			err = owners.Put(note.Nullifier[:], addrKey)
			if err != nil {
				return treasuryError(ErrDatabase,
					"unable to store note owner", err)
			}
			inserted++
		}

		log.Debugf("Inserted %d %s for %v", inserted,
			pickNoun(inserted, "note", "notes"), id)

		return nil
	})

	return dbError("unable to store notes", err)
}

// SpendNotes removes the notes with the given nullifiers.
func (s *DBStore) SpendNotes(_ context.Context,
	nullifiers ...ledger.Nullifier) (int, error) {

	var removed int
	err := walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		ns, err := writeNamespace(tx)
		if err != nil {
			return err
		}
		owners := ns.NestedReadWriteBucket(bucketOwners)
		notes := ns.NestedReadWriteBucket(bucketNotes)

		for _, nullifier := range nullifiers {
			owner := owners.Get(nullifier[:])
			if owner == nil {
				continue
			}

			owned := notes.NestedReadWriteBucket(owner)
			if owned != nil {
				err := owned.Delete(nullifier[:])
				if err != nil {
					return treasuryError(ErrDatabase,
						"unable to delete note", err)
				}
			}

			if err := owners.Delete(nullifier[:]); err != nil {
				return treasuryError(ErrDatabase,
					"unable to delete note owner", err)
			}
			removed++
		}

		return nil
	})
	if err != nil {
		return 0, dbError("unable to spend notes", err)
	}

	return removed, nil
}

// pickNoun returns the singular or plural form of a noun depending
// on the count n.
func pickNoun(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
