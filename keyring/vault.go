// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"bytes"
	"crypto/rand"

	"github.com/btcsuite/btcwallet/walletdb"
	"github.com/lightningnetwork/lnd/tlv"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

var (
	// namespaceKey is the top level bucket of the keyring.
	namespaceKey = []byte("keyring")

	// vaultKey is the key the sealed seed is stored under.
	vaultKey = []byte("seedvault")
)

const (
	typeVaultSalt   tlv.Type = 1
	typeVaultNonce  tlv.Type = 2
	typeVaultSealed tlv.Type = 3
	typeVaultN      tlv.Type = 4
	typeVaultR      tlv.Type = 5
	typeVaultP      tlv.Type = 6

	saltSize  = 32
	nonceSize = 24
	keySize   = 32
)

// ScryptOptions is used to hold the scrypt parameters needed when deriving
// the key that seals the seed.
type ScryptOptions struct {
	N, R, P int
}

var (
	// DefaultScryptOptions is the default options used with scrypt.
	DefaultScryptOptions = ScryptOptions{
		N: 1 << 15,
		R: 8,
		P: 1,
	}

	// FastScryptOptions are the scrypt options that should be used for
	// testing purposes only where speed is more important than security.
	FastScryptOptions = ScryptOptions{
		N: 16,
		R: 8,
		P: 1,
	}
)

// vaultRecord is the persisted form of a sealed seed.
type vaultRecord struct {
	salt [saltSize]byte

	// nonce is stored as a 32 byte field, only the first nonceSize
	// bytes are used.
	nonce [32]byte

	sealed  []byte
	n, r, p uint32
}

func (v *vaultRecord) records() []tlv.Record {
	return []tlv.Record{
		tlv.MakePrimitiveRecord(typeVaultSalt, &v.salt),
		tlv.MakePrimitiveRecord(typeVaultNonce, &v.nonce),
		tlv.MakePrimitiveRecord(typeVaultSealed, &v.sealed),
		tlv.MakePrimitiveRecord(typeVaultN, &v.n),
		tlv.MakePrimitiveRecord(typeVaultR, &v.r),
		tlv.MakePrimitiveRecord(typeVaultP, &v.p),
	}
}

func (v *vaultRecord) encode() ([]byte, error) {
	stream, err := tlv.NewStream(v.records()...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v *vaultRecord) decode(b []byte) error {
	stream, err := tlv.NewStream(v.records()...)
	if err != nil {
		return err
	}

	return stream.Decode(bytes.NewReader(b))
}

// sealingKey derives the secretbox key from the passphrase.
func (v *vaultRecord) sealingKey(passphrase []byte) (*[keySize]byte, error) {
	k, err := scrypt.Key(
		passphrase, v.salt[:], int(v.n), int(v.r), int(v.p), keySize,
	)
	if err != nil {
		return nil, keyringError(ErrCrypto, "unable to derive key", err)
	}
	defer clear(k)

	var key [keySize]byte
	copy(key[:], k)

	return &key, nil
}

// secretboxNonce returns the 24 byte prefix of the stored nonce.
func (v *vaultRecord) secretboxNonce() *[nonceSize]byte {
	var n [nonceSize]byte
	copy(n[:], v.nonce[:nonceSize])
	return &n
}

// CreateVault seals the seed with the passphrase and stores it in the
// keyring namespace of the database. ErrVaultExists is returned if a vault
// was already created.
func CreateVault(db walletdb.DB, seed Seed, passphrase []byte,
	opts *ScryptOptions) error {

	if opts == nil {
		opts = &DefaultScryptOptions
	}

	rec := vaultRecord{
		n: uint32(opts.N),
		r: uint32(opts.R),
		p: uint32(opts.P),
	}
	if _, err := rand.Read(rec.salt[:]); err != nil {
		return keyringError(ErrCrypto, "unable to read randomness", err)
	}
	if _, err := rand.Read(rec.nonce[:]); err != nil {
		return keyringError(ErrCrypto, "unable to read randomness", err)
	}

	key, err := rec.sealingKey(passphrase)
	if err != nil {
		return err
	}
	defer clear(key[:])

	rec.sealed = secretbox.Seal(nil, seed[:], rec.secretboxNonce(), key)

	value, err := rec.encode()
	if err != nil {
		return keyringError(ErrDatabase, "unable to encode vault", err)
	}

	err = walletdb.Update(db, func(tx walletdb.ReadWriteTx) error {
		ns, err := tx.CreateTopLevelBucket(namespaceKey)
		if err != nil {
			return keyringError(ErrDatabase,
				"unable to create keyring namespace", err)
		}

		if ns.Get(vaultKey) != nil {
			return keyringError(ErrVaultExists,
				"seed vault already exists", nil)
		}

		if err := ns.Put(vaultKey, value); err != nil {
			return keyringError(ErrDatabase,
				"unable to store seed vault", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Infof("Created seed vault")

	return nil
}

// OpenVault reads the seed vault from the database and opens it with the
// passphrase.
func OpenVault(db walletdb.DB, passphrase []byte) (Seed, error) {
	var (
		seed Seed
		rec  vaultRecord
	)

	err := walletdb.View(db, func(tx walletdb.ReadTx) error {
		ns := tx.ReadBucket(namespaceKey)
		if ns == nil {
			return keyringError(ErrNoVault, "no seed vault", nil)
		}

		value := ns.Get(vaultKey)
		if value == nil {
			return keyringError(ErrNoVault, "no seed vault", nil)
		}

		if err := rec.decode(value); err != nil {
			return keyringError(ErrDatabase,
				"unable to decode seed vault", err)
		}

		return nil
	})
	if err != nil {
		return seed, err
	}

	key, err := rec.sealingKey(passphrase)
	if err != nil {
		return seed, err
	}
	defer clear(key[:])

	plain, ok := secretbox.Open(nil, rec.sealed, rec.secretboxNonce(), key)
	if !ok {
		return seed, keyringError(ErrWrongPassphrase,
			"unable to open seed vault", nil)
	}
	defer clear(plain)

	if len(plain) != SeedSize {
		return seed, keyringError(ErrDatabase,
			"seed vault holds a seed of the wrong size", nil)
	}
	copy(seed[:], plain)

	return seed, nil
}

// VaultExists reports whether a seed vault is stored in the database.
func VaultExists(db walletdb.DB) (bool, error) {
	var exists bool
	err := walletdb.View(db, func(tx walletdb.ReadTx) error {
		ns := tx.ReadBucket(namespaceKey)
		exists = ns != nil && ns.Get(vaultKey) != nil
		return nil
	})

	return exists, err
}
