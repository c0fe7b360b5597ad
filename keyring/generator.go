// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Domain separation tags for the two key kinds.
var (
	accountDomain = []byte("account")
	addressDomain = []byte("address")
)

// Generator derives profiles from a seed. The same seed always yields the
// same identifiers for a given index.
type Generator struct {
	mu   sync.Mutex
	seed Seed
	next uint32
}

// NewGenerator returns a generator over the passed seed. The generator keeps
// its own copy of the seed.
func NewGenerator(seed Seed) *Generator {
	return &Generator{seed: seed}
}

// deriveKey expands the seed into a key of the given size for the domain and
// index.
func (g *Generator) deriveKey(domain []byte, index uint32,
	size int) ([]byte, error) {

	xof, err := blake2b.NewXOF(uint32(size), g.seed[:])
	if err != nil {
		return nil, keyringError(ErrCrypto, "unable to create XOF", err)
	}

	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], index)

	// Writes to a blake2b XOF only fail after reading started.
	_, _ = xof.Write(domain)
	_, _ = xof.Write(idx[:])

	key := make([]byte, size)
	if _, err := xof.Read(key); err != nil {
		return nil, keyringError(ErrCrypto, "unable to read XOF", err)
	}

	return key, nil
}

// Derive returns the profile at the given index.
func (g *Generator) Derive(index uint32) (*Profile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.derive(index)
}

// derive returns the profile at the given index. The caller must hold mu.
func (g *Generator) derive(index uint32) (*Profile, error) {
	accountKey, err := g.deriveKey(accountDomain, index, AccountKeySize)
	if err != nil {
		return nil, err
	}
	addressKey, err := g.deriveKey(addressDomain, index, AddressKeySize)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		index:   index,
		account: NewIdentifier(accountKey, index),
		address: NewIdentifier(addressKey, index),
		derived: true,
	}

	log.Tracef("Derived profile %d: account=%v address=%v", index,
		p.account, p.address)

	return p, nil
}

// Default returns the profile at index 0.
func (g *Generator) Default() (*Profile, error) {
	return g.Derive(0)
}

// Next returns the profile following the last one returned by Next,
// starting at index 0.
func (g *Generator) Next() (*Profile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.derive(g.next)
	if err != nil {
		return nil, err
	}
	g.next++

	return p, nil
}

// AddressKey returns the raw address public key at the given index.
func (g *Generator) AddressKey(index uint32) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.deriveKey(addressDomain, index, AddressKeySize)
}

// TypeOf classifies the identifier.
func (g *Generator) TypeOf(id Identifier) Kind {
	return Classify(id.Key)
}

// SeedFrom returns the seed the identifier was derived from. The identifier
// must be the account or the address this generator derives at id.Index,
// otherwise ErrForeignIdentifier is returned.
func (g *Generator) SeedFrom(_ context.Context, id Identifier) (Seed, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.derive(id.Index)
	if err != nil {
		return Seed{}, err
	}

	if id.Key != p.account.Key && id.Key != p.address.Key {
		str := fmt.Sprintf("identifier %v is not derived at index %d",
			id, id.Index)
		return Seed{}, keyringError(ErrForeignIdentifier, str, nil)
	}

	return g.seed, nil
}

// Zero clears the seed held by the generator. The generator must not be used
// afterwards.
func (g *Generator) Zero() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seed.Zero()
}
