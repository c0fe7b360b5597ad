// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SeedSize is the size of a wallet seed.
const SeedSize = 64

// Seed is the secret every profile of a wallet is derived from.
type Seed [SeedSize]byte

// GenerateSeed returns a new random seed.
func GenerateSeed() (Seed, error) {
	var s Seed
	if _, err := rand.Read(s[:]); err != nil {
		return s, keyringError(ErrCrypto, "unable to read randomness",
			err)
	}

	return s, nil
}

// SeedFromHex decodes a hex encoded seed.
func SeedFromHex(s string) (Seed, error) {
	var seed Seed

	b, err := hex.DecodeString(s)
	if err != nil {
		return seed, err
	}
	defer clear(b)

	if len(b) != SeedSize {
		return seed, fmt.Errorf("seed must be %d bytes, got %d",
			SeedSize, len(b))
	}
	copy(seed[:], b)

	return seed, nil
}

// Zero clears the seed.
func (s *Seed) Zero() {
	clear(s[:])
}
