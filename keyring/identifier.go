// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import "github.com/btcsuite/btcd/btcutil/base58"

// Identifier names an account or an address. Key is the base58 text of the
// public key and Index is the derivation index of the profile it belongs
// to. Identifiers are plain values and are only ever used as lookup keys.
type Identifier struct {
	Key   string
	Index uint32
}

// NewIdentifier encodes a raw public key into an Identifier.
func NewIdentifier(key []byte, index uint32) Identifier {
	return Identifier{Key: base58.Encode(key), Index: index}
}

// String returns the base58 text of the identifier.
func (id Identifier) String() string {
	return id.Key
}

// Kind classifies the identifier.
func (id Identifier) Kind() Kind {
	return Classify(id.Key)
}

// Bytes returns the raw public key. An empty slice is returned for text that
// is not valid base58.
func (id Identifier) Bytes() []byte {
	return base58.Decode(id.Key)
}
