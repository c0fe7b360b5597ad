// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	// AccountKeySize is the size of the public key behind a transparent
	// account.
	AccountKeySize = 96

	// AddressKeySize is the size of the public key behind a shielded
	// address.
	AddressKeySize = 64
)

// Kind tags an identifier with the balance model it belongs to.
type Kind uint8

const (
	// KindUnknown is the kind of identifiers that are neither accounts nor
	// addresses.
	KindUnknown Kind = iota

	// KindAccount is the kind of transparent, account based identifiers.
	KindAccount

	// KindAddress is the kind of shielded, note based identifiers.
	KindAddress
)

// String returns the name used for the kind on the command line and in logs.
func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindAddress:
		return "address"
	default:
		return "unknown"
	}
}

// ParseKind returns the Kind with the given name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "account":
		return KindAccount, nil
	case "address":
		return KindAddress, nil
	}

	str := fmt.Sprintf("%q is neither account nor address", s)
	return KindUnknown, keyringError(ErrUnknownKind, str, nil)
}

// Classify determines the kind of an identifier from its textual form. The
// text is the base58 encoding of a public key and the key size tells the two
// models apart.
func Classify(text string) Kind {
	switch len(base58.Decode(text)) {
	case AccountKeySize:
		return KindAccount
	case AddressKeySize:
		return KindAddress
	default:
		return KindUnknown
	}
}
