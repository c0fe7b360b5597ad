// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import "fmt"

// Profile groups the transparent account and the shielded address derived
// at one index. Profiles are only created by a Generator and never change
// afterwards.
type Profile struct {
	index   uint32
	account Identifier
	address Identifier

	// derived is set by the generator. A zero Profile is malformed.
	derived bool
}

// Index returns the derivation index of the profile.
func (p *Profile) Index() uint32 {
	return p.index
}

// Account returns the transparent account of the profile.
func (p *Profile) Account() Identifier {
	return p.account
}

// Address returns the shielded address of the profile.
func (p *Profile) Address() Identifier {
	return p.address
}

// Identifier returns the identifier of the profile for the given kind.
func (p *Profile) Identifier(kind Kind) (Identifier, bool) {
	switch kind {
	case KindAccount:
		return p.account, true
	case KindAddress:
		return p.address, true
	default:
		return Identifier{}, false
	}
}

// Validate returns an ErrMalformedProfile error if the profile was not
// produced by a generator or holds identifiers of the wrong kind.
func (p *Profile) Validate() error {
	switch {
	case p == nil:
		return keyringError(ErrMalformedProfile, "nil profile", nil)

	case !p.derived:
		return keyringError(ErrMalformedProfile,
			"profile was not derived by a generator", nil)

	case p.account.Kind() != KindAccount:
		str := fmt.Sprintf("profile account %q is not an account",
			p.account)
		return keyringError(ErrMalformedProfile, str, nil)

	case p.address.Kind() != KindAddress:
		str := fmt.Sprintf("profile address %q is not an address",
			p.address)
		return keyringError(ErrMalformedProfile, str, nil)
	}

	return nil
}

// String returns a short description of the profile.
func (p *Profile) String() string {
	return fmt.Sprintf("profile %d", p.index)
}
