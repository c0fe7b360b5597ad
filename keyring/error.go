// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific KeyringError.
const (
	// ErrDatabase indicates an error with the underlying database. When
	// this error code is set, the Err field of the KeyringError will be
	// set to the underlying error returned from the database.
	ErrDatabase ErrorCode = iota

	// ErrForeignIdentifier indicates that an identifier was not derived
	// by the generator it was presented to.
	ErrForeignIdentifier

	// ErrMalformedProfile indicates that a profile was not produced by a
	// generator or holds identifiers of the wrong kind.
	ErrMalformedProfile

	// ErrUnknownKind indicates that a kind name is neither "account" nor
	// "address".
	ErrUnknownKind

	// ErrNoVault indicates that no seed vault exists in the database.
	ErrNoVault

	// ErrVaultExists indicates that a seed vault is already stored in the
	// database.
	ErrVaultExists

	// ErrWrongPassphrase indicates that the seed vault could not be opened
	// with the provided passphrase.
	ErrWrongPassphrase

	// ErrCrypto indicates a failure of a cryptographic primitive.
	ErrCrypto
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrDatabase:          "ErrDatabase",
	ErrForeignIdentifier: "ErrForeignIdentifier",
	ErrMalformedProfile:  "ErrMalformedProfile",
	ErrUnknownKind:       "ErrUnknownKind",
	ErrNoVault:           "ErrNoVault",
	ErrVaultExists:       "ErrVaultExists",
	ErrWrongPassphrase:   "ErrWrongPassphrase",
	ErrCrypto:            "ErrCrypto",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// KeyringError provides a single type for errors that can happen during
// keyring operation.
type KeyringError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e KeyringError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e KeyringError) Unwrap() error {
	return e.Err
}

// keyringError creates a KeyringError given a set of arguments.
func keyringError(c ErrorCode, desc string, err error) KeyringError {
	return KeyringError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether the error is a KeyringError with a matching error
// code.
func IsError(err error, code ErrorCode) bool {
	var kerr KeyringError
	return errors.As(err, &kerr) && kerr.ErrorCode == code
}
