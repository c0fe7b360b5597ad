// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific TreasuryError.
const (
	// ErrDatabase indicates an error with the underlying database.  When
	// this error code is set, the Err field of the TreasuryError will be
	// set to the underlying error returned from the database.
	ErrDatabase ErrorCode = iota

	// ErrWrongKind indicates that an account was used where an address
	// was expected or the other way around.
	ErrWrongKind

	// ErrInvalidBalance indicates an attempt to store a balance whose
	// spendable part exceeds its value, or that can not be represented by
	// the store.
	ErrInvalidBalance

	// ErrNoteConflict indicates an attempt to attribute a note that is
	// already owned by another address.
	ErrNoteConflict

	// ErrMalformedRecord indicates that a stored record could not be
	// decoded.
	ErrMalformedRecord
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrDatabase:        "ErrDatabase",
	ErrWrongKind:       "ErrWrongKind",
	ErrInvalidBalance:  "ErrInvalidBalance",
	ErrNoteConflict:    "ErrNoteConflict",
	ErrMalformedRecord: "ErrMalformedRecord",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// TreasuryError provides a single type for errors that can happen during
// treasury operation.
type TreasuryError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e TreasuryError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e TreasuryError) Unwrap() error {
	return e.Err
}

// treasuryError creates a TreasuryError given a set of arguments.
func treasuryError(c ErrorCode, desc string, err error) TreasuryError {
	return TreasuryError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether the error is a TreasuryError with a matching error
// code.
func IsError(err error, code ErrorCode) bool {
	var terr TreasuryError
	return errors.As(err, &terr) && terr.ErrorCode == code
}
