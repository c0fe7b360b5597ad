// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific DriverError.
const (
	// ErrMalformedNote indicates that a note could not be decoded.
	ErrMalformedNote ErrorCode = iota

	// ErrNoCombination indicates that no set of at most MaxInputNotes
	// notes covers the requested amount.
	ErrNoCombination

	// ErrDerivation indicates that the address owning the notes could
	// not be derived.
	ErrDerivation
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrMalformedNote: "ErrMalformedNote",
	ErrNoCombination: "ErrNoCombination",
	ErrDerivation:    "ErrDerivation",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// DriverError provides a single type for errors that can happen while the
// driver processes notes.
type DriverError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e DriverError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e DriverError) Unwrap() error {
	return e.Err
}

// driverError creates a DriverError given a set of arguments.
func driverError(c ErrorCode, desc string, err error) DriverError {
	return DriverError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether the error is a DriverError with a matching error
// code.
func IsError(err error, code ErrorCode) bool {
	var derr DriverError
	return errors.As(err, &derr) && derr.ErrorCode == code
}
