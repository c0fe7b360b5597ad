// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bookkeeper

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrUnknownIdentifierType indicates that an identifier is neither an
	// account nor an address.
	ErrUnknownIdentifierType ErrorCode = iota

	// ErrInsufficientFunds indicates that the spendable balance of the
	// source does not cover the requested amount.
	ErrInsufficientFunds

	// ErrInvalidProfile indicates that a profile is nil or was not
	// produced by a profile generator.
	ErrInvalidProfile

	// ErrNotShielded indicates that note selection was requested for a
	// transparent account.
	ErrNotShielded

	// ErrIncompleteTransfer indicates that a transfer was built before
	// its destination was set.
	ErrIncompleteTransfer

	// ErrZeroAmount indicates that a transfer of nothing was requested.
	ErrZeroAmount
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnknownIdentifierType: "ErrUnknownIdentifierType",
	ErrInsufficientFunds:     "ErrInsufficientFunds",
	ErrInvalidProfile:        "ErrInvalidProfile",
	ErrNotShielded:           "ErrNotShielded",
	ErrIncompleteTransfer:    "ErrIncompleteTransfer",
	ErrZeroAmount:            "ErrZeroAmount",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors raised by the bookkeeper itself.
// Errors of the treasury, the profile generator and the protocol driver are
// returned as they are.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// bookError creates an Error given a set of arguments.
func bookError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether the error is an Error with a matching error code.
func IsError(err error, code ErrorCode) bool {
	var berr Error
	return errors.As(err, &berr) && berr.ErrorCode == code
}
