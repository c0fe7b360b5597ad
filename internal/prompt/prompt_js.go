// Copyright (c) 2015-2021 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prompt

import (
	"bufio"
	"errors"

	"github.com/btcsuite/shieldwallet/keyring"
)

// errNoTerminal is returned by every prompt in WebAssembly builds.
var errNoTerminal = errors.New("prompt not supported in WebAssembly")

func PassPrompt(_ *bufio.Reader, _ string, _ bool) ([]byte, error) {
	return nil, errNoTerminal
}

func Passphrase(_ *bufio.Reader) ([]byte, error) {
	return nil, errNoTerminal
}

func NewPassphrase(_ *bufio.Reader) ([]byte, error) {
	return nil, errNoTerminal
}

func Seed(_ *bufio.Reader) (keyring.Seed, error) {
	return keyring.Seed{}, errNoTerminal
}
