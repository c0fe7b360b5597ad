// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/btcsuite/shieldwallet/bookkeeper"
	"github.com/btcsuite/shieldwallet/pkg/lux"
)

var activeNet = &mainNetParams

// params is used to group parameters for the networks a wallet can track.
// Wallets of different networks live in separate data directories.
type params struct {
	// Name is the name of the network and of its data directory.
	Name string

	// GasPrice is the gas price used when none is configured.
	GasPrice lux.Amount

	// PostgresPort is the port assumed for PostgreSQL DSNs without one.
	PostgresPort string
}

// mainNetParams contains parameters specific to the main network.
var mainNetParams = params{
	Name:         "mainnet",
	GasPrice:     bookkeeper.DefaultGasPrice,
	PostgresPort: "5432",
}

// testNetParams contains parameters specific to the test network.
var testNetParams = params{
	Name:         "testnet",
	GasPrice:     bookkeeper.DefaultGasPrice,
	PostgresPort: "5432",
}

// devNetParams contains parameters specific to a local development network.
var devNetParams = params{
	Name:         "devnet",
	GasPrice:     bookkeeper.DefaultGasPrice,
	PostgresPort: "5432",
}
