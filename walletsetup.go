// Copyright (c) 2014-2015 The btcsuite developers
// Copyright (c) 2015 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcwallet/walletdb"
	_ "github.com/btcsuite/btcwallet/walletdb/bdb"
	"github.com/btcsuite/shieldwallet/internal/cfgutil"
	"github.com/btcsuite/shieldwallet/internal/prompt"
	"github.com/btcsuite/shieldwallet/keyring"
)

// errWalletExists is returned by createWallet when the network directory
// already holds a wallet.
var errWalletExists = errors.New("the wallet already exists")

// errNoWallet is returned when a command needs a wallet that was never
// created.
var errNoWallet = errors.New("the wallet does not exist -- run the create " +
	"command first")

// vaultScryptOptions are the key derivation parameters of new wallets. Nil
// selects the keyring defaults.
var vaultScryptOptions *keyring.ScryptOptions

// createWallet prompts the user for the passphrase and seed of a new wallet,
// unless they were passed as options, and seals the seed in a new wallet
// database.
func createWallet(cfg *config) error {
	dbPath := cfg.dbPath()
	exists, err := cfgutil.FileExists(dbPath)
	if err != nil {
		return err
	}
	if exists {
		return errWalletExists
	}

	reader := bufio.NewReader(os.Stdin)

	var passphrase []byte
	if cfg.WalletPass != "" {
		passphrase = []byte(cfg.WalletPass)
	} else {
		passphrase, err = prompt.NewPassphrase(reader)
		if err != nil {
			return err
		}
	}
	defer clear(passphrase)

	var seed keyring.Seed
	if cfg.Seed != "" {
		seed, err = keyring.SeedFromHex(cfg.Seed)
	} else {
		seed, err = prompt.Seed(reader)
	}
	if err != nil {
		return err
	}
	defer seed.Zero()

	if err := cfgutil.CheckCreateDir(cfg.netDir()); err != nil {
		return err
	}

	fmt.Println("Creating the wallet...")

	db, err := walletdb.Create("bdb", dbPath, true, cfg.DBTimeout, false)
	if err != nil {
		return err
	}

	err = keyring.CreateVault(db, seed, passphrase, vaultScryptOptions)
	db.Close()
	if err != nil {
		if errOS := os.Remove(dbPath); errOS != nil {
			fmt.Println(errOS)
		}
		return err
	}

	fmt.Println("The wallet has been created successfully.")
	return nil
}

// openWallet opens the wallet database of the active network and unseals its
// seed with the configured or prompted passphrase. The caller owns both the
// database and the seed.
func openWallet(cfg *config) (walletdb.DB, keyring.Seed, error) {
	var seed keyring.Seed

	dbPath := cfg.dbPath()
	exists, err := cfgutil.FileExists(dbPath)
	if err != nil {
		return nil, seed, err
	}
	if !exists {
		return nil, seed, errNoWallet
	}

	db, err := walletdb.Open("bdb", dbPath, true, cfg.DBTimeout, false)
	if err != nil {
		return nil, seed, err
	}

	var passphrase []byte
	if cfg.WalletPass != "" {
		passphrase = []byte(cfg.WalletPass)
	} else {
		passphrase, err = prompt.Passphrase(bufio.NewReader(os.Stdin))
		if err != nil {
			db.Close()
			return nil, seed, err
		}
	}
	defer clear(passphrase)

	seed, err = keyring.OpenVault(db, passphrase)
	if err != nil {
		db.Close()
		return nil, seed, err
	}

	log.Debugf("Opened wallet %s", dbPath)

	return db, seed, nil
}
