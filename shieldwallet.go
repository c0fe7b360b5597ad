// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/btcsuite/btcwallet/walletdb"
	"github.com/btcsuite/shieldwallet/bookkeeper"
	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/protocol"
)

func main() {
	// Work around defer not working after os.Exit.
	if err := walletMain(); err != nil {
		os.Exit(1)
	}
}

// walletMain is a work-around main function that is required since deferred
// functions (such as log flushing) are not called with calls to os.Exit.
// Instead, main runs this function and checks for a non-nil error, at which
// point any defers have already run, and if the error is non-nil, the program
// can be exited with an error exit status.
func walletMain() error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	cfg, args, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLogRotator()

	log.Infof("Version %s (%s network)", version(), activeNet.Name)

	if args[0] == cmdCreate {
		if len(args) != 1 {
			err := fmt.Errorf("usage: %s", cmdCreate)
			fmt.Fprintln(os.Stderr, err)
			return err
		}

		if err := createWallet(cfg); err != nil {
			fmt.Fprintln(os.Stderr, "Unable to create wallet:", err)
			return err
		}

		return nil
	}

	command, params, err := lookupCommand(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	db, s, closeSession, err := openSession(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer db.Close()
	defer closeSession()

	if err := command.handler(ctx, s, params); err != nil {
		log.Debugf("Command %s failed: %v", args[0], err)
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	return nil
}

// openSession opens the wallet and the treasury and derives the profile
// selected with --index.
func openSession(ctx context.Context, cfg *config) (walletdb.DB, *session,
	func(), error) {

	db, seed, err := openWallet(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	generator := keyring.NewGenerator(seed)
	seed.Zero()

	fail := func(err error) (walletdb.DB, *session, func(), error) {
		generator.Zero()
		db.Close()
		return nil, nil, nil, err
	}

	profile, err := generator.Derive(cfg.Index)
	if err != nil {
		return fail(err)
	}

	store, closeStore, err := openTreasury(ctx, cfg, db)
	if err != nil {
		return fail(err)
	}

	keeper, err := bookkeeper.New(&bookkeeper.Config{
		Treasury:  store,
		Generator: generator,
		Driver:    protocol.NewDriver(),
	})
	if err != nil {
		closeStore()
		return fail(err)
	}

	entry, err := keeper.As(profile)
	if err != nil {
		closeStore()
		return fail(err)
	}

	var memo []byte
	if cfg.Memo != "" {
		memo = []byte(cfg.Memo)
	}

	s := &session{
		store:    store,
		profile:  profile,
		entry:    entry,
		keeper:   keeper,
		gasLimit: cfg.gasLimit(),
		gasPrice: cfg.GasPrice.Amount,
		memo:     memo,
		out:      os.Stdout,
	}

	closeSession := func() {
		closeStore()
		generator.Zero()
	}

	return db, s, closeSession, nil
}
