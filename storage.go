// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/btcsuite/btcwallet/walletdb"
	"github.com/btcsuite/shieldwallet/internal/cfgutil"
	"github.com/btcsuite/shieldwallet/treasury"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// openTreasury opens the treasury backend selected by the configuration. The
// bdb backend shares the wallet database, the SQL backends open their own
// handle which is released by the returned close function.
func openTreasury(ctx context.Context, cfg *config,
	db walletdb.DB) (treasury.Store, func(), error) {

	noop := func() {}

	switch cfg.Backend {
	case backendBolt:
		store, err := treasury.NewDBStore(db)
		if err != nil {
			return nil, nil, err
		}

		return store, noop, nil

	case backendSQLite:
		err := cfgutil.CheckCreateDir(filepath.Dir(cfg.DSN))
		if err != nil {
			return nil, nil, err
		}

		dsn := fmt.Sprintf("file:%s?mode=rwc", cfg.DSN)
		return openSQLTreasury(ctx, "sqlite", dsn, 1)

	case backendPostgres:
		return openSQLTreasury(ctx, "pgx", cfg.DSN, 0)

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// openSQLTreasury opens a SQL treasury and makes sure its tables exist. A
// positive maxConns caps the open connections of the pool.
func openSQLTreasury(ctx context.Context, driver, dsn string,
	maxConns int) (treasury.Store, func(), error) {

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
	}

	store := treasury.NewSQLStore(sqlDB)
	if err := store.CreateTables(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	trsyLog.Debugf("Opened %s treasury", driver)

	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			trsyLog.Errorf("Unable to close %s treasury: %v",
				driver, err)
		}
	}

	return store, closeDB, nil
}
