// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseAndSetDebugLevels checks the accepted debug level syntaxes.
func TestParseAndSetDebugLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr string
	}{
		{
			name:  "global",
			level: "debug",
		},
		{
			name:  "per subsystem",
			level: "BOOK=trace,PROT=warn",
		},
		{
			name:    "invalid global",
			level:   "loud",
			wantErr: "debug level [loud] is invalid",
		},
		{
			name:    "unknown subsystem",
			level:   "BTCD=info",
			wantErr: "subsystem [BTCD] is invalid",
		},
		{
			name:    "missing level",
			level:   "BOOK=info,PROT",
			wantErr: "invalid subsystem/level pair [PROT]",
		},
		{
			name:    "invalid subsystem level",
			level:   "TRSY=loud",
			wantErr: "debug level [loud] is invalid",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := parseAndSetDebugLevels(test.level)
			if test.wantErr != "" {
				require.ErrorContains(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	require.NoError(t, parseAndSetDebugLevels(defaultLogLevel))
}

// TestCleanAndExpandPath checks home and environment expansion.
func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("SHIELDWALLET_TEST_DIR", "/var/lib/shield")

	require.Equal(t, "/var/lib/shield/wallet",
		cleanAndExpandPath("$SHIELDWALLET_TEST_DIR/./wallet/"))

	homeDir := filepath.Dir(shieldwalletHomeDir)
	require.Equal(t, filepath.Join(homeDir, "wallets"),
		cleanAndExpandPath("~/wallets"))
}

// TestConfigPaths checks that wallet files are kept per network.
func TestConfigPaths(t *testing.T) {
	cfg := &config{DataDir: "/data"}

	require.Equal(t, filepath.Join("/data", activeNet.Name, walletDbName),
		cfg.dbPath())
}
