// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/shieldwallet/bookkeeper"
	"github.com/btcsuite/shieldwallet/internal/cfgutil"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "shieldwallet.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "shieldwallet.log"
	defaultBackend        = backendBolt
	defaultDBTimeout      = 60 * time.Second

	walletDbName = "wallet.db"
	sqliteDbName = "treasury.sqlite"
)

// Names of the treasury backends.
const (
	backendBolt     = "bdb"
	backendSQLite   = "sqlite"
	backendPostgres = "postgres"
)

var (
	shieldwalletHomeDir = btcutil.AppDataDir("shieldwallet", false)
	defaultConfigFile   = filepath.Join(
		shieldwalletHomeDir, defaultConfigFilename,
	)
	defaultDataDir = shieldwalletHomeDir
	defaultLogDir  = filepath.Join(shieldwalletHomeDir, defaultLogDirname)
)

type config struct {
	// General application behavior
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	DataDir     string `short:"b" long:"appdata" description:"Application data directory for wallet config, databases and logs"`
	TestNet     bool   `long:"testnet" description:"Use the test network"`
	DevNet      bool   `long:"devnet" description:"Use a local development network"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir      string `long:"logdir" description:"Directory to log output."`

	// Wallet options
	WalletPass string `long:"walletpass" default-mask:"-" description:"The passphrase of the wallet seed; prompted for when unset"`
	Seed       string `long:"seed" default-mask:"-" description:"Hex encoded seed to restore with the create command; prompted for when unset"`
	Index      uint32 `short:"i" long:"index" description:"Derivation index of the profile to use"`

	// Storage options
	Backend   string        `long:"backend" description:"Treasury backend {bdb, sqlite, postgres}"`
	DSN       string        `long:"dsn" default-mask:"-" description:"Database connection string; the path of the SQLite file or a PostgreSQL DSN"`
	DBTimeout time.Duration `long:"dbtimeout" description:"The timeout value to use when opening the wallet database"`

	// Transfer options
	GasLimit uint64              `long:"gaslimit" description:"Gas limit of drafted transfers"`
	GasPrice *cfgutil.AmountFlag `long:"gasprice" description:"Gas price of drafted transfers, in DUSK per unit of gas (default: network price)"`
	Memo     string              `long:"memo" description:"Memo attached to drafted transfers"`
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(shieldwalletHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows cmd.exe-style
	// %VARIABLE%, but they variables can still be expanded via POSIX-style
	// $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") &&
		!strings.Contains(debugLevel, "=") {

		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// netDir returns the directory holding the wallet files of the active
// network.
func (c *config) netDir() string {
	return filepath.Join(c.DataDir, activeNet.Name)
}

// dbPath returns the path of the wallet database.
func (c *config) dbPath() string {
	return filepath.Join(c.netDir(), walletDbName)
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in shieldwallet functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence. The remaining arguments name the command to run.
func loadConfig() (*config, []string, error) {
	// Default config.
	cfg := config{
		DebugLevel: defaultLogLevel,
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		Backend:    defaultBackend,
		DBTimeout:  defaultDBTimeout,
		GasLimit:   uint64(bookkeeper.DefaultGasLimit),
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.Default)
	_, err := preParser.Parse()
	if err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			preParser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Show the version and exit if the version flag was specified.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", version())
		os.Exit(0)
	}

	// Load additional config from file.
	var configFileError error
	parser := flags.NewParser(&cfg, flags.Default)
	parser.Usage = "[OPTIONS] <command> [arguments]\n\n" + commandUsage()
	configFilePath := cleanAndExpandPath(preCfg.ConfigFile)
	err = flags.NewIniParser(parser).ParseFile(configFilePath)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			return nil, nil, err
		}
		configFileError = err
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Choose the active network params based on the selected network.
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if cfg.TestNet {
		activeNet = &testNetParams
		numNets++
	}
	if cfg.DevNet {
		activeNet = &devNetParams
		numNets++
	}
	if numNets > 1 {
		str := "%s: the testnet and devnet params can't be used " +
			"together -- choose one"
		err := fmt.Errorf(str, "loadConfig")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// If an alternate data directory was specified, and the log directory
	// was left to its default, keep the logs with the data.
	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	if cfg.DataDir != defaultDataDir && cfg.LogDir == defaultLogDir {
		cfg.LogDir = filepath.Join(cfg.DataDir, defaultLogDirname)
	}

	// Append the network type to the log directory so it is "namespaced"
	// per network.
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	cfg.LogDir = filepath.Join(cfg.LogDir, activeNet.Name)

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	err = initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("%s: %w", "loadConfig", err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Warn about missing config file after the final command line parse
	// succeeds.  This prevents the warning on help messages and invalid
	// options.
	if configFileError != nil {
		log.Debugf("%v", configFileError)
	}

	switch cfg.Backend {
	case backendBolt:

	case backendSQLite:
		if cfg.DSN == "" {
			cfg.DSN = filepath.Join(cfg.netDir(), sqliteDbName)
		}
		cfg.DSN = cleanAndExpandPath(cfg.DSN)

	case backendPostgres:
		cfg.DSN, err = cfgutil.NormalizeDSN(
			cfg.DSN, activeNet.PostgresPort,
		)
		if err != nil {
			err := fmt.Errorf("invalid --dsn: %w", err)
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}

	default:
		err := fmt.Errorf("unknown backend %q -- supported backends "+
			"{%s, %s, %s}", cfg.Backend, backendBolt,
			backendSQLite, backendPostgres)
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	if cfg.GasPrice == nil {
		cfg.GasPrice = cfgutil.NewAmountFlag(activeNet.GasPrice)
	}
	if cfg.GasLimit == 0 {
		err := errors.New("the gas limit must be positive")
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	if len(remainingArgs) == 0 {
		err := errors.New("no command specified")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}

// gasLimit returns the configured gas limit as an amount of gas units.
func (c *config) gasLimit() lux.Amount {
	return lux.Amount(c.GasLimit)
}
