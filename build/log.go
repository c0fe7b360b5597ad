// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package build

import (
	"os"

	"github.com/btcsuite/btclog"
)

// LogType is an indicating the type of logging specified by the build flag.
type LogType byte

const (
	// LogTypeNone indicates no logging.
	LogTypeNone LogType = iota

	// LogTypeStdOut all logging is written directly to stdout.
	LogTypeStdOut

	// LogTypeDefault logs to both stdout and the log rotator.
	LogTypeDefault
)

// String returns a human readable identifier for the logging type.
func (t LogType) String() string {
	switch t {
	case LogTypeNone:
		return "none"
	case LogTypeStdOut:
		return "stdout"
	case LogTypeDefault:
		return "default"
	default:
		return "unknown"
	}
}

// NewSubLogger returns the logger of a subsystem. Production builds and
// builds with default logging use genSubLogger, which shares the backend of
// the binary. Development builds tagged stdlog get a logger of their own
// writing to stdout at LogLevel, and nolog builds get a disabled logger.
func NewSubLogger(subsystem string,
	genSubLogger func(string) btclog.Logger) btclog.Logger {

	if LoggingType == LogTypeNone {
		return btclog.Disabled
	}

	if Deployment == Production || LoggingType == LogTypeDefault {
		if genSubLogger != nil {
			return genSubLogger(subsystem)
		}
		return btclog.Disabled
	}

	backend := btclog.NewBackend(os.Stdout)
	logger := backend.Logger(subsystem)

	level, _ := btclog.LevelFromString(LogLevel)
	logger.SetLevel(level)

	return logger
}
