// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !nolog && !stdlog

package build

// LoggingType is a log type that writes to both stdout and the log rotator.
const LoggingType = LogTypeDefault
