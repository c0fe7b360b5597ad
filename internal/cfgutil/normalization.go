// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// NormalizeAddress returns the normalized form of the address, adding a
// default port if necessary.  An error is returned if the address, even
// without a port, is not valid.
func NormalizeAddress(addr string, defaultPort string) (string, error) {
	// If the first SplitHostPort errors because of a missing port and not
	// for an invalid host, add the port.  If the second SplitHostPort
	// fails, then a port is not missing and the original error should be
	// returned.
	host, port, origErr := net.SplitHostPort(addr)
	if origErr == nil {
		return net.JoinHostPort(host, port), nil
	}
	addr = net.JoinHostPort(addr, defaultPort)
	_, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "", origErr
	}
	return addr, nil
}

// NormalizeDSN returns the URL form of a PostgreSQL DSN. The scheme may be
// omitted ("user:pass@host/db") and a host without port gets defaultPort.
// Key/value DSNs ("host=... dbname=...") are returned unchanged.
func NormalizeDSN(dsn string, defaultPort string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", fmt.Errorf("empty DSN")

	case !strings.Contains(dsn, "://") && strings.Contains(dsn, "="):
		return dsn, nil

	case !strings.Contains(dsn, "://"):
		dsn = "postgres://" + dsn
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid DSN: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
	default:
		return "", fmt.Errorf("unsupported DSN scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("DSN %q has no host", u.Redacted())
	}

	u.Host, err = NormalizeAddress(u.Host, defaultPort)
	if err != nil {
		return "", err
	}

	return u.String(), nil
}
