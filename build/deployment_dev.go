// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build dev

package build

// Deployment specifies a development build.
const Deployment = Development
