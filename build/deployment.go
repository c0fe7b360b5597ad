// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package build exposes the properties of the binary selected at compile
// time through build tags: the deployment type and the logging setup.
package build

// DeploymentType is the type of deployment the binary was built for.
type DeploymentType byte

const (
	// Development is a build used for tests and local experiments.
	Development DeploymentType = iota

	// Production is a release build.
	Production
)

// String returns a human readable name for the deployment type.
func (t DeploymentType) String() string {
	switch t {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}
