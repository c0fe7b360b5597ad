//go:build tools

package tools

import (
	_ "github.com/rinchsan/gosimports/cmd/gosimports"
)
