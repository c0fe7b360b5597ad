// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"fmt"
	"os"
)

// FileExists reports whether the named file or directory exists.
func FileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CheckCreateDir checks that the path exists and is a directory. If path
// does not exist, it is created along with its parents.
func CheckCreateDir(path string) error {
	fi, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0700); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
		return nil

	case err != nil:
		return fmt.Errorf("error checking directory: %w", err)

	case !fi.IsDir():
		return fmt.Errorf("path '%s' is not a directory", path)
	}

	return nil
}
