//go:build !unix

package internal

import (
	"fmt"
	"os"
)

// CheckTargetWritable fails early when dir is missing or not a directory.
func CheckTargetWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s (%v)", ErrTargetUnavailable, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrTargetUnavailable, dir)
	}
	return nil
}
