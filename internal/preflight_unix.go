//go:build unix

package internal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CheckTargetWritable fails early when the process cannot create entries in dir.
func CheckTargetWritable(dir string) error {
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%w: %s (insufficient permissions: %v)", ErrTargetUnavailable, dir, err)
	}
	return nil
}
