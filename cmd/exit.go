package cmd

import (
	"errors"

	"mediasort/internal"
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, internal.ErrSourceMissing):
		return 2
	case errors.Is(err, internal.ErrTargetUnavailable):
		return 3
	case errors.Is(err, internal.ErrTargetLocked):
		return 4
	default:
		return 1
	}
}
