package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// TargetLock serializes runs against one target directory. The lock file
// lives in the temp dir so the target tree holds only sorted media.
type TargetLock struct {
	path string
	lock *flock.Flock
}

// NewTargetLock derives the lock file path from the absolute target path.
func NewTargetLock(targetDir string) (*TargetLock, error) {
	abs, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("resolve target path: %w", err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	path := filepath.Join(os.TempDir(), "mediasort-"+hex.EncodeToString(sum[:8])+".lock")
	return &TargetLock{path: path, lock: flock.New(path)}, nil
}

func (l *TargetLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. ErrTargetLocked is returned when
// another run holds it.
func (l *TargetLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrTargetLocked, l.path)
	}
	return nil
}

func (l *TargetLock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
