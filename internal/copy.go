package internal

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// copyFileAtomic copies a file atomically (copy temp → rename)
func copyFileAtomic(fs afero.Fs, src, dest string) error {
	tmp := dest + ".tmp"
	if _, _, err := copyToTemp(fs, src, tmp); err != nil {
		return err
	}
	return fs.Rename(tmp, dest)
}

// copyFileVerified re-reads the temp copy and compares its size and SHA-256
// against the source before renaming it into place. Removes the temp file on
// mismatch.
func copyFileVerified(fs afero.Fs, src, dest string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	tmp := dest + ".tmp"
	written, srcSum, err := copyToTemp(fs, src, tmp)
	if err != nil {
		return err
	}

	if written != info.Size() {
		_ = fs.Remove(tmp)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}

	dstSum, err := fileHash(fs, tmp)
	if err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("hash temp copy: %w", err)
	}
	if !bytes.Equal(srcSum, dstSum) {
		_ = fs.Remove(tmp)
		return fmt.Errorf("hash verification failed: %s corrupted during copy", src)
	}
	return fs.Rename(tmp, dest)
}

func copyToTemp(fs afero.Fs, src, tmp string) (int64, []byte, error) {
	in, err := fs.Open(src)
	if err != nil {
		return 0, nil, err
	}
	defer in.Close()

	out, err := fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, nil, err
	}

	h := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, h))
	if err != nil {
		out.Close()
		fs.Remove(tmp)
		return 0, nil, err
	}
	if err := out.Close(); err != nil {
		fs.Remove(tmp)
		return 0, nil, err
	}
	return written, h.Sum(nil), nil
}

// fileHash computes SHA256 hash of a file content
func fileHash(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
