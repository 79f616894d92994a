package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// FileStore is the filesystem surface the sorter relies on.
type FileStore interface {
	// List returns regular, non-hidden files directly inside dir whose
	// extension is in exts. exts must already be normalized.
	List(dir string, exts []string) ([]string, error)
	Copy(src, dst string) error
	MkdirAll(dir string) error
	Exists(path string) (bool, error)
	Size(path string) (int64, error)
	IsDir(path string) (bool, error)
}

// AferoStore implements FileStore on top of an afero filesystem.
type AferoStore struct {
	fs     afero.Fs
	verify bool
}

// NewOSStore returns a store backed by the real filesystem.
func NewOSStore(verify bool) *AferoStore {
	return NewAferoStore(afero.NewOsFs(), verify)
}

// NewAferoStore wraps fs. With verify set, copies are checked by size and SHA-256.
func NewAferoStore(fs afero.Fs, verify bool) *AferoStore {
	return &AferoStore{fs: fs, verify: verify}
}

// Fs exposes the underlying filesystem so metadata strategies read the same tree.
func (s *AferoStore) Fs() afero.Fs {
	return s.fs
}

func (s *AferoStore) List(dir string, exts []string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("error scanning files: %w", err)
	}
	var files []string
	for _, info := range entries {
		if isHidden(info.Name()) || !hasSupportedExt(info.Name(), exts) {
			continue
		}
		path := filepath.Join(dir, info.Name())
		if info.Mode()&os.ModeSymlink != 0 {
			// Follow the link; broken links are skipped.
			target, err := s.fs.Stat(path)
			if err != nil {
				continue
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

func (s *AferoStore) Copy(src, dst string) error {
	if s.verify {
		return copyFileVerified(s.fs, src, dst)
	}
	return copyFileAtomic(s.fs, src, dst)
}

func (s *AferoStore) MkdirAll(dir string) error {
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	ok, err := afero.IsDir(s.fs, dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("mkdir %s: not a directory", dir)
	}
	return nil
}

func (s *AferoStore) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

func (s *AferoStore) Size(path string) (int64, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *AferoStore) IsDir(path string) (bool, error) {
	ok, err := afero.IsDir(s.fs, path)
	if err != nil && os.IsNotExist(err) {
		return false, nil
	}
	return ok, err
}

// dryRunStore answers queries from the wrapped store but never writes.
type dryRunStore struct {
	FileStore
	logger *slog.Logger
}

func newDryRunStore(inner FileStore, logger *slog.Logger) *dryRunStore {
	return &dryRunStore{FileStore: inner, logger: logger}
}

func (s *dryRunStore) Copy(src, dst string) error {
	s.logger.Debug("would copy", "src", src, "dest", dst)
	return nil
}

func (s *dryRunStore) MkdirAll(dir string) error {
	s.logger.Debug("would create directory", "dir", dir)
	return nil
}
