package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
)

var errMissingTimestamp = errors.New("sortable file has no timestamp")

// SorterOptions is the explicit configuration handed to a Sorter.
type SorterOptions struct {
	PathFormat  string
	Extensions  []string // normalized by NewSorter
	UnsortedDir string
	DryRun      bool
	Logger      *slog.Logger
}

// Sorter copies media from a source directory into a date-structured target.
// It never writes to the source directory.
type Sorter struct {
	store    FileStore
	resolver MetadataResolver
	opts     SorterOptions
	logger   *slog.Logger
}

// Summary counts per-file outcomes of one run.
type Summary struct {
	Scanned          int
	Copied           int
	CopiedUnsorted   int
	Replaced         int
	SkippedTimestamp int
	SkippedSize      int
	Errors           *ErrorStats
}

func NewSorter(store FileStore, resolver MetadataResolver, opts SorterOptions) *Sorter {
	if opts.PathFormat == "" {
		opts.PathFormat = DefaultPathFormat
	}
	if opts.UnsortedDir == "" {
		opts.UnsortedDir = DefaultUnsortedDir
	}
	opts.Extensions = normalizeExtensions(opts.Extensions)
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	if opts.DryRun {
		logger = logger.With("dry_run", true)
		store = newDryRunStore(store, logger)
	}
	return &Sorter{store: store, resolver: resolver, opts: opts, logger: logger}
}

// Run processes every supported file directly inside sourceDir. Per-file
// failures are logged and counted; only problems with the roots are returned.
func (s *Sorter) Run(sourceDir, targetDir string) (*Summary, error) {
	summary := &Summary{Errors: NewErrorStats()}

	ok, err := s.store.IsDir(sourceDir)
	if err != nil || !ok {
		s.logger.Error("source directory does not exist", "path", sourceDir)
		return summary, fmt.Errorf("%w: %s", ErrSourceMissing, sourceDir)
	}

	if ok, _ := s.store.IsDir(targetDir); !ok {
		s.logger.Info("target directory does not exist, creating it", "path", targetDir)
		if err := s.store.MkdirAll(targetDir); err != nil {
			return summary, fmt.Errorf("%w: create %s: %v", ErrTargetUnavailable, targetDir, err)
		}
	}

	files, err := s.store.List(sourceDir, s.opts.Extensions)
	if err != nil {
		return summary, fmt.Errorf("list %s: %w", sourceDir, err)
	}

	for _, path := range files {
		summary.Scanned++
		if err := s.processFile(path, targetDir, summary); err != nil {
			procErr := CategorizeError(path, err)
			summary.Errors.Add(procErr)
			s.logger.Error("failed to process file",
				"file", filepath.Base(path),
				"error", err,
				"stage", procErr.Stage,
				"category", procErr.Category,
				"severity", procErr.Severity,
				"suggestion", procErr.Suggestion,
			)
		}
	}
	return summary, nil
}

func (s *Sorter) processFile(path, targetDir string, summary *Summary) error {
	size, err := s.store.Size(path)
	if err != nil {
		return withStage("size", fmt.Errorf("size: %w", err))
	}
	c := Candidate{
		Path:         path,
		CreationTime: s.resolver.Resolve(path),
		Size:         size,
	}

	destDir, err := s.destinationDir(c, targetDir)
	if err != nil {
		return withStage("route", err)
	}
	if err := s.store.MkdirAll(destDir); err != nil {
		return withStage("mkdir", fmt.Errorf("create directory %s: %w", destDir, err))
	}

	destFile := filepath.Join(destDir, c.Name())
	exists, err := s.store.Exists(destFile)
	if err != nil {
		return withStage("stat", fmt.Errorf("stat %s: %w", destFile, err))
	}
	if exists {
		return s.handleDuplicate(c, destFile, summary)
	}

	if err := s.store.Copy(c.Path, destFile); err != nil {
		return withStage("copy", fmt.Errorf("failed to copy file %s to %s: %w", c.Path, destFile, err))
	}
	if c.IsSortable() {
		summary.Copied++
		s.logger.Info("copied file", "file", c.Name(), "dir", destDir)
	} else {
		summary.CopiedUnsorted++
		s.logger.Warn("could not determine timestamp, copied to unsorted", "file", c.Name(), "dir", destDir)
	}
	return nil
}

// destinationDir routes a candidate by its creation time.
func (s *Sorter) destinationDir(c Candidate, targetDir string) (string, error) {
	if !c.IsSortable() {
		return filepath.Join(targetDir, s.opts.UnsortedDir), nil
	}
	t, ok := c.CreationTime.Get()
	if !ok {
		return "", fmt.Errorf("route %s: %w", c.Name(), errMissingTimestamp)
	}
	return filepath.Join(targetDir, dateSubpath(t, s.opts.PathFormat)), nil
}

// handleDuplicate resolves a same-name collision. The destination is only
// overwritten when both timestamps agree and the source is strictly larger.
func (s *Sorter) handleDuplicate(c Candidate, destFile string, summary *Summary) error {
	destDir := filepath.Dir(destFile)

	destTime := s.resolver.Resolve(destFile)
	if !c.CreationTime.Equal(destTime) {
		summary.SkippedTimestamp++
		s.logger.Warn("skipped: same-name file exists with a different timestamp",
			"file", c.Name(), "dir", destDir,
			"source_time", c.CreationTime.String(), "existing_time", destTime.String())
		return nil
	}

	destSize, err := s.store.Size(destFile)
	if err != nil {
		return withStage("size", fmt.Errorf("size %s: %w", destFile, err))
	}
	if c.Size <= destSize {
		summary.SkippedSize++
		s.logger.Warn("skipped: same-name file exists that is larger or equal in size",
			"file", c.Name(), "dir", destDir,
			"source_size", c.Size, "existing_size", destSize)
		return nil
	}

	if err := s.store.Copy(c.Path, destFile); err != nil {
		return withStage("replace", fmt.Errorf("failed to replace %s with %s: %w", destFile, c.Path, err))
	}
	summary.Replaced++
	s.logger.Info("replaced destination file with a larger version",
		"file", filepath.Base(destFile), "source_dir", filepath.Dir(c.Path))
	return nil
}
