package internal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"
)

// MetadataResolver produces a creation time for a file, or None. It never
// fails and never modifies the inspected file.
type MetadataResolver interface {
	Resolve(path string) Timestamp
}

// dateStrategy is one way of reading a creation time.
type dateStrategy interface {
	Name() string
	CreationTime(path string) (time.Time, error)
}

// CompositeResolver tries each strategy in order; the first success wins.
type CompositeResolver struct {
	strategies []dateStrategy
	logger     *slog.Logger
	closers    []func() error
}

// ResolverOptions selects the optional strategies.
type ResolverOptions struct {
	UseExifTool   bool
	FilenameDates bool
	Logger        *slog.Logger
}

// NewResolver builds the default strategy chain reading through fs.
func NewResolver(fs afero.Fs, opts ResolverOptions) *CompositeResolver {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	r := &CompositeResolver{logger: logger}
	r.strategies = append(r.strategies,
		&exifStrategy{fs: fs},
		&exifSearchStrategy{fs: fs},
		&quicktimeStrategy{fs: fs},
	)
	if opts.UseExifTool {
		et := newExifToolStrategy(logger)
		r.strategies = append(r.strategies, et)
		r.closers = append(r.closers, et.Close)
	}
	if opts.FilenameDates {
		r.strategies = append(r.strategies, filenameStrategy{})
	}
	return r
}

func (r *CompositeResolver) Resolve(path string) Timestamp {
	for _, s := range r.strategies {
		t, err := creationTime(s, path)
		if err != nil {
			r.logger.Debug("metadata strategy failed", "strategy", s.Name(), "file", path, "error", err)
			continue
		}
		if t.IsZero() {
			continue
		}
		r.logger.Debug("creation time resolved", "strategy", s.Name(), "file", path, "time", t)
		return Some(t)
	}
	return None()
}

// Close releases external helpers such as the exiftool process.
func (r *CompositeResolver) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// creationTime shields the resolver from decoders that panic on malformed input.
func creationTime(s dateStrategy, path string) (t time.Time, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			t, err = time.Time{}, fmt.Errorf("%s decoder panic: %v", s.Name(), rec)
		}
	}()
	return s.CreationTime(path)
}
