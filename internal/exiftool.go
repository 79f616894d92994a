package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/barasher/go-exiftool"
)

var exifToolDateKeys = []string{"DateTimeOriginal", "CreateDate", "MediaCreateDate"}

// exifToolStrategy shells out to a long-running exiftool process. The process
// is started on first use; if it cannot start the strategy disables itself.
type exifToolStrategy struct {
	logger *slog.Logger

	once    sync.Once
	et      *exiftool.Exiftool
	initErr error
}

func newExifToolStrategy(logger *slog.Logger) *exifToolStrategy {
	return &exifToolStrategy{logger: logger}
}

func (*exifToolStrategy) Name() string { return "exiftool" }

func (s *exifToolStrategy) ensure() (*exiftool.Exiftool, error) {
	s.once.Do(func() {
		s.et, s.initErr = exiftool.NewExiftool()
		if s.initErr != nil {
			s.logger.Warn("exiftool unavailable, strategy disabled", "error", s.initErr)
		}
	})
	return s.et, s.initErr
}

func (s *exifToolStrategy) CreationTime(path string) (time.Time, error) {
	et, err := s.ensure()
	if err != nil {
		return time.Time{}, err
	}

	for _, fileInfo := range et.ExtractMetadata(path) {
		if fileInfo.Err != nil {
			return time.Time{}, fileInfo.Err
		}
		for _, key := range exifToolDateKeys {
			dateStr, err := fileInfo.GetString(key)
			if err != nil {
				continue
			}
			if len(dateStr) > len(exifLayout) {
				dateStr = dateStr[:len(exifLayout)]
			}
			if t, err := parseExifTime(dateStr); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("exiftool: no date tag in %s", path)
}

func (s *exifToolStrategy) Close() error {
	if s.et == nil {
		return nil
	}
	if err := s.et.Close(); err != nil {
		return errors.Join(errors.New("close exiftool"), err)
	}
	return nil
}
