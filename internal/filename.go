package internal

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

var (
	// IMG_20240315_143022, 2024-03-15-14-30-22, telegram_2024-03-15_14-30-22
	filenameDateTimeRe = regexp.MustCompile(`(\d{4})-?(\d{2})-?(\d{2})[_-](\d{2})-?(\d{2})-?(\d{2})`)
	// IMG-20240315-WA0001, 2024-03-15, 20240315
	filenameDateRe = regexp.MustCompile(`(\d{4})-?(\d{2})-?(\d{2})`)
)

// filenameStrategy derives a date from camera and messenger naming schemes.
// Date-only names resolve to noon UTC.
type filenameStrategy struct{}

func (filenameStrategy) Name() string { return "filename" }

func (filenameStrategy) CreationTime(path string) (time.Time, error) {
	return parseDateFromFilename(filepath.Base(path))
}

func parseDateFromFilename(name string) (time.Time, error) {
	if m := filenameDateTimeRe.FindStringSubmatch(name); m != nil {
		s := m[1] + m[2] + m[3] + m[4] + m[5] + m[6]
		if t, err := time.Parse("20060102150405", s); err == nil && plausibleYear(t) {
			return t, nil
		}
	}
	if m := filenameDateRe.FindStringSubmatch(name); m != nil {
		if t, err := time.Parse("20060102", m[1]+m[2]+m[3]); err == nil && plausibleYear(t) {
			return t.Add(12 * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("no date in filename %q", name)
}

func plausibleYear(t time.Time) bool {
	return t.Year() >= 1970 && t.Year() < 2100
}
