package internal

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ncruces/go-strftime"
)

// dateSubpath renders the strftime template for t as a relative directory.
func dateSubpath(t time.Time, format string) string {
	return filepath.FromSlash(strftime.Format(format, t))
}

// checkPathFormat rejects templates that would place files outside the
// target root or inside the unsorted bucket.
func checkPathFormat(format, unsortedDir string) error {
	if format == "" {
		return fmt.Errorf("path_format must not be empty")
	}
	probe := time.Date(2023, time.October, 22, 10, 0, 0, 0, time.UTC)
	sub := filepath.Clean(dateSubpath(probe, format))
	if !filepath.IsLocal(sub) {
		return fmt.Errorf("path_format %q must render a relative path inside the target, got %q", format, sub)
	}
	if sub == unsortedDir {
		return fmt.Errorf("path_format %q collides with the %q directory", format, unsortedDir)
	}
	return nil
}
