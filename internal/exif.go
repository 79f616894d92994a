package internal

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	exifsearch "github.com/dsoprea/go-exif/v3"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
)

const exifLayout = "2006:01:02 15:04:05"

var errNotImage = errors.New("not an image container")

// Video containers are skipped by the EXIF scanners, which would otherwise
// read the whole stream looking for an APP1 marker.
var videoExts = map[string]bool{
	".mp4": true, ".m4v": true, ".mov": true, ".3gp": true,
	".avi": true, ".mkv": true, ".webm": true, ".wmv": true,
}

func isVideo(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

func parseExifTime(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	return time.Parse(exifLayout, s)
}

// exifStrategy reads DateTimeOriginal from JPEG/TIFF via goexif.
type exifStrategy struct {
	fs afero.Fs
}

func (exifStrategy) Name() string { return "exif" }

func (s *exifStrategy) CreationTime(path string) (time.Time, error) {
	if isVideo(path) {
		return time.Time{}, errNotImage
	}
	f, err := s.fs.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		tag, err = x.Get(exif.DateTime)
		if err != nil {
			return time.Time{}, err
		}
	}

	dateStr, err := tag.StringVal()
	if err != nil {
		return time.Time{}, err
	}
	return parseExifTime(dateStr)
}

// exifSearchStrategy locates an EXIF block anywhere in the stream (PNG eXIf,
// HEIC, raw formats) and reads it with go-exif.
type exifSearchStrategy struct {
	fs afero.Fs
}

func (exifSearchStrategy) Name() string { return "exifsearch" }

func (s *exifSearchStrategy) CreationTime(path string) (time.Time, error) {
	if isVideo(path) {
		return time.Time{}, errNotImage
	}
	f, err := s.fs.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	rawExif, err := exifsearch.SearchAndExtractExifWithReader(f)
	if err != nil {
		return time.Time{}, err
	}

	entries, _, err := exifsearch.GetFlatExifData(rawExif, nil)
	if err != nil {
		return time.Time{}, err
	}

	var fallback string
	for _, entry := range entries {
		switch entry.TagName {
		case "DateTimeOriginal":
			return parseExifTime(entry.FormattedFirst)
		case "DateTime":
			if fallback == "" {
				fallback = entry.FormattedFirst
			}
		}
	}
	if fallback != "" {
		return parseExifTime(fallback)
	}
	return time.Time{}, fmt.Errorf("no date tag in exif block")
}
