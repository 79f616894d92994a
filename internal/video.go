package internal

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	mp4 "github.com/abema/go-mp4"
	"github.com/spf13/afero"
)

// Seconds between the QuickTime epoch (1904-01-01) and the Unix epoch.
const mp4EpochOffset = 2082844800

var quicktimeExts = map[string]bool{".mp4": true, ".m4v": true, ".mov": true, ".3gp": true}

// quicktimeStrategy reads the movie header creation time of ISO-BMFF files.
type quicktimeStrategy struct {
	fs afero.Fs
}

func (quicktimeStrategy) Name() string { return "quicktime" }

func (s *quicktimeStrategy) CreationTime(path string) (time.Time, error) {
	if !quicktimeExts[strings.ToLower(filepath.Ext(path))] {
		return time.Time{}, errors.New("not an ISO-BMFF container")
	}
	f, err := s.fs.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	boxes, err := mp4.ExtractBoxWithPayload(f, nil, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()})
	if err != nil {
		return time.Time{}, err
	}
	if len(boxes) == 0 {
		return time.Time{}, errors.New("mvhd box not found")
	}
	mvhd, ok := boxes[0].Payload.(*mp4.Mvhd)
	if !ok {
		return time.Time{}, errors.New("unexpected mvhd payload")
	}
	return mvhdTime(mvhd)
}

func mvhdTime(mvhd *mp4.Mvhd) (time.Time, error) {
	var ct uint64
	if mvhd.GetVersion() > 0 {
		ct = mvhd.CreationTimeV1
	} else {
		ct = uint64(mvhd.CreationTimeV0)
	}
	// Encoders that do not know the capture time leave the field at zero.
	if ct <= mp4EpochOffset {
		return time.Time{}, errors.New("mvhd creation time unset")
	}
	return time.Unix(int64(ct)-mp4EpochOffset, 0).UTC(), nil
}
