package internal

import (
	"path/filepath"
	"strings"
	"time"
)

// Timestamp is an optional creation time. The zero value is absent.
type Timestamp struct {
	t     time.Time
	valid bool
}

// Some wraps a known creation time.
func Some(t time.Time) Timestamp {
	return Timestamp{t: t, valid: true}
}

// None reports an unknown creation time.
func None() Timestamp {
	return Timestamp{}
}

// Get returns the time and whether it is usable. A present timestamp holding
// the zero time is not.
func (ts Timestamp) Get() (time.Time, bool) {
	if !ts.valid || ts.t.IsZero() {
		return time.Time{}, false
	}
	return ts.t, true
}

// Present reports whether a creation time is known.
func (ts Timestamp) Present() bool {
	return ts.valid
}

// Equal treats two absent timestamps as equal and absent vs present as unequal.
func (ts Timestamp) Equal(other Timestamp) bool {
	if ts.valid != other.valid {
		return false
	}
	if !ts.valid {
		return true
	}
	return ts.t.Equal(other.t)
}

func (ts Timestamp) String() string {
	if !ts.valid {
		return "none"
	}
	return ts.t.Format(time.RFC3339)
}

// Candidate is a snapshot of one source file taken when it was discovered.
type Candidate struct {
	Path         string
	CreationTime Timestamp
	Size         int64
}

// IsSortable reports whether the candidate can be routed by date.
func (c Candidate) IsSortable() bool {
	return c.CreationTime.Present()
}

// Name is the base name used at the destination.
func (c Candidate) Name() string {
	return filepath.Base(c.Path)
}

// hasSupportedExt reports whether name carries one of the normalized extensions.
func hasSupportedExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
