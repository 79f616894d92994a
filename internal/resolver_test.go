package internal

import (
	"errors"
	"testing"
	"time"

	mp4 "github.com/abema/go-mp4"
	"github.com/spf13/afero"
)

type stubStrategy struct {
	name  string
	t     time.Time
	err   error
	panic bool
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) CreationTime(string) (time.Time, error) {
	s.calls++
	if s.panic {
		panic("corrupt container")
	}
	return s.t, s.err
}

func TestCompositeResolver_FirstSuccessWins(t *testing.T) {
	want := time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)
	failing := &stubStrategy{name: "a", err: errors.New("no tag")}
	zero := &stubStrategy{name: "b"}
	hit := &stubStrategy{name: "c", t: want}
	never := &stubStrategy{name: "d", t: want.Add(time.Hour)}

	r := &CompositeResolver{strategies: []dateStrategy{failing, zero, hit, never}, logger: discardLogger()}
	got, ok := r.Resolve("/x.jpg").Get()
	if !ok || !got.Equal(want) {
		t.Fatalf("Resolve() = %v, %v; want %v", got, ok, want)
	}
	if never.calls != 0 {
		t.Error("strategies after the first success must not run")
	}
}

func TestCompositeResolver_RecoversPanics(t *testing.T) {
	want := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &CompositeResolver{
		strategies: []dateStrategy{&stubStrategy{name: "boom", panic: true}, &stubStrategy{name: "ok", t: want}},
		logger:     discardLogger(),
	}
	got, ok := r.Resolve("/x.jpg").Get()
	if !ok || !got.Equal(want) {
		t.Fatalf("Resolve() = %v, %v", got, ok)
	}
}

func TestCompositeResolver_AllFailIsAbsent(t *testing.T) {
	r := &CompositeResolver{
		strategies: []dateStrategy{&stubStrategy{name: "a", err: errors.New("x")}},
		logger:     discardLogger(),
	}
	if r.Resolve("/x.jpg").Present() {
		t.Error("expected absent timestamp")
	}
}

func TestNewResolver_GarbageFilesResolveAbsent(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/src/image.jpg":  "definitely not a jpeg",
		"/src/clip.mp4":   "\x00\x00\x00\x08free",
		"/src/notes.txt":  "plain text",
		"/src/empty.heic": "",
	}
	for path, body := range files {
		if err := afero.WriteFile(fs, path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	r := NewResolver(fs, ResolverOptions{})
	defer r.Close()

	for path := range files {
		if ts := r.Resolve(path); ts.Present() {
			t.Errorf("Resolve(%s) = %s, want absent", path, ts)
		}
	}
	if r.Resolve("/src/missing.jpg").Present() {
		t.Error("missing file should resolve absent")
	}
}

func TestNewResolver_FilenameDates(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/src/IMG_20240315_143022.jpg", []byte("x"), 0o644)

	if NewResolver(fs, ResolverOptions{}).Resolve("/src/IMG_20240315_143022.jpg").Present() {
		t.Error("filename dates must be opt-in")
	}

	r := NewResolver(fs, ResolverOptions{FilenameDates: true})
	got, ok := r.Resolve("/src/IMG_20240315_143022.jpg").Get()
	want := time.Date(2024, 3, 15, 14, 30, 22, 0, time.UTC)
	if !ok || !got.Equal(want) {
		t.Errorf("Resolve() = %v, %v; want %v", got, ok, want)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/src/20210704.jpg", []byte("x"), 0o644)
	r := NewResolver(fs, ResolverOptions{FilenameDates: true})
	first := r.Resolve("/src/20210704.jpg")
	for i := 0; i < 3; i++ {
		if !r.Resolve("/src/20210704.jpg").Equal(first) {
			t.Fatal("resolution changed between calls")
		}
	}
}

func TestMvhdTime(t *testing.T) {
	want := time.Date(2022, 8, 14, 18, 2, 11, 0, time.UTC)
	ct := uint64(want.Unix() + mp4EpochOffset)

	v0 := &mp4.Mvhd{CreationTimeV0: uint32(ct)}
	if got, err := mvhdTime(v0); err != nil || !got.Equal(want) {
		t.Errorf("v0: got %v, %v", got, err)
	}

	v1 := &mp4.Mvhd{FullBox: mp4.FullBox{Version: 1}, CreationTimeV1: ct}
	if got, err := mvhdTime(v1); err != nil || !got.Equal(want) {
		t.Errorf("v1: got %v, %v", got, err)
	}

	if _, err := mvhdTime(&mp4.Mvhd{}); err == nil {
		t.Error("unset creation time should fail")
	}
}

func TestParseExifTime(t *testing.T) {
	got, err := parseExifTime("2023:10:22 09:15:00\x00")
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2023, 10, 22, 9, 15, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := parseExifTime("0000:00:00 00:00:00"); err == nil {
		t.Error("zeroed EXIF date should not parse")
	}
}
