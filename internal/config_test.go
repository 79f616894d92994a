package internal

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Sorting.PathFormat != "%Y/%m-%B" {
		t.Errorf("PathFormat = %q", cfg.Sorting.PathFormat)
	}
	if !reflect.DeepEqual(cfg.Sorting.SupportedExtensions, DefaultExtensions) {
		t.Errorf("SupportedExtensions = %v", cfg.Sorting.SupportedExtensions)
	}
	if cfg.Sorting.UnsortedDir != "unsorted" {
		t.Errorf("UnsortedDir = %q", cfg.Sorting.UnsortedDir)
	}
	if !cfg.Copy.Verify {
		t.Error("copy verification should default to on")
	}
	if cfg.Metadata.UseExifTool || cfg.Metadata.FilenameDates {
		t.Error("optional metadata strategies should default to off")
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeConfig(t, "mediasort.toml", `
[sorting]
path_format = "%Y-%m-%d"
supported_extensions = ".JPG, png ,.Mov,.jpg"

[metadata]
filename_dates = true

[logging]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Sorting.PathFormat != "%Y-%m-%d" {
		t.Errorf("PathFormat = %q", cfg.Sorting.PathFormat)
	}
	want := []string{".jpg", ".png", ".mov"}
	if !reflect.DeepEqual(cfg.Sorting.SupportedExtensions, want) {
		t.Errorf("SupportedExtensions = %v, want %v", cfg.Sorting.SupportedExtensions, want)
	}
	if !cfg.Metadata.FilenameDates {
		t.Error("filename_dates not read")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfig_TOMLArray(t *testing.T) {
	path := writeConfig(t, "mediasort.toml", `
[sorting]
supported_extensions = [".heic", ".jpg"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := []string{".heic", ".jpg"}
	if !reflect.DeepEqual(cfg.Sorting.SupportedExtensions, want) {
		t.Errorf("SupportedExtensions = %v, want %v", cfg.Sorting.SupportedExtensions, want)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MEDIASORT_SORTING_PATH_FORMAT", "%Y")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Sorting.PathFormat != "%Y" {
		t.Errorf("PathFormat = %q, want env override", cfg.Sorting.PathFormat)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty format", func(c *Config) { c.Sorting.PathFormat = "" }, "must not be empty"},
		{"absolute format", func(c *Config) { c.Sorting.PathFormat = "/%Y" }, "relative path"},
		{"escaping format", func(c *Config) { c.Sorting.PathFormat = "../%Y" }, "relative path"},
		{"unsorted collision", func(c *Config) { c.Sorting.PathFormat = "unsorted" }, "collides"},
		{"no extensions", func(c *Config) { c.Sorting.SupportedExtensions = []string{" ", ""} }, "supported_extensions"},
		{"absolute unsorted", func(c *Config) { c.Sorting.UnsortedDir = "/tmp/x" }, "unsorted_dir"},
		{"blank unsorted", func(c *Config) { c.Sorting.UnsortedDir = "  " }, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+): it changes the working
// directory and restores the previous one when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
