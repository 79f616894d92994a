package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"mediasort/internal"
)

func TestConfigInit_WritesLoadableDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "mediasort.toml")

	if _, err := executeCommand(t, "config", "init", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	conf, err := internal.LoadConfig(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if conf.Sorting.PathFormat != internal.DefaultPathFormat || !conf.Copy.Verify {
		t.Errorf("unexpected config %+v", conf)
	}

	if _, err := executeCommand(t, "config", "init", path); err == nil {
		t.Error("expected refusal to overwrite without --force")
	}
	if _, err := executeCommand(t, "config", "init", "--force", path); err != nil {
		t.Errorf("--force overwrite failed: %v", err)
	}
}

func TestConfigShow_ReflectsFile(t *testing.T) {
	path := writeConfig(t, `
[sorting]
path_format = "%Y-%m-%d"
supported_extensions = "JPG, heic"
`)
	out, err := executeCommand(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"path_format = '%Y-%m-%d'", "'.jpg'", "'.heic'"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}
