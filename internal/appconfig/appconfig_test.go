// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/benjmark/internal/settings"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benjmark.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad verifies a valid file loads with defaults applied and that
// malformed, incomplete or missing files are rejected.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
        "root": "../benchmarks/fibonacci",
        "keys": ["cpp", "clojure"],
        "settings": {"outputprefix": "tmpfib", "sizeformat": "{:d} points", "xlabel": "Nth number"},
        "commands": {"cpp": ["./fibonacci"]}
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.Root != "../benchmarks/fibonacci" || len(cfg.Keys) != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("ConfigPath = %q", cfg.ConfigPath)
	}
	if cfg.TimeoutSeconds != 600 || cfg.RunTimeout() != 600*time.Second {
		t.Fatalf("expected default timeout of 600s, got %d / %v", cfg.TimeoutSeconds, cfg.RunTimeout())
	}
	if cfg.LogFilePath() != "" {
		t.Fatalf("expected no log file, got %q", cfg.LogFilePath())
	}

	invalid := []string{
		`{"root": "r", "keys": [`,
		`{"keys": ["cpp"]}`,
		`{"root": "r", "keys": []}`,
	}
	for _, content := range invalid {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("Load(%s) succeeded, want error", content)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil || !strings.Contains(err.Error(), "no configuration file") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestReportSettings(t *testing.T) {
	cfg := Config{Settings: map[string]any{"outputprefix": "tmpfib", "width": 12.0}}

	s, err := cfg.ReportSettings([]string{"outputprefix=override", "xlabel=Nth number"})
	if err != nil {
		t.Fatalf("ReportSettings error: %v", err)
	}
	if s.OutputPrefix() != "override" || s.XLabel() != "Nth number" || s.Width() != 12 {
		t.Fatalf("unexpected settings: prefix=%q xlabel=%q width=%v", s.OutputPrefix(), s.XLabel(), s.Width())
	}

	bad := Config{Settings: map[string]any{"nope": 1}}
	if _, err := bad.ReportSettings(nil); !errors.Is(err, settings.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if _, err := cfg.ReportSettings([]string{"broken"}); !errors.Is(err, settings.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Root:     "bench",
		Keys:     []string{"cpp", "go"},
		Settings: map[string]any{"xlabel": "n"},
		Commands: map[string][]string{"go": {"bin/fibonacci"}},
	}
	ShowConfig(&buf, "", cfg, true)
	out := buf.String()
	for _, want := range []string{"No config file loaded", "Results Root: bench", "cpp, go", "xlabel = n", "go: bin/fibonacci", "(stdout only)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
