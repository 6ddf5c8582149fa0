package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestParseDefaults(t *testing.T) {
	path := writeConfig(t, "core:\n  confirm_delete: false\n")

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Core.ConfirmDelete {
		t.Error("confirm_delete should be overridden to false")
	}
	if got := cfg.CompletionBannerAfter(); got != 10*time.Second {
		t.Errorf("CompletionBannerAfter() = %v, want 10s", got)
	}
	if got := cfg.ElevationTimeout(); got != 0 {
		t.Errorf("ElevationTimeout() = %v, want 0", got)
	}
	if cfg.Core.Elevation.Mode != "socket" {
		t.Errorf("elevation mode = %q, want socket", cfg.Core.Elevation.Mode)
	}
	if cfg.Core.Banner.ProgressThreshold != 3 {
		t.Errorf("progress threshold = %d, want 3", cfg.Core.Banner.ProgressThreshold)
	}
}

func TestParseValues(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
core:
  recycle_bin:
    path: `+filepath.Join(dir, "bin")+`
  elevation:
    mode: exec
    command: sudo
    timeout: 30s
  banner:
    completion_after: 1m
`)

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.RecycleBinPath() != filepath.Join(dir, "bin") {
		t.Errorf("RecycleBinPath() = %q", cfg.RecycleBinPath())
	}
	if cfg.ElevationTimeout() != 30*time.Second {
		t.Errorf("ElevationTimeout() = %v, want 30s", cfg.ElevationTimeout())
	}
	if cfg.CompletionBannerAfter() != time.Minute {
		t.Errorf("CompletionBannerAfter() = %v, want 1m", cfg.CompletionBannerAfter())
	}
	if cfg.Core.Elevation.Command != "sudo" {
		t.Errorf("command = %q, want sudo", cfg.Core.Elevation.Command)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		field    string
	}{
		{"bad mode", "core:\n  elevation:\n    mode: carrier-pigeon\n", "mode"},
		{"bad level", "core:\n  logging:\n    level: chatty\n", "level"},
		{"bad size", "core:\n  logging:\n    rotation:\n      max_size: lots\n", "max_size"},
		{"bad duration", "core:\n  banner:\n    completion_after: soon\n", "completion_after"},
		{"bad color", "ui:\n  style:\n    prompt: purple\n", "prompt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.contents))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %q", err, tt.field)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "Example YAML file contents") {
		t.Errorf("error should include an example config, got %q", err)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensureConfigFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "confirm_delete: true") {
		t.Errorf("default contents missing, got:\n%s", data)
	}
	// second call keeps the existing file
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensureConfigFile again: %v", err)
	}
}

func TestRenderDeprecation(t *testing.T) {
	info := deprecatedFields["trash_dir"]
	out := renderDeprecation("trash_dir", &info, info.RemovalDate.Add(time.Hour))
	for _, want := range []string{"trash_dir", "core.recycle_bin.path", "Removed at"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FILEOPS_TEST_DIR", "bins")

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/bin", filepath.Join(home, "bin")},
		{"$HOME/$FILEOPS_TEST_DIR", filepath.Join(home, "bins")},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		got, err := expandPath(tt.in)
		if err != nil {
			t.Fatalf("expandPath(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
