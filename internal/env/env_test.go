package env

import (
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("FILEOPS_CONFIG_PATH", "")
	t.Setenv("FILEOPS_LOG_PATH", "/custom/debug.log")
	t.Setenv("FILEOPS_RECYCLE_BIN", "/custom/bin")
	t.Setenv("FILEOPS_HELPER_SOCKET", "")
	t.Setenv("FILEOPS_AUDIT_PATH", "")
	Load()

	tests := []struct {
		name, got, want string
	}{
		{"config", FILEOPS_CONFIG_PATH, filepath.Join("/xdg/config", "fileops", "config.yaml")},
		{"log", FILEOPS_LOG_PATH, "/custom/debug.log"},
		{"bin", FILEOPS_RECYCLE_BIN, "/custom/bin"},
		{"audit", FILEOPS_AUDIT_PATH, filepath.Join("/xdg/data", "fileops", "audit.db")},
		{"socket", FILEOPS_HELPER_SOCKET, filepath.Join("/run/user/1000", "fileops-helper.sock")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
