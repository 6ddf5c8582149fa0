package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname  = ".config"
	defaultXDGDataDirname    = ".local/share"
	defaultRecycleBinDirname = ".recycle-bin"
	appName                  = "fileops"
)

var (
	FILEOPS_CONFIG_PATH string

	FILEOPS_LOG_PATH string

	FILEOPS_RECYCLE_BIN string

	FILEOPS_HELPER_SOCKET string

	FILEOPS_AUDIT_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")
	Load()
}

// Load resolves every path from the environment, falling back to the
// XDG base directory layout.
// Follow https://specifications.freedesktop.org/basedir-spec/latest/
func Load() {
	homeDir, _ := os.UserHomeDir()

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(homeDir, defaultXDGConfigDirname)
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, defaultXDGDataDirname)
	}

	FILEOPS_CONFIG_PATH = getenv("FILEOPS_CONFIG_PATH", filepath.Join(configDir, appName, "config.yaml"))
	FILEOPS_LOG_PATH = getenv("FILEOPS_LOG_PATH", filepath.Join(dataDir, appName, "debug.log"))
	FILEOPS_RECYCLE_BIN = getenv("FILEOPS_RECYCLE_BIN", filepath.Join(homeDir, defaultRecycleBinDirname))
	FILEOPS_AUDIT_PATH = getenv("FILEOPS_AUDIT_PATH", filepath.Join(dataDir, appName, "audit.db"))

	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = os.TempDir()
	}
	FILEOPS_HELPER_SOCKET = getenv("FILEOPS_HELPER_SOCKET", filepath.Join(runtimeDir, appName+"-helper.sock"))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
