package cli

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/babarot/fileops/internal/elevate"
)

const helperName = "fileops-helper"

// escalator builds the configured elevation client. Nil means
// escalation is off.
func (c CLI) escalator() elevate.Escalator {
	cfg := c.config.Core.Elevation
	if !cfg.Enabled {
		return nil
	}

	var esc elevate.Escalator
	switch cfg.Mode {
	case "exec":
		helper, err := helperPath()
		if err != nil {
			slog.Warn("elevation helper not found, escalation disabled", "error", err)
			return nil
		}
		// privilege launchers drop the environment, so paths travel as flags
		args := []string{"--recycle-bin", c.config.RecycleBinPath()}
		if c.option.Config != "" {
			args = append(args, "--config", c.option.Config)
		}
		esc = elevate.NewExecClient(cfg.Command, helper, args...)
	default:
		esc = elevate.NewSocketClient(c.config.HelperSocket())
	}
	slog.Debug("elevation configured", "mode", cfg.Mode, "timeout", c.config.ElevationTimeout())
	return elevate.WithTimeout(esc, c.config.ElevationTimeout())
}

// helperPath prefers the helper installed next to the running binary
func helperPath() (string, error) {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), helperName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return exec.LookPath(helperName)
}
