package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/k1LoW/duration"
)

var (
	sizeRe  = regexp.MustCompile(`^\d+(B|KB|MB|GB|TB|PB)$`)
	colorRe = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	return sizeRe.MatchString(strings.ToUpper(fl.Field().String()))
}

// validateDuration accepts anything k1LoW/duration understands ("10s", "3 days")
func validateDuration(fl validator.FieldLevel) bool {
	_, err := duration.Parse(fl.Field().String())
	return err == nil
}

// validateColorCode checks if the field contains a valid hex color code.
func validateColorCode(fl validator.FieldLevel) bool {
	return colorRe.MatchString(fl.Field().String())
}

// expandPath resolves "~", "~/..." and $VARS, then makes the result absolute
func expandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", path, err)
		}
		path = home + strings.TrimPrefix(path, "~")
	}
	return filepath.Abs(path)
}

// Deprecation contains metadata about field deprecation
type Deprecation struct {
	DeprecatedAt time.Time
	RemovalDate  time.Time
	Alternative  string
	StrictMode   bool
}

var deprecatedFields = map[string]Deprecation{
	"trash_dir": {
		DeprecatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		RemovalDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Alternative:  "core.recycle_bin.path",
		StrictMode:   false,
	},
}

// validateDeprecated warns about deprecated fields and fails only for
// fields in strict mode
func validateDeprecated(fl validator.FieldLevel) bool {
	if fl.Field().String() == "" {
		return true
	}

	name := fl.FieldName()
	info, exists := deprecatedFields[name]
	if !exists {
		printDeprecation(name, nil)
		return true
	}

	printDeprecation(name, &info)
	return !info.StrictMode
}

// validateDirPath is a validation function for directory paths that works on any OS.
// The stock "dirpath" validator rejects valid Windows paths such as
// "C:\Users\name\.dir\".
//
// Empty strings are considered invalid.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	fi, err := os.Stat(filepath.Clean(path))
	if err == nil {
		return fi.IsDir()
	}
	// a missing directory is fine, it is created on first use
	return os.IsNotExist(err)
}
