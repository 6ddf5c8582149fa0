package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/fileops/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/k1LoW/duration"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core Core `yaml:"core"`
	UI   UI   `yaml:"ui"`
}

type Core struct {
	ConfirmDelete bool `yaml:"confirm_delete"`

	// TrashDir is kept only to point users at recycle_bin.path
	TrashDir string `yaml:"trash_dir,omitempty" validate:"deprecated"`

	RecycleBin RecycleBinConfig `yaml:"recycle_bin"`
	Elevation  ElevationConfig  `yaml:"elevation"`
	Banner     BannerConfig     `yaml:"banner"`
	Audit      AuditConfig      `yaml:"audit"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type RecycleBinConfig struct {
	Path   string       `yaml:"path" validate:"omitempty,validDirPath"`
	Filter FilterConfig `yaml:"filter"`
}

type FilterConfig struct {
	Include IncludeConfig `yaml:"include"`
	Exclude ExcludeConfig `yaml:"exclude"`
}

type IncludeConfig struct {
	Period int `yaml:"within_days" validate:"min=0"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Patterns []string   `yaml:"patterns"`
	Globs    []string   `yaml:"globs"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"omitempty,validSize"`
	Max string `yaml:"max" validate:"omitempty,validSize"`
}

type ElevationConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode" validate:"required,oneof=socket exec"`
	Socket  string `yaml:"socket"`
	Command string `yaml:"command"`
	// Timeout bounds one helper round trip; empty waits indefinitely
	Timeout string `yaml:"timeout" validate:"omitempty,validDuration"`
}

type BannerConfig struct {
	CompletionAfter   string `yaml:"completion_after" validate:"required,validDuration"`
	ProgressThreshold int    `yaml:"progress_threshold" validate:"min=0"`
}

type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Level    string         `yaml:"level" validate:"required,oneof=debug info warn error"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"min=1"`
}

type UI struct {
	Style StyleConfig `yaml:"style"`
}

type StyleConfig struct {
	Banner BannerStyle `yaml:"banner"`
	Prompt string      `yaml:"prompt" validate:"colorCode"`
}

type BannerStyle struct {
	Ongoing string `yaml:"ongoing" validate:"colorCode"`
	Success string `yaml:"success" validate:"colorCode"`
	Error   string `yaml:"error" validate:"colorCode"`
}

// CompletionBannerAfter is the minimum batch duration that earns a
// completion banner
func (c Config) CompletionBannerAfter() time.Duration {
	return parseDuration(c.Core.Banner.CompletionAfter, 10*time.Second)
}

// ElevationTimeout returns zero when no timeout is configured
func (c Config) ElevationTimeout() time.Duration {
	return parseDuration(c.Core.Elevation.Timeout, 0)
}

// RecycleBinPath returns the configured recycle bin root or the
// environment default
func (c Config) RecycleBinPath() string {
	if c.Core.RecycleBin.Path == "" {
		return env.FILEOPS_RECYCLE_BIN
	}
	return c.Core.RecycleBin.Path
}

// AuditPath returns the configured audit database or the environment default
func (c Config) AuditPath() string {
	if c.Core.Audit.Path == "" {
		return env.FILEOPS_AUDIT_PATH
	}
	return c.Core.Audit.Path
}

// HelperSocket returns the configured helper socket or the environment default
func (c Config) HelperSocket() string {
	if c.Core.Elevation.Socket == "" {
		return env.FILEOPS_HELPER_SOCKET
	}
	return c.Core.Elevation.Socket
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := duration.Parse(s)
	if err != nil {
		slog.Warn("invalid duration in config, using default", "value", s, "default", fallback)
		return fallback
	}
	return d
}

type configError struct {
	configPath string
	err        error
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't read the "%s" config file.
		Please try again after fixing it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.FILEOPS_CONFIG_PATH,
		defaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func defaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

// ensureConfigFile writes the default config when none exists yet
func ensureConfigFile(path string) error {
	if err := ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
	if os.IsExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	slog.Warn("created config file as it did not exist", "config-file", path)
	_, err = f.WriteString(defaultConfigContents())
	return err
}

func readConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError{configPath: path, err: err}
	}

	// unset keys keep their defaults
	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, configError{configPath: path, err: err}
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("validation error: Field %s, %q is invalid", verrs[0].Namespace(), verrs[0].Value())
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{
		&c.Core.RecycleBin.Path,
		&c.Core.Audit.Path,
		&c.Core.Elevation.Socket,
	} {
		if *p == "" {
			continue
		}
		expanded, err := expandPath(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

func initValidator() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validDuration", validateDuration)
	_ = validate.RegisterValidation("validDirPath", validateDirPath)
	_ = validate.RegisterValidation("colorCode", validateColorCode)
	_ = validate.RegisterValidation("deprecated", validateDeprecated)
}

// Parse loads the config at path. An empty path means the default
// location, which is created with default contents when missing.
func Parse(path string) (*Config, error) {
	initValidator()

	if path == "" {
		path = env.FILEOPS_CONFIG_PATH
		if err := ensureConfigFile(path); err != nil {
			return nil, parsingError{err: configError{configPath: path, err: err}}
		}
	}
	slog.Debug("config file found", "config-file", path)

	cfg, err := readConfigFile(path)
	if err != nil {
		return nil, parsingError{err: err}
	}
	return cfg, nil
}
