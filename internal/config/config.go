// Package config loads grade-analyzer settings.
//
// Settings come from, in increasing precedence: built-in defaults, a TOML file
// (default ~/.grade-analyzer/config.toml), and GRADE_ANALYZER_* environment
// variables. Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/rcliao/grade-analyzer/internal/report"
	"github.com/rcliao/grade-analyzer/internal/verify"
)

const (
	dirName  = ".grade-analyzer"
	fileName = "config.toml"

	EnvConfig = "GRADE_ANALYZER_CONFIG"
)

// Config is the complete configuration.
type Config struct {
	Log     LogConfig           `toml:"log"`
	Shell   ShellConfig         `toml:"shell"`
	Report  ReportConfig        `toml:"report"`
	Profile ProfileConfig       `toml:"profile"`
	Verify  verify.Expectations `toml:"verify"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `toml:"level"`
}

// ShellConfig controls interactive input.
type ShellConfig struct {
	History     bool   `toml:"history"`
	HistoryFile string `toml:"history_file"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	// Format is text, json or yaml.
	Format string `toml:"format"`
}

// ProfileConfig controls the profile builder.
type ProfileConfig struct {
	// CurrentYear overrides the clock year when non-zero.
	CurrentYear int `toml:"current_year"`
}

// Dir returns the per-user settings directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, dirName)
}

// Path returns the config file path: $GRADE_ANALYZER_CONFIG or the default.
func Path() string {
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return filepath.Join(Dir(), fileName)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "warn"},
		Shell:  ShellConfig{History: true, HistoryFile: filepath.Join(Dir(), "history")},
		Report: ReportConfig{Format: string(report.FormatText)},
		Verify: verify.DefaultExpectations(),
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies GRADE_ANALYZER_* variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("GRADE_ANALYZER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("GRADE_ANALYZER_FORMAT"); v != "" {
		c.Report.Format = v
	}
	if v := os.Getenv("GRADE_ANALYZER_HISTORY_FILE"); v != "" {
		c.Shell.HistoryFile = v
	}
	if v := os.Getenv("GRADE_ANALYZER_NO_HISTORY"); v != "" {
		if off, err := strconv.ParseBool(v); err == nil && off {
			c.Shell.History = false
		}
	}
	if v := os.Getenv("GRADE_ANALYZER_VERIFY_DIR"); v != "" {
		c.Verify.Dir = v
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		errs = append(errs, fmt.Errorf("report.format: %w", err))
	}
	if c.Profile.CurrentYear < 0 {
		errs = append(errs, fmt.Errorf("profile.current_year: must not be negative, got %d", c.Profile.CurrentYear))
	}
	if c.Verify.DBFile == "" || c.Verify.QueriesFile == "" {
		errs = append(errs, errors.New("verify: db_file and queries_file are required"))
	}
	for name, w := range map[string]verify.SizeWindow{"db_size": c.Verify.DBSize, "queries_size": c.Verify.QueriesSize} {
		if w.Min < 0 || w.Max < w.Min {
			errs = append(errs, fmt.Errorf("verify.%s: invalid window [%d, %d]", name, w.Min, w.Max))
		}
	}
	return errors.Join(errs...)
}

// ReportFormat returns the validated report format.
func (c *Config) ReportFormat() report.Format {
	f, _ := report.ParseFormat(c.Report.Format)
	return f
}

// Level returns the configured log level, defaulting to warn.
func (c *Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.WarnLevel
	}
	return l
}
