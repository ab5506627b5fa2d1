// Package config loads runtime settings for the fortest library and CLI.
//
// Settings come from a YAML file named by $FORTEST_CONFIG. A missing
// variable means defaults. Unknown keys are rejected, and the decoded values
// are checked against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/amstokely/fortest/internal/assertion"
	"github.com/amstokely/fortest/internal/report"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "FORTEST_CONFIG"

//go:embed schema.cue
var schemaCUE []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid fortest config")

// Config is the decoded configuration file.
type Config struct {
	// ResultsDB is the SQLite path for persisted results. Empty disables
	// persistence.
	ResultsDB string `yaml:"results_db" json:"results_db"`

	// Color is auto, always or never.
	Color string `yaml:"color" json:"color"`

	// Verbosity is the default assertion verbosity: quiet, fail_only or all.
	Verbosity string `yaml:"verbosity" json:"verbosity"`

	// LogLevel is the diagnostics level: debug, info, warn or error.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Color:     string(report.ColorAuto),
		Verbosity: assertion.FailOnly.String(),
		LogLevel:  "warn",
	}
}

// FromEnv loads the file named by $FORTEST_CONFIG, or returns defaults when
// the variable is unset or empty.
func FromEnv() (Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Keys left
// out of the document keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	value := def.Unify(ctx.Encode(c))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// AssertVerbosity returns the configured default assertion verbosity.
func (c Config) AssertVerbosity() assertion.Verbosity {
	v, ok := assertion.ParseVerbosity(c.Verbosity)
	if !ok {
		return assertion.FailOnly
	}
	return v
}

// ColorMode returns the configured console colour mode.
func (c Config) ColorMode() report.ColorMode {
	switch report.ColorMode(c.Color) {
	case report.ColorAlways, report.ColorNever:
		return report.ColorMode(c.Color)
	default:
		return report.ColorAuto
	}
}

// SlogLevel maps LogLevel onto slog levels. Unknown values mean warn.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Logger builds a text logger at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()}))
}
