package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amstokely/fortest/internal/assertion"
	"github.com/amstokely/fortest/internal/report"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Empty(t, cfg.ResultsDB)
	assert.Equal(t, report.ColorAuto, cfg.ColorMode())
	assert.Equal(t, assertion.FailOnly, cfg.AssertVerbosity())
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
results_db: /tmp/fortest.db
color: never
verbosity: all
`))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/fortest.db", cfg.ResultsDB)
	assert.Equal(t, report.ColorNever, cfg.ColorMode())
	assert.Equal(t, assertion.All, cfg.AssertVerbosity())
	// Not in the document, so the default survives
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"unknown key", "colour: never\n", false},
		{"bad color", "color: sometimes\n", true},
		{"bad verbosity", "verbosity: loud\n", true},
		{"bad log level", "log_level: trace\n", true},
		{"malformed yaml", "color: [\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fortest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "fortest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: always\n"), 0o644))
	t.Setenv(EnvVar, path)

	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, report.ColorAlways, cfg.ColorMode())
}
