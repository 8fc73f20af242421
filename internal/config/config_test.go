package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{EnvDevice, EnvPreset, EnvSnapshot, EnvLogLevel, EnvFamily, EnvMinSpan, EnvDeadZone, EnvBrightness, EnvExposure} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, 0, cfg.Device)
	assert.Equal(t, DefaultPreset, cfg.Preset)
	assert.Equal(t, "final.png", cfg.Snapshot)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "tag36h11", cfg.Family)
	assert.Equal(t, 5000.0, cfg.MinSpan)
	assert.Equal(t, 0.05, cfg.DeadZone)
	assert.Zero(t, cfg.Brightness)
	assert.Zero(t, cfg.Exposure)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvDevice, "2")
	t.Setenv(EnvPreset, "720p")
	t.Setenv(EnvMinSpan, "2500")
	t.Setenv(EnvDeadZone, "0.1")
	t.Setenv(EnvCenterColor, "#ff0000")
	t.Setenv(EnvBrightness, "0.6")
	t.Setenv(EnvExposure, "-6")

	cfg := Load()
	assert.Equal(t, 2, cfg.Device)
	assert.Equal(t, "720p", cfg.Preset)
	assert.Equal(t, 2500.0, cfg.MinSpan)
	assert.Equal(t, 0.1, cfg.DeadZone)
	assert.Equal(t, "#ff0000", cfg.CenterColor)
	assert.Equal(t, 0.6, cfg.Brightness)
	assert.Equal(t, -6.0, cfg.Exposure)
}

func TestProduction(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	assert.True(t, Production())

	t.Setenv("GO_ENV", "development")
	assert.False(t, Production())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv(EnvDevice, "front")
	t.Setenv(EnvMinSpan, "big")

	cfg := Load()
	assert.Equal(t, 0, cfg.Device)
	assert.Equal(t, DefaultMinSpan, cfg.MinSpan)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tagview.env")
	require.NoError(t, os.WriteFile(path, []byte("TAGVIEW_FAMILY=tag25h9\nTAGVIEW_DEVICE=3\n"), 0o644))

	// Existing values win over the file
	t.Setenv(EnvDevice, "1")
	t.Setenv(EnvFamily, "")
	os.Unsetenv(EnvFamily)

	require.NoError(t, LoadDotEnv(path))

	cfg := Load()
	assert.Equal(t, "tag25h9", cfg.Family)
	assert.Equal(t, 1, cfg.Device)
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.env")
	require.NoError(t, os.WriteFile(path, []byte("TAGVIEW_FAMILY='unterminated\n"), 0o644))

	assert.Error(t, LoadDotEnv(path))
}
