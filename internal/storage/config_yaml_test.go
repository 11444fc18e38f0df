package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pigstimer/internal/core/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
}

func TestLoadConfig_AppliesValues(t *testing.T) {
	path := writeConfig(t, `
min_minutes: 0.54
mean_minutes: 2
max_minutes: 4
direction: anticlockwise
refresh_interval_ms: 250
keep_awake: false
sound_file: /tmp/grunt.wav
sound_volume: -1.5
log_level: debug
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, config.MinMinutes)
	assert.Equal(t, 2.0, config.MeanMinutes)
	assert.Equal(t, 4.0, config.MaxMinutes)
	assert.Equal(t, "anticlockwise", config.Direction)
	assert.Equal(t, 250*time.Millisecond, config.RefreshInterval)
	assert.False(t, config.KeepAwake)
	assert.Equal(t, "/tmp/grunt.wav", config.SoundFile)
	assert.Equal(t, -1.5, config.SoundVolume)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfig_IgnoresInvalidValues(t *testing.T) {
	path := writeConfig(t, `
min_minutes: 6
direction: sideways
refresh_interval_ms: -3
sound_volume: 9
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	defaults := model.DefaultConfig()
	assert.Equal(t, defaults.MinMinutes, config.MinMinutes)
	assert.Equal(t, defaults.MeanMinutes, config.MeanMinutes)
	assert.Equal(t, defaults.Direction, config.Direction)
	assert.Equal(t, defaults.RefreshInterval, config.RefreshInterval)
	assert.Equal(t, defaults.SoundVolume, config.SoundVolume)
	assert.True(t, config.KeepAwake)
}

func TestLoadConfig_PartialBoundsMergeWithDefaults(t *testing.T) {
	path := writeConfig(t, "max_minutes: 20\n")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1.0, config.MinMinutes)
	assert.Equal(t, 5.0, config.MeanMinutes)
	assert.Equal(t, 20.0, config.MaxMinutes)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "min_minutes: [1, 2\n")

	config, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
}

func TestDefaultConfigPath(t *testing.T) {
	path, err := DefaultConfigPath("PigsTimer")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("PigsTimer", configFileName), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
