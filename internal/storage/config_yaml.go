package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"pigstimer/internal/core/distribution"
	"pigstimer/internal/core/model"
	"pigstimer/internal/platform"
)

const configFileName = "config.yaml"

const (
	minSoundVolume = -5.0
	maxSoundVolume = 2.0
)

type yamlConfig struct {
	MinMinutes        *float64 `yaml:"min_minutes"`
	MeanMinutes       *float64 `yaml:"mean_minutes"`
	MaxMinutes        *float64 `yaml:"max_minutes"`
	Direction         string   `yaml:"direction"`
	RefreshIntervalMS int      `yaml:"refresh_interval_ms"`
	KeepAwake         *bool    `yaml:"keep_awake"`
	SoundFile         string   `yaml:"sound_file"`
	SoundVolume       *float64 `yaml:"sound_volume"`
	LogLevel          string   `yaml:"log_level"`
}

// DefaultConfigPath returns <config dir>/<appName>/config.yaml.
func DefaultConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// LoadConfig reads startup settings from YAML.
// If the file does not exist, the defaults are returned.
func LoadConfig(path string) (model.AppConfig, error) {
	config := model.DefaultConfig()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&config, fileData)
	return config, nil
}

func applyYamlConfig(config *model.AppConfig, fileData yamlConfig) {
	bounds := distribution.Bounds{
		Min:  config.MinMinutes,
		Mean: config.MeanMinutes,
		Max:  config.MaxMinutes,
	}
	if fileData.MinMinutes != nil {
		bounds.Min = *fileData.MinMinutes
	}
	if fileData.MeanMinutes != nil {
		bounds.Mean = *fileData.MeanMinutes
	}
	if fileData.MaxMinutes != nil {
		bounds.Max = *fileData.MaxMinutes
	}
	bounds = bounds.Rounded()
	if bounds.Min >= 0 && bounds.Validate() == nil {
		config.MinMinutes = bounds.Min
		config.MeanMinutes = bounds.Mean
		config.MaxMinutes = bounds.Max
	}

	if fileData.Direction == "clockwise" || fileData.Direction == "anticlockwise" {
		config.Direction = fileData.Direction
	}
	if fileData.RefreshIntervalMS > 0 {
		config.RefreshInterval = time.Duration(fileData.RefreshIntervalMS) * time.Millisecond
	}
	if fileData.KeepAwake != nil {
		config.KeepAwake = *fileData.KeepAwake
	}
	if fileData.SoundFile != "" {
		config.SoundFile = fileData.SoundFile
	}
	if fileData.SoundVolume != nil && *fileData.SoundVolume >= minSoundVolume && *fileData.SoundVolume <= maxSoundVolume {
		config.SoundVolume = *fileData.SoundVolume
	}
	if fileData.LogLevel != "" {
		config.LogLevel = fileData.LogLevel
	}
}
