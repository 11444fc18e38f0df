package model

import "time"

// AppConfig contains the startup settings of the timer.
type AppConfig struct {
	MinMinutes  float64
	MeanMinutes float64
	MaxMinutes  float64

	Direction       string
	RefreshInterval time.Duration
	KeepAwake       bool

	SoundFile   string
	SoundVolume float64

	LogLevel string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() AppConfig {
	return AppConfig{
		MinMinutes:      1,
		MeanMinutes:     5,
		MaxMinutes:      10,
		Direction:       "clockwise",
		RefreshInterval: 100 * time.Millisecond,
		KeepAwake:       true,
		SoundVolume:     0,
		LogLevel:        "info",
	}
}
