// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Segment   SegmentConfig   `toml:"segment"`
	Calibrate CalibrateConfig `toml:"calibrate"`
}

// SegmentConfig maps segmentation settings.
type SegmentConfig struct {
	Lang           *string  `toml:"lang"`
	MaxDuration    *float64 `toml:"max-duration"`
	MinDuration    *float64 `toml:"min-duration"`
	MergeTolerance *float64 `toml:"merge-tolerance"`
	Particles      *string  `toml:"particles"`
}

// CalibrateConfig maps calibration and drift validation settings.
type CalibrateConfig struct {
	Profile        *string  `toml:"profile"`
	DriftThreshold *float64 `toml:"drift-threshold"`
	DB             *string  `toml:"db"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
