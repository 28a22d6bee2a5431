// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultParticlePath builds the default particle override path for a language.
func DefaultParticlePath(lang string) string {
	return filepath.Join(XDGConfigHome(), "vdoseg", "particles_"+lang+".txt")
}

// DefaultDBPath returns the default path for the calibration database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "vdoseg", "vdoseg.db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "vdoseg", "config.toml")
}
