package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ekisa-team/ckmirror/internal/envvar"
)

// DefaultConfigPath returns the default path for the ckmirror config directory.
func DefaultConfigPath() string {
	if p := os.Getenv(envvar.CkmirrorConfigPath); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "ckmirror", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "ckmirror")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "ckmirror")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "ckmirror")
		}
		return filepath.Join(home, ".config", "ckmirror")
	}
}

// DefaultDataPath returns the default local root for fetched checkpoints.
func DefaultDataPath() string {
	if p := os.Getenv(envvar.CkmirrorDataPath); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "ckmirror", "checkpoints")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "ckmirror", "checkpoints")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "ckmirror", "checkpoints")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "ckmirror", "checkpoints")
		}
		return filepath.Join(home, ".cache", "ckmirror", "checkpoints")
	}
}
