package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./reelpick.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "reelpick", "config.toml")
}

func defaultDatabasePath() string {
	return filepath.Join(filepath.Dir(DefaultPath()), "reelpick.db")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. REELPICK_CONFIG environment variable
//  2. ./reelpick.toml (current directory)
//  3. $XDG_CONFIG_HOME/reelpick/config.toml
//  4. /etc/reelpick/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv("REELPICK_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("REELPICK_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./reelpick.toml",
		DefaultPath(),
		"/etc/reelpick/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("config not found, checked: %s", strings.Join(paths, ", "))
}
