package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// configFileNames lists the files searched for configuration, in order.
var configFileNames = []string{
	".bumpversion.toml",
	"pyproject.toml",
	".bumpversion.cfg",
	"setup.cfg",
}

// Discover searches dir for a configuration file carrying bumpversion
// settings and returns its path. Returns "" when none is found.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, _, err := LoadFromFile(path)
		if err == nil && cfg != nil {
			return path
		}
	}
	return ""
}

// LoadFromFile reads and parses a configuration file, choosing the dialect
// by extension. Returns a nil Config when the file carries no bumpversion
// section.
func LoadFromFile(path string) (*Config, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FormatTOML, fmt.Errorf("reading config file: %w", err)
	}

	if strings.HasSuffix(path, ".toml") {
		cfg, err := LoadTOML(data)
		return cfg, FormatTOML, err
	}
	cfg, err := LoadINI(data)
	return cfg, FormatINI, err
}
