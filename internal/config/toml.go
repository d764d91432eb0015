package config

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// tomlDocument is the outer shape shared by .bumpversion.toml and
// pyproject.toml: both keep their settings under [tool.bumpversion].
type tomlDocument struct {
	Tool struct {
		Bumpversion *Config `toml:"bumpversion"`
	} `toml:"tool"`
}

// LoadTOML parses a [tool.bumpversion] configuration from raw TOML bytes.
// Returns nil when the document has no bumpversion table.
func LoadTOML(data []byte) (*Config, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing TOML config: %w", err)
	}
	return doc.Tool.Bumpversion, nil
}
