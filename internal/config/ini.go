package config

import (
	"fmt"
	"strings"

	ini "gopkg.in/ini.v1"
)

// Legacy INI section prefixes (.bumpversion.cfg / setup.cfg).
const (
	iniSection    = "bumpversion"
	iniFilePrefix = "bumpversion:file:"
	iniGlobPrefix = "bumpversion:glob:"
	iniPartPrefix = "bumpversion:part:"
)

// LoadINI parses a legacy [bumpversion] configuration from raw INI bytes.
// Returns nil when the document has no bumpversion section.
func LoadINI(data []byte) (*Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("parsing INI config: %w", err)
	}

	root, err := f.GetSection(iniSection)
	if err != nil {
		return nil, nil
	}

	cfg := &Config{Parts: map[string]PartConfig{}}
	if err := parseINIGlobals(root, &cfg.Global); err != nil {
		return nil, err
	}

	for _, section := range f.Sections() {
		name := section.Name()
		switch {
		case strings.HasPrefix(name, iniFilePrefix):
			fc, err := parseINIFile(section)
			if err != nil {
				return nil, err
			}
			fc.Filename = stringPtr(strings.TrimPrefix(name, iniFilePrefix))
			cfg.Files = append(cfg.Files, fc)
		case strings.HasPrefix(name, iniGlobPrefix):
			fc, err := parseINIFile(section)
			if err != nil {
				return nil, err
			}
			fc.Glob = stringPtr(strings.TrimPrefix(name, iniGlobPrefix))
			cfg.Files = append(cfg.Files, fc)
		case strings.HasPrefix(name, iniPartPrefix):
			cfg.Parts[strings.TrimPrefix(name, iniPartPrefix)] = parseINIPart(section)
		}
	}
	return cfg, nil
}

func parseINIGlobals(section *ini.Section, g *Global) error {
	for _, key := range section.Keys() {
		value := key.String()
		var err error
		switch key.Name() {
		case "current_version":
			g.CurrentVersion = stringPtr(value)
		case "parse":
			g.Parse = stringPtr(value)
		case "serialize":
			g.Serialize = splitMultiline(value)
		case "search":
			g.Search = stringPtr(value)
		case "replace":
			g.Replace = stringPtr(value)
		case "regex":
			g.Regex, err = parseINIBool(key.Name(), value)
		case "allow_dirty":
			g.AllowDirty, err = parseINIBool(key.Name(), value)
		case "ignore_missing_version":
			g.IgnoreMissingVersion, err = parseINIBool(key.Name(), value)
		case "ignore_missing_files":
			g.IgnoreMissingFiles, err = parseINIBool(key.Name(), value)
		case "tag":
			g.Tag, err = parseINIBool(key.Name(), value)
		case "tag_name":
			g.TagName = stringPtr(value)
		case "tag_message":
			g.TagMessage = stringPtr(value)
		case "commit":
			g.Commit, err = parseINIBool(key.Name(), value)
		case "message":
			g.CommitMessage = stringPtr(value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseINIFile(section *ini.Section) (FileConfig, error) {
	var fc FileConfig
	for _, key := range section.Keys() {
		value := key.String()
		var err error
		switch key.Name() {
		case "parse":
			fc.Parse = stringPtr(value)
		case "serialize":
			fc.Serialize = splitMultiline(value)
		case "search":
			fc.Search = stringPtr(value)
		case "replace":
			fc.Replace = stringPtr(value)
		case "regex":
			fc.Regex, err = parseINIBool(key.Name(), value)
		case "ignore_missing_version":
			fc.IgnoreMissingVersion, err = parseINIBool(key.Name(), value)
		case "ignore_missing_file":
			fc.IgnoreMissingFile, err = parseINIBool(key.Name(), value)
		case "glob_exclude":
			fc.GlobExclude = splitMultiline(value)
		case "include_bumps":
			fc.IncludeBumps = splitMultiline(value)
		case "exclude_bumps":
			fc.ExcludeBumps = splitMultiline(value)
		}
		if err != nil {
			return FileConfig{}, err
		}
	}
	return fc, nil
}

func parseINIPart(section *ini.Section) PartConfig {
	var pc PartConfig
	for _, key := range section.Keys() {
		value := key.String()
		switch key.Name() {
		case "values":
			pc.Values = splitMultiline(value)
		case "first_value":
			pc.FirstValue = stringPtr(value)
		case "optional_value":
			pc.OptionalValue = stringPtr(value)
		case "independent":
			if b, err := parseINIBool(key.Name(), value); err == nil {
				pc.Independent = b
			}
		}
	}
	return pc
}

// splitMultiline splits a configparser-style multiline value into its
// non-empty trimmed lines. Single-line values come back as one element.
func splitMultiline(value string) []string {
	var out []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseINIBool accepts the configparser boolean spellings, case-insensitive.
func parseINIBool(name, value string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "yes", "true", "on":
		return boolPtr(true), nil
	case "0", "no", "false", "off":
		return boolPtr(false), nil
	default:
		return nil, fmt.Errorf("invalid boolean %q for %s", value, name)
	}
}
