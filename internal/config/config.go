// Package config provides configuration loading for go-bumpversion: TOML
// (.bumpversion.toml or a pyproject.toml [tool.bumpversion] table) and the
// legacy INI format (.bumpversion.cfg, setup.cfg), plus defaulting and
// finalization into the compiled form the bump engine consumes.
package config

// Config is the raw, unresolved configuration. All optional fields are
// pointers so that file values, defaults, and CLI overrides merge cleanly.
type Config struct {
	Global
	Files []FileConfig          `toml:"files"`
	Parts map[string]PartConfig `toml:"parts"`
}

// Global holds the top-level settings shared by every file change unless
// overridden per file.
type Global struct {
	CurrentVersion       *string  `toml:"current_version"`
	AllowDirty           *bool    `toml:"allow_dirty"`
	Parse                *string  `toml:"parse"`
	Serialize            []string `toml:"serialize"`
	Search               *string  `toml:"search"`
	Replace              *string  `toml:"replace"`
	Regex                *bool    `toml:"regex"`
	IgnoreMissingVersion *bool    `toml:"ignore_missing_version"`
	IgnoreMissingFiles   *bool    `toml:"ignore_missing_files"`
	Tag                  *bool    `toml:"tag"`
	TagName              *string  `toml:"tag_name"`
	TagMessage           *string  `toml:"tag_message"`
	Commit               *bool    `toml:"commit"`
	CommitMessage        *string  `toml:"message"`
}

// FileConfig configures one target file or glob pattern. Unset fields
// inherit from Global.
type FileConfig struct {
	Filename             *string  `toml:"filename"`
	Glob                 *string  `toml:"glob"`
	GlobExclude          []string `toml:"glob_exclude"`
	Parse                *string  `toml:"parse"`
	Serialize            []string `toml:"serialize"`
	Search               *string  `toml:"search"`
	Replace              *string  `toml:"replace"`
	Regex                *bool    `toml:"regex"`
	IgnoreMissingVersion *bool    `toml:"ignore_missing_version"`
	IgnoreMissingFile    *bool    `toml:"ignore_missing_file"`
	IncludeBumps         []string `toml:"include_bumps"`
	ExcludeBumps         []string `toml:"exclude_bumps"`
}

// PartConfig configures one version component.
type PartConfig struct {
	Values        []string `toml:"values"`
	FirstValue    *string  `toml:"first_value"`
	OptionalValue *string  `toml:"optional_value"`
	Independent   *bool    `toml:"independent"`
}

// Format identifies the configuration file dialect.
type Format int

const (
	FormatTOML Format = iota
	FormatINI
)

// Merge overlays non-nil fields of override onto the receiver. Used for CLI
// flag overrides on top of file configuration.
func (g *Global) Merge(override *Global) {
	if override == nil {
		return
	}
	if override.CurrentVersion != nil {
		g.CurrentVersion = override.CurrentVersion
	}
	if override.AllowDirty != nil {
		g.AllowDirty = override.AllowDirty
	}
	if override.Parse != nil {
		g.Parse = override.Parse
	}
	if override.Serialize != nil {
		g.Serialize = override.Serialize
	}
	if override.Search != nil {
		g.Search = override.Search
	}
	if override.Replace != nil {
		g.Replace = override.Replace
	}
	if override.Regex != nil {
		g.Regex = override.Regex
	}
	if override.IgnoreMissingVersion != nil {
		g.IgnoreMissingVersion = override.IgnoreMissingVersion
	}
	if override.IgnoreMissingFiles != nil {
		g.IgnoreMissingFiles = override.IgnoreMissingFiles
	}
	if override.Tag != nil {
		g.Tag = override.Tag
	}
	if override.TagName != nil {
		g.TagName = override.TagName
	}
	if override.TagMessage != nil {
		g.TagMessage = override.TagMessage
	}
	if override.Commit != nil {
		g.Commit = override.Commit
	}
	if override.CommitMessage != nil {
		g.CommitMessage = override.CommitMessage
	}
}

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }
