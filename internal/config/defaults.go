package config

// Defaults applied when the configuration leaves a field unset.
const (
	DefaultParsePattern     = `(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)`
	DefaultSerializePattern = "{major}.{minor}.{patch}"
	DefaultSearch           = "{current_version}"
	DefaultReplace          = "{new_version}"
	DefaultTagName          = "v{new_version}"
	DefaultTagMessage       = "Bump version: {current_version} → {new_version}"
	DefaultCommitMessage    = "Bump version: {current_version} → {new_version}"
)

// applyDefaults fills every unset global field with its default value.
func applyDefaults(cfg *Config) {
	if cfg.Parse == nil {
		cfg.Parse = stringPtr(DefaultParsePattern)
	}
	if cfg.Serialize == nil {
		cfg.Serialize = []string{DefaultSerializePattern}
	}
	if cfg.Search == nil {
		cfg.Search = stringPtr(DefaultSearch)
	}
	if cfg.Replace == nil {
		cfg.Replace = stringPtr(DefaultReplace)
	}
	if cfg.Regex == nil {
		cfg.Regex = boolPtr(false)
	}
	if cfg.AllowDirty == nil {
		cfg.AllowDirty = boolPtr(false)
	}
	if cfg.IgnoreMissingVersion == nil {
		cfg.IgnoreMissingVersion = boolPtr(false)
	}
	if cfg.IgnoreMissingFiles == nil {
		cfg.IgnoreMissingFiles = boolPtr(false)
	}
	if cfg.Tag == nil {
		cfg.Tag = boolPtr(false)
	}
	if cfg.TagName == nil {
		cfg.TagName = stringPtr(DefaultTagName)
	}
	if cfg.TagMessage == nil {
		cfg.TagMessage = stringPtr(DefaultTagMessage)
	}
	if cfg.Commit == nil {
		cfg.Commit = boolPtr(false)
	}
	if cfg.CommitMessage == nil {
		cfg.CommitMessage = stringPtr(DefaultCommitMessage)
	}
}
