package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"go-bumpversion/internal/files"
	"go-bumpversion/internal/template"
	"go-bumpversion/internal/version"
)

// Finalized is the compiled configuration the bump engine consumes: every
// pattern parsed, every template compiled, every file bound to its ordered
// change list. Read-only after Finalize.
type Finalized struct {
	CurrentVersion       string
	AllowDirty           bool
	IgnoreMissingVersion bool
	IgnoreMissingFiles   bool

	ParsePattern *regexp.Regexp
	Serialize    []*template.FormatString
	Search       *template.RegexTemplate
	Replace      *template.FormatString

	Tag        bool
	TagName    *template.FormatString
	TagMessage *template.FormatString

	Commit        bool
	CommitMessage *template.FormatString

	// Components is the version schema in precedence order, derived from
	// the parse pattern's named capture groups.
	Components []version.SpecEntry

	// FileMap binds every configured file to its ordered change list.
	FileMap files.FileMap

	// ConfigFile is the path the configuration was loaded from; ""
	// when the configuration was built without a file.
	ConfigFile string

	// ConfigFileChange rewrites the current_version entry of the config
	// file itself after a bump. Nil when ConfigFile is "".
	ConfigFileChange *files.FileChange
}

// VersionSpec builds the version schema from the finalized components.
func (f *Finalized) VersionSpec() *version.VersionSpec {
	return version.NewVersionSpec(f.Components)
}

// DefaultFileChange builds a change carrying only the global settings, used
// for files named on the command line that have no configured entry.
func (f *Finalized) DefaultFileChange() *files.FileChange {
	return &files.FileChange{
		ParsePattern:         f.ParsePattern,
		SerializePatterns:    f.Serialize,
		Search:               f.Search,
		Replace:              f.Replace,
		IgnoreMissingVersion: f.IgnoreMissingVersion,
		IgnoreMissingFile:    f.IgnoreMissingFiles,
	}
}

// Finalize compiles raw into its executable form. Relative file paths and
// glob patterns resolve against baseDir. configPath and format describe the
// file raw was loaded from; configPath may be "".
func Finalize(raw *Config, configPath string, format Format, baseDir string) (*Finalized, error) {
	applyDefaults(raw)

	parsePattern, err := regexp.Compile(*raw.Parse)
	if err != nil {
		return nil, fmt.Errorf("invalid parse pattern %q: %w", *raw.Parse, err)
	}

	serialize, err := parseSerializePatterns(raw.Serialize)
	if err != nil {
		return nil, err
	}

	search, err := template.ParseRegex(*raw.Search, *raw.Regex)
	if err != nil {
		return nil, err
	}
	replace, err := template.Parse(*raw.Replace)
	if err != nil {
		return nil, err
	}
	tagName, err := template.Parse(*raw.TagName)
	if err != nil {
		return nil, err
	}
	tagMessage, err := template.Parse(*raw.TagMessage)
	if err != nil {
		return nil, err
	}
	commitMessage, err := template.Parse(*raw.CommitMessage)
	if err != nil {
		return nil, err
	}

	components, err := componentEntries(parsePattern, raw.Parts)
	if err != nil {
		return nil, err
	}

	f := &Finalized{
		AllowDirty:           *raw.AllowDirty,
		IgnoreMissingVersion: *raw.IgnoreMissingVersion,
		IgnoreMissingFiles:   *raw.IgnoreMissingFiles,
		ParsePattern:         parsePattern,
		Serialize:            serialize,
		Search:               search,
		Replace:              replace,
		Tag:                  *raw.Tag,
		TagName:              tagName,
		TagMessage:           tagMessage,
		Commit:               *raw.Commit,
		CommitMessage:        commitMessage,
		Components:           components,
		ConfigFile:           configPath,
	}
	if raw.CurrentVersion != nil {
		f.CurrentVersion = *raw.CurrentVersion
	}

	if err := f.resolveFiles(raw, baseDir); err != nil {
		return nil, err
	}

	if configPath != "" {
		f.ConfigFileChange = configFileChange(f, format)
	}
	return f, nil
}

// componentEntries derives the ordered component schema from the parse
// pattern's named groups, applying any [parts] overrides. A component's
// optional value defaults to its first value (explicit, or the first
// enumerated value, or "0").
func componentEntries(parsePattern *regexp.Regexp, parts map[string]PartConfig) ([]version.SpecEntry, error) {
	var entries []version.SpecEntry
	for _, name := range parsePattern.SubexpNames() {
		if name == "" {
			continue
		}
		part := parts[name]

		spec := version.ComponentSpec{Values: part.Values}
		if part.FirstValue != nil {
			spec.FirstValue = *part.FirstValue
		}
		if part.Independent != nil {
			spec.Independent = *part.Independent
		}

		if part.OptionalValue != nil {
			spec.OptionalValue = *part.OptionalValue
		} else {
			switch {
			case spec.FirstValue != "":
				spec.OptionalValue = spec.FirstValue
			case len(spec.Values) > 0:
				spec.OptionalValue = spec.Values[0]
			default:
				spec.OptionalValue = "0"
			}
		}

		if len(spec.Values) > 0 && spec.FirstValue != "" {
			found := false
			for _, v := range spec.Values {
				if v == spec.FirstValue {
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("first_value %q of part %q is not among its values", spec.FirstValue, name)
			}
		}

		entries = append(entries, version.SpecEntry{Name: name, Spec: spec})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("parse pattern %q has no named capture groups", parsePattern.String())
	}
	return entries, nil
}

func parseSerializePatterns(patterns []string) ([]*template.FormatString, error) {
	out := make([]*template.FormatString, 0, len(patterns))
	for _, p := range patterns {
		fs, err := template.Parse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, fs)
	}
	return out, nil
}

// resolveFiles builds the FileMap from the raw file configurations,
// expanding globs and layering per-file overrides on the global settings.
func (f *Finalized) resolveFiles(raw *Config, baseDir string) error {
	for i := range raw.Files {
		fc := &raw.Files[i]

		change, err := f.buildFileChange(fc)
		if err != nil {
			return err
		}

		var paths []string
		switch {
		case fc.Glob != nil:
			pattern := joinBase(baseDir, *fc.Glob)
			excludes := make([]string, 0, len(fc.GlobExclude))
			for _, e := range fc.GlobExclude {
				excludes = append(excludes, joinBase(baseDir, e))
			}
			paths, err = files.ResolveGlob(pattern, excludes)
			if err != nil {
				return err
			}
		case fc.Filename != nil:
			paths = []string{joinBase(baseDir, *fc.Filename)}
		default:
			return fmt.Errorf("file entry %d has neither filename nor glob", i)
		}

		for _, path := range paths {
			f.FileMap = f.FileMap.Add(path, change)
		}
	}
	return nil
}

// buildFileChange merges a per-file configuration with the global settings.
func (f *Finalized) buildFileChange(fc *FileConfig) (*files.FileChange, error) {
	change := &files.FileChange{
		ParsePattern:         f.ParsePattern,
		SerializePatterns:    f.Serialize,
		Search:               f.Search,
		Replace:              f.Replace,
		IgnoreMissingVersion: f.IgnoreMissingVersion,
		IgnoreMissingFile:    f.IgnoreMissingFiles,
		IncludeBumps:         fc.IncludeBumps,
		ExcludeBumps:         fc.ExcludeBumps,
	}

	if fc.Parse != nil {
		pattern, err := regexp.Compile(*fc.Parse)
		if err != nil {
			return nil, fmt.Errorf("invalid parse pattern %q: %w", *fc.Parse, err)
		}
		change.ParsePattern = pattern
	}
	if fc.Serialize != nil {
		serialize, err := parseSerializePatterns(fc.Serialize)
		if err != nil {
			return nil, err
		}
		change.SerializePatterns = serialize
	}

	isRegex := f.Search.IsRegex
	if fc.Regex != nil {
		isRegex = *fc.Regex
	}
	if fc.Search != nil {
		search, err := template.ParseRegex(*fc.Search, isRegex)
		if err != nil {
			return nil, err
		}
		change.Search = search
	} else if fc.Regex != nil && isRegex != f.Search.IsRegex {
		search, err := template.ParseRegex(f.Search.String(), isRegex)
		if err != nil {
			return nil, err
		}
		change.Search = search
	}

	if fc.Replace != nil {
		replace, err := template.Parse(*fc.Replace)
		if err != nil {
			return nil, err
		}
		change.Replace = replace
	}
	if fc.IgnoreMissingVersion != nil {
		change.IgnoreMissingVersion = *fc.IgnoreMissingVersion
	}
	if fc.IgnoreMissingFile != nil {
		change.IgnoreMissingFile = *fc.IgnoreMissingFile
	}
	return change, nil
}

// configFileChange builds the implicit change that rewrites the
// current_version entry in the config file after a bump. TOML values are
// quoted, INI values are bare. Quoting styles outside the generated form are
// tolerated by ignoring a missing match.
func configFileChange(f *Finalized, format Format) *files.FileChange {
	searchText := `current_version = "{current_version}"`
	replaceText := `current_version = "{new_version}"`
	if format == FormatINI {
		searchText = "current_version = {current_version}"
		replaceText = "current_version = {new_version}"
	}

	return &files.FileChange{
		ParsePattern:         f.ParsePattern,
		SerializePatterns:    f.Serialize,
		Search:               template.MustParseRegex(searchText, false),
		Replace:              template.MustParse(replaceText),
		IgnoreMissingVersion: true,
		IgnoreMissingFile:    false,
	}
}

func joinBase(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
