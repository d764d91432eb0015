package files

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"go-bumpversion/internal/version"
)

// MissingVersionError reports a search pattern that matched nothing in the
// target content and was not configured to be ignored.
type MissingVersionError struct {
	Search string
	Path   string
}

func (e *MissingVersionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("did not find %q in %s", e.Search, e.Path)
	}
	return fmt.Sprintf("did not find %q in content", e.Search)
}

// ReplaceVersion applies changes to before in order; each change's output is
// the next change's input. Every change serializes both versions with its own
// candidate patterns, so each file may render versions differently.
//
// A search pattern that matches nothing is an error unless the change sets
// IgnoreMissingVersion, in which case the change is skipped with a warning.
func ReplaceVersion(before string, changes []*FileChange, currentVersion, newVersion *version.Version, ctx map[string]string) (*Modification, error) {
	after := before
	var replacements []Replacement

	for _, change := range changes {
		currentSerialized, err := currentVersion.Serialize(change.SerializePatterns, ctx)
		if err != nil {
			return nil, err
		}
		newSerialized, err := newVersion.Serialize(change.SerializePatterns, ctx)
		if err != nil {
			return nil, err
		}

		extended := make(map[string]string, len(ctx)+2)
		for k, v := range ctx {
			extended[k] = v
		}
		extended["current_version"] = currentSerialized
		extended["new_version"] = newSerialized

		searchRegex, err := change.Search.Compile(extended)
		if err != nil {
			return nil, err
		}

		replacement, err := change.Replace.Format(extended, false)
		if err != nil {
			return nil, err
		}

		if !searchRegex.MatchString(after) {
			if !change.IgnoreMissingVersion {
				return nil, &MissingVersionError{Search: searchRegex.String()}
			}
			log.Warn("search pattern not found", "search", searchRegex.String())
		}

		after = searchRegex.ReplaceAllLiteralString(after, replacement)

		replacements = append(replacements, Replacement{
			SearchPattern:  change.Search.String(),
			Search:         searchRegex.String(),
			ReplacePattern: change.Replace.String(),
			Replace:        replacement,
		})
	}

	return &Modification{Before: before, After: after, Replacements: replacements}, nil
}

// ReplaceVersionInFile reads path, applies changes, and writes the result
// back unless dryRun is set or nothing changed. A missing file returns
// (nil, nil) when every change allows it, and an error otherwise.
func ReplaceVersionInFile(path string, changes []*FileChange, currentVersion, newVersion *version.Version, ctx map[string]string, dryRun bool) (*Modification, error) {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		// Vacuously true for an empty change list.
		for _, change := range changes {
			if !change.IgnoreMissingFile {
				return nil, fmt.Errorf("reading %s: %w", path, os.ErrNotExist)
			}
		}
		log.Info("file not found", "path", path)
		return nil, nil
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading %s: is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	modification, err := ReplaceVersion(string(data), changes, currentVersion, newVersion, ctx)
	if err != nil {
		if merr, ok := err.(*MissingVersionError); ok {
			merr.Path = path
		}
		return nil, err
	}

	if !dryRun && modification.Changed() {
		if err := os.WriteFile(path, []byte(modification.After), info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return modification, nil
}
