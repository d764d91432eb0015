package files

import (
	"fmt"
	"path/filepath"
	"slices"
)

// TargetFile binds a path to the ordered FileChange rules that apply to it.
type TargetFile struct {
	Path    string
	Changes []*FileChange
}

// FileMap is the ordered set of files to modify during a bump.
type FileMap []TargetFile

// Add appends change to the entry for path, creating the entry if needed.
// Entry order follows first insertion so changes apply in configured order.
func (m FileMap) Add(path string, change *FileChange) FileMap {
	for i := range m {
		if m[i].Path == path {
			m[i].Changes = append(m[i].Changes, change)
			return m
		}
	}
	return append(m, TargetFile{Path: path, Changes: []*FileChange{change}})
}

// Paths returns the file paths in order.
func (m FileMap) Paths() []string {
	out := make([]string, len(m))
	for i, f := range m {
		out[i] = f.Path
	}
	return out
}

// Filter returns the entries that survive the include/exclude path lists:
// everything not excluded, plus anything explicitly included (an included
// path survives even when excluded).
func (m FileMap) Filter(includedPaths, excludedPaths []string) FileMap {
	var out FileMap
	for _, f := range m {
		if slices.Contains(includedPaths, f.Path) {
			out = append(out, f)
			continue
		}
		if slices.Contains(excludedPaths, f.Path) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// ResolveGlob expands pattern and removes any path matched by the exclude
// patterns. Results are sorted for deterministic application order.
func ResolveGlob(pattern string, excludePatterns []string) ([]string, error) {
	included, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	excluded := make(map[string]bool)
	for _, exclude := range excludePatterns {
		matches, err := filepath.Glob(exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", exclude, err)
		}
		for _, m := range matches {
			excluded[m] = true
		}
	}

	var out []string
	for _, path := range included {
		if !excluded[path] {
			out = append(out, path)
		}
	}
	slices.Sort(out)
	return out, nil
}
