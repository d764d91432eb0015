package files

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Replacement records one applied FileChange: the rendered search pattern and
// replacement text alongside their source templates.
type Replacement struct {
	// SearchPattern is the search template before rendering.
	SearchPattern string
	// Search is the rendered regex used to locate the old version.
	Search string
	// ReplacePattern is the replacement template before rendering.
	ReplacePattern string
	// Replace is the rendered replacement text.
	Replace string
}

// Modification is the result of applying a file's FileChange list: the
// content before and after, plus one Replacement per applied change.
type Modification struct {
	Before       string
	After        string
	Replacements []Replacement
}

// Changed reports whether the content differs after replacement.
func (m *Modification) Changed() bool {
	return m.Before != m.After
}

// Diff renders a unified diff of the modification, labeled with path when
// non-empty. Returns "" when the content is unchanged.
func (m *Modification) Diff(path string) string {
	if !m.Changed() {
		return ""
	}

	labelBefore, labelAfter := "before", "after"
	if path != "" {
		labelBefore = path + " (before)"
		labelAfter = path + " (after)"
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(m.Before),
		B:        difflib.SplitLines(m.After),
		FromFile: labelBefore,
		ToFile:   labelAfter,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}
