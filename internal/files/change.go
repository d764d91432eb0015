// Package files implements the change-application engine: configured
// search/replace rules are rendered against a version and applied to file
// content, producing a Modification with a full audit trail.
package files

import (
	"regexp"
	"slices"

	"go-bumpversion/internal/template"
)

// FileChange is one configured search/replace rule bound to a target file.
type FileChange struct {
	// ParsePattern extracts a version from file content. Its named capture
	// groups correspond to version component names.
	ParsePattern *regexp.Regexp

	// SerializePatterns are the candidate templates used to render the
	// current and new versions for this file.
	SerializePatterns []*template.FormatString

	// Search locates the text to replace.
	Search *template.RegexTemplate

	// Replace renders the replacement text.
	Replace *template.FormatString

	// IgnoreMissingVersion downgrades a non-matching search pattern from an
	// error to a no-op.
	IgnoreMissingVersion bool

	// IgnoreMissingFile allows the target file to be absent.
	IgnoreMissingFile bool

	// IncludeBumps restricts which component bumps this change applies to.
	// Nil means all components.
	IncludeBumps []string

	// ExcludeBumps lists component bumps this change never applies to.
	ExcludeBumps []string
}

// WillBumpComponent reports whether this change applies when the named
// component is bumped.
func (c *FileChange) WillBumpComponent(component string) bool {
	if c.IncludeBumps == nil {
		return true
	}
	return slices.Contains(c.IncludeBumps, component)
}

// WillNotBumpComponent reports whether this change explicitly excludes the
// named component.
func (c *FileChange) WillNotBumpComponent(component string) bool {
	return slices.Contains(c.ExcludeBumps, component)
}
