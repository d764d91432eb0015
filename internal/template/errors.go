package template

import "fmt"

// ParseError reports malformed template syntax.
type ParseError struct {
	Template string
	Position int
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid template %q at offset %d: %s", e.Template, e.Position, e.Reason)
}

// MissingArgumentError reports a field reference with no matching context key
// at render time.
type MissingArgumentError struct {
	Field    string
	Template string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument %q for template %q", e.Field, e.Template)
}

// RegexTemplateError reports a rendered search template that does not compile
// as a regular expression.
type RegexTemplateError struct {
	Pattern string
	Err     error
}

func (e *RegexTemplateError) Error() string {
	return fmt.Sprintf("rendered pattern %q is not a valid regex: %v", e.Pattern, e.Err)
}

func (e *RegexTemplateError) Unwrap() error {
	return e.Err
}
