package template

import "regexp"

// RegexTemplate is a FormatString whose rendered text is compiled as a
// regular expression. In the default (escaped) mode the template's literal
// segments are quoted so they match as plain text; in regex mode they are
// passed through as regex source. Substituted field values are inserted
// verbatim in both modes.
type RegexTemplate struct {
	fs *FormatString

	// IsRegex marks the template's literal text as regex source that must
	// not be escaped.
	IsRegex bool
}

// ParseRegex parses a search template. Set isRegex when the template text is
// itself a regular expression.
func ParseRegex(tmpl string, isRegex bool) (*RegexTemplate, error) {
	fs, err := Parse(tmpl)
	if err != nil {
		return nil, err
	}
	return &RegexTemplate{fs: fs, IsRegex: isRegex}, nil
}

// MustParseRegex is ParseRegex for templates known to be valid.
func MustParseRegex(tmpl string, isRegex bool) *RegexTemplate {
	rt, err := ParseRegex(tmpl, isRegex)
	if err != nil {
		panic(err)
	}
	return rt
}

// String returns the original template text.
func (r *RegexTemplate) String() string {
	return r.fs.String()
}

// Fields returns the distinct field names referenced by the template.
func (r *RegexTemplate) Fields() []string {
	return r.fs.Fields()
}

// Render renders the template against ctx without compiling it.
func (r *RegexTemplate) Render(ctx map[string]string) (string, error) {
	return r.fs.Format(ctx, !r.IsRegex)
}

// Compile renders the template against ctx and compiles the result. Regex
// mode compiles with multiline and dotall semantics so ^ and $ anchor lines
// and patterns can span them. A render failure surfaces as a
// MissingArgumentError; an invalid rendered pattern surfaces as a
// RegexTemplateError.
func (r *RegexTemplate) Compile(ctx map[string]string) (*regexp.Regexp, error) {
	rendered, err := r.Render(ctx)
	if err != nil {
		return nil, err
	}
	if r.IsRegex {
		rendered = "(?ms)" + rendered
	}
	re, err := regexp.Compile(rendered)
	if err != nil {
		return nil, &RegexTemplateError{Pattern: rendered, Err: err}
	}
	return re, nil
}
