// Package template implements the field-substitution template language used
// for serializing versions and building search patterns. A template is a mix
// of literal text and {name} field references; "{{" and "}}" are escapes for
// literal braces.
package template

import (
	"regexp"
	"strings"
)

// segment is one parsed piece of a FormatString: either literal text or a
// field reference.
type segment struct {
	literal string
	field   string
	isField bool
}

// FormatString is a parsed template. It is immutable after Parse.
type FormatString struct {
	raw      string
	segments []segment
}

// Parse parses a template into a FormatString.
// Unbalanced braces or an empty field name produce a ParseError.
func Parse(tmpl string) (*FormatString, error) {
	var segments []segment
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{literal: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(tmpl) {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return nil, &ParseError{Template: tmpl, Position: i, Reason: "unterminated field"}
			}
			name := tmpl[i+1 : i+1+end]
			if name == "" {
				return nil, &ParseError{Template: tmpl, Position: i, Reason: "empty field name"}
			}
			if strings.ContainsAny(name, "{}") {
				return nil, &ParseError{Template: tmpl, Position: i, Reason: "invalid field name"}
			}
			flush()
			segments = append(segments, segment{field: name, isField: true})
			i += end + 2
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return nil, &ParseError{Template: tmpl, Position: i, Reason: "unmatched '}'"}
		default:
			literal.WriteByte(c)
			i++
		}
	}
	flush()

	return &FormatString{raw: tmpl, segments: segments}, nil
}

// MustParse is Parse for templates known to be valid at compile time.
// It panics on a parse error.
func MustParse(tmpl string) *FormatString {
	fs, err := Parse(tmpl)
	if err != nil {
		panic(err)
	}
	return fs
}

// String returns the original template text.
func (f *FormatString) String() string {
	return f.raw
}

// Fields returns the distinct field names referenced by the template, in
// first-occurrence order.
func (f *FormatString) Fields() []string {
	var names []string
	seen := make(map[string]bool)
	for _, seg := range f.segments {
		if seg.isField && !seen[seg.field] {
			seen[seg.field] = true
			names = append(names, seg.field)
		}
	}
	return names
}

// Format renders the template against ctx. When escapeForRegex is true,
// literal segments are regex-escaped; substituted field values are always
// inserted verbatim so callers can pass regex fragments as values.
// A field name absent from ctx yields a MissingArgumentError.
func (f *FormatString) Format(ctx map[string]string, escapeForRegex bool) (string, error) {
	var out strings.Builder
	for _, seg := range f.segments {
		if !seg.isField {
			if escapeForRegex {
				out.WriteString(regexp.QuoteMeta(seg.literal))
			} else {
				out.WriteString(seg.literal)
			}
			continue
		}
		value, ok := ctx[seg.field]
		if !ok {
			return "", &MissingArgumentError{Field: seg.field, Template: f.raw}
		}
		out.WriteString(value)
	}
	return out.String(), nil
}
