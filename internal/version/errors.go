package version

import (
	"fmt"
	"strings"
)

// MaxValueReachedError reports a bump of an enumerated component that is
// already at its last configured value.
type MaxValueReachedError struct {
	Value  string
	Values []string
}

func (e *MaxValueReachedError) Error() string {
	return fmt.Sprintf("cannot bump %q: already at the last of [%s]", e.Value, strings.Join(e.Values, ", "))
}

// MissingComponentError reports a bump request for a component name that is
// not part of the version spec.
type MissingComponentError struct {
	Name       string
	Components []string
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("unknown version component %q (components: %s)", e.Name, strings.Join(e.Components, ", "))
}

// SerializeError reports that a version could not be rendered: either no
// candidate template covers every required component, or rendering the
// selected template failed.
type SerializeError struct {
	Reason string
	Err    error
}

func (e *SerializeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot serialize version: %s: %v", e.Reason, e.Err)
	}
	return "cannot serialize version: " + e.Reason
}

func (e *SerializeError) Unwrap() error {
	return e.Err
}
