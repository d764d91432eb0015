// Package version implements the version data model: named components with
// bump/reset rules, the ordered VersionSpec schema, and parse, bump, and
// candidate-based serialization of Version values.
// All types are immutable — operations return new values.
package version

import (
	"fmt"
	"strconv"
)

// ComponentSpec configures one version component.
type ComponentSpec struct {
	// Values is the ordered set of allowed discrete values. When non-empty
	// the component is enumerated: bumping advances to the next value and
	// fails at the last one.
	Values []string

	// FirstValue is the value the component resets to. Empty means unset.
	FirstValue string

	// OptionalValue is the value treated as "absent" for serialization:
	// a component at its optional value need not appear in the rendered
	// form. Empty means unset (the component is always required).
	OptionalValue string

	// Independent components keep their value when a higher-precedence
	// component is bumped.
	Independent bool
}

// Component is a ComponentSpec plus a resolved value. The zero distinction
// between an explicitly set value and an omitted one is kept so that
// required-component computation stays precise.
type Component struct {
	spec     ComponentSpec
	explicit string
	omitted  bool
}

// NewComponent creates a component with an explicit raw value.
func NewComponent(raw string, spec ComponentSpec) Component {
	return Component{spec: spec, explicit: raw}
}

// NewOmittedComponent creates a component with no explicit value. Its
// effective value resolves through the spec's fallback chain.
func NewOmittedComponent(spec ComponentSpec) Component {
	return Component{spec: spec, omitted: true}
}

// Spec returns the component's configuration.
func (c Component) Spec() ComponentSpec {
	return c.spec
}

// Omitted reports whether the component carries no explicit value.
func (c Component) Omitted() bool {
	return c.omitted
}

// Value returns the effective value. For an omitted component the fallback
// chain is first_value, then optional_value, then the first configured value,
// then "0".
func (c Component) Value() string {
	if !c.omitted {
		return c.explicit
	}
	if c.spec.FirstValue != "" {
		return c.spec.FirstValue
	}
	if c.spec.OptionalValue != "" {
		return c.spec.OptionalValue
	}
	if len(c.spec.Values) > 0 {
		return c.spec.Values[0]
	}
	return "0"
}

// Required reports whether the component must appear in any serialized form.
// A component is optional only when its effective value equals the configured
// optional value.
func (c Component) Required() bool {
	if c.spec.OptionalValue == "" {
		return true
	}
	return c.Value() != c.spec.OptionalValue
}

// Bump advances the component. Enumerated components step to the next
// configured value and fail with MaxValueReachedError at the last one;
// numeric components increment.
func (c Component) Bump() (Component, error) {
	value := c.Value()

	if len(c.spec.Values) > 0 {
		index := -1
		for i, v := range c.spec.Values {
			if v == value {
				index = i
				break
			}
		}
		if index < 0 || index == len(c.spec.Values)-1 {
			return Component{}, &MaxValueReachedError{Value: value, Values: c.spec.Values}
		}
		return NewComponent(c.spec.Values[index+1], c.spec), nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return Component{}, fmt.Errorf("cannot bump non-numeric value %q", value)
	}
	return NewComponent(strconv.Itoa(n+1), c.spec), nil
}

// First resets the component to its first value: first_value if configured,
// else the first configured value, else "0". The optional value governs
// display, not reset, and is deliberately not consulted.
func (c Component) First() Component {
	if c.spec.FirstValue != "" {
		return NewComponent(c.spec.FirstValue, c.spec)
	}
	if len(c.spec.Values) > 0 {
		return NewComponent(c.spec.Values[0], c.spec)
	}
	return NewComponent("0", c.spec)
}
