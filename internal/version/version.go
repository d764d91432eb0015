package version

import (
	"regexp"
	"sort"

	"go-bumpversion/internal/template"
)

// Version maps every name in a VersionSpec to a resolved Component. It is a
// value object: Bump returns a new Version and never mutates in place.
type Version struct {
	spec       *VersionSpec
	components map[string]Component
}

// Parse matches pattern (a regex with named capture groups corresponding to
// spec component names) against text and builds a Version from the captured
// groups. Returns nil when the pattern does not match. Component names not
// captured by the pattern are left omitted.
func Parse(text string, pattern *regexp.Regexp, spec *VersionSpec) *Version {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	raw := make(map[string]string)
	for i, name := range pattern.SubexpNames() {
		if i == 0 || name == "" || match[i] == "" {
			continue
		}
		if spec.Has(name) {
			raw[name] = match[i]
		}
	}
	return spec.Build(raw)
}

// Spec returns the version's schema.
func (v *Version) Spec() *VersionSpec {
	return v.spec
}

// Component returns the named component.
func (v *Version) Component(name string) (Component, bool) {
	c, ok := v.components[name]
	return c, ok
}

// Values returns a map of every component's effective value.
func (v *Version) Values() map[string]string {
	values := make(map[string]string, len(v.components))
	for _, name := range v.spec.names {
		values[name] = v.components[name].Value()
	}
	return values
}

// Bump advances the named component and returns the resulting Version.
// Components of lower precedence reset to their first value (unless marked
// independent); higher-precedence components are left unchanged.
func (v *Version) Bump(name string) (*Version, error) {
	target := -1
	for i, n := range v.spec.names {
		if n == name {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, &MissingComponentError{Name: name, Components: v.spec.ComponentNames()}
	}

	components := make(map[string]Component, len(v.components))
	for i, n := range v.spec.names {
		current := v.components[n]
		switch {
		case i < target:
			components[n] = current
		case i == target:
			bumped, err := current.Bump()
			if err != nil {
				return nil, err
			}
			components[n] = bumped
		default:
			if current.Spec().Independent {
				components[n] = current
			} else {
				components[n] = current.First()
			}
		}
	}
	return &Version{spec: v.spec, components: components}, nil
}

// requiredComponents returns the names of components whose effective value
// differs from their optional value, in precedence order.
func (v *Version) requiredComponents() []string {
	var required []string
	for _, name := range v.spec.names {
		if v.components[name].Required() {
			required = append(required, name)
		}
	}
	return required
}

// Serialize renders the version as its minimal unambiguous string form.
// Candidates that do not reference every required component are discarded;
// among the survivors the one referencing the fewest fields wins, with ties
// broken by earliest position in the candidate list.
func (v *Version) Serialize(candidates []*template.FormatString, ctx map[string]string) (string, error) {
	if len(candidates) == 0 {
		return "", &SerializeError{Reason: "no serialization patterns configured"}
	}

	required := v.requiredComponents()

	type scored struct {
		index     int
		numFields int
		fs        *template.FormatString
	}
	var qualified []scored
	for i, candidate := range candidates {
		fields := candidate.Fields()
		referenced := make(map[string]bool, len(fields))
		for _, f := range fields {
			referenced[f] = true
		}
		covered := true
		for _, name := range required {
			if !referenced[name] {
				covered = false
				break
			}
		}
		if covered {
			qualified = append(qualified, scored{index: i, numFields: len(fields), fs: candidate})
		}
	}
	if len(qualified) == 0 {
		return "", &SerializeError{Reason: "no serialization pattern covers all required components"}
	}

	sort.SliceStable(qualified, func(a, b int) bool {
		return qualified[a].numFields < qualified[b].numFields
	})
	winner := qualified[0].fs

	rendered := make(map[string]string, len(ctx)+len(v.components))
	for k, val := range ctx {
		rendered[k] = val
	}
	for name, c := range v.components {
		rendered[name] = c.Value()
	}

	out, err := winner.Format(rendered, false)
	if err != nil {
		return "", &SerializeError{Reason: "rendering " + winner.String() + " failed", Err: err}
	}
	return out, nil
}
