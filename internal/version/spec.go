package version

// SpecEntry names one component in a VersionSpec.
type SpecEntry struct {
	Name string
	Spec ComponentSpec
}

// VersionSpec is the ordered schema of version components. Order is
// precedence order: most-significant first. Immutable once built.
type VersionSpec struct {
	names []string
	specs map[string]ComponentSpec
}

// NewVersionSpec builds a VersionSpec from ordered component entries.
func NewVersionSpec(entries []SpecEntry) *VersionSpec {
	names := make([]string, 0, len(entries))
	specs := make(map[string]ComponentSpec, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
		specs[e.Name] = e.Spec
	}
	return &VersionSpec{names: names, specs: specs}
}

// ComponentNames returns the component names in precedence order.
func (s *VersionSpec) ComponentNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Has reports whether the spec contains the named component.
func (s *VersionSpec) Has(name string) bool {
	_, ok := s.specs[name]
	return ok
}

// Build constructs a Version from raw component values. Names absent from
// raw become omitted components resolving through their fallback chain.
func (s *VersionSpec) Build(raw map[string]string) *Version {
	components := make(map[string]Component, len(s.names))
	for _, name := range s.names {
		if value, ok := raw[name]; ok {
			components[name] = NewComponent(value, s.specs[name])
		} else {
			components[name] = NewOmittedComponent(s.specs[name])
		}
	}
	return &Version{spec: s, components: components}
}
