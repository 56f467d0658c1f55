package sweep

import (
	"fmt"
	"slices"
)

// Registry is an ordered set of checks. Checks run in registration order.
// Register panics on duplicate IDs to catch wiring mistakes at startup.
type Registry struct {
	checks []Check
	index  map[CheckID]struct{}
}

// NewRegistry returns an empty registry ready for check registration.
func NewRegistry() *Registry {
	return &Registry{index: make(map[CheckID]struct{})}
}

// Register adds c to the registry. Panics if the same ID is registered twice.
func (r *Registry) Register(c Check) {
	if _, exists := r.index[c.ID]; exists {
		panic(fmt.Sprintf("duplicate check ID: %q", c.ID))
	}
	r.checks = append(r.checks, c)
	r.index[c.ID] = struct{}{}
}

// All returns every registered check in registration order.
func (r *Registry) All() []Check {
	return slices.Clone(r.checks)
}

// Names returns the registered check IDs as strings, in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.checks))
	for _, c := range r.checks {
		names = append(names, string(c.ID))
	}
	return names
}

// Enabled returns the registered checks whose IDs are not in excluded,
// preserving registration order. Unknown names in excluded are ignored.
func (r *Registry) Enabled(excluded []string) []Check {
	var out []Check
	for _, c := range r.checks {
		if !slices.Contains(excluded, string(c.ID)) {
			out = append(out, c)
		}
	}
	return out
}

// DefaultRegistry returns every built-in check in its canonical order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range builtinChecks() {
		r.Register(c)
	}
	return r
}
