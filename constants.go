package varconf

import "sort"

// Registry holds the constants declared with var in one document. A later
// declaration of a name replaces the earlier one.
type Registry struct {
	values map[string]Value
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]Value)}
}

// Define binds name to v.
func (r *Registry) Define(name string, v Value) {
	r.values[name] = v
}

// Lookup returns the value bound to name.
func (r *Registry) Lookup(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of bound names.
func (r *Registry) Len() int {
	return len(r.values)
}

// Names returns the bound names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// collectConstants parses every declaration in source order into a new
// Registry. Declared values cannot refer to other constants.
func collectConstants(stmts []statement, vp *valueParser) (*Registry, error) {
	reg := NewRegistry()
	for _, stmt := range stmts {
		if stmt.kind != declaration {
			continue
		}
		v, err := vp.parse(stmt.value, 0)
		if err != nil {
			return nil, atLine(err, stmt.line)
		}
		reg.Define(stmt.name, v)
	}
	return reg, nil
}
