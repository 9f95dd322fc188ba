package lang

import (
	"maps"
	"slices"
)

// Env maps entry names to their resolved numeric values. Names bind as
// entries are processed, so an expression sees only names defined by
// strictly earlier entries.
type Env map[string]Number

// Bind records name with value and returns the updated environment,
// allocating one when e is nil.
func (e Env) Bind(name string, value Number) Env {
	if e == nil {
		e = make(Env)
	}

	e[name] = value

	return e
}

// Lookup returns the value bound to name.
func (e Env) Lookup(name string) (Number, bool) {
	value, ok := e[name]

	return value, ok
}

// Names returns the bound names in lexical order.
func (e Env) Names() []string {
	return slices.Sorted(maps.Keys(e))
}

// Native exports the environment as a plain map of int64/float64 values
// for interoperating with external evaluators.
func (e Env) Native() map[string]any {
	native := make(map[string]any, len(e))
	for name, value := range e {
		native[name] = value.Native()
	}

	return native
}
