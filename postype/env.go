package postype

import "fmt"

// Env is the typing environment carried by every typed tree node: a
// variable-name to current-type mapping, an alias-name to
// resolved-definition mapping, and the set of variable names
// currently declared mutable. It is extended functionally at every
// binding and the previous snapshot is left untouched, so that a
// typed node can keep a reference to the environment it was checked
// under without fear of a later mutation reaching back into it.
type Env struct {
	vars     map[string]Type
	aliases  map[string]Type
	mutables map[string]struct{}
}

// NewEnv returns the empty environment every program starts checking
// under.
func NewEnv() *Env {
	return &Env{
		vars:     map[string]Type{},
		aliases:  map[string]Type{},
		mutables: map[string]struct{}{},
	}
}

func cloneTypes(m map[string]Type) map[string]Type {
	out := make(map[string]Type, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSet(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WithVar returns a new environment where name is bound to typ and is
// no longer considered mutable (shadowing any earlier mutable binding
// of the same name), matching Let/LetT's effect on the environment.
func (e *Env) WithVar(name string, typ Type) *Env {
	next := &Env{vars: cloneTypes(e.vars), aliases: e.aliases, mutables: cloneSet(e.mutables)}
	next.vars[name] = typ
	delete(next.mutables, name)
	return next
}

// WithMutableVar is WithVar, but additionally marks name mutable, as
// LetMut and For's iteration variable do.
func (e *Env) WithMutableVar(name string, typ Type) *Env {
	next := e.WithVar(name, typ)
	next.mutables = cloneSet(next.mutables)
	next.mutables[name] = struct{}{}
	return next
}

// WithAlias returns a new environment where name resolves to def in
// the alias table.
func (e *Env) WithAlias(name string, def Type) *Env {
	aliases := cloneTypes(e.aliases)
	aliases[name] = def
	return &Env{vars: e.vars, aliases: aliases, mutables: e.mutables}
}

// LookupVar returns the type bound to name, if any.
func (e *Env) LookupVar(name string) (Type, bool) {
	t, ok := e.vars[name]
	return t, ok
}

// LookupAlias returns the definition bound to name in the alias
// table, if any.
func (e *Env) LookupAlias(name string) (Type, bool) {
	t, ok := e.aliases[name]
	return t, ok
}

// HasAlias reports whether name is a known alias, regardless of what
// it currently resolves to (used to detect redefinition attempts).
func (e *Env) HasAlias(name string) bool {
	_, ok := e.aliases[name]
	return ok
}

// IsMutable reports whether name is currently declared mutable.
func (e *Env) IsMutable(name string) bool {
	_, ok := e.mutables[name]
	return ok
}

// ExpandType resolves a type-variable chain through the alias table
// until a non-variable type is reached. It fails if the chain is
// unbound anywhere along the way.
func ExpandType(env *Env, t Type) (Type, error) {
	seen := map[string]struct{}{}
	for {
		tv, ok := t.(TVar)
		if !ok {
			return t, nil
		}
		if _, looped := seen[tv.Name]; looped {
			return nil, fmt.Errorf("invalid recursive definition of type %q", tv.Name)
		}
		seen[tv.Name] = struct{}{}
		def, ok := env.LookupAlias(tv.Name)
		if !ok {
			return nil, fmt.Errorf("undefined type %q", tv.Name)
		}
		t = def
	}
}
