package postype

// typePair is an assumption-set entry: two types currently being
// checked against each other. Assumptions let subtyping terminate on
// mutually recursive aliases by accepting a pair that's already being
// verified (a greatest-fixed-point closure).
type typePair struct{ a, b string }

// Assumptions is the coinductive guard set threaded through a single
// top-level Subtype call.
type Assumptions map[typePair]struct{}

func NewAssumptions() Assumptions { return Assumptions{} }

func (a Assumptions) has(t1, t2 Type) bool {
	_, ok := a[typePair{t1.String(), t2.String()}]
	return ok
}

func (a Assumptions) add(t1, t2 Type) Assumptions {
	next := make(Assumptions, len(a)+1)
	for k := range a {
		next[k] = struct{}{}
	}
	next[typePair{t1.String(), t2.String()}] = struct{}{}
	return next
}

// Subtype reports whether t1 <: t2 under env, per spec.md 4.3:
//
//  1. Reflexive on syntactic equality.
//  2. If (t1,t2) is already in the assumption set, accept.
//  3. If either side is a type variable, expand it via the alias
//     table *before* anything else, recording the original pair in
//     the assumption set first.
//  4. Records: width + immutable depth subtyping, mutable fields
//     invariant.
//  5. Unions: subtype's labels ⊆ supertype's labels.
//  6. Arrays: invariant in element type.
//  7. Otherwise: false.
func Subtype(env *Env, t1, t2 Type, assumed Assumptions) bool {
	if assumed == nil {
		assumed = NewAssumptions()
	}
	if t1.Equal(t2) {
		return true
	}
	if assumed.has(t1, t2) {
		return true
	}

	if v1, ok := t1.(TVar); ok {
		def, ok := env.LookupAlias(v1.Name)
		if !ok {
			return false
		}
		return Subtype(env, def, t2, assumed.add(t1, t2))
	}
	if v2, ok := t2.(TVar); ok {
		def, ok := env.LookupAlias(v2.Name)
		if !ok {
			return false
		}
		return Subtype(env, t1, def, assumed.add(t1, t2))
	}

	switch a := t1.(type) {
	case TRecord:
		b, ok := t2.(TRecord)
		if !ok || len(a.Fields) < len(b.Fields) {
			return false
		}
		for i, bf := range b.Fields {
			af := a.Fields[i]
			if af.Name != bf.Name {
				return false
			}
			if bf.Mutable && !af.Mutable {
				return false
			}
			if !Subtype(env, af.Type, bf.Type, assumed) {
				return false
			}
			if bf.Mutable && !Subtype(env, bf.Type, af.Type, assumed) {
				return false
			}
		}
		return true

	case TUnion:
		b, ok := t2.(TUnion)
		if !ok {
			return false
		}
		for _, ac := range a.Cases {
			_, bc, found := b.Case(ac.Label)
			if !found {
				return false
			}
			if !Subtype(env, ac.Type, bc.Type, assumed) {
				return false
			}
		}
		return true

	case TArray:
		b, ok := t2.(TArray)
		return ok && a.Elem.Equal(b.Elem)

	default:
		return false
	}
}
