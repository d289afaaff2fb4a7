package postype

import (
	"fmt"
	"strings"
)

// Type is a resolved type: the output of pretype resolution. Every
// variant implements structural equality via Equal.
type Type interface {
	String() string
	Equal(other Type) bool
}

// --- primitives ---

type primitive int

const (
	primBool primitive = iota
	primInt
	primFloat
	primString
	primUnit
)

type primType struct{ kind primitive }

var (
	Bool   Type = primType{primBool}
	Int    Type = primType{primInt}
	Float  Type = primType{primFloat}
	String Type = primType{primString}
	Unit   Type = primType{primUnit}
)

func (t primType) String() string {
	switch t.kind {
	case primBool:
		return "bool"
	case primInt:
		return "int"
	case primFloat:
		return "float"
	case primString:
		return "string"
	case primUnit:
		return "unit"
	default:
		return "?"
	}
}

func (t primType) Equal(other Type) bool {
	o, ok := other.(primType)
	return ok && o.kind == t.kind
}

// IsPrimitiveName reports whether name is a built-in primitive type
// name, and if so returns it.
func IsPrimitiveName(name string) (Type, bool) {
	switch name {
	case "bool":
		return Bool, true
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "string":
		return String, true
	case "unit":
		return Unit, true
	default:
		return nil, false
	}
}

// TVar is an unresolved type-variable reference, i.e. an alias name
// that resolves through the typing environment's alias table.
type TVar struct{ Name string }

func (t TVar) String() string { return t.Name }
func (t TVar) Equal(other Type) bool {
	o, ok := other.(TVar)
	return ok && o.Name == t.Name
}

// TFun is a function type: ordered argument types plus a return type.
type TFun struct {
	Args []Type
	Ret  Type
}

func (t TFun) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("fun(%s) -> %s", strings.Join(parts, ", "), t.Ret.String())
}

func (t TFun) Equal(other Type) bool {
	o, ok := other.(TFun)
	if !ok || len(o.Args) != len(t.Args) || !t.Ret.Equal(o.Ret) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// RecordField is one ordered field of a record type.
type RecordField struct {
	Mutable bool
	Name    string
	Type    Type
}

// TRecord is an ordered-field record type.
type TRecord struct{ Fields []RecordField }

func (t TRecord) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		mut := ""
		if f.Mutable {
			mut = "mutable "
		}
		parts[i] = fmt.Sprintf("%s%s: %s", mut, f.Name, f.Type.String())
	}
	return fmt.Sprintf("struct { %s }", strings.Join(parts, "; "))
}

func (t TRecord) Equal(other Type) bool {
	o, ok := other.(TRecord)
	if !ok || len(o.Fields) != len(t.Fields) {
		return false
	}
	for i := range t.Fields {
		a, b := t.Fields[i], o.Fields[i]
		if a.Name != b.Name || a.Mutable != b.Mutable || !a.Type.Equal(b.Type) {
			return false
		}
	}
	return true
}

// Field looks up a field by name, returning its index and true if found.
func (t TRecord) Field(name string) (int, RecordField, bool) {
	for i, f := range t.Fields {
		if f.Name == name {
			return i, f, true
		}
	}
	return -1, RecordField{}, false
}

// UnionCase is one labelled case of a union type.
type UnionCase struct {
	Label string
	Type  Type
}

// TUnion is an ordered-case labelled union type.
type TUnion struct{ Cases []UnionCase }

func (t TUnion) String() string {
	parts := make([]string, len(t.Cases))
	for i, c := range t.Cases {
		parts[i] = fmt.Sprintf("%s: %s", c.Label, c.Type.String())
	}
	return fmt.Sprintf("union { %s }", strings.Join(parts, "; "))
}

func (t TUnion) Equal(other Type) bool {
	o, ok := other.(TUnion)
	if !ok || len(o.Cases) != len(t.Cases) {
		return false
	}
	for i := range t.Cases {
		if t.Cases[i].Label != o.Cases[i].Label || !t.Cases[i].Type.Equal(o.Cases[i].Type) {
			return false
		}
	}
	return true
}

// Case looks up a union case by label.
func (t TUnion) Case(label string) (int, UnionCase, bool) {
	for i, c := range t.Cases {
		if c.Label == label {
			return i, c, true
		}
	}
	return -1, UnionCase{}, false
}

// TArray is an array-of-element-type type.
type TArray struct{ Elem Type }

func (t TArray) String() string { return fmt.Sprintf("array(%s)", t.Elem.String()) }
func (t TArray) Equal(other Type) bool {
	o, ok := other.(TArray)
	return ok && t.Elem.Equal(o.Elem)
}

// FreeTypeVars returns the set of unbound type-variable names
// appearing (recursively) in t. It does not expand aliases: a TVar
// is always free from the point of view of this function, regardless
// of whether it happens to be bound in some environment.
func FreeTypeVars(t Type) map[string]struct{} {
	out := make(map[string]struct{})
	collectFreeTypeVars(t, out)
	return out
}

func collectFreeTypeVars(t Type, out map[string]struct{}) {
	switch tt := t.(type) {
	case TVar:
		out[tt.Name] = struct{}{}
	case TFun:
		for _, a := range tt.Args {
			collectFreeTypeVars(a, out)
		}
		collectFreeTypeVars(tt.Ret, out)
	case TRecord:
		for _, f := range tt.Fields {
			collectFreeTypeVars(f.Type, out)
		}
	case TUnion:
		for _, c := range tt.Cases {
			collectFreeTypeVars(c.Type, out)
		}
	case TArray:
		collectFreeTypeVars(tt.Elem, out)
	}
}
