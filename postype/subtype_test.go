package postype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtypeReflexive(t *testing.T) {
	env := NewEnv()
	for _, typ := range []Type{Bool, Int, Float, String, Unit, TArray{Elem: Int}} {
		assert.True(t, Subtype(env, typ, typ, nil), "%s <: %s", typ, typ)
	}
}

func TestSubtypeRecordWidth(t *testing.T) {
	env := NewEnv()
	sub := TRecord{Fields: []RecordField{{Name: "a", Type: Int}, {Name: "b", Type: Bool}}}
	sup := TRecord{Fields: []RecordField{{Name: "a", Type: Int}}}
	assert.True(t, Subtype(env, sub, sup, nil), "adding trailing fields must be a subtype")
	assert.False(t, Subtype(env, sup, sub, nil), "the narrower record is not a supertype's subtype")
}

func TestSubtypeRecordMutableInvariant(t *testing.T) {
	env := NewEnv()
	sub := TRecord{Fields: []RecordField{{Name: "a", Type: Int, Mutable: false}}}
	sup := TRecord{Fields: []RecordField{{Name: "a", Type: Int, Mutable: true}}}
	assert.False(t, Subtype(env, sub, sup, nil), "an immutable field cannot satisfy a mutable supertype field")
}

func TestSubtypeUnionLabelSubset(t *testing.T) {
	env := NewEnv()
	sub := TUnion{Cases: []UnionCase{{Label: "A", Type: Int}}}
	sup := TUnion{Cases: []UnionCase{{Label: "A", Type: Int}, {Label: "B", Type: Bool}}}
	assert.True(t, Subtype(env, sub, sup, nil), "removing labels produces a subtype")
	assert.False(t, Subtype(env, sup, sub, nil))
}

func TestSubtypeArrayInvariant(t *testing.T) {
	env := NewEnv()
	assert.True(t, Subtype(env, TArray{Elem: Int}, TArray{Elem: Int}, nil))
	assert.False(t, Subtype(env, TArray{Elem: Int}, TArray{Elem: Float}, nil))
}

func TestSubtypeRecursiveAliasesViaAssumptions(t *testing.T) {
	// type L = union { End: int; Next: L }
	env := NewEnv()
	lUnion := TUnion{Cases: []UnionCase{
		{Label: "End", Type: Int},
		{Label: "Next", Type: TVar{Name: "L"}},
	}}
	env = env.WithAlias("L", lUnion)

	assert.True(t, Subtype(env, TVar{Name: "L"}, TVar{Name: "L"}, nil))
	assert.True(t, Subtype(env, lUnion, TVar{Name: "L"}, nil))
}

func TestSubtypeTransitivity(t *testing.T) {
	env := NewEnv()
	t1 := TRecord{Fields: []RecordField{{Name: "a", Type: Int}, {Name: "b", Type: Bool}, {Name: "c", Type: String}}}
	t2 := TRecord{Fields: []RecordField{{Name: "a", Type: Int}, {Name: "b", Type: Bool}}}
	t3 := TRecord{Fields: []RecordField{{Name: "a", Type: Int}}}
	assert.True(t, Subtype(env, t1, t2, nil))
	assert.True(t, Subtype(env, t2, t3, nil))
	assert.True(t, Subtype(env, t1, t3, nil))
}

func TestExpandTypeDetectsSelfRecursion(t *testing.T) {
	env := NewEnv()
	env = env.WithAlias("T", TVar{Name: "T"})
	_, err := ExpandType(env, TVar{Name: "T"})
	assert.Error(t, err)
}

func TestExpandTypeUnbound(t *testing.T) {
	env := NewEnv()
	_, err := ExpandType(env, TVar{Name: "Missing"})
	assert.Error(t, err)
}

func TestFreeTypeVars(t *testing.T) {
	typ := TFun{Args: []Type{TVar{Name: "A"}, Int}, Ret: TArray{Elem: TVar{Name: "B"}}}
	free := FreeTypeVars(typ)
	assert.Contains(t, free, "A")
	assert.Contains(t, free, "B")
	assert.Len(t, free, 2)
}
