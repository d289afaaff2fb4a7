package hygge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCheckedFixture(t *testing.T, src string) *TypedExpr {
	t.Helper()
	e, err := DecodeFixtureString("typecheck_test.hyg", src)
	require.NoError(t, err)
	typed, err := Check(e)
	require.NoError(t, err)
	return typed
}

func TestCheckImmutableFieldAssignIsTypeError(t *testing.T) {
	// let p = struct { immutable a: int; b: int } in p.b <- 5; p.a + p.b
	src := `["Let", "p",
		["Struct", [[false, "a", ["Int", 1]], [true, "b", ["Int", 2]]]],
		["Seq", [
			["Assign", ["Field", ["Var", "p"], "b"], ["Int", 5]],
			["Arith", "+", ["Field", ["Var", "p"], "a"], ["Field", ["Var", "p"], "b"]]
		]]
	]`
	e, err := DecodeFixtureString("ok.hyg", src)
	require.NoError(t, err)
	_, err = Check(e)
	assert.NoError(t, err)

	badSrc := `["Let", "p",
		["Struct", [[false, "a", ["Int", 1]], [true, "b", ["Int", 2]]]],
		["Seq", [
			["Assign", ["Field", ["Var", "p"], "a"], ["Int", 5]],
			["Arith", "+", ["Field", ["Var", "p"], "a"], ["Field", ["Var", "p"], "b"]]
		]]
	]`
	bad, err := DecodeFixtureString("bad.hyg", badSrc)
	require.NoError(t, err)
	_, err = Check(bad)
	require.Error(t, err)
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Error(), "not mutable")
}

func TestCheckAssignToImmutableVarIsTypeError(t *testing.T) {
	src := `["Let", "x", ["Int", 1], ["Assign", ["Var", "x"], ["Int", 2]]]`
	e, err := DecodeFixtureString("bad.hyg", src)
	require.NoError(t, err)
	_, err = Check(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-mutable")
}

func TestCheckAssignToMutableVarIsOK(t *testing.T) {
	src := `["LetMut", "x", ["Int", 1], ["Assign", ["Var", "x"], ["Int", 2]]]`
	e, err := DecodeFixtureString("ok.hyg", src)
	require.NoError(t, err)
	_, err = Check(e)
	assert.NoError(t, err)
}

func TestCheckSelfRecursiveAliasFails(t *testing.T) {
	src := `["Type", "T", "T", ["Let", "x", ["Int", 0], ["Var", "x"]]]`
	e, err := DecodeFixtureString("bad.hyg", src)
	require.NoError(t, err)
	_, err = Check(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recursive definition")
}

func TestCheckRecursiveUnionThroughIndirectionSucceeds(t *testing.T) {
	// type L = union { End: int; Next: L } — recursion goes through the
	// union case, not a bare alias reference, so it's legal.
	src := `["Type", "L", ["Union", [["End", "int"], ["Next", "L"]]],
		["Union", "End", ["Int", 3]]
	]`
	e, err := DecodeFixtureString("ok.hyg", src)
	require.NoError(t, err)
	_, err = Check(e)
	assert.NoError(t, err)
}

func TestCheckDuplicateLambdaArgNameFails(t *testing.T) {
	src := `["Lambda", [["a", "int"], ["a", "int"]], ["Var", "a"]]`
	e, err := DecodeFixtureString("bad.hyg", src)
	require.NoError(t, err)
	_, err = Check(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate argument")
}

func TestCheckUndefinedVariableFails(t *testing.T) {
	src := `["Var", "nope"]`
	e, err := DecodeFixtureString("bad.hyg", src)
	require.NoError(t, err)
	_, err = Check(e)
	require.Error(t, err)
}

func TestCheckWidthSubtypingOnRecordAscription(t *testing.T) {
	// A wider record (extra trailing field) is a subtype of a narrower
	// one, so it can be ascribed to the narrower struct type.
	src := `["Ascription",
		["Struct", [[false, "a", "int"]]],
		["Struct", [[false, "a", ["Int", 1]], [false, "b", ["Int", 2]]]]
	]`
	typed := mustCheckedFixture(t, src)
	assert.NotNil(t, typed.Typ)
}
