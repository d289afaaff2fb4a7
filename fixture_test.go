package hygge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, src string) Expr {
	t.Helper()
	e, err := DecodeFixtureString("fixture_test.hyg", src)
	require.NoError(t, err)
	return e
}

// runFixture decodes, typechecks, and evaluates a fixture program,
// returning the printed output. It mirrors what `cmd/hygge interpret`
// does, minus stdin wiring.
func runFixture(t *testing.T, src string) string {
	t.Helper()
	e := mustDecode(t, src)
	_, err := Check(e)
	require.NoError(t, err)

	var out strings.Builder
	env := NewRuntimeEnv(nil, func(s string) { out.WriteString(s) })
	_, err = Evaluate(env, e)
	require.NoError(t, err)
	return out.String()
}

func TestFixtureArithmeticPrecedence(t *testing.T) {
	// 2 + 3 * 4 == 14, per spec.md 8's arithmetic-precedence scenario.
	src := `["PrintLn", ["Arith", "+", ["Int", 2], ["Arith", "*", ["Int", 3], ["Int", 4]]]]`
	assert.Equal(t, "14\n", runFixture(t, src))
}

func TestFixtureWhileLoopCounter(t *testing.T) {
	src := `["LetMut", "i", ["Int", 0],
		["Seq", [
			["While", ["Rel", "<", ["Var", "i"], ["Int", 3]],
				["Seq", [
					["Print", ["Var", "i"]],
					["Preinc", "i"]
				]]
			],
			["PrintLn", ["String", ""]]
		]]
	]`
	assert.Equal(t, "012\n", runFixture(t, src))
}

func TestFixtureLetAndArith(t *testing.T) {
	src := `["Let", "x", ["Int", 5], ["Arith", "+", ["Var", "x"], ["Int", 1]]]`
	e := mustDecode(t, src)
	typed, err := Check(e)
	require.NoError(t, err)
	assert.True(t, typed.Typ.Equal(typed.Typ))

	env := NewRuntimeEnv(nil, func(string) {})
	result, err := Evaluate(env, e)
	require.NoError(t, err)
	lit, ok := result.(*IntLit)
	require.True(t, ok)
	assert.EqualValues(t, 6, lit.Value)
}

func TestFixtureLambdaApplication(t *testing.T) {
	src := `["Let", "add", ["Lambda", [["a", "int"], ["b", "int"]], ["Arith", "+", ["Var", "a"], ["Var", "b"]]],
		["App", ["Var", "add"], [["Int", 3], ["Int", 4]]]
	]`
	e := mustDecode(t, src)
	_, err := Check(e)
	require.NoError(t, err)
	env := NewRuntimeEnv(nil, func(string) {})
	result, err := Evaluate(env, e)
	require.NoError(t, err)
	lit, ok := result.(*IntLit)
	require.True(t, ok)
	assert.EqualValues(t, 7, lit.Value)
}

func TestFixtureStructFieldSelect(t *testing.T) {
	src := `["Field",
		["Struct", [[false, "x", ["Int", 1]], [true, "y", ["Int", 2]]]],
		"y"
	]`
	e := mustDecode(t, src)
	_, err := Check(e)
	require.NoError(t, err)
	env := NewRuntimeEnv(nil, func(string) {})
	result, err := Evaluate(env, e)
	require.NoError(t, err)
	lit, ok := result.(*IntLit)
	require.True(t, ok)
	assert.EqualValues(t, 2, lit.Value)
}

func TestFixtureUnionMatch(t *testing.T) {
	// UnionCons's inferred type carries only the constructed case, so
	// the match need only cover the cases actually present on it.
	src := `["Match", ["Union", "Some", ["Int", 9]],
		[["Some", "v", ["Var", "v"]]]
	]`
	e := mustDecode(t, src)
	_, err := Check(e)
	require.NoError(t, err)
	env := NewRuntimeEnv(nil, func(string) {})
	result, err := Evaluate(env, e)
	require.NoError(t, err)
	lit, ok := result.(*IntLit)
	require.True(t, ok)
	assert.EqualValues(t, 9, lit.Value)
}

func TestFixtureArrayLengthAndElem(t *testing.T) {
	src := `["Let", "xs", ["Array", ["Int", 3], ["Int", 7]],
		["Arith", "+", ["ArrayLen", ["Var", "xs"]], ["ArrayElem", ["Var", "xs"], ["Int", 1]]]
	]`
	e := mustDecode(t, src)
	_, err := Check(e)
	require.NoError(t, err)
	env := NewRuntimeEnv(nil, func(string) {})
	result, err := Evaluate(env, e)
	require.NoError(t, err)
	lit, ok := result.(*IntLit)
	require.True(t, ok)
	assert.EqualValues(t, 10, lit.Value) // length 3 + element 7
}

func TestFixtureSelfAliasTypeIsRejected(t *testing.T) {
	src := `["Type", "T", "T", ["Unit"]]`
	e := mustDecode(t, src)
	_, err := Check(e)
	assert.Error(t, err)
}

func TestFixtureAssertionFailureIsRuntimeError(t *testing.T) {
	src := `["Assert", ["Bool", false]]`
	e := mustDecode(t, src)
	_, err := Check(e)
	require.NoError(t, err)
	env := NewRuntimeEnv(nil, func(string) {})
	_, err = Evaluate(env, e)
	assert.Error(t, err)
}

func TestFixtureUnknownTagIsError(t *testing.T) {
	_, err := DecodeFixtureString("bad.hyg", `["NoSuchTag", 1]`)
	assert.Error(t, err)
}

func TestFixtureMalformedJSONIsError(t *testing.T) {
	_, err := DecodeFixtureString("bad.hyg", `[this is not json`)
	assert.Error(t, err)
}

func TestFixtureMissingArgumentIsError(t *testing.T) {
	_, err := DecodeFixtureString("bad.hyg", `["Arith", "+", ["Int", 1]]`)
	assert.Error(t, err)
}

func TestFixturePointerIsRejected(t *testing.T) {
	_, err := DecodeFixtureString("bad.hyg", `["Pointer", 0]`)
	assert.Error(t, err)
}

func TestFixtureDistinctPositionsPerNode(t *testing.T) {
	e := mustDecode(t, `["Arith", "+", ["Int", 1], ["Int", 2]]`)
	arith, ok := e.(*Arith)
	require.True(t, ok)
	assert.NotEqual(t, arith.Pos(), arith.Lhs.Pos())
	assert.NotEqual(t, arith.Lhs.Pos(), arith.Rhs.Pos())
}
