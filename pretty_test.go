package hygge

import (
	"testing"

	"github.com/cjavad/hyggec/ascii"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyStringRendersUntypedTree(t *testing.T) {
	e, err := DecodeFixtureString("pretty_test.hyg", `["Arith", "+", ["Int", 1], ["Int", 2]]`)
	require.NoError(t, err)
	out := PrettyString(e)
	assert.Contains(t, out, "+")
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "2")
}

func TestPrettyStringRendersTypedTreeWithTypeSuffix(t *testing.T) {
	e, err := DecodeFixtureString("pretty_test.hyg", `["Arith", "+", ["Int", 1], ["Int", 2]]`)
	require.NoError(t, err)
	typed, err := Check(e)
	require.NoError(t, err)
	out := PrettyString(typed)
	assert.Contains(t, out, "int", "a typed tree should show its resolved type inline")
}

func TestHighlightPrettyStringDiffersFromPlain(t *testing.T) {
	e, err := DecodeFixtureString("pretty_test.hyg", `["Let", "x", ["Int", 1], ["Var", "x"]]`)
	require.NoError(t, err)
	plain := PrettyString(e)
	highlighted := HighlightPrettyString(e, ascii.DefaultTheme)
	assert.NotEqual(t, plain, highlighted)
	assert.Contains(t, highlighted, "x")
}

func TestPrettyStringRendersStructuralVariants(t *testing.T) {
	src := `["Let", "p",
		["Struct", [[false, "a", ["Int", 1]]]],
		["Seq", [
			["If", ["Bool", true], ["Field", ["Var", "p"], "a"], ["Int", 0]],
			["Match", ["Union", "Some", ["Int", 1]], [["Some", "v", ["Var", "v"]]]],
			["ArrayLen", ["Array", ["Int", 3], ["Int", 0]]]
		]]
	]`
	e, err := DecodeFixtureString("pretty_test.hyg", src)
	require.NoError(t, err)
	out := PrettyString(e)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Match")
}
