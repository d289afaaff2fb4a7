package hygge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateFixture(t *testing.T, src string) AsmDoc {
	t.Helper()
	e, err := DecodeFixtureString("codegen_test.hyg", src)
	require.NoError(t, err)
	typed, err := Check(e)
	require.NoError(t, err)
	doc, err := Generate(NewConfig(), typed)
	require.NoError(t, err)
	return doc
}

func TestGenerateArithmeticProducesRenderableDoc(t *testing.T) {
	doc := generateFixture(t, `["Arith", "+", ["Int", 1], ["Arith", "*", ["Int", 2], ["Int", 3]]]`)
	out := doc.Render()
	assert.Contains(t, out, ".data")
	assert.Contains(t, out, ".text")
	assert.NotEmpty(t, doc.Text)
}

func TestGenerateSyscallEmitsEcall(t *testing.T) {
	doc := generateFixture(t, `["Syscall", 1, [["Int", 7]]]`)
	out := doc.Render()
	assert.Contains(t, out, "ecall")
}

func TestGenerateLambdaApplicationMovesBodyToPostText(t *testing.T) {
	doc := generateFixture(t, `["Let", "f",
		["Lambda", [["x", "int"]], ["Arith", "+", ["Var", "x"], ["Int", 1]]],
		["App", ["Var", "f"], [["Int", 41]]]
	]`)
	assert.NotEmpty(t, doc.PostText, "a lambda body should be relocated out of the caller's linear instruction stream")
}

func TestGenerateLabelsAreUnique(t *testing.T) {
	doc := generateFixture(t, `["While", ["Rel", "<", ["Int", 0], ["Int", 1]], ["Seq", [["Print", ["Int", 1]]]]]`)
	seen := map[string]bool{}
	for _, ins := range append(append([]Instruction{}, doc.Text...), doc.PostText...) {
		if strings.HasSuffix(ins.Text, ":") {
			label := strings.TrimSuffix(ins.Text, ":")
			require.False(t, seen[label], "label %q emitted more than once", label)
			seen[label] = true
		}
	}
	assert.NotEmpty(t, seen, "a While loop should emit at least one branch label")
}

func TestGenerateAssertionEmitsConfiguredExitCode(t *testing.T) {
	doc := generateFixture(t, `["Assert", ["Bool", true]]`)
	out := doc.Render()
	assert.Contains(t, out, "42")
}

func TestIntRegAtRejectsOutOfRangeIndex(t *testing.T) {
	g := newCodegenState(NewConfig())
	_, err := g.intRegAt(1000, zeroPos)
	assert.Error(t, err)
}

func TestIntRegAtAcceptsInRangeIndex(t *testing.T) {
	g := newCodegenState(NewConfig())
	reg, err := g.intRegAt(0, zeroPos)
	require.NoError(t, err)
	assert.NotEmpty(t, reg)
}
