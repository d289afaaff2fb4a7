package hygge

import (
	"strings"
	"testing"

	"github.com/cjavad/hyggec/ascii"
	"github.com/stretchr/testify/assert"
)

func TestAsmDocConcatIsSegmentWise(t *testing.T) {
	a := DataDoc("x", ".word 1").Concat(TextDoc("li a0, 1", "load"))
	b := DataDoc("y", ".word 2").Concat(TextDoc("li a1, 2", ""))
	got := a.Concat(b)

	assert.Equal(t, []DataDirective{{Label: "x", Literal: ".word 1"}, {Label: "y", Literal: ".word 2"}}, got.Data)
	assert.Equal(t, []Instruction{{Text: "li a0, 1", Comment: "load"}, {Text: "li a1, 2"}}, got.Text)
	assert.Empty(t, got.PostText)
}

func TestAsmDocEmptyIsIdentity(t *testing.T) {
	d := TextDoc("nop", "")
	assert.Equal(t, d, EmptyAsmDoc().Concat(d))
	assert.Equal(t, d, d.Concat(EmptyAsmDoc()))
}

func TestAsmDocConcat1FoldsInOrder(t *testing.T) {
	got := Concat1(TextDocf("addi t0, t0, %d", 1), TextDocf("addi t0, t0, %d", 2), TextDocf("addi t0, t0, %d", 3))
	want := []Instruction{{Text: "addi t0, t0, 1"}, {Text: "addi t0, t0, 2"}, {Text: "addi t0, t0, 3"}}
	assert.Equal(t, want, got.Text)
}

func TestAsmDocMoveTextToPostTextRelocatesAndClears(t *testing.T) {
	d := DataDoc("lbl", ".word 0").
		Concat(TextDoc("jal ra, f", "call"))
	d.PostText = []Instruction{{Text: "ret"}}

	moved := d.MoveTextToPostText()

	assert.Empty(t, moved.Text)
	assert.Equal(t, []Instruction{{Text: "ret"}, {Text: "jal ra, f", Comment: "call"}}, moved.PostText)
	assert.Equal(t, d.Data, moved.Data)
}

func TestAsmDocRenderOrdersTextBeforePostText(t *testing.T) {
	d := DataDoc("msg", `.asciiz "hi"`).
		Concat(TextDoc("li a0, 1", ""))
	d.PostText = []Instruction{{Text: "jr ra"}}

	out := d.Render()

	assert.Contains(t, out, ".data")
	assert.Contains(t, out, "msg:")
	assert.Contains(t, out, ".text")
	textIdx := strings.Index(out, "li a0, 1")
	postIdx := strings.Index(out, "jr ra")
	assert.Greater(t, postIdx, textIdx)
}

func TestAsmDocHighlightRenderAppliesColor(t *testing.T) {
	d := DataDoc("x", ".word 1").Concat(TextDoc("nop", "noop"))
	out := d.HighlightRender(ascii.DefaultTheme)
	assert.NotEqual(t, d.Render(), out)
	assert.Contains(t, out, "noop")
}
