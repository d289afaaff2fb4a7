package hygge

import (
	"fmt"

	"github.com/cjavad/hyggec/ascii"
)

// DataDirective is one entry of an AsmDoc's data segment: an optional
// label and the directive literal that follows it (".word 0",
// ".asciiz \"...\"", etc).
type DataDirective struct {
	Label   string
	Literal string
}

// Instruction is one entry of a text or post-text segment: the
// instruction text and an optional trailing comment.
type Instruction struct {
	Text    string
	Comment string
}

// AsmDoc is the three-segment assembly document of spec.md 4.5: data
// directives, text instructions, and post-text instructions.
// Concatenation and the single-element constructors below form a
// monoid the code generator uses pervasively to build a program
// bottom-up out of its subexpressions' documents.
type AsmDoc struct {
	Data     []DataDirective
	Text     []Instruction
	PostText []Instruction
}

// EmptyAsmDoc is the identity element of the AsmDoc monoid.
func EmptyAsmDoc() AsmDoc { return AsmDoc{} }

// DataDoc is a single-entry data-segment document.
func DataDoc(label, literal string) AsmDoc {
	return AsmDoc{Data: []DataDirective{{Label: label, Literal: literal}}}
}

// TextDoc is a single-instruction text-segment document.
func TextDoc(instr, comment string) AsmDoc {
	return AsmDoc{Text: []Instruction{{Text: instr, Comment: comment}}}
}

// TextDocf is TextDoc with a formatted instruction and no comment; the
// code generator reaches for it whenever an instruction has no
// annotation worth keeping (register moves, branches, jumps).
func TextDocf(format string, args ...any) AsmDoc {
	return TextDoc(fmt.Sprintf(format, args...), "")
}

// Concat concatenates two documents segment-wise, d first.
func (d AsmDoc) Concat(other AsmDoc) AsmDoc {
	return AsmDoc{
		Data:     concatDirectives(d.Data, other.Data),
		Text:     concatInstructions(d.Text, other.Text),
		PostText: concatInstructions(d.PostText, other.PostText),
	}
}

// Concat1 folds Concat over any number of documents in order; it
// exists so the code generator can write
// `Concat1(d1, d2, d3, ...)` instead of a chain of `.Concat` calls.
func Concat1(docs ...AsmDoc) AsmDoc {
	out := EmptyAsmDoc()
	for _, d := range docs {
		out = out.Concat(d)
	}
	return out
}

// MoveTextToPostText appends the whole of the current text segment
// onto post-text and clears text, per spec.md 4.5's "move" operation.
// The code generator uses this once a function body's instructions
// have accumulated in text, to relocate the function out of the
// caller's instruction stream and into the trailing post-text segment
// where RARS assembles function definitions after the program entry
// point.
func (d AsmDoc) MoveTextToPostText() AsmDoc {
	return AsmDoc{
		Data:     d.Data,
		Text:     nil,
		PostText: concatInstructions(d.PostText, d.Text),
	}
}

func concatDirectives(a, b []DataDirective) []DataDirective {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]DataDirective, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func concatInstructions(a, b []Instruction) []Instruction {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]Instruction, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Render produces the final RARS-ready assembly text: a .data
// section, then a .text section holding text followed by post-text
// (so the program entry point in text always assembles before any
// function bodies relocated into post-text).
func (d AsmDoc) Render() string {
	w := newOutputWriter("\t")
	w.writel(".data")
	for _, dd := range d.Data {
		if dd.Label != "" {
			w.writei(dd.Label + ":\t")
		} else {
			w.writei("\t")
		}
		w.writel(dd.Literal)
	}
	w.writel("")
	w.writel(".text")
	for _, ins := range d.Text {
		writeInstruction(w, ins)
	}
	for _, ins := range d.PostText {
		writeInstruction(w, ins)
	}
	return w.String()
}

func writeInstruction(w *outputWriter, ins Instruction) {
	line := "\t" + ins.Text
	if ins.Comment != "" {
		line += "\t# " + ins.Comment
	}
	w.writel(line)
}

// HighlightRender is Render with ANSI syntax highlighting applied,
// for human inspection at a terminal (the `hygge compile --color`
// CLI path).
func (d AsmDoc) HighlightRender(theme ascii.Theme) string {
	w := newOutputWriter("\t")
	w.writel(ascii.Color(theme.Label, ".data"))
	for _, dd := range d.Data {
		if dd.Label != "" {
			w.writei(ascii.Color(theme.Label, dd.Label) + ":\t")
		} else {
			w.writei("\t")
		}
		w.writel(ascii.Color(theme.Literal, dd.Literal))
	}
	w.writel("")
	w.writel(ascii.Color(theme.Label, ".text"))
	for _, ins := range d.Text {
		writeHighlightInstruction(w, theme, ins)
	}
	for _, ins := range d.PostText {
		writeHighlightInstruction(w, theme, ins)
	}
	return w.String()
}

func writeHighlightInstruction(w *outputWriter, theme ascii.Theme, ins Instruction) {
	line := "\t" + ascii.Color(theme.Operator, ins.Text)
	if ins.Comment != "" {
		line += "\t" + ascii.Color(theme.Comment, "# "+ins.Comment)
	}
	w.writel(line)
}
