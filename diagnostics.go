package hygge

import (
	"fmt"
	"strings"

	"github.com/cjavad/hyggec/postype"
)

// Diagnostic is the unit of user-facing error reporting, grounded on
// the teacher's ParsingError/GrammarError pair: a position, a
// message, and a taxonomy code identifying which rule of spec.md 4.3
// or 4.4 produced it.
type Diagnostic struct {
	Pos     postype.Position
	Message string
	Code    string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("(%s) %s", d.Pos, d.Message)
}

// CompileError aggregates every diagnostic produced while checking a
// single program. The type checker never returns a partial tree: it
// either returns a typed tree with no error, or a nil tree and a
// non-empty CompileError.
type CompileError struct {
	Diagnostics []Diagnostic
}

func (e *CompileError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "compile error (no details)"
	}
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors found:\n", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("  ")
		b.WriteString(d.String())
		b.WriteRune('\n')
	}
	return b.String()
}

// NewCompileError returns a CompileError wrapping the given
// diagnostics, or nil if there are none.
func NewCompileError(diagnostics []Diagnostic) error {
	if len(diagnostics) == 0 {
		return nil
	}
	return &CompileError{Diagnostics: diagnostics}
}

// RuntimeError is a stuck-term error raised by the evaluator (taxonomy
// class 5 of spec.md 7): assertion failure, assignment to a
// non-mutable, out-of-bounds array access, descriptor mismatch, or an
// unhandled syscall.
type RuntimeError struct {
	Pos     postype.Position
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("(%s) stuck: %s", e.Pos, e.Message)
}

// GeneratorBug is raised by the code generator when it is handed a
// tree shape its type-correctness assumption rules out (taxonomy
// class 6): a bug, not a user-facing diagnostic, per spec.md 4.6
// "Failure semantics of the generator".
type GeneratorBug struct {
	Pos     postype.Position
	Message string
}

func (e *GeneratorBug) Error() string {
	return fmt.Sprintf("(%s) codegen bug: %s", e.Pos, e.Message)
}
