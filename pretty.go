package hygge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cjavad/hyggec/ascii"
	"github.com/cjavad/hyggec/postype"
)

// exprFormatToken names the semantic role of a span of printed text,
// the same way the teacher's AstFormatToken drives grammar_ast_printer.go.
type exprFormatToken int

const (
	exprTokenNone exprFormatToken = iota
	exprTokenSpan
	exprTokenLiteral
	exprTokenOperator
	exprTokenOperand
)

func exprPalette(theme ascii.Theme) map[exprFormatToken]string {
	return map[exprFormatToken]string{
		exprTokenNone:     ascii.Reset,
		exprTokenSpan:     theme.Span,
		exprTokenLiteral:  theme.Literal,
		exprTokenOperator: theme.Operator,
		exprTokenOperand:  theme.Operand,
	}
}

var plainPalette = map[exprFormatToken]string{
	exprTokenNone:     "",
	exprTokenSpan:     "",
	exprTokenLiteral:  "",
	exprTokenOperator: "",
	exprTokenOperand:  "",
}

// exprPrinter walks an Expr (or *TypedExpr) tree and renders it as an
// indented ASCII tree, one node per line, exactly like the teacher's
// grammarPrinter walks a grammar AST.
type exprPrinter struct {
	*treePrinter[exprFormatToken]
	palette    map[exprFormatToken]string
	typeSuffix string
}

func newExprPrinter(palette map[exprFormatToken]string) *exprPrinter {
	tp := newTreePrinter(func(input string, token exprFormatToken) string {
		if palette[token] == "" && palette[exprTokenNone] == "" {
			return input
		}
		return palette[token] + input + palette[exprTokenNone]
	})
	return &exprPrinter{treePrinter: tp, palette: palette}
}

func (ep *exprPrinter) writeOperator(op string) { ep.write(ep.format(op, exprTokenOperator)) }
func (ep *exprPrinter) writeOperand(s string)   { ep.write(ep.format(s, exprTokenOperand)) }

func (ep *exprPrinter) writeOperatorWithRand(rator, rand string) {
	ep.write(ep.format(rator, exprTokenOperator))
	ep.write(ep.format("[", exprTokenOperator))
	ep.write(ep.format(rand, exprTokenOperand))
	ep.write(ep.format("]", exprTokenOperator))
}

func (ep *exprPrinter) writeSpan(pos postype.Position) {
	ep.write(ep.format(fmt.Sprintf(" (%s)%s", pos, ep.typeSuffix), exprTokenSpan))
}

func (ep *exprPrinter) writeSpanl(pos postype.Position) {
	ep.writeSpan(pos)
	ep.write("\n")
}

// children prints each thunk under a tree connector, "├──"/"│   " for
// every entry but the last, "└──"/"    " for the last.
func (ep *exprPrinter) children(thunks []func()) {
	for i, thunk := range thunks {
		last := i == len(thunks)-1
		if last {
			ep.pwrite("└── ")
			ep.indent("    ")
		} else {
			ep.pwrite("├── ")
			ep.indent("│   ")
		}
		thunk()
		ep.unindent()
		if !last {
			ep.write("\n")
		}
	}
}

func (ep *exprPrinter) thunk(e Expr) func() {
	return func() { ep.printNode(e) }
}

// printNode renders a single node, recursing through the *TypedExpr
// wrapper transparently: a typed node's own Expr variant is printed
// exactly as its untyped counterpart would be, with its resolved type
// appended to the span.
func (ep *exprPrinter) printNode(e Expr) {
	if te, ok := e.(*TypedExpr); ok {
		prevSuffix := ep.typeSuffix
		ep.typeSuffix = " : " + te.Typ.String()
		ep.printVariant(te.Expr)
		ep.typeSuffix = prevSuffix
		return
	}
	ep.printVariant(e)
}

func paramsString(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ": " + p.Pretype.String()
	}
	return strings.Join(parts, ", ")
}

func (ep *exprPrinter) printVariant(e Expr) {
	switch n := e.(type) {
	case *UnitLit:
		ep.writeOperator("Unit")
		ep.writeSpan(n.pos)
	case *BoolLit:
		ep.writeOperatorWithRand("Bool", strconv.FormatBool(n.Value))
		ep.writeSpan(n.pos)
	case *IntLit:
		ep.writeOperatorWithRand("Int", strconv.Itoa(int(n.Value)))
		ep.writeSpan(n.pos)
	case *FloatLit:
		ep.writeOperatorWithRand("Float", strconv.FormatFloat(float64(n.Value), 'g', -1, 32))
		ep.writeSpan(n.pos)
	case *StringLit:
		ep.writeOperatorWithRand("String", n.Value)
		ep.writeSpan(n.pos)
	case *Var:
		ep.writeOperatorWithRand("Var", n.Name)
		ep.writeSpan(n.pos)
	case *Arith:
		ep.writeOperatorWithRand("Arith", n.Op.String())
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Lhs), ep.thunk(n.Rhs)})
	case *CompoundAssign:
		ep.writeOperatorWithRand("CompoundAssign", n.Op.String())
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Target), ep.thunk(n.Rhs)})
	case *Bitwise:
		ep.writeOperatorWithRand("Bitwise", n.Op.String())
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Lhs), ep.thunk(n.Rhs)})
	case *BNot:
		ep.writeOperator("BNot")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *Logical:
		ep.writeOperatorWithRand("Logical", logicalOpString(n.Op))
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Lhs), ep.thunk(n.Rhs)})
	case *Not:
		ep.writeOperator("Not")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *ScAnd:
		ep.writeOperator("ScAnd")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Lhs), ep.thunk(n.Rhs)})
	case *ScOr:
		ep.writeOperator("ScOr")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Lhs), ep.thunk(n.Rhs)})
	case *Neg:
		ep.writeOperator("Neg")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *Rel:
		ep.writeOperatorWithRand("Rel", n.Op.String())
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Lhs), ep.thunk(n.Rhs)})
	case *Sqrt:
		ep.writeOperator("Sqrt")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *ReadInt:
		ep.writeOperator("ReadInt")
		ep.writeSpan(n.pos)
	case *ReadFloat:
		ep.writeOperator("ReadFloat")
		ep.writeSpan(n.pos)
	case *Print:
		ep.writeOperator("Print")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *PrintLn:
		ep.writeOperator("PrintLn")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *Syscall:
		ep.writeOperatorWithRand("Syscall", strconv.Itoa(n.Number))
		if len(n.Args) == 0 {
			ep.writeSpan(n.pos)
			return
		}
		ep.writeSpanl(n.pos)
		thunks := make([]func(), len(n.Args))
		for i := range n.Args {
			thunks[i] = ep.thunk(n.Args[i])
		}
		ep.children(thunks)
	case *Preinc:
		ep.writeOperatorWithRand("Preinc", n.Name)
		ep.writeSpan(n.pos)
	case *Postinc:
		ep.writeOperatorWithRand("Postinc", n.Name)
		ep.writeSpan(n.pos)
	case *If:
		ep.writeOperator("If")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Cond), ep.thunk(n.Then), ep.thunk(n.Else)})
	case *Seq:
		ep.writeOperator("Seq")
		if len(n.Items) == 0 {
			ep.writeSpan(n.pos)
			return
		}
		ep.writeSpanl(n.pos)
		thunks := make([]func(), len(n.Items))
		for i := range n.Items {
			thunks[i] = ep.thunk(n.Items[i])
		}
		ep.children(thunks)
	case *While:
		ep.writeOperator("While")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Cond), ep.thunk(n.Body)})
	case *For:
		ep.writeOperatorWithRand("For", n.Ident)
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Init), ep.thunk(n.Cond), ep.thunk(n.Step), ep.thunk(n.Body)})
	case *TypeDecl:
		ep.writeOperatorWithRand("Type", n.Name+" = "+n.Pretype.String())
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Scope)})
	case *Ascription:
		ep.writeOperatorWithRand("Ascription", n.Pretype.String())
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *Assertion:
		ep.writeOperator("Assert")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *Copy:
		ep.writeOperator("Copy")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Operand)})
	case *Let:
		ep.writeOperatorWithRand("Let", n.Name)
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Init), ep.thunk(n.Scope)})
	case *LetT:
		ep.writeOperatorWithRand("LetT", n.Name+": "+n.Pretype.String())
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Init), ep.thunk(n.Scope)})
	case *LetMut:
		ep.writeOperatorWithRand("LetMut", n.Name)
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Init), ep.thunk(n.Scope)})
	case *Assign:
		ep.writeOperator("Assign")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Target), ep.thunk(n.Value)})
	case *Lambda:
		ep.writeOperatorWithRand("Lambda", paramsString(n.Args))
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Body)})
	case *Application:
		ep.writeOperator("App")
		ep.writeSpanl(n.pos)
		thunks := make([]func(), 0, len(n.Args)+1)
		thunks = append(thunks, ep.thunk(n.Fn))
		for i := range n.Args {
			thunks = append(thunks, ep.thunk(n.Args[i]))
		}
		ep.children(thunks)
	case *StructCons:
		ep.writeOperator("Struct")
		if len(n.Fields) == 0 {
			ep.writeSpan(n.pos)
			return
		}
		ep.writeSpanl(n.pos)
		thunks := make([]func(), len(n.Fields))
		for i := range n.Fields {
			f := n.Fields[i]
			thunks[i] = func() {
				label := f.Name
				if f.Mutable {
					label = "mutable " + label
				}
				ep.writeOperatorWithRand("Field", label)
				ep.writeSpanl(f.Init.Pos())
				ep.children([]func(){ep.thunk(f.Init)})
			}
		}
		ep.children(thunks)
	case *FieldSelect:
		ep.writeOperatorWithRand("Field", n.Field)
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Target)})
	case *UnionCons:
		ep.writeOperatorWithRand("Union", n.Label)
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Init)})
	case *Match:
		ep.writeOperator("Match")
		ep.writeSpanl(n.pos)
		thunks := make([]func(), 0, len(n.Cases)+1)
		thunks = append(thunks, ep.thunk(n.Operand))
		for i := range n.Cases {
			c := n.Cases[i]
			thunks = append(thunks, func() {
				ep.writeOperatorWithRand("Case", c.Label+" "+c.Var)
				ep.writeSpanl(c.Cont.Pos())
				ep.children([]func(){ep.thunk(c.Cont)})
			})
		}
		ep.children(thunks)
	case *Array:
		ep.writeOperator("Array")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Length), ep.thunk(n.Init)})
	case *ArrayElem:
		ep.writeOperator("ArrayElem")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Array), ep.thunk(n.Index)})
	case *ArrayLength:
		ep.writeOperator("ArrayLength")
		ep.writeSpanl(n.pos)
		ep.children([]func(){ep.thunk(n.Array)})
	case *Pointer:
		ep.writeOperatorWithRand("Pointer", strconv.Itoa(n.Addr))
		ep.writeSpan(n.pos)
	default:
		ep.writeOperator(fmt.Sprintf("<unknown:%T>", e))
	}
}

// PrettyString renders e (untyped or typed) as an indented ASCII tree
// with no color codes, for piping to a file or a non-terminal.
func PrettyString(e Expr) string {
	ep := newExprPrinter(plainPalette)
	ep.printNode(e)
	return ep.output.String()
}

// HighlightPrettyString is PrettyString with ANSI syntax highlighting,
// for the CLI's `--color` terminal output path.
func HighlightPrettyString(e Expr, theme ascii.Theme) string {
	ep := newExprPrinter(exprPalette(theme))
	ep.printNode(e)
	return ep.output.String()
}

func logicalOpString(op LogicalOp) string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	default:
		return "?"
	}
}
