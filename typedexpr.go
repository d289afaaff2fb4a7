package hygge

import "github.com/cjavad/hyggec/postype"

// TypedExpr is a tree node annotated by the checker: the position, a
// typing-environment snapshot, a resolved type, and the underlying
// Expr variant, whose own child fields have in turn been replaced
// with *TypedExpr values by the checker as it descended. Because
// *TypedExpr itself implements Expr, the untyped and typed trees
// share exactly one set of variant types (spec.md 3: "identical tree
// shape; typed nodes additionally carry a typing environment and a
// resolved type").
type TypedExpr struct {
	pos  postype.Position
	Env  *postype.Env
	Typ  postype.Type
	Expr Expr
}

func (t *TypedExpr) Pos() postype.Position { return t.pos }

func newTypedExpr(pos postype.Position, env *postype.Env, typ postype.Type, expr Expr) *TypedExpr {
	return &TypedExpr{pos: pos, Env: env, Typ: typ, Expr: expr}
}

// Untype strips every TypedExpr wrapper from a tree, recovering the
// plain Expr shape the evaluator operates on. It is idempotent on an
// already-untyped tree.
func Untype(e Expr) Expr {
	te, ok := e.(*TypedExpr)
	if !ok {
		return e
	}
	return untypeNode(te.Expr)
}

func untypeChildren(items []Expr) []Expr {
	if items == nil {
		return nil
	}
	out := make([]Expr, len(items))
	for i, it := range items {
		out[i] = Untype(it)
	}
	return out
}

// untypeNode recursively strips TypedExpr wrappers from every child
// field of a single variant node.
func untypeNode(e Expr) Expr {
	switch n := e.(type) {
	case *Arith:
		return NewArith(n.pos, n.Op, Untype(n.Lhs), Untype(n.Rhs))
	case *CompoundAssign:
		return NewCompoundAssign(n.pos, n.Op, Untype(n.Target), Untype(n.Rhs))
	case *Bitwise:
		return NewBitwise(n.pos, n.Op, Untype(n.Lhs), Untype(n.Rhs))
	case *BNot:
		return NewBNot(n.pos, Untype(n.Operand))
	case *Logical:
		return NewLogical(n.pos, n.Op, Untype(n.Lhs), Untype(n.Rhs))
	case *Not:
		return NewNot(n.pos, Untype(n.Operand))
	case *ScAnd:
		return NewScAnd(n.pos, Untype(n.Lhs), Untype(n.Rhs))
	case *ScOr:
		return NewScOr(n.pos, Untype(n.Lhs), Untype(n.Rhs))
	case *Neg:
		return NewNeg(n.pos, Untype(n.Operand))
	case *Rel:
		return NewRel(n.pos, n.Op, Untype(n.Lhs), Untype(n.Rhs))
	case *Sqrt:
		return NewSqrt(n.pos, Untype(n.Operand))
	case *Print:
		return NewPrint(n.pos, Untype(n.Operand))
	case *PrintLn:
		return NewPrintLn(n.pos, Untype(n.Operand))
	case *Syscall:
		return NewSyscall(n.pos, n.Number, untypeChildren(n.Args))
	case *If:
		return NewIf(n.pos, Untype(n.Cond), Untype(n.Then), Untype(n.Else))
	case *Seq:
		return NewSeq(n.pos, untypeChildren(n.Items))
	case *While:
		return NewWhile(n.pos, Untype(n.Cond), Untype(n.Body))
	case *For:
		return NewFor(n.pos, n.Ident, Untype(n.Init), Untype(n.Cond), Untype(n.Step), Untype(n.Body))
	case *TypeDecl:
		return NewTypeDecl(n.pos, n.Name, n.Pretype, Untype(n.Scope))
	case *Ascription:
		return NewAscription(n.pos, n.Pretype, Untype(n.Operand))
	case *Assertion:
		return NewAssertion(n.pos, Untype(n.Operand))
	case *Copy:
		return NewCopy(n.pos, Untype(n.Operand))
	case *Let:
		return NewLet(n.pos, n.Name, Untype(n.Init), Untype(n.Scope))
	case *LetT:
		return NewLetT(n.pos, n.Name, n.Pretype, Untype(n.Init), Untype(n.Scope))
	case *LetMut:
		return NewLetMut(n.pos, n.Name, Untype(n.Init), Untype(n.Scope))
	case *Assign:
		return NewAssign(n.pos, Untype(n.Target), Untype(n.Value))
	case *Lambda:
		return NewLambda(n.pos, n.Args, Untype(n.Body))
	case *Application:
		return NewApplication(n.pos, Untype(n.Fn), untypeChildren(n.Args))
	case *StructCons:
		fields := make([]FieldInit, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = FieldInit{Mutable: f.Mutable, Name: f.Name, Init: Untype(f.Init)}
		}
		return NewStructCons(n.pos, fields)
	case *FieldSelect:
		return NewFieldSelect(n.pos, Untype(n.Target), n.Field)
	case *UnionCons:
		return NewUnionCons(n.pos, n.Label, Untype(n.Init))
	case *Match:
		cases := make([]MatchCase, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = MatchCase{Label: c.Label, Var: c.Var, Cont: Untype(c.Cont)}
		}
		return NewMatch(n.pos, Untype(n.Operand), cases)
	case *Array:
		return NewArray(n.pos, Untype(n.Length), Untype(n.Init))
	case *ArrayElem:
		return NewArrayElem(n.pos, Untype(n.Array), Untype(n.Index))
	case *ArrayLength:
		return NewArrayLength(n.pos, Untype(n.Array))
	default:
		// Literals, Var, ReadInt/ReadFloat, Preinc/Postinc, Pointer
		// have no Expr-valued children.
		return e
	}
}
