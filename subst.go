package hygge

// Subst produces a new tree with every free occurrence of the
// variable named x replaced by v, respecting the shadowing introduced
// by Let/LetT/LetMut, Lambda arguments, Match case variables, and
// For's iteration variable (spec.md 4.1). Mutable bindings (LetMut,
// For) are not represented via substitution at evaluation time (they
// live in the runtime environment's mutable map, see runtime.go), but
// Subst still has to skip their scope when x is shadowed by one, so
// that a stray value substituted in from an outer Application does
// not leak past the point where the name is rebound.
func Subst(e Expr, x string, v Expr) Expr {
	switch n := e.(type) {
	case *Var:
		if n.Name == x {
			return v
		}
		return n

	case *Arith:
		return NewArith(n.pos, n.Op, Subst(n.Lhs, x, v), Subst(n.Rhs, x, v))
	case *CompoundAssign:
		return NewCompoundAssign(n.pos, n.Op, Subst(n.Target, x, v), Subst(n.Rhs, x, v))
	case *Bitwise:
		return NewBitwise(n.pos, n.Op, Subst(n.Lhs, x, v), Subst(n.Rhs, x, v))
	case *BNot:
		return NewBNot(n.pos, Subst(n.Operand, x, v))
	case *Logical:
		return NewLogical(n.pos, n.Op, Subst(n.Lhs, x, v), Subst(n.Rhs, x, v))
	case *Not:
		return NewNot(n.pos, Subst(n.Operand, x, v))
	case *ScAnd:
		return NewScAnd(n.pos, Subst(n.Lhs, x, v), Subst(n.Rhs, x, v))
	case *ScOr:
		return NewScOr(n.pos, Subst(n.Lhs, x, v), Subst(n.Rhs, x, v))
	case *Neg:
		return NewNeg(n.pos, Subst(n.Operand, x, v))
	case *Rel:
		return NewRel(n.pos, n.Op, Subst(n.Lhs, x, v), Subst(n.Rhs, x, v))
	case *Sqrt:
		return NewSqrt(n.pos, Subst(n.Operand, x, v))
	case *Print:
		return NewPrint(n.pos, Subst(n.Operand, x, v))
	case *PrintLn:
		return NewPrintLn(n.pos, Subst(n.Operand, x, v))
	case *Syscall:
		return NewSyscall(n.pos, n.Number, substAll(n.Args, x, v))

	case *Preinc:
		return n
	case *Postinc:
		return n

	case *If:
		return NewIf(n.pos, Subst(n.Cond, x, v), Subst(n.Then, x, v), Subst(n.Else, x, v))
	case *Seq:
		return NewSeq(n.pos, substAll(n.Items, x, v))
	case *While:
		return NewWhile(n.pos, Subst(n.Cond, x, v), Subst(n.Body, x, v))
	case *For:
		init := Subst(n.Init, x, v)
		if n.Ident == x {
			return NewFor(n.pos, n.Ident, init, n.Cond, n.Step, n.Body)
		}
		return NewFor(n.pos, n.Ident, init, Subst(n.Cond, x, v), Subst(n.Step, x, v), Subst(n.Body, x, v))

	case *TypeDecl:
		return NewTypeDecl(n.pos, n.Name, n.Pretype, Subst(n.Scope, x, v))
	case *Ascription:
		return NewAscription(n.pos, n.Pretype, Subst(n.Operand, x, v))
	case *Assertion:
		return NewAssertion(n.pos, Subst(n.Operand, x, v))
	case *Copy:
		return NewCopy(n.pos, Subst(n.Operand, x, v))

	case *Let:
		init := Subst(n.Init, x, v)
		if n.Name == x {
			return NewLet(n.pos, n.Name, init, n.Scope)
		}
		return NewLet(n.pos, n.Name, init, Subst(n.Scope, x, v))
	case *LetT:
		init := Subst(n.Init, x, v)
		if n.Name == x {
			return NewLetT(n.pos, n.Name, n.Pretype, init, n.Scope)
		}
		return NewLetT(n.pos, n.Name, n.Pretype, init, Subst(n.Scope, x, v))
	case *LetMut:
		init := Subst(n.Init, x, v)
		if n.Name == x {
			return NewLetMut(n.pos, n.Name, init, n.Scope)
		}
		return NewLetMut(n.pos, n.Name, init, Subst(n.Scope, x, v))

	case *Assign:
		return NewAssign(n.pos, Subst(n.Target, x, v), Subst(n.Value, x, v))

	case *Lambda:
		for _, p := range n.Args {
			if p.Name == x {
				return n
			}
		}
		return NewLambda(n.pos, n.Args, Subst(n.Body, x, v))

	case *Application:
		return NewApplication(n.pos, Subst(n.Fn, x, v), substAll(n.Args, x, v))

	case *StructCons:
		fields := make([]FieldInit, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = FieldInit{Mutable: f.Mutable, Name: f.Name, Init: Subst(f.Init, x, v)}
		}
		return NewStructCons(n.pos, fields)
	case *FieldSelect:
		return NewFieldSelect(n.pos, Subst(n.Target, x, v), n.Field)

	case *UnionCons:
		return NewUnionCons(n.pos, n.Label, Subst(n.Init, x, v))
	case *Match:
		operand := Subst(n.Operand, x, v)
		cases := make([]MatchCase, len(n.Cases))
		for i, c := range n.Cases {
			if c.Var == x {
				cases[i] = c
				continue
			}
			cases[i] = MatchCase{Label: c.Label, Var: c.Var, Cont: Subst(c.Cont, x, v)}
		}
		return NewMatch(n.pos, operand, cases)

	case *Array:
		return NewArray(n.pos, Subst(n.Length, x, v), Subst(n.Init, x, v))
	case *ArrayElem:
		return NewArrayElem(n.pos, Subst(n.Array, x, v), Subst(n.Index, x, v))
	case *ArrayLength:
		return NewArrayLength(n.pos, Subst(n.Array, x, v))

	default:
		// Literals, ReadInt/ReadFloat, Pointer have no children and
		// cannot mention x.
		return e
	}
}

func substAll(items []Expr, x string, v Expr) []Expr {
	if items == nil {
		return nil
	}
	out := make([]Expr, len(items))
	for i, it := range items {
		out[i] = Subst(it, x, v)
	}
	return out
}

// FreeVars returns the set of variable names appearing free in e,
// i.e. the scope-minus-binders union over the tree (spec.md 4.1).
func FreeVars(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	freeVars(e, out)
	return out
}

// CapturedVars computes the same scope-minus-binders union as
// FreeVars. It is exposed under its own name for asking what a
// Lambda's body captures from its enclosing frame; nothing else in
// the package calls it (spec.md 4.1: "a
// lambda is itself a value", so its free variables *are* its capture
// set — there is no separate notion of "captured" beyond "free").
func CapturedVars(e Expr) map[string]struct{} {
	return FreeVars(e)
}

func freeVars(e Expr, out map[string]struct{}) {
	switch n := e.(type) {
	case *Var:
		out[n.Name] = struct{}{}

	case *Arith:
		freeVars(n.Lhs, out)
		freeVars(n.Rhs, out)
	case *CompoundAssign:
		freeVars(n.Target, out)
		freeVars(n.Rhs, out)
	case *Bitwise:
		freeVars(n.Lhs, out)
		freeVars(n.Rhs, out)
	case *BNot:
		freeVars(n.Operand, out)
	case *Logical:
		freeVars(n.Lhs, out)
		freeVars(n.Rhs, out)
	case *Not:
		freeVars(n.Operand, out)
	case *ScAnd:
		freeVars(n.Lhs, out)
		freeVars(n.Rhs, out)
	case *ScOr:
		freeVars(n.Lhs, out)
		freeVars(n.Rhs, out)
	case *Neg:
		freeVars(n.Operand, out)
	case *Rel:
		freeVars(n.Lhs, out)
		freeVars(n.Rhs, out)
	case *Sqrt:
		freeVars(n.Operand, out)
	case *Print:
		freeVars(n.Operand, out)
	case *PrintLn:
		freeVars(n.Operand, out)
	case *Syscall:
		for _, a := range n.Args {
			freeVars(a, out)
		}
	case *Preinc:
		out[n.Name] = struct{}{}
	case *Postinc:
		out[n.Name] = struct{}{}

	case *If:
		freeVars(n.Cond, out)
		freeVars(n.Then, out)
		freeVars(n.Else, out)
	case *Seq:
		for _, it := range n.Items {
			freeVars(it, out)
		}
	case *While:
		freeVars(n.Cond, out)
		freeVars(n.Body, out)
	case *For:
		freeVars(n.Init, out)
		inner := map[string]struct{}{}
		freeVars(n.Cond, inner)
		freeVars(n.Step, inner)
		freeVars(n.Body, inner)
		delete(inner, n.Ident)
		for k := range inner {
			out[k] = struct{}{}
		}

	case *TypeDecl:
		freeVars(n.Scope, out)
	case *Ascription:
		freeVars(n.Operand, out)
	case *Assertion:
		freeVars(n.Operand, out)
	case *Copy:
		freeVars(n.Operand, out)

	case *Let:
		freeVars(n.Init, out)
		inner := map[string]struct{}{}
		freeVars(n.Scope, inner)
		delete(inner, n.Name)
		for k := range inner {
			out[k] = struct{}{}
		}
	case *LetT:
		freeVars(n.Init, out)
		inner := map[string]struct{}{}
		freeVars(n.Scope, inner)
		delete(inner, n.Name)
		for k := range inner {
			out[k] = struct{}{}
		}
	case *LetMut:
		freeVars(n.Init, out)
		inner := map[string]struct{}{}
		freeVars(n.Scope, inner)
		delete(inner, n.Name)
		for k := range inner {
			out[k] = struct{}{}
		}

	case *Assign:
		freeVars(n.Target, out)
		freeVars(n.Value, out)

	case *Lambda:
		inner := map[string]struct{}{}
		freeVars(n.Body, inner)
		for _, p := range n.Args {
			delete(inner, p.Name)
		}
		for k := range inner {
			out[k] = struct{}{}
		}

	case *Application:
		freeVars(n.Fn, out)
		for _, a := range n.Args {
			freeVars(a, out)
		}

	case *StructCons:
		for _, f := range n.Fields {
			freeVars(f.Init, out)
		}
	case *FieldSelect:
		freeVars(n.Target, out)

	case *UnionCons:
		freeVars(n.Init, out)
	case *Match:
		freeVars(n.Operand, out)
		for _, c := range n.Cases {
			inner := map[string]struct{}{}
			freeVars(c.Cont, inner)
			delete(inner, c.Var)
			for k := range inner {
				out[k] = struct{}{}
			}
		}

	case *Array:
		freeVars(n.Length, out)
		freeVars(n.Init, out)
	case *ArrayElem:
		freeVars(n.Array, out)
		freeVars(n.Index, out)
	case *ArrayLength:
		freeVars(n.Array, out)
	}
}
