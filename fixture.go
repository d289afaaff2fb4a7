package hygge

import (
	"encoding/json"
	"fmt"

	"github.com/cjavad/hyggec/postype"
)

// DecodeFixture parses the fixed, hand-written S-expression-shaped
// fixture format into an untyped Expr tree. It exists so the CLI's
// `parse` subcommand and the test suite have a textual way to build
// trees without hand-writing Go literals or owning a lexer/grammar
// (spec.md Out-of-scope) — it recognizes exactly one JSON array shape
// per expression variant, tag first, with no operator precedence and
// no extensibility.
//
// A node is a JSON array `["Tag", arg0, arg1, ...]`; a pretype is
// either a bare string (a primitive or alias name) or a tagged array
// of the same shape. fixture_test.go decodes and runs a sample of these
// shapes and exercises the decoder's error paths.
func DecodeFixture(file string, data []byte) (Expr, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixture %s: invalid JSON: %w", file, err)
	}
	d := &fixtureDecoder{file: file}
	return d.decodeExpr(raw)
}

// DecodeFixtureString is DecodeFixture for an in-memory fixture, used
// throughout the test suite.
func DecodeFixtureString(file, src string) (Expr, error) {
	return DecodeFixture(file, []byte(src))
}

// fixtureDecoder tracks a monotonic node counter so every decoded node
// gets a distinct Position (there is no real source text to derive
// line/col spans from) without depending on wall-clock time.
type fixtureDecoder struct {
	file string
	seq  int
}

func (d *fixtureDecoder) nextPos() postype.Position {
	d.seq++
	return postype.NewPosition(d.file, 1, d.seq, d.seq, d.seq)
}

func (d *fixtureDecoder) arg(args []interface{}, i int, what string) (interface{}, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("fixture %s: missing argument %d (%s)", d.file, i, what)
	}
	return args[i], nil
}

func (d *fixtureDecoder) str(args []interface{}, i int, what string) (string, error) {
	v, err := d.arg(args, i, what)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("fixture %s: expected string for %s, got %#v", d.file, what, v)
	}
	return s, nil
}

func (d *fixtureDecoder) number(args []interface{}, i int, what string) (float64, error) {
	v, err := d.arg(args, i, what)
	if err != nil {
		return 0, err
	}
	n, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("fixture %s: expected number for %s, got %#v", d.file, what, v)
	}
	return n, nil
}

func (d *fixtureDecoder) boolean(args []interface{}, i int, what string) (bool, error) {
	v, err := d.arg(args, i, what)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("fixture %s: expected bool for %s, got %#v", d.file, what, v)
	}
	return b, nil
}

func (d *fixtureDecoder) list(args []interface{}, i int, what string) ([]interface{}, error) {
	v, err := d.arg(args, i, what)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("fixture %s: expected list for %s, got %#v", d.file, what, v)
	}
	return items, nil
}

func (d *fixtureDecoder) exprArg(args []interface{}, i int, what string) (Expr, error) {
	v, err := d.arg(args, i, what)
	if err != nil {
		return nil, err
	}
	return d.decodeExpr(v)
}

func (d *fixtureDecoder) exprList(args []interface{}, i int, what string) ([]Expr, error) {
	items, err := d.list(args, i, what)
	if err != nil {
		return nil, err
	}
	out := make([]Expr, len(items))
	for j, it := range items {
		e, err := d.decodeExpr(it)
		if err != nil {
			return nil, err
		}
		out[j] = e
	}
	return out, nil
}

func (d *fixtureDecoder) pretypeArg(args []interface{}, i int, what string) (postype.Pretype, error) {
	v, err := d.arg(args, i, what)
	if err != nil {
		return nil, err
	}
	return d.decodePretype(v)
}

func arithOpFromString(s string) (ArithOp, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	case "%":
		return OpRem, nil
	default:
		return 0, fmt.Errorf("fixture: unknown arithmetic operator %q", s)
	}
}

func bitwiseOpFromString(s string) (BitwiseOp, error) {
	switch s {
	case "&":
		return OpBAnd, nil
	case "|":
		return OpBOr, nil
	case "^":
		return OpBXor, nil
	case "<<":
		return OpBSL, nil
	case ">>":
		return OpBSR, nil
	default:
		return 0, fmt.Errorf("fixture: unknown bitwise operator %q", s)
	}
}

func logicalOpFromString(s string) (LogicalOp, error) {
	switch s {
	case "and":
		return OpAnd, nil
	case "or":
		return OpOr, nil
	case "xor":
		return OpXor, nil
	default:
		return 0, fmt.Errorf("fixture: unknown logical operator %q", s)
	}
}

func relOpFromString(s string) (RelOp, error) {
	switch s {
	case "==":
		return OpEq, nil
	case "<":
		return OpLess, nil
	case "<=":
		return OpLessEq, nil
	case ">":
		return OpGreater, nil
	case ">=":
		return OpGreaterEq, nil
	default:
		return 0, fmt.Errorf("fixture: unknown relational operator %q", s)
	}
}

func (d *fixtureDecoder) decodeExpr(v interface{}) (Expr, error) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("fixture %s: expected [tag, ...] expression node, got %#v", d.file, v)
	}
	tag, ok := arr[0].(string)
	if !ok {
		return nil, fmt.Errorf("fixture %s: expression tag must be a string, got %#v", d.file, arr[0])
	}
	rest := arr[1:]
	pos := d.nextPos()

	switch tag {
	case "Unit":
		return NewUnitLit(pos), nil
	case "Bool":
		b, err := d.boolean(rest, 0, "Bool value")
		if err != nil {
			return nil, err
		}
		return NewBoolLit(pos, b), nil
	case "Int":
		n, err := d.number(rest, 0, "Int value")
		if err != nil {
			return nil, err
		}
		return NewIntLit(pos, int32(n)), nil
	case "Float":
		n, err := d.number(rest, 0, "Float value")
		if err != nil {
			return nil, err
		}
		return NewFloatLit(pos, float32(n)), nil
	case "String":
		s, err := d.str(rest, 0, "String value")
		if err != nil {
			return nil, err
		}
		return NewStringLit(pos, s), nil
	case "Var":
		name, err := d.str(rest, 0, "Var name")
		if err != nil {
			return nil, err
		}
		return NewVar(pos, name), nil
	case "Arith":
		opStr, err := d.str(rest, 0, "Arith op")
		if err != nil {
			return nil, err
		}
		op, err := arithOpFromString(opStr)
		if err != nil {
			return nil, err
		}
		lhs, err := d.exprArg(rest, 1, "Arith lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := d.exprArg(rest, 2, "Arith rhs")
		if err != nil {
			return nil, err
		}
		return NewArith(pos, op, lhs, rhs), nil
	case "CompoundAssign":
		opStr, err := d.str(rest, 0, "CompoundAssign op")
		if err != nil {
			return nil, err
		}
		op, err := arithOpFromString(opStr)
		if err != nil {
			return nil, err
		}
		target, err := d.exprArg(rest, 1, "CompoundAssign target")
		if err != nil {
			return nil, err
		}
		rhs, err := d.exprArg(rest, 2, "CompoundAssign rhs")
		if err != nil {
			return nil, err
		}
		return NewCompoundAssign(pos, op, target, rhs), nil
	case "Bitwise":
		opStr, err := d.str(rest, 0, "Bitwise op")
		if err != nil {
			return nil, err
		}
		op, err := bitwiseOpFromString(opStr)
		if err != nil {
			return nil, err
		}
		lhs, err := d.exprArg(rest, 1, "Bitwise lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := d.exprArg(rest, 2, "Bitwise rhs")
		if err != nil {
			return nil, err
		}
		return NewBitwise(pos, op, lhs, rhs), nil
	case "BNot":
		operand, err := d.exprArg(rest, 0, "BNot operand")
		if err != nil {
			return nil, err
		}
		return NewBNot(pos, operand), nil
	case "Logical":
		opStr, err := d.str(rest, 0, "Logical op")
		if err != nil {
			return nil, err
		}
		op, err := logicalOpFromString(opStr)
		if err != nil {
			return nil, err
		}
		lhs, err := d.exprArg(rest, 1, "Logical lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := d.exprArg(rest, 2, "Logical rhs")
		if err != nil {
			return nil, err
		}
		return NewLogical(pos, op, lhs, rhs), nil
	case "Not":
		operand, err := d.exprArg(rest, 0, "Not operand")
		if err != nil {
			return nil, err
		}
		return NewNot(pos, operand), nil
	case "ScAnd":
		lhs, err := d.exprArg(rest, 0, "ScAnd lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := d.exprArg(rest, 1, "ScAnd rhs")
		if err != nil {
			return nil, err
		}
		return NewScAnd(pos, lhs, rhs), nil
	case "ScOr":
		lhs, err := d.exprArg(rest, 0, "ScOr lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := d.exprArg(rest, 1, "ScOr rhs")
		if err != nil {
			return nil, err
		}
		return NewScOr(pos, lhs, rhs), nil
	case "Neg":
		operand, err := d.exprArg(rest, 0, "Neg operand")
		if err != nil {
			return nil, err
		}
		return NewNeg(pos, operand), nil
	case "Rel":
		opStr, err := d.str(rest, 0, "Rel op")
		if err != nil {
			return nil, err
		}
		op, err := relOpFromString(opStr)
		if err != nil {
			return nil, err
		}
		lhs, err := d.exprArg(rest, 1, "Rel lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := d.exprArg(rest, 2, "Rel rhs")
		if err != nil {
			return nil, err
		}
		return NewRel(pos, op, lhs, rhs), nil
	case "Sqrt":
		operand, err := d.exprArg(rest, 0, "Sqrt operand")
		if err != nil {
			return nil, err
		}
		return NewSqrt(pos, operand), nil
	case "ReadInt":
		return NewReadInt(pos), nil
	case "ReadFloat":
		return NewReadFloat(pos), nil
	case "Print":
		operand, err := d.exprArg(rest, 0, "Print operand")
		if err != nil {
			return nil, err
		}
		return NewPrint(pos, operand), nil
	case "PrintLn":
		operand, err := d.exprArg(rest, 0, "PrintLn operand")
		if err != nil {
			return nil, err
		}
		return NewPrintLn(pos, operand), nil
	case "Syscall":
		n, err := d.number(rest, 0, "Syscall number")
		if err != nil {
			return nil, err
		}
		args, err := d.exprList(rest, 1, "Syscall args")
		if err != nil {
			return nil, err
		}
		return NewSyscall(pos, int(n), args), nil
	case "Preinc":
		name, err := d.str(rest, 0, "Preinc name")
		if err != nil {
			return nil, err
		}
		return NewPreinc(pos, name), nil
	case "Postinc":
		name, err := d.str(rest, 0, "Postinc name")
		if err != nil {
			return nil, err
		}
		return NewPostinc(pos, name), nil
	case "If":
		cond, err := d.exprArg(rest, 0, "If cond")
		if err != nil {
			return nil, err
		}
		then, err := d.exprArg(rest, 1, "If then")
		if err != nil {
			return nil, err
		}
		els, err := d.exprArg(rest, 2, "If else")
		if err != nil {
			return nil, err
		}
		return NewIf(pos, cond, then, els), nil
	case "Seq":
		items, err := d.exprList(rest, 0, "Seq items")
		if err != nil {
			return nil, err
		}
		return NewSeq(pos, items), nil
	case "While":
		cond, err := d.exprArg(rest, 0, "While cond")
		if err != nil {
			return nil, err
		}
		body, err := d.exprArg(rest, 1, "While body")
		if err != nil {
			return nil, err
		}
		return NewWhile(pos, cond, body), nil
	case "For":
		ident, err := d.str(rest, 0, "For ident")
		if err != nil {
			return nil, err
		}
		init, err := d.exprArg(rest, 1, "For init")
		if err != nil {
			return nil, err
		}
		cond, err := d.exprArg(rest, 2, "For cond")
		if err != nil {
			return nil, err
		}
		step, err := d.exprArg(rest, 3, "For step")
		if err != nil {
			return nil, err
		}
		body, err := d.exprArg(rest, 4, "For body")
		if err != nil {
			return nil, err
		}
		return NewFor(pos, ident, init, cond, step, body), nil
	case "Type":
		name, err := d.str(rest, 0, "Type name")
		if err != nil {
			return nil, err
		}
		pt, err := d.pretypeArg(rest, 1, "Type pretype")
		if err != nil {
			return nil, err
		}
		scope, err := d.exprArg(rest, 2, "Type scope")
		if err != nil {
			return nil, err
		}
		return NewTypeDecl(pos, name, pt, scope), nil
	case "Ascription":
		pt, err := d.pretypeArg(rest, 0, "Ascription pretype")
		if err != nil {
			return nil, err
		}
		operand, err := d.exprArg(rest, 1, "Ascription operand")
		if err != nil {
			return nil, err
		}
		return NewAscription(pos, pt, operand), nil
	case "Assert":
		operand, err := d.exprArg(rest, 0, "Assert operand")
		if err != nil {
			return nil, err
		}
		return NewAssertion(pos, operand), nil
	case "Copy":
		operand, err := d.exprArg(rest, 0, "Copy operand")
		if err != nil {
			return nil, err
		}
		return NewCopy(pos, operand), nil
	case "Let":
		name, err := d.str(rest, 0, "Let name")
		if err != nil {
			return nil, err
		}
		init, err := d.exprArg(rest, 1, "Let init")
		if err != nil {
			return nil, err
		}
		scope, err := d.exprArg(rest, 2, "Let scope")
		if err != nil {
			return nil, err
		}
		return NewLet(pos, name, init, scope), nil
	case "LetT":
		name, err := d.str(rest, 0, "LetT name")
		if err != nil {
			return nil, err
		}
		pt, err := d.pretypeArg(rest, 1, "LetT pretype")
		if err != nil {
			return nil, err
		}
		init, err := d.exprArg(rest, 2, "LetT init")
		if err != nil {
			return nil, err
		}
		scope, err := d.exprArg(rest, 3, "LetT scope")
		if err != nil {
			return nil, err
		}
		return NewLetT(pos, name, pt, init, scope), nil
	case "LetMut":
		name, err := d.str(rest, 0, "LetMut name")
		if err != nil {
			return nil, err
		}
		init, err := d.exprArg(rest, 1, "LetMut init")
		if err != nil {
			return nil, err
		}
		scope, err := d.exprArg(rest, 2, "LetMut scope")
		if err != nil {
			return nil, err
		}
		return NewLetMut(pos, name, init, scope), nil
	case "Assign":
		target, err := d.exprArg(rest, 0, "Assign target")
		if err != nil {
			return nil, err
		}
		value, err := d.exprArg(rest, 1, "Assign value")
		if err != nil {
			return nil, err
		}
		return NewAssign(pos, target, value), nil
	case "Lambda":
		paramItems, err := d.list(rest, 0, "Lambda params")
		if err != nil {
			return nil, err
		}
		params := make([]Param, len(paramItems))
		for i, p := range paramItems {
			pa, ok := p.([]interface{})
			if !ok || len(pa) != 2 {
				return nil, fmt.Errorf("fixture %s: Lambda param must be [name, pretype]", d.file)
			}
			name, ok := pa[0].(string)
			if !ok {
				return nil, fmt.Errorf("fixture %s: Lambda param name must be a string", d.file)
			}
			pt, err := d.decodePretype(pa[1])
			if err != nil {
				return nil, err
			}
			params[i] = Param{Name: name, Pretype: pt}
		}
		body, err := d.exprArg(rest, 1, "Lambda body")
		if err != nil {
			return nil, err
		}
		return NewLambda(pos, params, body), nil
	case "App":
		fn, err := d.exprArg(rest, 0, "App fn")
		if err != nil {
			return nil, err
		}
		args, err := d.exprList(rest, 1, "App args")
		if err != nil {
			return nil, err
		}
		return NewApplication(pos, fn, args), nil
	case "Struct":
		fieldItems, err := d.list(rest, 0, "Struct fields")
		if err != nil {
			return nil, err
		}
		fields := make([]FieldInit, len(fieldItems))
		for i, f := range fieldItems {
			fa, ok := f.([]interface{})
			if !ok || len(fa) != 3 {
				return nil, fmt.Errorf("fixture %s: Struct field must be [mutable, name, init]", d.file)
			}
			mut, ok := fa[0].(bool)
			if !ok {
				return nil, fmt.Errorf("fixture %s: Struct field mutable flag must be a bool", d.file)
			}
			name, ok := fa[1].(string)
			if !ok {
				return nil, fmt.Errorf("fixture %s: Struct field name must be a string", d.file)
			}
			init, err := d.decodeExpr(fa[2])
			if err != nil {
				return nil, err
			}
			fields[i] = FieldInit{Mutable: mut, Name: name, Init: init}
		}
		return NewStructCons(pos, fields), nil
	case "Field":
		target, err := d.exprArg(rest, 0, "Field target")
		if err != nil {
			return nil, err
		}
		field, err := d.str(rest, 1, "Field name")
		if err != nil {
			return nil, err
		}
		return NewFieldSelect(pos, target, field), nil
	case "Union":
		label, err := d.str(rest, 0, "Union label")
		if err != nil {
			return nil, err
		}
		init, err := d.exprArg(rest, 1, "Union init")
		if err != nil {
			return nil, err
		}
		return NewUnionCons(pos, label, init), nil
	case "Match":
		operand, err := d.exprArg(rest, 0, "Match operand")
		if err != nil {
			return nil, err
		}
		caseItems, err := d.list(rest, 1, "Match cases")
		if err != nil {
			return nil, err
		}
		cases := make([]MatchCase, len(caseItems))
		for i, c := range caseItems {
			ca, ok := c.([]interface{})
			if !ok || len(ca) != 3 {
				return nil, fmt.Errorf("fixture %s: Match case must be [label, var, cont]", d.file)
			}
			label, ok := ca[0].(string)
			if !ok {
				return nil, fmt.Errorf("fixture %s: Match case label must be a string", d.file)
			}
			varName, ok := ca[1].(string)
			if !ok {
				return nil, fmt.Errorf("fixture %s: Match case var must be a string", d.file)
			}
			cont, err := d.decodeExpr(ca[2])
			if err != nil {
				return nil, err
			}
			cases[i] = MatchCase{Label: label, Var: varName, Cont: cont}
		}
		return NewMatch(pos, operand, cases), nil
	case "Array":
		length, err := d.exprArg(rest, 0, "Array length")
		if err != nil {
			return nil, err
		}
		init, err := d.exprArg(rest, 1, "Array init")
		if err != nil {
			return nil, err
		}
		return NewArray(pos, length, init), nil
	case "ArrayElem":
		array, err := d.exprArg(rest, 0, "ArrayElem array")
		if err != nil {
			return nil, err
		}
		index, err := d.exprArg(rest, 1, "ArrayElem index")
		if err != nil {
			return nil, err
		}
		return NewArrayElem(pos, array, index), nil
	case "ArrayLen":
		array, err := d.exprArg(rest, 0, "ArrayLen array")
		if err != nil {
			return nil, err
		}
		return NewArrayLength(pos, array), nil
	case "Pointer":
		return nil, fmt.Errorf("fixture %s: Pointer is a runtime-only node and cannot appear in a fixture", d.file)
	default:
		return nil, fmt.Errorf("fixture %s: unknown expression tag %q", d.file, tag)
	}
}

func (d *fixtureDecoder) decodePretype(v interface{}) (postype.Pretype, error) {
	pos := d.nextPos()
	switch vv := v.(type) {
	case string:
		return &postype.PretypeIdent{Position: pos, Name: vv}, nil
	case []interface{}:
		if len(vv) == 0 {
			return nil, fmt.Errorf("fixture %s: empty pretype node", d.file)
		}
		tag, ok := vv[0].(string)
		if !ok {
			return nil, fmt.Errorf("fixture %s: pretype tag must be a string, got %#v", d.file, vv[0])
		}
		rest := vv[1:]
		switch tag {
		case "Fun":
			argItems, err := d.list(rest, 0, "Fun args")
			if err != nil {
				return nil, err
			}
			args := make([]postype.Pretype, len(argItems))
			for i, a := range argItems {
				pt, err := d.decodePretype(a)
				if err != nil {
					return nil, err
				}
				args[i] = pt
			}
			retV, err := d.arg(rest, 1, "Fun return")
			if err != nil {
				return nil, err
			}
			ret, err := d.decodePretype(retV)
			if err != nil {
				return nil, err
			}
			return &postype.PretypeFun{Position: pos, Args: args, Ret: ret}, nil
		case "Struct":
			fieldItems, err := d.list(rest, 0, "Struct fields")
			if err != nil {
				return nil, err
			}
			fields := make([]postype.PretypeField, len(fieldItems))
			for i, f := range fieldItems {
				fa, ok := f.([]interface{})
				if !ok || len(fa) != 3 {
					return nil, fmt.Errorf("fixture %s: Struct pretype field must be [mutable, name, type]", d.file)
				}
				mut, ok := fa[0].(bool)
				if !ok {
					return nil, fmt.Errorf("fixture %s: Struct pretype field mutable flag must be a bool", d.file)
				}
				name, ok := fa[1].(string)
				if !ok {
					return nil, fmt.Errorf("fixture %s: Struct pretype field name must be a string", d.file)
				}
				ft, err := d.decodePretype(fa[2])
				if err != nil {
					return nil, err
				}
				fields[i] = postype.PretypeField{Mutable: mut, Name: name, Type: ft}
			}
			return postype.NewPretypeRecord(pos, fields)
		case "Union":
			caseItems, err := d.list(rest, 0, "Union cases")
			if err != nil {
				return nil, err
			}
			cases := make([]postype.PretypeCase, len(caseItems))
			for i, c := range caseItems {
				ca, ok := c.([]interface{})
				if !ok || len(ca) != 2 {
					return nil, fmt.Errorf("fixture %s: Union pretype case must be [label, type]", d.file)
				}
				label, ok := ca[0].(string)
				if !ok {
					return nil, fmt.Errorf("fixture %s: Union pretype case label must be a string", d.file)
				}
				ct, err := d.decodePretype(ca[1])
				if err != nil {
					return nil, err
				}
				cases[i] = postype.PretypeCase{Label: label, Type: ct}
			}
			return postype.NewPretypeUnion(pos, cases)
		case "Array":
			elemV, err := d.arg(rest, 0, "Array elem")
			if err != nil {
				return nil, err
			}
			elem, err := d.decodePretype(elemV)
			if err != nil {
				return nil, err
			}
			return &postype.PretypeArray{Position: pos, Elem: elem}, nil
		default:
			return nil, fmt.Errorf("fixture %s: unknown pretype tag %q", d.file, tag)
		}
	default:
		return nil, fmt.Errorf("fixture %s: expected pretype (string or [tag, ...]), got %#v", d.file, v)
	}
}
