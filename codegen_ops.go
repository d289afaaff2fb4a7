package hygge

import (
	"fmt"

	"github.com/cjavad/hyggec/postype"
)

func (g *codegenState) genArith(scope *genScope, target, fptarget int, te *TypedExpr, n *Arith) (AsmDoc, error) {
	pos := te.Pos()
	lhs, rhs := n.Lhs.(*TypedExpr), n.Rhs.(*TypedExpr)
	if te.Typ.Equal(postype.Float) {
		lhsDoc, err := g.gen(scope, target, fptarget, lhs)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rhsDoc, err := g.gen(scope, target, fptarget+1, rhs)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rs, err := g.fpRegAt(fptarget+1, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		op, err := floatArithOp(n.Op, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return Concat1(lhsDoc, rhsDoc, TextDocf("%s %s, %s, %s", op, rd, rd, rs)), nil
	}
	lhsDoc, err := g.gen(scope, target, fptarget, lhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rhsDoc, err := g.gen(scope, target+1, fptarget, rhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rs, err := g.intRegAt(target+1, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	op, err := intArithOp(n.Op)
	if err != nil {
		return EmptyAsmDoc(), genBug(pos, "%s", err)
	}
	return Concat1(lhsDoc, rhsDoc, TextDocf("%s %s, %s, %s", op, rd, rd, rs)), nil
}

func intArithOp(op ArithOp) (string, error) {
	switch op {
	case OpAdd:
		return "add", nil
	case OpSub:
		return "sub", nil
	case OpMul:
		return "mul", nil
	case OpDiv:
		return "div", nil
	case OpRem:
		return "rem", nil
	default:
		return "", fmt.Errorf("unknown arithmetic operator %v", op)
	}
}

func floatArithOp(op ArithOp, pos postype.Position) (string, error) {
	switch op {
	case OpAdd:
		return "fadd.s", nil
	case OpSub:
		return "fsub.s", nil
	case OpMul:
		return "fmul.s", nil
	case OpDiv:
		return "fdiv.s", nil
	default:
		return "", genBug(pos, "operator %v is not defined over float (the type checker should have rejected this)", op)
	}
}

func (g *codegenState) genBitwise(scope *genScope, target, fptarget int, n *Bitwise) (AsmDoc, error) {
	pos := n.Pos()
	lhs, rhs := n.Lhs.(*TypedExpr), n.Rhs.(*TypedExpr)
	lhsDoc, err := g.gen(scope, target, fptarget, lhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rhsDoc, err := g.gen(scope, target+1, fptarget, rhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rs, err := g.intRegAt(target+1, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	var op string
	switch n.Op {
	case OpBAnd:
		op = "and"
	case OpBOr:
		op = "or"
	case OpBXor:
		op = "xor"
	case OpBSL:
		op = "sll"
	case OpBSR:
		op = "sra"
	default:
		return EmptyAsmDoc(), genBug(pos, "unknown bitwise operator %v", n.Op)
	}
	return Concat1(lhsDoc, rhsDoc, TextDocf("%s %s, %s, %s", op, rd, rd, rs)), nil
}

func (g *codegenState) genLogical(scope *genScope, target, fptarget int, n *Logical) (AsmDoc, error) {
	pos := n.Pos()
	lhs, rhs := n.Lhs.(*TypedExpr), n.Rhs.(*TypedExpr)
	lhsDoc, err := g.gen(scope, target, fptarget, lhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rhsDoc, err := g.gen(scope, target+1, fptarget, rhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rs, err := g.intRegAt(target+1, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	var op string
	switch n.Op {
	case OpAnd:
		op = "and"
	case OpOr:
		op = "or"
	case OpXor:
		op = "xor"
	default:
		return EmptyAsmDoc(), genBug(pos, "unknown logical operator %v", n.Op)
	}
	return Concat1(lhsDoc, rhsDoc, TextDocf("%s %s, %s, %s", op, rd, rd, rs)), nil
}

func (g *codegenState) genScAnd(scope *genScope, target, fptarget int, n *ScAnd) (AsmDoc, error) {
	pos := n.Pos()
	lhs, rhs := n.Lhs.(*TypedExpr), n.Rhs.(*TypedExpr)
	lhsDoc, err := g.gen(scope, target, fptarget, lhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rhsDoc, err := g.gen(scope, target, fptarget, rhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	endLabel := g.label("scand_end")
	return Concat1(
		lhsDoc,
		TextDoc(fmt.Sprintf("beqz %s, %s", rd, endLabel), "short-circuit: lhs false"),
		rhsDoc,
		LabelDoc(endLabel),
	), nil
}

func (g *codegenState) genScOr(scope *genScope, target, fptarget int, n *ScOr) (AsmDoc, error) {
	pos := n.Pos()
	lhs, rhs := n.Lhs.(*TypedExpr), n.Rhs.(*TypedExpr)
	lhsDoc, err := g.gen(scope, target, fptarget, lhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rhsDoc, err := g.gen(scope, target, fptarget, rhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	endLabel := g.label("scor_end")
	return Concat1(
		lhsDoc,
		TextDoc(fmt.Sprintf("bnez %s, %s", rd, endLabel), "short-circuit: lhs true"),
		rhsDoc,
		LabelDoc(endLabel),
	), nil
}

func (g *codegenState) genRel(scope *genScope, target, fptarget int, n *Rel) (AsmDoc, error) {
	pos := n.Pos()
	lhs, rhs := n.Lhs.(*TypedExpr), n.Rhs.(*TypedExpr)
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	if lhs.Typ.Equal(postype.Float) {
		lhsDoc, err := g.gen(scope, target, fptarget, lhs)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rhsDoc, err := g.gen(scope, target, fptarget+1, rhs)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		a, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		b, err := g.fpRegAt(fptarget+1, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		var cmp string
		switch n.Op {
		case OpEq:
			cmp = fmt.Sprintf("feq.s %s, %s, %s", rd, a, b)
		case OpLess:
			cmp = fmt.Sprintf("flt.s %s, %s, %s", rd, a, b)
		case OpLessEq:
			cmp = fmt.Sprintf("fle.s %s, %s, %s", rd, a, b)
		case OpGreater:
			cmp = fmt.Sprintf("flt.s %s, %s, %s", rd, b, a)
		case OpGreaterEq:
			cmp = fmt.Sprintf("fle.s %s, %s, %s", rd, b, a)
		default:
			return EmptyAsmDoc(), genBug(pos, "unknown relational operator %v", n.Op)
		}
		return Concat1(lhsDoc, rhsDoc, TextDoc(cmp, "float comparison")), nil
	}

	lhsDoc, err := g.gen(scope, target, fptarget, lhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rhsDoc, err := g.gen(scope, target+1, fptarget, rhs)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	a, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	b, err := g.intRegAt(target+1, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	var branchOp string
	switch n.Op {
	case OpEq:
		branchOp = "beq"
	case OpLess:
		branchOp = "blt"
	case OpLessEq:
		branchOp = "ble"
	case OpGreater:
		branchOp = "bgt"
	case OpGreaterEq:
		branchOp = "bge"
	default:
		return EmptyAsmDoc(), genBug(pos, "unknown relational operator %v", n.Op)
	}
	trueLabel := g.label("true")
	endLabel := g.label("end")
	return Concat1(
		lhsDoc, rhsDoc,
		TextDoc(fmt.Sprintf("%s %s, %s, %s", branchOp, a, b, trueLabel), "branch on comparison"),
		TextDoc(fmt.Sprintf("li %s, 0", rd), "false"),
		TextDocf("j %s", endLabel),
		LabelDoc(trueLabel),
		TextDoc(fmt.Sprintf("li %s, 1", rd), "true"),
		LabelDoc(endLabel),
	), nil
}

func (g *codegenState) genIncrDecr(scope *genScope, target, fptarget int, pos postype.Position, name string, pre bool) (AsmDoc, error) {
	st, ok := scope.lookup(name)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "increment of unbound variable %q", name)
	}
	switch st.kind {
	case storeIntReg:
		reg, err := g.intRegAt(st.reg, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		var saveDoc AsmDoc
		if pre {
			incDoc := TextDoc(fmt.Sprintf("addi %s, %s, 1", reg, reg), "pre-increment")
			if rd != reg {
				saveDoc = TextDocf("mv %s, %s", rd, reg)
			}
			return incDoc.Concat(saveDoc), nil
		}
		if rd != reg {
			saveDoc = TextDoc(fmt.Sprintf("mv %s, %s", rd, reg), "save pre-update value")
		}
		incDoc := TextDoc(fmt.Sprintf("addi %s, %s, 1", reg, reg), "post-increment")
		return saveDoc.Concat(incDoc), nil
	case storeFloatReg:
		reg, err := g.fpRegAt(st.reg, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		oneLabel, dataDoc := g.internFloat(1.0)
		loadOneDoc := Concat1(
			TextDocf("la t6, %s", oneLabel),
			TextDoc("flw ft11, 0(t6)", "load 1.0"),
		)
		if pre {
			incDoc := TextDoc(fmt.Sprintf("fadd.s %s, %s, ft11", reg, reg), "pre-increment")
			var saveDoc AsmDoc
			if rd != reg {
				saveDoc = TextDocf("fmv.s %s, %s", rd, reg)
			}
			return Concat1(dataDoc, loadOneDoc, incDoc, saveDoc), nil
		}
		var saveDoc AsmDoc
		if rd != reg {
			saveDoc = TextDoc(fmt.Sprintf("fmv.s %s, %s", rd, reg), "save pre-update value")
		}
		incDoc := TextDoc(fmt.Sprintf("fadd.s %s, %s, ft11", reg, reg), "post-increment")
		return Concat1(dataDoc, loadOneDoc, saveDoc, incDoc), nil
	default:
		return EmptyAsmDoc(), genBug(pos, "increment of a non-register variable %q", name)
	}
}

func (g *codegenState) genPrint(scope *genScope, target, fptarget int, operand *TypedExpr) (AsmDoc, error) {
	pos := operand.Pos()
	opDoc, err := g.gen(scope, target, fptarget, operand)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	var syscallNum int
	var moveDoc AsmDoc
	switch {
	case operand.Typ.Equal(postype.Int), operand.Typ.Equal(postype.Bool):
		syscallNum = 1
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		moveDoc = TextDocf("mv a0, %s", rd)
	case operand.Typ.Equal(postype.Float):
		syscallNum = 2
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		moveDoc = TextDocf("fmv.s fa0, %s", rd)
	case operand.Typ.Equal(postype.String):
		syscallNum = 4
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		moveDoc = TextDocf("mv a0, %s", rd)
	default:
		return EmptyAsmDoc(), genBug(pos, "print of unsupported type %s", operand.Typ)
	}
	callDoc := Concat1(
		moveDoc,
		TextDoc(fmt.Sprintf("li a7, %d", syscallNum), SyscallName(syscallNum)),
		TextDoc("ecall", ""),
	)
	return opDoc.Concat(callDoc), nil
}

func (g *codegenState) genSyscall(scope *genScope, target, fptarget int, te *TypedExpr, n *Syscall) (AsmDoc, error) {
	pos := te.Pos()
	sig, ok := LookupSyscall(n.Number)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "unknown syscall number %d in code generator", n.Number)
	}
	var docs []AsmDoc
	intIdx, fpIdx := 0, 0
	for i, a := range n.Args {
		arg := a.(*TypedExpr)
		if arg.Typ.Equal(postype.Float) {
			d, err := g.gen(scope, target, fpIdx, arg)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			reg, err := g.fpRegAt(fpIdx, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			docs = append(docs, d, TextDoc(fmt.Sprintf("fmv.s fa%d, %s", fpIdx, reg), fmt.Sprintf("%s argument %d", sig.Name, i+1)))
			fpIdx++
		} else {
			d, err := g.gen(scope, intIdx, fptarget, arg)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			reg, err := g.intRegAt(intIdx, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			docs = append(docs, d, TextDoc(fmt.Sprintf("mv a%d, %s", intIdx, reg), fmt.Sprintf("%s argument %d", sig.Name, i+1)))
			intIdx++
		}
	}
	docs = append(docs, TextDoc(fmt.Sprintf("li a7, %d", n.Number), sig.Name), TextDoc("ecall", ""))
	if !te.Typ.Equal(postype.Unit) {
		if te.Typ.Equal(postype.Float) {
			rd, err := g.fpRegAt(fptarget, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			docs = append(docs, TextDoc(fmt.Sprintf("fmv.s %s, fa0", rd), "copy syscall result"))
		} else {
			rd, err := g.intRegAt(target, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			docs = append(docs, TextDoc(fmt.Sprintf("mv %s, a0", rd), "copy syscall result"))
		}
	}
	return Concat1(docs...), nil
}

func (g *codegenState) genIf(scope *genScope, target, fptarget int, n *If) (AsmDoc, error) {
	pos := n.Pos()
	cond, then, els := n.Cond.(*TypedExpr), n.Then.(*TypedExpr), n.Else.(*TypedExpr)
	condDoc, err := g.gen(scope, target, fptarget, cond)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	a, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	thenDoc, err := g.gen(scope, target, fptarget, then)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	elseDoc, err := g.gen(scope, target, fptarget, els)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	trueLabel := g.label("if_true")
	falseLabel := g.label("if_false")
	endLabel := g.label("if_end")
	return Concat1(
		condDoc,
		TextDocf("bnez %s, %s", a, trueLabel),
		TextDoc(fmt.Sprintf("la t6, %s", falseLabel), "far jump target"),
		TextDoc("jr t6", ""),
		LabelDoc(trueLabel),
		thenDoc,
		TextDocf("j %s", endLabel),
		LabelDoc(falseLabel),
		elseDoc,
		LabelDoc(endLabel),
	), nil
}

func (g *codegenState) genWhile(scope *genScope, target, fptarget int, n *While) (AsmDoc, error) {
	pos := n.Pos()
	cond, body := n.Cond.(*TypedExpr), n.Body.(*TypedExpr)
	beginLabel := g.label("while_begin")
	bodyLabel := g.label("while_body")
	endLabel := g.label("while_end")
	condDoc, err := g.gen(scope, target, fptarget, cond)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	a, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	bodyDoc, err := g.gen(scope, target, fptarget, body)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	return Concat1(
		LabelDoc(beginLabel),
		condDoc,
		TextDocf("bnez %s, %s", a, bodyLabel),
		TextDoc(fmt.Sprintf("la t6, %s", endLabel), "far jump target"),
		TextDoc("jr t6", ""),
		LabelDoc(bodyLabel),
		bodyDoc,
		TextDocf("j %s", beginLabel),
		LabelDoc(endLabel),
	), nil
}

func (g *codegenState) genAssertion(scope *genScope, target, fptarget int, n *Assertion) (AsmDoc, error) {
	pos := n.Pos()
	operand := n.Operand.(*TypedExpr)
	opDoc, err := g.gen(scope, target, fptarget, operand)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	passLabel := g.label("assert_pass")
	exitCode := g.cfg.GetInt("codegen.assert_exit_code")
	return Concat1(
		opDoc,
		TextDoc(fmt.Sprintf("addi %s, %s, -1", rd, rd), "zero iff the assertion held"),
		TextDocf("beqz %s, %s", rd, passLabel),
		TextDoc(fmt.Sprintf("li a0, %d", exitCode), "assertion failure exit code"),
		TextDoc("li a7, 93", "ExitCode"),
		TextDoc("ecall", ""),
		LabelDoc(passLabel),
	), nil
}

func (g *codegenState) genCopy(scope *genScope, target, fptarget int, te *TypedExpr, n *Copy) (AsmDoc, error) {
	pos := te.Pos()
	operand := n.Operand.(*TypedExpr)
	if expanded, err := postype.ExpandType(te.Env, operand.Typ); err == nil {
		if _, isRecord := expanded.(postype.TRecord); isRecord {
			return EmptyAsmDoc(), genBug(pos, "struct deep-copy is not implemented by this code generator")
		}
	}
	return g.gen(scope, target, fptarget, operand)
}

// genLet handles Let, LetT, and LetMut identically: spec.md 9 treats
// LetMut as indistinguishable from Let in this naive generator, since
// mutability only matters to the checker and the evaluator. A Let
// whose Init is directly a Lambda is instead compiled as a named
// function, relocated to post-text, with Name bound to its label.
func (g *codegenState) genLet(scope *genScope, target, fptarget int, te *TypedExpr, name string, init, body *TypedExpr) (AsmDoc, error) {
	pos := te.Pos()
	if _, isLambda := init.Expr.(*Lambda); isLambda {
		label := g.label("fn")
		fnDoc, err := g.genFunction(label, init)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		inner := scope.with(name, varStorage{kind: storeLabel, label: label})
		bodyDoc, err := g.gen(inner, target, fptarget, body)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return fnDoc.Concat(bodyDoc), nil
	}

	initIsFloat := init.Typ.Equal(postype.Float)
	initDoc, err := g.gen(scope, target, fptarget, init)
	if err != nil {
		return EmptyAsmDoc(), err
	}

	bodyTarget, bodyFpTarget := target, fptarget
	var st varStorage
	if initIsFloat {
		st = varStorage{kind: storeFloatReg, reg: fptarget}
		bodyFpTarget = fptarget + 1
	} else {
		st = varStorage{kind: storeIntReg, reg: target}
		bodyTarget = target + 1
	}
	inner := scope.with(name, st)
	bodyDoc, err := g.gen(inner, bodyTarget, bodyFpTarget, body)
	if err != nil {
		return EmptyAsmDoc(), err
	}

	var copyDoc AsmDoc
	if te.Typ.Equal(postype.Float) {
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rs, err := g.fpRegAt(bodyFpTarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		if rd != rs {
			copyDoc = TextDoc(fmt.Sprintf("fmv.s %s, %s", rd, rs), "copy scope result back")
		}
	} else if !te.Typ.Equal(postype.Unit) {
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rs, err := g.intRegAt(bodyTarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		if rd != rs {
			copyDoc = TextDoc(fmt.Sprintf("mv %s, %s", rd, rs), "copy scope result back")
		}
	}
	return Concat1(initDoc, bodyDoc, copyDoc), nil
}

func (g *codegenState) genAssign(scope *genScope, target, fptarget int, n *Assign) (AsmDoc, error) {
	pos := n.Pos()
	targetTyped := n.Target.(*TypedExpr)
	value := n.Value.(*TypedExpr)

	switch tgt := targetTyped.Expr.(type) {
	case *Var:
		st, ok := scope.lookup(tgt.Name)
		if !ok {
			return EmptyAsmDoc(), genBug(pos, "assignment to unbound variable %q", tgt.Name)
		}
		switch st.kind {
		case storeIntReg:
			return g.gen(scope, st.reg, fptarget, value)
		case storeFloatReg:
			return g.gen(scope, target, st.reg, value)
		case storeStack:
			valueDoc, err := g.gen(scope, target, fptarget, value)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			rd, err := g.intRegAt(target, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			return valueDoc.Concat(TextDoc(fmt.Sprintf("sw %s, %d(sp)", rd, st.offset), "store to stack slot")), nil
		default:
			return EmptyAsmDoc(), genBug(pos, "cannot assign to %q", tgt.Name)
		}

	case *FieldSelect:
		recvTyped := tgt.Target.(*TypedExpr)
		recvDoc, err := g.gen(scope, target, fptarget, recvTyped)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		base, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		expanded, err := postype.ExpandType(targetTyped.Env, recvTyped.Typ)
		if err != nil {
			return EmptyAsmDoc(), genBug(pos, "%s", err)
		}
		rec, ok := expanded.(postype.TRecord)
		if !ok {
			return EmptyAsmDoc(), genBug(pos, "field assignment on a non-record type")
		}
		idx, _, found := rec.Field(tgt.Field)
		if !found {
			return EmptyAsmDoc(), genBug(pos, "no field %q in code generator", tgt.Field)
		}
		if value.Typ.Equal(postype.Float) {
			valueDoc, err := g.gen(scope, target+1, fptarget, value)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			rs, err := g.fpRegAt(fptarget, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			store := TextDoc(fmt.Sprintf("fsw %s, %d(%s)", rs, idx*4, base), "store field")
			return Concat1(recvDoc, valueDoc, store), nil
		}
		valueDoc, err := g.gen(scope, target+1, fptarget, value)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rs, err := g.intRegAt(target+1, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		store := TextDoc(fmt.Sprintf("sw %s, %d(%s)", rs, idx*4, base), "store field")
		return Concat1(recvDoc, valueDoc, store), nil

	case *ArrayElem:
		arrDoc, err := g.gen(scope, target, fptarget, tgt.Array.(*TypedExpr))
		if err != nil {
			return EmptyAsmDoc(), err
		}
		base, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		idxDoc, err := g.gen(scope, target+1, fptarget, tgt.Index.(*TypedExpr))
		if err != nil {
			return EmptyAsmDoc(), err
		}
		idxReg, err := g.intRegAt(target+1, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		addrDoc := Concat1(
			TextDoc(fmt.Sprintf("slli %s, %s, 2", idxReg, idxReg), "index * 4"),
			TextDoc(fmt.Sprintf("addi %s, %s, 4", idxReg, idxReg), "skip length slot"),
			TextDoc(fmt.Sprintf("add %s, %s, %s", idxReg, base, idxReg), "element address"),
		)
		if value.Typ.Equal(postype.Float) {
			valueDoc, err := g.gen(scope, target+2, fptarget, value)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			rs, err := g.fpRegAt(fptarget, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			store := TextDoc(fmt.Sprintf("fsw %s, 0(%s)", rs, idxReg), "store element")
			return Concat1(arrDoc, idxDoc, addrDoc, valueDoc, store), nil
		}
		valueDoc, err := g.gen(scope, target+2, fptarget, value)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rs, err := g.intRegAt(target+2, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		store := TextDoc(fmt.Sprintf("sw %s, 0(%s)", rs, idxReg), "store element")
		return Concat1(arrDoc, idxDoc, addrDoc, valueDoc, store), nil

	default:
		return EmptyAsmDoc(), genBug(pos, "invalid assignment target shape in code generator")
	}
}
