package hygge

import (
	"fmt"

	"github.com/cjavad/hyggec/postype"
)

// saveCalleeSaved/restoreCalleeSaved bracket a function body with the
// fixed 52-byte frame (ra plus s0-s11) every compiled function
// reserves on entry and releases on exit.
func saveCalleeSaved() AsmDoc {
	docs := []AsmDoc{TextDoc("sw ra, 0(sp)", "save return address")}
	for i := 0; i < 12; i++ {
		docs = append(docs, TextDoc(fmt.Sprintf("sw s%d, %d(sp)", i, (i+1)*4), fmt.Sprintf("save s%d", i)))
	}
	return Concat1(docs...)
}

func restoreCalleeSaved() AsmDoc {
	docs := []AsmDoc{TextDoc("lw ra, 0(sp)", "restore return address")}
	for i := 0; i < 12; i++ {
		docs = append(docs, TextDoc(fmt.Sprintf("lw s%d, %d(sp)", i, (i+1)*4), fmt.Sprintf("restore s%d", i)))
	}
	return Concat1(docs...)
}

// genFunction compiles a Lambda directly bound by a Let into a
// labelled, self-contained routine, emitted into post-text. Per
// spec.md 4.6, its body is compiled starting at target registers
// (0, 0): since argument i already lands in intRegs[i]/fpRegs[i] by
// the same convention genApplication uses to pass it, no register
// shuffling is needed between the caller's argument setup and the
// callee's parameter bindings.
func (g *codegenState) genFunction(label string, te *TypedExpr) (AsmDoc, error) {
	pos := te.Pos()
	lam, ok := te.Expr.(*Lambda)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "function binding does not wrap a lambda")
	}
	tfun, ok := te.Typ.(postype.TFun)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "function binding has a non-function type")
	}

	fnScope := newGenScope()
	intIdx, fpIdx := 0, 0
	for i, p := range lam.Args {
		if i < len(tfun.Args) && tfun.Args[i].Equal(postype.Float) {
			fnScope = fnScope.with(p.Name, varStorage{kind: storeFloatReg, reg: fpIdx})
			fpIdx++
		} else {
			fnScope = fnScope.with(p.Name, varStorage{kind: storeIntReg, reg: intIdx})
			intIdx++
		}
	}

	body, ok := lam.Body.(*TypedExpr)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "function body was not type-checked")
	}
	bodyDoc, err := g.gen(fnScope, 0, 0, body)
	if err != nil {
		return EmptyAsmDoc(), err
	}

	var returnMoveDoc AsmDoc
	if tfun.Ret.Equal(postype.Float) {
		rd, err := g.fpRegAt(0, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		returnMoveDoc = TextDoc(fmt.Sprintf("fmv.s fa0, %s", rd), "function return value")
	} else if !tfun.Ret.Equal(postype.Unit) {
		rd, err := g.intRegAt(0, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		returnMoveDoc = TextDoc(fmt.Sprintf("mv a0, %s", rd), "function return value")
	}

	fn := Concat1(
		LabelDoc(label),
		TextDoc("addi sp, sp, -52", "reserve callee-saved frame"),
		saveCalleeSaved(),
		bodyDoc,
		returnMoveDoc,
		restoreCalleeSaved(),
		TextDoc("addi sp, sp, 52", "release callee-saved frame"),
		TextDoc("jr ra", "return"),
	)
	return fn.MoveTextToPostText(), nil
}

// saveRestoreLiveRegisters spills every register a caller might still
// need after a call (everything below its own target/fptarget, which
// an Application's argument setup is otherwise free to clobber since
// the callee's own body starts fresh at (0, 0) and knows nothing of
// the caller's target discipline).
func (g *codegenState) saveRestoreLiveRegisters(target, fptarget int, pos postype.Position) (AsmDoc, AsmDoc) {
	total := (target + fptarget) * 4
	if total == 0 {
		return EmptyAsmDoc(), EmptyAsmDoc()
	}
	var saves, restores []AsmDoc
	saves = append(saves, TextDoc(fmt.Sprintf("addi sp, sp, -%d", total), "save live registers across call"))
	offset := 0
	for i := 0; i < target; i++ {
		reg, _ := g.intRegAt(i, pos)
		saves = append(saves, TextDoc(fmt.Sprintf("sw %s, %d(sp)", reg, offset), "save live register"))
		offset += 4
	}
	for i := 0; i < fptarget; i++ {
		reg, _ := g.fpRegAt(i, pos)
		saves = append(saves, TextDoc(fmt.Sprintf("fsw %s, %d(sp)", reg, offset), "save live register"))
		offset += 4
	}
	offset = 0
	for i := 0; i < target; i++ {
		reg, _ := g.intRegAt(i, pos)
		restores = append(restores, TextDoc(fmt.Sprintf("lw %s, %d(sp)", reg, offset), "restore live register"))
		offset += 4
	}
	for i := 0; i < fptarget; i++ {
		reg, _ := g.fpRegAt(i, pos)
		restores = append(restores, TextDoc(fmt.Sprintf("flw %s, %d(sp)", reg, offset), "restore live register"))
		offset += 4
	}
	restores = append(restores, TextDoc(fmt.Sprintf("addi sp, sp, %d", total), "release saved-register frame"))
	return Concat1(saves...), Concat1(restores...)
}

func (g *codegenState) genApplication(scope *genScope, target, fptarget int, te *TypedExpr, n *Application) (AsmDoc, error) {
	pos := te.Pos()
	fnTyped, ok := n.Fn.(*TypedExpr)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "application of an untyped function expression")
	}
	fnVar, ok := fnTyped.Expr.(*Var)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "only direct calls to a named function are supported by this code generator")
	}
	st, ok := scope.lookup(fnVar.Name)
	if !ok || st.kind != storeLabel {
		return EmptyAsmDoc(), genBug(pos, "%q does not name a compiled function", fnVar.Name)
	}

	saveDoc, restoreDoc := g.saveRestoreLiveRegisters(target, fptarget, pos)

	var argDocs []AsmDoc
	intIdx, fpIdx := 0, 0
	for _, a := range n.Args {
		arg := a.(*TypedExpr)
		d, err := g.gen(scope, intIdx, fpIdx, arg)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		argDocs = append(argDocs, d)
		if arg.Typ.Equal(postype.Float) {
			fpIdx++
		} else {
			intIdx++
		}
	}

	callDoc := TextDoc(fmt.Sprintf("jal ra, %s", st.label), "call "+fnVar.Name)

	var returnDoc AsmDoc
	if te.Typ.Equal(postype.Float) {
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		returnDoc = TextDoc(fmt.Sprintf("fmv.s %s, fa0", rd), "copy return value")
	} else if !te.Typ.Equal(postype.Unit) {
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		returnDoc = TextDoc(fmt.Sprintf("mv %s, a0", rd), "copy return value")
	}

	return Concat1(append(append([]AsmDoc{saveDoc}, argDocs...), callDoc, returnDoc, restoreDoc)...), nil
}

func (g *codegenState) genStructCons(scope *genScope, target, fptarget int, n *StructCons) (AsmDoc, error) {
	pos := n.Pos()
	base, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	sbrkDoc := Concat1(
		TextDoc(fmt.Sprintf("li a0, %d", len(n.Fields)*4), "struct size"),
		TextDoc("li a7, 9", "Sbrk"),
		TextDoc("ecall", ""),
		TextDoc(fmt.Sprintf("mv %s, a0", base), "struct base pointer"),
	)
	docs := []AsmDoc{sbrkDoc}
	for i, f := range n.Fields {
		fieldTyped := f.Init.(*TypedExpr)
		initDoc, err := g.gen(scope, target+1, fptarget, fieldTyped)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		var storeDoc AsmDoc
		if fieldTyped.Typ.Equal(postype.Float) {
			rs, err := g.fpRegAt(fptarget, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			storeDoc = TextDoc(fmt.Sprintf("fsw %s, %d(%s)", rs, i*4, base), fmt.Sprintf("field %s", f.Name))
		} else {
			rs, err := g.intRegAt(target+1, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			storeDoc = TextDoc(fmt.Sprintf("sw %s, %d(%s)", rs, i*4, base), fmt.Sprintf("field %s", f.Name))
		}
		docs = append(docs, initDoc, storeDoc)
	}
	return Concat1(docs...), nil
}

func (g *codegenState) genFieldSelect(scope *genScope, target, fptarget int, te *TypedExpr, n *FieldSelect) (AsmDoc, error) {
	pos := te.Pos()
	recv := n.Target.(*TypedExpr)
	recvDoc, err := g.gen(scope, target, fptarget, recv)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	base, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	expanded, err := postype.ExpandType(te.Env, recv.Typ)
	if err != nil {
		return EmptyAsmDoc(), genBug(pos, "%s", err)
	}
	rec, ok := expanded.(postype.TRecord)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "field selection on a non-record type")
	}
	idx, _, found := rec.Field(n.Field)
	if !found {
		return EmptyAsmDoc(), genBug(pos, "no field %q in code generator", n.Field)
	}
	if te.Typ.Equal(postype.Float) {
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return recvDoc.Concat(TextDoc(fmt.Sprintf("flw %s, %d(%s)", rd, idx*4, base), "load field")), nil
	}
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	return recvDoc.Concat(TextDoc(fmt.Sprintf("lw %s, %d(%s)", rd, idx*4, base), "load field")), nil
}

func (g *codegenState) genUnionCons(scope *genScope, target, fptarget int, n *UnionCons) (AsmDoc, error) {
	pos := n.Pos()
	base, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	label, labelDataDoc := g.internString(n.Label)
	sbrkDoc := Concat1(
		TextDoc("li a0, 8", "union cell size"),
		TextDoc("li a7, 9", "Sbrk"),
		TextDoc("ecall", ""),
		TextDoc(fmt.Sprintf("mv %s, a0", base), "union base pointer"),
		TextDoc(fmt.Sprintf("la t6, %s", label), "label string address"),
		TextDoc(fmt.Sprintf("sw t6, 0(%s)", base), "store label"),
	)
	initTyped := n.Init.(*TypedExpr)
	initDoc, err := g.gen(scope, target+1, fptarget, initTyped)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	var storeDoc AsmDoc
	if initTyped.Typ.Equal(postype.Float) {
		rs, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		storeDoc = TextDoc(fmt.Sprintf("fsw %s, 4(%s)", rs, base), "store payload")
	} else {
		rs, err := g.intRegAt(target+1, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		storeDoc = TextDoc(fmt.Sprintf("sw %s, 4(%s)", rs, base), "store payload")
	}
	return Concat1(labelDataDoc, sbrkDoc, initDoc, storeDoc), nil
}

// genMatch relies on interned union-case labels being deduplicated
// process-wide (codegenState.internString): every occurrence of the
// same label text, whether from a UnionCons or a Match case, resolves
// to the very same data-segment address, so comparing label pointers
// with bne is equivalent to comparing label text. The last case is
// reached unconditionally rather than through its own comparison:
// any label that no earlier case matched runs the last case. The
// checker does not require a match to cover every label of the union.
func (g *codegenState) genMatch(scope *genScope, target, fptarget int, te *TypedExpr, n *Match) (AsmDoc, error) {
	pos := te.Pos()
	operand := n.Operand.(*TypedExpr)
	opDoc, err := g.gen(scope, target, fptarget, operand)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	expanded, err := postype.ExpandType(te.Env, operand.Typ)
	if err != nil {
		return EmptyAsmDoc(), genBug(pos, "%s", err)
	}
	union, ok := expanded.(postype.TUnion)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "match on a non-union type in code generator")
	}

	base, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	labelReg, err := g.intRegAt(target+1, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	docs := []AsmDoc{opDoc, TextDoc(fmt.Sprintf("lw %s, 0(%s)", labelReg, base), "load union label pointer")}
	endLabel := g.label("match_end")

	for i, c := range n.Cases {
		last := i == len(n.Cases)-1
		_, uc, found := union.Case(c.Label)
		if !found {
			return EmptyAsmDoc(), genBug(pos, "no union case %q in code generator", c.Label)
		}
		payloadIsFloat := uc.Type.Equal(postype.Float)

		var nextLabel string
		if !last {
			caseLabelAddr, caseDataDoc := g.internString(c.Label)
			cmpReg, err := g.intRegAt(target+2, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			nextLabel = g.label("match_next")
			docs = append(docs, caseDataDoc,
				TextDoc(fmt.Sprintf("la %s, %s", cmpReg, caseLabelAddr), "candidate label address"),
				TextDoc(fmt.Sprintf("bne %s, %s, %s", labelReg, cmpReg, nextLabel), "label mismatch, try next case"),
			)
		}

		var inner *genScope
		var bindDoc AsmDoc
		var bodyTarget, bodyFpTarget int
		if payloadIsFloat {
			payloadReg, err := g.fpRegAt(fptarget, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			bindDoc = TextDoc(fmt.Sprintf("flw %s, 4(%s)", payloadReg, base), "load case payload")
			inner = scope.with(c.Var, varStorage{kind: storeFloatReg, reg: fptarget})
			bodyTarget, bodyFpTarget = target+2, fptarget+1
		} else {
			payloadReg, err := g.intRegAt(target+2, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			bindDoc = TextDoc(fmt.Sprintf("lw %s, 4(%s)", payloadReg, base), "load case payload")
			inner = scope.with(c.Var, varStorage{kind: storeIntReg, reg: target + 2})
			bodyTarget, bodyFpTarget = target+3, fptarget
		}

		contTyped := c.Cont.(*TypedExpr)
		contDoc, err := g.gen(inner, bodyTarget, bodyFpTarget, contTyped)
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
				copyDoc = TextDoc(fmt.Sprintf("fmv.s %s, %s", rd, rs), "copy case result back")
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
				copyDoc = TextDoc(fmt.Sprintf("mv %s, %s", rd, rs), "copy case result back")
			}
		}

		docs = append(docs, bindDoc, contDoc, copyDoc)
		if !last {
			docs = append(docs, TextDocf("j %s", endLabel), LabelDoc(nextLabel))
		}
	}
	docs = append(docs, LabelDoc(endLabel))
	return Concat1(docs...), nil
}

func (g *codegenState) genArray(scope *genScope, target, fptarget int, n *Array) (AsmDoc, error) {
	pos := n.Pos()
	lengthTyped := n.Length.(*TypedExpr)
	lit, ok := lengthTyped.Expr.(*IntLit)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "array length must be an integer literal for code generation")
	}
	size := int(lit.Value)
	base, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	sbrkDoc := Concat1(
		TextDoc(fmt.Sprintf("li a0, %d", (size+1)*4), "array size"),
		TextDoc("li a7, 9", "Sbrk"),
		TextDoc("ecall", ""),
		TextDoc(fmt.Sprintf("mv %s, a0", base), "array base pointer"),
		TextDoc(fmt.Sprintf("li t6, %d", size), "array length"),
		TextDoc(fmt.Sprintf("sw t6, 0(%s)", base), "store length"),
	)
	initTyped := n.Init.(*TypedExpr)
	isFloat := initTyped.Typ.Equal(postype.Float)
	initDoc, err := g.gen(scope, target+1, fptarget, initTyped)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	docs := []AsmDoc{sbrkDoc, initDoc}
	for i := 0; i < size; i++ {
		if isFloat {
			rs, err := g.fpRegAt(fptarget, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			docs = append(docs, TextDoc(fmt.Sprintf("fsw %s, %d(%s)", rs, (i+1)*4, base), "array element"))
		} else {
			rs, err := g.intRegAt(target+1, pos)
			if err != nil {
				return EmptyAsmDoc(), err
			}
			docs = append(docs, TextDoc(fmt.Sprintf("sw %s, %d(%s)", rs, (i+1)*4, base), "array element"))
		}
	}
	return Concat1(docs...), nil
}

func (g *codegenState) genArrayElem(scope *genScope, target, fptarget int, te *TypedExpr, n *ArrayElem) (AsmDoc, error) {
	pos := te.Pos()
	arrDoc, err := g.gen(scope, target, fptarget, n.Array.(*TypedExpr))
	if err != nil {
		return EmptyAsmDoc(), err
	}
	base, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	idxDoc, err := g.gen(scope, target+1, fptarget, n.Index.(*TypedExpr))
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
		TextDoc(fmt.Sprintf("add %s, %s, %s", idxReg, idxReg, base), "element address"),
	)
	if te.Typ.Equal(postype.Float) {
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return Concat1(arrDoc, idxDoc, addrDoc, TextDoc(fmt.Sprintf("flw %s, 0(%s)", rd, idxReg), "load element")), nil
	}
	rd, err := g.intRegAt(target, pos)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	return Concat1(arrDoc, idxDoc, addrDoc, TextDoc(fmt.Sprintf("lw %s, 0(%s)", rd, idxReg), "load element")), nil
}
