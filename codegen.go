package hygge

import (
	"fmt"

	"github.com/cjavad/hyggec/postype"
)

// intRegs/fpRegs are the abstract target-register pools of spec.md
// 4.6: a0-a7 and t0-t5 for integers, fa0-fa7 and ft0-ft10 for floats.
// t6 and ft11 are deliberately excluded from the pools and reserved as
// the generator's own address/constant scratch registers (used to
// compute "far jump" targets and load the +1 constant for
// increment/decrement), so nothing allocated through intRegAt/fpRegAt
// ever collides with them.
var intRegs = []string{
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"t0", "t1", "t2", "t3", "t4", "t5",
}

var fpRegs = []string{
	"fa0", "fa1", "fa2", "fa3", "fa4", "fa5", "fa6", "fa7",
	"ft0", "ft1", "ft2", "ft3", "ft4", "ft5", "ft6", "ft7", "ft8", "ft9", "ft10",
}

func genBug(pos postype.Position, format string, args ...any) error {
	return &GeneratorBug{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (g *codegenState) intRegAt(idx int, pos postype.Position) (string, error) {
	if idx < 0 || idx >= len(intRegs) {
		return "", genBug(pos, "integer target register pool exhausted at index %d", idx)
	}
	return intRegs[idx], nil
}

func (g *codegenState) fpRegAt(idx int, pos postype.Position) (string, error) {
	if idx < 0 || idx >= len(fpRegs) {
		return "", genBug(pos, "float target register pool exhausted at index %d", idx)
	}
	return fpRegs[idx], nil
}

// --- variable storage ---

type storageKind int

const (
	storeIntReg storageKind = iota
	storeFloatReg
	storeLabel
	storeStack
)

type varStorage struct {
	kind   storageKind
	reg    int
	label  string
	offset int
}

// genScope is the code generator's persistent variable-storage
// environment, extended functionally exactly like postype.Env.
type genScope struct{ vars map[string]varStorage }

func newGenScope() *genScope { return &genScope{vars: map[string]varStorage{}} }

func (s *genScope) with(name string, st varStorage) *genScope {
	next := make(map[string]varStorage, len(s.vars)+1)
	for k, v := range s.vars {
		next[k] = v
	}
	next[name] = st
	return &genScope{vars: next}
}

func (s *genScope) lookup(name string) (varStorage, bool) {
	st, ok := s.vars[name]
	return st, ok
}

// codegenState is the process-wide monotonic state of spec.md 9's
// label counter, plus deduplicating interning tables for string and
// float constants so repeated literals share one data-segment entry.
type codegenState struct {
	cfg             *Config
	seq             int
	internedStrings map[string]string
	internedFloats  map[string]string
}

func newCodegenState(cfg *Config) *codegenState {
	return &codegenState{
		cfg:             cfg,
		internedStrings: map[string]string{},
		internedFloats:  map[string]string{},
	}
}

func (g *codegenState) label(kind string) string {
	g.seq++
	return fmt.Sprintf("%s_%s_%d", g.cfg.GetString("codegen.label_prefix"), kind, g.seq)
}

func (g *codegenState) internString(v string) (string, AsmDoc) {
	if label, ok := g.internedStrings[v]; ok {
		return label, EmptyAsmDoc()
	}
	label := g.label("str")
	g.internedStrings[v] = label
	return label, DataDoc(label, fmt.Sprintf(".asciiz %q", v))
}

func (g *codegenState) internFloat(v float32) (string, AsmDoc) {
	key := fmt.Sprintf("%g", v)
	if label, ok := g.internedFloats[key]; ok {
		return label, EmptyAsmDoc()
	}
	label := g.label("flt")
	g.internedFloats[key] = label
	return label, DataDoc(label, fmt.Sprintf(".float %s", key))
}

// LabelDoc emits a bare label line into the text segment.
func LabelDoc(label string) AsmDoc { return TextDoc(label+":", "") }

// Generate compiles a fully type-checked tree into RARS-ready RISC-V
// assembly (spec.md 4.6). Type-correctness is assumed: any shape
// mismatch the checker should have ruled out surfaces as a
// *GeneratorBug rather than a diagnostic.
func Generate(cfg *Config, te *TypedExpr) (AsmDoc, error) {
	g := newCodegenState(cfg)
	body, err := g.gen(newGenScope(), 0, 0, te)
	if err != nil {
		return EmptyAsmDoc(), err
	}
	return Concat1(
		TextDoc("mv fp, sp", "establish the frame pointer"),
		body,
		TextDoc("li a7, 10", "Exit"),
		TextDoc("ecall", ""),
	), nil
}

// gen emits one construct's code, recursing on children via the
// target/fptarget discipline of spec.md 4.6: the result always lands
// in intRegs[target] or fpRegs[fptarget], and nothing below either is
// ever written.
func (g *codegenState) gen(scope *genScope, target, fptarget int, te *TypedExpr) (AsmDoc, error) {
	pos := te.Pos()

	switch n := te.Expr.(type) {
	case *UnitLit:
		return EmptyAsmDoc(), nil

	case *BoolLit:
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		v := 0
		if n.Value {
			v = 1
		}
		return TextDoc(fmt.Sprintf("li %s, %d", rd, v), "bool literal"), nil

	case *IntLit:
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return TextDoc(fmt.Sprintf("li %s, %d", rd, n.Value), "int literal"), nil

	case *FloatLit:
		label, dataDoc := g.internFloat(n.Value)
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		loadDoc := Concat1(
			TextDoc(fmt.Sprintf("la t6, %s", label), "address of float constant"),
			TextDoc(fmt.Sprintf("flw %s, 0(t6)", rd), "load float constant"),
		)
		return dataDoc.Concat(loadDoc), nil

	case *StringLit:
		label, dataDoc := g.internString(n.Value)
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return dataDoc.Concat(TextDoc(fmt.Sprintf("la %s, %s", rd, label), "address of string constant")), nil

	case *Var:
		return g.genVarLoad(scope, target, fptarget, te, n)

	case *Arith:
		return g.genArith(scope, target, fptarget, te, n)
	case *CompoundAssign:
		targetTyped := n.Target.(*TypedExpr)
		arith := newTypedExpr(pos, te.Env, targetTyped.Typ, NewArith(pos, n.Op, n.Target, n.Rhs))
		assign := newTypedExpr(pos, te.Env, postype.Unit, NewAssign(pos, n.Target, arith))
		return g.gen(scope, target, fptarget, assign)

	case *Bitwise:
		return g.genBitwise(scope, target, fptarget, n)
	case *BNot:
		operand := n.Operand.(*TypedExpr)
		opDoc, err := g.gen(scope, target, fptarget, operand)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return opDoc.Concat(TextDocf("not %s, %s", rd, rd)), nil

	case *Logical:
		return g.genLogical(scope, target, fptarget, n)
	case *Not:
		operand := n.Operand.(*TypedExpr)
		opDoc, err := g.gen(scope, target, fptarget, operand)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return opDoc.Concat(TextDoc(fmt.Sprintf("xori %s, %s, 1", rd, rd), "logical not")), nil

	case *ScAnd:
		return g.genScAnd(scope, target, fptarget, n)
	case *ScOr:
		return g.genScOr(scope, target, fptarget, n)

	case *Neg:
		operand := n.Operand.(*TypedExpr)
		opDoc, err := g.gen(scope, target, fptarget, operand)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return opDoc.Concat(TextDocf("neg %s, %s", rd, rd)), nil

	case *Rel:
		return g.genRel(scope, target, fptarget, n)

	case *Sqrt:
		operand := n.Operand.(*TypedExpr)
		opDoc, err := g.gen(scope, target, fptarget, operand)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return opDoc.Concat(TextDocf("fsqrt.s %s, %s", rd, rd)), nil

	case *ReadInt:
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return Concat1(
			TextDoc("li a7, 5", "ReadInt"),
			TextDoc("ecall", ""),
			TextDocf("mv %s, a0", rd),
		), nil

	case *ReadFloat:
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return Concat1(
			TextDoc("li a7, 6", "ReadFloat"),
			TextDoc("ecall", ""),
			TextDocf("fmv.s %s, fa0", rd),
		), nil

	case *Print:
		return g.genPrint(scope, target, fptarget, n.Operand.(*TypedExpr))
	case *PrintLn:
		printDoc, err := g.genPrint(scope, target, fptarget, n.Operand.(*TypedExpr))
		if err != nil {
			return EmptyAsmDoc(), err
		}
		nlDoc := Concat1(
			TextDoc("li a0, 10", "newline"),
			TextDoc("li a7, 11", "PrintChar"),
			TextDoc("ecall", ""),
		)
		return printDoc.Concat(nlDoc), nil

	case *Syscall:
		return g.genSyscall(scope, target, fptarget, te, n)

	case *Preinc:
		return g.genIncrDecr(scope, target, fptarget, pos, n.Name, true)
	case *Postinc:
		return g.genIncrDecr(scope, target, fptarget, pos, n.Name, false)

	case *If:
		return g.genIf(scope, target, fptarget, n)
	case *Seq:
		var docs []AsmDoc
		for _, it := range n.Items {
			d, err := g.gen(scope, target, fptarget, it.(*TypedExpr))
			if err != nil {
				return EmptyAsmDoc(), err
			}
			docs = append(docs, d)
		}
		return Concat1(docs...), nil
	case *While:
		return g.genWhile(scope, target, fptarget, n)
	case *For:
		desugared := NewLetMut(pos, n.Ident, n.Init,
			NewWhile(pos, n.Cond, NewSeq(pos, []Expr{n.Body, n.Step})))
		return g.gen(scope, target, fptarget, newTypedExpr(pos, te.Env, postype.Unit, desugared))

	case *TypeDecl:
		return g.gen(scope, target, fptarget, n.Scope.(*TypedExpr))
	case *Ascription:
		return g.gen(scope, target, fptarget, n.Operand.(*TypedExpr))
	case *Assertion:
		return g.genAssertion(scope, target, fptarget, n)
	case *Copy:
		return g.genCopy(scope, target, fptarget, te, n)

	case *Let:
		return g.genLet(scope, target, fptarget, te, n.Name, n.Init.(*TypedExpr), n.Scope.(*TypedExpr))
	case *LetT:
		return g.genLet(scope, target, fptarget, te, n.Name, n.Init.(*TypedExpr), n.Scope.(*TypedExpr))
	case *LetMut:
		return g.genLet(scope, target, fptarget, te, n.Name, n.Init.(*TypedExpr), n.Scope.(*TypedExpr))

	case *Assign:
		return g.genAssign(scope, target, fptarget, n)

	case *Lambda:
		return EmptyAsmDoc(), genBug(pos, "a lambda value outside of a direct let-binding is not supported by this code generator")
	case *Application:
		return g.genApplication(scope, target, fptarget, te, n)

	case *StructCons:
		return g.genStructCons(scope, target, fptarget, n)
	case *FieldSelect:
		return g.genFieldSelect(scope, target, fptarget, te, n)

	case *UnionCons:
		if !g.cfg.GetBool("codegen.allow_union_match") {
			return EmptyAsmDoc(), genBug(pos, "union construction is not implemented by this code generator")
		}
		return g.genUnionCons(scope, target, fptarget, n)
	case *Match:
		if !g.cfg.GetBool("codegen.allow_union_match") {
			return EmptyAsmDoc(), genBug(pos, "match is not implemented by this code generator")
		}
		return g.genMatch(scope, target, fptarget, te, n)

	case *Array:
		return g.genArray(scope, target, fptarget, n)
	case *ArrayElem:
		return g.genArrayElem(scope, target, fptarget, te, n)
	case *ArrayLength:
		arrDoc, err := g.gen(scope, target, fptarget, n.Array.(*TypedExpr))
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return arrDoc.Concat(TextDoc(fmt.Sprintf("lw %s, 0(%s)", rd, rd), "load length")), nil

	case *Pointer:
		return EmptyAsmDoc(), genBug(pos, "a runtime heap pointer cannot appear in a compiled program")

	default:
		return EmptyAsmDoc(), genBug(pos, "unsupported expression node %T in code generator", te.Expr)
	}
}

func (g *codegenState) genVarLoad(scope *genScope, target, fptarget int, te *TypedExpr, n *Var) (AsmDoc, error) {
	pos := te.Pos()
	st, ok := scope.lookup(n.Name)
	if !ok {
		return EmptyAsmDoc(), genBug(pos, "unbound variable %q in code generator", n.Name)
	}
	switch st.kind {
	case storeIntReg:
		src, err := g.intRegAt(st.reg, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		if rd == src {
			return EmptyAsmDoc(), nil
		}
		return TextDocf("mv %s, %s", rd, src), nil
	case storeFloatReg:
		src, err := g.fpRegAt(st.reg, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		rd, err := g.fpRegAt(fptarget, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		if rd == src {
			return EmptyAsmDoc(), nil
		}
		return TextDocf("fmv.s %s, %s", rd, src), nil
	case storeLabel:
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return TextDoc(fmt.Sprintf("la %s, %s", rd, st.label), "function label address"), nil
	case storeStack:
		rd, err := g.intRegAt(target, pos)
		if err != nil {
			return EmptyAsmDoc(), err
		}
		return TextDoc(fmt.Sprintf("lw %s, %d(sp)", rd, st.offset), "load stack-passed argument"), nil
	default:
		return EmptyAsmDoc(), genBug(pos, "unknown variable storage kind for %q", n.Name)
	}
}
