package hygge

import "github.com/cjavad/hyggec/postype"

// Expr is the untyped tree's node interface. Every concrete variant
// below mirrors one of the expression forms enumerated in spec.md 3.
// The type checker (Check) never mutates an Expr: it produces a
// parallel *TypedExpr tree that wraps these same variant values,
// swapping child Expr fields for *TypedExpr children as it descends.
type Expr interface {
	Pos() postype.Position
}

// posMixin gives every variant its Pos() accessor without repeating
// the same three lines fifty times.
type posMixin struct{ pos postype.Position }

func (m posMixin) Pos() postype.Position { return m.pos }

// --- literals ---

type UnitLit struct{ posMixin }
type BoolLit struct {
	posMixin
	Value bool
}
type IntLit struct {
	posMixin
	Value int32
}
type FloatLit struct {
	posMixin
	Value float32
}
type StringLit struct {
	posMixin
	Value string
}

func NewUnitLit(pos postype.Position) *UnitLit   { return &UnitLit{posMixin{pos}} }
func NewBoolLit(pos postype.Position, v bool) *BoolLit   { return &BoolLit{posMixin{pos}, v} }
func NewIntLit(pos postype.Position, v int32) *IntLit    { return &IntLit{posMixin{pos}, v} }
func NewFloatLit(pos postype.Position, v float32) *FloatLit { return &FloatLit{posMixin{pos}, v} }
func NewStringLit(pos postype.Position, v string) *StringLit { return &StringLit{posMixin{pos}, v} }

// --- variable reference ---

type Var struct {
	posMixin
	Name string
}

func NewVar(pos postype.Position, name string) *Var { return &Var{posMixin{pos}, name} }

// --- arithmetic, bitwise, relational binary ops ---

type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
)

func (op ArithOp) String() string { return [...]string{"+", "-", "*", "/", "%"}[op] }

// Arith is a binary arithmetic node (Add/Sub/Mul/Div/Rem).
type Arith struct {
	posMixin
	Op       ArithOp
	Lhs, Rhs Expr
}

func NewArith(pos postype.Position, op ArithOp, lhs, rhs Expr) *Arith {
	return &Arith{posMixin{pos}, op, lhs, rhs}
}

// CompoundAssign is `lhs op= rhs`, kept distinct in the tree (rather
// than pre-desugared by a parser pass) so the checker can report
// diagnostics that name the compound form directly. The checker checks
// it in place; the evaluator and the code generator desugar it to
// Assign(lhs, Arith(op, lhs, rhs)) per spec.md 4.4.
type CompoundAssign struct {
	posMixin
	Op          ArithOp
	Target, Rhs Expr
}

func NewCompoundAssign(pos postype.Position, op ArithOp, target, rhs Expr) *CompoundAssign {
	return &CompoundAssign{posMixin{pos}, op, target, rhs}
}

type BitwiseOp int

const (
	OpBAnd BitwiseOp = iota
	OpBOr
	OpBXor
	OpBSL
	OpBSR
)

func (op BitwiseOp) String() string { return [...]string{"&", "|", "^", "<<", ">>"}[op] }

type Bitwise struct {
	posMixin
	Op       BitwiseOp
	Lhs, Rhs Expr
}

func NewBitwise(pos postype.Position, op BitwiseOp, lhs, rhs Expr) *Bitwise {
	return &Bitwise{posMixin{pos}, op, lhs, rhs}
}

type BNot struct {
	posMixin
	Operand Expr
}

func NewBNot(pos postype.Position, e Expr) *BNot { return &BNot{posMixin{pos}, e} }

type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
	OpXor
)

type Logical struct {
	posMixin
	Op       LogicalOp
	Lhs, Rhs Expr
}

func NewLogical(pos postype.Position, op LogicalOp, lhs, rhs Expr) *Logical {
	return &Logical{posMixin{pos}, op, lhs, rhs}
}

type Not struct {
	posMixin
	Operand Expr
}

func NewNot(pos postype.Position, e Expr) *Not { return &Not{posMixin{pos}, e} }

// ScAnd/ScOr are kept as distinct, first-class nodes (rather than
// sugar over If) so the code generator can emit the early-out branch
// directly, per spec.md 9.
type ScAnd struct {
	posMixin
	Lhs, Rhs Expr
}
type ScOr struct {
	posMixin
	Lhs, Rhs Expr
}

func NewScAnd(pos postype.Position, lhs, rhs Expr) *ScAnd { return &ScAnd{posMixin{pos}, lhs, rhs} }
func NewScOr(pos postype.Position, lhs, rhs Expr) *ScOr   { return &ScOr{posMixin{pos}, lhs, rhs} }

// Neg is numerical negation. Per spec.md 9 it admits Int only; float
// negation is deliberately unsupported.
type Neg struct {
	posMixin
	Operand Expr
}

func NewNeg(pos postype.Position, e Expr) *Neg { return &Neg{posMixin{pos}, e} }

type RelOp int

const (
	OpEq RelOp = iota
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
)

func (op RelOp) String() string {
	return [...]string{"==", "<", "<=", ">", ">="}[op]
}

type Rel struct {
	posMixin
	Op       RelOp
	Lhs, Rhs Expr
}

func NewRel(pos postype.Position, op RelOp, lhs, rhs Expr) *Rel {
	return &Rel{posMixin{pos}, op, lhs, rhs}
}

type Sqrt struct {
	posMixin
	Operand Expr
}

func NewSqrt(pos postype.Position, e Expr) *Sqrt { return &Sqrt{posMixin{pos}, e} }

// --- console I/O ---

type ReadInt struct{ posMixin }
type ReadFloat struct{ posMixin }

func NewReadInt(pos postype.Position) *ReadInt     { return &ReadInt{posMixin{pos}} }
func NewReadFloat(pos postype.Position) *ReadFloat { return &ReadFloat{posMixin{pos}} }

type Print struct {
	posMixin
	Operand Expr
}
type PrintLn struct {
	posMixin
	Operand Expr
}

func NewPrint(pos postype.Position, e Expr) *Print     { return &Print{posMixin{pos}, e} }
func NewPrintLn(pos postype.Position, e Expr) *PrintLn { return &PrintLn{posMixin{pos}, e} }

// Syscall invokes a numbered syscall from the registry (syscalls.go)
// with positional arguments.
type Syscall struct {
	posMixin
	Number int
	Args   []Expr
}

func NewSyscall(pos postype.Position, number int, args []Expr) *Syscall {
	return &Syscall{posMixin{pos}, number, args}
}

// --- pre/post increment ---

// Preinc/Postinc require Name to be bound in the variable-storage map
// at code-gen time (spec.md 9); the tree only records the variable's
// name, not a general lvalue.
type Preinc struct {
	posMixin
	Name string
}
type Postinc struct {
	posMixin
	Name string
}

func NewPreinc(pos postype.Position, name string) *Preinc   { return &Preinc{posMixin{pos}, name} }
func NewPostinc(pos postype.Position, name string) *Postinc { return &Postinc{posMixin{pos}, name} }

// --- control flow ---

type If struct {
	posMixin
	Cond, Then, Else Expr
}

func NewIf(pos postype.Position, cond, then, els Expr) *If {
	return &If{posMixin{pos}, cond, then, els}
}

type Seq struct {
	posMixin
	Items []Expr
}

func NewSeq(pos postype.Position, items []Expr) *Seq { return &Seq{posMixin{pos}, items} }

type While struct {
	posMixin
	Cond, Body Expr
}

func NewWhile(pos postype.Position, cond, body Expr) *While {
	return &While{posMixin{pos}, cond, body}
}

// For carries its own iteration-variable binding, condition, and step
// expression; it desugars to LetMut(Ident, Init, While(Cond, Seq(Body,
// Step))) for both evaluation (spec.md 4.4) and code generation
// (spec.md 4.6).
type For struct {
	posMixin
	Ident                  string
	Init, Cond, Step, Body Expr
}

func NewFor(pos postype.Position, ident string, init, cond, step, body Expr) *For {
	return &For{posMixin{pos}, ident, init, cond, step, body}
}

// --- type alias declaration ---

type TypeDecl struct {
	posMixin
	Name    string
	Pretype postype.Pretype
	Scope   Expr
}

func NewTypeDecl(pos postype.Position, name string, pretype postype.Pretype, scope Expr) *TypeDecl {
	return &TypeDecl{posMixin{pos}, name, pretype, scope}
}

// --- ascription, assertion, copy ---

type Ascription struct {
	posMixin
	Pretype postype.Pretype
	Operand Expr
}

func NewAscription(pos postype.Position, pretype postype.Pretype, e Expr) *Ascription {
	return &Ascription{posMixin{pos}, pretype, e}
}

type Assertion struct {
	posMixin
	Operand Expr
}

func NewAssertion(pos postype.Position, e Expr) *Assertion { return &Assertion{posMixin{pos}, e} }

type Copy struct {
	posMixin
	Operand Expr
}

func NewCopy(pos postype.Position, e Expr) *Copy { return &Copy{posMixin{pos}, e} }

// --- let forms ---

type Let struct {
	posMixin
	Name        string
	Init, Scope Expr
}

type LetT struct {
	posMixin
	Name        string
	Pretype     postype.Pretype
	Init, Scope Expr
}

type LetMut struct {
	posMixin
	Name        string
	Init, Scope Expr
}

func NewLet(pos postype.Position, name string, init, scope Expr) *Let {
	return &Let{posMixin{pos}, name, init, scope}
}

func NewLetT(pos postype.Position, name string, pretype postype.Pretype, init, scope Expr) *LetT {
	return &LetT{posMixin{pos}, name, pretype, init, scope}
}

func NewLetMut(pos postype.Position, name string, init, scope Expr) *LetMut {
	return &LetMut{posMixin{pos}, name, init, scope}
}

// --- assignment ---

// Assign's Target must check as one of Var, FieldSelect, or ArrayElem
// (spec.md 4.3); the tree itself does not restrict it so the checker
// can produce a precise diagnostic for any other shape.
type Assign struct {
	posMixin
	Target, Value Expr
}

func NewAssign(pos postype.Position, target, value Expr) *Assign {
	return &Assign{posMixin{pos}, target, value}
}

// --- lambda & application ---

type Param struct {
	Name    string
	Pretype postype.Pretype
}

type Lambda struct {
	posMixin
	Args []Param
	Body Expr
}

func NewLambda(pos postype.Position, args []Param, body Expr) *Lambda {
	return &Lambda{posMixin{pos}, args, body}
}

type Application struct {
	posMixin
	Fn   Expr
	Args []Expr
}

func NewApplication(pos postype.Position, fn Expr, args []Expr) *Application {
	return &Application{posMixin{pos}, fn, args}
}

// --- records ---

type FieldInit struct {
	Mutable bool
	Name    string
	Init    Expr
}

type StructCons struct {
	posMixin
	Fields []FieldInit
}

func NewStructCons(pos postype.Position, fields []FieldInit) *StructCons {
	return &StructCons{posMixin{pos}, fields}
}

type FieldSelect struct {
	posMixin
	Target Expr
	Field  string
}

func NewFieldSelect(pos postype.Position, target Expr, field string) *FieldSelect {
	return &FieldSelect{posMixin{pos}, target, field}
}

// --- unions ---

type UnionCons struct {
	posMixin
	Label string
	Init  Expr
}

func NewUnionCons(pos postype.Position, label string, init Expr) *UnionCons {
	return &UnionCons{posMixin{pos}, label, init}
}

type MatchCase struct {
	Label string
	Var   string
	Cont  Expr
}

type Match struct {
	posMixin
	Operand Expr
	Cases   []MatchCase
}

func NewMatch(pos postype.Position, operand Expr, cases []MatchCase) *Match {
	return &Match{posMixin{pos}, operand, cases}
}

// --- arrays ---

type Array struct {
	posMixin
	Length, Init Expr
}

func NewArray(pos postype.Position, length, init Expr) *Array {
	return &Array{posMixin{pos}, length, init}
}

type ArrayElem struct {
	posMixin
	Array, Index Expr
}

func NewArrayElem(pos postype.Position, array, index Expr) *ArrayElem {
	return &ArrayElem{posMixin{pos}, array, index}
}

type ArrayLength struct {
	posMixin
	Array Expr
}

func NewArrayLength(pos postype.Position, array Expr) *ArrayLength {
	return &ArrayLength{posMixin{pos}, array}
}

// --- runtime-only heap pointer ---

// Pointer is never produced by anything but the evaluator's own heap
// allocation; the type checker and code generator reject it outright
// if it ever reaches them (spec.md 3).
type Pointer struct {
	posMixin
	Addr int
}

func NewPointer(pos postype.Position, addr int) *Pointer { return &Pointer{posMixin{pos}, addr} }
