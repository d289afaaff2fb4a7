package hygge

import (
	"testing"

	"github.com/cjavad/hyggec/postype"
	"github.com/stretchr/testify/assert"
)

var zeroPos = postype.Position{}

func TestSubstReplacesFreeVar(t *testing.T) {
	e := NewArith(zeroPos, OpAdd, NewVar(zeroPos, "x"), NewIntLit(zeroPos, 1))
	got := Subst(e, "x", NewIntLit(zeroPos, 41))

	arith, ok := got.(*Arith)
	assert.True(t, ok)
	lit, ok := arith.Lhs.(*IntLit)
	assert.True(t, ok)
	assert.Equal(t, int32(41), lit.Value)
}

func TestSubstLeavesOtherNamesAlone(t *testing.T) {
	e := NewVar(zeroPos, "y")
	got := Subst(e, "x", NewIntLit(zeroPos, 41))
	assert.Same(t, e, got.(*Var))
}

func TestSubstSkipsLetShadowedName(t *testing.T) {
	// let x = x in x -- the outer x substitutes into Init, but the
	// inner reference is bound by this very Let and must not change.
	e := NewLet(zeroPos, "x", NewVar(zeroPos, "x"), NewVar(zeroPos, "x"))
	got := Subst(e, "x", NewIntLit(zeroPos, 7)).(*Let)

	initLit, ok := got.Init.(*IntLit)
	assert.True(t, ok, "Init should be substituted")
	assert.Equal(t, int32(7), initLit.Value)

	scopeVar, ok := got.Scope.(*Var)
	assert.True(t, ok, "Scope's bound reference should be left as a Var")
	assert.Equal(t, "x", scopeVar.Name)
}

func TestSubstSkipsLambdaShadowedArg(t *testing.T) {
	lam := NewLambda(zeroPos, []Param{{Name: "x", Pretype: &postype.PretypeIdent{Name: "Int"}}}, NewVar(zeroPos, "x"))
	got := Subst(lam, "x", NewIntLit(zeroPos, 9))
	assert.Same(t, lam, got.(*Lambda))
}

func TestSubstEntersLambdaWhenArgDoesNotShadow(t *testing.T) {
	lam := NewLambda(zeroPos, []Param{{Name: "y", Pretype: &postype.PretypeIdent{Name: "Int"}}}, NewVar(zeroPos, "x"))
	got := Subst(lam, "x", NewIntLit(zeroPos, 9)).(*Lambda)
	lit, ok := got.Body.(*IntLit)
	assert.True(t, ok)
	assert.Equal(t, int32(9), lit.Value)
}

func TestSubstSkipsMatchShadowedCaseVar(t *testing.T) {
	m := NewMatch(zeroPos, NewVar(zeroPos, "u"), []MatchCase{
		{Label: "Some", Var: "x", Cont: NewVar(zeroPos, "x")},
		{Label: "None", Var: "_", Cont: NewVar(zeroPos, "x")},
	})
	got := Subst(m, "x", NewIntLit(zeroPos, 3)).(*Match)

	shadowed, ok := got.Cases[0].Cont.(*Var)
	assert.True(t, ok, "case binding its own x must not substitute")
	assert.Equal(t, "x", shadowed.Name)

	replaced, ok := got.Cases[1].Cont.(*IntLit)
	assert.True(t, ok, "case not rebinding x must substitute")
	assert.Equal(t, int32(3), replaced.Value)
}

func TestSubstSkipsForShadowedIdentInCondStepBody(t *testing.T) {
	f := NewFor(zeroPos, "i", NewVar(zeroPos, "i"), NewVar(zeroPos, "i"), NewVar(zeroPos, "i"), NewVar(zeroPos, "i"))
	got := Subst(f, "i", NewIntLit(zeroPos, 0)).(*For)

	initLit, ok := got.Init.(*IntLit)
	assert.True(t, ok, "Init is evaluated before the binder exists")
	assert.Equal(t, int32(0), initLit.Value)

	for _, child := range []Expr{got.Cond, got.Step, got.Body} {
		v, ok := child.(*Var)
		assert.True(t, ok, "Cond/Step/Body reference the For's own binder and must not substitute")
		assert.Equal(t, "i", v.Name)
	}
}

func TestFreeVarsExcludesLetBoundName(t *testing.T) {
	e := NewLet(zeroPos, "x", NewVar(zeroPos, "y"), NewArith(zeroPos, OpAdd, NewVar(zeroPos, "x"), NewVar(zeroPos, "z")))
	free := FreeVars(e)
	_, hasX := free["x"]
	_, hasY := free["y"]
	_, hasZ := free["z"]
	assert.False(t, hasX)
	assert.True(t, hasY)
	assert.True(t, hasZ)
}

func TestFreeVarsExcludesLambdaArgs(t *testing.T) {
	lam := NewLambda(zeroPos,
		[]Param{{Name: "a", Pretype: &postype.PretypeIdent{Name: "Int"}}},
		NewArith(zeroPos, OpAdd, NewVar(zeroPos, "a"), NewVar(zeroPos, "b")))
	free := FreeVars(lam)
	_, hasA := free["a"]
	_, hasB := free["b"]
	assert.False(t, hasA)
	assert.True(t, hasB)
}

func TestFreeVarsMatchCaseScopingIsPerCase(t *testing.T) {
	m := NewMatch(zeroPos, NewVar(zeroPos, "u"), []MatchCase{
		{Label: "Some", Var: "x", Cont: NewVar(zeroPos, "x")},
		{Label: "None", Var: "_", Cont: NewVar(zeroPos, "w")},
	})
	free := FreeVars(m)
	_, hasU := free["u"]
	_, hasX := free["x"]
	_, hasW := free["w"]
	assert.True(t, hasU)
	assert.False(t, hasX, "x is bound by the Some case and must not leak")
	assert.True(t, hasW)
}

func TestFreeVarsForExcludesIdentFromCondStepBodyOnly(t *testing.T) {
	f := NewFor(zeroPos, "i", NewVar(zeroPos, "start"), NewVar(zeroPos, "i"), NewVar(zeroPos, "i"), NewVar(zeroPos, "acc"))
	free := FreeVars(f)
	_, hasStart := free["start"]
	_, hasI := free["i"]
	_, hasAcc := free["acc"]
	assert.True(t, hasStart)
	assert.False(t, hasI)
	assert.True(t, hasAcc)
}

func TestCapturedVarsMatchesFreeVarsOnLambdaBody(t *testing.T) {
	lam := NewLambda(zeroPos,
		[]Param{{Name: "a", Pretype: &postype.PretypeIdent{Name: "Int"}}},
		NewArith(zeroPos, OpAdd, NewVar(zeroPos, "a"), NewVar(zeroPos, "outer")))
	assert.Equal(t, FreeVars(lam.Body), CapturedVars(lam.Body))
}
