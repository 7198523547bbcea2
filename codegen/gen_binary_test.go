package codegen

import (
	"strings"
	"testing"

	"scriptfe/ast"
	"scriptfe/sem"
)

func binExpr(op ast.OperKind, left, right ast.Expr) *ast.BinaryExpression {
	e := &ast.BinaryExpression{ExprBase: ast.NewExprBase(nil), Op: op, Left: left, Right: right}
	e.SetValue(&sem.Value{Ident: sem.Expression})
	return e
}

func TestEmitBinaryConstantFold(t *testing.T) {
	g, rec := newGen()
	g.Emit(binExpr(ast.OpAdd, intLit(2), intLit(3)))

	code := rec.Disassembly()
	assertContains(t, code, "ldconst 3, pri")
	assertContains(t, code, "ldconst 2, alt")
	assertContains(t, code, "add")
}

func TestEmitBinaryVariablePlusConstant(t *testing.T) {
	g, rec := newGen()
	x := newVar("x")
	g.Emit(binExpr(ast.OpAdd, varRef(x), intLit(1)))

	code := rec.Disassembly()
	// x is rematerializable and the op is commutative, so the constant
	// loads straight into ALT with no push/pop roundtrip.
	assertNotContains(t, code, "pushreg")
	assertContains(t, code, "ldconst 1, alt")
	assertContains(t, code, "add")
}

func TestEmitBinaryNonCommutativeSavesLeft(t *testing.T) {
	g, rec := newGen()
	x := newVar("x")
	y := newVar("y")
	g.Emit(binExpr(ast.OpSub, varRef(x), varRef(y)))

	code := rec.Disassembly()
	assertContains(t, code, "pushreg pri")
	assertContains(t, code, "popreg alt")
	assertContains(t, code, "sub")
}

func TestEmitChainedCompareWrapsInnerLinks(t *testing.T) {
	g, rec := newGen()
	a, b, c := newVar("a"), newVar("b"), newVar("c")

	inner := binExpr(ast.OpLt, varRef(a), varRef(b))
	outer := binExpr(ast.OpLt, inner, varRef(c))

	g.Emit(outer)

	code := rec.Disassembly()
	assertContains(t, code, "less")
	assertContains(t, code, "relop_prefix")
	assertContains(t, code, "relop_suffix")
}

func TestEmitChainedCompareCallOperandsEachEmitOnce(t *testing.T) {
	g, rec := newGen()
	f := &sem.Symbol{Name: "f"}
	h := &sem.Symbol{Name: "h"}
	j := &sem.Symbol{Name: "j"}

	fCall := callExpr(calleeExpr(f), &sem.Value{Ident: sem.Expression})
	hCall := callExpr(calleeExpr(h), &sem.Value{Ident: sem.Expression})
	jCall := callExpr(calleeExpr(j), &sem.Value{Ident: sem.Expression})

	inner := binExpr(ast.OpLt, fCall, hCall)
	outer := binExpr(ast.OpLt, inner, jCall)

	g.Emit(outer)

	code := rec.Disassembly()
	for _, call := range []string{"ffcall f, 0", "ffcall h, 0", "ffcall j, 0"} {
		if n := strings.Count(code, call); n != 1 {
			t.Fatalf("expected %q exactly once, got %d in:\n%s", call, n, code)
		}
	}
}

func TestEmitAssignmentPlain(t *testing.T) {
	g, rec := newGen()
	x := newVar("x")
	assign := &ast.Assignment{ExprBase: ast.NewExprBase(nil), Op: ast.AssignPlain, Lhs: varRef(x), Rhs: intLit(7)}
	assign.SetValue(&sem.Value{Ident: sem.Expression})

	g.Emit(assign)

	code := rec.Disassembly()
	assertContains(t, code, "ldconst 7, pri")
	assertContains(t, code, "store x")
}

func TestEmitAssignmentCompound(t *testing.T) {
	g, rec := newGen()
	x := newVar("x")
	assign := &ast.Assignment{ExprBase: ast.NewExprBase(nil), Op: ast.AssignAdd, Lhs: varRef(x), Rhs: intLit(1)}
	assign.SetValue(&sem.Value{Ident: sem.Expression})

	g.Emit(assign)

	code := rec.Disassembly()
	assertContains(t, code, "rvalue x")
	assertContains(t, code, "add")
	assertContains(t, code, "store x")
}
