package codegen

import (
	"testing"

	"scriptfe/ast"
	"scriptfe/sem"
)

func boolBinExpr(op ast.OperKind, left, right ast.Expr) *ast.BinaryExpression {
	e := &ast.BinaryExpression{ExprBase: ast.NewExprBase(nil), Op: op, Left: left, Right: right}
	e.SetValue(&sem.Value{Ident: sem.Expression})
	return e
}

func TestEmitLogicalAndShortCircuitsToFallthrough(t *testing.T) {
	g, rec := newGen()
	a, b := newVar("a"), newVar("b")
	expr := boolBinExpr(ast.OpLogicalAnd, varRef(a), varRef(b))

	taken := rec.GetLabel()
	fall := rec.GetLabel()
	g.EmitTest(expr, true, taken, fall)

	code := rec.Disassembly()
	assertContains(t, code, "rvalue a")
	assertContains(t, code, "rvalue b")
	assertContains(t, code, "jmp_eq0")
	assertContains(t, code, "jmp_ne0")
}

func TestEmitLogicalOrAsValueMaterializesBoolean(t *testing.T) {
	g, rec := newGen()
	a, b := newVar("a"), newVar("b")
	expr := boolBinExpr(ast.OpLogicalOr, varRef(a), varRef(b))

	g.Emit(expr)

	code := rec.Disassembly()
	assertContains(t, code, "ldconst 0, pri")
	assertContains(t, code, "ldconst 1, pri")
	assertContains(t, code, "jumplabel")
}

func TestFlattenLogicalOrdersOperandsLeftToRight(t *testing.T) {
	a, b, c := newVar("a"), newVar("b"), newVar("c")
	inner := boolBinExpr(ast.OpLogicalAnd, varRef(a), varRef(b))
	outer := boolBinExpr(ast.OpLogicalAnd, inner, varRef(c))

	operands := flattenLogical(ast.OpLogicalAnd, outer)
	if len(operands) != 3 {
		t.Fatalf("expected 3 flattened operands, got %d", len(operands))
	}
	if operands[0].(*ast.NameProxyExpr).ValueInfo().Sym.Name != "a" ||
		operands[1].(*ast.NameProxyExpr).ValueInfo().Sym.Name != "b" ||
		operands[2].(*ast.NameProxyExpr).ValueInfo().Sym.Name != "c" {
		t.Fatalf("flattened operands out of order: %v", operands)
	}
}
