package codegen

import (
	"testing"

	"scriptfe/ast"
	"scriptfe/sem"
)

func calleeExpr(sym *sem.Symbol) *ast.NameProxyExpr {
	e := varRef(sym)
	e.SetValue(&sem.Value{Ident: sem.Functn, Sym: sym})
	return e
}

func callExpr(callee ast.Expr, result *sem.Value, args ...ast.Expr) *ast.CallExpression {
	e := &ast.CallExpression{ExprBase: ast.NewExprBase(nil), Callee: callee, Args: args}
	e.SetValue(result)
	return e
}

func TestEmitCallPassesArgsByValueRightToLeft(t *testing.T) {
	g, rec := newGen()
	fn := &sem.Symbol{Name: "add", Params: []sem.ParamKind{{}, {}}}
	a, b := newVar("a"), newVar("b")

	g.Emit(callExpr(calleeExpr(fn), &sem.Value{Ident: sem.Expression}, varRef(a), varRef(b)))

	code := rec.Disassembly()
	assertContains(t, code, "rvalue a")
	assertContains(t, code, "rvalue b")
	assertContains(t, code, "ffcall add, 2")
	assertNotContains(t, code, "address a,")
}

func TestEmitCallByRefArgumentPassesAddress(t *testing.T) {
	g, rec := newGen()
	fn := &sem.Symbol{Name: "swap", Params: []sem.ParamKind{{ByRef: true}, {ByRef: true}}}
	a, b := newVar("a"), newVar("b")

	g.Emit(callExpr(calleeExpr(fn), &sem.Value{Ident: sem.Expression}, varRef(a), varRef(b)))

	code := rec.Disassembly()
	assertContains(t, code, "address a, pri")
	assertContains(t, code, "address b, pri")
	assertContains(t, code, "ffcall swap, 2")
	assertNotContains(t, code, "rvalue a")
	assertNotContains(t, code, "rvalue b")
}

func TestEmitCallVariadicArgBoxesComputedValue(t *testing.T) {
	g, rec := newGen()
	fn := &sem.Symbol{Name: "printf", Params: []sem.ParamKind{{}, {Variadic: true}}}
	fmtArg := newVar("fmtstr")

	g.Emit(callExpr(calleeExpr(fn), &sem.Value{Ident: sem.Expression}, varRef(fmtArg), intLit(42)))

	code := rec.Disassembly()
	assertContains(t, code, "setheap_pri")
	assertContains(t, code, "ffcall printf, 2")
}

func TestEmitCallPlainVariableToNonConstVariadicStaysAddressed(t *testing.T) {
	g, rec := newGen()
	fn := &sem.Symbol{Name: "printf", Params: []sem.ParamKind{{}, {Variadic: true}}}
	fmtArg := newVar("fmtstr")
	out := newVar("out")

	g.Emit(callExpr(calleeExpr(fn), &sem.Value{Ident: sem.Expression}, varRef(fmtArg), varRef(out)))

	code := rec.Disassembly()
	assertContains(t, code, "address out, pri")
	assertNotContains(t, code, "setheap_pri")
}

func TestEmitCallConstVariableToNonConstVariadicBoxesValue(t *testing.T) {
	g, rec := newGen()
	fn := &sem.Symbol{Name: "printf", Params: []sem.ParamKind{{}, {Variadic: true}}}
	fmtArg := newVar("fmtstr")
	msg := newVar("msg")
	msg.Const = true

	g.Emit(callExpr(calleeExpr(fn), &sem.Value{Ident: sem.Expression}, varRef(fmtArg), varRef(msg)))

	code := rec.Disassembly()
	assertContains(t, code, "rvalue msg")
	assertContains(t, code, "setheap_pri")
	assertNotContains(t, code, "address msg")
}

func TestEmitCallConstVariableToConstVariadicStaysAddressed(t *testing.T) {
	g, rec := newGen()
	fn := &sem.Symbol{Name: "printf", Params: []sem.ParamKind{{}, {Variadic: true, Const: true}}}
	fmtArg := newVar("fmtstr")
	msg := newVar("msg")
	msg.Const = true

	g.Emit(callExpr(calleeExpr(fn), &sem.Value{Ident: sem.Expression}, varRef(fmtArg), varRef(msg)))

	code := rec.Disassembly()
	assertContains(t, code, "address msg, pri")
	assertNotContains(t, code, "rvalue msg")
}

func TestEmitCallReturningArrayReservesHeapSlot(t *testing.T) {
	g, rec := newGen()
	fn := &sem.Symbol{Name: "makeArray", ArraySize: 8}

	g.Emit(callExpr(calleeExpr(fn), &sem.Value{Ident: sem.RefArray}))

	code := rec.Disassembly()
	assertContains(t, code, "modheap 32")
	assertContains(t, code, "markheap MEMUSE_STATIC, 8")
	assertContains(t, code, "ffcall makeArray, 0")
	assertContains(t, code, "popreg pri")
}
