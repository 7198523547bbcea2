package codegen

import (
	"strings"
	"testing"

	"scriptfe/ast"
	"scriptfe/emit"
	"scriptfe/sem"
	"scriptfe/token"
)

var atoms = token.NewTable()

// assertContains fails the test unless code contains expected somewhere,
// matching the assertion helper style used for disassembly-output
// checks elsewhere in the retrieval pack's compiler test suites.
func assertContains(t *testing.T, code, expected string) {
	t.Helper()
	if !strings.Contains(code, expected) {
		t.Errorf("expected disassembly to contain %q, got:\n%s", expected, code)
	}
}

func assertNotContains(t *testing.T, code, unexpected string) {
	t.Helper()
	if strings.Contains(code, unexpected) {
		t.Errorf("expected disassembly NOT to contain %q, got:\n%s", unexpected, code)
	}
}

func intLit(n int64) *ast.IntegerLiteral {
	lit := &ast.IntegerLiteral{ExprBase: ast.NewExprBase(nil), Value: n}
	lit.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: n})
	return lit
}

func varRef(sym *sem.Symbol) *ast.NameProxyExpr {
	e := &ast.NameProxyExpr{
		ExprBase: ast.NewExprBase(nil),
		Name:     &ast.NameProxy{Base: ast.NewBase(nil), Atom: atoms.Intern(sym.Name)},
	}
	e.SetValue(&sem.Value{Ident: sem.Variable, Sym: sym})
	return e
}

func newVar(name string) *sem.Symbol {
	return &sem.Symbol{Name: name, Local: true}
}

func newGen() (*Generator, *emit.Recorder) {
	rec := emit.NewRecorder()
	return New(rec), rec
}
