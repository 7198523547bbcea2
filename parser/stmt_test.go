package parser

import (
	"testing"

	"scriptfe/ast"
	"scriptfe/report"
)

func firstFuncBody(t *testing.T, tree *ast.ParseTree) *ast.Block {
	t.Helper()
	fn, ok := tree.Globals[0].(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("expected a function as the first global, got %T", tree.Globals[0])
	}
	return fn.Body
}

func TestParseIfElseIfChainIsRightLeaning(t *testing.T) {
	tree := parseOK(t, `
void f() {
	if (a) {
	} else if (b) {
	} else if (c) {
	} else {
	}
}
`)
	body := firstFuncBody(t, tree)
	outer := body.Stmts[0].(*ast.IfStatement)

	mid, ok := outer.IfFalse.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected the first elseif to nest as *ast.IfStatement, got %T", outer.IfFalse)
	}
	inner, ok := mid.IfFalse.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected the second elseif to nest as *ast.IfStatement, got %T", mid.IfFalse)
	}
	if _, ok := inner.IfFalse.(*ast.Block); !ok {
		t.Fatalf("expected the trailing else to be a bare *ast.Block, got %T", inner.IfFalse)
	}
}

func TestParseIfWithoutElseLeavesIfFalseNil(t *testing.T) {
	tree := parseOK(t, "void f() { if (a) {} }\n")
	body := firstFuncBody(t, tree)
	ifStmt := body.Stmts[0].(*ast.IfStatement)
	if ifStmt.IfFalse != nil {
		t.Fatalf("expected no else branch, got %+v", ifStmt.IfFalse)
	}
}

func TestParseSingleStatementIfBodyIsWrappedInBlock(t *testing.T) {
	tree := parseOK(t, "void f() { if (a) b(); }\n")
	body := firstFuncBody(t, tree)
	ifStmt := body.Stmts[0].(*ast.IfStatement)
	if len(ifStmt.IfTrue.Stmts) != 1 {
		t.Fatalf("expected a one-statement block, got %+v", ifStmt.IfTrue)
	}
	if _, ok := ifStmt.IfTrue.Stmts[0].(*ast.ExpressionStatement); !ok {
		t.Fatalf("expected the wrapped statement to be an ExpressionStatement, got %T", ifStmt.IfTrue.Stmts[0])
	}
}

func TestParseWhileLoop(t *testing.T) {
	tree := parseOK(t, "void f() { while (x < 10) { x++; } }\n")
	body := firstFuncBody(t, tree)
	w := body.Stmts[0].(*ast.WhileStatement)
	if w.Kind != ast.LoopWhile {
		t.Fatalf("expected LoopWhile, got %v", w.Kind)
	}
}

func TestParseDoWhileLoop(t *testing.T) {
	tree := parseOK(t, "void f() { do { x++; } while (x < 10); }\n")
	body := firstFuncBody(t, tree)
	w := body.Stmts[0].(*ast.WhileStatement)
	if w.Kind != ast.LoopDoWhile {
		t.Fatalf("expected LoopDoWhile, got %v", w.Kind)
	}
}

func TestParseForLoopAllClauses(t *testing.T) {
	tree := parseOK(t, "void f() { for (int i = 0; i < 10; i++) {} }\n")
	body := firstFuncBody(t, tree)
	fs := body.Stmts[0].(*ast.ForStatement)

	if _, ok := fs.Init.(*ast.VariableDeclaration); !ok {
		t.Fatalf("expected a variable-declaration init clause, got %T", fs.Init)
	}
	if fs.Cond == nil {
		t.Fatal("expected a condition")
	}
	if _, ok := fs.Update.(*ast.ExpressionStatement); !ok {
		t.Fatalf("expected an expression-statement update clause, got %T", fs.Update)
	}
}

func TestParseForLoopAllClausesOmitted(t *testing.T) {
	tree := parseOK(t, "void f() { for (;;) { break; } }\n")
	body := firstFuncBody(t, tree)
	fs := body.Stmts[0].(*ast.ForStatement)
	if fs.Init != nil || fs.Cond != nil || fs.Update != nil {
		t.Fatalf("expected every clause to be nil, got %+v", fs)
	}
}

func TestParseBreakContinueOutsideLoopDoNotPanicParsing(t *testing.T) {
	// The parser's loopDepth bookkeeping only suppresses a future checker
	// diagnostic; it must not itself fail to produce a tree.
	tree := parseOK(t, "void f() { break; continue; }\n")
	body := firstFuncBody(t, tree)
	if len(body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(body.Stmts))
	}
}

func TestParseSwitchCaseGroupsAndDefault(t *testing.T) {
	tree := parseOK(t, `
void f() {
	switch (x) {
		case 1, 2: a();
		case 3: b();
		default: c();
	}
}
`)
	body := firstFuncBody(t, tree)
	sw := body.Stmts[0].(*ast.SwitchStatement)
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 case groups, got %d", len(sw.Cases))
	}
	if len(sw.Cases[0].Values) != 2 {
		t.Fatalf("expected the first case to carry 2 values, got %d", len(sw.Cases[0].Values))
	}
	if !sw.Cases[2].IsDefault {
		t.Fatal("expected the last case to be the default")
	}
}

func TestParseSwitchDefaultMustBeLast(t *testing.T) {
	parseExpectError(t, `
void f() {
	switch (x) {
		default: a();
		case 1: b();
	}
}
`, report.Message_DefaultMustBeLastCase)
}

func TestParseSwitchOnlyOneDefault(t *testing.T) {
	parseExpectError(t, `
void f() {
	switch (x) {
		default: a();
		default: b();
	}
}
`, report.Message_OneDefaultPerSwitch)
}

func TestParseSwitchSingleStatementPerCase(t *testing.T) {
	parseExpectError(t, `
void f() {
	switch (x) {
		case 1: a(); b();
	}
}
`, report.Message_SingleStatementPerCase)
}

func TestParseLocalDeclarationRejectedOutsideBlock(t *testing.T) {
	parseExpectError(t, "void f() { if (a) int x = 1; }\n", report.Message_VariableMustBeInBlock)
}

func TestParseReturnWithAndWithoutValue(t *testing.T) {
	tree := parseOK(t, "int f() { return 1; }\n")
	body := firstFuncBody(t, tree)
	ret := body.Stmts[0].(*ast.ReturnStatement)
	if ret.Value == nil {
		t.Fatal("expected a return value")
	}

	tree2 := parseOK(t, "void g() { return; }\n")
	body2 := firstFuncBody(t, tree2)
	ret2 := body2.Stmts[0].(*ast.ReturnStatement)
	if ret2.Value != nil {
		t.Fatalf("expected a bare return, got %+v", ret2.Value)
	}
}
