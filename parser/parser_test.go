package parser

import (
	"strings"
	"testing"

	"scriptfe/ast"
	"scriptfe/config"
	"scriptfe/report"
	"scriptfe/scanner"
	"scriptfe/token"
)

// parseOK parses src with the default dialect and fails the test if any
// diagnostic was reported.
func parseOK(t *testing.T, src string) *ast.ParseTree {
	t.Helper()
	tree, col := parseAny(t, src, config.Default())
	if col.HasErrors() {
		t.Fatalf("unexpected errors for %q: %v", src, col.Diagnostics())
	}
	return tree
}

// parseWithDialect is parseOK but with an explicit dialect.
func parseWithDialect(t *testing.T, src string, d *config.Dialect) *ast.ParseTree {
	t.Helper()
	tree, col := parseAny(t, src, d)
	if col.HasErrors() {
		t.Fatalf("unexpected errors for %q: %v", src, col.Diagnostics())
	}
	return tree
}

// parseExpectError parses src and returns the collector, asserting that at
// least one diagnostic with the given code was reported.
func parseExpectError(t *testing.T, src string, code report.Code) (*ast.ParseTree, *report.Collector) {
	t.Helper()
	tree, col := parseAny(t, src, config.Default())
	if len(col.ErrorsWithCode(code)) == 0 {
		t.Fatalf("expected diagnostic %v for %q, got: %v", code, src, col.Diagnostics())
	}
	return tree, col
}

func parseAny(t *testing.T, src string, d *config.Dialect) (*ast.ParseTree, *report.Collector) {
	t.Helper()
	atoms := token.NewTable()
	col := report.NewCollector()
	sc := scanner.New(strings.NewReader(src), col, atoms)
	p := New(sc, col, d, atoms)
	return p.Parse(), col
}

func TestParseEmptySource(t *testing.T) {
	tree := parseOK(t, "")
	if len(tree.Globals) != 0 {
		t.Fatalf("expected no globals, got %d", len(tree.Globals))
	}
}

func TestParseGlobalVariableNewStyle(t *testing.T) {
	tree := parseOK(t, "int x = 5;\n")
	if len(tree.Globals) != 1 {
		t.Fatalf("expected 1 global, got %d", len(tree.Globals))
	}
	decl, ok := tree.Globals[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", tree.Globals[0])
	}
	if decl.Name.String() != "x" {
		t.Fatalf("expected name x, got %q", decl.Name.String())
	}
	if decl.Type.Resolver != ast.ResolverBuiltin || decl.Type.Builtin != token.INT {
		t.Fatalf("expected builtin int type, got %+v", decl.Type)
	}
	lit, ok := decl.Init.(*ast.IntegerLiteral)
	if !ok || lit.Value != 5 {
		t.Fatalf("expected initializer 5, got %#v", decl.Init)
	}
}

func TestParseGlobalVariableOldStyleImplicitInt(t *testing.T) {
	tree := parseOK(t, "new x = 5;\n")
	decl := tree.Globals[0].(*ast.VariableDeclaration)
	if decl.Type.Resolver != ast.ResolverImplicitInt {
		t.Fatalf("expected implicit-int resolver, got %v", decl.Type.Resolver)
	}
}

func TestParseOldStyleLabelType(t *testing.T) {
	tree := parseOK(t, "new Float:x = 1.0;\n")
	decl := tree.Globals[0].(*ast.VariableDeclaration)
	if decl.Type.Resolver != ast.ResolverLabeledNamed {
		t.Fatalf("expected labeled resolver, got %v", decl.Type.Resolver)
	}
	if decl.Type.Name.Atom.String() != "Float" {
		t.Fatalf("expected label Float, got %q", decl.Type.Name.Atom.String())
	}
}

func TestParseMultiDeclaratorChain(t *testing.T) {
	tree := parseOK(t, "int x, y = 2, z[3];\n")
	first := tree.Globals[0].(*ast.VariableDeclaration)

	if first.Name.String() != "x" || first.Init != nil {
		t.Fatalf("expected bare declarator x, got %+v", first)
	}

	second := first.Next
	if second == nil || second.Name.String() != "y" {
		t.Fatalf("expected sibling y, got %+v", second)
	}
	if lit, ok := second.Init.(*ast.IntegerLiteral); !ok || lit.Value != 2 {
		t.Fatalf("expected y's initializer 2, got %#v", second.Init)
	}

	third := second.Next
	if third == nil || third.Name.String() != "z" {
		t.Fatalf("expected sibling z, got %+v", third)
	}
	if third.Type.Rank != 1 {
		t.Fatalf("expected z to carry one array dimension, got rank %d", third.Type.Rank)
	}
	if len(third.Type.Dims) != 1 {
		t.Fatalf("expected one dim expr on z, got %d", len(third.Type.Dims))
	}
}

func TestParseOldStylePostDimsArray(t *testing.T) {
	tree := parseOK(t, "new arr[10];\n")
	decl := tree.Globals[0].(*ast.VariableDeclaration)
	if !decl.Type.HasPostDims {
		t.Fatal("expected HasPostDims to be set")
	}
	if decl.Type.Rank != 1 {
		t.Fatalf("expected rank 1, got %d", decl.Type.Rank)
	}
	lit, ok := decl.Type.Dims[0].(*ast.IntegerLiteral)
	if !ok || lit.Value != 10 {
		t.Fatalf("expected dim 10, got %#v", decl.Type.Dims[0])
	}
}

func TestParseNewStylePrefixArray(t *testing.T) {
	tree := parseOK(t, "int[] arr;\n")
	decl := tree.Globals[0].(*ast.VariableDeclaration)
	if decl.Type.HasPostDims {
		t.Fatal("expected a prefix rank, not post-dims")
	}
	if decl.Type.Rank != 1 {
		t.Fatalf("expected rank 1, got %d", decl.Type.Rank)
	}
}

func TestParseFunctionDisambiguatedFromVariable(t *testing.T) {
	tree := parseOK(t, "int add(int a, int b) { return a + b; }\n")
	fn, ok := tree.Globals[0].(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("expected *ast.FunctionStatement, got %T", tree.Globals[0])
	}
	if fn.Name.String() != "add" {
		t.Fatalf("expected name add, got %q", fn.Name.String())
	}
	if len(fn.Signature.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Signature.Params))
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected a one-statement body, got %+v", fn.Body)
	}
}

func TestParseNativeFunctionHasNoBody(t *testing.T) {
	tree := parseOK(t, "native int strlen(const char[] s);\n")
	fn := tree.Globals[0].(*ast.FunctionStatement)
	if !fn.Native {
		t.Fatal("expected Native to be set")
	}
	if fn.Body != nil {
		t.Fatal("expected a native prototype to have no body")
	}
}

func TestParseForwardFunctionHasNoBody(t *testing.T) {
	tree := parseOK(t, "forward void OnReady();\n")
	fn := tree.Globals[0].(*ast.FunctionStatement)
	if !fn.Forward {
		t.Fatal("expected Forward to be set")
	}
	if fn.Body != nil {
		t.Fatal("expected a forward prototype to have no body")
	}
}

func TestParseByRefArgument(t *testing.T) {
	tree := parseOK(t, "void swap(int &a, int &b) {}\n")
	fn := tree.Globals[0].(*ast.FunctionStatement)
	for _, p := range fn.Signature.Params {
		if !p.Type.ByRef {
			t.Fatalf("expected param %+v to be by-ref", p)
		}
	}
}

func TestParseVariadicArgument(t *testing.T) {
	tree := parseOK(t, "void log(const char[] fmt, ...) {}\n")
	fn := tree.Globals[0].(*ast.FunctionStatement)
	last := fn.Signature.Params[len(fn.Signature.Params)-1]
	if !last.Type.Variadic {
		t.Fatal("expected the last parameter to be variadic")
	}
}

func TestParseMultipleVarargsIsRejected(t *testing.T) {
	parseExpectError(t, "void f(..., ...) {}\n", report.Message_MultipleVarargs)
}

func TestParseTypedef(t *testing.T) {
	tree := parseOK(t, "typedef Callback = function void(int);\n")
	td, ok := tree.Globals[0].(*ast.TypedefStatement)
	if !ok {
		t.Fatalf("expected *ast.TypedefStatement, got %T", tree.Globals[0])
	}
	if td.Type.Resolver != ast.ResolverFunctionType {
		t.Fatalf("expected function-type resolver, got %v", td.Type.Resolver)
	}
}

func TestParseEnum(t *testing.T) {
	tree := parseOK(t, "enum Color { Red, Green = 5, Blue };\n")
	en, ok := tree.Globals[0].(*ast.EnumStatement)
	if !ok {
		t.Fatalf("expected *ast.EnumStatement, got %T", tree.Globals[0])
	}
	if len(en.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(en.Entries))
	}
	if en.Entries[1].Value == nil {
		t.Fatal("expected Green to carry an explicit value")
	}
}

func TestParseStructFields(t *testing.T) {
	tree := parseOK(t, "struct Point { public int x; public int y; };\n")
	st, ok := tree.Globals[0].(*ast.LayoutStatement)
	if !ok {
		t.Fatalf("expected *ast.LayoutStatement, got %T", tree.Globals[0])
	}
	if st.Kind != ast.LayoutStruct {
		t.Fatalf("expected LayoutStruct, got %v", st.Kind)
	}
	if len(st.Entries) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(st.Entries))
	}
}
