// Package checkstub is a minimal, deliberately non-checking stand-in for
// the type checker the rest of this repository treats as an external
// collaborator (spec.md §1). It exists only so the dump-asm debug driver
// and this package's own tests can hand the code generator a tree with
// every expression's *sem.Value filled in, without pulling in a real type
// system: every declared name becomes a Symbol with a guessed shape, every
// literal becomes Constexpr, simple constant arithmetic is folded, and
// everything else falls back to the generic Expression ident. It performs
// no type checking, raises no diagnostics, and accepts programs a real
// checker would reject -- it is a test/demo shim, not the type checker.
package checkstub

import (
	"scriptfe/ast"
	"scriptfe/report"
	"scriptfe/sem"
	"scriptfe/token"
)

// cellSize mirrors codegen's machine word size in bytes; the stub uses it
// as the folded value of a sizeof expression.
const cellSize = 4

// scope is a lexical binding frame. Tagger keeps a linked stack of these
// so a local declared inside a block shadows an outer local or a global,
// the same nesting a real symbol table would give the checker.
type scope struct {
	symbols map[token.Atom]*sem.Symbol
	parent  *scope
}

func newScope(parent *scope) *scope {
	return &scope{symbols: make(map[token.Atom]*sem.Symbol), parent: parent}
}

func (s *scope) define(name token.Atom, sym *sem.Symbol) {
	s.symbols[name] = sym
}

func (s *scope) lookup(name token.Atom) *sem.Symbol {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// Tagger walks a parsed tree once, assigning every declared name a
// *sem.Symbol and every expression node a *sem.Value, in the single pass
// a real checker would split across resolution and type inference.
type Tagger struct {
	global     *scope
	cur        *scope
	nextOffset int
}

// NewTagger creates a Tagger with an empty global scope.
func NewTagger() *Tagger {
	g := newScope(nil)
	return &Tagger{global: g, cur: g}
}

func (t *Tagger) pushScope() { t.cur = newScope(t.cur) }
func (t *Tagger) popScope()  { t.cur = t.cur.parent }

// TagTree walks every global declaration in tree, defining a symbol for
// each and tagging every expression reachable from it.
func (t *Tagger) TagTree(tree *ast.ParseTree) {
	for _, g := range tree.Globals {
		t.tagGlobal(g)
	}
}

func (t *Tagger) tagGlobal(s ast.Stmt) {
	switch g := s.(type) {
	case *ast.VariableDeclaration:
		t.defineVarChain(g, false)
	case *ast.FunctionStatement:
		t.tagFunction(g)
	case *ast.EnumStatement:
		for _, entry := range g.Entries {
			if entry.Value != nil {
				t.tagExpr(entry.Value)
			}
		}
	case *ast.TypedefStatement:
		// No expression payload to tag.
	}
}

// defineVarChain walks a VariableDeclaration's Next-linked sibling
// declarators ("int x, y, z;"), defining a symbol for each and tagging its
// initializer if present.
func (t *Tagger) defineVarChain(decl *ast.VariableDeclaration, local bool) {
	for d := decl; d != nil; d = d.Next {
		sym := &sem.Symbol{Name: d.Name.String(), Local: local}
		if local {
			sym.Offset = t.nextOffset
			t.nextOffset++
		}
		if d.Type != nil {
			sym.ArraySize = arraySizeOf(d.Type)
			sym.Const = d.Type.Const
		}
		t.cur.define(d.Name, sym)
		if d.Init != nil {
			t.tagExpr(d.Init)
		}
	}
}

// arraySizeOf guesses a declared array's element count from its leading
// dimension expression when that dimension is a plain integer literal;
// anything else (a computed dimension, an unsized "[]") degrades to the
// "unbounded" sentinel ArraySize==0 already documented on sem.Symbol.
func arraySizeOf(ts *ast.TypeSpecifier) int {
	if len(ts.Dims) == 0 || ts.Dims[0] == nil {
		return 0
	}
	if lit, ok := ts.Dims[0].(*ast.IntegerLiteral); ok {
		return int(lit.Value)
	}
	return 0
}

// tagFunction defines sym (in the enclosing scope, before the body is
// tagged, so a recursive call resolves) then, for a body-carrying
// definition, tags every statement inside a fresh local scope seeded with
// one symbol per parameter.
func (t *Tagger) tagFunction(fn *ast.FunctionStatement) {
	sym := &sem.Symbol{Name: fn.Name.String()}
	if fn.Signature != nil {
		sym.Params = make([]sem.ParamKind, len(fn.Signature.Params))
		for i, p := range fn.Signature.Params {
			if p.Type != nil {
				sym.Params[i] = sem.ParamKind{ByRef: p.Type.ByRef, Variadic: p.Type.Variadic, Const: p.Type.Const}
			}
		}
	}
	t.cur.define(fn.Name, sym)

	if fn.Body == nil {
		return
	}

	t.pushScope()
	savedOffset := t.nextOffset
	t.nextOffset = 0
	if fn.Signature != nil {
		for _, p := range fn.Signature.Params {
			if p.Name == nil || p.Name.Atom.IsZero() {
				continue
			}
			paramSym := &sem.Symbol{Name: p.Name.Atom.String(), Local: true, Offset: t.nextOffset}
			if p.Type != nil {
				paramSym.Const = p.Type.Const
			}
			t.nextOffset++
			t.cur.define(p.Name.Atom, paramSym)
		}
	}
	t.tagBlock(fn.Body)
	t.nextOffset = savedOffset
	t.popScope()
}

func (t *Tagger) tagBlock(b *ast.Block) {
	t.pushScope()
	for _, s := range b.Stmts {
		t.tagStmt(s)
	}
	t.popScope()
}

// tagStmt recurses into every statement shape that can carry an
// expression or a local declaration, registering locals as they're
// encountered the way a single-pass checker would.
func (t *Tagger) tagStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Block:
		t.tagBlock(st)
	case *ast.ExpressionStatement:
		t.tagExpr(st.Expr)
	case *ast.VariableDeclaration:
		t.defineVarChain(st, true)
	case *ast.IfStatement:
		t.tagExpr(st.Cond)
		t.tagBlock(st.IfTrue)
		if st.IfFalse != nil {
			t.tagStmt(st.IfFalse)
		}
	case *ast.WhileStatement:
		t.tagExpr(st.Cond)
		t.tagBlock(st.Body)
	case *ast.ForStatement:
		t.pushScope()
		if st.Init != nil {
			t.tagStmt(st.Init)
		}
		if st.Cond != nil {
			t.tagExpr(st.Cond)
		}
		if st.Update != nil {
			t.tagStmt(st.Update)
		}
		t.tagBlock(st.Body)
		t.popScope()
	case *ast.ReturnStatement:
		if st.Value != nil {
			t.tagExpr(st.Value)
		}
	case *ast.SwitchStatement:
		t.tagExpr(st.Subject)
		for _, c := range st.Cases {
			for _, v := range c.Values {
				t.tagExpr(v)
			}
			t.tagStmt(c.Body)
		}
	case *ast.BreakStatement, *ast.ContinueStatement:
		// No payload.
	}
}

// tagExpr fills in expr's *sem.Value, recursing into its subexpressions
// first so a binary/ternary/call node can inspect its operands' freshly
// tagged Values (e.g. to fold a constant or resolve a callee's Params).
func (t *Tagger) tagExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.NameProxyExpr:
		t.tagName(e)
	case *ast.IntegerLiteral:
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: e.Value})
	case *ast.BooleanLiteral:
		v := int64(0)
		if e.Value {
			v = 1
		}
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: v})
	case *ast.CharLiteral:
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: int64(e.Value)})
	case *ast.FloatLiteral:
		// Floats aren't meaningfully representable as the cell-sized
		// integer Constval carries; the stub tags them constant zero
		// rather than model the float ABI a real checker would.
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: 0})
	case *ast.StringLiteral:
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: 0})
	case *ast.ThisExpression:
		e.SetValue(&sem.Value{Ident: sem.Variable})
	case *ast.ArrayLiteral:
		for _, el := range e.Elems {
			t.tagExpr(el)
		}
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: 0})
	case *ast.StructInitializer:
		for _, f := range e.Fields {
			t.tagExpr(f.Init)
		}
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: 0})
	case *ast.UnaryExpression:
		t.tagUnary(e)
	case *ast.IncDecExpression:
		t.tagExpr(e.Operand)
		e.SetValue(&sem.Value{Ident: sem.Expression})
	case *ast.BinaryExpression:
		t.tagBinary(e)
	case *ast.TernaryExpression:
		t.tagExpr(e.Cond)
		t.tagExpr(e.IfTrue)
		t.tagExpr(e.IfFalse)
		e.SetValue(&sem.Value{Ident: sem.Expression})
	case *ast.Assignment:
		t.tagExpr(e.Lhs)
		t.tagExpr(e.Rhs)
		e.SetValue(&sem.Value{Ident: sem.Expression})
	case *ast.IndexExpression:
		t.tagIndex(e)
	case *ast.FieldExpression:
		t.tagExpr(e.Target)
		e.SetValue(&sem.Value{Ident: sem.Variable, Sym: &sem.Symbol{Name: e.Field.String()}})
	case *ast.CallExpression:
		t.tagCall(e)
	default:
		report.ICE("checkstub: no tagging rule for %T", expr)
	}
}

// tagName resolves a bare identifier against the enclosing scope chain. An
// identifier with no binding (a genuine checker bug in a real compiler)
// degrades here to a freshly synthesized global Variable rather than an
// ICE: this package never rejects a tree, per its own doc comment.
func (t *Tagger) tagName(e *ast.NameProxyExpr) {
	sym := t.cur.lookup(e.Name.Atom)
	if sym == nil {
		sym = &sem.Symbol{Name: e.Name.Atom.String()}
		t.global.define(e.Name.Atom, sym)
	}

	switch {
	case sym.Params != nil:
		e.SetValue(&sem.Value{Ident: sem.Functn, Sym: sym})
	case sym.ArraySize > 0:
		e.SetValue(&sem.Value{Ident: sem.Array, Sym: sym, ArrayRank: 1})
	default:
		e.SetValue(&sem.Value{Ident: sem.Variable, Sym: sym})
	}
}

func (t *Tagger) tagUnary(e *ast.UnaryExpression) {
	t.tagExpr(e.Operand)

	if e.Op == ast.OpSizeof {
		// The real checker folds sizeof entirely at resolution time;
		// codegen is contracted to never see one. The stub has no type
		// information to size against, so it folds to a cell's worth.
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: cellSize})
		return
	}

	operand := e.Operand.ValueInfo()
	if operand != nil && operand.Ident == sem.Constexpr && e.Op != ast.OpLabelCast && e.Op != ast.OpAddrOf {
		e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: foldUnary(e.Op, operand.Constval)})
		return
	}
	e.SetValue(&sem.Value{Ident: sem.Expression})
}

func foldUnary(op ast.OperKind, v int64) int64 {
	switch op {
	case ast.OpNeg:
		return -v
	case ast.OpBitNot:
		return ^v
	case ast.OpNot:
		if v == 0 {
			return 1
		}
		return 0
	default:
		return v
	}
}

func (t *Tagger) tagBinary(e *ast.BinaryExpression) {
	t.tagExpr(e.Left)
	t.tagExpr(e.Right)

	left, right := e.Left.ValueInfo(), e.Right.ValueInfo()
	if left != nil && right != nil && left.Ident == sem.Constexpr && right.Ident == sem.Constexpr {
		if folded, ok := foldBinary(e.Op, left.Constval, right.Constval); ok {
			e.SetValue(&sem.Value{Ident: sem.Constexpr, Constval: folded})
			return
		}
	}
	e.SetValue(&sem.Value{Ident: sem.Expression})
}

// foldBinary constant-folds every operator the stub knows how to fold.
// Division/modulo by zero refuses to fold (ok=false) so a demo program
// doing that gets a real runtime divide instead of a folded Go panic.
func foldBinary(op ast.OperKind, l, r int64) (int64, bool) {
	switch op {
	case ast.OpAdd:
		return l + r, true
	case ast.OpSub:
		return l - r, true
	case ast.OpMul:
		return l * r, true
	case ast.OpDiv:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case ast.OpMod:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case ast.OpBitAnd:
		return l & r, true
	case ast.OpBitOr:
		return l | r, true
	case ast.OpBitXor:
		return l ^ r, true
	case ast.OpShl:
		return l << uint(r), true
	case ast.OpShr:
		return l >> uint(r), true
	case ast.OpUShr:
		return int64(uint64(l) >> uint(r)), true
	case ast.OpEq:
		return boolInt(l == r), true
	case ast.OpNe:
		return boolInt(l != r), true
	case ast.OpLt:
		return boolInt(l < r), true
	case ast.OpLe:
		return boolInt(l <= r), true
	case ast.OpGt:
		return boolInt(l > r), true
	case ast.OpGe:
		return boolInt(l >= r), true
	case ast.OpLogicalAnd:
		return boolInt(l != 0 && r != 0), true
	case ast.OpLogicalOr:
		return boolInt(l != 0 || r != 0), true
	default:
		return 0, false
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (t *Tagger) tagIndex(e *ast.IndexExpression) {
	t.tagExpr(e.Array)
	t.tagExpr(e.Index)

	base := e.Array.ValueInfo()
	val := &sem.Value{Ident: sem.ArrayCell}
	if base != nil {
		val.Sym = base.Sym
	}
	e.SetValue(val)
}

func (t *Tagger) tagCall(e *ast.CallExpression) {
	t.tagExpr(e.Callee)
	for _, arg := range e.Args {
		t.tagExpr(arg)
	}
	// The stub models no return type, so a call is always tagged as a
	// plain scalar expression; emitCall's hidden-array-return path never
	// triggers for a stub-tagged tree.
	e.SetValue(&sem.Value{Ident: sem.Expression})
}
