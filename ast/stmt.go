package ast

import (
	"scriptfe/report"
	"scriptfe/token"
)

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
}

// Block is a brace-enclosed list of statements.
type Block struct {
	Base
	Stmts []Stmt
}

// ExpressionStatement is a bare expression used as a statement (a call, an
// assignment, an increment/decrement).
type ExpressionStatement struct {
	Base
	Expr Expr
}

// IfStatement is lowered the way spec.md §4.1.5 describes: an "elseif"
// chain becomes a right-leaning tree of IfStatement.IfFalse nodes, each
// holding either a *Block or another *IfStatement.
type IfStatement struct {
	Base
	Cond    Expr
	IfTrue  *Block
	IfFalse Stmt // nil, *Block, or *IfStatement
}

// LoopKind distinguishes "while" from "do ... while".
type LoopKind int

const (
	LoopWhile LoopKind = iota
	LoopDoWhile
)

// WhileStatement covers both loop kinds; for LoopDoWhile the condition is
// tested after Body runs once.
type WhileStatement struct {
	Base
	Kind LoopKind
	Cond Expr
	Body *Block
}

// ForStatement is a C-style for loop. Init is either a *VariableDeclaration
// (when the header starts with "new" or a new-type keyword) or an
// *ExpressionStatement; either may be nil.
type ForStatement struct {
	Base
	Init   Stmt
	Cond   Expr
	Update Stmt
	Body   *Block
}

type ReturnStatement struct {
	Base
	Value Expr // nil for a bare "return;"
}

type BreakStatement struct {
	Base
}

type ContinueStatement struct {
	Base
}

// CaseLabel is one "case expr, expr, ...:" or "default:" label group of a
// SwitchStatement.
type CaseLabel struct {
	Values    []Expr // empty for the default case
	IsDefault bool
	Body      Stmt // exactly one statement, per spec.md's single-statement-per-case rule
}

type SwitchStatement struct {
	Base
	Subject Expr
	Cases   []*CaseLabel
}

// EnumEntry is one "name" or "name = expr" member of an EnumStatement.
type EnumEntry struct {
	Name    token.Atom
	NameAt  *report.TextPosition
	Value   Expr // nil when the member takes the implicit next value
	EntryAt *report.TextPosition
}

type EnumStatement struct {
	Base
	Name    token.Atom // empty for an anonymous enum
	Entries []EnumEntry
}

// VariableDeclaration is one declarator; sibling declarators written in
// the same statement ("int x, y, z;") are singly linked via Next, matching
// spec.md §3's "singly linked by next to siblings in the same declarator".
type VariableDeclaration struct {
	Base
	Type  *TypeSpecifier
	Name  token.Atom
	Init  Expr // nil if uninitialized
	Const bool

	// Public/Stock/Static mirror the same-named keywords on a global
	// declaration; all three are always false for a local.
	Public, Stock, Static bool

	Next *VariableDeclaration
}

// FunctionStatement is a function/method definition or a native/forward
// declaration (Body is nil for the latter two).
type FunctionStatement struct {
	Base
	Name      token.Atom
	Signature *FunctionSignature
	Body      *Block

	Public, Stock, Static, Native, Forward bool
}

// TypedefStatement is "typedef Name = function-type-specifier;".
type TypedefStatement struct {
	Base
	Name token.Atom
	Type *TypeSpecifier
}
