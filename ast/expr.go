package ast

import (
	"scriptfe/report"
	"scriptfe/sem"
	"scriptfe/token"
)

// Expr is implemented by every expression node. Dispatch is by type switch
// (`switch v := expr.(type) { case *ast.BinaryExpr: ... }`), the same
// pattern the teacher's ast.Expr/generate.genExpr uses, rather than
// virtual methods -- Go has no sum types, so a type switch over a closed
// set of pointer types is the idiom.
type Expr interface {
	Node
	// ValueInfo returns the descriptor the type checker attached to this
	// expression.  Nil until the checker has run.  (Named ValueInfo rather
	// than Value because several concrete Expr types -- the literal nodes
	// -- declare their own "Value" data field, which would otherwise hide
	// this promoted method.)
	ValueInfo() *sem.Value
	SetValue(*sem.Value)
}

// ExprBase is the embeddable struct every concrete Expr carries.
type ExprBase struct {
	Base
	val *sem.Value
}

func NewExprBase(pos *report.TextPosition) ExprBase {
	return ExprBase{Base: NewBase(pos)}
}

func (eb *ExprBase) ValueInfo() *sem.Value { return eb.val }
func (eb *ExprBase) SetValue(v *sem.Value) { eb.val = v }

// OperKind enumerates the operator codes BinaryExpr/UnaryExpr/Assignment
// carry, kept distinct from token.Kind so codegen can switch on exactly
// the operators that matter for emission without pattern-matching the
// full lexical token set.
type OperKind int

const (
	OpAdd OperKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpUShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLogicalAnd
	OpLogicalOr

	OpNeg
	OpNot
	OpBitNot
	OpSizeof
	OpLabelCast
	OpAddrOf

	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
)

// IsRelational reports whether op is one of the four relational
// comparison operators, the only operators eligible for chaining.
func (op OperKind) IsRelational() bool {
	switch op {
	case OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Primary expressions

// NameProxyExpr wraps a NameProxy as a primary expression (spec.md §3
// lists NameProxy itself as an expression variant; NameProxy the type is
// defined in type.go since TypeSpecifier also embeds it unwrapped).
type NameProxyExpr struct {
	ExprBase
	Name *NameProxy
}

type IntegerLiteral struct {
	ExprBase
	Value int64
	Hex   bool
}

type FloatLiteral struct {
	ExprBase
	Value float64
}

type CharLiteral struct {
	ExprBase
	Value rune
}

type BooleanLiteral struct {
	ExprBase
	Value bool
}

type StringLiteral struct {
	ExprBase
	Value string
}

// ThisExpression is the receiver reference inside a methodmap method body.
type ThisExpression struct {
	ExprBase
}

// ArrayLiteral is a brace-enclosed list of element initializers, "{1, 2, 3}".
type ArrayLiteral struct {
	ExprBase
	Elems []Expr
}

// FieldInit is one "name = expr" slot of a StructInitializer.
type FieldInit struct {
	Name    token.Atom
	NamePos *report.TextPosition
	Init    Expr
}

// StructInitializer is a brace-enclosed field-name-keyed initializer list.
type StructInitializer struct {
	ExprBase
	Type   *NameProxy
	Fields []FieldInit
}

// -----------------------------------------------------------------------------
// Postfix expressions

type CallExpression struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

type IndexExpression struct {
	ExprBase
	Array Expr
	Index Expr
}

// FieldExpression is "expr.field", used for struct field access and
// methodmap method/property access.
type FieldExpression struct {
	ExprBase
	Target  Expr
	Field   token.Atom
	FieldAt *report.TextPosition
}

// -----------------------------------------------------------------------------
// Unary / increment-decrement

// UnaryExpression covers "!x", "~x", "-x", "&x", "sizeof(x)", and the
// old-style label-cast form "tag:x".
type UnaryExpression struct {
	ExprBase
	Op      OperKind
	Operand Expr

	// Label is populated only when Op == OpLabelCast: the tag name applied
	// by the cast, e.g. the "Float" in "Float:x".
	Label token.Atom
}

// IncDecExpression is "++x"/"--x" (Op == OpPreInc/OpPreDec) or "x++"/"x--"
// (Op == OpPostInc/OpPostDec).
type IncDecExpression struct {
	ExprBase
	Op      OperKind
	Operand Expr
}

// -----------------------------------------------------------------------------
// Binary / ternary / assignment

// BinaryExpression represents every left-associative binary operator
// including chained relational comparisons, which are represented as a
// left-leaning tree of relational BinaryExpressions -- there is no
// separate "chain" node; the code generator recognizes a chain purely by
// walking Left while Op.IsRelational() holds (spec.md §4.2's
// EmitChainedCompare/FlattenChainedCompares).
type BinaryExpression struct {
	ExprBase
	Op          OperKind
	Left, Right Expr
}

// TernaryExpression is "cond ? ifTrue : ifFalse".
type TernaryExpression struct {
	ExprBase
	Cond, IfTrue, IfFalse Expr
}

// AssignOp enumerates the plain "=" and every compound-assignment form.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignAnd
	AssignOr
	AssignXor
	AssignShl
	AssignShr
	AssignUShr
)

// Assignment is "lhs = rhs" or "lhs OP= rhs". Lhs must be an l-value by
// construction; the checker is contracted to reject anything else before
// codegen sees the tree.
type Assignment struct {
	ExprBase
	Op       AssignOp
	Lhs, Rhs Expr
}
