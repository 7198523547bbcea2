package ast

import (
	"scriptfe/report"
	"scriptfe/token"
)

// ResolverKind tags which of TypeSpecifier's payload fields is populated.
type ResolverKind int

const (
	ResolverNamed        ResolverKind = iota // Name holds an unresolved NameProxy
	ResolverLabeledNamed                     // Name holds a NameProxy written via an old-style label tag
	ResolverBuiltin                          // Builtin holds a token.Kind for void/int/char/float/object/bool
	ResolverFunctionType                     // Signature holds a FunctionSignature
	ResolverImplicitInt                      // no payload; old-style declarator with no type tag at all
)

// TypeSpecifier is a mutable builder during parsing and is never mutated
// again once the declaration it belongs to is fully parsed (spec.md §3).
// The const/by-ref/variadic flags each carry their own position because
// the parser reports errors like "const specified twice" against the
// second occurrence specifically, not the whole specifier.
type TypeSpecifier struct {
	Const, ByRef, Variadic          bool
	ConstPos, ByRefPos, VariadicPos *report.TextPosition

	Resolver ResolverKind

	Name      *NameProxy        // set when Resolver is ResolverNamed/ResolverLabeledNamed
	Builtin   token.Kind        // set when Resolver is ResolverBuiltin
	Signature *FunctionSignature // set when Resolver is ResolverFunctionType

	// Array shape: Rank is the number of dimensions and is set for every
	// array. Dims holds the dimension expressions, with a nil entry for any
	// dimension left unsized (e.g. "x[5][]"), and is non-nil only when at
	// least one size was written; spec.md §3's invariant is
	// Rank == len(Dims) whenever Dims is non-nil.
	Rank int
	Dims []Expr

	// HasPostDims records whether the array dimensions were written after
	// the declarator name (old style, "int x[5]") rather than before it
	// (new style, "int[5] x"). The parser needs this to re-synthesize the
	// right diagnostic and to reject mixing the two forms on one name.
	HasPostDims bool
}

// NameProxy is an unresolved identifier reference. The type checker (out of
// scope for this repository) fills in a symbol during resolution; the
// parser only ever produces the bare name and position.
type NameProxy struct {
	Base

	Atom token.Atom
}

// Param is one parameter of a FunctionSignature.
type Param struct {
	Name *NameProxy // nil for an unnamed parameter in a bare function-type
	Type *TypeSpecifier

	// Default is the parameter's default-value expression ("int x = 5"),
	// nil if the parameter has none. The parser fills it in; codegen does
	// not read it, and this AST has no DefaultArgExpr node.
	Default Expr
}

// FunctionSignature describes a function-type type specifier (e.g. a
// "function int(int, const char[])" parameter type) as well as the
// signature portion of a FunctionStatement.
type FunctionSignature struct {
	Params   []*Param
	Return   *TypeSpecifier
	Variadic bool
}
