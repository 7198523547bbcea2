package ast

import "scriptfe/token"

// LayoutKind distinguishes the three forms of aggregate declaration that
// share a single body grammar (spec.md §3).
type LayoutKind int

const (
	LayoutStruct LayoutKind = iota
	LayoutUnion
	LayoutMethodmap
)

// LayoutEntry is implemented by every member a LayoutStatement can hold:
// LayoutField, LayoutMethod, LayoutAccessor.
type LayoutEntry interface {
	Node
}

// LayoutField is a plain data member ("int x;").
type LayoutField struct {
	Base
	Type *TypeSpecifier
	Name token.Atom
}

// MethodBody is either an inline function body or an alias to another
// declared name ("= OtherFunction"), matching spec.md's "method (with
// body or aliased to a name)".
type MethodBody struct {
	Body  *Block      // set when the method has an inline body
	Alias *NameProxy  // set when the method is "= name" aliased instead
}

// LayoutMethod is a methodmap method member.
type LayoutMethod struct {
	Base
	Name      token.Atom
	Signature *FunctionSignature
	Static    bool
	Impl      MethodBody
}

// LayoutAccessor is a methodmap property: a getter and/or setter, each
// independently either an inline method or an alias.
type LayoutAccessor struct {
	Base
	Name token.Atom
	Type *TypeSpecifier

	HasGet, HasSet bool
	Get, Set       MethodBody
}

// LayoutStatement is a struct/union/methodmap declaration.
type LayoutStatement struct {
	Base
	Kind LayoutKind
	Name token.Atom

	// Parent is set only for LayoutMethodmap ("methodmap Foo < Bar").
	Parent *NameProxy
	// Nullable marks a methodmap declared with the __nullable__ tag.
	Nullable bool

	Entries []LayoutEntry
}
