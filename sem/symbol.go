// Package sem holds the value-descriptor data shape the code generator
// consumes: every expression node the type checker hands to codegen
// carries a *sem.Value describing how to materialize it.  This package
// does not check types -- the real type checker is an external
// collaborator (spec.md §1) -- it only defines the shape that
// collaborator is contracted to produce, plus a minimal tagging helper
// tests and the debug driver use to manufacture "checked-looking" trees.
package sem

import "scriptfe/report"

// DefKind mirrors the teacher's depm.Symbol DefKind enumeration, narrowed
// to the two shapes this language's symbols can take.
type DefKind int

const (
	ValueDef DefKind = iota
	TypeDef
)

// ParamKind describes, for one parameter of a callable Symbol, just enough
// of its shape for call-site argument emission to decide how to pass it
// (spec.md §4.2.2 CallExpr's per-argument switch on arg->ident) without
// pulling in the full ast.TypeSpecifier this package can't depend on
// (sem is a leaf package the ast package itself depends on).
type ParamKind struct {
	ByRef    bool
	Variadic bool

	// Const is the parameter's own const-ness, used only by the varargs
	// boxing rule to tell a const-declared "const ..." from a plain "...".
	Const bool
}

// Symbol is a named, positioned declaration that a Value can point back
// to, generalized from the teacher's depm.Symbol.
type Symbol struct {
	Name        string
	DefPosition *report.TextPosition
	DefKind     DefKind

	// Local is true for a stack-frame slot (addressed relative to the
	// frame pointer); false for a global (addressed absolutely).
	Local bool

	// Const is true for a symbol declared const. Consulted only when a
	// const variable is passed to a non-const varargs parameter, which
	// the call-argument boxing rule treats as a plain computed value
	// (rvalue + heap-box) instead of taking its address.
	Const bool

	// Offset is the symbol's storage location: a frame-relative slot
	// index when Local, or a data-segment address otherwise.
	Offset int

	// Params describes a callable symbol's parameter list, nil for a
	// non-callable symbol. Used only by call-argument emission to pick
	// the by-ref/vararg boxing rule for each argument.
	Params []ParamKind

	// ArraySize is the total element count of an ARRAY/REFARRAY symbol's
	// storage, used by IndexExpr's bounds check and CallExpr's hidden
	// return-array reservation. Zero means "unbounded" (runtime check
	// with no fixed max, mirroring the original's dim.array.length == 0
	// case).
	ArraySize int
}
