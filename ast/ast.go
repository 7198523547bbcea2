// Package ast defines the tagged node hierarchy produced by the parser:
// type specifiers, declarations, expressions, statements, and layout
// entries.  Every node embeds Base, which carries its source span, and
// dispatch is by type switch rather than virtual methods -- the same shape
// the teacher uses for its own AST (ast.ASTNode / ast.ASTBase).
package ast

import "scriptfe/report"

// Node is the interface every AST node satisfies.
type Node interface {
	Position() *report.TextPosition
}

// Base is the embeddable struct every concrete node carries for its span.
type Base struct {
	Pos *report.TextPosition
}

// NewBase creates a Base over the given position.
func NewBase(pos *report.TextPosition) Base {
	return Base{Pos: pos}
}

// NewBaseOver creates a Base spanning from start to end.
func NewBaseOver(start, end *report.TextPosition) Base {
	return Base{Pos: report.TextPositionFromRange(start, end)}
}

func (b Base) Position() *report.TextPosition {
	return b.Pos
}

// Arena is a node counter associated with a parse.  Nodes themselves are
// plain Go composite literals built by the parser, not allocated through
// the Arena, and the garbage collector reclaims them once the ParseTree is
// unreachable.  This loosely mirrors spec.md §3's "Lifecycle" note and the
// teacher's pattern of rooting the whole tree in one owned slice
// (chFile.Defs).
//
// Arena holds only a count; it does not own or store any node.
type Arena struct {
	count int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// track records one more node allocation.  No code in this repository
// calls it, so Count reports 0 for every parse.
func (a *Arena) track() {
	a.count++
}

// Count returns the number of nodes allocated from this arena so far.
func (a *Arena) Count() int {
	return a.count
}
