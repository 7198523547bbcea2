package ast

// ParseTree is the root of a parsed translation unit: a flat list of
// global statements (function/variable/layout/typedef declarations),
// exactly spec.md §4.1's "ParseTree (list of global statements)".
type ParseTree struct {
	Globals []Stmt
	Arena   *Arena
}
