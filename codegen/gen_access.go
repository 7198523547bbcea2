package codegen

import (
	"scriptfe/ast"
	"scriptfe/emit"
	"scriptfe/report"
	"scriptfe/sem"
)

// emitIndex is ported from IndexExpr::DoEmit. A constant index folds to a
// compile-time byte offset added directly to the base address; a dynamic
// index is bounds-checked against the array's declared size (FfBounds)
// before being converted from a cell index to a byte offset (Cell2Addr).
//
// This repo's Symbol carries no type tag, so the original's distinction
// between a normal cell array and a packed (magic) string/char array is
// not modeled here -- that distinction belongs to the type checker, an
// external collaborator this package never sees the internals of -- every
// index is treated as an ordinary cell array index.
func (g *Generator) emitIndex(e *ast.IndexExpression) {
	g.Emit(e.Array)

	baseVal := requireValue(e.Array)
	if baseVal.Sym == nil {
		report.ICE("codegen: indexed expression has no backing symbol")
	}

	idxVal := requireValue(e.Index)
	if idxVal.Ident == sem.Constexpr {
		if idxVal.Constval != 0 {
			g.em.LdConst(idxVal.Constval*cellSize, emit.ALT)
			g.em.ObAdd()
		}
	} else {
		g.em.PushReg(emit.PRI)
		g.EmitRvalue(e.Index)
		if baseVal.Sym.ArraySize > 0 {
			g.em.FfBounds(int64(baseVal.Sym.ArraySize - 1))
		} else {
			g.em.FfBounds(-1)
		}
		g.em.Cell2Addr()
		g.em.PopReg(emit.ALT)
		g.em.ObAdd()
	}

	if baseVal.ArrayRank > 1 {
		cellVal := *baseVal
		cellVal.Ident = sem.ArrayCell
		g.em.PushReg(emit.PRI)
		g.em.Rvalue(&cellVal)
		g.em.PopReg(emit.ALT)
		g.em.ObAdd()
	}
}

// emitField is ported from FieldExpr::DoEmit: the base is emitted for its
// address/object, then a field with a nonzero storage offset adds that
// offset -- the field access itself never loads, leaving that to a later
// Rvalue/Store call the way SymbolExpr does for a bare variable.
func (g *Generator) emitField(e *ast.FieldExpression) {
	g.Emit(e.Target)

	val := requireValue(e)
	if val.Sym != nil && val.Sym.Offset != 0 {
		g.em.LdConst(int64(val.Sym.Offset)*cellSize, emit.ALT)
		g.em.ObAdd()
	}
}

// emitTernary is ported from TernaryExpr::DoEmit. Each branch runs inside
// its own heap scope (spec.md §4.2.3) so that whichever branch actually
// executes, any dynamic allocation it made is the only one charged
// against the enclosing scope; if both branches allocated and the whole
// expression is itself a refarray, the two allocations are reconciled
// with a dynamic markheap so cleanup accounts for the larger of the two.
func (g *Generator) emitTernary(e *ast.TernaryExpression) {
	g.EmitRvalue(e.Cond)

	falseLabel := g.em.GetLabel()
	doneLabel := g.em.GetLabel()

	g.em.PushHeapList()
	g.em.JmpEq0(falseLabel)

	g.EmitRvalue(e.IfTrue)
	trueHeap := g.em.PopStaticHeapList()
	if trueHeap != 0 {
		g.em.SetHeapSave(trueHeap * cellSize)
	}
	g.em.PushHeapList()
	g.em.JumpLabel(doneLabel)

	g.em.SetLabel(falseLabel)
	g.EmitRvalue(e.IfFalse)
	falseHeap := g.em.PopStaticHeapList()
	if falseHeap != 0 {
		g.em.SetHeapSave(falseHeap * cellSize)
	}

	g.em.SetLabel(doneLabel)

	val := requireValue(e)
	if val.Ident == sem.RefArray && trueHeap != 0 && falseHeap != 0 {
		g.em.MarkHeap(emit.MemuseDynamic, 0)
	}
}
