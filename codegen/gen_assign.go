package codegen

import (
	"scriptfe/ast"
	"scriptfe/emit"
	"scriptfe/report"
	"scriptfe/sem"
)

// emitAssignment is ported from BinaryExpr::DoEmit's IsAssignOp branch.
// Unlike the original, where "=" and "OP=" share one node type and the
// plain case is just "oper_ == nullptr", this AST keeps plain and
// compound assignment as the single Assignment node distinguished by Op,
// so the two paths are written out explicitly below rather than folded
// into emitInner's generic "hasOp" dance -- emitInner exists for a
// genuine sub-expression pair, not for a compound-assign's read-combine-
// store sequence, which has its own address-preservation shape.
func (g *Generator) emitAssignment(e *ast.Assignment) {
	leftVal := requireValue(e.Lhs)
	g.Emit(e.Lhs)

	isCompound := e.Op != ast.AssignPlain
	savedReceiver := false

	switch leftVal.Ident {
	case sem.ArrayCell, sem.ArrayChar:
		// The address Emit(e.Lhs) just computed into PRI must survive
		// across the right-hand side's emission.
		g.em.PushReg(emit.PRI)
		savedReceiver = true
		if isCompound {
			g.em.Rvalue(leftVal)
		}
	case sem.Accessor:
		g.em.PushReg(emit.PRI)
		savedReceiver = true
		if isCompound {
			g.em.InvokeGetter(leftVal.Acc)
		}
	default:
		// Variable/Reference: Emit(e.Lhs) left nothing in PRI to save;
		// a compound assignment's current value comes from Rvalue.
		if isCompound {
			g.em.Rvalue(leftVal)
		}
	}

	if !isCompound && (leftVal.Ident == sem.Array || leftVal.Ident == sem.RefArray) &&
		leftVal.Sym != nil && leftVal.Sym.ArraySize > 0 {
		g.em.PushReg(emit.PRI)
		g.EmitRvalue(e.Rhs)
		g.em.PopReg(emit.ALT)
		g.em.MemCopy(leftVal.Sym.ArraySize * cellSize)
		return
	}

	if isCompound {
		g.em.PushReg(emit.PRI) // save the current value
		g.EmitRvalue(e.Rhs)
		g.em.PopReg(emit.ALT) // ALT = current value, PRI = rhs

		op, ok := compoundAssignOpFor(e.Op)
		if !ok {
			report.ICE("codegen: assignment operator %v has no emission rule", e.Op)
		}
		val := requireValue(e)
		if val.UserOp != nil {
			g.emitUserOp(val.UserOp, 2)
		} else {
			g.em.BinaryOp(op)
		}
	} else {
		g.EmitRvalue(e.Rhs)
	}

	if leftVal.Ident == sem.Accessor {
		g.em.PopReg(emit.ALT)
		g.em.InvokeSetter(leftVal.Acc, false)
		return
	}

	if savedReceiver {
		g.em.PopReg(emit.ALT)
	}
	g.em.Store(leftVal)
}
