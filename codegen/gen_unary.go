package codegen

import (
	"scriptfe/ast"
	"scriptfe/emit"
	"scriptfe/report"
	"scriptfe/sem"
)

// emitUnary is ported from UnaryExpr::DoEmit. The operand is always
// emitted first regardless of operator, then the operator applies to
// whatever ended up in PRI -- except OpLabelCast, which is transparent
// (a tag annotation with no runtime effect) and OpSizeof, which is
// always folded to a constant by the checker and so never reaches here.
func (g *Generator) emitUnary(e *ast.UnaryExpression) {
	if e.Op == ast.OpAddrOf {
		g.Emit(e.Operand)
	} else {
		g.EmitRvalue(e.Operand)
	}

	if e.Op == ast.OpLabelCast {
		return
	}

	val := requireValue(e)
	if e.Op == ast.OpSizeof {
		report.ICE("codegen: sizeof reached doEmit; it should have been folded to a constant")
	}

	if val.UserOp != nil {
		g.emitUserOp(val.UserOp, 1)
		return
	}

	switch e.Op {
	case ast.OpBitNot:
		g.em.Invert()
	case ast.OpNot:
		g.em.Lneg()
	case ast.OpNeg:
		g.em.Neg()
	default:
		report.ICE("codegen: unary operator %v has no emission rule", e.Op)
	}
}

// emitIncDec is ported from IncDecExpr::DoEmit, which splits four ways on
// pre/post and plain-lvalue/accessor. A plain l-value's SymbolExpr::Emit
// leaves nothing in PRI (Variable/Reference) or its address (ArrayCell/
// ArrayChar, from a prior IndexExpr); an accessor l-value instead carries
// its receiver object in PRI and must round-trip through InvokeGetter/
// InvokeSetter.
func (g *Generator) emitIncDec(e *ast.IncDecExpression) {
	g.Emit(e.Operand)

	operandVal := requireValue(e.Operand)
	ownVal := requireValue(e)
	isInc := e.Op == ast.OpPreInc || e.Op == ast.OpPostInc
	isPre := e.Op == ast.OpPreInc || e.Op == ast.OpPreDec

	step := func() {
		if ownVal.UserOp != nil {
			g.emitUserOp(ownVal.UserOp, 1)
		} else if isInc {
			g.em.IncPri()
		} else {
			g.em.DecPri()
		}
	}
	stepMem := func() {
		if ownVal.UserOp != nil {
			g.emitUserOp(ownVal.UserOp, 1)
		} else if isInc {
			g.em.Inc(operandVal)
		} else {
			g.em.Dec(operandVal)
		}
	}

	if operandVal.Ident != sem.Accessor {
		if isPre {
			stepMem()
			g.em.Rvalue(operandVal)
			return
		}

		saveResult := operandVal.Ident == sem.ArrayCell || operandVal.Ident == sem.ArrayChar
		if saveResult {
			g.em.PushReg(emit.PRI)
		}
		g.em.Rvalue(operandVal)
		if saveResult {
			g.em.Swap1()
		}
		stepMem()
		if saveResult {
			g.em.PopReg(emit.PRI)
		}
		return
	}

	if isPre {
		g.em.PushReg(emit.PRI)
		g.em.InvokeGetter(operandVal.Acc)
		step()
		g.em.PopReg(emit.ALT)
		g.em.InvokeSetter(operandVal.Acc, true)
		return
	}

	g.em.PushReg(emit.PRI)
	g.em.InvokeGetter(operandVal.Acc)
	g.em.MoveAlt()
	g.em.Swap1()
	g.em.PushReg(emit.PRI)
	g.em.MoveTo1()
	step()
	g.em.PopReg(emit.ALT)
	g.em.InvokeSetter(operandVal.Acc, false)
	g.em.PopReg(emit.PRI)
}
