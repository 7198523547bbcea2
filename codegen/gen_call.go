package codegen

import (
	"scriptfe/ast"
	"scriptfe/emit"
	"scriptfe/sem"
)

// paramKindAt returns the shape of the i-th call argument's parameter,
// falling back to the last parameter when i runs past a variadic
// signature's fixed prefix, and to the zero ParamKind (plain by-value)
// for a callee this package has no parameter data for -- a symbol-less
// callee value (the checker resolved the call through something other
// than a named function symbol) degrades to the common case rather than
// an ICE, since pass-by-value is always a safe default.
func paramKindAt(params []sem.ParamKind, i int) sem.ParamKind {
	if i < len(params) {
		return params[i]
	}
	if n := len(params); n > 0 && params[n-1].Variadic {
		return params[n-1]
	}
	return sem.ParamKind{}
}

// emitVarargBox is ported from the arg->ident switch inside CallExpr::
// DoEmit's variadic-argument case: a variable/reference argument is
// normally passed by address so the callee can write back through it,
// while a computed value (a constant or general expression) is boxed
// onto the heap with SetHeapPri so the callee still sees a cell address.
//
// The one exception is a const variable handed to a non-const "...": the
// callee could write through the address and violate the variable's
// const-ness, so it's treated as a plain computed value instead -- rvalue
// it and box the result, the same as any other non-addressable vararg.
func (g *Generator) emitVarargBox(val *sem.Value, paramConst bool) {
	switch val.Ident {
	case sem.Variable, sem.Reference:
		if val.Sym != nil {
			if val.Sym.Const && !paramConst {
				g.em.Rvalue(val)
				g.em.SetHeapPri()
			} else {
				g.em.Address(val.Sym, emit.PRI)
			}
			g.em.MarkUsage(val.Sym, true)
		}
	default:
		g.em.SetHeapPri()
	}
}

// emitCall is ported from CallExpr::DoEmit. A callee returning an array
// gets its return slot reserved on the heap before any argument is
// evaluated (ModHeap/MarkHeap), arguments are pushed right-to-left inside
// their own heap scope, and the callee is finally invoked with FfCall --
// the same primitive emitUserOp uses to realize an operator override,
// since both are "call this symbol with this many arguments on the
// stack".
func (g *Generator) emitCall(e *ast.CallExpression) {
	calleeVal := requireValue(e.Callee)
	resultVal := requireValue(e)

	returnsArray := resultVal.Ident == sem.RefArray && calleeVal.Sym != nil
	if returnsArray {
		retSize := calleeVal.Sym.ArraySize * cellSize
		g.em.ModHeap(retSize)
		g.em.PushReg(emit.ALT)
		g.em.MarkHeap(emit.MemuseStatic, calleeVal.Sym.ArraySize)
	}

	g.em.PushHeapList()

	var params []sem.ParamKind
	if calleeVal.Sym != nil {
		params = calleeVal.Sym.Params
	}

	for i := len(e.Args) - 1; i >= 0; i-- {
		arg := e.Args[i]
		param := paramKindAt(params, i)

		// A by-ref or variadic argument is addressed, not loaded: Emit
		// leaves its descriptor (or, for a bare variable, nothing) in
		// PRI, and the boxing logic below turns that into an address
		// itself. Only a plain by-value argument needs its actual value
		// loaded first.
		if param.ByRef || param.Variadic {
			g.Emit(arg)
		} else {
			g.EmitRvalue(arg)
		}
		argVal := requireValue(arg)

		switch {
		case param.Variadic:
			g.emitVarargBox(argVal, param.Const)
		case param.ByRef:
			if argVal.Sym != nil {
				g.em.Address(argVal.Sym, emit.PRI)
				g.em.MarkUsage(argVal.Sym, true)
			}
		default:
			// Pass-by-value: the argument's computed value is already in
			// PRI from EmitRvalue(arg) above.
		}

		g.em.PushReg(emit.PRI)
		g.em.MarkExpr()
	}

	g.em.FfCall(calleeVal.Sym, len(e.Args))

	if returnsArray {
		g.em.PopReg(emit.PRI)
	}

	g.em.PopHeapList(true)
}
