package codegen

import (
	"scriptfe/ast"
	"scriptfe/emit"
	"scriptfe/report"
	"scriptfe/sem"
)

// binOpFor maps a surface operator to the narrower machine opcode
// BinaryOp expects, failing for the operators that never reach this
// mapping (logical, unary, assignment, and the comparison operators,
// which binOpFor is still asked for from inside a chained-compare step so
// they stay in the table).
func binOpFor(op ast.OperKind) (emit.BinOp, bool) {
	switch op {
	case ast.OpAdd:
		return emit.OpAdd, true
	case ast.OpSub:
		return emit.OpSub, true
	case ast.OpMul:
		return emit.OpMul, true
	case ast.OpDiv:
		return emit.OpDiv, true
	case ast.OpMod:
		return emit.OpMod, true
	case ast.OpBitAnd:
		return emit.OpAnd, true
	case ast.OpBitOr:
		return emit.OpOr, true
	case ast.OpBitXor:
		return emit.OpXor, true
	case ast.OpShl:
		return emit.OpShl, true
	case ast.OpShr:
		return emit.OpShr, true
	case ast.OpUShr:
		return emit.OpUShr, true
	case ast.OpEq:
		return emit.OpEq, true
	case ast.OpNe:
		return emit.OpNe, true
	case ast.OpLt:
		return emit.OpLt, true
	case ast.OpLe:
		return emit.OpLe, true
	case ast.OpGt:
		return emit.OpGt, true
	case ast.OpGe:
		return emit.OpGe, true
	default:
		return 0, false
	}
}

// compoundAssignOpFor maps a compound-assignment form to the opcode its
// implicit binary combine uses, e.g. AssignAdd's "+=" combines with OpAdd
// before storing.
func compoundAssignOpFor(op ast.AssignOp) (emit.BinOp, bool) {
	switch op {
	case ast.AssignAdd:
		return emit.OpAdd, true
	case ast.AssignSub:
		return emit.OpSub, true
	case ast.AssignMul:
		return emit.OpMul, true
	case ast.AssignDiv:
		return emit.OpDiv, true
	case ast.AssignMod:
		return emit.OpMod, true
	case ast.AssignAnd:
		return emit.OpAnd, true
	case ast.AssignOr:
		return emit.OpOr, true
	case ast.AssignXor:
		return emit.OpXor, true
	case ast.AssignShl:
		return emit.OpShl, true
	case ast.AssignShr:
		return emit.OpShr, true
	case ast.AssignUShr:
		return emit.OpUShr, true
	default:
		return 0, false
	}
}

// commutative reports whether swapping op's operands changes nothing,
// letting emitInner fold a constant right operand straight into ALT
// instead of routing it through PRI and a push/pop pair.
func commutative(op emit.BinOp) bool {
	switch op {
	case emit.OpAdd, emit.OpMul, emit.OpAnd, emit.OpOr, emit.OpXor, emit.OpEq, emit.OpNe:
		return true
	default:
		return false
	}
}

// emitBinary is ported from BinaryExpr::DoEmit. A relational operator
// always routes through the chained-compare path even for a lone
// comparison: EmitChainedCompare degenerates correctly to the plain
// two-operand case when the chain has only one link.
func (g *Generator) emitBinary(e *ast.BinaryExpression) {
	if e.Op.IsRelational() {
		g.emitChainedCompare(e)
		return
	}

	op, ok := binOpFor(e.Op)
	if !ok {
		report.ICE("codegen: binary operator %v has no emission rule", e.Op)
	}
	val := requireValue(e)
	if requireValue(e.Left).Ident != sem.Constexpr {
		g.EmitRvalue(e.Left)
	}
	g.emitInner(e.Left, e.Right, true, op, val.UserOp)
}

// flattenChain collects a left-leaning run of relational BinaryExpressions
// rooted at root into left-to-right source order: "a < b < c" parses as
// BinaryExpression(Op: <, Left: BinaryExpression(Op: <, Left: a, Right: b),
// Right: c), and flattenChain returns [a<b, b<c] in that order. Ported
// from FlattenChainedCompares.
func flattenChain(root *ast.BinaryExpression) []*ast.BinaryExpression {
	nodes := []*ast.BinaryExpression{root}
	cur := root
	for {
		left, ok := cur.Left.(*ast.BinaryExpression)
		if !ok || !left.Op.IsRelational() {
			break
		}
		nodes = append(nodes, left)
		cur = left
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

// emitChainedCompare is ported from BinaryExpr::EmitChainedCompare: the
// leftmost operand is emitted once, then each comparison in the chain
// emits its right operand and combines, wrapped in relop_prefix/suffix
// for every link after the first so the assembler can fold the partial
// results into a single boolean. A link's right operand ends up resident
// in PRI once emitInner returns (see emitInner), which is exactly the
// next link's left operand -- so only the very first left needs an
// explicit emit here; every later one is already sitting where it needs
// to be.
func (g *Generator) emitChainedCompare(root *ast.BinaryExpression) {
	chain := flattenChain(root)

	left := chain[0].Left
	if requireValue(left).Ident != sem.Constexpr {
		g.EmitRvalue(left)
	}

	for i, node := range chain {
		op, ok := binOpFor(node.Op)
		if !ok {
			report.ICE("codegen: chained comparison operator %v has no emission rule", node.Op)
		}
		if i > 0 {
			g.em.RelopPrefix()
		}
		val := requireValue(node)
		g.emitInner(left, node.Right, true, op, val.UserOp)
		if i > 0 {
			g.em.RelopSuffix()
		}
		left = node.Right
	}
}

// emitInner is ported from BinaryExpr::EmitInner: it establishes the
// register convention the rest of codegen relies on -- the left operand
// ends up in ALT, the right in PRI -- then, if hasOp, combines them with
// either the builtin opcode or a user-operator override.
//
// emitInner never emits left itself -- that's the caller's job, exactly
// once per chain (emitBinary for a lone operator, emitChainedCompare's
// pre-loop emit for a chain), matching EmitInner's own callers in the
// original. By the time emitInner runs, a non-constexpr left is assumed
// already resident in PRI; its value is then only saved across the
// register boundary (pushed to the stack and popped back into ALT) when
// that's actually necessary, and a constant right operand can in some
// cases skip the push/pop entirely by loading straight into ALT.
func (g *Generator) emitInner(left, right ast.Expr, hasOp bool, op emit.BinOp, userOp *sem.Symbol) {
	leftVal := requireValue(left)
	rightVal := requireValue(right)

	if leftVal.Ident == sem.Constexpr {
		if rightVal.Ident == sem.Constexpr {
			g.em.LdConst(rightVal.Constval, emit.PRI)
		} else {
			g.EmitRvalue(right)
		}
		g.em.LdConst(leftVal.Constval, emit.ALT)
	} else {
		mustSaveLeft := hasOp || !leftVal.CanRematerialize()

		switch {
		case rightVal.Ident == sem.Constexpr && commutative(op) && hasOp:
			g.em.LdConst(rightVal.Constval, emit.ALT)
		case rightVal.Ident == sem.Constexpr:
			if mustSaveLeft {
				g.em.PushReg(emit.PRI)
			}
			g.em.LdConst(rightVal.Constval, emit.PRI)
			if mustSaveLeft {
				g.em.PopReg(emit.ALT)
			}
		default:
			if mustSaveLeft {
				g.em.PushReg(emit.PRI)
			}
			g.EmitRvalue(right)
			if mustSaveLeft {
				g.em.PopReg(emit.ALT)
			}
		}
	}

	if !hasOp {
		return
	}
	if userOp != nil {
		g.emitUserOp(userOp, 2)
		return
	}
	g.em.BinaryOp(op)
}
