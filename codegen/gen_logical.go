package codegen

import (
	"scriptfe/ast"
	"scriptfe/emit"
)

// This AST represents "&&"/"||" as an ordinary BinaryExpression with
// Op == OpLogicalAnd/OpLogicalOr rather than a dedicated LogicalExpr node
// (there is no type checker in this repo to have picked a different
// representation); isLogicalOp in generator.go is what routes such a node
// here instead of into emitBinary/emitInner.

// flattenLogical collects a left-leaning run of same-operator logical
// BinaryExpressions into left-to-right operand order, generalizing
// flattenChain to operands that need not themselves be BinaryExpressions.
// Ported from LogicalExpr::FlattenLogical.
func flattenLogical(op ast.OperKind, root *ast.BinaryExpression) []ast.Expr {
	var out []ast.Expr
	var walk func(expr ast.Expr)
	walk = func(expr ast.Expr) {
		if b, ok := expr.(*ast.BinaryExpression); ok && b.Op == op {
			walk(b.Left)
			out = append(out, b.Right)
			return
		}
		out = append(out, expr)
	}
	walk(root)
	return out
}

// emitLogicalTest is ported from LogicalExpr::EmitTest: every operand but
// the last is tested for the condition that would short-circuit the
// whole chain (false for "&&", true for "||"), jumping straight past the
// remaining operands to fallthrough/taken accordingly; the last operand
// is tested normally against the caller's jumpOnTrue/taken/fallthrough.
func (g *Generator) emitLogicalTest(root *ast.BinaryExpression, jumpOnTrue bool, taken, fallthroughLabel emit.LabelID) {
	operands := flattenLogical(root.Op, root)
	isOr := root.Op == ast.OpLogicalOr

	for i := 0; i < len(operands)-1; i++ {
		operand := operands[i]
		if isOr {
			if jumpOnTrue {
				g.EmitTest(operand, true, taken, fallthroughLabel)
			} else {
				g.EmitTest(operand, true, fallthroughLabel, taken)
			}
		} else {
			if jumpOnTrue {
				g.EmitTest(operand, false, fallthroughLabel, taken)
			} else {
				g.EmitTest(operand, false, taken, fallthroughLabel)
			}
		}
	}

	g.EmitTest(operands[len(operands)-1], jumpOnTrue, taken, fallthroughLabel)
}

// emitLogicalValue is ported from LogicalExpr::DoEmit: when a logical
// expression is used for its boolean value rather than to drive a branch
// (e.g. "bool b = a && c;"), it still goes through EmitTest against a
// taken/fallthrough pair, then materializes 1 or 0 into PRI depending on
// which label was reached.
func (g *Generator) emitLogicalValue(e *ast.BinaryExpression) {
	done := g.em.GetLabel()
	taken := g.em.GetLabel()
	fallthroughLabel := g.em.GetLabel()

	g.EmitTest(e, true, taken, fallthroughLabel)

	g.em.SetLabel(fallthroughLabel)
	g.em.LdConst(0, emit.PRI)
	g.em.JumpLabel(done)

	g.em.SetLabel(taken)
	g.em.LdConst(1, emit.PRI)

	g.em.SetLabel(done)
}
