package ast

// Visitor is implemented by consumers that need to walk a statement tree
// without writing their own type switch, mirroring the teacher's
// AstVisitor/AstPrinter split (§9 "sum-type over node variants with an
// explicit visitor"). Expressions are deliberately not part of this
// interface: every Visitor implementation so far (just the printer) wants
// to render an expression as a single inline string rather than recurse
// statement-by-statement into it, so expression formatting is left to a
// plain helper function (see ExprString in printer.go) instead of forcing
// seventeen more Visit methods onto every implementer.
type Visitor interface {
	VisitBlock(*Block)
	VisitExpressionStatement(*ExpressionStatement)
	VisitIfStatement(*IfStatement)
	VisitWhileStatement(*WhileStatement)
	VisitForStatement(*ForStatement)
	VisitReturnStatement(*ReturnStatement)
	VisitBreakStatement(*BreakStatement)
	VisitContinueStatement(*ContinueStatement)
	VisitSwitchStatement(*SwitchStatement)
	VisitEnumStatement(*EnumStatement)
	VisitVariableDeclaration(*VariableDeclaration)
	VisitFunctionStatement(*FunctionStatement)
	VisitLayoutStatement(*LayoutStatement)
	VisitTypedefStatement(*TypedefStatement)
}

// Walk dispatches s to the matching Visit method of v.
func Walk(v Visitor, s Stmt) {
	switch n := s.(type) {
	case *Block:
		v.VisitBlock(n)
	case *ExpressionStatement:
		v.VisitExpressionStatement(n)
	case *IfStatement:
		v.VisitIfStatement(n)
	case *WhileStatement:
		v.VisitWhileStatement(n)
	case *ForStatement:
		v.VisitForStatement(n)
	case *ReturnStatement:
		v.VisitReturnStatement(n)
	case *BreakStatement:
		v.VisitBreakStatement(n)
	case *ContinueStatement:
		v.VisitContinueStatement(n)
	case *SwitchStatement:
		v.VisitSwitchStatement(n)
	case *EnumStatement:
		v.VisitEnumStatement(n)
	case *VariableDeclaration:
		v.VisitVariableDeclaration(n)
	case *FunctionStatement:
		v.VisitFunctionStatement(n)
	case *LayoutStatement:
		v.VisitLayoutStatement(n)
	case *TypedefStatement:
		v.VisitTypedefStatement(n)
	}
}
