package main

import (
	"scriptfe/ast"
	"scriptfe/codegen"
)

// walkAndEmit drives gen.Emit over every expression reachable from tree,
// in source order, mirroring checkstub.Tagger's own traversal shape so
// dump-asm emits the expressions that runDumpAsm's own tagging pass has
// just tagged (enum entry values are tagged but not emitted). It has no notion of control flow -- codegen's own responsibility
// stops at individual expressions (spec.md §4.2); branch/loop lowering is
// a type-checker/later-stage concern this repository doesn't implement --
// so an if/while/for's body is still visited for its own expressions, but
// no branch instructions are emitted to sequence them.
func walkAndEmit(gen *codegen.Generator, tree *ast.ParseTree) {
	for _, g := range tree.Globals {
		walkGlobal(gen, g)
	}
}

func walkGlobal(gen *codegen.Generator, s ast.Stmt) {
	switch g := s.(type) {
	case *ast.VariableDeclaration:
		walkVarChain(gen, g)
	case *ast.FunctionStatement:
		if g.Body != nil {
			walkBlock(gen, g.Body)
		}
	}
}

func walkVarChain(gen *codegen.Generator, decl *ast.VariableDeclaration) {
	for d := decl; d != nil; d = d.Next {
		if d.Init != nil {
			gen.Emit(d.Init)
		}
	}
}

func walkBlock(gen *codegen.Generator, b *ast.Block) {
	for _, s := range b.Stmts {
		walkStmt(gen, s)
	}
}

func walkStmt(gen *codegen.Generator, s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Block:
		walkBlock(gen, st)
	case *ast.ExpressionStatement:
		gen.Emit(st.Expr)
	case *ast.VariableDeclaration:
		walkVarChain(gen, st)
	case *ast.IfStatement:
		gen.Emit(st.Cond)
		walkBlock(gen, st.IfTrue)
		if st.IfFalse != nil {
			walkStmt(gen, st.IfFalse)
		}
	case *ast.WhileStatement:
		gen.Emit(st.Cond)
		walkBlock(gen, st.Body)
	case *ast.ForStatement:
		if st.Init != nil {
			walkStmt(gen, st.Init)
		}
		if st.Cond != nil {
			gen.Emit(st.Cond)
		}
		if st.Update != nil {
			walkStmt(gen, st.Update)
		}
		walkBlock(gen, st.Body)
	case *ast.ReturnStatement:
		if st.Value != nil {
			gen.Emit(st.Value)
		}
	case *ast.SwitchStatement:
		gen.Emit(st.Subject)
		for _, c := range st.Cases {
			for _, v := range c.Values {
				gen.Emit(v)
			}
			walkStmt(gen, c.Body)
		}
	}
}
