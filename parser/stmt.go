package parser

import (
	"scriptfe/ast"
	"scriptfe/report"
	"scriptfe/token"
)

// block parses a brace-enclosed statement list, with the opening '{' not
// yet consumed. Ported from Parser::block.
func (p *Parser) block() *ast.Block {
	if !p.expect(token.LBRACE) {
		return nil
	}
	pos := p.cur.Pos

	saved := p.allowDecls
	p.allowDecls = true
	stmts := p.statements()
	p.allowDecls = saved
	if stmts == nil {
		return nil
	}

	return &ast.Block{Base: ast.NewBase(pos), Stmts: stmts}
}

// statements parses statements up to and including the closing '}', which
// must already have been opened by the caller. Ported from
// Parser::statements.
func (p *Parser) statements() []ast.Stmt {
	list := []ast.Stmt{}
	for !p.match(token.RBRACE) {
		stmt := p.statement()
		if stmt == nil {
			return nil
		}
		list = append(list, stmt)
	}
	return list
}

// statementOrBlock parses a single statement in a context where a bare
// declaration is not allowed (loop/if bodies, case bodies). Ported from
// Parser::statementOrBlock.
func (p *Parser) statementOrBlock() ast.Stmt {
	saved := p.allowDecls
	p.allowDecls = false
	stmt := p.statement()
	p.allowDecls = saved
	return stmt
}

// statement is the single-statement dispatcher. It sniffs ahead to tell a
// declaration apart from a plain expression statement starting with a
// name ("name[]" or "name name" reads as a declaration; anything else as
// an expression), then dispatches every other statement-starting keyword.
// Ported from Parser::statement.
func (p *Parser) statement() ast.Stmt {
	if p.peek(token.LBRACE) {
		return p.block()
	}

	beforeKind := p.cur
	kind := p.next()

	if kind.Kind == token.NAME {
		isDecl := false
		if p.match(token.LBRACKET) {
			isDecl = p.peek(token.RBRACKET)
			p.pushBackToken(p.cur, kind)
		} else if p.peek(token.NAME) {
			isDecl = true
		}

		if isDecl {
			p.pushBackToken(kind, beforeKind)
			return p.localVariableDeclaration(token.NEW, false)
		}
	}

	if token.IsNewTypeToken(kind.Kind) || kind.Kind == token.DECL || kind.Kind == token.STATIC || kind.Kind == token.NEW {
		declKind := kind.Kind
		if token.IsNewTypeToken(kind.Kind) {
			p.pushBackToken(kind, beforeKind)
			declKind = token.NEW
		}
		return p.localVariableDeclaration(declKind, false)
	}

	var stmt ast.Stmt
	switch kind.Kind {
	case token.FOR:
		return p.for_()
	case token.WHILE:
		return p.while_()
	case token.BREAK:
		stmt = &ast.BreakStatement{Base: ast.NewBase(kind.Pos)}
	case token.CONTINUE:
		stmt = &ast.ContinueStatement{Base: ast.NewBase(kind.Pos)}
	case token.DO:
		return p.do_()
	case token.RETURN:
		return p.return_()
	case token.ENUM:
		return p.enum_()
	case token.SWITCH:
		return p.switch_()
	case token.IF:
		return p.if_()
	}

	if stmt == nil {
		p.pushBackToken(kind, beforeKind)
		stmt = p.expressionStatement()
		if stmt == nil {
			return nil
		}
	}

	if !p.requireTerminator() {
		return nil
	}
	return stmt
}

func (p *Parser) while_() ast.Stmt {
	pos := p.cur.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	cond := p.expression()
	if cond == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	p.loopDepth++
	body := p.statementOrBlockAsBlock()
	p.loopDepth--
	if body == nil {
		return nil
	}

	p.requireNewline()
	return &ast.WhileStatement{Base: ast.NewBase(pos), Kind: ast.LoopWhile, Cond: cond, Body: body}
}

func (p *Parser) do_() ast.Stmt {
	pos := p.cur.Pos

	p.loopDepth++
	body := p.block()
	p.loopDepth--
	if body == nil {
		return nil
	}

	if !p.expect(token.WHILE) {
		return nil
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	cond := p.expression()
	if cond == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	p.requireTerminator()
	return &ast.WhileStatement{Base: ast.NewBase(pos), Kind: ast.LoopDoWhile, Cond: cond, Body: body}
}

func (p *Parser) for_() ast.Stmt {
	pos := p.cur.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}

	var init ast.Stmt
	if !p.match(token.SEMICOLON) {
		isDecl := p.match(token.NEW) || token.IsNewTypeToken(p.peekKind())
		if isDecl {
			init = p.localVariableDeclaration(token.NEW, true)
		} else {
			init = p.expressionStatement()
		}
		if init == nil {
			return nil
		}
		if !p.expect(token.SEMICOLON) {
			return nil
		}
	}

	var cond ast.Expr
	if !p.match(token.SEMICOLON) {
		cond = p.expression()
		if cond == nil {
			return nil
		}
		if !p.expect(token.SEMICOLON) {
			return nil
		}
	}

	var update ast.Stmt
	if !p.match(token.RPAREN) {
		update = p.expressionStatement()
		if update == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	p.loopDepth++
	body := p.statementOrBlockAsBlock()
	p.loopDepth--
	if body == nil {
		return nil
	}

	p.requireNewline()
	return &ast.ForStatement{Base: ast.NewBase(pos), Init: init, Cond: cond, Update: update, Body: body}
}

// statementOrBlockAsBlock wraps a single non-block statement in a Block so
// loop/if bodies always have a uniform *ast.Block shape to hold, the way a
// single-statement "while (x) y();" body is still a block of one in the
// tree the checker and code generator walk.
func (p *Parser) statementOrBlockAsBlock() *ast.Block {
	if p.peek(token.LBRACE) {
		return p.block()
	}
	stmt := p.statementOrBlock()
	if stmt == nil {
		return nil
	}
	return &ast.Block{Base: ast.NewBase(stmt.Position()), Stmts: []ast.Stmt{stmt}}
}

func (p *Parser) if_() ast.Stmt {
	pos := p.cur.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	cond := p.expression()
	if cond == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	ifTrue := p.statementOrBlockAsBlock()
	if ifTrue == nil {
		return nil
	}

	outer := &ast.IfStatement{Base: ast.NewBase(pos), Cond: cond, IfTrue: ifTrue}
	last := outer

	for p.match(token.ELSE) {
		if !p.match(token.IF) {
			ifFalse := p.statementOrBlockAsBlock()
			if ifFalse == nil {
				return nil
			}
			last.IfFalse = ifFalse
			break
		}

		elsePos := p.cur.Pos
		if !p.expect(token.LPAREN) {
			return nil
		}
		otherCond := p.expression()
		if otherCond == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		otherIfTrue := p.statementOrBlockAsBlock()
		if otherIfTrue == nil {
			return nil
		}

		inner := &ast.IfStatement{Base: ast.NewBase(elsePos), Cond: otherCond, IfTrue: otherIfTrue}
		last.IfFalse = inner
		last = inner
	}

	p.requireNewline()
	return outer
}

// switch_ parses a case-label switch, enforcing that default comes last
// and each case body is exactly one statement (requireNewline before the
// next case/default/'}' catches a second statement run-on). Ported from
// Parser::switch_.
func (p *Parser) switch_() ast.Stmt {
	pos := p.cur.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	subject := p.expression()
	if subject == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}

	var cases []*ast.CaseLabel
	var defaultPos *report.TextPosition
	haveDefault := false

	p.switchDepth++
	defer func() { p.switchDepth-- }()

	for !p.peek(token.RBRACE) {
		label := &ast.CaseLabel{}

		if p.match(token.DEFAULT) {
			if haveDefault {
				p.col.Error(p.cur.Pos, report.Message_OneDefaultPerSwitch, "a switch may have only one default case")
				return nil
			}
			defaultPos = p.cur.Pos
			haveDefault = true
			label.IsDefault = true
		} else {
			if haveDefault {
				p.col.Error(defaultPos, report.Message_DefaultMustBeLastCase, "the default case must be last")
				return nil
			}
			if !p.expect(token.CASE) {
				return nil
			}

			p.sc.AllowTags(false)
			first := p.expression()
			p.sc.AllowTags(true)
			if first == nil {
				return nil
			}
			label.Values = append(label.Values, first)

			for p.match(token.COMMA) {
				other := p.expression()
				if other == nil {
					return nil
				}
				label.Values = append(label.Values, other)
			}
		}

		if !p.expect(token.COLON) {
			return nil
		}

		stmt := p.statementOrBlock()
		if stmt == nil {
			return nil
		}
		label.Body = stmt

		p.requireNewline()

		if !p.peek(token.CASE) && !p.peek(token.DEFAULT) && !p.peek(token.RBRACE) {
			p.col.Error(p.cur.Pos, report.Message_SingleStatementPerCase, "a case body may hold only one statement")
			return nil
		}

		cases = append(cases, label)
	}

	if !p.expect(token.RBRACE) {
		return nil
	}
	p.requireNewline()

	return &ast.SwitchStatement{Base: ast.NewBase(pos), Subject: subject, Cases: cases}
}

func (p *Parser) dimensions() []ast.Expr {
	var dims []ast.Expr
	for p.match(token.LBRACKET) {
		var dim ast.Expr
		if !p.match(token.RBRACKET) {
			dim = p.expression()
			if dim == nil {
				return nil
			}
			if !p.expect(token.RBRACKET) {
				return nil
			}
		}
		dims = append(dims, dim)
	}
	return dims
}

// variable finishes parsing a declaration statement once its first
// declarator has already been parsed into d: an optional initializer, then
// any further comma-separated sibling declarators via reparseDecl. inline
// suppresses the trailing terminator requirement for a for-loop init
// clause; attrs stamps public/stock/static (always zero for a local).
// Ported from Parser::variable.
func (p *Parser) variable(d *decl, inline bool, attrs declAttrs) ast.Stmt {
	var init ast.Expr
	if p.match(token.ASSIGN) {
		init = p.expression()
	}

	first := &ast.VariableDeclaration{
		Base: ast.NewBase(d.namePos), Type: d.spec, Name: d.name, Init: init, Const: d.spec.Const,
		Public: attrs.public, Stock: attrs.stock, Static: attrs.static,
	}
	prev := first

	for p.match(token.COMMA) {
		if !p.reparseDecl(d, declVariable) {
			break
		}
		var siblingInit ast.Expr
		if p.match(token.ASSIGN) {
			siblingInit = p.expression()
		}
		v := &ast.VariableDeclaration{
			Base: ast.NewBase(d.namePos), Type: d.spec, Name: d.name, Init: siblingInit, Const: d.spec.Const,
			Public: attrs.public, Stock: attrs.stock, Static: attrs.static,
		}
		prev.Next = v
		prev = v
	}

	if !inline {
		p.requireTerminator()
	}

	return first
}

// localVariableDeclaration parses a local declaration statement, letting
// parseDecl's own old-style/new-style sniffing decide the declarator shape
// regardless of which keyword introduced it. inline suppresses the
// trailing terminator requirement, for a for-loop init clause. Ported from
// Parser::localVariableDeclaration.
func (p *Parser) localVariableDeclaration(kind token.Kind, inline bool) ast.Stmt {
	if !p.allowDecls {
		p.col.Error(p.cur.Pos, report.Message_VariableMustBeInBlock, "a variable must be declared inside a block")
	}

	d := &decl{}
	if !p.parseDecl(d, declVariable) {
		return nil
	}

	return p.variable(d, inline, declAttrs{})
}

func (p *Parser) return_() ast.Stmt {
	pos := p.cur.Pos

	var value ast.Expr
	next := p.peekSameLine()
	if next != token.EOL && next != token.EOF && next != token.SEMICOLON {
		value = p.expression()
		if value == nil {
			return nil
		}
	}

	p.requireTerminator()
	return &ast.ReturnStatement{Base: ast.NewBase(pos), Value: value}
}

func (p *Parser) expressionStatement() ast.Stmt {
	left := p.assignment()
	if left == nil {
		return nil
	}
	return &ast.ExpressionStatement{Base: ast.NewBase(left.Position()), Expr: left}
}

// enum_ parses an enum declaration, old-style label name or new-style bare
// name both accepted for the enum's own name. Ported from Parser::enum_.
func (p *Parser) enum_() ast.Stmt {
	pos := p.cur.Pos

	var name token.Atom
	if p.match(token.NAME) || p.match(token.LABEL) {
		name = p.atoms.Intern(p.cur.Text)
	}

	if !p.expect(token.LBRACE) {
		return nil
	}

	var entries []ast.EnumEntry
	for !p.peek(token.RBRACE) {
		entryName, ok := p.expectName()
		if !ok {
			return nil
		}
		namePos := p.cur.Pos

		var value ast.Expr
		if p.match(token.ASSIGN) {
			value = p.expression()
			if value == nil {
				return nil
			}
		}

		entries = append(entries, ast.EnumEntry{Name: entryName, NameAt: namePos, Value: value, EntryAt: namePos})

		if !p.match(token.COMMA) {
			break
		}
	}

	if !p.expect(token.RBRACE) {
		return nil
	}
	p.requireTerminator()

	return &ast.EnumStatement{Base: ast.NewBase(pos), Name: name, Entries: entries}
}
