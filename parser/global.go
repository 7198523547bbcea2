package parser

import (
	"scriptfe/ast"
	"scriptfe/report"
	"scriptfe/token"
)

// declAttrs carries the public/stock/static keywords a global declaration
// was introduced with, threaded down to whichever of variable()/function()
// ends up consuming the declarator.
type declAttrs struct {
	public, stock, static bool
}

// matchMethodBind recognizes the "() = name" method-alias binder used by
// methodmap methods and accessors, backtracking cleanly if the tokens
// don't line up. Ported from Parser::matchMethodBind.
func (p *Parser) matchMethodBind() bool {
	saved := p.beginSpeculation()
	if !p.match(token.LPAREN) {
		p.abortSpeculation(saved)
		return false
	}
	if p.match(token.RPAREN) && p.match(token.ASSIGN) {
		p.commitSpeculation()
		return true
	}
	p.abortSpeculation(saved)
	return false
}

// methodBody parses an inline method body: either a brace block or, for a
// single-line method, one bare statement. Ported from Parser::methodBody.
func (p *Parser) methodBody() *ast.Block {
	if p.peek(token.LBRACE) {
		b := p.block()
		if b == nil {
			return nil
		}
		p.requireNewline()
		return b
	}

	stmt := p.statement()
	if stmt == nil {
		return nil
	}
	return &ast.Block{Base: ast.NewBase(stmt.Position()), Stmts: []ast.Stmt{stmt}}
}

// parseAccessor parses one methodmap "property" member: a type, a name, and
// a brace-enclosed body holding a "get"/"set" pair, each either aliased
// ("= OtherFn") or given an inline native/normal method body. Ported from
// Parser::parseAccessor.
func (p *Parser) parseAccessor() ast.LayoutEntry {
	spec := &ast.TypeSpecifier{}
	p.parseNewTypeExpr(spec, 0)

	if !p.expect(token.NAME) {
		return nil
	}
	nameTok := p.cur
	name := p.atoms.Intern(nameTok.Text)

	acc := &ast.LayoutAccessor{Base: ast.NewBase(nameTok.Pos), Name: name, Type: spec}

	if !p.expect(token.LBRACE) {
		return nil
	}

	for !p.match(token.RBRACE) {
		p.match(token.PUBLIC)
		native := p.match(token.NATIVE)

		kindName, ok := p.expectName()
		if !ok {
			return nil
		}
		kindTok := p.cur

		isGet := kindTok.Text == "get"
		isSet := kindTok.Text == "set"
		if !isGet && !isSet {
			p.col.Error(kindTok.Pos, report.Message_InvalidAccessorName, "expected \"get\" or \"set\"")
		}
		if (isGet && acc.HasGet) || (isSet && acc.HasSet) {
			p.col.Error(kindTok.Pos, report.Message_AccessorRedeclared, "%q redeclared on this property", kindName)
		}

		var body ast.MethodBody
		if p.matchMethodBind() {
			aliasName, ok := p.expectName()
			if !ok {
				return nil
			}
			body.Alias = &ast.NameProxy{Base: p.newBase(), Atom: aliasName}
			p.requireNewlineOrSemi()
		} else {
			params, ok := p.arguments()
			if !ok {
				return nil
			}
			_ = params // the signature is not kept on LayoutAccessor; get/set arity is fixed by Type

			if !native {
				body.Body = p.methodBody()
			}
			p.requireNewlineOrSemi()
		}

		if isGet {
			acc.HasGet = true
			acc.Get = body
		} else if isSet {
			acc.HasSet = true
			acc.Set = body
		}
	}

	return acc
}

// parseMethod parses one methodmap "public" member: a constructor/method
// declarator, then either a "() = alias" bind or a parameter list and body
// (omitted for a native). Ported from Parser::parseMethod.
func (p *Parser) parseMethod() ast.LayoutEntry {
	native := p.match(token.NATIVE)
	destructor := p.match(token.TILDE)

	d := &decl{}
	if destructor {
		d.spec = &ast.TypeSpecifier{Resolver: ast.ResolverBuiltin, Builtin: token.VOID}
		if !p.expect(token.NAME) {
			return nil
		}
		d.name = p.atoms.Intern(p.cur.Text)
		d.namePos = p.cur.Pos
		d.hasName = true
	} else {
		if !p.parseDecl(d, declMaybeFunction) {
			return nil
		}
	}

	methodName := d.name
	methodPos := d.namePos
	if methodPos == nil {
		methodPos = p.cur.Pos
	}

	if p.matchMethodBind() {
		aliasName, ok := p.expectName()
		if !ok {
			return nil
		}
		alias := &ast.NameProxy{Base: p.newBase(), Atom: aliasName}
		p.requireNewlineOrSemi()
		return &ast.LayoutMethod{Base: ast.NewBase(methodPos), Name: methodName, Impl: ast.MethodBody{Alias: alias}}
	}

	params, ok := p.arguments()
	if !ok {
		return nil
	}

	var body *ast.Block
	if native {
		p.requireNewlineOrSemi()
	} else {
		body = p.methodBody()
	}

	sig := &ast.FunctionSignature{Params: params, Return: d.spec}
	return &ast.LayoutMethod{Base: ast.NewBase(methodPos), Name: methodName, Signature: sig, Impl: ast.MethodBody{Body: body}}
}

// methodmap parses a "methodmap Name [< Parent] { ... }" declaration.
// Ported from Parser::methodmap.
func (p *Parser) methodmap() ast.Stmt {
	pos := p.cur.Pos

	if !p.expect(token.NAME) {
		return nil
	}
	name := p.atoms.Intern(p.cur.Text)

	nullable := p.match(token.NULLABLE_KW)

	var parent *ast.NameProxy
	if p.match(token.LT) {
		if !p.expect(token.NAME) {
			return nil
		}
		parent = &ast.NameProxy{Base: p.newBase(), Atom: p.atoms.Intern(p.cur.Text)}
	}

	if !p.expect(token.LBRACE) {
		return nil
	}

	var entries []ast.LayoutEntry
	for !p.match(token.RBRACE) {
		var entry ast.LayoutEntry
		switch {
		case p.match(token.PUBLIC):
			entry = p.parseMethod()
		case p.match(token.PROPERTY):
			entry = p.parseAccessor()
		default:
			p.col.Error(p.cur.Pos, report.Message_ExpectedLayoutMember, "expected a method or property")
			return nil
		}
		if entry == nil {
			return nil
		}
		entries = append(entries, entry)
	}

	p.requireNewlineOrSemi()
	return &ast.LayoutStatement{Base: ast.NewBase(pos), Kind: ast.LayoutMethodmap, Name: name, Parent: parent, Nullable: nullable, Entries: entries}
}

// function finishes parsing a function-shaped global (a regular function,
// or a native/forward prototype) once its declarator is already known:
// a parameter list and, unless it's a prototype, a body. Ported from
// Parser::function.
func (p *Parser) function(kind token.Kind, d *decl, attrs declAttrs) ast.Stmt {
	params, ok := p.arguments()
	if !ok {
		return nil
	}

	var body *ast.Block
	if kind != token.FORWARD && kind != token.NATIVE {
		body = p.methodBody()
		if body == nil {
			return nil
		}
	}

	if body != nil {
		p.requireNewline()
	} else {
		p.requireTerminator()
	}

	sig := &ast.FunctionSignature{Params: params, Return: d.spec}
	return &ast.FunctionStatement{
		Base:      ast.NewBase(d.namePos),
		Name:      d.name,
		Signature: sig,
		Body:      body,
		Public:    attrs.public,
		Stock:     attrs.stock,
		Static:    attrs.static,
		Native:    kind == token.NATIVE,
		Forward:   kind == token.FORWARD,
	}
}

// global parses one top-level declaration, introduced by the already
// consumed keyword kind ("public"/"stock"/"static"/"native"/"forward"/
// "new", or a bare type keyword normalized to NEW by the caller). It
// disambiguates a variable declaration from a function definition by
// whether a '(' follows the declarator. Ported from Parser::global.
func (p *Parser) global(kind token.Kind) ast.Stmt {
	d := &decl{}

	if kind == token.NATIVE || kind == token.FORWARD {
		if !p.parseDecl(d, declMaybeFunction) {
			return nil
		}
		return p.function(kind, d, declAttrs{})
	}

	attrs := declAttrs{public: kind == token.PUBLIC, stock: kind == token.STOCK, static: kind == token.STATIC}
	if attrs.static && p.match(token.STOCK) {
		attrs.stock = true
	}

	flags := declMaybeFunction | declVariable
	if kind == token.NEW {
		flags |= declOld
	}

	if !p.parseDecl(d, flags) {
		return nil
	}

	if kind == token.NEW || d.spec.HasPostDims || !p.peek(token.LPAREN) {
		if kind == token.NEW && d.spec.Resolver != ast.ResolverImplicitInt && d.spec.Resolver != ast.ResolverLabeledNamed {
			p.col.Error(d.namePos, report.Message_NewStyleBadKeyword, "new-style type keyword after \"new\"")
		}
		return p.variable(d, false, attrs)
	}

	return p.function(token.FUNCTION, d, attrs)
}

// struct_ parses a "struct"/"union" declaration body: one field per
// member, each optionally "public"-annotated for a struct. Ported from
// Parser::struct_.
func (p *Parser) struct_(kind token.Kind) ast.Stmt {
	pos := p.cur.Pos

	if !p.expect(token.NAME) {
		return nil
	}
	name := p.atoms.Intern(p.cur.Text)

	if !p.expect(token.LBRACE) {
		return nil
	}

	layoutKind := ast.LayoutStruct
	flags := declField
	if kind == token.UNION {
		layoutKind = ast.LayoutUnion
		flags |= declMaybeNamed
	}

	var entries []ast.LayoutEntry
	for !p.match(token.RBRACE) {
		if kind == token.STRUCT {
			p.expect(token.PUBLIC)
		}

		d := &decl{spec: &ast.TypeSpecifier{}}
		if !p.parseNewDecl(d, flags) {
			return nil
		}

		entries = append(entries, &ast.LayoutField{Base: ast.NewBase(d.namePos), Type: d.spec, Name: d.name})
		p.requireNewlineOrSemi()
	}

	p.requireNewlineOrSemi()
	return &ast.LayoutStatement{Base: ast.NewBase(pos), Kind: layoutKind, Name: name, Entries: entries}
}

// typedef_ parses "typedef Name = <type-expr>;". Ported from
// Parser::typedef_.
func (p *Parser) typedef_() ast.Stmt {
	pos := p.cur.Pos

	name, ok := p.expectName()
	if !ok {
		return nil
	}

	p.expect(token.ASSIGN)

	spec := &ast.TypeSpecifier{}
	p.parseNewTypeExpr(spec, 0)

	p.requireNewlineOrSemi()
	return &ast.TypedefStatement{Base: ast.NewBase(pos), Name: name, Type: spec}
}
