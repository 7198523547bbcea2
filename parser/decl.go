package parser

import (
	"scriptfe/ast"
	"scriptfe/report"
	"scriptfe/token"
)

// declFlags mirrors the teacher's DeclFlags bitset: a small set of context
// bits parse_decl and its helpers thread through instead of adding a
// parameter per call site.
type declFlags uint

const (
	declArgument      declFlags = 1 << iota // parsing a parameter in "(" ... ")"
	declVariable                            // parsing a "new"/typed local or global
	declOld                                 // caller already knows this must be old-style (e.g. "new x")
	declMaybeFunction                       // the name may turn out to be a function, not a variable
	declMaybeNamed                          // a name is optional (anonymous union field)
	declField                               // parsing a struct/union field
)

func (f declFlags) has(bit declFlags) bool { return f&bit != 0 }

// namedMask reports whether this declarator context expects a name at all
// (every context except a bare function-type parameter list entry).
func (f declFlags) namedMask() bool {
	return f.has(declVariable) || f.has(declArgument) || f.has(declMaybeFunction) || f.has(declField)
}

// decl is the mutable scratch struct parse_decl fills in, mirroring the
// teacher's own Declaration: a spec under construction plus the eventual
// declarator name.
type decl struct {
	spec    *ast.TypeSpecifier
	name    token.Atom
	namePos *report.TextPosition
	hasName bool
}

// parseNewTypename fills spec's name/builtin resolver from tok, which must
// already have been consumed. Ported from parse_new_typename.
func (p *Parser) parseNewTypename(spec *ast.TypeSpecifier, tok *token.Token) {
	if token.IsNewTypeToken(tok.Kind) {
		spec.Resolver = ast.ResolverBuiltin
		spec.Builtin = tok.Kind
		return
	}

	if tok.Kind == token.LABEL {
		spec.Resolver = ast.ResolverLabeledNamed
		spec.Name = &ast.NameProxy{Base: p.baseAt(tok), Atom: p.atoms.Intern(tok.Text)}
		p.col.Error(tok.Pos, report.Message_NewDeclsRequired, "label-style types require new-style declarations")
		return
	}

	if tok.Kind != token.NAME {
		p.col.Error(tok.Pos, report.Message_ExpectedTypeExpr, "expected a type expression")
		return
	}

	spec.Resolver = ast.ResolverNamed
	spec.Name = &ast.NameProxy{Base: p.baseAt(tok), Atom: p.atoms.Intern(tok.Text)}
	p.reportIfDeprecatedTypeName(tok)
}

func (p *Parser) reportIfDeprecatedTypeName(tok *token.Token) {
	if p.dialect.AllowDeprecatedTypeNames {
		return
	}
	if repl, ok := token.DeprecatedTypeNames[tok.Text]; ok {
		p.col.Warn(tok.Pos, report.Message_TypeIsDeprecated, "%q is deprecated, use %q", tok.Text, repl)
	}
}

// parseFunctionType parses the signature of a "function <type>(...)" type
// specifier: a return type, then a parenthesized list of parameter types,
// each with an optional name. Ported from parse_function_type.
func (p *Parser) parseFunctionType(spec *ast.TypeSpecifier) bool {
	ret := &ast.TypeSpecifier{}
	p.parseNewTypeExpr(ret, 0)

	if !p.expect(token.LPAREN) {
		return false
	}
	var params []*ast.Param
	for !p.match(token.RPAREN) {
		param := &ast.Param{Type: &ast.TypeSpecifier{}}
		p.parseNewTypeExpr(param.Type, declArgument)
		if name, ok := p.maybeName(); ok {
			param.Name = &ast.NameProxy{Base: p.newBase(), Atom: name}
		}
		params = append(params, param)
		if !p.match(token.COMMA) && !p.peek(token.RPAREN) {
			return p.expect(token.RPAREN)
		}
	}

	spec.Resolver = ast.ResolverFunctionType
	spec.Signature = &ast.FunctionSignature{Params: params, Return: ret}
	return true
}

// parseArrayRankPrefix parses a "[][]..."-style prefix array rank, used
// both by parseNewTypeExpr and by the parse_decl disambiguator once it has
// already decided a bracketed run belongs to the type, not the declarator.
// Does nothing if spec already has a rank/dims (isArray() in the teacher).
func (p *Parser) parseArrayRankPrefix(spec *ast.TypeSpecifier) {
	if spec.Rank != 0 || len(spec.Dims) != 0 {
		return
	}
	if !p.match(token.LBRACKET) {
		return
	}
	rank := 0
	for {
		rank++
		if !p.match(token.RBRACKET) {
			p.col.Error(p.cur.Pos, report.Message_FixedArrayInPrefix, "fixed array sizes are not allowed in a prefix type")
		}
		if !p.match(token.LBRACKET) {
			break
		}
	}
	spec.Rank = rank
}

// parseNewTypeExpr parses a complete new-style type expression: an
// optional "const", the base type (named, builtin, or function-type), an
// optional prefix array rank, and -- for arguments only -- a trailing "&".
// Ported from parse_new_type_expr.
func (p *Parser) parseNewTypeExpr(spec *ast.TypeSpecifier, flags declFlags) {
	if p.match(token.CONST) {
		if spec.Const {
			p.col.Error(p.cur.Pos, report.Message_ConstSpecifiedTwice, "const specified twice")
		}
		spec.Const = true
		spec.ConstPos = p.cur.Pos
	}

	lparen := p.match(token.LPAREN)
	var isFunction bool
	if lparen {
		isFunction = p.expect(token.FUNCTION)
	} else {
		isFunction = p.match(token.FUNCTION)
	}

	if isFunction {
		p.parseFunctionType(spec)
	} else {
		tok := p.next()
		p.parseNewTypename(spec, tok)
	}

	if lparen {
		p.match(token.RPAREN)
	}

	p.parseArrayRankPrefix(spec)

	if flags.has(declArgument) {
		if p.match(token.AMPERSAND) {
			if spec.Rank == 0 && len(spec.Dims) == 0 {
				spec.ByRef = true
				spec.ByRefPos = p.cur.Pos
			} else {
				p.col.Error(p.cur.Pos, report.Message_TypeCannotBeReference, "array types cannot be passed by reference")
			}
		}
	}
}

// parseNewDecl parses a new-style declarator: a type expression followed
// by an optional name and, for a named declarator, old-style post-dims
// tacked on afterward ("int x[5]" is old-style; "int[5] x" new-style, but
// the grammar still lets a new-style name carry its own post-dims, caught
// as a double-array-dims error downstream). Ported from parse_new_decl.
func (p *Parser) parseNewDecl(d *decl, flags declFlags) bool {
	p.parseNewTypeExpr(d.spec, flags)

	if flags.namedMask() {
		named := false
		if flags.has(declMaybeNamed) {
			named = p.match(token.NAME)
		} else {
			if !p.expect(token.NAME) {
				return false
			}
			named = true
		}

		if named {
			d.name = p.atoms.Intern(p.cur.Text)
			d.namePos = p.cur.Pos
			d.hasName = true
			if p.match(token.LBRACKET) {
				p.parseOldArrayDims(d)
			}
		}
	}

	return true
}

// parseOldArrayDims parses zero or more "[expr?]" dimensions following a
// declarator name, the post-fix array-size syntax. Ported from
// parse_old_array_dims; the opening '[' of the first dimension must
// already have been consumed by the caller (p.cur holds it).
func (p *Parser) parseOldArrayDims(d *decl) {
	spec := d.spec
	loc := p.cur.Pos

	if spec.ByRef {
		p.col.Error(loc, report.Message_TypeCannotBeReference, "array types cannot be passed by reference")
	}

	rank := 0
	var dims []ast.Expr
	haveSizes := false

	for {
		rank++

		if p.match(token.RBRACKET) {
			if haveSizes {
				dims = append(dims, nil)
			}
			if !p.match(token.LBRACKET) {
				break
			}
			continue
		}

		if !haveSizes {
			haveSizes = true
			dims = make([]ast.Expr, rank-1)
		}

		expr := p.expression()
		if expr == nil {
			break
		}
		dims = append(dims, expr)

		if !p.expect(token.RBRACKET) {
			break
		}
		if !p.match(token.LBRACKET) {
			break
		}
	}

	if spec.Rank != 0 || len(spec.Dims) != 0 {
		p.col.Error(loc, report.Message_DoubleArrayDims, "array dimensions specified twice")
		return
	}

	if haveSizes {
		spec.Dims = dims
	}
	spec.Rank = rank
	spec.HasPostDims = true
}

// parseOldDecl parses an old-style declarator: optional "const", optional
// "&" for arguments, an optional label type tag (defaulting to implicit
// int), varargs ("..."), and the declarator name with optional post-dims.
// Ported from parse_old_decl.
func (p *Parser) parseOldDecl(d *decl, flags declFlags) bool {
	spec := d.spec

	if p.match(token.CONST) {
		if spec.Const {
			p.col.Error(p.cur.Pos, report.Message_ConstSpecifiedTwice, "const specified twice")
		}
		spec.Const = true
		spec.ConstPos = p.cur.Pos
	}

	if flags.has(declArgument) && p.match(token.AMPERSAND) {
		spec.ByRef = true
		spec.ByRefPos = p.cur.Pos
	}

	if p.match(token.LABEL) {
		spec.Resolver = ast.ResolverLabeledNamed
		spec.Name = &ast.NameProxy{Base: p.newBase(), Atom: p.atoms.Intern(p.cur.Text)}
	} else {
		spec.Resolver = ast.ResolverImplicitInt
	}

	if flags.has(declArgument) && p.match(token.ELLIPSES) {
		spec.Variadic = true
		spec.VariadicPos = p.cur.Pos
		return true
	}

	if p.dialect.RequireNewDecls {
		p.col.Error(p.cur.Pos, report.Message_NewDeclsRequired, "old-style declarations are not allowed in this dialect")
	}

	if flags.namedMask() {
		if !p.peek(token.NAME) {
			beforeKind := p.cur
			tok := p.next()
			if token.IsNewTypeToken(tok.Kind) {
				p.col.Error(tok.Pos, report.Message_NewStyleBadKeyword, "new-style type keyword in an old-style declaration")
			} else {
				p.pushBackToken(tok, beforeKind)
			}
		}
		if !p.expect(token.NAME) {
			return false
		}
		d.name = p.atoms.Intern(p.cur.Text)
		d.namePos = p.cur.Pos
		d.hasName = true

		if p.match(token.LBRACKET) {
			p.parseOldArrayDims(d)
		}
	}

	return true
}

// arguments parses a parenthesized, comma-separated parameter list: zero or
// more declarators, each optionally followed by "= expr" for a default
// value. Reports MultipleVarargs if more than one parameter is variadic.
// Ported from Parser::arguments.
func (p *Parser) arguments() ([]*ast.Param, bool) {
	if !p.expect(token.LPAREN) {
		return nil, false
	}
	if p.match(token.RPAREN) {
		return nil, true
	}

	var params []*ast.Param
	variadic := false
	for {
		d := &decl{}
		if !p.parseDecl(d, declArgument) {
			break
		}

		var name *ast.NameProxy
		if d.hasName {
			name = &ast.NameProxy{Base: ast.NewBase(d.namePos), Atom: d.name}
		}

		var def ast.Expr
		if p.match(token.ASSIGN) {
			def = p.expression()
			if def == nil {
				return nil, false
			}
		}

		if d.spec.Variadic {
			if variadic {
				p.col.Error(d.spec.VariadicPos, report.Message_MultipleVarargs, "only one parameter may be variadic")
			}
			variadic = true
		}

		params = append(params, &ast.Param{Name: name, Type: d.spec, Default: def})

		if !p.match(token.COMMA) {
			break
		}
	}

	p.expect(token.RPAREN)
	return params, true
}

// reparseDecl re-derives the next sibling declarator in a comma-separated
// list ("int x, y[5], z"). A new-style sibling gets its own copy of the
// first declarator's spec with the post-dims reset, plus any post-dims of
// its own; an old-style sibling gets a fresh spec that keeps only the const
// flag. Ported from reparse_decl.
func (p *Parser) reparseDecl(d *decl, flags declFlags) bool {
	if d.spec.Resolver != ast.ResolverBuiltin && d.spec.Resolver != ast.ResolverNamed {
		fresh := &ast.TypeSpecifier{Const: d.spec.Const}
		d.spec = fresh
		return p.parseOldDecl(d, flags)
	}

	if !p.expect(token.NAME) {
		return false
	}
	d.name = p.atoms.Intern(p.cur.Text)
	d.namePos = p.cur.Pos
	d.hasName = true

	sibling := *d.spec
	d.spec = &sibling
	if d.spec.HasPostDims {
		d.spec.Rank = 0
		d.spec.Dims = nil
		d.spec.HasPostDims = false
	}

	if p.match(token.LBRACKET) {
		p.parseOldArrayDims(d)
	}

	return true
}

// parseDecl is the declaration disambiguator: the single most intricate
// production in the grammar. It decides, using only a token or two of
// lookahead (backtracking with pushBackToken when it has to), whether the
// declarator being read is old-style ("Tag:name" / implicit-int "name") or
// new-style ("type name" / "type[] name"). Ported from the infamous
// parse_decl() from spcomp1, preserved verbatim in spirit down to the
// comments.
func (p *Parser) parseDecl(d *decl, flags declFlags) bool {
	d.spec = &ast.TypeSpecifier{}

	if flags.has(declArgument) && p.peek(token.ELLIPSES) {
		return p.parseOldDecl(d, flags)
	}

	if p.match(token.CONST) {
		d.spec.Const = true
		d.spec.ConstPos = p.cur.Pos
	}

	if flags.has(declOld) {
		return p.parseOldDecl(d, flags)
	}

	if flags.has(declArgument) && (p.peek(token.AMPERSAND) || p.peek(token.LBRACE)) {
		return p.parseOldDecl(d, flags)
	}

	if p.peek(token.LABEL) {
		return p.parseOldDecl(d, flags)
	}

	beforeName := p.cur
	if p.match(token.NAME) {
		nameTok := p.cur

		if p.peek(token.NAME) || p.peek(token.AMPERSAND) {
			// This is a new-style declaration; the name we ate was the type.
			// Give it back to the stream.
			p.pushBackToken(nameTok, beforeName)
			return p.parseNewDecl(d, flags)
		}

		if flags.namedMask() && p.match(token.LBRACKET) {
			// Ambiguous: could be "x[] y" (new-style, "x" is the type) or
			// "y[5]," (old-style, "y" is the name). Parse the dims for real
			// first, then peek past them to decide.
			p.parseOldArrayDims(d)

			if p.peek(token.NAME) || p.peek(token.AMPERSAND) {
				// New-style after all: the dims we just parsed are really the
				// type's prefix rank, not the declarator's post-dims, and the
				// name token is really the type name.
				d.spec.HasPostDims = false
				p.pushBackToken(nameTok, beforeName)
				return p.parseNewDecl(d, flags)
			}

			// Old-style "y[5]": nameTok is the declarator name, the implicit
			// type is int.
			d.name = p.atoms.Intern(nameTok.Text)
			d.namePos = nameTok.Pos
			d.hasName = true
			d.spec.Resolver = ast.ResolverBuiltin
			d.spec.Builtin = token.INT
			return true
		}

		// Give the name back; this is an old-style declarator and
		// parseOldDecl expects to see the name itself.
		p.pushBackToken(nameTok, beforeName)
		return p.parseOldDecl(d, flags)
	}

	// Everything else has failed to match a leading name; this must be a
	// type keyword starting a new-style declaration.
	return p.parseNewDecl(d, flags)
}
