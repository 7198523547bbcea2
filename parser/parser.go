// Package parser implements the recursive-descent parser: it consumes a
// scanner.Scanner and yields an *ast.ParseTree, reporting errors through a
// report.Collector without aborting at the first error. The grammar and
// the old-style/new-style declaration disambiguation algorithm are ported
// from the declaration-sniffing compiler this project's dialect is modeled
// on; the surrounding Go shape (a *Parser state machine with peek/match/
// expect helpers walking a token stream) follows the teacher's
// bootstrap/syntax/parser.go.
package parser

import (
	"scriptfe/ast"
	"scriptfe/config"
	"scriptfe/report"
	"scriptfe/scanner"
	"scriptfe/token"
)

// Parser is a state machine that moves over the token stream deciding what
// to parse based on the current token and the callstack of parsing
// methods it's inside -- a recursive-descent parser. Every parsing method
// assumes the token stream is positioned on the first token of its
// production and leaves it positioned just past the last token consumed.
//
// Unlike Scanner, which only guarantees a single level of undo, Parser can
// backtrack arbitrarily far: beginSpeculation/commitSpeculation/
// abortSpeculation record every token consumed since a mark and can replay
// them verbatim. peek, peekKind, peekSameLine and matchMethodBind are built
// on it; parseDecl itself tells old-style from new-style declarators with
// peek and single-token pushBackToken calls (spec.md §4.1.3).
type Parser struct {
	sc      *scanner.Scanner
	col     *report.Collector
	dialect *config.Dialect
	arena   *ast.Arena
	atoms   *token.Table

	cur     *token.Token
	pending []*token.Token
	marks   [][]*token.Token

	// loopDepth/switchDepth let break/continue be rejected outside a loop
	// and case bodies be rejected outside a switch without threading extra
	// parameters through every statement production.
	loopDepth   int
	switchDepth int

	// allowDecls tracks whether a bare declaration statement is legal at
	// the current point: true inside a full block, false inside a
	// single-statement loop/if/case body (statementOrBlock saves and
	// clears it around that one statement).
	allowDecls bool
}

// New creates a Parser reading from sc, reporting to col, honoring the
// given dialect toggles.
func New(sc *scanner.Scanner, col *report.Collector, dialect *config.Dialect, atoms *token.Table) *Parser {
	sc.RequireSemicolons(dialect.RequireSemicolons)
	return &Parser{
		sc:         sc,
		col:        col,
		dialect:    dialect,
		arena:      ast.NewArena(),
		atoms:      atoms,
		allowDecls: true,
	}
}

// Parse consumes the entire token stream and returns the resulting tree.
// Parsing continues past recoverable errors; check col.HasErrors()
// afterward to decide whether the tree is usable.
func (p *Parser) Parse() *ast.ParseTree {
	var globals []ast.Stmt
	for {
		stmt, done := p.topLevel()
		if done {
			break
		}
		if stmt != nil {
			globals = append(globals, stmt)
		}
	}

	return &ast.ParseTree{Globals: globals, Arena: p.arena}
}

// topLevel consumes and dispatches exactly one top-level production,
// mirroring the big switch at the bottom of the teacher's own Parser::parse
// loop. The second return value is true once the stream is exhausted (EOF
// or an unrecoverable error) and the caller should stop asking for more.
func (p *Parser) topLevel() (ast.Stmt, bool) {
	beforeKind := p.cur
	tok := p.next()

	switch tok.Kind {
	case token.ERROR:
		return nil, true
	case token.EOF:
		return nil, true

	case token.NAME, token.CHAR_TYPE, token.INT, token.VOID, token.OBJECT, token.FLOAT_TYPE, token.BOOL, token.LABEL:
		p.pushBackToken(tok, beforeKind)
		return p.global(tok.Kind), false

	case token.NEW, token.STATIC, token.PUBLIC, token.STOCK, token.NATIVE, token.FORWARD:
		return p.global(tok.Kind), false

	case token.METHODMAP:
		return p.methodmap(), false

	case token.ENUM:
		return p.enum_(), false

	case token.STRUCT, token.UNION:
		return p.struct_(tok.Kind), false

	case token.TYPEDEF:
		return p.typedef_(), false

	case token.FUNCTAG:
		p.col.Error(tok.Pos, report.Message_FunctagsNotSupported, "functags are no longer supported")
		p.skipToEndOfLine()
		return nil, false

	default:
		p.col.Error(tok.Pos, report.Message_ExpectedGlobal, "expected a global declaration")
		return nil, true
	}
}

// -----------------------------------------------------------------------------
// Token-stream primitives.
//
// next()/pushBackToken() are the only two operations allowed to touch
// p.sc, p.cur, and p.pending directly; every other helper in this package
// (peek, match, expect, speculation) is built from them so there is one
// place that has to get the bookkeeping right.

// next consumes and returns the next token, drawing from the pending
// replay queue first if one is non-empty.
func (p *Parser) next() *token.Token {
	var tok *token.Token
	if len(p.pending) > 0 {
		tok = p.pending[0]
		p.pending = p.pending[1:]
	} else {
		tok = p.sc.Next()
	}
	p.cur = tok
	for i := range p.marks {
		p.marks[i] = append(p.marks[i], tok)
	}
	return tok
}

// pushBackToken un-consumes tok, making it the next token next() returns,
// and restores prev as the current token. It also retracts tok from every
// active speculation's recording, since a pushed-back token has not
// really been consumed -- it will be recorded again, exactly once, the
// next time it's actually read.
func (p *Parser) pushBackToken(tok, prev *token.Token) {
	p.pending = append([]*token.Token{tok}, p.pending...)
	for i := range p.marks {
		n := len(p.marks[i])
		if n > 0 && p.marks[i][n-1] == tok {
			p.marks[i] = p.marks[i][:n-1]
		}
	}
	p.cur = prev
}

// beginSpeculation opens a new recording scope and returns the token to
// restore p.cur to if the speculation is aborted.
func (p *Parser) beginSpeculation() *token.Token {
	saved := p.cur
	p.marks = append(p.marks, nil)
	return saved
}

// commitSpeculation accepts everything consumed since the matching
// beginSpeculation call -- the tokens stay consumed, nothing is replayed.
func (p *Parser) commitSpeculation() {
	p.marks = p.marks[:len(p.marks)-1]
}

// abortSpeculation undoes everything consumed since the matching
// beginSpeculation call: every recorded token is requeued for replay and
// p.cur is restored to what it was at the mark.
func (p *Parser) abortSpeculation(saved *token.Token) {
	n := len(p.marks) - 1
	recorded := p.marks[n]
	p.marks = p.marks[:n]
	p.pending = append(recorded, p.pending...)
	p.cur = saved
}

// peek reports whether the next token (without consuming it) is kind.
func (p *Parser) peek(kind token.Kind) bool {
	saved := p.beginSpeculation()
	tok := p.next()
	p.abortSpeculation(saved)
	return tok.Kind == kind
}

// peekKind returns the kind of the next token without consuming it.
func (p *Parser) peekKind() token.Kind {
	saved := p.beginSpeculation()
	tok := p.next()
	p.abortSpeculation(saved)
	return tok.Kind
}

// match consumes and returns true if the next token is kind, otherwise
// leaves the stream untouched and returns false.
func (p *Parser) match(kind token.Kind) bool {
	prev := p.cur
	tok := p.next()
	if tok.Kind == kind {
		return true
	}
	p.pushBackToken(tok, prev)
	return false
}

// expect consumes the next token, reporting Message_WrongToken if it is
// not kind. The token is consumed either way, matching the teacher's
// "expect always advances" convention so a missing token doesn't wedge
// the parser in an infinite loop.
func (p *Parser) expect(kind token.Kind) bool {
	tok := p.next()
	if tok.Kind == kind {
		return true
	}
	p.col.Error(tok.Pos, report.Message_WrongToken, "expected %s, got %s", kind, tok.Kind)
	return false
}

func (p *Parser) maybeName() (token.Atom, bool) {
	if !p.match(token.NAME) {
		return token.Atom{}, false
	}
	return p.atoms.Intern(p.cur.Text), true
}

func (p *Parser) expectName() (token.Atom, bool) {
	if !p.expect(token.NAME) {
		return token.Atom{}, false
	}
	return p.atoms.Intern(p.cur.Text), true
}

// peekSameLine returns the kind of the next token if it starts on the same
// physical line as the current token, or token.EOL otherwise -- the
// parser-level equivalent of Scanner.PeekTokenSameLine, reimplemented here
// because it has to see through the pending-replay queue.
func (p *Parser) peekSameLine() token.Kind {
	if p.cur == nil || p.cur.Pos == nil {
		return p.peekKind()
	}
	curLine := p.cur.Pos.EndLn

	saved := p.beginSpeculation()
	tok := p.next()
	p.abortSpeculation(saved)

	if tok.Pos != nil && tok.Pos.StartLn != curLine {
		return token.EOL
	}
	return tok.Kind
}

// requireTerminator requires ';' or a newline, honoring the dialect's
// strict-terminator toggle (spec.md §4.1.1).
func (p *Parser) requireTerminator() bool {
	if p.dialect.RequireSemicolons {
		return p.expect(token.SEMICOLON)
	}
	if p.match(token.SEMICOLON) {
		return true
	}
	if p.peekSameLine() == token.EOL {
		return true
	}
	p.col.Error(p.cur.Pos, report.Message_ExpectedNewlineOrSemi, "expected a newline or ';'")
	return false
}

// requireNewlineOrSemi accepts a trailing ';' as the end of the production;
// without one it falls back to requireNewline. Used after struct and
// methodmap declarations and their members, and after a typedef, where a
// ';' is tolerated but never required.
func (p *Parser) requireNewlineOrSemi() bool {
	if p.match(token.SEMICOLON) {
		return true
	}
	return p.requireNewline()
}

// requireNewline requires the production to end its line: the next token
// must start on a later line, or be a closing '}' or the end of input. No
// ';' is consumed. Used after block-bodied statements (if/while/for,
// switch and each case body) and after function and method bodies.
func (p *Parser) requireNewline() bool {
	switch p.peekSameLine() {
	case token.EOL, token.EOF, token.RBRACE:
		return true
	}
	p.col.Error(p.cur.Pos, report.Message_ExpectedNewline, "expected a newline")
	return false
}

func (p *Parser) skipToEndOfLine() {
	for {
		if p.peekSameLine() == token.EOL {
			return
		}
		if p.next().Kind == token.EOF {
			return
		}
	}
}

func (p *Parser) newBase() ast.Base {
	return ast.NewBase(p.cur.Pos)
}

func (p *Parser) baseAt(tok *token.Token) ast.Base {
	return ast.NewBase(tok.Pos)
}
