// Package scanner implements the lexical front end consumed by the parser.
package scanner

import (
	"io"

	"scriptfe/report"
	"scriptfe/token"
)

// Scanner implements the §4.1.1 scanner contract: single-token undo, an
// arbitrary pushback slot, a line-sensitive peek, and two dialect toggles
// the parser flips mid-stream (AutoAllowTags, requireSemicolons).  It wraps
// a lexer the same way the teacher's syntax.Parser wraps a *syntax.Lexer:
// the lexer only knows how to produce the next raw token, and all
// lookahead/rewind bookkeeping lives one layer up.
type Scanner struct {
	lex *lexer
	col *report.Collector

	cur  *token.Token // last token returned by next()
	prev *token.Token // token before cur, restored by undo()

	pushed   *token.Token // pending pushBack() token, consumed before lexing
	hasPushed bool

	requireSemis bool
}

// New creates a Scanner reading from r, reporting lexical errors to col.
func New(r io.Reader, col *report.Collector, atoms *token.Table) *Scanner {
	return &Scanner{
		lex: newLexer(r, atoms),
		col: col,
	}
}

// RequireSemicolons toggles the strict-terminator dialect: when true,
// statements must end in ';' rather than accepting a bare newline.
func (s *Scanner) RequireSemicolons(require bool) {
	s.requireSemis = require
}

// RequiresSemicolons reports the current terminator dialect.
func (s *Scanner) RequiresSemicolons() bool {
	return s.requireSemis
}

// AllowTags toggles label-token recognition ("name:").  Expression contexts
// where a trailing colon would be misread as a label (ternary branches,
// case labels) call AllowTags(false) around the ambiguous span and
// restore it afterward.
func (s *Scanner) AllowTags(allow bool) {
	s.lex.allowAt = allow
}

// next advances the scanner and returns the new current token.
func (s *Scanner) Next() *token.Token {
	s.prev = s.cur

	if s.hasPushed {
		s.cur = s.pushed
		s.pushed = nil
		s.hasPushed = false
		return s.cur
	}

	tok, err := s.lex.next()
	if err != nil {
		s.reportLexError(err)
		tok = &token.Token{Kind: token.ERROR}
	}
	s.cur = tok
	return s.cur
}

// Peek returns the kind of the next token without consuming it.
func (s *Scanner) Peek() token.Kind {
	saved := s.cur
	savedPrev := s.prev
	next := s.Next()
	s.PushBack(next)
	s.cur = saved
	s.prev = savedPrev
	return next.Kind
}

// PeekTokenSameLine returns the kind of the next token if it starts on the
// same physical line as the current token, or token.EOL otherwise.  This
// backs the parser's newline-sensitive statement terminator check (§4.1.1).
func (s *Scanner) PeekTokenSameLine() token.Kind {
	if s.cur == nil || s.cur.Pos == nil {
		return s.Peek()
	}
	curLine := s.cur.Pos.EndLn

	saved := s.cur
	savedPrev := s.prev
	next := s.Next()
	s.PushBack(next)
	s.cur = saved
	s.prev = savedPrev

	if next.Pos != nil && next.Pos.StartLn != curLine {
		return token.EOL
	}
	return next.Kind
}

// Undo rewinds exactly one token: the token last returned by Next is pushed
// back and the previous current token is restored.  Only a single level of
// undo is guaranteed, matching the §4.1.1 contract.
func (s *Scanner) Undo() {
	if s.cur != nil {
		s.PushBack(s.cur)
	}
	s.cur = s.prev
	s.prev = nil
}

// PushBack makes tok the next token Next() will return, overriding whatever
// the lexer would have produced.  Used by the parser to un-consume tokens
// that were read speculatively while disambiguating a declaration or an
// index expression (spec.md §4.1.3, §4.1.4).
func (s *Scanner) PushBack(tok *token.Token) {
	s.pushed = tok
	s.hasPushed = true
}

// Current returns the token last returned by Next.
func (s *Scanner) Current() *token.Token {
	return s.cur
}

// CurrentName returns the Text of the current token, for productions that
// just consumed a NAME.
func (s *Scanner) CurrentName() string {
	if s.cur == nil {
		return ""
	}
	return s.cur.Text
}

// Begin returns the start position of the current token.
func (s *Scanner) Begin() *report.TextPosition {
	if s.cur == nil {
		return nil
	}
	return s.cur.Pos
}

func (s *Scanner) reportLexError(err error) {
	if le, ok := err.(*lexError); ok {
		s.col.Error(le.pos, report.Message_WrongToken, "%s", le.msg)
		return
	}
	s.col.Error(nil, report.Message_WrongToken, "%s", err.Error())
}
