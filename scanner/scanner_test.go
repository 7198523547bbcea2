package scanner

import (
	"strings"
	"testing"

	"scriptfe/report"
	"scriptfe/token"
)

func newScanner(src string) (*Scanner, *report.Collector) {
	col := report.NewCollector()
	atoms := token.NewTable()
	return New(strings.NewReader(src), col, atoms), col
}

// kinds drains every token kind up to and including the first EOF.
func kinds(s *Scanner) []token.Kind {
	var out []token.Kind
	for {
		tok := s.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestScannerIdentifierAndKeyword(t *testing.T) {
	s, _ := newScanner("foo while")
	if tok := s.Next(); tok.Kind != token.NAME || tok.Text != "foo" {
		t.Fatalf("expected NAME foo, got %v %q", tok.Kind, tok.Text)
	}
	if tok := s.Next(); tok.Kind != token.WHILE {
		t.Fatalf("expected WHILE, got %v", tok.Kind)
	}
}

func TestScannerDeprecatedTypeSpellingsStayName(t *testing.T) {
	// "Float"/"String"/"_" are reserved deprecated spellings but the lexer
	// itself just hands them back as NAME -- only the parser special-cases
	// them into a deprecation warning.
	for _, src := range []string{"Float", "String", "_"} {
		s, _ := newScanner(src)
		if tok := s.Next(); tok.Kind != token.NAME || tok.Text != src {
			t.Fatalf("expected NAME %q, got %v %q", src, tok.Kind, tok.Text)
		}
	}
}

func TestScannerLabelRequiresAllowAt(t *testing.T) {
	s, _ := newScanner("Float:x")
	if tok := s.Next(); tok.Kind != token.LABEL || tok.Text != "Float" {
		t.Fatalf("expected LABEL Float, got %v %q", tok.Kind, tok.Text)
	}
	if tok := s.Next(); tok.Kind != token.NAME || tok.Text != "x" {
		t.Fatalf("expected NAME x, got %v %q", tok.Kind, tok.Text)
	}
}

func TestScannerAllowTagsFalseSuppressesLabel(t *testing.T) {
	s, _ := newScanner("Float:x")
	s.AllowTags(false)
	if tok := s.Next(); tok.Kind != token.NAME || tok.Text != "Float" {
		t.Fatalf("expected a plain NAME Float with tags disabled, got %v %q", tok.Kind, tok.Text)
	}
	if tok := s.Next(); tok.Kind != token.COLON {
		t.Fatalf("expected a bare COLON, got %v", tok.Kind)
	}
}

func TestScannerIntegerHexAndFloatLiterals(t *testing.T) {
	s, _ := newScanner("42 0x1F 3.14 2e10")

	tok := s.Next()
	if tok.Kind != token.INTEGER_LITERAL || tok.IntValue != 42 {
		t.Fatalf("expected int 42, got %v %d", tok.Kind, tok.IntValue)
	}

	tok = s.Next()
	if tok.Kind != token.HEX_LITERAL || tok.IntValue != 0x1F {
		t.Fatalf("expected hex 0x1F, got %v %d", tok.Kind, tok.IntValue)
	}

	tok = s.Next()
	if tok.Kind != token.FLOAT_LITERAL || tok.FloatValue != 3.14 {
		t.Fatalf("expected float 3.14, got %v %g", tok.Kind, tok.FloatValue)
	}

	tok = s.Next()
	if tok.Kind != token.FLOAT_LITERAL || tok.FloatValue != 2e10 {
		t.Fatalf("expected float 2e10, got %v %g", tok.Kind, tok.FloatValue)
	}
}

func TestScannerStringLiteralDecodesEscapes(t *testing.T) {
	s, _ := newScanner(`"a\nb\tc"`)
	tok := s.Next()
	if tok.Kind != token.STRING_LITERAL {
		t.Fatalf("expected STRING_LITERAL, got %v", tok.Kind)
	}
	if tok.Text != "a\nb\tc" {
		t.Fatalf("expected decoded escapes, got %q", tok.Text)
	}
}

func TestScannerUnterminatedStringReportsError(t *testing.T) {
	s, col := newScanner("\"abc")
	tok := s.Next()
	if tok.Kind != token.ERROR {
		t.Fatalf("expected ERROR for an unterminated string, got %v", tok.Kind)
	}
	if !col.HasErrors() {
		t.Fatal("expected the collector to carry an error")
	}
}

func TestScannerCharLiteralWithEscape(t *testing.T) {
	s, _ := newScanner(`'\n'`)
	tok := s.Next()
	if tok.Kind != token.CHAR_LITERAL || tok.CharValue != '\n' {
		t.Fatalf("expected CHAR_LITERAL '\\n', got %v %q", tok.Kind, tok.CharValue)
	}
}

func TestScannerLineAndBlockCommentsAreSkipped(t *testing.T) {
	s, _ := newScanner("a // trailing comment\n/* block\ncomment */ b")
	if tok := s.Next(); tok.Kind != token.NAME || tok.Text != "a" {
		t.Fatalf("expected NAME a, got %v %q", tok.Kind, tok.Text)
	}
	if tok := s.Next(); tok.Kind != token.NAME || tok.Text != "b" {
		t.Fatalf("expected NAME b after both comments were skipped, got %v %q", tok.Kind, tok.Text)
	}
}

func TestScannerPunctuationGreedilyMatchesLongestOperator(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{">", token.GT}, {">=", token.GE}, {">>", token.SHR}, {">>=", token.ASSIGN_SHR},
		{">>>", token.USHR}, {">>>=", token.ASSIGN_USHR},
		{"...", token.ELLIPSES},
	}
	for _, c := range cases {
		s, _ := newScanner(c.src)
		if tok := s.Next(); tok.Kind != c.kind {
			t.Fatalf("%q: expected %v, got %v", c.src, c.kind, tok.Kind)
		}
		if tok := s.Next(); tok.Kind != token.EOF {
			t.Fatalf("%q: expected nothing left after the operator, got %v", c.src, tok.Kind)
		}
	}
}

func TestScannerDotDotIsNotEllipses(t *testing.T) {
	// Two dots with no third is not a valid punctuation run; the lexer
	// should stop at the longest match it actually has (".") and leave the
	// rest for the next token, not error out.
	s, _ := newScanner("..")
	if tok := s.Next(); tok.Kind != token.DOT {
		t.Fatalf("expected a single DOT, got %v", tok.Kind)
	}
	if tok := s.Next(); tok.Kind != token.DOT {
		t.Fatalf("expected a second DOT, got %v", tok.Kind)
	}
}

func TestScannerUndoRestoresPreviousCurrent(t *testing.T) {
	s, _ := newScanner("a b")
	first := s.Next()
	second := s.Next()
	if second.Text != "b" {
		t.Fatalf("expected b, got %q", second.Text)
	}
	s.Undo()
	if s.Current() != first {
		t.Fatalf("expected Undo to restore the previous current token")
	}
	again := s.Next()
	if again.Text != "b" {
		t.Fatalf("expected Next after Undo to re-yield b, got %q", again.Text)
	}
}

func TestScannerPushBackOverridesNext(t *testing.T) {
	s, _ := newScanner("a b")
	first := s.Next()
	_ = s.Next()
	s.PushBack(first)
	if tok := s.Next(); tok != first {
		t.Fatal("expected PushBack's token to be replayed verbatim")
	}
}

func TestScannerPeekDoesNotConsume(t *testing.T) {
	s, _ := newScanner("a b")
	s.Next()
	if k := s.Peek(); k != token.NAME {
		t.Fatalf("expected Peek to report NAME, got %v", k)
	}
	if tok := s.Next(); tok.Text != "b" {
		t.Fatalf("expected Peek to not consume b, got %q", tok.Text)
	}
}

func TestScannerPeekTokenSameLineReportsEOLAcrossNewline(t *testing.T) {
	s, _ := newScanner("a\nb")
	s.Next()
	if k := s.PeekTokenSameLine(); k != token.EOL {
		t.Fatalf("expected EOL across the newline, got %v", k)
	}
	if tok := s.Next(); tok.Text != "b" {
		t.Fatalf("expected b still available after the EOL peek, got %q", tok.Text)
	}
}

func TestScannerPeekTokenSameLineReportsKindOnSameLine(t *testing.T) {
	s, _ := newScanner("a b")
	s.Next()
	if k := s.PeekTokenSameLine(); k != token.NAME {
		t.Fatalf("expected NAME on the same line, got %v", k)
	}
}

func TestScannerRequireSemicolonsToggle(t *testing.T) {
	s, _ := newScanner("")
	if s.RequiresSemicolons() {
		t.Fatal("expected the default dialect to not require semicolons")
	}
	s.RequireSemicolons(true)
	if !s.RequiresSemicolons() {
		t.Fatal("expected RequireSemicolons(true) to stick")
	}
}

func TestScannerCurrentNameReflectsLastToken(t *testing.T) {
	s, _ := newScanner("foo")
	s.Next()
	if name := s.CurrentName(); name != "foo" {
		t.Fatalf("expected CurrentName foo, got %q", name)
	}
}

func TestScannerTokenStreamEndsInEOF(t *testing.T) {
	s, _ := newScanner("int x;")
	ks := kinds(s)
	if ks[len(ks)-1] != token.EOF {
		t.Fatalf("expected the stream to end in EOF, got %v", ks)
	}
	want := []token.Kind{token.INT, token.NAME, token.SEMICOLON, token.EOF}
	if len(ks) != len(want) {
		t.Fatalf("expected %v, got %v", want, ks)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ks)
		}
	}
}
