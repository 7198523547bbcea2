// Package token defines the lexical token vocabulary shared by the scanner
// and the parser.
package token

import "scriptfe/report"

// Kind enumerates every lexical token kind the scanner can produce.  Kinds
// are plain ints (not a Stringer-heavy type) in the same style as the
// teacher's bootstrap/syntax/token.go TOK_* constants.
type Kind int

const (
	EOF Kind = iota
	ERROR
	EOL // synthetic "end of line" returned by peekTokenSameLine

	NAME
	LABEL // NAME immediately followed by ':' used as a type tag / case label

	INTEGER_LITERAL
	HEX_LITERAL
	FLOAT_LITERAL
	STRING_LITERAL
	CHAR_LITERAL
	TRUE
	FALSE
	THIS
	NULL

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	COLON
	SEMICOLON
	DOT
	ELLIPSES
	QMARK

	// Assignment operators
	ASSIGN
	ASSIGN_ADD
	ASSIGN_SUB
	ASSIGN_MUL
	ASSIGN_DIV
	ASSIGN_MOD
	ASSIGN_AND
	ASSIGN_OR
	ASSIGN_XOR
	ASSIGN_SHL
	ASSIGN_SHR
	ASSIGN_USHR

	// Operators, ordered to match the precedence ladder in spec.md §4.1.2.
	LOR
	LAND
	EQUALS
	NOTEQUALS
	LT
	LE
	GT
	GE
	BITOR
	BITXOR
	BITAND
	SHL
	SHR
	USHR
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	NOT
	TILDE
	AMPERSAND
	INCREMENT
	DECREMENT
	NEGATE // synthesized from MINUS in unary position

	// Keywords
	CONST
	NEW
	DECL
	STATIC
	PUBLIC
	STOCK
	NATIVE
	FORWARD
	SIZEOF
	FOR
	WHILE
	DO
	BREAK
	CONTINUE
	RETURN
	ENUM
	SWITCH
	CASE
	DEFAULT
	IF
	ELSE
	STRUCT
	UNION
	TYPEDEF
	FUNCTAG
	METHODMAP
	NULLABLE_KW
	PROPERTY
	FUNCTION

	// Builtin type keywords ("new type tokens" in the teacher's parlance).
	VOID
	INT
	CHAR_TYPE
	FLOAT_TYPE
	OBJECT
	BOOL
	IMPLICIT_INT // never scanned; used internally by TypeSpecifier
)

var names = map[Kind]string{
	EOF: "<eof>", ERROR: "<error>", EOL: "<eol>",
	NAME: "name", LABEL: "label",
	INTEGER_LITERAL: "int-literal", HEX_LITERAL: "hex-literal", FLOAT_LITERAL: "float-literal",
	STRING_LITERAL: "string-literal", CHAR_LITERAL: "char-literal",
	TRUE: "true", FALSE: "false", THIS: "this", NULL: "null",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	COMMA: ",", COLON: ":", SEMICOLON: ";", DOT: ".", ELLIPSES: "...", QMARK: "?",
	ASSIGN: "=", ASSIGN_ADD: "+=", ASSIGN_SUB: "-=", ASSIGN_MUL: "*=", ASSIGN_DIV: "/=",
	ASSIGN_MOD: "%=", ASSIGN_AND: "&=", ASSIGN_OR: "|=", ASSIGN_XOR: "^=",
	ASSIGN_SHL: "<<=", ASSIGN_SHR: ">>=", ASSIGN_USHR: ">>>=",
	LOR: "||", LAND: "&&", EQUALS: "==", NOTEQUALS: "!=",
	LT: "<", LE: "<=", GT: ">", GE: ">=",
	BITOR: "|", BITXOR: "^", BITAND: "&", SHL: "<<", SHR: ">>", USHR: ">>>",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	NOT: "!", TILDE: "~", AMPERSAND: "&", INCREMENT: "++", DECREMENT: "--", NEGATE: "-",
	CONST: "const", NEW: "new", DECL: "decl", STATIC: "static", PUBLIC: "public",
	STOCK: "stock", NATIVE: "native", FORWARD: "forward", SIZEOF: "sizeof",
	FOR: "for", WHILE: "while", DO: "do", BREAK: "break", CONTINUE: "continue",
	RETURN: "return", ENUM: "enum", SWITCH: "switch", CASE: "case", DEFAULT: "default",
	IF: "if", ELSE: "else", STRUCT: "struct", UNION: "union", TYPEDEF: "typedef",
	FUNCTAG: "functag", METHODMAP: "methodmap", NULLABLE_KW: "__nullable__",
	PROPERTY: "property", FUNCTION: "function",
	VOID: "void", INT: "int", CHAR_TYPE: "char", FLOAT_TYPE: "float", OBJECT: "object",
	BOOL: "bool", IMPLICIT_INT: "<implicit-int>",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "<unknown>"
}

// NewTypeTokens are the builtin type keywords recognized as the start of a
// new-style type expression.
var NewTypeTokens = map[Kind]bool{
	VOID: true, INT: true, CHAR_TYPE: true, FLOAT_TYPE: true, OBJECT: true, BOOL: true,
}

// IsNewTypeToken reports whether kind starts a new-style builtin type.
func IsNewTypeToken(kind Kind) bool {
	return NewTypeTokens[kind]
}

// Keywords maps identifier spellings to their keyword kind.
var Keywords = map[string]Kind{
	"true": TRUE, "false": FALSE, "this": THIS, "null": NULL,
	"const": CONST, "new": NEW, "decl": DECL, "static": STATIC, "public": PUBLIC,
	"stock": STOCK, "native": NATIVE, "forward": FORWARD, "sizeof": SIZEOF,
	"for": FOR, "while": WHILE, "do": DO, "break": BREAK, "continue": CONTINUE,
	"return": RETURN, "enum": ENUM, "switch": SWITCH, "case": CASE, "default": DEFAULT,
	"if": IF, "else": ELSE, "struct": STRUCT, "union": UNION, "typedef": TYPEDEF,
	"functag": FUNCTAG, "methodmap": METHODMAP, "__nullable__": NULLABLE_KW,
	"property": PROPERTY, "function": FUNCTION,
	"void": VOID, "int": INT, "char": CHAR_TYPE, "float": FLOAT_TYPE,
	"object": OBJECT, "bool": BOOL,
	"Float": NAME, "String": NAME, "_": NAME, // deprecated spellings stay NAME; parser special-cases them
}

// DeprecatedTypeNames maps a deprecated old-style type spelling to its
// replacement, for the Message_TypeIsDeprecated diagnostic.
var DeprecatedTypeNames = map[string]string{
	"Float":  "float",
	"String": "char",
	"_":      "int",
}

// Token is a single lexical token: a kind, its source position, and an
// optional payload.
type Token struct {
	Kind Kind
	Pos  *report.TextPosition

	// Text is the literal text of the token as written (identifier name,
	// raw numeric text, or the decoded contents of a string/char literal).
	Text string

	IntValue   int64
	FloatValue float64
	CharValue  rune
}
