package report

// Code is a fixed enumeration of diagnostic message codes.  Every
// user-facing error or warning the parser can raise is tagged with one of
// these so callers (and tests) can match on the condition rather than the
// rendered message text.
type Code int

const (
	Message_WrongToken Code = iota
	Message_ConstSpecifiedTwice
	Message_NoChainedRelationalOps
	Message_OneDefaultPerSwitch
	Message_DefaultMustBeLastCase
	Message_SingleStatementPerCase
	Message_NewStyleBadKeyword
	Message_NewDeclsRequired
	Message_TypeIsDeprecated
	Message_TypeCannotBeReference
	Message_FixedArrayInPrefix
	Message_DoubleArrayDims
	Message_ExpectedTypeExpr
	Message_ExpectedExpression
	Message_ExpectedGlobal
	Message_ExpectedLayoutMember
	Message_InvalidAccessorName
	Message_AccessorRedeclared
	Message_VariableMustBeInBlock
	Message_MultipleVarargs
	Message_FunctagsNotSupported
	Message_ExpectedNewlineOrSemi
	Message_ExpectedNewline
)

// codeNames gives each code a short symbolic name for diagnostic display and
// test failure messages.
var codeNames = map[Code]string{
	Message_WrongToken:             "wrong-token",
	Message_ConstSpecifiedTwice:    "const-specified-twice",
	Message_NoChainedRelationalOps: "no-chained-relational-ops",
	Message_OneDefaultPerSwitch:    "one-default-per-switch",
	Message_DefaultMustBeLastCase:  "default-must-be-last-case",
	Message_SingleStatementPerCase: "single-statement-per-case",
	Message_NewStyleBadKeyword:     "new-style-bad-keyword",
	Message_NewDeclsRequired:       "new-decls-required",
	Message_TypeIsDeprecated:       "type-is-deprecated",
	Message_TypeCannotBeReference:  "type-cannot-be-reference",
	Message_FixedArrayInPrefix:     "fixed-array-in-prefix",
	Message_DoubleArrayDims:        "double-array-dims",
	Message_ExpectedTypeExpr:       "expected-type-expr",
	Message_ExpectedExpression:     "expected-expression",
	Message_ExpectedGlobal:         "expected-global",
	Message_ExpectedLayoutMember:   "expected-layout-member",
	Message_InvalidAccessorName:    "invalid-accessor-name",
	Message_AccessorRedeclared:     "accessor-redeclared",
	Message_VariableMustBeInBlock:  "variable-must-be-in-block",
	Message_MultipleVarargs:        "multiple-varargs",
	Message_FunctagsNotSupported:   "functags-not-supported",
	Message_ExpectedNewlineOrSemi:  "expected-newline-or-semi",
	Message_ExpectedNewline:        "expected-newline",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown-code"
}
