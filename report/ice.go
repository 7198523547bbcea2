package report

import "fmt"

// ICEError is raised when the code generator observes an AST shape the type
// checker is contracted never to produce (spec.md §4.2: "the code generator
// never reports user errors -- it asserts invariants established by the type
// checker; a violated assertion is a bug, not a user-facing failure").
//
// Mirrors the teacher's report.ReportICE / log.Fatalln("... not yet
// supported") idiom, but as a recoverable Go panic rather than a direct
// process exit so tests can assert on it with recover().
type ICEError struct {
	Message string
}

func (e *ICEError) Error() string {
	return "internal compiler error: " + e.Message
}

// ICE panics with an ICEError built from the given format string.
func ICE(format string, args ...interface{}) {
	panic(&ICEError{Message: fmt.Sprintf(format, args...)})
}
