package report

import "fmt"

// Diagnostic is a single buffered compiler message.
type Diagnostic struct {
	Code    Code
	Pos     *TextPosition
	Message string
	IsError bool
}

// Collector accumulates diagnostics without printing them, so parsing (and
// code generation's internal-invariant checks) can be tested without
// capturing stdout.  It is the concrete implementation of the `reportError`
// collaborator described in spec.md §4.1.6/§6.
type Collector struct {
	diags []Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Error records a compile error at the given position.  It always returns
// false so call sites can write `return c.Error(...)` inside a production
// that returns a nullish-sentinel boolean.
func (c *Collector) Error(pos *TextPosition, code Code, format string, args ...interface{}) bool {
	c.diags = append(c.diags, Diagnostic{
		Code:    code,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
		IsError: true,
	})
	return false
}

// Warn records a compile warning at the given position.
func (c *Collector) Warn(pos *TextPosition, code Code, format string, args ...interface{}) {
	c.diags = append(c.diags, Diagnostic{
		Code:    code,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
		IsError: false,
	})
}

// Diagnostics returns every diagnostic collected so far, in emission order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

// HasErrors reports whether any error-level diagnostic was collected.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diags {
		if d.IsError {
			return true
		}
	}
	return false
}

// ErrorsWithCode filters the collected diagnostics down to a single code;
// handy in tests that assert "exactly one NoChainedRelationalOps".
func (c *Collector) ErrorsWithCode(code Code) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}
