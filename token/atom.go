package token

import "sync"

// Atom is an interned identifier: two atoms with the same spelling always
// share the same underlying *entry, so atoms can be compared by pointer
// instead of by string content.  This mirrors the teacher's approach to
// symbol names in bootstrap/depm/symbol.go, where repeated identifier
// lookups are kept cheap by interning.
type Atom struct {
	name *string
}

// String returns the atom's spelling.
func (a Atom) String() string {
	if a.name == nil {
		return ""
	}
	return *a.name
}

// Equal reports whether two atoms denote the same interned name.
func (a Atom) Equal(b Atom) bool {
	return a.name == b.name
}

// IsZero reports whether a is the zero Atom (no name interned).
func (a Atom) IsZero() bool {
	return a.name == nil
}

// Table interns identifier strings into Atoms.  A Table is safe for
// concurrent use so a single process-wide table can back every scanner
// instance.
type Table struct {
	mu      sync.Mutex
	entries map[string]*string
}

// NewTable creates an empty intern table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*string)}
}

// Intern returns the Atom for name, creating and caching a new entry the
// first time name is seen.
func (t *Table) Intern(name string) Atom {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.entries[name]; ok {
		return Atom{name: p}
	}
	s := name
	t.entries[name] = &s
	return Atom{name: &s}
}
