package check

import "strings"

// Status accumulates failure categories as bits. Zero means success.
type Status int

const (
	// StatusInput means a required file is missing or unreadable.
	StatusInput Status = 1 << iota
	// StatusParse means a canonical header holds a malformed tagged statement.
	StatusParse
	// StatusDuplicate means two prototypes share a function name.
	StatusDuplicate
	// StatusMissingLine means an expected line is absent from the
	// dynamic-loading header.
	StatusMissingLine
	// StatusStrayLine means the dynamic-loading header references a function
	// that no canonical header declares.
	StatusStrayLine
)

var statusNames = []struct {
	bit  Status
	name string
}{
	{StatusInput, "input"},
	{StatusParse, "parse"},
	{StatusDuplicate, "duplicate"},
	{StatusMissingLine, "missing-line"},
	{StatusStrayLine, "stray-line"},
}

// OK reports whether no failure bit is set.
func (s Status) OK() bool {
	return s == 0
}

// Has reports whether every bit of f is set in s.
func (s Status) Has(f Status) bool {
	return s&f == f
}

// String lists the set categories, e.g. "missing-line|stray-line".
func (s Status) String() string {
	if s == 0 {
		return "ok"
	}
	var names []string
	for _, n := range statusNames {
		if s.Has(n.bit) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
