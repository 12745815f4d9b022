package header

import (
	"errors"
	"fmt"
)

var (
	// ErrNoParamList means a statement has no opening parenthesis.
	ErrNoParamList = errors.New("could not find first '(' for function prototype")
	// ErrMalformedDeclaration means the text before '(' could not be split
	// into a return type and a function name.
	ErrMalformedDeclaration = errors.New("could not determine return_type and function_name for function prototype")
	// ErrUnterminated means the input ended inside a statement.
	ErrUnterminated = errors.New("reached end of file before statement terminator")
)

// ParseError reports a statement that could not be turned into a Prototype.
// Parse errors are fatal for a run.
type ParseError struct {
	File string
	Line int
	Text string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if loc == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Text)
	}
	return fmt.Sprintf("%s: %v: %s", loc, e.Err, e.Text)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}
