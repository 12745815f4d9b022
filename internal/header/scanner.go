package header

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xcoder-tools/dlcheck/internal/constants"
	"github.com/xcoder-tools/dlcheck/internal/naming"
	"github.com/xcoder-tools/dlcheck/internal/safe"
)

// Options controls which statements the scanner recognizes.
type Options struct {
	// Tag starts a statement when it begins a line and is followed by whitespace.
	Tag string
	// Terminator ends a statement when a cleaned line ends with it.
	Terminator string
	// DeprecationMarker is removed from return types. Empty disables removal.
	DeprecationMarker string
	// StripComments removes a "//" comment and a "/* ... */" comment that closes
// at the end of the line, then trims trailing whitespace. "//" inside a block
// comment does not start a comment.
func StripComments(line string) string {
	open, end := -1, -1
	inBlock := false
scan:
	for i := 0; i+1 < len(line); i++ {
		switch {
		case inBlock:
			if line[i] == '*' && line[i+1] == '/' {
				inBlock = false
				end = i + 2
				i++
			}
		case line[i] == '/' && line[i+1] == '*':
			inBlock = true
			open = i
			i++
		case line[i] == '/' && line[i+1] == '/':
			line = line[:i]
			break scan
		}
	}

	line = strings.TrimRight(line, " \t")
	if !inBlock && open >= 0 && end == len(line) {
		line = line[:open]
	}
	return strings.TrimRight(line, " \t")
}
