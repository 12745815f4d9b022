package header

import (
	"regexp"
	"strings"
)

// decorationChars may separate the return type from the function name.
const decorationChars = " \t*&"

// Statement holds the named fields of one tagged prototype statement:
//
//	<Tag><ReturnTokens><Decoration><Name>(<Params>)<terminator>
//
// ReturnTokens starts with whitespace and never contains '*' or '&'.
// Decoration is the longest run of blanks, '*' and '&' directly before Name.
// Name is the final run of characters outside that set; blanks between Name
// and '(' are ignored.
type Statement struct {
	Text         string
	ReturnTokens string
	Decoration   string
	Name         string
	Params       string
}

// ReturnType joins the return tokens and any pointer or reference decoration,
// e.g. " ni_frame_t" + " *" -> "ni_frame_t *".
func (s Statement) ReturnType() string {
	rt := strings.TrimSpace(s.ReturnTokens)
	if d := strings.TrimSpace(s.Decoration); d != "" {
		rt += " " + d
	}
	return rt
}

// Args splits the parameter text on commas. Empty parentheses give an empty
// list; "(void)" gives ["void"].
func (s Statement) Args() []string {
	parts := strings.Split(s.Params, ",")
	if len(parts) == 1 && strings.TrimSpace(parts[0]) == "" {
		return []string{}
	}
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
	}
	return args
}

// lexStatement splits a complete statement into its fields.
func lexStatement(text, tag, terminator string) (Statement, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return Statement{}, ErrNoParamList
	}
	if !strings.HasSuffix(text, terminator) {
		return Statement{}, ErrUnterminated
	}

	decl := text[:open]
	if !strings.HasPrefix(decl, tag) {
		return Statement{}, ErrMalformedDeclaration
	}
	rest := strings.TrimRight(decl[len(tag):], " \t")

	nameStart := strings.LastIndexAny(rest, decorationChars) + 1
	if nameStart == 0 || nameStart == len(rest) {
		return Statement{}, ErrMalformedDeclaration
	}

	decStart := nameStart
	for decStart > 0 && strings.IndexByte(decorationChars, rest[decStart-1]) >= 0 {
		decStart--
	}

	name := strings.TrimSpace(rest[nameStart:])
	if name == "" {
		return Statement{}, ErrMalformedDeclaration
	}

	ret := rest[:decStart]
	if ret == "" || !isSpace(ret[0]) || strings.ContainsAny(ret, "*&") || strings.TrimSpace(ret) == "" {
		return Statement{}, ErrMalformedDeclaration
	}

	params := ""
	if end := len(text) - len(terminator); end > open {
		params = text[open+1 : end]
	}

	return Statement{
		Text:         text,
		ReturnTokens: ret,
		Decoration:   rest[decStart:nameStart],
		Name:         name,
		Params:       params,
	}, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// markerStripper removes a deprecation marker token from a return type.
type markerStripper struct {
	marker string
	re     *regexp.Regexp
}

func newMarkerStripper(marker string) *markerStripper {
	if marker == "" {
		return nil
	}
	return &markerStripper{
		marker: marker,
		re:     regexp.MustCompile(`\s*\b` + regexp.QuoteMeta(marker) + `\b\s*`),
	}
}

// strip drops the marker and the whitespace around it. A return type that is
// nothing but the marker is left alone.
func (m *markerStripper) strip(rt string) string {
	if m == nil || strings.TrimSpace(rt) == m.marker {
		return rt
	}
	return strings.TrimSpace(m.re.ReplaceAllString(rt, " "))
}
