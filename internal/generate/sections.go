package generate

import (
	"bufio"
	"io"

	"github.com/xcoder-tools/dlcheck/internal/header"
)

// Group is the set of prototypes declared by one canonical header.
type Group struct {
	Header     string
	Prototypes []header.Prototype
}

// Flatten returns the prototypes of groups in header order.
func Flatten(groups []Group) []header.Prototype {
	var protos []header.Prototype
	for _, g := range groups {
		protos = append(protos, g.Prototypes...)
	}
	return protos
}

// section is one of the three blocks of a dynamic-loading header.
type section struct {
	indent string
	title  string
	line   func(Lines) string
}

var sections = []section{
	{indent: "", title: "Function pointers for ", line: func(l Lines) string { return l.Typedef }},
	{indent: memberIndent, title: "API function list for ", line: func(l Lines) string { return l.Member }},
	{indent: initIndent, title: "Function/symbol loading for ", line: func(l Lines) string { return l.Init }},
}

// Render writes the typedef, function list and symbol loading blocks for
// groups, each block split into per-header runs under a banner comment.
func (g *Generator) Render(w io.Writer, groups []Group) error {
	rendered := make([][]Lines, len(groups))
	for i, grp := range groups {
		rendered[i] = make([]Lines, len(grp.Prototypes))
		for j, p := range grp.Prototypes {
			l, err := g.Generate(p)
			if err != nil {
				return err
			}
			rendered[i][j] = l
		}
	}

	bw := bufio.NewWriter(w)
	for si, sec := range sections {
		if si > 0 {
			_, _ = bw.WriteString("\n")
		}
		for i, grp := range groups {
			_, _ = bw.WriteString(sec.indent + "//\n")
			_, _ = bw.WriteString(sec.indent + "// " + sec.title + grp.Header + "\n")
			_, _ = bw.WriteString(sec.indent + "//\n")
			for _, l := range rendered[i] {
				_, _ = bw.WriteString(sec.line(l))
			}
		}
	}
	return bw.Flush()
}
