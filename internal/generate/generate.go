// Package generate renders the lines a dynamic-loading header must contain
// for each API prototype. Output is compared byte for byte, so every space
// and punctuation mark here is part of the format.
package generate

import (
	"fmt"
	"strings"

	"github.com/xcoder-tools/dlcheck/internal/header"
	"github.com/xcoder-tools/dlcheck/internal/naming"
)

const (
	// PointerColumnWidth is the width of the "    PNI..." column of a member line.
	PointerColumnWidth = 41
	// MemberColumnWidth is the width of the "niName;" column of a member line.
	MemberColumnWidth = 38

	memberIndent = "    "
	initIndent   = "        "
)

// Lines are the three lines expected for one prototype. Each ends in "\n".
type Lines struct {
	Typedef string
	Member  string
	Init    string
}

// Generator renders Lines from prototypes.
type Generator struct {
	names naming.Transformer
	tag   string
}

// New creates a Generator. tag is the calling-convention macro used inside
// typedefs and in canonical declarations (e.g. "LIB_API").
func New(names naming.Transformer, tag string) *Generator {
	return &Generator{names: names, tag: tag}
}

// Generate returns the typedef, struct member and struct init lines for p.
func (g *Generator) Generate(p header.Prototype) (Lines, error) {
	member, err := g.names.MemberName(p.Name)
	if err != nil {
		return Lines{}, err
	}
	ptr := g.names.PointerTypeName(p.Name)

	return Lines{
		Typedef: g.typedef(p, ptr),
		Member:  memberLine(p.Name, ptr, member),
		Init:    initLine(p.Name, member),
	}, nil
}

// typedef renders e.g.
//
//	typedef int (LIB_API* PNIREMOVEEMULATIONPREVENTBYTES) (uint8_t *buf, int size);
func (g *Generator) typedef(p header.Prototype, ptr string) string {
	return "typedef " + p.ReturnType + " (" + g.tag + "* " + ptr + ") (" +
		strings.Join(p.Args, ", ") + ");\n"
}

func memberLine(name, ptr, member string) string {
	return fmt.Sprintf("%-*s%-*s%s\n",
		PointerColumnWidth, memberIndent+ptr,
		MemberColumnWidth, member+";",
		DocComment(name))
}

func initLine(name, member string) string {
	return initIndent + "functionList->" + member +
		" = reinterpret_cast<decltype(" + name + ")*>(dlsym(lib,\"" + name + "\"));\n"
}

// DocComment is the comment closing every struct member line.
func DocComment(name string) string {
	return "/** Client should access ::" + name + " API through this pointer */"
}

// Declaration renders p the way a canonical header declares it, on one line:
//
//	LIB_API ni_retcode_t ni_device_session_open(ni_session_context_t *p_ctx, ni_device_type_t device_type);
func (g *Generator) Declaration(p header.Prototype) string {
	return g.tag + " " + p.ReturnType + " " + p.Name + "(" + strings.Join(p.Args, ", ") + ");"
}
