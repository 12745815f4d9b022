// Package report prints check diagnostics to stdout. Each diagnostic is one
// line starting with a status tag such as "(FAILURE)" so output stays easy to
// grep in CI logs; color is applied to the tag only.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	tagFailure = "(FAILURE)"
	tagError   = "(ERROR)"
	tagSuccess = "(SUCCESS)"
)

// Reporter writes diagnostic lines.
type Reporter struct {
	w io.Writer

	failureStyle lipgloss.Style
	errorStyle   lipgloss.Style
	successStyle lipgloss.Style
	hintStyle    lipgloss.Style
}

// New creates a Reporter writing to w. Colors are used only when w is a
// terminal and noColor is false.
func New(w io.Writer, noColor bool) *Reporter {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Reporter{
		w:            w,
		failureStyle: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		successStyle: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		hintStyle:    r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Info prints an untagged progress line.
func (r *Reporter) Info(format string, args ...any) {
	r.println(fmt.Sprintf(format, args...))
}

// Failure prints a fatal diagnostic.
func (r *Reporter) Failure(format string, args ...any) {
	r.println(r.failureStyle.Render(tagFailure) + " " + fmt.Sprintf(format, args...))
}

// Error prints a recoverable diagnostic.
func (r *Reporter) Error(format string, args ...any) {
	r.println(r.errorStyle.Render(tagError) + " " + fmt.Sprintf(format, args...))
}

// Hint prints advice following a diagnostic.
func (r *Reporter) Hint(msg string) {
	r.println(r.hintStyle.Render(msg))
}

// Success prints the success marker.
func (r *Reporter) Success() {
	r.println(r.successStyle.Render(tagSuccess))
}

func (r *Reporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}
