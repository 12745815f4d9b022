// Package verify checks a dynamic-loading header against the lines generated
// for every API prototype.
package verify

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xcoder-tools/dlcheck/internal/constants"
	"github.com/xcoder-tools/dlcheck/internal/generate"
	"github.com/xcoder-tools/dlcheck/internal/header"
)

// Pass identifies one verification pass.
type Pass int

const (
	PassTypedef Pass = iota + 1
	PassMember
	PassInit
	PassStray
)

// String returns a short pass name.
func (p Pass) String() string {
	switch p {
	case PassTypedef:
		return "typedef"
	case PassMember:
		return "member"
	case PassInit:
		return "init"
	case PassStray:
		return "stray"
	default:
		return fmt.Sprintf("pass(%d)", int(p))
	}
}

// Kind classifies a diagnostic.
type Kind int

const (
	// MissingLine means a generated line is absent from the header.
	MissingLine Kind = iota + 1
	// StrayLine means a marker-bearing header line matched no prototype.
	StrayLine
)

// Diagnostic is one recoverable verification problem.
type Diagnostic struct {
	Kind Kind
	Pass Pass
	// Text is the expected line (MissingLine) or the offending header line
	// (StrayLine), without its trailing newline.
	Text string
	// Line is the 1-based header line number of a stray line.
	Line int
	// Function names the prototype a missing line belongs to.
	Function string
}

// Options tunes verification.
type Options struct {
	// Markers flag a leftover header line as stray when contained in it.
	Markers []string
	// Allowed lines are never stray when contained in a leftover line.
	Allowed []string
	// Exhaustive runs every pass even after a failing one.
	Exhaustive bool
}

// DefaultOptions returns the libxcoder marker set.
func DefaultOptions() Options {
	return Options{
		Markers: constants.DefaultStrayMarkers,
		Allowed: constants.DefaultAllowedLines,
	}
}

// Result collects the diagnostics of one run.
type Result struct {
	Diagnostics []Diagnostic
	// Passes lists the passes that ran, in order.
	Passes []Pass
}

// OK reports whether no pass found a problem.
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Count returns the number of diagnostics of kind k.
func (r *Result) Count(k Kind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Verifier runs the verification passes.
type Verifier struct {
	gen    *generate.Generator
	opts   Options
	logger zerolog.Logger
}

// New creates a Verifier.
func New(gen *generate.Generator, opts Options, logger zerolog.Logger) *Verifier {
	return &Verifier{
		gen:    gen,
		opts:   opts,
		logger: logger.With().Str("component", "verifier").Logger(),
	}
}

// Verify checks lines (the dynamic-loading header, one newline-terminated
// entry per line) against protos, which must have unique names. The returned
// error is only set when lines cannot be generated for a prototype.
func (v *Verifier) Verify(protos []header.Prototype, lines []string) (*Result, error) {
	expected := make([]generate.Lines, len(protos))
	for i, p := range protos {
		l, err := v.gen.Generate(p)
		if err != nil {
			return nil, fmt.Errorf("failed to generate lines for %s: %w", p.Name, err)
		}
		expected[i] = l
	}

	bag := newLineBag(lines)
	res := &Result{}

	expectedPasses := []struct {
		pass Pass
		line func(generate.Lines) string
	}{
		{PassTypedef, func(l generate.Lines) string { return l.Typedef }},
		{PassMember, func(l generate.Lines) string { return l.Member }},
		{PassInit, func(l generate.Lines) string { return l.Init }},
	}

	for _, ep := range expectedPasses {
		before := len(res.Diagnostics)
		res.Passes = append(res.Passes, ep.pass)
		for i, l := range expected {
			want := ep.line(l)
			if !bag.remove(want) {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Kind:     MissingLine,
					Pass:     ep.pass,
					Text:     strings.TrimSuffix(want, "\n"),
					Function: protos[i].Name,
				})
			}
		}
		failed := len(res.Diagnostics) - before
		v.logger.Debug().Stringer("pass", ep.pass).Int("missing", failed).Msg("pass complete")
		if failed > 0 && !v.opts.Exhaustive {
			return res, nil
		}
	}

	res.Passes = append(res.Passes, PassStray)
	rest, numbers := bag.remaining()
	for i, l := range rest {
		if v.isStray(l) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Kind: StrayLine,
				Pass: PassStray,
				Text: strings.TrimSuffix(l, "\n"),
				Line: numbers[i],
			})
		}
	}
	v.logger.Debug().Int("leftover", len(rest)).Int("stray", res.Count(StrayLine)).Msg("stray scan complete")

	return res, nil
}

func (v *Verifier) isStray(line string) bool {
	for _, a := range v.opts.Allowed {
		if strings.Contains(line, a) {
			return false
		}
	}
	for _, m := range v.opts.Markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
