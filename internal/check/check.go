// Package check runs the consistency check end to end: input file checks,
// header scanning, duplicate detection and verification. Every problem is
// printed through a report.Reporter and folded into a Status.
package check

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xcoder-tools/dlcheck/internal/config"
	"github.com/xcoder-tools/dlcheck/internal/generate"
	"github.com/xcoder-tools/dlcheck/internal/header"
	"github.com/xcoder-tools/dlcheck/internal/naming"
	"github.com/xcoder-tools/dlcheck/internal/report"
	"github.com/xcoder-tools/dlcheck/internal/safe"
	"github.com/xcoder-tools/dlcheck/internal/verify"
)

const strayHint = "Perhaps there is a duplicate function in dynamic loading header file; " +
	"or, the function is not labeled with '%s' in header file"

// Checker wires the scanner, generator and verifier from a configuration.
type Checker struct {
	cfg      *config.Config
	read     *safe.ReadOptions
	scanner  *header.Scanner
	gen      *generate.Generator
	verifier *verify.Verifier
	out      *report.Reporter
	logger   zerolog.Logger
}

// New creates a Checker. cfg must be valid.
func New(cfg *config.Config, out *report.Reporter, logger zerolog.Logger) *Checker {
	names := Transformer(cfg)
	read := &safe.ReadOptions{
		MaxSize:        cfg.Files.MaxSize,
		RejectSymlinks: cfg.Files.RejectSymlinks,
	}
	gen := generate.New(names, cfg.Grammar.Tag)

	return &Checker{
		cfg:  cfg,
		read: read,
		scanner: header.NewScanner(header.Options{
			Tag:               cfg.Grammar.Tag,
			Terminator:        cfg.Grammar.Terminator,
			DeprecationMarker: cfg.Grammar.DeprecationMarker,
			StripComments:     cfg.Grammar.StripComments,
			Names:             names,
			Read:              read,
		}, logger),
		gen: gen,
		verifier: verify.New(gen, verify.Options{
			Markers:    cfg.Verify.StrayMarkers,
			Allowed:    cfg.Verify.AllowedLines,
			Exhaustive: cfg.Verify.Exhaustive,
		}, logger),
		out:    out,
		logger: logger.With().Str("component", "checker").Logger(),
	}
}

// Transformer builds the name transformer described by cfg.
func Transformer(cfg *config.Config) naming.Transformer {
	return naming.Transformer{
		Prefix:        cfg.Naming.Prefix,
		PointerPrefix: cfg.Naming.PointerPrefix,
		Replacements:  cfg.Naming.Replacements,
		Tag:           cfg.Grammar.Tag,
	}
}

// Generator returns the line generator used by the checker.
func (c *Checker) Generator() *generate.Generator {
	return c.gen
}

// HeaderPaths resolves the canonical headers against the directory of the
// dynamic-loading header.
func (c *Checker) HeaderPaths(dlHeader string) []string {
	dir := filepath.Dir(dlHeader)
	paths := make([]string, len(c.cfg.Headers))
	for i, h := range c.cfg.Headers {
		paths[i] = filepath.Join(dir, h)
	}
	return paths
}

// Check verifies dlHeader against the canonical headers next to it.
func (c *Checker) Check(dlHeader string) Status {
	paths := c.HeaderPaths(dlHeader)
	c.out.Info("Checking dynamic loading header file: %s", dlHeader)
	c.out.Info("Checking function prototypes from headers: %s", strings.Join(paths, " "))

	groups, status := c.load(dlHeader, paths)
	if !status.OK() {
		return status
	}
	protos := generate.Flatten(groups)

	lines, err := safe.ReadLines(dlHeader, c.read, c.logger)
	if err != nil {
		c.out.Failure("could not read %s: %v", dlHeader, err)
		return StatusInput
	}

	res, err := c.verifier.Verify(protos, lines)
	if err != nil {
		c.out.Failure("%v", err)
		return StatusParse
	}

	status = c.report(dlHeader, res)
	c.logger.Debug().
		Int("prototypes", len(protos)).
		Int("passes", len(res.Passes)).
		Stringer("status", status).
		Msg("check complete")
	if status.OK() {
		c.out.Success()
	}
	return status
}

// Load scans the canonical headers like Scan and rejects duplicate names.
func (c *Checker) Load(dlHeader string) ([]generate.Group, Status) {
	return c.load(dlHeader, c.HeaderPaths(dlHeader))
}

func (c *Checker) load(dlHeader string, paths []string) ([]generate.Group, Status) {
	groups, status := c.scan(dlHeader, paths)
	if !status.OK() {
		return nil, status
	}
	if dups := header.Duplicates(generate.Flatten(groups)); len(dups) > 0 {
		c.out.Failure("duplicated function names in libxcoder API: %s", strings.Join(dups, ", "))
		return nil, StatusDuplicate
	}
	return groups, 0
}

// Scan checks that dlHeader and the canonical headers exist and returns the
// prototypes of each canonical header. Failures are reported as they are
// found. Duplicates are not checked.
func (c *Checker) Scan(dlHeader string) ([]generate.Group, Status) {
	return c.scan(dlHeader, c.HeaderPaths(dlHeader))
}

func (c *Checker) scan(dlHeader string, paths []string) ([]generate.Group, Status) {
	var status Status
	for _, p := range append([]string{dlHeader}, paths...) {
		if !safe.IsRegularFile(p) {
			c.out.Failure("file does not exist: %s", p)
			status |= StatusInput
		}
	}
	if !status.OK() {
		return nil, status
	}

	groups := make([]generate.Group, 0, len(paths))
	for i, p := range paths {
		protos, err := c.scanner.ScanFile(p)
		if err != nil {
			c.out.Failure("%v", err)
			var perr *header.ParseError
			if errors.As(err, &perr) {
				return nil, StatusParse
			}
			return nil, StatusInput
		}
		groups = append(groups, generate.Group{Header: c.cfg.Headers[i], Prototypes: protos})
	}
	return groups, 0
}

func (c *Checker) report(dlHeader string, res *verify.Result) Status {
	var status Status
	hinted := false
	for _, d := range res.Diagnostics {
		switch d.Kind {
		case verify.MissingLine:
			c.out.Error("could not find: %s", d.Text)
			status |= StatusMissingLine
		case verify.StrayLine:
			c.out.Error("unexpected line in %s:%d: %s", dlHeader, d.Line, d.Text)
			if !hinted {
				c.out.Hint(fmt.Sprintf(strayHint, c.cfg.Grammar.Tag))
				hinted = true
			}
			status |= StatusStrayLine
		}
	}
	return status
}
