package check

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcoder-tools/dlcheck/internal/config"
	"github.com/xcoder-tools/dlcheck/internal/generate"
	"github.com/xcoder-tools/dlcheck/internal/header"
	"github.com/xcoder-tools/dlcheck/internal/naming"
	"github.com/xcoder-tools/dlcheck/internal/report"
	"github.com/xcoder-tools/dlcheck/internal/testutil"
)

const (
	dlName   = "ni_libxcoder_dynamic_loading.h"
	sentinel = "typedef struct _NETINT_LIBXCODER_API_FUNCTION_LIST\n"
	stray    = "typedef int (LIB_API* PNIUNKNOWN) (void);\n"
)

var (
	decoderOpen  = header.Prototype{ReturnType: "int", Name: "ni_decoder_open", Args: []string{"void"}}
	decoderClose = header.Prototype{ReturnType: "int", Name: "ni_decoder_close", Args: []string{"void"}}
)

type fixture struct {
	dir string
	dl  string
	cfg *config.Config
	out bytes.Buffer
}

// newFixture writes canonical headers declaring ni_decoder_open and
// ni_decoder_close and returns a matching, empty dynamic-loading header path.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{dir: t.TempDir(), cfg: config.Default()}
	f.dl = filepath.Join(f.dir, dlName)
	f.write(t, "ni_av_codec.h", "#pragma once\nLIB_API int ni_decoder_open(void);\n")
	f.write(t, "ni_util.h", "LIB_API int\n    ni_decoder_close(void);\n")
	f.write(t, "ni_device_api.h", "")
	return f
}

func (f *fixture) write(t *testing.T, name, content string) {
	t.Helper()
	testutil.WriteFile(t, f.dir, name, content)
}

// writeDL lays out a dynamic-loading header for protos, leaving out skip and
// appending extra lines at the end.
func (f *fixture) writeDL(t *testing.T, protos []header.Prototype, skip []string, extra ...string) []string {
	t.Helper()
	gen := generate.New(naming.NewTransformer(), "LIB_API")

	var all []generate.Lines
	for _, p := range protos {
		l, err := gen.Generate(p)
		require.NoError(t, err)
		all = append(all, l)
	}

	lines := []string{"#pragma once\n"}
	add := func(s string) {
		for _, k := range skip {
			if k == s {
				return
			}
		}
		lines = append(lines, s)
	}
	for _, l := range all {
		add(l.Typedef)
	}
	lines = append(lines, sentinel, "{\n")
	for _, l := range all {
		add(l.Member)
	}
	lines = append(lines, "} NETINT_LIBXCODER_API_FUNCTION_LIST;\n")
	for _, l := range all {
		add(l.Init)
	}
	lines = append(lines, extra...)

	f.write(t, dlName, strings.Join(lines, ""))
	return lines
}

func (f *fixture) run(t *testing.T) Status {
	t.Helper()
	c := New(f.cfg, report.New(&f.out, true), testutil.NewTestLoggerWithOutput(t))
	return c.Check(f.dl)
}

func generated(t *testing.T, p header.Prototype) generate.Lines {
	t.Helper()
	l, err := generate.New(naming.NewTransformer(), "LIB_API").Generate(p)
	require.NoError(t, err)
	return l
}

func TestCheck_Success(t *testing.T) {
	f := newFixture(t)
	f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, nil)

	status := f.run(t)

	assert.True(t, status.OK(), f.out.String())
	lines := strings.Split(strings.TrimSuffix(f.out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Checking dynamic loading header file: "+f.dl, lines[0])
	assert.Equal(t, fmt.Sprintf("Checking function prototypes from headers: %s %s %s",
		filepath.Join(f.dir, "ni_av_codec.h"),
		filepath.Join(f.dir, "ni_util.h"),
		filepath.Join(f.dir, "ni_device_api.h")), lines[1])
	assert.Equal(t, "(SUCCESS)", lines[2])
}

func TestCheck_MissingInitLine(t *testing.T) {
	f := newFixture(t)
	missing := generated(t, decoderClose).Init
	f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, []string{missing})

	status := f.run(t)

	assert.Equal(t, StatusMissingLine, status)
	out := f.out.String()
	assert.Contains(t, out, "(ERROR) could not find: "+strings.TrimSuffix(missing, "\n")+"\n")
	assert.Equal(t, 1, strings.Count(out, "(ERROR)"))
	assert.NotContains(t, out, "(SUCCESS)")
}

func TestCheck_DuplicateName(t *testing.T) {
	f := newFixture(t)
	f.write(t, "ni_device_api.h", "LIB_API int ni_decoder_open(void);\n")
	f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, nil)

	status := f.run(t)

	assert.Equal(t, StatusDuplicate, status)
	out := f.out.String()
	assert.Contains(t, out, "(FAILURE) duplicated function names in libxcoder API: ni_decoder_open\n")
	assert.NotContains(t, out, "(ERROR)")
	assert.NotContains(t, out, "(SUCCESS)")
}

func TestCheck_StrayLine(t *testing.T) {
	f := newFixture(t)
	lines := f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, nil, stray)

	status := f.run(t)

	assert.Equal(t, StatusStrayLine, status)
	out := f.out.String()
	assert.Contains(t, out, fmt.Sprintf("(ERROR) unexpected line in %s:%d: %s", f.dl, len(lines), stray))
	assert.Contains(t, out, "not labeled with 'LIB_API' in header file")
	assert.NotContains(t, out, "(SUCCESS)")
}

func TestCheck_StrayHintPrintedOnce(t *testing.T) {
	f := newFixture(t)
	f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, nil,
		stray, "        functionList->niUnknown = nullptr;\n")

	status := f.run(t)

	assert.Equal(t, StatusStrayLine, status)
	out := f.out.String()
	assert.Equal(t, 2, strings.Count(out, "(ERROR) unexpected line"))
	assert.Equal(t, 1, strings.Count(out, "Perhaps there is a duplicate function"))
}

func TestCheck_MissingFiles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.dir, "ni_util.h")))
	require.NoError(t, os.Remove(filepath.Join(f.dir, "ni_device_api.h")))
	f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, nil)

	status := f.run(t)

	assert.Equal(t, StatusInput, status)
	out := f.out.String()
	assert.Contains(t, out, "(FAILURE) file does not exist: "+filepath.Join(f.dir, "ni_util.h"))
	assert.Contains(t, out, "(FAILURE) file does not exist: "+filepath.Join(f.dir, "ni_device_api.h"))
	assert.NotContains(t, out, "(ERROR)")
}

func TestCheck_MissingDynamicHeader(t *testing.T) {
	f := newFixture(t)

	status := f.run(t)

	assert.Equal(t, StatusInput, status)
	assert.Contains(t, f.out.String(), "(FAILURE) file does not exist: "+f.dl)
}

func TestCheck_ParseError(t *testing.T) {
	f := newFixture(t)
	f.write(t, "ni_util.h", "\nLIB_API int decoder_close(void);\n")
	f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, nil)

	status := f.run(t)

	assert.Equal(t, StatusParse, status)
	out := f.out.String()
	assert.Contains(t, out, "(FAILURE) "+filepath.Join(f.dir, "ni_util.h")+":2: ")
	assert.Contains(t, out, "missing 'ni_' prefix")
	assert.NotContains(t, out, "(SUCCESS)")
}

func TestCheck_Gating(t *testing.T) {
	tests := []struct {
		name       string
		exhaustive bool
		want       Status
	}{
		{name: "gated", exhaustive: false, want: StatusMissingLine},
		{name: "exhaustive", exhaustive: true, want: StatusMissingLine | StatusStrayLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.Verify.Exhaustive = tt.exhaustive
			missing := generated(t, decoderOpen).Typedef
			f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, []string{missing}, stray)

			assert.Equal(t, tt.want, f.run(t))
		})
	}
}

func TestCheck_CommentStripping(t *testing.T) {
	tests := []struct {
		name  string
		strip bool
		want  Status
	}{
		{name: "stripped", strip: true, want: 0},
		{name: "kept", strip: false, want: StatusParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.Grammar.StripComments = tt.strip
			f.write(t, "ni_av_codec.h", "LIB_API int ni_decoder_open(void); // opens a decoder\n")
			f.writeDL(t, []header.Prototype{decoderOpen, decoderClose}, nil)

			assert.Equal(t, tt.want, f.run(t), f.out.String())
		})
	}
}

func TestChecker_Scan(t *testing.T) {
	f := newFixture(t)
	f.writeDL(t, nil, nil)
	c := New(f.cfg, report.New(&f.out, true), testutil.NewTestLogger(t))

	groups, status := c.Scan(f.dl)

	require.True(t, status.OK())
	require.Len(t, groups, 3)
	assert.Equal(t, "ni_av_codec.h", groups[0].Header)
	require.Len(t, groups[0].Prototypes, 1)
	assert.Equal(t, "ni_decoder_open", groups[0].Prototypes[0].Name)
	require.Len(t, groups[1].Prototypes, 1)
	assert.Equal(t, 1, groups[1].Prototypes[0].Line)
	assert.Empty(t, groups[2].Prototypes)
	assert.Empty(t, f.out.String())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ok", Status(0).String())
	assert.Equal(t, "input", StatusInput.String())
	assert.Equal(t, "missing-line|stray-line", (StatusMissingLine | StatusStrayLine).String())
	assert.Equal(t, 24, int(StatusMissingLine|StatusStrayLine))
	assert.True(t, (StatusParse | StatusDuplicate).Has(StatusDuplicate))
	assert.False(t, StatusParse.Has(StatusDuplicate))
}

func TestChecker_Load_RejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	f.write(t, "ni_device_api.h", "LIB_API int ni_decoder_close(void);\n")
	f.writeDL(t, nil, nil)
	c := New(f.cfg, report.New(&f.out, true), testutil.NewTestLogger(t))

	groups, status := c.Load(f.dl)

	assert.Equal(t, StatusDuplicate, status)
	assert.Nil(t, groups)
	assert.Equal(t, "(FAILURE) duplicated function names in libxcoder API: ni_decoder_close\n", f.out.String())
}
