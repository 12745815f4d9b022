package generate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcoder-tools/dlcheck/internal/header"
	"github.com/xcoder-tools/dlcheck/internal/naming"
)

func newTestGenerator() *Generator {
	return New(naming.NewTransformer(), "LIB_API")
}

func TestGenerator_Generate(t *testing.T) {
	p := header.Prototype{
		ReturnType: "ni_retcode_t",
		Name:       "ni_device_session_open",
		Args:       []string{"ni_session_context_t *p_ctx", "ni_device_type_t device_type"},
	}

	lines, err := newTestGenerator().Generate(p)
	require.NoError(t, err)

	// Copied from a hand-maintained ni_libxcoder_dynamic_loading.h.
	assert.Equal(t,
		"typedef ni_retcode_t (LIB_API* PNIDEVICESESSIONOPEN) (ni_session_context_t *p_ctx, ni_device_type_t device_type);\n",
		lines.Typedef)
	assert.Equal(t,
		"    PNIDEVICESESSIONOPEN                 niDeviceSessionOpen;                  /** Client should access ::ni_device_session_open API through this pointer */\n",
		lines.Member)
	assert.Equal(t,
		"        functionList->niDeviceSessionOpen = reinterpret_cast<decltype(ni_device_session_open)*>(dlsym(lib,\"ni_device_session_open\"));\n",
		lines.Init)
}

func TestGenerator_Generate_NoArgs(t *testing.T) {
	lines, err := newTestGenerator().Generate(header.Prototype{ReturnType: "void", Name: "ni_flush", Args: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "typedef void (LIB_API* PNIFLUSH) ();\n", lines.Typedef)

	lines, err = newTestGenerator().Generate(header.Prototype{ReturnType: "uint64_t", Name: "ni_gettime_ns", Args: []string{"void"}})
	require.NoError(t, err)
	assert.Equal(t, "typedef uint64_t (LIB_API* PNIGETTIMENS) (void);\n", lines.Typedef)
}

func TestGenerator_MemberColumns(t *testing.T) {
	lines, err := newTestGenerator().Generate(header.Prototype{ReturnType: "int", Name: "ni_set_ltr"})
	require.NoError(t, err)

	assert.Equal(t, "    PNISETLTR", strings.TrimRight(lines.Member[:PointerColumnWidth], " "))
	assert.Equal(t, "niSetLtr;", strings.TrimRight(lines.Member[PointerColumnWidth:PointerColumnWidth+MemberColumnWidth], " "))
	assert.True(t, strings.HasPrefix(lines.Member[PointerColumnWidth+MemberColumnWidth:], "/** Client should access ::ni_set_ltr"))
}

func TestGenerator_MemberColumns_Overflow(t *testing.T) {
	// Names longer than a column push the next column right instead of being cut.
	name := "ni_encoder_session_read_stream_header_with_extra_words"
	lines, err := newTestGenerator().Generate(header.Prototype{ReturnType: "int", Name: name})
	require.NoError(t, err)

	ptr := "    PNIENCODERSESSIONREADSTREAMHEADERWITHEXTRAWORDS"
	member := "niEncoderSessionReadStreamHeaderWithExtraWords;"
	assert.Equal(t, ptr+member+DocComment(name)+"\n", lines.Member)
}

func TestGenerator_Generate_MissingPrefix(t *testing.T) {
	_, err := newTestGenerator().Generate(header.Prototype{ReturnType: "int", Name: "av_open"})
	assert.ErrorIs(t, err, naming.ErrMissingPrefix)
}

func TestGenerator_Declaration_RoundTrip(t *testing.T) {
	g := newTestGenerator()
	s := header.NewScanner(header.DefaultOptions(), zerolog.Nop())

	protos := []header.Prototype{
		{ReturnType: "ni_retcode_t", Name: "ni_device_session_open", Args: []string{"ni_session_context_t *p_ctx", "ni_device_type_t device_type"}},
		{ReturnType: "char *", Name: "ni_strtok", Args: []string{"char *s", "const char *delim", "char **saveptr"}},
		{ReturnType: "void **", Name: "ni_lookup", Args: []string{"void"}},
		{ReturnType: "unsigned int", Name: "ni_count", Args: []string{}},
		{ReturnType: "void", Name: "ni_copy_yuv_444p_to_420p", Args: []string{"uint8_t *p_dst0[NI_MAX_NUM_DATA_POINTERS]", "int mode"}},
	}

	for _, want := range protos {
		t.Run(want.Name, func(t *testing.T) {
			var src bytes.Buffer
			src.WriteString(g.Declaration(want) + "\n")

			// The generated lines sit alongside the declaration and must not be
			// mistaken for prototypes.
			lines, err := g.Generate(want)
			require.NoError(t, err)
			src.WriteString(lines.Typedef + lines.Member + lines.Init)

			got, err := s.Scan(&src, "ni_round_trip.h")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, want.ReturnType, got[0].ReturnType)
			assert.Equal(t, want.Name, got[0].Name)
			assert.Equal(t, want.Args, got[0].Args)
		})
	}
}

func TestGenerator_Render(t *testing.T) {
	groups := []Group{
		{Header: "ni_av_codec.h", Prototypes: []header.Prototype{
			{ReturnType: "void", Name: "ni_dec_retrieve_aux_data", Args: []string{"ni_frame_t *frame"}},
		}},
		{Header: "ni_util.h", Prototypes: []header.Prototype{
			{ReturnType: "void", Name: "ni_usleep", Args: []string{"int64_t usec"}},
		}},
	}

	var out bytes.Buffer
	require.NoError(t, newTestGenerator().Render(&out, groups))

	want := "//\n" +
		"// Function pointers for ni_av_codec.h\n" +
		"//\n" +
		"typedef void (LIB_API* PNIDECRETRIEVEAUXDATA) (ni_frame_t *frame);\n" +
		"//\n" +
		"// Function pointers for ni_util.h\n" +
		"//\n" +
		"typedef void (LIB_API* PNIUSLEEP) (int64_t usec);\n" +
		"\n" +
		"    //\n" +
		"    // API function list for ni_av_codec.h\n" +
		"    //\n" +
		"    PNIDECRETRIEVEAUXDATA                niDecRetrieveAuxData;                 /** Client should access ::ni_dec_retrieve_aux_data API through this pointer */\n" +
		"    //\n" +
		"    // API function list for ni_util.h\n" +
		"    //\n" +
		"    PNIUSLEEP                            niUsleep;                             /** Client should access ::ni_usleep API through this pointer */\n" +
		"\n" +
		"        //\n" +
		"        // Function/symbol loading for ni_av_codec.h\n" +
		"        //\n" +
		"        functionList->niDecRetrieveAuxData = reinterpret_cast<decltype(ni_dec_retrieve_aux_data)*>(dlsym(lib,\"ni_dec_retrieve_aux_data\"));\n" +
		"        //\n" +
		"        // Function/symbol loading for ni_util.h\n" +
		"        //\n" +
		"        functionList->niUsleep = reinterpret_cast<decltype(ni_usleep)*>(dlsym(lib,\"ni_usleep\"));\n"
	assert.Equal(t, want, out.String())
}

func TestFlatten(t *testing.T) {
	a := header.Prototype{Name: "ni_a"}
	b := header.Prototype{Name: "ni_b"}
	c := header.Prototype{Name: "ni_c"}

	got := Flatten([]Group{
		{Header: "one.h", Prototypes: []header.Prototype{a, b}},
		{Header: "empty.h"},
		{Header: "two.h", Prototypes: []header.Prototype{c}},
	})

	assert.Equal(t, []header.Prototype{a, b, c}, got)
	assert.Empty(t, Flatten(nil))
}
