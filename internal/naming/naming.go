// Package naming derives the identifiers used by the dynamic-loading header
// from a libxcoder API function name.
package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/xcoder-tools/dlcheck/internal/constants"
)

// ErrMissingPrefix is returned when a function name lacks the API prefix.
var ErrMissingPrefix = errors.New("function name missing required prefix")

// Replacement is a literal substring fix applied to a derived member name.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DefaultReplacements corrects abbreviations that the underscore walk leaves
// in the wrong case. Applied in order.
var DefaultReplacements = []Replacement{
	{From: "420p", To: "420P"},
	{From: "444p", To: "444P"},
	{From: "P2p", To: "P2P"},
}

// Transformer maps raw function names to pointer type names and member names.
type Transformer struct {
	// Prefix every API function name must start with (e.g. "ni_").
	Prefix string
	// PointerPrefix is prepended to pointer type names (e.g. "P").
	PointerPrefix string
	// Replacements is applied in order to member names.
	Replacements []Replacement
	// Tag is only used in error messages (e.g. "LIB_API").
	Tag string
}

// NewTransformer returns a Transformer with the libxcoder conventions.
func NewTransformer() Transformer {
	return Transformer{
		Prefix:        constants.DefaultNamePrefix,
		PointerPrefix: constants.DefaultPointerPrefix,
		Replacements:  DefaultReplacements,
		Tag:           constants.DefaultTag,
	}
}

// CheckPrefix reports whether name carries the configured prefix.
func (t Transformer) CheckPrefix(name string) error {
	if !strings.HasPrefix(name, t.Prefix) {
		return fmt.Errorf("%w: found '%s' labeled with '%s' but missing '%s' prefix",
			ErrMissingPrefix, name, t.Tag, t.Prefix)
	}
	return nil
}

// PointerTypeName returns the function pointer typedef name,
// e.g. "ni_copy_yuv_444p_to_420p" -> "PNICOPYYUV444PTO420P".
func (t Transformer) PointerTypeName(name string) string {
	return t.PointerPrefix + strings.ToUpper(strings.ReplaceAll(name, "_", ""))
}

// MemberName returns the function list member name,
// e.g. "ni_copy_yuv_444p_to_420p" -> "niCopyYuv444PTo420P".
func (t Transformer) MemberName(name string) (string, error) {
	if err := t.CheckPrefix(name); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(name))
	var prev rune
	for _, r := range name {
		if r != '_' {
			if prev == '_' {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
		}
		prev = r
	}

	result := b.String()
	for _, rep := range t.Replacements {
		result = strings.ReplaceAll(result, rep.From, rep.To)
	}
	return result, nil
}
