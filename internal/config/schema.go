package config

import (
	"github.com/xcoder-tools/dlcheck/internal/naming"
)

// SchemaVersion is the configuration schema version.
const SchemaVersion = "1"

// Config describes what the checker scans and how it verifies.
type Config struct {
	Version string `yaml:"version"`

	// DynamicHeader is the hand-maintained dynamic-loading header. A path
	// given on the command line takes precedence.
	DynamicHeader string `yaml:"dynamic_header" env:"DLCHECK_DYNAMIC_HEADER"`
	// Headers are canonical header file names, resolved relative to the
	// directory of DynamicHeader and scanned in order.
	Headers []string `yaml:"headers" env:"DLCHECK_HEADERS"`

	Grammar GrammarConfig `yaml:"grammar"`
	Naming  NamingConfig  `yaml:"naming"`
	Verify  VerifyConfig  `yaml:"verify"`
	Files   FilesConfig   `yaml:"files"`
	Logging LoggingConfig `yaml:"logging"`
}

// GrammarConfig describes a tagged prototype statement.
type GrammarConfig struct {
	Tag               string `yaml:"tag" env:"DLCHECK_TAG"`
	Terminator        string `yaml:"terminator"`
	DeprecationMarker string `yaml:"deprecation_marker" env:"DLCHECK_DEPRECATION_MARKER"`
	StripComments     bool   `yaml:"strip_comments" env:"DLCHECK_STRIP_COMMENTS"`
}

// NamingConfig controls identifier derivation.
type NamingConfig struct {
	Prefix        string `yaml:"prefix" env:"DLCHECK_NAME_PREFIX"`
	PointerPrefix string `yaml:"pointer_prefix"`
	// Replacements are applied in list order.
	Replacements []naming.Replacement `yaml:"replacements" env:"DLCHECK_REPLACEMENTS"`
}

// VerifyConfig controls the verification passes.
type VerifyConfig struct {
	// Exhaustive runs all passes even when an earlier one fails.
	Exhaustive   bool     `yaml:"exhaustive" env:"DLCHECK_EXHAUSTIVE"`
	StrayMarkers []string `yaml:"stray_markers"`
	AllowedLines []string `yaml:"allowed_lines"`
}

// FilesConfig limits which files are read.
type FilesConfig struct {
	MaxSize        int64 `yaml:"max_size" env:"DLCHECK_MAX_FILE_SIZE"`
	RejectSymlinks bool  `yaml:"reject_symlinks" env:"DLCHECK_REJECT_SYMLINKS"`
}

// LoggingConfig configures the stderr logger.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"DLCHECK_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"DLCHECK_LOG_PRETTY"`
}
