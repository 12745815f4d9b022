package config

import (
	"slices"

	"github.com/xcoder-tools/dlcheck/internal/constants"
	"github.com/xcoder-tools/dlcheck/internal/naming"
	"github.com/xcoder-tools/dlcheck/internal/safe"
)

// Default returns the libxcoder configuration.
func Default() *Config {
	return &Config{
		Version:       SchemaVersion,
		DynamicHeader: constants.DefaultDynamicHeader,
		Headers:       slices.Clone(constants.DefaultHeaders),
		Grammar: GrammarConfig{
			Tag:               constants.DefaultTag,
			Terminator:        constants.DefaultTerminator,
			DeprecationMarker: constants.DefaultDeprecationMarker,
			StripComments:     true,
		},
		Naming: NamingConfig{
			Prefix:        constants.DefaultNamePrefix,
			PointerPrefix: constants.DefaultPointerPrefix,
			Replacements:  slices.Clone(naming.DefaultReplacements),
		},
		Verify: VerifyConfig{
			StrayMarkers: slices.Clone(constants.DefaultStrayMarkers),
			AllowedLines: slices.Clone(constants.DefaultAllowedLines),
		},
		Files: FilesConfig{
			MaxSize: safe.DefaultMaxFileSize,
		},
		Logging: LoggingConfig{
			Level:  constants.DefaultLogLevel,
			Pretty: true,
		},
	}
}
