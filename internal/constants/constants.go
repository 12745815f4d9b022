// Package constants defines shared configuration constants.
package constants

const (
	// ConfigFile is looked up in the working directory when no config is given.
	ConfigFile = ".dlcheck.yaml"

	// ConfigEnv names an explicit config file.
	ConfigEnv = "DLCHECK_CONFIG"

	// DefaultDynamicHeader is relative to the libxcoder auto/ directory the
	// checker is traditionally run from.
	DefaultDynamicHeader = "../source/ni_libxcoder_dynamic_loading.h"

	DefaultTag               = "LIB_API"
	DefaultTerminator        = ");"
	DefaultDeprecationMarker = "NI_DEPRECATED"

	DefaultNamePrefix    = "ni_"
	DefaultPointerPrefix = "P"

	DefaultLogLevel = "warn"
)

var (
	// DefaultHeaders are the canonical API headers. They must sit in the same
	// directory as the dynamic-loading header.
	DefaultHeaders = []string{"ni_av_codec.h", "ni_util.h", "ni_device_api.h"}

	// DefaultStrayMarkers flag leftover lines that reference an API function.
	DefaultStrayMarkers = []string{"typedef", "Client should", "functionList->"}

	// DefaultAllowedLines are structural lines that carry a marker legitimately.
	DefaultAllowedLines = []string{"typedef struct _NETINT_LIBXCODER_API_FUNCTION_LIST"}
)
