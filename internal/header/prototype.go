// Package header extracts tagged API function prototypes from C header text.
package header

// Prototype is one tagged function declaration found in a canonical header.
// Values are built once per statement and treated as read-only afterwards.
type Prototype struct {
	// ReturnType is the declared return type with any deprecation marker removed,
	// e.g. "ni_retcode_t" or "char *".
	ReturnType string `json:"return_type" yaml:"return_type" header:"RETURN TYPE"`
	// Name is the API function name, e.g. "ni_device_session_open".
	Name string `json:"function_name" yaml:"function_name" header:"FUNCTION"`
	// Args holds the raw parameter declarations in order. An empty slice means
	// the parentheses were empty; "void" is kept as a single element.
	Args []string `json:"input_args" yaml:"input_args"`

	// File and Line locate the start of the statement.
	File string `json:"file" yaml:"file" header:"FILE"`
	Line int    `json:"line" yaml:"line" header:"LINE"`
}

// Duplicates returns the names that appear more than once in protos, each
// reported once, in the order their first repeat is seen.
func Duplicates(protos []Prototype) []string {
	seen := make(map[string]int, len(protos))
	var dups []string
	for _, p := range protos {
		seen[p.Name]++
		if seen[p.Name] == 2 {
			dups = append(dups, p.Name)
		}
	}
	return dups
}
