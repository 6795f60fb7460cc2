package diagnostic

import "errors"

// Codes identify a kind of finding. They are stable and safe to match on.
const (
	// CodeMissingInputFile: the schema file does not exist.
	CodeMissingInputFile = "missing_input_file"
	// CodeParseFailed: the schema source could not be parsed.
	CodeParseFailed = "parse_failed"
	// CodeUnresolvedParent: an extends target is absent from its section.
	CodeUnresolvedParent = "unresolved_parent"
	// CodeCycle: an extends chain leads back to an entry being resolved.
	CodeCycle = "cycle"
	// CodeColumnShadowed: a parent column was dropped because the entry
	// already has a column of that name.
	CodeColumnShadowed = "column_shadowed"
	// CodeNoPluginsDefined: transform was asked for with no plugins.
	CodeNoPluginsDefined = "no_plugins_defined"
	// CodePluginLoadFailure: a plugin specifier could not be loaded.
	CodePluginLoadFailure = "plugin_load_failure"
)

// Coder is implemented by errors that carry a diagnostic code.
type Coder interface {
	Code() string
}

// CodeOf returns the code of the first error in err's chain that has one,
// or an empty string.
func CodeOf(err error) string {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return ""
}
