// Package redact strips user-supplied input and process internals from error
// text before it is logged. Source text submitted by visitors must never reach
// the logs, and parse errors tend to quote the offending input verbatim.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedInputPlaceholder = "[REDACTED_INPUT]"
	RedactedPathPlaceholder  = "[REDACTED_PATH]"
	RedactedStackPlaceholder = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order. Stack traces go first since they contain paths.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		placeholder: RedactedStackPlaceholder,
	},
	// Double-quoted literals, as produced by strconv and %q.
	{
		pattern:     regexp.MustCompile(`"(?:[^"\\]|\\.)*"`),
		placeholder: RedactedInputPlaceholder,
	},
	// Single-quoted runes, as produced by encoding/json syntax errors.
	{
		pattern:     regexp.MustCompile(`'(?:[^'\\]|\\.){1,8}'`),
		placeholder: RedactedInputPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(/[\w.-]+){2,}`),
		placeholder: RedactedPathPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`),
		placeholder: RedactedPathPlaceholder,
	},
}

// String redacts user input and internals from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts user input and internals from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
