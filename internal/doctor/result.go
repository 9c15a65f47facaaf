// Package doctor checks a project's generated OpenCode tree and the ocgen
// setup around it.
package doctor

// Severity indicates how serious a check result is.
type Severity int

const (
	// SeverityPass means nothing is wrong.
	SeverityPass Severity = iota

	// SeverityInfo is informational, not a problem.
	SeverityInfo

	// SeverityWarning flags something that works but is probably unintended.
	SeverityWarning

	// SeverityError means OpenCode will not load part of the output.
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Problem is one offending path found by a check.
type Problem struct {
	Path  string `json:"path"`
	Issue string `json:"issue"`
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Problems lists individual paths when a check covers many files.
	Problems []Problem `json:"problems,omitempty"`

	// FixHint suggests how to resolve a warning or error.
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}
