package findings

import "strings"

// Severity classifies how serious a finding is. The zero value is note.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name used in reports and config.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// ParseSeverity maps a severity name to its Severity, case-insensitively.
// Unknown names return SeverityNote and ok=false.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "note", "info":
		return SeverityNote, true
	}
	return SeverityNote, false
}

// Finding is a single reported rule violation. Findings are created by rule
// predicates, are immutable once created, and live only until the report for
// the current run is emitted.
type Finding struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"-"`
	FilePath string   `json:"file_path"`
	Line     int      `json:"line"`
	Offset   int      `json:"offset,omitempty"`
	Message  string   `json:"message"`
	Snippet  string   `json:"snippet,omitempty"`

	// SeverityName mirrors Severity for JSON output.
	SeverityName string `json:"severity"`
}

// New builds a Finding with a consistent severity name.
func New(ruleID string, severity Severity, filePath string, line, offset int, message string) Finding {
	return Finding{
		RuleID:       ruleID,
		Severity:     severity,
		FilePath:     filePath,
		Line:         line,
		Offset:       offset,
		Message:      message,
		SeverityName: severity.String(),
	}
}

// WithSnippet returns a copy of the finding carrying a short code excerpt.
func (f Finding) WithSnippet(snippet string) Finding {
	f.Snippet = snippet
	return f
}
