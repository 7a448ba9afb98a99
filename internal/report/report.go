// Package report renders an evaluated run for the user: a line-oriented text
// report for terminals, a JSON document for scripting, and SARIF 2.1.0 for
// code-review tooling. Renderers only consume the aggregator's output; they
// never re-read package files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/packlint/packlint/internal/findings"
)

// Format selects an output renderer.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatText:
		return FormatText, true
	case FormatJSON:
		return FormatJSON, true
	case FormatSARIF:
		return FormatSARIF, true
	}
	return "", false
}

// RuleInfo carries the catalog prose a renderer may attach to a finding. The
// reporter deliberately does not depend on the rules package; the command
// layer flattens the catalog into this map.
type RuleInfo struct {
	Summary  string
	Hint     string
	Severity findings.Severity
}

// Meta identifies the run being reported.
type Meta struct {
	// RunID correlates the emitted report with log output.
	RunID string
	// Root is the audited package directory as given by the user.
	Root string
	// Version is the tool version baked in at build time.
	Version string
	// Rules maps rule ids to their catalog prose.
	Rules map[string]RuleInfo
}

// Reporter renders finding lists in the configured formats.
type Reporter struct {
	meta Meta
}

// New creates a Reporter for one run.
func New(meta Meta) *Reporter {
	return &Reporter{meta: meta}
}

// Render writes the findings to w in the requested format.
func (r *Reporter) Render(w io.Writer, format Format, fs []findings.Finding, counts findings.Counts) error {
	switch format {
	case FormatJSON:
		return r.renderJSON(w, fs, counts)
	case FormatSARIF:
		return r.renderSARIF(w, fs, counts)
	default:
		return r.renderText(w, fs, counts)
	}
}

func (r *Reporter) renderText(w io.Writer, fs []findings.Finding, counts findings.Counts) error {
	var out strings.Builder
	for _, f := range fs {
		out.WriteString(fmt.Sprintf("%s:%d: %s %s %s\n", f.FilePath, f.Line, f.Severity, f.RuleID, f.Message))
		if f.Snippet != "" {
			out.WriteString(fmt.Sprintf("    > %s\n", f.Snippet))
		}
		if info, ok := r.meta.Rules[f.RuleID]; ok && info.Hint != "" {
			out.WriteString(fmt.Sprintf("    hint: %s\n", info.Hint))
		}
	}

	if counts.Total == 0 {
		out.WriteString("no issues found\n")
	} else {
		out.WriteString(fmt.Sprintf("\n%d %s (%d errors, %d warnings, %d notes)\n",
			counts.Total, pluralIssue(counts.Total), counts.Errors, counts.Warnings, counts.Notes))
	}

	_, err := io.WriteString(w, out.String())
	return err
}

type jsonReport struct {
	Tool     string             `json:"tool"`
	Version  string             `json:"version,omitempty"`
	RunID    string             `json:"run_id,omitempty"`
	Root     string             `json:"root,omitempty"`
	Counts   findings.Counts    `json:"counts"`
	Findings []findings.Finding `json:"findings"`
}

func (r *Reporter) renderJSON(w io.Writer, fs []findings.Finding, counts findings.Counts) error {
	doc := jsonReport{
		Tool:     "packlint",
		Version:  r.meta.Version,
		RunID:    r.meta.RunID,
		Root:     r.meta.Root,
		Counts:   counts,
		Findings: fs,
	}
	if doc.Findings == nil {
		doc.Findings = []findings.Finding{}
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = w.Write(append(encoded, '\n'))
	return err
}

func pluralIssue(n int) string {
	if n == 1 {
		return "issue"
	}
	return "issues"
}
