package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/packlint/packlint/internal/findings"
)

const informationURI = "https://github.com/packlint/packlint"

// renderSARIF emits a SARIF 2.1.0 report with one run. Rule metadata comes
// from the catalog prose in Meta; the result level follows the individual
// finding, which may be downgraded relative to the rule (skipped network
// probes report as notes under a warning-level rule).
func (r *Reporter) renderSARIF(w io.Writer, fs []findings.Finding, counts findings.Counts) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("packlint", informationURI)
	if run.Properties == nil {
		run.Properties = map[string]interface{}{}
	}
	run.Properties["runId"] = r.meta.RunID
	run.Properties["root"] = r.meta.Root
	run.Properties["counts"] = map[string]int{
		"total":    counts.Total,
		"errors":   counts.Errors,
		"warnings": counts.Warnings,
		"notes":    counts.Notes,
	}

	for _, f := range fs {
		info := r.meta.Rules[f.RuleID]
		description := info.Summary
		if description == "" {
			description = f.Message
		}
		run.AddRule(f.RuleID).
			WithDescription(description).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifLevel(info.Severity),
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.FilePath)).
				WithRegion(sarif.NewRegion().WithStartLine(f.Line)),
		)

		result := sarif.NewRuleResult(f.RuleID).
			WithMessage(sarif.NewTextMessage(f.Message)).
			WithLevel(toSarifLevel(f.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}

	doc.AddRun(run)
	return doc.PrettyWrite(w)
}

func toSarifLevel(severity findings.Severity) string {
	switch severity {
	case findings.SeverityError:
		return "error"
	case findings.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
