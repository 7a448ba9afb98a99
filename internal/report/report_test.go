package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlint/packlint/internal/findings"
)

func sampleMeta() Meta {
	return Meta{
		RunID:   "7c0e7e7a-test",
		Root:    "/tmp/widgets",
		Version: "1.2.3",
		Rules: map[string]RuleInfo{
			"PL-META001": {
				Summary:  "required metadata fields must be present",
				Hint:     "add the missing fields to DESCRIPTION",
				Severity: findings.SeverityError,
			},
			"PL-SRC001": {
				Summary:  "console output outside display methods",
				Severity: findings.SeverityWarning,
			},
		},
	}
}

func sampleFindings() []findings.Finding {
	return []findings.Finding{
		findings.New("PL-META001", findings.SeverityError, "DESCRIPTION", 1, 0,
			"missing required fields: License"),
		findings.New("PL-SRC001", findings.SeverityWarning, "R/a.R", 3, 42,
			"cat() call outside a display method").WithSnippet("cat('hello')"),
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"text":   FormatText,
		"JSON":   FormatJSON,
		" sarif": FormatSARIF,
	} {
		got, ok := ParseFormat(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got)
	}

	_, ok := ParseFormat("xml")
	assert.False(t, ok)
}

func TestRenderText(t *testing.T) {
	fs := sampleFindings()
	var buf bytes.Buffer
	require.NoError(t, New(sampleMeta()).Render(&buf, FormatText, fs, findings.Tally(fs)))

	out := buf.String()
	assert.Contains(t, out, "DESCRIPTION:1: error PL-META001 missing required fields: License")
	assert.Contains(t, out, "hint: add the missing fields to DESCRIPTION")
	assert.Contains(t, out, "R/a.R:3: warning PL-SRC001")
	assert.Contains(t, out, "> cat('hello')")
	assert.Contains(t, out, "2 issues (1 errors, 1 warnings, 0 notes)")
}

func TestRenderTextClean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(sampleMeta()).Render(&buf, FormatText, nil, findings.Counts{}))
	assert.Equal(t, "no issues found\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	fs := sampleFindings()
	var buf bytes.Buffer
	require.NoError(t, New(sampleMeta()).Render(&buf, FormatJSON, fs, findings.Tally(fs)))

	var doc struct {
		Tool   string `json:"tool"`
		RunID  string `json:"run_id"`
		Counts struct {
			Total  int `json:"total"`
			Errors int `json:"errors"`
		} `json:"counts"`
		Findings []struct {
			RuleID   string `json:"rule_id"`
			Severity string `json:"severity"`
			FilePath string `json:"file_path"`
			Line     int    `json:"line"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "packlint", doc.Tool)
	assert.Equal(t, "7c0e7e7a-test", doc.RunID)
	assert.Equal(t, 2, doc.Counts.Total)
	assert.Equal(t, 1, doc.Counts.Errors)
	require.Len(t, doc.Findings, 2)
	assert.Equal(t, "PL-META001", doc.Findings[0].RuleID)
	assert.Equal(t, "error", doc.Findings[0].Severity)
}

func TestRenderJSONEmptyFindingsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(sampleMeta()).Render(&buf, FormatJSON, nil, findings.Counts{}))
	assert.Contains(t, buf.String(), `"findings": []`)
}

func TestRenderSARIF(t *testing.T) {
	fs := sampleFindings()
	var buf bytes.Buffer
	require.NoError(t, New(sampleMeta()).Render(&buf, FormatSARIF, fs, findings.Tally(fs)))

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID  string `json:"ruleId"`
				Level   string `json:"level"`
				Message struct {
					Text string `json:"text"`
				} `json:"message"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "packlint", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "7c0e7e7a-test", run.Properties["runId"])
	counts, ok := run.Properties["counts"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), counts["total"])

	require.Len(t, run.Results, 2)
	first := run.Results[0]
	assert.Equal(t, "PL-META001", first.RuleID)
	assert.Equal(t, "error", first.Level)
	require.Len(t, first.Locations, 1)
	assert.Equal(t, "DESCRIPTION", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 1, first.Locations[0].PhysicalLocation.Region.StartLine)
}

func TestFilterAndAtOrAbove(t *testing.T) {
	fs := []findings.Finding{
		findings.New("A", findings.SeverityNote, "f", 1, 0, "n"),
		findings.New("B", findings.SeverityWarning, "f", 2, 0, "w"),
		findings.New("C", findings.SeverityError, "f", 3, 0, "e"),
	}

	kept := findings.Filter(fs, findings.SeverityWarning)
	require.Len(t, kept, 2)
	assert.Equal(t, "B", kept[0].RuleID)

	assert.Equal(t, 1, findings.AtOrAbove(fs, findings.SeverityError))
	assert.Equal(t, 3, findings.AtOrAbove(fs, findings.SeverityNote))
}
