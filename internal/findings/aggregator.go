package findings

import (
	"fmt"
	"sort"
	"sync"
)

// Counts holds per-severity totals for a run.
type Counts struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notes    int `json:"notes"`
}

// Aggregator collects findings from concurrent per-file evaluations. Append
// is safe for concurrent use; Result must only be called after all appenders
// are done.
type Aggregator struct {
	mu       sync.Mutex
	findings []Finding
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Append adds findings from one file's evaluation.
func (a *Aggregator) Append(fs ...Finding) {
	if len(fs) == 0 {
		return
	}
	a.mu.Lock()
	a.findings = append(a.findings, fs...)
	a.mu.Unlock()
}

// Result deduplicates identical (rule, file, line) triples, sorts by
// (file, line, severity rank, rule id), and computes per-severity counts.
// The returned slice is owned by the caller.
func (a *Aggregator) Result() ([]Finding, Counts) {
	a.mu.Lock()
	collected := make([]Finding, len(a.findings))
	copy(collected, a.findings)
	a.mu.Unlock()

	seen := make(map[string]struct{}, len(collected))
	deduplicated := collected[:0]
	// Dedup keeps first occurrence; ordering is fixed by the sort below, so
	// the choice is deterministic for identical inputs.
	sort.SliceStable(collected, func(i, j int) bool {
		return less(collected[i], collected[j])
	})
	for _, f := range collected {
		key := fmt.Sprintf("%s:%s:%d", f.RuleID, f.FilePath, f.Line)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		deduplicated = append(deduplicated, f)
	}

	result := make([]Finding, len(deduplicated))
	copy(result, deduplicated)
	return result, Tally(result)
}

// Tally computes per-severity counts for a finding list.
func Tally(fs []Finding) Counts {
	var counts Counts
	for _, f := range fs {
		counts.Total++
		switch f.Severity {
		case SeverityError:
			counts.Errors++
		case SeverityWarning:
			counts.Warnings++
		default:
			counts.Notes++
		}
	}
	return counts
}

// Filter keeps findings at or above the minimum severity, preserving order.
func Filter(fs []Finding, min Severity) []Finding {
	var out []Finding
	for _, f := range fs {
		if f.Severity >= min {
			out = append(out, f)
		}
	}
	return out
}

// AtOrAbove counts findings at or above the given severity.
func AtOrAbove(fs []Finding, severity Severity) int {
	n := 0
	for _, f := range fs {
		if f.Severity >= severity {
			n++
		}
	}
	return n
}

func less(a, b Finding) bool {
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Severity != b.Severity {
		// Errors sort before warnings before notes at the same location.
		return a.Severity > b.Severity
	}
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	return a.Offset < b.Offset
}
