// Package dcf parses the Debian-control-style metadata format used by
// package DESCRIPTION files: `Field: value` lines where a value continues
// onto subsequent whitespace-indented lines.
package dcf

import (
	"strings"
	"unicode/utf8"
)

// ProblemKind classifies a recoverable parse problem.
type ProblemKind int

const (
	// ProblemEncoding marks bytes that were not valid UTF-8 and were
	// replaced with U+FFFD.
	ProblemEncoding ProblemKind = iota
	// ProblemUnparseableLine marks a line that is neither a field start nor
	// a continuation.
	ProblemUnparseableLine
	// ProblemEmptyRecord marks an input with zero parseable fields.
	ProblemEmptyRecord
)

// Problem is a recoverable defect found while parsing. Problems never abort
// the parse; rules decide how to report them.
type Problem struct {
	Kind    ProblemKind
	Line    int
	Offset  int
	Message string
}

// Field is a single metadata field with continuation lines already joined.
type Field struct {
	Name   string
	Value  string
	Line   int
	Offset int
}

// Record is the parsed metadata file. Fields holds the resolved view where a
// duplicated name keeps its last occurrence; All preserves every physical
// occurrence in order, so rules can report the shadowed ones.
type Record struct {
	Fields   []Field
	All      []Field
	Problems []Problem

	byName map[string]int
}

// Get returns the resolved field for name. Field names are case-sensitive.
func (r *Record) Get(name string) (Field, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Field{}, false
	}
	return r.Fields[idx], true
}

// Value returns the resolved value for name, or "" if absent.
func (r *Record) Value(name string) string {
	f, ok := r.Get(name)
	if !ok {
		return ""
	}
	return f.Value
}

// Duplicates returns every occurrence of a field that was later overridden
// by a same-named field (last wins).
func (r *Record) Duplicates() []Field {
	var shadowed []Field
	last := make(map[string]int, len(r.All))
	for i, f := range r.All {
		last[f.Name] = i
	}
	for i, f := range r.All {
		if last[f.Name] != i {
			shadowed = append(shadowed, f)
		}
	}
	return shadowed
}

// Parse parses raw DCF bytes. It never fails: malformed content is recorded
// as Problems and parsing continues with the remaining lines.
func Parse(raw []byte) *Record {
	record := &Record{byName: make(map[string]int)}

	content, encodingProblems := sanitizeUTF8(raw)
	record.Problems = append(record.Problems, encodingProblems...)

	var current *Field
	offset := 0
	for lineNo, line := range splitLines(content) {
		lineOffset := offset
		offset += len(line) + 1

		trimmedRight := strings.TrimRight(line, "\r")
		if strings.TrimSpace(trimmedRight) == "" {
			// Blank line: paragraph separator in DCF, nothing to do for a
			// single-record file.
			current = nil
			continue
		}

		if isContinuation(trimmedRight) {
			if current == nil {
				record.Problems = append(record.Problems, Problem{
					Kind:    ProblemUnparseableLine,
					Line:    lineNo + 1,
					Offset:  lineOffset,
					Message: "continuation line with no preceding field",
				})
				continue
			}
			current.Value = joinContinuation(current.Value, trimmedRight)
			continue
		}

		name, value, ok := splitField(trimmedRight)
		if !ok {
			record.Problems = append(record.Problems, Problem{
				Kind:    ProblemUnparseableLine,
				Line:    lineNo + 1,
				Offset:  lineOffset,
				Message: "line is neither a field nor a continuation",
			})
			current = nil
			continue
		}

		record.All = append(record.All, Field{
			Name:   name,
			Value:  value,
			Line:   lineNo + 1,
			Offset: lineOffset,
		})
		current = &record.All[len(record.All)-1]
	}

	// Resolve last-wins while preserving first-appearance order.
	for _, f := range record.All {
		if idx, seen := record.byName[f.Name]; seen {
			record.Fields[idx] = f
			continue
		}
		record.byName[f.Name] = len(record.Fields)
		record.Fields = append(record.Fields, f)
	}

	if len(record.Fields) == 0 {
		record.Problems = append(record.Problems, Problem{
			Kind:    ProblemEmptyRecord,
			Line:    1,
			Message: "no parseable fields",
		})
	}

	return record
}

func isContinuation(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func joinContinuation(value, line string) string {
	trimmed := strings.TrimSpace(line)
	// A line holding a single dot is the DCF idiom for a blank line in a
	// multi-paragraph value.
	if trimmed == "." {
		trimmed = ""
	}
	if value == "" {
		return trimmed
	}
	return value + " " + trimmed
}

func splitField(line string) (name, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx <= 0 {
		return "", "", false
	}
	name = line[:idx]
	if strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	return name, strings.TrimSpace(line[idx+1:]), true
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// sanitizeUTF8 replaces invalid bytes with U+FFFD and records where they
// were, so the caller can surface a note without aborting.
func sanitizeUTF8(raw []byte) (string, []Problem) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	var problems []Problem
	var b strings.Builder
	b.Grow(len(raw))
	line := 1
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			problems = append(problems, Problem{
				Kind:    ProblemEncoding,
				Line:    line,
				Offset:  i,
				Message: "invalid UTF-8 byte replaced with U+FFFD",
			})
			b.WriteRune(utf8.RuneError)
			i++
			continue
		}
		if r == '\n' {
			line++
		}
		b.WriteRune(r)
		i += size
	}
	return b.String(), problems
}
