package rules

import (
	"bytes"
	"strings"

	"github.com/packlint/packlint/internal/parse"
	"github.com/packlint/packlint/internal/rlang"
)

// callSite is one textual occurrence of `name(` in a code span.
type callSite struct {
	Name   string
	Offset int
}

// findCalls scans the code spans of a source file for call-shaped
// occurrences of the given function names. Comments and strings never
// match because only code spans are inspected.
func findCalls(f *parse.File, names map[string]bool) []callSite {
	if f.Stream == nil {
		return nil
	}
	var sites []callSite
	src := f.Stream.Source

	for _, span := range f.Stream.Spans {
		if span.Kind != rlang.SpanCode {
			continue
		}
		for i := span.Start; i < span.End; {
			if !isIdentStart(src[i]) {
				i++
				continue
			}
			j := i + 1
			for j < span.End && isIdentPart(src[j]) {
				j++
			}
			name := string(src[i:j])
			if names[name] && nextNonSpaceIs(src, j, span.End, '(') {
				sites = append(sites, callSite{Name: name, Offset: i})
			}
			i = j
		}
	}
	return sites
}

// findOperator returns the offsets of a literal operator in code spans.
func findOperator(f *parse.File, op string) []int {
	if f.Stream == nil {
		return nil
	}
	var offsets []int
	src := f.Stream.Source
	needle := []byte(op)

	for _, span := range f.Stream.Spans {
		if span.Kind != rlang.SpanCode {
			continue
		}
		region := src[span.Start:span.End]
		for from := 0; ; {
			idx := bytes.Index(region[from:], needle)
			if idx < 0 {
				break
			}
			offsets = append(offsets, span.Start+from+idx)
			from += idx + len(needle)
		}
	}
	return offsets
}

// lineSnippet extracts the trimmed source line containing offset.
func lineSnippet(raw []byte, offset int) string {
	if offset < 0 || offset >= len(raw) {
		return ""
	}
	start := offset
	for start > 0 && raw[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(raw) && raw[end] != '\n' {
		end++
	}
	return strings.TrimSpace(string(raw[start:end]))
}

func nextNonSpaceIs(src []byte, from, limit int, want byte) bool {
	for i := from; i < limit; i++ {
		switch src[i] {
		case ' ', '\t':
			continue
		default:
			return src[i] == want
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '.' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
