// Package rlang performs lexical scanning of R source text. It splits a file
// into contiguous code, comment, and string spans, and recognizes function
// literals assigned to names so higher layers can ask what closure a byte
// offset lives in. It is deliberately not a parser: no expression grammar, no
// evaluation order, just enough structure to disambiguate context.
package rlang

import "sort"

// SpanKind tags a lexical span.
type SpanKind int

const (
	SpanCode SpanKind = iota
	SpanComment
	SpanString
)

// String returns the span kind name.
func (k SpanKind) String() string {
	switch k {
	case SpanComment:
		return "comment"
	case SpanString:
		return "string"
	default:
		return "code"
	}
}

// Span is a half-open byte range [Start, End) of uniform lexical kind.
// Spans are contiguous, non-overlapping, and jointly cover the whole input.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
}

// TokenStream is the scan result for one source file.
type TokenStream struct {
	Source   []byte
	Spans    []Span
	Closures []Closure

	lineStarts []int
}

// Scan tokenizes raw R source. It never fails: unterminated strings and
// comments produce a final span running to end of input.
func Scan(raw []byte) *TokenStream {
	ts := &TokenStream{Source: raw}
	ts.lineStarts = indexLines(raw)

	const (
		stCode = iota
		stComment
		stString
	)

	state := stCode
	var delim byte
	spanStart := 0

	emit := func(kind SpanKind, end int) {
		if end > spanStart {
			ts.Spans = append(ts.Spans, Span{Kind: kind, Start: spanStart, End: end})
		}
		spanStart = end
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch state {
		case stCode:
			switch c {
			case '#':
				emit(SpanCode, i)
				state = stComment
			case '\'', '"', '`':
				emit(SpanCode, i)
				state = stString
				delim = c
			}
		case stComment:
			if c == '\n' {
				// The newline belongs to the following code span.
				emit(SpanComment, i)
				state = stCode
			}
		case stString:
			if c == '\\' && delim != '`' {
				i++ // escape sequence, skip the escaped byte
				continue
			}
			if c == delim {
				emit(SpanString, i+1)
				state = stCode
			}
		}
	}

	switch state {
	case stComment:
		emit(SpanComment, len(raw))
	case stString:
		emit(SpanString, len(raw))
	default:
		emit(SpanCode, len(raw))
	}

	ts.Closures = recognizeClosures(ts)
	return ts
}

// SpanAt returns the span containing offset, or false when offset is out of
// range. Lookup is binary search over the ordered span list.
func (ts *TokenStream) SpanAt(offset int) (Span, bool) {
	if offset < 0 || offset >= len(ts.Source) {
		return Span{}, false
	}
	idx := sort.Search(len(ts.Spans), func(i int) bool {
		return ts.Spans[i].End > offset
	})
	if idx == len(ts.Spans) {
		return Span{}, false
	}
	return ts.Spans[idx], true
}

// LineAt converts a byte offset to a 1-based line number.
func (ts *TokenStream) LineAt(offset int) int {
	if offset < 0 {
		return 1
	}
	idx := sort.Search(len(ts.lineStarts), func(i int) bool {
		return ts.lineStarts[i] > offset
	})
	return idx
}

// Reconstruct concatenates all spans in order. The result is byte-identical
// to the original input; tokenization is lossless.
func (ts *TokenStream) Reconstruct() []byte {
	out := make([]byte, 0, len(ts.Source))
	for _, span := range ts.Spans {
		out = append(out, ts.Source[span.Start:span.End]...)
	}
	return out
}

func indexLines(raw []byte) []int {
	starts := []int{0}
	for i, c := range raw {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
