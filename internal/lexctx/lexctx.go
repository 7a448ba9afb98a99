// Package lexctx answers containment queries against the lexical structure
// of one file: is a byte offset inside a comment or string, which closure
// chain encloses it, is it in the body of a dispatch method, and what kind
// of documentation block surrounds it. A Tracker is built once per file and
// is immutable afterwards; all queries are pure.
package lexctx

import (
	"sort"

	"github.com/packlint/packlint/internal/rdoc"
	"github.com/packlint/packlint/internal/rlang"
)

// MethodInfo describes the nearest enclosing dispatch-method body.
type MethodInfo struct {
	Name    string
	Generic string
	Class   string
	Display bool
}

// Tracker is the per-file context index. Exactly one of the source or doc
// views is populated, depending on the file role.
type Tracker struct {
	stream *rlang.TokenStream
	doc    *rdoc.Tree

	// closuresByStart is the stream's closure list ordered by body start,
	// for offset stabbing.
	closuresByStart []rlang.Closure
	// blocksByStart holds classified doc-block intervals ordered by start.
	blocksByStart []blockInterval
}

type blockInterval struct {
	start, end int
	kind       rdoc.BlockKind
}

// FromSource builds a tracker over a scanned source file.
func FromSource(stream *rlang.TokenStream) *Tracker {
	t := &Tracker{stream: stream}
	t.closuresByStart = append(t.closuresByStart, stream.Closures...)
	sort.Slice(t.closuresByStart, func(i, j int) bool {
		return t.closuresByStart[i].Start < t.closuresByStart[j].Start
	})
	return t
}

// FromDoc builds a tracker over a parsed documentation tree.
func FromDoc(doc *rdoc.Tree) *Tracker {
	t := &Tracker{doc: doc}
	doc.Walk(func(n *rdoc.Node) {
		if n.Kind != rdoc.KindMacro {
			return
		}
		if kind, ok := rdoc.BlockKindOf(n.Macro); ok {
			t.blocksByStart = append(t.blocksByStart, blockInterval{
				start: n.Start,
				end:   n.End,
				kind:  kind,
			})
		}
	})
	sort.Slice(t.blocksByStart, func(i, j int) bool {
		return t.blocksByStart[i].start < t.blocksByStart[j].start
	})
	return t
}

// CommentOrStringAt reports whether offset falls inside a comment or string
// span. Always false for doc trackers.
func (t *Tracker) CommentOrStringAt(offset int) bool {
	if t.stream == nil {
		return false
	}
	span, ok := t.stream.SpanAt(offset)
	if !ok {
		return false
	}
	return span.Kind == rlang.SpanComment || span.Kind == rlang.SpanString
}

// EnclosingClosureChainAt returns the IDs of the closures containing offset,
// outermost first. An empty chain means top level.
func (t *Tracker) EnclosingClosureChainAt(offset int) []int {
	innermost, ok := t.innermostClosureAt(offset)
	if !ok {
		return nil
	}

	var chain []int
	for id := innermost.ID; id >= 0; {
		c := t.stream.Closures[id]
		chain = append(chain, c.ID)
		id = c.Parent
	}
	// Reverse to outermost-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// EnclosingMethodBodyAt returns info about the nearest enclosing closure
// that is a textually-detected dispatch-method body.
func (t *Tracker) EnclosingMethodBodyAt(offset int) (MethodInfo, bool) {
	innermost, ok := t.innermostClosureAt(offset)
	if !ok {
		return MethodInfo{}, false
	}
	for id := innermost.ID; id >= 0; {
		c := t.stream.Closures[id]
		if c.Dispatch {
			return MethodInfo{
				Name:    c.Name,
				Generic: c.Generic,
				Class:   c.Class,
				Display: c.IsDisplayMethod(),
			}, true
		}
		id = c.Parent
	}
	return MethodInfo{}, false
}

// EnclosingDocBlockKindAt returns the kind of the innermost classified doc
// block containing offset. Always false for source trackers.
func (t *Tracker) EnclosingDocBlockKindAt(offset int) (rdoc.BlockKind, bool) {
	idx := sort.Search(len(t.blocksByStart), func(i int) bool {
		return t.blocksByStart[i].start > offset
	})
	for i := idx - 1; i >= 0; i-- {
		b := t.blocksByStart[i]
		if b.end > offset {
			return b.kind, true
		}
	}
	return 0, false
}

// innermostClosureAt finds the closure with the latest start that still
// contains offset. Closure bodies are properly nested, so the first
// containing interval found scanning backwards is the innermost.
func (t *Tracker) innermostClosureAt(offset int) (rlang.Closure, bool) {
	if t.stream == nil {
		return rlang.Closure{}, false
	}
	idx := sort.Search(len(t.closuresByStart), func(i int) bool {
		return t.closuresByStart[i].Start > offset
	})
	for i := idx - 1; i >= 0; i-- {
		c := t.closuresByStart[i]
		if c.End > offset {
			return c, true
		}
	}
	return rlang.Closure{}, false
}
