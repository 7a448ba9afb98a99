// Package rdoc parses the macro-delimited Rd documentation format into a
// tree of nested blocks. Parsing is recovery-oriented: unbalanced braces
// terminate the affected sub-tree and record a structural error, but the
// rest of the file still parses as far as brace balance allows.
package rdoc

import "sort"

// NodeKind tags a tree node.
type NodeKind int

const (
	// KindRoot is the synthetic top-level container.
	KindRoot NodeKind = iota
	// KindMacro is a \name construct; its brace groups are in Args.
	KindMacro
	// KindGroup is one brace-delimited {...} argument.
	KindGroup
	// KindText is a run of plain text.
	KindText
	// KindComment is a % comment running to end of line.
	KindComment
)

// Node is one node of the document tree. Parent is a back-reference used for
// ancestor-chain queries, never an ownership edge.
type Node struct {
	Kind  NodeKind
	Macro string
	Start int
	End   int

	Parent   *Node
	Args     []*Node // macro nodes: one group per argument
	Children []*Node // group/root nodes: mixed content
}

// StructuralError records a brace imbalance that terminated a sub-tree.
type StructuralError struct {
	Offset  int
	Message string
}

// Tree is the parse result for one Rd file.
type Tree struct {
	Source []byte
	Root   *Node
	Errors []StructuralError

	lineStarts []int
}

// LineAt converts a byte offset to a 1-based line number.
func (t *Tree) LineAt(offset int) int {
	if offset < 0 {
		return 1
	}
	idx := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	})
	return idx
}

// Walk visits every node depth-first, macro arguments before siblings.
func (t *Tree) Walk(visit func(*Node)) {
	var rec func(*Node)
	rec = func(n *Node) {
		visit(n)
		for _, arg := range n.Args {
			rec(arg)
		}
		for _, child := range n.Children {
			rec(child)
		}
	}
	rec(t.Root)
}

// Macros returns every macro node with the given name, in document order.
func (t *Tree) Macros(name string) []*Node {
	var out []*Node
	t.Walk(func(n *Node) {
		if n.Kind == KindMacro && n.Macro == name {
			out = append(out, n)
		}
	})
	return out
}

// Balanced reports whether the file parsed without brace imbalance.
func (t *Tree) Balanced() bool {
	return len(t.Errors) == 0
}

// Parse builds the document tree for raw Rd bytes. It never fails.
func Parse(raw []byte) *Tree {
	tree := &Tree{
		Source:     raw,
		Root:       &Node{Kind: KindRoot, Start: 0, End: len(raw)},
		lineStarts: indexLines(raw),
	}

	p := &parser{src: raw, tree: tree}
	p.parseContent(tree.Root, false)
	return tree
}

type parser struct {
	src  []byte
	pos  int
	tree *Tree
}

// parseContent consumes content into parent until end of input, or until an
// unconsumed closing brace when insideGroup is set.
func (p *parser) parseContent(parent *Node, insideGroup bool) {
	textStart := -1

	flushText := func(end int) {
		if textStart >= 0 && end > textStart {
			parent.Children = append(parent.Children, &Node{
				Kind:   KindText,
				Start:  textStart,
				End:    end,
				Parent: parent,
			})
		}
		textStart = -1
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '%':
			flushText(p.pos)
			start := p.pos
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
			parent.Children = append(parent.Children, &Node{
				Kind:   KindComment,
				Start:  start,
				End:    p.pos,
				Parent: parent,
			})

		case '\\':
			if p.pos+1 < len(p.src) && isEscapable(p.src[p.pos+1]) {
				// Escaped brace, percent, or backslash: plain text, and the
				// brace does not open or close a block.
				if textStart < 0 {
					textStart = p.pos
				}
				p.pos += 2
				continue
			}
			if p.pos+1 < len(p.src) && isMacroChar(p.src[p.pos+1]) {
				flushText(p.pos)
				p.parseMacro(parent)
				continue
			}
			if textStart < 0 {
				textStart = p.pos
			}
			p.pos++

		case '{':
			flushText(p.pos)
			group := p.parseGroup(parent)
			parent.Children = append(parent.Children, group)

		case '}':
			flushText(p.pos)
			if insideGroup {
				return
			}
			p.tree.Errors = append(p.tree.Errors, StructuralError{
				Offset:  p.pos,
				Message: "unmatched closing brace",
			})
			p.pos++

		default:
			if textStart < 0 {
				textStart = p.pos
			}
			p.pos++
		}
	}
	flushText(p.pos)
}

// parseMacro consumes \name and any directly following brace groups.
func (p *parser) parseMacro(parent *Node) {
	start := p.pos
	p.pos++ // backslash
	nameStart := p.pos
	for p.pos < len(p.src) && isMacroChar(p.src[p.pos]) {
		p.pos++
	}

	macro := &Node{
		Kind:   KindMacro,
		Macro:  string(p.src[nameStart:p.pos]),
		Start:  start,
		Parent: parent,
	}
	parent.Children = append(parent.Children, macro)

	for p.pos < len(p.src) && p.src[p.pos] == '{' {
		arg := p.parseGroup(macro)
		macro.Args = append(macro.Args, arg)
	}

	if len(macro.Args) > 0 {
		macro.End = macro.Args[len(macro.Args)-1].End
	} else {
		macro.End = p.pos
	}
}

// parseGroup consumes one {...} group. A missing closing brace records a
// structural error and the group runs to end of input.
func (p *parser) parseGroup(parent *Node) *Node {
	group := &Node{
		Kind:   KindGroup,
		Start:  p.pos,
		Parent: parent,
	}
	p.pos++ // opening brace

	p.parseContent(group, true)

	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		group.End = p.pos
	} else {
		group.End = len(p.src)
		p.tree.Errors = append(p.tree.Errors, StructuralError{
			Offset:  group.Start,
			Message: "unterminated brace group",
		})
	}
	return group
}

func isMacroChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isEscapable(c byte) bool {
	return c == '{' || c == '}' || c == '%' || c == '\\'
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
