package rdoc

import "strings"

// BlockKind classifies the structural role of an enclosing macro block.
// Two-argument \item constructs are valid inside description- and
// argument-type blocks and a defect inside list-type blocks, so rules must
// ask for the nearest classified ancestor rather than scanning the file.
type BlockKind int

const (
	// BlockList covers \itemize and \enumerate, whose items take no
	// brace arguments.
	BlockList BlockKind = iota
	// BlockDescription covers \describe, whose items are
	// \item{label}{description} pairs.
	BlockDescription
	// BlockArgument covers \arguments and \value, which use the same
	// two-argument item form.
	BlockArgument
)

// String returns the block kind name.
func (k BlockKind) String() string {
	switch k {
	case BlockDescription:
		return "description"
	case BlockArgument:
		return "argument"
	default:
		return "list"
	}
}

var blockKinds = map[string]BlockKind{
	"itemize":   BlockList,
	"enumerate": BlockList,
	"describe":  BlockDescription,
	"arguments": BlockArgument,
	"value":     BlockArgument,
}

// BlockKindOf classifies a macro name, if it names a known block type.
func BlockKindOf(macro string) (BlockKind, bool) {
	kind, ok := blockKinds[macro]
	return kind, ok
}

// NearestBlockAncestor walks the parent chain and returns the closest
// enclosing macro node that is a classified block, together with its kind.
// The receiver itself is not considered.
func (n *Node) NearestBlockAncestor() (*Node, BlockKind, bool) {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Kind != KindMacro {
			continue
		}
		if kind, ok := BlockKindOf(cur.Macro); ok {
			return cur, kind, true
		}
	}
	return nil, 0, false
}

// Text returns the plain text content of a group or text node, with nested
// macros skipped and surrounding whitespace trimmed.
func (n *Node) Text(source []byte) string {
	var b strings.Builder
	var rec func(*Node)
	rec = func(cur *Node) {
		switch cur.Kind {
		case KindText:
			b.Write(source[cur.Start:cur.End])
		case KindGroup, KindRoot:
			for _, child := range cur.Children {
				rec(child)
			}
		}
	}
	rec(n)
	return strings.TrimSpace(b.String())
}

// ContainsMacro reports whether the sub-tree rooted at n contains a macro
// with the given name.
func (n *Node) ContainsMacro(name string) bool {
	found := false
	var rec func(*Node)
	rec = func(cur *Node) {
		if found {
			return
		}
		if cur.Kind == KindMacro && cur.Macro == name {
			found = true
			return
		}
		for _, arg := range cur.Args {
			rec(arg)
		}
		for _, child := range cur.Children {
			rec(child)
		}
	}
	rec(n)
	return found
}
