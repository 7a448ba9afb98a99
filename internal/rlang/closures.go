package rlang

import "strings"

// Closure describes one textually-detected function literal and its body
// range. The recognizer is lexical: it matches the idiom
// `name <- function(args) body` (also `=` and `<<-` assignments) and tracks
// brace balance to find where the body ends.
type Closure struct {
	ID int
	// Name is the assignment target, or "" for an anonymous function.
	Name string
	// Generic and Class are set when Name matches the dispatch pattern
	// generic.class used for S3 method definitions.
	Generic string
	Class   string
	// Dispatch reports whether Name matched the generic.class pattern.
	Dispatch bool
	// Start and End delimit the function body as a half-open byte range.
	Start int
	End   int
	// Parent is the index of the enclosing closure, or -1 at top level.
	Parent int
}

// DisplayGenerics are the print-style generics whose method bodies
// legitimately write to the console.
var DisplayGenerics = map[string]bool{
	"print":    true,
	"format":   true,
	"show":     true,
	"summary":  true,
	"toString": true,
}

// IsDisplayMethod reports whether the closure is a dispatch method for a
// print-style generic.
func (c Closure) IsDisplayMethod() bool {
	return c.Dispatch && DisplayGenerics[c.Generic]
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokOp
	tokOpen  // ( [ {
	tokClose // ) ] }
	tokNewline
	tokOther
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// lexCode produces a flat token list from the code spans only. Comments and
// strings are invisible here, which is what makes the closure recognizer
// immune to `function` appearing in either.
func lexCode(ts *TokenStream) []token {
	var tokens []token
	for _, span := range ts.Spans {
		if span.Kind != SpanCode {
			continue
		}
		src := ts.Source
		for i := span.Start; i < span.End; {
			c := src[i]
			switch {
			case c == '\n':
				tokens = append(tokens, token{tokNewline, "\n", i})
				i++
			case c == ' ' || c == '\t' || c == '\r':
				i++
			case isIdentStart(c):
				j := i + 1
				for j < span.End && isIdentPart(src[j]) {
					j++
				}
				tokens = append(tokens, token{tokIdent, string(src[i:j]), i})
				i = j
			case c == '<':
				if i+2 < span.End && src[i+1] == '<' && src[i+2] == '-' {
					tokens = append(tokens, token{tokOp, "<<-", i})
					i += 3
				} else if i+1 < span.End && src[i+1] == '-' {
					tokens = append(tokens, token{tokOp, "<-", i})
					i += 2
				} else {
					tokens = append(tokens, token{tokOp, "<", i})
					i++
				}
			case c == '=':
				if i+1 < span.End && src[i+1] == '=' {
					tokens = append(tokens, token{tokOp, "==", i})
					i += 2
				} else {
					tokens = append(tokens, token{tokOp, "=", i})
					i++
				}
			case c == '(' || c == '[' || c == '{':
				tokens = append(tokens, token{tokOpen, string(c), i})
				i++
			case c == ')' || c == ']' || c == '}':
				tokens = append(tokens, token{tokClose, string(c), i})
				i++
			default:
				tokens = append(tokens, token{tokOther, string(c), i})
				i++
			}
		}
	}
	return tokens
}

func isIdentStart(c byte) bool {
	return c == '.' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// pending tracks a `function` keyword whose parameter list or body is still
// being consumed.
type pending struct {
	name       string
	paramDepth int // bracket depth inside the parameter list; -1 before (
}

type openClosure struct {
	idx       int
	braceBody bool
	depth     int // bracket depth at body start, for expression bodies
}

func recognizeClosures(ts *TokenStream) []Closure {
	tokens := lexCode(ts)

	var closures []Closure
	var active []openClosure
	var waiting []pending

	depth := 0
	var prev, prev2 token

	closeExprBodies := func(end int, toDepth int) {
		for len(active) > 0 {
			top := active[len(active)-1]
			if top.braceBody || top.depth < toDepth {
				break
			}
			closures[top.idx].End = end
			active = active[:len(active)-1]
		}
	}

	currentParent := func() int {
		if len(active) == 0 {
			return -1
		}
		return active[len(active)-1].idx
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok.kind {
		case tokNewline:
			// A newline at the body's own depth ends an expression body.
			closeExprBodies(tok.offset, depth)
			continue

		case tokIdent:
			if tok.text == "function" {
				name := ""
				if prev.kind == tokOp && isAssignOp(prev.text) && prev2.kind == tokIdent {
					name = prev2.text
				}
				waiting = append(waiting, pending{name: name, paramDepth: -1})
			} else if len(waiting) > 0 && waiting[len(waiting)-1].paramDepth == -2 {
				// Expression body starting at an identifier.
				startExprBody(&waiting, &closures, &active, tok.offset, depth, currentParent())
			}

		case tokOpen:
			depth++
			if len(waiting) > 0 {
				p := &waiting[len(waiting)-1]
				if p.paramDepth == -1 && tok.text == "(" {
					p.paramDepth = depth
				} else if p.paramDepth == -2 {
					if tok.text == "{" {
						idx := len(closures)
						closures = append(closures, newClosure(idx, p.name, tok.offset, currentParent()))
						active = append(active, openClosure{idx: idx, braceBody: true, depth: depth})
						waiting = waiting[:len(waiting)-1]
					} else {
						startExprBody(&waiting, &closures, &active, tok.offset, depth-1, currentParent())
					}
				}
			}

		case tokClose:
			if len(waiting) > 0 {
				p := &waiting[len(waiting)-1]
				if p.paramDepth == depth && tok.text == ")" {
					// Parameter list closed; the body is whatever follows.
					p.paramDepth = -2
					depth--
					prev2, prev = prev, tok
					continue
				}
			}
			depth--
			// Expression bodies end where their enclosing bracket closes.
			closeExprBodies(tok.offset, depth+1)
			if tok.text == "}" && len(active) > 0 {
				top := active[len(active)-1]
				if top.braceBody && top.depth == depth+1 {
					closures[top.idx].End = tok.offset + 1
					active = active[:len(active)-1]
				}
			}

		default:
			if len(waiting) > 0 && waiting[len(waiting)-1].paramDepth == -2 {
				startExprBody(&waiting, &closures, &active, tok.offset, depth, currentParent())
			}
		}

		prev2, prev = prev, tok
	}

	// Unterminated bodies run to end of input.
	for _, open := range active {
		if closures[open.idx].End == 0 {
			closures[open.idx].End = len(ts.Source)
		}
	}

	return closures
}

func startExprBody(waiting *[]pending, closures *[]Closure, active *[]openClosure, offset, depth, parent int) {
	p := (*waiting)[len(*waiting)-1]
	idx := len(*closures)
	*closures = append(*closures, newClosure(idx, p.name, offset, parent))
	*active = append(*active, openClosure{idx: idx, braceBody: false, depth: depth})
	*waiting = (*waiting)[:len(*waiting)-1]
}

func newClosure(id int, name string, start, parent int) Closure {
	c := Closure{ID: id, Name: name, Start: start, Parent: parent}
	if dot := strings.IndexByte(name, '.'); dot > 0 && dot < len(name)-1 {
		c.Dispatch = true
		c.Generic = name[:dot]
		c.Class = name[dot+1:]
	}
	return c
}

func isAssignOp(op string) bool {
	return op == "<-" || op == "<<-" || op == "="
}
