// Package namespace parses NAMESPACE directive files into typed directive
// records. The parser is line-oriented and never fails: a line that matches
// no known directive shape becomes a raw directive carrying its literal text.
package namespace

import "strings"

// Kind identifies the directive shape.
type Kind int

const (
	// KindRaw is the fallback for unmatched lines.
	KindRaw Kind = iota
	// KindImportAll is import(pkg).
	KindImportAll
	// KindImportFrom is importFrom(pkg, names...).
	KindImportFrom
	// KindExport is export(names...).
	KindExport
	// KindExportPattern is exportPattern(regex).
	KindExportPattern
	// KindS3Method is S3method(generic, class).
	KindS3Method
	// KindUseDynLib is useDynLib(pkg, flags...).
	KindUseDynLib
)

// String returns the directive name as written in the file.
func (k Kind) String() string {
	switch k {
	case KindImportAll:
		return "import"
	case KindImportFrom:
		return "importFrom"
	case KindExport:
		return "export"
	case KindExportPattern:
		return "exportPattern"
	case KindS3Method:
		return "S3method"
	case KindUseDynLib:
		return "useDynLib"
	default:
		return "raw"
	}
}

// Directive is one parsed physical line.
type Directive struct {
	Kind Kind
	// Args holds the unquoted arguments for typed directives; empty for raw.
	Args []string
	// Line is the 1-based physical line number.
	Line int
	// Offset is the byte offset of the line start.
	Offset int
	// Text is the literal line, preserved for raw directives and reporting.
	Text string
}

// List is the ordered parse result of one NAMESPACE file.
type List struct {
	Directives []Directive
}

// ByKind returns all directives of the given kind, in file order.
func (l *List) ByKind(kind Kind) []Directive {
	var out []Directive
	for _, d := range l.Directives {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

var directiveNames = map[string]Kind{
	"import":        KindImportAll,
	"importFrom":    KindImportFrom,
	"export":        KindExport,
	"exportPattern": KindExportPattern,
	"S3method":      KindS3Method,
	"useDynLib":     KindUseDynLib,
}

// minArgs is the arity floor per directive; lines below it fall back to raw.
var minArgs = map[Kind]int{
	KindImportAll:     1,
	KindImportFrom:    2,
	KindExport:        1,
	KindExportPattern: 1,
	KindS3Method:      2,
	KindUseDynLib:     1,
}

// Parse parses raw NAMESPACE bytes. Comments (# to end of line, outside
// quotes) and blank lines are skipped; each remaining physical line yields
// exactly one directive.
func Parse(raw []byte) *List {
	list := &List{}

	offset := 0
	for lineNo, line := range strings.Split(string(raw), "\n") {
		lineOffset := offset
		offset += len(line) + 1

		stripped := stripComment(strings.TrimRight(line, "\r"))
		trimmed := strings.TrimSpace(stripped)
		if trimmed == "" {
			continue
		}

		directive := parseLine(trimmed)
		directive.Line = lineNo + 1
		directive.Offset = lineOffset
		directive.Text = trimmed
		list.Directives = append(list.Directives, directive)
	}

	return list
}

func parseLine(line string) Directive {
	open := strings.IndexByte(line, '(')
	if open <= 0 || !strings.HasSuffix(line, ")") {
		return Directive{Kind: KindRaw}
	}

	name := strings.TrimSpace(line[:open])
	kind, known := directiveNames[name]
	if !known {
		return Directive{Kind: KindRaw}
	}

	args := splitArgs(line[open+1 : len(line)-1])
	if len(args) < minArgs[kind] {
		return Directive{Kind: KindRaw}
	}

	return Directive{Kind: kind, Args: args}
}

// splitArgs splits a directive argument list on commas, respecting single
// and double quotes, and strips the quotes from each argument.
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	var quote byte

	flush := func() {
		arg := strings.TrimSpace(current.String())
		arg = strings.Trim(arg, `"'`)
		if arg != "" {
			args = append(args, arg)
		}
		current.Reset()
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			current.WriteByte(c)
		case c == '"' || c == '\'':
			quote = c
			current.WriteByte(c)
		case c == ',':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return args
}

// stripComment removes a trailing # comment, honoring quotes.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return line[:i]
		}
	}
	return line
}

// HasFlag reports whether a useDynLib directive carries the given flag
// argument, such as .registration.
func (d Directive) HasFlag(flag string) bool {
	for _, arg := range d.Args {
		if strings.HasPrefix(arg, flag) {
			return true
		}
	}
	return false
}
