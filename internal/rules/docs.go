package rules

import (
	"strings"

	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/lexctx"
	"github.com/packlint/packlint/internal/parse"
	"github.com/packlint/packlint/internal/rdoc"
)

// checkItemPlacement flags two-argument \item constructs whose nearest
// classified block ancestor is a list-type block. The decision is made on
// the ancestor chain of each item node; whether a list macro occurs anywhere
// else in the file is irrelevant.
func checkItemPlacement(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, item := range f.Doc.Macros("item") {
		if len(item.Args) < 2 {
			continue
		}
		_, kind, ok := item.NearestBlockAncestor()
		if !ok || kind != rdoc.BlockList {
			continue
		}
		finding := r.Finding(f, f.Doc.LineAt(item.Start), item.Start,
			`\item with a {label}{description} pair inside a list block; items there take no arguments`)
		out = append(out, finding.WithSnippet(lineSnippet(f.Raw, item.Start)))
	}
	return out
}

// checkBraceBalance surfaces the parser's structural errors.
func checkBraceBalance(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, structErr := range f.Doc.Errors {
		out = append(out, r.Finding(f, f.Doc.LineAt(structErr.Offset), structErr.Offset,
			structErr.Message))
	}
	return out
}

// checkValueSection flags files that document usage but no return value.
func checkValueSection(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	usages := f.Doc.Macros("usage")
	if len(usages) == 0 || len(f.Doc.Macros("value")) > 0 {
		return nil
	}
	return []findings.Finding{
		r.Finding(f, f.Doc.LineAt(usages[0].Start), usages[0].Start,
			`\usage is documented but there is no \value section`),
	}
}

// checkExamples flags empty examples and examples fully wrapped in \dontrun.
func checkExamples(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, examples := range f.Doc.Macros("examples") {
		if len(examples.Args) == 0 {
			continue
		}
		body := examples.Args[0]
		if body.Text(f.Doc.Source) != "" {
			continue
		}
		message := "examples section is empty"
		if body.ContainsMacro("dontrun") {
			message = `all examples are wrapped in \dontrun`
		}
		out = append(out, r.Finding(f, f.Doc.LineAt(examples.Start), examples.Start, message))
	}
	return out
}

// checkDocTitle flags an empty \title or one ending with a period.
func checkDocTitle(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, title := range f.Doc.Macros("title") {
		var text string
		if len(title.Args) > 0 {
			text = title.Args[0].Text(f.Doc.Source)
		}
		line := f.Doc.LineAt(title.Start)
		switch {
		case text == "":
			out = append(out, r.Finding(f, line, title.Start, `\title is empty`))
		case strings.HasSuffix(text, "."):
			out = append(out, r.Finding(f, line, title.Start, `\title should not end with a period`))
		}
	}
	return out
}
