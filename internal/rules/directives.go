package rules

import (
	"fmt"
	"strings"

	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/lexctx"
	"github.com/packlint/packlint/internal/namespace"
	"github.com/packlint/packlint/internal/parse"
)

// checkExportPattern flags exportPattern directives whose regex matches
// effectively every symbol.
func checkExportPattern(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, d := range f.Directives.ByKind(namespace.KindExportPattern) {
		if len(d.Args) == 0 || !isCatchAllPattern(d.Args[0]) {
			continue
		}
		out = append(out, r.Finding(f, d.Line, d.Offset,
			fmt.Sprintf("exportPattern(%q) exports every symbol", d.Args[0])))
	}
	return out
}

func isCatchAllPattern(pattern string) bool {
	stripped := strings.TrimPrefix(pattern, "^")
	stripped = strings.TrimSuffix(stripped, "$")
	switch stripped {
	case ".", ".*", ".+", "":
		return true
	}
	return false
}

// checkWholeImports flags import(pkg) directives.
func checkWholeImports(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, d := range f.Directives.ByKind(namespace.KindImportAll) {
		out = append(out, r.Finding(f, d.Line, d.Offset,
			fmt.Sprintf("import(%s) pulls in the whole package namespace", d.Args[0])))
	}
	return out
}

// checkRawDirectives flags lines the parser could not type.
func checkRawDirectives(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, d := range f.Directives.ByKind(namespace.KindRaw) {
		finding := r.Finding(f, d.Line, d.Offset, "directive matches no known shape")
		out = append(out, finding.WithSnippet(d.Text))
	}
	return out
}

// checkDynLibRegistration flags useDynLib without .registration.
func checkDynLibRegistration(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, d := range f.Directives.ByKind(namespace.KindUseDynLib) {
		if d.HasFlag(".registration") {
			continue
		}
		out = append(out, r.Finding(f, d.Line, d.Offset,
			fmt.Sprintf("useDynLib(%s) without .registration = TRUE", d.Args[0])))
	}
	return out
}
