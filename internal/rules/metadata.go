package rules

import (
	"fmt"
	"strings"

	"github.com/packlint/packlint/internal/dcf"
	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/lexctx"
	"github.com/packlint/packlint/internal/parse"
)

// checkRequiredFields reports the required DESCRIPTION fields that are
// missing or empty, as one finding.
func checkRequiredFields(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	missing := f.Metadata.MissingRequired()
	if len(missing) == 0 {
		return nil
	}
	return []findings.Finding{
		r.Finding(f, 1, 0, fmt.Sprintf("missing required field(s): %s", strings.Join(missing, ", "))),
	}
}

// checkTitleFormat flags a Title ending with a period.
func checkTitleFormat(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	title, ok := f.Metadata.Get("Title")
	if !ok || title.Value == "" {
		return nil
	}
	if !strings.HasSuffix(title.Value, ".") {
		return nil
	}
	return []findings.Finding{
		r.Finding(f, title.Line, title.Offset, "Title should not end with a period"),
	}
}

// checkDescriptionQuality flags descriptions that are too short or that just
// restate the package name.
func checkDescriptionQuality(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	field, ok := f.Metadata.Get("Description")
	if !ok || field.Value == "" {
		return nil
	}

	var out []findings.Finding
	value := field.Value
	if len(value) < 40 {
		out = append(out, r.Finding(f, field.Line, field.Offset,
			"Description is too short to be informative"))
	}

	lower := strings.ToLower(value)
	pkg := strings.ToLower(f.Metadata.Package())
	switch {
	case pkg != "" && strings.HasPrefix(lower, pkg+" "):
		out = append(out, r.Finding(f, field.Line, field.Offset,
			"Description should not start with the package name"))
	case strings.HasPrefix(lower, "a package"), strings.HasPrefix(lower, "this package"):
		out = append(out, r.Finding(f, field.Line, field.Offset,
			`Description should not start with "A package" or "This package"`))
	}
	return out
}

// checkDuplicateFields reports every field occurrence shadowed by a later
// same-named field.
func checkDuplicateFields(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, shadowed := range f.Metadata.Duplicates() {
		winner, _ := f.Metadata.Get(shadowed.Name)
		out = append(out, r.Finding(f, shadowed.Line, shadowed.Offset,
			fmt.Sprintf("duplicate field %q; the occurrence at line %d wins", shadowed.Name, winner.Line)))
	}
	return out
}

// checkMetadataStructure surfaces the parser's recoverable problems:
// unparseable lines, replaced bytes, or an entirely empty record.
func checkMetadataStructure(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, problem := range f.Metadata.Problems {
		line := problem.Line
		if line == 0 {
			line = 1
		}
		var message string
		switch problem.Kind {
		case dcf.ProblemEncoding:
			message = "non-UTF-8 byte replaced with U+FFFD"
		case dcf.ProblemEmptyRecord:
			message = "DESCRIPTION has no parseable fields"
		default:
			message = problem.Message
		}
		out = append(out, r.Finding(f, line, problem.Offset, message))
	}
	return out
}
