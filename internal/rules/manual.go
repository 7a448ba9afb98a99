package rules

import (
	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/lexctx"
	"github.com/packlint/packlint/internal/parse"
)

// Some catalog rules depend on state a single run does not have, such as the
// previously submitted version. They are modeled as always-informational:
// the engine emits the reminder instead of guessing.

func checkVersionMonotonicity(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	return []findings.Finding{
		r.Finding(f, 1, 0, "not statically checkable: confirm the Version field increased since the previous submission"),
	}
}

func checkTestContinuity(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	return []findings.Finding{
		r.Finding(f, 1, 0, "not statically checkable: confirm no failing tests were removed since the previous submission"),
	}
}
