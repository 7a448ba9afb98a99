package rules

import (
	"fmt"
	"strings"

	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/lexctx"
	"github.com/packlint/packlint/internal/parse"
)

var consoleWriters = map[string]bool{
	"cat":   true,
	"print": true,
}

var attachLoaders = map[string]bool{
	"library": true,
	"require": true,
}

var debugCalls = map[string]bool{
	"browser":   true,
	"debug":     true,
	"debugonce": true,
}

// checkConsoleOutput flags cat()/print() calls, except inside the body of a
// print-style dispatch method, where writing to the console is the point.
func checkConsoleOutput(r Rule, f *parse.File, tracker *lexctx.Tracker) []findings.Finding {
	if isTestFile(f) {
		return nil
	}

	var out []findings.Finding
	for _, site := range findCalls(f, consoleWriters) {
		if info, ok := tracker.EnclosingMethodBodyAt(site.Offset); ok && info.Display {
			continue
		}
		finding := r.Finding(f, f.LineAt(site.Offset), site.Offset,
			fmt.Sprintf("%s() call outside a print method", site.Name))
		out = append(out, finding.WithSnippet(lineSnippet(f.Raw, site.Offset)))
	}
	return out
}

// checkGlobalAssignment flags <<- only when its nearest enclosing closure is
// the top level: there the walk up the environment chain lands in the global
// environment. Inside a nested closure the same operator is the ordinary
// local-state pattern and is left alone.
func checkGlobalAssignment(r Rule, f *parse.File, tracker *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, offset := range findOperator(f, "<<-") {
		if len(tracker.EnclosingClosureChainAt(offset)) >= 2 {
			continue
		}
		finding := r.Finding(f, f.LineAt(offset), offset,
			"<<- assigns past the top level into the global environment")
		out = append(out, finding.WithSnippet(lineSnippet(f.Raw, offset)))
	}
	return out
}

// checkLibraryCalls flags library()/require() in package code. Test files
// are exempt; loading the package under test there is normal.
func checkLibraryCalls(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	if isTestFile(f) {
		return nil
	}

	var out []findings.Finding
	for _, site := range findCalls(f, attachLoaders) {
		finding := r.Finding(f, f.LineAt(site.Offset), site.Offset,
			fmt.Sprintf("%s() call in package code", site.Name))
		out = append(out, finding.WithSnippet(lineSnippet(f.Raw, site.Offset)))
	}
	return out
}

// checkAttach flags attach() calls.
func checkAttach(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, site := range findCalls(f, map[string]bool{"attach": true}) {
		finding := r.Finding(f, f.LineAt(site.Offset), site.Offset,
			"attach() call modifies the user search path")
		out = append(out, finding.WithSnippet(lineSnippet(f.Raw, site.Offset)))
	}
	return out
}

// checkDebugLeftovers flags browser()/debug()/debugonce() calls.
func checkDebugLeftovers(r Rule, f *parse.File, _ *lexctx.Tracker) []findings.Finding {
	var out []findings.Finding
	for _, site := range findCalls(f, debugCalls) {
		finding := r.Finding(f, f.LineAt(site.Offset), site.Offset,
			fmt.Sprintf("leftover %s() call", site.Name))
		out = append(out, finding.WithSnippet(lineSnippet(f.Raw, site.Offset)))
	}
	return out
}

func isTestFile(f *parse.File) bool {
	return strings.HasPrefix(f.RelPath, "tests/")
}
