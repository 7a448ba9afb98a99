// Package engine evaluates the rule catalog against a package's files. Each
// file is processed independently on a worker pool: classify, parse, build
// the context tracker, run the applicable predicates, and hand the findings
// to the shared aggregator.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/parse"
	"github.com/packlint/packlint/internal/rules"
	"github.com/packlint/packlint/internal/walker"
)

// Catalog is the subset of the rule registry the engine needs.
type Catalog interface {
	ForRole(role walker.FileRole) []rules.Rule
}

// NetworkFunc runs the opt-in network-backed checks for one parsed file.
// Implementations must be failure-tolerant: a timeout or transport error
// yields skipped-note findings, never an error that stops the run.
type NetworkFunc func(ctx context.Context, f *parse.File) []findings.Finding

// Options tunes a run.
type Options struct {
	// Workers is the pool size; zero means runtime.NumCPU().
	Workers int
	// Network, when set, is invoked for metadata files after the local
	// predicates.
	Network NetworkFunc
}

// Engine runs rule evaluation. It holds no per-run mutable state; the same
// engine can serve consecutive runs.
type Engine struct {
	catalog Catalog
	logger  hclog.Logger
	opts    Options
}

// New creates an engine over the given catalog.
func New(catalog Catalog, logger hclog.Logger, opts Options) *Engine {
	return &Engine{catalog: catalog, logger: logger, opts: opts}
}

// Run evaluates every applicable rule against every file, appending all
// findings to agg. Per-file failures become findings; Run itself only fails
// on context cancellation.
func (e *Engine) Run(ctx context.Context, files []walker.PackageFile, agg *findings.Aggregator) error {
	workers := e.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	jobs := make(chan walker.PackageFile)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pf := range jobs {
				agg.Append(e.evaluateFile(ctx, pf)...)
			}
		}()
	}

	var runErr error
dispatch:
	for _, pf := range files {
		if pf.Role == walker.RoleUnclassified {
			continue
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break dispatch
		case jobs <- pf:
		}
	}
	close(jobs)
	wg.Wait()

	return runErr
}

// evaluateFile runs all applicable rules for one file. Findings from
// different rules are independent; ordering is the aggregator's concern.
func (e *Engine) evaluateFile(ctx context.Context, pf walker.PackageFile) []findings.Finding {
	applicable := e.catalog.ForRole(pf.Role)
	networkApplies := e.opts.Network != nil && pf.Role == walker.RoleMetadata
	if len(applicable) == 0 && !networkApplies {
		return nil
	}

	f, err := parse.Load(pf)
	if err != nil {
		e.logger.Warn("file could not be read", "path", pf.RelPath, "error", err)
		return []findings.Finding{
			findings.New("PL-IO001", findings.SeverityWarning, pf.RelPath, 1, 0,
				fmt.Sprintf("file could not be read: %v", err)),
		}
	}

	var out []findings.Finding
	for _, rule := range applicable {
		if rule.External {
			continue
		}
		out = append(out, e.runPredicate(rule, f)...)
	}

	if networkApplies {
		out = append(out, e.opts.Network(ctx, f)...)
	}

	e.logger.Debug("file evaluated", "path", pf.RelPath, "role", pf.Role.String(), "findings", len(out))
	return out
}

// runPredicate isolates one predicate invocation. A panic inside a rule is
// converted into a single diagnostic finding attributed to the rule/file
// pair; the remaining rules keep running.
func (e *Engine) runPredicate(rule rules.Rule, f *parse.File) (out []findings.Finding) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("rule predicate failed", "rule", rule.ID, "path", f.RelPath, "panic", r)
			out = []findings.Finding{
				findings.New(rule.ID, findings.SeverityNote, f.RelPath, 1, 0,
					fmt.Sprintf("rule could not be evaluated: %v", r)),
			}
		}
	}()
	return rule.Check(rule, f, f.Tracker)
}
