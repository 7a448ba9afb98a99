package check

import (
	"fmt"

	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/report"
	"github.com/packlint/packlint/pkg/shared/config"
	apperrors "github.com/packlint/packlint/pkg/shared/errors"
	"github.com/packlint/packlint/pkg/shared/files"
)

// checkSettings is the fully resolved input of one check run: flags merged
// with config defaults, paths made absolute, names parsed into their types.
type checkSettings struct {
	// Root is the absolute package directory; RootArg is what the user typed.
	Root         string
	RootArg      string
	MinSeverity  findings.Severity
	FailSeverity findings.Severity
	Format       report.Format
	Output       string
	Network      bool
	Workers      int
	Excludes     []string
}

// validateCheckArgs validates the arguments provided to the check command and
// resolves them against the configuration defaults.
func validateCheckArgs(opts *RunOptionsCheck, args []string, cfg *config.Config) (*checkSettings, error) {
	if len(args) > 1 {
		return nil, apperrors.NewUsageError("at most one package path may be given", nil)
	}

	rootArg := "."
	if len(args) == 1 {
		rootArg = args[0]
	}

	root, err := files.ResolveAbs(rootArg)
	if err != nil {
		return nil, apperrors.NewUsageError(fmt.Sprintf("cannot resolve package path %q", rootArg), err)
	}
	if err := files.ValidateDirPath(root); err != nil {
		return nil, apperrors.NewUsageError(fmt.Sprintf("cannot read package directory %q", rootArg), err)
	}

	checker := config.Checker{}
	if cfg != nil {
		checker = cfg.Checker
	}

	minSeverity, err := resolveSeverity("min-severity", opts.MinSeverity, checker.MinSeverity, findings.SeverityNote)
	if err != nil {
		return nil, err
	}
	failSeverity, err := resolveSeverity("fail-on", opts.FailOn, checker.FailSeverity, findings.SeverityError)
	if err != nil {
		return nil, err
	}

	format, ok := report.ParseFormat(opts.Format)
	if !ok {
		return nil, apperrors.NewUsageError(fmt.Sprintf("unknown report format %q", opts.Format), nil)
	}

	if opts.Threads < 0 {
		return nil, apperrors.NewUsageError("the 'threads' flag must not be negative", nil)
	}
	workers := opts.Threads
	if workers == 0 {
		workers = checker.Workers
	}

	excludes := append([]string{}, checker.Exclude...)
	excludes = append(excludes, opts.Exclude...)

	return &checkSettings{
		Root:         root,
		RootArg:      rootArg,
		MinSeverity:  minSeverity,
		FailSeverity: failSeverity,
		Format:       format,
		Output:       opts.Output,
		Network:      opts.Network,
		Workers:      workers,
		Excludes:     excludes,
	}, nil
}

// resolveSeverity picks the first non-empty severity name from flag and
// config, falling back to the built-in default.
func resolveSeverity(flag, fromFlag, fromConfig string, fallback findings.Severity) (findings.Severity, error) {
	name := fromFlag
	if name == "" {
		name = fromConfig
	}
	if name == "" {
		return fallback, nil
	}
	severity, ok := findings.ParseSeverity(name)
	if !ok {
		return 0, apperrors.NewUsageError(fmt.Sprintf("unknown severity %q for the '%s' flag", name, flag), nil)
	}
	return severity, nil
}
