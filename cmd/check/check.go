package check

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/packlint/packlint/cmd/version"
	"github.com/packlint/packlint/internal/engine"
	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/netcheck"
	"github.com/packlint/packlint/internal/report"
	"github.com/packlint/packlint/internal/rules"
	"github.com/packlint/packlint/internal/walker"
	"github.com/packlint/packlint/pkg/shared/config"
	apperrors "github.com/packlint/packlint/pkg/shared/errors"
	"github.com/packlint/packlint/pkg/shared/httpclient"
	"github.com/packlint/packlint/pkg/shared/logger"
)

// RunOptionsCheck holds the arguments for the check command.
type RunOptionsCheck struct {
	MinSeverity string
	FailOn      string
	Format      string
	Output      string
	Network     bool
	Threads     int
	Exclude     []string
}

var (
	AppConfig         *config.Config
	checkOptions      RunOptionsCheck
	exampleCheckUsage = `  # Audit the package in the current directory
  packlint check

  # Audit a specific package and fail the build on warnings
  packlint check /path/to/pkg --fail-on warning

  # Emit a SARIF report for code-review tooling
  packlint check /path/to/pkg --format sarif --output report.sarif

  # Include the network-backed URL checks, eight files at a time
  packlint check /path/to/pkg --network -j 8

  # Hide notes and skip generated files
  packlint check /path/to/pkg --min-severity warning --exclude 'R/zzz-generated.R'`
)

// CheckCmd represents the check command.
var CheckCmd = &cobra.Command{
	Use:                   "check [--min-severity LEVEL] [--fail-on LEVEL] [--format/-f FORMAT] [--output/-o PATH] [--network] [-j THREADS_NUMBER] [--exclude GLOB]... [PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCheckUsage,
	Short:                 "Evaluate the rule catalog against an R package source tree",
	RunE:                  runCheckCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runCheckCommand executes the check command.
func runCheckCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-check")

	settings, err := validateCheckArgs(&checkOptions, args, AppConfig)
	if err != nil {
		logger.Error("invalid check arguments", "error", err)
		return err
	}

	registry, err := rules.Load()
	if err != nil {
		return fmt.Errorf("failed to load rule catalog: %w", err)
	}

	w := walker.New(settings.Root, settings.Excludes, logger)
	packageFiles, err := w.Walk()
	if err != nil {
		return apperrors.NewUsageError("failed to walk package tree", err)
	}
	logger.Info("package tree walked", "root", settings.Root, "files", len(packageFiles))

	opts := engine.Options{Workers: settings.Workers}
	if settings.Network {
		urlRule, ok := registry.Get("PL-NET001")
		if !ok {
			return fmt.Errorf("rule catalog has no network rule")
		}
		checker := netcheck.New(httpclient.InitializeRestyClient(logger, AppConfig), logger, urlRule)
		opts.Network = checker.Check
	}

	agg := findings.NewAggregator()
	e := engine.New(registry, logger, opts)
	if err := e.Run(cmd.Context(), packageFiles, agg); err != nil {
		return fmt.Errorf("evaluation aborted: %w", err)
	}

	all, _ := agg.Result()
	visible := findings.Filter(all, settings.MinSeverity)
	counts := findings.Tally(visible)

	reporter := report.New(report.Meta{
		RunID:   uuid.NewString(),
		Root:    settings.RootArg,
		Version: version.CoreVersion,
		Rules:   catalogInfo(registry),
	})

	out := cmd.OutOrStdout()
	if settings.Output != "" {
		file, err := os.Create(settings.Output)
		if err != nil {
			return apperrors.NewUsageError("failed to create output file", err)
		}
		defer file.Close()
		out = file
	}
	if err := reporter.Render(out, settings.Format, visible, counts); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if over := findings.AtOrAbove(visible, settings.FailSeverity); over > 0 {
		return apperrors.NewThresholdError(settings.FailSeverity.String(), over)
	}

	logger.Info("check command completed successfully")
	return nil
}

// catalogInfo flattens the registry into the prose map the reporter consumes.
func catalogInfo(registry *rules.Registry) map[string]report.RuleInfo {
	info := make(map[string]report.RuleInfo)
	for _, r := range registry.All() {
		info[r.ID] = report.RuleInfo{
			Summary:  r.Summary,
			Hint:     r.Hint,
			Severity: r.Severity,
		}
	}
	return info
}

// Initialize flags for the check command.
func init() {
	CheckCmd.Flags().StringVar(&checkOptions.MinSeverity, "min-severity", "", "Lowest severity to include in the report (note, warning, error).")
	CheckCmd.Flags().StringVar(&checkOptions.FailOn, "fail-on", "", "Severity at or above which findings fail the run (note, warning, error).")
	CheckCmd.Flags().StringVarP(&checkOptions.Format, "format", "f", "text", "Format for the report with results (text, json, sarif).")
	CheckCmd.Flags().BoolP("help", "h", false, "Show help for the check command.")
	CheckCmd.Flags().StringVarP(&checkOptions.Output, "output", "o", "", "Path to the file where the report will be saved instead of stdout.")
	CheckCmd.Flags().BoolVar(&checkOptions.Network, "network", false, "Probe the URLs declared in the package metadata.")
	CheckCmd.Flags().IntVarP(&checkOptions.Threads, "threads", "j", 0, "Number of concurrent workers; defaults to the CPU count.")
	CheckCmd.Flags().StringArrayVar(&checkOptions.Exclude, "exclude", nil, "Glob pattern of files to skip; may be repeated.")
}
