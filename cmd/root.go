package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/packlint/packlint/cmd/check"
	"github.com/packlint/packlint/cmd/version"
	"github.com/packlint/packlint/pkg/shared/config"
	apperrors "github.com/packlint/packlint/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "packlint [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Packlint audits the source tree of an R package.",
		Long: `Packlint walks an R package source tree, classifies every file by its role,
and evaluates a catalog of metadata, namespace, source, and documentation
rules against it. Findings are reported as text, JSON, or SARIF.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .packlint.yml)")
	rootCmd.AddCommand(check.CheckCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and maps the outcome to a process exit code:
// 0 for a clean run, 1 when findings reached the fail threshold, 2 for usage
// and environment errors.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var thresholdErr *apperrors.ThresholdError
		if stderrors.As(err, &thresholdErr) {
			fmt.Fprintf(os.Stderr, "packlint: %v\n", thresholdErr)
			return 1
		}

		var usageErr *apperrors.UsageError
		if stderrors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "packlint: %v\n", usageErr)
			return usageErr.ExitCode
		}

		fmt.Fprintf(os.Stderr, "packlint: %v\n", err)
		return 2
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = ".packlint.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "packlint: %v\n", err)
		os.Exit(2)
	}

	check.Init(AppConfig)
}
