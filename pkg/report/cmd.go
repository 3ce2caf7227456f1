package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coverage-tools/covreport/internal/coverage"
	"github.com/coverage-tools/covreport/internal/jacoco"
	"github.com/coverage-tools/covreport/internal/metrics"
)

const (
	// DefaultInput is the CSV written by the JaCoCo maven plugin of the
	// spring-boot module.
	DefaultInput = "spring-boot/target/site/jacoco/jacoco.csv"

	// RegenerateCommand runs the test suite with coverage enabled.
	RegenerateCommand = "./run-test-coverage-v2.sh"

	htmlReportName = "index.html"
)

// Flag names, also used as viper keys.
const (
	FlagInput   = "input"
	FlagVerbose = "verbose"
	FlagNoColor = "no-color"
)

type Input struct {
	Path    string
	Verbose bool
	NoColor bool
	Fs      afero.Fs
}

// NewInputFromConfig reads the report input from the flags and environment
// bound to viper.
func NewInputFromConfig() *Input {
	return &Input{
		Path:    viper.GetString(FlagInput),
		Verbose: viper.GetBool(FlagVerbose),
		NoColor: viper.GetBool(FlagNoColor),
		Fs:      afero.NewOsFs(),
	}
}

// AddFlags registers the report flags as persistent flags of cmd.
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(FlagInput, "i", DefaultInput, "JaCoCo CSV report to summarize")
	cmd.PersistentFlags().BoolP(FlagVerbose, "v", false, "Show the class coverage distribution")
	cmd.PersistentFlags().Bool(FlagNoColor, false, "Disable colored output")
}

// NewCmdReport returns the report command. The root command runs the same
// processing when called without a subcommand.
func NewCmdReport() *cobra.Command {
	return &cobra.Command{
		Use:     "report",
		Example: "covreport report --input target/site/jacoco/jacoco.csv",
		Short:   "Summarize a JaCoCo CSV coverage report.",
		Args:    cobra.NoArgs,
		RunE:    RunE,
	}
}

// RunE is the cobra entrypoint of the report.
func RunE(cmd *cobra.Command, args []string) error {
	return Run(cmd.OutOrStdout(), NewInputFromConfig())
}

// Run loads the report, aggregates it and prints the summary into w. Nothing
// is written to w when the report cannot be loaded.
func Run(w io.Writer, input *Input) error {
	fs := input.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	timers := metrics.NewTimers()
	timers.Add("total")
	defer func() {
		timers.Stop()
		timers.Add("total")
		timers.Log()
	}()

	timers.Set("load")
	rows, err := jacoco.Load(fs, input.Path)
	if err != nil {
		return err
	}

	timers.Set("aggregate")
	cov := coverage.Aggregate(rows)
	log.WithFields(log.Fields{
		"rows":    len(rows),
		"classes": len(cov.Classes),
		"line":    cov.Line,
	}).Debug("Coverage aggregated")

	timers.Set("render")
	err = Print(w, cov, PrintOptions{
		HTMLReport: filepath.Join(filepath.Dir(input.Path), htmlReportName),
		Verbose:    input.Verbose,
		NoColor:    input.NoColor,
	})
	if err != nil {
		return errors.Wrap(err, "unable to render coverage report")
	}
	return nil
}

// PrintError writes the diagnostic for an error returned by Run, including
// the command regenerating the report when it is missing.
func PrintError(w io.Writer, err error) {
	if errors.Is(err, jacoco.ErrReportNotFound) {
		fmt.Fprintf(w, "❌ %v\n", err)
		fmt.Fprintf(w, "💡 Run the tests with coverage first: %s\n", RegenerateCommand)
		return
	}
	fmt.Fprintf(w, "❌ %v\n", err)
}
