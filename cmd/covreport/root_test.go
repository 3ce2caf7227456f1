package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-tools/covreport/internal/jacoco"
	"github.com/coverage-tools/covreport/pkg/report"
)

const sampleCSV = `GROUP,PACKAGE,CLASS,INSTRUCTION_MISSED,INSTRUCTION_COVERED,BRANCH_MISSED,BRANCH_COVERED,LINE_MISSED,LINE_COVERED,COMPLEXITY_MISSED,COMPLEXITY_COVERED,METHOD_MISSED,METHOD_COVERED
shop,com.example.Foo,Foo,0,0,0,0,2,8,0,0,0,0
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(t)
		log.SetOutput(os.Stderr)
		log.SetLevel(log.WarnLevel)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores the defaults of the flags parsed by the previous run,
// rootCmd and its viper bindings being package globals.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func writeReport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jacoco.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))
	return path
}

func TestRootPrintsReport(t *testing.T) {
	path := writeReport(t)
	stdout, _, err := execute(t, "--input", path, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "  Line:        80.00%\n")
	assert.Contains(t, stdout, "80.00% - excellent")
	assert.Contains(t, stdout, filepath.Join(filepath.Dir(path), "index.html"))
}

func TestReportSubcommand(t *testing.T) {
	path := writeReport(t)
	stdout, _, err := execute(t, "report", "--input", path, "--no-color", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "  Classes measured: 1\n")
}

func TestRootMissingReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "jacoco.csv")
	stdout, _, err := execute(t, "--input", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jacoco.ErrReportNotFound))
	assert.Empty(t, stdout)

	diag := &bytes.Buffer{}
	report.PrintError(diag, err)
	assert.Contains(t, diag.String(), report.RegenerateCommand)
}

func TestRootInvalidLogLevel(t *testing.T) {
	path := writeReport(t)
	stdout, _, err := execute(t, "--input", path, "--log-level", "loud")
	require.Error(t, err)
	assert.Empty(t, stdout)
}

func TestRootDebugLogsGoToStderr(t *testing.T) {
	path := writeReport(t)
	stdout, stderr, err := execute(t, "--input", path, "--no-color", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Coverage aggregated")
	assert.NotContains(t, stdout, "Coverage aggregated")
}

func TestRootRejectsArguments(t *testing.T) {
	_, _, err := execute(t, "some.csv")
	require.Error(t, err)
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	path := writeReport(t)

	t.Run("verbose", func(t *testing.T) {
		stdout, _, err := execute(t, "--input", path, "--no-color", "--verbose", "--log-level", "loud")
		require.Error(t, err)
		assert.Empty(t, stdout)
	})
	t.Run("defaults", func(t *testing.T) {
		for _, name := range []string{"log-level", report.FlagInput, report.FlagVerbose, report.FlagNoColor} {
			f := rootCmd.PersistentFlags().Lookup(name)
			require.NotNil(t, f, name)
			assert.False(t, f.Changed, name)
			assert.Equal(t, f.DefValue, f.Value.String(), name)
		}

		stdout, _, err := execute(t, "--input", path, "--no-color")
		require.NoError(t, err)
		assert.NotContains(t, stdout, "Classes measured")
	})
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "covreport: unknown+unknown\n", stdout)
}
