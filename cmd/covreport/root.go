package cmd

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coverage-tools/covreport/pkg/report"
	"github.com/coverage-tools/covreport/pkg/version"
)

const envPrefix = "covreport"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "covreport",
	Short:         "JaCoCo coverage summary",
	Long:          `covreport reads the JaCoCo CSV coverage report of the project and prints the overall coverage, a grade and the classes to look at`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loglevel := viper.GetString("log-level")
		logrusLevel, err := log.ParseLevel(loglevel)
		if err != nil {
			return err
		}
		log.SetLevel(logrusLevel)
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
		// stdout only carries the report
		log.SetOutput(cmd.ErrOrStderr())
		return nil
	},
	RunE: report.RunE,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		report.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func initBindFlag(flag string) {
	err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	if err != nil {
		log.Warnf("Unable to bind flag %s\n", flag)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "warning", "logging level")
	report.AddFlags(rootCmd)
	initBindFlag("log-level")
	initBindFlag(report.FlagInput)
	initBindFlag(report.FlagVerbose)
	initBindFlag(report.FlagNoColor)

	// Link in child commands
	rootCmd.AddCommand(report.NewCmdReport())
	rootCmd.AddCommand(version.NewCmdVersion())
}

// initConfig reads in ENV variables if set, e.g. COVREPORT_INPUT.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
