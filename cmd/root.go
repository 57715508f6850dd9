package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmtalleyrand/counterpoint/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "counterpoint",
	Short: "Two-voice counterpoint dissonance grader",
	Long: `Analyzes two-voice counterpoint and grades how well each harmonic
clash is handled according to traditional voice-leading rules.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
