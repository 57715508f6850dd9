package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmtalleyrand/counterpoint/analysis"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the recognized contrapuntal figures and their bonuses",
	Run: func(cmd *cobra.Command, args []string) {
		rows := []struct {
			name        string
			entry, exit string
			shape       string
		}{
			{analysis.PatternSuspension, "+0.75", "+0.75", "oblique entry, held voice steps down"},
			{analysis.PatternRetardation, "+0.75", "+0.50", "oblique entry, held voice steps up"},
			{analysis.PatternAnticipation, "+0.50", "", "weak-beat oblique entry, non-parallel exit"},
			{analysis.PatternAppoggiatura, "+2.00", "+0.50", "strong-beat leap entry resolved by step"},
			{analysis.PatternCambiata, "+0.30", "+1.20", "weak-beat descending step, then skip onward"},
			{analysis.PatternInvertedCambiata, "+0.20", "+0.80", "weak-beat ascending step, then skip onward"},
			{analysis.PatternCambiataStrong, "+0.10", "+0.40", "cambiata shape on a strong beat"},
			{analysis.PatternEscapeTone, "", "+0.50", "step entry abandoned by opposite leap"},
			{analysis.PatternPassingTone, "+0.25", "", "step entry and same-direction step exit (bonus on strong beats)"},
			{analysis.PatternNeighborTone, "+0.25", "", "step entry and opposite step exit (bonus on strong beats)"},
		}
		fmt.Printf("%-20s %-7s %-7s %s\n", "figure", "entry", "exit", "shape")
		for _, row := range rows {
			fmt.Printf("%-20s %-7s %-7s %s\n", row.name, row.entry, row.exit, row.shape)
		}
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
