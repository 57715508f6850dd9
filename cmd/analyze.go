package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmtalleyrand/counterpoint/analysis"
	"github.com/cmtalleyrand/counterpoint/notation"
)

var (
	meterFlag      string
	p4Consonant    bool
	jsonOutput     bool
	sequenceRanges []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.mid>",
	Short: "Grade the dissonance treatment in a two-voice MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&meterFlag, "meter", "4/4", "meter as numerator/denominator")
	analyzeCmd.Flags().BoolVar(&p4Consonant, "p4-consonant", false, "treat the perfect fourth as a consonance")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the raw result as JSON")
	analyzeCmd.Flags().StringArrayVar(&sequenceRanges, "sequence", nil, "beat range of a melodic sequence, as start-end (repeatable)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	voices, err := notation.ReadMIDIFile(args[0])
	if err != nil {
		return err
	}

	sims := notation.AlignVoices(voices.Voice1, voices.Voice2, cfg.Meter)
	result := analysis.Analyze(sims, cfg)

	if jsonOutput {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printResult(result)
	return nil
}

func buildConfig() (*analysis.Config, error) {
	cfg := analysis.DefaultConfig()
	cfg.TreatP4AsDissonant = !p4Consonant

	meter, err := parseMeter(meterFlag)
	if err != nil {
		return nil, err
	}
	cfg.Meter = meter

	for _, s := range sequenceRanges {
		r, err := parseBeatRange(s)
		if err != nil {
			return nil, err
		}
		cfg.SequenceBeatRanges = append(cfg.SequenceBeatRanges, r)
	}

	return cfg, nil
}

func parseMeter(s string) ([2]int, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("invalid meter %q, want numerator/denominator", s)
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil || num <= 0 {
		return [2]int{}, fmt.Errorf("invalid meter numerator %q", parts[0])
	}
	den, err := strconv.Atoi(parts[1])
	if err != nil || den <= 0 {
		return [2]int{}, fmt.Errorf("invalid meter denominator %q", parts[1])
	}
	return [2]int{num, den}, nil
}

func parseBeatRange(s string) (analysis.BeatRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return analysis.BeatRange{}, fmt.Errorf("invalid sequence range %q, want start-end", s)
	}
	start, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return analysis.BeatRange{}, fmt.Errorf("invalid sequence start %q", parts[0])
	}
	end, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || end < start {
		return analysis.BeatRange{}, fmt.Errorf("invalid sequence end %q", parts[1])
	}
	return analysis.BeatRange{StartBeat: start, EndBeat: end}, nil
}

func printResult(result *analysis.Result) {
	for _, r := range result.All {
		if r.IsConsonant {
			fmt.Printf("%8.2f  %-18s %-24s %+.2f\n", r.Onset, r.Interval.Name(), r.Category, r.Score)
		} else {
			fmt.Printf("%8.2f  %-18s %-24s %+.2f (entry %+.2f, exit %+.2f)\n",
				r.Onset, r.Interval.Name(), r.Type, r.Score, r.EntryScore, r.ExitScore)
		}
		if verbose {
			for _, d := range r.Details {
				fmt.Printf("          - %s\n", d)
			}
		}
	}

	s := result.Summary
	fmt.Printf("\n%d events: %d consonant, %d dissonant (%d good, %d bad), %d repetitive\n",
		s.Total, s.Consonant, s.Dissonant, s.Good, s.Bad, s.Repetitive)
	if len(s.ConsecutiveDissonanceGroups) > 0 {
		fmt.Printf("dissonance chains: %d\n", len(s.ConsecutiveDissonanceGroups))
	}
	fmt.Printf("dissonance avg %.3f, overall weighted avg %.3f\n", s.AverageScore, s.OverallAvgScore)
}
