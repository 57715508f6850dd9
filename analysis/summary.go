package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cmtalleyrand/counterpoint/theory"
)

// minEventWeight floors an event's duration weight so that very short
// notes still register in the overall average.
const minEventWeight = 0.25

// ChainGroup summarizes one run of consecutive dissonances.
type ChainGroup struct {
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	Length     int     `json:"length"`
	StartOnset float64 `json:"start_onset"`
	EndOnset   float64 `json:"end_onset"`
}

// Summary aggregates an analysis run: event counts, the distribution of
// dissonance types and patterns, dissonance chains, and two averages — the
// plain mean over dissonance scores and a duration-weighted mean over
// every interval.
type Summary struct {
	Total      int `json:"total"`
	Consonant  int `json:"consonant"`
	Dissonant  int `json:"dissonant"`
	Good       int `json:"good"`
	Bad        int `json:"bad"`
	Repetitive int `json:"repetitive"`

	TypeCounts  map[string]int `json:"type_counts"`
	AllPatterns []string       `json:"all_patterns"`

	ConsecutiveDissonanceGroups []ChainGroup `json:"consecutive_dissonance_groups"`

	AverageScore    float64 `json:"average_score"`
	OverallAvgScore float64 `json:"overall_avg_score"`
}

func newSummary() *Summary {
	return &Summary{TypeCounts: make(map[string]int)}
}

// summarize builds the summary from the finished result set.
func (a *Analyzer) summarize(res *Result) *Summary {
	sum := newSummary()
	sum.Total = len(res.All)
	sum.Consonant = len(res.Consonances)
	sum.Dissonant = len(res.Dissonances)

	var dissScores []float64
	values := make([]float64, 0, len(res.All))
	weights := make([]float64, 0, len(res.All))

	for _, r := range res.All {
		values = append(values, a.eventContribution(r))
		weights = append(weights, math.Max(minEventWeight, r.Duration))

		if r.IsConsonant {
			if r.IsRepetitive {
				sum.Repetitive++
			}
			continue
		}

		dissScores = append(dissScores, r.Score)
		if r.Score >= 0 {
			sum.Good++
		} else {
			sum.Bad++
		}
		sum.TypeCounts[r.Type]++
		sum.AllPatterns = append(sum.AllPatterns, r.Patterns...)
	}

	if len(dissScores) > 0 {
		sum.AverageScore = stat.Mean(dissScores, nil)
	}
	if len(values) > 0 {
		sum.OverallAvgScore = stat.Mean(values, weights)
	}

	sum.ConsecutiveDissonanceGroups = chainGroups(res.All)
	return sum
}

// eventContribution is an event's value in the overall weighted average:
// dissonances contribute their post-mitigation score, consonances a fixed
// base weight by interval family.
func (a *Analyzer) eventContribution(r *ScoreResult) float64 {
	if !r.IsConsonant {
		return r.Score
	}
	cw := a.cfg.ConsonanceWeights
	switch {
	case r.Interval.IsImperfectConsonance():
		return cw.ThirdSixth
	case r.Interval.Class == theory.ClassFifth:
		return cw.Fifth
	case r.Interval.Class == theory.ClassFourth:
		return cw.Fourth
	default:
		return cw.Other
	}
}

// chainGroups collects every dissonance run of length >= 2.
func chainGroups(results []*ScoreResult) []ChainGroup {
	var groups []ChainGroup
	for _, r := range results {
		if r.IsConsonant || !r.IsChainEntry || r.ChainLength < 2 {
			continue
		}
		groups = append(groups, ChainGroup{
			StartIndex: r.Index,
			EndIndex:   r.Index + r.ChainLength - 1,
			Length:     r.ChainLength,
			StartOnset: r.ChainStartOnset,
			EndOnset:   r.ChainEndOnset,
		})
	}
	return groups
}
