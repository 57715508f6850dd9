package analysis

import (
	"fmt"
	"math"
)

// entryRewardCap bounds how much of an entry-motion reward passing motion
// may take back.
const entryRewardCap = 0.8

// annotateChains walks the scored events and marks maximal runs of
// adjacent dissonances: every member learns its position, the shared run
// boundaries, and whether it opens the run; the consonance that follows a
// run (if any) is its resolution.
func annotateChains(results []*ScoreResult) {
	i := 0
	for i < len(results) {
		if results[i].IsConsonant {
			i++
			continue
		}

		start := i
		for i < len(results) && !results[i].IsConsonant {
			i++
		}
		end := i - 1

		length := end - start + 1
		startOnset := results[start].Onset
		endOnset := results[end].Onset
		for j := start; j <= end; j++ {
			r := results[j]
			r.ChainLength = length
			r.ChainPosition = j - start
			r.IsChainEntry = j == start
			r.IsConsecutiveDissonance = j > start
			r.ChainStartOnset = startOnset
			r.ChainEndOnset = endOnset
		}
		if i < len(results) {
			results[i].IsChainResolution = true
		}
	}
}

// applyMitigations softens specific penalty components of each dissonance
// using the passing-motion evaluations, then resyncs the score totals.
// Only three components are ever touched: the per-voice leap-resolution
// penalties, the shared entry-motion term, and the resolves-to-dissonance
// penalty. Meter, rest and consonance-reward components stay as scored,
// and no component crosses zero.
func applyMitigations(results []*ScoreResult) {
	for i, r := range results {
		if r.IsConsonant || r.Components == nil {
			continue
		}
		c := r.Components

		r.PassingMotion = r.voicePassing(0).IsPassing || r.voicePassing(1).IsPassing

		// (a) each voice's own resolution penalty.
		for v := 0; v < 2; v++ {
			m := r.voicePassing(v).Mitigation
			comp := c.voiceResolution(v)
			if m > 0 && *comp < 0 {
				old := *comp
				*comp = math.Min(0, *comp+m)
				r.detail(fmt.Sprintf("passing motion eases voice %d resolution penalty: %+.3f -> %+.3f", v+1, old, *comp))
			}
		}

		best := r.bestPassing().Mitigation

		// (b) the shared entry-motion term: penalties rise toward zero,
		// rewards shrink — a note passing through quickly earns neither
		// the full blame nor the full credit for its approach.
		if best > 0 && c.EntryMotion < 0 {
			old := c.EntryMotion
			c.EntryMotion = math.Min(0, c.EntryMotion+best)
			r.detail(fmt.Sprintf("passing motion eases entry penalty: %+.3f -> %+.3f", old, c.EntryMotion))
		} else if best > 0 && c.EntryMotion > 0 {
			old := c.EntryMotion
			c.EntryMotion = math.Max(0, c.EntryMotion-math.Min(entryRewardCap, best/2.5))
			r.detail(fmt.Sprintf("passing motion trims entry reward: %+.3f -> %+.3f", old, c.EntryMotion))
		}

		// (c) the resolves-to-dissonance penalty. A consecutive chain
		// member answers for itself; the chain's opening member answers
		// for the chain it starts, so its penalty is judged by how
		// passing the following member is.
		if c.ExitChain < 0 {
			m := best
			if r.IsChainEntry {
				m = 0
				if i+1 < len(results) && !results[i+1].IsConsonant {
					m = results[i+1].bestPassing().Mitigation
				}
			}
			if m > 0 {
				old := c.ExitChain
				c.ExitChain = math.Min(0, c.ExitChain+m)
				r.detail(fmt.Sprintf("passing motion eases chain penalty: %+.3f -> %+.3f", old, c.ExitChain))
			}
		}

		r.syncScores()
	}
}

// copyResolutionExits gives each resolving consonance the exit score of
// the dissonance it resolves, after mitigation has settled it.
func copyResolutionExits(results []*ScoreResult) {
	for i, r := range results {
		if !r.IsConsonant || i == 0 {
			continue
		}
		prev := results[i-1]
		if !prev.IsConsonant {
			r.ExitScore = prev.ExitScore
		}
	}
}
