package notation

import (
	"sort"

	"github.com/cmtalleyrand/counterpoint/theory"
)

// MetricWeight grades the beat strength of an onset in the given meter,
// on the 0-1 scale the analyzer expects: 1.0 for the downbeat, 0.75 for
// the midpoint of the measure, 0.5 for other beats, 0.25 for half-beat
// subdivisions and 0.1 for anything finer. Onsets are in beats with the
// quarter note as 1.
func MetricWeight(onset float64, meter [2]int) float64 {
	measureLen := float64(meter[0]) * 4.0 / float64(meter[1])
	if measureLen <= 0 {
		measureLen = 4
	}
	pos := mod(onset, measureLen)

	switch {
	case onGrid(pos, measureLen):
		return 1.0
	case near(pos, measureLen/2):
		return 0.75
	case onGrid(pos, 1.0):
		return 0.5
	case onGrid(pos, 0.5):
		return 0.25
	default:
		return 0.1
	}
}

// onGrid reports whether pos sits on a multiple of the given grid spacing,
// within the beat tolerance on either side.
func onGrid(pos, grid float64) bool {
	r := mod(pos, grid)
	return r < theory.BeatTolerance || grid-r < theory.BeatTolerance
}

// AlignVoices builds the ordered simultaneity sequence the analyzer
// consumes: one event per attack in either voice, each voice contributing
// its latest note at or before that onset. A resting voice therefore
// contributes its previous, already-ended note, which is what lets the
// analyzer's rest context see the silence. Onsets before both voices have
// begun produce no event.
func AlignVoices(voice1, voice2 []theory.Note, meter [2]int) []theory.Simultaneity {
	onsets := attackOnsets(voice1, voice2)

	sims := make([]theory.Simultaneity, 0, len(onsets))
	for _, t := range onsets {
		n1, ok1 := latestAt(voice1, t)
		n2, ok2 := latestAt(voice2, t)
		if !ok1 || !ok2 {
			continue
		}
		sims = append(sims, theory.NewSimultaneity(t, n1, n2, MetricWeight(t, meter)))
	}
	return sims
}

// attackOnsets merges both voices' note onsets, deduplicated within the
// beat tolerance.
func attackOnsets(voice1, voice2 []theory.Note) []float64 {
	all := make([]float64, 0, len(voice1)+len(voice2))
	for _, n := range voice1 {
		all = append(all, n.Onset)
	}
	for _, n := range voice2 {
		all = append(all, n.Onset)
	}
	sort.Float64s(all)

	merged := all[:0]
	for _, t := range all {
		if len(merged) == 0 || t-merged[len(merged)-1] > theory.BeatTolerance {
			merged = append(merged, t)
		}
	}
	return merged
}

// latestAt finds a voice's most recent note starting at or before onset t.
// Voices are expected in onset order, as the parsing layer emits them.
func latestAt(voice []theory.Note, t float64) (theory.Note, bool) {
	var latest theory.Note
	found := false
	for _, n := range voice {
		if n.Onset > t+theory.BeatTolerance {
			break
		}
		latest = n
		found = true
	}
	return latest, found
}

func mod(x, m float64) float64 {
	r := x - float64(int(x/m))*m
	if r < 0 {
		r += m
	}
	return r
}

func near(x, target float64) bool {
	d := x - target
	if d < 0 {
		d = -d
	}
	return d < theory.BeatTolerance
}
