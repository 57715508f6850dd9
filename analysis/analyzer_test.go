package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmtalleyrand/counterpoint/notation"
	"github.com/cmtalleyrand/counterpoint/theory"
)

// note is shorthand for building test voices.
func note(pitch int, onset, dur float64) theory.Note {
	return theory.Note{Pitch: pitch, Onset: onset, Duration: dur}
}

func TestAnalyzeSuspension(t *testing.T) {
	// voice 1: E4 then D4 held over the bar; voice 2: C4 held under the D4,
	// then resolving down to B3. The D4-over-C4 second on the downbeat is a
	// textbook suspension.
	v1 := []theory.Note{note(64, 3, 1), note(62, 4, 2)}
	v2 := []theory.Note{note(60, 3, 2), note(59, 5, 1)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})
	require.Len(t, sims, 3)

	res := Analyze(sims, nil)
	require.Len(t, res.Dissonances, 1)

	d := res.Dissonances[0]
	assert.Equal(t, PatternSuspension, d.Type)
	assert.Equal(t, theory.MotionOblique, d.Motion.Type)
	assert.InDelta(t, 0.75, d.EntryScore, 1e-9)  // oblique +0.5, strong beat -0.5, pattern +0.75
	assert.InDelta(t, 1.75, d.ExitScore, 1e-9)   // imperfect resolution +1.0, pattern +0.75
	assert.InDelta(t, 2.5, d.Score, 1e-9)
	assert.False(t, d.Unresolved)

	// the surrounding consonances are the preparation and the resolution
	require.Len(t, res.Consonances, 2)
	assert.Equal(t, CategoryPreparation, res.Consonances[0].Category)
	assert.Equal(t, CategoryResolution, res.Consonances[1].Category)
	assert.InDelta(t, d.ExitScore, res.Consonances[1].ExitScore, 1e-9)

	assert.Equal(t, 1, res.Summary.TypeCounts[PatternSuspension])
	assert.InDelta(t, 2.5, res.Summary.AverageScore, 1e-9)
}

func TestAnalyzeRestruckDissonanceIsUnprepared(t *testing.T) {
	// same line, but voice 2 re-strikes its C4 together with the D4:
	// the dissonance is no longer carried by a held note
	v1 := []theory.Note{note(64, 3, 1), note(62, 4, 2)}
	v2 := []theory.Note{note(60, 3, 1), note(60, 4, 1), note(59, 5, 1)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})

	res := Analyze(sims, nil)
	require.Len(t, res.Dissonances, 1)

	d := res.Dissonances[0]
	assert.Equal(t, TypeUnprepared, d.Type)
	assert.InDelta(t, 0.0, d.EntryScore, 1e-9) // oblique +0.5, strong beat -0.5
	assert.InDelta(t, 1.0, d.Score, 1e-9)
}

func TestAnalyzeParallelFifths(t *testing.T) {
	v1 := []theory.Note{note(67, 0, 1), note(69, 1, 1), note(71, 2, 1)}
	v2 := []theory.Note{note(60, 0, 1), note(62, 1, 1), note(64, 2, 1)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})

	res := Analyze(sims, nil)
	require.Len(t, res.All, 3)

	assert.False(t, res.All[0].IsParallel)
	assert.True(t, res.All[1].IsParallel)
	assert.True(t, res.All[2].IsParallel)

	assert.False(t, res.All[1].IsRepetitive, "second fifth in a row")
	assert.True(t, res.All[2].IsRepetitive, "third fifth in a row")
	assert.InDelta(t, -0.5, res.All[2].Score, 1e-9)
	assert.Equal(t, 1, res.Summary.Repetitive)
}

func TestAnalyzePerfectFourthToggle(t *testing.T) {
	v1 := []theory.Note{note(65, 0, 1), note(64, 1, 1)}
	v2 := []theory.Note{note(60, 0, 2)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})

	res := Analyze(sims, DefaultConfig())
	assert.Len(t, res.Dissonances, 1, "the fourth is dissonant by default")

	cfg := DefaultConfig()
	cfg.TreatP4AsDissonant = false
	relaxed := Analyze(sims, cfg)
	assert.Empty(t, relaxed.Dissonances)
	assert.Len(t, relaxed.Consonances, 2)

	// only the fourth's own contribution moves; the third behind it is
	// untouched either way
	assert.Greater(t, math.Abs(res.Summary.OverallAvgScore-relaxed.Summary.OverallAvgScore), 1e-9)
	assert.InDelta(t, res.All[1].Score, relaxed.All[1].Score, 1e-9)
}

func TestAnalyzeChainAndInvariant(t *testing.T) {
	// a chromatic slide through a tritone and a fourth between two
	// consonances makes a two-member dissonance chain
	v1 := []theory.Note{note(67, 0, 1), note(66, 1, 0.5), note(65, 1.5, 0.5), note(64, 2, 2)}
	v2 := []theory.Note{note(48, 0, 4)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})

	res := Analyze(sims, nil)
	require.Len(t, res.Dissonances, 2)

	first, second := res.Dissonances[0], res.Dissonances[1]
	assert.True(t, first.IsChainEntry)
	assert.False(t, first.IsConsecutiveDissonance)
	assert.True(t, second.IsConsecutiveDissonance)
	assert.Equal(t, 2, first.ChainLength)
	assert.Equal(t, 2, second.ChainLength)
	assert.True(t, res.All[3].IsChainResolution)

	require.Len(t, res.Summary.ConsecutiveDissonanceGroups, 1)
	g := res.Summary.ConsecutiveDissonanceGroups[0]
	assert.Equal(t, 2, g.Length)
	assert.Equal(t, 1, g.StartIndex)
	assert.Equal(t, 2, g.EndIndex)

	// mitigation edits components, never the totals directly
	for _, d := range res.Dissonances {
		require.NotNil(t, d.Components)
		assert.InDelta(t, d.Components.EntryScore(), d.EntryScore, 1e-9)
		assert.InDelta(t, d.Components.ExitScore(), d.ExitScore, 1e-9)
		assert.InDelta(t, d.EntryScore+d.ExitScore, d.Score, 1e-9)
	}
}

func TestAnalyzeUnresolvedFinalDissonance(t *testing.T) {
	v1 := []theory.Note{note(64, 0, 1), note(62, 1, 1)}
	v2 := []theory.Note{note(60, 0, 2)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})

	res := Analyze(sims, nil)
	require.Len(t, res.Dissonances, 1)

	d := res.Dissonances[0]
	assert.True(t, d.Unresolved)
	assert.LessOrEqual(t, d.ExitScore, -1.0)
}

func TestAnalyzeDegenerateInput(t *testing.T) {
	res := Analyze(nil, nil)
	assert.Empty(t, res.All)
	assert.Equal(t, 0, res.Summary.Total)

	sims := notation.AlignVoices(
		[]theory.Note{note(64, 0, 1)},
		[]theory.Note{note(60, 0, 1)}, [2]int{4, 4})
	res = Analyze(sims, nil)
	require.Len(t, res.All, 1)
	assert.True(t, res.All[0].IsConsonant)
	assert.Equal(t, CategoryNormal, res.All[0].Category)
}

func TestScoreDissonanceStandalone(t *testing.T) {
	v1 := []theory.Note{note(64, 3, 1), note(62, 4, 2)}
	v2 := []theory.Note{note(60, 3, 2), note(59, 5, 1)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})

	r := ScoreDissonance(sims, 1, nil, nil)
	assert.Equal(t, PatternSuspension, r.Type)
	assert.InDelta(t, 2.5, r.Score, 1e-9)
}

func TestHistoryNeedsReset(t *testing.T) {
	// voice 1 rests for a beat while voice 2 articulates a complete note
	v1 := []theory.Note{note(60, 0, 1), note(62, 2, 1)}
	v2 := []theory.Note{note(55, 0, 1), note(57, 1, 1), note(59, 2, 1)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})
	require.Len(t, sims, 3)

	rc := theory.AnalyzeRests(sims, 2)
	assert.True(t, historyNeedsReset(sims, 2, rc))

	// the other voice merely holding through the rest is no break
	v2 = []theory.Note{note(55, 0, 2), note(59, 2, 1)}
	sims = notation.AlignVoices(v1, v2, [2]int{4, 4})
	require.Len(t, sims, 2)

	rc = theory.AnalyzeRests(sims, 1)
	assert.False(t, historyNeedsReset(sims, 1, rc))
}

func TestAnalyzeOverallWeightedAverage(t *testing.T) {
	v1 := []theory.Note{note(64, 3, 1), note(62, 4, 2)}
	v2 := []theory.Note{note(60, 3, 2), note(59, 5, 1)}
	sims := notation.AlignVoices(v1, v2, [2]int{4, 4})

	res := Analyze(sims, nil)
	// thirds contribute 0.5 each, the suspension its full 2.5; all three
	// events last one beat
	assert.InDelta(t, 3.5/3.0, res.Summary.OverallAvgScore, 1e-9)
}
