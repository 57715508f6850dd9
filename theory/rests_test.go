package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRestsEntryAndExit(t *testing.T) {
	// voice 1: note, half-beat rest, note, note
	// voice 2: one long held note
	held := Note{Pitch: 48, Onset: 0, Duration: 4}
	sims := []Simultaneity{
		NewSimultaneity(0, Note{Pitch: 60, Onset: 0, Duration: 1}, held, 1.0),
		NewSimultaneity(1.5, Note{Pitch: 62, Onset: 1.5, Duration: 0.5}, held, 0.25),
		NewSimultaneity(2, Note{Pitch: 64, Onset: 2, Duration: 1}, held, 0.75),
	}

	rc := AnalyzeRests(sims, 1)
	assert.InDelta(t, 0.5, rc.EntryRest[0], 1e-9, "gap before the second note")
	assert.Zero(t, rc.EntryRest[1], "held voice never re-enters")
	assert.Zero(t, rc.ExitRest[0], "next note follows immediately")
	assert.InDelta(t, 1.0, rc.PrevDuration[0], 1e-9)

	rc = AnalyzeRests(sims, 0)
	assert.Zero(t, rc.EntryRest[0], "first note has no predecessor")
	assert.InDelta(t, 0.5, rc.ExitRest[0], 1e-9, "rest before the second note")
}

func TestAnalyzeRestsAbandonment(t *testing.T) {
	// voice 2's note ends a full beat before voice 1's and before the
	// next simultaneity
	sims := []Simultaneity{
		NewSimultaneity(0,
			Note{Pitch: 62, Onset: 0, Duration: 2},
			Note{Pitch: 60, Onset: 0, Duration: 1}, 1.0),
		NewSimultaneity(2,
			Note{Pitch: 64, Onset: 2, Duration: 1},
			Note{Pitch: 59, Onset: 2, Duration: 1}, 0.75),
	}
	rc := AnalyzeRests(sims, 0)
	assert.True(t, rc.ResolvedByAbandonment)

	// matching durations: nobody is abandoned
	sims[0].Voice2.Duration = 2
	rc = AnalyzeRests(sims, 0)
	assert.False(t, rc.ResolvedByAbandonment)
}

func TestAnalyzeRestsFinalSimultaneity(t *testing.T) {
	sims := []Simultaneity{
		NewSimultaneity(0,
			Note{Pitch: 62, Onset: 0, Duration: 2},
			Note{Pitch: 60, Onset: 0, Duration: 1.95}, 1.0),
	}
	rc := AnalyzeRests(sims, 0)
	assert.False(t, rc.ResolvedByAbandonment, "endings within tolerance")

	sims[0].Voice2.Duration = 1
	rc = AnalyzeRests(sims, 0)
	assert.True(t, rc.ResolvedByAbandonment)
}
