package theory

import "math"

// abandonTolerance is how far apart the two voices' final note-ends may be
// before the last simultaneity counts as abandoned.
const abandonTolerance = 0.1

// RestContext records the silences surrounding one simultaneity: for each
// voice, the rest (if any) between its previous note and this one, the rest
// between this note and its next, and the previous note's duration. It also
// carries the derived abandonment flag, which holds when one voice drops
// out while the other is still sounding.
type RestContext struct {
	EntryRest    [2]float64 `json:"entry_rest"`
	ExitRest     [2]float64 `json:"exit_rest"`
	PrevDuration [2]float64 `json:"prev_duration"`

	ResolvedByAbandonment bool `json:"resolved_by_abandonment"`
}

// FromRest reports whether either voice entered this simultaneity out of a
// rest.
func (rc *RestContext) FromRest() bool {
	return rc.EntryRest[0] > 0 || rc.EntryRest[1] > 0
}

// PrevAttackIndex finds the most recent simultaneity before i at which
// voice v articulated a different note, or -1 when the current note is the
// voice's first.
func PrevAttackIndex(sims []Simultaneity, i, v int) int {
	cur := sims[i].VoiceNote(v)
	for j := i - 1; j >= 0; j-- {
		if !sims[j].VoiceNote(v).SameAttack(cur) {
			return j
		}
	}
	return -1
}

// NextAttackIndex finds the first simultaneity after i at which voice v
// articulates a different note, or -1 when there is none.
func NextAttackIndex(sims []Simultaneity, i, v int) int {
	cur := sims[i].VoiceNote(v)
	for j := i + 1; j < len(sims); j++ {
		if !sims[j].VoiceNote(v).SameAttack(cur) {
			return j
		}
	}
	return -1
}

// AnalyzeRests builds the rest context for simultaneity i.
func AnalyzeRests(sims []Simultaneity, i int) *RestContext {
	rc := &RestContext{}
	cur := sims[i]

	for v := 0; v < 2; v++ {
		note := cur.VoiceNote(v)

		if j := PrevAttackIndex(sims, i, v); j >= 0 {
			prev := sims[j].VoiceNote(v)
			rc.PrevDuration[v] = prev.Duration
			if gap := note.Onset - prev.End(); gap > BeatTolerance {
				rc.EntryRest[v] = gap
			}
		}

		if j := NextAttackIndex(sims, i, v); j >= 0 {
			next := sims[j].VoiceNote(v)
			if gap := next.Onset - note.End(); gap > BeatTolerance {
				rc.ExitRest[v] = gap
			}
		}
	}

	end1 := cur.Voice1.End()
	end2 := cur.Voice2.End()
	if i == len(sims)-1 {
		rc.ResolvedByAbandonment = math.Abs(end1-end2) > abandonTolerance
	} else {
		nextOnset := sims[i+1].Onset
		earlier := math.Min(end1, end2)
		later := math.Max(end1, end2)
		rc.ResolvedByAbandonment = earlier < later-BeatTolerance && earlier < nextOnset-BeatTolerance
	}

	return rc
}
