package analysis

import (
	"math"

	"github.com/cmtalleyrand/counterpoint/theory"
)

// Note-value thresholds in beats (quarter note = 1).
const (
	eighthNote       = 0.5
	sixteenthNote    = 0.25
	thirtySecondNote = 0.125
)

// passingThreshold is the passingness at which a note counts as genuinely
// passing.
const passingThreshold = 1.0

// evaluatePassing scores how strongly voice v's note at simultaneity i
// qualifies as fast, weak-beat passing motion. The result only ever
// mitigates penalties downstream; it never turns a penalty into a reward.
func evaluatePassing(sims []theory.Simultaneity, i, v int, rc *theory.RestContext, motion theory.MotionInfo, cfg *Config) *PassingMotion {
	s := sims[i]
	if !s.Attacks(v) {
		// A held voice is never the passing one.
		return &PassingMotion{}
	}

	note := s.VoiceNote(v)
	d := note.Duration

	// Eligibility: at most an eighth, and strictly under an eighth when
	// the dissonance sits on a strong or medium beat.
	if d > eighthNote+theory.BeatTolerance {
		return &PassingMotion{}
	}
	if s.MetricWeight >= strongBeatThreshold && d >= eighthNote-theory.BeatTolerance {
		return &PassingMotion{}
	}

	entry := motion.VoiceInterval(v)

	// A 32nd or shorter that actually changes pitch is always passing.
	if d <= thirtySecondNote+theory.BeatTolerance && entry != 0 {
		return &PassingMotion{Passingness: 3, Mitigation: 1.5, IsPassing: true}
	}

	p := 0.0

	// Duration class.
	switch {
	case d >= eighthNote-theory.BeatTolerance:
		p -= 1.0
	case d > sixteenthNote+theory.BeatTolerance:
		p -= 0.5
	}

	// Relative to the previous note in the same voice.
	if prevDur := rc.PrevDuration[v]; prevDur > 0 {
		if d > prevDur+theory.BeatTolerance {
			p -= 0.5
		} else if d < prevDur-theory.BeatTolerance {
			p += 0.25
		}
	}

	if rc.EntryRest[v] >= eighthNote-theory.BeatTolerance {
		p -= 0.5
	}

	// Metric placement: on the beat is heavy, off the primary subdivision
	// is light.
	beatFrac := math.Mod(note.Onset, 1.0)
	halfFrac := math.Mod(note.Onset, 0.5)
	switch {
	case beatFrac < theory.BeatTolerance || beatFrac > 1.0-theory.BeatTolerance:
		p -= 0.5
	case halfFrac > theory.BeatTolerance && halfFrac < 0.5-theory.BeatTolerance:
		p += 0.5
	}

	// Entry shape.
	entryMag := theory.ClassifyMagnitude(entry)
	switch {
	case entry == 0:
		p -= 0.5 // repeated pitch
	case entryMag == theory.MagnitudeStep:
		p += 0.75
	default:
		p -= 0.5 // by leap
	}

	if motion.Type == theory.MotionOblique {
		p += 0.5
	}

	// Relation to the voice's previous melodic move.
	prevMove := previousMove(sims, i, v)
	if prevMove != 0 && entry != 0 {
		if sameSign(prevMove, entry) {
			p += 0.5
		}
		if theory.ClassifyMagnitude(prevMove).IsLeap() &&
			entryMag == theory.MagnitudeStep && !sameSign(prevMove, entry) {
			p += 0.25 // recovering from a prior leap
		}
		if theory.ClassifyMagnitude(prevMove) == entryMag {
			p += 0.25 // sequential figuration repeats magnitudes
		}
	}

	// Exit turning back toward the pre-entry pitch.
	if j := theory.NextAttackIndex(sims, i, v); j >= 0 && entry != 0 {
		exit := sims[j].VoiceNote(v).Pitch - note.Pitch
		if exit != 0 && !sameSign(entry, exit) {
			p += 0.5
		}
	}

	if cfg.InSequence(s.Onset, i) {
		p += 1.0
	}

	return &PassingMotion{
		Passingness: p,
		Mitigation:  math.Max(0, p/2),
		IsPassing:   p >= passingThreshold,
	}
}

// previousMove is the signed interval by which voice v arrived at its
// previous note, or 0 when there is no earlier pair to compare.
func previousMove(sims []theory.Simultaneity, i, v int) int {
	j := theory.PrevAttackIndex(sims, i, v)
	if j < 0 {
		return 0
	}
	k := theory.PrevAttackIndex(sims, j, v)
	if k < 0 {
		return 0
	}
	return sims[j].VoiceNote(v).Pitch - sims[k].VoiceNote(v).Pitch
}
