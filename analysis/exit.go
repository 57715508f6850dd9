package analysis

import (
	"fmt"

	"github.com/cmtalleyrand/counterpoint/theory"
)

// sequenceLeapFactor is the share of a leap-resolution penalty that
// survives inside a registered melodic sequence.
const sequenceLeapFactor = 0.25

// scoreExit grades the departure from the dissonant simultaneity at index
// i into its resolution. With no following simultaneity the dissonance is
// unresolved; otherwise the next interval's quality, per-voice leap
// resolution, and rest-delayed resolutions all contribute.
func scoreExit(r *ScoreResult, sims []theory.Simultaneity, i int, rc *theory.RestContext, motion theory.MotionInfo, cfg *Config) {
	c := r.Components
	s := sims[i]

	if i == len(sims)-1 {
		c.ExitRest = -1.0
		r.Unresolved = true
		r.detail("unresolved: no following simultaneity: -1.00")
		if rc.ResolvedByAbandonment {
			c.ExitRest -= 0.5
			r.detail("abandoned: voices end apart: -0.50")
		}
		return
	}

	next := sims[i+1]
	if next.Interval.IsConsonant(cfg.TreatP4AsDissonant) {
		switch {
		case next.Interval.IsImperfectConsonance():
			c.ExitResolution = 1.0
			r.detail(fmt.Sprintf("resolves to %s: +1.00", next.Interval.Name()))
		case next.Interval.IsPerfectConsonance():
			c.ExitResolution = 0.5
			r.detail(fmt.Sprintf("resolves to %s: +0.50", next.Interval.Name()))
		default:
			c.ExitResolution = 0.5
			r.detail(fmt.Sprintf("resolves to %s: +0.50", next.Interval.Name()))
		}
	} else {
		penalty := -0.75
		// A fast note on a weak beat passes through a second dissonance
		// at half the usual cost.
		short := minDuration(s) <= cfg.ShortNoteThreshold()+theory.BeatTolerance
		if short && s.MetricWeight < strongBeatThreshold {
			penalty = -0.375
		}
		c.ExitChain = penalty
		r.detail(fmt.Sprintf("resolves to another dissonance: %+.3f", penalty))
	}

	if rc.ResolvedByAbandonment {
		c.ExitRest -= 0.5
		r.detail("resolved by abandonment: -0.50")
	}

	scoreRestQualifiedResolution(r, s, rc)

	inSequence := cfg.InSequence(s.Onset, i)
	for v := 0; v < 2; v++ {
		scoreVoiceResolution(r, sims, i, v, motion, inSequence)
	}
}

// minDuration is the shorter of the two notes sounding at a simultaneity,
// i.e. the duration of the faster-moving voice.
func minDuration(s theory.Simultaneity) float64 {
	d1, d2 := s.Voice1.Duration, s.Voice2.Duration
	if d2 < d1 {
		return d2
	}
	return d1
}

// scoreRestQualifiedResolution penalizes resolutions reached only after a
// substantial rest: a rest longer than half a voice's own note delays its
// resolution, and when both voices delay, the resolution is not really one.
func scoreRestQualifiedResolution(r *ScoreResult, s theory.Simultaneity, rc *theory.RestContext) {
	c := r.Components
	delayed := 0
	for v := 0; v < 2; v++ {
		if rc.ExitRest[v] > s.VoiceNote(v).Duration/2 {
			delayed++
		}
	}
	switch delayed {
	case 2:
		c.ExitRest -= 1.0
		r.detail("invalid resolution: both voices rest first: -1.00")
	case 1:
		c.ExitRest -= 0.3
		r.detail("delayed resolution: one voice rests first: -0.30")
	}
}

// scoreVoiceResolution charges voice v for how its entry leap (if any)
// resolves. Exit by step or unison is always free; everything else is
// keyed to the entry magnitude and the exit's size and direction.
func scoreVoiceResolution(r *ScoreResult, sims []theory.Simultaneity, i, v int, motion theory.MotionInfo, inSequence bool) {
	c := r.Components
	entry := motion.VoiceInterval(v)
	exit := sims[i+1].VoiceNote(v).Pitch - sims[i].VoiceNote(v).Pitch

	penalty, label := resolutionPenalty(entry, exit)
	if penalty < 0 {
		if inSequence {
			penalty *= sequenceLeapFactor
			label += " (sequence-mitigated)"
		}
		*c.voiceResolution(v) += penalty
		r.detail(fmt.Sprintf("voice %d %s: %+.3f", v+1, label, penalty))
	}

	// A wide leap onto a dissonance should turn back on itself.
	entryMag := theory.ClassifyMagnitude(entry)
	if entryMag.IsWideLeap() && exit != 0 && sameSign(entry, exit) {
		*c.voiceResolution(v) -= 0.25
		r.detail(fmt.Sprintf("voice %d leap not followed by opposite motion: -0.25", v+1))
	}
}

// resolutionPenalty implements the leap-resolution table. Both arguments
// are signed semitone intervals; a zero return means the exit is free.
func resolutionPenalty(entry, exit int) (float64, string) {
	exitMag := theory.ClassifyMagnitude(exit)
	if exitMag == theory.MagnitudeUnison || exitMag == theory.MagnitudeStep {
		return 0, ""
	}

	entryMag := theory.ClassifyMagnitude(entry)
	opposite := entry != 0 && !sameSign(entry, exit)

	switch {
	case entryMag == theory.MagnitudeSkip:
		switch {
		case exitMag == theory.MagnitudeSkip:
			return -0.5, "skip entry resolved by skip"
		case exitMag == theory.MagnitudePerfectLeap:
			return -1.0, "skip entry resolved by perfect leap"
		default:
			return -2.0, "skip entry resolved by large leap"
		}

	case entryMag == theory.MagnitudePerfectLeap:
		switch {
		case exitMag == theory.MagnitudeSkip && opposite:
			return -1.0, "perfect-leap entry resolved by opposite skip"
		case exitMag == theory.MagnitudePerfectLeap && opposite:
			return -1.5, "perfect-leap entry resolved by opposite perfect leap"
		case exitMag == theory.MagnitudeSkip:
			return -1.5, "perfect-leap entry resolved by same-direction skip"
		default:
			return -2.0, "perfect-leap entry poorly resolved"
		}

	case entryMag.IsLargeOrOctave():
		if exitMag == theory.MagnitudeSkip && opposite {
			return -1.5, "large-leap entry resolved by opposite skip"
		}
		return -2.5, "large-leap entry poorly resolved"

	default:
		// No entry leap, but the exit itself leaps away from the
		// dissonance: a flat per-size charge.
		switch exitMag {
		case theory.MagnitudeSkip, theory.MagnitudePerfectLeap:
			return -0.5, "exit by leap"
		default:
			return -1.5, "exit by large leap"
		}
	}
}

func sameSign(a, b int) bool {
	return (a > 0) == (b > 0)
}
