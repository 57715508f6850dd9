package analysis

import (
	"fmt"

	"github.com/cmtalleyrand/counterpoint/theory"
)

// patternContext is everything a figure rule may inspect: the entry and
// exit shape of each voice around the dissonant event.
type patternContext struct {
	entry      [2]int // signed semitones into the event, 0 = held or repeated
	exit       [2]int // signed semitones out of the event
	attacked   [2]bool
	hasNext    bool
	weight     float64
	motion     theory.MotionInfo
	exitMotion theory.MotionInfo
}

func (pc *patternContext) strongBeat() bool {
	return pc.weight >= strongBeatThreshold
}

// patternMatch is a recognized figure with its bonus split between the
// entry and exit score components.
type patternMatch struct {
	name       string
	voice      int
	entryBonus float64
	exitBonus  float64
}

// patternRule is one predicate in the prioritized figure list.
type patternRule struct {
	name  string
	match func(pc *patternContext) *patternMatch
}

// patternRules in precedence order; the first match supplies the event's
// type and bonuses, later matches are reported as secondary labels only.
// Each rule checks voice 1 before voice 2.
var patternRules = []patternRule{
	{"suspension", matchSuspension},
	{"anticipation", matchAnticipation},
	{"appoggiatura", matchAppoggiatura},
	{"cambiata", matchCambiata},
	{"escape_tone", matchEscapeTone},
	{"passing_tone", matchPassingTone},
	{"neighbor_tone", matchNeighborTone},
}

// recognizePatterns runs the rule list and applies the winning figure's
// bonuses. Every matching rule is recorded in Patterns so chains of
// overlapping figures remain visible.
func recognizePatterns(r *ScoreResult, pc *patternContext) {
	r.Type = TypeUnprepared

	first := true
	for _, rule := range patternRules {
		m := rule.match(pc)
		if m == nil {
			continue
		}
		r.Patterns = append(r.Patterns, m.name)
		if !first {
			continue
		}
		first = false

		r.Type = m.name
		r.Components.EntryPattern = m.entryBonus
		r.Components.ExitPattern = m.exitBonus
		r.detail(fmt.Sprintf("%s (voice %d): entry %+.2f, exit %+.2f",
			m.name, m.voice+1, m.entryBonus, m.exitBonus))
	}
}

// matchSuspension recognizes the suspension family: an oblique entry where
// the held voice carries the dissonance and then resolves by step. Downward
// resolution is a suspension, upward a retardation.
func matchSuspension(pc *patternContext) *patternMatch {
	if pc.motion.Type != theory.MotionOblique || !pc.hasNext {
		return nil
	}
	for v := 0; v < 2; v++ {
		if pc.entry[v] != 0 || pc.attacked[v] {
			continue // not the held voice
		}
		if theory.ClassifyMagnitude(pc.exit[v]) != theory.MagnitudeStep {
			continue
		}
		m := &patternMatch{voice: v, entryBonus: 0.75, exitBonus: 0.5}
		if pc.exit[v] < 0 {
			m.name = PatternSuspension
			m.exitBonus += 0.25
		} else {
			m.name = PatternRetardation
		}
		return m
	}
	return nil
}

// matchAnticipation recognizes a weak-beat oblique entry whose exit is not
// parallel: one voice arrives early on the coming harmony.
func matchAnticipation(pc *patternContext) *patternMatch {
	if pc.motion.Type != theory.MotionOblique || pc.strongBeat() {
		return nil
	}
	if pc.hasNext && pc.exitMotion.Type == theory.MotionParallel {
		return nil
	}
	for v := 0; v < 2; v++ {
		if pc.entry[v] != 0 && pc.attacked[v] {
			return &patternMatch{name: PatternAnticipation, voice: v, entryBonus: 0.5}
		}
	}
	return nil
}

// matchAppoggiatura recognizes a strong-beat leap onto the dissonance
// resolved by step. The bonus halves when the step opposes the leap's
// direction.
func matchAppoggiatura(pc *patternContext) *patternMatch {
	if !pc.strongBeat() || !pc.hasNext {
		return nil
	}
	for v := 0; v < 2; v++ {
		if !theory.ClassifyMagnitude(pc.entry[v]).IsLeap() {
			continue
		}
		if theory.ClassifyMagnitude(pc.exit[v]) != theory.MagnitudeStep {
			continue
		}
		scale := 1.0
		if !sameSign(pc.entry[v], pc.exit[v]) {
			scale = 0.5
		}
		return &patternMatch{
			name:       PatternAppoggiatura,
			voice:      v,
			entryBonus: 2.0 * scale,
			exitBonus:  0.5 * scale,
		}
	}
	return nil
}

// matchCambiata recognizes the nota cambiata family: a step onto the
// dissonance followed by a same-direction skip of a third. The proper form
// descends on a weak beat; the ascending and strong-beat variants earn
// progressively less.
func matchCambiata(pc *patternContext) *patternMatch {
	if !pc.hasNext {
		return nil
	}
	for v := 0; v < 2; v++ {
		if theory.ClassifyMagnitude(pc.entry[v]) != theory.MagnitudeStep {
			continue
		}
		if theory.ClassifyMagnitude(pc.exit[v]) != theory.MagnitudeSkip {
			continue
		}
		if !sameSign(pc.entry[v], pc.exit[v]) {
			continue
		}
		switch {
		case pc.strongBeat():
			return &patternMatch{name: PatternCambiataStrong, voice: v, entryBonus: 0.1, exitBonus: 0.4}
		case pc.entry[v] < 0:
			return &patternMatch{name: PatternCambiata, voice: v, entryBonus: 0.3, exitBonus: 1.2}
		default:
			return &patternMatch{name: PatternInvertedCambiata, voice: v, entryBonus: 0.2, exitBonus: 0.8}
		}
	}
	return nil
}

// matchEscapeTone recognizes a step onto the dissonance abandoned by a
// skip or perfect leap in the opposite direction.
func matchEscapeTone(pc *patternContext) *patternMatch {
	if !pc.hasNext {
		return nil
	}
	for v := 0; v < 2; v++ {
		if theory.ClassifyMagnitude(pc.entry[v]) != theory.MagnitudeStep {
			continue
		}
		exitMag := theory.ClassifyMagnitude(pc.exit[v])
		if exitMag != theory.MagnitudeSkip && exitMag != theory.MagnitudePerfectLeap {
			continue
		}
		if sameSign(pc.entry[v], pc.exit[v]) {
			continue
		}
		return &patternMatch{name: PatternEscapeTone, voice: v, exitBonus: 0.5}
	}
	return nil
}

// matchPassingTone recognizes step entry and same-direction step exit. The
// label always applies; the bonus only on a strong beat, where correct
// handling deserves credit.
func matchPassingTone(pc *patternContext) *patternMatch {
	return matchStepwise(pc, PatternPassingTone, true)
}

// matchNeighborTone recognizes step entry and opposite-direction step exit,
// under the same strong-beat-only bonus rule as the passing tone.
func matchNeighborTone(pc *patternContext) *patternMatch {
	return matchStepwise(pc, PatternNeighborTone, false)
}

func matchStepwise(pc *patternContext, name string, sameDirection bool) *patternMatch {
	if !pc.hasNext {
		return nil
	}
	for v := 0; v < 2; v++ {
		if theory.ClassifyMagnitude(pc.entry[v]) != theory.MagnitudeStep {
			continue
		}
		if theory.ClassifyMagnitude(pc.exit[v]) != theory.MagnitudeStep {
			continue
		}
		if sameSign(pc.entry[v], pc.exit[v]) != sameDirection {
			continue
		}
		m := &patternMatch{name: name, voice: v}
		if pc.strongBeat() {
			m.entryBonus = 0.25
		}
		return m
	}
	return nil
}
