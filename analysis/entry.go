package analysis

import (
	"fmt"

	"github.com/cmtalleyrand/counterpoint/theory"
)

// strongBeatThreshold is the metric weight at or above which an onset
// counts as a strong (or medium-strong) beat.
const strongBeatThreshold = 0.75

// scoreEntry grades the approach into a dissonant simultaneity from its
// motion type, meter position and rest context. Leaps are not charged
// here: the cost of a leap onto a dissonance depends on how it resolves,
// so it lands in the exit scorer.
func scoreEntry(r *ScoreResult, s theory.Simultaneity, motion theory.MotionInfo) {
	c := r.Components

	if motion.IsReentry {
		// A voice returning after a long silence starts a new phrase;
		// nothing about its approach is judged.
		r.detail("reentry after rest: neutral entry")
		return
	}

	// Penalties (not rewards) are halved when a voice enters out of a rest.
	restModifier := 1.0
	if motion.FromRest {
		restModifier = 0.5
	}

	switch motion.Type {
	case theory.MotionOblique:
		c.EntryMotion = 0.5
		r.detail("oblique entry: +0.50")
	case theory.MotionContrary:
		c.EntryMotion = 0.5
		r.detail("contrary entry: +0.50")
	case theory.MotionParallel:
		c.EntryMotion = -1.5 * restModifier
		r.detail(fmt.Sprintf("parallel entry: %+.2f", c.EntryMotion))
	case theory.MotionSimilarSameType:
		c.EntryMotion = -1.0 * restModifier
		r.detail(fmt.Sprintf("similar entry, matching magnitudes: %+.2f", c.EntryMotion))
	case theory.MotionSimilar, theory.MotionSimilarStep:
		c.EntryMotion = -0.5 * restModifier
		r.detail(fmt.Sprintf("similar entry: %+.2f", c.EntryMotion))
	default:
		// static or unknown: nothing to grade
	}

	if s.MetricWeight >= strongBeatThreshold {
		c.EntryMeter = -0.5
		r.detail("dissonance on strong beat: -0.50")
	}
}
