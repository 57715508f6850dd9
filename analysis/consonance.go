package analysis

import (
	"fmt"

	"github.com/cmtalleyrand/counterpoint/theory"
)

// historyReset is the marker pushed into the interval history when a rest
// breaks the line; repetition counting never crosses it.
const historyResetMarker = -1

// Repetition limits: the run length at which identical consecutive
// interval classes start costing.
const (
	perfectRepetitionRun   = 3
	imperfectRepetitionRun = 4
)

// scoreConsonance grades a consonant simultaneity: repetition of the same
// interval class, resolution of a preceding dissonance, and preparation of
// a following one.
func scoreConsonance(r *ScoreResult, s theory.Simultaneity, history []int, prevDissonant bool, motion theory.MotionInfo, nextDissonant bool) {
	r.Category = CategoryNormal

	run := trailingRun(history, s.Interval.Class)
	if s.Interval.IsPerfectConsonance() && run >= perfectRepetitionRun {
		r.IsRepetitive = true
		r.Score = -0.5
		r.detail(fmt.Sprintf("%d consecutive %ss: -0.50", run, s.Interval.Name()))
	} else if s.Interval.IsImperfectConsonance() && run >= imperfectRepetitionRun {
		r.IsRepetitive = true
		r.Score = -0.3
		r.detail(fmt.Sprintf("%d consecutive %ss: -0.30", run, s.Interval.Name()))
	}
	if r.IsRepetitive {
		r.Category = CategoryRepetitive
	}

	if nextDissonant {
		r.IsPreparation = true
		if r.Category == CategoryNormal {
			r.Category = CategoryPreparation
		}
		r.detail("prepares the following dissonance")
	}

	if prevDissonant {
		// This consonance is the resolution of the previous dissonance;
		// stepwise arrival in both voices makes it a good one.
		stepwise := theory.ClassifyMagnitude(motion.V1Interval) <= theory.MagnitudeStep &&
			theory.ClassifyMagnitude(motion.V2Interval) <= theory.MagnitudeStep
		if stepwise {
			r.Category = CategoryResolution
			r.detail("resolves preceding dissonance by step")
		} else {
			r.Category = CategoryPoorResolution
			r.detail("resolves preceding dissonance by leap")
		}
	}
}

// trailingRun counts how many entries at the end of history (including the
// current class, which is not yet pushed) share the given interval class.
// A reset marker ends the run.
func trailingRun(history []int, class int) int {
	run := 1
	for i := len(history) - 1; i >= 0; i-- {
		if history[i] != class {
			break
		}
		run++
	}
	return run
}
