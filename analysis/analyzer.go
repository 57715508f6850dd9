package analysis

import (
	"github.com/cmtalleyrand/counterpoint/logging"
	"github.com/cmtalleyrand/counterpoint/theory"
)

// restResetGap is the silence, in beats, beyond which a one-voice rest can
// break the interval history used for repetition counting.
const restResetGap = 0.05

// Result is the full output of an analysis run.
type Result struct {
	All         []*ScoreResult `json:"all"`
	Consonances []*ScoreResult `json:"consonances"`
	Dissonances []*ScoreResult `json:"dissonances"`
	Summary     *Summary       `json:"summary"`
}

// Analyzer drives the scoring pipeline over an ordered simultaneity
// sequence. It holds no mutable state between calls; the configuration is
// fixed at construction.
type Analyzer struct {
	cfg    *Config
	logger logging.Logger
}

// NewAnalyzer creates an analyzer; a nil config means DefaultConfig.
func NewAnalyzer(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Analyzer{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "counterpoint_analyzer",
		}),
	}
}

// Analyze is the package-level convenience wrapper around
// NewAnalyzer(cfg).Analyze(sims).
func Analyze(sims []theory.Simultaneity, cfg *Config) *Result {
	return NewAnalyzer(cfg).Analyze(sims)
}

// Analyze runs the whole pipeline: per-event scoring in onset order with
// rest-aware interval history, chain annotation, the mitigation pass, and
// the duration-weighted summary. Degenerate input (empty or single-event
// sequences) produces trivially neutral output rather than an error.
func (a *Analyzer) Analyze(sims []theory.Simultaneity) *Result {
	res := &Result{Summary: newSummary()}
	if len(sims) == 0 {
		return res
	}

	a.logger.Debug("starting analysis", logging.Fields{
		"events": len(sims),
		"meter":  a.cfg.Meter,
	})

	history := make([]int, 0, len(sims)+4)
	res.All = make([]*ScoreResult, 0, len(sims))

	for i := range sims {
		rc := theory.AnalyzeRests(sims, i)
		if historyNeedsReset(sims, i, rc) {
			history = append(history, historyResetMarker)
		}
		r := scoreEvent(sims, i, history, rc, a.cfg)
		res.All = append(res.All, r)
		history = append(history, sims[i].Interval.Class)
	}

	annotateChains(res.All)
	applyMitigations(res.All)
	copyResolutionExits(res.All)

	for _, r := range res.All {
		if r.IsConsonant {
			res.Consonances = append(res.Consonances, r)
		} else {
			res.Dissonances = append(res.Dissonances, r)
		}
	}
	res.Summary = a.summarize(res)

	a.logger.Debug("analysis complete", logging.Fields{
		"consonances": len(res.Consonances),
		"dissonances": len(res.Dissonances),
		"avg_score":   res.Summary.AverageScore,
	})

	return res
}

// ScoreDissonance scores the single simultaneity at index i against its
// neighbors, using the given interval history (reset markers included) and
// configuration. Chain-level mitigation needs the full sequence and is not
// applied here; Analyze is the complete pipeline.
func ScoreDissonance(sims []theory.Simultaneity, i int, history []int, cfg *Config) *ScoreResult {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	rc := theory.AnalyzeRests(sims, i)
	return scoreEvent(sims, i, history, rc, cfg)
}

// scoreEvent classifies and scores one simultaneity.
func scoreEvent(sims []theory.Simultaneity, i int, history []int, rc *theory.RestContext, cfg *Config) *ScoreResult {
	s := sims[i]
	var prev *theory.Simultaneity
	if i > 0 {
		prev = &sims[i-1]
	}
	motion := theory.ClassifyMotion(prev, s, rc)

	r := &ScoreResult{
		Index:        i,
		Onset:        s.Onset,
		Duration:     eventDuration(sims, i),
		Interval:     s.Interval,
		MetricWeight: s.MetricWeight,
		IsConsonant:  s.Interval.IsConsonant(cfg.TreatP4AsDissonant),
		Motion:       motion,
		IsParallel:   motion.Type == theory.MotionParallel,
	}

	if r.IsConsonant {
		prevDissonant := prev != nil && !prev.Interval.IsConsonant(cfg.TreatP4AsDissonant)
		nextDissonant := i+1 < len(sims) && !sims[i+1].Interval.IsConsonant(cfg.TreatP4AsDissonant)
		scoreConsonance(r, s, history, prevDissonant, motion, nextDissonant)
		return r
	}

	r.Components = &Components{}

	scoreEntry(r, s, motion)
	if !motion.IsReentry {
		scoreExit(r, sims, i, rc, motion, cfg)
		recognizePatterns(r, buildPatternContext(sims, i, motion))
	}

	r.V1PassingMotion = evaluatePassing(sims, i, 0, rc, motion, cfg)
	r.V2PassingMotion = evaluatePassing(sims, i, 1, rc, motion, cfg)

	r.syncScores()
	return r
}

// buildPatternContext collects the per-voice entry/exit shape around the
// dissonance for the figure rules.
func buildPatternContext(sims []theory.Simultaneity, i int, motion theory.MotionInfo) *patternContext {
	s := sims[i]
	pc := &patternContext{
		entry:    [2]int{motion.V1Interval, motion.V2Interval},
		attacked: [2]bool{s.Attacks(0), s.Attacks(1)},
		weight:   s.MetricWeight,
		motion:   motion,
	}
	if i+1 < len(sims) {
		next := sims[i+1]
		pc.hasNext = true
		pc.exit = [2]int{
			next.Voice1.Pitch - s.Voice1.Pitch,
			next.Voice2.Pitch - s.Voice2.Pitch,
		}
		nextRC := theory.AnalyzeRests(sims, i+1)
		pc.exitMotion = theory.ClassifyMotion(&sims[i], next, nextRC)
	}
	return pc
}

// historyNeedsReset reports whether a true rest in one voice, during which
// the other voice completed an entire note, separates this simultaneity
// from the previous line. Repetition counting starts over at such a break.
func historyNeedsReset(sims []theory.Simultaneity, i int, rc *theory.RestContext) bool {
	for v := 0; v < 2; v++ {
		if rc.EntryRest[v] <= restResetGap || !sims[i].Attacks(v) {
			continue
		}
		windowStart := sims[i].VoiceNote(v).Onset - rc.EntryRest[v]
		windowEnd := sims[i].VoiceNote(v).Onset
		other := 1 - v
		for j := i - 1; j >= 0; j-- {
			note := sims[j].VoiceNote(other)
			if note.Onset < windowStart-theory.BeatTolerance {
				break
			}
			if sims[j].Attacks(other) && note.End() <= windowEnd+theory.BeatTolerance {
				return true
			}
		}
	}
	return false
}

// eventDuration is the span an event occupies: until the next onset, or
// for the final event until the later of the two note-ends.
func eventDuration(sims []theory.Simultaneity, i int) float64 {
	s := sims[i]
	if i+1 < len(sims) {
		d := sims[i+1].Onset - s.Onset
		if d < 0 {
			return 0
		}
		return d
	}
	end := s.Voice1.End()
	if e2 := s.Voice2.End(); e2 > end {
		end = e2
	}
	d := end - s.Onset
	if d < 0 {
		return 0
	}
	return d
}
