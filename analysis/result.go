package analysis

import (
	"github.com/cmtalleyrand/counterpoint/theory"
)

// Dissonance type labels. The type is the first pattern rule that matched,
// or "unprepared" when none did.
const (
	TypeUnprepared = "unprepared"

	PatternSuspension       = "suspension"
	PatternRetardation      = "retardation"
	PatternAnticipation     = "anticipation"
	PatternAppoggiatura     = "appoggiatura"
	PatternCambiata         = "cambiata"
	PatternInvertedCambiata = "inverted_cambiata"
	PatternCambiataStrong   = "cambiata_on_strong_beat"
	PatternEscapeTone       = "escape_tone"
	PatternPassingTone      = "passing_tone"
	PatternNeighborTone     = "neighbor_tone"
)

// Consonance categories.
const (
	CategoryNormal         = "normal"
	CategoryPreparation    = "preparation"
	CategoryRepetitive     = "repetitive"
	CategoryResolution     = "resolution"
	CategoryPoorResolution = "poor_resolution"
)

// Components is the per-dissonance score bookkeeping. The mitigation pass
// adjusts individual components, never the totals, so EntryScore/ExitScore
// stay consistent with Score by construction.
type Components struct {
	EntryMotion  float64 `json:"entry_motion"`  // motion-type reward or penalty
	EntryMeter   float64 `json:"entry_meter"`   // strong-beat penalty, never mitigated
	EntryPattern float64 `json:"entry_pattern"` // pattern bonus allotted to the entry

	ExitResolution float64 `json:"exit_resolution"` // reward for resolving to a consonance
	ExitChain      float64 `json:"exit_chain"`      // penalty for resolving to another dissonance
	ExitRest       float64 `json:"exit_rest"`       // unresolved/abandonment/rest penalties, never mitigated
	V1Resolution   float64 `json:"v1_resolution"`   // voice 1 leap-resolution penalty
	V2Resolution   float64 `json:"v2_resolution"`   // voice 2 leap-resolution penalty
	ExitPattern    float64 `json:"exit_pattern"`    // pattern bonus allotted to the exit
}

// EntryScore sums all approach components.
func (c *Components) EntryScore() float64 {
	return c.EntryMotion + c.EntryMeter + c.EntryPattern
}

// ExitScore sums all departure components.
func (c *Components) ExitScore() float64 {
	return c.ExitResolution + c.ExitChain + c.ExitRest + c.V1Resolution + c.V2Resolution + c.ExitPattern
}

// Total is the event score; always EntryScore + ExitScore.
func (c *Components) Total() float64 {
	return c.EntryScore() + c.ExitScore()
}

// voiceResolution returns a pointer to the per-voice resolution component.
func (c *Components) voiceResolution(v int) *float64 {
	if v == 0 {
		return &c.V1Resolution
	}
	return &c.V2Resolution
}

// PassingMotion is the continuous "passingness" evaluation for one voice's
// note at a dissonant event. Mitigation is the amount by which certain
// penalties may be raised toward zero; it never flips a component's sign.
type PassingMotion struct {
	Passingness float64 `json:"passingness"`
	Mitigation  float64 `json:"mitigation"`
	IsPassing   bool    `json:"is_passing"`
}

// ScoreResult is the scored record for one simultaneity, discriminated by
// IsConsonant.
type ScoreResult struct {
	Index        int             `json:"index"`
	Onset        float64         `json:"onset"`
	Duration     float64         `json:"duration"` // span until the next event
	Interval     theory.Interval `json:"interval"`
	MetricWeight float64         `json:"metric_weight"`
	IsConsonant  bool            `json:"is_consonant"`

	// Dissonance fields.
	Type       string            `json:"type,omitempty"`
	Patterns   []string          `json:"patterns,omitempty"`
	EntryScore float64           `json:"entry_score"`
	ExitScore  float64           `json:"exit_score"`
	Score      float64           `json:"score"`
	Components *Components       `json:"components,omitempty"`
	Motion     theory.MotionInfo `json:"motion"`
	IsParallel bool              `json:"is_parallel"`
	Unresolved bool              `json:"unresolved,omitempty"`

	PassingMotion   bool           `json:"passing_motion"`
	V1PassingMotion *PassingMotion `json:"v1_passing_motion,omitempty"`
	V2PassingMotion *PassingMotion `json:"v2_passing_motion,omitempty"`

	// Chain fields, filled by the chain pass.
	IsChainEntry            bool    `json:"is_chain_entry,omitempty"`
	IsConsecutiveDissonance bool    `json:"is_consecutive_dissonance,omitempty"`
	ChainLength             int     `json:"chain_length,omitempty"`
	ChainPosition           int     `json:"chain_position,omitempty"`
	ChainStartOnset         float64 `json:"chain_start_onset,omitempty"`
	ChainEndOnset           float64 `json:"chain_end_onset,omitempty"`
	IsChainResolution       bool    `json:"is_chain_resolution,omitempty"`

	// Consonance fields.
	Category      string `json:"category,omitempty"`
	IsPreparation bool   `json:"is_preparation,omitempty"`
	IsRepetitive  bool   `json:"is_repetitive,omitempty"`

	// Details is the ordered human-readable breakdown of every scoring
	// decision; it carries no markup.
	Details []string `json:"details,omitempty"`
}

// voicePassing returns the passing evaluation for voice 0 or 1, never nil.
func (r *ScoreResult) voicePassing(v int) *PassingMotion {
	var pm *PassingMotion
	if v == 0 {
		pm = r.V1PassingMotion
	} else {
		pm = r.V2PassingMotion
	}
	if pm == nil {
		return &PassingMotion{}
	}
	return pm
}

// bestPassing returns the stronger of the two voices' passing evaluations.
func (r *ScoreResult) bestPassing() *PassingMotion {
	v1, v2 := r.voicePassing(0), r.voicePassing(1)
	if v2.Passingness > v1.Passingness {
		return v2
	}
	return v1
}

// syncScores recomputes the score totals from the component record.
func (r *ScoreResult) syncScores() {
	if r.Components == nil {
		return
	}
	r.EntryScore = r.Components.EntryScore()
	r.ExitScore = r.Components.ExitScore()
	r.Score = r.Components.Total()
}

func (r *ScoreResult) detail(msg string) {
	r.Details = append(r.Details, msg)
}
