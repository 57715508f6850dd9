package analysis

// NoteRange marks an index span [Start, End] of simultaneities belonging to
// a melodic sequence.
type NoteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// BeatRange marks a beat span [StartBeat, EndBeat] belonging to a melodic
// sequence.
type BeatRange struct {
	StartBeat float64 `json:"start_beat"`
	EndBeat   float64 `json:"end_beat"`
}

// ConsonanceWeights are the fixed base contributions consonant intervals
// make to the duration-weighted overall average. The constants are
// inherited from long use rather than derived; change them here, not in
// the summary code.
type ConsonanceWeights struct {
	ThirdSixth float64 `json:"third_sixth"`
	Fifth      float64 `json:"fifth"`
	Fourth     float64 `json:"fourth"`
	Other      float64 `json:"other"`
}

// Config is the per-analysis configuration. It is built once per call and
// threaded explicitly through every function; there is no package-level
// mutable state.
type Config struct {
	// TreatP4AsDissonant controls the consonance-ambiguous perfect fourth.
	// In two-voice writing the fourth is dissonant by default.
	TreatP4AsDissonant bool `json:"treat_p4_as_dissonant"`

	// Meter is [numerator, denominator], e.g. [4, 4] or [6, 8].
	Meter [2]int `json:"meter"`

	// Sequence spans whose members get leap-penalty mitigation. Repeated
	// melodic patterns tolerate rougher dissonance handling.
	SequenceNoteRanges []NoteRange `json:"sequence_note_ranges,omitempty"`
	SequenceBeatRanges []BeatRange `json:"sequence_beat_ranges,omitempty"`

	ConsonanceWeights ConsonanceWeights `json:"consonance_weights"`
}

// DefaultConfig returns the standard configuration: perfect fourths
// dissonant, 4/4, no sequence spans.
func DefaultConfig() *Config {
	return &Config{
		TreatP4AsDissonant: true,
		Meter:              [2]int{4, 4},
		ConsonanceWeights: ConsonanceWeights{
			ThirdSixth: 0.5,
			Fifth:      0.3,
			Fourth:     0.25,
			Other:      0.2,
		},
	}
}

// InSequence reports whether the event at the given onset and index falls
// inside any registered sequence span.
func (c *Config) InSequence(onset float64, index int) bool {
	for _, r := range c.SequenceNoteRanges {
		if index >= r.Start && index <= r.End {
			return true
		}
	}
	for _, r := range c.SequenceBeatRanges {
		if onset >= r.StartBeat && onset <= r.EndBeat {
			return true
		}
	}
	return false
}

// IsCompoundMeter reports whether the meter is compound (6/8, 9/8, 12/8
// and the like).
func (c *Config) IsCompoundMeter() bool {
	return c.Meter[0] > 3 && c.Meter[0]%3 == 0
}

// ShortNoteThreshold is the duration at or below which a dissonance counts
// as "short" for the resolves-to-dissonance halving: a triplet of the
// meter's subdivision.
func (c *Config) ShortNoteThreshold() float64 {
	if c.IsCompoundMeter() {
		return 1.0 / 9.0
	}
	return 1.0 / 6.0
}
