package theory

import "math"

// Tolerance in beats when comparing onsets and note boundaries. Parsed
// rhythms accumulate float error well below this.
const BeatTolerance = 0.01

// Simultaneity is one analysis timestep: the note sounding (or most
// recently sounded) in each voice at an onset, the harmonic interval
// between them, and a precomputed metric weight in [0, 1]. The notation
// layer emits one simultaneity per attack in either voice, so a resting
// voice contributes its previous, already-ended note.
type Simultaneity struct {
	Onset        float64  `json:"onset"`
	Voice1       Note     `json:"voice1"`
	Voice2       Note     `json:"voice2"`
	Interval     Interval `json:"interval"`
	MetricWeight float64  `json:"metric_weight"`
}

// NewSimultaneity pairs two notes at an onset and derives their interval.
func NewSimultaneity(onset float64, v1, v2 Note, metricWeight float64) Simultaneity {
	return Simultaneity{
		Onset:        onset,
		Voice1:       v1,
		Voice2:       v2,
		Interval:     NewInterval(v1.Pitch, v2.Pitch),
		MetricWeight: metricWeight,
	}
}

// VoiceNote returns the note for voice index 0 or 1.
func (s Simultaneity) VoiceNote(v int) Note {
	if v == 0 {
		return s.Voice1
	}
	return s.Voice2
}

// Attacks reports whether the given voice articulates a new note at this
// simultaneity, as opposed to holding or having already released one.
func (s Simultaneity) Attacks(v int) bool {
	return math.Abs(s.VoiceNote(v).Onset-s.Onset) < BeatTolerance
}
