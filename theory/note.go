package theory

// Note is a single pitched event in one voice. Pitch is a MIDI-style
// semitone number; Onset and Duration are measured in beats. Notes are
// immutable once produced by the notation layer.
type Note struct {
	Pitch    int     `json:"pitch"`
	Onset    float64 `json:"onset"`
	Duration float64 `json:"duration"`
}

// End returns the beat at which the note stops sounding.
func (n Note) End() float64 {
	return n.Onset + n.Duration
}

// SameAttack reports whether two notes are the same articulation. A held
// note shows up in several consecutive simultaneities; comparing attacks
// distinguishes a sustained pitch from a re-struck one.
func (n Note) SameAttack(other Note) bool {
	return n.Onset == other.Onset && n.Pitch == other.Pitch
}
