package theory

// Magnitude buckets a melodic interval by size. The buckets drive the
// leap-resolution penalty table and the passing-motion evaluator.
type Magnitude int

const (
	MagnitudeUnison Magnitude = iota
	MagnitudeStep
	MagnitudeSkip
	MagnitudePerfectLeap
	MagnitudeOctave
	MagnitudeLargeLeap
)

func (m Magnitude) String() string {
	switch m {
	case MagnitudeUnison:
		return "unison"
	case MagnitudeStep:
		return "step"
	case MagnitudeSkip:
		return "skip"
	case MagnitudePerfectLeap:
		return "perfect_leap"
	case MagnitudeOctave:
		return "octave"
	case MagnitudeLargeLeap:
		return "large_leap"
	default:
		return "unknown"
	}
}

// ClassifyMagnitude buckets a signed melodic interval in semitones.
// Fourths and fifths (5 or 7 semitones) form the perfect-leap bucket;
// the tritone and everything above a fifth short of an octave land in
// large_leap.
func ClassifyMagnitude(semitones int) Magnitude {
	if semitones < 0 {
		semitones = -semitones
	}
	switch {
	case semitones == 0:
		return MagnitudeUnison
	case semitones <= 2:
		return MagnitudeStep
	case semitones <= 4:
		return MagnitudeSkip
	case semitones == 5 || semitones == 7:
		return MagnitudePerfectLeap
	case semitones == 12:
		return MagnitudeOctave
	default:
		return MagnitudeLargeLeap
	}
}

// IsLeap reports whether the magnitude is a skip or anything larger.
func (m Magnitude) IsLeap() bool {
	return m >= MagnitudeSkip
}

// IsWideLeap reports whether the magnitude is a perfect leap, an octave or
// a large leap; these share the "leap should be followed by opposite
// motion" expectation.
func (m Magnitude) IsWideLeap() bool {
	return m == MagnitudePerfectLeap || m == MagnitudeOctave || m == MagnitudeLargeLeap
}

// IsLargeOrOctave groups the two widest buckets, which the resolution
// penalty table treats identically.
func (m Magnitude) IsLargeOrOctave() bool {
	return m == MagnitudeOctave || m == MagnitudeLargeLeap
}
