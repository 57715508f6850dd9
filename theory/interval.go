package theory

// IntervalQuality is the traditional quality of a harmonic interval.
type IntervalQuality string

const (
	QualityPerfect    IntervalQuality = "perfect"
	QualityMajor      IntervalQuality = "major"
	QualityMinor      IntervalQuality = "minor"
	QualityAugmented  IntervalQuality = "augmented"
	QualityDiminished IntervalQuality = "diminished"
)

// Interval classes follow the usual diatonic numbering: 1 unison, 3 third,
// 4 fourth, 5 fifth, 6 sixth, 7 seventh. An exact octave keeps its own
// class (8) since several rules treat it separately from a unison.
const (
	ClassUnison  = 1
	ClassSecond  = 2
	ClassThird   = 3
	ClassFourth  = 4
	ClassFifth   = 5
	ClassSixth   = 6
	ClassSeventh = 7
	ClassOctave  = 8
)

// Interval is the harmonic relation between two simultaneous pitches.
type Interval struct {
	Semitones int             `json:"semitones"` // absolute distance
	Class     int             `json:"class"`
	Quality   IntervalQuality `json:"quality"`
}

// intervalTable maps a semitone distance reduced to one octave onto its
// class and quality. The tritone is kept as an augmented fourth.
var intervalTable = [12]struct {
	class   int
	quality IntervalQuality
}{
	{ClassUnison, QualityPerfect},
	{ClassSecond, QualityMinor},
	{ClassSecond, QualityMajor},
	{ClassThird, QualityMinor},
	{ClassThird, QualityMajor},
	{ClassFourth, QualityPerfect},
	{ClassFourth, QualityAugmented},
	{ClassFifth, QualityPerfect},
	{ClassSixth, QualityMinor},
	{ClassSixth, QualityMajor},
	{ClassSeventh, QualityMinor},
	{ClassSeventh, QualityMajor},
}

// NewInterval derives the interval between two pitches. Compound intervals
// reduce to a single octave, except that exact octave multiples keep the
// octave class.
func NewInterval(pitch1, pitch2 int) Interval {
	semis := pitch1 - pitch2
	if semis < 0 {
		semis = -semis
	}

	reduced := semis % 12
	if reduced == 0 && semis > 0 {
		return Interval{Semitones: semis, Class: ClassOctave, Quality: QualityPerfect}
	}

	entry := intervalTable[reduced]
	return Interval{Semitones: semis, Class: entry.class, Quality: entry.quality}
}

// IsConsonant reports whether the interval counts as a consonance. A perfect
// fourth is consonance-ambiguous in two-voice writing: it is dissonant
// unless the caller opts out via treatP4AsDissonant=false. The augmented
// fourth is always dissonant.
func (iv Interval) IsConsonant(treatP4AsDissonant bool) bool {
	switch iv.Class {
	case ClassUnison, ClassOctave, ClassThird, ClassSixth:
		return true
	case ClassFifth:
		return iv.Quality == QualityPerfect
	case ClassFourth:
		return iv.Quality == QualityPerfect && !treatP4AsDissonant
	default:
		return false
	}
}

// IsPerfectConsonance reports membership in the perfect consonance group
// (unison, fifth, octave) used by repetition tracking and exit rewards.
func (iv Interval) IsPerfectConsonance() bool {
	switch iv.Class {
	case ClassUnison, ClassOctave:
		return true
	case ClassFifth:
		return iv.Quality == QualityPerfect
	}
	return false
}

// IsImperfectConsonance reports whether the interval is a third or sixth.
func (iv Interval) IsImperfectConsonance() bool {
	return iv.Class == ClassThird || iv.Class == ClassSixth
}

var classNames = map[int]string{
	ClassUnison:  "unison",
	ClassSecond:  "second",
	ClassThird:   "third",
	ClassFourth:  "fourth",
	ClassFifth:   "fifth",
	ClassSixth:   "sixth",
	ClassSeventh: "seventh",
	ClassOctave:  "octave",
}

// Name returns a readable label like "perfect fifth" or "minor seventh".
func (iv Interval) Name() string {
	name, ok := classNames[iv.Class]
	if !ok {
		return "unknown"
	}
	if iv.Class == ClassUnison && iv.Semitones == 0 {
		return "unison"
	}
	return string(iv.Quality) + " " + name
}
