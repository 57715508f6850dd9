package theory

// MotionType classifies how the two voices move between consecutive
// simultaneities.
type MotionType string

const (
	MotionStatic          MotionType = "static"
	MotionOblique         MotionType = "oblique"
	MotionContrary        MotionType = "contrary"
	MotionSimilar         MotionType = "similar"
	MotionSimilarStep     MotionType = "similar_step"
	MotionSimilarSameType MotionType = "similar_same_type"
	MotionParallel        MotionType = "parallel"
	MotionReentry         MotionType = "reentry"
	MotionUnknown         MotionType = "unknown"
)

// MotionInfo describes the melodic approach into a simultaneity.
type MotionInfo struct {
	Type       MotionType `json:"type"`
	V1Moved    bool       `json:"v1_moved"`
	V2Moved    bool       `json:"v2_moved"`
	V1Interval int        `json:"v1_interval"` // signed semitones
	V2Interval int        `json:"v2_interval"`
	FromRest   bool       `json:"from_rest"`
	IsReentry  bool       `json:"is_reentry"`
}

// VoiceInterval returns the signed melodic entry interval for voice 0 or 1.
func (m MotionInfo) VoiceInterval(v int) int {
	if v == 0 {
		return m.V1Interval
	}
	return m.V2Interval
}

// longRest is the minimum silence, in beats, for a voice to count as
// re-entering rather than continuing a line; the rest must also exceed
// twice the last sounded note's duration.
const longRest = 1.0

// isReentry reports whether voice v comes back in after a long rest.
func isReentry(curr Simultaneity, rc *RestContext, v int) bool {
	if !curr.Attacks(v) {
		return false
	}
	rest := rc.EntryRest[v]
	return rest > longRest && rest > 2*rc.PrevDuration[v]
}

// ClassifyMotion classifies the approach from prev into curr. A nil prev
// means there is no approach to speak of (the opening event), which scores
// neutrally downstream. Reentry overrides every other classification.
func ClassifyMotion(prev *Simultaneity, curr Simultaneity, rc *RestContext) MotionInfo {
	if prev == nil {
		return MotionInfo{Type: MotionUnknown}
	}

	info := MotionInfo{
		V1Interval: curr.Voice1.Pitch - prev.Voice1.Pitch,
		V2Interval: curr.Voice2.Pitch - prev.Voice2.Pitch,
		FromRest:   rc.FromRest(),
	}
	info.V1Moved = info.V1Interval != 0
	info.V2Moved = info.V2Interval != 0

	if isReentry(curr, rc, 0) || isReentry(curr, rc, 1) {
		info.Type = MotionReentry
		info.IsReentry = true
		return info
	}

	switch {
	case !info.V1Moved && !info.V2Moved:
		info.Type = MotionStatic
	case !info.V1Moved || !info.V2Moved:
		info.Type = MotionOblique
	case (info.V1Interval > 0) != (info.V2Interval > 0):
		info.Type = MotionContrary
	case abs(info.V1Interval) == abs(info.V2Interval):
		info.Type = MotionParallel
	case ClassifyMagnitude(info.V1Interval) == MagnitudeStep || ClassifyMagnitude(info.V2Interval) == MagnitudeStep:
		info.Type = MotionSimilarStep
	case ClassifyMagnitude(info.V1Interval) == ClassifyMagnitude(info.V2Interval):
		info.Type = MotionSimilarSameType
	default:
		info.Type = MotionSimilar
	}

	return info
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
