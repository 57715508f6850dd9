package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmtalleyrand/counterpoint/theory"
)

func TestRecognizePatterns(t *testing.T) {
	tests := []struct {
		name      string
		pc        patternContext
		wantType  string
		wantEntry float64
		wantExit  float64
	}{
		{
			name: "suspension: held voice resolves down by step",
			pc: patternContext{
				entry:    [2]int{-2, 0},
				exit:     [2]int{0, -1},
				attacked: [2]bool{true, false},
				hasNext:  true,
				weight:   1.0,
				motion:   theory.MotionInfo{Type: theory.MotionOblique},
			},
			wantType:  PatternSuspension,
			wantEntry: 0.75,
			wantExit:  0.75,
		},
		{
			name: "retardation: held voice resolves up by step",
			pc: patternContext{
				entry:    [2]int{-2, 0},
				exit:     [2]int{0, 2},
				attacked: [2]bool{true, false},
				hasNext:  true,
				weight:   1.0,
				motion:   theory.MotionInfo{Type: theory.MotionOblique},
			},
			wantType:  PatternRetardation,
			wantEntry: 0.75,
			wantExit:  0.5,
		},
		{
			name: "anticipation: weak-beat oblique arrival",
			pc: patternContext{
				entry:    [2]int{-2, 0},
				exit:     [2]int{0, 0},
				attacked: [2]bool{true, false},
				hasNext:  true,
				weight:   0.25,
				motion:   theory.MotionInfo{Type: theory.MotionOblique},
			},
			wantType:  PatternAnticipation,
			wantEntry: 0.5,
		},
		{
			name: "anticipation blocked by parallel exit",
			pc: patternContext{
				entry:      [2]int{-2, 0},
				exit:       [2]int{0, 0},
				attacked:   [2]bool{true, false},
				hasNext:    true,
				weight:     0.25,
				motion:     theory.MotionInfo{Type: theory.MotionOblique},
				exitMotion: theory.MotionInfo{Type: theory.MotionParallel},
			},
			wantType: TypeUnprepared,
		},
		{
			name: "appoggiatura: leap resolved by step against the leap",
			pc: patternContext{
				entry:    [2]int{5, -1},
				exit:     [2]int{-1, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   1.0,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType:  PatternAppoggiatura,
			wantEntry: 1.0,
			wantExit:  0.25,
		},
		{
			name: "appoggiatura: step continues the leap's direction",
			pc: patternContext{
				entry:    [2]int{5, -1},
				exit:     [2]int{1, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   1.0,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType:  PatternAppoggiatura,
			wantEntry: 2.0,
			wantExit:  0.5,
		},
		{
			name: "cambiata: descending weak-beat form",
			pc: patternContext{
				entry:    [2]int{-2, 0},
				exit:     [2]int{-3, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   0.25,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType:  PatternCambiata,
			wantEntry: 0.3,
			wantExit:  1.2,
		},
		{
			name: "inverted cambiata: ascending form",
			pc: patternContext{
				entry:    [2]int{2, 0},
				exit:     [2]int{3, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   0.25,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType:  PatternInvertedCambiata,
			wantEntry: 0.2,
			wantExit:  0.8,
		},
		{
			name: "cambiata shape on the strong beat",
			pc: patternContext{
				entry:    [2]int{-2, 0},
				exit:     [2]int{-3, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   1.0,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType:  PatternCambiataStrong,
			wantEntry: 0.1,
			wantExit:  0.4,
		},
		{
			name: "escape tone: step in, opposite skip out",
			pc: patternContext{
				entry:    [2]int{-2, 0},
				exit:     [2]int{3, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   0.25,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType: PatternEscapeTone,
			wantExit: 0.5,
		},
		{
			name: "passing tone on a strong beat earns its bonus",
			pc: patternContext{
				entry:    [2]int{-2, 0},
				exit:     [2]int{-1, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   1.0,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType:  PatternPassingTone,
			wantEntry: 0.25,
		},
		{
			name: "passing tone on a weak beat is label only",
			pc: patternContext{
				entry:    [2]int{-2, 0},
				exit:     [2]int{-1, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   0.25,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType: PatternPassingTone,
		},
		{
			name: "neighbor tone turns back by step",
			pc: patternContext{
				entry:    [2]int{0, 2},
				exit:     [2]int{0, -2},
				attacked: [2]bool{false, true},
				hasNext:  true,
				weight:   0.25,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType: PatternNeighborTone,
		},
		{
			name: "no figure: leap in, no exit shape",
			pc: patternContext{
				entry:    [2]int{-5, 0},
				exit:     [2]int{0, 0},
				attacked: [2]bool{true, true},
				hasNext:  true,
				weight:   0.5,
				motion:   theory.MotionInfo{Type: theory.MotionContrary},
			},
			wantType: TypeUnprepared,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ScoreResult{Components: &Components{}}
			pc := tt.pc
			recognizePatterns(r, &pc)
			assert.Equal(t, tt.wantType, r.Type)
			assert.InDelta(t, tt.wantEntry, r.Components.EntryPattern, 1e-9)
			assert.InDelta(t, tt.wantExit, r.Components.ExitPattern, 1e-9)
		})
	}
}

func TestRecognizePatternsSecondaryLabels(t *testing.T) {
	// held voice 2 makes a suspension while voice 1 traces a passing shape;
	// the suspension wins precedence, the passing label is still reported
	pc := &patternContext{
		entry:    [2]int{-2, 0},
		exit:     [2]int{-1, -1},
		attacked: [2]bool{true, false},
		hasNext:  true,
		weight:   1.0,
		motion:   theory.MotionInfo{Type: theory.MotionOblique},
	}
	r := &ScoreResult{Components: &Components{}}
	recognizePatterns(r, pc)

	assert.Equal(t, PatternSuspension, r.Type)
	assert.Equal(t, []string{PatternSuspension, PatternPassingTone}, r.Patterns)
	assert.InDelta(t, 0.75, r.Components.EntryPattern, 1e-9)
	assert.InDelta(t, 0.75, r.Components.ExitPattern, 1e-9)
}
