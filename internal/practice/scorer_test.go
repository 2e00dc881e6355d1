package practice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer_ZeroWhenEmpty(t *testing.T) {
	var s Scorer
	assert.Equal(t, 0.0, s.ScorePercent())
	assert.Equal(t, 0, s.Total())
}

func TestScorer_Percent(t *testing.T) {
	tests := []struct {
		name      string
		outcomes  []bool
		want      float64
		correct   int
		incorrect int
	}{
		{"all correct", []bool{true, true}, 100, 2, 0},
		{"all wrong", []bool{false, false, false}, 0, 0, 3},
		{"one of three", []bool{true, false, false}, 100.0 / 3, 1, 2},
		{"three of four", []bool{true, true, false, true}, 75, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Scorer
			for _, o := range tt.outcomes {
				s.RecordOutcome(o)
			}
			assert.InDelta(t, tt.want, s.ScorePercent(), 1e-9)
			assert.Equal(t, tt.correct, s.Correct())
			assert.Equal(t, tt.incorrect, s.Incorrect())
			assert.Equal(t, len(tt.outcomes), s.Total())
		})
	}
}

func TestScorer_Reset(t *testing.T) {
	var s Scorer
	s.RecordOutcome(true)
	s.RecordOutcome(false)
	s.Reset()

	assert.Equal(t, Stats{}, s.Stats())
	assert.Equal(t, 0.0, s.ScorePercent())
}
