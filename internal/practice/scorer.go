package practice

// Scorer counts outcomes for one session. Outcomes cannot be undone.
type Scorer struct {
	correct   int
	incorrect int
}

// RecordOutcome counts one answer.
func (s *Scorer) RecordOutcome(correct bool) {
	if correct {
		s.correct++
	} else {
		s.incorrect++
	}
}

func (s *Scorer) Correct() int   { return s.correct }
func (s *Scorer) Incorrect() int { return s.incorrect }
func (s *Scorer) Total() int     { return s.correct + s.incorrect }

// ScorePercent returns the share of correct answers in [0, 100], or 0 when
// nothing has been answered.
func (s *Scorer) ScorePercent() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.correct) / float64(total) * 100
}

// Reset zeroes both counters.
func (s *Scorer) Reset() {
	s.correct = 0
	s.incorrect = 0
}

// Stats returns the current counters.
func (s *Scorer) Stats() Stats {
	return Stats{Correct: s.correct, Incorrect: s.incorrect}
}

// Stats is a point-in-time copy of the session counters.
type Stats struct {
	Correct   int
	Incorrect int
}

// Total returns the number of answered cards.
func (s Stats) Total() int {
	return s.Correct + s.Incorrect
}
