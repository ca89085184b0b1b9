package quiz

import "math"

// Session tracks progress through one quiz run: which question is current,
// what the user has selected, and the running score. It holds no UI state
// and no persistence; screens drive it and the bank observes its answers.
type Session struct {
	Category  Category
	Questions []Question

	index    int
	selected int
	checked  bool
	score    int
	elapsed  int
	finished bool
}

// NewSession starts a session over the given questions.
func NewSession(cat Category, questions []Question) *Session {
	return &Session{
		Category:  cat,
		Questions: questions,
		selected:  -1,
	}
}

// Current returns the question being presented, or nil once finished.
func (s *Session) Current() *Question {
	if s.finished || s.index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.index]
}

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.Questions) }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Selected returns the selected option index, or -1 if none.
func (s *Session) Selected() int { return s.selected }

// Checked reports whether the current question's answer has been revealed.
func (s *Session) Checked() bool { return s.checked }

// Finished reports whether every question has been answered and advanced past.
func (s *Session) Finished() bool { return s.finished }

// Select records an option choice. Ignored after the answer is revealed or
// when the index is out of range.
func (s *Session) Select(option int) bool {
	if s.checked || s.finished {
		return false
	}
	q := s.Current()
	if q == nil || option < 0 || option >= len(q.Options) {
		return false
	}
	s.selected = option
	return true
}

// Check reveals the current answer and scores it. The second return is false
// when there is nothing to check: no selection yet, already revealed, or the
// session is finished.
func (s *Session) Check() (correct, ok bool) {
	if s.checked || s.finished || s.selected < 0 {
		return false, false
	}
	q := s.Current()
	if q == nil {
		return false, false
	}
	s.checked = true
	correct = s.selected == q.CorrectIndex
	if correct {
		s.score++
	}
	return correct, true
}

// Next advances past a revealed question. Returns true when the session is
// complete. A no-op unless the current answer has been checked.
func (s *Session) Next() (done bool) {
	if s.finished {
		return true
	}
	if !s.checked {
		return false
	}
	s.index++
	s.selected = -1
	s.checked = false
	if s.index >= len(s.Questions) {
		s.finished = true
	}
	return s.finished
}

// TickSecond advances the elapsed-time counter. Stops counting once finished.
func (s *Session) TickSecond() {
	if !s.finished {
		s.elapsed++
	}
}

// ElapsedSeconds returns the accumulated quiz time in seconds.
func (s *Session) ElapsedSeconds() int { return s.elapsed }

// Percentage returns the score as a rounded percentage of the total.
// Zero-question sessions score 0.
func (s *Session) Percentage() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.score) / float64(len(s.Questions)) * 100))
}

// Progress returns completion in [0,1] for the progress bar.
func (s *Session) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.index) / float64(len(s.Questions))
}
