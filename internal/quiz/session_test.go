package quiz

import "testing"

func threeQuestions() []Question {
	return []Question{
		{ID: "q1", Body: "一", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		{ID: "q2", Body: "二", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{ID: "q3", Body: "三", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSession(Category{ID: "vocab_readings"}, threeQuestions())

	if s.Current() == nil || s.Current().ID != "q1" {
		t.Fatal("expected q1 first")
	}

	// Correct answer.
	if !s.Select(0) {
		t.Fatal("select failed")
	}
	correct, ok := s.Check()
	if !ok || !correct {
		t.Fatalf("expected correct check, got correct=%v ok=%v", correct, ok)
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
	if done := s.Next(); done {
		t.Fatal("session finished early")
	}

	// Wrong answer.
	s.Select(3)
	correct, ok = s.Check()
	if !ok || correct {
		t.Fatalf("expected incorrect check, got correct=%v ok=%v", correct, ok)
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
	s.Next()

	// Last question.
	s.Select(2)
	s.Check()
	if done := s.Next(); !done {
		t.Fatal("expected session to finish")
	}
	if !s.Finished() {
		t.Error("Finished() = false after last question")
	}
	if s.Current() != nil {
		t.Error("Current() should be nil after finish")
	}
	if s.Score() != 2 {
		t.Errorf("final score = %d, want 2", s.Score())
	}
}

func TestSessionCheckRequiresSelection(t *testing.T) {
	s := NewSession(Category{}, threeQuestions())
	if _, ok := s.Check(); ok {
		t.Error("Check should fail with no selection")
	}
}

func TestSessionNextRequiresCheck(t *testing.T) {
	s := NewSession(Category{}, threeQuestions())
	s.Select(0)
	if s.Next() {
		t.Error("Next should be a no-op before Check")
	}
	if s.Index() != 0 {
		t.Errorf("index advanced to %d without check", s.Index())
	}
}

func TestSessionSelectLockedAfterCheck(t *testing.T) {
	s := NewSession(Category{}, threeQuestions())
	s.Select(1)
	s.Check()
	if s.Select(0) {
		t.Error("Select should be rejected after Check")
	}
	if s.Selected() != 1 {
		t.Errorf("selection changed after check: %d", s.Selected())
	}
}

func TestSessionDoubleCheck(t *testing.T) {
	s := NewSession(Category{}, threeQuestions())
	s.Select(0)
	s.Check()
	if _, ok := s.Check(); ok {
		t.Error("second Check should fail")
	}
	if s.Score() != 1 {
		t.Errorf("score double-counted: %d", s.Score())
	}
}

func TestSessionSelectOutOfRange(t *testing.T) {
	s := NewSession(Category{}, threeQuestions())
	if s.Select(4) {
		t.Error("Select(4) should fail for a 4-option question")
	}
	if s.Select(-1) {
		t.Error("Select(-1) should fail")
	}
}

func TestPercentageRounds(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 6, 17},
		{5, 6, 83},
	}
	for _, tt := range tests {
		qs := make([]Question, tt.total)
		for i := range qs {
			qs[i] = Question{Options: []string{"x", "y"}, CorrectIndex: 0}
		}
		s := NewSession(Category{}, qs)
		s.score = tt.score
		if got := s.Percentage(); got != tt.want {
			t.Errorf("Percentage(%d/%d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestTickStopsWhenFinished(t *testing.T) {
	s := NewSession(Category{}, threeQuestions()[:1])
	s.TickSecond()
	s.TickSecond()
	s.Select(0)
	s.Check()
	s.Next()
	s.TickSecond()
	if s.ElapsedSeconds() != 2 {
		t.Errorf("elapsed = %d, want 2", s.ElapsedSeconds())
	}
}

func TestResultMessageTiers(t *testing.T) {
	tiers := map[int]string{
		100: ResultMessage(100),
		90:  ResultMessage(90),
		89:  ResultMessage(89),
		70:  ResultMessage(70),
		69:  ResultMessage(69),
		50:  ResultMessage(50),
		49:  ResultMessage(49),
		0:   ResultMessage(0),
	}
	if tiers[100] != tiers[90] {
		t.Error("100 and 90 should share the top tier")
	}
	if tiers[90] == tiers[89] {
		t.Error("90 and 89 should be different tiers")
	}
	if tiers[70] == tiers[69] {
		t.Error("70 and 69 should be different tiers")
	}
	if tiers[50] == tiers[49] {
		t.Error("50 and 49 should be different tiers")
	}
	if tiers[49] != tiers[0] {
		t.Error("49 and 0 should share the bottom tier")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
		{3661, "1:01:01"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.secs); got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
