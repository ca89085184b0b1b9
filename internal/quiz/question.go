package quiz

import (
	"fmt"
	"time"
)

// Question is a single multiple-choice exam question. The JSON field names
// double as the persisted format of the mistake bank and the wire shape
// expected from the generator.
type Question struct {
	// ID uniquely identifies this question instance.
	ID string `json:"id"`

	// Body is the question text. May embed <u>…</u> / <b>…</b> markup
	// and full-width blanks like （　　）.
	Body string `json:"question"`

	// Options holds the answer choices, exactly 4 for generated categories.
	Options []string `json:"options"`

	// CorrectIndex is the index into Options of the correct answer.
	CorrectIndex int `json:"correctAnswerIndex"`

	// Explanation is a Japanese-language explanation shown after checking.
	Explanation string `json:"explanation"`

	// Category is the display label of the source category, if known.
	Category string `json:"category,omitempty"`

	// CreatedAt records when the question was generated, if known.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Validate checks the correct-index invariant.
func (q Question) Validate() error {
	if len(q.Options) == 0 {
		return fmt.Errorf("question %q has no options", q.ID)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %q: correct index %d out of range [0,%d)",
			q.ID, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// CorrectOption returns the text of the correct answer.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}
