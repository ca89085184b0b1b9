package quiz

import (
	"time"

	qz "github.com/ZaneDavis9616/jlptn1/internal/quiz"
)

// batchReadyMsg is sent when a question batch is ready to quiz on.
type batchReadyMsg struct {
	Questions []qz.Question
}

// batchFailedMsg is sent when generation fails.
type batchFailedMsg struct {
	Err error
}

// emptyReviewMsg is sent when the review category has no questions;
// the screen pops back to the menu.
type emptyReviewMsg struct{}

// timerTickMsg is sent every second while the quiz is active.
type timerTickMsg time.Time
