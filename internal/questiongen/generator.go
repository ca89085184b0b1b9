// Package questiongen produces exam-question batches for a category by
// prompting an LLM provider and normalizing its output into quiz questions.
package questiongen

import (
	"context"

	"github.com/ZaneDavis9616/jlptn1/internal/quiz"
)

// Generator produces a batch of questions for a category.
type Generator interface {
	// Generate returns up to cat.Count questions, option-shuffled and
	// tagged with fresh IDs. It either returns a complete usable batch
	// or an error, never partial results.
	Generate(ctx context.Context, cat quiz.Category) ([]quiz.Question, error)
}
