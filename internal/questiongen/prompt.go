package questiongen

import (
	"fmt"
	"strings"

	"github.com/ZaneDavis9616/jlptn1/internal/quiz"
)

const systemPrompt = `You are an experienced JLPT examiner writing practice questions for the N1 level.

Rules:
- All question bodies, options, and explanations are in Japanese.
- Difficulty must be genuine N1: advanced kanji, low-frequency vocabulary, formal and literary grammar, the kind of content that appears on the real exam.
- Prefer realistic exam-style sentences over textbook examples: news, editorials, business, academic contexts.
- Every question has exactly 4 options and exactly one correct answer.
- Distractors must be plausible to an advanced learner, never obviously wrong.
- Wrap the target word in <u></u> tags when the question refers to an underlined word. Use the full-width blank （　　） where a word or pattern is to be filled in. Use no other markup.
- The explanation is in Japanese and states why the correct option is right, with readings for any advanced kanji, and briefly why the distractors fail.
- Never reuse the same target word or grammar pattern twice within one batch.`

// buildUserMessage constructs the generation request for one category.
func buildUserMessage(cat quiz.Category) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Section: %s (%s)\n", cat.TitleEN, cat.Title)
	fmt.Fprintf(&b, "Number of questions: %d\n\n", cat.Count)
	b.WriteString(cat.Instructions)
	b.WriteString("\n\nReturn the questions as JSON.")

	return b.String()
}
