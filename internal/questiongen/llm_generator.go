package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ZaneDavis9616/jlptn1/internal/llm"
	"github.com/ZaneDavis9616/jlptn1/internal/quiz"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	rng      *rand.Rand
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	rng := cfg.Rand
	if rng == nil {
		now := time.Now()
		rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
	}
	return &LLMGenerator{provider: provider, config: cfg, rng: rng}
}

// questionOutput is one raw question before normalization.
type questionOutput struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// batchOutput is the expected response wrapper.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Generate produces a batch of questions for the category. The whole batch
// succeeds or the whole call fails; callers retry by re-invoking.
func (g *LLMGenerator) Generate(ctx context.Context, cat quiz.Category) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, cat.ID)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(cat)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	raw, err := parseBatch(resp.Content)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("LLM returned an empty question batch")
	}

	now := time.Now()
	out := make([]quiz.Question, 0, len(raw))
	for i, rq := range raw {
		q := quiz.Question{
			ID:           uuid.NewString(),
			Body:         rq.Question,
			Options:      rq.Options,
			CorrectIndex: rq.CorrectAnswerIndex,
			Explanation:  rq.Explanation,
			Category:     cat.Title,
			CreatedAt:    now,
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("generated question %d invalid: %w", i+1, err)
		}
		// Remove the model's answer-position bias.
		out = append(out, quiz.ShuffleOptions(q, g.rng))
	}

	if len(out) > cat.Count {
		out = out[:cat.Count]
	}
	return out, nil
}

// parseBatch accepts either a {"questions": [...]} wrapper or a bare array.
// Models drift between the two even under schema constraints.
func parseBatch(content json.RawMessage) ([]questionOutput, error) {
	text := stripCodeFence(string(content))

	var wrapped batchOutput
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Questions != nil {
		return wrapped.Questions, nil
	}

	var bare []questionOutput
	if err := json.Unmarshal([]byte(text), &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("failed to parse LLM response as a question batch")
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
