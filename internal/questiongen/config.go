package questiongen

import "math/rand/v2"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response. Reading
	// categories embed full passages, so the budget is generous.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Kept high
	// so repeated runs of a category produce different questions.
	Temperature float64

	// Rand is the randomness source for option shuffling. When nil,
	// New seeds one itself. Injected by tests for determinism.
	Rand *rand.Rand
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.8,
	}
}
