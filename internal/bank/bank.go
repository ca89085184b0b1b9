// Package bank holds the persisted study state: the mistake bank (questions
// answered wrong and not yet redeemed) and the mastered set (question bodies
// answered correctly at least once). Both are loaded once at startup and
// written back in full after every mutation.
package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/ZaneDavis9616/jlptn1/internal/quiz"
)

// Storage keys. Values are JSON-encoded arrays.
const (
	MistakesKey = "jlpt_n1_mistakes"
	MasteredKey = "jlpt_n1_mastered"
)

// KV is the persistence contract the banks need. The sqlite store
// implements it.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Banks is the single owner of mistake-bank and mastered-set state.
// It is mutated only from the UI event loop, so no locking.
type Banks struct {
	kv       KV
	mistakes []quiz.Question
	mastered []string
}

// Load reads both collections from storage. Missing or malformed data is
// treated as empty, never as a fatal error.
func Load(ctx context.Context, kv KV) *Banks {
	b := &Banks{kv: kv}

	if raw, err := kv.Get(ctx, MistakesKey); err == nil {
		if err := json.Unmarshal(raw, &b.mistakes); err != nil {
			fmt.Fprintf(os.Stderr, "warning: malformed mistake bank, starting empty: %v\n", err)
			b.mistakes = nil
		}
	}
	if raw, err := kv.Get(ctx, MasteredKey); err == nil {
		if err := json.Unmarshal(raw, &b.mastered); err != nil {
			fmt.Fprintf(os.Stderr, "warning: malformed mastered set, starting empty: %v\n", err)
			b.mastered = nil
		}
	}
	return b
}

// MistakeCount returns the number of banked questions.
func (b *Banks) MistakeCount() int {
	return len(b.mistakes)
}

// Mistakes returns a copy of the banked questions.
func (b *Banks) Mistakes() []quiz.Question {
	out := make([]quiz.Question, len(b.mistakes))
	copy(out, b.mistakes)
	return out
}

// MasteredCount returns the size of the mastered set.
func (b *Banks) MasteredCount() int {
	return len(b.mastered)
}

// IsMastered reports whether a body text is in the mastered set.
func (b *Banks) IsMastered(body string) bool {
	for _, m := range b.mastered {
		if m == body {
			return true
		}
	}
	return false
}

// Report is the single mutation entrypoint, called once per checked answer.
//
//   - Review mode, correct: remove the question (by ID) from the mistake
//     bank and add its body to the mastered set.
//   - Review mode, incorrect: no change.
//   - Normal mode, incorrect: add to the mistake bank unless an entry with
//     the same body text already exists. Body-text dedup prevents re-adding
//     a regenerated question that differs only in ID.
//   - Normal mode, correct: add the body to the mastered set.
//
// Each changed collection is persisted in full before returning.
func (b *Banks) Report(ctx context.Context, q quiz.Question, correct, review bool) error {
	if review {
		if !correct {
			return nil
		}
		if b.removeMistake(q.ID) {
			if err := b.saveMistakes(ctx); err != nil {
				return err
			}
		}
		return b.master(ctx, q.Body)
	}

	if correct {
		return b.master(ctx, q.Body)
	}

	if b.hasMistakeBody(q.Body) {
		return nil
	}
	b.mistakes = append(b.mistakes, q)
	return b.saveMistakes(ctx)
}

// ReviewBatch assembles a review quiz from the bank: question order and each
// question's options are independently shuffled. The bank itself is not
// modified.
func (b *Banks) ReviewBatch(rng *rand.Rand) []quiz.Question {
	batch := quiz.ShuffleOrder(b.mistakes, rng)
	for i := range batch {
		batch[i] = quiz.ShuffleOptions(batch[i], rng)
	}
	return batch
}

// FilterMastered removes questions whose body is already mastered. When
// filtering would empty a non-empty batch, the unfiltered batch is returned
// instead so a successful generation never yields a zero-question quiz.
func (b *Banks) FilterMastered(batch []quiz.Question) []quiz.Question {
	var fresh []quiz.Question
	for _, q := range batch {
		if !b.IsMastered(q.Body) {
			fresh = append(fresh, q)
		}
	}
	if len(fresh) == 0 {
		return batch
	}
	return fresh
}

// Clear empties both collections and persists the empty state.
func (b *Banks) Clear(ctx context.Context) error {
	b.mistakes = nil
	b.mastered = nil
	if err := b.saveMistakes(ctx); err != nil {
		return err
	}
	return b.saveMastered(ctx)
}

func (b *Banks) master(ctx context.Context, body string) error {
	if b.IsMastered(body) {
		return nil
	}
	b.mastered = append(b.mastered, body)
	return b.saveMastered(ctx)
}

func (b *Banks) removeMistake(id string) bool {
	for i, q := range b.mistakes {
		if q.ID == id {
			b.mistakes = append(b.mistakes[:i], b.mistakes[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Banks) hasMistakeBody(body string) bool {
	for _, q := range b.mistakes {
		if q.Body == body {
			return true
		}
	}
	return false
}

func (b *Banks) saveMistakes(ctx context.Context) error {
	raw, err := json.Marshal(b.mistakes)
	if err != nil {
		return fmt.Errorf("marshal mistake bank: %w", err)
	}
	if b.mistakes == nil {
		raw = []byte("[]")
	}
	if err := b.kv.Set(ctx, MistakesKey, raw); err != nil {
		return fmt.Errorf("save mistake bank: %w", err)
	}
	return nil
}

func (b *Banks) saveMastered(ctx context.Context) error {
	raw, err := json.Marshal(b.mastered)
	if err != nil {
		return fmt.Errorf("marshal mastered set: %w", err)
	}
	if b.mastered == nil {
		raw = []byte("[]")
	}
	if err := b.kv.Set(ctx, MasteredKey, raw); err != nil {
		return fmt.Errorf("save mastered set: %w", err)
	}
	return nil
}
