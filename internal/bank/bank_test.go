package bank

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/ZaneDavis9616/jlptn1/internal/quiz"
)

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func q(id, body string) quiz.Question {
	return quiz.Question{
		ID:           id,
		Body:         body,
		Options:      []string{"一", "二", "三", "四"},
		CorrectIndex: 0,
	}
}

func TestLoadEmptyStorage(t *testing.T) {
	b := Load(context.Background(), newMemKV())
	if b.MistakeCount() != 0 {
		t.Errorf("expected empty bank, got %d", b.MistakeCount())
	}
}

func TestLoadMalformedData(t *testing.T) {
	kv := newMemKV()
	kv.data[MistakesKey] = []byte(`{not json`)
	kv.data[MasteredKey] = []byte(`42`)

	b := Load(context.Background(), kv)
	if b.MistakeCount() != 0 {
		t.Errorf("malformed bank should load empty, got %d", b.MistakeCount())
	}
	if b.IsMastered("x") {
		t.Error("malformed mastered set should load empty")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	b := Load(ctx, kv)
	if err := b.Report(ctx, q("q1", "彼の<u>杜撰</u>な計画"), false, false); err != nil {
		t.Fatalf("report: %v", err)
	}

	reloaded := Load(ctx, kv)
	if reloaded.MistakeCount() != 1 {
		t.Fatalf("reloaded count = %d, want 1", reloaded.MistakeCount())
	}
	if reloaded.Mistakes()[0].ID != "q1" {
		t.Errorf("reloaded question ID = %q", reloaded.Mistakes()[0].ID)
	}
}

func TestNormalModeWrongAddsOnce(t *testing.T) {
	ctx := context.Background()
	b := Load(ctx, newMemKV())

	_ = b.Report(ctx, q("q1", "同じ本文"), false, false)
	// Regenerated question, new ID, same body.
	_ = b.Report(ctx, q("q2", "同じ本文"), false, false)

	if b.MistakeCount() != 1 {
		t.Fatalf("bank should dedup by body text, got %d entries", b.MistakeCount())
	}
	if b.Mistakes()[0].ID != "q1" {
		t.Errorf("original entry should be kept, got %q", b.Mistakes()[0].ID)
	}
}

func TestNormalModeCorrectMasters(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	b := Load(ctx, kv)

	_ = b.Report(ctx, q("q1", "正解した問題"), true, false)

	if b.MistakeCount() != 0 {
		t.Error("correct answer should not enter the mistake bank")
	}
	if !b.IsMastered("正解した問題") {
		t.Error("correct answer should master the body")
	}

	var mastered []string
	if err := json.Unmarshal(kv.data[MasteredKey], &mastered); err != nil {
		t.Fatalf("mastered set not persisted as JSON: %v", err)
	}
	if len(mastered) != 1 {
		t.Errorf("persisted mastered set = %v", mastered)
	}
}

func TestReviewRedemption(t *testing.T) {
	ctx := context.Background()
	b := Load(ctx, newMemKV())

	// Wrong in normal mode, then right in review mode.
	_ = b.Report(ctx, q("q1", "難問"), false, false)
	_ = b.Report(ctx, q("q1", "難問"), true, true)

	if b.MistakeCount() != 0 {
		t.Errorf("redeemed question should leave the bank, count = %d", b.MistakeCount())
	}
	if !b.IsMastered("難問") {
		t.Error("redeemed body should be mastered")
	}

	// Mastering again must not duplicate.
	_ = b.Report(ctx, q("q3", "難問"), true, false)
	count := 0
	for _, body := range b.mastered {
		if body == "難問" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("body appears %d times in mastered set, want 1", count)
	}
}

func TestReviewWrongKeepsEntry(t *testing.T) {
	ctx := context.Background()
	b := Load(ctx, newMemKV())

	_ = b.Report(ctx, q("q1", "難問"), false, false)
	_ = b.Report(ctx, q("q1", "難問"), false, true)

	if b.MistakeCount() != 1 {
		t.Errorf("wrong review answer should keep the entry, count = %d", b.MistakeCount())
	}
}

func TestFilterMasteredFallback(t *testing.T) {
	ctx := context.Background()
	b := Load(ctx, newMemKV())
	_ = b.Report(ctx, q("q1", "既習一"), true, false)
	_ = b.Report(ctx, q("q2", "既習二"), true, false)

	batch := []quiz.Question{q("g1", "既習一"), q("g2", "既習二"), q("g3", "新規")}
	filtered := b.FilterMastered(batch)
	if len(filtered) != 1 || filtered[0].Body != "新規" {
		t.Fatalf("filter result = %v", filtered)
	}

	// All mastered: serve the unfiltered batch rather than an empty quiz.
	allOld := []quiz.Question{q("g1", "既習一"), q("g2", "既習二")}
	if got := b.FilterMastered(allOld); len(got) != 2 {
		t.Errorf("expected fallback to unfiltered batch, got %d questions", len(got))
	}
}

func TestReviewBatchShuffles(t *testing.T) {
	ctx := context.Background()
	b := Load(ctx, newMemKV())
	for i, body := range []string{"一", "二", "三", "四", "五"} {
		_ = b.Report(ctx, quiz.Question{
			ID:           string(rune('a' + i)),
			Body:         body,
			Options:      []string{"w", "x", "y", "z"},
			CorrectIndex: 3,
		}, false, false)
	}

	batch := b.ReviewBatch(rand.New(rand.NewPCG(5, 5)))
	if len(batch) != 5 {
		t.Fatalf("batch size = %d, want 5", len(batch))
	}
	for _, bq := range batch {
		if bq.Options[bq.CorrectIndex] != "z" {
			t.Errorf("correct index lost in shuffle: %+v", bq)
		}
	}

	// Bank order untouched.
	if b.Mistakes()[0].Body != "一" {
		t.Error("bank mutated by ReviewBatch")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	b := Load(ctx, kv)
	_ = b.Report(ctx, q("q1", "一"), false, false)
	_ = b.Report(ctx, q("q2", "二"), true, false)

	if err := b.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if b.MistakeCount() != 0 || b.IsMastered("二") {
		t.Error("clear did not empty state")
	}
	if string(kv.data[MistakesKey]) != "[]" || string(kv.data[MasteredKey]) != "[]" {
		t.Errorf("clear not persisted: %q %q", kv.data[MistakesKey], kv.data[MasteredKey])
	}
}
