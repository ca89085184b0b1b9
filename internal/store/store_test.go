package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ZaneDavis9616/jlptn1/internal/llm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestKVGetSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "jlpt_n1_mistakes"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, "jlpt_n1_mistakes", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "jlpt_n1_mistakes")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("value = %q, want []", got)
	}

	// Overwrite.
	if err := s.Set(ctx, "jlpt_n1_mistakes", []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = s.Get(ctx, "jlpt_n1_mistakes")
	if string(got) != `[{"id":"x"}]` {
		t.Errorf("value after overwrite = %q", got)
	}
}

func TestLLMRequestLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []llm.RequestRecord{
		{Provider: "mock", Model: "mock", Purpose: "vocab_readings", LatencyMs: 1200, Success: true, InputTokens: 800, OutputTokens: 400, RequestBody: "[system]\n..."},
		{Provider: "mock", Model: "mock", Purpose: "vocab_readings", LatencyMs: 900, Success: false, ErrorMessage: "rate limited"},
		{Provider: "mock", Model: "mock", Purpose: "grammar_forms", LatencyMs: 1500, Success: true, InputTokens: 700, OutputTokens: 350},
	}
	for _, rec := range recs {
		if err := s.AppendLLMRequest(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	list, err := s.ListLLMRequests(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(list))
	}
	// Newest first.
	if list[0].Purpose != "grammar_forms" {
		t.Errorf("first row purpose = %q, want grammar_forms", list[0].Purpose)
	}

	single, err := s.GetLLMRequest(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if single.LatencyMs != 1500 || !single.Success {
		t.Errorf("row mismatch: %+v", single)
	}

	if _, err := s.GetLLMRequest(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.AppendLLMRequest(ctx, llm.RequestRecord{Provider: "mock", Model: "mock", Purpose: "reading_short", Success: true, InputTokens: 1000, OutputTokens: 500})
	_ = s.AppendLLMRequest(ctx, llm.RequestRecord{Provider: "mock", Model: "mock", Purpose: "reading_short", Success: false})
	_ = s.AppendLLMRequest(ctx, llm.RequestRecord{Provider: "mock", Model: "mock", Purpose: "vocab_usage", Success: true, InputTokens: 600, OutputTokens: 300})

	usage, err := s.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(usage))
	}

	byPurpose := map[string]UsageByPurpose{}
	for _, u := range usage {
		byPurpose[u.Purpose] = u
	}
	rs := byPurpose["reading_short"]
	if rs.Requests != 2 || rs.Failures != 1 || rs.InputTokens != 1000 || rs.OutputTokens != 500 {
		t.Errorf("reading_short aggregate wrong: %+v", rs)
	}
	vu := byPurpose["vocab_usage"]
	if vu.Requests != 1 || vu.Failures != 0 {
		t.Errorf("vocab_usage aggregate wrong: %+v", vu)
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.AppendLLMRequest(ctx, llm.RequestRecord{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "vocab_readings", Success: true, InputTokens: 900, OutputTokens: 450})
	_ = s.AppendLLMRequest(ctx, llm.RequestRecord{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "grammar_forms", Success: true, InputTokens: 700, OutputTokens: 300})
	_ = s.AppendLLMRequest(ctx, llm.RequestRecord{Provider: "openai", Model: "gpt-4o", Purpose: "reading_short", Success: true, InputTokens: 2000, OutputTokens: 800})

	usage, err := s.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 models, got %d", len(usage))
	}

	byModel := map[string]UsageByModel{}
	for _, u := range usage {
		byModel[u.Model] = u
	}
	cs := byModel["claude-sonnet-4-5"]
	if cs.Requests != 2 || cs.InputTokens != 1600 || cs.OutputTokens != 750 {
		t.Errorf("claude aggregate wrong: %+v", cs)
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom", "db.sqlite")
	t.Setenv("JLPTN1_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default db path: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}
