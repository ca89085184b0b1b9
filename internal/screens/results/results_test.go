package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ZaneDavis9616/jlptn1/internal/quiz"
	"github.com/ZaneDavis9616/jlptn1/internal/router"
)

func testSummary() Summary {
	return Summary{
		Category:       quiz.Category{ID: "vocab_readings", Title: "漢字読み"},
		Score:          5,
		Total:          6,
		Percentage:     83,
		ElapsedSeconds: 125,
	}
}

func TestViewShowsScoreAndTime(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 20)

	for _, want := range []string{"5 / 6", "83%", "2:05", "漢字読み"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPerfectScoreShowsTopTier(t *testing.T) {
	sum := testSummary()
	sum.Score, sum.Total, sum.Percentage = 6, 6, 100
	view := New(sum).View(80, 20)

	if !strings.Contains(view, quiz.ResultMessage(100)) {
		t.Error("view missing top-tier message")
	}
	if quiz.ResultMessage(100) == quiz.ResultMessage(89) {
		t.Error("top tier should differ from lower tiers")
	}
}

func TestEnterPopsToMenu(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("enter should pop back to the menu")
	}
}
