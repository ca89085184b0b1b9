// Package results implements the end-of-quiz results screen.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ZaneDavis9616/jlptn1/internal/quiz"
	"github.com/ZaneDavis9616/jlptn1/internal/router"
	"github.com/ZaneDavis9616/jlptn1/internal/screen"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/layout"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/theme"
)

// Summary holds the final numbers for one quiz run.
type Summary struct {
	Category       quiz.Category
	Score          int
	Total          int
	Percentage     int
	ElapsedSeconds int
}

// ResultsScreen displays the quiz outcome.
type ResultsScreen struct {
	summary Summary
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen for the summary.
func New(summary Summary) *ResultsScreen {
	return &ResultsScreen{summary: summary}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "結果"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "メニューへ"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// The quiz screen replaced itself with this one, so a single
			// pop lands back on the menu with session state discarded.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("お疲れさまでした！"))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(width).Render(sum.Category.Title))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d / %d 問正解", sum.Score, sum.Total))
	b.WriteString(score)
	b.WriteString("\n")

	pctColor := theme.Success
	if sum.Percentage < 70 {
		pctColor = theme.Accent
	}
	if sum.Percentage < 50 {
		pctColor = theme.Error
	}
	pct := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(pctColor).
		Bold(true).
		Render(fmt.Sprintf("%d%%", sum.Percentage))
	b.WriteString(pct)
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("所要時間 %s", quiz.FormatElapsed(sum.ElapsedSeconds))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(quiz.ResultMessage(sum.Percentage)))

	return b.String()
}
