package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/ZaneDavis9616/jlptn1/internal/quiz"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/components"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/markup"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return s.renderLoading(width)
	case phaseFailed:
		return s.renderError(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderLoading(width int) string {
	msg := s.spin.View() + " 問題を生成中..."
	if s.category.IsReview() {
		msg = s.spin.View() + " 復習問題を準備中..."
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n" + msg)
}

func (s *QuizScreen) renderError(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("\n\n問題の生成に失敗しました"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(s.errMsg))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("[r] 再試行    [Esc] メニューへ戻る"))
	return b.String()
}

func (s *QuizScreen) renderQuestion(width int) string {
	sess := s.session
	q := sess.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	// Info line: question position, score, timer.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  第%d問 / %d問", sess.Index()+1, sess.Total()))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("正解 %d  ⏱ %s", sess.Score(), qz.FormatElapsed(sess.ElapsedSeconds())))

	gap := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if gap < 1 {
		gap = 1
	}
	b.WriteString(infoLeft + strings.Repeat(" ", gap) + infoRight)
	b.WriteString("\n")

	bar := components.NewProgressBar("", sess.Progress(), false, width-8)
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	// Question body.
	body := lipgloss.NewStyle().
		Width(width - 8).
		Foreground(theme.Text).
		Render(markup.Render(q.Body))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	b.WriteString("\n\n")

	// Options.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	// Feedback after checking.
	if sess.Checked() {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width, q))
	}

	return b.String()
}

func (s *QuizScreen) renderFeedback(width int, q *qz.Question) string {
	var b strings.Builder

	verdict := theme.Correct.Render("正解！")
	if !s.lastCorrect {
		verdict = theme.Incorrect.Render(
			fmt.Sprintf("不正解　正解は「%s」", markup.Strip(q.CorrectOption())))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, verdict))
	b.WriteString("\n\n")

	if q.Explanation != "" {
		expl := theme.Card.Width(width - 12).Render(
			theme.Hint.Render("解説") + "\n" + markup.Render(q.Explanation))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expl))
		b.WriteString("\n")
	}

	if s.saveErr != "" {
		warn := lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.saveErr)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, warn))
		b.WriteString("\n")
	}

	return b.String()
}
