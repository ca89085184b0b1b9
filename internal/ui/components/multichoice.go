package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/ZaneDavis9616/jlptn1/internal/ui/theme"
)

var optionLabels = []string{"1", "2", "3", "4", "5", "6"}

// MultiChoice renders a set of answer options with a movable cursor.
// Once revealed, the correct option and the chosen option are color-coded
// and the cursor is frozen. Selection and reveal are driven by the caller,
// which owns the answer-checking rules.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Cursor       int
	Chosen       int // -1 until the user picks an option
	Revealed     bool
}

// NewMultiChoice creates a component with no option chosen yet.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		Cursor:       0,
		Chosen:       -1,
	}
}

// MoveUp moves the cursor up. No-op after reveal.
func (m *MultiChoice) MoveUp() {
	if m.Revealed {
		return
	}
	if m.Cursor > 0 {
		m.Cursor--
	}
}

// MoveDown moves the cursor down. No-op after reveal.
func (m *MultiChoice) MoveDown() {
	if m.Revealed {
		return
	}
	if m.Cursor < len(m.Options)-1 {
		m.Cursor++
	}
}

// Choose marks the option at the cursor as the user's selection.
func (m *MultiChoice) Choose() {
	if m.Revealed {
		return
	}
	m.Chosen = m.Cursor
}

// ChooseIndex selects a specific option (number-key shortcut).
func (m *MultiChoice) ChooseIndex(i int) {
	if m.Revealed || i < 0 || i >= len(m.Options) {
		return
	}
	m.Cursor = i
	m.Chosen = i
}

// Reveal freezes the component and shows the answer colors.
func (m *MultiChoice) Reveal() {
	m.Revealed = true
}

// HasChoice reports whether the user has picked an option.
func (m MultiChoice) HasChoice() bool {
	return m.Chosen >= 0
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		label := optionLabels[i%len(optionLabels)]
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}

		marker := " "
		if i == m.Chosen {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s  %s", prefix, marker, label, opt)

		switch {
		case m.Revealed && i == m.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case m.Revealed && i == m.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Cursor || i == m.Chosen:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
