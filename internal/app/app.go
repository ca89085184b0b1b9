// Package app wires the screens, router and frame into the root
// Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ZaneDavis9616/jlptn1/internal/bank"
	"github.com/ZaneDavis9616/jlptn1/internal/questiongen"
	"github.com/ZaneDavis9616/jlptn1/internal/router"
	"github.com/ZaneDavis9616/jlptn1/internal/screen"
	"github.com/ZaneDavis9616/jlptn1/internal/screens/menu"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Generator questiongen.Generator
	Banks     *bank.Banks
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	banks  *bank.Banks
	width  int
	height int
}

// newAppModel creates a new AppModel with the menu screen.
func newAppModel(opts Options) AppModel {
	menuScreen := menu.New(opts.Generator, opts.Banks)
	return AppModel{
		router: router.New(menuScreen),
		banks:  opts.Banks,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is left to the screens: the quiz screen confirms nothing is
		// lost before popping, and the menu ignores it entirely.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.banks.MistakeCount(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑/↓", Description: "移動"},
		{Key: "Enter", Description: "決定"},
		{Key: "Ctrl+C", Description: "終了"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
