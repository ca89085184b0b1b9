// Package menu implements the category selection screen.
package menu

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/ZaneDavis9616/jlptn1/internal/bank"
	"github.com/ZaneDavis9616/jlptn1/internal/questiongen"
	"github.com/ZaneDavis9616/jlptn1/internal/quiz"
	"github.com/ZaneDavis9616/jlptn1/internal/router"
	"github.com/ZaneDavis9616/jlptn1/internal/screen"
	quizscreen "github.com/ZaneDavis9616/jlptn1/internal/screens/quiz"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/components"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/layout"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/theme"
)

// MenuScreen is the category selection screen shown at startup.
type MenuScreen struct {
	menu      components.Menu
	banks     *bank.Banks
	reviewIdx int
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

// New creates the menu over the static category catalog plus the
// mistake-bank review entry.
func New(generator questiongen.Generator, banks *bank.Banks) *MenuScreen {
	var items []components.MenuItem

	section := quiz.Section("")
	for _, cat := range quiz.Categories() {
		if cat.Section != section {
			section = cat.Section
			items = append(items, components.MenuItem{
				Label:   section.DisplayName(),
				Heading: true,
			})
		}

		items = append(items, components.MenuItem{
			Label:  cat.Title,
			Detail: fmt.Sprintf("%s（%d問）", cat.Description, cat.Count),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: quizscreen.New(cat, generator, banks),
					}
				}
			},
		})
	}

	items = append(items, components.MenuItem{
		Label:   quiz.SectionReview.DisplayName(),
		Heading: true,
	})
	reviewIdx := len(items)
	items = append(items, components.MenuItem{
		Label: "間違えた問題",
		Action: func() tea.Cmd {
			// Guard: never enter a review quiz with an empty bank.
			if banks.MistakeCount() == 0 {
				return nil
			}
			cat := quiz.ReviewCategory(banks.MistakeCount())
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.New(cat, generator, banks),
				}
			}
		},
	})

	return &MenuScreen{
		menu:      components.NewMenu(items),
		banks:     banks,
		reviewIdx: reviewIdx,
	}
}

func (m *MenuScreen) Init() tea.Cmd {
	return nil
}

func (m *MenuScreen) Title() string {
	return "カテゴリー選択"
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "移動"},
		{Key: "Enter", Description: "開始"},
		{Key: "q", Description: "終了"},
	}
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	// The bank size changes as quizzes are taken, so the review entry's
	// detail line is refreshed on every render.
	count := m.banks.MistakeCount()
	if count == 0 {
		m.menu.Items[m.reviewIdx].Detail = "まだ問題がありません"
	} else {
		m.menu.Items[m.reviewIdx].Detail = fmt.Sprintf("%d問を復習する", count)
	}

	title := theme.Title.Width(width).Render("出題形式を選んでください")
	return "\n" + title + "\n\n" + m.menu.View()
}
