package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ZaneDavis9616/jlptn1/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
// Heading items render as section labels and are skipped by the cursor.
type MenuItem struct {
	Label   string
	Detail  string
	Action  func() tea.Cmd
	Heading bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the cursor on the first selectable item.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Heading {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Heading {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Heading {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Heading {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		switch {
		case item.Heading:
			s += theme.SectionHeading.Render(item.Label) + "\n"
		case i == m.Selected:
			line := "  ▸ " + item.Label
			if item.Detail != "" {
				line += "  " + item.Detail
			}
			s += lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render(line) + "\n"
		default:
			line := "    " + item.Label
			if item.Detail != "" {
				line += "  " + item.Detail
			}
			s += lipgloss.NewStyle().
				Foreground(theme.Text).
				Render(line) + "\n"
		}
	}
	return s
}
