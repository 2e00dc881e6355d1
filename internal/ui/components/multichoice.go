package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodeck/internal/ui/theme"
)

// MultiChoice lets the user pick one of a few options with the arrow keys.
// It never submits on its own; the owning screen reads Selected.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int
	Focused  bool
}

// NewMultiChoice creates a selector with the given option preselected.
func NewMultiChoice(question string, options []string, selected int) MultiChoice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return MultiChoice{
		Question: question,
		Options:  options,
		Selected: selected,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the selection while focused.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if !m.Focused {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if m.Selected > 0 {
			m.Selected--
		}
	case "right", "l":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}

	return m, nil
}

// Value returns the selected option.
func (m MultiChoice) Value() string {
	if len(m.Options) == 0 {
		return ""
	}
	return m.Options[m.Selected]
}

// View renders the question and the options on one line.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if m.Focused {
		questionStyle = questionStyle.Foreground(theme.Text).Bold(true)
	}
	s := questionStyle.Render(m.Question) + "\n"

	for i, opt := range m.Options {
		switch {
		case i == m.Selected && m.Focused:
			s += theme.Selected.Render("[▸ "+opt+"]") + " "
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render("[ "+opt+"]") + " "
		default:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+opt+" ") + " "
		}
	}

	return s
}
