package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodeck/internal/practice"
	"github.com/abhisek/lingodeck/internal/router"
	"github.com/abhisek/lingodeck/internal/screen"
	"github.com/abhisek/lingodeck/internal/ui/components"
	"github.com/abhisek/lingodeck/internal/ui/layout"
	"github.com/abhisek/lingodeck/internal/ui/theme"
)

// RestartMsg asks the session below the summary to replay its cards.
type RestartMsg struct{}

// ExitMsg asks the session below the summary to hand back to navigation.
type ExitMsg struct{}

// SummaryScreen displays the result of a finished session.
type SummaryScreen struct {
	setName string
	summary practice.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(setName string, summary practice.Summary) *SummaryScreen {
	return &SummaryScreen{setName: setName, summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R/Enter", Description: "Restart"},
		{Key: "Esc", Description: "Exit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "r", "enter":
			return s, popThen(RestartMsg{})
		case "esc", "q":
			return s, popThen(ExitMsg{})
		}
	}
	return s, nil
}

// popThen removes the summary and delivers msg to the session screen.
func popThen(msg tea.Msg) tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return msg },
	)
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	// Title.
	title := "Session complete!"
	if sum.Total == 0 {
		title = "Nothing to practice"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(s.setName))
	b.WriteString("\n\n")

	// Duration.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Duration: " + layout.FormatDuration(sum.Duration)))
	b.WriteString("\n\n")

	// Counts.
	counts := theme.Correct.Render(fmt.Sprintf("✓ %d correct", sum.Correct)) +
		"        " +
		theme.Incorrect.Render(fmt.Sprintf("✗ %d incorrect", sum.Incorrect))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, counts))
	b.WriteString("\n\n")

	// Score.
	bar := components.NewProgressBar("Score", sum.Percent/100, false, min(width-8, 50))
	bar.Fill = scoreColor(sum.Percent)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%.0f%%  (%d of %d)", sum.Percent, sum.Correct, sum.Total)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("r to go again with the same cards · esc to leave")))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}
