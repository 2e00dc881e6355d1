// Package welcome shows the startup splash before the set list.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodeck/internal/router"
	"github.com/abhisek/lingodeck/internal/screen"
	"github.com/abhisek/lingodeck/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 900 * time.Millisecond
	totalDur     = 2400 * time.Millisecond
)

const tagline = "Swipe right if you know it."

// deckArt is a small stack of cards; the top card slides right while the
// splash plays.
var deckArt = []string{
	"╭──────────╮",
	"│  hola    │",
	"│          │",
	"│    ✓     │",
	"╰──────────╯",
}

type tickMsg time.Time

// WelcomeScreen plays a short splash and then replaces itself with the
// screen produced by next.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			w.elapsed = totalDur
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg, tea.MouseClickMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// slide is how many columns the top card has moved right.
func (w *WelcomeScreen) slide() int {
	if w.elapsed < phase1End {
		return 0
	}
	steps := int((w.elapsed - phase1End) / tickInterval)
	return min(steps, 6)
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	under := lipgloss.NewStyle().Foreground(theme.TextFaint)
	top := lipgloss.NewStyle().Foreground(theme.Primary)
	if w.slide() > 0 {
		top = top.Foreground(theme.Success)
	}

	pad := strings.Repeat(" ", w.slide())
	lines := make([]string, len(deckArt))
	for i, l := range deckArt {
		lines[i] = under.Render("│") + pad + top.Render(l)
	}
	sections = append(sections, strings.Join(lines, "\n"))

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(tagline))
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
