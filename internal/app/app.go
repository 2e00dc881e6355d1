package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodeck/internal/router"
	"github.com/abhisek/lingodeck/internal/screen"
	"github.com/abhisek/lingodeck/internal/screens/home"
	practicescreen "github.com/abhisek/lingodeck/internal/screens/practice"
	"github.com/abhisek/lingodeck/internal/screens/welcome"
	"github.com/abhisek/lingodeck/internal/store"
	"github.com/abhisek/lingodeck/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Home home.Deps

	// StartSet opens a practice session for this set instead of the set list.
	StartSet *store.Set

	// Splash plays the welcome animation before the set list. Ignored when
	// StartSet is given.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	init   []tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen, behind the splash
// when enabled, plus a practice screen on top when a start set is given.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Home)
	if opts.Splash && opts.StartSet == nil {
		splash := welcome.New(func() screen.Screen { return homeScreen })
		return AppModel{
			router: router.New(splash),
			init:   []tea.Cmd{splash.Init()},
		}
	}

	m := AppModel{
		router: router.New(homeScreen),
		init:   []tea.Cmd{homeScreen.Init()},
	}
	if opts.StartSet != nil {
		cmd := m.router.Push(practicescreen.New(*opts.StartSet, practiceDeps(opts.Home)))
		m.init = append(m.init, cmd)
	}
	return m
}

func practiceDeps(d home.Deps) practicescreen.Deps {
	return practicescreen.Deps{
		Cards:    d.Cards,
		Sessions: d.Sessions,
		Sound:    d.Sound,
		Practice: d.Practice,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.init...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	status := ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
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

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		slog.Error("tui exited with error", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
