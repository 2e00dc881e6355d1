package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodeck/internal/config"
	"github.com/abhisek/lingodeck/internal/router"
	"github.com/abhisek/lingodeck/internal/screen"
	"github.com/abhisek/lingodeck/internal/screens/generate"
	"github.com/abhisek/lingodeck/internal/screens/history"
	practicescreen "github.com/abhisek/lingodeck/internal/screens/practice"
	"github.com/abhisek/lingodeck/internal/sound"
	"github.com/abhisek/lingodeck/internal/store"
	"github.com/abhisek/lingodeck/internal/ui/components"
	"github.com/abhisek/lingodeck/internal/ui/layout"
	"github.com/abhisek/lingodeck/internal/ui/theme"
)

// Deps are the services reachable from the home screen.
type Deps struct {
	Sets     store.SetRepo
	Cards    store.CardRepo
	Sessions store.SessionRepo
	Sound    sound.Player
	Practice config.PracticeConfig

	// Generator enables deck generation; nil hides it.
	Generator generate.Generator
}

type setsLoadedMsg struct {
	Sets     []store.Set
	Accuracy map[string]store.Accuracy
	Err      error
}

type setDeletedMsg struct {
	Name string
	Err  error
}

// HomeScreen lists the card sets.
type HomeScreen struct {
	deps     Deps
	sets     []store.Set
	accuracy map[string]store.Accuracy
	menu     components.Menu
	loaded   bool
	errMsg   string
	notice   string

	// confirmDelete holds the set awaiting a y/n answer.
	confirmDelete *store.Set
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	return &HomeScreen{deps: deps}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Revealed reloads the sets when a pushed screen returns.
func (h *HomeScreen) Revealed() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	sets, sessions := h.deps.Sets, h.deps.Sessions
	return func() tea.Msg {
		ctx := context.Background()

		list, err := sets.ListSets(ctx)
		if err != nil {
			return setsLoadedMsg{Err: err}
		}

		acc := make(map[string]store.Accuracy, len(list))
		if sessions != nil {
			for _, s := range list {
				a, err := sessions.SetAccuracy(ctx, s.ID)
				if err != nil {
					continue
				}
				acc[s.ID] = a
			}
		}
		return setsLoadedMsg{Sets: list, Accuracy: acc}
	}
}

func (h *HomeScreen) Title() string {
	return "Card Sets"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmDelete != nil {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Practice"},
	}
	if len(h.sets) > 0 {
		hints = append(hints, layout.KeyHint{Key: "X", Description: "Delete"})
	}
	if h.deps.Generator != nil {
		hints = append(hints, layout.KeyHint{Key: "G", Description: "Generate"})
	}
	return append(hints, layout.KeyHint{Key: "H", Description: "History"})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.setSets(msg.Sets, msg.Accuracy)
		return h, nil

	case setDeletedMsg:
		if msg.Err != nil {
			h.notice = "Delete failed: " + msg.Err.Error()
			return h, nil
		}
		h.notice = fmt.Sprintf("Deleted %q", msg.Name)
		return h, h.load()

	case tea.KeyMsg:
		if h.confirmDelete != nil {
			return h.handleConfirm(msg)
		}
		switch msg.String() {
		case "h":
			return h, push(history.New(h.deps.Sessions))
		case "g":
			if h.deps.Generator == nil {
				return h, nil
			}
			return h, push(generate.New(h.deps.Generator, h.deps.Sets, h.existingNames()))
		case "x", "delete":
			if s, ok := h.selected(); ok {
				h.confirmDelete = &s
			}
			return h, nil
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) handleConfirm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	target := h.confirmDelete
	h.confirmDelete = nil
	if msg.String() != "y" {
		return h, nil
	}
	sets := h.deps.Sets
	return h, func() tea.Msg {
		err := sets.DeleteSet(context.Background(), target.ID)
		return setDeletedMsg{Name: target.Name, Err: err}
	}
}

func (h *HomeScreen) setSets(sets []store.Set, acc map[string]store.Accuracy) {
	selected := h.menu.Selected
	h.sets = sets
	h.accuracy = acc

	items := make([]components.MenuItem, 0, len(sets))
	for _, s := range sets {
		set := s
		items = append(items, components.MenuItem{
			Label: set.Name,
			Detail: h.detail(set),
			Action: func() tea.Cmd {
				return push(practicescreen.New(set, practicescreen.Deps{
					Cards:    h.deps.Cards,
					Sessions: h.deps.Sessions,
					Sound:    h.deps.Sound,
					Practice: h.deps.Practice,
				}))
			},
		})
	}
	h.menu = components.NewMenu(items)
	if selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) detail(s store.Set) string {
	parts := []string{fmt.Sprintf("%d cards", s.CardCount)}
	if s.Language != "" {
		parts = append(parts, s.Language)
	}
	if a, ok := h.accuracy[s.ID]; ok && a.Correct+a.Incorrect > 0 {
		parts = append(parts, fmt.Sprintf("%.0f%% correct", a.Percent()))
	} else {
		parts = append(parts, "new")
	}
	return strings.Join(parts, " · ")
}

func (h *HomeScreen) selected() (store.Set, bool) {
	if h.menu.Selected < 0 || h.menu.Selected >= len(h.sets) {
		return store.Set{}, false
	}
	return h.sets[h.menu.Selected], true
}

func (h *HomeScreen) existingNames() []string {
	names := make([]string, 0, len(h.sets))
	for _, s := range h.sets {
		names = append(names, s.Name)
	}
	return names
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("lingodeck"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("swipe right if you knew it, left if you didn't"))
	b.WriteString("\n\n")

	switch {
	case h.errMsg != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("Error: " + h.errMsg))
	case !h.loaded:
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Loading card sets..."))
	case len(h.sets) == 0:
		msg := "No card sets yet.\n\nImport one with: lingodeck import deck.json"
		if h.deps.Generator != nil {
			msg += "\nor press g to generate one."
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(msg))
	default:
		rows := height - 8
		if rows < 3 {
			rows = 3
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.ViewRows(rows)))
	}

	if h.confirmDelete != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Delete %q and its cards? (y/n)", h.confirmDelete.Name)))
	} else if h.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(h.notice))
	}

	return b.String()
}
