package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodeck/internal/deck"
	"github.com/abhisek/lingodeck/internal/deckgen"
	"github.com/abhisek/lingodeck/internal/llm"
	"github.com/abhisek/lingodeck/internal/router"
	"github.com/abhisek/lingodeck/internal/screen"
	"github.com/abhisek/lingodeck/internal/store"
	"github.com/abhisek/lingodeck/internal/ui/components"
	"github.com/abhisek/lingodeck/internal/ui/layout"
	"github.com/abhisek/lingodeck/internal/ui/theme"
)

// Generator produces a validated deck; *deckgen.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, input deckgen.Input) (*deck.Deck, error)
}

const defaultCount = "20"

// form fields in focus order.
const (
	fieldTopic = iota
	fieldLanguage
	fieldCount
	fieldLevel
	numFields
)

var levels = []string{deckgen.LevelBeginner, deckgen.LevelIntermediate, deckgen.LevelAdvanced}

type generatedMsg struct {
	Set *store.Set
	Err error
}

// GenerateScreen asks an LLM for a new card set and stores it.
type GenerateScreen struct {
	generator Generator
	sets      store.SetRepo
	existing  map[string]bool

	topic    components.TextInput
	language components.TextInput
	count    components.TextInput
	level    components.MultiChoice
	focus    int

	running bool
	cancel  context.CancelFunc
	created *store.Set
	errMsg  string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)
var _ screen.BackHandler = (*GenerateScreen)(nil)

// New creates the generation form. existing holds set names already taken.
func New(generator Generator, sets store.SetRepo, existing []string) *GenerateScreen {
	taken := make(map[string]bool, len(existing))
	for _, n := range existing {
		taken[strings.ToLower(n)] = true
	}

	s := &GenerateScreen{
		generator: generator,
		sets:      sets,
		existing:  taken,
		topic:     components.NewTextInput("Topic", "food and drink", false, 80),
		language:  components.NewTextInput("Language", "Spanish", false, 40),
		count:     components.NewTextInput("Cards", defaultCount, true, 3),
		level:     components.NewMultiChoice("Level", levels, 0),
	}
	s.count.Model.SetValue(defaultCount)
	return s
}

func (s *GenerateScreen) Init() tea.Cmd {
	return s.topic.Focus()
}

func (s *GenerateScreen) Title() string {
	return "Generate Deck"
}

func (s *GenerateScreen) HandlesBack() bool { return true }

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.running:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case s.created != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.running = false
		s.cancel = nil
		if msg.Err != nil {
			s.errMsg = errorText(msg.Err)
			return s, nil
		}
		s.created = msg.Set
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, s.forward(msg)
}

func (s *GenerateScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.running {
		if msg.String() == "esc" && s.cancel != nil {
			s.cancel()
		}
		return s, nil
	}
	if s.created != nil {
		switch msg.String() {
		case "enter", "esc":
			return s, pop
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, pop
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % numFields)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + numFields - 1) % numFields)
	case "enter":
		return s.submit()
	}
	return s, s.forward(msg)
}

func (s *GenerateScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldLanguage:
		s.language, cmd = s.language.Update(msg)
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	case fieldLevel:
		s.level, cmd = s.level.Update(msg)
	}
	return cmd
}

func (s *GenerateScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.topic.Blur()
	s.language.Blur()
	s.count.Blur()
	s.level.Focused = f == fieldLevel

	switch f {
	case fieldTopic:
		return s.topic.Focus()
	case fieldLanguage:
		return s.language.Focus()
	case fieldCount:
		return s.count.Focus()
	}
	return nil
}

func (s *GenerateScreen) submit() (screen.Screen, tea.Cmd) {
	s.errMsg = ""
	s.topic.SetError("")
	s.language.SetError("")
	s.count.SetError("")

	input := deckgen.Input{
		Topic:    s.topic.Value(),
		Language: s.language.Value(),
		Level:    s.level.Value(),
	}
	valid := true
	if input.Topic == "" {
		s.topic.SetError("required")
		valid = false
	}
	if input.Language == "" {
		s.language.SetError("required")
		valid = false
	}
	n, err := s.count.NumericValue()
	if err != nil || n <= 0 {
		s.count.SetError("enter a number")
		valid = false
	}
	if !valid {
		return s, nil
	}
	input.Count = n

	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	return s, s.generate(ctx, cancel, input)
}

func (s *GenerateScreen) generate(ctx context.Context, cancel context.CancelFunc, input deckgen.Input) tea.Cmd {
	gen, sets, taken := s.generator, s.sets, s.existing
	return func() tea.Msg {
		defer cancel()

		d, err := gen.Generate(ctx, input)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return generatedMsg{Err: errors.New("generation cancelled")}
			}
			return generatedMsg{Err: err}
		}
		d.Name = uniqueName(d.Name, taken)

		set, err := sets.CreateSet(ctx, d.NewSet())
		if err != nil {
			return generatedMsg{Err: fmt.Errorf("save deck: %w", err)}
		}
		return generatedMsg{Set: set}
	}
}

// uniqueName appends a counter when name is already used.
func uniqueName(name string, taken map[string]bool) string {
	if !taken[strings.ToLower(name)] {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", name, i)
		if !taken[strings.ToLower(candidate)] {
			return candidate
		}
	}
}

func pop() tea.Msg { return router.PopScreenMsg{} }

func (s *GenerateScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.created != nil {
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).
			Render(fmt.Sprintf("Created %q with %d cards.", s.created.Name, s.created.CardCount)))
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Width(width).Render("Press Enter to go back and start practicing."))
		return b.String()
	}

	form := strings.Join([]string{
		s.topic.View(),
		s.language.View(),
		s.count.View(),
		s.level.View(),
	}, "\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(min(width-4, 60)).Render(form)))
	b.WriteString("\n\n")

	switch {
	case s.running:
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Generating deck... (Esc to cancel)"))
	case s.errMsg != "":
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Error: " + s.errMsg))
	}
	return b.String()
}

// errorText turns a generation failure into a line for the form.
func errorText(err error) string {
	var inv *llm.ErrInvalidResponse
	var trunc *llm.ErrMaxTokensExceeded
	switch {
	case errors.As(err, &inv) && inv.Subject != "":
		return fmt.Sprintf("the model returned an unusable deck for %q; try again or reword the topic", inv.Subject)
	case errors.As(err, &trunc):
		return "the deck was cut off at the token limit; ask for fewer cards"
	}
	return err.Error()
}
