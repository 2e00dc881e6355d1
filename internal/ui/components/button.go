package components

import (
	"image/color"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingodeck/internal/ui/theme"
)

// Tone colors a button by what pressing it means.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneError
)

// Button is a styled button component. Active means it has focus.
type Button struct {
	Label   string
	Tone    Tone
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, tone Tone, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Tone:    tone,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonInactive.
			BorderForeground(b.color()).
			Foreground(b.color()).
			Bold(true).
			Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.
		Foreground(theme.TextDim).
		Render("  " + b.Label)
}

func (b Button) color() color.Color {
	switch b.Tone {
	case ToneSuccess:
		return theme.Success
	case ToneError:
		return theme.Error
	default:
		return theme.Primary
	}
}
