package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodeck/internal/ui/theme"
)

// CardWidth returns the card width used for a frame of the given width.
func CardWidth(frameWidth int) int {
	w := frameWidth - 12
	if w > 56 {
		w = 56
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Flashcard renders one side of a card that can be dragged sideways.
type Flashcard struct {
	Label string // face name shown above the text
	Text  string
	Back  bool // definition side

	// Offset is the horizontal drag in columns; positive is right.
	Offset int
	// Opacity in [0, 1]; the card fades as it is dragged past the
	// commit distance.
	Opacity float64

	Width  int
	Height int
}

// View renders the card inside an area of the given width.
func (f Flashcard) View(areaWidth int) string {
	style := theme.CardTerm
	if f.Back {
		style = theme.CardDefinition
	}
	switch {
	case f.Offset > 0:
		style = style.BorderForeground(theme.Success)
	case f.Offset < 0:
		style = style.BorderForeground(theme.Error)
	}
	if f.Opacity < 0.5 {
		style = style.Foreground(theme.TextFaint).BorderForeground(theme.TextFaint)
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.ToUpper(f.Label))
	body := label + "\n\n" + f.Text

	card := style.
		Width(f.Width).
		Height(f.Height).
		Padding(0, 2).
		Render(body)

	left := (areaWidth-lipgloss.Width(card))/2 + f.Offset
	if limit := areaWidth - lipgloss.Width(card); left > limit {
		left = limit
	}
	if left < 0 {
		left = 0
	}

	pad := strings.Repeat(" ", left)
	lines := strings.Split(card, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
