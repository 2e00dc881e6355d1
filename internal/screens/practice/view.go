package practice

import (
	"fmt"
	"math"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	core "github.com/abhisek/lingodeck/internal/practice"
	"github.com/abhisek/lingodeck/internal/ui/components"
	"github.com/abhisek/lingodeck/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.ctrl == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading cards...")
	}

	switch s.ctrl.Phase() {
	case core.PhaseSetup:
		return s.renderSetup(width, height)
	case core.PhaseActive:
		return s.renderCard(width, height)
	}
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render("\n\n  Session complete.")
}

func (s *PracticeScreen) renderSetup(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(s.set.Name))
	b.WriteString("\n")
	sub := fmt.Sprintf("%d cards", s.ctrl.CardsTotal())
	if s.set.Description != "" {
		sub = s.set.Description + "  ·  " + sub
	}
	b.WriteString(theme.Subtitle.Width(width).Render(sub))
	b.WriteString("\n\n\n")

	form := s.faceChoice.View() + "\n\n" + s.shuffleChoice.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form))
	b.WriteString("\n\n\n")

	start := theme.Hint.Render("Press Enter to start")
	if s.ctrl.CardsTotal() == 0 {
		start = lipgloss.NewStyle().Foreground(theme.Accent).Render("This set has no cards.")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, start))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

func (s *PracticeScreen) renderCard(width, height int) string {
	card, ok := s.ctrl.Current()
	if !ok {
		return ""
	}

	barWidth := components.CardWidth(width) + 4
	progress := components.NewProgressBar("Progress", s.ctrl.Progress(), true, barWidth)

	remaining := s.ctrl.Remaining()
	total := s.deps.Practice.Options().TimerDuration
	frac := 0.0
	if total > 0 {
		frac = float64(remaining) / float64(total)
	}
	timer := components.NewProgressBar("Time    ", frac, true, barWidth)
	timer.Text = fmt.Sprintf("%2ds", int(remaining.Seconds()))
	timer.Fill = theme.Secondary
	if remaining <= 5*time.Second {
		timer.Fill = theme.Error
	}

	offset := s.offset()
	cellOffset := 0
	if ppc := s.deps.Practice.PixelsPerCell; ppc > 0 {
		cellOffset = int(math.Round(offset / ppc))
	}

	face := s.ctrl.Face()
	fc := components.Flashcard{
		Label:   face.String(),
		Text:    card.Text(face),
		Back:    face == core.FaceDefinition,
		Offset:  cellOffset,
		Opacity: core.Opacity(offset, s.ctrl.Thresholds().Distance),
		Width:   components.CardWidth(width),
		Height:  cardHeight(height),
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		s.wrongBtn.View(), "    ", s.rightBtn.View())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, progress.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, timer.View()))
	b.WriteString("\n\n")
	b.WriteString(fc.View(width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("drag the card or use ← → · space flips")))
	return b.String()
}

// offset is the card's horizontal displacement in gesture pixels.
func (s *PracticeScreen) offset() float64 {
	if s.animating {
		return s.animOffset
	}
	return s.ctrl.Drag().OffsetX
}

func cardHeight(height int) int {
	h := height - 14
	if h > 11 {
		h = 11
	}
	if h < 5 {
		h = 5
	}
	return h
}
