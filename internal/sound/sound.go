// Package sound gives audible feedback for answered cards.
package sound

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// Player turns a committed card into feedback. The returned command is run
// by the program, so output goes through the renderer instead of racing it.
// A nil command means no feedback.
type Player interface {
	Play(correct bool) tea.Cmd
}

// Nop is a Player that does nothing.
type Nop struct{}

// Play returns nil.
func (Nop) Play(bool) tea.Cmd { return nil }

const bell = "\a"

// BellPlayer rings the terminal bell: once for a wrong answer, twice for a
// correct one.
type BellPlayer struct {
	gap time.Duration
}

// NewBellPlayer creates a BellPlayer with the default gap between rings.
func NewBellPlayer() *BellPlayer {
	return &BellPlayer{gap: 120 * time.Millisecond}
}

// Play returns the bell sequence as raw program output. Terminals tend to
// merge back-to-back bells, so the second ring waits for the gap.
func (p *BellPlayer) Play(correct bool) tea.Cmd {
	if !correct {
		return tea.Raw(bell)
	}
	return tea.Sequence(
		tea.Raw(bell),
		tea.Tick(p.gap, func(time.Time) tea.Msg { return tea.RawMsg{Msg: bell} }),
	)
}

// New returns a BellPlayer when enabled, Nop otherwise.
func New(enabled bool) Player {
	if !enabled {
		return Nop{}
	}
	return NewBellPlayer()
}
