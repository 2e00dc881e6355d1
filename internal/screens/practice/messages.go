package practice

import (
	"time"

	core "github.com/abhisek/lingodeck/internal/practice"
)

// cardsLoadedMsg carries the set's cards from the store.
type cardsLoadedMsg struct {
	Cards []core.Card
	Err   error
}

// timerTickMsg is one second of the countdown identified by ID.
type timerTickMsg struct {
	ID core.TimerID
}

// animFrameMsg drives the fly-out animation.
type animFrameMsg time.Time

// persistDoneMsg reports a finished background write.
type persistDoneMsg struct {
	Err error
}

const frameInterval = 16 * time.Millisecond
