package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/lingodeck/internal/config"
	core "github.com/abhisek/lingodeck/internal/practice"
	"github.com/abhisek/lingodeck/internal/router"
	"github.com/abhisek/lingodeck/internal/screen"
	"github.com/abhisek/lingodeck/internal/screens/summary"
	"github.com/abhisek/lingodeck/internal/sound"
	"github.com/abhisek/lingodeck/internal/store"
	"github.com/abhisek/lingodeck/internal/ui/components"
	"github.com/abhisek/lingodeck/internal/ui/layout"
)

// Deps are the collaborators a practice session needs.
type Deps struct {
	Cards    store.CardRepo
	Sessions store.SessionRepo
	Sound    sound.Player
	Practice config.PracticeConfig

	// Now defaults to time.Now.
	Now func() time.Time
}

// focus targets on the active card view.
const (
	focusCard = iota
	focusWrong
	focusRight
)

// setup form rows.
const (
	rowFace = iota
	rowShuffle
)

// PracticeScreen runs one practice session over a card set.
type PracticeScreen struct {
	set  store.Set
	deps Deps
	keys keyMap

	ctrl      *core.Controller
	sessionID string
	errMsg    string

	faceChoice    components.MultiChoice
	shuffleChoice components.MultiChoice
	row           int

	wrongBtn components.Button
	rightBtn components.Button
	focus    int

	// scheduled is the timer run the current tick chain belongs to.
	scheduled  core.TimerID
	animating  bool
	animOffset float64

	outcomes     []core.Outcome
	sounds       []tea.Cmd
	exiting      bool
	summaryShown bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)
var _ screen.BackHandler = (*PracticeScreen)(nil)

// New creates a practice screen for set.
func New(set store.Set, deps Deps) *PracticeScreen {
	if deps.Sound == nil {
		deps.Sound = sound.Nop{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	setup := deps.Practice.Setup()
	faceIdx := 0
	if setup.FaceFirst == core.FaceDefinition {
		faceIdx = 1
	}
	shuffleIdx := 1
	if setup.Shuffle {
		shuffleIdx = 0
	}

	s := &PracticeScreen{
		set:           set,
		deps:          deps,
		keys:          defaultKeyMap(),
		faceChoice:    components.NewMultiChoice("Show first", []string{"term", "definition"}, faceIdx),
		shuffleChoice: components.NewMultiChoice("Order", []string{"shuffled", "in order"}, shuffleIdx),
		wrongBtn:      components.NewButton("✗ Didn't know", components.ToneError, nil),
		rightBtn:      components.NewButton("✓ Knew it", components.ToneSuccess, nil),
	}
	s.faceChoice.Focused = true
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	cards := s.deps.Cards
	setID := s.set.ID
	return func() tea.Msg {
		list, err := cards.CardsForSet(context.Background(), setID)
		return cardsLoadedMsg{Cards: list, Err: err}
	}
}

func (s *PracticeScreen) Title() string {
	return s.set.Name
}

func (s *PracticeScreen) HandlesBack() bool { return true }

func (s *PracticeScreen) Status() string {
	if s.ctrl == nil || s.ctrl.Phase() == core.PhaseSetup {
		return ""
	}
	st := s.ctrl.Stats()
	return fmt.Sprintf("✓ %d  ✗ %d  %d left", st.Correct, st.Incorrect, s.ctrl.CardsLeft())
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.ctrl == nil {
		return []layout.KeyHint{hint(s.keys.Back)}
	}
	switch s.ctrl.Phase() {
	case core.PhaseSetup:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Field"},
			{Key: "←→", Description: "Change"},
			hint(s.keys.Press),
			hint(s.keys.Back),
		}
	case core.PhaseActive:
		hints := []layout.KeyHint{
			hint(s.keys.Wrong),
			hint(s.keys.Right),
			hint(s.keys.Flip),
			hint(s.keys.Focus),
		}
		if s.focus != focusCard {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Press"})
		}
		return append(hints, hint(s.keys.Back))
	}
	return []layout.KeyHint{hint(s.keys.Back)}
}

// Controller exposes the running session, nil until the cards are loaded.
func (s *PracticeScreen) Controller() *core.Controller {
	return s.ctrl
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		return s.handleLoaded(msg)

	case timerTickMsg:
		return s.handleTick(msg)

	case animFrameMsg:
		return s.handleFrame(time.Time(msg))

	case persistDoneMsg:
		return s, nil

	case summary.RestartMsg:
		return s.handleRestart()

	case summary.ExitMsg:
		return s.exit()

	case tea.MouseClickMsg:
		m := msg.Mouse()
		if m.Button == tea.MouseLeft && s.ctrl != nil {
			s.ctrl.PointerDown(s.px(m.X), s.deps.Now())
		}
		return s, nil

	case tea.MouseMotionMsg:
		if s.ctrl != nil {
			s.ctrl.PointerMove(s.px(msg.Mouse().X), s.deps.Now())
		}
		return s, nil

	case tea.MouseReleaseMsg:
		if s.ctrl == nil {
			return s, nil
		}
		s.ctrl.PointerUp(s.px(msg.Mouse().X), s.deps.Now())
		return s, s.sync()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleLoaded(msg cardsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	opts := s.deps.Practice.Options()
	opts.Now = s.deps.Now
	opts.Hooks = core.Hooks{
		OnOutcome: s.onOutcome,
		OnExit:    func() { s.exiting = true },
	}
	s.ctrl = core.NewController(msg.Cards, opts)
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl == nil {
		if key.Matches(msg, s.keys.Back) {
			return s.exit()
		}
		return s, nil
	}

	switch s.ctrl.Phase() {
	case core.PhaseSetup:
		return s.handleSetupKey(msg)
	case core.PhaseActive:
		return s.handleActiveKey(msg)
	}
	if key.Matches(msg, s.keys.Back) {
		return s.exit()
	}
	return s, nil
}

func (s *PracticeScreen) handleSetupKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Back):
		return s.exit()
	case key.Matches(msg, s.keys.Up), key.Matches(msg, s.keys.Down), key.Matches(msg, s.keys.Focus):
		s.row = 1 - s.row
		s.faceChoice.Focused = s.row == rowFace
		s.shuffleChoice.Focused = s.row == rowShuffle
		return s, nil
	case key.Matches(msg, s.keys.Press):
		return s.start()
	}

	s.faceChoice, _ = s.faceChoice.Update(msg)
	s.shuffleChoice, _ = s.shuffleChoice.Update(msg)
	return s, nil
}

func (s *PracticeScreen) start() (screen.Screen, tea.Cmd) {
	setup := core.Setup{
		FaceFirst: core.ParseFace(s.faceChoice.Value()),
		Shuffle:   s.shuffleChoice.Selected == 0,
	}
	err := s.ctrl.Configure(setup)
	if err != nil && !errors.Is(err, core.ErrNoCards) {
		s.errMsg = err.Error()
		return s, nil
	}
	s.sessionID = uuid.NewString()
	return s, tea.Batch(s.persistSession(store.SessionStart), s.sync())
}

func (s *PracticeScreen) handleActiveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Wrong):
		s.ctrl.HandleKey(core.KeyLeft)
	case key.Matches(msg, s.keys.Right):
		s.ctrl.HandleKey(core.KeyRight)
	case key.Matches(msg, s.keys.Flip):
		s.ctrl.HandleKey(core.KeySpace)
	case key.Matches(msg, s.keys.Focus):
		s.cycleFocus(msg.String() == "shift+tab")
	case key.Matches(msg, s.keys.Press):
		s.pressFocused()
	case key.Matches(msg, s.keys.Back):
		return s.exit()
	}
	return s, s.sync()
}

func (s *PracticeScreen) cycleFocus(reverse bool) {
	if reverse {
		s.focus = (s.focus + 2) % 3
	} else {
		s.focus = (s.focus + 1) % 3
	}
	s.wrongBtn.Active = s.focus == focusWrong
	s.rightBtn.Active = s.focus == focusRight
}

func (s *PracticeScreen) pressFocused() {
	switch s.focus {
	case focusWrong:
		s.ctrl.Swipe(false, core.SourceButton)
	case focusRight:
		s.ctrl.Swipe(true, core.SourceButton)
	default:
		s.ctrl.Flip()
	}
}

func (s *PracticeScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl == nil {
		return s, nil
	}
	r := s.ctrl.TimerTick(msg.ID)
	if r.Stale {
		return s, s.sync()
	}
	if !r.Expired {
		return s, tea.Batch(tickCmd(msg.ID), s.sync())
	}
	return s, s.sync()
}

func (s *PracticeScreen) handleFrame(now time.Time) (screen.Screen, tea.Cmd) {
	if s.ctrl == nil {
		return s, nil
	}
	offset, more := s.ctrl.AnimationFrame(now)
	s.animOffset = offset
	if more {
		return s, frameCmd()
	}
	s.animating = false
	return s, s.sync()
}

func (s *PracticeScreen) handleRestart() (screen.Screen, tea.Cmd) {
	if s.ctrl == nil {
		return s, nil
	}
	err := s.ctrl.Restart()
	if err != nil && !errors.Is(err, core.ErrNoCards) {
		slog.Warn("restart practice session", "error", err)
		return s, nil
	}
	s.summaryShown = false
	s.sessionID = uuid.NewString()
	return s, tea.Batch(s.persistSession(store.SessionRestart), s.sync())
}

// exit leaves the screen. An unfinished session is recorded as abandoned.
func (s *PracticeScreen) exit() (screen.Screen, tea.Cmd) {
	pop := func() tea.Msg { return router.PopScreenMsg{} }
	if s.ctrl == nil {
		return s, pop
	}

	var persist tea.Cmd
	if s.ctrl.Phase() == core.PhaseActive {
		persist = s.persistSession(store.SessionAbandon)
	}
	s.ctrl.Exit()
	if !s.exiting {
		return s, persist
	}
	if persist == nil {
		return s, pop
	}
	return s, tea.Sequence(persist, pop)
}

func (s *PracticeScreen) onOutcome(o core.Outcome) {
	if cmd := s.deps.Sound.Play(o.Correct); cmd != nil {
		s.sounds = append(s.sounds, cmd)
	}
	s.outcomes = append(s.outcomes, o)
}

// sync schedules whatever the controller's new state needs: a tick chain
// for a fresh countdown, animation frames for a fly-out, persistence for
// committed cards and the summary once the queue is exhausted.
func (s *PracticeScreen) sync() tea.Cmd {
	cmds := s.sounds
	s.sounds = nil

	if len(s.outcomes) > 0 {
		cmds = append(cmds, s.persistOutcomes(s.outcomes))
		s.outcomes = nil
	}

	switch s.ctrl.Phase() {
	case core.PhaseActive:
		if s.ctrl.Animating() && !s.animating {
			s.animating = true
			cmds = append(cmds, frameCmd())
		}
		if s.ctrl.TimerRunning() && s.ctrl.TimerID() != s.scheduled {
			s.scheduled = s.ctrl.TimerID()
			cmds = append(cmds, tickCmd(s.scheduled))
		}
		if !s.ctrl.Animating() {
			s.animOffset = 0
		}

	case core.PhaseFinished:
		if !s.summaryShown {
			s.summaryShown = true
			s.animating = false
			s.animOffset = 0
			s.focus = focusCard
			s.wrongBtn.Active = false
			s.rightBtn.Active = false
			cmds = append(cmds, s.persistSession(store.SessionEnd))
			sum := summary.New(s.set.Name, s.ctrl.Summary())
			cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: sum} })
		}
	}

	return tea.Batch(cmds...)
}

func (s *PracticeScreen) persistOutcomes(outcomes []core.Outcome) tea.Cmd {
	repo := s.deps.Sessions
	if repo == nil {
		return nil
	}
	sessionID, setID := s.sessionID, s.set.ID
	return func() tea.Msg {
		ctx := context.Background()
		for _, o := range outcomes {
			err := repo.AppendOutcomeEvent(ctx, store.OutcomeEventData{
				SessionID: sessionID,
				SetID:     setID,
				CardID:    o.Card.ID,
				Correct:   o.Correct,
				Source:    o.Source.String(),
			})
			if err != nil {
				slog.Warn("persist practice event failed",
					"set", setID, "session", sessionID, "card", o.Card.ID, "error", err)
				return persistDoneMsg{Err: err}
			}
		}
		return persistDoneMsg{}
	}
}

func (s *PracticeScreen) persistSession(action string) tea.Cmd {
	repo := s.deps.Sessions
	if repo == nil || s.sessionID == "" {
		return nil
	}
	sum := s.ctrl.Summary()
	data := store.SessionEventData{
		SessionID: s.sessionID,
		SetID:     s.set.ID,
		Action:    action,
		Correct:   sum.Correct,
		Incorrect: sum.Incorrect,
		Duration:  sum.Duration,
	}
	// The end event's reply reaches the summary screen, not this one, so
	// failures are logged here.
	return func() tea.Msg {
		err := repo.AppendSessionEvent(context.Background(), data)
		if err != nil {
			slog.Warn("persist practice event failed",
				"set", data.SetID, "session", data.SessionID, "action", data.Action, "error", err)
		}
		return persistDoneMsg{Err: err}
	}
}

// px converts a terminal column into gesture pixels.
func (s *PracticeScreen) px(col int) float64 {
	return float64(col) * s.deps.Practice.PixelsPerCell
}

func tickCmd(id core.TimerID) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{ID: id}
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return animFrameMsg(t)
	})
}
