package practice

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Phase is the session lifecycle phase.
type Phase int

const (
	PhaseSetup    Phase = iota // collecting configuration
	PhaseActive                // answering cards
	PhaseFinished              // queue exhausted, summary shown
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "setup"
	}
}

// Source identifies what decided a card.
type Source int

const (
	SourceSwipe Source = iota
	SourceKeyboard
	SourceButton
	SourceTimer
)

func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceButton:
		return "button"
	case SourceTimer:
		return "timer"
	default:
		return "swipe"
	}
}

// KeyAction is a keyboard input understood by the controller.
type KeyAction int

const (
	KeyLeft  KeyAction = iota // same as swipe left
	KeyRight                  // same as swipe right
	KeySpace                  // same as tap
)

// Outcome describes one committed card.
type Outcome struct {
	Card    Card
	Correct bool
	Source  Source
	At      time.Time
}

// Hooks are the session's outside collaborators. Both are optional and are
// called synchronously; implementations must not block.
type Hooks struct {
	// OnOutcome is called after every commit, e.g. to play a sound or
	// persist the answer. A panic in the hook is recovered.
	OnOutcome func(Outcome)

	// OnExit hands control back to navigation.
	OnExit func()
}

// Options configures a Controller.
type Options struct {
	Thresholds    Thresholds
	TimerDuration time.Duration
	Rand          *rand.Rand
	Hooks         Hooks
	Now           func() time.Time
}

// DefaultOptions returns the stock thresholds and a 15 second countdown.
func DefaultOptions() Options {
	return Options{
		Thresholds:    DefaultThresholds(),
		TimerDuration: DefaultTimerDuration,
		Now:           time.Now,
	}
}

// Setup is the learner's choice made before the first card.
type Setup struct {
	FaceFirst Face
	Shuffle   bool
}

// Summary is what the finished screen shows.
type Summary struct {
	Correct   int
	Incorrect int
	Total     int
	Percent   float64
	Duration  time.Duration
}

type pendingCommit struct {
	correct bool
	source  Source
}

// Controller runs one practice session. Swipes, keys, buttons and timer
// expiry all end a card through the same commit path, and a card accepts at
// most one commit.
type Controller struct {
	cards []Card
	opts  Options

	phase   Phase
	setup   Setup
	queue   *Queue
	scorer  Scorer
	gesture *Classifier
	timer   *Timer
	face    Face

	// locked is set the instant a card is decided and cleared when the
	// next card is shown.
	locked  bool
	pending *pendingCommit

	startedAt  time.Time
	finishedAt time.Time
}

// NewController creates a controller in PhaseSetup over cards. Zero
// thresholds fall back to DefaultThresholds.
func NewController(cards []Card, opts Options) *Controller {
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	snap := make([]Card, len(cards))
	copy(snap, cards)

	return &Controller{
		cards:   snap,
		opts:    opts,
		phase:   PhaseSetup,
		queue:   NewQueue(nil, false, nil),
		gesture: NewClassifier(opts.Thresholds),
		timer:   NewTimer(opts.TimerDuration),
	}
}

// Configure applies the learner's setup and starts the session. With no
// cards the session goes straight to PhaseFinished and ErrNoCards is
// returned.
func (c *Controller) Configure(s Setup) error {
	if c.phase != PhaseSetup {
		return ErrNotInSetup
	}
	c.setup = s
	c.queue = NewQueue(c.cards, s.Shuffle, c.opts.Rand)
	c.scorer.Reset()
	return c.begin()
}

// Restart replays the finished session in its original order with zeroed
// counters. Setup is not shown again.
func (c *Controller) Restart() error {
	if c.phase != PhaseFinished {
		return ErrNotFinished
	}
	c.queue.Restart()
	c.scorer.Reset()
	return c.begin()
}

func (c *Controller) begin() error {
	c.startedAt = c.opts.Now()
	c.finishedAt = time.Time{}
	if c.queue.Empty() {
		c.finish()
		return ErrNoCards
	}
	c.phase = PhaseActive
	c.showNext()
	return nil
}

// Exit hands control to navigation.
func (c *Controller) Exit() {
	c.timer.Stop()
	if c.opts.Hooks.OnExit != nil {
		c.opts.Hooks.OnExit()
	}
}

// CommitOutcome decides the current card immediately. It returns false if
// the session is not active or the card was already decided.
func (c *Controller) CommitOutcome(correct bool, src Source) bool {
	if !c.acceptingInput() {
		return false
	}
	return c.commit(correct, src)
}

// Swipe decides the current card with a fly-out animation, the keyboard
// and button equivalent of a drag past the threshold. The outcome is
// applied when AnimationFrame reports the animation done.
func (c *Controller) Swipe(correct bool, src Source) bool {
	if !c.acceptingInput() {
		return false
	}
	if !c.gesture.Fling(correct, c.opts.Now()) {
		return false
	}
	c.lock(correct, src)
	return true
}

// Flip toggles the displayed face of the current card.
func (c *Controller) Flip() bool {
	if !c.acceptingInput() {
		return false
	}
	c.face = c.face.Other()
	return true
}

// HandleKey applies a keyboard action with the same effect as the matching
// gesture.
func (c *Controller) HandleKey(k KeyAction) bool {
	switch k {
	case KeyLeft:
		return c.Swipe(false, SourceKeyboard)
	case KeyRight:
		return c.Swipe(true, SourceKeyboard)
	case KeySpace:
		return c.Flip()
	}
	return false
}

// PointerDown starts a drag on the current card.
func (c *Controller) PointerDown(x float64, at time.Time) bool {
	if !c.acceptingInput() {
		return false
	}
	return c.gesture.Down(x, at)
}

// PointerMove feeds a drag position. Ignored without a prior PointerDown.
func (c *Controller) PointerMove(x float64, at time.Time) {
	if c.phase != PhaseActive {
		return
	}
	c.gesture.Move(x, at)
}

// PointerUp ends a drag. A commit decision locks the card at once; the
// outcome itself lands when the fly-out animation completes.
func (c *Controller) PointerUp(x float64, at time.Time) Decision {
	if c.phase != PhaseActive {
		return DecisionNone
	}
	d := c.gesture.Up(x, at)
	switch d {
	case DecisionFlip:
		c.face = c.face.Other()
	case DecisionCommitRight:
		c.lock(true, SourceSwipe)
	case DecisionCommitLeft:
		c.lock(false, SourceSwipe)
	}
	return d
}

// AnimationFrame advances a running fly-out animation and applies the
// pending outcome once it completes. It returns the card offset and whether
// more frames are needed.
func (c *Controller) AnimationFrame(now time.Time) (offset float64, animating bool) {
	if c.pending == nil {
		return c.gesture.Drag().OffsetX, false
	}
	offset, done := c.gesture.Animate(now)
	if !done {
		return offset, true
	}
	p := c.pending
	c.pending = nil
	c.gesture.Finish()
	c.commit(p.correct, p.source)
	return 0, false
}

// StartTimer returns the current countdown run for the host to tick.
func (c *Controller) StartTimer() TimerID {
	return c.timer.ID()
}

// TimerTick forwards a one-second tick. Expiry commits the card as wrong
// through the same path as a left swipe.
func (c *Controller) TimerTick(id TimerID) TickResult {
	r := c.timer.Tick(id)
	if r.Expired {
		c.CommitOutcome(false, SourceTimer)
	}
	return r
}

func (c *Controller) acceptingInput() bool {
	return c.phase == PhaseActive && !c.locked
}

func (c *Controller) lock(correct bool, src Source) {
	c.locked = true
	c.pending = &pendingCommit{correct: correct, source: src}
	c.timer.Stop()
}

func (c *Controller) commit(correct bool, src Source) bool {
	card, ok := c.queue.Current()
	if !ok || c.phase != PhaseActive {
		return false
	}
	c.locked = true
	c.timer.Stop()

	c.scorer.RecordOutcome(correct)
	c.queue.Advance()

	c.notify(Outcome{Card: card, Correct: correct, Source: src, At: c.opts.Now()})

	if c.queue.Empty() {
		c.finish()
		return true
	}
	c.showNext()
	return true
}

// notify runs the outcome hook. A panicking hook is logged and the session
// carries on.
func (c *Controller) notify(o Outcome) {
	if c.opts.Hooks.OnOutcome == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("outcome hook panicked", "card", o.Card.ID, "panic", r)
		}
	}()
	c.opts.Hooks.OnOutcome(o)
}

func (c *Controller) showNext() {
	c.gesture.Reset()
	c.pending = nil
	c.face = c.setup.FaceFirst
	c.locked = false
	c.timer.Reset()
}

func (c *Controller) finish() {
	c.phase = PhaseFinished
	c.timer.Stop()
	c.gesture.Reset()
	c.pending = nil
	c.locked = true
	c.finishedAt = c.opts.Now()
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Current returns the card being shown.
func (c *Controller) Current() (Card, bool) {
	if c.phase != PhaseActive {
		return Card{}, false
	}
	return c.queue.Current()
}

// Face returns the face currently displayed.
func (c *Controller) Face() Face { return c.face }

// Setup returns the configuration the session runs with.
func (c *Controller) Setup() Setup { return c.setup }

// Locked reports whether the current card has already been decided.
func (c *Controller) Locked() bool { return c.locked }

// Animating reports whether a fly-out animation is pending.
func (c *Controller) Animating() bool { return c.pending != nil }

// Drag returns the current drag state.
func (c *Controller) Drag() DragState { return c.gesture.Drag() }

// GestureState returns the classifier state.
func (c *Controller) GestureState() GestureState { return c.gesture.State() }

// Thresholds returns the gesture tuning.
func (c *Controller) Thresholds() Thresholds { return c.opts.Thresholds }

// TimerID returns the countdown run that should be ticking.
func (c *Controller) TimerID() TimerID { return c.timer.ID() }

// TimerRunning reports whether the countdown is running.
func (c *Controller) TimerRunning() bool { return c.timer.Running() }

// Remaining returns the time left on the current card.
func (c *Controller) Remaining() time.Duration { return c.timer.Remaining() }

// Stats returns the session counters.
func (c *Controller) Stats() Stats { return c.scorer.Stats() }

// ScorePercent returns the share of correct answers in [0, 100].
func (c *Controller) ScorePercent() float64 { return c.scorer.ScorePercent() }

// Progress returns the answered share of the session in [0, 1].
func (c *Controller) Progress() float64 { return c.queue.ProgressFraction() }

// CardsLeft returns the number of cards still queued.
func (c *Controller) CardsLeft() int { return c.queue.Len() }

// CardsTotal returns the number of cards the session was created with.
func (c *Controller) CardsTotal() int { return len(c.cards) }

// Snapshot returns the session's card order.
func (c *Controller) Snapshot() []Card { return c.queue.Snapshot() }

// Summary returns the counters and elapsed time.
func (c *Controller) Summary() Summary {
	end := c.finishedAt
	if end.IsZero() {
		end = c.opts.Now()
	}
	var d time.Duration
	if !c.startedAt.IsZero() {
		d = end.Sub(c.startedAt)
	}
	st := c.scorer.Stats()
	return Summary{
		Correct:   st.Correct,
		Incorrect: st.Incorrect,
		Total:     st.Total(),
		Percent:   c.scorer.ScorePercent(),
		Duration:  d,
	}
}
