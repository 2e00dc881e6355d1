package practice

import (
	"math"
	"time"
)

// Decision is the classifier's verdict for a released gesture.
type Decision int

const (
	DecisionNone        Decision = iota // no gesture in progress
	DecisionFlip                        // tap: toggle the displayed face
	DecisionCommitLeft                  // swipe left: wrong
	DecisionCommitRight                 // swipe right: correct
	DecisionCancel                      // not far or fast enough: back to neutral
)

func (d Decision) String() string {
	switch d {
	case DecisionFlip:
		return "flip"
	case DecisionCommitLeft:
		return "commit-left"
	case DecisionCommitRight:
		return "commit-right"
	case DecisionCancel:
		return "cancel"
	default:
		return "none"
	}
}

// IsCommit reports whether d decides the card.
func (d Decision) IsCommit() bool {
	return d == DecisionCommitLeft || d == DecisionCommitRight
}

// GestureState is the classifier's per-card state.
type GestureState int

const (
	GestureIdle GestureState = iota
	GestureDragging
	GestureAnimating
	GestureSettled
)

func (s GestureState) String() string {
	switch s {
	case GestureDragging:
		return "dragging"
	case GestureAnimating:
		return "animating"
	case GestureSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Thresholds tune gesture classification. Distances are in pixels and
// velocities in pixels per millisecond.
type Thresholds struct {
	Distance          float64
	Velocity          float64
	TapSlop           float64
	FlyOut            float64
	AnimationDuration time.Duration
}

// DefaultThresholds returns the stock gesture tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Distance:          100,
		Velocity:          0.3,
		TapSlop:           10,
		FlyOut:            500,
		AnimationDuration: 300 * time.Millisecond,
	}
}

// DragState is the transient pointer state of the active card.
// IsDragging and IsSwiping are never both true.
type DragState struct {
	OffsetX    float64
	StartX     float64
	Velocity   float64
	IsDragging bool
	IsSwiping  bool
}

// Classify maps a released drag to a decision. Distance and velocity are
// independent triggers; either one is enough to commit.
func Classify(offsetX, velocity float64, th Thresholds) Decision {
	switch {
	case offsetX > th.Distance || velocity > th.Velocity:
		return DecisionCommitRight
	case offsetX < -th.Distance || velocity < -th.Velocity:
		return DecisionCommitLeft
	case math.Abs(offsetX) < th.TapSlop:
		return DecisionFlip
	default:
		return DecisionCancel
	}
}

// Opacity is the card's feedback opacity for a drag offset: fully opaque up
// to the distance threshold, fading linearly to zero one threshold later.
func Opacity(offsetX, distance float64) float64 {
	a := math.Abs(offsetX)
	if distance <= 0 {
		if a == 0 {
			return 1
		}
		return 0
	}
	switch {
	case a <= distance:
		return 1
	case a >= 2*distance:
		return 0
	default:
		return 1 - (a-distance)/distance
	}
}

// Classifier turns pointer events for one card into a Decision.
type Classifier struct {
	th    Thresholds
	state GestureState
	drag  DragState

	lastX  float64
	lastAt time.Time

	animFrom  float64
	animTo    float64
	animStart time.Time
}

// NewClassifier creates an idle classifier.
func NewClassifier(th Thresholds) *Classifier {
	return &Classifier{th: th}
}

// State returns the gesture state.
func (c *Classifier) State() GestureState { return c.state }

// Drag returns a copy of the drag state.
func (c *Classifier) Drag() DragState { return c.drag }

// Thresholds returns the classifier's tuning.
func (c *Classifier) Thresholds() Thresholds { return c.th }

// Down starts a drag at x. It returns false and does nothing while another
// drag or a commit animation is in progress.
func (c *Classifier) Down(x float64, at time.Time) bool {
	if c.drag.IsDragging || c.drag.IsSwiping {
		return false
	}
	c.state = GestureDragging
	c.drag = DragState{StartX: x, IsDragging: true}
	c.lastX = x
	c.lastAt = at
	return true
}

// Move updates the drag offset and instantaneous velocity. Ignored unless
// dragging.
func (c *Classifier) Move(x float64, at time.Time) {
	if !c.drag.IsDragging {
		return
	}
	elapsed := float64(at.Sub(c.lastAt)) / float64(time.Millisecond)
	if elapsed < 1 {
		elapsed = 1
	}
	c.drag.Velocity = (x - c.lastX) / elapsed
	c.drag.OffsetX = x - c.drag.StartX
	c.lastX = x
	c.lastAt = at
}

// Up ends the drag at x and classifies it. A release with no drag in
// progress returns DecisionNone.
func (c *Classifier) Up(x float64, at time.Time) Decision {
	if !c.drag.IsDragging {
		return DecisionNone
	}
	// A release at the last seen position keeps the last move's velocity.
	if x != c.lastX {
		c.Move(x, at)
	}

	d := Classify(c.drag.OffsetX, c.drag.Velocity, c.th)
	switch d {
	case DecisionCommitRight:
		c.fling(c.th.FlyOut, at)
	case DecisionCommitLeft:
		c.fling(-c.th.FlyOut, at)
	default:
		c.drag = DragState{}
		c.state = GestureSettled
	}
	return d
}

// Fling starts a commit animation without a drag, as a keyboard or button
// answer would. It returns false if a gesture is already in progress.
func (c *Classifier) Fling(right bool, at time.Time) bool {
	if c.drag.IsDragging || c.drag.IsSwiping {
		return false
	}
	to := -c.th.FlyOut
	if right {
		to = c.th.FlyOut
	}
	c.fling(to, at)
	return true
}

func (c *Classifier) fling(to float64, at time.Time) {
	c.state = GestureAnimating
	c.drag.IsDragging = false
	c.drag.IsSwiping = true
	c.animFrom = c.drag.OffsetX
	c.animTo = to
	c.animStart = at
}

// Animate advances the commit animation to now and returns the card offset.
// done is true once the card has fully left, or when nothing is animating.
func (c *Classifier) Animate(now time.Time) (offset float64, done bool) {
	if c.state != GestureAnimating {
		return c.drag.OffsetX, true
	}

	p := 1.0
	if c.th.AnimationDuration > 0 {
		p = float64(now.Sub(c.animStart)) / float64(c.th.AnimationDuration)
	}
	p = math.Max(0, math.Min(1, p))

	eased := 1 - math.Pow(1-p, 3)
	c.drag.OffsetX = c.animFrom + (c.animTo-c.animFrom)*eased
	return c.drag.OffsetX, p >= 1
}

// Finish resets to neutral after a commit animation, ready for the next card.
func (c *Classifier) Finish() {
	c.Reset()
}

// Reset drops any gesture in progress.
func (c *Classifier) Reset() {
	c.drag = DragState{}
	c.state = GestureIdle
	c.lastX = 0
	c.lastAt = time.Time{}
}
