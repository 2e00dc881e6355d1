package practice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name     string
		offset   float64
		velocity float64
		want     Decision
	}{
		{"far right", 150, 0, DecisionCommitRight},
		{"far left", -150, 0, DecisionCommitLeft},
		{"tap", 5, 0, DecisionFlip},
		{"short drag", 50, 0, DecisionCancel},
		{"fast flick right", 20, 0.5, DecisionCommitRight},
		{"fast flick left", -20, -0.5, DecisionCommitLeft},
		{"exactly at distance", 100, 0, DecisionCancel},
		{"exactly at velocity", 0, 0.3, DecisionFlip},
		{"tap slop edge", 10, 0, DecisionCancel},
		{"negative tap", -9, 0, DecisionFlip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.offset, tt.velocity, th))
		})
	}
}

func TestOpacity(t *testing.T) {
	assert.Equal(t, 1.0, Opacity(0, 100))
	assert.Equal(t, 1.0, Opacity(-100, 100))
	assert.InDelta(t, 0.5, Opacity(150, 100), 1e-9)
	assert.InDelta(t, 0.25, Opacity(-175, 100), 1e-9)
	assert.Equal(t, 0.0, Opacity(200, 100))
	assert.Equal(t, 0.0, Opacity(900, 100))
}

func TestClassifier_SlowDragRight(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	require.True(t, c.Down(10, ms(0)))
	assert.Equal(t, GestureDragging, c.State())

	c.Move(160, ms(1000))
	d := c.Up(160, ms(1000))

	assert.Equal(t, DecisionCommitRight, d)
	assert.Equal(t, GestureAnimating, c.State())
	assert.True(t, c.Drag().IsSwiping)
	assert.False(t, c.Drag().IsDragging)
}

func TestClassifier_FlickUsesVelocity(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	c.Down(100, ms(0))
	c.Move(80, ms(10))

	assert.Equal(t, DecisionCommitLeft, c.Up(80, ms(10)))
}

func TestClassifier_TapFlipsAndSettles(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	c.Down(40, ms(0))

	assert.Equal(t, DecisionFlip, c.Up(45, ms(500)))
	assert.Equal(t, GestureSettled, c.State())
	assert.Equal(t, DragState{}, c.Drag())
}

func TestClassifier_ShortDragCancels(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	c.Down(0, ms(0))
	c.Move(50, ms(1000))

	assert.Equal(t, DecisionCancel, c.Up(50, ms(1000)))
	assert.Equal(t, GestureSettled, c.State())
	assert.Equal(t, DragState{}, c.Drag())
}

func TestClassifier_VelocityGuardsZeroElapsed(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	c.Down(0, ms(0))
	c.Move(2, ms(0))

	assert.Equal(t, 2.0, c.Drag().Velocity, "elapsed clamps to 1ms")
}

func TestClassifier_IgnoresEventsWithoutDown(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	c.Move(300, ms(10))

	assert.Equal(t, DragState{}, c.Drag())
	assert.Equal(t, DecisionNone, c.Up(300, ms(20)))
	assert.Equal(t, GestureIdle, c.State())
}

func TestClassifier_IgnoresSecondDown(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	require.True(t, c.Down(0, ms(0)))
	assert.False(t, c.Down(50, ms(5)))
	assert.Equal(t, 0.0, c.Drag().StartX)

	c.Move(200, ms(1000))
	c.Up(200, ms(1000))
	assert.False(t, c.Down(0, ms(1100)), "no new drag while the card flies out")
}

func TestClassifier_Animation(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	c.Down(0, ms(0))
	c.Move(150, ms(1000))
	c.Up(150, ms(1000))

	off, done := c.Animate(ms(1150))
	assert.False(t, done)
	assert.Greater(t, off, 150.0)
	assert.Less(t, off, 500.0)

	off, done = c.Animate(ms(1300))
	assert.True(t, done)
	assert.Equal(t, 500.0, off)

	c.Finish()
	assert.Equal(t, GestureIdle, c.State())
	assert.Equal(t, DragState{}, c.Drag())
	assert.True(t, c.Down(0, ms(1400)))
}

func TestClassifier_Fling(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	require.True(t, c.Fling(false, ms(0)))
	assert.Equal(t, GestureAnimating, c.State())

	off, done := c.Animate(ms(300))
	assert.True(t, done)
	assert.Equal(t, -500.0, off)
	assert.False(t, c.Fling(true, ms(310)))
}

func TestClassifier_NeverDraggingAndSwiping(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	check := func() {
		d := c.Drag()
		assert.False(t, d.IsDragging && d.IsSwiping)
	}

	c.Down(0, ms(0))
	check()
	c.Move(-300, ms(100))
	check()
	c.Up(-300, ms(100))
	check()
	c.Animate(ms(200))
	check()
	c.Finish()
	check()
}
