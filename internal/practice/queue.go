package practice

import "math/rand/v2"

// Queue is the ordered set of cards still to be answered. It remembers the
// order it was created with so a session can be replayed exactly.
type Queue struct {
	snapshot []Card
	queue    []Card
}

// NewQueue builds a queue over cards. When shuffle is set the snapshot is a
// uniform random permutation drawn from rng, or from the global source when
// rng is nil. The input slice is never modified.
func NewQueue(cards []Card, shuffle bool, rng *rand.Rand) *Queue {
	snap := make([]Card, len(cards))
	copy(snap, cards)

	if shuffle {
		swap := func(i, j int) { snap[i], snap[j] = snap[j], snap[i] }
		if rng != nil {
			rng.Shuffle(len(snap), swap)
		} else {
			rand.Shuffle(len(snap), swap)
		}
	}

	return &Queue{snapshot: snap, queue: snap}
}

// Current returns the front card, or false if the queue is empty.
func (q *Queue) Current() (Card, bool) {
	if len(q.queue) == 0 {
		return Card{}, false
	}
	return q.queue[0], true
}

// Advance drops the front card. No-op on an empty queue.
func (q *Queue) Advance() {
	if len(q.queue) == 0 {
		return
	}
	q.queue = q.queue[1:]
}

// Restart puts every card back in snapshot order. The order is not
// reshuffled.
func (q *Queue) Restart() {
	q.queue = q.snapshot
}

// Len returns the number of cards left.
func (q *Queue) Len() int {
	return len(q.queue)
}

// Total returns the number of cards the session started with.
func (q *Queue) Total() int {
	return len(q.snapshot)
}

// Empty reports whether every card has been answered.
func (q *Queue) Empty() bool {
	return len(q.queue) == 0
}

// ProgressFraction returns the answered share of the snapshot in [0, 1].
func (q *Queue) ProgressFraction() float64 {
	if len(q.snapshot) == 0 {
		return 0
	}
	return float64(len(q.snapshot)-len(q.queue)) / float64(len(q.snapshot))
}

// Snapshot returns a copy of the session's original card order.
func (q *Queue) Snapshot() []Card {
	out := make([]Card, len(q.snapshot))
	copy(out, q.snapshot)
	return out
}

// Remaining returns a copy of the cards still queued, front first.
func (q *Queue) Remaining() []Card {
	out := make([]Card, len(q.queue))
	copy(out, q.queue)
	return out
}
