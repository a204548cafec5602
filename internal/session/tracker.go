// Package session tracks per-word practice time.
package session

import "time"

// Clock returns the current wall-clock time. Injected for tests.
type Clock func() time.Time

// Commit describes one stretch of practice committed by Stop.
type Commit struct {
	Index     int
	StartedAt time.Time
	EndedAt   time.Time
	DeltaMs   int64
}

// Tracker owns the current word index and the per-word duration table.
// All operations are total: misuse degrades to a no-op or a silent
// stop-and-restart, never an error.
type Tracker struct {
	clock     Clock
	durations []int64

	current   int
	running   bool
	startedAt time.Time
}

// New returns a Tracker with an all-zero duration table of size n.
func New(n int, clock Clock) *Tracker {
	return NewWithDurations(make([]int64, n), clock)
}

// NewWithDurations returns a Tracker seeded with previously accumulated
// durations. The slice is copied.
func NewWithDurations(durations []int64, clock Clock) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	d := make([]int64, len(durations))
	copy(d, durations)
	for i, v := range d {
		if v < 0 {
			d[i] = 0
		}
	}
	return &Tracker{clock: clock, durations: d}
}

// Len returns the number of tracked words.
func (t *Tracker) Len() int {
	return len(t.durations)
}

// Current returns the current word index. Meaningless for an empty tracker.
func (t *Tracker) Current() int {
	return t.current
}

// Running reports whether a timer is running.
func (t *Tracker) Running() bool {
	return t.running
}

// Start begins timing the word at index. A timer already running is
// silently stopped first so its time is never lost.
func (t *Tracker) Start(index int) {
	if index < 0 || index >= len(t.durations) {
		return
	}
	if t.running {
		t.Stop()
	}
	t.current = index
	t.running = true
	t.startedAt = t.clock()
}

// Stop commits the in-flight delta to the running word and clears the
// session. Calling Stop with no timer running is a no-op.
func (t *Tracker) Stop() (Commit, bool) {
	if !t.running {
		return Commit{}, false
	}
	now := t.clock()
	delta := now.Sub(t.startedAt).Milliseconds()
	if delta < 0 {
		delta = 0
	}
	t.durations[t.current] += delta
	t.running = false
	commit := Commit{
		Index:     t.current,
		StartedAt: t.startedAt,
		EndedAt:   now,
		DeltaMs:   delta,
	}
	t.startedAt = time.Time{}
	return commit, true
}

// Toggle pauses a running timer or resumes a stopped one for the current
// word. It returns the commit produced by a pause, if any.
func (t *Tracker) Toggle() (Commit, bool) {
	if t.running {
		return t.Stop()
	}
	t.Start(t.current)
	return Commit{}, false
}

// Reset zeroes the whole duration table. It requires explicit
// confirmation; declined, it leaves every duration and any running
// session untouched. If a timer was running it restarts from zero for
// the same word.
func (t *Tracker) Reset(confirmed bool) bool {
	if !confirmed {
		return false
	}
	wasRunning := t.running
	index := t.current
	if t.running {
		t.running = false
		t.startedAt = time.Time{}
	}
	for i := range t.durations {
		t.durations[i] = 0
	}
	if wasRunning {
		t.Start(index)
	}
	return true
}

// CurrentElapsed returns the accumulated time for a word plus the
// in-flight delta when its timer is running.
func (t *Tracker) CurrentElapsed(index int) int64 {
	if index < 0 || index >= len(t.durations) {
		return 0
	}
	elapsed := t.durations[index]
	if t.running && t.current == index {
		elapsed += t.inFlight()
	}
	return elapsed
}

// TotalElapsed returns the sum of all durations plus any in-flight delta.
func (t *Tracker) TotalElapsed() int64 {
	var total int64
	for _, d := range t.durations {
		total += d
	}
	if t.running {
		total += t.inFlight()
	}
	return total
}

// Durations returns a copy of the committed duration table. The in-flight
// delta of a running timer is not included.
func (t *Tracker) Durations() []int64 {
	out := make([]int64, len(t.durations))
	copy(out, t.durations)
	return out
}

// Next stops the current timer, advances the index with wraparound, and
// starts timing the new word. On an empty tracker it does nothing.
func (t *Tracker) Next() (Commit, bool) {
	return t.shift(1)
}

// Prev stops the current timer, retreats the index with wraparound, and
// starts timing the new word. On an empty tracker it does nothing.
func (t *Tracker) Prev() (Commit, bool) {
	return t.shift(-1)
}

func (t *Tracker) shift(step int) (Commit, bool) {
	n := len(t.durations)
	if n == 0 {
		return Commit{}, false
	}
	// The stop must fully commit before the index changes.
	commit, committed := t.Stop()
	t.current = (t.current + step + n) % n
	t.Start(t.current)
	return commit, committed
}

// InsertAt grows the duration table with a zero entry at index,
// mirroring a word inserted into the deck.
func (t *Tracker) InsertAt(index int) {
	if index < 0 || index > len(t.durations) {
		return
	}
	t.durations = append(t.durations, 0)
	copy(t.durations[index+1:], t.durations[index:])
	t.durations[index] = 0
	if t.current >= index && len(t.durations) > 1 {
		t.current++
	}
}

// RemoveAt drops the duration entry at index, mirroring a word deleted
// from the deck. A timer running for the removed word is discarded
// without committing.
func (t *Tracker) RemoveAt(index int) {
	if index < 0 || index >= len(t.durations) {
		return
	}
	if t.running && t.current == index {
		t.running = false
		t.startedAt = time.Time{}
	}
	t.durations = append(t.durations[:index], t.durations[index+1:]...)
	if t.current > index {
		t.current--
	}
	if t.current >= len(t.durations) {
		t.current = 0
	}
}

func (t *Tracker) inFlight() int64 {
	delta := t.clock().Sub(t.startedAt).Milliseconds()
	if delta < 0 {
		return 0
	}
	return delta
}
