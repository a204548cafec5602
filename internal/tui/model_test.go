package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alice-yql/bearwithme/internal/deck"
	"github.com/alice-yql/bearwithme/internal/model"
	"github.com/alice-yql/bearwithme/internal/phoneme"
	"github.com/alice-yql/bearwithme/internal/session"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestModel(t *testing.T) (*Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := deck.New(deck.Seed())
	tracker := session.New(d.Len(), clock.Now)
	cfg := model.Config{ShowBreakdown: true}
	return NewModel(cfg, nil, d, tracker), clock
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestStartsTimingFirstWord(t *testing.T) {
	m, clock := newTestModel(t)
	if !m.tracker.Running() || m.tracker.Current() != 0 {
		t.Fatalf("expected timer running for word 0")
	}
	clock.advance(500 * time.Millisecond)
	if got := m.tracker.CurrentElapsed(0); got != 500 {
		t.Fatalf("expected 500ms elapsed, got %d", got)
	}
}

func TestNavigationCommitsBeforeIndexChange(t *testing.T) {
	m, clock := newTestModel(t)
	clock.advance(2500 * time.Millisecond)
	m.Update(keyMsg("right"))
	if m.tracker.Current() != 1 {
		t.Fatalf("expected index 1, got %d", m.tracker.Current())
	}
	if got := m.tracker.CurrentElapsed(0); got != 2500 {
		t.Fatalf("expected committed 2500ms for word 0, got %d", got)
	}
	if got := m.tracker.CurrentElapsed(1); got != 0 {
		t.Fatalf("expected fresh timer for word 1, got %d", got)
	}
	if m.deck.At(0).PracticeCount != 1 {
		t.Fatalf("expected practice count bump for word 0")
	}
	if m.deck.At(0).Status != model.StatusInProgress {
		t.Fatalf("expected word 0 in-progress, got %q", m.deck.At(0).Status)
	}

	clock.advance(500 * time.Millisecond)
	m.Update(keyMsg("left"))
	if m.tracker.Current() != 0 {
		t.Fatalf("expected wraparound back to 0, got %d", m.tracker.Current())
	}
	if got := m.tracker.CurrentElapsed(1); got != 500 {
		t.Fatalf("expected 500ms for word 1, got %d", got)
	}
}

func TestNavigationWrapsAround(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(keyMsg("left"))
	if m.tracker.Current() != 3 {
		t.Fatalf("expected wrap to last word, got %d", m.tracker.Current())
	}
}

func TestToggleAffordance(t *testing.T) {
	m, clock := newTestModel(t)
	if !strings.Contains(m.renderFooter(), "space pause") {
		t.Fatalf("running footer must offer pause: %s", m.renderFooter())
	}
	clock.advance(400 * time.Millisecond)
	m.Update(keyMsg(" "))
	if m.tracker.Running() {
		t.Fatalf("expected paused timer")
	}
	if !strings.Contains(m.renderFooter(), "space resume") {
		t.Fatalf("paused footer must offer resume: %s", m.renderFooter())
	}
	clock.advance(time.Hour)
	m.Update(keyMsg(" "))
	clock.advance(100 * time.Millisecond)
	if got := m.tracker.CurrentElapsed(0); got != 500 {
		t.Fatalf("paused time must not count, got %dms", got)
	}
}

func TestResetDeclinedLeavesStateUntouched(t *testing.T) {
	m, clock := newTestModel(t)
	clock.advance(2 * time.Second)
	m.Update(keyMsg("r"))
	if !m.confirmReset {
		t.Fatalf("expected confirm prompt")
	}
	if !strings.Contains(m.renderContent(), "Reset all practice time?") {
		t.Fatalf("confirm prompt not rendered")
	}
	m.Update(keyMsg("n"))
	if m.confirmReset {
		t.Fatalf("expected prompt dismissed")
	}
	if got := m.tracker.CurrentElapsed(0); got != 2000 {
		t.Fatalf("declined reset must keep elapsed time, got %dms", got)
	}
	if !m.tracker.Running() {
		t.Fatalf("declined reset must keep the timer running")
	}
}

func TestResetConfirmedZeroesAndRestarts(t *testing.T) {
	m, clock := newTestModel(t)
	clock.advance(2 * time.Second)
	m.Update(keyMsg("right"))
	clock.advance(time.Second)
	m.Update(keyMsg("r"))
	m.Update(keyMsg("y"))
	if got := m.tracker.TotalElapsed(); got != 0 {
		t.Fatalf("expected zeroed durations, got %dms", got)
	}
	if !m.tracker.Running() || m.tracker.Current() != 1 {
		t.Fatalf("expected restart for the same word")
	}
}

func TestTickStopsWhenPaused(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(keyMsg(" "))
	_, cmd := m.Update(tickMsg(m.tickSeq))
	if cmd != nil {
		t.Fatalf("tick must not reschedule while paused")
	}
	m.Update(keyMsg(" "))
	_, cmd = m.Update(tickMsg(m.tickSeq))
	if cmd == nil {
		t.Fatalf("tick must reschedule while running")
	}
}

func TestNavigationSupersedesTickChain(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.tickSeq
	if _, cmd := m.Update(keyMsg("right")); cmd == nil {
		t.Fatalf("navigation must start a tick chain")
	}
	if _, cmd := m.Update(tickMsg(before)); cmd != nil {
		t.Fatalf("a superseded chain's tick must not reschedule")
	}
	if _, cmd := m.Update(tickMsg(m.tickSeq)); cmd == nil {
		t.Fatalf("the live chain's tick must reschedule")
	}
}

func TestTickChainsDoNotAccumulate(t *testing.T) {
	m, _ := newTestModel(t)
	pending := []int{m.tickSeq}
	for i := 0; i < 5; i++ {
		if _, cmd := m.Update(keyMsg("right")); cmd != nil {
			pending = append(pending, m.tickSeq)
		}
	}
	live := 0
	for _, seq := range pending {
		if _, cmd := m.Update(tickMsg(seq)); cmd != nil {
			live++
		}
	}
	if live != 1 {
		t.Fatalf("expected exactly one live tick chain, got %d", live)
	}
}

func TestViewShowsWordAndTimers(t *testing.T) {
	m, clock := newTestModel(t)
	clock.advance(45230 * time.Millisecond)
	out := m.renderContent()
	for _, want := range []string{"Hello", "45.2s", "1/4", "practice the word"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
	// Breakdown "HH AH L OW" renders as readable parts.
	for _, part := range []string{"h", "uh", "l", "oh"} {
		if !strings.Contains(out, part) {
			t.Fatalf("breakdown part %q missing from view:\n%s", part, out)
		}
	}
}

func TestPracticeHintFollowsState(t *testing.T) {
	parts := []string{"h", "uh", "l", "oh"}
	word := model.Word{Text: "Hello"}

	if got := practiceHint(word, parts, true); !strings.Contains(got, "practice the word Hello") {
		t.Fatalf("unpracticed word must get the intro prompt, got %q", got)
	}
	word.PracticeCount = 1
	if got := practiceHint(word, parts, true); !strings.Contains(got, "whole word: Hello") {
		t.Fatalf("running word must get the whole-word prompt, got %q", got)
	}
	if got := practiceHint(word, parts, false); !strings.Contains(got, "Your turn: h uh l oh") {
		t.Fatalf("paused word must get the repeat prompt, got %q", got)
	}
	if got := practiceHint(word, []string{"buh"}, false); !strings.Contains(got, "practice the sound buh") {
		t.Fatalf("single sound must get the sound prompt, got %q", got)
	}
	word.Status = model.StatusMastered
	if got := practiceHint(word, parts, true); got != phoneme.PromptAllCorrect {
		t.Fatalf("mastered word must get the praise line, got %q", got)
	}
}

func TestEmptyDeckDisablesPractice(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := deck.New(nil)
	tracker := session.New(0, clock.Now)
	m := NewModel(model.Config{}, nil, d, tracker)
	if m.tracker.Running() {
		t.Fatalf("no timer must run for an empty deck")
	}
	if !strings.Contains(m.renderContent(), "No words yet") {
		t.Fatalf("expected empty state message")
	}
	m.Update(keyMsg("right"))
	if m.tracker.Running() {
		t.Fatalf("navigation must stay disabled for an empty deck")
	}
	m.Update(keyMsg("r"))
	if m.confirmReset {
		t.Fatalf("reset prompt must not open for an empty deck")
	}
}
