package libraryui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alice-yql/bearwithme/internal/deck"
	"github.com/alice-yql/bearwithme/internal/model"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(nil, deck.New(deck.Seed()))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewListsSeedWords(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Hello", "Teddy", "Apple", "Ball", "4 words"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestFilterNarrowsRows(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("/"))
	if !m.filterMode {
		t.Fatalf("expected filter mode after /")
	}
	m.Update(keyRunes("te"))
	if len(m.visible) != 1 || m.visible[0].Text != "Teddy" {
		t.Fatalf("filter te: visible = %v", m.visible)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("enter should leave filter mode")
	}
	if m.filterQuery != "te" {
		t.Fatalf("filter query = %q, want te", m.filterQuery)
	}
	m.Update(keyRunes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterQuery != "" || len(m.visible) != 4 {
		t.Fatalf("esc should clear the filter, got %q with %d rows", m.filterQuery, len(m.visible))
	}
}

func TestAddWord(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("a"))
	if !m.addMode {
		t.Fatalf("expected add mode after a")
	}
	m.Update(keyRunes("Banana"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(keyRunes("B AH N AE N AH"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.addMode {
		t.Fatalf("enter should close the add modal")
	}
	if m.deck.Len() != 5 {
		t.Fatalf("deck length = %d, want 5", m.deck.Len())
	}
	index := -1
	for i, w := range m.deck.Words() {
		if w.Text == "Banana" {
			index = i
		}
	}
	if index < 0 {
		t.Fatalf("Banana not added")
	}
	added := m.deck.At(index)
	if added.Breakdown != "B AH N AE N AH" {
		t.Fatalf("breakdown = %q", added.Breakdown)
	}
	if ms, ok := m.durations[added.ID]; !ok || ms != 0 {
		t.Fatalf("new word should start with a zero duration, got %d %v", ms, ok)
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("a"))
	m.Update(keyRunes("hello"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.addMode {
		t.Fatalf("duplicate add should keep the modal open")
	}
	if m.addError == "" {
		t.Fatalf("expected an add error")
	}
	if m.deck.Len() != 4 {
		t.Fatalf("deck length = %d, want 4", m.deck.Len())
	}
}

func TestDeleteConfirmed(t *testing.T) {
	m := newTestModel(t)
	first := m.deck.At(0)
	m.Update(keyRunes("d"))
	if !m.confirmDelete || m.deleteID != first.ID {
		t.Fatalf("expected delete confirmation for %s", first.Text)
	}
	m.Update(keyRunes("y"))
	if m.deck.Len() != 3 {
		t.Fatalf("deck length = %d, want 3", m.deck.Len())
	}
	if m.deck.IndexOf(first.ID) >= 0 {
		t.Fatalf("%s should be gone", first.Text)
	}
	if _, ok := m.durations[first.ID]; ok {
		t.Fatalf("duration entry should be dropped with the word")
	}
}

func TestDeleteDeclined(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("d"))
	m.Update(keyRunes("n"))
	if m.confirmDelete {
		t.Fatalf("n should dismiss the confirmation")
	}
	if m.deck.Len() != 4 {
		t.Fatalf("deck length = %d, want 4", m.deck.Len())
	}
}

func TestStatusCycle(t *testing.T) {
	m := newTestModel(t)
	first := m.deck.At(0)
	if first.Status != model.StatusNotStarted {
		t.Fatalf("seed status = %s", first.Status)
	}
	m.Update(keyRunes("s"))
	if got := m.deck.At(0).Status; got != model.StatusInProgress {
		t.Fatalf("status = %s, want %s", got, model.StatusInProgress)
	}
	m.Update(keyRunes("s"))
	if got := m.deck.At(0).Status; got != model.StatusStruggling {
		t.Fatalf("status = %s, want %s", got, model.StatusStruggling)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("q should quit")
	}
}
