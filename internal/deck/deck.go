// Package deck holds the ordered set of practice words.
package deck

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alice-yql/bearwithme/internal/model"
)

// Deck is an ordered collection of words. Every word carries a stable id
// generated at creation; durations and statuses are keyed by that id, so
// inserting or removing words cannot desync them.
type Deck struct {
	words []model.Word
}

// New builds a deck from existing words, preserving order.
func New(words []model.Word) *Deck {
	d := &Deck{words: make([]model.Word, len(words))}
	copy(d.words, words)
	for i := range d.words {
		if d.words[i].Status == "" {
			d.words[i].Status = model.StatusNotStarted
		}
	}
	return d
}

// Seed returns the starter words used when the store is empty.
func Seed() []model.Word {
	seeds := []struct {
		text      string
		breakdown string
	}{
		{"Hello", "HH AH L OW"},
		{"Teddy", "T EH D IY"},
		{"Apple", "AE P AH L"},
		{"Ball", "B AO L"},
	}
	words := make([]model.Word, 0, len(seeds))
	for _, s := range seeds {
		words = append(words, model.Word{
			ID:        uuid.NewString(),
			Text:      s.text,
			Breakdown: s.breakdown,
			Status:    model.StatusNotStarted,
		})
	}
	return words
}

// Len returns the number of words.
func (d *Deck) Len() int {
	return len(d.words)
}

// Words returns a copy of the word list in order.
func (d *Deck) Words() []model.Word {
	out := make([]model.Word, len(d.words))
	copy(out, d.words)
	return out
}

// At returns the word at index.
func (d *Deck) At(index int) model.Word {
	return d.words[index]
}

// IndexOf returns the position of a word id, or -1.
func (d *Deck) IndexOf(id string) int {
	for i, w := range d.words {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a new word with a fresh stable id. Empty text and
// duplicate text (case-insensitive) are rejected.
func (d *Deck) Add(text, breakdown string) (model.Word, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Word{}, fmt.Errorf("word text must not be empty")
	}
	for _, w := range d.words {
		if strings.EqualFold(w.Text, text) {
			return model.Word{}, fmt.Errorf("word %q already exists", text)
		}
	}
	word := model.Word{
		ID:        uuid.NewString(),
		Text:      text,
		Breakdown: strings.TrimSpace(breakdown),
		Status:    model.StatusNotStarted,
	}
	d.words = append(d.words, word)
	return word, nil
}

// Remove deletes a word by id and returns the index it occupied.
func (d *Deck) Remove(id string) (int, bool) {
	index := d.IndexOf(id)
	if index < 0 {
		return 0, false
	}
	d.words = append(d.words[:index], d.words[index+1:]...)
	return index, true
}

// Filter returns the words whose text contains the query,
// case-insensitive. An empty query returns all words.
func (d *Deck) Filter(query string) []model.Word {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return d.Words()
	}
	var out []model.Word
	for _, w := range d.words {
		if strings.Contains(strings.ToLower(w.Text), query) {
			out = append(out, w)
		}
	}
	return out
}

// SetStatus updates a word's status by id.
func (d *Deck) SetStatus(id string, status model.Status) bool {
	if !model.ValidStatus(status) {
		return false
	}
	index := d.IndexOf(id)
	if index < 0 {
		return false
	}
	d.words[index].Status = status
	return true
}

// RecordPractice bumps the practice counters after a committed stretch of
// practice. A not-started word moves to in-progress.
func (d *Deck) RecordPractice(id string, at time.Time) bool {
	index := d.IndexOf(id)
	if index < 0 {
		return false
	}
	w := &d.words[index]
	w.PracticeCount++
	w.LastPracticed = at
	if w.Status == model.StatusNotStarted {
		w.Status = model.StatusInProgress
	}
	return true
}
