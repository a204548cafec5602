// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alice-yql/bearwithme/internal/deck"
	"github.com/alice-yql/bearwithme/internal/model"
	"github.com/alice-yql/bearwithme/internal/phoneme"
	"github.com/alice-yql/bearwithme/internal/session"
	"github.com/alice-yql/bearwithme/internal/store"
)

const defaultTickMs = 120

// tickMsg carries the generation of the tick chain that produced it.
// Ticks from a superseded chain are dropped, so at most one chain is
// ever live.
type tickMsg int

// Model implements the Bubble Tea practice UI.
type Model struct {
	config  model.Config
	store   *store.Store
	deck    *deck.Deck
	tracker *session.Tracker

	width  int
	height int

	confirmReset bool
	notice       string

	tickSeq int
}

var (
	wordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	breakdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	timerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a practice TUI model and starts timing the first
// word.
func NewModel(cfg model.Config, st *store.Store, d *deck.Deck, tracker *session.Tracker) *Model {
	m := &Model{
		config:  cfg,
		store:   st,
		deck:    d,
		tracker: tracker,
	}
	if d.Len() > 0 {
		tracker.Start(tracker.Current())
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.tracker.Running() {
		return m.tickCmd()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// Only the current-generation tick reschedules itself, and only
		// while a timer runs. Stale ticks and stopping both end a chain.
		if int(msg) == m.tickSeq && m.tracker.Running() {
			return m, m.tickCmd()
		}
		return m, nil
	case tea.KeyMsg:
		if m.confirmReset {
			return m.updateConfirmReset(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m.quit()
		case "left", "h":
			return m.navigate(-1)
		case "right", "l":
			return m.navigate(1)
		case " ":
			return m.toggle()
		case "r":
			if m.deck.Len() > 0 {
				m.confirmReset = true
			}
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	return body + "\n" + footer
}

func (m *Model) renderContent() string {
	if m.deck.Len() == 0 {
		return warnStyle.Render("No words yet. Add some in the library: bearwithme library")
	}
	if m.confirmReset {
		return warnStyle.Render("Reset all practice time? (y/n)")
	}

	index := m.tracker.Current()
	word := m.deck.At(index)
	parts := phoneme.ReadableParts(word.Breakdown)

	lines := []string{
		wordStyle.Render(word.Text),
	}
	if m.config.ShowBreakdown && len(parts) > 0 {
		lines = append(lines, breakdownStyle.Render(strings.Join(parts, " · ")))
	}
	lines = append(lines, timerStyle.Render(m.renderTimers(index)))
	lines = append(lines, promptStyle.Render(practiceHint(word, parts, m.tracker.Running())))
	if m.notice != "" {
		lines = append(lines, promptStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n\n")
}

// practiceHint picks the prompt line for the word's current state: an
// introduction for a word never practiced, a sound drill while paused,
// praise for a mastered word, and the whole-word prompt otherwise.
func practiceHint(word model.Word, parts []string, running bool) string {
	switch {
	case word.Status == model.StatusMastered:
		return phoneme.PromptAllCorrect
	case word.PracticeCount == 0:
		return phoneme.IntroPrompt(word.Text)
	case !running && len(parts) == 1:
		return phoneme.SoundPrompt(parts[0])
	case !running && len(parts) > 1:
		return phoneme.RepeatPrompt(strings.Join(parts, " "))
	default:
		return phoneme.WholeWordPrompt(word.Text)
	}
}

func (m *Model) renderTimers(index int) string {
	return fmt.Sprintf("Word %s · Total %s · %d/%d",
		session.FormatElapsed(m.tracker.CurrentElapsed(index)),
		session.FormatElapsed(m.tracker.TotalElapsed()),
		index+1,
		m.deck.Len(),
	)
}

func (m *Model) renderFooter() string {
	if m.deck.Len() == 0 {
		return footerStyle.Render("q quit")
	}
	affordance := "space resume"
	if m.tracker.Running() {
		affordance = "space pause"
	}
	segments := []string{"← prev", "→ next", affordance, "r reset", "q quit"}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmReset = false
		m.tracker.Reset(true)
		m.notice = "All practice time reset"
		m.saveDurations()
		if m.tracker.Running() {
			return m, m.startTick()
		}
		return m, nil
	default:
		// Declined: durations and the running session stay untouched.
		m.confirmReset = false
		return m, nil
	}
}

func (m *Model) navigate(step int) (tea.Model, tea.Cmd) {
	if m.deck.Len() == 0 {
		return m, nil
	}
	m.notice = ""
	var commit session.Commit
	var committed bool
	if step < 0 {
		commit, committed = m.tracker.Prev()
	} else {
		commit, committed = m.tracker.Next()
	}
	if committed {
		m.recordCommit(commit)
	}
	return m, m.startTick()
}

func (m *Model) toggle() (tea.Model, tea.Cmd) {
	if m.deck.Len() == 0 {
		return m, nil
	}
	commit, committed := m.tracker.Toggle()
	if committed {
		m.recordCommit(commit)
		return m, nil
	}
	return m, m.startTick()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if commit, committed := m.tracker.Stop(); committed {
		m.recordCommit(commit)
	}
	m.saveDurations()
	m.saveWords()
	return m, tea.Quit
}

// recordCommit bumps the word's practice counters and appends to the
// practice log. Failures are logged and swallowed; persistence is
// best-effort and must never interrupt practice.
func (m *Model) recordCommit(commit session.Commit) {
	if commit.DeltaMs <= 0 {
		return
	}
	word := m.deck.At(commit.Index)
	m.deck.RecordPractice(word.ID, commit.EndedAt)
	if m.store == nil {
		return
	}
	rec := model.PracticeRecord{
		WordID:     word.ID,
		StartedAt:  commit.StartedAt,
		EndedAt:    commit.EndedAt,
		DurationMs: commit.DeltaMs,
	}
	if _, err := m.store.InsertPractice(context.Background(), rec); err != nil {
		logErrf("failed to log practice: %v\n", err)
	}
	m.saveDurations()
}

func (m *Model) saveDurations() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveDurations(context.Background(), m.deck.Words(), m.tracker.Durations()); err != nil {
		logErrf("failed to save durations: %v\n", err)
	}
}

// saveWords persists practice progress only. The deck handed to a
// practice session may be focus-reordered; the stored library order
// must survive it.
func (m *Model) saveWords() {
	if m.store == nil {
		return
	}
	if err := m.store.UpdateWordProgress(context.Background(), m.deck.Words()); err != nil {
		logErrf("failed to save word progress: %v\n", err)
	}
}

// startTick begins a fresh tick chain, invalidating any chain still
// pending from before the transition.
func (m *Model) startTick() tea.Cmd {
	m.tickSeq++
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	tickMs := m.config.TickMs
	if tickMs <= 0 {
		tickMs = defaultTickMs
	}
	seq := m.tickSeq
	return tea.Tick(time.Duration(tickMs)*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg(seq)
	})
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
