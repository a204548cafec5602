// Package libraryui provides the Bubble Tea word library interface.
package libraryui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alice-yql/bearwithme/internal/deck"
	"github.com/alice-yql/bearwithme/internal/model"
	"github.com/alice-yql/bearwithme/internal/session"
	"github.com/alice-yql/bearwithme/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea word library UI.
type Model struct {
	store *store.Store
	deck  *deck.Deck

	wordTable table.Model
	durations map[string]int64
	visible   []model.Word

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model
	filterQuery string

	addMode   bool
	addInputs []textinput.Model
	addIndex  int
	addError  string

	confirmDelete bool
	deleteID      string

	errMsg string
}

// NewModel constructs a library UI model.
func NewModel(st *store.Store, d *deck.Deck) *Model {
	m := &Model{
		store:     st,
		deck:      d,
		durations: map[string]int64{},
	}
	m.filterInput = newInput("Filter: ")
	m.addInputs = []textinput.Model{
		newInput("Word: "),
		newInput("Breakdown: "),
	}
	m.initTable()
	m.loadDurations()
	m.refreshRows()
	return m
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.addMode {
			return m.updateAdd(msg)
		}
		if m.confirmDelete {
			return m.updateConfirmDelete(msg)
		}
		switch msg.String() {
		case "q":
			return m.quit()
		case "/":
			return m.startFilter()
		case "a":
			return m.startAdd()
		case "d":
			m.startDelete()
			return m, nil
		case "s":
			m.cycleStatus()
			return m, nil
		default:
			var cmd tea.Cmd
			m.wordTable, cmd = m.wordTable.Update(msg)
			return m, cmd
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.addMode {
		return m.renderAddModal()
	}
	if m.confirmDelete {
		return m.renderDeleteModal()
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := m.renderBody(bodyHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initTable() {
	m.wordTable = table.New(
		table.WithColumns(wordColumns()),
		table.WithHeight(10),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	m.wordTable.SetStyles(styles)
}

func wordColumns() []table.Column {
	return []table.Column{
		{Title: "Word", Width: 16},
		{Title: "Breakdown", Width: 20},
		{Title: "Status", Width: 12},
		{Title: "Time", Width: 8},
		{Title: "Practiced", Width: 9},
		{Title: "Last", Width: 16},
	}
}

func (m *Model) loadDurations() {
	if m.store == nil {
		return
	}
	words := m.deck.Words()
	durations, err := m.store.LoadDurations(context.Background(), words)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load durations: %v", err)
		return
	}
	m.durations = make(map[string]int64, len(words))
	for i, w := range words {
		m.durations[w.ID] = durations[i]
	}
}

func (m *Model) refreshRows() {
	m.visible = m.deck.Filter(m.filterQuery)
	rows := make([]table.Row, 0, len(m.visible))
	for _, w := range m.visible {
		last := "never"
		if !w.LastPracticed.IsZero() {
			last = w.LastPracticed.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, table.Row{
			w.Text,
			w.Breakdown,
			string(w.Status),
			session.FormatElapsed(m.durations[w.ID]),
			fmt.Sprintf("%d", w.PracticeCount),
			last,
		})
	}
	m.wordTable.SetRows(rows)
	if cur := m.wordTable.Cursor(); cur >= len(rows) && len(rows) > 0 {
		m.wordTable.SetCursor(len(rows) - 1)
	}
}

func (m *Model) selectedWord() (model.Word, bool) {
	cur := m.wordTable.Cursor()
	if cur < 0 || cur >= len(m.visible) {
		return model.Word{}, false
	}
	return m.visible[cur], true
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterInput.SetValue(m.filterQuery)
	return m, m.filterInput.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterQuery = ""
		m.filterInput.SetValue("")
		m.refreshRows()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterQuery = m.filterInput.Value()
	m.refreshRows()
	return m, cmd
}

func (m *Model) startAdd() (tea.Model, tea.Cmd) {
	m.addMode = true
	m.addError = ""
	m.addIndex = 0
	for i := range m.addInputs {
		m.addInputs[i].SetValue("")
		m.addInputs[i].Blur()
	}
	return m, m.addInputs[0].Focus()
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.addMode = false
		m.addError = ""
		return m, nil
	case tea.KeyEnter:
		word, err := m.deck.Add(m.addInputs[0].Value(), m.addInputs[1].Value())
		if err != nil {
			m.addError = err.Error()
			return m, nil
		}
		// New words start with a zero duration entry.
		m.durations[word.ID] = 0
		m.addMode = false
		m.addError = ""
		m.persistWords()
		m.refreshRows()
		return m, nil
	case tea.KeyTab:
		return m, m.setAddIndex(m.addIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setAddIndex(m.addIndex - 1)
	}
	var cmd tea.Cmd
	m.addInputs[m.addIndex], cmd = m.addInputs[m.addIndex].Update(msg)
	return m, cmd
}

func (m *Model) setAddIndex(idx int) tea.Cmd {
	count := len(m.addInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.addIndex = idx
	var cmd tea.Cmd
	for i := range m.addInputs {
		if i == m.addIndex {
			cmd = m.addInputs[i].Focus()
		} else {
			m.addInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) startDelete() {
	word, ok := m.selectedWord()
	if !ok {
		return
	}
	m.confirmDelete = true
	m.deleteID = word.ID
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if _, ok := m.deck.Remove(m.deleteID); ok {
			// The matching duration entry goes with the word.
			delete(m.durations, m.deleteID)
			m.persistWords()
			m.refreshRows()
		}
	}
	m.confirmDelete = false
	m.deleteID = ""
	return m, nil
}

func (m *Model) cycleStatus() {
	word, ok := m.selectedWord()
	if !ok {
		return
	}
	m.deck.SetStatus(word.ID, model.NextStatus(word.Status))
	m.persistWords()
	m.refreshRows()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.persistWords()
	return m, tea.Quit
}

// persistWords rewrites the stored word list. Failures surface in the
// footer but never interrupt the library flow.
func (m *Model) persistWords() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveWords(context.Background(), m.deck.Words()); err != nil {
		m.errMsg = fmt.Sprintf("failed to save words: %v", err)
		return
	}
	m.errMsg = ""
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.wordTable.SetWidth(m.width)
	height := m.height - 4
	if height < 1 {
		height = 1
	}
	m.wordTable.SetHeight(height)
	promptWidth := lipgloss.Width(m.filterInput.Prompt)
	m.filterInput.Width = maxInt(10, m.width-promptWidth-2)
	for i := range m.addInputs {
		promptWidth := lipgloss.Width(m.addInputs[i].Prompt)
		m.addInputs[i].Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
	}
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render(fmt.Sprintf("Library · %d words", m.deck.Len()))
	if m.filterMode {
		return title + "\n" + m.filterInput.View()
	}
	if m.filterQuery != "" {
		return title + "\n" + headerStyle.Render(fmt.Sprintf("Filter: %s (%d shown)", m.filterQuery, len(m.visible)))
	}
	return title + "\n" + headerStyle.Render("All words")
}

func (m *Model) renderBody(height int) string {
	if m.deck.Len() == 0 {
		return fitLines("No words yet. Press a to add one.", m.width, height)
	}
	if len(m.visible) == 0 {
		return fitLines("No words match the filter.", m.width, height)
	}
	return fitLines(m.wordTable.View(), m.width, height)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("enter: apply  esc: clear")
	}
	help := headerStyle.Render("a add  d delete  s status  / filter  q quit")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderAddModal() string {
	body := []string{
		titleStyle.Render("Add Word"),
		m.addInputs[0].View(),
		m.addInputs[1].View(),
		headerStyle.Render("Breakdown is optional, e.g. \"HH AH L OW\" or \"Teh-dy\"."),
		headerStyle.Render("tab: next field  enter: add  esc: cancel"),
	}
	if m.addError != "" {
		body = append(body, errorStyle.Render(m.addError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderDeleteModal() string {
	text := ""
	if index := m.deck.IndexOf(m.deleteID); index >= 0 {
		text = m.deck.At(index).Text
	}
	body := []string{
		titleStyle.Render("Delete Word"),
		fmt.Sprintf("Delete %q and its practice time? (y/n)", text),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}
