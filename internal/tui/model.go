// Package tui is the interactive note list: a search box, a category
// selector, and the pinned-then-recent list with per-note actions.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/export"
	"github.com/streed/notepad/internal/format"
	"github.com/streed/notepad/internal/listing"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/models"
	"github.com/streed/notepad/internal/query"
)

// Notes is the store the screen reads from and mutates.
type Notes interface {
	query.Store
	TogglePin(id int64) (bool, error)
	Delete(id int64) error
	Categories() ([]string, error)
}

type Options struct {
	DarkTheme bool
	Exporter  *export.Exporter
	// Copy writes to the clipboard. Defaults to clipboard.WriteAll.
	Copy func(string) error
}

type Model struct {
	notes    Notes
	screen   *listing.Screen
	exporter *export.Exporter
	copy     func(string) error
	styles   Styles

	search     textinput.Model
	searching  bool
	categories []string
	catIndex   int // 0 is every category

	cursor        int
	detail        bool
	confirmDelete bool
	status        string
	statusErr     bool
	quitting      bool

	width, height int
}

func New(notes Notes, opts Options) Model {
	search := textinput.New()
	search.Placeholder = "Search notes"
	search.Prompt = "/ "
	search.CharLimit = 256

	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := Model{
		notes:    notes,
		screen:   listing.NewScreen(notes, nil),
		exporter: opts.Exporter,
		copy:     copyFn,
		styles:   newStyles(opts.DarkTheme),
		search:   search,
	}
	m.dispatch(listing.Refreshed{})
	m.reloadCategories()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(msg.Width-4, 10)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" {
			m.deleteSelected()
		} else {
			m.setStatus("Delete cancelled")
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.cycleCategory(1)
		return m, nil
	case "shift+tab":
		m.cycleCategory(-1)
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "/":
		m.searching = true
		m.detail = false
		return m, m.search.Focus()
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter":
		if _, ok := m.selected(); ok {
			m.detail = !m.detail
		}
	case "esc":
		m.detail = false
	case "p":
		m.togglePin()
	case "y":
		m.copySelected()
	case "e":
		m.exportSelected()
	case "d":
		if note, ok := m.selected(); ok {
			m.confirmDelete = true
			m.setStatus(fmt.Sprintf("Delete %q? (y/N)", format.Formatters[format.ColumnTitle](note).Text))
		}
	case "x":
		m.search.SetValue("")
		m.catIndex = 0
		m.dispatch(listing.Cleared{})
		m.setStatus("Filters cleared")
	case "r":
		m.refresh()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.dispatch(listing.TextSubmitted{Text: m.search.Value()})
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.dispatch(listing.TextChanged{Text: after})
	}
	return m, cmd
}

func (m *Model) dispatch(a listing.Action) {
	v := m.screen.Dispatch(a)
	if v.Err != nil {
		m.setError(v.Err)
	}
	m.moveCursor(0)
	if v.Empty() {
		m.detail = false
	}
}

// refresh re-runs the current filter after a mutation and rebuilds the
// category selector.
func (m *Model) refresh() {
	m.dispatch(listing.Refreshed{})
	m.reloadCategories()
}

func (m *Model) reloadCategories() {
	categories, err := m.notes.Categories()
	if err != nil {
		m.setError(err)
		return
	}
	m.categories = categories

	current := m.screen.Filter().Category()
	if current.IsAny() {
		m.catIndex = 0
		return
	}
	for i, name := range categories {
		if name == current.Name() {
			m.catIndex = i + 1
			return
		}
	}
	// The selected category no longer exists
	m.catIndex = 0
	m.dispatch(listing.CategorySelected{Category: query.AnyCategory})
}

func (m *Model) cycleCategory(delta int) {
	n := len(m.categories) + 1
	m.catIndex = ((m.catIndex+delta)%n + n) % n
	m.dispatch(listing.CategorySelected{Category: m.selectedCategory()})
}

func (m Model) selectedCategory() query.CategoryFilter {
	if m.catIndex == 0 || m.catIndex > len(m.categories) {
		return query.AnyCategory
	}
	return query.InCategory(m.categories[m.catIndex-1])
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if count := m.screen.View().Count(); m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (models.Note, bool) {
	if m.screen.View().Empty() {
		return models.Note{}, false
	}
	return m.screen.NoteAt(m.cursor)
}

func (m *Model) togglePin() {
	note, ok := m.selected()
	if !ok {
		return
	}
	pinned, err := m.notes.TogglePin(note.ID)
	if err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	m.selectID(note.ID)
	if pinned {
		m.setStatus("Pinned")
	} else {
		m.setStatus("Unpinned")
	}
}

func (m *Model) copySelected() {
	note, ok := m.selected()
	if !ok {
		return
	}
	if err := m.copy(format.ClipText(note)); err != nil {
		m.setError(fmt.Errorf("%w: %w", interrors.ErrClipboardFail, err))
		return
	}
	m.setStatus("Copied to clipboard")
}

func (m *Model) exportSelected() {
	note, ok := m.selected()
	if !ok {
		return
	}
	if m.exporter == nil {
		m.setError(fmt.Errorf("%w: no export directory", interrors.ErrExportFailed))
		return
	}
	path, err := m.exporter.Export(note)
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Exported to " + path)
}

func (m *Model) deleteSelected() {
	note, ok := m.selected()
	if !ok {
		return
	}
	if err := m.notes.Delete(note.ID); err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	m.setStatus("Note deleted")
}

// selectID moves the cursor to the note with id, if it is listed.
func (m *Model) selectID(id int64) {
	for i, n := range m.screen.View().Notes {
		if n.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	logger.Error("%v", err)
	m.status, m.statusErr = err.Error(), true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.styles
	view := m.screen.View()
	var b strings.Builder

	b.WriteString(s.Header.Render("NotePad"))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(s.Search.Render(m.search.View()))
	} else {
		b.WriteString(s.Muted.Render("Press / to search"))
	}
	b.WriteString("\n")

	b.WriteString(s.Muted.Render("Category: "))
	b.WriteString(s.Category.Render("◀ " + m.selectedCategory().Label() + " ▶"))
	if view.ShowCount() {
		b.WriteString("  ")
		b.WriteString(s.Count.Render(view.CountLabel()))
	}
	b.WriteString("\n\n")

	if view.Empty() {
		if view.Filter.Active() {
			b.WriteString(s.Muted.Render("No matching notes"))
		} else {
			b.WriteString(s.Muted.Render("No notes yet"))
		}
		b.WriteString("\n")
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	start, end := m.visibleRange(view.Count())
	for i := start; i < end; i++ {
		line := format.Pad(format.Line(format.Row(view.Notes[i], format.DefaultColumns...)), width-2)
		if i == m.cursor {
			b.WriteString(s.Selected.Render("> " + line))
		} else {
			b.WriteString(s.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if note, ok := m.selected(); ok && m.detail {
		body := format.Formatters[format.ColumnTitle](note).Text + "\n\n" + note.Body
		b.WriteString(s.Detail.Width(max(width-4, 10)).Render(body))
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(s.Error.Render(m.status))
		} else {
			b.WriteString(s.Status.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.Help.Render("/ search  tab category  enter open  p pin  y copy  e export  d delete  x clear  q quit"))
	return b.String()
}

// visibleRange is the window of rows that fits the terminal and keeps the
// cursor on screen.
func (m Model) visibleRange(count int) (int, int) {
	rows := count
	if m.height > 0 {
		rows = max(m.height-8, 1)
	}
	if count <= rows {
		return 0, count
	}
	start := m.cursor - rows/2
	start = max(0, min(start, count-rows))
	return start, start + rows
}
