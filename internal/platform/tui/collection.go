package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-island/internal/games/fishing"
	"github.com/vovakirdan/pixel-island/internal/progress"
)

// CollectionKeyMap defines the key bindings for the collection screen.
type CollectionKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CollectionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CollectionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultCollectionKeyMap returns default key bindings.
func DefaultCollectionKeyMap() CollectionKeyMap {
	return CollectionKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "c", "esc", "b"),
			key.WithHelp("tab/esc", "back to the island"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CollectionModel shows the fish collection and challenge counts.
type CollectionModel struct {
	store  *progress.Store
	table  table.Model
	help   help.Model
	keys   CollectionKeyMap
	width  int
	height int

	closed   bool
	quitting bool
}

// NewCollectionModel creates the collection screen for store.
func NewCollectionModel(store *progress.Store, width, height int) *CollectionModel {
	h := help.New()
	h.Width = width

	m := &CollectionModel{
		store:  store,
		help:   h,
		keys:   DefaultCollectionKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.table.SetRows(CollectionRows(store))
	return m
}

func (m *CollectionModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Fish", Width: 18},
		{Title: "Rarity", Width: 10},
		{Title: "Caught", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(atLeast(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

// CollectionRows lists every fish of the catalog with its catch count.
// Fish never caught are shown as "???".
func CollectionRows(store *progress.Store) []table.Row {
	caught := make(map[string]int)
	for _, e := range store.Collection() {
		if e.Caught {
			caught[e.TypeID] = e.Count
		}
	}

	rows := make([]table.Row, 0, len(fishing.Catalog))
	for _, f := range fishing.Catalog {
		name, count := "???", "-"
		if n, ok := caught[f.ID]; ok {
			name, count = f.Name, fmt.Sprint(n)
		}
		rows = append(rows, table.Row{name, f.Tier.String(), count})
	}
	return rows
}

// Resize adapts the layout to a new terminal size.
func (m *CollectionModel) Resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.table = m.createTable()
	m.table.SetRows(CollectionRows(m.store))
}

// Update handles key messages for the collection screen.
func (m *CollectionModel) Update(msg tea.KeyMsg) (*CollectionModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.closed = true
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Closed reports whether the player went back to the game.
func (m *CollectionModel) Closed() bool {
	return m.closed
}

// Quitting reports whether the player asked to quit.
func (m *CollectionModel) Quitting() bool {
	return m.quitting
}

// View renders the collection.
func (m *CollectionModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("FISH COLLECTION", m.width)))
	b.WriteString("\n\n")

	stats := m.store.FishStats()
	summary := fmt.Sprintf("Kinds caught: %d/%d   Fish caught: %d   Counting: %d   Letters: %d",
		stats.CaughtTypes, len(fishing.Catalog), stats.TotalCaught,
		m.store.CountingProgress(), m.store.LetterProgress())
	b.WriteString(centerText(summary, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// centerText centers each line of s within width.
func centerText(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
