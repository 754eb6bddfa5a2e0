package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"knowmap/internal/adapters/tui/styles"
	"knowmap/internal/application/commands"
	"knowmap/internal/domain"
)

const maxSearchResults = 8

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "focus"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SearchModel filters the map as the user types and lists ranked matches
type SearchModel struct {
	ViewState
	input   textinput.Model
	nodes   []domain.Node
	results []commands.SearchResult
	cursor  int
}

// NewSearchModel creates a new search view model
func NewSearchModel() *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search articles..."
	input.CharLimit = 64
	input.Focus()

	return &SearchModel{input: input}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and results
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.input.Focus()
}

// SetNodes sets the nodes searched over
func (m *SearchModel) SetNodes(nodes []domain.Node) {
	m.nodes = nodes
	m.refresh()
}

// Query returns the current query text
func (m *SearchModel) Query() string {
	return m.input.Value()
}

// Results returns the ranked matches for the current query
func (m *SearchModel) Results() []commands.SearchResult {
	return m.results
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, SearchKeys.Cancel):
			return m, func() tea.Msg { return CloseOverlayMsg{Name: "search"} }

		case key.Matches(keyMsg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(keyMsg, SearchKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(keyMsg, SearchKeys.Select):
			if m.cursor < len(m.results) {
				id := m.results[m.cursor].Node.ID
				return m, func() tea.Msg { return FocusNodeMsg{ID: id} }
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.refresh()
	query := m.input.Value()
	return m, tea.Batch(cmd, func() tea.Msg {
		return QueryChangedMsg{Query: query}
	})
}

func (m *SearchModel) refresh() {
	m.cursor = 0
	query := strings.TrimSpace(m.input.Value())
	if len([]rune(query)) < 2 {
		m.results = nil
		return
	}
	m.results = commands.FuzzySort(m.nodes, query)
	if len(m.results) > maxSearchResults {
		m.results = m.results[:maxSearchResults]
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.InputLabel.Render("Search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		if len([]rune(strings.TrimSpace(m.input.Value()))) >= 2 {
			b.WriteString(styles.MutedText.Render("No matches"))
			b.WriteString("\n")
		}
	}

	for i, r := range m.results {
		line := fmt.Sprintf("%s  %s", Truncate(r.Node.Title, 32), styles.MutedText.Render(r.Field))
		if i == m.cursor {
			line = styles.ItemSelected.Render(fmt.Sprintf("%s  %s", Truncate(r.Node.Title, 32), r.Field))
		}
		b.WriteString(styles.Swatch(domain.CategoryColor(r.Node.Category)) + " " + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel))
	return styles.PanelFocused.Render(b.String())
}
