package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"knowmap/internal/adapters/tui/styles"
	"knowmap/internal/domain"
)

// PanelKeyMap defines key bindings for the control panel
type PanelKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Clear  key.Binding
	Close  key.Binding
}

var PanelKeys = PanelKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "enter"),
		key.WithHelp("space", "toggle"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear filters"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "f"),
		key.WithHelp("esc", "close"),
	),
}

type panelRow struct {
	category     domain.Category
	relationship domain.RelationshipType
	count        int
}

func (r panelRow) isCategory() bool {
	return r.category != domain.CategoryUnknown
}

// PanelModel is the control panel: category and relationship toggles
// with counts, and the current view mode
type PanelModel struct {
	ViewState
	filter domain.Filter
	mode   domain.ViewMode
	rows   []panelRow
	cursor int
}

// NewPanelModel creates a control panel
func NewPanelModel() *PanelModel {
	return &PanelModel{}
}

// SetData refreshes the counts from the full, unfiltered graph
func (m *PanelModel) SetData(nodes []domain.Node, connections []domain.Connection) {
	m.rows = m.rows[:0]
	for _, c := range domain.CountByCategory(nodes) {
		m.rows = append(m.rows, panelRow{category: c.Category, count: c.Count})
	}
	for _, r := range domain.CountByRelationship(connections) {
		m.rows = append(m.rows, panelRow{relationship: r.Type, count: r.Count})
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// SetFilter sets the filter the toggles start from
func (m *PanelModel) SetFilter(f domain.Filter) {
	m.filter = f
}

// Filter returns the panel's current filter
func (m *PanelModel) Filter() domain.Filter {
	return m.filter
}

// SetMode sets the view mode shown in the panel header
func (m *PanelModel) SetMode(mode domain.ViewMode) {
	m.mode = mode
}

// Init implements tea.Model
func (m *PanelModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the control panel
func (m *PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, PanelKeys.Close):
		return m, func() tea.Msg { return CloseOverlayMsg{Name: "panel"} }

	case key.Matches(keyMsg, PanelKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, PanelKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, PanelKeys.Toggle):
		if m.cursor >= len(m.rows) {
			return m, nil
		}
		row := m.rows[m.cursor]
		if row.isCategory() {
			m.filter.ToggleCategory(row.category)
		} else {
			m.filter.ToggleRelationship(row.relationship)
		}
		return m, m.changed()

	case key.Matches(keyMsg, PanelKeys.Clear):
		m.filter.Categories = nil
		m.filter.Relationships = nil
		return m, m.changed()
	}

	return m, nil
}

func (m *PanelModel) changed() tea.Cmd {
	f := m.filter
	f.Categories = slices.Clone(f.Categories)
	f.Relationships = slices.Clone(f.Relationships)
	return func() tea.Msg { return FilterChangedMsg{Filter: f} }
}

// View renders the control panel
func (m *PanelModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("View: " + m.mode.String()))
	b.WriteString("\n\n")

	header := func(s string) {
		b.WriteString(styles.InputLabel.Render(s))
		b.WriteString("\n")
	}

	for i, row := range m.rows {
		if i == 0 && row.isCategory() {
			header("Categories")
		}
		if !row.isCategory() && (i == 0 || m.rows[i-1].isCategory()) {
			if i > 0 {
				b.WriteString("\n")
			}
			header("Relationships")
		}

		var name, color string
		var on bool
		if row.isCategory() {
			name = row.category.String()
			color = domain.CategoryColor(row.category)
			on = len(m.filter.Categories) == 0 || slices.Contains(m.filter.Categories, row.category)
		} else {
			name = row.relationship.String()
			color = domain.RelationshipColor(row.relationship)
			on = len(m.filter.Relationships) == 0 || slices.Contains(m.filter.Relationships, row.relationship)
		}

		check := "[ ]"
		if on {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", check, padRight(name, 13), styles.MutedText.Render(fmt.Sprintf("%d", row.count)))
		if i == m.cursor {
			line = styles.ItemSelected.Render(fmt.Sprintf("%s %s %d", check, padRight(name, 13), row.count))
		}
		b.WriteString(styles.Swatch(color) + " " + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(PanelKeys.Toggle, PanelKeys.Clear, PanelKeys.Close))
	return styles.PanelFocused.Render(b.String())
}
