package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"knowmap/internal/adapters/tui/styles"
	"knowmap/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return CloseOverlayMsg{Name: "help"}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Knowmap Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Knowledge base map"))
	b.WriteString("\n\n")

	section := func(title string, bindings ...key.Binding) {
		b.WriteString(styles.InputLabel.Render(title))
		b.WriteString("\n")
		for _, kb := range bindings {
			h := kb.Help()
			b.WriteString(helpLine(h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	section("Navigation",
		MapKeys.Next, MapKeys.Prev, MapKeys.PanLeft, MapKeys.PanRight,
		MapKeys.PanUp, MapKeys.PanDown, MapKeys.ZoomIn, MapKeys.ZoomOut)
	section("Articles",
		MapKeys.Open, MapKeys.Edit, MapKeys.Copy, MapKeys.Search)
	section("View",
		MapKeys.Mode, MapKeys.Modes, MapKeys.Rotate, MapKeys.Reset,
		MapKeys.Minimap, MapKeys.Panel)
	section("General",
		MapKeys.EditSeed, MapKeys.Dismiss, MapKeys.Help, MapKeys.Quit)

	b.WriteString(styles.InputLabel.Render("View modes"))
	b.WriteString("\n")
	for i, mode := range domain.ViewModes() {
		b.WriteString(styles.MutedText.Render("  " + string(rune('1'+i)) + "  " + mode.String()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 14)) + styles.HelpDesc.Render(desc) + "\n"
}
