package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowmap/internal/adapters/memory"
	"knowmap/internal/adapters/tui/views"
	"knowmap/internal/application"
	"knowmap/internal/domain"
)

type recordingNavigator struct {
	opened []string
	edited []string
}

func (n *recordingNavigator) OpenArticle(id string) error {
	n.opened = append(n.opened, id)
	return nil
}

func (n *recordingNavigator) EditArticle(id string) error {
	n.edited = append(n.edited, id)
	return nil
}

// newTestApp loads the seed graph into a 76x22 terminal, which leaves a
// 40x20 map where a node at (x, z) sits on cell (20+2x, 10+z).
func newTestApp(t *testing.T) (*App, *memory.Repository, *recordingNavigator) {
	t.Helper()
	repo := memory.NewSeededRepository()
	nav := &recordingNavigator{}
	app := NewApp(Options{
		Repo:         repo,
		Scene:        application.SceneOptions{Seed: 1, Navigator: nav},
		TooltipDelay: 20 * time.Millisecond,
	})
	t.Cleanup(app.Close)

	send(app, app.Init()())
	send(app, tea.WindowSizeMsg{Width: 76, Height: 22})
	return app, repo, nav
}

func send(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func press(app *App, k string) tea.Cmd {
	switch k {
	case "enter":
		return send(app, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return send(app, tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		return send(app, tea.KeyMsg{Type: tea.KeyTab})
	case " ":
		return send(app, tea.KeyMsg{Type: tea.KeySpace})
	}
	return send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

// run executes cmd and flattens batches into their messages
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestApp_LoadsGraph(t *testing.T) {
	app, _, _ := newTestApp(t)

	frame := app.mapView.Frame()
	assert.Len(t, frame.Nodes, 8)
	assert.Len(t, frame.Edges, 9)
	assert.Contains(t, app.View(), "Knowmap")
}

func TestApp_HoverShowsTooltipAfterDelay(t *testing.T) {
	app, _, _ := newTestApp(t)

	msgs := run(press(app, "j"))
	require.Len(t, msgs, 1)
	assert.Equal(t, views.TooltipReadyMsg{ID: "node-6"}, msgs[0])
	assert.Nil(t, app.Tooltip(), "card waits for the delay message")

	send(app, msgs[0])
	require.NotNil(t, app.Tooltip())
	assert.Equal(t, "node-6", app.Tooltip().ID)
	assert.Contains(t, app.View(), "Quality Assurance Standards")

	press(app, "esc")
	assert.Nil(t, app.Tooltip())
}

func TestApp_HoverChangeCancelsPendingTooltip(t *testing.T) {
	app, _, _ := newTestApp(t)

	first := press(app, "j")
	second := press(app, "j")

	assert.Empty(t, run(first), "superseded hover must not fire")
	msgs := run(second)
	require.Len(t, msgs, 1)
	assert.Equal(t, views.TooltipReadyMsg{ID: "node-2"}, msgs[0])

	// a late message for a node no longer hovered is ignored
	send(app, views.TooltipReadyMsg{ID: "node-6"})
	assert.Nil(t, app.Tooltip())
}

func TestApp_OpenAndEditArticle(t *testing.T) {
	app, _, nav := newTestApp(t)

	press(app, "j")
	press(app, "enter")
	assert.Equal(t, []string{"node-6"}, nav.opened)
	require.NotNil(t, app.Scene().Selected())
	assert.Equal(t, "node-6", app.Scene().Selected().ID)
	assert.Nil(t, app.Scene().Hovered(), "opening dismisses the hover")

	press(app, "e")
	assert.Equal(t, []string{"node-6"}, nav.edited)
}

func TestApp_ModeKeys(t *testing.T) {
	app, _, _ := newTestApp(t)

	press(app, "tab")
	assert.Equal(t, domain.ModeCluster, app.Scene().Mode())
	press(app, "4")
	assert.Equal(t, domain.ModeTimeline, app.Scene().Mode())
	assert.Equal(t, domain.ModeTimeline, app.mapView.Frame().Mode)

	press(app, "r")
	assert.Equal(t, domain.ModeDefault, app.Scene().Mode())
}

func TestApp_ZoomAndPan(t *testing.T) {
	app, _, _ := newTestApp(t)

	press(app, "+")
	assert.InDelta(t, 1.2, app.Scene().Zoom(), 1e-9)
	press(app, "L")
	press(app, "J")
	vp := app.Scene().Viewport()
	assert.Equal(t, panStep, vp.X)
	assert.Equal(t, panStep, vp.Z)
	assert.Equal(t, vp, app.mapView.Frame().Viewport)
}

func TestApp_AutoRotateTicks(t *testing.T) {
	app, _, _ := newTestApp(t)

	require.NotNil(t, press(app, "a"))
	assert.True(t, app.Scene().AutoRotate())
	assert.NotNil(t, send(app, views.RotateTickMsg{}))

	press(app, "a")
	assert.Nil(t, send(app, views.RotateTickMsg{}), "ticks stop with rotation")
}

func TestApp_PanelFilters(t *testing.T) {
	app, _, _ := newTestApp(t)

	press(app, "f")
	msgs := run(press(app, " "))
	require.Len(t, msgs, 1)
	send(app, msgs[0])

	frame := app.mapView.Frame()
	require.Len(t, frame.Nodes, 2)
	for _, n := range frame.Nodes {
		assert.Equal(t, domain.CategoryTechnical, n.Node.Category)
	}
	assert.Len(t, frame.Edges, 1)

	for _, msg := range run(press(app, "esc")) {
		send(app, msg)
	}
	assert.False(t, app.isOpen("panel"))
	assert.Len(t, app.mapView.Frame().Nodes, 2, "filter outlives the panel")

	press(app, "r")
	assert.Len(t, app.mapView.Frame().Nodes, 8, "reset clears filters")
}

func TestApp_SearchFocusesNode(t *testing.T) {
	app, _, _ := newTestApp(t)

	press(app, "/")
	require.True(t, app.isOpen("search"))

	for _, msg := range run(press(app, "security")) {
		send(app, msg)
	}
	assert.Len(t, app.mapView.Frame().Nodes, 1, "live query filters the map")

	for _, msg := range run(press(app, "enter")) {
		send(app, msg)
	}
	assert.False(t, app.isOpen("search"))
	assert.Len(t, app.mapView.Frame().Nodes, 8, "closing search clears the query")
	require.NotNil(t, app.Scene().Hovered())
	assert.Equal(t, "node-4", app.Scene().Hovered().ID)
}

func TestApp_EscClosesMostRecentOverlay(t *testing.T) {
	app, _, _ := newTestApp(t)

	msgs := run(press(app, "j"))
	send(app, msgs[0])
	require.NotNil(t, app.Tooltip())

	press(app, "?")
	require.True(t, app.isOpen("help"))
	for _, msg := range run(press(app, "esc")) {
		send(app, msg)
	}
	assert.False(t, app.isOpen("help"))
	assert.NotNil(t, app.Tooltip(), "tooltip opened earlier stays")

	press(app, "esc")
	assert.Nil(t, app.Tooltip())
}

func TestApp_Mouse(t *testing.T) {
	app, _, nav := newTestApp(t)

	send(app, tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionMotion})
	require.NotNil(t, app.Scene().Hovered())
	assert.Equal(t, "node-2", app.Scene().Hovered().ID)

	send(app, tea.MouseMsg{X: 20, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, []string{"node-1"}, nav.opened)

	send(app, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionMotion})
	assert.Nil(t, app.Scene().Hovered())

	// top-left minimap cell: border, padding, then cell 0,0
	send(app, tea.MouseMsg{X: 42, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	vp := app.Scene().Viewport()
	assert.Less(t, vp.X, -6.0)
	assert.Less(t, vp.Z, -5.0)
}

func TestApp_SeedChangeReplacesGraph(t *testing.T) {
	app, repo, _ := newTestApp(t)

	nodes := domain.SeedNodes()[:2]
	conns := domain.SeedConnections()[:1]
	msgs := run(send(app, views.SeedChangedMsg{Nodes: nodes, Connections: conns}))
	require.Len(t, msgs, 1)
	send(app, msgs[0])

	stored, err := repo.ListNodes(t.Context())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Len(t, app.mapView.Frame().Nodes, 2)
	assert.Equal(t, "Imported 2 nodes and 1 connections", app.status.Text)
}

func TestApp_SeedChangeError(t *testing.T) {
	app, _, _ := newTestApp(t)

	cmd := send(app, views.SeedChangedMsg{Err: errors.New("yaml: line 3")})
	assert.Nil(t, cmd)
	assert.True(t, app.status.IsErr)
	assert.Contains(t, app.status.Text, "yaml: line 3")
	assert.Len(t, app.mapView.Frame().Nodes, 8, "graph kept on a bad seed file")
}

func TestApp_EditSeedWithoutFile(t *testing.T) {
	app, _, _ := newTestApp(t)
	assert.Nil(t, press(app, "E"))
	assert.Equal(t, "No seed file configured", app.status.Text)
}

func TestApp_Quit(t *testing.T) {
	app, _, _ := newTestApp(t)
	cmd := press(app, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
