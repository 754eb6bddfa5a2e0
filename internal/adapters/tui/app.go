package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"knowmap/internal/adapters/seedfile"
	"knowmap/internal/adapters/tui/styles"
	"knowmap/internal/adapters/tui/views"
	"knowmap/internal/application"
	"knowmap/internal/application/commands"
	"knowmap/internal/domain"
	"knowmap/internal/ports"
	"knowmap/internal/task"
)

const (
	// DefaultTooltipDelay is how long the cursor rests on a node before
	// its card appears
	DefaultTooltipDelay = 300 * time.Millisecond

	rotateInterval = 80 * time.Millisecond
	sidebarWidth   = 36
	panStep        = 2.0
)

// LinkBuilder turns an article id into a shareable URL
type LinkBuilder interface {
	ArticleURL(articleID string) (string, error)
}

// Options configures the TUI application
type Options struct {
	Repo         ports.GraphRepository
	Scene        application.SceneOptions
	Links        LinkBuilder
	Editor       ports.EditorOpener
	SeedPath     string
	TooltipDelay time.Duration
	Logger       *zap.Logger
	Context      context.Context
}

// App is the main TUI application model
type App struct {
	ctx      context.Context
	repo     ports.GraphRepository
	scene    *application.Scene
	links    LinkBuilder
	editor   ports.EditorOpener
	seedPath string
	logger   *zap.Logger

	tasks        *task.Group
	tooltipDelay time.Duration
	tooltipTask  *task.Handle
	tooltip      *domain.Node
	hoverCmd     tea.Cmd

	nodes       []domain.Node
	connections []domain.Connection
	filter      domain.Filter

	mapView *views.MapModel
	panel   *views.PanelModel
	search  *views.SearchModel
	help    *views.HelpModel

	overlays views.DismissStack
	open     map[string]func()
	status   views.StatusLine

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(opts Options) *App {
	a := &App{
		ctx:          opts.Context,
		repo:         opts.Repo,
		links:        opts.Links,
		editor:       opts.Editor,
		seedPath:     opts.SeedPath,
		logger:       opts.Logger,
		tasks:        &task.Group{},
		tooltipDelay: opts.TooltipDelay,
		panel:        views.NewPanelModel(),
		search:       views.NewSearchModel(),
		help:         views.NewHelpModel(),
		open:         make(map[string]func()),
	}
	if a.ctx == nil {
		a.ctx = context.Background()
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.tooltipDelay <= 0 {
		a.tooltipDelay = DefaultTooltipDelay
	}

	sceneOpts := opts.Scene
	if sceneOpts.Logger == nil {
		sceneOpts.Logger = a.logger
	}
	sceneOpts.OnHover = a.onHover
	a.scene = application.NewScene(sceneOpts)
	a.mapView = views.NewMapModel(a.scene)
	a.panel.SetMode(a.scene.Mode())

	return a
}

// Scene exposes the scene driven by the app
func (a *App) Scene() *application.Scene {
	return a.scene
}

// Init loads the graph
func (a *App) Init() tea.Cmd {
	return a.reload()
}

// Close cancels pending tooltip timers
func (a *App) Close() {
	a.tasks.CancelAll()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if hover := a.takeHoverCmd(); hover != nil {
		cmd = tea.Batch(cmd, hover)
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return nil

	case views.GraphLoadedMsg:
		a.nodes = msg.Nodes
		a.connections = msg.Connections
		a.panel.SetData(a.nodes, a.connections)
		a.search.SetNodes(a.nodes)
		if msg.Status != "" {
			a.status.Info(msg.Status)
		}
		a.recompose()
		return nil

	case views.ErrMsg:
		a.logger.Warn("tui error", zap.Error(msg.Err))
		a.status.Fail("", msg.Err)
		return nil

	case views.StatusMsg:
		a.status.Info(msg.Text)
		return nil

	case views.FilterChangedMsg:
		a.filter.Categories = msg.Filter.Categories
		a.filter.Relationships = msg.Filter.Relationships
		a.recompose()
		return nil

	case views.QueryChangedMsg:
		a.filter.Query = msg.Query
		a.recompose()
		return nil

	case views.FocusNodeMsg:
		a.closeOverlay("search")
		a.recompose()
		if a.mapView.FocusNode(msg.ID) == nil {
			a.status.Warn("Not on the map: " + msg.ID)
		}
		a.recompose()
		return nil

	case views.TooltipReadyMsg:
		a.showTooltip(msg.ID)
		return nil

	case views.CloseOverlayMsg:
		a.closeOverlay(msg.Name)
		a.recompose()
		return nil

	case views.SeedChangedMsg:
		if msg.Err != nil {
			a.status.Fail("Seed file", msg.Err)
			return nil
		}
		return a.importSeed(msg.Nodes, msg.Connections)

	case views.RotateTickMsg:
		if !a.scene.AutoRotate() {
			return nil
		}
		a.mapView.Rotate(views.RotateStep)
		return rotateTick()

	case editorFinishedMsg:
		if msg.err != nil {
			a.status.Fail("Editor", msg.err)
			return nil
		}
		return a.reloadSeedFile()

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.isOpen("search") {
		_, cmd := a.search.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		a.Close()
		return tea.Quit
	}

	switch {
	case a.isOpen("help"):
		_, cmd := a.help.Update(msg)
		return cmd
	case a.isOpen("search"):
		_, cmd := a.search.Update(msg)
		return cmd
	case a.isOpen("panel"):
		_, cmd := a.panel.Update(msg)
		return cmd
	}

	keys := views.MapKeys
	switch {
	case key.Matches(msg, keys.Quit):
		a.Close()
		return tea.Quit

	case key.Matches(msg, keys.Dismiss):
		a.overlays.Dismiss()

	case key.Matches(msg, keys.Next):
		a.mapView.MoveCursor(1)

	case key.Matches(msg, keys.Prev):
		a.mapView.MoveCursor(-1)

	case key.Matches(msg, keys.Open):
		if err := a.scene.Click(a.mapView.CursorNode()); err != nil {
			a.status.Fail("", err)
		}

	case key.Matches(msg, keys.Edit):
		if err := a.scene.Edit(a.mapView.CursorNode()); err != nil {
			a.status.Fail("", err)
		}

	case key.Matches(msg, keys.Copy):
		a.copyLink()

	case key.Matches(msg, keys.Mode):
		a.setMode(a.scene.Mode().Next())

	case key.Matches(msg, keys.Modes):
		a.setMode(domain.ViewMode(msg.Runes[0] - '1'))

	case key.Matches(msg, keys.ZoomIn):
		a.scene.ZoomIn()

	case key.Matches(msg, keys.ZoomOut):
		a.scene.ZoomOut()

	case key.Matches(msg, keys.PanLeft):
		a.pan(-panStep, 0)

	case key.Matches(msg, keys.PanRight):
		a.pan(panStep, 0)

	case key.Matches(msg, keys.PanUp):
		a.pan(0, -panStep)

	case key.Matches(msg, keys.PanDown):
		a.pan(0, panStep)

	case key.Matches(msg, keys.Rotate):
		if a.scene.ToggleAutoRotate() {
			a.recompose()
			return rotateTick()
		}

	case key.Matches(msg, keys.Reset):
		a.scene.Reset()
		a.mapView.ResetRotation()
		a.filter = domain.Filter{}
		a.panel.SetFilter(a.filter)
		a.panel.SetMode(a.scene.Mode())

	case key.Matches(msg, keys.Minimap):
		mm := a.mapView.Minimap()
		mm.SetVisible(!mm.Visible())

	case key.Matches(msg, keys.Panel):
		a.panel.SetFilter(a.filter)
		a.openOverlay("panel")

	case key.Matches(msg, keys.Search):
		a.search.Reset()
		a.openOverlay("search")
		return a.search.Init()

	case key.Matches(msg, keys.Help):
		a.openOverlay("help")

	case key.Matches(msg, keys.EditSeed):
		return a.openEditor()
	}

	a.recompose()
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	col, row := msg.X, msg.Y-1
	mapWidth := a.mapView.Width

	if col >= mapWidth {
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		// minimap panel content sits inside a border and one column of padding
		if a.mapView.ClickMinimap(col-mapWidth-2, row-1) {
			a.recompose()
		}
		return nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		node := a.mapView.NodeAt(col, row)
		hovered := a.scene.Hovered()
		switch {
		case node == nil && hovered != nil:
			a.scene.Hover(nil, false)
		case node != nil && (hovered == nil || hovered.ID != node.ID):
			a.mapView.FocusNode(node.ID)
		default:
			return nil
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if node := a.mapView.NodeAt(col, row); node != nil {
			if err := a.scene.Click(node); err != nil {
				a.status.Fail("", err)
			}
		}

	case msg.Button == tea.MouseButtonWheelUp:
		a.scene.ZoomIn()

	case msg.Button == tea.MouseButtonWheelDown:
		a.scene.ZoomOut()

	default:
		return nil
	}

	a.recompose()
	return nil
}

func (a *App) setMode(mode domain.ViewMode) {
	a.scene.SetMode(mode)
	a.panel.SetMode(a.scene.Mode())
}

func (a *App) pan(dx, dz float64) {
	vp := a.scene.Viewport()
	a.scene.MoveViewport(vp.X+dx, vp.Z+dz)
}

func (a *App) recompose() {
	visible := a.filter.Apply(a.nodes, a.connections)
	a.mapView.SetFrame(a.scene.Compose(visible))
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.mapView.SetSize(max(width-sidebarWidth, 10), max(height-2, 4))
	a.help.SetSize(width, height)
	a.recompose()
}

// onHover is the scene's hover callback: any hover change hides the
// current card and restarts the delay
func (a *App) onHover(node *domain.Node) {
	a.closeOverlay("tooltip")
	a.tooltipTask.Cancel()
	a.tooltipTask = nil
	if node == nil {
		return
	}

	id := node.ID
	h := a.tasks.After(a.tooltipDelay, func() {})
	a.tooltipTask = h
	a.hoverCmd = func() tea.Msg {
		<-h.Done()
		if h.Cancelled() {
			return nil
		}
		return views.TooltipReadyMsg{ID: id}
	}
}

func (a *App) takeHoverCmd() tea.Cmd {
	cmd := a.hoverCmd
	a.hoverCmd = nil
	return cmd
}

func (a *App) showTooltip(id string) {
	hovered := a.scene.Hovered()
	if hovered == nil || hovered.ID != id {
		return
	}
	a.tooltip = hovered
	a.openOverlay("tooltip")
}

// Tooltip returns the node whose card is showing, or nil
func (a *App) Tooltip() *domain.Node {
	return a.tooltip
}

func (a *App) openOverlay(name string) {
	if a.isOpen(name) {
		return
	}
	a.open[name] = a.overlays.Push(name, func() {
		a.hideOverlay(name)
	})
}

func (a *App) closeOverlay(name string) {
	unsubscribe, ok := a.open[name]
	if !ok {
		return
	}
	unsubscribe()
	a.hideOverlay(name)
}

func (a *App) hideOverlay(name string) {
	delete(a.open, name)
	switch name {
	case "tooltip":
		a.tooltip = nil
	case "search":
		a.filter.Query = ""
	}
}

func (a *App) isOpen(name string) bool {
	_, ok := a.open[name]
	return ok
}

func (a *App) copyLink() {
	node := a.mapView.CursorNode()
	if node == nil || a.links == nil {
		return
	}
	u, err := a.links.ArticleURL(node.ID)
	if err == nil {
		err = clipboard.WriteAll(u)
	}
	if err != nil {
		a.status.Fail("Copy failed", err)
		return
	}
	a.status.Info("Copied " + u)
}

func (a *App) reload() tea.Cmd {
	ctx, repo := a.ctx, a.repo
	return func() tea.Msg {
		return loadGraph(ctx, repo, "")
	}
}

func loadGraph(ctx context.Context, repo ports.GraphRepository, status string) tea.Msg {
	nodes, err := repo.ListNodes(ctx)
	if err != nil {
		return views.ErrMsg{Err: fmt.Errorf("failed to load nodes: %w", err)}
	}
	conns, err := repo.ListConnections(ctx)
	if err != nil {
		return views.ErrMsg{Err: fmt.Errorf("failed to load connections: %w", err)}
	}
	return views.GraphLoadedMsg{Nodes: nodes, Connections: conns, Status: status}
}

// importSeed replaces the stored graph and reloads it
func (a *App) importSeed(nodes []domain.Node, conns []domain.Connection) tea.Cmd {
	ctx, repo, logger := a.ctx, a.repo, a.logger
	return func() tea.Msg {
		cmd := commands.NewImportCommand(repo, nodes, conns)
		cmd.Replace = true
		result, err := cmd.Execute(ctx)
		if err != nil {
			return views.ErrMsg{Err: err}
		}
		logger.Info("seed reloaded",
			zap.Int("nodes", result.Nodes),
			zap.Int("connections", result.Connections))
		return loadGraph(ctx, repo, result.Message)
	}
}

func (a *App) reloadSeedFile() tea.Cmd {
	if a.seedPath == "" {
		return nil
	}
	nodes, conns, err := seedfile.Load(a.seedPath)
	if err != nil {
		return func() tea.Msg { return views.ErrMsg{Err: err} }
	}
	return a.importSeed(nodes, conns)
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor() tea.Cmd {
	if a.editor == nil || a.seedPath == "" {
		a.status.Warn("No seed file configured")
		return nil
	}

	cmd, err := a.editor.Command(a.seedPath)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func rotateTick() tea.Cmd {
	return tea.Tick(rotateInterval, func(time.Time) tea.Msg {
		return views.RotateTickMsg{}
	})
}

// View renders the application
func (a *App) View() string {
	if a.isOpen("help") {
		return a.help.View()
	}

	frame := a.mapView.Frame()
	header := styles.Title.Render("Knowmap") + "  " +
		styles.Subtitle.Render(fmt.Sprintf("%s · %d nodes · %d links · zoom %.1fx",
			frame.Mode, len(frame.Nodes), len(frame.Edges), frame.Zoom))

	var side []string
	if mini := a.mapView.MinimapView(); mini != "" {
		side = append(side, styles.Panel.Render(mini))
	}
	switch {
	case a.isOpen("search"):
		side = append(side, a.search.View())
	case a.isOpen("panel"):
		side = append(side, a.panel.View())
	case a.tooltip != nil:
		side = append(side, views.RenderTooltip(a.tooltip))
	default:
		side = append(side, a.legend())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		a.mapView.View(),
		lipgloss.JoinVertical(lipgloss.Left, side...),
	)

	footer := a.status.View()
	if footer == "" {
		keys := views.MapKeys
		footer = views.RenderHelpLine(keys.Next, keys.Open, keys.Mode, keys.Search, keys.Panel, keys.Help, keys.Quit)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a *App) legend() string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render("Categories"))
	b.WriteString("\n")
	for _, c := range domain.Categories() {
		b.WriteString(styles.Swatch(domain.CategoryColor(c)) + " " + c.String() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.InputLabel.Render("Relationships"))
	b.WriteString("\n")
	for _, r := range domain.RelationshipTypes() {
		b.WriteString(styles.Swatch(domain.RelationshipColor(r)) + " " + r.String() + "\n")
	}
	return styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}
