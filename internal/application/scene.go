package application

import (
	"go.uber.org/zap"

	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// cameraHeight is the camera altitude used when jumping to a viewport
const cameraHeight = 10

// RenderedNode is a node ready to draw
type RenderedNode struct {
	Node        domain.Node
	Position    domain.Vec3
	Size        float64
	Color       string
	Highlighted bool
	Selected    bool
	Hovered     bool
}

// RenderedEdge is a connection ready to draw as a polyline
type RenderedEdge struct {
	Connection  domain.Connection
	Points      []domain.Vec3
	Color       string
	Width       float64
	Opacity     float64
	Highlighted bool
}

// Frame is the output of one compose pass
type Frame struct {
	Mode     domain.ViewMode
	Nodes    []RenderedNode
	Edges    []RenderedEdge
	Viewport domain.Viewport
	Zoom     float64
}

// MapPoints returns the frame's nodes as seen from above
func (f Frame) MapPoints() []domain.MapPoint {
	points := make([]domain.MapPoint, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		points = append(points, domain.MapPoint{
			ID:         n.Node.ID,
			X:          n.Position.X,
			Z:          n.Position.Z,
			Importance: n.Node.Importance,
			Category:   n.Node.Category,
		})
	}
	return points
}

// Camera is the orbit camera pose
type Camera struct {
	Position domain.Vec3
	Target   domain.Vec3
}

// SceneOptions configures a Scene
type SceneOptions struct {
	Seed          uint64
	CurveSegments int
	Resolver      *domain.Resolver
	Navigator     ports.ArticleNavigator
	Logger        *zap.Logger

	// OnHover is called with the hovered node, or nil when hover ends
	OnHover func(node *domain.Node)
}

// Scene composes frames from visible nodes and connections and holds the
// transient interaction state: hover, selection, view mode and camera.
// A Scene is not safe for concurrent use; it belongs to one render loop.
type Scene struct {
	resolver  *domain.Resolver
	curves    *domain.CurveBuilder
	navigator ports.ArticleNavigator
	logger    *zap.Logger
	onHover   func(node *domain.Node)

	mode       domain.ViewMode
	hovered    *domain.Node
	selected   *domain.Node
	viewport   domain.Viewport
	zoom       float64
	autoRotate bool
	camera     Camera
}

// NewScene creates a scene in the default view mode
func NewScene(opts SceneOptions) *Scene {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = domain.NewResolver(opts.Seed, nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scene{
		resolver:  resolver,
		curves:    domain.NewCurveBuilder(opts.Seed, opts.CurveSegments),
		navigator: opts.Navigator,
		logger:    logger,
		onHover:   opts.OnHover,
	}
	s.reset()
	return s
}

// Compose resolves every visible node and every endpoint-valid connection
func (s *Scene) Compose(visible domain.Visible) Frame {
	frame := Frame{
		Mode:     s.mode,
		Viewport: s.viewport,
		Zoom:     s.zoom,
		Nodes:    make([]RenderedNode, 0, len(visible.Nodes)),
	}

	positions := make(map[string]domain.Vec3, len(visible.Nodes))
	for i := range visible.Nodes {
		n := &visible.Nodes[i]
		if n.ID == "" {
			continue
		}
		pos := s.resolver.Resolve(n, s.mode)
		positions[n.ID] = pos

		frame.Nodes = append(frame.Nodes, RenderedNode{
			Node:        *n,
			Position:    pos,
			Size:        domain.NodeSize(n.Importance, s.mode),
			Color:       domain.CategoryColor(n.Category),
			Highlighted: visible.Highlighted[n.ID],
			Selected:    s.isSelected(n.ID),
			Hovered:     s.isHovered(n.ID),
		})
	}

	for _, c := range visible.Connections {
		start, okStart := positions[c.From]
		end, okEnd := positions[c.To]
		if !okStart || !okEnd {
			s.logger.Debug("dropping connection with missing endpoint",
				zap.String("from", c.From),
				zap.String("to", c.To))
			continue
		}

		points := s.curves.Build(c.Key(), start, end)
		if !domain.Renderable(points) {
			s.logger.Debug("suppressing degenerate connection", zap.String("edge", c.Key()))
			continue
		}

		highlighted := s.touches(c)
		frame.Edges = append(frame.Edges, RenderedEdge{
			Connection:  c,
			Points:      points,
			Color:       domain.RelationshipColor(c.Type),
			Width:       domain.EdgeWidth(highlighted),
			Opacity:     domain.EdgeOpacity(s.mode, highlighted),
			Highlighted: highlighted,
		})
	}

	return frame
}

// Resolve returns the position of a single node in the current mode
func (s *Scene) Resolve(node *domain.Node) domain.Vec3 {
	return s.resolver.Resolve(node, s.mode)
}

// Mode returns the current view mode
func (s *Scene) Mode() domain.ViewMode {
	return s.mode
}

// SetMode switches the layout strategy. Invalid modes are ignored.
func (s *Scene) SetMode(mode domain.ViewMode) {
	if !mode.Valid() {
		s.logger.Warn("ignoring invalid view mode", zap.Int("mode", int(mode)))
		return
	}
	if mode != s.mode {
		s.logger.Debug("view mode changed", zap.Stringer("from", s.mode), zap.Stringer("to", mode))
	}
	s.mode = mode
}

// Hover marks node as hovered (on) or clears hover (off) and forwards
// the change to the tooltip callback
func (s *Scene) Hover(node *domain.Node, on bool) {
	if on && node != nil {
		n := *node
		s.hovered = &n
	} else {
		s.hovered = nil
	}
	if s.onHover != nil {
		s.onHover(s.hovered)
	}
}

// Hovered returns the hovered node, or nil
func (s *Scene) Hovered() *domain.Node {
	return s.hovered
}

// Select marks node as selected without opening it. Nil clears selection.
func (s *Scene) Select(node *domain.Node) {
	if node == nil {
		s.selected = nil
		return
	}
	n := *node
	s.selected = &n
}

// Selected returns the selected node, or nil
func (s *Scene) Selected() *domain.Node {
	return s.selected
}

// Click selects node, dismisses the tooltip and opens the article
func (s *Scene) Click(node *domain.Node) error {
	if node == nil || node.ID == "" {
		return nil
	}
	s.Select(node)
	s.Hover(nil, false)
	if s.navigator == nil {
		return nil
	}
	return s.navigator.OpenArticle(node.ID)
}

// Edit opens the content editor for node
func (s *Scene) Edit(node *domain.Node) error {
	if node == nil || node.ID == "" || s.navigator == nil {
		return nil
	}
	return s.navigator.EditArticle(node.ID)
}

// Viewport returns the current camera footprint
func (s *Scene) Viewport() domain.Viewport {
	return s.viewport
}

// Camera returns the current camera pose
func (s *Scene) Camera() Camera {
	return s.camera
}

// Zoom returns the current zoom level
func (s *Scene) Zoom() float64 {
	return s.zoom
}

// CameraChanged updates the viewport from an orbit-control change
func (s *Scene) CameraChanged(cam Camera) {
	s.camera = Camera{
		Position: cam.Position.Sanitized(),
		Target:   cam.Target.Sanitized(),
	}
	size := domain.Footprint(s.zoom)
	s.viewport = domain.Viewport{
		X:      s.camera.Position.X,
		Z:      s.camera.Position.Z,
		Width:  size,
		Height: size,
	}.Sanitized()
}

// MoveViewport recenters the viewport on (x, z), as requested by a
// minimap click, and points the camera at it
func (s *Scene) MoveViewport(x, z float64) {
	s.viewport.X = x
	s.viewport.Z = z
	s.viewport = s.viewport.Sanitized()

	s.camera = Camera{
		Position: domain.Vec3{X: s.viewport.X, Y: cameraHeight, Z: s.viewport.Z},
		Target:   domain.Vec3{X: s.viewport.X, Z: s.viewport.Z},
	}
}

// ZoomIn narrows the viewport footprint
func (s *Scene) ZoomIn() {
	s.setZoom(domain.ZoomIn(s.zoom))
}

// ZoomOut widens the viewport footprint
func (s *Scene) ZoomOut() {
	s.setZoom(domain.ZoomOut(s.zoom))
}

func (s *Scene) setZoom(zoom float64) {
	s.zoom = zoom
	size := domain.Footprint(zoom)
	s.viewport.Width = size
	s.viewport.Height = size
}

// ToggleAutoRotate flips camera auto-rotation
func (s *Scene) ToggleAutoRotate() bool {
	s.autoRotate = !s.autoRotate
	return s.autoRotate
}

// AutoRotate reports whether the camera is auto-rotating
func (s *Scene) AutoRotate() bool {
	return s.autoRotate
}

// Reset restores the default mode, camera and zoom and clears hover
// and selection
func (s *Scene) Reset() {
	s.reset()
	if s.onHover != nil {
		s.onHover(nil)
	}
}

func (s *Scene) reset() {
	s.mode = domain.ModeDefault
	s.hovered = nil
	s.selected = nil
	s.viewport = domain.DefaultViewport
	s.zoom = 1
	s.autoRotate = false
	s.camera = Camera{Position: domain.Vec3{Y: cameraHeight, Z: 20}}
}

func (s *Scene) isSelected(id string) bool {
	return s.selected != nil && s.selected.ID == id
}

func (s *Scene) isHovered(id string) bool {
	return s.hovered != nil && s.hovered.ID == id
}

func (s *Scene) touches(c domain.Connection) bool {
	return s.isHovered(c.From) || s.isHovered(c.To) ||
		s.isSelected(c.From) || s.isSelected(c.To)
}
