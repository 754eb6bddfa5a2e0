package views

import (
	"math"
	"sort"

	"knowmap/internal/adapters/tui/styles"
	"knowmap/internal/application"
	"knowmap/internal/domain"
)

const (
	MinimapCols  = 26
	MinimapRows  = 7
	minimapScale = 8

	// RotateStep is the auto-rotation increment per tick, in radians
	RotateStep = 0.03
)

// MapModel draws the composed scene from above and keeps the minimap
// in step with it
type MapModel struct {
	ViewState
	scene      *application.Scene
	minimap    *application.Minimap
	miniCanvas *CellCanvas

	frame    application.Frame
	cursor   int
	cursorID string
	angle    float64
}

// NewMapModel creates a map view over scene
func NewMapModel(scene *application.Scene) *MapModel {
	canvas := NewScaledCellCanvas(MinimapCols, MinimapRows, minimapScale)
	minimap := application.NewMinimap(canvas)
	minimap.Bind(scene)

	return &MapModel{
		scene:      scene,
		minimap:    minimap,
		miniCanvas: canvas,
		cursor:     -1,
	}
}

// SetFrame replaces the drawn frame. The cursor follows the hovered node
// and otherwise stays on the node it was on, if still drawn.
func (m *MapModel) SetFrame(frame application.Frame) {
	m.frame = frame
	if h := m.scene.Hovered(); h != nil {
		m.cursorID = h.ID
	}
	m.cursor = m.indexOf(m.cursorID)
	m.minimap.Sync(frame)
}

// Frame returns the frame currently drawn
func (m *MapModel) Frame() application.Frame {
	return m.frame
}

// MoveCursor hovers the next (delta > 0) or previous node in reading
// order and returns it
func (m *MapModel) MoveCursor(delta int) *domain.Node {
	order := m.readingOrder()
	if len(order) == 0 {
		return nil
	}

	pos := 0
	if m.cursor >= 0 {
		for i, idx := range order {
			if idx == m.cursor {
				pos = (i + delta + len(order)) % len(order)
				break
			}
		}
	} else if delta < 0 {
		pos = len(order) - 1
	}

	m.cursor = order[pos]
	node := m.frame.Nodes[m.cursor].Node
	m.cursorID = node.ID
	m.scene.Hover(&node, true)
	return &node
}

// FocusNode hovers the node with id, if it is drawn
func (m *MapModel) FocusNode(id string) *domain.Node {
	idx := m.indexOf(id)
	if idx < 0 {
		return nil
	}
	m.cursor = idx
	node := m.frame.Nodes[idx].Node
	m.cursorID = node.ID
	m.scene.Hover(&node, true)
	return &node
}

// CursorNode returns the node under the cursor, or nil
func (m *MapModel) CursorNode() *domain.Node {
	if m.cursor < 0 || m.cursor >= len(m.frame.Nodes) {
		return nil
	}
	node := m.frame.Nodes[m.cursor].Node
	return &node
}

// Rotate turns the view about the viewport centre
func (m *MapModel) Rotate(step float64) {
	m.angle = math.Mod(m.angle+step, 2*math.Pi)
}

// ResetRotation restores the unrotated view
func (m *MapModel) ResetRotation() {
	m.angle = 0
}

// Minimap exposes the minimap synchronizer
func (m *MapModel) Minimap() *application.Minimap {
	return m.minimap
}

// NodeAt returns the drawn node closest to a cell, within one cell
func (m *MapModel) NodeAt(col, row int) *domain.Node {
	p := m.projector()
	best, bestDist := -1, 2.0
	for i, n := range m.frame.Nodes {
		x, y := p.toPixel(n.Position)
		dc := math.Floor(x) - float64(col)
		dr := math.Floor(y/2) - float64(row)
		if d := math.Hypot(dc, dr); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil
	}
	node := m.frame.Nodes[best].Node
	return &node
}

// ClickMinimap forwards a click on a minimap cell. The scene camera
// follows through the minimap binding.
func (m *MapModel) ClickMinimap(col, row int) bool {
	if col < 0 || row < 0 || col >= m.miniCanvas.Cols() || row >= m.miniCanvas.Rows() {
		return false
	}
	px, py := m.miniCanvas.CellCenter(col, row)
	_, _, ok := m.minimap.Click(px, py)
	return ok
}

// View renders the map
func (m *MapModel) View() string {
	return m.Canvas().Render()
}

// Canvas draws the frame onto a fresh cell canvas
func (m *MapModel) Canvas() *CellCanvas {
	canvas := NewCellCanvas(m.Width, m.Height)
	if m.Width <= 0 || m.Height <= 0 {
		return canvas
	}
	p := m.projector()

	// highlighted edges first so they win contested cells
	edges := make([]application.RenderedEdge, len(m.frame.Edges))
	copy(edges, m.frame.Edges)
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Highlighted && !edges[j].Highlighted
	})
	for _, e := range edges {
		glyph := styles.EdgeGlyph
		if e.Highlighted {
			glyph = styles.HighlightedEdgeGlyph
		}
		for i := 1; i < len(e.Points); i++ {
			x0, y0 := p.toPixel(e.Points[i-1])
			x1, y1 := p.toPixel(e.Points[i])
			canvas.Line(x0, y0, x1, y1, glyph, e.Color)
		}
	}

	for i, n := range m.frame.Nodes {
		x, y := p.toPixel(n.Position)
		col, row := int(math.Floor(x)), int(math.Floor(y/2))

		glyph := styles.NodeGlyph
		switch {
		case n.Selected:
			glyph = styles.SelectedGlyph
		case n.Hovered || i == m.cursor:
			glyph = styles.HoveredGlyph
		}
		canvas.Set(col, row, glyph, n.Color)

		if n.Hovered || n.Selected || n.Highlighted || i == m.cursor {
			canvas.Text(col+2, row, Truncate(n.Node.Title, 24), "#FFFFFF")
		}
	}

	return canvas
}

// MinimapView renders the minimap, or "" while it is hidden
func (m *MapModel) MinimapView() string {
	if !m.minimap.Visible() {
		return ""
	}
	return m.miniCanvas.Render()
}

func (m *MapModel) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, n := range m.frame.Nodes {
		if n.Node.ID == id {
			return i
		}
	}
	return -1
}

// readingOrder sorts drawn nodes top to bottom, then left to right
func (m *MapModel) readingOrder() []int {
	p := m.projector()
	type placed struct {
		idx      int
		row, col float64
	}
	nodes := make([]placed, len(m.frame.Nodes))
	for i, n := range m.frame.Nodes {
		x, y := p.toPixel(n.Position)
		nodes[i] = placed{idx: i, row: math.Floor(y / 2), col: x}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].row != nodes[j].row {
			return nodes[i].row < nodes[j].row
		}
		return nodes[i].col < nodes[j].col
	})

	order := make([]int, len(nodes))
	for i, n := range nodes {
		order[i] = n.idx
	}
	return order
}

// projector maps world X/Z into map pixels around the viewport centre
type projector struct {
	cx, cz     float64
	scale      float64
	midX, midY float64
	cos, sin   float64
}

func (m *MapModel) projector() projector {
	vp := m.frame.Viewport.Sanitized()
	w, h := float64(m.Width), float64(m.Height*2)

	scale := 1.0
	if vp.Width > 0 && vp.Height > 0 && w > 0 && h > 0 {
		scale = math.Min(w/vp.Width, h/vp.Height)
	}
	return projector{
		cx:    vp.X,
		cz:    vp.Z,
		scale: scale,
		midX:  w / 2,
		midY:  h / 2,
		cos:   math.Cos(m.angle),
		sin:   math.Sin(m.angle),
	}
}

func (p projector) toPixel(v domain.Vec3) (float64, float64) {
	dx, dz := v.X-p.cx, v.Z-p.cz
	rx := dx*p.cos - dz*p.sin
	rz := dx*p.sin + dz*p.cos
	return p.midX + rx*p.scale, p.midY + rz*p.scale
}
