package application

import (
	"slices"

	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// ViewportListener receives viewport-change events from the minimap
type ViewportListener func(x, z float64)

// Minimap keeps a 2D overview of the scene in sync with the latest frame
// and turns clicks on it into viewport-change events
type Minimap struct {
	canvas    ports.Canvas
	points    []domain.MapPoint
	listeners []subscription
	nextID    int
	visible   bool
}

// NewMinimap creates a minimap drawing onto canvas
func NewMinimap(canvas ports.Canvas) *Minimap {
	return &Minimap{
		canvas:  canvas,
		visible: true,
	}
}

type subscription struct {
	id int
	fn ViewportListener
}

// Subscribe registers a listener for viewport changes and returns a
// function that removes it. Listeners run in subscription order.
func (m *Minimap) Subscribe(fn ViewportListener) func() {
	id := m.nextID
	m.nextID++
	m.listeners = append(m.listeners, subscription{id: id, fn: fn})
	return func() {
		m.listeners = slices.DeleteFunc(m.listeners, func(s subscription) bool {
			return s.id == id
		})
	}
}

// Sync projects frame onto the canvas. With no visible nodes the canvas
// is left untouched.
func (m *Minimap) Sync(frame Frame) domain.DrawList {
	m.points = frame.MapPoints()
	if !m.visible || m.canvas == nil {
		return domain.DrawList{}
	}

	vp := frame.Viewport
	list := domain.Project(m.points, &vp, float64(m.canvas.Width()), float64(m.canvas.Height()))
	if list.Empty() {
		return list
	}

	m.canvas.Clear()
	for _, c := range list.Circles {
		m.canvas.Circle(c.X, c.Y, c.Radius, c.Color)
	}
	if r := list.Viewport; r != nil {
		m.canvas.Rect(r.X, r.Y, r.Width, r.Height, r.Color)
	}
	return list
}

// Click translates a pixel on the minimap into world coordinates and
// publishes it to every listener. Clicks are ignored while the minimap
// is empty or hidden.
func (m *Minimap) Click(px, py float64) (float64, float64, bool) {
	if !m.visible || m.canvas == nil {
		return 0, 0, false
	}
	x, z, ok := domain.Unproject(px, py, m.points,
		float64(m.canvas.Width()), float64(m.canvas.Height()))
	if !ok {
		return 0, 0, false
	}
	for _, s := range slices.Clone(m.listeners) {
		s.fn(x, z)
	}
	return x, z, true
}

// Locate returns the pixel position of a world point on the minimap
func (m *Minimap) Locate(x, z float64) (float64, float64, bool) {
	if m.canvas == nil {
		return 0, 0, false
	}
	t, ok := domain.NewMinimapTransform(m.points,
		float64(m.canvas.Width()), float64(m.canvas.Height()))
	if !ok {
		return 0, 0, false
	}
	px, py := t.ToPixel(x, z)
	return px, py, true
}

// SetVisible shows or hides the minimap
func (m *Minimap) SetVisible(visible bool) {
	m.visible = visible
}

// Visible reports whether the minimap is shown
func (m *Minimap) Visible() bool {
	return m.visible
}

// Bind routes minimap clicks to the scene camera. The returned function
// undoes the binding.
func (m *Minimap) Bind(scene *Scene) func() {
	return m.Subscribe(func(x, z float64) {
		scene.MoveViewport(x, z)
	})
}
