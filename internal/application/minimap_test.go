package application

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowmap/internal/domain"
)

type fakeCanvas struct {
	width, height int
	ops           []string
}

func (c *fakeCanvas) Width() int  { return c.width }
func (c *fakeCanvas) Height() int { return c.height }
func (c *fakeCanvas) Clear()      { c.ops = append(c.ops, "clear") }

func (c *fakeCanvas) Circle(x, y, r float64, color string) {
	c.ops = append(c.ops, fmt.Sprintf("circle %.0f,%.0f r%.0f %s", x, y, r, color))
}

func (c *fakeCanvas) Rect(x, y, w, h float64, color string) {
	c.ops = append(c.ops, fmt.Sprintf("rect %.0f,%.0f %.0fx%.0f %s", x, y, w, h, color))
}

func twoNodeFrame() Frame {
	return Frame{
		Nodes: []RenderedNode{
			{Node: domain.Node{ID: "a", Importance: 5}, Position: domain.Vec3{}},
			{Node: domain.Node{ID: "b", Importance: 95, Category: domain.CategoryTechnical}, Position: domain.Vec3{X: 10, Z: 5}},
		},
		Viewport: domain.Viewport{X: 5, Z: 2.5, Width: 2, Height: 4},
	}
}

func TestMinimapSync_Draws(t *testing.T) {
	canvas := &fakeCanvas{width: 200, height: 100}
	m := NewMinimap(canvas)

	list := m.Sync(twoNodeFrame())
	require.Len(t, list.Circles, 2)
	assert.Equal(t, []string{
		"clear",
		"circle 10,10 r2 " + domain.FallbackColor,
		"circle 170,90 r19 #2196F3",
		"rect 74,18 32x64 " + domain.ViewportColor,
	}, canvas.ops)
}

func TestMinimapSync_EmptyLeavesCanvas(t *testing.T) {
	canvas := &fakeCanvas{width: 200, height: 100}
	m := NewMinimap(canvas)

	list := m.Sync(Frame{Viewport: domain.DefaultViewport})
	assert.True(t, list.Empty())
	assert.Empty(t, canvas.ops)

	_, _, ok := m.Click(100, 50)
	assert.False(t, ok)
}

func TestMinimapSync_Hidden(t *testing.T) {
	canvas := &fakeCanvas{width: 200, height: 100}
	m := NewMinimap(canvas)
	m.SetVisible(false)

	m.Sync(twoNodeFrame())
	assert.Empty(t, canvas.ops)
	assert.False(t, m.Visible())
}

func TestMinimapClick_PublishesViewport(t *testing.T) {
	canvas := &fakeCanvas{width: 200, height: 100}
	m := NewMinimap(canvas)
	m.Sync(twoNodeFrame())

	var got [][2]float64
	unsubscribe := m.Subscribe(func(x, z float64) {
		got = append(got, [2]float64{x, z})
	})

	x, z, ok := m.Click(170, 90)
	require.True(t, ok)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 5, z, 1e-9)
	require.Len(t, got, 1)

	unsubscribe()
	m.Click(10, 10)
	assert.Len(t, got, 1)
}

func TestMinimapClick_ListenersRunInSubscriptionOrder(t *testing.T) {
	canvas := &fakeCanvas{width: 200, height: 100}
	m := NewMinimap(canvas)
	m.Sync(twoNodeFrame())

	var order []int
	for i := 1; i <= 5; i++ {
		m.Subscribe(func(float64, float64) { order = append(order, i) })
	}
	unsubscribe := m.Subscribe(func(float64, float64) { order = append(order, 6) })
	m.Subscribe(func(float64, float64) { order = append(order, 7) })

	for range 10 {
		order = order[:0]
		_, _, ok := m.Click(170, 90)
		require.True(t, ok)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, order)
	}

	unsubscribe()
	order = order[:0]
	m.Click(170, 90)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 7}, order)
}

func TestMinimapBind_MovesScene(t *testing.T) {
	canvas := &fakeCanvas{width: 200, height: 100}
	m := NewMinimap(canvas)
	s := newTestScene(nil)

	unbind := m.Bind(s)
	defer unbind()

	m.Sync(twoNodeFrame())
	_, _, ok := m.Click(90, 50)
	require.True(t, ok)

	assert.InDelta(t, 5, s.Viewport().X, 1e-9)
	assert.InDelta(t, 2.5, s.Viewport().Z, 1e-9)
	assert.InDelta(t, 5, s.Camera().Target.X, 1e-9)
}

func TestMinimapLocate(t *testing.T) {
	m := NewMinimap(&fakeCanvas{width: 200, height: 100})
	_, _, ok := m.Locate(0, 0)
	assert.False(t, ok)

	m.Sync(twoNodeFrame())
	px, py, ok := m.Locate(10, 5)
	require.True(t, ok)
	assert.Equal(t, 170.0, px)
	assert.Equal(t, 90.0, py)
}
