package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_NoPoints(t *testing.T) {
	list := Project(nil, &DefaultViewport, 200, 100)
	assert.True(t, list.Empty())

	_, _, ok := Unproject(50, 50, nil, 200, 100)
	assert.False(t, ok)
}

func TestProject_CanvasTooSmall(t *testing.T) {
	points := []MapPoint{{ID: "a", X: 1, Z: 1}}
	assert.True(t, Project(points, nil, 20, 100).Empty())
	assert.True(t, Project(points, nil, math.NaN(), 100).Empty())
}

func TestProject_SingleNodeUsesMinimumSpan(t *testing.T) {
	points := []MapPoint{{ID: "only", X: 3, Z: -2, Importance: 50, Category: CategoryPolicy}}

	list := Project(points, nil, 120, 120)
	require.Len(t, list.Circles, 1)

	c := list.Circles[0]
	assert.Equal(t, float64(MinimapMargin), c.X)
	assert.Equal(t, float64(MinimapMargin), c.Y)
	assert.Equal(t, 10.0, c.Radius)
	assert.Equal(t, "#9C27B0", c.Color)
	assert.Nil(t, list.Viewport)
}

func TestProject_CollinearNodes(t *testing.T) {
	points := []MapPoint{
		{ID: "a", X: 0, Z: 5},
		{ID: "b", X: 10, Z: 5},
	}
	list := Project(points, nil, 200, 100)
	require.Len(t, list.Circles, 2)
	for _, c := range list.Circles {
		assert.False(t, math.IsNaN(c.X) || math.IsNaN(c.Y))
	}
	assert.Equal(t, 190.0, list.Circles[1].X)
}

func TestProject_UniformScaleAndViewport(t *testing.T) {
	points := []MapPoint{
		{ID: "a", X: 0, Z: 0, Importance: 5},
		{ID: "b", X: 10, Z: 5, Importance: 95, Category: CategoryTechnical},
	}
	vp := Viewport{X: 5, Z: 2.5, Width: 2, Height: 4}

	list := Project(points, &vp, 200, 100)
	require.Len(t, list.Circles, 2)

	// inner area 180x80, spans 10x5 → scale min(18, 16) = 16
	assert.Equal(t, Circle{ID: "a", X: 10, Y: 10, Radius: 2, Color: FallbackColor}, list.Circles[0])
	assert.Equal(t, Circle{ID: "b", X: 170, Y: 90, Radius: 19, Color: "#2196F3"}, list.Circles[1])

	require.NotNil(t, list.Viewport)
	assert.Equal(t, Rect{X: 74, Y: 18, Width: 32, Height: 64, Color: ViewportColor}, *list.Viewport)
}

func TestProject_NonFiniteViewport(t *testing.T) {
	points := []MapPoint{{ID: "a"}, {ID: "b", X: 4, Z: 4}}
	vp := Viewport{X: math.NaN(), Z: math.Inf(1), Width: math.NaN(), Height: 1}

	list := Project(points, &vp, 100, 100)
	require.NotNil(t, list.Viewport)
	r := list.Viewport
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestUnproject_RoundTrip(t *testing.T) {
	points := []MapPoint{
		{ID: "a", X: -10, Z: -10},
		{ID: "b", X: 10, Z: -10},
		{ID: "c", X: 0, Z: 15},
		{ID: "d", X: 3.25, Z: 1.5},
	}
	width, height := 192.0, 96.0

	tr, ok := NewMinimapTransform(points, width, height)
	require.True(t, ok)

	for _, p := range points {
		px, py := tr.ToPixel(p.X, p.Z)
		x, z, ok := Unproject(px, py, points, width, height)
		require.True(t, ok)
		assert.InDelta(t, p.X, x, 1e-9)
		assert.InDelta(t, p.Z, z, 1e-9)
	}
}

func TestUnproject_RejectsNonFiniteClick(t *testing.T) {
	points := []MapPoint{{ID: "a"}}
	_, _, ok := Unproject(math.NaN(), 1, points, 100, 100)
	assert.False(t, ok)
}

func TestDotRadius(t *testing.T) {
	assert.Equal(t, 2.0, DotRadius(0))
	assert.Equal(t, 2.0, DotRadius(math.NaN()))
	assert.Equal(t, 20.0, DotRadius(100))
}
