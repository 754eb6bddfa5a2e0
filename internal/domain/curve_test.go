package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCurve_Endpoints(t *testing.T) {
	pairs := [][2]Vec3{
		{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}},
		{{X: -4, Y: 1, Z: 4}, {X: 4, Y: 1, Z: 2}},
		{{X: 3, Y: -1, Z: 6}, {X: 3, Y: -1, Z: 6}},
		{{X: 1e6, Y: -1e6, Z: 0}, {X: -1e6, Y: 1e6, Z: 5}},
	}

	for _, lift := range []float64{-1, -0.3, 0, 0.7, 0.999} {
		for _, p := range pairs {
			points := BuildCurve(p[0], p[1], lift, CurveSegments)

			require.GreaterOrEqual(t, len(points), 2)
			assert.True(t, Renderable(points))
			assert.Len(t, points, CurveSegments+1)

			first, last := points[0], points[len(points)-1]
			assert.InDelta(t, 0, first.DistanceTo(p[0]), 1e-9)
			assert.InDelta(t, 0, last.DistanceTo(p[1]), 1e-9)
		}
	}
}

func TestBuildCurve_LiftBendsMidpoint(t *testing.T) {
	start := Vec3{X: 0}
	end := Vec3{X: 10}

	flat := BuildCurve(start, end, 0, 2)
	bent := BuildCurve(start, end, 1, 2)

	require.Len(t, flat, 3)
	require.Len(t, bent, 3)
	assert.Equal(t, 0.0, flat[1].Y)
	// Bezier midpoint sits halfway between the chord and the control point
	assert.InDelta(t, 0.5, bent[1].Y, 1e-9)
}

func TestBuildCurve_LiftIsBounded(t *testing.T) {
	points := BuildCurve(Vec3{}, Vec3{X: 2}, 50, 2)
	require.Len(t, points, 3)
	assert.InDelta(t, 0.5, points[1].Y, 1e-9)
}

func TestBuildCurve_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		start Vec3
		end   Vec3
		lift  float64
	}{
		{"NaN start", Vec3{X: math.NaN(), Y: 1, Z: 1}, Vec3{X: 5}, 0.2},
		{"infinite end", Vec3{}, Vec3{X: math.Inf(1), Y: math.Inf(-1)}, 0.2},
		{"NaN lift", Vec3{}, Vec3{X: 3}, math.NaN()},
		{"infinite lift", Vec3{}, Vec3{X: 3}, math.Inf(1)},
		{"overflowing span", Vec3{X: math.MaxFloat64}, Vec3{X: -math.MaxFloat64}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := BuildCurve(tt.start, tt.end, tt.lift, CurveSegments)
			require.GreaterOrEqual(t, len(points), 2)
			for _, p := range points {
				assert.True(t, p.IsFinite(), "point %v", p)
			}
		})
	}
}

func TestBuildCurve_NaNStartIsSanitized(t *testing.T) {
	points := BuildCurve(Vec3{X: math.NaN(), Y: 2, Z: 3}, Vec3{X: 4}, 0, CurveSegments)
	assert.Equal(t, Vec3{X: 0, Y: 2, Z: 3}, points[0])
}

func TestRenderable(t *testing.T) {
	assert.False(t, Renderable(nil))
	assert.False(t, Renderable([]Vec3{{}}))
	assert.False(t, Renderable([]Vec3{{}, {X: math.NaN()}}))
	assert.True(t, Renderable([]Vec3{{}, {X: 1}}))
}

func TestCurveBuilder_Lift(t *testing.T) {
	b := NewCurveBuilder(42, 0)
	assert.Equal(t, CurveSegments, b.Segments)

	for _, c := range SeedConnections() {
		lift := b.Lift(c.Key())
		assert.GreaterOrEqual(t, lift, -1.0)
		assert.Less(t, lift, 1.0)
		assert.Equal(t, lift, b.Lift(c.Key()), "lift must be stable per edge")
	}
}

func TestCurveBuilder_Build(t *testing.T) {
	b := NewCurveBuilder(1, 10)
	points := b.Build("a->b:related", Vec3{X: -1}, Vec3{X: 1})
	assert.Len(t, points, 11)
	assert.Equal(t, points, b.Build("a->b:related", Vec3{X: -1}, Vec3{X: 1}))
}
