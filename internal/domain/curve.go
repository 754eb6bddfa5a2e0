package domain

import (
	"hash/fnv"
	"math/rand/v2"
)

const (
	// CurveSegments is the number of Bezier segments sampled per edge
	CurveSegments = 20
	// maxCurveLift bounds the vertical midpoint offset to [-1, 1)
	maxCurveLift = 1.0
)

// unitX is the fallback second point when no curve can be produced
var unitX = Vec3{X: 1}

// BuildCurve samples a quadratic Bezier from start to end whose control
// point is the midpoint lifted by lift on Y. The result always has at
// least two finite points.
func BuildCurve(start, end Vec3, lift float64, segments int) []Vec3 {
	start = start.Sanitized()
	end = end.Sanitized()
	if segments < 1 {
		segments = CurveSegments
	}

	mid := start.Lerp(end, 0.5)
	exact := mid
	if isFinite(lift) {
		mid.Y += clamp(lift, -maxCurveLift, maxCurveLift)
	}
	if !mid.IsFinite() {
		mid = exact
	}
	if !mid.IsFinite() {
		mid = Vec3{
			X: start.X/2 + end.X/2,
			Y: start.Y/2 + end.Y/2,
			Z: start.Z/2 + end.Z/2,
		}
	}

	points := make([]Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		p := quadraticBezier(start, mid, end, float64(i)/float64(segments))
		if p.IsFinite() {
			points = append(points, p)
		}
	}

	if len(points) < 2 {
		return []Vec3{start, start.Add(unitX).Sanitized()}
	}
	return points
}

// Renderable reports whether a point sequence can be drawn as a polyline
func Renderable(points []Vec3) bool {
	if len(points) < 2 {
		return false
	}
	for _, p := range points {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

func quadraticBezier(p0, p1, p2 Vec3, t float64) Vec3 {
	u := 1 - t
	a, b, c := u*u, 2*u*t, t*t
	return Vec3{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
		Z: a*p0.Z + b*p1.Z + c*p2.Z,
	}
}

// CurveBuilder produces edge curves with a reproducible lift per edge
type CurveBuilder struct {
	Seed     uint64
	Segments int
}

// NewCurveBuilder creates a curve builder. Non-positive segment counts
// use CurveSegments.
func NewCurveBuilder(seed uint64, segments int) *CurveBuilder {
	if segments < 1 {
		segments = CurveSegments
	}
	return &CurveBuilder{Seed: seed, Segments: segments}
}

// Build returns the curve for the edge identified by key
func (b *CurveBuilder) Build(key string, start, end Vec3) []Vec3 {
	return BuildCurve(start, end, b.Lift(key), b.Segments)
}

// Lift returns the vertical offset used for an edge, in [-1, 1)
func (b *CurveBuilder) Lift(key string) float64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	rng := rand.New(rand.NewPCG(b.Seed, h.Sum64()))
	return rng.Float64()*2 - 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
