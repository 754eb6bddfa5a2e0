package domain

import (
	"fmt"
	"math"
)

// Vec3 is a point in world space
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Origin is the fallback for every malformed coordinate
var Origin = Vec3{}

// Sanitize converts a raw coordinate slice into a finite Vec3.
// Missing or wrong-length input yields the origin; otherwise each
// non-finite component is replaced by 0 and the rest pass through.
func Sanitize(coords []float64) Vec3 {
	if len(coords) != 3 {
		return Origin
	}
	return Vec3{
		X: finiteOr0(coords[0]),
		Y: finiteOr0(coords[1]),
		Z: finiteOr0(coords[2]),
	}
}

// Sanitized replaces each non-finite component with 0
func (v Vec3) Sanitized() Vec3 {
	return Vec3{X: finiteOr0(v.X), Y: finiteOr0(v.Y), Z: finiteOr0(v.Z)}
}

// IsFinite reports whether every component is a finite number
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Lerp interpolates linearly from v towards o by t
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// DistanceTo returns the Euclidean distance to o
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Slice returns the components as [x, y, z]
func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteOr0(f float64) float64 {
	if isFinite(f) {
		return f
	}
	return 0
}
