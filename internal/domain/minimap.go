package domain

import "math"

const (
	// MinimapMargin is the pixel inset kept free on every side of the minimap
	MinimapMargin = 10
	// minSpan replaces a zero-width or zero-height bounding box
	minSpan = 1.0
	// minDotRadius is the smallest radius a node is drawn with
	minDotRadius = 2.0
)

// CategoryColors maps categories to their display color
var CategoryColors = map[Category]string{
	CategoryTechnical: "#2196F3",
	CategoryBusiness:  "#4CAF50",
	CategoryProcess:   "#FF9800",
	CategoryPolicy:    "#9C27B0",
	CategoryTraining:  "#F44336",
	CategoryGeneral:   "#607D8B",
}

// RelationshipColors maps relationship types to their edge color
var RelationshipColors = map[RelationshipType]string{
	RelationshipReferences:   "#2196F3",
	RelationshipRelated:      "#4CAF50",
	RelationshipPrerequisite: "#FF9800",
	RelationshipFollows:      "#9C27B0",
	RelationshipContains:     "#F44336",
}

// FallbackColor is used for unknown categories and relationships
const FallbackColor = "#607D8B"

// ViewportColor is the stroke color of the minimap viewport rectangle
const ViewportColor = "#2196F3"

// CategoryColor returns the display color for a category
func CategoryColor(c Category) string {
	if color, ok := CategoryColors[c]; ok {
		return color
	}
	return FallbackColor
}

// RelationshipColor returns the edge color for a relationship type
func RelationshipColor(r RelationshipType) string {
	if color, ok := RelationshipColors[r]; ok {
		return color
	}
	return FallbackColor
}

// MapPoint is a resolved node as seen from above
type MapPoint struct {
	ID         string
	X          float64
	Z          float64
	Importance float64
	Category   Category
}

// Circle is a minimap node marker in pixel space
type Circle struct {
	ID     string
	X      float64
	Y      float64
	Radius float64
	Color  string
}

// Rect is an axis-aligned rectangle in pixel space
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  string
}

// DrawList holds the primitives for one minimap frame
type DrawList struct {
	Circles  []Circle
	Viewport *Rect
}

// Empty reports whether there is nothing to draw
func (d DrawList) Empty() bool {
	return len(d.Circles) == 0 && d.Viewport == nil
}

// MinimapTransform maps ground-plane (X, Z) to minimap pixels with a
// uniform scale
type MinimapTransform struct {
	MinX   float64
	MinZ   float64
	Scale  float64
	Margin float64
}

// NewMinimapTransform fits the bounds of points into a width x height
// canvas. It returns false when there are no points or the canvas has
// no drawable area.
func NewMinimapTransform(points []MapPoint, width, height float64) (MinimapTransform, bool) {
	if len(points) == 0 {
		return MinimapTransform{}, false
	}
	innerW := width - 2*MinimapMargin
	innerH := height - 2*MinimapMargin
	if !isFinite(innerW) || !isFinite(innerH) || innerW <= 0 || innerH <= 0 {
		return MinimapTransform{}, false
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		x, z := finiteOr0(p.X), finiteOr0(p.Z)
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minZ = math.Min(minZ, z)
		maxZ = math.Max(maxZ, z)
	}

	spanX := maxX - minX
	spanZ := maxZ - minZ
	if !isFinite(spanX) || spanX < minSpan {
		spanX = minSpan
	}
	if !isFinite(spanZ) || spanZ < minSpan {
		spanZ = minSpan
	}

	scale := math.Min(innerW/spanX, innerH/spanZ)
	if !isFinite(scale) || scale <= 0 {
		return MinimapTransform{}, false
	}

	return MinimapTransform{
		MinX:   minX,
		MinZ:   minZ,
		Scale:  scale,
		Margin: MinimapMargin,
	}, true
}

// ToPixel maps a world (x, z) to minimap pixels
func (t MinimapTransform) ToPixel(x, z float64) (float64, float64) {
	px := t.Margin + (x-t.MinX)*t.Scale
	py := t.Margin + (z-t.MinZ)*t.Scale
	return finiteOr0(px), finiteOr0(py)
}

// ToWorld maps minimap pixels back to a world (x, z)
func (t MinimapTransform) ToWorld(px, py float64) (float64, float64) {
	if t.Scale == 0 {
		return 0, 0
	}
	x := (px-t.Margin)/t.Scale + t.MinX
	z := (py-t.Margin)/t.Scale + t.MinZ
	return finiteOr0(x), finiteOr0(z)
}

// DotRadius is the minimap radius for a node of the given importance
func DotRadius(importance float64) float64 {
	return math.Max(minDotRadius, finiteOr0(importance)/5)
}

// Project computes the minimap primitives for points and the current
// viewport. Zero points produce an empty draw list.
func Project(points []MapPoint, viewport *Viewport, width, height float64) DrawList {
	t, ok := NewMinimapTransform(points, width, height)
	if !ok {
		return DrawList{}
	}

	list := DrawList{Circles: make([]Circle, 0, len(points))}
	for _, p := range points {
		x, y := t.ToPixel(finiteOr0(p.X), finiteOr0(p.Z))
		list.Circles = append(list.Circles, Circle{
			ID:     p.ID,
			X:      x,
			Y:      y,
			Radius: DotRadius(p.Importance),
			Color:  CategoryColor(p.Category),
		})
	}

	if viewport != nil {
		v := viewport.Sanitized()
		cx, cy := t.ToPixel(v.X, v.Z)
		w := finiteOr0(v.Width * t.Scale)
		h := finiteOr0(v.Height * t.Scale)
		list.Viewport = &Rect{
			X:      cx - w/2,
			Y:      cy - h/2,
			Width:  w,
			Height: h,
			Color:  ViewportColor,
		}
	}

	return list
}

// Unproject maps a minimap click back to a world (x, z). It returns
// false when there are no points to derive the transform from.
func Unproject(px, py float64, points []MapPoint, width, height float64) (float64, float64, bool) {
	if !isFinite(px) || !isFinite(py) {
		return 0, 0, false
	}
	t, ok := NewMinimapTransform(points, width, height)
	if !ok {
		return 0, 0, false
	}
	x, z := t.ToWorld(px, py)
	return x, z, true
}
