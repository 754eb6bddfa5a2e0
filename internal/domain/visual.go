package domain

import "math"

// Zoom limits for the camera
const (
	MinZoom    = 0.1
	MaxZoom    = 5.0
	ZoomFactor = 1.2

	// baseFootprint is the viewport edge length at zoom 1
	baseFootprint = 20.0
)

// NodeSize is the sphere radius for a node. Hierarchy mode draws nodes
// slightly smaller so the rings stay readable.
func NodeSize(importance float64, mode ViewMode) float64 {
	size := clamp(finiteOr0(importance)/10, 0.5, 2)
	if mode == ModeHierarchy {
		size *= 0.8
	}
	return size
}

// EdgeOpacity is the resting opacity of connection lines
func EdgeOpacity(mode ViewMode, highlighted bool) float64 {
	switch {
	case highlighted:
		return 0.9
	case mode == ModeTimeline:
		return 0.3
	default:
		return 0.6
	}
}

// EdgeWidth is the polyline width for a connection
func EdgeWidth(highlighted bool) float64 {
	if highlighted {
		return 3
	}
	return 1
}

// ZoomIn returns the next zoom level, capped at MaxZoom
func ZoomIn(zoom float64) float64 {
	return math.Min(normalizeZoom(zoom)*ZoomFactor, MaxZoom)
}

// ZoomOut returns the previous zoom level, floored at MinZoom
func ZoomOut(zoom float64) float64 {
	return math.Max(normalizeZoom(zoom)/ZoomFactor, MinZoom)
}

// Footprint is the viewport edge length at a zoom level
func Footprint(zoom float64) float64 {
	return baseFootprint / normalizeZoom(zoom)
}

func normalizeZoom(zoom float64) float64 {
	if !isFinite(zoom) || zoom <= 0 {
		return 1
	}
	return clamp(zoom, MinZoom, MaxZoom)
}
