package ports

// Canvas is a pixel-addressable 2D drawing surface for the minimap
type Canvas interface {
	Width() int
	Height() int

	Clear()
	Circle(x, y, radius float64, color string)
	Rect(x, y, width, height float64, color string)
}
