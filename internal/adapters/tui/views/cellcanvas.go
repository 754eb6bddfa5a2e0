package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"knowmap/internal/ports"
)

type cell struct {
	r     rune
	color string
}

// CellCanvas implements ports.Canvas on a grid of terminal cells.
// A cell is twice as tall as it is wide, so the drawing surface has
// two vertical pixels per row and dots keep their aspect. A scaled
// canvas multiplies both pixel dimensions by its scale.
type CellCanvas struct {
	cols, rows int
	scale      int
	cells      []cell
}

// Ensure CellCanvas implements Canvas
var _ ports.Canvas = (*CellCanvas)(nil)

// NewCellCanvas creates a blank canvas of cols x rows cells
func NewCellCanvas(cols, rows int) *CellCanvas {
	return NewScaledCellCanvas(cols, rows, 1)
}

// NewScaledCellCanvas creates a canvas with scale pixels per cell column
func NewScaledCellCanvas(cols, rows, scale int) *CellCanvas {
	cols, rows, scale = max(cols, 0), max(rows, 0), max(scale, 1)
	c := &CellCanvas{cols: cols, rows: rows, scale: scale, cells: make([]cell, cols*rows)}
	c.Clear()
	return c
}

func (c *CellCanvas) Width() int  { return c.cols * c.scale }
func (c *CellCanvas) Height() int { return c.rows * 2 * c.scale }

// CellCenter returns the pixel at the middle of a cell
func (c *CellCanvas) CellCenter(col, row int) (float64, float64) {
	s := float64(c.scale)
	return (float64(col) + 0.5) * s, (float64(row)*2 + 1) * s
}

// Cols returns the grid width in cells
func (c *CellCanvas) Cols() int { return c.cols }

// Rows returns the grid height in cells
func (c *CellCanvas) Rows() int { return c.rows }

// Clear blanks every cell
func (c *CellCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

// Circle marks the cell under (x, y). Large radii get a heavier glyph.
func (c *CellCanvas) Circle(x, y, r float64, color string) {
	glyph := '•'
	if r >= 8 {
		glyph = '●'
	}
	col, row := c.cellAt(x, y)
	c.Set(col, row, glyph, color)
}

// Rect draws a box outline
func (c *CellCanvas) Rect(x, y, w, h float64, color string) {
	left, top := c.cellAt(x, y)
	right, bottom := c.cellAt(x+w, y+h)
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}

	for col := left + 1; col < right; col++ {
		c.Set(col, top, '─', color)
		c.Set(col, bottom, '─', color)
	}
	for row := top + 1; row < bottom; row++ {
		c.Set(left, row, '│', color)
		c.Set(right, row, '│', color)
	}
	c.Set(left, top, '┌', color)
	c.Set(right, top, '┐', color)
	c.Set(left, bottom, '└', color)
	c.Set(right, bottom, '┘', color)
}

// Line plots a straight run of glyphs between two pixel positions,
// leaving occupied cells alone
func (c *CellCanvas) Line(x0, y0, x1, y1 float64, glyph rune, color string) {
	c0, r0 := c.cellAt(x0, y0)
	c1, r1 := c.cellAt(x1, y1)

	steps := max(abs(c1-c0), abs(r1-r0))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := int(math.Round(float64(c0) + t*float64(c1-c0)))
		row := int(math.Round(float64(r0) + t*float64(r1-r0)))
		if c.At(col, row) == ' ' {
			c.Set(col, row, glyph, color)
		}
	}
}

// Text writes s starting at a cell, clipped to the grid
func (c *CellCanvas) Text(col, row int, s string, color string) {
	for _, r := range s {
		c.Set(col, row, r, color)
		col++
	}
}

// Set writes one cell. Out-of-range writes are ignored.
func (c *CellCanvas) Set(col, row int, r rune, color string) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell{r: r, color: color}
}

// At returns the rune in a cell, or 0 outside the grid
func (c *CellCanvas) At(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.cells[row*c.cols+col].r
}

// String renders the grid without color
func (c *CellCanvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.cells[row*c.cols+col].r)
		}
	}
	return b.String()
}

// Render renders the grid, coloring runs of cells that share a color
func (c *CellCanvas) Render() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && line[end].color == line[start].color {
				end++
			}

			var run strings.Builder
			for _, cl := range line[start:end] {
				run.WriteRune(cl.r)
			}
			if color := line[start].color; color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = end
		}
	}
	return b.String()
}

func (c *CellCanvas) cellAt(x, y float64) (int, int) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return -1, -1
	}
	s := float64(c.scale)
	return int(math.Floor(x / s)), int(math.Floor(y / (2 * s)))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
