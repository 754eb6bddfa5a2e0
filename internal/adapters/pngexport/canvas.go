package pngexport

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"knowmap/internal/ports"
)

// Background is the fill used by Clear
var Background = color.RGBA{R: 0x1E, G: 0x1E, B: 0x2E, A: 0xFF}

// Canvas implements ports.Canvas on an in-memory RGBA image
type Canvas struct {
	img *image.RGBA
}

// Ensure Canvas implements Canvas
var _ ports.Canvas = (*Canvas)(nil)

// NewCanvas creates a cleared canvas of the given size
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
	c.Clear()
	return c
}

func (c *Canvas) Width() int  { return c.img.Bounds().Dx() }
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Clear fills the canvas with Background
func (c *Canvas) Clear() {
	b := c.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c.img.SetRGBA(x, y, Background)
		}
	}
}

// Circle draws a filled disc
func (c *Canvas) Circle(cx, cy, r float64, hex string) {
	col := ParseHex(hex)
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				c.set(x, y, col)
			}
		}
	}
}

// Rect draws a one-pixel outline
func (c *Canvas) Rect(x, y, w, h float64, hex string) {
	col := ParseHex(hex)
	left, top := int(math.Round(x)), int(math.Round(y))
	right, bottom := int(math.Round(x+w)), int(math.Round(y+h))
	for px := left; px <= right; px++ {
		c.set(px, top, col)
		c.set(px, bottom, col)
	}
	for py := top; py <= bottom; py++ {
		c.set(left, py, col)
		c.set(right, py, col)
	}
}

// At returns the color at a pixel
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Image returns the backing image
func (c *Canvas) Image() image.Image {
	return c.img
}

// Encode writes the canvas as PNG
func (c *Canvas) Encode(w io.Writer) error {
	return png.Encode(w, c.img)
}

// WriteFile writes the canvas as a PNG file
func (c *Canvas) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if image.Pt(x, y).In(c.img.Bounds()) {
		c.img.SetRGBA(x, y, col)
	}
}

// ParseHex parses #RRGGBB. Anything else is mid grey.
func ParseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}
