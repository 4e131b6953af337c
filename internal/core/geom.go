// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Box is an axis-aligned bounding box in field units.
// The simulation works in these continuous coordinates; the renderer maps
// them to cells through a Viewport.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewBox creates a box with the given position and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the trailing edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Overlaps reports strict AABB overlap. Boxes that only touch along an
// edge do not overlap.
func (b Box) Overlaps(other Box) bool {
	return b.X < other.Right() &&
		b.Right() > other.X &&
		b.Y < other.Bottom() &&
		b.Bottom() > other.Y
}

// Viewport maps field coordinates onto a screen of cells.
type Viewport struct {
	FieldW, FieldH   float64
	ScreenW, ScreenH int
	OffsetY          int // Rows reserved above the field (HUD)
}

// NewViewport creates a viewport that stretches the field over the screen
// below offsetY rows.
func NewViewport(fieldW, fieldH float64, screenW, screenH, offsetY int) Viewport {
	return Viewport{
		FieldW:  fieldW,
		FieldH:  fieldH,
		ScreenW: screenW,
		ScreenH: screenH,
		OffsetY: offsetY,
	}
}

// CellX converts a field x-coordinate to a column.
func (v Viewport) CellX(x float64) int {
	if v.FieldW <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(v.ScreenW) / v.FieldW))
}

// CellY converts a field y-coordinate to a row.
func (v Viewport) CellY(y float64) int {
	rows := v.ScreenH - v.OffsetY
	if v.FieldH <= 0 || rows <= 0 {
		return v.OffsetY
	}
	return v.OffsetY + int(math.Floor(y*float64(rows)/v.FieldH))
}

// Rect converts a field box to the cells it covers. Any box with a
// positive size covers at least one cell.
func (v Viewport) Rect(b Box) Rect {
	x0, y0 := v.CellX(b.X), v.CellY(b.Y)
	x1, y1 := v.CellX(b.Right()), v.CellY(b.Bottom())
	w := Max(x1-x0, 1)
	h := Max(y1-y0, 1)
	return NewRect(x0, y0, w, h)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
