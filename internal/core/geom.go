// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned rectangle in screen cells.
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

// Box is an axis-aligned bounding box in field units.
// Simulations work in Box space; the renderer maps it onto cells.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 {
	return b.X + b.W/2
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// ClampInside returns the box moved so it lies fully within [0,w]x[0,h].
// Both axes are clamped the same way. A box larger than the bounds is
// pinned to the top-left corner.
func (b Box) ClampInside(w, h float64) Box {
	b.X = ClampF(b.X, 0, w-b.W)
	b.Y = ClampF(b.Y, 0, h-b.H)
	if b.X < 0 {
		b.X = 0
	}
	if b.Y < 0 {
		b.Y = 0
	}
	return b
}

// ToCells maps the box onto a cell grid using the given scale factors.
// The result is at least one cell wide and tall so small entities stay visible.
func (b Box) ToCells(sx, sy float64) Rect {
	x := int(b.X * sx)
	y := int(b.Y * sy)
	w := int(b.Right()*sx) - x
	h := int(b.Bottom()*sy) - y
	return NewRect(x, y, Max(w, 1), Max(h, 1))
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
