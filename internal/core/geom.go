// Package core provides fundamental types and utilities for the racer.
// It contains no external dependencies (especially no Bubble Tea) to keep
// game logic pure and testable.
package core

// Rect is an integer rectangle in screen cells, used by the Screen buffer.
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

// Box is an axis-aligned bounding box in world units.
// Y grows downward, so Top < Bottom for any non-empty box.
type Box struct {
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// FullBox returns the unshrunk visual box of an entity anchored at its
// top-left corner.
func FullBox(x, y, w, h float64) Box {
	return Box{Left: x, Right: x + w, Top: y, Bottom: y + h}
}

// Hitbox shrinks the w x h box at (x, y) by scale around the same midpoint.
// A scale of 1 yields the full box.
func Hitbox(x, y, w, h, scale float64) Box {
	hw := w * scale
	hh := h * scale
	left := x + (w-hw)/2
	top := y + (h-hh)/2
	return Box{Left: left, Right: left + hw, Top: top, Bottom: top + hh}
}

// Overlaps reports strict AABB intersection. Boxes that only share an
// edge or a corner do not overlap.
func Overlaps(a, b Box) bool {
	return a.Right > b.Left &&
		a.Left < b.Right &&
		a.Bottom > b.Top &&
		a.Top < b.Bottom
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
