package hittest

import "fmt"

// Point is a position in window-local cells.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Contains reports whether pt lies inside the rectangle. The origin edges are
// inside, the far edges (X+W, Y+H) are not. Empty rectangles contain nothing.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X < r.X+r.W && pt.Y >= r.Y && pt.Y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns the rectangle moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
