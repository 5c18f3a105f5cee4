package geometry

import "fmt"

// Unbounded is the extent used for a maximum size that imposes no limit.
// It is kept well below the int range so edge arithmetic cannot overflow.
const Unbounded = 1 << 24

// Point is a position in cells, origin top-left.
type Point struct {
	X int
	Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a two-dimensional extent.
type Size struct {
	Width  int
	Height int
}

// Add returns the component-wise sum.
func (s Size) Add(o Size) Size {
	return Size{Width: s.Width + o.Width, Height: s.Height + o.Height}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Insets describes a margin on each side of a rectangle.
type Insets struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Uniform returns insets of n on every side.
func Uniform(n int) Insets {
	return Insets{Top: n, Bottom: n, Left: n, Right: n}
}

// Horizontal returns the combined left and right inset.
func (i Insets) Horizontal() int { return i.Left + i.Right }

// Vertical returns the combined top and bottom inset.
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// Rect represents an element position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectFromEdges builds a rect from its four edges.
func RectFromEdges(left, top, right, bottom int) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner (exclusive).
func (r Rect) Max() Point { return Point{X: r.Right(), Y: r.Bottom()} }

// Size returns the rect's extent.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the overlap of r and o, or the zero rect when they do
// not overlap.
func (r Rect) Intersect(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	return RectFromEdges(max(r.X, o.X), max(r.Y, o.Y), min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom()))
}

// Inset shrinks r by the given insets. The result may have negative size when
// the insets exceed the rect; callers compare edges rather than areas.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Horizontal(),
		Height: r.Height - in.Vertical(),
	}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// WithPosition returns r moved so its top-left corner is at p.
func (r Rect) WithPosition(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi int) int {
	if v < lo || hi < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
