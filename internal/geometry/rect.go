// Package geometry provides the integer rectangle and interval math shared
// by the extraction stages. Rectangles use pixel coordinates with a
// half-open convention: a Rect covers columns [X, X+Width) and rows
// [Y, Y+Height).
package geometry

import "sort"

// Rect is an axis-aligned bounding box over pixel coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the exclusive right edge (X + Width).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge (Y + Height).
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Area returns the number of pixels the rectangle covers.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains reports whether the pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Union returns the minimal rectangle covering both r and o. An empty
// rectangle acts as the identity.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  max(r.Right(), o.Right()) - x,
		Height: max(r.Bottom(), o.Bottom()) - y,
	}
}

// VerticalOverlap returns the length of the shared vertical extent of r
// and o, or zero when the two do not overlap vertically. Horizontal
// positions are ignored.
func (r Rect) VerticalOverlap(o Rect) int {
	top := max(r.Y, o.Y)
	bottom := min(r.Bottom(), o.Bottom())
	if bottom <= top {
		return 0
	}
	return bottom - top
}

// HorizontalOverlap returns the length of the shared horizontal extent of
// r and o, or zero when the two do not overlap horizontally.
func (r Rect) HorizontalOverlap(o Rect) int {
	left := max(r.X, o.X)
	right := min(r.Right(), o.Right())
	if right <= left {
		return 0
	}
	return right - left
}

// UnionAll returns the minimal rectangle covering every rectangle in rects.
// The zero Rect is returned for an empty input.
func UnionAll(rects []Rect) Rect {
	var out Rect
	for _, r := range rects {
		out = out.Union(r)
	}
	return out
}

// Median returns the median of values, taking the upper middle element for
// an even count. Median of an empty slice is zero.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

// Mean returns the arithmetic mean of values, or zero for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
