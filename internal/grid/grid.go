// Package grid implements the binary pixel grid every extraction stage
// consumes. A Grid is row-major with a fixed width and height; foreground
// cells are part of a glyph stroke. Stages borrow grids read-only, so a
// single grid may feed several stages concurrently.
package grid

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/panelkit/lettering/internal/geometry"
)

// Grid is a rectangular foreground/background pixel plane.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// New returns an all-background grid of the given dimensions. Non-positive
// dimensions yield a zero-size grid.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// Width returns the grid width in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in pixels.
func (g *Grid) Height() int { return g.height }

// At reports whether the pixel (x, y) is foreground. Coordinates outside
// the grid read as background.
func (g *Grid) At(x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return false
	}
	return g.cells[y*g.width+x]
}

// Set marks the pixel (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, foreground bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = foreground
}

// Count returns the number of foreground pixels.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Crop returns a copy of the pixels covered by r. Portions of r outside
// the grid read as background.
func (g *Grid) Crop(r geometry.Rect) *Grid {
	out := New(r.Width, r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out.Set(x, y, g.At(r.X+x, r.Y+y))
		}
	}
	return out
}

// Centroid returns the arithmetic center of the foreground pixels. The
// boolean is false when the grid holds no foreground at all.
func (g *Grid) Centroid() (int, int, bool) {
	sumX, sumY, n := 0, 0, 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] {
				sumX += x
				sumY += y
				n++
			}
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	return sumX / n, sumY / n, true
}

// Outline returns a grid containing only the border pixels of g: foreground
// pixels that touch background or the image edge in one of the four axis
// directions.
func (g *Grid) Outline() *Grid {
	out := New(g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !g.At(x, y) {
				continue
			}
			border := x == 0 || x == g.width-1 || y == 0 || y == g.height-1 ||
				!g.At(x+1, y) || !g.At(x-1, y) || !g.At(x, y+1) || !g.At(x, y-1)
			if border {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// Discretize reduces g into a grid of points, one per pointSize x pointSize
// box. A point is foreground when the box's foreground density reaches
// density. The result is (width/pointSize) x (height/pointSize); trailing
// pixels that do not fill a box are dropped.
func (g *Grid) Discretize(pointSize int, density float64) *Grid {
	if pointSize <= 0 {
		return New(0, 0)
	}
	out := New(g.width/pointSize, g.height/pointSize)
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			if g.boxDensity(x*pointSize, y*pointSize, pointSize) >= density {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// Boxize applies the same density test as Discretize but keeps the grid at
// its original size: each output pixel looks at the pointSize box anchored
// at it.
func (g *Grid) Boxize(pointSize int, density float64) *Grid {
	out := New(g.width, g.height)
	if pointSize <= 0 {
		return out
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.boxDensity(x, y, pointSize) >= density {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

func (g *Grid) boxDensity(x, y, pointSize int) float64 {
	count := 0
	for dy := 0; dy < pointSize; dy++ {
		for dx := 0; dx < pointSize; dx++ {
			if g.At(x+dx, y+dy) {
				count++
			}
		}
	}
	return float64(count) / float64(pointSize*pointSize)
}

// BinarizeMode selects how FromImage decides foreground.
type BinarizeMode int

const (
	// FixedLevel thresholds on the 8-bit gray value; pixels at or below
	// Level become foreground. Suits cleanly rendered lettering.
	FixedLevel BinarizeMode = iota

	// Perceptual thresholds on CIE Lab lightness; pixels darker than
	// Lightness become foreground. More stable on anti-aliased or tinted
	// input.
	Perceptual
)

// Binarize configures image-to-grid conversion.
type Binarize struct {
	Mode      BinarizeMode
	Level     uint8   // FixedLevel cut, 0-255
	Lightness float64 // Perceptual cut, 0.0-1.0
}

// DefaultBinarize returns the fixed-level configuration used for rendered
// or scanned lettering.
func DefaultBinarize() Binarize {
	return Binarize{Mode: FixedLevel, Level: 128, Lightness: 0.5}
}

// FromImage converts a decoded image into a binary grid. Dark pixels are
// foreground; the cut is chosen by opts.
func FromImage(img image.Image, opts Binarize) *Grid {
	bounds := img.Bounds()
	out := New(bounds.Dx(), bounds.Dy())

	switch opts.Mode {
	case Perceptual:
		for y := 0; y < out.height; y++ {
			for x := 0; x < out.width; x++ {
				c, ok := colorful.MakeColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
				if !ok {
					continue // fully transparent reads as background
				}
				l, _, _ := c.Lab()
				out.Set(x, y, l < opts.Lightness)
			}
		}
	default:
		gray := segment.Threshold(img, opts.Level)
		for y := 0; y < out.height; y++ {
			for x := 0; x < out.width; x++ {
				out.Set(x, y, gray.GrayAt(gray.Bounds().Min.X+x, gray.Bounds().Min.Y+y).Y == 0)
			}
		}
	}
	return out
}
