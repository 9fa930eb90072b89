// Package render generates test images: character strings drawn with a
// fixed-size bitmap face and converted to binary grids. It stands in for
// the font-rendering collaborator so the extraction stages can be
// exercised against input with known content.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/panelkit/lettering/internal/grid"
)

// Options controls text rendering.
type Options struct {
	// Padding is the background margin around the rendered text, in
	// pixels.
	Padding int

	// LetterSpacing is extra horizontal space between glyphs, in pixels.
	// The default face is constant-advance, so any non-negative value
	// keeps glyph boxes constant-size.
	LetterSpacing int
}

// DefaultOptions spaces glyphs far enough apart that each gets its own
// bounding box during region discovery.
func DefaultOptions() Options {
	return Options{Padding: 4, LetterSpacing: 4}
}

var face = basicfont.Face7x13

// Text renders s into a binary grid, one line, left to right.
func Text(s string, opts Options) *grid.Grid {
	metrics := face.Metrics()
	height := metrics.Height.Ceil() + 2*opts.Padding

	width := 2 * opts.Padding
	for range s {
		width += face.Advance + opts.LetterSpacing
	}
	if width <= 2*opts.Padding {
		width = 2 * opts.Padding
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(opts.Padding),
			Y: fixed.I(opts.Padding + metrics.Ascent.Ceil()),
		},
	}
	for _, r := range s {
		drawer.DrawString(string(r))
		drawer.Dot.X += fixed.I(opts.LetterSpacing)
	}

	return grid.FromImage(img, grid.DefaultBinarize())
}

// Glyph renders a single rune into its own grid.
func Glyph(r rune) *grid.Grid {
	return Text(string(r), Options{Padding: 1})
}

// GlyphSet renders every rune of chars, keyed by rune. Shared reference
// material for classifier training.
func GlyphSet(chars string) map[rune]*grid.Grid {
	set := make(map[rune]*grid.Grid, len(chars))
	for _, r := range chars {
		set[r] = Glyph(r)
	}
	return set
}
