package render

import (
	"testing"

	"github.com/panelkit/lettering/internal/classify"
)

func TestText_HasInk(t *testing.T) {
	g := Text("AB", DefaultOptions())
	if g.Width() <= 0 || g.Height() <= 0 {
		t.Fatalf("Expected a non-empty grid, got %dx%d", g.Width(), g.Height())
	}
	if g.Count() == 0 {
		t.Fatal("Expected rendered text to produce foreground pixels")
	}
}

func TestText_PaddingStaysClear(t *testing.T) {
	opts := DefaultOptions()
	g := Text("X", opts)

	for x := 0; x < opts.Padding; x++ {
		for y := 0; y < g.Height(); y++ {
			if g.At(x, y) {
				t.Fatalf("Expected clear left padding, found ink at (%d, %d)", x, y)
			}
		}
	}
	for y := 0; y < opts.Padding; y++ {
		for x := 0; x < g.Width(); x++ {
			if g.At(x, y) {
				t.Fatalf("Expected clear top padding, found ink at (%d, %d)", x, y)
			}
		}
	}
}

func TestText_Empty(t *testing.T) {
	g := Text("", DefaultOptions())
	if g.Count() != 0 {
		t.Errorf("Expected no ink for an empty string, got %d pixels", g.Count())
	}
}

func TestGlyphSet(t *testing.T) {
	set := GlyphSet("abc")
	if len(set) != 3 {
		t.Fatalf("Expected 3 glyphs, got %d", len(set))
	}
	for r, g := range set {
		if g.Count() == 0 {
			t.Errorf("Expected ink for glyph %q", r)
		}
	}
}

func TestGlyph_Distinguishable(t *testing.T) {
	// Rendered glyphs must differ enough for density-map classification;
	// this is the contract the spot-check harness relies on.
	a := Glyph('E')
	b := Glyph('I')

	da := classify.DensityMap(a, 3, 3)
	db := classify.DensityMap(b, 3, 3)
	if da == nil || db == nil {
		t.Fatal("Expected density maps for rendered glyphs")
	}
	if classify.MapDistance(da, db) == 0 {
		t.Error("Expected distinct glyphs to have distinct density maps")
	}
}
