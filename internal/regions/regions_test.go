package regions

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/panelkit/lettering/internal/geometry"
	"github.com/panelkit/lettering/internal/grid"
)

// fillRect paints a solid foreground block onto g.
func fillRect(g *grid.Grid, r geometry.Rect) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			g.Set(x, y, true)
		}
	}
}

func TestBoundingRects_TwoBlocks(t *testing.T) {
	g := grid.New(50, 25)
	fillRect(g, geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10})
	fillRect(g, geometry.Rect{X: 35, Y: 5, Width: 10, Height: 10})

	rects := BoundingRects(g)
	want := []geometry.Rect{
		{X: 5, Y: 5, Width: 10, Height: 10},
		{X: 35, Y: 5, Width: 10, Height: 10},
	}
	if diff := cmp.Diff(want, rects); diff != "" {
		t.Errorf("Bounding rects mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundingRects_EmptyIntersections(t *testing.T) {
	// Diagonal blocks produce four stripe intersections; the two empty
	// ones must yield nothing.
	g := grid.New(12, 12)
	fillRect(g, geometry.Rect{X: 0, Y: 0, Width: 3, Height: 3})
	fillRect(g, geometry.Rect{X: 8, Y: 8, Width: 3, Height: 3})

	rects := BoundingRects(g)
	want := []geometry.Rect{
		{X: 0, Y: 0, Width: 3, Height: 3},
		{X: 8, Y: 8, Width: 3, Height: 3},
	}
	if diff := cmp.Diff(want, rects); diff != "" {
		t.Errorf("Bounding rects mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundingRects_ShrinksToForeground(t *testing.T) {
	// The tall block stretches the shared row stripe to six rows, so the
	// small block's stripe intersection is taller than its ink. The bounds
	// must shrink back to the ink.
	g := grid.New(8, 8)
	fillRect(g, geometry.Rect{X: 0, Y: 0, Width: 2, Height: 2})
	fillRect(g, geometry.Rect{X: 4, Y: 0, Width: 2, Height: 6})

	rects := BoundingRects(g)
	want := []geometry.Rect{
		{X: 0, Y: 0, Width: 2, Height: 2},
		{X: 4, Y: 0, Width: 2, Height: 6},
	}
	if diff := cmp.Diff(want, rects); diff != "" {
		t.Errorf("Bounding rects mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundingRects_Empty(t *testing.T) {
	if rects := BoundingRects(grid.New(20, 20)); len(rects) != 0 {
		t.Errorf("Expected no rects for a blank grid, got %d", len(rects))
	}
}

func TestAdjacency_WithinReach(t *testing.T) {
	rects := []geometry.Rect{
		{X: 0, Y: 0, Width: 5, Height: 5},
		{X: 7, Y: 0, Width: 5, Height: 5},  // 2px gap from the first
		{X: 20, Y: 0, Width: 5, Height: 5}, // 8px gap, past reach
	}

	adjacency := Adjacency(30, 30, rects)
	want := [][]int{{1}, {0}, nil}
	if diff := cmp.Diff(want, adjacency); diff != "" {
		t.Errorf("Adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestAdjacency_Symmetrized(t *testing.T) {
	// The large rectangle can reach the small one but not vice versa; the
	// relation must still come back symmetric.
	rects := []geometry.Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 14, Y: 0, Width: 2, Height: 2},
	}

	adjacency := Adjacency(30, 30, rects)
	want := [][]int{{1}, {0}}
	if diff := cmp.Diff(want, adjacency); diff != "" {
		t.Errorf("Adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestAdjacency_VerticalNeighbors(t *testing.T) {
	rects := []geometry.Rect{
		{X: 0, Y: 0, Width: 8, Height: 8},
		{X: 0, Y: 12, Width: 8, Height: 8},
	}

	adjacency := Adjacency(20, 40, rects)
	want := [][]int{{1}, {0}}
	if diff := cmp.Diff(want, adjacency); diff != "" {
		t.Errorf("Adjacency mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_TwoSeparatedBlocks(t *testing.T) {
	g := grid.New(50, 25)
	fillRect(g, geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10})
	fillRect(g, geometry.Rect{X: 35, Y: 5, Width: 10, Height: 10})

	clusters := Discover(g, DefaultOptions())
	want := []Cluster{
		{
			Bounds: geometry.Rect{X: 35, Y: 5, Width: 10, Height: 10},
			Glyphs: []Glyph{{Bounds: geometry.Rect{X: 35, Y: 5, Width: 10, Height: 10}}},
		},
		{
			Bounds: geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10},
			Glyphs: []Glyph{{Bounds: geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10}}},
		},
	}
	if diff := cmp.Diff(want, clusters); diff != "" {
		t.Errorf("Clusters mismatch (-want +got):\n%s", diff)
	}

	// Fixed point: no two cluster boxes may still intersect.
	for i := range clusters {
		for j := i + 1; j < len(clusters); j++ {
			if clusters[i].Bounds.Intersects(clusters[j].Bounds) {
				t.Errorf("Expected disjoint cluster bounds, %+v intersects %+v",
					clusters[i].Bounds, clusters[j].Bounds)
			}
		}
	}
}

func TestDiscover_AnnotationGlyph(t *testing.T) {
	// A full-size glyph with a small annotation beside its right edge,
	// within half the host's width.
	g := grid.New(30, 20)
	host := geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10}
	annotation := geometry.Rect{X: 17, Y: 8, Width: 4, Height: 4}
	fillRect(g, host)
	fillRect(g, annotation)

	clusters := Discover(g, DefaultOptions())
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}

	want := Cluster{
		Bounds: geometry.Rect{X: 5, Y: 5, Width: 16, Height: 10},
		Glyphs: []Glyph{{Bounds: host, Annotations: []geometry.Rect{annotation}}},
	}
	if diff := cmp.Diff(want, clusters[0]); diff != "" {
		t.Errorf("Cluster mismatch (-want +got):\n%s", diff)
	}

	// The annotation must not appear as a full glyph anywhere.
	for _, glyph := range clusters[0].Glyphs {
		if glyph.Bounds == annotation {
			t.Error("Expected the annotation to be absent from the ordered output")
		}
	}
}

func TestDiscover_VerticalTwoColumns(t *testing.T) {
	// Two tight columns of small glyphs: one tall cluster, read right
	// column first, top to bottom within each column.
	g := grid.New(12, 40)
	for _, x := range []int{0, 5} {
		for y := 0; y <= 30; y += 6 {
			fillRect(g, geometry.Rect{X: x, Y: y, Width: 4, Height: 4})
		}
	}

	clusters := Discover(g, DefaultOptions())
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}

	cluster := clusters[0]
	if !cluster.Vertical {
		t.Errorf("Expected a vertical cluster for bounds %+v", cluster.Bounds)
	}

	var want []Glyph
	for _, x := range []int{5, 0} {
		for y := 0; y <= 30; y += 6 {
			want = append(want, Glyph{Bounds: geometry.Rect{X: x, Y: y, Width: 4, Height: 4}})
		}
	}
	if diff := cmp.Diff(want, cluster.Glyphs); diff != "" {
		t.Errorf("Reading order mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_GapGlyphs(t *testing.T) {
	// Three glyphs in a row with spacing above the gap threshold: a break
	// marker between each pair.
	g := grid.New(30, 8)
	blocks := []geometry.Rect{
		{X: 0, Y: 0, Width: 6, Height: 6},
		{X: 10, Y: 0, Width: 6, Height: 6},
		{X: 20, Y: 0, Width: 6, Height: 6},
	}
	for _, b := range blocks {
		fillRect(g, b)
	}

	clusters := Discover(g, DefaultOptions())
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}

	want := []Glyph{
		{Bounds: blocks[0]},
		{Gap: true},
		{Bounds: blocks[1]},
		{Gap: true},
		{Bounds: blocks[2]},
	}
	if diff := cmp.Diff(want, clusters[0].Glyphs); diff != "" {
		t.Errorf("Glyphs mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_Empty(t *testing.T) {
	if clusters := Discover(grid.New(16, 16), DefaultOptions()); clusters != nil {
		t.Errorf("Expected nil for a blank grid, got %+v", clusters)
	}
}

func TestResolveAnnotations_BindsNarrowGlyph(t *testing.T) {
	host := geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	annotation := geometry.Rect{X: 12, Y: 2, Width: 4, Height: 4}

	full, mapping := ResolveAnnotations([]geometry.Rect{host, annotation}, DefaultAnnotationRatio)
	if len(full) != 1 || full[0] != host {
		t.Fatalf("Expected only the host as a full glyph, got %+v", full)
	}
	if diff := cmp.Diff([]geometry.Rect{annotation}, mapping[host]); diff != "" {
		t.Errorf("Annotation mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAnnotations_TooFarReverts(t *testing.T) {
	host := geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	// Vertical overlap exists, but the gap of 10 is not under half the
	// host's width.
	far := geometry.Rect{X: 20, Y: 2, Width: 4, Height: 4}

	full, mapping := ResolveAnnotations([]geometry.Rect{host, far}, DefaultAnnotationRatio)
	if len(full) != 2 {
		t.Fatalf("Expected the candidate to revert to a full glyph, got %+v", full)
	}
	if len(mapping) != 0 {
		t.Errorf("Expected no annotation mappings, got %+v", mapping)
	}
}

func TestResolveAnnotations_NoOverlapReverts(t *testing.T) {
	host := geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	below := geometry.Rect{X: 0, Y: 20, Width: 4, Height: 4}

	full, mapping := ResolveAnnotations([]geometry.Rect{host, below}, DefaultAnnotationRatio)
	if len(full) != 2 {
		t.Fatalf("Expected the candidate to revert to a full glyph, got %+v", full)
	}
	if len(mapping) != 0 {
		t.Errorf("Expected no annotation mappings, got %+v", mapping)
	}
}

func TestResolveAnnotations_RevertedCandidateCanHost(t *testing.T) {
	rects := []geometry.Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 12, Y: 0, Width: 10, Height: 10},
		{X: 24, Y: 0, Width: 10, Height: 10},
		// Reverts: no vertical overlap with any 10-wide glyph.
		{X: 0, Y: 30, Width: 4, Height: 8},
		// Binds to the reverted candidate above.
		{X: 5, Y: 32, Width: 4, Height: 4},
	}

	full, mapping := ResolveAnnotations(rects, DefaultAnnotationRatio)
	if len(full) != 4 {
		t.Fatalf("Expected 4 full glyphs, got %+v", full)
	}

	reverted := rects[3]
	if diff := cmp.Diff([]geometry.Rect{rects[4]}, mapping[reverted]); diff != "" {
		t.Errorf("Expected the reverted candidate to host the later one (-want +got):\n%s", diff)
	}
}

func TestResolveAnnotations_OrdersTopToBottom(t *testing.T) {
	host := geometry.Rect{X: 0, Y: 0, Width: 10, Height: 20}
	other := geometry.Rect{X: 0, Y: 40, Width: 10, Height: 20}
	lower := geometry.Rect{X: 11, Y: 12, Width: 4, Height: 4}
	upper := geometry.Rect{X: 11, Y: 2, Width: 4, Height: 4}

	_, mapping := ResolveAnnotations([]geometry.Rect{host, other, lower, upper}, DefaultAnnotationRatio)
	want := []geometry.Rect{upper, lower}
	if diff := cmp.Diff(want, mapping[host]); diff != "" {
		t.Errorf("Annotation order mismatch (-want +got):\n%s", diff)
	}
}
