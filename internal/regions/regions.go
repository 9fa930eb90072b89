// Package regions groups the foreground of a binary pixel grid into glyph
// bounding boxes, clusters the boxes into disjoint text clusters, resolves
// annotation (furigana) glyphs onto their hosts, and linearizes each
// cluster into reading order.
package regions

import (
	"sort"

	"github.com/panelkit/lettering/internal/geometry"
	"github.com/panelkit/lettering/internal/grid"
)

// Default tuning knobs.
const (
	// DefaultAnnotationRatio marks a glyph as an annotation candidate when
	// its width falls below this fraction of the cluster's median width.
	DefaultAnnotationRatio = 0.5

	// DefaultGapFactor inserts a reading-order break when the spacing
	// between consecutive boxes exceeds this fraction of the cluster's
	// median glyph size.
	DefaultGapFactor = 0.5
)

// Glyph is one entry of a cluster's reading order: a full-size glyph
// bounding box with the annotation boxes resolved onto it, or a placeholder
// break (Gap true, zero Bounds) marking a word/clause boundary.
type Glyph struct {
	Bounds      geometry.Rect   `json:"bounds"`
	Annotations []geometry.Rect `json:"annotations,omitempty"`
	Gap         bool            `json:"gap,omitempty"`
}

// Cluster is a group of glyphs reachable from one another via adjacency,
// in reading order.
type Cluster struct {
	Bounds   geometry.Rect `json:"bounds"`
	Vertical bool          `json:"vertical"`
	Glyphs   []Glyph       `json:"glyphs"`
}

// Options tunes annotation resolution and gap detection.
type Options struct {
	AnnotationRatio float64
	GapFactor       float64
}

// DefaultOptions returns the tuning used for constant-size lettering.
func DefaultOptions() Options {
	return Options{
		AnnotationRatio: DefaultAnnotationRatio,
		GapFactor:       DefaultGapFactor,
	}
}

// Discover runs the full region pass on g: bounding-rectangle discovery,
// adjacency clustering, annotation resolution, and reading-order
// linearization. Clusters are ordered by their leading edge, rightmost
// first, matching the dominant reading direction of vertical lettering.
func Discover(g *grid.Grid, opts Options) []Cluster {
	rects := BoundingRects(g)
	if len(rects) == 0 {
		return nil
	}

	bounds := clusterBounds(g.Width(), g.Height(), rects)

	clusters := make([]Cluster, 0, len(bounds))
	for _, box := range bounds {
		var members []geometry.Rect
		for _, r := range rects {
			if box.Intersects(r) {
				members = append(members, r)
			}
		}
		clusters = append(clusters, buildCluster(box, members, opts))
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Bounds.Right() > clusters[j].Bounds.Right()
	})
	return clusters
}

// BoundingRects finds the candidate glyph bounding boxes of g: for every
// pairwise intersection of a row stripe and a column stripe, the minimal
// bounding rectangle of the foreground inside the intersection.
//
// Overlapping glyphs inside one stripe intersection come back merged into
// a single box; this stage makes no attempt to split them.
func BoundingRects(g *grid.Grid) []geometry.Rect {
	rowStripes := findStripes(g, true)
	colStripes := findStripes(g, false)

	var rects []geometry.Rect
	for _, rows := range rowStripes {
		for _, cols := range colStripes {
			if r, ok := boundForeground(g, rows, cols); ok {
				rects = append(rects, r)
			}
		}
	}
	return rects
}

// stripe is a maximal run [start, end) of scan lines each containing at
// least one foreground pixel.
type stripe struct {
	start int
	end   int
}

func findStripes(g *grid.Grid, horizontal bool) []stripe {
	outer, inner := g.Height(), g.Width()
	if !horizontal {
		outer, inner = g.Width(), g.Height()
	}

	var stripes []stripe
	start := -1
	for i := 0; i < outer; i++ {
		hasContent := false
		for j := 0; j < inner; j++ {
			x, y := j, i
			if !horizontal {
				x, y = i, j
			}
			if g.At(x, y) {
				hasContent = true
				break
			}
		}

		if start == -1 && hasContent {
			start = i
		} else if start != -1 && !hasContent {
			stripes = append(stripes, stripe{start: start, end: i})
			start = -1
		}
	}
	if start != -1 {
		stripes = append(stripes, stripe{start: start, end: outer})
	}
	return stripes
}

// boundForeground shrinks a stripe intersection to the minimal bounding
// rectangle of the foreground inside it. ok is false when the intersection
// holds no foreground.
func boundForeground(g *grid.Grid, rows, cols stripe) (geometry.Rect, bool) {
	minX, minY := cols.end, rows.end
	maxX, maxY := cols.start-1, rows.start-1

	for y := rows.start; y < rows.end; y++ {
		for x := cols.start; x < cols.end; x++ {
			if !g.At(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return geometry.Rect{}, false
	}
	return geometry.Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}, true
}

// clusterBounds groups rects into connected components under lateral
// adjacency, takes each component's union box, and merges overlapping
// boxes until no pair intersects.
func clusterBounds(width, height int, rects []geometry.Rect) []geometry.Rect {
	adjacency := Adjacency(width, height, rects)

	visited := make([]bool, len(rects))
	var bounds []geometry.Rect
	for start := range rects {
		if visited[start] {
			continue
		}

		var group []geometry.Rect
		queue := []int{start}
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			if visited[idx] {
				continue
			}
			visited[idx] = true
			group = append(group, rects[idx])
			queue = append(queue, adjacency[idx]...)
		}
		bounds = append(bounds, geometry.UnionAll(group))
	}

	return mergeOverlapping(bounds)
}

// Adjacency builds the lateral-adjacency list over rects within a
// width x height image: rects i and j are adjacent when an axis-aligned
// ray cast from a boundary pixel of one strikes the other within reach.
// A ray's reach is the casting rectangle's larger dimension, so
// constant-size glyphs link across letter and line spacing while text
// blocks further apart than a glyph stay separate. A hit in either
// direction links both rectangles.
func Adjacency(width, height int, rects []geometry.Rect) [][]int {
	index := newBoundsIndex(width, height, rects)

	seen := make([]map[int]bool, len(rects))
	for i := range seen {
		seen[i] = make(map[int]bool)
	}

	for i, r := range rects {
		reach := r.Width
		if r.Height > reach {
			reach = r.Height
		}

		for y := r.Y; y <= r.Bottom() && y < height; y++ {
			if hit, ok := index.castRay(r.Right(), y, 1, 0, reach); ok {
				seen[i][hit] = true
			}
			if hit, ok := index.castRay(r.X-1, y, -1, 0, reach); ok {
				seen[i][hit] = true
			}
		}
		for x := r.X; x <= r.Right() && x < width; x++ {
			if hit, ok := index.castRay(x, r.Bottom(), 0, 1, reach); ok {
				seen[i][hit] = true
			}
			if hit, ok := index.castRay(x, r.Y-1, 0, -1, reach); ok {
				seen[i][hit] = true
			}
		}
		delete(seen[i], i)
	}

	// Reach depends on the caster's size, so a large rectangle can strike
	// a small one the small one cannot strike back. Symmetrize so the
	// traversal order cannot split a linked pair.
	for i := range seen {
		for j := range seen[i] {
			seen[j][i] = true
		}
	}

	adjacency := make([][]int, len(rects))
	for i := range seen {
		for j := range seen[i] {
			adjacency[i] = append(adjacency[i], j)
		}
		sort.Ints(adjacency[i])
	}
	return adjacency
}

// boundsIndex maps each pixel to the rectangle covering it, for ray casts.
type boundsIndex struct {
	width  int
	height int
	cells  []int // rect index, or -1
}

func newBoundsIndex(width, height int, rects []geometry.Rect) *boundsIndex {
	idx := &boundsIndex{
		width:  width,
		height: height,
		cells:  make([]int, width*height),
	}
	for i := range idx.cells {
		idx.cells[i] = -1
	}
	for i, r := range rects {
		for y := r.Y; y < r.Bottom() && y < height; y++ {
			for x := r.X; x < r.Right() && x < width; x++ {
				if x >= 0 && y >= 0 {
					idx.cells[y*width+x] = i
				}
			}
		}
	}
	return idx
}

// castRay walks from (x, y) in steps of (dx, dy) until it strikes a
// rectangle, leaves the image, or exhausts its reach. ok is false when no
// rectangle was struck.
func (idx *boundsIndex) castRay(x, y, dx, dy, reach int) (int, bool) {
	for step := 0; step < reach; step++ {
		if x < 0 || x >= idx.width || y < 0 || y >= idx.height {
			return 0, false
		}
		if hit := idx.cells[y*idx.width+x]; hit != -1 {
			return hit, true
		}
		x += dx
		y += dy
	}
	return 0, false
}

// mergeOverlapping repeatedly unions any two intersecting boxes, restarting
// the scan after each merge, until no pair intersects. The result is a
// fixed point: running the merge again changes nothing.
func mergeOverlapping(boxes []geometry.Rect) []geometry.Rect {
	merged := make([]geometry.Rect, len(boxes))
	copy(merged, boxes)

	for {
		changed := false
		for i := 0; i < len(merged) && !changed; i++ {
			for j := i + 1; j < len(merged); j++ {
				if merged[i].Intersects(merged[j]) {
					union := merged[i].Union(merged[j])
					merged = append(merged[:j], merged[j+1:]...)
					merged[i] = union
					changed = true
					break
				}
			}
		}
		if !changed {
			return merged
		}
	}
}

// buildCluster resolves annotations within one cluster and linearizes the
// remaining full glyphs into reading order.
func buildCluster(box geometry.Rect, members []geometry.Rect, opts Options) Cluster {
	vertical := box.Height > 3*box.Width

	full, mapping := ResolveAnnotations(members, opts.AnnotationRatio)
	ordered := orderGlyphs(full, mapping, vertical, opts.GapFactor)

	return Cluster{
		Bounds:   box,
		Vertical: vertical,
		Glyphs:   ordered,
	}
}

// ResolveAnnotations splits rects into full glyphs and the annotation boxes
// attached to them. A rect narrower than ratio times the median width is an
// annotation candidate; a candidate binds to the full glyph with the
// greatest vertical overlap when the candidate sits within half that
// glyph's width of its right edge. Candidates that bind to nothing revert
// to full-glyph status. A single pass: reverted candidates are not
// re-evaluated against the grown full set.
func ResolveAnnotations(rects []geometry.Rect, ratio float64) ([]geometry.Rect, map[geometry.Rect][]geometry.Rect) {
	widths := make([]float64, len(rects))
	for i, r := range rects {
		widths[i] = float64(r.Width)
	}
	medianWidth := geometry.Median(widths)

	var full, candidates []geometry.Rect
	for _, r := range rects {
		if float64(r.Width) < medianWidth*ratio {
			candidates = append(candidates, r)
		} else {
			full = append(full, r)
		}
	}

	// Candidates that revert rejoin the full pool and can host later
	// candidates, but are never themselves re-evaluated.
	mapping := make(map[geometry.Rect][]geometry.Rect)
	for _, candidate := range candidates {
		host, ok := mostVerticalOverlap(candidate, full)
		if !ok {
			full = append(full, candidate)
			continue
		}
		if candidate.X-host.Right() < host.Width/2 {
			mapping[host] = append(mapping[host], candidate)
		} else {
			full = append(full, candidate)
		}
	}

	// Keep each host's annotations in top-to-bottom order.
	for host := range mapping {
		list := mapping[host]
		sort.Slice(list, func(i, j int) bool { return list[i].Y < list[j].Y })
	}
	return full, mapping
}

// mostVerticalOverlap returns the candidate host sharing the greatest
// vertical extent with target. ok is false when no host overlaps at all.
func mostVerticalOverlap(target geometry.Rect, hosts []geometry.Rect) (geometry.Rect, bool) {
	best := 0
	bestIdx := -1
	for i, host := range hosts {
		if overlap := target.VerticalOverlap(host); overlap > best {
			best = overlap
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return geometry.Rect{}, false
	}
	return hosts[bestIdx], true
}

// orderGlyphs linearizes full glyphs into reading order: glyphs sharing
// horizontal extent form vertical stacks read top to bottom; stacks are
// read right to left for vertical clusters and left to right otherwise.
// Spacing wider than gapFactor times the median glyph size inserts a
// placeholder break.
func orderGlyphs(full []geometry.Rect, mapping map[geometry.Rect][]geometry.Rect, vertical bool, gapFactor float64) []Glyph {
	if len(full) == 0 {
		return nil
	}

	stacks := verticalStacks(full)

	// Right to left for vertical text, left to right otherwise.
	sort.Slice(stacks, func(i, j int) bool {
		bi := geometry.UnionAll(stacks[i])
		bj := geometry.UnionAll(stacks[j])
		if vertical {
			return bi.Right() > bj.Right()
		}
		return bi.X < bj.X
	})

	widths := make([]float64, 0, len(full))
	heights := make([]float64, 0, len(full))
	for _, r := range full {
		widths = append(widths, float64(r.Width))
		heights = append(heights, float64(r.Height))
	}
	hGap := geometry.Median(widths) * gapFactor
	vGap := geometry.Median(heights) * gapFactor

	var out []Glyph
	var prevStack geometry.Rect
	for s, stack := range stacks {
		sort.Slice(stack, func(i, j int) bool { return stack[i].Y < stack[j].Y })

		stackBox := geometry.UnionAll(stack)
		if s > 0 && stackSpacing(prevStack, stackBox, vertical) > hGap {
			out = append(out, Glyph{Gap: true})
		}
		prevStack = stackBox

		for i, r := range stack {
			if i > 0 && float64(r.Y-stack[i-1].Bottom()) > vGap {
				out = append(out, Glyph{Gap: true})
			}
			out = append(out, Glyph{Bounds: r, Annotations: mapping[r]})
		}
	}
	return out
}

// stackSpacing measures the gap between two consecutive stack boxes along
// the stack-ordering axis.
func stackSpacing(prev, next geometry.Rect, vertical bool) float64 {
	if vertical {
		return float64(prev.X - next.Right())
	}
	return float64(next.X - prev.Right())
}

// verticalStacks partitions rects into connected components under
// horizontal-extent overlap: members of a stack sit above or below one
// another.
func verticalStacks(rects []geometry.Rect) [][]geometry.Rect {
	sorted := append([]geometry.Rect(nil), rects...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var stacks [][]geometry.Rect
	var extents []geometry.Rect
	for _, r := range sorted {
		placed := false
		for i, extent := range extents {
			if r.HorizontalOverlap(extent) > 0 {
				stacks[i] = append(stacks[i], r)
				extents[i] = extent.Union(r)
				placed = true
				break
			}
		}
		if !placed {
			stacks = append(stacks, []geometry.Rect{r})
			extents = append(extents, r)
		}
	}
	return stacks
}
