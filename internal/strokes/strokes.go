// Package strokes extracts connected, thinned stroke paths from a binary
// pixel grid. The grid is sliced one scan line at a time into maximal
// foreground runs, runs on consecutive scan lines are linked into lines by
// overlap, short fragments are pruned, and surviving lines can be thinned
// to a single-pixel-wide path.
//
// Note the direction flip: horizontal strokes are found by scanning
// columns, and vertical strokes by scanning rows.
package strokes

import (
	"github.com/panelkit/lettering/internal/grid"
)

// Default linking and pruning knobs.
const (
	DefaultOverlapThreshold = 0.50
	DefaultMinPieces        = 3
)

// SlicePiece is a maximal contiguous run [Start, End] (inclusive) of
// foreground pixels within one scan line.
type SlicePiece struct {
	Start int
	End   int
}

// Len returns the number of pixels the piece covers.
func (p SlicePiece) Len() int { return p.End - p.Start + 1 }

// Thin collapses the piece to its midpoint. Thinning twice gives the same
// result as thinning once.
func (p *SlicePiece) Thin() {
	point := p.Start + (p.End-p.Start)/2
	p.Start = point
	p.End = point
}

// Extend widens the piece just enough to include index.
func (p *SlicePiece) Extend(index int) {
	if index < p.Start {
		p.Start = index
	} else if index > p.End {
		p.End = index
	}
}

// Slice is the ordered set of pieces found in one scan line.
type Slice struct {
	Pieces []SlicePiece

	// Horizontal is true when the scan line was a row (pieces span
	// columns) and false when it was a column (pieces span rows).
	Horizontal bool
}

// Line is a stroke fragment: a run of pieces drawn from consecutive scan
// lines that overlap pairwise by at least the linking threshold. Start and
// End are the scan-line indices the line spans; Horizontal is the stroke
// direction, perpendicular to the scan direction that produced it.
type Line struct {
	Pieces     []SlicePiece
	Horizontal bool
	Start      int
	End        int
}

func newLine(index int, horizontal bool, first SlicePiece) *Line {
	return &Line{
		Pieces:     []SlicePiece{first},
		Horizontal: horizontal,
		Start:      index,
		End:        index,
	}
}

func (l *Line) add(piece SlicePiece, index int) {
	l.Pieces = append(l.Pieces, piece)
	l.End = index
}

// LastPiece returns the most recently linked piece.
func (l *Line) LastPiece() SlicePiece {
	return l.Pieces[len(l.Pieces)-1]
}

// SinglePath thins the line to a connected single-pixel-wide path: every
// even-indexed piece collapses to its midpoint and every odd-indexed piece
// becomes a bridge spanning its thinned neighbors. A trailing odd piece
// with no right neighbor is thinned and extended back to its left
// neighbor.
func (l *Line) SinglePath() {
	for i := 0; i < len(l.Pieces); i += 2 {
		l.Pieces[i].Thin()
	}

	for i := 1; i < len(l.Pieces); i += 2 {
		if i == len(l.Pieces)-1 {
			l.Pieces[i].Thin()
			l.Pieces[i].Extend(l.Pieces[i-1].Start)
			continue
		}
		left := l.Pieces[i-1].Start
		right := l.Pieces[i+1].Start
		if left > right {
			left, right = right, left
		}
		l.Pieces[i].Start = left
		l.Pieces[i].End = right
	}
}

// AbsoluteOverlapPercent returns the fraction of integer positions common
// to both ranges, measured against the larger of the two. The result is in
// [0, 1] and symmetric in its arguments.
func AbsoluteOverlapPercent(a, b SlicePiece) float64 {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}

	count := hi - lo + 1
	if count < 0 {
		count = 0
	}

	larger := a.Len()
	if b.Len() > larger {
		larger = b.Len()
	}
	return float64(count) / float64(larger)
}

// Slices scans g one line at a time and records every maximal foreground
// run. When horizontal is true each scan line is a row; otherwise each
// scan line is a column. An empty scan line yields an empty Slice.
func Slices(g *grid.Grid, horizontal bool) []Slice {
	outer, inner := g.Height(), g.Width()
	if !horizontal {
		outer, inner = g.Width(), g.Height()
	}

	slices := make([]Slice, outer)
	for i := 0; i < outer; i++ {
		slices[i] = Slice{Horizontal: horizontal}

		runStart := -1
		for j := 0; j < inner; j++ {
			x, y := j, i
			if !horizontal {
				x, y = i, j
			}

			if g.At(x, y) {
				if runStart == -1 {
					runStart = j
				}
				continue
			}
			if runStart != -1 {
				slices[i].Pieces = append(slices[i].Pieces, SlicePiece{Start: runStart, End: j - 1})
				runStart = -1
			}
		}
		if runStart != -1 {
			slices[i].Pieces = append(slices[i].Pieces, SlicePiece{Start: runStart, End: inner - 1})
		}
	}
	return slices
}

// Options tunes line linking and pruning.
type Options struct {
	// OverlapThreshold is the minimum absolute overlap percentage between
	// a piece and a candidate line's last piece for the piece to extend
	// that line.
	OverlapThreshold float64

	// MinPieces is the minimum piece count a finished line needs to
	// survive pruning.
	MinPieces int
}

// DefaultOptions returns the tuning used for constant-size lettering.
func DefaultOptions() Options {
	return Options{
		OverlapThreshold: DefaultOverlapThreshold,
		MinPieces:        DefaultMinPieces,
	}
}

// Lines extracts the stroke fragments of g running in the requested
// direction, pruned of fragments shorter than opts.MinPieces. To find
// horizontal strokes the grid is scanned column-wise, and vice versa.
func Lines(g *grid.Grid, horizontal bool, opts Options) []*Line {
	slices := Slices(g, !horizontal)
	return Prune(LinkSlices(slices, !horizontal, opts.OverlapThreshold), opts.MinPieces)
}

// LinkSlices joins pieces on consecutive scan lines into lines. A piece
// extends the first candidate line whose last piece overlaps it by at
// least overlap; unmatched pieces start new candidates. Candidates not
// extended at the current scan line are finished and never revisited.
func LinkSlices(slices []Slice, horizontalSlices bool, overlap float64) []*Line {
	var finished []*Line

	// Candidate lines still open at the previous scan line.
	var open []*Line

	for i, slice := range slices {
		var started []*Line
		extended := make(map[*Line]bool, len(open))

		for _, piece := range slice.Pieces {
			matched := false
			for _, candidate := range open {
				if extended[candidate] {
					continue
				}
				if AbsoluteOverlapPercent(piece, candidate.LastPiece()) >= overlap {
					candidate.add(piece, i)
					extended[candidate] = true
					matched = true
					break
				}
			}
			if !matched {
				started = append(started, newLine(i, !horizontalSlices, piece))
			}
		}

		// Close every candidate the current scan line did not reach.
		next := open[:0]
		for _, candidate := range open {
			if extended[candidate] {
				next = append(next, candidate)
			} else {
				finished = append(finished, candidate)
			}
		}
		open = append(next, started...)
	}

	return append(finished, open...)
}

// Prune returns the lines with at least minPieces pieces. The input slice
// is left untouched.
func Prune(lines []*Line, minPieces int) []*Line {
	kept := make([]*Line, 0, len(lines))
	for _, line := range lines {
		if len(line.Pieces) >= minPieces {
			kept = append(kept, line)
		}
	}
	return kept
}

// Draw paints lines onto g as foreground pixels, typically after
// SinglePath to render stroke skeletons.
func Draw(lines []*Line, g *grid.Grid) {
	for _, line := range lines {
		for i, piece := range line.Pieces {
			for j := piece.Start; j <= piece.End; j++ {
				if line.Horizontal {
					g.Set(line.Start+i, j, true)
				} else {
					g.Set(j, line.Start+i, true)
				}
			}
		}
	}
}
