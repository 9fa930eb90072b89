// Package classify is the nearest-neighbor classifier collaborator: it
// consumes the density maps and contributivity vectors the extraction core
// produces and predicts which symbol a glyph region holds. Accuracy tuning
// is out of scope; this exists to close the loop for spot checks.
package classify

import (
	"fmt"

	"github.com/panelkit/lettering/internal/grid"
)

// DensityMap splits g into rows x cols regions and returns the foreground
// density of each. Pixels on the right and bottom edges that do not fill a
// region are dropped. nil is returned when the grid is smaller than the
// requested map.
func DensityMap(g *grid.Grid, rows, cols int) [][]float64 {
	if rows <= 0 || cols <= 0 {
		panic("classify: density map dimensions must be positive")
	}

	rowDelta := g.Height() / rows
	colDelta := g.Width() / cols
	if rowDelta == 0 || colDelta == 0 {
		return nil
	}

	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		for c := 0; c < cols; c++ {
			count := 0
			for y := r * rowDelta; y < (r+1)*rowDelta; y++ {
				for x := c * colDelta; x < (c+1)*colDelta; x++ {
					if g.At(x, y) {
						count++
					}
				}
			}
			out[r][c] = float64(count) / float64(rowDelta*colDelta)
		}
	}
	return out
}

// MapDistance returns the mean squared error between two density maps.
// Mismatched dimensions are a programming error and panic.
func MapDistance(a, b [][]float64) float64 {
	if len(a) != len(b) {
		panic("classify: density map row mismatch")
	}

	sum := 0.0
	count := 0
	for i := range a {
		if len(a[i]) != len(b[i]) {
			panic("classify: density map column mismatch")
		}
		for j := range a[i] {
			d := a[i][j] - b[i][j]
			sum += d * d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// VectorDistance returns the squared Euclidean distance between two
// feature vectors. Mismatched lengths are a programming error and panic.
func VectorDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("classify: feature vector length mismatch")
	}
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

type sample struct {
	label string
	dmap  [][]float64
}

// Classifier predicts glyph labels by nearest density map.
type Classifier struct {
	rows    int
	cols    int
	samples []sample
}

// NewClassifier returns a classifier comparing rows x cols density maps.
func NewClassifier(rows, cols int) *Classifier {
	return &Classifier{rows: rows, cols: cols}
}

// Train adds a labeled reference glyph. Regions too small to produce a
// density map are rejected.
func (c *Classifier) Train(label string, g *grid.Grid) error {
	dmap := DensityMap(g, c.rows, c.cols)
	if dmap == nil {
		return fmt.Errorf("classify: training glyph %q smaller than %dx%d map", label, c.rows, c.cols)
	}
	c.samples = append(c.samples, sample{label: label, dmap: dmap})
	return nil
}

// Classify returns the label of the nearest trained sample. An empty
// candidate set where a result is mandatory is fatal to the call.
func (c *Classifier) Classify(g *grid.Grid) (string, error) {
	if len(c.samples) == 0 {
		return "", fmt.Errorf("classify: no trained samples")
	}
	dmap := DensityMap(g, c.rows, c.cols)
	if dmap == nil {
		return "", fmt.Errorf("classify: glyph smaller than %dx%d map", c.rows, c.cols)
	}

	best := c.samples[0].label
	bestDist := MapDistance(dmap, c.samples[0].dmap)
	for _, s := range c.samples[1:] {
		if d := MapDistance(dmap, s.dmap); d < bestDist {
			bestDist = d
			best = s.label
		}
	}
	return best, nil
}
