// Package contour computes directional contour descriptors for single
// glyphs. Rays cast outward from reference points measure how far the
// glyph's foreground extends in each of eight directions; the lengths,
// normalized to a unit vector, describe the glyph's peripheral shape in a
// way that tolerates uniform scaling and small noise.
package contour

import (
	"github.com/panelkit/lettering/internal/grid"
)

// Deltas holds the eight cast directions: four axis and four diagonal,
// ordered so that Deltas[i+4] is opposite Deltas[i]. Half-mode features
// rely on that pairing.
var Deltas = [8][2]int{
	{1, 0},   // east
	{1, 1},   // southeast
	{0, 1},   // south
	{-1, 1},  // southwest
	{-1, 0},  // west
	{-1, -1}, // northwest
	{0, -1},  // north
	{1, -1},  // northeast
}

// NumDirections is the width of a Full feature.
const NumDirections = len(Deltas)

// rayLengths casts all eight rays from (x, y) across g. Each length is the
// one-based step count to the outermost foreground pixel along that ray, or
// zero when the ray meets no foreground before the region boundary. nil is
// returned only when no direction yields a peripheral point.
func rayLengths(g *grid.Grid, x, y int) []int {
	lengths := make([]int, NumDirections)
	any := false

	for d, delta := range Deltas {
		px, py := x, y
		steps := 0
		for px >= 0 && px < g.Width() && py >= 0 && py < g.Height() {
			if g.At(px, py) {
				lengths[d] = steps + 1
				any = true
			}
			px += delta[0]
			py += delta[1]
			steps++
		}
	}

	if !any {
		return nil
	}
	return lengths
}

// FromCentroid computes the glyph's feature from its foreground centroid.
// Glyphs with no foreground yield the Empty sentinel.
func FromCentroid(g *grid.Grid, kind Kind) Feature {
	x, y, ok := g.Centroid()
	if !ok {
		return EmptyFeature()
	}
	return fromLengths(rayLengths(g, x, y), kind)
}

func fromLengths(lengths []int, kind Kind) Feature {
	if lengths == nil {
		return EmptyFeature()
	}

	switch kind {
	case Half:
		half := len(lengths) / 2
		combined := make([]float64, half)
		for i := 0; i < half; i++ {
			combined[i] = float64(lengths[i] + lengths[i+half])
		}
		values, ok := normalize(combined)
		if !ok {
			return EmptyFeature()
		}
		return Feature{kind: Half, values: values}
	default:
		raw := make([]float64, len(lengths))
		for i, l := range lengths {
			raw[i] = float64(l)
		}
		values, ok := normalize(raw)
		if !ok {
			return EmptyFeature()
		}
		return Feature{kind: Full, values: values}
	}
}

// Analysis holds the ray measurements for every sample column of one glyph
// region: one reference point per column, placed at the midpoint of the
// column's foreground extent. Columns with no foreground carry an empty
// sample. Feature computation is lazy and cached; an Analysis is cheap to
// construct and safe to read repeatedly.
type Analysis struct {
	width   int
	lengths [][]int // per sample; nil marks a column with no peripheral point

	full []Feature // lazily computed
	half []Feature
}

// Analyze measures g column by column. The sample count equals the region
// width, so grouped reads require widths divisible by the group size.
func Analyze(g *grid.Grid) *Analysis {
	a := &Analysis{
		width:   g.Width(),
		lengths: make([][]int, g.Width()),
	}

	for x := 0; x < g.Width(); x++ {
		top, bottom := -1, -1
		for y := 0; y < g.Height(); y++ {
			if g.At(x, y) {
				if top == -1 {
					top = y
				}
				bottom = y
			}
		}
		if top == -1 {
			continue
		}
		a.lengths[x] = rayLengths(g, x, (top+bottom)/2)
	}
	return a
}

// NumPoints returns the number of sample positions.
func (a *Analysis) NumPoints() int { return len(a.lengths) }

// FullFeatures returns the per-sample Full features, computing them on
// first use. Samples with no peripheral point come back Empty.
func (a *Analysis) FullFeatures() []Feature {
	if a.full == nil {
		a.full = a.compute(Full)
	}
	return a.full
}

// HalfFeatures returns the per-sample Half features, computing them on
// first use.
func (a *Analysis) HalfFeatures() []Feature {
	if a.half == nil {
		a.half = a.compute(Half)
	}
	return a.half
}

func (a *Analysis) compute(kind Kind) []Feature {
	features := make([]Feature, len(a.lengths))
	for i, lengths := range a.lengths {
		features[i] = fromLengths(lengths, kind)
	}
	return features
}

// FullDimensions flattens every sample's Full feature into one
// dimension-major vector: sample 0's eight values, then sample 1's, and so
// on. Empty samples contribute zeros.
func (a *Analysis) FullDimensions() []float64 {
	return flatten(a.FullFeatures(), NumDirections)
}

// HalfDimensions flattens every sample's Half feature, four values per
// sample.
func (a *Analysis) HalfDimensions() []float64 {
	return flatten(a.HalfFeatures(), NumDirections/2)
}

// FullGroupedDimensions averages FullDimensions over groups of groupSize
// consecutive samples, shrinking the vector while smoothing sample noise.
// The sample width must divide evenly by groupSize; anything else is a
// programming error and panics.
func (a *Analysis) FullGroupedDimensions(groupSize int) []float64 {
	if groupSize <= 0 || a.width%groupSize != 0 {
		panic("contour: sample width not divisible by group size")
	}
	return averageGroups(a.FullDimensions(), groupSize, NumDirections)
}

// HalfGroupedDimensions is FullGroupedDimensions over the halved features.
func (a *Analysis) HalfGroupedDimensions(groupSize int) []float64 {
	if groupSize <= 0 || a.width%groupSize != 0 {
		panic("contour: sample width not divisible by group size")
	}
	return averageGroups(a.HalfDimensions(), groupSize, NumDirections/2)
}

func flatten(features []Feature, width int) []float64 {
	out := make([]float64, 0, len(features)*width)
	for _, f := range features {
		out = append(out, f.Dimensions(width)...)
	}
	return out
}

// averageGroups replaces each run of groupSize consecutive samples with its
// per-direction arithmetic mean. base is dimension-major: sample by sample,
// numDims values each.
func averageGroups(base []float64, groupSize, numDims int) []float64 {
	numSamples := len(base) / numDims
	numGroups := numSamples / groupSize

	out := make([]float64, 0, numGroups*numDims)
	for g := 0; g < numGroups; g++ {
		for d := 0; d < numDims; d++ {
			sum := 0.0
			for m := 0; m < groupSize; m++ {
				sum += base[(g*groupSize+m)*numDims+d]
			}
			out = append(out, sum/float64(groupSize))
		}
	}
	return out
}
