package contour

import "math"

// Kind tags the three feature variants. The read contract is closed:
// length, is-empty, and value-at-index.
type Kind int

const (
	// Empty marks a glyph with no measurable peripheral point in any
	// direction. Consumers read it as a zero vector of the expected
	// length.
	Empty Kind = iota

	// Full holds one normalized value per cast direction.
	Full

	// Half holds one normalized value per opposite-direction pair.
	Half
)

// Feature is a fixed-length contributivity vector for one glyph: the
// ray-cast lengths normalized to a unit vector. Never mutated after
// construction.
type Feature struct {
	kind   Kind
	values []float64
}

// EmptyFeature returns the sentinel for a glyph with no peripheral points.
func EmptyFeature() Feature {
	return Feature{kind: Empty}
}

// Kind returns the variant tag.
func (f Feature) Kind() Kind { return f.kind }

// IsEmpty reports whether the feature is the no-data sentinel.
func (f Feature) IsEmpty() bool { return f.kind == Empty }

// Len returns the number of stored values; zero for Empty.
func (f Feature) Len() int { return len(f.values) }

// Value returns the normalized value at index i.
func (f Feature) Value(i int) float64 { return f.values[i] }

// Dimensions writes the feature into a vector of width n. Empty features
// emit n zeros; callers must treat those as "no data", not measurements.
// Panics when a non-empty feature does not have exactly n values: mixing
// feature widths is a programming error.
func (f Feature) Dimensions(n int) []float64 {
	out := make([]float64, n)
	if f.kind == Empty {
		return out
	}
	if len(f.values) != n {
		panic("contour: feature width mismatch")
	}
	copy(out, f.values)
	return out
}

// normalize scales lengths into a unit contributivity vector. ok is false
// when the vector has no magnitude to normalize.
func normalize(lengths []float64) ([]float64, bool) {
	norm := 0.0
	for _, v := range lengths {
		norm += v * v
	}
	if norm == 0 {
		return nil, false
	}
	norm = math.Sqrt(norm)

	out := make([]float64, len(lengths))
	for i, v := range lengths {
		out[i] = v / norm
	}
	return out, true
}
