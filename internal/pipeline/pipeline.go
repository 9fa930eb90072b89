// Package pipeline runs the full extraction pass over a binary pixel grid:
// region discovery, annotation resolution, reading-order linearization,
// and lazy per-glyph contour features. A pipeline invocation owns
// everything it allocates and never mutates its input grid, so independent
// grids may be processed in parallel by the caller.
package pipeline

import (
	"github.com/panelkit/lettering/internal/contour"
	"github.com/panelkit/lettering/internal/geometry"
	"github.com/panelkit/lettering/internal/grid"
	"github.com/panelkit/lettering/internal/regions"
	"github.com/panelkit/lettering/internal/strokes"
)

// Config carries the call-time tuning knobs for one extraction pass.
type Config struct {
	// PointSize and PointDensity drive grid discretization for consumers
	// that want the reduced point plane.
	PointSize    int
	PointDensity float64

	// OverlapThreshold and MinLinePieces tune stroke extraction.
	OverlapThreshold float64
	MinLinePieces    int

	// AnnotationRatio and GapFactor tune region discovery.
	AnnotationRatio float64
	GapFactor       float64

	// GroupSize is the sample grouping used for averaged feature vectors.
	GroupSize int
}

// DefaultConfig returns the tuning for cleanly binarized, constant-size
// lettering.
func DefaultConfig() Config {
	return Config{
		PointSize:        2,
		PointDensity:     0.75,
		OverlapThreshold: strokes.DefaultOverlapThreshold,
		MinLinePieces:    strokes.DefaultMinPieces,
		AnnotationRatio:  regions.DefaultAnnotationRatio,
		GapFactor:        regions.DefaultGapFactor,
	}
}

// Glyph is one reading-order entry of a cluster, with its pixel region and
// memoized feature vectors. Gap entries mark word/clause breaks and carry
// no region.
type Glyph struct {
	Bounds      geometry.Rect
	Annotations []geometry.Rect
	Gap         bool

	region *grid.Grid
	full   memo
	half   memo
}

// memo is a compute-once slot for a feature vector. The pipeline never
// shares memos across glyphs, so no locking is involved.
type memo struct {
	computed bool
	value    contour.Feature
}

func (m *memo) get(compute func() contour.Feature) contour.Feature {
	if !m.computed {
		m.value = compute()
		m.computed = true
	}
	return m.value
}

// Region returns the glyph's cropped pixel plane; nil for Gap entries.
func (g *Glyph) Region() *grid.Grid { return g.region }

// Feature returns the glyph's contour descriptor of the requested kind,
// computing it on first use and caching it afterwards. Gap entries and
// foreground-free regions yield the Empty sentinel.
func (g *Glyph) Feature(kind contour.Kind) contour.Feature {
	if g.region == nil {
		return contour.EmptyFeature()
	}
	switch kind {
	case contour.Half:
		return g.half.get(func() contour.Feature {
			return contour.FromCentroid(g.region, contour.Half)
		})
	default:
		return g.full.get(func() contour.Feature {
			return contour.FromCentroid(g.region, contour.Full)
		})
	}
}

// Analyze returns the glyph's multi-sample contour analysis. Unlike
// Feature, analyses are not cached: callers wanting grouped dimensions
// usually consume them once.
func (g *Glyph) Analyze() *contour.Analysis {
	if g.region == nil {
		return contour.Analyze(grid.New(0, 0))
	}
	return contour.Analyze(g.region)
}

// Cluster is one discovered text cluster in reading order.
type Cluster struct {
	Bounds   geometry.Rect
	Vertical bool
	Glyphs   []*Glyph
}

// Extract runs region discovery over g and attaches a lazily evaluated
// feature record to every glyph. The input grid is borrowed read-only.
func Extract(g *grid.Grid, cfg Config) []*Cluster {
	found := regions.Discover(g, regions.Options{
		AnnotationRatio: cfg.AnnotationRatio,
		GapFactor:       cfg.GapFactor,
	})

	clusters := make([]*Cluster, 0, len(found))
	for _, c := range found {
		cluster := &Cluster{
			Bounds:   c.Bounds,
			Vertical: c.Vertical,
			Glyphs:   make([]*Glyph, 0, len(c.Glyphs)),
		}
		for _, entry := range c.Glyphs {
			glyph := &Glyph{
				Bounds:      entry.Bounds,
				Annotations: entry.Annotations,
				Gap:         entry.Gap,
			}
			if !entry.Gap {
				glyph.region = g.Crop(entry.Bounds)
			}
			cluster.Glyphs = append(cluster.Glyphs, glyph)
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// StrokePaths extracts the thinned stroke skeletons of g in both
// directions, for consumers that classify on stroke structure rather than
// contour features.
func StrokePaths(g *grid.Grid, cfg Config) (horizontal, vertical []*strokes.Line) {
	opts := strokes.Options{
		OverlapThreshold: cfg.OverlapThreshold,
		MinPieces:        cfg.MinLinePieces,
	}
	horizontal = strokes.Lines(g, true, opts)
	vertical = strokes.Lines(g, false, opts)
	for _, line := range horizontal {
		line.SinglePath()
	}
	for _, line := range vertical {
		line.SinglePath()
	}
	return horizontal, vertical
}
