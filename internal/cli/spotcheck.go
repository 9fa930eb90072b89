package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelkit/lettering/internal/classify"
	"github.com/panelkit/lettering/internal/logging"
	"github.com/panelkit/lettering/internal/pipeline"
	"github.com/panelkit/lettering/internal/render"
)

var (
	spotText string
	mapRows  int
	mapCols  int
)

// spotcheckCmd renders text with known content, runs the full pipeline
// over it, classifies each discovered glyph, and reports the hit rate.
// A quick sanity loop, not an accuracy benchmark.
var spotcheckCmd = &cobra.Command{
	Use:   "spotcheck",
	Short: "Render known text, re-extract it, and report the classifier hit rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier := classify.NewClassifier(mapRows, mapCols)
		for r, glyph := range render.GlyphSet(spotText) {
			if err := classifier.Train(string(r), glyph); err != nil {
				return err
			}
		}

		g := render.Text(spotText, render.DefaultOptions())
		clusters := pipeline.Extract(g, pipelineConfig())

		hits, count := 0, 0
		expected := []rune(spotText)
		for _, c := range clusters {
			for _, gl := range c.Glyphs {
				if gl.Gap {
					continue
				}
				prediction, err := classifier.Classify(gl.Region())
				if err != nil {
					logging.Warn("glyph not classifiable", "bounds", fmt.Sprintf("%+v", gl.Bounds), "error", err)
					count++
					continue
				}
				if count < len(expected) && prediction == string(expected[count]) {
					hits++
				}
				count++
			}
		}

		fmt.Printf("Hits: %d / %d (%.3f)\n", hits, count, float64(hits)/float64(max(count, 1)))
		return nil
	},
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func init() {
	spotcheckCmd.Flags().StringVar(&spotText, "text", "0123456789", "text to render and re-extract")
	spotcheckCmd.Flags().IntVar(&mapRows, "map-rows", 3, "density map rows")
	spotcheckCmd.Flags().IntVar(&mapCols, "map-cols", 3, "density map columns")
	rootCmd.AddCommand(spotcheckCmd)
}
