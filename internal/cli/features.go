package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/panelkit/lettering/internal/contour"
	"github.com/panelkit/lettering/internal/geometry"
	imgio "github.com/panelkit/lettering/internal/imaging"
	"github.com/panelkit/lettering/internal/pipeline"
)

var (
	halfMode  bool
	groupSize int
)

type featureOut struct {
	Bounds  geometry.Rect `json:"bounds"`
	Empty   bool          `json:"empty"`
	Vector  []float64     `json:"vector"`
	Grouped []float64     `json:"grouped,omitempty"`
}

var featuresCmd = &cobra.Command{
	Use:   "features IMAGE",
	Short: "Dump per-glyph directional contour feature vectors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := imgio.LoadGrid(cache, args[0], binarizeOptions())
		if err != nil {
			return err
		}

		kind := contour.Full
		width := contour.NumDirections
		if halfMode {
			kind = contour.Half
			width = contour.NumDirections / 2
		}

		var out []featureOut
		for _, c := range pipeline.Extract(g, pipelineConfig()) {
			for _, gl := range c.Glyphs {
				if gl.Gap {
					continue
				}
				f := gl.Feature(kind)
				fo := featureOut{
					Bounds: gl.Bounds,
					Empty:  f.IsEmpty(),
					Vector: f.Dimensions(width),
				}
				if groupSize > 0 && gl.Bounds.Width%groupSize == 0 {
					analysis := gl.Analyze()
					if halfMode {
						fo.Grouped = analysis.HalfGroupedDimensions(groupSize)
					} else {
						fo.Grouped = analysis.FullGroupedDimensions(groupSize)
					}
				}
				out = append(out, fo)
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	featuresCmd.Flags().BoolVar(&halfMode, "half", false, "combine opposite-direction pairs before normalization")
	featuresCmd.Flags().IntVar(&groupSize, "group", 0, "also emit sample-grouped dimensions (glyph width must divide evenly)")
	rootCmd.AddCommand(featuresCmd)
}
