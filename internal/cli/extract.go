package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/panelkit/lettering/internal/geometry"
	imgio "github.com/panelkit/lettering/internal/imaging"
	"github.com/panelkit/lettering/internal/logging"
	"github.com/panelkit/lettering/internal/pipeline"
)

var cropsDir string

// glyphOut mirrors the pipeline output for JSON consumers.
type glyphOut struct {
	Bounds      geometry.Rect   `json:"bounds"`
	Annotations []geometry.Rect `json:"annotations,omitempty"`
	Gap         bool            `json:"gap,omitempty"`
}

type clusterOut struct {
	Bounds   geometry.Rect `json:"bounds"`
	Vertical bool          `json:"vertical"`
	Glyphs   []glyphOut    `json:"glyphs"`
}

var extractCmd = &cobra.Command{
	Use:   "extract IMAGE",
	Short: "Discover text clusters and ordered glyph boxes in an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		g, err := imgio.LoadGrid(cache, path, binarizeOptions())
		if err != nil {
			return err
		}

		clusters := pipeline.Extract(g, pipelineConfig())
		logging.Info("extraction complete", "path", path, "clusters", len(clusters))

		if cropsDir != "" {
			if err := saveClusterCrops(path, clusters); err != nil {
				return err
			}
		}

		out := make([]clusterOut, 0, len(clusters))
		for _, c := range clusters {
			co := clusterOut{Bounds: c.Bounds, Vertical: c.Vertical}
			for _, gl := range c.Glyphs {
				co.Glyphs = append(co.Glyphs, glyphOut{
					Bounds:      gl.Bounds,
					Annotations: gl.Annotations,
					Gap:         gl.Gap,
				})
			}
			out = append(out, co)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// saveClusterCrops cuts each cluster box out of the source image for
// visual inspection.
func saveClusterCrops(path string, clusters []*pipeline.Cluster) error {
	img, err := cache.Load(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cropsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create crops dir: %w", err)
	}

	base := filepath.Base(path)
	for i, c := range clusters {
		crop := imaging.Crop(img, image.Rect(c.Bounds.X, c.Bounds.Y, c.Bounds.Right(), c.Bounds.Bottom()))
		out := filepath.Join(cropsDir, fmt.Sprintf("%s.cluster%02d.png", base, i))
		if err := imaging.Save(crop, out); err != nil {
			return fmt.Errorf("failed to save cluster crop: %w", err)
		}
		logging.Debug("saved cluster crop", "path", out)
	}
	return nil
}

func init() {
	extractCmd.Flags().StringVar(&cropsDir, "crops", "", "directory to write per-cluster image crops")
	rootCmd.AddCommand(extractCmd)
}
