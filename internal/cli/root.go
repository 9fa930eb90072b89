// Package cli wires the extraction pipeline to a command-line harness:
// extract glyph boxes from an image, dump feature vectors, or spot-check
// the pipeline end to end against rendered text with known content.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/panelkit/lettering/internal/grid"
	"github.com/panelkit/lettering/internal/imaging"
	"github.com/panelkit/lettering/internal/logging"
	"github.com/panelkit/lettering/internal/pipeline"
)

var (
	debug      bool
	perceptual bool
	level      int
	lightness  float64

	cache = imaging.NewCache()
)

var rootCmd = &cobra.Command{
	Use:   "lettering",
	Short: "Extract glyph sequences and contour features from lettered panel images",
	Long: `lettering runs the glyph-extraction pipeline over binarized images of
stylized text: region discovery, annotation (furigana) resolution,
reading-order linearization, and directional contour features.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(debug || viper.GetBool("debug"))
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&perceptual, "perceptual", false, "binarize on Lab lightness instead of a fixed gray level")
	rootCmd.PersistentFlags().IntVar(&level, "level", 128, "fixed binarization level (0-255)")
	rootCmd.PersistentFlags().Float64Var(&lightness, "lightness", 0.5, "perceptual binarization lightness cut (0.0-1.0)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("level", rootCmd.PersistentFlags().Lookup("level"))
	viper.BindPFlag("lightness", rootCmd.PersistentFlags().Lookup("lightness"))
}

func initConfig() {
	viper.SetEnvPrefix("LETTERING")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// binarizeOptions resolves the binarization knobs from flags and
// LETTERING_* environment overrides.
func binarizeOptions() grid.Binarize {
	opts := grid.DefaultBinarize()
	opts.Level = uint8(viper.GetInt("level"))
	opts.Lightness = viper.GetFloat64("lightness")
	if perceptual {
		opts.Mode = grid.Perceptual
	}
	return opts
}

func pipelineConfig() pipeline.Config {
	return pipeline.DefaultConfig()
}
