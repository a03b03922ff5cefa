package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"moliere/pkg/engine"
	"moliere/pkg/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <input.html>",
	Short: "Render an HTML file to a PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringP("output", "o", "out.png", "output PNG path")
	f.StringArray("css", nil, "extra stylesheet file (repeatable)")
	f.Int("width", 800, "viewport width in pixels")
	f.Int("height", 600, "viewport height in pixels")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	cssFiles, _ := cmd.Flags().GetStringArray("css")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	extraCSS, err := readStylesheets(cssFiles)
	if err != nil {
		// Missing stylesheets degrade the page, they do not abort it —
		// the same leniency the parsers apply to malformed text.
		logger.Warn("skipping unreadable stylesheets", zap.Error(err))
	}

	page := engine.New(float64(width), float64(height), logger).Run(string(source), extraCSS...)

	r := render.NewRenderer(width, height)
	r.Render(page.Layout)
	if err := r.SavePNG(output); err != nil {
		return err
	}
	logger.Info("rendered page",
		zap.String("input", args[0]),
		zap.String("output", output),
		zap.Int("width", width),
		zap.Int("height", height))
	return nil
}

// readStylesheets reads every file it can and reports the failures
// together.
func readStylesheets(paths []string) ([]string, error) {
	var sources []string
	var errs error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reading stylesheet %s: %w", path, err))
			continue
		}
		sources = append(sources, string(data))
	}
	return sources, errs
}
