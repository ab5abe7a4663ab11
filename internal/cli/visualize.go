package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layoutio"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render artifacts from a saved layout",
		Long: `Render artifacts from a saved layout.

The visualize command takes a layout.json file (produced by 'layout' or
'render -f json') and renders it to SVG, PNG or terminal text. The layout
carries all tile geometry, so this step is purely about drawing.

The dot format describes the document hierarchy rather than geometry and
is not available here; use 'render' for it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			c.config.apply(&opts)
			if len(opts.Formats) == 0 {
				opts.Formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			for _, f := range opts.Formats {
				if f == pipeline.FormatDOT {
					return errors.New(errors.ErrCodeUnsupported,
						"dot output needs the document hierarchy; use '%s render' instead", appName)
				}
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, txt, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "svg style: flat (default), glossy")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "color palette: garden (default), dusk, ocean, warm, mono")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title drawn above the treemap")
	cmd.Flags().BoolVar(&opts.Frames, "frames", false, "outline internal rectangles (svg, png)")
	cmd.Flags().IntVar(&opts.Scale, "scale", 0, "supersampling factor for png (default 2)")
	cmd.Flags().StringVar(&opts.Font, "font", "", "font family for png labels (default: bundled)")
	cmd.Flags().IntVar(&opts.TermWidth, "term-width", 0, "character grid width for txt (default 100)")
	cmd.Flags().IntVar(&opts.TermHeight, "term-height", 0, "character grid height for txt (default 30)")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	layout, err := layoutio.ImportJSON(input)
	if err != nil {
		return err
	}

	opts.Logger = c.Logger
	runner := c.newRunner()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	artifacts, err := runner.Render(ctx, layout, nil, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Visualization complete")
	for _, p := range paths {
		printFile(p)
	}
	printDetail("%d tiles · depth %d", len(layout.Tiles), layout.MaxDepth())

	return nil
}
