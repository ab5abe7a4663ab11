package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/layoutio"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tile geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [input]",
		Short: "Compute treemap geometry and save it as JSON",
		Long: `Compute treemap geometry and save it as JSON.

The layout command decodes the input document and computes the
slice-and-dice layout without rendering anything. The output is a
layout.json file (same format as 'render -f json') that can be turned
into SVG, PNG or terminal output later with the 'visualize' command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			c.config.apply(&opts)
			return c.runLayout(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, yaml, toml, csv, text (default: sniffed)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "layout width in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "layout height in pixels (default 600)")
	cmd.Flags().StringVar(&opts.Axis, "axis", "", "axis divided at the root: x (default), y")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "fold tiles below this depth into their ancestor (0 = unlimited)")

	return cmd
}

// runLayout decodes the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string) error {
	opts.Logger = c.Logger
	runner := c.newRunner()

	root, format, err := runner.Decode(ctx, opts)
	if err != nil {
		return err
	}
	c.Logger.Infof("Decoded %s document: %d nodes, %d leaves", format, root.CountNodes(), root.CountLeaves())

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, err := runner.ComputeLayout(ctx, root, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
		outputPath = base + ".layout.json"
	}

	if err := layoutio.ExportJSON(layout, outputPath); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printDetail("%d tiles · depth %d", len(layout.Tiles), layout.MaxDepth())
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
