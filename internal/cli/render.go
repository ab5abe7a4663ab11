package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// renderCommand creates the render command for generating treemaps.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a weighted document as a treemap",
		Long: `Render a weighted document as a treemap.

The render command decodes the input document (JSON, YAML, TOML, CSV or
indented text; the format is sniffed unless --input-format is given),
computes the slice-and-dice layout and writes one artifact per requested
output format.

With a single format the artifact goes to --output (default: the input
path with its extension replaced). With multiple formats --output acts
as a base path and each artifact gets its format appended as extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(formatsStr)
			c.config.apply(&opts)
			if len(opts.Formats) == 0 {
				opts.Formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, txt, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, yaml, toml, csv, text (default: sniffed)")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "layout width in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "layout height in pixels (default 600)")
	cmd.Flags().StringVar(&opts.Axis, "axis", "", "axis divided at the root: x (default), y")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "fold tiles below this depth into their ancestor (0 = unlimited)")

	// Render flags
	cmd.Flags().StringVar(&opts.Style, "style", "", "svg style: flat (default), glossy")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "color palette: garden (default), dusk, ocean, warm, mono")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title drawn above the treemap")
	cmd.Flags().BoolVar(&opts.Frames, "frames", false, "outline internal rectangles (svg, png)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "totals and leaf counts in node labels (dot)")
	cmd.Flags().IntVar(&opts.Scale, "scale", 0, "supersampling factor for png (default 2)")
	cmd.Flags().StringVar(&opts.Font, "font", "", "font family for png labels (default: bundled)")
	cmd.Flags().IntVar(&opts.TermWidth, "term-width", 0, "character grid width for txt (default 100)")
	cmd.Flags().IntVar(&opts.TermHeight, "term-height", 0, "character grid height for txt (default 30)")

	return cmd
}

// runRender executes the full pipeline and writes all artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	opts.Logger = c.Logger
	runner := c.newRunner()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats)
	printNewline()
	printNextStep("Browse", appName+" browse "+opts.Input)

	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
// This is used when generating multiple files (e.g., groceries.svg, groceries.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// Strip known format extensions from output path
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes the rendered artifacts to disk and returns the
// written paths in the order the formats were requested.
//
// A single format goes to output verbatim (or <input base>.<format> when
// output is empty). Multiple formats share a base path and each gets its
// format as extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = basePath("", input) + "." + formats[0]
		}
		if err := writeArtifact(path, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeArtifact writes one artifact, wrapping failures with the path.
func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", path)
	}
	return nil
}
