package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/tree"
)

// writeSummaryTree renders a model's summary tree as a treemap artifact.
// The output format comes from the file extension (default svg); config
// defaults for palette, style and dimensions still apply.
func (c *CLI) writeSummaryTree(ctx context.Context, root *tree.Node, path, title string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}

	opts := pipeline.Options{
		Tree:    root,
		Formats: []string{format},
		Title:   title,
		Logger:  c.Logger,
	}
	c.config.apply(&opts)

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}
	if err := writeArtifact(path, result.Artifacts[format]); err != nil {
		return err
	}

	printNewline()
	printSuccess("Treemap written")
	printFile(path)
	return nil
}
