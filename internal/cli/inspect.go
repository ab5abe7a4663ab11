package cli

import (
	"context"
	"fmt"
	"strconv"

	lgtree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/render/dot"
	"github.com/matzehuels/mosaic/pkg/tree"
)

// inspectCommand creates the inspect command for examining documents.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		hierarchy string
		detailed  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "Print a document's tree and summary statistics",
		Long: `Print a document's tree and summary statistics.

The inspect command decodes the input document and prints the weighted
hierarchy without computing a layout. With --hierarchy it additionally
writes a Graphviz rendering of the tree structure as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runInspect(cmd.Context(), opts, hierarchy, detailed)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, yaml, toml, csv, text (default: sniffed)")
	cmd.Flags().StringVar(&hierarchy, "hierarchy", "", "write a Graphviz SVG of the tree structure to this file")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "totals and leaf counts in branch labels")

	return cmd
}

// runInspect decodes the document and prints its structure.
func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, hierarchy string, detailed bool) error {
	opts.Logger = c.Logger
	runner := c.newRunner()

	root, format, err := runner.Decode(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Println(inspectTree(root, detailed).String())
	printNewline()
	printKeyValue("format", string(format))
	printKeyValue("nodes", strconv.Itoa(root.CountNodes()))
	printKeyValue("leaves", strconv.Itoa(root.CountLeaves()))
	printKeyValue("depth", strconv.Itoa(root.Depth()))
	printKeyValue("total weight", formatWeight(root.TotalWeight()))

	if hierarchy == "" {
		return nil
	}

	svg, err := dot.RenderSVG(dot.ToDOT(root, dot.Options{Detailed: detailed}))
	if err != nil {
		return err
	}
	if err := writeArtifact(hierarchy, svg); err != nil {
		return err
	}
	printNewline()
	printSuccess("Hierarchy diagram written")
	printFile(hierarchy)

	return nil
}

// inspectTree converts a document tree into a printable lipgloss tree.
func inspectTree(n *tree.Node, detailed bool) *lgtree.Tree {
	t := lgtree.Root(inspectLabel(n, detailed)).
		Enumerator(lgtree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for _, child := range n.Children() {
		if child.IsLeaf() {
			t.Child(inspectLabel(child, detailed))
		} else {
			t.Child(inspectTree(child, detailed))
		}
	}
	return t
}

// inspectLabel formats one node for the tree listing. Leaves show their
// weight; branches stay bare unless detailed is set.
func inspectLabel(n *tree.Node, detailed bool) string {
	if n.IsLeaf() {
		return n.Name() + " " + StyleNumber.Render(formatWeight(n.Weight()))
	}
	if detailed {
		return n.Name() + " " + StyleDim.Render(fmt.Sprintf("(%s, %d leaves)", formatWeight(n.TotalWeight()), n.CountLeaves()))
	}
	return n.Name()
}

// formatWeight renders a weight without trailing zeros.
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
