// Package dot renders the tree hierarchy as a Graphviz node-link
// diagram, complementing the space-filling treemap views with a
// containment view of the same data.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mosaic/pkg/tree"
)

// Options configures hierarchy diagram rendering.
type Options struct {
	// Detailed includes weights and leaf counts in node labels.
	// When false, only the node name is shown.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT format. Leaves are filled with
// the weight printed under the name; internal nodes show the recomputed
// subtree total when Detailed is set. The resulting DOT string can be
// rendered with [RenderSVG].
func ToDOT(root *tree.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	// Names may repeat between siblings, so DOT identifiers are assigned
	// by visit order and labels carry the display name.
	ids := make(map[*tree.Node]string)
	next := 0
	root.Walk(func(n *tree.Node, _ int) bool {
		ids[n] = "n" + strconv.Itoa(next)
		next++
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %s [%s];\n", ids[n], strings.Join(attrs, ", "))
		return true
	})

	buf.WriteString("\n")
	root.Walk(func(n *tree.Node, _ int) bool {
		for _, c := range n.Children() {
			fmt.Fprintf(&buf, "  %s -> %s;\n", ids[n], ids[c])
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, detailed bool) string {
	name := n.Name()
	if name == "" {
		name = "(unnamed)"
	}
	if n.IsLeaf() {
		return fmt.Sprintf("%s\n%g", name, n.Weight())
	}
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\ntotal: %g\nleaves: %d", name, n.TotalWeight(), n.CountLeaves())
}

func fmtAttrs(n *tree.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.IsLeaf() {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
