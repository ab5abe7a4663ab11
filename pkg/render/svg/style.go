package svg

import (
	"bytes"
	"fmt"
)

// Style defines the visual appearance of rendered treemaps.
// Implementations control how tiles, frames, and labels are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderTile writes the SVG for a single leaf tile.
	RenderTile(buf *bytes.Buffer, t TileBox)
	// RenderFrame writes the SVG outline for an internal-node rectangle.
	RenderFrame(buf *bytes.Buffer, t TileBox)
	// RenderLabel writes the SVG for a tile's label text.
	RenderLabel(buf *bytes.Buffer, t TileBox)
}

// TileBox contains all data needed to render a single tile.
type TileBox struct {
	Path       string  // node path, used for element IDs
	Label      string  // display text, possibly empty
	X, Y, W, H float64 // position and dimensions
	CX, CY     float64 // center coordinates (for text)
	Fill       string  // palette color as "#rrggbb"
	Depth      int     // nesting depth, 0 for the root
}

// Flat is the default style: solid palette fills with a thin dark stroke
// and horizontally centered labels.
type Flat struct{}

// RenderDefs writes nothing; the flat style needs no defs.
func (Flat) RenderDefs(buf *bytes.Buffer) {}

// RenderTile draws the tile as a filled rectangle.
func (Flat) RenderTile(buf *bytes.Buffer, t TileBox) {
	fmt.Fprintf(buf,
		"  <rect id=\"tile-%s\" class=\"tile\" x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" stroke=\"#333\" stroke-width=\"1\"/>\n",
		EscapeXML(t.Path), t.X, t.Y, t.W, t.H, t.Fill)
}

// RenderFrame draws an unfilled outline around an internal rectangle.
func (Flat) RenderFrame(buf *bytes.Buffer, t TileBox) {
	fmt.Fprintf(buf,
		"  <rect class=\"frame\" x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"none\" stroke=\"#333\" stroke-width=\"1.5\"/>\n",
		t.X, t.Y, t.W, t.H)
}

// RenderLabel draws the label centered in the tile, rotating it when the
// tile is taller than wide and the rotated text fits better.
func (Flat) RenderLabel(buf *bytes.Buffer, t TileBox) {
	label := t.Label
	if label == "" {
		return
	}

	rotated := ShouldRotate(t)
	size := FontSize(t)
	if rotated {
		size = FontSizeRotated(t)
	}
	label = TruncateLabel(t, rotated)

	if rotated {
		fmt.Fprintf(buf,
			"  <text class=\"tile-label\" x=\"%.2f\" y=\"%.2f\" font-size=\"%.1f\" font-family=\"sans-serif\" text-anchor=\"middle\" dominant-baseline=\"central\" transform=\"rotate(-90 %.2f %.2f)\">%s</text>\n",
			t.CX, t.CY, size, t.CX, t.CY, EscapeXML(label))
		return
	}
	fmt.Fprintf(buf,
		"  <text class=\"tile-label\" x=\"%.2f\" y=\"%.2f\" font-size=\"%.1f\" font-family=\"sans-serif\" text-anchor=\"middle\" dominant-baseline=\"central\">%s</text>\n",
		t.CX, t.CY, size, EscapeXML(label))
}

// Glossy layers a vertical white sheen over each tile, giving the map a
// slightly raised look. Tile geometry is identical to [Flat].
type Glossy struct{}

// RenderDefs writes the shared sheen gradient.
func (Glossy) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString("    <linearGradient id=\"tile-sheen\" x1=\"0\" y1=\"0\" x2=\"0\" y2=\"1\">\n")
	buf.WriteString("      <stop offset=\"0%\" stop-color=\"#ffffff\" stop-opacity=\"0.35\"/>\n")
	buf.WriteString("      <stop offset=\"55%\" stop-color=\"#ffffff\" stop-opacity=\"0.05\"/>\n")
	buf.WriteString("      <stop offset=\"100%\" stop-color=\"#000000\" stop-opacity=\"0.10\"/>\n")
	buf.WriteString("    </linearGradient>\n")
	buf.WriteString("  </defs>\n")
}

// RenderTile draws the filled rectangle plus the sheen overlay.
func (g Glossy) RenderTile(buf *bytes.Buffer, t TileBox) {
	Flat{}.RenderTile(buf, t)
	fmt.Fprintf(buf,
		"  <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"url(#tile-sheen)\" stroke=\"none\"/>\n",
		t.X, t.Y, t.W, t.H)
}

// RenderFrame matches the flat style.
func (Glossy) RenderFrame(buf *bytes.Buffer, t TileBox) { Flat{}.RenderFrame(buf, t) }

// RenderLabel matches the flat style.
func (Glossy) RenderLabel(buf *bytes.Buffer, t TileBox) { Flat{}.RenderLabel(buf, t) }

// StyleByName returns a registered style. Valid names are "flat" and
// "glossy".
func StyleByName(name string) (Style, bool) {
	switch name {
	case "flat":
		return Flat{}, true
	case "glossy":
		return Glossy{}, true
	}
	return nil, false
}

// StyleNames returns the registered style names.
func StyleNames() []string { return []string{"flat", "glossy"} }
