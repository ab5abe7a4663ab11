// Package term renders treemap layouts as colored character grids for
// terminal output. Each leaf tile becomes a box-drawn block with the
// node name and, optionally, its weight.
package term

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mosaic/pkg/treemap"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	minLabelWidth  = 5
	minLabelHeight = 3
)

var (
	borderColor    = lipgloss.Color("#4B5563")
	highlightColor = lipgloss.Color("#FACC15")
	darkText       = lipgloss.Color("#1F2937")
	lightText      = lipgloss.Color("#F9FAFB")
)

type renderer struct {
	width     int
	height    int
	palette   *treemap.Palette
	weights   bool
	title     string
	highlight string
}

// Option configures terminal rendering.
type Option func(*renderer)

// WithSize sets the grid dimensions in character cells.
func WithSize(width, height int) Option {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithPalette sets the tile color palette.
func WithPalette(p *treemap.Palette) Option {
	return func(r *renderer) { r.palette = p }
}

// WithWeights includes each tile's weight under its name when the
// block is tall enough.
func WithWeights(on bool) Option {
	return func(r *renderer) { r.weights = on }
}

// WithTitle adds a centered title line above the grid.
func WithTitle(title string) Option {
	return func(r *renderer) { r.title = title }
}

// WithHighlight marks the tile with the given path, and every tile in
// its subtree, as selected: borders brighten and labels render bold.
// Used by the interactive browser to show the cursor.
func WithHighlight(path string) Option {
	return func(r *renderer) { r.highlight = path }
}

// Render draws the layout's leaf tiles onto a character grid and
// returns the styled lines joined with newlines. Tiles too small to
// occupy a cell are skipped.
func Render(l *treemap.Layout, opts ...Option) string {
	if l == nil {
		return ""
	}

	r := &renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	if r.palette == nil {
		p, err := treemap.PaletteByName(treemap.DefaultPalette)
		if err != nil {
			panic("term: default palette missing: " + err.Error())
		}
		r.palette = p
	}
	if r.width < 4 {
		r.width = 4
	}
	if r.height < 2 {
		r.height = 2
	}

	gridH := r.height
	if r.title != "" {
		gridH--
	}

	g := newGrid(r.width, gridH)
	sx := float64(r.width) / l.Bounds.W
	sy := float64(gridH) / l.Bounds.H

	for _, tile := range l.Leaves() {
		if tile.Rect.Empty() {
			continue
		}
		x0 := cell(tile.Rect.X-l.Bounds.X, sx)
		x1 := cell(tile.Rect.X+tile.Rect.W-l.Bounds.X, sx)
		y0 := cell(tile.Rect.Y-l.Bounds.Y, sy)
		y1 := cell(tile.Rect.Y+tile.Rect.H-l.Bounds.Y, sy)
		if x1-x0 < 1 || y1-y0 < 1 {
			continue
		}
		r.drawBlock(g, tile, x0, y0, x1-x0, y1-y0)
	}

	var out strings.Builder
	if r.title != "" {
		out.WriteString(centerLine(r.title, r.width))
		out.WriteByte('\n')
	}
	out.WriteString(g.String())
	return out.String()
}

// cell maps a layout coordinate to a grid column or row. Neighboring
// tiles share boundaries, so rounding keeps the grid seamless.
func cell(v, scale float64) int {
	return int(math.Round(v * scale))
}

func (r *renderer) drawBlock(g *grid, tile treemap.Tile, x, y, w, h int) {
	bg := r.palette.Color(tile)
	fill := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex())).Foreground(textColor(bg))
	border := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex())).Foreground(borderColor)
	if r.highlight != "" && underPath(tile.Path, r.highlight) {
		fill = fill.Bold(true)
		border = border.Foreground(highlightColor).Bold(true)
	}

	for gy := y; gy < y+h; gy++ {
		for gx := x; gx < x+w; gx++ {
			g.set(gx, gy, ' ', fill)
		}
	}

	for gx := x; gx < x+w; gx++ {
		g.set(gx, y, '─', border)
		g.set(gx, y+h-1, '─', border)
	}
	for gy := y; gy < y+h; gy++ {
		g.set(x, gy, '│', border)
		g.set(x+w-1, gy, '│', border)
	}
	g.set(x, y, '┌', border)
	g.set(x+w-1, y, '┐', border)
	g.set(x, y+h-1, '└', border)
	g.set(x+w-1, y+h-1, '┘', border)

	if w < minLabelWidth || h < minLabelHeight {
		return
	}
	g.text(x+2, y+1, x+w-2, tile.Name, fill)
	if r.weights && h > 3 && w > 6 {
		g.text(x+2, y+2, x+w-2, strconv.FormatFloat(tile.Weight, 'g', -1, 64), fill)
	}
}

// underPath reports whether path is sel itself or lies inside sel's
// subtree.
func underPath(path, sel string) bool {
	return path == sel || strings.HasPrefix(path, sel+"/")
}

// textColor picks a readable foreground for the given tile fill.
func textColor(bg colorful.Color) lipgloss.Color {
	_, _, lum := bg.Hcl()
	if lum > 0.6 {
		return darkText
	}
	return lightText
}

func centerLine(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + string(runes)
}

type grid struct {
	w, h   int
	runes  [][]rune
	styles [][]lipgloss.Style
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h}
	g.runes = make([][]rune, h)
	g.styles = make([][]lipgloss.Style, h)
	for y := range g.runes {
		g.runes[y] = make([]rune, w)
		g.styles[y] = make([]lipgloss.Style, w)
		for x := range g.runes[y] {
			g.runes[y][x] = ' '
		}
	}
	return g
}

func (g *grid) set(x, y int, ch rune, style lipgloss.Style) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	g.runes[y][x] = ch
	g.styles[y][x] = style
}

func (g *grid) text(x, y, maxX int, s string, style lipgloss.Style) {
	for i, ch := range []rune(s) {
		gx := x + i
		if gx >= maxX {
			return
		}
		g.set(gx, y, ch, style)
	}
}

func (g *grid) String() string {
	lines := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var line strings.Builder
		for x := 0; x < g.w; x++ {
			line.WriteString(g.styles[y][x].Render(string(g.runes[y][x])))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
