package treemap

import (
	"errors"
	"hash/fnv"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownPalette is returned by [PaletteByName] for unregistered names.
var ErrUnknownPalette = errors.New("unknown palette")

// Palette assigns deterministic fill colors to tiles. Tiles under the
// same top-level branch share a base color; deeper tiles fade toward
// white so nesting reads at a glance. The assignment depends only on the
// tile's path and depth, so re-rendering the same tree is stable.
type Palette struct {
	name string
	base []colorful.Color
}

// fadePerLevel controls how much lighter each nesting level gets.
const (
	fadePerLevel = 0.12
	fadeMax      = 0.48
)

var palettes = map[string][]string{
	"garden": {"#2d6a4f", "#40916c", "#52b788", "#74c69d", "#95d5b2"},
	"dusk":   {"#5a189a", "#7b2cbf", "#9d4edd", "#c77dff", "#e0aaff"},
	"ocean":  {"#03045e", "#0077b6", "#00b4d8", "#48cae4", "#90e0ef"},
	"warm":   {"#9d0208", "#d00000", "#dc2f02", "#e85d04", "#f48c06"},
	"mono":   {"#212529", "#495057", "#6c757d", "#adb5bd", "#ced4da"},
}

// DefaultPalette is used when no palette is named.
const DefaultPalette = "garden"

// PaletteByName returns a registered palette. Returns ErrUnknownPalette
// for names not listed by [PaletteNames].
func PaletteByName(name string) (*Palette, error) {
	hexes, ok := palettes[name]
	if !ok {
		return nil, ErrUnknownPalette
	}
	base := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		base[i] = c
	}
	return &Palette{name: name, base: base}, nil
}

// PaletteNames returns the registered palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the palette's registered name.
func (p *Palette) Name() string { return p.name }

// Color returns the fill color for a tile. The base color is picked by
// hashing the tile's top-level ancestor so sibling subtrees contrast,
// then blended toward white with depth in HCL space, which keeps hues
// perceptually steady while lightening.
func (p *Palette) Color(t Tile) colorful.Color {
	base := p.base[hashString(topSegment(t.Path))%uint32(len(p.base))]

	fade := fadePerLevel * float64(t.Depth-1)
	if t.Depth <= 1 {
		fade = 0
	}
	if fade > fadeMax {
		fade = fadeMax
	}
	if fade == 0 {
		return base
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return base.BlendHcl(white, fade).Clamped()
}

// Hex returns the tile color as an SVG-ready "#rrggbb" string.
func (p *Palette) Hex(t Tile) string {
	return p.Color(t).Hex()
}

// topSegment extracts the first path segment below the root, or the whole
// path for the root tile itself. Tiles in the same top-level subtree share
// this segment and therefore a base color.
func topSegment(path string) string {
	rest := path
	if i := strings.Index(path, "/"); i >= 0 {
		rest = path[i+1:]
	}
	if j := strings.Index(rest, "/"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
