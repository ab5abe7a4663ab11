// Package render groups the treemap output sinks.
//
// # Overview
//
// Every sink consumes a computed [treemap.Layout] and shares the same
// functional-option pattern. Zero-area tiles are never drawn; labels are
// truncated to fit their tile and empty names draw no label.
//
//   - [svg]: native SVG writer with selectable styles and palettes
//   - [raster]: PNG drawing via fogleman/gg with optional supersampling
//   - [dot]: Graphviz view of the hierarchy itself (DOT text or SVG)
//   - [term]: rune-grid rendering for terminals and the interactive browser
//
// # Choosing a Sink
//
// The svg and raster sinks draw the layout geometry and are what most
// callers want. The dot sink ignores geometry and renders the containment
// structure as a node-link diagram, which is useful for checking how a
// document was decoded. The term sink trades fidelity for immediacy: it
// fits the layout onto a character grid.
//
//	p, _ := treemap.PaletteByName("dusk")
//	out := svg.Render(l, svg.WithPalette(p))
//	png, err := raster.Render(l, raster.WithScale(2))
//	txt := term.Render(l, term.WithSize(100, 30))
//
// [svg]: github.com/matzehuels/mosaic/pkg/render/svg
// [raster]: github.com/matzehuels/mosaic/pkg/render/raster
// [dot]: github.com/matzehuels/mosaic/pkg/render/dot
// [term]: github.com/matzehuels/mosaic/pkg/render/term
// [treemap.Layout]: github.com/matzehuels/mosaic/pkg/treemap
package render
