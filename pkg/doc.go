// Package pkg provides the core libraries for Mosaic treemap visualization.
//
// # Overview
//
// Mosaic turns weighted hierarchies into treemaps: a rectangle is divided
// so that every node receives an area proportional to its weight. The pkg
// directory is organized into four main areas:
//
//  1. [tree], [treemap] - Domain model and slice-and-dice layout
//  2. [input], [layoutio] - Decoding documents, exporting layouts
//  3. [render/...] - Output sinks (SVG, PNG, DOT, terminal)
//  4. [models/...], [textstats], [regress] - Simulation and analysis
//     models that produce treemap-ready summary trees
//
// # Architecture
//
// The typical data flow through Mosaic:
//
//	JSON/YAML/TOML/CSV/text document
//	         ↓
//	    [input] package (decode into a weighted tree)
//	         ↓
//	    [tree] package (validated Node hierarchy)
//	         ↓
//	    [treemap] package (slice-and-dice layout)
//	         ↓
//	    [render/svg] [render/raster] [render/dot] [render/term]
//	         ↓
//	    SVG/PNG/DOT/TXT/JSON output
//
// # Quick Start
//
// Decode a document, compute a layout and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/mosaic/pkg/input"
//	    "github.com/matzehuels/mosaic/pkg/render/svg"
//	    "github.com/matzehuels/mosaic/pkg/treemap"
//	)
//
//	// 1. Decode the document
//	root, _, err := input.DecodeFile("groceries.json")
//
//	// 2. Compute the layout
//	l, err := treemap.Compute(root, treemap.Rect{W: 800, H: 600})
//
//	// 3. Render to SVG
//	out := svg.Render(l, svg.WithTitle("Groceries"))
//
// # Main Packages
//
// [tree] - Weighted ordered trees. Leaf and Branch constructors validate
// weights at build time; TotalWeight recomputes subtree sums on every call.
//
// [treemap] - The slice-and-dice layout. Alternates split axis per depth,
// divides each rectangle proportionally to child weights, and emits one
// Tile per node in document order. Also home to the named color palettes.
//
// [input] - Document decoding for JSON, YAML, TOML, CSV and indented text,
// with format sniffing from extension and content.
//
// [layoutio] - JSON export and import of computed layouts, so rendering
// can be re-run without recomputing geometry.
//
// [pipeline] - The staged decode → build → layout → render runner used by
// the CLI, with per-stage timing stats.
//
// [render/svg] - Native SVG sink with selectable styles and palettes.
//
// [render/raster] - PNG sink drawing via fogleman/gg with supersampling.
//
// [render/dot] - Graphviz view of the hierarchy itself (containment as
// edges), as DOT text or rendered SVG.
//
// [render/term] - Rune-grid treemap for terminals, shared by the txt
// format and the interactive browser.
//
// [models/sir], [models/schelling], [models/polling] - Classic simulation
// models (epidemic spread, segregation, polling-place queues). Each one
// exposes a summary tree so its outcome can be rendered as a treemap.
//
// [textstats] - Token counting, n-grams and tf-idf salience over tweet
// corpora, with a frequency tree for treemap display.
//
// [regress] - Ordinary least squares model fitting with univariate,
// bivariate and forward-selection builders over CSV datasets.
//
// [errors] - Coded errors (Error{Code, Message, Cause}) shared by every
// package; UserMessage extracts CLI-safe text.
//
// [observability] - Hook interfaces for instrumenting decode, layout and
// render stages without coupling the core to a metrics backend.
//
// [fonts] - Embedded fallback font and system font lookup for the raster
// sink.
//
// [buildinfo] - Version metadata injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/treemap/...   # Specific package
//	go test -run Example        # Examples only
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/tree
// [treemap]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/treemap
// [input]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/input
// [layoutio]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/layoutio
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/pipeline
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render/svg
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render/raster
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render/dot
// [render/term]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render/term
// [models/sir]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/models/sir
// [models/schelling]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/models/schelling
// [models/polling]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/models/polling
// [textstats]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/textstats
// [regress]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/regress
// [errors]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/buildinfo
package pkg
