// Package layoutio provides JSON export and import for computed treemap
// layouts.
//
// # Overview
//
// This package enables serialization of [treemap.Layout] values to and
// from a simple JSON document. The format is designed for:
//
//   - Handing computed geometry to external tools (web front ends,
//     plotters) that draw rectangles but do not lay them out
//   - Snapshotting a layout so it can be re-rendered in another format
//     without recomputing
//   - Round-trip preservation: export, import, and re-export identically
//
// # JSON Format
//
// The document has a version marker, the bounding rectangle, and the
// tile list in document order:
//
//	{
//	  "version": 1,
//	  "bounds": {"x": 0, "y": 0, "w": 640, "h": 480},
//	  "tiles": [
//	    {"path": "basket", "rect": {"x": 0, "y": 0, "w": 640, "h": 480}, "weight": 8},
//	    {"path": "basket/bread", "name": "bread", "rect": {...}, "depth": 1, "leaf": true, "weight": 4}
//	  ]
//	}
//
// # Versioning
//
// Documents carry a "version" field so the format can evolve. [ReadJSON]
// rejects documents whose version it does not understand rather than
// guessing; see [ErrUnsupportedVersion]. The current version is
// [FormatVersion].
//
// # Import and Export
//
// Use [ExportJSON] to write a layout to a file, or [WriteJSON] to write
// to any io.Writer:
//
//	err := layoutio.ExportJSON(l, "layout.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Use [ImportJSON] to read a layout from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate the document structure and wrap
// errors with context about what failed.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently. Imported
// layouts are independent values that can be used freely after import.
//
// [treemap.Layout]: github.com/matzehuels/mosaic/pkg/treemap.Layout
package layoutio
