// Package input decodes weighted trees from external data sources.
//
// # Overview
//
// Treemaps start from data that lives outside the program: exported
// reports, spreadsheets, hand-written outlines. This package turns such
// documents into [tree.Node] values ready for layout. Five formats are
// supported, selected explicitly or sniffed from the file name and
// content.
//
// # Structured Documents (JSON, YAML, TOML)
//
// JSON and YAML documents are recursive objects with "name", "weight",
// and "children" fields:
//
//	{
//	  "name": "basket",
//	  "children": [
//	    {"name": "fruits", "children": [
//	      {"name": "apples", "weight": 3},
//	      {"name": "pears", "weight": 1}
//	    ]},
//	    {"name": "bread", "weight": 4}
//	  ]
//	}
//
// TOML expresses the same shape with [[children]] tables:
//
//	name = "basket"
//
//	[[children]]
//	name = "bread"
//	weight = 4
//
// Weights belong to leaves. A node with both a weight and children is
// rejected, since internal weights are always derived from the leaves
// below them.
//
// # CSV
//
// CSV rows hold a slash-separated leaf path and a weight; intermediate
// nodes are implied by the path segments:
//
//	basket/fruits/apples,3
//	basket/fruits/pears,1
//	basket/bread,4
//
// A leading "path,weight" header row is skipped. All rows must share the
// same first segment, which becomes the root. Sibling order follows
// first appearance.
//
// # Indented Text
//
// Plain-text outlines indent children under their parent; a trailing
// number makes a line a weighted leaf:
//
//	basket
//	  fruits
//	    apples 3
//	    pears 1
//	  bread 4
//
// # Errors
//
// Decode and DecodeFile return coded errors: UNKNOWN_FORMAT for formats
// this package does not handle, MALFORMED_INPUT wrapping the codec error
// for undecodable documents, and INVALID_INPUT for well-formed documents
// that do not describe a tree (duplicate paths, multiple roots, weights
// on internal nodes). Weight range violations surface the construction
// errors of [tree.Leaf] unchanged, so callers can match
// [tree.ErrInvalidWeight] directly.
//
// [tree.Node]: github.com/matzehuels/mosaic/pkg/tree.Node
// [tree.Leaf]: github.com/matzehuels/mosaic/pkg/tree.Leaf
// [tree.ErrInvalidWeight]: github.com/matzehuels/mosaic/pkg/tree.ErrInvalidWeight
package input
