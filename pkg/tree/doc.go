// Package tree provides the weighted ordered tree that every Mosaic
// layout and renderer consumes.
//
// # Overview
//
// A treemap divides a rectangle among subtrees in proportion to their
// weight. This package holds that hierarchy: each [Node] has a display
// name, an optional stored weight, and an ordered list of children.
// Leaves carry the weight; an internal node's effective weight is the
// sum of its leaves, recomputed by [Node.TotalWeight] on every call so
// it can never disagree with the structure.
//
// # Basic Usage
//
// Build trees bottom-up with [Leaf] and [Branch]:
//
//	apples, _ := tree.Leaf("apples", 4)
//	pears, _ := tree.Leaf("pears", 2)
//	fruits, _ := tree.Branch("fruits", apples, pears)
//	fruits.TotalWeight() // 6
//
// Construction is the only mutation point. [Leaf] rejects negative, NaN,
// and infinite weights with [ErrInvalidWeight]; nothing else can fail.
// After construction a tree is immutable and safe to share between
// concurrent readers.
//
// # Traversal
//
// [Node.Walk] visits nodes in pre-order with their depth, which is the
// order layouts emit tiles in. Aggregate queries ([Node.TotalWeight],
// [Node.CountLeaves], [Node.Depth]) recurse over the live structure.
//
// # Related Packages
//
// The [treemap] package computes slice-and-dice layouts over these
// trees; the [input] package decodes them from JSON, YAML, TOML, CSV,
// and indented-text documents.
//
// [treemap]: github.com/matzehuels/mosaic/pkg/treemap
// [input]: github.com/matzehuels/mosaic/pkg/input
package tree
