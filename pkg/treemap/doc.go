// Package treemap computes slice-and-dice treemap layouts over weighted
// trees.
//
// # Overview
//
// A treemap is a space-filling visualization where rectangle area is
// proportional to a weight value. The slice-and-dice strategy divides a
// node's rectangle among its children along one axis, then flips the
// axis for the next recursion depth, so alternating levels read as rows
// and columns.
//
// [Compute] takes a [tree.Node] and a bounding [Rect] and produces a
// [Layout]: one [Tile] per node in document order. Leaf tiles are the
// draw commands; render sinks turn each into a colored rectangle plus
// label. Internal tiles carry the enclosing rectangles used for frames
// and navigation.
//
// # Proportionality
//
// Child boundaries derive from cumulative weight fractions of the
// parent's total, so children tile the parent exactly: the leaf areas of
// any layout sum to the bounds area within floating-point tolerance, two
// equal-weight leaves split their parent into equal halves, and a
// zero-weight subtree collapses to a zero-area tile that sinks skip.
//
// # Basic Usage
//
//	root, _ := tree.Branch("basket",
//	    must(tree.Leaf("apples", 4)),
//	    must(tree.Leaf("pears", 2)),
//	)
//	l, err := treemap.Compute(root, treemap.Rect{W: 600, H: 400})
//	for _, t := range l.Leaves() {
//	    // t.Rect, t.Name, t.Weight
//	}
//
// Options select the root split axis ([WithAxis]) and clamp recursion
// depth ([WithMaxDepth]). [Palette] assigns deterministic tile colors
// shared by all sinks.
package treemap
