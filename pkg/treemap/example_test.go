package treemap_test

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/tree"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

func ExampleCompute() {
	apples, _ := tree.Leaf("apples", 3)
	pears, _ := tree.Leaf("pears", 1)
	fruits, _ := tree.Branch("fruits", apples, pears)
	bread, _ := tree.Leaf("bread", 4)
	basket, _ := tree.Branch("basket", fruits, bread)

	l, err := treemap.Compute(basket, treemap.Rect{W: 400, H: 200})
	if err != nil {
		fmt.Println("layout failed:", err)
		return
	}

	for _, t := range l.Leaves() {
		fmt.Printf("%s %gx%g at (%g,%g)\n", t.Path, t.Rect.W, t.Rect.H, t.Rect.X, t.Rect.Y)
	}
	// Output:
	// basket/fruits/apples 200x150 at (0,0)
	// basket/fruits/pears 200x50 at (0,150)
	// basket/bread 200x200 at (200,0)
}

func ExampleCompute_equalSplit() {
	a, _ := tree.Leaf("a", 1)
	b, _ := tree.Leaf("b", 1)
	root, _ := tree.Branch("root", a, b)

	l, _ := treemap.Compute(root, treemap.Rect{W: 100, H: 100})
	for _, t := range l.Leaves() {
		fmt.Printf("%s: x=%g w=%g\n", t.Name, t.Rect.X, t.Rect.W)
	}
	// Output:
	// a: x=0 w=50
	// b: x=50 w=50
}
