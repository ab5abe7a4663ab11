package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/mosaic/pkg/tree"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

func testLayout(t *testing.T) *treemap.Layout {
	t.Helper()
	apples, _ := tree.Leaf("apples", 3)
	pears, _ := tree.Leaf("pears", 1)
	fruits, _ := tree.Branch("fruits", apples, pears)
	bread, _ := tree.Leaf("bread", 4)
	ghost, _ := tree.Leaf("ghost", 0)
	root, _ := tree.Branch("basket", fruits, bread, ghost)

	l, err := treemap.Compute(root, treemap.Rect{W: 400, H: 200})
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}
	return l
}

func TestRenderBasics(t *testing.T) {
	out := string(Render(testLayout(t)))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 400.0 200.0"`,
		`id="tile-basket/fruits/apples"`,
		`id="tile-basket/bread"`,
		`class="tile"`,
		`>apples</text>`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q", want)
		}
	}
}

func TestRenderSkipsZeroAreaTiles(t *testing.T) {
	out := string(Render(testLayout(t)))
	if strings.Contains(out, "ghost") {
		t.Error("Render() drew a zero-area tile")
	}
}

func TestRenderTitleExtendsCanvas(t *testing.T) {
	out := string(Render(testLayout(t), WithTitle("Groceries & More")))

	if !strings.Contains(out, `viewBox="0 0 400.0 232.0"`) {
		t.Error("Render() with title should extend the canvas by the title band")
	}
	// The ampersand must be escaped for valid XML.
	if !strings.Contains(out, "Groceries &amp; More") {
		t.Error("Render() title not XML-escaped")
	}
}

func TestRenderFrames(t *testing.T) {
	plain := string(Render(testLayout(t)))
	framed := string(Render(testLayout(t), WithFrames()))

	if strings.Contains(plain, `class="frame"`) {
		t.Error("frames drawn without WithFrames()")
	}
	if !strings.Contains(framed, `class="frame"`) {
		t.Error("WithFrames() drew no frames")
	}
}

func TestRenderGlossyHasDefs(t *testing.T) {
	out := string(Render(testLayout(t), WithStyle(Glossy{})))

	for _, want := range []string{"<defs>", "tile-sheen", "url(#tile-sheen)"} {
		if !strings.Contains(out, want) {
			t.Errorf("glossy Render() missing %q", want)
		}
	}
}

func TestRenderPaletteOption(t *testing.T) {
	mono, err := treemap.PaletteByName("mono")
	if err != nil {
		t.Fatalf("PaletteByName failed: %v", err)
	}
	a := string(Render(testLayout(t)))
	b := string(Render(testLayout(t), WithPalette(mono)))
	if a == b {
		t.Error("palette option had no effect on output")
	}
}

func TestStyleByName(t *testing.T) {
	for _, name := range StyleNames() {
		if _, ok := StyleByName(name); !ok {
			t.Errorf("StyleByName(%q) = false, want registered", name)
		}
	}
	if _, ok := StyleByName("cubist"); ok {
		t.Error("StyleByName(unknown) = true, want false")
	}
}
