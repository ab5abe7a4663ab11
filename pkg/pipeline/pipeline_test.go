package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/input"
	"github.com/matzehuels/mosaic/pkg/tree"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"txt", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"flat", false},
		{"glossy", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidatePalette(t *testing.T) {
	if err := ValidatePalette(DefaultPalette); err != nil {
		t.Errorf("Default palette should pass: %v", err)
	}
	if err := ValidatePalette("plaid"); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("ValidatePalette(plaid) error = %v, want INVALID_PALETTE", err)
	}
}

func TestValidateAxis(t *testing.T) {
	tests := []struct {
		axis    string
		wantErr bool
	}{
		{"", false},
		{"x", false},
		{"y", false},
		{"z", true},
		{"X", true}, // case-sensitive
	}

	for _, tt := range tests {
		err := ValidateAxis(tt.axis)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateAxis(%q) error = %v, wantErr %v", tt.axis, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForDecode(t *testing.T) {
	// Missing input and tree
	opts := Options{}
	if err := opts.ValidateForDecode(); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("Missing input should fail with INVALID_PARAMS, got %v", err)
	}

	// Bad format name
	opts = Options{Input: "data.json", Format: "xml"}
	if err := opts.ValidateForDecode(); !errors.Is(err, errors.ErrCodeUnknownFormat) {
		t.Errorf("Bad format should fail with UNKNOWN_FORMAT, got %v", err)
	}

	// Pre-built tree is enough
	leaf, err := tree.Leaf("solo", 1)
	if err != nil {
		t.Fatal(err)
	}
	opts = Options{Tree: leaf}
	if err := opts.ValidateForDecode(); err != nil {
		t.Errorf("Tree-only options should pass: %v", err)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %g, got %g", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %g, got %g", DefaultHeight, opts.Height)
	}
}

func TestValidateForLayout(t *testing.T) {
	opts := Options{Width: -5}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidBounds) {
		t.Errorf("Negative width should fail with INVALID_BOUNDS, got %v", err)
	}

	opts = Options{MaxDepth: -1}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("Negative max depth should fail with INVALID_PARAMS, got %v", err)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Palette != DefaultPalette {
		t.Errorf("Palette should be %s, got %s", DefaultPalette, opts.Palette)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %d, got %d", DefaultScale, opts.Scale)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	leaf, err := tree.Leaf("solo", 1)
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Tree: leaf}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalWidth := opts.Width
	originalStyle := opts.Style
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
	if opts.Style != originalStyle {
		t.Error("Style changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestWantsFormat(t *testing.T) {
	opts := Options{Formats: []string{"svg", "json"}}
	if !opts.WantsFormat("json") {
		t.Error("WantsFormat(json) should be true")
	}
	if opts.WantsFormat("png") {
		t.Error("WantsFormat(png) should be false")
	}
}

func testRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func writeBasket(t *testing.T) string {
	t.Helper()
	doc := `{
  "name": "basket",
  "children": [
    {"name": "fruits", "children": [
      {"name": "apples", "weight": 3},
      {"name": "pears", "weight": 1}
    ]},
    {"name": "bread", "weight": 4}
  ]
}`
	path := filepath.Join(t.TempDir(), "basket.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunnerExecute(t *testing.T) {
	opts := Options{
		Input:   writeBasket(t),
		Width:   400,
		Height:  300,
		Formats: []string{"svg", "json", "txt", "dot"},
	}

	result, err := testRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if result.Tree == nil || result.Tree.Name() != "basket" {
		t.Errorf("result tree = %v, want basket", result.Tree)
	}
	if result.Layout == nil || result.Layout.Bounds.W != 400 {
		t.Errorf("result layout bounds = %+v, want width 400", result.Layout)
	}
	if result.Stats.InputFormat != input.FormatJSON {
		t.Errorf("input format = %q, want json", result.Stats.InputFormat)
	}
	if result.Stats.NodeCount != 5 || result.Stats.LeafCount != 3 {
		t.Errorf("stats = %+v, want 5 nodes, 3 leaves", result.Stats)
	}
	if result.Stats.TileCount != len(result.Layout.Tiles) {
		t.Errorf("tile count = %d, want %d", result.Stats.TileCount, len(result.Layout.Tiles))
	}

	for _, format := range opts.Formats {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("artifact %q is empty", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact should start with <svg")
	}
	if !strings.Contains(string(result.Artifacts["dot"]), "digraph") {
		t.Error("dot artifact should contain digraph")
	}
}

func TestRunnerExecuteWithTree(t *testing.T) {
	apples, _ := tree.Leaf("apples", 3)
	bread, _ := tree.Leaf("bread", 4)
	root, err := tree.Branch("basket", apples, bread)
	if err != nil {
		t.Fatal(err)
	}

	result, err := testRunner().Execute(context.Background(), Options{Tree: root})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if result.Tree != root {
		t.Error("pre-built tree should be used directly")
	}
	if result.Stats.InputFormat != "" {
		t.Errorf("input format = %q, want empty for pre-built trees", result.Stats.InputFormat)
	}
	if len(result.Artifacts[FormatSVG]) == 0 {
		t.Error("default format svg should be rendered")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	_, err := testRunner().Execute(context.Background(), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("Execute() error = %v, want INVALID_PARAMS", err)
	}
}

func TestRunnerExecuteCancelled(t *testing.T) {
	leaf, err := tree.Leaf("solo", 1)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = testRunner().Execute(ctx, Options{Tree: leaf})
	if err != context.Canceled {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestRunnerExecuteMissingFile(t *testing.T) {
	opts := Options{Input: filepath.Join(t.TempDir(), "absent.json")}
	_, err := testRunner().Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRunnerBuildRejectsSharedNodes(t *testing.T) {
	shared, err := tree.Leaf("shared", 1)
	if err != nil {
		t.Fatal(err)
	}
	root, err := tree.Branch("r", shared, shared)
	if err != nil {
		t.Fatal(err)
	}

	err = testRunner().Build(context.Background(), root, nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Build() error = %v, want INVALID_INPUT", err)
	}
}

func TestRunnerRenderExplicitFormat(t *testing.T) {
	path := writeBasket(t)
	opts := Options{Input: path, Format: "json"}

	root, format, err := testRunner().Decode(context.Background(), opts)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if format != input.FormatJSON {
		t.Errorf("format = %q, want json", format)
	}
	if root.TotalWeight() != 8 {
		t.Errorf("TotalWeight() = %g, want 8", root.TotalWeight())
	}
}
