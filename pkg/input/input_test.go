package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tree"
)

const basketJSON = `{
  "name": "basket",
  "children": [
    {"name": "fruits", "children": [
      {"name": "apples", "weight": 3},
      {"name": "pears", "weight": 1}
    ]},
    {"name": "bread", "weight": 4}
  ]
}`

func checkBasket(t *testing.T, root *tree.Node) {
	t.Helper()
	if root.Name() != "basket" {
		t.Errorf("root name = %q, want basket", root.Name())
	}
	if got := root.TotalWeight(); got != 8 {
		t.Errorf("TotalWeight() = %g, want 8", got)
	}
	if got := root.CountLeaves(); got != 3 {
		t.Errorf("CountLeaves() = %d, want 3", got)
	}
	kids := root.Children()
	if len(kids) != 2 || kids[0].Name() != "fruits" || kids[1].Name() != "bread" {
		t.Fatalf("children = %v, want [fruits bread]", names(kids))
	}
	if kids[1].Weight() != 4 {
		t.Errorf("bread weight = %g, want 4", kids[1].Weight())
	}
}

func names(nodes []*tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{" json ", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"toml", FormatTOML},
		{"csv", FormatCSV},
		{"text", FormatText},
		{"txt", FormatText},
		{"tree", FormatText},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}

	for _, bad := range []string{"xml", "", "jsonl"} {
		if _, err := ParseFormat(bad); !errors.Is(err, errors.ErrCodeUnknownFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want UNKNOWN_FORMAT", bad, err)
		}
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		path string
		head string
		want Format
	}{
		{name: "json extension", path: "groceries.json", want: FormatJSON},
		{name: "yaml extension", path: "groceries.yaml", want: FormatYAML},
		{name: "yml extension", path: "groceries.yml", want: FormatYAML},
		{name: "toml extension", path: "groceries.toml", want: FormatTOML},
		{name: "csv extension", path: "groceries.csv", want: FormatCSV},
		{name: "txt extension", path: "groceries.txt", want: FormatText},
		{name: "extension beats content", path: "weird.json", head: "a,b", want: FormatJSON},
		{name: "json content", path: "data", head: "  {\"name\": \"x\"}", want: FormatJSON},
		{name: "toml content", path: "data", head: "name = \"x\"", want: FormatTOML},
		{name: "yaml content", path: "data", head: "name: x", want: FormatYAML},
		{name: "csv content", path: "data", head: "a/b,3", want: FormatCSV},
		{name: "outline fallback", path: "data", head: "basket", want: FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.path, []byte(tt.head)); got != tt.want {
				t.Errorf("Sniff(%q, %q) = %q, want %q", tt.path, tt.head, got, tt.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	root, err := Decode(strings.NewReader(basketJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	checkBasket(t, root)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
name: basket
children:
  - name: fruits
    children:
      - {name: apples, weight: 3}
      - {name: pears, weight: 1}
  - name: bread
    weight: 4
`
	root, err := Decode(strings.NewReader(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	checkBasket(t, root)
}

func TestDecodeTOML(t *testing.T) {
	doc := `
name = "basket"

[[children]]
name = "fruits"

  [[children.children]]
  name = "apples"
  weight = 3.0

  [[children.children]]
  name = "pears"
  weight = 1.0

[[children]]
name = "bread"
weight = 4.0
`
	root, err := Decode(strings.NewReader(doc), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	checkBasket(t, root)
}

func TestDecodeCSV(t *testing.T) {
	doc := `path,weight
basket/fruits/apples,3
basket/fruits/pears,1
basket/bread,4
`
	root, err := Decode(strings.NewReader(doc), FormatCSV)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	checkBasket(t, root)
}

func TestDecodeText(t *testing.T) {
	doc := `# weekly groceries
basket
	fruits
		apples 3
		pears 1

	bread 4
`
	root, err := Decode(strings.NewReader(doc), FormatText)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	checkBasket(t, root)
}

func TestDecodeTextSpaceIndent(t *testing.T) {
	doc := "basket\n  bread 4\n  misc\n"
	root, err := Decode(strings.NewReader(doc), FormatText)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	kids := root.Children()
	if len(kids) != 2 {
		t.Fatalf("children = %v, want [bread misc]", names(kids))
	}
	// A childless line without a number is a zero-weight leaf.
	if !kids[1].IsLeaf() || kids[1].Weight() != 0 {
		t.Errorf("misc = leaf %v weight %g, want zero-weight leaf", kids[1].IsLeaf(), kids[1].Weight())
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{name: "truncated json", format: FormatJSON, doc: `{"name": "x"`},
		{name: "empty json", format: FormatJSON, doc: ``},
		{name: "mixed yaml", format: FormatYAML, doc: "a: b\n- c"},
		{name: "unclosed toml table", format: FormatTOML, doc: "[children\nname = 1"},
		{name: "csv field count", format: FormatCSV, doc: "basket/bread,4,extra\n"},
		{name: "csv bad weight", format: FormatCSV, doc: "basket/bread,plenty\n"},
		{name: "empty csv", format: FormatCSV, doc: ""},
		{name: "empty outline", format: FormatText, doc: "\n# only a comment\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.doc), tt.format); !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("Decode() error = %v, want MALFORMED_INPUT", err)
			}
		})
	}
}

func TestDecodeRejectsWeightOnInternalNodes(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{
			name:   "structured document",
			format: FormatJSON,
			doc:    `{"name": "b", "weight": 2, "children": [{"name": "x", "weight": 1}]}`,
		},
		{
			name:   "outline",
			format: FormatText,
			doc:    "basket 9\n\tbread 4\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.doc), tt.format); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Decode() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestDecodeSurfacesWeightErrors(t *testing.T) {
	// Construction errors from the tree package pass through unchanged.
	doc := `{"name": "x", "weight": -1}`
	if _, err := Decode(strings.NewReader(doc), FormatJSON); err != tree.ErrInvalidWeight {
		t.Errorf("Decode() error = %v, want tree.ErrInvalidWeight", err)
	}
	if _, err := Decode(strings.NewReader("apples -3\n"), FormatText); err != tree.ErrInvalidWeight {
		t.Errorf("Decode() error = %v, want tree.ErrInvalidWeight", err)
	}
}

func TestDecodeCSVConflicts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "second root", doc: "basket/bread,4\npantry/rice,2\n"},
		{name: "duplicate path", doc: "basket/bread,4\nbasket/bread,1\n"},
		{name: "path through leaf", doc: "basket/bread,4\nbasket/bread/rye,1\n"},
		{name: "leaf over internal node", doc: "basket/fruits/apples,3\nbasket/fruits,1\n"},
		{name: "empty segment", doc: "basket//bread,4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.doc), FormatCSV); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Decode() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestDecodeTextSecondRoot(t *testing.T) {
	doc := "basket\n\tbread 4\npantry\n\trice 2\n"
	if _, err := Decode(strings.NewReader(doc), FormatText); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Decode() error = %v, want INVALID_INPUT", err)
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	if _, err := Decode(strings.NewReader("x"), Format("xml")); !errors.Is(err, errors.ErrCodeUnknownFormat) {
		t.Errorf("Decode() error = %v, want UNKNOWN_FORMAT", err)
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "groceries.json")
	if err := os.WriteFile(path, []byte(basketJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	root, format, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() failed: %v", err)
	}
	if format != FormatJSON {
		t.Errorf("format = %q, want json", format)
	}
	checkBasket(t, root)

	// Extensionless files fall back to content sniffing.
	bare := filepath.Join(dir, "groceries")
	if err := os.WriteFile(bare, []byte("basket/bread,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, format, err = DecodeFile(bare); err != nil || format != FormatCSV {
		t.Errorf("DecodeFile(bare) = format %q, err %v, want csv, nil", format, err)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, _, err := DecodeFile(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("DecodeFile() error = %v, want FILE_NOT_FOUND", err)
	}
}
