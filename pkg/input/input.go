package input

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tree"
)

// Format identifies an input document format.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// Formats returns the supported format names in display order.
func Formats() []string {
	return []string{
		string(FormatJSON), string(FormatYAML), string(FormatTOML),
		string(FormatCSV), string(FormatText),
	}
}

// ParseFormat converts a user-supplied format name to a Format.
// Matching is case-insensitive and accepts the common aliases "yml"
// and "txt". Unknown names yield an UNKNOWN_FORMAT error.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "csv":
		return FormatCSV, nil
	case "text", "txt", "tree":
		return FormatText, nil
	default:
		return "", errors.New(errors.ErrCodeUnknownFormat,
			"unknown input format %q (supported: %s)", name, strings.Join(Formats(), ", "))
	}
}

// Sniff guesses the format of a document from its file name and, when
// that is inconclusive, from the leading content. The fallback is
// FormatText: any non-empty line is a valid single-node outline.
func Sniff(path string, head []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".csv":
		return FormatCSV
	case ".txt", ".text", ".tree":
		return FormatText
	}

	line := firstLine(head)
	switch {
	case strings.HasPrefix(line, "{") || strings.HasPrefix(line, "["):
		return FormatJSON
	case strings.Contains(line, "=") && !strings.Contains(line, ","):
		return FormatTOML
	case strings.Contains(line, ":"):
		return FormatYAML
	case strings.Contains(line, ","):
		return FormatCSV
	default:
		return FormatText
	}
}

func firstLine(data []byte) string {
	s := strings.TrimLeft(string(data), " \t\r\n")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Decode reads one document in the given format from r and builds its
// tree. See the package documentation for the error contract.
func Decode(r io.Reader, format Format) (*tree.Node, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	case FormatTOML:
		return decodeTOML(r)
	case FormatCSV:
		return decodeCSV(r)
	case FormatText:
		return decodeText(r)
	default:
		return nil, errors.New(errors.ErrCodeUnknownFormat,
			"unknown input format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
}

// DecodeFile reads the file at path, sniffs its format, and decodes it.
// It returns the tree together with the format that was used.
func DecodeFile(path string) (*tree.Node, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "reading %s", path)
	}
	format := Sniff(path, data)
	root, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, format, err
	}
	return root, format, nil
}

// document is the wire shape shared by the structured formats.
type document struct {
	Name     string     `json:"name" yaml:"name" toml:"name"`
	Weight   float64    `json:"weight" yaml:"weight" toml:"weight"`
	Children []document `json:"children" yaml:"children" toml:"children"`
}

func decodeJSON(r io.Reader) (*tree.Node, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decoding json document")
	}
	return doc.build()
}

func decodeYAML(r io.Reader) (*tree.Node, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decoding yaml document")
	}
	return doc.build()
}

func decodeTOML(r io.Reader) (*tree.Node, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decoding toml document")
	}
	return doc.build()
}

// build converts a decoded document into tree nodes. Weight errors from
// the tree constructors pass through unchanged.
func (d document) build() (*tree.Node, error) {
	if len(d.Children) == 0 {
		return tree.Leaf(d.Name, d.Weight)
	}
	if d.Weight != 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"node %q has both a weight and children; internal weights are derived", d.Name)
	}
	children := make([]*tree.Node, len(d.Children))
	for i, c := range d.Children {
		n, err := c.build()
		if err != nil {
			return nil, err
		}
		children[i] = n
	}
	return tree.Branch(d.Name, children...)
}
