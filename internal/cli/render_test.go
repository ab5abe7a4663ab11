package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mosaic/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty yields nil", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
		{"spaces trimmed", " svg , png ", []string{"svg", "png"}},
		{"uppercase lowered", "SVG,Png", []string{"svg", "png"}},
		{"empty parts dropped", "svg,,png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output strips input extension", "", "groceries.json", "groceries"},
		{"empty output nested input", "", "data/basket.yaml", "data/basket"},
		{"output with svg extension", "picture.svg", "groceries.json", "picture"},
		{"output with png extension", "picture.png", "groceries.json", "picture"},
		{"output with unrelated extension", "picture.bak", "groceries.json", "picture.bak"},
		{"output without extension", "picture", "groceries.json", "picture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	artifacts := map[string][]byte{
		"svg": []byte("<svg/>"),
		"txt": []byte("grid"),
	}

	t.Run("single format explicit output", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "picture.svg")

		paths, err := writeArtifacts(artifacts, []string{"svg"}, "groceries.json", out)
		if err != nil {
			t.Fatalf("writeArtifacts() error: %v", err)
		}
		if len(paths) != 1 || paths[0] != out {
			t.Fatalf("paths = %v, want [%s]", paths, out)
		}

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading artifact: %v", err)
		}
		if !bytes.Equal(data, artifacts["svg"]) {
			t.Errorf("artifact content = %q, want %q", data, artifacts["svg"])
		}
	})

	t.Run("single format derives path from input", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "groceries.json")

		paths, err := writeArtifacts(artifacts, []string{"svg"}, input, "")
		if err != nil {
			t.Fatalf("writeArtifacts() error: %v", err)
		}

		want := filepath.Join(dir, "groceries.svg")
		if len(paths) != 1 || paths[0] != want {
			t.Fatalf("paths = %v, want [%s]", paths, want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("artifact not written: %v", err)
		}
	})

	t.Run("multiple formats share a base path", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "picture")

		paths, err := writeArtifacts(artifacts, []string{"svg", "txt"}, "groceries.json", base+".svg")
		if err != nil {
			t.Fatalf("writeArtifacts() error: %v", err)
		}

		want := []string{base + ".svg", base + ".txt"}
		if len(paths) != len(want) {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
		for i, p := range paths {
			if p != want[i] {
				t.Errorf("paths[%d] = %q, want %q", i, p, want[i])
			}
			if _, err := os.Stat(p); err != nil {
				t.Errorf("artifact %s not written: %v", p, err)
			}
		}
	})

	t.Run("unwritable path reports the file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "missing", "picture.svg")

		_, err := writeArtifacts(artifacts, []string{"svg"}, "groceries.json", out)
		if err == nil {
			t.Fatal("writing into a missing directory should error")
		}
		if !errors.Is(err, errors.ErrCodeInternal) {
			t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInternal)
		}
	})
}
