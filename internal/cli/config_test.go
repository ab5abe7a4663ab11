package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
format = "png"
palette = "dusk"
style = "glossy"
width = 1024.0
height = 768.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Format != "png" {
		t.Errorf("Format = %q, want %q", cfg.Format, "png")
	}
	if cfg.Palette != "dusk" {
		t.Errorf("Palette = %q, want %q", cfg.Palette, "dusk")
	}
	if cfg.Style != "glossy" {
		t.Errorf("Style = %q, want %q", cfg.Style, "glossy")
	}
	if cfg.Width != 1024 {
		t.Errorf("Width = %v, want 1024", cfg.Width)
	}
	if cfg.Height != 768 {
		t.Errorf("Height = %v, want 768", cfg.Height)
	}
}

func TestLoadConfigMissingDefault(t *testing.T) {
	// Point the default location at an empty directory
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not error, got: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("missing default config should yield zero Config, got %+v", cfg)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("explicitly named missing config should error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("format = [not toml"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("malformed config should error")
	}
	if !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedInput)
	}
}

func TestConfigApply(t *testing.T) {
	cfg := Config{
		Format:  "png",
		Palette: "dusk",
		Style:   "glossy",
		Width:   1024,
		Height:  768,
	}

	t.Run("fills unset fields", func(t *testing.T) {
		var opts pipeline.Options
		cfg.apply(&opts)

		if len(opts.Formats) != 1 || opts.Formats[0] != "png" {
			t.Errorf("Formats = %v, want [png]", opts.Formats)
		}
		if opts.Palette != "dusk" {
			t.Errorf("Palette = %q, want %q", opts.Palette, "dusk")
		}
		if opts.Style != "glossy" {
			t.Errorf("Style = %q, want %q", opts.Style, "glossy")
		}
		if opts.Width != 1024 || opts.Height != 768 {
			t.Errorf("size = %vx%v, want 1024x768", opts.Width, opts.Height)
		}
	})

	t.Run("flags win over config", func(t *testing.T) {
		opts := pipeline.Options{
			Formats: []string{"svg"},
			Palette: "ocean",
			Style:   "flat",
			Width:   640,
			Height:  480,
		}
		cfg.apply(&opts)

		if opts.Formats[0] != "svg" || opts.Palette != "ocean" || opts.Style != "flat" {
			t.Errorf("flag-set fields were overwritten: %+v", opts)
		}
		if opts.Width != 640 || opts.Height != 480 {
			t.Errorf("flag-set size was overwritten: %vx%v", opts.Width, opts.Height)
		}
	})

	t.Run("zero config changes nothing", func(t *testing.T) {
		var opts pipeline.Options
		Config{}.apply(&opts)

		if len(opts.Formats) != 0 || opts.Palette != "" || opts.Width != 0 {
			t.Errorf("zero config should leave options untouched: %+v", opts)
		}
	})
}
