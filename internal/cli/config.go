package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// configFileName is the config file name inside the config directory.
const configFileName = "config.toml"

// Config carries user defaults read from the mosaic config file.
// Zero values mean "not set"; flags always win over the file.
type Config struct {
	Format  string  `toml:"format"`
	Palette string  `toml:"palette"`
	Style   string  `toml:"style"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
}

// defaultConfigPath returns the config file location
// (~/.config/mosaic/config.toml or $XDG_CONFIG_HOME/mosaic/config.toml).
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig reads the config file at path, falling back to the default
// location when path is empty. A missing file at the default location is
// not an error; a missing file named explicitly is.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			// No home directory, no config.
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeMalformedInput, err, "parsing config %s", path)
	}
	return cfg, nil
}

// apply copies configured defaults into option fields left unset by flags.
func (cfg Config) apply(opts *pipeline.Options) {
	if len(opts.Formats) == 0 && cfg.Format != "" {
		opts.Formats = []string{cfg.Format}
	}
	if opts.Palette == "" && cfg.Palette != "" {
		opts.Palette = cfg.Palette
	}
	if opts.Style == "" && cfg.Style != "" {
		opts.Style = cfg.Style
	}
	if opts.Width == 0 && cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if opts.Height == 0 && cfg.Height > 0 {
		opts.Height = cfg.Height
	}
}
