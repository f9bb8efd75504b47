// Package config holds the settings of a breedpatch checkout: where the
// asset tree, the catalog and the caches live.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fastbreeding/breedpatch/dirbuild"
	"github.com/fastbreeding/breedpatch/modapi"

	"github.com/goccy/go-yaml"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = "breedpatch.yaml"

// Config is the breedpatch configuration file. Relative paths are relative to
// the directory of the file.
type Config struct {
	// Assets is the asset directory patches are written to.
	Assets string `yaml:"assets"`
	// Domain is the asset domain of Assets.
	Domain string `yaml:"domain"`
	// Table is the configuration table, relative to Assets.
	Table string `yaml:"table"`

	// Manifest is the registered-mod catalog.
	Manifest string `yaml:"manifest"`
	// Vanilla optionally replaces the built-in animal table.
	Vanilla string `yaml:"vanilla,omitempty"`
	// Game is the game's own asset directory, read by the vanilla batch.
	Game string `yaml:"game,omitempty"`

	API   *APIConfig `yaml:"api"`
	Cache string     `yaml:"cache"`

	// Concurrency bounds parallel file reads per source.
	Concurrency int `yaml:"concurrency"`
}

type APIConfig struct {
	BaseURL string `yaml:"baseURL"`
}

func DefaultConfig() *Config {
	return &Config{
		Assets:      "src/assets/fastbreeding",
		Domain:      "fastbreeding",
		Table:       dirbuild.DefaultConfig,
		Manifest:    "mods.json",
		API:         &APIConfig{BaseURL: modapi.DefaultBaseURL},
		Cache:       ".cache/mods",
		Concurrency: 8,
	}
}

// LoadConfig reads a YAML or JSON file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) resolve(base string) {
	for _, p := range []*string{&c.Assets, &c.Manifest, &c.Vanilla, &c.Game, &c.Cache} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.Assets == "" {
		errs = append(errs, errors.New("assets is required"))
	}
	if c.Domain == "" {
		errs = append(errs, errors.New("domain is required"))
	}
	if c.Table == "" || filepath.IsAbs(c.Table) {
		errs = append(errs, fmt.Errorf("table must be a path relative to assets, got %q", c.Table))
	}
	if c.Manifest == "" {
		errs = append(errs, errors.New("manifest is required"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if c.API == nil || c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.baseURL is required"))
	}
	return errors.Join(errs...)
}

// Dir is the asset directory described by c.
func (c *Config) Dir() *dirbuild.Dir {
	d := dirbuild.New(c.Assets, c.Domain)
	d.Config = c.Table
	return d
}
