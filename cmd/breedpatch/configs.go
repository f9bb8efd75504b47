package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/config"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	File    string `cli:"name=config aliases=f desc='configuration file (default breedpatch.yaml if present)'"`
	Color   bool   `cli:"name=color desc='color output'"`
	Verbose bool   `cli:"name=v desc='log debug messages'"`

	ctx  context.Context
	Main *cli.Command
}

func (cfg *MainConfig) config() (*config.Config, error) {
	path := cfg.File
	if path == "" {
		path = config.DefaultFile
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.DefaultConfig(), nil
		}
	}
	c, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (cfg *MainConfig) log() *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return newLog(os.Stderr, level)
}

// colors reports whether output to w is colored: always with -color,
// otherwise when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ModConfig struct {
	*MainConfig
	DryRun bool   `cli:"name=n desc='print patches instead of writing them'"`
	ID     string `cli:"name=id desc='mod id, overriding modinfo.json'"`
	Key    string `cli:"name=key desc='setting scaling the patches'"`
	Out    string `cli:"name=out desc='patch file of built-in content, relative to the patches directory'"`

	Deps []breedpatch.Dependency

	Mod *cli.Command
}

func (cfg *ModConfig) depOpt(_ *cli.Context, a string) (any, error) {
	if a == "" {
		return nil, fmt.Errorf("%w: empty dependency", cli.ErrUsage)
	}
	cfg.Deps = append(cfg.Deps, breedpatch.Dependency{ModID: a})
	return a, nil
}

func (cfg *ModConfig) options() breedpatch.Options {
	return breedpatch.Options{SettingKey: cfg.Key, DependsOn: cfg.Deps, Output: cfg.Out}
}

type VanillaConfig struct {
	*MainConfig
	DryRun bool   `cli:"name=n desc='print patches instead of writing them'"`
	Game   string `cli:"name=game desc='game asset directory holding entities/'"`

	Vanilla *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Vanilla bool   `cli:"name=vanilla desc='also check the built-in animals'"`
	Game    string `cli:"name=game desc='game asset directory holding entities/'"`
	Quiet   bool   `cli:"name=q desc='list changed files without diffs'"`

	Check *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Validate *cli.Command
}

type UpdateConfig struct {
	*MainConfig

	Update *cli.Command
}

type AddConfig struct {
	*MainConfig
	Group string `cli:"name=group desc='group to add the mod to'"`
	Share string `cli:"name=share desc='shared setting of a new group'"`

	Add *cli.Command
}

type ManifestConfig struct {
	*MainConfig

	Manifest *cli.Command
}

type ManifestDiffConfig struct {
	*ManifestConfig

	Diff *cli.Command
}
