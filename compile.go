package breedpatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fastbreeding/breedpatch/configlib"
	"github.com/fastbreeding/breedpatch/ir"
	"github.com/fastbreeding/breedpatch/source"
)

var ErrNoSettingKey = errors.New("no setting key")

// Options tune the compilation of one source.
type Options struct {
	// SettingKey replaces the setting the mod's registration implies.
	// Built-in content has no registration and needs one.
	SettingKey string
	// DependsOn is appended to the dependencies of every patch.
	DependsOn []Dependency
	// Output names the patch file of built-in content, relative to the
	// patches directory. Mods use their registration.
	Output string
}

// Result is everything compiled from one source.
type Result struct {
	ModID string
	// Output is the patch file, relative to the patches directory.
	Output     string
	Patches    []*Patch
	Config     configlib.Fragment
	Overrides  []*Override
	Candidates []*Candidate
	// Documents are the entity documents patched, by domain-qualified file.
	Documents map[string]*ir.Node
}

type Compiler struct {
	reg *Registry
	log *slog.Logger
}

func NewCompiler(reg *Registry, log *slog.Logger) *Compiler {
	if log == nil {
		log = slog.Default()
	}
	return &Compiler{reg: reg, log: log}
}

// Compile compiles the entity files and patch documents of r. Files that
// do not sit below an entities directory are skipped with a warning; a
// source without a mod id fails.
func (c *Compiler) Compile(ctx context.Context, r source.Reader, opts Options) (*Result, error) {
	modID, err := r.ModID()
	if err != nil {
		return nil, err
	}
	res := &Result{
		ModID:     modID,
		Output:    opts.Output,
		Config:    configlib.Fragment{},
		Documents: map[string]*ir.Node{},
	}
	settingKey := opts.SettingKey
	if modID != "" {
		if settingKey == "" {
			settingKey = c.reg.Manifest.SettingKey(modID)
		}
		res.Output = c.reg.Manifest.OutputName(modID)
	}
	switch {
	case settingKey == "":
		return nil, fmt.Errorf("%w for built-in content", ErrNoSettingKey)
	case res.Output == "":
		return nil, errors.New("no output given for built-in content")
	}
	log := c.log.With("mod", Domain(modID))

	for e, err := range r.Files(ctx) {
		if err != nil {
			return nil, err
		}
		ps, err := FilePatches(modID, e, settingKey, opts.DependsOn)
		if err != nil {
			log.Warn("skipping file", "file", e.Path, "error", err)
			continue
		}
		if len(ps) != 0 {
			res.Documents[ps[0].File] = e.Doc
		}
		res.Patches = append(res.Patches, ps...)
	}

	for e, err := range r.Patches(ctx) {
		if err != nil {
			return nil, err
		}
		ov, err := c.override(modID, e)
		if err != nil {
			return nil, err
		}
		if ov != nil {
			res.Overrides = append(res.Overrides, ov)
		}
		res.Candidates = append(res.Candidates, c.candidates(modID, e)...)
	}

	SortPatches(res.Patches)
	for i, p := range res.Patches {
		res.Config.Add(fmt.Sprintf("%d/value", i), p.Expr)
	}
	log.Debug("compiled", "patches", len(res.Patches), "overrides", len(res.Overrides), "candidates", len(res.Candidates))
	return res, nil
}
