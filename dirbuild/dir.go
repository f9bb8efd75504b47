// Package dirbuild lays compiled patches out in the mod's asset directory.
//
// The asset directory holds
//
//	patches/<output>                        patch files
//	compatibility/<modid>/<path>            rewritten mod patch documents
//	config/configlib-patches.json           the configuration table
//
// Writing is planned first and applied second, so a plan can be compared to
// what is on disk instead.
package dirbuild

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/configlib"
	"github.com/fastbreeding/breedpatch/debug"
	"github.com/fastbreeding/breedpatch/encode"
)

const (
	PatchesDir       = "patches"
	CompatibilityDir = "compatibility"
	DefaultConfig    = "config/configlib-patches.json"
)

type Dir struct {
	// Root is the asset directory, e.g. "src/assets/fastbreeding".
	Root string
	// Domain is the asset domain of Root, e.g. "fastbreeding".
	Domain string
	// Config is the configuration table, relative to Root.
	Config string
}

func New(root, domain string) *Dir {
	return &Dir{Root: root, Domain: domain, Config: DefaultConfig}
}

// File is a planned write. A nil Data removes the file.
type File struct {
	Path string
	Data []byte
}

// Plan is a set of writes. Dirs are emptied before Files are written.
type Plan struct {
	Dirs  []string
	Files []File
}

func (p *Plan) Merge(o *Plan) {
	p.Dirs = append(p.Dirs, o.Dirs...)
	p.Files = append(p.Files, o.Files...)
}

func (d *Dir) ConfigPath() string {
	return filepath.Join(d.Root, filepath.FromSlash(d.Config))
}

func (d *Dir) PatchPath(output string) string {
	return filepath.Join(d.Root, PatchesDir, filepath.FromSlash(output))
}

func (d *Dir) OverrideDir(modID string) string {
	return filepath.Join(d.Root, CompatibilityDir, modID)
}

// PatchKey is the configuration table key of a patch file.
func (d *Dir) PatchKey(output string) string {
	return d.Domain + ":" + path.Join(PatchesDir, output)
}

// OverrideKey is the configuration table key prefix of a mod's overrides.
func (d *Dir) OverrideKey(modID string) string {
	return d.Domain + ":" + path.Join(CompatibilityDir, modID)
}

func (d *Dir) LoadConfig() (*configlib.Table, error) {
	return configlib.Load(d.ConfigPath())
}

// Plan returns the writes for res and updates tbl with its formulas,
// replacing whatever an earlier build of the same output left there.
func (d *Dir) Plan(res *breedpatch.Result, tbl *configlib.Table) (*Plan, error) {
	p := &Plan{}
	patchFile := File{Path: d.PatchPath(res.Output)}
	if len(res.Patches) != 0 {
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(breedpatch.PatchesNode(res.Patches), buf, encode.SortKeys(encode.CompareKeys)); err != nil {
			return nil, fmt.Errorf("could not encode patches of %s: %w", res.Output, err)
		}
		patchFile.Data = buf.Bytes()
	}
	p.Files = append(p.Files, patchFile)

	outputKey := d.PatchKey(res.Output)
	prefixes := []string{outputKey}
	if res.ModID != "" {
		prefixes = append(prefixes, d.OverrideKey(res.ModID)+"/")
		p.Dirs = append(p.Dirs, d.OverrideDir(res.ModID))
	}
	n := tbl.Remove(prefixes...)
	if debug.Write() {
		debug.Logf("removed %d configuration entries for %v\n", n, prefixes)
	}
	tbl.Set(outputKey, res.Config)

	for _, ov := range res.Overrides {
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(ov.Doc, buf); err != nil {
			return nil, fmt.Errorf("could not encode override %s: %w", ov.Source, err)
		}
		p.Files = append(p.Files, File{
			Path: filepath.Join(d.OverrideDir(res.ModID), filepath.FromSlash(ov.OutputPath)),
			Data: buf.Bytes(),
		})
		tbl.Set(path.Join(d.OverrideKey(res.ModID), ov.OutputPath), ov.Config)
	}
	return p, nil
}

// ConfigFile returns the write of tbl.
func (d *Dir) ConfigFile(tbl *configlib.Table) (File, error) {
	data, err := tbl.Bytes()
	if err != nil {
		return File{}, err
	}
	return File{Path: d.ConfigPath(), Data: data}, nil
}
