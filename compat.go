package breedpatch

import (
	"fmt"
	"strings"

	"github.com/fastbreeding/breedpatch/catalog"
	"github.com/fastbreeding/breedpatch/configlib"
	"github.com/fastbreeding/breedpatch/debug"
	"github.com/fastbreeding/breedpatch/ir"
	"github.com/fastbreeding/breedpatch/scale"
	"github.com/fastbreeding/breedpatch/source"
)

// Override is a mod patch document rewritten so the content it adds is
// scaled like any other creature.
type Override struct {
	// Source is the path of the original document in the mod.
	Source string
	// OutputPath is relative to the mod's asset directory, e.g.
	// "patches/wolf-pups.json".
	OutputPath string
	Doc        *ir.Node
	// Config is keyed by "<operation index>/value<path below the value>".
	Config configlib.Fragment
}

// Candidate is an add operation that seems to give breeding to a built-in
// creature the vanilla table does not know.
type Candidate struct {
	ModID     string
	PatchFile string
	Index     int
	Target    string
	// Paths are the breeding fields the operation touches.
	Paths []string
}

// addOp is an operation of a patch document taking part in compatibility
// processing.
type addOp struct {
	index int
	file  string
	path  string
	value *ir.Node
}

// addOps yields the operations of doc that add content on the server.
func addOps(doc *ir.Node) []addOp {
	if doc == nil || doc.Type != ir.ArrayType {
		return nil
	}
	var res []addOp
	for i, op := range doc.Values {
		name := ir.Get(op, "op")
		if name == nil || name.Type != ir.StringType || !strings.HasPrefix(name.String, "add") {
			continue
		}
		if side := ir.Get(op, "side"); side != nil && side.Type == ir.StringType && strings.EqualFold(side.String, "client") {
			continue
		}
		file := ir.Get(op, "file")
		if file == nil || file.Type != ir.StringType {
			continue
		}
		a := addOp{index: i, file: file.String, value: ir.Get(op, "value")}
		if p := ir.Get(op, "path"); p != nil && p.Type == ir.StringType {
			a.path = p.String
		}
		res = append(res, a)
	}
	return res
}

// override scales the content added by the patch document e for creatures
// the registry knows. It returns nil when nothing was scaled.
func (c *Compiler) override(modID string, e source.Entry) (*Override, error) {
	if e.Doc == nil || e.Doc.Type != ir.ArrayType {
		c.log.Warn("patch file is not a list of operations", "file", e.Path)
		return nil, nil
	}
	clone := e.Doc.Clone()
	frag := configlib.Fragment{}
	for _, op := range addOps(clone) {
		key, ok := c.reg.TargetSettingKey(op.file)
		if !ok {
			if debug.Compat() {
				debug.Logf("%s#%d: %s is not registered\n", e.Path, op.index, op.file)
			}
			continue
		}
		prefix, err := ir.ParsePath(op.path)
		if err != nil {
			c.log.Warn("bad operation path", "file", e.Path, "index", op.index, "error", err)
			continue
		}
		for leaf := range ir.FilterLeaves(op.value, prefix, behaviorPatterns) {
			v, ok := leaf.Node.Number()
			if !ok {
				continue
			}
			cat := scale.Classify(leaf.Path.Strings())
			pv, ok := scale.PatchValue(cat, v)
			if !ok {
				continue
			}
			leaf.Node.SetNumber(pv)
			rel := leaf.Path[len(prefix):].String()
			frag.Add(fmt.Sprintf("%d/value%s", op.index, rel), scale.Formula(cat, key, v))
			if debug.Compat() {
				debug.Logf("%s#%d %s: %v -> %v\n", e.Path, op.index, leaf.Path, v, pv)
			}
		}
	}
	if frag.Len() == 0 {
		return nil, nil
	}
	assets := "assets/" + modID + "/"
	if !strings.HasPrefix(e.Path, assets) {
		return nil, fmt.Errorf("unexpected patch directory: %s", e.Path)
	}
	return &Override{
		Source:     e.Path,
		OutputPath: strings.TrimPrefix(e.Path, assets),
		Doc:        clone,
		Config:     frag,
	}, nil
}

// candidates reports the add operations of e that touch breeding fields of
// built-in entities missing from the vanilla table.
func (c *Compiler) candidates(modID string, e source.Entry) []*Candidate {
	var res []*Candidate
	for _, op := range addOps(e.Doc) {
		if !strings.HasPrefix(op.file, catalog.GameDomain+":entities") {
			continue
		}
		if _, ok := c.reg.Vanilla.Find(op.file); ok {
			continue
		}
		prefix, err := ir.ParsePath(op.path)
		if err != nil {
			continue
		}
		var paths []string
		for leaf := range ir.FilterLeaves(op.value, prefix, candidatePatterns) {
			paths = append(paths, leaf.Path.String())
		}
		if len(paths) == 0 {
			continue
		}
		res = append(res, &Candidate{
			ModID:     modID,
			PatchFile: e.Path,
			Index:     op.index,
			Target:    op.file,
			Paths:     paths,
		})
	}
	return res
}
