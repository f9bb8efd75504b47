package breedpatch

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/fastbreeding/breedpatch/catalog"
	"github.com/fastbreeding/breedpatch/debug"
	"github.com/fastbreeding/breedpatch/glob"
	"github.com/fastbreeding/breedpatch/ir"
	"github.com/fastbreeding/breedpatch/scale"
	"github.com/fastbreeding/breedpatch/source"
)

var (
	BehaviorPrefixes = []string{"/server/behaviors/**", "/behaviorConfigs/**"}
	BehaviorFields   = []string{
		"/drops/**/quantity/avg",
		"/drops/**/quantity/var",
		"/drops/**/quantityByType/*/avg",
		"/drops/**/quantityByType/*/var",

		"/dropsByType/**/quantity/avg",
		"/dropsByType/**/quantity/var",
		"/dropsByType/**/quantityByType/*/avg",
		"/dropsByType/**/quantityByType/*/var",

		"/multiplyCooldownDaysMin",
		"/multiplyCooldownDaysMax",
		"/pregnancyDays",
		"/hoursToGrow",

		"/multiplyCooldownDaysMinByType/*",
		"/multiplyCooldownDaysMaxByType/*",
		"/pregnancyDaysByType/*",
		"/hoursToGrowByType/*",
	}

	// BreedingCheckFields are fields that only matter to creatures that
	// breed.
	BreedingCheckFields = []string{
		"/server/behaviors/**/portionsEatenForMultiply",
		"/server/behaviorConfigs/**/portionsEatenForMultiply",
		"/server/behaviors/**/portionsEatenForMultiplyByType/*",
		"/server/behaviorConfigs/**/portionsEatenForMultiplyByType/*",
		"/server/behaviors/**/eatTime",
		"/server/behaviorConfigs/**/eatTime",
		"/attributes/creatureDiet/**/*",
	}
)

var (
	behaviorPatterns = glob.MustCross(BehaviorPrefixes, BehaviorFields)
	// candidatePatterns flags breeding additions to unknown built-in
	// creatures: either the breeding-adjacent fields or the patched ones.
	candidatePatterns = glob.MustCompileSet(BreedingCheckFields...).Union(behaviorPatterns)
)

var ErrNoEntities = errors.New("path has no entities directory")

type Dependency struct {
	ModID string
}

// Patch replaces one numeric field of an entity file.
type Patch struct {
	File      string
	Op        string
	Path      string
	Value     float64
	DependsOn []Dependency

	// SortKey orders patches independently of behavior renumbering.
	SortKey string
	Expr    scale.Expression
}

var behaviorIndex = regexp.MustCompile(`/\d+/`)

// SortKey returns ptr without its first purely numeric segment, unless that
// segment is the last one.
func SortKey(ptr string) string {
	loc := behaviorIndex.FindStringIndex(ptr)
	if loc == nil {
		return ptr
	}
	return ptr[:loc[0]] + "/" + ptr[loc[1]:]
}

// Node returns the patch as it is written to the patch file.
func (p *Patch) Node() *ir.Node {
	kvs := []ir.KeyVal{
		{Key: "file", Val: ir.FromString(p.File)},
		{Key: "op", Val: ir.FromString(p.Op)},
		{Key: "path", Val: ir.FromString(p.Path)},
		{Key: "value", Val: ir.FromNumber(p.Value)},
	}
	if len(p.DependsOn) != 0 {
		deps := make([]*ir.Node, len(p.DependsOn))
		for i, d := range p.DependsOn {
			deps[i] = ir.FromKeyVals([]ir.KeyVal{{Key: "modId", Val: ir.FromString(d.ModID)}})
		}
		kvs = append(kvs, ir.KeyVal{Key: "dependsOn", Val: ir.FromSlice(deps)})
	}
	return ir.FromKeyVals(kvs)
}

// PatchesNode returns the patch file document for ps.
func PatchesNode(ps []*Patch) *ir.Node {
	nodes := make([]*ir.Node, len(ps))
	for i, p := range ps {
		nodes[i] = p.Node()
	}
	return ir.FromSlice(nodes)
}

// EntityPath returns the part of file starting at its entities directory.
func EntityPath(file string) (string, error) {
	segs := strings.Split(filepath.ToSlash(file), "/")
	i := slices.Index(segs, source.EntitiesDir)
	if i == -1 {
		return "", fmt.Errorf("%w: %s", ErrNoEntities, file)
	}
	return strings.Join(segs[i:], "/"), nil
}

// Domain qualifies the files of modID; built-in content has no mod id.
func Domain(modID string) string {
	if modID == "" {
		return catalog.GameDomain
	}
	return modID
}

// FilePatches returns the patches of one entity document, in document order.
// Fields whose value needs no patch are left out.
func FilePatches(modID string, e source.Entry, settingKey string, deps []Dependency) ([]*Patch, error) {
	entityPath, err := EntityPath(e.Path)
	if err != nil {
		return nil, err
	}
	file := Domain(modID) + ":" + entityPath
	var res []*Patch
	for leaf := range ir.FilterLeaves(e.Doc, nil, behaviorPatterns) {
		v, ok := leaf.Node.Number()
		if !ok {
			if debug.Patch() {
				debug.Logf("%s %s: %s is not a number\n", file, leaf.Path, leaf.Node.Type)
			}
			continue
		}
		segs := leaf.Path.Strings()
		cat := scale.Classify(segs)
		pv, ok := scale.PatchValue(cat, v)
		if !ok {
			continue
		}
		ptr := leaf.Path.String()
		p := &Patch{
			File:    file,
			Op:      "replace",
			Path:    ptr,
			Value:   pv,
			SortKey: SortKey(ptr),
			Expr:    scale.Formula(cat, settingKey, v),
		}
		if modID != "" {
			p.DependsOn = append(p.DependsOn, Dependency{ModID: modID})
		}
		p.DependsOn = append(p.DependsOn, deps...)
		if debug.Patch() {
			debug.Logf("%s %s %s: %v -> %v\n", file, ptr, cat, v, pv)
		}
		res = append(res, p)
	}
	return res, nil
}

// SortPatches orders ps by file then sort key, keeping document order for
// ties.
func SortPatches(ps []*Patch) {
	slices.SortStableFunc(ps, func(a, b *Patch) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		return strings.Compare(a.SortKey, b.SortKey)
	})
}
