// Package catalog holds the tables that say which creatures get patched:
// the manifest of registered mods and the table of built-in animals.
package catalog

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/fastbreeding/breedpatch/encode"
	"github.com/fastbreeding/breedpatch/ir"

	"github.com/goccy/go-yaml"
)

// Group is a set of mods sharing a patch directory and, optionally, one
// setting.
type Group struct {
	List        []string `yaml:"list"`
	ShareConfig string   `yaml:"shareConfig,omitempty"`
}

// Manifest is the registered mod catalog: every mod id with the version last
// compiled, and the groups they belong to.
type Manifest struct {
	Mods   map[string]string `yaml:"mods"`
	Groups map[string]*Group `yaml:"groups"`

	groupIndex map[string]string
}

func ParseManifest(d []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(d, m); err != nil {
		return nil, err
	}
	if m.Mods == nil {
		m.Mods = map[string]string{}
	}
	if m.Groups == nil {
		m.Groups = map[string]*Group{}
	}
	if err := m.index(); err != nil {
		return nil, err
	}
	return m, nil
}

func LoadManifest(path string) (*Manifest, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := ParseManifest(d)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) index() error {
	m.groupIndex = map[string]string{}
	for _, name := range slices.Sorted(maps.Keys(m.Groups)) {
		g := m.Groups[name]
		if g == nil {
			return fmt.Errorf("group %q is empty", name)
		}
		for _, id := range g.List {
			id = strings.ToLower(id)
			if prev, ok := m.groupIndex[id]; ok {
				return fmt.Errorf("mod %q is in groups %q and %q", id, prev, name)
			}
			m.groupIndex[id] = name
		}
	}
	return nil
}

// Has reports whether id is a registered mod.
func (m *Manifest) Has(id string) bool {
	_, ok := m.Mods[id]
	return ok
}

// Group returns the name of the group of mod id.
func (m *Manifest) Group(id string) (string, bool) {
	g, ok := m.groupIndex[strings.ToLower(id)]
	return g, ok
}

// SettingKey returns the setting scaling the creatures of mod id: the shared
// setting of its group if there is one, else "<ID>_CYCLE".
func (m *Manifest) SettingKey(id string) string {
	if name, ok := m.Group(id); ok {
		if key := m.Groups[name].ShareConfig; key != "" {
			return key
		}
	}
	return DefaultSettingKey(id)
}

func DefaultSettingKey(id string) string {
	return strings.ToUpper(id) + "_CYCLE"
}

// OutputName returns where the patches of mod id are written, relative to
// the patches directory.
func (m *Manifest) OutputName(id string) string {
	if name, ok := m.Group(id); ok {
		return "compatibility/" + name + "/" + id + ".json"
	}
	return "compatibility/" + id + ".json"
}

func (m *Manifest) ModIDs() []string {
	return slices.Sorted(maps.Keys(m.Mods))
}

func (m *Manifest) Version(id string) string {
	return m.Mods[id]
}

func (m *Manifest) SetVersion(id, version string) {
	m.Mods[id] = version
}

// Register adds mod id with no version. A non-empty group puts it in that
// group, creating the group with setting shareConfig if it does not exist.
func (m *Manifest) Register(id, group, shareConfig string) error {
	id = strings.ToLower(id)
	if m.Has(id) {
		return fmt.Errorf("mod %q is already registered", id)
	}
	if group != "" {
		if prev, ok := m.Group(id); ok {
			return fmt.Errorf("mod %q is already in group %q", id, prev)
		}
		g := m.Groups[group]
		if g == nil {
			g = &Group{ShareConfig: shareConfig}
			m.Groups[group] = g
		}
		g.List = append(g.List, id)
		m.groupIndex[id] = group
	}
	m.Mods[id] = ""
	return nil
}

// Node returns the manifest as a document.
func (m *Manifest) Node() *ir.Node {
	mods := map[string]*ir.Node{}
	for id, v := range m.Mods {
		mods[id] = ir.FromString(v)
	}
	groups := map[string]*ir.Node{}
	for name, g := range m.Groups {
		list := make([]*ir.Node, len(g.List))
		for i, id := range g.List {
			list[i] = ir.FromString(id)
		}
		kvs := []ir.KeyVal{{Key: "list", Val: ir.FromSlice(list)}}
		if g.ShareConfig != "" {
			kvs = append(kvs, ir.KeyVal{Key: "shareConfig", Val: ir.FromString(g.ShareConfig)})
		}
		groups[name] = ir.FromKeyVals(kvs)
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "groups", Val: ir.FromMap(groups)},
		{Key: "mods", Val: ir.FromMap(mods)},
	})
}

func (m *Manifest) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(m.Node(), buf, encode.SortKeys(strings.Compare)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Manifest) Save(path string) error {
	d, err := m.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0644)
}

// Change is a mod whose version differs between two manifests. Old is empty
// for added mods.
type Change struct {
	ID  string
	Old string
	New string
}

// Diff lists the mods of next whose version is not the one in prev, sorted
// by id.
func Diff(prev, next *Manifest) []Change {
	var res []Change
	for _, id := range next.ModIDs() {
		if old := prev.Mods[id]; old != next.Mods[id] {
			res = append(res, Change{ID: id, Old: old, New: next.Mods[id]})
		}
	}
	return res
}
