// Package configlib maintains the settings menu's expression table: for each
// numeric type and patched file, the formula re-deriving every patched value
// from its setting.
package configlib

import (
	"bytes"
	"fmt"
	"iter"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/fastbreeding/breedpatch/encode"
	"github.com/fastbreeding/breedpatch/ir"
	"github.com/fastbreeding/breedpatch/parse"
	"github.com/fastbreeding/breedpatch/scale"
)

const (
	patchesField  = "patches"
	settingsField = "settings"
)

// Fragment is the part of the table produced for one output file: numeric
// type → "<index>/value[<path>]" → formula.
type Fragment map[scale.NumType]map[string]string

// Add records e under key.
func (f Fragment) Add(key string, e scale.Expression) {
	m := f[e.Type]
	if m == nil {
		m = map[string]string{}
		f[e.Type] = m
	}
	m[key] = e.Formula
}

func (f Fragment) Len() int {
	n := 0
	for _, m := range f {
		n += len(m)
	}
	return n
}

// Table is a configuration file. Only its patches section is interpreted;
// every other section is carried through Save unchanged.
type Table struct {
	root *ir.Node
}

func New() *Table {
	return &Table{root: ir.FromKeyVals([]ir.KeyVal{
		{Key: patchesField, Val: ir.FromKeyVals(nil)},
	})}
}

// FromNode wraps a parsed configuration document.
func FromNode(root *ir.Node) (*Table, error) {
	if root.Type != ir.ObjectType {
		return nil, fmt.Errorf("configuration table is %s, not an object", root.Type)
	}
	patches := ir.Get(root, patchesField)
	switch {
	case patches == nil:
		root.Set(patchesField, ir.FromKeyVals(nil))
	case patches.Type != ir.ObjectType:
		return nil, fmt.Errorf("configuration %q section is %s, not an object", patchesField, patches.Type)
	}
	return &Table{root: root}, nil
}

func Load(path string) (*Table, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	t, err := FromNode(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *Table) patches() *ir.Node {
	return ir.Get(t.root, patchesField)
}

// Remove deletes every output file key starting with one of prefixes from
// all numeric types and returns how many were removed.
func (t *Table) Remove(prefixes ...string) int {
	n := 0
	for _, byType := range t.patches().Values {
		if byType.Type != ir.ObjectType {
			continue
		}
		for _, key := range slices.Clone(byType.Fields) {
			if !slices.ContainsFunc(prefixes, func(p string) bool { return strings.HasPrefix(key, p) }) {
				continue
			}
			byType.Delete(key)
			n++
		}
	}
	return n
}

// Set replaces the entries of fileKey with frag, one numeric type at a time.
// Types absent from frag are left alone.
func (t *Table) Set(fileKey string, frag Fragment) {
	patches := t.patches()
	for _, typ := range slices.Sorted(maps.Keys(frag)) {
		byType := ir.Get(patches, string(typ))
		if byType == nil || byType.Type != ir.ObjectType {
			byType = ir.FromKeyVals(nil)
			patches.Set(string(typ), byType)
		}
		entries := make(map[string]*ir.Node, len(frag[typ]))
		for k, formula := range frag[typ] {
			entries[k] = ir.FromString(formula)
		}
		byType.Set(fileKey, ir.FromMap(entries))
	}
}

// Get returns the fragment stored under fileKey.
func (t *Table) Get(fileKey string) Fragment {
	res := Fragment{}
	for i, byType := range t.patches().Values {
		files := ir.Get(byType, fileKey)
		if files == nil {
			continue
		}
		m := map[string]string{}
		for j, k := range files.Fields {
			if v := files.Values[j]; v.Type == ir.StringType {
				m[k] = v.String
			}
		}
		res[scale.NumType(t.patches().Fields[i])] = m
	}
	return res
}

// Entry is one formula of the table.
type Entry struct {
	Type    scale.NumType
	FileKey string
	Key     string
	Formula string
}

// Entries yields every formula in document order.
func (t *Table) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		patches := t.patches()
		for i, byType := range patches.Values {
			for j, fileKey := range byType.Fields {
				files := byType.Values[j]
				for k, key := range files.Fields {
					v := files.Values[k]
					if v.Type != ir.StringType {
						continue
					}
					e := Entry{
						Type:    scale.NumType(patches.Fields[i]),
						FileKey: fileKey,
						Key:     key,
						Formula: v.String,
					}
					if !yield(e) {
						return
					}
				}
			}
		}
	}
}

// Settings returns the names of all declared settings, across every settings
// type, sorted.
func (t *Table) Settings() []string {
	var res []string
	settings := ir.Get(t.root, settingsField)
	if settings == nil {
		return nil
	}
	for _, byType := range settings.Values {
		res = append(res, byType.Fields...)
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// Node returns the underlying document.
func (t *Table) Node() *ir.Node {
	return t.root
}

// Bytes returns the stable serialization of the table.
func (t *Table) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t.root, buf, encode.SortKeys(encode.CompareKeys)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Table) Save(path string) error {
	d, err := t.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0644)
}
