package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const manifest = `{
  "groups": {
    "wildlife": {"list": ["Wolves", "bears"], "shareConfig": "WILDLIFE_CYCLE"},
    "farm": {"list": ["ducks"]}
  },
  "mods": {"wolves": "1.2.0", "bears": "0.3.1", "ducks": "2.0.0", "foxes": "1.0.0"}
}`

func TestManifest(t *testing.T) {
	m, err := ParseManifest([]byte(manifest))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		id, key, output string
		group           string
	}{
		{"wolves", "WILDLIFE_CYCLE", "compatibility/wildlife/wolves.json", "wildlife"},
		{"ducks", "DUCKS_CYCLE", "compatibility/farm/ducks.json", "farm"},
		{"foxes", "FOXES_CYCLE", "compatibility/foxes.json", ""},
	}
	for _, tt := range tests {
		if !m.Has(tt.id) {
			t.Errorf("%s not registered", tt.id)
		}
		if got := m.SettingKey(tt.id); got != tt.key {
			t.Errorf("%s key %s want %s", tt.id, got, tt.key)
		}
		if got := m.OutputName(tt.id); got != tt.output {
			t.Errorf("%s output %s want %s", tt.id, got, tt.output)
		}
		if got, _ := m.Group(tt.id); got != tt.group {
			t.Errorf("%s group %q want %q", tt.id, got, tt.group)
		}
	}
	if m.Has("cats") {
		t.Error("cats registered")
	}
	if diff := cmp.Diff([]string{"bears", "ducks", "foxes", "wolves"}, m.ModIDs()); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
}

func TestManifestDuplicateGroup(t *testing.T) {
	_, err := ParseManifest([]byte(`{"mods": {}, "groups": {"a": {"list": ["x"]}, "b": {"list": ["X"]}}}`))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestManifestRegister(t *testing.T) {
	m, err := ParseManifest([]byte(manifest))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Register("Lynx", "wildlife", ""); err != nil {
		t.Fatal(err)
	}
	if err := m.Register("moles", "burrowers", "BURROW_CYCLE"); err != nil {
		t.Fatal(err)
	}
	if got := m.SettingKey("lynx"); got != "WILDLIFE_CYCLE" {
		t.Errorf("lynx key %s", got)
	}
	if got := m.OutputName("moles"); got != "compatibility/burrowers/moles.json" {
		t.Errorf("moles output %s", got)
	}
	if got := m.SettingKey("moles"); got != "BURROW_CYCLE" {
		t.Errorf("moles key %s", got)
	}
	if v := m.Version("lynx"); !m.Has("lynx") || v != "" {
		t.Errorf("lynx version %q", v)
	}
	if err := m.Register("wolves", "", ""); err == nil {
		t.Error("expected error registering wolves twice")
	}
}

func TestManifestSaveAndDiff(t *testing.T) {
	prev, err := ParseManifest([]byte(manifest))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "mods.json")
	if err := prev.Save(path); err != nil {
		t.Fatal(err)
	}
	next, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	next.SetVersion("wolves", "1.3.0")
	next.SetVersion("cats", "0.1.0")
	want := []Change{
		{ID: "cats", New: "0.1.0"},
		{ID: "wolves", Old: "1.2.0", New: "1.3.0"},
	}
	if diff := cmp.Diff(want, Diff(prev, next)); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	wantFile := `{
  "groups": {
    "farm": {
      "list": [
        "ducks"
      ]
    },
    "wildlife": {
      "list": [
        "Wolves",
        "bears"
      ],
      "shareConfig": "WILDLIFE_CYCLE"
    }
  },
  "mods": {
    "bears": "0.3.1",
    "ducks": "2.0.0",
    "foxes": "1.0.0",
    "wolves": "1.2.0"
  }
}
`
	if diff := cmp.Diff(wantFile, string(d)); diff != "" {
		t.Errorf("file (-want +got):\n%s", diff)
	}
}

func TestVanillaFind(t *testing.T) {
	v := DefaultVanilla()
	tests := map[string]string{
		"game:entities/land/pig-wild-male.json":      "PIG_CYCLE",
		"game:entities/land/hooved/goat.json":        "GOAT_CYCLE",
		"game:entities/land/chicken-rooster.json":    "CHICKEN_CYCLE",
		"game:entities/land/sheep-bighorn-lamb.json": "SHEEP_CYCLE",
		"game:entities/land/wolf-male.json":          "",
		"game:entities/land/pig-wild/male.json":      "",
		"wolves:entities/land/pig-wild-male.json":    "",
	}
	for target, key := range tests {
		a, ok := v.Find(target)
		if ok != (key != "") {
			t.Errorf("%s: found %v", target, ok)
			continue
		}
		if ok && a.Key != key {
			t.Errorf("%s: key %s want %s", target, a.Key, key)
		}
	}
	if a, _ := v.Find("game:entities/land/hare-female.json"); !a.MatchInput("land/hare-male.json") || a.MatchInput("land/hare/male.json") {
		t.Error("hare input matching")
	}
}

func TestLoadVanilla(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vanilla.json")
	table := `[{"input": ["land/wolf-*.json", "land/fox-*.json"], "output": "land/canines.json", "key": "CANINE_CYCLE"}]`
	if err := os.WriteFile(path, []byte(table), 0644); err != nil {
		t.Fatal(err)
	}
	v, err := LoadVanilla(path)
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := v.Find("game:entities/land/fox-male.json"); !ok || a.Output != "land/canines.json" {
		t.Errorf("find: %v %v", a, ok)
	}
	if err := os.WriteFile(path, []byte(`[{"input": ["x"]}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadVanilla(path); err == nil {
		t.Error("expected error for incomplete animal")
	}
}
