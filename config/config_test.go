package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	data := `
assets: mod/assets/fb
domain: fb
game: /opt/game/assets/survival
api:
  baseURL: http://localhost:8080
concurrency: 2
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Assets:      filepath.Join(dir, "mod/assets/fb"),
		Domain:      "fb",
		Table:       "config/configlib-patches.json",
		Manifest:    filepath.Join(dir, "mods.json"),
		Game:        "/opt/game/assets/survival",
		API:         &APIConfig{BaseURL: "http://localhost:8080"},
		Cache:       filepath.Join(dir, ".cache/mods"),
		Concurrency: 2,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
	d := cfg.Dir()
	if got, want := d.ConfigPath(), filepath.Join(dir, "mod/assets/fb/config/configlib-patches.json"); got != want {
		t.Errorf("config path %s, want %s", got, want)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breedpatch.json")
	if err := os.WriteFile(path, []byte(`{"domain": "other", "concurrency": 4}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Domain != "other" || cfg.Concurrency != 4 {
		t.Errorf("got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Domain = ""
	cfg.Table = "/abs/table.json"
	cfg.Concurrency = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, s := range []string{"domain", "table", "concurrency"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not mention %s", err, s)
		}
	}
}
