package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/catalog"
	"github.com/fastbreeding/breedpatch/config"

	"github.com/google/go-cmp/cmp"
)

func TestWriteVersionTable(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := writeVersionTable(buf, []catalog.Change{
		{ID: "cats", New: "0.1.0"},
		{ID: "wolves", Old: "1.2.0", New: "1.3.0"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `| Mod | Old | New |
|-----|-----|-----|
| cats | - | 0.1.0 |
| wolves | 1.2.0 | 1.3.0 |
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("table (-want +got):\n%s", diff)
	}
}

func TestWriteCandidates(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := writeCandidates(buf, []*breedpatch.Candidate{{
		ModID:     "wolves",
		PatchFile: "patches/moose.json",
		Index:     4,
		Target:    "game:entities/land/moose.json",
		Paths:     []string{"/server/behaviors/3/multiply"},
	}}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := "unregistered breeding: wolves: patches/moose.json op 4 adds /server/behaviors/3/multiply to game:entities/land/moose.json\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("candidates (-want +got):\n%s", diff)
	}
}

func TestVanillaJobs(t *testing.T) {
	game := t.TempDir()
	for _, f := range []string{"land/pig-wild-male.json", "land/pig-wild-female.json", "land/hare-male.json", "land/wolf-male.json"} {
		p := filepath.Join(game, "entities", filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(`{"code": "x"}`), 0644); err != nil {
			t.Fatal(err)
		}
	}
	s := &session{
		cfg: config.DefaultConfig(),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		reg: breedpatch.NewRegistry(nil, nil),
	}
	jobs, err := s.vanillaJobs(game)
	if err != nil {
		t.Fatal(err)
	}
	var got []breedpatch.Options
	for _, j := range jobs {
		got = append(got, j.Options)
	}
	want := []breedpatch.Options{
		{SettingKey: "PIG_CYCLE", Output: "land/pig-wild.json"},
		{SettingKey: "HARE_CYCLE", Output: "land/hare.json"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("jobs (-want +got):\n%s", diff)
	}
	if _, err := s.vanillaJobs(t.TempDir()); err == nil {
		t.Error("expected error without entities directory")
	}
}
