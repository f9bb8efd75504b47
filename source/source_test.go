package source

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

var modFiles = map[string]string{
	"modinfo.json":                              `{"type": "code", "ModID": "Wolves", "version": "1.0.0"}`,
	"assets/wolves/entities/land/wolf.json":     `{code: "wolf", server: {behaviors: [{hoursToGrow: 480,},]}}`,
	"assets/wolves/entities/land/wolf-pup.json": `{"code": "wolf-pup"}`,
	"assets/wolves/entities/land/broken.json":   `{"code": [1, 2`,
	"assets/wolves/entities/readme.txt":         `not json`,
	"assets/wolves/patches/pig.json":            `[{"op": "add", "file": "game:entities/land/pig-wild-male.json", "path": "/server/behaviors/-", "value": {}}]`,
	"assets/other/entities/x.json":              `{}`,
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func collect(t *testing.T, seq func(func(Entry, error) bool)) []string {
	t.Helper()
	var res []string
	for e, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, e.Path)
	}
	return res
}

func checkMod(t *testing.T, r Reader) {
	t.Helper()
	ctx := context.Background()
	id, err := r.ModID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "wolves" {
		t.Errorf("mod id %q", id)
	}
	files := collect(t, r.Files(ctx))
	want := []string{
		"assets/wolves/entities/land/wolf-pup.json",
		"assets/wolves/entities/land/wolf.json",
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
	patches := collect(t, r.Patches(ctx))
	if diff := cmp.Diff([]string{"assets/wolves/patches/pig.json"}, patches); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range modFiles {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func writeZip(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "wolves_1.0.0.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range modFiles {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDir(t *testing.T) {
	r, err := Open(writeDir(t), Logger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	checkMod(t, r)
}

func TestZip(t *testing.T) {
	r, err := Open(writeZip(t), Logger(quietLogger()), Concurrency(1))
	if err != nil {
		t.Fatal(err)
	}
	checkMod(t, r)
}

func TestDocumentsParsed(t *testing.T) {
	r := FS(mapFS(modFiles), Logger(quietLogger()))
	for e, err := range r.Files(context.Background()) {
		if err != nil {
			t.Fatal(err)
		}
		if e.Doc == nil || e.Doc.Type.String() != "Object" {
			t.Errorf("%s: %v", e.Path, e.Doc)
		}
	}
}

func TestOverrideModID(t *testing.T) {
	r := FS(mapFS(modFiles), ModID("Other"), Logger(quietLogger()))
	files := collect(t, r.Files(context.Background()))
	if diff := cmp.Diff([]string{"assets/other/entities/x.json"}, files); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
}

func TestMissingModID(t *testing.T) {
	tests := map[string]string{
		"no modinfo": "",
		"no key":     `{"name": "x"}`,
		"empty":      `{"modid": ""}`,
		"not string": `{"modid": 3}`,
	}
	for name, info := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			if info != "" {
				fsys[ModInfo] = &fstest.MapFile{Data: []byte(info)}
			}
			r := FS(fsys)
			if _, err := r.ModID(); !errors.Is(err, ErrMissingModID) {
				t.Fatalf("expected ErrMissingModID, got %v", err)
			}
			for _, err := range r.Files(context.Background()) {
				if !errors.Is(err, ErrMissingModID) {
					t.Fatalf("expected ErrMissingModID from Files, got %v", err)
				}
			}
		})
	}
}

func TestNoPatchesDir(t *testing.T) {
	fsys := fstest.MapFS{ModInfo: &fstest.MapFile{Data: []byte(`{"modid": "x"}`)}}
	if got := collect(t, FS(fsys).Patches(context.Background())); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestPaths(t *testing.T) {
	dir := writeDir(t)
	paths := []string{
		filepath.Join(dir, "assets", "wolves", "entities", "land", "wolf.json"),
		filepath.Join(dir, "assets", "wolves", "entities", "land", "broken.json"),
		filepath.Join(dir, "assets", "wolves", "entities", "land", "wolf-pup.json"),
	}
	r := Paths(paths, Logger(quietLogger()))
	if id, err := r.ModID(); err != nil || id != "" {
		t.Fatalf("mod id %q %v", id, err)
	}
	got := collect(t, r.Files(context.Background()))
	if diff := cmp.Diff([]string{paths[0], paths[2]}, got); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
	if got := collect(t, r.Patches(context.Background())); len(got) != 0 {
		t.Errorf("patches %v", got)
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := FS(mapFS(modFiles), Logger(quietLogger()))
	var gotErr error
	for _, err := range r.Files(ctx) {
		gotErr = err
	}
	if !errors.Is(gotErr, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", gotErr)
	}
}

func mapFS(files map[string]string) fstest.MapFS {
	res := fstest.MapFS{}
	for name, content := range files {
		res[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return res
}
