package source

import (
	"archive/zip"
	"context"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Dir returns a Reader over an unpacked mod directory.
func Dir(dir string, opts ...Option) Reader {
	return newFSReader(os.DirFS(dir), nil, opts)
}

// Zip opens a mod archive. The archive stays open until Close.
func Zip(file string, opts ...Option) (Reader, error) {
	zr, err := zip.OpenReader(file)
	if err != nil {
		return nil, err
	}
	return newFSReader(zr, zr.Close, opts), nil
}

// Open picks a Reader by the form of p: archives end in ".zip", anything else
// is a directory.
func Open(p string, opts ...Option) (Reader, error) {
	if strings.EqualFold(filepath.Ext(p), ".zip") {
		return Zip(p, opts...)
	}
	st, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return Paths([]string{p}, opts...), nil
	}
	return Dir(p, opts...), nil
}

type pathsReader struct {
	paths []string
	opts  *readerOpts
}

// Paths returns a Reader over explicit entity files. Its mod id is the one
// given with the ModID option, or "" for built-in content, and it has no
// patches.
func Paths(paths []string, opts ...Option) Reader {
	return &pathsReader{paths: slices.Clone(paths), opts: newOpts(opts)}
}

func (r *pathsReader) ModID() (string, error) {
	return strings.ToLower(r.opts.modID), nil
}

func (r *pathsReader) Files(ctx context.Context) iter.Seq2[Entry, error] {
	return readAll(ctx, r.paths, os.ReadFile, r.opts)
}

func (r *pathsReader) Patches(context.Context) iter.Seq2[Entry, error] {
	return func(func(Entry, error) bool) {}
}

func (r *pathsReader) Close() error {
	return nil
}
