package dirbuild

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/fastbreeding/breedpatch/debug"
)

// Apply empties the directories of p and writes its files.
func Apply(p *Plan) error {
	for _, dir := range p.Dirs {
		if debug.Write() {
			debug.Logf("clearing %s\n", dir)
		}
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	for _, f := range p.Files {
		if err := writeFile(f); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(f File) error {
	if f.Data == nil {
		if debug.Write() {
			debug.Logf("removing %s\n", f.Path)
		}
		err := os.Remove(f.Path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if debug.Write() {
		debug.Logf("writing %s\n", f.Path)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return err
	}
	fd, err := os.OpenFile(f.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	w := &wc{f: fd, w: bufio.NewWriter(fd)}
	if _, err := w.Write(f.Data); err != nil {
		w.f.Close()
		return err
	}
	return w.Close()
}

type wc struct {
	f *os.File
	w *bufio.Writer
}

func (w *wc) Write(d []byte) (int, error) {
	return w.w.Write(d)
}

func (w *wc) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// Change is a file that applying a plan would alter. A nil Old means the file
// is created, a nil New that it is removed.
type Change struct {
	Path string
	Old  []byte
	New  []byte
}

// Changes compares p to the file system without writing anything.
func Changes(p *Plan) ([]Change, error) {
	planned := map[string][]byte{}
	var order []string
	for _, f := range p.Files {
		if _, ok := planned[f.Path]; !ok {
			order = append(order, f.Path)
		}
		planned[f.Path] = f.Data
	}
	for _, dir := range p.Dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := planned[path]; !ok {
				planned[path] = nil
				order = append(order, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(order)
	var res []Change
	for _, path := range order {
		old, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			old = nil
		case err != nil:
			return nil, err
		}
		next := planned[path]
		if old == nil && next == nil {
			continue
		}
		if old != nil && next != nil && bytes.Equal(old, next) {
			continue
		}
		res = append(res, Change{Path: path, Old: old, New: next})
	}
	return res, nil
}
