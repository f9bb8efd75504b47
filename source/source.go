// Package source reads a mod's entity definitions and patch documents.
//
// A mod is either a directory or a zip archive laid out as
//
//	modinfo.json
//	assets/<modid>/entities/**/*.json
//	assets/<modid>/patches/**/*.json
//
// Built-in game content has no modinfo; it is read from an explicit list of
// files with Paths.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/fastbreeding/breedpatch/debug"
	"github.com/fastbreeding/breedpatch/ir"
	"github.com/fastbreeding/breedpatch/parse"

	"golang.org/x/sync/errgroup"
)

var ErrMissingModID = errors.New("mod id could not be found")

// Entry is a parsed document and the path it was read from. For mods the
// path is relative to the mod root.
type Entry struct {
	Path string
	Doc  *ir.Node
}

type Reader interface {
	// ModID returns the lowercase mod id, or "" for built-in content. It is
	// resolved once.
	ModID() (string, error)
	Files(ctx context.Context) iter.Seq2[Entry, error]
	Patches(ctx context.Context) iter.Seq2[Entry, error]
	Close() error
}

const (
	EntitiesDir = "entities"
	PatchesDir  = "patches"
	ModInfo     = "modinfo.json"
)

type readerOpts struct {
	modID       string
	concurrency int
	logger      *slog.Logger
}

type Option func(*readerOpts)

// ModID overrides the id found in modinfo.json, and names the mod of a
// Paths reader.
func ModID(id string) Option {
	return func(o *readerOpts) { o.modID = id }
}

// Concurrency bounds the number of files read and parsed at once.
func Concurrency(n int) Option {
	return func(o *readerOpts) { o.concurrency = n }
}

func Logger(l *slog.Logger) Option {
	return func(o *readerOpts) { o.logger = l }
}

func newOpts(opts []Option) *readerOpts {
	o := &readerOpts{concurrency: 8}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}

// fsReader reads a mod laid out in a file system.
type fsReader struct {
	fsys   fs.FS
	opts   *readerOpts
	modID  func() (string, error)
	closer func() error
}

func newFSReader(fsys fs.FS, closer func() error, opts []Option) *fsReader {
	r := &fsReader{fsys: fsys, opts: newOpts(opts), closer: closer}
	r.modID = sync.OnceValues(r.readModID)
	return r
}

// FS returns a Reader over a mod rooted at fsys.
func FS(fsys fs.FS, opts ...Option) Reader {
	return newFSReader(fsys, nil, opts)
}

func (r *fsReader) ModID() (string, error) {
	return r.modID()
}

func (r *fsReader) readModID() (string, error) {
	if r.opts.modID != "" {
		return strings.ToLower(r.opts.modID), nil
	}
	d, err := fs.ReadFile(r.fsys, ModInfo)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingModID, err)
	}
	doc, err := parse.Parse(d)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrMissingModID, ModInfo, err)
	}
	return modIDFrom(doc)
}

func modIDFrom(doc *ir.Node) (string, error) {
	if doc.Type != ir.ObjectType {
		return "", fmt.Errorf("%w: %s is not an object", ErrMissingModID, ModInfo)
	}
	i := slices.IndexFunc(doc.Fields, func(f string) bool {
		return strings.EqualFold(f, "modid")
	})
	if i == -1 {
		return "", ErrMissingModID
	}
	v := doc.Values[i]
	if v.Type != ir.StringType || v.String == "" {
		return "", fmt.Errorf("%w: %s %s is not a non-empty string", ErrMissingModID, ModInfo, doc.Fields[i])
	}
	return strings.ToLower(v.String), nil
}

func (r *fsReader) Files(ctx context.Context) iter.Seq2[Entry, error] {
	return r.filtered(ctx, EntitiesDir)
}

func (r *fsReader) Patches(ctx context.Context) iter.Seq2[Entry, error] {
	return r.filtered(ctx, PatchesDir)
}

func (r *fsReader) filtered(ctx context.Context, sub string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		modID, err := r.ModID()
		if err != nil {
			yield(Entry{}, err)
			return
		}
		root := path.Join("assets", modID, sub)
		var paths []string
		err = fs.WalkDir(r.fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && p == root {
					return fs.SkipAll
				}
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".json") {
				paths = append(paths, p)
			}
			return nil
		})
		if err != nil {
			yield(Entry{}, fmt.Errorf("could not list %s: %w", root, err))
			return
		}
		read := func(p string) ([]byte, error) {
			return fs.ReadFile(r.fsys, p)
		}
		for e, err := range readAll(ctx, paths, read, r.opts) {
			if !yield(e, err) {
				return
			}
		}
	}
}

func (r *fsReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}

// readAll reads and parses paths with bounded parallelism and yields the
// documents in the order of paths. Files that fail to parse are logged and
// skipped.
func readAll(ctx context.Context, paths []string, read func(string) ([]byte, error), opts *readerOpts) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		docs := make([]*ir.Node, len(paths))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.concurrency)
		for i, p := range paths {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				d, err := read(p)
				if err != nil {
					return fmt.Errorf("could not read %s: %w", p, err)
				}
				if debug.Read() {
					debug.Logf("read %s (%d bytes)\n", p, len(d))
				}
				doc, err := parse.Parse(d)
				if err != nil {
					opts.logger.Warn("could not parse file", "file", p, "error", err)
					return nil
				}
				docs[i] = doc
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			yield(Entry{}, err)
			return
		}
		for i, doc := range docs {
			if doc == nil {
				continue
			}
			if !yield(Entry{Path: paths[i], Doc: doc}, nil) {
				return
			}
		}
	}
}
