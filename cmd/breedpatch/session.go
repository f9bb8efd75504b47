package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/catalog"
	"github.com/fastbreeding/breedpatch/config"
	"github.com/fastbreeding/breedpatch/configlib"
	"github.com/fastbreeding/breedpatch/dirbuild"
	"github.com/fastbreeding/breedpatch/source"

	"github.com/scott-cotton/cli"
)

func dispatch(cmd *cli.Command, cc *cli.Context, args []string) error {
	args, err := cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cmd.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// session is one build against the asset tree: the catalogs, the
// configuration table and the writes planned so far.
type session struct {
	cfg      *config.Config
	log      *slog.Logger
	manifest *catalog.Manifest
	reg      *breedpatch.Registry
	dir      *dirbuild.Dir
	table    *configlib.Table
	compiler *breedpatch.Compiler

	plan    dirbuild.Plan
	results []*breedpatch.Result
}

func (cfg *MainConfig) session() (*session, error) {
	c, err := cfg.config()
	if err != nil {
		return nil, err
	}
	log := cfg.log()
	manifest, err := catalog.LoadManifest(c.Manifest)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("no manifest, no mods are registered", "file", c.Manifest)
		manifest, err = catalog.ParseManifest([]byte("{}"))
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	var v *catalog.Vanilla
	if c.Vanilla != "" {
		if v, err = catalog.LoadVanilla(c.Vanilla); err != nil {
			return nil, err
		}
	}
	dir := c.Dir()
	table, err := dir.LoadConfig()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		table = configlib.New()
	case err != nil:
		return nil, err
	}
	reg := breedpatch.NewRegistry(manifest, v)
	return &session{
		cfg:      c,
		log:      log,
		manifest: manifest,
		reg:      reg,
		dir:      dir,
		table:    table,
		compiler: breedpatch.NewCompiler(reg, log),
	}, nil
}

func (s *session) sourceOpts(extra ...source.Option) []source.Option {
	return append([]source.Option{
		source.Concurrency(s.cfg.Concurrency),
		source.Logger(s.log),
	}, extra...)
}

func (s *session) job(p string, opts breedpatch.Options, extra ...source.Option) breedpatch.Job {
	srcOpts := s.sourceOpts(extra...)
	return breedpatch.Job{
		Name: p,
		Open: func() (source.Reader, error) {
			return source.Open(p, srcOpts...)
		},
		Options: opts,
	}
}

// emit checks res applies to what it was compiled from and plans its
// writes.
func (s *session) emit(res *breedpatch.Result) error {
	if err := breedpatch.Verify(res.Patches, res.Documents); err != nil {
		return err
	}
	if res.ModID != "" && !s.manifest.Has(res.ModID) {
		s.log.Warn("mod is not registered, its creatures are not known to other mods", "mod", res.ModID)
	}
	p, err := s.dir.Plan(res, s.table)
	if err != nil {
		return err
	}
	s.plan.Merge(p)
	s.results = append(s.results, res)
	return nil
}

// finish adds the configuration table to the plan.
func (s *session) finish() (*dirbuild.Plan, error) {
	f, err := s.dir.ConfigFile(s.table)
	if err != nil {
		return nil, err
	}
	p := &dirbuild.Plan{}
	p.Merge(&s.plan)
	p.Files = append(p.Files, f)
	return p, nil
}

func (s *session) write() error {
	p, err := s.finish()
	if err != nil {
		return err
	}
	return dirbuild.Apply(p)
}

func (s *session) candidates() []*breedpatch.Candidate {
	var res []*breedpatch.Candidate
	for _, r := range s.results {
		res = append(res, r.Candidates...)
	}
	return res
}
