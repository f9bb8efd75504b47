package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/source"

	"github.com/scott-cotton/cli"
)

func vanilla(cfg *VanillaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Vanilla.Parse(cc, args)
	if err != nil {
		cfg.Vanilla.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: vanilla takes no arguments, got %v", cli.ErrUsage, args)
	}
	s, err := cfg.session()
	if err != nil {
		return err
	}
	jobs, err := s.vanillaJobs(cfg.Game)
	if err != nil {
		return err
	}
	return s.build(cfg.MainConfig, cc, jobs, cfg.DryRun)
}

// vanillaJobs returns one job per built-in animal, over the entity files of
// the game asset directory game it matches.
func (s *session) vanillaJobs(game string) ([]breedpatch.Job, error) {
	if game == "" {
		game = s.cfg.Game
	}
	if game == "" {
		return nil, fmt.Errorf("%w: no game asset directory, use -game or set game in the configuration", cli.ErrUsage)
	}
	entities := filepath.Join(game, "entities")
	var files []string
	err := filepath.WalkDir(entities, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".json") {
			return nil
		}
		rel, err := filepath.Rel(entities, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no entities directory in %s", game)
	}
	if err != nil {
		return nil, err
	}
	slices.Sort(files)

	var jobs []breedpatch.Job
	for _, a := range s.reg.Vanilla.Animals {
		var paths []string
		for _, rel := range files {
			if a.MatchInput(rel) {
				paths = append(paths, filepath.Join(entities, filepath.FromSlash(rel)))
			}
		}
		if len(paths) == 0 {
			s.log.Warn("no entity files", "animal", a.Output, "input", a.Input)
			continue
		}
		srcOpts := s.sourceOpts()
		jobs = append(jobs, breedpatch.Job{
			Name: a.Output,
			Open: func() (source.Reader, error) {
				return source.Paths(paths, srcOpts...), nil
			},
			Options: breedpatch.Options{SettingKey: a.Key, Output: a.Output},
		})
	}
	return jobs, nil
}
