package main

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/catalog"
	"github.com/fastbreeding/breedpatch/modapi"
	"github.com/fastbreeding/breedpatch/source"

	"github.com/scott-cotton/cli"
)

func update(cfg *UpdateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Update.Parse(cc, args)
	if err != nil {
		cfg.Update.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	s, err := cfg.session()
	if err != nil {
		return err
	}
	ids := args
	if len(ids) == 0 {
		ids = s.manifest.ModIDs()
	}
	return s.update(cfg.MainConfig, cc, ids)
}

func add(cfg *AddConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Add.Parse(cc, args)
	if err != nil {
		cfg.Add.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: add requires one mod id, got %v", cli.ErrUsage, args)
	}
	if cfg.Share != "" && cfg.Group == "" {
		return fmt.Errorf("%w: -share needs -group", cli.ErrUsage)
	}
	s, err := cfg.session()
	if err != nil {
		return err
	}
	id := strings.ToLower(args[0])
	if err := s.manifest.Register(id, cfg.Group, cfg.Share); err != nil {
		return err
	}
	return s.update(cfg.MainConfig, cc, []string{id})
}

// update fetches, compiles and records the newest release of each of ids,
// then saves the manifest and prints the versions that changed. Mods that
// fail do not keep the others from being updated.
func (s *session) update(cfg *MainConfig, cc *cli.Context, ids []string) error {
	prev := &catalog.Manifest{Mods: maps.Clone(s.manifest.Mods)}
	client := modapi.NewClient(s.cfg.API.BaseURL, s.cfg.Cache, s.log)

	var errs []error
	versions := map[string]string{}
	var jobs []breedpatch.Job
	for _, id := range ids {
		id = strings.ToLower(id)
		if !s.manifest.Has(id) {
			errs = append(errs, fmt.Errorf("mod %q is not registered", id))
			continue
		}
		up, err := client.Check(cfg.ctx, id, s.manifest.Version(id))
		if err != nil {
			if cfg.ctx.Err() != nil {
				return err
			}
			s.log.Error("could not fetch", "mod", id, "error", err)
			errs = append(errs, err)
			continue
		}
		if up == nil {
			continue
		}
		versions[id] = up.Release.ModVersion
		jobs = append(jobs, s.job(up.Archive, breedpatch.Options{}, source.ModID(id)))
	}

	emit := func(res *breedpatch.Result) error {
		if err := s.emit(res); err != nil {
			return err
		}
		s.manifest.SetVersion(res.ModID, versions[res.ModID])
		return nil
	}
	if err := s.compiler.Run(cfg.ctx, jobs, emit); err != nil {
		if cfg.ctx.Err() != nil {
			return err
		}
		errs = append(errs, err)
	}
	changes := catalog.Diff(prev, s.manifest)
	if len(s.results) != 0 || len(changes) != 0 {
		if err := s.write(); err != nil {
			return err
		}
		if err := s.manifest.Save(s.cfg.Manifest); err != nil {
			return err
		}
	}
	colors := cfg.colors(cc.Out)
	if err := writeCandidates(cc.Out, s.candidates(), colors); err != nil {
		return err
	}
	if err := writeVersionTable(cc.Out, changes); err != nil {
		return err
	}
	return errors.Join(errs...)
}
