package main

import (
	"fmt"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/source"

	"github.com/scott-cotton/cli"
)

func mod(cfg *ModConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Mod.Parse(cc, args)
	if err != nil {
		cfg.Mod.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: mod requires at least one source", cli.ErrUsage)
	}
	if cfg.ID != "" && len(args) > 1 {
		return fmt.Errorf("%w: -id names a single source", cli.ErrUsage)
	}
	s, err := cfg.session()
	if err != nil {
		return err
	}
	var extra []source.Option
	if cfg.ID != "" {
		extra = append(extra, source.ModID(cfg.ID))
	}
	jobs := make([]breedpatch.Job, 0, len(args))
	for _, arg := range args {
		jobs = append(jobs, s.job(arg, cfg.options(), extra...))
	}
	return s.build(cfg.MainConfig, cc, jobs, cfg.DryRun)
}

// build runs jobs and either writes or prints what they compile to. Sources
// that fail are reported after the others are written.
func (s *session) build(cfg *MainConfig, cc *cli.Context, jobs []breedpatch.Job, dryRun bool) error {
	runErr := s.compiler.Run(cfg.ctx, jobs, s.emit)
	if cfg.ctx.Err() != nil {
		return runErr
	}
	colors := cfg.colors(cc.Out)
	if dryRun {
		for _, res := range s.results {
			if err := writeResult(cc.Out, res, colors); err != nil {
				return err
			}
		}
	} else if len(s.results) != 0 {
		if err := s.write(); err != nil {
			return err
		}
		for _, res := range s.results {
			s.log.Info("wrote", "output", res.Output, "patches", len(res.Patches), "overrides", len(res.Overrides))
		}
	}
	if err := writeCandidates(cc.Out, s.candidates(), colors); err != nil {
		return err
	}
	return runErr
}
