package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/dirbuild"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 && !cfg.Vanilla {
		return fmt.Errorf("%w: check requires sources or -vanilla", cli.ErrUsage)
	}
	s, err := cfg.session()
	if err != nil {
		return err
	}
	var jobs []breedpatch.Job
	if cfg.Vanilla {
		if jobs, err = s.vanillaJobs(cfg.Game); err != nil {
			return err
		}
	}
	for _, arg := range args {
		jobs = append(jobs, s.job(arg, breedpatch.Options{}))
	}
	changes, runErr := s.changes(cfg.ctx, jobs)
	if cfg.ctx.Err() != nil {
		return runErr
	}
	colors := cfg.colors(cc.Out)
	if err := writeChanges(cc.Out, changes, cfg.Quiet, colors); err != nil {
		return err
	}
	if err := writeCandidates(cc.Out, s.candidates(), colors); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if len(changes) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// changes compiles jobs in memory and compares the outputs of those that
// succeed with the asset tree. Failed jobs are returned joined alongside.
func (s *session) changes(ctx context.Context, jobs []breedpatch.Job) ([]dirbuild.Change, error) {
	runErr := s.compiler.Run(ctx, jobs, s.emit)
	if ctx.Err() != nil {
		return nil, runErr
	}
	p, err := s.finish()
	if err != nil {
		return nil, errors.Join(runErr, err)
	}
	changes, err := dirbuild.Changes(p)
	if err != nil {
		return nil, errors.Join(runErr, err)
	}
	return changes, runErr
}
