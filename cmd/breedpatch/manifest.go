package main

import (
	"fmt"

	"github.com/fastbreeding/breedpatch/catalog"

	"github.com/scott-cotton/cli"
)

func manifestDiff(cfg *ManifestDiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: manifest diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	prev, err := catalog.LoadManifest(args[0])
	if err != nil {
		return err
	}
	next, err := catalog.LoadManifest(args[1])
	if err != nil {
		return err
	}
	return writeVersionTable(cc.Out, catalog.Diff(prev, next))
}
