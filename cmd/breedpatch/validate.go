package main

import (
	"fmt"

	"github.com/fastbreeding/breedpatch/configlib"
	"github.com/fastbreeding/breedpatch/eval"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var path string
	switch len(args) {
	case 0:
		c, err := cfg.config()
		if err != nil {
			return err
		}
		path = c.Dir().ConfigPath()
	case 1:
		path = args[0]
	default:
		return fmt.Errorf("%w: validate takes at most one table, got %v", cli.ErrUsage, args)
	}
	tbl, err := configlib.Load(path)
	if err != nil {
		return err
	}
	unknown, err := eval.Validate(tbl.Entries(), tbl.Settings())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(unknown) == 0 {
		return nil
	}
	bad := newColor(cfg.colors(cc.Out), color.FgRed)
	for _, u := range unknown {
		fmt.Fprintln(cc.Out, bad.Sprint(u.Error()))
	}
	return cli.ExitCodeErr(1)
}
