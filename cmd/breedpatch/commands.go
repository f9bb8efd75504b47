package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "breedpatch").
		WithSynopsis("breedpatch [opts] command [opts]").
		WithDescription("breedpatch compiles breeding time patches for creature mods.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dispatch(cfg.Main, cc, args)
		}).
		WithSubs(
			ModCommand(cfg),
			VanillaCommand(cfg),
			CheckCommand(cfg),
			ValidateCommand(cfg),
			UpdateCommand(cfg),
			AddCommand(cfg),
			ManifestCommand(cfg))
}

func ModCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ModConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "dep",
		Description: "add a dependency on mod id to every patch",
		Type:        cli.NamedFuncOpt(cfg.depOpt, "(modid)"),
	})
	return cli.NewCommandAt(&cfg.Mod, "mod").
		WithAliases("m").
		WithSynopsis("mod [-n] [-id modid] [-key setting] [-dep modid]... <dir|zip|file>...").
		WithDescription(modDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mod(cfg, cc, args)
		})
}

const modDescription = `mod compiles mod sources into patches.

A source is an unpacked mod directory, a mod archive (.zip) or a single
entity file. Mod directories and archives name themselves in modinfo.json;
single files need -id, or -key and -out for built-in content.

Patches are written below the patches directory of the asset tree, the
rewritten patch documents of a mod below compatibility/<modid>, and the
formulas into the configuration table. With -n nothing is written and the
patches are printed instead.`

func VanillaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &VanillaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Vanilla, "vanilla").
		WithAliases("va").
		WithSynopsis("vanilla [-n] [-game dir]").
		WithDescription("compile the built-in animals of the game's asset directory").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return vanilla(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-vanilla] [-q] [<dir|zip>...]").
		WithDescription("compile in memory and report outputs that would change; exits 1 if any would").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithSynopsis("validate [table]").
		WithDescription("check that every formula of the configuration table refers to declared settings").
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func UpdateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UpdateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Update, "update").
		WithAliases("up").
		WithSynopsis("update [modid...]").
		WithDescription("fetch newer releases of registered mods, compile them and record their versions").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return update(cfg, cc, args)
		})
}

func AddCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AddConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Add, "add").
		WithSynopsis("add [-group name [-share setting]] <modid>").
		WithDescription("register a mod, fetch its latest release and compile it").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return add(cfg, cc, args)
		})
}

func ManifestCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ManifestConfig{MainConfig: mainCfg}
	cmd := cli.NewCommandAt(&cfg.Manifest, "manifest").
		WithSynopsis("manifest command").
		WithDescription("work with the registered mod catalog").
		WithSubs(ManifestDiffCommand(cfg))
	return cmd.WithRun(func(cc *cli.Context, args []string) error {
		return dispatch(cfg.Manifest, cc, args)
	})
}

func ManifestDiffCommand(mCfg *ManifestConfig) *cli.Command {
	cfg := &ManifestDiffConfig{ManifestConfig: mCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("manifest diff <old> <new>").
		WithDescription("print the version changes between two catalogs as a markdown table").
		WithRun(func(cc *cli.Context, args []string) error {
			return manifestDiff(cfg, cc, args)
		})
}
