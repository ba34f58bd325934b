package main

import (
	"errors"
	"os"

	"github.com/scott-cotton/cli"
)

// RootCommand builds the top-level "hocon" command and its json/get/diff
// subcommands. Running "hocon <file>" with no recognized subcommand name is
// shorthand for "hocon json <file>".
func RootCommand() *cli.Command {
	cfg := &RootConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	cfg.JSON = JSONCommand(cfg)
	cfg.Get = GetCommand(cfg)
	cfg.Diff = DiffCommand(cfg)

	cmd := cli.NewCommandAt(&cfg.Root, "hocon").
		WithSynopsis("hocon [opts] [command] file...").
		WithDescription("hocon loads, resolves, and inspects HOCON configuration documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rootMain(cfg, cc, args)
		}).
		WithSubs(cfg.JSON, cfg.Get, cfg.Diff)
	return cmd
}

func rootMain(cfg *RootConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Root.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Root.FindSub(cc, args[0])
	if sub == nil {
		// No matching subcommand name: treat the whole argument list as
		// files for the default "json" behavior.
		sub = cfg.JSON
	} else {
		args = args[1:]
	}
	err = sub.Run(cc, args)
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}
