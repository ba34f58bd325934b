package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/hocon-go/hocon/encode"
)

type jsonConfig struct {
	*RootConfig
	Cmd *cli.Command
}

// JSONCommand renders one or more resolved documents as canonical JSON.
// This is the behavior "hocon <file>" falls back to when no subcommand name
// is recognized.
func JSONCommand(root *RootConfig) *cli.Command {
	cfg := &jsonConfig{RootConfig: root}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("json").
		WithAliases("j").
		WithSynopsis("json file...").
		WithDescription("Parse, resolve, and render one or more documents as canonical JSON.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsonMain(cfg, cc, args)
		})
	cfg.Cmd = cmd
	return cmd
}

func jsonMain(cfg *jsonConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: json requires at least one file argument", cli.ErrUsage)
	}
	w, encOpts := cfg.out(cc)
	for _, arg := range args {
		root, err := loadArg(cfg.RootConfig, arg)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		if err := encode.Encode(root, w, encOpts...); err != nil {
			return fmt.Errorf("%s: encoding: %w", arg, err)
		}
	}
	return nil
}
