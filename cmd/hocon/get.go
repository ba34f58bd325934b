package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/hocon-go/hocon/encode"
	"github.com/hocon-go/hocon/query"
)

type getConfig struct {
	*RootConfig
	Cmd *cli.Command
}

// GetCommand prints the value at a dotted path within a resolved
// document, encoded as canonical JSON. A missing path renders as null.
func GetCommand(root *RootConfig) *cli.Command {
	cfg := &getConfig{RootConfig: root}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get file path").
		WithDescription("Print the value at path within the resolved document.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return getMain(cfg, cc, args)
		})
	cfg.Cmd = cmd
	return cmd
}

func getMain(cfg *getConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: get requires exactly 2 arguments, a file and a path", cli.ErrUsage)
	}
	root, err := loadArg(cfg.RootConfig, args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	val := query.Get(root, args[1])
	w, encOpts := cfg.out(cc)
	return encode.Encode(val, w, encOpts...)
}
