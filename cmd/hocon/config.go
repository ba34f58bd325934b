package main

import (
	"os"

	"github.com/scott-cotton/cli"

	"github.com/hocon-go/hocon/hocon"
)

// RootConfig holds the flags shared by every subcommand.
type RootConfig struct {
	Strict bool `cli:"name=strict desc='fail on the first parse or resolve error instead of producing null'"`
	NoEnv  bool `cli:"name=noenv desc='do not fall back to process environment variables for unresolved substitutions'"`
	Color  bool `cli:"name=color desc='force ANSI color output'"`

	Out      string
	CloseOut func() error

	Root *cli.Command
	JSON *cli.Command
	Get  *cli.Command
	Diff *cli.Command
}

func (cfg *RootConfig) loaderOpts() []hocon.LoaderOption {
	return []hocon.LoaderOption{
		hocon.WithStrict(cfg.Strict),
		hocon.WithSystemEnv(!cfg.NoEnv),
	}
}

func (cfg *RootConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
