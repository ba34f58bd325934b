package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/hocon-go/hocon/encode"
)

type diffConfig struct {
	*RootConfig
	Cmd *cli.Command
}

// DiffCommand compares two resolved documents by rendering each as
// canonical JSON and running a text diff over the results. Exits non-zero
// if the two documents differ, matching diff(1) convention.
func DiffCommand(root *RootConfig) *cli.Command {
	cfg := &diffConfig{RootConfig: root}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff fileA fileB").
		WithDescription("Diff the canonical JSON of two resolved documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffMain(cfg, cc, args)
		})
	cfg.Cmd = cmd
	return cmd
}

func diffMain(cfg *diffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly 2 arguments", cli.ErrUsage)
	}
	a, err := loadArg(cfg.RootConfig, args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	b, err := loadArg(cfg.RootConfig, args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}
	textA := encode.MustString(a)
	textB := encode.MustString(b)
	if textA == textB {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(textA, textB, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	w, _ := cfg.out(cc)
	if _, err := fmt.Fprintln(w, dmp.DiffPrettyText(diffs)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
