package main

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/hocon-go/hocon/encode"
)

// encOpts decides whether to color w's output: an explicit -color flag
// wins, otherwise color defaults on only when w is a terminal.
func (cfg *RootConfig) encOpts(w io.Writer) []encode.Option {
	if cfg.Color {
		return []encode.Option{encode.WithColor(encode.NewColors())}
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return []encode.Option{encode.WithColor(encode.NewColors())}
	}
	return nil
}

// out resolves the writer a subcommand should actually write to: the
// color decision is made against the raw *os.File (so redirection to a
// file or pipe is detected correctly), then os.Stdout specifically is
// wrapped so the resulting ANSI escapes still render on Windows consoles.
func (cfg *RootConfig) out(cc *cli.Context) (io.Writer, []encode.Option) {
	var w io.Writer = cc.Out
	opts := cfg.encOpts(w)
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		w = colorable.NewColorableStdout()
	}
	return w, opts
}
