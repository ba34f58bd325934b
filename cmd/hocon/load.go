package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hocon-go/hocon/hocon"
	"github.com/hocon-go/hocon/ir"
)

// loadArg resolves a single file argument (or "-" for stdin) into its final
// tree using cfg's loader options.
func loadArg(cfg *RootConfig, arg string) (*ir.Value, error) {
	l := hocon.NewLoader(cfg.loaderOpts()...)
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		l.LoadStr(string(data))
	} else {
		l.LoadFile(arg)
	}
	return l.Hocon()
}
