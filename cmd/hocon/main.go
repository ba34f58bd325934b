// Command hocon is a reference client for the hocon package: it loads a
// HOCON, JSON, or Java properties document, resolves substitutions, and
// renders or queries the result.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), RootCommand())
}
