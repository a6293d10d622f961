// Command pgqlir parses, prints, validates and lowers PGQL expressions.
package main

import (
	"os"

	"github.com/roach88/pgqlir/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
