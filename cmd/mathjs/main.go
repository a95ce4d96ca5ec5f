// Command mathjs evaluates elementwise math functions over JSON values.
package main

import (
	"fmt"
	"os"

	"github.com/sonphnt/mathjs/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mathjs:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
