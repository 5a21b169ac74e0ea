// Command nanoktl runs scripted kernel demo scenarios as a host-simulator
// CLI, for manual inspection without writing a Go test.
package main

import (
	"fmt"
	"os"

	"nanokern/cmd/nanoktl/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
