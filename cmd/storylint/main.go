package main

import (
	"os"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

// run keeps the exit-code decision separate from os.Exit so deferred
// cleanup in the command tree is not skipped mid-test.
func run() int {
	if err := cli.Execute(); err != nil {
		// cobra already printed the error to stderr.
		return 1
	}
	return 0
}
