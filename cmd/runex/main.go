package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spark-examples/runex/cmd/runex/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	if err := commands.Execute(); err != nil {
		// Usage has already been printed; anything else gets one line.
		if !errors.Is(err, commands.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
