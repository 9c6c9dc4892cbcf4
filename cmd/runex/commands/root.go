package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd is the whole CLI: runex takes an example identifier plus the
// example's own arguments. Flag parsing is disabled so anything after the
// identifier passes through to the example untouched.
var rootCmd = &cobra.Command{
	Use:   "runex [--dry-run] <example> [example args...]",
	Short: "Resolve and launch bundled example programs",
	Long: `Runex resolves a short example class or script name inside a multi-module
checkout and launches it through the runtime's submission tool.

It locates the module owning the example, finds the built tests jar,
queries the build tool for the module and binary-compatibility versions,
composes the dependency coordinate, and replaces itself with the
submission command.

Examples:
  # Launch a compiled-class example, passing its own arguments through
  runex org.apache.spark.examples.sql.streaming.JavaStructuredKafkaWordCount host:9092 subscribe topic

  # Launch a script-style example
  runex sql/streaming/structured_kafka_wordcount.py host:9092 subscribe topic

  # Show the assembled command without running it
  runex --dry-run org.apache.spark.examples.SparkPi 100`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runExample,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
