package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spark-examples/runex/internal/buildtool"
	"github.com/spark-examples/runex/internal/config"
	"github.com/spark-examples/runex/internal/coordinate"
	"github.com/spark-examples/runex/internal/launch"
	"github.com/spark-examples/runex/internal/printer"
	"github.com/spark-examples/runex/internal/resolver"
	"github.com/spf13/cobra"
)

// ErrUsage marks invocations rejected after usage text was already printed.
// main exits 1 on it without printing anything further.
var ErrUsage = errors.New("usage shown")

func runExample(cmd *cobra.Command, args []string) error {
	// Flag parsing is disabled, so runex's own few flags are picked off by
	// hand before anything is forwarded to the example.
	dryRun := false
	if len(args) > 0 && args[0] == "--dry-run" {
		dryRun = true
		args = args[1:]
	}

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		_ = cmd.Usage()
		return ErrUsage
	}
	if args[0] == "--version" {
		printer.Info("%s\n", cmd.Root().Version)
		return nil
	}

	root, err := projectRoot()
	if err != nil {
		return err
	}

	return launchExample(cmd, root, buildtool.ExecRunner{}, launch.Submission.Exec, dryRun, args[0], args[1:])
}

// launchExample is the resolution pipeline proper. The project root, the
// build-tool runner, and the final exec step are parameters so the whole
// pipeline can be exercised against a fixture checkout.
func launchExample(cmd *cobra.Command, root string, runner buildtool.Runner, execFn func(launch.Submission) error, dryRun bool, identifier string, exampleArgs []string) error {
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	// Phase 1: environment precondition
	home, err := cfg.RuntimeHome()
	if err != nil {
		return printer.Error(
			err.Error(),
			fmt.Sprintf("runex needs %s to point at the runtime installation containing %s.",
				cfg.RuntimeHomeEnv, cfg.SubmitRelPath),
			[]string{fmt.Sprintf("Set it first:\n  export %s=/path/to/installation", cfg.RuntimeHomeEnv)},
		)
	}

	// Phase 2: module resolution (source tree, compiled classes, package prefix)
	module, err := resolver.ResolveModule(root, identifier, cfg)
	if err != nil {
		if resolver.IsModuleNotFound(err) {
			perr := printer.ErrorWithContext(
				fmt.Sprintf("could not find module for example '%s'", identifier),
				"No source, compiled-class, or package-level match in the checkout.",
				map[string]string{"Searched": root},
				[]string{
					"Check the spelling against the example sources",
					"Use the fully qualified class name, or the script path for script examples",
				},
			)
			fmt.Fprintln(os.Stderr)
			_ = cmd.Usage()
			return perr
		}
		return err
	}

	// Phase 3: built test artifact
	artifact, err := resolver.FindTestArtifact(module, cfg)
	if err != nil {
		if resolver.IsArtifactNotFound(err) {
			return printer.ErrorWithContext(
				fmt.Sprintf("no built test artifact for module '%s'", module.Name),
				"The example bundle has not been built yet.",
				map[string]string{
					"Module":   module.Path,
					"Expected": fmt.Sprintf("*%s*%s", filepath.Base(module.Name), cfg.ArtifactSuffix),
				},
				[]string{fmt.Sprintf("Build and install first:\n  %s install", cfg.BuildTool)},
			)
		}
		return err
	}

	// Phase 4: version queries
	querier := &buildtool.Querier{Tool: cfg.BuildTool, Runner: runner}

	moduleVersion, err := querier.Query(module.Path, cfg.VersionProperty)
	if err != nil {
		return versionError(cfg, module, cfg.VersionProperty, err)
	}

	binaryVersion, err := querier.Query(module.Path, cfg.BinaryVersionProperty)
	if err != nil {
		return versionError(cfg, module, cfg.BinaryVersionProperty, err)
	}

	// Phase 5: coordinate and command assembly
	coord := coordinate.ForModule(cfg, module.Name, binaryVersion, moduleVersion)

	var sub launch.Submission
	if strings.HasSuffix(identifier, cfg.ScriptExtension) {
		sub, err = launch.ForScript(cfg, home, root, coord.String(), module.ExamplePath, exampleArgs)
		if err != nil {
			return err
		}
	} else {
		sub = launch.ForClass(cfg, home, coord.String(), identifier, artifact, exampleArgs)
	}

	// Phase 6: echo and hand off
	printer.Step("submission %s\n", sub.ShortID())
	printer.Command(sub.CommandLine())

	if dryRun {
		keys := make([]string, 0, len(sub.ExtraEnv))
		for key := range sub.ExtraEnv {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			printer.Info("%s=%s\n", key, sub.ExtraEnv[key])
		}
		return nil
	}

	return execFn(sub)
}

// versionError turns an unusable build-tool query into an actionable
// diagnostic instead of letting a malformed coordinate reach the submission
// tool.
func versionError(cfg config.Config, module resolver.Module, property string, err error) error {
	if buildtool.IsUnavailable(err) {
		return printer.Error(
			fmt.Sprintf("could not determine %s for module '%s'", property, module.Name),
			"The build tool returned no usable value, so the dependency coordinate cannot be composed.",
			[]string{fmt.Sprintf("Verify the property prints a value:\n  cd %s && %s help:evaluate -Dexpression=%s",
				module.Path, cfg.BuildTool, property)},
		)
	}
	return err
}

// projectRoot derives the checkout root from the binary's own location,
// stepping out of a bin/ directory when installed there.
func projectRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}

	dir := filepath.Dir(exe)
	if filepath.Base(dir) == "bin" {
		dir = filepath.Dir(dir)
	}
	return dir, nil
}
