// Package launch assembles the final submission command and hands the
// process over to it.
package launch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spark-examples/runex/internal/config"
)

// Submission is the terminal action of a run: the argument vector to replace
// this process with, plus any environment additions for the child.
type Submission struct {
	// ID identifies this submission in echoed output.
	ID string

	// Argv is the full command, Argv[0] being the submission tool.
	Argv []string

	// ExtraEnv is merged over the inherited environment before handoff.
	ExtraEnv map[string]string
}

// ForClass builds the submission for a compiled-class example:
// submit --packages <coordinate> --class <className> <artifactPath> [args...]
func ForClass(cfg config.Config, home, coord, className, artifactPath string, args []string) Submission {
	argv := []string{
		filepath.Join(home, cfg.SubmitRelPath),
		"--packages", coord,
		"--class", className,
		artifactPath,
	}
	argv = append(argv, args...)

	return Submission{ID: uuid.New().String(), Argv: argv}
}

// ForScript builds the submission for a script-style example:
// submit --packages <coordinate> <scriptPath> [args...]
// with the interpreter search-path variable populated from every script-root
// directory discovered under the project root.
func ForScript(cfg config.Config, home, root, coord, scriptPath string, args []string) (Submission, error) {
	searchPath, err := scriptSearchPath(root, cfg)
	if err != nil {
		return Submission{}, err
	}

	argv := []string{
		filepath.Join(home, cfg.SubmitRelPath),
		"--packages", coord,
		scriptPath,
	}
	argv = append(argv, args...)

	sub := Submission{ID: uuid.New().String(), Argv: argv}
	if searchPath != "" {
		sub.ExtraEnv = map[string]string{cfg.ScriptPathEnv: searchPath}
	}
	return sub, nil
}

// CommandLine returns the echoable form of the command.
func (s Submission) CommandLine() string {
	return strings.Join(s.Argv, " ")
}

// ShortID returns a compact form of the submission ID for display.
func (s Submission) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}

// scriptSearchPath collects every directory under root whose base name is a
// configured script root, sorted, joined with the path-list separator, and
// prefixed onto any existing value of the search-path variable.
func scriptSearchPath(root string, cfg config.Config) (string, error) {
	wanted := make(map[string]bool, len(cfg.ScriptRoots))
	for _, name := range cfg.ScriptRoots {
		wanted[name] = true
	}

	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && wanted[d.Name()] {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to discover script roots under %s: %w", root, err)
	}
	sort.Strings(dirs)

	if existing := os.Getenv(cfg.ScriptPathEnv); existing != "" {
		dirs = append(dirs, existing)
	}

	return strings.Join(dirs, string(os.PathListSeparator)), nil
}
