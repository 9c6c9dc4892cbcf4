// Package buildtool queries project metadata from the build tool, hiding its
// noisy log output behind a clean value-or-unavailable interface.
package buildtool

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnavailable indicates the build tool produced no usable value for a
// queried property. Resolution must treat this as a hard failure rather than
// composing a malformed dependency coordinate from it.
var ErrUnavailable = errors.New("build tool value unavailable")

// Runner executes the build tool and returns its combined standard output.
type Runner interface {
	Run(dir string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs the build tool as a child process.
type ExecRunner struct{}

func (ExecRunner) Run(dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		if _, ok := err.(*exec.Error); ok {
			return nil, fmt.Errorf("%s not found in PATH\nExample resolution needs the build tool to query project versions.", name)
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return output, nil
}

// Querier evaluates build properties via the tool's metadata facility.
type Querier struct {
	Tool   string
	Runner Runner
}

// NewQuerier creates a Querier that shells out to the given build tool.
func NewQuerier(tool string) *Querier {
	return &Querier{Tool: tool, Runner: ExecRunner{}}
}

// Query evaluates a single property in the given module directory. The tool
// interleaves log lines with the value, so output is filtered down to value
// candidates and the last survivor wins. Empty or implausible output yields
// ErrUnavailable.
func (q *Querier) Query(dir, property string) (string, error) {
	output, err := q.Runner.Run(dir, q.Tool, "help:evaluate", "-Dexpression="+property)
	if err != nil {
		return "", err
	}

	value := ""
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isLogLine(line) {
			continue
		}
		value = line
	}

	// Maven reports undefined properties as "null object or invalid
	// expression"; any whitespace marks the survivor as prose, not a value.
	if value == "" || value == "null" || strings.ContainsAny(value, " \t") {
		return "", fmt.Errorf("no usable value for %s: %w", property, ErrUnavailable)
	}

	return value, nil
}

// isLogLine reports whether a line is build-tool chatter rather than a value.
func isLogLine(line string) bool {
	return strings.HasPrefix(line, "[") || strings.HasPrefix(line, "Download")
}

// IsUnavailable checks whether an error stems from an unusable query result.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
