package launch

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"
)

// Exec replaces the current process image with the submission command. The
// child inherits the standard streams and its exit code becomes ours; on
// success this never returns.
func (s Submission) Exec() error {
	path, err := exec.LookPath(s.Argv[0])
	if err != nil {
		return fmt.Errorf("submission tool not found: %w", err)
	}

	if err := syscall.Exec(path, s.Argv, s.environ()); err != nil {
		return fmt.Errorf("failed to exec %s: %w", path, err)
	}
	return nil
}

// environ merges ExtraEnv over the inherited environment.
func (s Submission) environ() []string {
	env := os.Environ()
	if len(s.ExtraEnv) == 0 {
		return env
	}

	pending := make(map[string]string, len(s.ExtraEnv))
	for key, value := range s.ExtraEnv {
		pending[key] = value
	}

	for i, entry := range env {
		key, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if value, replace := pending[key]; replace {
			env[i] = key + "=" + value
			delete(pending, key)
		}
	}

	// Deterministic order for anything not already present.
	keys := make([]string, 0, len(pending))
	for key := range pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		env = append(env, key+"="+pending[key])
	}

	return env
}
