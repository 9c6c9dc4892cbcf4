package resolver

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spark-examples/runex/internal/config"
)

// FindTestArtifact locates the built test artifact for a module: a file under
// the module subtree whose name contains the module's final path segment and
// ends with the configured artifact suffix. Matches are sorted and the first
// is returned, so the result does not depend on enumeration order.
func FindTestArtifact(module Module, cfg config.Config) (string, error) {
	// Nested module names contain path separators, which can never appear in
	// a filename; match on the final segment.
	needle := filepath.Base(module.Name)
	pattern := fmt.Sprintf("*%s*%s", needle, cfg.ArtifactSuffix)

	var matches []string
	err := filepath.WalkDir(module.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.Contains(name, needle) && strings.HasSuffix(name, cfg.ArtifactSuffix) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", module.Path, err)
	}

	if len(matches) == 0 {
		return "", &ArtifactNotFoundError{ModuleName: module.Name, Pattern: pattern}
	}

	sort.Strings(matches)
	return matches[0], nil
}
