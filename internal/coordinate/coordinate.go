// Package coordinate builds the dependency coordinate handed to the
// submission tool's package resolution.
package coordinate

import (
	"fmt"
	"path/filepath"

	"github.com/spark-examples/runex/internal/config"
)

// Coordinate is a group:artifact:version dependency descriptor.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s:%s:%s", c.Group, c.Artifact, c.Version)
}

// ForModule composes the coordinate for a resolved module:
// group:prefix-<module>_<binaryVersion>:<version>. Nested module names keep
// only their final path segment, matching the artifact naming convention.
func ForModule(cfg config.Config, moduleName, binaryVersion, version string) Coordinate {
	return Coordinate{
		Group:    cfg.Group,
		Artifact: fmt.Sprintf("%s-%s_%s", cfg.ArtifactPrefix, filepath.Base(moduleName), binaryVersion),
		Version:  version,
	}
}
