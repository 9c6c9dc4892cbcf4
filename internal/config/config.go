package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OverrideFile is the optional per-checkout configuration file, looked up
// relative to the project root.
const OverrideFile = ".runex.yml"

// Config carries every constant the resolution pipeline depends on. It is
// populated once at startup (defaults, optionally overlaid with .runex.yml)
// and passed explicitly through the pipeline; nothing reads it ambiently.
type Config struct {
	// RuntimeHomeEnv names the environment variable that points at the
	// runtime installation (the directory containing the submission tool).
	RuntimeHomeEnv string `yaml:"runtime_home_env"`

	// BuildTool is the build-tool executable used for metadata queries.
	BuildTool string `yaml:"build_tool"`

	// SubmitRelPath is the submission tool's path relative to the runtime home.
	SubmitRelPath string `yaml:"submit_tool"`

	// SourceMarker is the directory fragment that identifies an example
	// source tree inside a module (e.g. "examples/src").
	SourceMarker string `yaml:"source_marker"`

	// TargetMarker is the build-output directory name searched for compiled
	// classes when the source probe misses (e.g. inner classes).
	TargetMarker string `yaml:"target_marker"`

	// ArtifactSuffix is the filename suffix of the test artifact that bundles
	// the examples.
	ArtifactSuffix string `yaml:"artifact_suffix"`

	// Group and ArtifactPrefix form the dependency coordinate:
	// group:prefix-<module>_<binaryVersion>:<version>.
	Group          string `yaml:"group"`
	ArtifactPrefix string `yaml:"artifact_prefix"`

	// ScriptExtension marks script-style examples (submitted by path rather
	// than by class name).
	ScriptExtension string `yaml:"script_extension"`

	// ScriptRoots are directory base names whose occurrences under the
	// project root are added to ScriptPathEnv for script-style examples.
	ScriptRoots []string `yaml:"script_roots"`

	// ScriptPathEnv is the interpreter search-path variable exported to the
	// submission tool for script-style examples.
	ScriptPathEnv string `yaml:"script_path_env"`

	// VersionProperty and BinaryVersionProperty are the build-tool
	// expressions queried for the module release version and the companion
	// runtime's binary-compatibility version.
	VersionProperty       string `yaml:"version_property"`
	BinaryVersionProperty string `yaml:"binary_version_property"`
}

// Default returns the stock configuration for a Spark-style extensions
// checkout built with Maven.
func Default() Config {
	return Config{
		RuntimeHomeEnv:        "SPARK_HOME",
		BuildTool:             "mvn",
		SubmitRelPath:         filepath.Join("bin", "spark-submit"),
		SourceMarker:          "examples/src",
		TargetMarker:          "target",
		ArtifactSuffix:        "-tests.jar",
		Group:                 "org.apache.bahir",
		ArtifactPrefix:        "spark",
		ScriptExtension:       ".py",
		ScriptRoots:           []string{"python"},
		ScriptPathEnv:         "PYTHONPATH",
		VersionProperty:       "project.version",
		BinaryVersionProperty: "scala.binary.version",
	}
}

// Load returns the defaults overlaid with the checkout's .runex.yml, if one
// exists at projectRoot. A missing override file is not an error; a malformed
// or invalid one is.
func Load(projectRoot string) (Config, error) {
	cfg := Default()

	path := filepath.Join(projectRoot, OverrideFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", OverrideFile, err)
	}

	// Unmarshalling onto the defaults keeps every field the file does not set.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", OverrideFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", OverrideFile, err)
	}

	return cfg, nil
}

// Validate performs strict validation on the configuration.
func (c *Config) Validate() error {
	required := map[string]string{
		"runtime_home_env":        c.RuntimeHomeEnv,
		"build_tool":              c.BuildTool,
		"submit_tool":             c.SubmitRelPath,
		"source_marker":           c.SourceMarker,
		"target_marker":           c.TargetMarker,
		"artifact_suffix":         c.ArtifactSuffix,
		"group":                   c.Group,
		"artifact_prefix":         c.ArtifactPrefix,
		"script_extension":        c.ScriptExtension,
		"script_path_env":         c.ScriptPathEnv,
		"version_property":        c.VersionProperty,
		"binary_version_property": c.BinaryVersionProperty,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
	}

	if len(c.ScriptRoots) == 0 {
		return fmt.Errorf("script_roots must list at least one directory name")
	}
	for _, root := range c.ScriptRoots {
		if root == "" || strings.ContainsRune(root, os.PathSeparator) {
			return fmt.Errorf("script_roots entries must be bare directory names, got %q", root)
		}
	}

	if !strings.HasPrefix(c.ScriptExtension, ".") {
		return fmt.Errorf("script_extension must start with '.', got %q", c.ScriptExtension)
	}

	if !strings.HasPrefix(c.ArtifactSuffix, "-") && !strings.HasPrefix(c.ArtifactSuffix, ".") {
		return fmt.Errorf("artifact_suffix must start with '-' or '.', got %q", c.ArtifactSuffix)
	}

	// Coordinate pieces end up in a colon-separated string; whitespace would
	// silently corrupt it.
	for field, value := range map[string]string{"group": c.Group, "artifact_prefix": c.ArtifactPrefix} {
		if strings.ContainsAny(value, " \t") {
			return fmt.Errorf("%s must not contain whitespace, got %q", field, value)
		}
	}

	return nil
}

// RuntimeHome reads the runtime installation root from the environment and
// verifies it names an existing directory.
func (c Config) RuntimeHome() (string, error) {
	home := os.Getenv(c.RuntimeHomeEnv)
	if home == "" {
		return "", fmt.Errorf("%s is not set", c.RuntimeHomeEnv)
	}

	info, err := os.Stat(home)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s points at %s, which does not exist", c.RuntimeHomeEnv, home)
		}
		return "", fmt.Errorf("failed to check %s: %w", home, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s points at %s, which is not a directory", c.RuntimeHomeEnv, home)
	}

	return home, nil
}
