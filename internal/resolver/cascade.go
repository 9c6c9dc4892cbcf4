// Package resolver locates the module and built artifact that own an example,
// using an ordered cascade of filesystem probes.
package resolver

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spark-examples/runex/internal/config"
)

// Module is a resolved example-owning module inside the checkout.
type Module struct {
	// Path is the absolute module directory.
	Path string

	// Name is Path relative to the project root.
	Name string

	// ExamplePath is the concrete path the winning probe matched: the script
	// file for script-style examples, a source or class file otherwise.
	ExamplePath string
}

// Fragment converts an example identifier into the path fragment the probes
// search for. Script identifiers are already paths; dotted class names have
// their dots converted to path separators.
func Fragment(identifier string, cfg config.Config) string {
	if strings.HasSuffix(identifier, cfg.ScriptExtension) {
		return filepath.ToSlash(identifier)
	}
	return strings.ReplaceAll(identifier, ".", "/")
}

// ResolveModule finds the module directory owning the given example.
//
// Probes run in order, first success wins:
//  1. source tree: the fragment appears under a <SourceMarker> directory
//  2. compiled class: <fragment>.class appears under a <TargetMarker>
//     directory (covers inner classes, which never exist as path segments)
//  3. package prefix: probe 1 with the fragment's last segment dropped
//
// Each probe collects every match and takes the lexically smallest, so
// resolution does not depend on directory enumeration order.
func ResolveModule(root, identifier string, cfg config.Config) (Module, error) {
	fragment := Fragment(identifier, cfg)
	isScript := strings.HasSuffix(identifier, cfg.ScriptExtension)

	probes := []func() (match, bool, error){
		func() (match, bool, error) {
			return firstUnderMarker(root, cfg.SourceMarker, fragment)
		},
		func() (match, bool, error) {
			return firstUnderMarker(root, cfg.TargetMarker, fragment+".class")
		},
		func() (match, bool, error) {
			if isScript {
				return match{}, false, nil
			}
			pkg := packageFragment(fragment)
			if pkg == "" {
				return match{}, false, nil
			}
			return firstUnderMarker(root, cfg.SourceMarker, pkg)
		},
	}

	for _, probe := range probes {
		m, ok, err := probe()
		if err != nil {
			return Module{}, err
		}
		if !ok {
			continue
		}

		name, err := filepath.Rel(root, m.modulePath)
		if err != nil {
			return Module{}, fmt.Errorf("failed to derive module name: %w", err)
		}
		if name == "." {
			name = filepath.Base(m.modulePath)
		}

		return Module{Path: m.modulePath, Name: name, ExamplePath: m.fullPath}, nil
	}

	return Module{}, &ModuleNotFoundError{Identifier: identifier}
}

type match struct {
	// modulePath is the path truncated at the marker directory.
	modulePath string
	// fullPath is the complete matching path.
	fullPath string
}

// firstUnderMarker walks root for paths that pass through a directory matching
// marker and contain needle after it. Matches are sorted by full path and the
// first is returned; unreadable subtrees are skipped rather than fatal.
func firstUnderMarker(root, marker, needle string) (match, bool, error) {
	sep := "/" + marker + "/"

	var matches []match
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		slashed := filepath.ToSlash(path)
		idx := strings.Index(slashed, sep)
		if idx < 0 {
			return nil
		}
		if !strings.Contains(slashed[idx+len(sep):], needle) {
			return nil
		}

		matches = append(matches, match{
			modulePath: filepath.FromSlash(slashed[:idx]),
			fullPath:   path,
		})
		return nil
	})
	if err != nil {
		return match{}, false, fmt.Errorf("failed to search %s: %w", root, err)
	}

	if len(matches) == 0 {
		return match{}, false, nil
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].fullPath < matches[j].fullPath })
	return matches[0], true, nil
}

// packageFragment drops the final segment of a converted fragment, leaving
// the package portion, or returns "" when there is no package portion.
func packageFragment(fragment string) string {
	idx := strings.LastIndex(fragment, "/")
	if idx <= 0 {
		return ""
	}
	return fragment[:idx]
}
