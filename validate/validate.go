// Package validate checks invariants that span the whole set of discovered
// plugins, rather than a single manifest in isolation.
package validate

import (
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/GoCodeAlone/pluginhub/discovery"
)

// DuplicateError reports two discovered plugin directories declaring the
// same name.
type DuplicateError struct {
	Name  string
	PathA string
	PathB string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("validate: duplicate plugin name %q at %s and %s", e.Name, e.PathA, e.PathB)
}

// DanglingWarning reports a declared dependency that is not present among
// the discovered plugins. This is not fatal: the dependency may be
// installed separately, or resolved by a later install step.
type DanglingWarning struct {
	Plugin  string
	DepName string
}

func (w *DanglingWarning) String() string {
	return fmt.Sprintf("%s depends on undiscovered plugin %q", w.Plugin, w.DepName)
}

// SemverWarning flags a version string that does not parse as well-formed
// semver. It is never promoted to an error: version comparison and
// range solving are outside this package's concern.
type SemverWarning struct {
	Plugin  string
	Field   string
	Version string
}

func (w *SemverWarning) String() string {
	return fmt.Sprintf("%s: %s %q is not a well-formed semantic version", w.Plugin, w.Field, w.Version)
}

// Report is the outcome of validating a discovered plugin set.
type Report struct {
	Errors        []*DuplicateError
	DanglingWarns []*DanglingWarning
	SemverWarns   []*SemverWarning
}

// IsValid reports whether the set has no duplicate-name errors. Warnings
// (dangling dependencies, malformed semver) never affect validity.
func (r *Report) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate checks plugins for duplicate names and dangling dependencies,
// and flags version strings that are not well-formed semver.
func Validate(plugins []discovery.DiscoveredPlugin) *Report {
	report := &Report{}

	seen := make(map[string]string, len(plugins))
	names := make(map[string]bool, len(plugins))
	for _, p := range plugins {
		names[p.Manifest.Name] = true
	}

	for _, p := range plugins {
		name := p.Manifest.Name
		if existingPath, ok := seen[name]; ok {
			report.Errors = append(report.Errors, &DuplicateError{Name: name, PathA: existingPath, PathB: p.Path})
		} else {
			seen[name] = p.Path
		}

		for _, depName := range p.Manifest.Dependencies.Names() {
			if !names[depName] {
				report.DanglingWarns = append(report.DanglingWarns, &DanglingWarning{Plugin: name, DepName: depName})
			}
		}

		checkSemver(report, name, "version", p.Manifest.Version)
		for _, provide := range p.Manifest.Provides {
			if minVersion, ok := provide.RuntimeHint["min_version"].(string); ok {
				checkSemver(report, name, "runtime_hint.min_version", minVersion)
			}
		}
	}

	return report
}

func checkSemver(report *Report, plugin, field, version string) {
	if version == "" {
		return
	}
	v := version
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		report.SemverWarns = append(report.SemverWarns, &SemverWarning{Plugin: plugin, Field: field, Version: version})
	}
}
