// Package resolver computes what a plugin needs to become usable: which
// declared dependencies are already installed, which must be fetched, and
// the order dependencies fetched in the same batch must be installed in.
package resolver

import (
	"github.com/google/uuid"

	"github.com/GoCodeAlone/pluginhub/manifest"
)

// ConflictKind classifies an entry in a ResolutionReport's Conflicts list.
type ConflictKind string

// SelfDependency is the only conflict kind the core resolver raises: a
// plugin that declares itself as one of its own dependencies.
const SelfDependency ConflictKind = "self_dependency"

// Conflict reports a dependency declaration that cannot be satisfied no
// matter what else is installed.
type Conflict struct {
	Kind ConflictKind
	Name string
}

// PendingInstall is one dependency that must be fetched before the target
// plugin can be considered fully resolved.
type PendingInstall struct {
	Name string
	Spec manifest.DependencySpec
}

// ResolutionReport is the outcome of resolving one plugin's dependencies
// against a set of already-installed plugins.
type ResolutionReport struct {
	// ID correlates this report with log output; it carries no resolution
	// semantics of its own.
	ID uuid.UUID

	Target    string
	Satisfied []string
	ToInstall []PendingInstall
	Conflicts []Conflict
}

// IsResolved reports whether the target plugin's dependencies can all be
// satisfied, i.e. there are no unresolvable conflicts. Dependencies still
// pending installation do not make a report unresolved.
func (r *ResolutionReport) IsResolved() bool {
	return len(r.Conflicts) == 0
}

// Resolve computes a ResolutionReport for target against the given
// installed set. target's own name appearing among its dependencies is a
// self_dependency conflict. Every other declared dependency is classified
// as satisfied (present in installed) or pending installation (absent),
// in the order it was declared in target's manifest.
func Resolve(target *manifest.PluginManifest, installed manifest.InstalledSet) *ResolutionReport {
	report := &ResolutionReport{
		ID:     uuid.New(),
		Target: target.Name,
	}

	for _, name := range target.Dependencies.Names() {
		if name == target.Name {
			report.Conflicts = append(report.Conflicts, Conflict{Kind: SelfDependency, Name: name})
			continue
		}
		if installed.Has(name) {
			report.Satisfied = append(report.Satisfied, name)
			continue
		}
		spec, _ := target.Dependencies.Get(name)
		report.ToInstall = append(report.ToInstall, PendingInstall{Name: name, Spec: spec})
	}

	return report
}

// CheckDependencies returns the names of target's declared dependencies
// that are absent from installed, in declaration order, excluding
// target's own name. Unlike Resolve it does not distinguish a
// self-dependency from any other missing name; it simply never reports one.
func CheckDependencies(target *manifest.PluginManifest, installed manifest.InstalledSet) []string {
	var missing []string
	for _, name := range target.Dependencies.Names() {
		if name == target.Name {
			continue
		}
		if !installed.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
