package manifest

import "fmt"

// InstalledSet is the closed set of plugin names known to be present,
// consulted by the resolver to decide whether a dependency is already
// satisfied. It is immutable once constructed: a plugin is either
// discovered and installed, or it is not part of this run.
type InstalledSet struct {
	names map[string]bool
}

// NewInstalledSet builds an InstalledSet from a list of plugin names,
// rejecting duplicates so the set's invariant (every member appears once)
// holds from construction onward.
func NewInstalledSet(names []string) (InstalledSet, error) {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if set[name] {
			return InstalledSet{}, fmt.Errorf("manifest: duplicate installed plugin %q", name)
		}
		set[name] = true
	}
	return InstalledSet{names: set}, nil
}

// Has reports whether name is a member of the installed set.
func (s InstalledSet) Has(name string) bool {
	return s.names[name]
}

// Len returns the number of installed plugins.
func (s InstalledSet) Len() int {
	return len(s.names)
}
