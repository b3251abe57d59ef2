package resolver

import (
	"fmt"
	"strings"

	"github.com/GoCodeAlone/pluginhub/manifest"
)

// CycleError reports a dependency cycle found while computing an
// installation order.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("resolver: dependency cycle: %s", strings.Join(e.Cycle, " -> "))
}

// visitState tracks a node's position in the tri-state DFS used by
// InstallationOrder: unvisited, in progress (on the current path), or done.
type visitState int

const (
	unvisited visitState = iota
	inProgress
	done
)

// InstallationOrder topologically sorts plugins so that every plugin
// appears after all of the other supplied plugins it depends on. The
// result is deterministic for a given input order: ties are broken by the
// order plugins appear in the input slice. Dependencies on plugins absent
// from the input are ignored (they are not this function's concern; see
// CheckDependencies). A cycle among the supplied plugins is reported as a
// *CycleError.
func InstallationOrder(plugins []*manifest.PluginManifest) ([]*manifest.PluginManifest, error) {
	byName := make(map[string]*manifest.PluginManifest, len(plugins))
	for _, p := range plugins {
		byName[p.Name] = p
	}

	state := make(map[string]visitState, len(plugins))
	var currentPath []string
	result := make([]*manifest.PluginManifest, 0, len(plugins))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case inProgress:
			cycleStart := 0
			for i, n := range currentPath {
				if n == name {
					cycleStart = i
					break
				}
			}
			cycle := append(append([]string{}, currentPath[cycleStart:]...), name)
			return &CycleError{Cycle: cycle}
		case done:
			return nil
		}

		state[name] = inProgress
		currentPath = append(currentPath, name)

		p := byName[name]
		for _, depName := range p.Dependencies.Names() {
			if _, present := byName[depName]; !present {
				continue
			}
			if err := visit(depName); err != nil {
				return err
			}
		}

		state[name] = done
		currentPath = currentPath[:len(currentPath)-1]
		result = append(result, p)
		return nil
	}

	for _, p := range plugins {
		if state[p.Name] == unvisited {
			if err := visit(p.Name); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}
