// Package discovery scans an installation root for plugin directories,
// each identified by a manifest file at its top level.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/GoCodeAlone/pluginhub/manifest"
	"github.com/GoCodeAlone/pluginhub/resolver"
)

// DiscoveredPlugin pairs a parsed manifest with the directory it was found
// in.
type DiscoveredPlugin struct {
	Manifest *manifest.PluginManifest
	Path     string
}

// DiscoveryError reports one plugin directory's manifest that failed to
// load, identified by the directory it was found in.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return "discovery: " + e.Path + ": " + e.Err.Error()
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// Discover scans the immediate subdirectories of root for a
// manifest.ManifestFileName file, parsing each one found. A root that does
// not exist yields an empty result, not an error. Individual plugins whose
// manifest fails to load are skipped and their failures aggregated into
// the returned error rather than aborting the scan; callers that only care
// about the successfully discovered plugins can ignore a non-nil error.
//
// Results are ordered by directory entry name, matching os.ReadDir's own
// sorted order.
func Discover(root string) ([]DiscoveredPlugin, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var found []DiscoveredPlugin
	var errs *multierror.Error

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pluginDir := filepath.Join(root, entry.Name())
		manifestPath := filepath.Join(pluginDir, manifest.ManifestFileName)

		data, err := os.ReadFile(manifestPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			errs = multierror.Append(errs, &DiscoveryError{Path: pluginDir, Err: err})
			continue
		}

		m, err := manifest.Parse(data)
		if err != nil {
			errs = multierror.Append(errs, &DiscoveryError{Path: pluginDir, Err: err})
			continue
		}

		found = append(found, DiscoveredPlugin{Manifest: m, Path: pluginDir})
	}

	return found, errs.ErrorOrNil()
}

// DiscoverSorted discovers plugins under root and additionally orders the
// result by topological dependency position: a plugin always appears after
// every other discovered plugin it depends on.
func DiscoverSorted(root string) ([]DiscoveredPlugin, error) {
	found, err := Discover(root)
	if err != nil {
		if _, ok := err.(*multierror.Error); !ok {
			// A plain error here means root could not even be read;
			// there is nothing to sort.
			return nil, err
		}
	}

	byName := make(map[string]DiscoveredPlugin, len(found))
	manifests := make([]*manifest.PluginManifest, 0, len(found))
	for _, d := range found {
		byName[d.Manifest.Name] = d
		manifests = append(manifests, d.Manifest)
	}

	ordered, orderErr := resolver.InstallationOrder(manifests)
	if orderErr != nil {
		return found, orderErr
	}

	sortedByName := make(map[string]int, len(ordered))
	for i, m := range ordered {
		sortedByName[m.Name] = i
	}
	result := make([]DiscoveredPlugin, len(found))
	copy(result, found)
	sort.SliceStable(result, func(i, j int) bool {
		return sortedByName[result[i].Manifest.Name] < sortedByName[result[j].Manifest.Name]
	})

	return result, err
}
