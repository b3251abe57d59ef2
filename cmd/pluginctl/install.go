package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GoCodeAlone/pluginhub/discovery"
	"github.com/GoCodeAlone/pluginhub/fetcher"
	"github.com/GoCodeAlone/pluginhub/gitfetcher"
	"github.com/GoCodeAlone/pluginhub/manifest"
	"github.com/GoCodeAlone/pluginhub/pluginctlconfig"
	"github.com/GoCodeAlone/pluginhub/resolver"
)

// cycleExitError and fetchExitError mark errors for exit-code
// classification in main's dispatch.
type cycleExitError struct{ err error }

func (e *cycleExitError) Error() string { return e.err.Error() }
func (e *cycleExitError) Unwrap() error { return e.err }

type fetchExitError struct{ err error }

func (e *fetchExitError) Error() string { return e.err.Error() }
func (e *fetchExitError) Unwrap() error { return e.err }

func runInstall(args []string) error {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	root := fs.String("root", "", "Install root (defaults to the configured install_root)")
	dir := fs.String("dir", "", "Install dependencies for a single plugin directory instead of every discovered plugin")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pluginctl install [options]\n\nResolve and fetch missing dependencies for installed plugins.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := pluginctlconfig.Load(pluginctlconfig.FileName)
	if err != nil {
		return err
	}
	installRoot := *root
	if installRoot == "" {
		installRoot = cfg.InstallRoot
	}

	plugins, discErr := discovery.Discover(installRoot)
	if discErr != nil {
		fmt.Fprintf(os.Stderr, "warning: discovery reported errors: %v\n", discErr)
	}

	names := make([]string, 0, len(plugins))
	for _, p := range plugins {
		names = append(names, p.Manifest.Name)
	}
	installed, err := manifest.NewInstalledSet(names)
	if err != nil {
		return err
	}

	var targets []discovery.DiscoveredPlugin
	if *dir != "" {
		manifestPath := filepath.Join(*dir, manifest.ManifestFileName)
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", manifestPath, err)
		}
		m, err := manifest.Parse(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", manifestPath, err)
		}
		targets = []discovery.DiscoveredPlugin{{Manifest: m, Path: *dir}}
	} else {
		targets = plugins
	}

	targetManifests := make([]*manifest.PluginManifest, 0, len(targets))
	for _, t := range targets {
		targetManifests = append(targetManifests, t.Manifest)
	}
	orderedTargets, err := resolver.InstallationOrder(targetManifests)
	if err != nil {
		return &cycleExitError{err: err}
	}

	gf := &gitfetcher.Fetcher{AuthToken: cfg.AuthToken}

	var pending []resolver.PendingInstall
	for _, target := range orderedTargets {
		report := resolver.Resolve(target, installed)
		if !report.IsResolved() {
			for _, c := range report.Conflicts {
				fmt.Fprintf(os.Stderr, "conflict: %s: %s declares a dependency on itself\n", target.Name, c.Name)
			}
			continue
		}
		pending = append(pending, report.ToInstall...)
	}

	if len(pending) == 0 {
		fmt.Println("nothing to install")
		return nil
	}

	order, err := installOrder(pending)
	if err != nil {
		return &cycleExitError{err: err}
	}

	ctx := context.Background()
	for _, p := range order {
		dest := filepath.Join(installRoot, p.Name)
		ref := p.Spec.Ref
		if ref == "" {
			ref = cfg.DefaultRef
		}
		fmt.Fprintf(os.Stderr, "fetching %s (%s@%s) -> %s\n", p.Name, p.Spec.Git, ref, dest)
		if err := gf.Fetch(ctx, p.Spec.Git, ref, dest); err != nil {
			var ferr *fetcher.FetchError
			if fe, ok := err.(*fetcher.FetchError); ok {
				ferr = fe
			}
			if ferr != nil && ferr.Kind == fetcher.ErrDestinationExists {
				fmt.Fprintf(os.Stderr, "%s already present, skipping\n", p.Name)
				continue
			}
			return &fetchExitError{err: fmt.Errorf("fetch %s: %w", p.Name, err)}
		}
	}

	fmt.Printf("installed %d dependenc(ies)\n", len(order))
	return nil
}

// installOrder dedupes a batch's pending installs by name, preserving
// first-seen order (the order the resolver already produced them in).
func installOrder(pending []resolver.PendingInstall) ([]resolver.PendingInstall, error) {
	seen := make(map[string]bool, len(pending))
	var deduped []resolver.PendingInstall
	for _, p := range pending {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		deduped = append(deduped, p)
	}
	return deduped, nil
}
