package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoCodeAlone/pluginhub/manifest"
)

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Plugin directory containing plugin.yaml")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pluginctl add -dir <plugin-dir> <name> <git-url>[@ref]\n\nAdd a dependency declaration to a plugin's manifest.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("dependency name and git-url are required")
	}

	depName := fs.Arg(0)
	gitURL, ref := parseGitRef(fs.Arg(1))

	manifestPath := filepath.Join(*dir, manifest.ManifestFileName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", manifestPath, err)
	}

	m, err := manifest.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", manifestPath, err)
	}

	if err := m.Dependencies.Set(depName, manifest.DependencySpec{Git: gitURL, Ref: ref}); err != nil {
		return err
	}

	out, err := manifest.Serialize(m)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", manifestPath, err)
	}
	if err := os.WriteFile(manifestPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", manifestPath, err)
	}

	fmt.Printf("added dependency %s -> %s to %s\n", depName, fs.Arg(1), manifestPath)
	return nil
}

// parseGitRef splits "url@ref" into (url, ref). An "@" in the host part of
// an SSH-style URL (git@host:org/repo.git) is not treated as a ref
// separator; only an "@" appearing after the last path separator is.
func parseGitRef(arg string) (url, ref string) {
	lastSlash := strings.LastIndexAny(arg, "/:")
	at := strings.LastIndex(arg, "@")
	if at > lastSlash {
		return arg[:at], arg[at+1:]
	}
	return arg, ""
}
