package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
)

func writeManifest(t *testing.T, dir, name, deps string) {
	t.Helper()
	pluginDir := filepath.Join(dir, name)
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	doc := "name: " + name + "\nversion: 1.0.0\nprovides:\n  - kind: source-files\n    path: src\n"
	if deps != "" {
		doc += deps
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDiscoverNonExistentRoot(t *testing.T) {
	found, err := Discover(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("expected no error for missing root, got %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("expected no plugins, got %v", found)
	}
}

func TestDiscoverFindsPlugins(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "alpha", "")
	writeManifest(t, root, "beta", "")

	found, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 plugins, got %d: %+v", len(found), found)
	}
	if found[0].Manifest.Name != "alpha" || found[1].Manifest.Name != "beta" {
		t.Fatalf("expected alpha then beta, got %s then %s", found[0].Manifest.Name, found[1].Manifest.Name)
	}
}

func TestDiscoverSkipsDirectoriesWithoutManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "alpha", "")
	if err := os.MkdirAll(filepath.Join(root, "not-a-plugin"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	found, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(found) != 1 || found[0].Manifest.Name != "alpha" {
		t.Fatalf("expected only alpha, got %+v", found)
	}
}

func TestDiscoverAggregatesParseFailures(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "alpha", "")
	badDir := filepath.Join(root, "broken")
	if err := os.MkdirAll(badDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "plugin.yaml"), []byte("name: Bad_Name\nversion: 1.0.0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	found, err := Discover(root)
	if err == nil {
		t.Fatalf("expected aggregated error for broken manifest")
	}
	if _, ok := err.(*multierror.Error); !ok {
		t.Fatalf("expected *multierror.Error, got %T", err)
	}
	if len(found) != 1 || found[0].Manifest.Name != "alpha" {
		t.Fatalf("expected alpha to still be discovered, got %+v", found)
	}
}

func TestDiscoverSortedOrdersByDependency(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "alpha", "dependencies:\n  beta:\n    git: https://example.com/beta.git\n")
	writeManifest(t, root, "beta", "")

	found, err := DiscoverSorted(root)
	if err != nil {
		t.Fatalf("DiscoverSorted: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 plugins, got %+v", found)
	}
	if found[0].Manifest.Name != "beta" || found[1].Manifest.Name != "alpha" {
		t.Fatalf("expected beta before alpha, got %s then %s", found[0].Manifest.Name, found[1].Manifest.Name)
	}
}
