package validate

import (
	"testing"

	"github.com/GoCodeAlone/pluginhub/discovery"
	"github.com/GoCodeAlone/pluginhub/manifest"
)

func discoveredWithDeps(name, version, path string, depNames ...string) discovery.DiscoveredPlugin {
	deps := manifest.NewDependencies()
	for _, d := range depNames {
		_ = deps.Set(d, manifest.DependencySpec{Git: "https://example.com/" + d + ".git"})
	}
	return discovery.DiscoveredPlugin{
		Manifest: &manifest.PluginManifest{
			Name:         name,
			Version:      version,
			Provides:     []manifest.ProvideEntry{{Kind: manifest.ProvideSourceFiles, Path: "src"}},
			Dependencies: deps,
		},
		Path: path,
	}
}

func TestValidateNoIssues(t *testing.T) {
	plugins := []discovery.DiscoveredPlugin{
		discoveredWithDeps("alpha", "1.0.0", "/plugins/alpha", "beta"),
		discoveredWithDeps("beta", "1.0.0", "/plugins/beta"),
	}

	report := Validate(plugins)
	if !report.IsValid() {
		t.Fatalf("expected valid report, got errors: %+v", report.Errors)
	}
	if len(report.DanglingWarns) != 0 {
		t.Fatalf("expected no dangling warnings, got %+v", report.DanglingWarns)
	}
}

func TestValidateDuplicateName(t *testing.T) {
	plugins := []discovery.DiscoveredPlugin{
		discoveredWithDeps("alpha", "1.0.0", "/plugins/alpha-1"),
		discoveredWithDeps("alpha", "1.0.0", "/plugins/alpha-2"),
	}

	report := Validate(plugins)
	if report.IsValid() {
		t.Fatalf("expected invalid report due to duplicate name")
	}
	if len(report.Errors) != 1 || report.Errors[0].Name != "alpha" {
		t.Fatalf("Errors = %+v, want one duplicate for alpha", report.Errors)
	}
}

func TestValidateDanglingDependency(t *testing.T) {
	plugins := []discovery.DiscoveredPlugin{
		discoveredWithDeps("alpha", "1.0.0", "/plugins/alpha", "missing-dep"),
	}

	report := Validate(plugins)
	if !report.IsValid() {
		t.Fatalf("dangling dependency should not make the report invalid")
	}
	if len(report.DanglingWarns) != 1 || report.DanglingWarns[0].DepName != "missing-dep" {
		t.Fatalf("DanglingWarns = %+v, want one warning for missing-dep", report.DanglingWarns)
	}
}

func TestValidateSemverWarning(t *testing.T) {
	plugins := []discovery.DiscoveredPlugin{
		discoveredWithDeps("alpha", "not-a-version", "/plugins/alpha"),
	}

	report := Validate(plugins)
	if !report.IsValid() {
		t.Fatalf("malformed semver should not make the report invalid")
	}
	if len(report.SemverWarns) != 1 || report.SemverWarns[0].Version != "not-a-version" {
		t.Fatalf("SemverWarns = %+v, want one warning for not-a-version", report.SemverWarns)
	}
}

func TestValidateAcceptsUnprefixedSemver(t *testing.T) {
	plugins := []discovery.DiscoveredPlugin{
		discoveredWithDeps("alpha", "1.2.3", "/plugins/alpha"),
	}

	report := Validate(plugins)
	if len(report.SemverWarns) != 0 {
		t.Fatalf("expected no semver warnings for 1.2.3, got %+v", report.SemverWarns)
	}
}
