// Package manifest models a plugin's descriptor: name, version, provided
// artifacts, declared dependencies, and build hints. It also provides the
// YAML codec that reads and writes that descriptor.
package manifest

import "reflect"

// ManifestFileName is the conventional filename a plugin's manifest is
// expected to live at, at the root of its plugin directory.
const ManifestFileName = "plugin.yaml"

// ProvideKind is a closed enum naming the kind of artifact a ProvideEntry
// contributes.
type ProvideKind string

const (
	// ProvideSourceFiles is a raw source tree with no precompiled artifact.
	ProvideSourceFiles ProvideKind = "source-files"
	// ProvideNativePluginA is an out-of-process RPC plugin.
	ProvideNativePluginA ProvideKind = "native-plugin-a"
	// ProvideNativePluginB is an in-process natively compiled plugin.
	ProvideNativePluginB ProvideKind = "native-plugin-b"
	// ProvideInterpretedPlugin is source interpreted at load time, with no
	// separate compile step.
	ProvideInterpretedPlugin ProvideKind = "interpreted-plugin"
)

func validProvideKind(k ProvideKind) bool {
	switch k {
	case ProvideSourceFiles, ProvideNativePluginA, ProvideNativePluginB, ProvideInterpretedPlugin:
		return true
	}
	return false
}

// ProvideEntry is one artifact a plugin contributes.
type ProvideEntry struct {
	Kind        ProvideKind    `yaml:"kind"`
	Path        string         `yaml:"path"`
	BuildHint   map[string]any `yaml:"build_hint,omitempty"`
	RuntimeHint map[string]any `yaml:"runtime_hint,omitempty"`
}

// SourceSpec points at the revision-control location a plugin's own source
// lives at.
type SourceSpec struct {
	Git    string `yaml:"git"`
	Ref    string `yaml:"ref,omitempty"`
	Commit string `yaml:"commit,omitempty"`
}

// DependencySpec is the source pointer for one declared dependency. Git is
// always non-empty for a valid spec; Ref is optional (branch, tag, or full
// commit identifier).
type DependencySpec struct {
	Git string `yaml:"git"`
	Ref string `yaml:"ref,omitempty"`
}

// PluginManifest is the full descriptor for one plugin.
type PluginManifest struct {
	Name               string         `yaml:"name"`
	Version            string         `yaml:"version"`
	Description        string         `yaml:"description,omitempty"`
	Author             string         `yaml:"author,omitempty"`
	License            string         `yaml:"license,omitempty"`
	RuntimeVersionSpec string         `yaml:"runtime_version_spec,omitempty"`
	Source             *SourceSpec    `yaml:"source,omitempty"`
	Provides           []ProvideEntry `yaml:"provides"`
	// Dependencies has no "omitempty": gopkg.in/yaml.v3's zero-value check
	// only inspects exported struct fields, and Dependencies' fields are
	// both unexported, so omitempty would treat every non-empty value as
	// zero and silently drop it.
	Dependencies Dependencies `yaml:"dependencies"`
	Build              map[string]any `yaml:"build,omitempty"`
}

// Equal reports whether two manifests have identical fields.
func (m *PluginManifest) Equal(other *PluginManifest) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Name != other.Name || m.Version != other.Version ||
		m.Description != other.Description || m.Author != other.Author ||
		m.License != other.License || m.RuntimeVersionSpec != other.RuntimeVersionSpec {
		return false
	}
	if !equalSource(m.Source, other.Source) {
		return false
	}
	if !equalProvides(m.Provides, other.Provides) {
		return false
	}
	if !m.Dependencies.Equal(other.Dependencies) {
		return false
	}
	return equalOpaque(m.Build, other.Build)
}

func equalSource(a, b *SourceSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalProvides(a, b []ProvideEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Path != b[i].Path {
			return false
		}
		if !equalOpaque(a[i].BuildHint, b[i].BuildHint) || !equalOpaque(a[i].RuntimeHint, b[i].RuntimeHint) {
			return false
		}
	}
	return true
}

func equalOpaque(a, b map[string]any) bool {
	return reflect.DeepEqual(a, b)
}
