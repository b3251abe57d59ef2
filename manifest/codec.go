package manifest

import (
	"bytes"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ErrorKind classifies a ManifestError.
type ErrorKind string

const (
	ErrMissingField           ErrorKind = "missing_field"
	ErrMissingOrEmptyProvides ErrorKind = "missing_or_empty_provides"
	ErrInvalidPackageName     ErrorKind = "invalid_package_name"
	ErrInvalidProvideKind     ErrorKind = "invalid_provide_kind"
	ErrMalformedDocument      ErrorKind = "malformed_document"
)

// ManifestError is returned by Parse and PluginManifest.Validate for schema
// and validation failures.
type ManifestError struct {
	Kind ErrorKind

	Field       string // set for missing_field
	Name        string // set for invalid_package_name
	Index       int    // set for invalid_provide_kind
	ProvideKind ProvideKind
	Detail      string // set for malformed_document
}

func (e *ManifestError) Error() string {
	switch e.Kind {
	case ErrMissingField:
		return fmt.Sprintf("manifest: missing field %q", e.Field)
	case ErrMissingOrEmptyProvides:
		return "manifest: provides must be non-empty"
	case ErrInvalidPackageName:
		return fmt.Sprintf("manifest: invalid package name %q", e.Name)
	case ErrInvalidProvideKind:
		return fmt.Sprintf("manifest: provides[%d] has invalid kind %q", e.Index, e.ProvideKind)
	case ErrMalformedDocument:
		return fmt.Sprintf("manifest: malformed document: %s", e.Detail)
	default:
		return "manifest: invalid"
	}
}

var packageNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Parse decodes a manifest document, returning a *ManifestError for any
// schema or structural failure. Unknown top-level or nested-struct fields
// are rejected and surfaced as ErrMalformedDocument.
func Parse(data []byte) (*PluginManifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m PluginManifest
	if err := dec.Decode(&m); err != nil {
		return nil, &ManifestError{Kind: ErrMalformedDocument, Detail: err.Error()}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Serialize renders a manifest back to its document form.
func Serialize(m *PluginManifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("manifest: serialize: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("manifest: serialize: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks the structural invariants of the data model (§3):
// required fields present, name matches the package-name regex, provides
// is non-empty, and every provide kind is in the closed enum.
func (m *PluginManifest) Validate() error {
	if m.Name == "" {
		return &ManifestError{Kind: ErrMissingField, Field: "name"}
	}
	if !packageNameRe.MatchString(m.Name) {
		return &ManifestError{Kind: ErrInvalidPackageName, Name: m.Name}
	}
	if m.Version == "" {
		return &ManifestError{Kind: ErrMissingField, Field: "version"}
	}
	if len(m.Provides) == 0 {
		return &ManifestError{Kind: ErrMissingOrEmptyProvides}
	}
	for i, p := range m.Provides {
		if !validProvideKind(p.Kind) {
			return &ManifestError{Kind: ErrInvalidProvideKind, Index: i, ProvideKind: p.Kind}
		}
	}
	return nil
}
