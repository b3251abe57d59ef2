package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dependencies is an order-preserving mapping from plugin name to
// DependencySpec. A plain Go map cannot serve this role: its iteration
// order is undefined, but resolve() and check_dependencies() must reflect
// the order dependencies were declared in the manifest document.
type Dependencies struct {
	names []string
	specs map[string]DependencySpec
}

// NewDependencies builds an empty Dependencies map.
func NewDependencies() Dependencies {
	return Dependencies{specs: make(map[string]DependencySpec)}
}

// Len returns the number of declared dependencies.
func (d Dependencies) Len() int {
	return len(d.names)
}

// Names returns the dependency names in declaration order.
func (d Dependencies) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Get returns the spec declared for name, if any.
func (d Dependencies) Get(name string) (DependencySpec, bool) {
	spec, ok := d.specs[name]
	return spec, ok
}

// Set declares or replaces the dependency named name. It returns an error
// if name is empty or spec.Git is empty, enforcing invariant 4 of the data
// model at construction time.
func (d *Dependencies) Set(name string, spec DependencySpec) error {
	if name == "" {
		return fmt.Errorf("manifest: dependency name is required")
	}
	if spec.Git == "" {
		return fmt.Errorf("manifest: dependency %q requires a non-empty git URL", name)
	}
	if d.specs == nil {
		d.specs = make(map[string]DependencySpec)
	}
	if _, exists := d.specs[name]; !exists {
		d.names = append(d.names, name)
	}
	d.specs[name] = spec
	return nil
}

// Equal reports whether two Dependencies values declare the same names, in
// the same order, with identical specs.
func (d Dependencies) Equal(other Dependencies) bool {
	if len(d.names) != len(other.names) {
		return false
	}
	for i, name := range d.names {
		if other.names[i] != name {
			return false
		}
		if d.specs[name] != other.specs[name] {
			return false
		}
	}
	return true
}

// MarshalYAML renders the dependencies as a YAML mapping node, preserving
// declaration order (gopkg.in/yaml.v3's generic map marshaling would sort
// or scramble keys instead).
func (d Dependencies) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range d.names {
		spec := d.specs[name]
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		var valueNode yaml.Node
		if err := valueNode.Encode(spec); err != nil {
			return nil, fmt.Errorf("manifest: encode dependency %q: %w", name, err)
		}
		node.Content = append(node.Content, keyNode, &valueNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping node into an order-preserving
// Dependencies value, rejecting duplicate keys and fields other than
// "git"/"ref" on each entry.
func (d *Dependencies) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: dependencies must be a mapping, got %s", kindName(node.Kind))
	}
	*d = NewDependencies()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var name string
		if err := keyNode.Decode(&name); err != nil {
			return fmt.Errorf("manifest: dependency key at line %d: %w", keyNode.Line, err)
		}
		if _, exists := d.specs[name]; exists {
			return fmt.Errorf("manifest: duplicate dependency %q", name)
		}
		if err := checkKnownKeys(valueNode, "git", "ref"); err != nil {
			return fmt.Errorf("manifest: dependency %q: %w", name, err)
		}
		var spec DependencySpec
		if err := valueNode.Decode(&spec); err != nil {
			return fmt.Errorf("manifest: dependency %q: %w", name, err)
		}
		d.names = append(d.names, name)
		d.specs[name] = spec
	}
	return nil
}

func checkKnownKeys(node *yaml.Node, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %s", kindName(node.Kind))
	}
	known := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		known[k] = true
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !known[key] {
			return fmt.Errorf("unexpected field %q", key)
		}
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
