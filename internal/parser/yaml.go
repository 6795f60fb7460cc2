package parser

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"idea-transformer/internal/schema"
)

// YAML parses YAML (and JSON) schema sources.
type YAML struct{}

// Parse implements Parser.
func (YAML) Parse(_ context.Context, path string, data []byte) (*schema.Table, error) {
	doc, err := ParseYAMLDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML %s: %w", path, err)
	}

	table, err := schema.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}

	return table, nil
}

// ParseYAMLDocument parses data into an ordered document. An empty source
// yields an empty document.
func ParseYAMLDocument(data []byte) (*schema.Map[any], error) {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	if root.Kind == 0 {
		return schema.NewMap[any](), nil
	}

	v, err := fromNode(&root)
	if err != nil {
		return nil, err
	}

	switch doc := v.(type) {
	case nil:
		return schema.NewMap[any](), nil
	case *schema.Map[any]:
		return doc, nil
	default:
		return nil, fmt.Errorf("top level must be a mapping, got %T", v)
	}
}

// maxAliasExpansions caps how many aliases one document may expand, so
// nested aliases cannot blow up exponentially.
const maxAliasExpansions = 10000

// nodeDecoder converts a yaml.Node tree into the document tree, keeping
// mapping order.
type nodeDecoder struct {
	// expanding holds the anchored nodes currently being decoded.
	expanding  map[*yaml.Node]bool
	expansions int
}

func fromNode(node *yaml.Node) (any, error) {
	d := &nodeDecoder{expanding: make(map[*yaml.Node]bool)}
	return d.decode(node)
}

func (d *nodeDecoder) decode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return d.decode(node.Content[0])

	case yaml.AliasNode:
		if d.expanding[node.Alias] {
			return nil, fmt.Errorf("line %d: alias %q references itself", node.Line, node.Value)
		}

		d.expansions++
		if d.expansions > maxAliasExpansions {
			return nil, fmt.Errorf("line %d: too many alias expansions (limit %d)", node.Line, maxAliasExpansions)
		}

		return d.decode(node.Alias)

	case yaml.MappingNode:
		// An anchored node expanding itself is caught through its alias.
		if node.Anchor != "" {
			d.expanding[node] = true
			defer delete(d.expanding, node)
		}

		m := schema.NewMap[any]()

		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]

			var key string

			err := keyNode.Decode(&key)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid key: %w", keyNode.Line, err)
			}

			if m.Has(key) {
				return nil, fmt.Errorf("line %d: duplicate key %q", keyNode.Line, key)
			}

			value, err := d.decode(valueNode)
			if err != nil {
				return nil, err
			}

			m.Set(key, value)
		}

		return m, nil

	case yaml.SequenceNode:
		if node.Anchor != "" {
			d.expanding[node] = true
			defer delete(d.expanding, node)
		}

		list := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			value, err := d.decode(item)
			if err != nil {
				return nil, err
			}

			list = append(list, value)
		}

		return list, nil

	case yaml.ScalarNode:
		var value any

		err := node.Decode(&value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return value, nil

	default:
		return nil, fmt.Errorf("line %d: unexpected node kind %v", node.Line, node.Kind)
	}
}

// MarshalYAML serializes an ordered document to YAML, keeping key order.
func MarshalYAML(doc *schema.Map[any]) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	return out, nil
}
