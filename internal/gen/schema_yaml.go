package gen

import (
	"context"
	"encoding/json"
	"fmt"

	"idea-transformer/internal/parser"
	"idea-transformer/internal/plugin"
	"idea-transformer/internal/schema"
)

// OptionFormat selects the schema-yaml output encoding: "yaml" or "json".
const OptionFormat = "format"

// SchemaYAML writes the resolved schema document to the entry's output.
type SchemaYAML struct{}

// Run implements plugin.Plugin.
func (SchemaYAML) Run(_ context.Context, s *schema.Table, cfg *schema.PluginConfig, pc *plugin.Context) error {
	if cfg.Output == "" {
		return fmt.Errorf("%s: output is required", NameSchemaYAML)
	}

	data, err := MarshalSchema(s, cfg.StringOption(OptionFormat, "yaml"))
	if err != nil {
		return err
	}

	_, err = pc.WriteFile(cfg.Output, data)

	return err
}

// MarshalSchema encodes s as ordered YAML or indented JSON.
func MarshalSchema(s *schema.Table, format string) ([]byte, error) {
	doc := schema.Encode(s)

	switch format {
	case "yaml", "yml":
		return parser.MarshalYAML(doc)
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}

		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
