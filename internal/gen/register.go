package gen

import "idea-transformer/internal/plugin"

// Names of the built-in plugins.
const (
	NameGoTypes    = "go-types"
	NameSchemaYAML = "schema-yaml"
)

// Register adds the built-in plugins to reg.
func Register(reg *plugin.Registry) error {
	if err := reg.Register(NameGoTypes, GoTypes{}); err != nil {
		return err
	}

	return reg.Register(NameSchemaYAML, SchemaYAML{})
}

// NewRegistry returns a registry holding the built-in plugins.
func NewRegistry() *plugin.Registry {
	reg := plugin.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}

	return reg
}
